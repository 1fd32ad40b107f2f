package sim

// Niceness bounds accepted by the kernel's thread_set_nice.
const (
	NiceMin = -20
	NiceMax = 20
)

// Priority bounds of the MLFQS scheduler.
const (
	PriMin = 0
	PriMax = 63
)

// Thread is a hypothetical thread in a prediction. Its index in
// Scenario.Threads is its identity and never changes during a run.
type Thread struct {
	Name string `yaml:"name" json:"name"`
	Nice int    `yaml:"nice" json:"nice"`
}

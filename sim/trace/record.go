// Package trace provides per-quantum records of an MLFQS prediction, their
// summary and their rendering.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// QuantumRecord captures one iteration of the prediction.
type QuantumRecord struct {
	Iteration int `json:"iteration" yaml:"iteration"`
	Tick      int `json:"tick" yaml:"tick"`

	// RecentCPU is sampled after the decay, truncated toward zero.
	RecentCPU      []int     `json:"recent_cpu" yaml:"recent_cpu"`
	RecentCPUExact []float64 `json:"recent_cpu_exact,omitempty" yaml:"recent_cpu_exact,omitempty"`

	// RecentCPUx100 is what thread_get_recent_cpu would return; only the
	// fixed-point model reports it.
	RecentCPUx100 []int `json:"recent_cpu_x100,omitempty" yaml:"recent_cpu_x100,omitempty"`

	// Priorities are computed before the selected thread is charged.
	Priorities []int `json:"priorities" yaml:"priorities"`

	// HighestPriority is the index the priorities alone select; Selected is
	// the index that ran once overrides are applied.
	HighestPriority int    `json:"highest_priority" yaml:"highest_priority"`
	Selected        int    `json:"selected" yaml:"selected"`
	Label           string `json:"label" yaml:"label"`
	Overridden      bool   `json:"overridden,omitempty" yaml:"overridden,omitempty"`
}

// OverrideChangedPick reports whether an override replaced a different pick.
func (r QuantumRecord) OverrideChangedPick() bool {
	return r.Overridden && r.Selected != r.HighestPriority
}

// PriorityGap returns priority[HighestPriority] - priority[Selected]; 0 when
// the highest-priority thread ran.
func (r QuantumRecord) PriorityGap() int {
	if r.HighestPriority < 0 || r.HighestPriority >= len(r.Priorities) ||
		r.Selected < 0 || r.Selected >= len(r.Priorities) {
		return 0
	}
	return r.Priorities[r.HighestPriority] - r.Priorities[r.Selected]
}

package trace

// TraceConfig describes how a trace was produced.
type TraceConfig struct {
	Scenario   string   `json:"scenario,omitempty" yaml:"scenario,omitempty"`
	UsageModel string   `json:"usage_model" yaml:"usage_model"`
	Labels     []string `json:"labels" yaml:"labels"`
}

// PredictionTrace collects quantum records during one prediction run.
type PredictionTrace struct {
	Config TraceConfig     `json:"config" yaml:"config"`
	Quanta []QuantumRecord `json:"quanta" yaml:"quanta"`
}

// NewPredictionTrace creates a PredictionTrace ready for recording.
func NewPredictionTrace(config TraceConfig) *PredictionTrace {
	return &PredictionTrace{
		Config: config,
		Quanta: make([]QuantumRecord, 0),
	}
}

// RecordQuantum appends a quantum record.
func (pt *PredictionTrace) RecordQuantum(record QuantumRecord) {
	pt.Quanta = append(pt.Quanta, record)
}

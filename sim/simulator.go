package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/mlfqs-predict/sim/trace"
)

// State is the mutable clock of a prediction run. recent_cpu lives in the
// UsageModel; priorities are derived fresh every iteration and never stored.
type State struct {
	Iteration int // next iteration to simulate
	Tick      int // ticks elapsed before that iteration
}

// Simulator steps a Scenario through its iterations. Each iteration derives
// priorities, picks the highest, applies overrides, charges the chosen
// thread a quantum and decays every thread's recent_cpu.
type Simulator struct {
	Scenario *Scenario
	Usage    UsageModel
	State    State
	Trace    *trace.PredictionTrace
}

// NewSimulator creates a Simulator with all recent_cpu zeroed and the clock at
// tick 0. The scenario must already be validated; usageModel must satisfy
// IsValidUsageModel.
func NewSimulator(sc *Scenario, usageModel string) *Simulator {
	if usageModel == "" {
		usageModel = UsageModelFloat
	}
	return &Simulator{
		Scenario: sc,
		Usage:    NewUsageModel(usageModel, sc.Threads, sc.LoadAvg),
		Trace: trace.NewPredictionTrace(trace.TraceConfig{
			Scenario:   sc.Name,
			UsageModel: usageModel,
			Labels:     sc.Labels(),
		}),
	}
}

// Done reports whether every iteration has been simulated.
func (s *Simulator) Done() bool {
	return s.State.Iteration >= s.Scenario.Iterations
}

// Step simulates one iteration, records it and advances the clock.
// Panics if called after Done.
func (s *Simulator) Step() trace.QuantumRecord {
	if s.Done() {
		panic("sim: Step called after final iteration")
	}
	i := s.State.Iteration

	priorities := s.Usage.Priorities()
	highest := SelectHighest(priorities)
	selected, overridden := s.Scenario.Overrides.Apply(i, highest)
	if overridden {
		logrus.Debugf("[tick %03d] override: %s forced over %s",
			s.State.Tick, s.Scenario.Threads[selected].Name, s.Scenario.Threads[highest].Name)
	}

	s.Usage.Charge(selected, s.Scenario.QuantumTicks)
	s.Usage.Decay()

	record := trace.QuantumRecord{
		Iteration:       i,
		Tick:            s.State.Tick,
		RecentCPU:       s.Usage.RecentCPU(),
		RecentCPUExact:  s.Usage.RecentCPUExact(),
		Priorities:      priorities,
		HighestPriority: highest,
		Selected:        selected,
		Label:           s.Scenario.Threads[selected].Name,
		Overridden:      overridden,
	}
	if kr, ok := s.Usage.(KernelReporter); ok {
		record.RecentCPUx100 = kr.RecentCPUTimes100()
	}
	s.Trace.RecordQuantum(record)
	logrus.Debugf("[tick %03d] priorities=%v run=%s recent_cpu=%v",
		record.Tick, priorities, record.Label, record.RecentCPUExact)

	s.State.Iteration++
	s.State.Tick += s.Scenario.QuantumTicks
	return record
}

// Run simulates all remaining iterations and returns the trace.
func (s *Simulator) Run() *trace.PredictionTrace {
	for !s.Done() {
		s.Step()
	}
	return s.Trace
}

package sim

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is the complete input of a prediction.
// Loaded from YAML via LoadScenario(path), or built by DefaultScenario.
type Scenario struct {
	Name         string        `yaml:"name,omitempty"`
	LoadAvg      float64       `yaml:"load_avg"`      // assumed constant; never recomputed
	QuantumTicks int           `yaml:"quantum_ticks"` // ticks between priority recalculations
	Iterations   int           `yaml:"iterations"`
	Threads      []Thread      `yaml:"threads"`
	Overrides    OverrideTable `yaml:"overrides,omitempty"`
}

// DefaultScenario returns the mlfqs-c2 model: threads A, B, C with nice
// 0, 1, 2, load_avg assumed to be 3, ten 4-tick quanta.
func DefaultScenario() *Scenario {
	return &Scenario{
		Name:         "mlfqs-c2",
		LoadAvg:      3,
		QuantumTicks: 4,
		Iterations:   10,
		Threads: []Thread{
			{Name: "A", Nice: 0},
			{Name: "B", Nice: 1},
			{Name: "C", Nice: 2},
		},
		Overrides: DefaultOverrides(),
	}
}

// LoadScenario reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
// The result is validated before it is returned.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &sc, nil
}

// Validate checks that all fields in the scenario are usable.
func (s *Scenario) Validate() error {
	if math.IsNaN(s.LoadAvg) || math.IsInf(s.LoadAvg, 0) {
		return fmt.Errorf("load_avg must be a finite number, got %f", s.LoadAvg)
	}
	if s.LoadAvg < 0 {
		return fmt.Errorf("load_avg must be non-negative, got %f", s.LoadAvg)
	}
	if s.QuantumTicks <= 0 {
		return fmt.Errorf("quantum_ticks must be positive, got %d", s.QuantumTicks)
	}
	if s.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", s.Iterations)
	}
	if len(s.Threads) == 0 {
		return fmt.Errorf("at least one thread required")
	}
	seen := make(map[string]bool, len(s.Threads))
	for i, t := range s.Threads {
		prefix := fmt.Sprintf("threads[%d]", i)
		if t.Name == "" {
			return fmt.Errorf("%s: name must not be empty", prefix)
		}
		if seen[t.Name] {
			return fmt.Errorf("%s: duplicate name %q", prefix, t.Name)
		}
		seen[t.Name] = true
		if t.Nice < NiceMin || t.Nice > NiceMax {
			return fmt.Errorf("%s.nice must be in [%d, %d], got %d", prefix, NiceMin, NiceMax, t.Nice)
		}
	}
	return s.Overrides.Validate(len(s.Threads))
}

// ValidateFor runs Validate and then checks that the scenario stays within
// the range of the named usage model. The fixed-point model holds every
// value in 32-bit 17.14 form, so 2*load_avg+1 and the largest reachable
// |recent_cpu| (iterations * (quantum_ticks + max |nice|)) must not exceed
// FixedPointMaxInt.
func (s *Scenario) ValidateFor(usageModel string) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if usageModel != UsageModelFixedPoint {
		return nil
	}
	if maxLoad := float64(FixedPointMaxInt-1) / 2; s.LoadAvg > maxLoad {
		return fmt.Errorf("load_avg must be at most %v for %s arithmetic, got %v", maxLoad, usageModel, s.LoadAvg)
	}
	maxNice := 0
	for _, t := range s.Threads {
		if n := abs(t.Nice); n > maxNice {
			maxNice = n
		}
	}
	limit := FixedPointMaxInt / s.Iterations
	if s.QuantumTicks > FixedPointMaxInt || s.QuantumTicks+maxNice > limit {
		return fmt.Errorf("iterations * (quantum_ticks + max |nice|) must be at most %d for %s arithmetic, got %d * (%d + %d)",
			FixedPointMaxInt, usageModel, s.Iterations, s.QuantumTicks, maxNice)
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Labels returns the thread names in index order.
func (s *Scenario) Labels() []string {
	labels := make([]string, len(s.Threads))
	for i, t := range s.Threads {
		labels[i] = t.Name
	}
	return labels
}

package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_NilTrace(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.TotalQuanta)
	assert.Equal(t, 0, s.OverrideCount)
	assert.NotNil(t, s.RunDistribution)
}

func TestSummarize_EmptyTrace(t *testing.T) {
	s := Summarize(NewPredictionTrace(TraceConfig{}))
	assert.Equal(t, 0, s.TotalQuanta)
	assert.Equal(t, 0.0, s.MeanPriorityGap)
	assert.Empty(t, s.RunDistribution)
}

func TestSummarize_CountsRunsAndOverrides(t *testing.T) {
	// GIVEN a trace with one plain quantum, one override that changed the pick
	// and one override that agreed with it
	pt := NewPredictionTrace(TraceConfig{Labels: []string{"A", "B", "C"}})
	pt.RecordQuantum(QuantumRecord{Priorities: []int{63, 61, 59}, HighestPriority: 0, Selected: 0, Label: "A"})
	pt.RecordQuantum(QuantumRecord{Priorities: []int{62, 58, 57}, HighestPriority: 0, Selected: 1, Label: "B", Overridden: true})
	pt.RecordQuantum(QuantumRecord{Priorities: []int{60, 60, 57}, HighestPriority: 0, Selected: 0, Label: "A", Overridden: true})

	// WHEN summarized
	s := Summarize(pt)

	// THEN counts and gaps reflect only the overridden quanta
	assert.Equal(t, 3, s.TotalQuanta)
	assert.Equal(t, 2, s.OverrideCount)
	assert.Equal(t, 1, s.OverridesChanged)
	assert.Equal(t, 4, s.MaxPriorityGap)
	assert.Equal(t, 2.0, s.MeanPriorityGap)
	assert.Equal(t, map[string]int{"A": 2, "B": 1}, s.RunDistribution)
}

func TestQuantumRecord_PriorityGap(t *testing.T) {
	q := QuantumRecord{Priorities: []int{60, 60, 57}, HighestPriority: 0, Selected: 1}
	assert.Equal(t, 0, q.PriorityGap(), "tie costs nothing")

	q = QuantumRecord{Priorities: []int{60, 58}, HighestPriority: 0, Selected: 1}
	assert.Equal(t, 2, q.PriorityGap())

	// Out-of-range indices yield zero rather than panicking
	q = QuantumRecord{Priorities: []int{60}, HighestPriority: 0, Selected: 4}
	assert.Equal(t, 0, q.PriorityGap())
}

func TestQuantumRecord_OverrideChangedPick(t *testing.T) {
	assert.True(t, QuantumRecord{HighestPriority: 0, Selected: 1, Overridden: true}.OverrideChangedPick())
	assert.False(t, QuantumRecord{HighestPriority: 1, Selected: 1, Overridden: true}.OverrideChangedPick())
	assert.False(t, QuantumRecord{HighestPriority: 0, Selected: 1}.OverrideChangedPick())
}

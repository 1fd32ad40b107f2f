package trace

// TraceSummary aggregates statistics from a PredictionTrace.
type TraceSummary struct {
	TotalQuanta      int     `json:"total_quanta" yaml:"total_quanta"`
	OverrideCount    int     `json:"override_count" yaml:"override_count"`
	OverridesChanged int     `json:"overrides_changed_pick" yaml:"overrides_changed_pick"`
	MeanPriorityGap  float64 `json:"mean_priority_gap" yaml:"mean_priority_gap"`
	MaxPriorityGap   int     `json:"max_priority_gap" yaml:"max_priority_gap"`

	// RunDistribution maps label to the number of quanta that thread ran.
	RunDistribution map[string]int `json:"run_distribution" yaml:"run_distribution"`
}

// Summarize computes aggregate statistics from a PredictionTrace.
// Priority gaps are averaged over overridden quanta only.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(pt *PredictionTrace) *TraceSummary {
	summary := &TraceSummary{
		RunDistribution: make(map[string]int),
	}
	if pt == nil {
		return summary
	}

	summary.TotalQuanta = len(pt.Quanta)
	totalGap := 0
	for _, q := range pt.Quanta {
		summary.RunDistribution[q.Label]++
		if !q.Overridden {
			continue
		}
		summary.OverrideCount++
		if q.OverrideChangedPick() {
			summary.OverridesChanged++
		}
		gap := q.PriorityGap()
		totalGap += gap
		if gap > summary.MaxPriorityGap {
			summary.MaxPriorityGap = gap
		}
	}
	if summary.OverrideCount > 0 {
		summary.MeanPriorityGap = float64(totalGap) / float64(summary.OverrideCount)
	}

	return summary
}

package sim

import (
	"fmt"
	"sort"
)

// OverrideTable forces the thread chosen at specific iterations, keyed by
// iteration index with the forced thread index as value.
//
// The reference scheduler round-robins equal-priority threads, which a pure
// highest-priority pick cannot express. The default table encodes the two
// quanta of the mlfqs-c2 run where A and B tie and B is the one that runs.
type OverrideTable map[int]int

// DefaultOverrides returns the override table for the mlfqs-c2 prediction.
func DefaultOverrides() OverrideTable {
	return OverrideTable{
		3: 1, // A and B tie at 60; B runs
		7: 1, // A and B tie at 59; B runs
	}
}

// Apply returns the thread that runs at iteration given the highest-priority
// pick, and whether an override replaced it. An override fires even when
// it names the thread that was picked anyway.
func (o OverrideTable) Apply(iteration, picked int) (int, bool) {
	if forced, ok := o[iteration]; ok {
		return forced, true
	}
	return picked, false
}

// Iterations returns the overridden iteration indices in ascending order.
func (o OverrideTable) Iterations() []int {
	its := make([]int, 0, len(o))
	for it := range o {
		its = append(its, it)
	}
	sort.Ints(its)
	return its
}

// Validate checks that every entry references a non-negative iteration and
// a thread index below numThreads.
func (o OverrideTable) Validate(numThreads int) error {
	for _, it := range o.Iterations() {
		if it < 0 {
			return fmt.Errorf("overrides: iteration must be non-negative, got %d", it)
		}
		if t := o[it]; t < 0 || t >= numThreads {
			return fmt.Errorf("overrides[%d]: thread index %d out of range [0, %d)", it, t, numThreads)
		}
	}
	return nil
}

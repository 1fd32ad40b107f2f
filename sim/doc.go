// Package sim provides the MLFQS prediction engine.
//
// # Reading Guide
//
// Start with these files to understand one quantum of the model:
//   - priority.go: priority derivation, explicit truncation, highest-priority selection
//   - override.go: iteration-indexed overrides applied after selection
//   - usage_model.go: how recent_cpu is charged and decayed (float or 17.14 fixed point)
//   - simulator.go: the iteration loop that ties the above together
//
// # Architecture
//
// The sim package owns all mutable state for a prediction in a Simulator;
// there are no package-level mutable globals. Supporting code lives in
// sub-packages:
//   - sim/trace/: per-quantum records, summaries and output rendering
//
// A run is fully determined by its Scenario and usage model name: the same
// inputs always produce identical records.
package sim

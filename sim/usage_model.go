package sim

import (
	"fmt"
	"math"
)

// UsageModel carries per-thread recent_cpu and derives priorities from it.
// Implementations own their state; thread order matches Scenario.Threads.
type UsageModel interface {
	// Priorities derives the current priority of every thread.
	Priorities() []int
	// Charge adds ticks of CPU time to one thread.
	Charge(thread, ticks int)
	// Decay applies recent_cpu = (2*load_avg)/(2*load_avg+1) * recent_cpu + nice to every thread.
	Decay()
	// RecentCPU returns recent_cpu per thread truncated toward zero.
	RecentCPU() []int
	// RecentCPUExact returns recent_cpu per thread at the model's full precision.
	RecentCPUExact() []float64
}

// KernelReporter is implemented by usage models that can report recent_cpu
// the way the kernel's thread_get_recent_cpu does: 100 times the value,
// rounded to nearest.
type KernelReporter interface {
	RecentCPUTimes100() []int
}

const (
	UsageModelFloat      = "float"
	UsageModelFixedPoint = "fixed-point"
)

var validUsageModels = map[string]bool{
	"":                   true, // empty defaults to float
	UsageModelFloat:      true,
	UsageModelFixedPoint: true,
}

// IsValidUsageModel returns true if name is a recognized usage model.
func IsValidUsageModel(name string) bool {
	return validUsageModels[name]
}

// ValidUsageModelNames lists the accepted names, for flag help and errors.
func ValidUsageModelNames() []string {
	return []string{UsageModelFloat, UsageModelFixedPoint}
}

// NewUsageModel creates a UsageModel by name with recent_cpu zeroed.
// Valid names: "float" (default), "fixed-point".
// Panics on unrecognized names; callers validate with IsValidUsageModel first.
func NewUsageModel(name string, threads []Thread, loadAvg float64) UsageModel {
	if !IsValidUsageModel(name) {
		panic(fmt.Sprintf("unknown usage model %q", name))
	}
	nice := make([]int, len(threads))
	for i, t := range threads {
		nice[i] = t.Nice
	}
	switch name {
	case "", UsageModelFloat:
		return &FloatUsage{
			nice:      nice,
			recentCPU: make([]float64, len(threads)),
			loadAvg:   loadAvg,
		}
	case UsageModelFixedPoint:
		return &FixedPointUsage{
			nice:      nice,
			recentCPU: make([]FixedPoint, len(threads)),
			loadAvg:   FixedPoint(math.Round(loadAvg * FixedPointScale)),
		}
	default:
		panic(fmt.Sprintf("unhandled usage model %q", name))
	}
}

// FloatUsage keeps recent_cpu in float64 and truncates only for display.
// Priority is PriMax - recent_cpu/4 - nice*2, truncated and not clamped.
type FloatUsage struct {
	nice      []int
	recentCPU []float64
	loadAvg   float64
}

func (f *FloatUsage) Priorities() []int {
	out := make([]int, len(f.recentCPU))
	for i, rc := range f.recentCPU {
		out[i] = FloatPriority(rc, f.nice[i])
	}
	return out
}

func (f *FloatUsage) Charge(thread, ticks int) {
	f.recentCPU[thread] += float64(ticks)
}

func (f *FloatUsage) Decay() {
	coeff := (2 * f.loadAvg) / (2*f.loadAvg + 1)
	for i, rc := range f.recentCPU {
		// Explicit conversion forbids fusing into an FMA, which would change low-order bits.
		f.recentCPU[i] = float64(coeff*rc) + float64(f.nice[i])
	}
}

func (f *FloatUsage) RecentCPU() []int {
	out := make([]int, len(f.recentCPU))
	for i, rc := range f.recentCPU {
		out[i] = TruncateToInt(rc)
	}
	return out
}

func (f *FloatUsage) RecentCPUExact() []float64 {
	out := make([]float64, len(f.recentCPU))
	copy(out, f.recentCPU)
	return out
}

// FixedPointUsage mirrors the kernel's 17.14 arithmetic: the CPU penalty is
// trunc(recent_cpu/4)+1 so priorities round down, and priorities are
// clamped to [PriMin, PriMax].
type FixedPointUsage struct {
	nice      []int
	recentCPU []FixedPoint
	loadAvg   FixedPoint
}

func (f *FixedPointUsage) Priorities() []int {
	out := make([]int, len(f.recentCPU))
	for i, rc := range f.recentCPU {
		penalty := rc.DivInt(4).TruncInt() + 1
		out[i] = ClampPriority(PriMax - penalty - f.nice[i]*2)
	}
	return out
}

func (f *FixedPointUsage) Charge(thread, ticks int) {
	f.recentCPU[thread] = f.recentCPU[thread].AddInt(ticks)
}

func (f *FixedPointUsage) Decay() {
	twice := f.loadAvg.MulInt(2)
	coeff := twice.Div(twice.AddInt(1))
	for i, rc := range f.recentCPU {
		f.recentCPU[i] = rc.Mul(coeff).AddInt(f.nice[i])
	}
}

func (f *FixedPointUsage) RecentCPU() []int {
	out := make([]int, len(f.recentCPU))
	for i, rc := range f.recentCPU {
		out[i] = rc.TruncInt()
	}
	return out
}

func (f *FixedPointUsage) RecentCPUExact() []float64 {
	out := make([]float64, len(f.recentCPU))
	for i, rc := range f.recentCPU {
		out[i] = rc.Float()
	}
	return out
}

func (f *FixedPointUsage) RecentCPUTimes100() []int {
	out := make([]int, len(f.recentCPU))
	for i, rc := range f.recentCPU {
		out[i] = rc.ScaledNearestInt(100)
	}
	return out
}

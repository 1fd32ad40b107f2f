package sim

// FixedPointScale is f in the kernel's 17.14 fixed-point representation.
const FixedPointScale = 1 << 14

// FixedPointMaxInt is the largest integer magnitude a FixedPoint can hold.
const FixedPointMaxInt = (1<<31 - 1) / FixedPointScale

// FixedPoint is a number scaled by FixedPointScale, matching the kernel's
// fixedp type. Division truncates toward zero, as C integer division does.
type FixedPoint int32

// FixedFromInt scales n up to fixed point.
func FixedFromInt(n int) FixedPoint {
	return FixedPoint(n * FixedPointScale)
}

// TruncInt scales x down, rounding toward zero.
func (x FixedPoint) TruncInt() int {
	return int(x / FixedPointScale)
}

// ScaledNearestInt returns x*n rounded to the nearest integer, as the kernel's
// thread_get_recent_cpu reports 100 times recent_cpu. The product is taken
// in 64-bit so it cannot wrap.
func (x FixedPoint) ScaledNearestInt(n int) int {
	v := int64(x) * int64(n)
	if v >= 0 {
		return int((v + FixedPointScale/2) / FixedPointScale)
	}
	return int((v - FixedPointScale/2) / FixedPointScale)
}

// Float returns x as a float64, for display only.
func (x FixedPoint) Float() float64 {
	return float64(x) / FixedPointScale
}

// Add returns x+y.
func (x FixedPoint) Add(y FixedPoint) FixedPoint { return x + y }

// AddInt returns x plus the integer n.
func (x FixedPoint) AddInt(n int) FixedPoint { return x + FixedFromInt(n) }

// MulInt returns x multiplied by the integer n.
func (x FixedPoint) MulInt(n int) FixedPoint { return x * FixedPoint(n) }

// DivInt returns x divided by the integer n, truncating toward zero.
func (x FixedPoint) DivInt(n int) FixedPoint { return x / FixedPoint(n) }

// Mul multiplies in 64-bit before scaling back down.
func (x FixedPoint) Mul(y FixedPoint) FixedPoint {
	return FixedPoint(int64(x) * int64(y) / FixedPointScale)
}

// Div scales x up in 64-bit before dividing by y.
func (x FixedPoint) Div(y FixedPoint) FixedPoint {
	return FixedPoint(int64(x) * FixedPointScale / int64(y))
}

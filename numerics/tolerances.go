// SPDX-License-Identifier: MIT
// Package: lvcuts/numerics
//
// tolerances.go: epsilon, sum-epsilon and feasibility comparisons.

package numerics

import "math"

// Tolerances is the numeric tolerance oracle. The zero value is not
// usable; build one with New or Default.
type Tolerances struct {
	epsilon    float64
	sumepsilon float64
	feastol    float64
	infinity   float64
}

// New returns tolerances initialised with the defaults and then
// modified by opts in order.
func New(opts ...Option) *Tolerances {
	t := &Tolerances{
		epsilon:    DefaultEpsilon,
		sumepsilon: DefaultSumEpsilon,
		feastol:    DefaultFeasTol,
		infinity:   DefaultInfinity,
	}
	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Default returns the default tolerances.
func Default() *Tolerances { return New() }

// Epsilon returns the generic zero tolerance.
func (t *Tolerances) Epsilon() float64 { return t.epsilon }

// SumEpsilon returns the tolerance for accumulated sums.
func (t *Tolerances) SumEpsilon() float64 { return t.sumepsilon }

// FeasTol returns the feasibility tolerance.
func (t *Tolerances) FeasTol() float64 { return t.feastol }

// Infinity returns the infinity sentinel.
func (t *Tolerances) Infinity() float64 { return t.infinity }

// IsInfinity reports whether x is at or above the infinity sentinel.
// Use IsInfinity(-x) to test for minus infinity.
func (t *Tolerances) IsInfinity(x float64) bool { return x >= t.infinity }

// ---------- epsilon comparisons (absolute) ----------

// IsZero reports |x| <= epsilon.
func (t *Tolerances) IsZero(x float64) bool { return math.Abs(x) <= t.epsilon }

// IsPositive reports x > epsilon.
func (t *Tolerances) IsPositive(x float64) bool { return x > t.epsilon }

// IsNegative reports x < -epsilon.
func (t *Tolerances) IsNegative(x float64) bool { return x < -t.epsilon }

// IsEQ reports |a-b| <= epsilon.
func (t *Tolerances) IsEQ(a, b float64) bool { return math.Abs(a-b) <= t.epsilon }

// IsLT reports a < b by more than epsilon.
func (t *Tolerances) IsLT(a, b float64) bool { return a-b < -t.epsilon }

// IsLE reports a <= b up to epsilon.
func (t *Tolerances) IsLE(a, b float64) bool { return a-b <= t.epsilon }

// IsGT reports a > b by more than epsilon.
func (t *Tolerances) IsGT(a, b float64) bool { return a-b > t.epsilon }

// IsGE reports a >= b up to epsilon.
func (t *Tolerances) IsGE(a, b float64) bool { return a-b >= -t.epsilon }

// ---------- sum-epsilon comparisons ----------

// IsSumZero reports |x| <= sumepsilon.
func (t *Tolerances) IsSumZero(x float64) bool { return math.Abs(x) <= t.sumepsilon }

// IsSumEQ reports |a-b| <= sumepsilon.
func (t *Tolerances) IsSumEQ(a, b float64) bool { return math.Abs(a-b) <= t.sumepsilon }

// IsSumLE reports a <= b up to sumepsilon.
func (t *Tolerances) IsSumLE(a, b float64) bool { return a-b <= t.sumepsilon }

// IsSumGT reports a > b by more than sumepsilon.
func (t *Tolerances) IsSumGT(a, b float64) bool { return a-b > t.sumepsilon }

// ---------- feasibility comparisons (relative above magnitude 1) ----------

// RelDiff returns (a-b)/max(|a|,|b|,1).
func RelDiff(a, b float64) float64 {
	quot := math.Max(math.Max(math.Abs(a), math.Abs(b)), 1.0)

	return (a - b) / quot
}

// IsFeasZero reports |x| <= feastol.
func (t *Tolerances) IsFeasZero(x float64) bool { return math.Abs(x) <= t.feastol }

// IsFeasEQ reports a = b up to the relative feasibility tolerance.
func (t *Tolerances) IsFeasEQ(a, b float64) bool { return math.Abs(RelDiff(a, b)) <= t.feastol }

// IsFeasLT reports a < b by more than the relative feasibility tolerance.
func (t *Tolerances) IsFeasLT(a, b float64) bool { return RelDiff(a, b) < -t.feastol }

// IsFeasLE reports a <= b up to the relative feasibility tolerance.
func (t *Tolerances) IsFeasLE(a, b float64) bool { return RelDiff(a, b) <= t.feastol }

// IsFeasGT reports a > b by more than the relative feasibility tolerance.
func (t *Tolerances) IsFeasGT(a, b float64) bool { return RelDiff(a, b) > t.feastol }

// IsFeasGE reports a >= b up to the relative feasibility tolerance.
func (t *Tolerances) IsFeasGE(a, b float64) bool { return RelDiff(a, b) >= -t.feastol }

// ---------- rounding ----------

// EpsFloor returns floor(x + eps).
func EpsFloor(x, eps float64) float64 { return math.Floor(x + eps) }

// EpsCeil returns ceil(x - eps).
func EpsCeil(x, eps float64) float64 { return math.Ceil(x - eps) }

// EpsFrac returns x - EpsFloor(x, eps); the result lies in [-eps, 1-eps).
func EpsFrac(x, eps float64) float64 { return x - EpsFloor(x, eps) }

// Floor rounds down with epsilon slack.
func (t *Tolerances) Floor(x float64) float64 { return EpsFloor(x, t.epsilon) }

// Ceil rounds up with epsilon slack.
func (t *Tolerances) Ceil(x float64) float64 { return EpsCeil(x, t.epsilon) }

// Frac returns the fractional part of x with epsilon slack.
func (t *Tolerances) Frac(x float64) float64 { return EpsFrac(x, t.epsilon) }

// IsIntegral reports whether x is integral up to epsilon.
func (t *Tolerances) IsIntegral(x float64) bool { return EpsFrac(x, t.epsilon) <= t.epsilon }

// FeasFloor rounds down with feasibility slack.
func (t *Tolerances) FeasFloor(x float64) float64 { return EpsFloor(x, t.feastol) }

// FeasCeil rounds up with feasibility slack.
func (t *Tolerances) FeasCeil(x float64) float64 { return EpsCeil(x, t.feastol) }

// IsFeasIntegral reports whether x is integral up to feastol.
func (t *Tolerances) IsFeasIntegral(x float64) bool { return EpsFrac(x, t.feastol) <= t.feastol }

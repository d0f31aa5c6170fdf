// SPDX-License-Identifier: MIT

package knapsack

import (
	"math"

	"github.com/katalvlaran/lvcuts/numerics"
)

// simpleScalars are tried before doubling in CalcIntegralScalar.
var simpleScalars = [...]float64{3, 5, 7, 9, 11, 13, 15, 17, 19}

// simpleDenominators are tried before the continued fraction expansion.
var simpleDenominators = [...]int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 11, 12, 13, 14, 15, 16, 17, 18, 19, 25}

// IsIntegralScalar reports whether s·v is integral within
// (mindelta, maxdelta], measured with the relative difference.
func IsIntegralScalar(v, s, mindelta, maxdelta float64) bool {
	sv := s * v

	return numerics.RelDiff(sv, math.Floor(sv)) <= maxdelta ||
		numerics.RelDiff(sv, math.Ceil(sv)) >= mindelta
}

// IntegralVal rounds s·v to the integer IsIntegralScalar accepted.
func IntegralVal(v, s, mindelta, maxdelta float64) int64 {
	sv := s * v
	if numerics.RelDiff(sv, math.Ceil(sv)) >= mindelta {
		return int64(math.Ceil(sv))
	}

	return int64(math.Floor(sv))
}

// CalcIntegralScalar returns a multiplier s ≤ maxscale such that s·vᵢ is
// integral within (mindelta, maxdelta] for every i.
//
// First 1/min|vᵢ| is repeatedly multiplied by small odd numbers or by two
// until every value is integral. If that exceeds maxscale, every value is
// converted into a fraction with denominator ≤ maxdnom and the result is
// lcm(denominators)/gcd(numerators).
func CalcIntegralScalar(vals []float64, mindelta, maxdelta float64, maxdnom int64, maxscale float64) (float64, bool) {
	minval := math.Inf(1)
	for _, v := range vals {
		if a := math.Abs(v); a > 0 && a < minval {
			minval = a
		}
	}
	if math.IsInf(minval, 1) {
		return 1, true
	}

	scale := 1 / minval
	scalable := scale <= maxscale
	for _, v := range vals {
		if !scalable {
			break
		}
		if v == 0 {
			continue
		}
		for scale <= maxscale && (math.Abs(v)*scale < 0.5 || !IsIntegralScalar(v, scale, mindelta, maxdelta)) {
			found := false
			for _, m := range simpleScalars {
				if IsIntegralScalar(v, scale*m, mindelta, maxdelta) {
					scale *= m
					found = true
					break
				}
			}
			if !found {
				scale *= 2
			}
		}
		scalable = scale <= maxscale
	}
	if scalable {
		return scale, true
	}

	var gcd, scm int64 = 0, 1
	for _, v := range vals {
		if v == 0 {
			continue
		}
		num, den, ok := toRational(v, mindelta, maxdelta, maxdnom)
		if !ok {
			return 0, false
		}
		if num == 0 {
			continue
		}
		if num < 0 {
			num = -num
		}
		if gcd == 0 {
			gcd, scm = num, den
		} else {
			gcd = greatestCommonDivisor(gcd, num)
			scm *= den / greatestCommonDivisor(scm, den)
		}
		if float64(scm)/float64(gcd) > maxscale {
			return 0, false
		}
	}
	if gcd == 0 {
		return 1, true
	}

	return float64(scm) / float64(gcd), true
}

// toRational finds num/den with den ≤ maxdnom and
// mindelta < v - num/den ≤ maxdelta.
func toRational(v, mindelta, maxdelta float64, maxdnom int64) (num, den int64, ok bool) {
	within := func(n, d int64) bool {
		diff := v - float64(n)/float64(d)
		return diff > mindelta && diff <= maxdelta
	}

	for _, d := range simpleDenominators {
		if d > maxdnom {
			break
		}
		n := int64(math.Floor(v*float64(d) + 0.5))
		if within(n, d) {
			return n, d, true
		}
	}

	// continued fraction convergents h/k of v
	x := v
	a := math.Floor(x)
	h0, h1 := int64(1), int64(a)
	k0, k1 := int64(0), int64(1)
	for k1 <= maxdnom {
		if within(h1, k1) {
			return h1, k1, true
		}
		frac := x - a
		if frac <= 1e-12 || math.Abs(float64(h1)) > 1e15 {
			break
		}
		x = 1 / frac
		a = math.Floor(x)
		ai := int64(a)
		h0, h1 = h1, ai*h1+h0
		k0, k1 = k1, ai*k1+k0
	}

	return 0, 0, false
}

func greatestCommonDivisor(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}

// SPDX-License-Identifier: MIT
// Package: lvcuts/numerics
//
// dd.go: double-double arithmetic.
//
// A DD value represents Hi+Lo with |Lo| <= ulp(Hi)/2. Sums use Knuth's
// two-sum, products use an FMA-based two-product. Results are
// renormalised after every operation.

package numerics

import "math"

// DD is a compensated double-double number.
type DD struct {
	Hi float64
	Lo float64
}

// DDFrom lifts a float64 into a DD.
func DDFrom(x float64) DD { return DD{Hi: x} }

// Float rounds x back to the nearest float64.
func (x DD) Float() float64 { return x.Hi + x.Lo }

// Neg returns -x.
func (x DD) Neg() DD { return DD{Hi: -x.Hi, Lo: -x.Lo} }

// Add returns x+y.
func (x DD) Add(y DD) DD {
	s, e := twoSum(x.Hi, y.Hi)
	e += x.Lo + y.Lo

	return quickTwoSum(s, e)
}

// AddFloat returns x+b.
func (x DD) AddFloat(b float64) DD {
	s, e := twoSum(x.Hi, b)
	e += x.Lo

	return quickTwoSum(s, e)
}

// Sub returns x-y.
func (x DD) Sub(y DD) DD { return x.Add(y.Neg()) }

// SubFloat returns x-b.
func (x DD) SubFloat(b float64) DD { return x.AddFloat(-b) }

// Mul returns x·y.
func (x DD) Mul(y DD) DD {
	p, e := twoProd(x.Hi, y.Hi)
	e += x.Hi*y.Lo + x.Lo*y.Hi

	return quickTwoSum(p, e)
}

// MulFloat returns x·b.
func (x DD) MulFloat(b float64) DD {
	p, e := twoProd(x.Hi, b)
	e += x.Lo * b

	return quickTwoSum(p, e)
}

// ProdDD returns the exact product a·b as a DD.
func ProdDD(a, b float64) DD {
	p, e := twoProd(a, b)

	return DD{Hi: p, Lo: e}
}

func twoSum(a, b float64) (s, e float64) {
	s = a + b
	bb := s - a
	e = (a - (s - bb)) + (b - bb)

	return s, e
}

func quickTwoSum(a, b float64) DD {
	s := a + b
	e := b - (s - a)

	return DD{Hi: s, Lo: e}
}

func twoProd(a, b float64) (p, e float64) {
	p = a * b
	e = math.FMA(a, b, -p)

	return p, e
}

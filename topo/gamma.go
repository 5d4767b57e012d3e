// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import "math"

// Lgamma returns ln(Gamma(x)) for x > 0, via the standard library.
// This is the "g34" normalisation used by Default(): g34 = exp(lgamma(0.75)).
func Lgamma(x float64) float64 {
	v, _ := math.Lgamma(x)
	return v
}

// GammaQ returns the regularised upper incomplete gamma function
// Q(a,x) = Gamma(a,x)/Gamma(a), evaluated by a continued-fraction or
// series expansion depending on x relative to a+1 (Numerical Recipes
// §6.2). The screening kernels call it only with a=0.75, but it is
// implemented for general a>0, x>=0 since the original source treats
// it as a free-standing special function, not one hardcoded to 0.75.
//
// This is a stdlib-backed implementation. The field and grad drivers
// pass this function to the kernels through kernel.ThetaParams.GammaQ;
// neither Engine nor Topology offers a way for a host to supply a
// different one.
func GammaQ(a, x float64) float64 {
	if x < 0 || a <= 0 {
		return 0
	}
	if x == 0 {
		return 1
	}
	if x < a+1 {
		return 1 - gser(a, x)
	}
	return gcf(a, x)
}

// gser computes P(a,x) by its series representation.
func gser(a, x float64) float64 {
	const itmax = 200
	const eps = 3e-16
	gln := Lgamma(a)
	if x <= 0 {
		return 0
	}
	ap := a
	sum := 1.0 / a
	del := sum
	for n := 1; n <= itmax; n++ {
		ap++
		del *= x / ap
		sum += del
		if math.Abs(del) < math.Abs(sum)*eps {
			break
		}
	}
	return sum * math.Exp(-x+a*math.Log(x)-gln)
}

// gcf computes Q(a,x) by its continued-fraction representation.
func gcf(a, x float64) float64 {
	const itmax = 200
	const eps = 3e-16
	const fpmin = 1e-300
	gln := Lgamma(a)
	b := x + 1 - a
	c := 1 / fpmin
	d := 1 / b
	h := d
	for i := 1; i <= itmax; i++ {
		an := -float64(i) * (float64(i) - a)
		b += 2
		d = an*d + b
		if math.Abs(d) < fpmin {
			d = fpmin
		}
		c = b + an/c
		if math.Abs(c) < fpmin {
			c = fpmin
		}
		d = 1 / d
		del := d * c
		h *= del
		if math.Abs(del-1) < eps {
			break
		}
	}
	return math.Exp(-x+a*math.Log(x)-gln) * h
}

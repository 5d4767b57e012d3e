// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package screen implements the Thole-damped and bare-Coulomb
// screening functions s0..s3 the TTM4 pair kernels (package kernel)
// are built from. Formulas are transcribed from
// CalcPermanentElecFieldWithPolfac{Non}Zero,
// CalcDipoleElecFieldWithPolfac{Non}Zero and
// CalcElecFieldGradsWithPolfac{Non}Zero in the source this engine is
// grounded on (see DESIGN.md).
//
// In every exported function, r is the pair separation, a is the
// relevant Thole damping exponent (aCC, aCD or aDD), and Asqsq is the
// fourth power of the Thole radius A = (polfac_i*polfac_j)^(1/6).
// GammaQ is the regularised upper incomplete gamma function, supplied
// by the caller (see topo.GammaQ) so the dependency flows one way:
// screen never imports topo.
package screen

import "math"

// Field returns (s0, s1r3) for the permanent-field kernel: the
// charge-field screening s0 (used for the potential) and s1/r^2 (the
// factor that multiplies the separation vector rij to give the field). a14 is a^0.25 and g34 is exp(lgamma(0.75)) (topo.Constants.G34).
func Field(r, a, a14, g34, Asqsq float64, gammaQ func(a, x float64) float64) (s0, s1r3 float64) {
	r2 := r * r
	invr := 1 / r
	u := a * r2 * r2 / Asqsq
	s1 := invr - math.Exp(-u)*invr
	s0 = s1 + a14/math.Pow(Asqsq, 0.25)*g34*gammaQ(0.75, u)
	s1r3 = s1 / r2
	return
}

// FieldBare returns the undamped (bare Coulomb) analogue of Field:
// s0 = 1/r, s1r3 = 1/r^3.
func FieldBare(r float64) (s0, s1r3 float64) {
	invr := 1 / r
	return invr, invr * invr * invr
}

// Dipole returns (s1, s2r5_3) for the dipole-field kernel.
func Dipole(r, a, Asqsq float64) (s1, s2r5_3 float64) {
	r2 := r * r
	invr := 1 / r
	u4 := r2 * r2 / Asqsq
	u := a * u4
	eu := math.Exp(-u)
	s1 = invr - eu*invr
	s1r3 := s1 / r2
	s2r5_3 = (3*s1r3 - 4*a*u4*eu/(r2*r)) / r2
	return
}

// DipoleBare returns the undamped analogue of Dipole:
// s1 = 1/r, s2r5_3 = 3/r^5.
func DipoleBare(r float64) (s1, s2r5_3 float64) {
	invr := 1 / r
	s1 = invr
	s2r5_3 = 3 * invr * invr * invr * invr * invr
	return
}

// Grad returns (s2r5_3, s3r7_15) for one damping exponent a, as used
// twice inside the gradient kernel: once with a=aDD for the
// dipole-dipole tensor, once with a=aCD for the charge-dipole tensor.
func Grad(r, a, Asqsq float64) (s2r5_3, s3r7_15 float64) {
	r2 := r * r
	invr := 1 / r
	u4 := r2 * r2 / Asqsq
	u := a * u4
	eu := math.Exp(-u)
	s1 := invr - eu*invr
	s1r3 := s1 / r2
	s2r5_3 = (3*s1r3 - 4*a*u4*eu/(r2*r)) / r2
	s3r7_15 = (5*s2r5_3 - 4*a*u4*eu*(4*a*u4-1)/(r2*r2*r)) / r2
	return
}

// GradBare returns the undamped analogue of Grad:
// s2r5_3 = 3/r^5, s3r7_15 = 15/r^7.
func GradBare(r float64) (s2r5_3, s3r7_15 float64) {
	invr := 1 / r
	r5 := invr * invr * invr * invr * invr
	s2r5_3 = 3 * r5
	s3r7_15 = 15 * r5 * invr * invr
	return
}

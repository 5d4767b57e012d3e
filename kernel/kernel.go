// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kernel implements the three pair interaction kernels of the
// TTM4 electrostatics core: the permanent field, the dipole field, and
// the combined gradient-and-field kernel, each dispatching between the
// Thole-damped and bare-Coulomb screening regimes. Every kernel here
// operates on a single site pair for a single pair of monomers; the
// field and grad packages are responsible for looping over monomers
// and site pairs and for the thread-parallel reduction described in
// the engine's concurrency model.
package kernel

import "math"

// Vec3 is a Cartesian 3-vector.
type Vec3 = [3]float64

// sub returns a-b.
func sub(a, b Vec3) Vec3 { return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

// norm returns the Euclidean length of v.
func norm(v Vec3) float64 { return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2]) }

// dot returns a.b.
func dot(a, b Vec3) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

// scale returns s*v.
func scale(s float64, v Vec3) Vec3 { return Vec3{s * v[0], s * v[1], s * v[2]} }

// GammaQFunc is the regularised upper incomplete gamma function
// (topo.GammaQ), threaded through so this package never imports topo.
type GammaQFunc func(a, x float64) float64

// ThetaParams bundles the Thole damping parameters a pair of sites
// shares for one interaction kernel evaluation. Damped is false when
// the pair's polarizability-factor product is at or below
// topo.Constants.Eps, in which case every kernel below falls back to
// its bare-Coulomb branch and the screening exponents are unused.
type ThetaParams struct {
	Damped bool
	Asqsq  float64 // (polfac_i*polfac_j)^(1/6), raised to the 4th power
	ACC    float64
	ACD    float64
	ADD    float64
	G34    float64
	GammaQ GammaQFunc
}

// PermanentFieldResult holds one pair's contribution to the permanent
// electrostatic field and potential on both of its sites.
type PermanentFieldResult struct {
	PhiI, PhiJ float64
	EfqI, EfqJ Vec3
}

// PermanentField computes the charge-charge screened Coulomb
// potential and field contributions between site i (charge chgI,
// position xyzI) and site j (charge chgJ, position xyzJ), grounded on
// CalcPermanentElecFieldWithPolfac{Non}Zero.
func PermanentField(xyzI, xyzJ Vec3, chgI, chgJ float64, p ThetaParams) PermanentFieldResult {
	rij := sub(xyzI, xyzJ)
	r := norm(rij)

	var s0, s1r3 float64
	if p.Damped {
		a14 := math.Pow(p.ACC, 0.25)
		s0, s1r3 = fieldDamped(r, p.ACC, a14, p.G34, p.Asqsq, p.GammaQ)
	} else {
		s0, s1r3 = fieldBare(r)
	}

	return PermanentFieldResult{
		PhiI: chgJ * s0,
		PhiJ: chgI * s0,
		EfqI: scale(chgJ*s1r3, rij),
		EfqJ: scale(-chgI*s1r3, rij),
	}
}

// DipoleField computes the dipole-field contribution on sites i and j
// from each other's induced dipole, grounded on
// CalcDipoleElecFieldWithPolfac{Non}Zero. aDD is the intramonomer (via
// topo.Topology.GetAdd) or fixed intermonomer (0.055) damping exponent
// for this pair.
func DipoleField(xyzI, xyzJ Vec3, muI, muJ Vec3, aDD float64, p ThetaParams) (EfdI, EfdJ Vec3) {
	rij := sub(xyzI, xyzJ)
	r := norm(rij)

	var s1, s2r5_3 float64
	if p.Damped {
		s1, s2r5_3 = dipoleDamped(r, aDD, p.Asqsq)
	} else {
		s1, s2r5_3 = dipoleBare(r)
	}
	s1r3 := s1 / (r * r)

	t := dipoleTensor(rij, s2r5_3, s1r3)
	EfdI = applyTensor(t, muJ)
	EfdJ = applyTensor(t, muI)
	return
}

// GradResult holds one pair's contribution to the site gradients and,
// for the charge-dipole term only, the potential update on both sites.
type GradResult struct {
	GradI, GradJ Vec3
	PhiI, PhiJ   float64 // charge-dipole potential contribution; zero when excluded
}

// GradAndField computes, for one site pair, the dipole-dipole gradient
// (always applied, regardless of exclusion — see SPEC_FULL.md's
// supplemented-features note resolving the exclusion open question)
// and the charge-dipole gradient plus potential update (suppressed
// when excluded is true), grounded on
// CalcElecFieldGradsWithPolfac{Non}Zero.
func GradAndField(xyzI, xyzJ Vec3, chgI, chgJ float64, muI, muJ Vec3, aDD float64, excluded bool, p ThetaParams) GradResult {
	rij := sub(xyzI, xyzJ)
	r := norm(rij)

	var s2dd, s3dd float64
	if p.Damped {
		s2dd, s3dd = gradDamped(r, aDD, p.Asqsq)
	} else {
		s2dd, s3dd = gradBare(r)
	}
	t3 := ddTensor(rij, s3dd, s2dd)

	gradDD := contractT3(t3, muI, muJ)

	var res GradResult
	res.GradI = gradDD
	res.GradJ = scale(-1, gradDD)

	if excluded {
		return res
	}

	var s2cd, _ float64
	if p.Damped {
		s2cd, _ = gradDamped(r, p.ACD, p.Asqsq)
	} else {
		s2cd, _ = gradBare(r)
	}
	var s1cd float64
	if p.Damped {
		s1cd, _ = dipoleDamped(r, p.ACD, p.Asqsq)
	} else {
		s1cd, _ = dipoleBare(r)
	}
	s1r3cd := s1cd / (r * r)
	t2 := dipoleTensor(rij, s2cd, s1r3cd)

	coeff := Vec3{
		chgJ*muI[0] - chgI*muJ[0],
		chgJ*muI[1] - chgI*muJ[1],
		chgJ*muI[2] - chgI*muJ[2],
	}
	gradCD := applyTensor(t2, coeff)
	res.GradI = Vec3{res.GradI[0] + gradCD[0], res.GradI[1] + gradCD[1], res.GradI[2] + gradCD[2]}
	res.GradJ = Vec3{res.GradJ[0] - gradCD[0], res.GradJ[1] - gradCD[1], res.GradJ[2] - gradCD[2]}

	t1 := scale(s1r3cd, rij)
	res.PhiI = dot(t1, muJ)
	res.PhiJ = -dot(t1, muI)
	return res
}

// --- screening, inlined so kernel has no cyclic dependency on screen ---

func fieldDamped(r, a, a14, g34, Asqsq float64, gammaQ GammaQFunc) (s0, s1r3 float64) {
	r2 := r * r
	invr := 1 / r
	u := a * r2 * r2 / Asqsq
	s1 := invr - math.Exp(-u)*invr
	s0 = s1 + a14/math.Pow(Asqsq, 0.25)*g34*gammaQ(0.75, u)
	s1r3 = s1 / r2
	return
}

func fieldBare(r float64) (s0, s1r3 float64) {
	invr := 1 / r
	return invr, invr * invr * invr
}

func dipoleDamped(r, a, Asqsq float64) (s1, s2r5_3 float64) {
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

func dipoleBare(r float64) (s1, s2r5_3 float64) {
	invr := 1 / r
	s1 = invr
	s2r5_3 = 3 * invr * invr * invr * invr * invr
	return
}

func gradDamped(r, a, Asqsq float64) (s2r5_3, s3r7_15 float64) {
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

func gradBare(r float64) (s2r5_3, s3r7_15 float64) {
	invr := 1 / r
	r5 := invr * invr * invr * invr * invr
	s2r5_3 = 3 * r5
	s3r7_15 = 15 * r5 * invr * invr
	return
}

// dipoleTensor builds the symmetric rank-2 Thole dipole-field tensor
// T_ab = s2r5_3 * rij_a*rij_b - s1r3 * delta_ab.
type tensor2 struct{ xx, xy, xz, yy, yz, zz float64 }

func dipoleTensor(rij Vec3, s2r5_3, s1r3 float64) tensor2 {
	return tensor2{
		xx: s2r5_3*rij[0]*rij[0] - s1r3,
		xy: s2r5_3 * rij[0] * rij[1],
		xz: s2r5_3 * rij[0] * rij[2],
		yy: s2r5_3*rij[1]*rij[1] - s1r3,
		yz: s2r5_3 * rij[1] * rij[2],
		zz: s2r5_3*rij[2]*rij[2] - s1r3,
	}
}

func applyTensor(t tensor2, v Vec3) Vec3 {
	return Vec3{
		t.xx*v[0] + t.xy*v[1] + t.xz*v[2],
		t.xy*v[0] + t.yy*v[1] + t.yz*v[2],
		t.xz*v[0] + t.yz*v[1] + t.zz*v[2],
	}
}

// tensor3 is the symmetric rank-3 Thole tensor
// T_abc = s3r7_15 * rij_a*rij_b*rij_c - s2r5_3 * (delta_ab*rij_c + delta_bc*rij_a + delta_ca*rij_b),
// stored as its 10 independent xxx..zzz components.
type tensor3 struct {
	xxx, xxy, xxz, xyy, xyz, xzz, yyy, yyz, yzz, zzz float64
}

func ddTensor(rij Vec3, s3r7_15, s2r5_3 float64) tensor3 {
	x, y, z := rij[0], rij[1], rij[2]
	return tensor3{
		xxx: s3r7_15*x*x*x - 3*s2r5_3*x,
		xxy: s3r7_15*x*x*y - s2r5_3*y,
		xxz: s3r7_15*x*x*z - s2r5_3*z,
		xyy: s3r7_15*x*y*y - s2r5_3*x,
		xyz: s3r7_15 * x * y * z,
		xzz: s3r7_15*x*z*z - s2r5_3*x,
		yyy: s3r7_15*y*y*y - 3*s2r5_3*y,
		yyz: s3r7_15*y*y*z - s2r5_3*z,
		yzz: s3r7_15*y*z*z - s2r5_3*y,
		zzz: s3r7_15*z*z*z - 3*s2r5_3*z,
	}
}

// contractT3 returns grad_a = sum_bc T_abc * muI_b * muJ_c.
func contractT3(t tensor3, muI, muJ Vec3) Vec3 {
	x1, y1, z1 := muI[0], muI[1], muI[2]
	x2, y2, z2 := muJ[0], muJ[1], muJ[2]
	gx := t.xxx*x1*x2 + t.xxy*(x1*y2+y1*x2) + t.xxz*(x1*z2+z1*x2) +
		t.xyy*y1*y2 + t.xyz*(y1*z2+z1*y2) + t.xzz*z1*z2
	gy := t.xxy*x1*x2 + t.xyy*(x1*y2+y1*x2) + t.xyz*(x1*z2+z1*x2) +
		t.yyy*y1*y2 + t.yyz*(y1*z2+z1*y2) + t.yzz*z1*z2
	gz := t.xxz*x1*x2 + t.xyz*(x1*y2+y1*x2) + t.xzz*(x1*z2+z1*x2) +
		t.yyz*y1*y2 + t.yzz*(y1*z2+z1*y2) + t.zzz*z1*z2
	return Vec3{gx, gy, gz}
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grad drives the analytic gradient kernel over the whole
// system: the charge-charge self term, a serial exclusion-aware
// intramonomer pass, a goroutine-parallel intermonomer pass, and the
// two topology callbacks (virtual-site redistribution and
// charge-derivative force) — grounded on CalculateGradients.
package grad

import (
	"math"
	"sync"

	"github.com/cpmech/ttm4/field"
	"github.com/cpmech/ttm4/kernel"
	"github.com/cpmech/ttm4/layout"
	"github.com/cpmech/ttm4/topo"
)

// System is an alias of field.System: the gradient kernel reads the
// same core-layout arrays (XYZ, Mu, Chg, Polfac) the permanent/dipole
// field drivers do.
type System = field.System

func coreVec3(v []float64, firstCrd, nmon, i, m int) kernel.Vec3 {
	off := firstCrd + 3*i*nmon + m
	return kernel.Vec3{v[off], v[off+nmon], v[off+2*nmon]}
}

func addCoreVec3(v []float64, firstCrd, nmon, i, m int, add kernel.Vec3) {
	off := firstCrd + 3*i*nmon + m
	v[off] += add[0]
	v[off+nmon] += add[1]
	v[off+2*nmon] += add[2]
}

func polfacOf(sys System, b layout.Block, i int) float64 {
	return sys.Polfac[b.FirstSiteCore+i*b.Type.NMon]
}

// Accumulate computes the core-layout gradient of the total
// electrostatic energy with respect to every site's position, and the
// charge-dipole contribution to the potential phi (added in place onto
// the permanent-field phi already computed by field.Permanent), then
// applies each monomer type's virtual-site gradient redistribution and
// charge-derivative force via top. It returns the final core-layout
// gradient.
//
// Efd (the converged dipole field) is accepted for parity with the
// driver's data flow but is not read here: the analytic gradient needs
// the per-pair rank-2/rank-3 tensors, not the summed field, so
// kernel.GradAndField recomputes each pair's dipole-dipole interaction
// directly from mu — exactly as CalculateGradients does, which never
// takes the field as an input either.
func Accumulate(sys System, c topo.Constants, top topo.Topology, phi, Efq, Efd, mu []float64) []float64 {
	n := sys.Spec.NSites()
	grad := make([]float64, 3*n)

	blocks := sys.Spec.Blocks()

	// charge-charge self term: grad_i -= chg_i * Efq_i
	for _, b := range blocks {
		ns, nmon := b.Type.NSites, b.Type.NMon
		for i := 0; i < ns; i++ {
			for m := 0; m < nmon; m++ {
				chg := sys.Chg[b.FirstSiteCore+i*nmon+m]
				ef := coreVec3(Efq, b.FirstCrdCore, nmon, i, m)
				addCoreVec3(grad, b.FirstCrdCore, nmon, i, m, kernel.Vec3{-chg * ef[0], -chg * ef[1], -chg * ef[2]})
			}
		}
	}

	// intramonomer dipole-dipole / charge-dipole pairs: serial
	for _, b := range blocks {
		ns, nmon := b.Type.NSites, b.Type.NMon
		exc := top.GetExcluded(b.Type.ID)
		for i := 0; i < ns-1; i++ {
			for j := i + 1; j < ns; j++ {
				is12 := topo.IsExcluded(exc.Exc12, i, j)
				is13 := topo.IsExcluded(exc.Exc13, i, j)
				is14 := topo.IsExcluded(exc.Exc14, i, j)
				excluded := is12 || is13 || is14
				aDD := top.GetAdd(is12, is13, is14, b.Type.ID)
				p := thetaParams(c, polfacOf(sys, b, i), polfacOf(sys, b, j))
				for m := 0; m < nmon; m++ {
					xi := coreVec3(sys.XYZ, b.FirstCrdCore, nmon, i, m)
					xj := coreVec3(sys.XYZ, b.FirstCrdCore, nmon, j, m)
					chgI := sys.Chg[b.FirstSiteCore+i*nmon+m]
					chgJ := sys.Chg[b.FirstSiteCore+j*nmon+m]
					muI := coreVec3(mu, b.FirstCrdCore, nmon, i, m)
					muJ := coreVec3(mu, b.FirstCrdCore, nmon, j, m)
					r := kernel.GradAndField(xi, xj, chgI, chgJ, muI, muJ, aDD, excluded, p)
					addCoreVec3(grad, b.FirstCrdCore, nmon, i, m, r.GradI)
					addCoreVec3(grad, b.FirstCrdCore, nmon, j, m, r.GradJ)
					phi[b.FirstSiteCore+i*nmon+m] += r.PhiI
					phi[b.FirstSiteCore+j*nmon+m] += r.PhiJ
				}
			}
		}
	}

	// intermonomer: goroutine-parallel, fixed aDD = c.ADD, never excluded
	for t1 := range blocks {
		for t2 := t1; t2 < len(blocks); t2++ {
			intermonomer(sys, c, blocks[t1], blocks[t2], t1 == t2, mu, grad, phi)
		}
	}

	// revert to user layout and redistribute virtual-site gradients / charge-derivative forces
	userGrad := layout.UnreorderVec3(sys.Spec, grad)
	userPhi := layout.UnreorderScalar(sys.Spec, phi)
	for _, b := range blocks {
		nmon := b.Type.NMon
		top.RedistributeVirtGrads2Real(b.Type.ID, nmon, b.FirstCrdCore, userGrad)
		top.ChargeDerivativeForce(b.Type.ID, nmon, b.FirstCrdCore, b.FirstSiteCore, userPhi, userGrad, make([]float64, b.Type.NSites*nmon))
	}
	return layout.ReorderVec3(sys.Spec, userGrad)
}

func thetaParams(c topo.Constants, polfacI, polfacJ float64) kernel.ThetaParams {
	A := polfacI * polfacJ
	if A <= c.Eps {
		return kernel.ThetaParams{Damped: false}
	}
	a := math.Pow(A, 1.0/6.0)
	return kernel.ThetaParams{
		Damped: true,
		Asqsq:  a * a * a * a,
		ACC:    c.ACC,
		ACD:    c.ACD,
		ADD:    c.ADD,
		G34:    c.G34,
		GammaQ: topo.GammaQ,
	}
}

func intermonomer(sys System, c topo.Constants, b1, b2 layout.Block, same bool, mu, grad, phi []float64) {
	ns1, nmon1 := b1.Type.NSites, b1.Type.NMon
	ns2, nmon2 := b2.Type.NSites, b2.Type.NMon

	nw := numWorkers()
	if nw > nmon1 && nmon1 > 0 {
		nw = nmon1
	}
	type partial struct {
		grad1, grad2 []float64
		phi1, phi2   []float64
	}
	parts := make([]partial, nw)
	for w := range parts {
		parts[w] = partial{
			grad1: make([]float64, 3*ns1*nmon1), grad2: make([]float64, 3*ns2*nmon2),
			phi1: make([]float64, ns1*nmon1), phi2: make([]float64, ns2*nmon2),
		}
	}

	jobs := make(chan int, nmon1)
	for m1 := 0; m1 < nmon1; m1++ {
		jobs <- m1
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < nw; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			pt := &parts[w]
			for m1 := range jobs {
				m2init := 0
				if same {
					m2init = m1 + 1
				}
				for i := 0; i < ns1; i++ {
					xi := coreVec3(sys.XYZ, b1.FirstCrdCore, nmon1, i, m1)
					chgI := sys.Chg[b1.FirstSiteCore+i*nmon1+m1]
					muI := coreVec3(mu, b1.FirstCrdCore, nmon1, i, m1)
					for j := 0; j < ns2; j++ {
						for m2 := m2init; m2 < nmon2; m2++ {
							xj := coreVec3(sys.XYZ, b2.FirstCrdCore, nmon2, j, m2)
							chgJ := sys.Chg[b2.FirstSiteCore+j*nmon2+m2]
							muJ := coreVec3(mu, b2.FirstCrdCore, nmon2, j, m2)
							p := thetaParams(c, polfacOf(sys, b1, i), polfacOf(sys, b2, j))
							r := kernel.GradAndField(xi, xj, chgI, chgJ, muI, muJ, c.ADD, false, p)
							addCoreVec3(pt.grad1, 0, nmon1, i, m1, r.GradI)
							addCoreVec3(pt.grad2, 0, nmon2, j, m2, r.GradJ)
							pt.phi1[i*nmon1+m1] += r.PhiI
							pt.phi2[j*nmon2+m2] += r.PhiJ
						}
					}
				}
			}
		}(w)
	}
	wg.Wait()

	for _, pt := range parts {
		for k, v := range pt.grad1 {
			grad[b1.FirstCrdCore+k] += v
		}
		for k, v := range pt.grad2 {
			grad[b2.FirstCrdCore+k] += v
		}
		for k, v := range pt.phi1 {
			phi[b1.FirstSiteCore+k] += v
		}
		for k, v := range pt.phi2 {
			phi[b2.FirstSiteCore+k] += v
		}
	}
}

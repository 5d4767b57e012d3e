// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package field drives the permanent-field and dipole-field pair
// kernels over the whole system: a serial intramonomer phase per
// monomer type (exclusion-aware), followed by a goroutine-parallel
// intermonomer phase with private per-worker accumulators reduced
// after the parallel region, grounded on CalculatePermanentElecField
// and DipolesIterativeIteration's field-recomputation phase.
package field

import (
	"math"
	"sync"

	"github.com/cpmech/ttm4/kernel"
	"github.com/cpmech/ttm4/layout"
	"github.com/cpmech/ttm4/topo"
)

// System bundles the core-layout arrays the field drivers read. XYZ,
// Mu are vec3 core-layout arrays; Chg, Polfac are scalar core-layout
// arrays. Polfac is assumed constant across the monomers of a type
// (the source this is grounded on carries the same "pol not site [as
// in, not monomer] dependent" assumption), so only the first
// monomer's value is read for each site.
type System struct {
	Spec   layout.Spec
	XYZ    []float64
	Mu     []float64
	Chg    []float64
	Polfac []float64
}

// coreVec3 reads the 3-vector stored at site i, monomer m of a
// nmon-monomer, ns-site block starting at firstCrd, core layout.
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
	return sys.Polfac[b.FirstSiteCore+i*b.Type.NMon] // first monomer's value (m=0); shared across monomers by assumption
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

// numWorkers returns the goroutine fan-out for an intermonomer pass.
// GOMAXPROCS mirrors the source's omp_get_num_threads() "number of
// threads visible in the parallel region" choice.
func numWorkers() int {
	n := runtimeNumCPU()
	if n < 1 {
		n = 1
	}
	return n
}

// Permanent computes the permanent electrostatic potential (phi) and
// field (Efq), both in core layout, for the whole system. top is
// consulted once per monomer type for its 1-2/1-3/1-4 exclusion sets;
// an excluded charge-charge pair contributes no permanent field
// interaction at all, grounded on CalculatePermanentElecField's
// `if (is12 || is13 || is14) continue;` skip.
func Permanent(sys System, c topo.Constants, top topo.Topology) (phi, Efq []float64) {
	n := sys.Spec.NSites()
	phi = make([]float64, n)
	Efq = make([]float64, 3*n)

	blocks := sys.Spec.Blocks()

	// intramonomer phase: serial, single accumulator
	for _, b := range blocks {
		ns, nmon := b.Type.NSites, b.Type.NMon
		exc := top.GetExcluded(b.Type.ID)
		for i := 0; i < ns-1; i++ {
			for j := i + 1; j < ns; j++ {
				is12 := topo.IsExcluded(exc.Exc12, i, j)
				is13 := topo.IsExcluded(exc.Exc13, i, j)
				is14 := topo.IsExcluded(exc.Exc14, i, j)
				if is12 || is13 || is14 {
					continue
				}
				p := thetaParams(c, polfacOf(sys, b, i), polfacOf(sys, b, j))
				for m := 0; m < nmon; m++ {
					xi := coreVec3(sys.XYZ, b.FirstCrdCore, nmon, i, m)
					xj := coreVec3(sys.XYZ, b.FirstCrdCore, nmon, j, m)
					chgI, chgJ := sys.Chg[b.FirstSiteCore+i*nmon+m], sys.Chg[b.FirstSiteCore+j*nmon+m]
					r := kernel.PermanentField(xi, xj, chgI, chgJ, p)
					phi[b.FirstSiteCore+i*nmon+m] += r.PhiI
					phi[b.FirstSiteCore+j*nmon+m] += r.PhiJ
					addCoreVec3(Efq, b.FirstCrdCore, nmon, i, m, r.EfqI)
					addCoreVec3(Efq, b.FirstCrdCore, nmon, j, m, r.EfqJ)
				}
			}
		}
	}

	// intermonomer phase: goroutine-parallel, private accumulators, serial reduction
	for t1 := range blocks {
		for t2 := t1; t2 < len(blocks); t2++ {
			permanentIntermonomer(sys, c, blocks[t1], blocks[t2], t1 == t2, phi, Efq)
		}
	}
	return
}

// permanentIntermonomer runs the nmon1 x nmon2 monomer-pair double
// loop, parallel over the outer (m1) index with per-goroutine private
// phi/Efq accumulators sized like the two blocks' own core-layout
// slices, reduced into the shared phi/Efq once every goroutine has
// finished — grounded on CalculatePermanentElecField's
// #pragma omp parallel for schedule(dynamic) phase.
func permanentIntermonomer(sys System, c topo.Constants, b1, b2 layout.Block, same bool, phi, Efq []float64) {
	ns1, nmon1 := b1.Type.NSites, b1.Type.NMon
	ns2, nmon2 := b2.Type.NSites, b2.Type.NMon

	nw := numWorkers()
	if nw > nmon1 && nmon1 > 0 {
		nw = nmon1
	}
	type partial struct {
		phi1, phi2 []float64
		efq1, efq2 []float64
	}
	parts := make([]partial, nw)
	for w := range parts {
		parts[w] = partial{
			phi1: make([]float64, ns1*nmon1), phi2: make([]float64, ns2*nmon2),
			efq1: make([]float64, 3*ns1*nmon1), efq2: make([]float64, 3*ns2*nmon2),
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
					for j := 0; j < ns2; j++ {
						for m2 := m2init; m2 < nmon2; m2++ {
							xj := coreVec3(sys.XYZ, b2.FirstCrdCore, nmon2, j, m2)
							chgJ := sys.Chg[b2.FirstSiteCore+j*nmon2+m2]
							p := thetaParams(c, polfacOf(sys, b1, i), polfacOf(sys, b2, j))
							r := kernel.PermanentField(xi, xj, chgI, chgJ, p)
							pt.phi1[i*nmon1+m1] += r.PhiI
							pt.phi2[j*nmon2+m2] += r.PhiJ
							addCoreVec3(pt.efq1, 0, nmon1, i, m1, r.EfqI)
							addCoreVec3(pt.efq2, 0, nmon2, j, m2, r.EfqJ)
						}
					}
				}
			}
		}(w)
	}
	wg.Wait()

	for _, pt := range parts {
		for k, v := range pt.phi1 {
			phi[b1.FirstSiteCore+k] += v
		}
		for k, v := range pt.phi2 {
			phi[b2.FirstSiteCore+k] += v
		}
		for k, v := range pt.efq1 {
			Efq[b1.FirstCrdCore+k] += v
		}
		for k, v := range pt.efq2 {
			Efq[b2.FirstCrdCore+k] += v
		}
	}
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"sync"

	"github.com/cpmech/ttm4/kernel"
	"github.com/cpmech/ttm4/layout"
	"github.com/cpmech/ttm4/topo"
)

// Dipole evaluates the dipole field Efd (core layout) produced by the
// current induced dipoles mu, grounded on DipolesIterativeIteration's
// field-recomputation step. Unlike Permanent, no pair is skipped here:
// every intramonomer pair always interacts through topo.Topology's
// GetAdd-selected damping exponent (exclusion only ever reduces aDD,
// it never removes the interaction — see SPEC_FULL.md).
func Dipole(sys System, c topo.Constants, top topo.Topology) (Efd []float64) {
	n := sys.Spec.NSites()
	Efd = make([]float64, 3*n)

	blocks := sys.Spec.Blocks()

	// intramonomer: serial
	for _, b := range blocks {
		ns, nmon := b.Type.NSites, b.Type.NMon
		exc := top.GetExcluded(b.Type.ID)
		for i := 0; i < ns-1; i++ {
			for j := i + 1; j < ns; j++ {
				is12 := topo.IsExcluded(exc.Exc12, i, j)
				is13 := topo.IsExcluded(exc.Exc13, i, j)
				is14 := topo.IsExcluded(exc.Exc14, i, j)
				aDD := top.GetAdd(is12, is13, is14, b.Type.ID)
				p := thetaParams(c, polfacOf(sys, b, i), polfacOf(sys, b, j))
				for m := 0; m < nmon; m++ {
					xi := coreVec3(sys.XYZ, b.FirstCrdCore, nmon, i, m)
					xj := coreVec3(sys.XYZ, b.FirstCrdCore, nmon, j, m)
					muI := coreVec3(sys.Mu, b.FirstCrdCore, nmon, i, m)
					muJ := coreVec3(sys.Mu, b.FirstCrdCore, nmon, j, m)
					efdI, efdJ := kernel.DipoleField(xi, xj, muI, muJ, aDD, p)
					addCoreVec3(Efd, b.FirstCrdCore, nmon, i, m, efdI)
					addCoreVec3(Efd, b.FirstCrdCore, nmon, j, m, efdJ)
				}
			}
		}
	}

	// intermonomer: goroutine-parallel, fixed aDD = c.ADD
	for t1 := range blocks {
		for t2 := t1; t2 < len(blocks); t2++ {
			dipoleIntermonomer(sys, c, blocks[t1], blocks[t2], t1 == t2, Efd)
		}
	}
	return
}

func dipoleIntermonomer(sys System, c topo.Constants, b1, b2 layout.Block, same bool, Efd []float64) {
	ns1, nmon1 := b1.Type.NSites, b1.Type.NMon
	ns2, nmon2 := b2.Type.NSites, b2.Type.NMon

	nw := numWorkers()
	if nw > nmon1 && nmon1 > 0 {
		nw = nmon1
	}
	efd1Parts := make([][]float64, nw)
	efd2Parts := make([][]float64, nw)
	for w := 0; w < nw; w++ {
		efd1Parts[w] = make([]float64, 3*ns1*nmon1)
		efd2Parts[w] = make([]float64, 3*ns2*nmon2)
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
			e1, e2 := efd1Parts[w], efd2Parts[w]
			for m1 := range jobs {
				m2init := 0
				if same {
					m2init = m1 + 1
				}
				for i := 0; i < ns1; i++ {
					xi := coreVec3(sys.XYZ, b1.FirstCrdCore, nmon1, i, m1)
					muI := coreVec3(sys.Mu, b1.FirstCrdCore, nmon1, i, m1)
					for j := 0; j < ns2; j++ {
						for m2 := m2init; m2 < nmon2; m2++ {
							xj := coreVec3(sys.XYZ, b2.FirstCrdCore, nmon2, j, m2)
							muJ := coreVec3(sys.Mu, b2.FirstCrdCore, nmon2, j, m2)
							p := thetaParams(c, polfacOf(sys, b1, i), polfacOf(sys, b2, j))
							efdI, efdJ := kernel.DipoleField(xi, xj, muI, muJ, c.ADD, p)
							addCoreVec3(e1, 0, nmon1, i, m1, efdI)
							addCoreVec3(e2, 0, nmon2, j, m2, efdJ)
						}
					}
				}
			}
		}(w)
	}
	wg.Wait()

	for w := 0; w < nw; w++ {
		for k, v := range efd1Parts[w] {
			Efd[b1.FirstCrdCore+k] += v
		}
		for k, v := range efd2Parts[w] {
			Efd[b2.FirstCrdCore+k] += v
		}
	}
}

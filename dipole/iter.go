// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dipole

import (
	"math"

	"github.com/cpmech/ttm4/field"
	"github.com/cpmech/ttm4/topo"
)

// iterAlpha is the fixed damping factor of the under-relaxed
// fixed-point iteration, grounded on DipolesIterativeIteration's
// hardcoded "double alpha = 0.8".
const iterAlpha = 0.8

// SolveIter runs the damped fixed-point iteration
// mu := alpha*pol*(Efq+Efd(mu)) + (1-alpha)*mu until the maximum
// per-site squared step falls below tol, grounded on
// CalculateDipolesIterative. polVec3 is pol (not its square root)
// broadcast to vec3 core layout. mu0 is the starting guess (Engine
// passes its stored Mu: all zeros before the first solve, afterwards
// the previous call's mu).
//
// Mirrors the source's two failure modes: iterating past maxIter, and
// the residual growing from one iteration to the next after the first
// 10 iterations — both
// reported as a *ConvergenceError instead of the source's std::exit.
func SolveIter(sys field.System, c topo.Constants, top topo.Topology, polVec3, Efq, mu0 []float64, maxIter int, tol float64) (mu []float64, iters int, err error) {
	n := len(Efq)
	mu = make([]float64, n)
	copy(mu, mu0)

	lastEps := math.Inf(1)

	for {
		Efd := field.Dipole(field.System{Spec: sys.Spec, XYZ: sys.XYZ, Mu: mu, Chg: sys.Chg, Polfac: sys.Polfac}, c, top)

		muNew := make([]float64, n)
		maxEps := 0.0
		for i := range mu {
			target := polVec3[i] * (Efq[i] + Efd[i])
			muNew[i] = iterAlpha*target + (1-iterAlpha)*mu[i]
		}
		// per-site squared step, grouped by the core vec3 layout's
		// stride-nmon x/y/z triplet (site i, monomer m sits at
		// off, off+nmon, off+2*nmon within its block — see
		// layout/reorder.go), matching the source's per-site (not
		// per-component) convergence/divergence check.
		for _, b := range sys.Spec.Blocks() {
			ns, nmon := b.Type.NSites, b.Type.NMon
			for i := 0; i < ns; i++ {
				for m := 0; m < nmon; m++ {
					off := b.FirstCrdCore + 3*i*nmon + m
					d := 0.0
					for a := 0; a < 3; a++ {
						diff := muNew[off+a*nmon] - mu[off+a*nmon]
						d += diff * diff
					}
					if d > maxEps {
						maxEps = d
					}
				}
			}
		}
		mu = muNew
		iters++

		if maxEps < tol {
			return mu, iters, nil
		}
		if maxEps > lastEps && iters > 10 {
			return nil, iters, &ConvergenceError{Method: "iter", Iter: iters, LastResidual: maxEps}
		}
		lastEps = maxEps

		if iters > maxIter {
			return nil, iters, &ConvergenceError{Method: "iter", Iter: iters, LastResidual: maxEps}
		}
	}
}

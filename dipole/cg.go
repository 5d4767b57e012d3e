// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dipole

import (
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/ttm4/field"
	"github.com/cpmech/ttm4/topo"
)

// dot returns the Euclidean inner product of a and b.
func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// SolveCG solves the symmetrised induced-dipole system
// (I - D^(1/2) T D^(1/2)) v = D^(1/2) Efq for v, then returns
// mu = D^(1/2) v, grounded on CalculateDipolesCG. Efq and the returned
// mu are vec3 core-layout arrays; polSqrtVec3 is sqrt(pol) already
// broadcast to vec3 core layout.
func SolveCG(sys field.System, c topo.Constants, top topo.Topology, polSqrtVec3, Efq []float64, maxIter int, tol float64) (mu []float64, iters int, err error) {
	n := len(Efq)
	b := hadamard(Efq, polSqrtVec3) // initial guess v0 = b <=> mu0 = pol*Efq

	v := make([]float64, n)
	copy(v, b)

	r := make([]float64, n)
	la.VecAdd2(r, 1, b, -1, Operator(sys, c, top, polSqrtVec3, v))
	rsOld := dot(r, r)
	if rsOld < tol {
		return hadamard(v, polSqrtVec3), 0, nil
	}

	p := make([]float64, n)
	copy(p, r)

	for iters = 1; iters <= maxIter; iters++ {
		Ap := Operator(sys, c, top, polSqrtVec3, p)
		alpha := rsOld / dot(p, Ap)

		la.VecAdd(v, alpha, p)
		la.VecAdd(r, -alpha, Ap)

		rsNew := dot(r, r)
		if rsNew < tol {
			return hadamard(v, polSqrtVec3), iters, nil
		}

		beta := rsNew / rsOld
		la.VecAdd2(p, 1, r, beta, p)
		rsOld = rsNew
	}

	return nil, iters, &ConvergenceError{Method: "cg", Iter: iters, LastResidual: rsOld}
}

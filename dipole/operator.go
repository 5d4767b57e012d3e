// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dipole

import (
	"github.com/cpmech/ttm4/field"
	"github.com/cpmech/ttm4/topo"
)

// Operator applies the symmetrised matrix-free operator
// y = (I - D^(1/2) T D^(1/2)) x, where T is the dipole-dipole
// interaction tensor (field.Dipole) and D = diag(pol) is the
// per-site polarizability. x and the result are vec3 core-layout
// arrays holding the "scaled dipole" variable v = mu / sqrt(pol) the
// CG solver iterates on. polSqrtVec3 is sqrt(pol) already broadcast to
// vec3 core layout (see layout.BroadcastScalarToVec3Core), grounded on
// DipolesCGIteration's "pfipfj = sqrt(pol_i*pol_j)" pair scaling
// folded into a per-site square-root factor applied on both sides of T.
func Operator(sys field.System, c topo.Constants, top topo.Topology, polSqrtVec3, x []float64) []float64 {
	trial := sys
	trial.Mu = hadamard(x, polSqrtVec3)
	Efd := field.Dipole(trial, c, top)
	Efd = hadamard(Efd, polSqrtVec3)

	y := make([]float64, len(x))
	for i := range y {
		y[i] = x[i] - Efd[i]
	}
	return y
}

func hadamard(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] * b[i]
	}
	return out
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package energy contracts the permanent and induced electrostatic
// energies from the potential, field and induced dipoles, grounded on
// CalculateElecEnergy.
package energy

// Perm returns the permanent electrostatic energy
// E_perm = 0.5 * sum_i phi_i * chg_i. phi and chg may be in either
// layout as long as they are in the same one — the contraction is a
// plain dot product, layout-invariant.
func Perm(phi, chg []float64) float64 {
	e := 0.0
	for i := range phi {
		e += phi[i] * chg[i]
	}
	return 0.5 * e
}

// Ind returns the induced electrostatic energy
// E_ind = -0.5 * sum_i mu_i * Efq_i (note the minus sign: the
// polarization energy of a linearly induced dipole is the negative of
// its coupling to the inducing field). mu and Efq are the core-layout
// (or any consistent-layout) vec3 arrays.
func Ind(mu, Efq []float64) float64 {
	e := 0.0
	for i := range mu {
		e -= mu[i] * Efq[i]
	}
	return 0.5 * e
}

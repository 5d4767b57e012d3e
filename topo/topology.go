// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

// Topology is the host-supplied collaborator that knows the bonded
// structure and virtual-site/charge-derivative machinery of a monomer
// type. The engine never inspects bonds or virtual sites itself — it
// calls back into Topology exactly as electrostatics.cpp calls into
// the systools:: namespace.
type Topology interface {
	// GetExcluded returns the 1-2, 1-3 and 1-4 excluded site-pair sets
	// for the monomer type identified by monID.
	GetExcluded(monID string) ExcludedSets

	// GetAdd returns the Thole dipole-dipole damping exponent to use
	// for an intramonomer pair given its exclusion class and monomer
	// type. Intermonomer pairs never call this — they always use the
	// fixed aDD from topo.Constants (grounded: "aDD intermolecular is
	// always 0.055" in the source this is distilled from).
	GetAdd(is12, is13, is14 bool, monID string) float64

	// RedistributeVirtGrads2Real folds the gradient accumulated on any
	// virtual (massless) sites of monomer type monID back onto that
	// monomer's real sites, in place, for the nmon monomers whose
	// per-monomer gradient block starts at firstCrd in grad (user
	// layout, see package layout). Monomer types with no virtual sites
	// leave grad untouched.
	RedistributeVirtGrads2Real(monID string, nmon, firstCrd int, grad []float64)

	// ChargeDerivativeForce adds the gradient contribution arising from
	// site charges that are themselves a function of geometry (e.g. a
	// charge redistributed from a virtual site via a fixed geometric
	// rule). phi is the per-site potential (system/user layout,
	// starting at firstSite). chgGrad is a zero-filled buffer of
	// NSites*nmon values that grad.Accumulate allocates for each call
	// and does not read afterwards; no host-supplied charge derivatives
	// are passed in. Monomer types with fixed, geometry-independent
	// charges are a no-op.
	ChargeDerivativeForce(monID string, nmon, firstCrd, firstSite int, phi []float64, grad []float64, chgGrad []float64)
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine assembles topo, layout, field, dipole, energy and
// grad into the single object a host calls per timestep: Engine,
// grounded on the ElectrostaticElec driver (Initialize,
// SetXyzChgPolPolfac, SetAspcParameters, ResetAspcHistory,
// GetElectrostatics).
package engine

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/ttm4/dipole"
	"github.com/cpmech/ttm4/energy"
	"github.com/cpmech/ttm4/field"
	"github.com/cpmech/ttm4/grad"
	"github.com/cpmech/ttm4/layout"
	"github.com/cpmech/ttm4/topo"
)

// defaultAspcOrder is the ASPC order the engine starts with when
// Initialize is called, matching the source's own default (k=4, its
// highest-order tabulated predictor).
const defaultAspcOrder = 4

// Engine is the single external-facing object of this module: one
// instance per simulated system, holding the monomer-type layout, the
// Thole constants, the current geometry/charges/dipoles in core
// layout, and the persistent ASPC history.
type Engine struct {
	Spec      layout.Spec
	Topo      topo.Topology
	Constants topo.Constants

	DipMethod string // "iter", "cg" or "aspc"
	Tolerance float64
	MaxIter   int
	DoGrads   bool

	// Verbose gates io.Pf/io.Pfyel/io.Pfred diagnostic output: solver
	// iteration counts, ASPC warm-up fallback, energies, solver failures.
	Verbose bool

	XYZ    []float64 // core layout, vec3
	Chg    []float64 // core layout, scalar
	Pol    []float64 // core layout, scalar
	Polfac []float64 // core layout, scalar
	Mu     []float64 // core layout, vec3; carried across steps as the iterative solver's warm start

	polVec3, polSqrtVec3 []float64 // core layout, vec3; recomputed whenever Pol changes

	aspc *dipole.ASPCState
}

func validDipMethod(m string) bool {
	return m == "iter" || m == "cg" || m == "aspc"
}

// Initialize performs one-time setup: it validates dip_method,
// initializes the Thole constants table (prms may be nil for the
// TTM4 defaults), allocates the core-layout state arrays to spec's
// site/coordinate count, and starts the ASPC predictor at its default
// order (4). Geometry, charges, polarizabilities and polfacs are all
// zero until the first SetXyzChgPolPolfac call.
func Initialize(spec layout.Spec, top topo.Topology, prms fun.Prms, dipMethod string, tolerance float64, maxit int, doGrads bool) (*Engine, error) {
	if !validDipMethod(dipMethod) {
		return nil, chk.Err("engine: dip_method must be one of {iter,cg,aspc}, got %q\n", dipMethod)
	}
	e := &Engine{
		Spec:      spec,
		Topo:      top,
		DipMethod: dipMethod,
		Tolerance: tolerance,
		MaxIter:   maxit,
		DoGrads:   doGrads,
	}
	if err := e.Constants.Init(prms); err != nil {
		return nil, err
	}
	state, err := dipole.NewASPCState(defaultAspcOrder)
	if err != nil {
		return nil, err
	}
	e.aspc = state

	n := spec.NSites()
	e.XYZ = make([]float64, 3*n)
	e.Chg = make([]float64, n)
	e.Pol = make([]float64, n)
	e.Polfac = make([]float64, n)
	e.Mu = make([]float64, 3*n)
	e.recomputePolBroadcasts()
	return e, nil
}

// SetAspcParameters replaces the ASPC predictor order (k in 0..4),
// discarding any accumulated history — the next GetElectrostatics
// calls using the "aspc" method fall back to CG warm-up until k+2
// converged solutions have again been recorded.
func (e *Engine) SetAspcParameters(k int) error {
	state, err := dipole.NewASPCState(k)
	if err != nil {
		return err
	}
	e.aspc = state
	return nil
}

// ResetAspcHistory clears the ASPC predictor window without changing
// its order, grounded on ResetAspcHistory.
func (e *Engine) ResetAspcHistory() {
	e.aspc.Reset()
}

// SetXyzChgPolPolfac updates geometry, charges, polarizabilities and
// polfacs for the next GetElectrostatics call. xyzUser/chgUser/
// polUser/polfacUser are in the host's (user) layout; they are
// reordered into this Engine's core layout in place. dipMethod and
// doGrads may also be changed here, matching the source's per-step
// SetXyzChgPolPolfac(..., dip_method, do_grads) signature.
//
// All derived per-call fields (phi, Efq, Efd) are freshly recomputed
// on every GetElectrostatics call and never persist, so nothing
// explicit needs zeroing for them here. Mu is intentionally NOT
// zeroed: it is the iterative solver's warm start and the ASPC
// predictor's own history array already survives independently of it
// (a design decision, since the source's mu_ array is likewise
// instance state that persists across SetXyzChgPolPolfac calls; the
// ASPC history itself is untouched by this call, matching the spec's
// explicit carve-out).
func (e *Engine) SetXyzChgPolPolfac(xyzUser, chgUser, polUser, polfacUser []float64, dipMethod string, doGrads bool) error {
	if !validDipMethod(dipMethod) {
		return chk.Err("engine: dip_method must be one of {iter,cg,aspc}, got %q\n", dipMethod)
	}
	e.DipMethod = dipMethod
	e.DoGrads = doGrads
	e.XYZ = layout.ReorderVec3(e.Spec, xyzUser)
	e.Chg = layout.ReorderScalar(e.Spec, chgUser)
	e.Pol = layout.ReorderScalar(e.Spec, polUser)
	e.Polfac = layout.ReorderScalar(e.Spec, polfacUser)
	e.recomputePolBroadcasts()
	return nil
}

func (e *Engine) recomputePolBroadcasts() {
	sqrtPol := make([]float64, len(e.Pol))
	for i, p := range e.Pol {
		sqrtPol[i] = sqrtNonNeg(p)
	}
	e.polVec3 = layout.BroadcastScalarToVec3Core(e.Spec, e.Pol)
	e.polSqrtVec3 = layout.BroadcastScalarToVec3Core(e.Spec, sqrtPol)
}

func sqrtNonNeg(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return math.Sqrt(x)
}

func (e *Engine) system() field.System {
	return field.System{Spec: e.Spec, XYZ: e.XYZ, Mu: e.Mu, Chg: e.Chg, Polfac: e.Polfac}
}

// GetElectrostatics runs the fixed driver order — permanent field,
// then induced dipoles (dispatched on DipMethod), then energy, then
// (if DoGrads) gradients — and returns E_perm + E_ind, grounded on
// GetElectrostatics. gradUser is the caller-owned, user-layout
// gradient array; on a successful DoGrads call the computed gradient
// is additively accumulated into it (never zeroed), matching the
// source's own accumulate-in-place convention. A solver failure to
// converge is reported as a *dipole.ConvergenceError; an unrecognized
// DipMethod is impossible here (validated at Initialize/
// SetXyzChgPolPolfac time), but a never-yet-set DipMethod on a
// zero-value Engine degrades to "no solve performed", matching the
// source's own silent-no-op dispatch.
func (e *Engine) GetElectrostatics(gradUser []float64) (float64, error) {
	sys := e.system()
	phi, Efq := field.Permanent(sys, e.Constants, e.Topo)
	if e.Verbose {
		io.Pf("engine: permanent field done (%d sites)\n", e.Spec.NSites())
	}

	mu, err := e.solveDipoles(sys, Efq)
	if err != nil {
		if e.Verbose {
			io.Pfred("engine: dipole solve failed: %v\n", err)
		}
		return 0, err
	}
	e.Mu = mu

	Eperm := energy.Perm(phi, e.Chg)
	Eind := energy.Ind(e.Mu, Efq)
	total := Eperm + Eind
	if e.Verbose {
		io.Pfyel("engine: Eperm=%g Eind=%g\n", Eperm, Eind)
	}

	if e.DoGrads {
		sysMu := sys
		sysMu.Mu = e.Mu
		Efd := field.Dipole(sysMu, e.Constants, e.Topo)
		gradCore := grad.Accumulate(sysMu, e.Constants, e.Topo, phi, Efq, Efd, e.Mu)
		layout.UnreorderAccumulateGrad(e.Spec, gradCore, gradUser)
	}
	return total, nil
}

func (e *Engine) solveDipoles(sys field.System, Efq []float64) ([]float64, error) {
	switch e.DipMethod {
	case "cg":
		mu, iters, err := dipole.SolveCG(sys, e.Constants, e.Topo, e.polSqrtVec3, Efq, e.MaxIter, e.Tolerance)
		if e.Verbose && err == nil {
			io.Pf("engine: cg converged in %d iterations\n", iters)
		}
		return mu, err
	case "iter":
		mu, iters, err := dipole.SolveIter(sys, e.Constants, e.Topo, e.polVec3, Efq, e.Mu, e.MaxIter, e.Tolerance)
		if e.Verbose && err == nil {
			io.Pf("engine: iter converged in %d iterations\n", iters)
		}
		return mu, err
	case "aspc":
		wasWarm := e.aspc.Warm()
		mu, err := dipole.SolveASPC(sys, e.Constants, e.Topo, e.polVec3, e.polSqrtVec3, Efq, e.aspc, e.MaxIter, e.Tolerance)
		if e.Verbose && !wasWarm {
			io.Pf("engine: aspc warming up (CG fallback)\n")
		}
		return mu, err
	default:
		// unrecognized dip_method: silent no-op, matching the source's
		// if/else-if dispatch with no trailing else.
		return e.Mu, nil
	}
}

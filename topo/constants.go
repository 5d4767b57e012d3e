// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package topo holds the electrostatics engine's external collaborator
// interfaces (topology, exclusions, incomplete-gamma) and the Thole
// damping constants table shared by the screen and kernel packages.
package topo

import (
	"math"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// Constants holds the Thole damping exponents and auxiliary values
// used by the screening functions (screen.Field, screen.Dipole,
// screen.Grad) and kernels
// (kernel.PermanentField, kernel.DipoleField, kernel.GradAndField).
//
// ACC and ACD damp the charge-charge and charge-dipole interactions,
// ADD damps dipole-dipole. G34 is exp(lgamma(0.75)), a normalization
// constant for the incomplete-gamma screening term. Eps is the
// polarizability-product threshold below which a pair is treated as
// bare Coulomb (screen.FieldBare/DipoleBare/GradBare, kernel dispatch
// with A==0).
type Constants struct {
	ACC float64
	ACD float64
	ADD float64
	G34 float64
	Eps float64
}

// Default returns the TTM4 constants used throughout the source this
// engine is grounded on: aCC=0.4, aCD=0.4, aDD=0.055, g34=exp(lgamma(0.75)).
func Default() Constants {
	c := Constants{ACC: 0.4, ACD: 0.4, ADD: 0.055, Eps: 1e-12}
	c.G34 = math.Exp(Lgamma(0.75))
	return c
}

// Init sets the constants from a named-parameter list, applying the
// TTM4 defaults for any parameter that is absent. Recognised names are
// "aCC", "aCD", "aDD", "eps". An unrecognised name is a configuration
// error (§7.1): it is rejected eagerly, as mreten.BrooksCorey.Init
// rejects unknown parameter names.
func (o *Constants) Init(prms fun.Prms) (err error) {
	*o = Default()
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "acc":
			o.ACC = p.V
		case "acd":
			o.ACD = p.V
		case "add":
			o.ADD = p.V
		case "eps":
			o.Eps = p.V
		default:
			return chk.Err("topo: parameter named %q is incorrect\n", p.N)
		}
	}
	return
}

// GetPrms returns an example parameter list, mirroring the
// GetPrms(example bool) convention used by every gofem material model.
func (o Constants) GetPrms(example bool) fun.Prms {
	return []*fun.Prm{
		{N: "aCC", V: o.ACC},
		{N: "aCD", V: o.ACD},
		{N: "aDD", V: o.ADD},
		{N: "eps", V: o.Eps},
	}
}

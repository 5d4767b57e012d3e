// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/ttm4/layout"
	"github.com/cpmech/ttm4/topo"
)

type noExclusions struct{ add float64 }

func (n noExclusions) GetExcluded(monID string) topo.ExcludedSets { return topo.NewExcludedSets() }
func (n noExclusions) GetAdd(is12, is13, is14 bool, monID string) float64 { return n.add }
func (n noExclusions) RedistributeVirtGrads2Real(monID string, nmon, firstCrd int, grad []float64) {}
func (n noExclusions) ChargeDerivativeForce(monID string, nmon, firstCrd, firstSite int, phi, grad, chgGrad []float64) {
}

func pairSpec() layout.Spec {
	return layout.Spec{Types: []layout.MonType{{ID: "pair", NSites: 2, NMon: 1}}}
}

func Test_engine_badDipMethod(tst *testing.T) {

	chk.PrintTitle("engine_badDipMethod")

	_, err := Initialize(pairSpec(), noExclusions{add: 0.055}, nil, "bogus", 1e-16, 200, false)
	if err == nil {
		tst.Errorf("expected an error for an unrecognized dip_method")
	}
}

func Test_engine_cg01(tst *testing.T) {

	chk.PrintTitle("engine_cg01 (two-site system, CG solver, energy + gradient)")

	e, err := Initialize(pairSpec(), noExclusions{add: 0.055}, nil, "cg", 1e-18, 200, true)
	if err != nil {
		tst.Errorf("Initialize failed: %v", err)
		return
	}

	xyz := []float64{0, 0, 0, 1.8, 0, 0}
	chg := []float64{1.0, -1.0}
	pol := []float64{1.444, 1.444}
	polfac := []float64{1.1, 1.1}
	err = e.SetXyzChgPolPolfac(xyz, chg, pol, polfac, "cg", true)
	if err != nil {
		tst.Errorf("SetXyzChgPolPolfac failed: %v", err)
		return
	}

	gradUser := make([]float64, 6)
	E, err := e.GetElectrostatics(gradUser)
	if err != nil {
		tst.Errorf("GetElectrostatics failed: %v", err)
		return
	}
	if E == 0 {
		tst.Errorf("expected a nonzero total energy")
	}

	sum := [3]float64{}
	for i := 0; i < 2; i++ {
		for axis := 0; axis < 3; axis++ {
			sum[axis] += gradUser[3*i+axis]
		}
	}
	for axis, s := range sum {
		if s < -1e-7 || s > 1e-7 {
			tst.Errorf("gradient sum over sites not ~0 on axis %d: %v", axis, s)
		}
	}

	// GetElectrostatics must accumulate, not overwrite: a second call
	// on an already-populated gradUser should not reset it to the same
	// single-call value.
	before := make([]float64, len(gradUser))
	copy(before, gradUser)
	_, err = e.GetElectrostatics(gradUser)
	if err != nil {
		tst.Errorf("second GetElectrostatics failed: %v", err)
		return
	}
	for i := range gradUser {
		if gradUser[i] == before[i] && before[i] != 0 {
			tst.Errorf("gradient at %d did not accumulate across calls", i)
		}
	}
}

func Test_engine_resetAspcHistory(tst *testing.T) {

	chk.PrintTitle("engine_resetAspcHistory")

	e, err := Initialize(pairSpec(), noExclusions{add: 0.055}, nil, "aspc", 1e-18, 200, false)
	if err != nil {
		tst.Errorf("Initialize failed: %v", err)
		return
	}
	if err := e.SetAspcParameters(2); err != nil {
		tst.Errorf("SetAspcParameters failed: %v", err)
	}
	e.ResetAspcHistory()
	if e.aspc.Warm() {
		tst.Errorf("history should be empty right after reset")
	}
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grad

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/ttm4/field"
	"github.com/cpmech/ttm4/layout"
	"github.com/cpmech/ttm4/topo"
)

type noExclusions struct{ add float64 }

func (n noExclusions) GetExcluded(monID string) topo.ExcludedSets { return topo.NewExcludedSets() }
func (n noExclusions) GetAdd(is12, is13, is14 bool, monID string) float64 { return n.add }
func (n noExclusions) RedistributeVirtGrads2Real(monID string, nmon, firstCrd int, grad []float64) {}
func (n noExclusions) ChargeDerivativeForce(monID string, nmon, firstCrd, firstSite int, phi, grad, chgGrad []float64) {
}

func twoSiteSystem(r float64) (field.System, topo.Constants) {
	spec := layout.Spec{Types: []layout.MonType{{ID: "pair", NSites: 2, NMon: 1}}}
	sys := field.System{
		Spec:   spec,
		XYZ:    []float64{0, 0, 0, r, 0, 0},
		Mu:     []float64{0, 0, 0, 0.01, 0, 0},
		Chg:    []float64{1.0, -1.0},
		Polfac: []float64{1.1, 1.1},
	}
	var c topo.Constants
	c.Init(nil)
	return sys, c
}

func Test_gradAccumulate01(tst *testing.T) {

	chk.PrintTitle("gradAccumulate01 (Newton's third law)")

	sys, c := twoSiteSystem(1.8)
	top := noExclusions{add: 0.055}
	phi, Efq := field.Permanent(sys, c, top)
	Efd := field.Dipole(sys, c, top)

	g := Accumulate(sys, c, top, phi, Efq, Efd, sys.Mu)
	if len(g) != 6 {
		tst.Errorf("unexpected gradient size: %d", len(g))
	}

	sum := [3]float64{}
	for i := 0; i < 2; i++ {
		for axis := 0; axis < 3; axis++ {
			sum[axis] += g[3*i+axis]
		}
	}
	for axis, s := range sum {
		if s < -1e-8 || s > 1e-8 {
			tst.Errorf("gradient sum over sites not ~0 on axis %d: %v", axis, s)
		}
	}
}

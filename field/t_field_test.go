// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/ttm4/layout"
	"github.com/cpmech/ttm4/topo"
)

// noExclusions is a minimal topo.Topology with no bonded topology at
// all: every pair is unexcluded and GetAdd always returns the fixed
// intermonomer aDD, useful for isolating kernel/driver behaviour from
// exclusion bookkeeping.
type noExclusions struct{ add float64 }

func (n noExclusions) GetExcluded(monID string) topo.ExcludedSets { return topo.NewExcludedSets() }
func (n noExclusions) GetAdd(is12, is13, is14 bool, monID string) float64 { return n.add }
func (n noExclusions) RedistributeVirtGrads2Real(monID string, nmon, firstCrd int, grad []float64) {}
func (n noExclusions) ChargeDerivativeForce(monID string, nmon, firstCrd, firstSite int, phi, grad, chgGrad []float64) {
}

func twoSiteSystem(r float64) (System, topo.Constants) {
	spec := layout.Spec{Types: []layout.MonType{{ID: "pair", NSites: 2, NMon: 1}}}
	sys := System{
		Spec: spec,
		// with nmon=1, core and user vec3 layout coincide: each site is
		// a contiguous [x,y,z] triplet — site0=(0,0,0), site1=(r,0,0).
		XYZ:    []float64{0, 0, 0, r, 0, 0},
		Mu:     make([]float64, 6),
		Chg:    []float64{1.0, -1.0},
		Polfac: []float64{1.1, 1.1},
	}
	var c topo.Constants
	c.Init(nil)
	return sys, c
}

func Test_permanent01(tst *testing.T) {

	chk.PrintTitle("permanent01")

	sys, c := twoSiteSystem(1.6)
	top := noExclusions{add: 0.055}
	phi, Efq := Permanent(sys, c, top)

	if len(phi) != 2 || len(Efq) != 6 {
		tst.Errorf("unexpected output sizes: phi=%d Efq=%d", len(phi), len(Efq))
		return
	}
	// opposite charges: phi on each site should be negative of each other's
	// contribution sign pattern: phi_0 from chg_1=-1, phi_1 from chg_0=+1
	if phi[0] >= 0 || phi[1] <= 0 {
		tst.Errorf("unexpected potential signs: phi=%v", phi)
	}
}

// exc14Only excludes the single pair (0,1) as 1-4 and nothing else,
// used to check that Permanent treats 1-4 exactly like 1-2/1-3: no
// charge-charge contribution at all between an excluded pair.
type exc14Only struct{ add float64 }

func (n exc14Only) GetExcluded(monID string) topo.ExcludedSets {
	e := topo.NewExcludedSets()
	e.Add14(0, 1)
	return e
}
func (n exc14Only) GetAdd(is12, is13, is14 bool, monID string) float64 { return n.add }
func (n exc14Only) RedistributeVirtGrads2Real(monID string, nmon, firstCrd int, grad []float64) {}
func (n exc14Only) ChargeDerivativeForce(monID string, nmon, firstCrd, firstSite int, phi, grad, chgGrad []float64) {
}

func Test_permanent_exc14(tst *testing.T) {

	chk.PrintTitle("permanent_exc14 (1-4 pair must be excluded)")

	sys, c := twoSiteSystem(1.6)
	top := exc14Only{add: 0.055}
	phi, Efq := Permanent(sys, c, top)

	for i, v := range phi {
		if v != 0 {
			tst.Errorf("phi[%d] = %v, expected 0 for a 1-4 excluded pair", i, v)
		}
	}
	for i, v := range Efq {
		if v != 0 {
			tst.Errorf("Efq[%d] = %v, expected 0 for a 1-4 excluded pair", i, v)
		}
	}
}

func Test_dipole01(tst *testing.T) {

	chk.PrintTitle("dipole01")

	sys, c := twoSiteSystem(1.6)
	sys.Mu[0] = 0.02 // mu_x on site 0 (nmon=1, so core layout is a plain [x,y,z] triplet per site)
	top := noExclusions{add: 0.055}
	Efd := Dipole(sys, c, top)

	if len(Efd) != 6 {
		tst.Errorf("unexpected Efd size: %d", len(Efd))
	}
	// site 1 should feel a nonzero field from site 0's dipole
	if Efd[3] == 0 && Efd[4] == 0 && Efd[5] == 0 {
		tst.Errorf("expected nonzero dipole field on site 1")
	}
}

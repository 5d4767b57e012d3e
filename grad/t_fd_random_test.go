// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grad

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/num"
	"github.com/cpmech/gosl/rnd"
	"github.com/cpmech/ttm4/dipole"
	"github.com/cpmech/ttm4/energy"
	"github.com/cpmech/ttm4/field"
	"github.com/cpmech/ttm4/layout"
	"github.com/cpmech/ttm4/topo"
)

// randomNonOverlappingXYZ draws n site positions uniformly in a cube,
// re-drawing any site closer than minSep to an already-placed one,
// grounded on spec.md's property 5 ("non-overlapping random
// configurations").
func randomNonOverlappingXYZ(n int, minSep float64) []float64 {
	xyz := make([]float64, 3*n)
	for i := 0; i < n; i++ {
		for attempt := 0; attempt < 100; attempt++ {
			p := [3]float64{rnd.Float64(-3, 3), rnd.Float64(-3, 3), rnd.Float64(-3, 3)}
			ok := true
			for j := 0; j < i; j++ {
				dx := p[0] - xyz[3*j]
				dy := p[1] - xyz[3*j+1]
				dz := p[2] - xyz[3*j+2]
				if math.Sqrt(dx*dx+dy*dy+dz*dz) < minSep {
					ok = false
					break
				}
			}
			if ok {
				xyz[3*i], xyz[3*i+1], xyz[3*i+2] = p[0], p[1], p[2]
				break
			}
		}
	}
	return xyz
}

// Test_gradFiniteDiff_random01 checks a random, non-overlapping
// configuration of 3 sites in a single monomer (so every pair goes
// through the intramonomer pass) for analytic-vs-finite-difference
// gradient agreement (property 5).
func Test_gradFiniteDiff_random01(tst *testing.T) {

	chk.PrintTitle("gradFiniteDiff_random01 (3 random non-overlapping sites)")

	rnd.Init(4321)

	spec := layout.Spec{Types: []layout.MonType{{ID: "ion", NSites: 3, NMon: 1}}}
	xyz := randomNonOverlappingXYZ(3, 1.5)
	sys := field.System{
		Spec:   spec,
		XYZ:    xyz,
		Mu:     make([]float64, 9),
		Chg:    []float64{1.0, -1.0, 0.5},
		Polfac: []float64{1.1, 1.1, 1.1},
	}
	var c topo.Constants
	c.Init(nil)
	top := noExclusions{add: 0.055}

	polSqrt := []float64{1.2, 1.2, 1.2}
	polSqrtVec3 := layout.BroadcastScalarToVec3Core(spec, polSqrt)

	phi, Efq := field.Permanent(sys, c, top)
	mu, _, err := dipole.SolveCG(sys, c, top, polSqrtVec3, Efq, 200, 1e-20)
	if err != nil {
		tst.Errorf("CG failed: %v", err)
		return
	}
	Efd := field.Dipole(field.System{Spec: spec, XYZ: xyz, Mu: mu, Chg: sys.Chg, Polfac: sys.Polfac}, c, top)

	sysMu := sys
	sysMu.Mu = mu
	ana := Accumulate(sysMu, c, top, append([]float64{}, phi...), Efq, Efd, mu)

	has_error := false
	for k := 0; k < len(xyz); k++ {
		dnum := num.DerivCen(func(x float64, args ...interface{}) (res float64) {
			trial := sys
			trial.XYZ = append([]float64{}, xyz...)
			old := trial.XYZ[k]
			trial.XYZ[k] = x
			p, e := field.Permanent(trial, c, top)
			m, _, cgErr := dipole.SolveCG(trial, c, top, polSqrtVec3, e, 200, 1e-20)
			if cgErr != nil {
				panic(cgErr)
			}
			res = energy.Perm(p, trial.Chg) + energy.Ind(m, e)
			trial.XYZ[k] = old
			return
		}, xyz[k])

		err := chk.PrintAnaNum(io.Sf("dE/dx[%d]", k), 1e-3, ana[k], dnum, false)
		if err != nil {
			has_error = true
		}
	}
	if has_error {
		tst.Errorf("analytic gradient does not match finite-difference energy derivative on the random configuration")
	}
}

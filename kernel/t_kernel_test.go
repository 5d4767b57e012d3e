// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func stubGammaQ(a, x float64) float64 {
	if x <= 0 {
		return 1
	}
	return math.Exp(-x)
}

func Test_permanentField01(tst *testing.T) {

	chk.PrintTitle("permanentField01")

	p := ThetaParams{Damped: true, Asqsq: math.Pow(1.2, 2.0/3.0), ACC: 0.4, G34: math.Gamma(0.75), GammaQ: stubGammaQ}
	xi := Vec3{0, 0, 0}
	xj := Vec3{1.5, 0, 0}
	r := PermanentField(xi, xj, 1.0, -1.0, p)

	// potential is symmetric in role (phi_i uses chg_j, phi_j uses chg_i)
	chk.Scalar(tst, "phi_i", 1e-14, r.PhiI, -r.PhiJ)
	if r.PhiI == r.PhiJ {
		tst.Errorf("phi_i and phi_j should differ for asymmetric charges")
	}

	// with opposite charges, the field on i (pulled toward the negative j)
	// and on j (pushed away from the positive i) point the same way along the bond
	if (r.EfqI[0] > 0) != (r.EfqJ[0] > 0) {
		tst.Errorf("Efq_i and Efq_j x-components should have the same sign, got %v %v", r.EfqI[0], r.EfqJ[0])
	}
}

func Test_gradAndField01(tst *testing.T) {

	chk.PrintTitle("gradAndField01 (Newton's third law)")

	p := ThetaParams{Damped: true, Asqsq: math.Pow(1.2, 2.0/3.0), ACD: 0.4, ADD: 0.055}
	xi := Vec3{0, 0, 0}
	xj := Vec3{1.8, 0.3, -0.2}
	muI := Vec3{0.01, 0.02, -0.01}
	muJ := Vec3{-0.02, 0.0, 0.03}

	rNotExcl := GradAndField(xi, xj, 1.0, -1.0, muI, muJ, p.ADD, false, p)
	for k := 0; k < 3; k++ {
		if math.Abs(rNotExcl.GradI[k]+rNotExcl.GradJ[k]) > 1e-12 {
			tst.Errorf("GradI + GradJ should vanish (Newton's third law), axis %d: %v + %v", k, rNotExcl.GradI[k], rNotExcl.GradJ[k])
		}
	}

	rExcl := GradAndField(xi, xj, 1.0, -1.0, muI, muJ, p.ADD, true, p)
	if rExcl.PhiI != 0 || rExcl.PhiJ != 0 {
		tst.Errorf("excluded pair must not update potential: phiI=%v phiJ=%v", rExcl.PhiI, rExcl.PhiJ)
	}
	// dipole-dipole gradient term must still be present when excluded
	ddOnly := rExcl.GradI
	if ddOnly[0] == 0 && ddOnly[1] == 0 && ddOnly[2] == 0 {
		tst.Errorf("dipole-dipole gradient must not be suppressed by exclusion")
	}
	// and it must differ from the unexcluded total (which also carries charge-dipole)
	if rExcl.GradI == rNotExcl.GradI {
		tst.Errorf("excluded and unexcluded gradients should differ (charge-dipole term)")
	}
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package energy

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_energy01(tst *testing.T) {

	chk.PrintTitle("energy01")

	phi := []float64{2.0, -1.0}
	chg := []float64{1.0, -1.0}
	chk.Scalar(tst, "Eperm", 1e-15, Perm(phi, chg), 0.5*(2.0*1.0+(-1.0)*(-1.0)))

	mu := []float64{0.1, 0, 0, -0.2, 0, 0}
	Efq := []float64{0.5, 0, 0, 0.3, 0, 0}
	want := -0.5 * (0.1*0.5 + (-0.2)*0.3)
	chk.Scalar(tst, "Eind", 1e-15, Ind(mu, Efq), want)
}

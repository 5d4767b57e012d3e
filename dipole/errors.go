// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dipole implements the matrix-free induced-dipole operator
// and its three solvers (CG, damped fixed-point iteration, ASPC),
// grounded on CalculateDipolesCG, CalculateDipolesIterative and
// CalculateDipolesAspc in the source this engine is distilled from.
package dipole

import "fmt"

// ConvergenceError reports that a solver failed to converge within
// its iteration budget, or diverged. It replaces the source's two
// fatal std::exit calls (on exceeding maxit_, and on a growing residual
// after 10 iterations of the fixed-point solver) with an ordinary
// returned error, per SPEC_FULL.md's error-handling design.
type ConvergenceError struct {
	Method       string // "cg" or "iter"; a failed ASPC warm-up solve reports "cg"
	Iter         int
	LastResidual float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("dipole: %s solver failed to converge after %d iterations (residual=%g)", e.Method, e.Iter, e.LastResidual)
}

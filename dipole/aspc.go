// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dipole

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/ttm4/field"
	"github.com/cpmech/ttm4/topo"
)

// aspcTable holds the tabulated (B, omega) coefficients for ASPC order
// k in {0,...,4}, transcribed exactly from SetAspcParameters. B[0] is
// the weight on the most recently converged dipole set, B[len(B)-1]
// the weight on the oldest of the k+2 retained history entries.
var aspcTable = map[int]struct {
	B     []float64
	Omega float64
}{
	0: {B: []float64{2.0, -1.0}, Omega: 2.0 / 3.0},
	1: {B: []float64{2.5, -2.0, 0.5}, Omega: 0.6},
	2: {B: []float64{2.8, -2.8, 1.2, -0.2}, Omega: 4.0 / 7.0},
	3: {B: []float64{3.0, -24.0 / 7.0, 27.0 / 14.0, -4.0 / 7.0, 1.0 / 14.0}, Omega: 5.0 / 9.0},
	4: {B: []float64{22.0 / 7.0, -55.0 / 14.0, 55.0 / 21.0, -22.0 / 21.0, 5.0 / 21.0, -1.0 / 42.0}, Omega: 6.0 / 11.0},
}

// ASPCState carries one system's Always-Stable Predictor-Corrector
// solver state: the chosen order, its coefficients, and a ring of the
// k+2 most recently converged (or predictor-corrected) dipole sets,
// newest first. It is owned by the engine and persists across
// timesteps (ResetAspcHistory discards it, a geometry change does
// not), grounded on mu_hist_/hist_num_aspc_.
type ASPCState struct {
	K       int
	B       []float64
	Omega   float64
	history [][]float64 // newest first, up to len(B) entries
}

// NewASPCState validates k (must be 0..4, per the source's own
// "TODO add exception if k < 0 or k > 4" — this engine makes that
// rejection eager, a configuration error per SPEC_FULL.md) and
// returns a fresh, empty-history state.
func NewASPCState(k int) (*ASPCState, error) {
	t, ok := aspcTable[k]
	if !ok {
		return nil, chk.Err("dipole: ASPC order must be in {0,1,2,3,4}, got %d\n", k)
	}
	return &ASPCState{K: k, B: t.B, Omega: t.Omega}, nil
}

// Reset discards the accumulated history (ResetAspcHistory), forcing
// the next SolveASPC calls back into CG warm-up.
func (s *ASPCState) Reset() { s.history = nil }

// warm reports whether the history ring holds enough entries (k+2)
// for the predictor-corrector step.
func (s *ASPCState) warm() bool { return len(s.history) >= len(s.B) }

// Warm reports whether the predictor-corrector step is active (as
// opposed to still falling back to CG warm-up), for callers that only
// need the coarse warm/cold status — e.g. Engine's verbose logging.
func (s *ASPCState) Warm() bool { return s.warm() }

// push records mu as the newest history entry, evicting the oldest
// once the ring is full — the Go equivalent of the source's
// append-then-shift-left on mu_hist_.
func (s *ASPCState) push(mu []float64) {
	cp := make([]float64, len(mu))
	copy(cp, mu)
	s.history = append([][]float64{cp}, s.history...)
	if len(s.history) > len(s.B) {
		s.history = s.history[:len(s.B)]
	}
}

// predict returns the weighted extrapolation sum_i B[i]*history[i]
// over the current (full) history window.
func (s *ASPCState) predict() []float64 {
	n := len(s.history[0])
	pred := make([]float64, n)
	for i, h := range s.history {
		b := s.B[i]
		for j := range pred {
			pred[j] += b * h[j]
		}
	}
	return pred
}

// SolveASPC advances the induced dipoles by one ASPC step. During
// warm-up (fewer than k+2 history entries recorded) it falls back to
// SolveCG and records the converged result, exactly as
// CalculateDipolesAspc does. Once warm, it predicts from history,
// corrects with a single Efd re-evaluation (DipolesIterativeIteration
// run once, not iterated to convergence), blends predictor and
// corrector by Omega, and pushes the blended result as the new newest
// history entry.
func SolveASPC(sys field.System, c topo.Constants, top topo.Topology, polVec3, polSqrtVec3, Efq []float64, state *ASPCState, cgMaxIter int, cgTol float64) (mu []float64, err error) {
	if !state.warm() {
		mu, _, err = SolveCG(sys, c, top, polSqrtVec3, Efq, cgMaxIter, cgTol)
		if err != nil {
			return nil, err
		}
		state.push(mu)
		return mu, nil
	}

	pred := state.predict()

	trial := field.System{Spec: sys.Spec, XYZ: sys.XYZ, Mu: pred, Chg: sys.Chg, Polfac: sys.Polfac}
	Efd := field.Dipole(trial, c, top)

	corr := make([]float64, len(pred))
	for i := range corr {
		corr[i] = polVec3[i] * (Efq[i] + Efd[i])
	}

	blended := make([]float64, len(pred))
	for i := range blended {
		blended[i] = state.Omega*corr[i] + (1-state.Omega)*pred[i]
	}

	state.push(blended)
	return blended, nil
}

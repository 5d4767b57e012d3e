// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

// Within one monomer-type block of ns sites and nmon monomers:
//
//   - core layout, scalar (phi, chg, pol, ...): index(i,m) = i*nmon + m
//     — site-major, monomer-minor. This is what the pair kernels
//     vectorise over: for a fixed site pair (i,j), all nmon monomers'
//     values are contiguous.
//
//   - user layout, scalar: index(m,i) = m*ns + i
//     — monomer-major, site-minor: one monomer's sites listed together,
//     the natural order a host enumerates a system in.
//
//   - core layout, vec3 (xyz, mu, Efq, Efd, grad, ...): for site i,
//     monomer m, axis a in {x=0,y=1,z=2}: index = 3*i*nmon + a*nmon + m
//     — each site occupies a contiguous 3*nmon run split into an
//     x-subrun, a y-subrun and a z-subrun, each of length nmon.
//
//   - user layout, vec3: index = 3*m*ns + 3*i + a — monomer-major,
//     site-minor, with x/y/z interleaved per site (an ordinary xyz
//     triplet array).

// ReorderScalar converts a per-site scalar array from user layout to
// core layout.
func ReorderScalar(spec Spec, user []float64) []float64 {
	core := make([]float64, len(user))
	for _, b := range spec.blocks() {
		ns, nmon := b.Type.NSites, b.Type.NMon
		for m := 0; m < nmon; m++ {
			for i := 0; i < ns; i++ {
				core[b.FirstSiteCore+i*nmon+m] = user[b.FirstSiteCore+m*ns+i]
			}
		}
	}
	return core
}

// UnreorderScalar converts a per-site scalar array from core layout
// back to user layout.
func UnreorderScalar(spec Spec, core []float64) []float64 {
	user := make([]float64, len(core))
	for _, b := range spec.blocks() {
		ns, nmon := b.Type.NSites, b.Type.NMon
		for m := 0; m < nmon; m++ {
			for i := 0; i < ns; i++ {
				user[b.FirstSiteCore+m*ns+i] = core[b.FirstSiteCore+i*nmon+m]
			}
		}
	}
	return user
}

// ReorderVec3 converts a per-site 3-vector array (xyz, pol-sqrt
// triplicated, ...) from user layout to core layout.
func ReorderVec3(spec Spec, user []float64) []float64 {
	core := make([]float64, len(user))
	for _, b := range spec.blocks() {
		ns, nmon := b.Type.NSites, b.Type.NMon
		for m := 0; m < nmon; m++ {
			for i := 0; i < ns; i++ {
				for a := 0; a < 3; a++ {
					core[b.FirstCrdCore+3*i*nmon+a*nmon+m] = user[b.FirstCrdCore+3*m*ns+3*i+a]
				}
			}
		}
	}
	return core
}

// UnreorderVec3 converts a per-site 3-vector array from core layout
// back to user layout, returning a newly allocated array.
func UnreorderVec3(spec Spec, core []float64) []float64 {
	user := make([]float64, len(core))
	for _, b := range spec.blocks() {
		ns, nmon := b.Type.NSites, b.Type.NMon
		for m := 0; m < nmon; m++ {
			for i := 0; i < ns; i++ {
				for a := 0; a < 3; a++ {
					user[b.FirstCrdCore+3*m*ns+3*i+a] = core[b.FirstCrdCore+3*i*nmon+a*nmon+m]
				}
			}
		}
	}
	return user
}

// BroadcastScalarToVec3Core expands a per-site scalar array already in
// core layout (e.g. pol, sqrt(pol)) into a vec3 core-layout array
// where every site's x, y and z slot all hold that site's scalar
// value — used to scale a core-layout vec3 array (dipoles, fields)
// component-wise by a per-site factor without leaving core layout.
func BroadcastScalarToVec3Core(spec Spec, scalarCore []float64) []float64 {
	vec3 := make([]float64, 3*len(scalarCore))
	for _, b := range spec.blocks() {
		ns, nmon := b.Type.NSites, b.Type.NMon
		for m := 0; m < nmon; m++ {
			for i := 0; i < ns; i++ {
				v := scalarCore[b.FirstSiteCore+i*nmon+m]
				off := b.FirstCrdCore + 3*i*nmon + m
				vec3[off] = v
				vec3[off+nmon] = v
				vec3[off+2*nmon] = v
			}
		}
	}
	return vec3
}

// UnreorderAccumulateGrad adds a core-layout gradient array into a
// user-layout gradient array in place, mirroring the source's
// `grad[...] += grad_[...]` accumulation during CalculateGradients
// (gradients accumulate onto whatever the host already holds in
// userGrad, they do not overwrite it).
func UnreorderAccumulateGrad(spec Spec, core []float64, userGrad []float64) {
	for _, b := range spec.blocks() {
		ns, nmon := b.Type.NSites, b.Type.NMon
		for m := 0; m < nmon; m++ {
			for i := 0; i < ns; i++ {
				for a := 0; a < 3; a++ {
					userGrad[b.FirstCrdCore+3*m*ns+3*i+a] += core[b.FirstCrdCore+3*i*nmon+a*nmon+m]
				}
			}
		}
	}
}

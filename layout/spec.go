// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layout describes the structure-of-arrays "core" layout the
// pair kernels vectorise over, the flat "user" layout a host presents
// its system in, and the bijection between them.
package layout

// MonType describes one monomer type: ID identifies it to a
// topo.Topology (bond exclusions, virtual-site redistribution, ...),
// NSites is the number of sites per monomer of this type, and NMon is
// how many monomers of this type are present in the system.
type MonType struct {
	ID     string
	NSites int
	NMon   int
}

// Spec is the system's monomer-type table, analogous to the source's
// mon_type_count_/sites_/mon_id_ arrays collapsed into one slice.
type Spec struct {
	Types []MonType
}

// NSites returns the total site count across every monomer of every type.
func (o Spec) NSites() int {
	n := 0
	for _, t := range o.Types {
		n += t.NSites * t.NMon
	}
	return n
}

// Block carries one monomer type's offsets into the flat scalar/vec3
// core and user arrays (the site-count and 3x-site-count offsets are
// the same in both layouts — only the arrangement within a block
// differs, see reorder.go).
type Block struct {
	Type          MonType
	FirstSiteCore int
	FirstCrdCore  int
}

// Blocks returns the per-monomer-type offset table for o, in type
// order, for use by any package that must loop over the system
// monomer-type by monomer-type (field, dipole, grad).
func (o Spec) Blocks() []Block {
	bs := make([]Block, len(o.Types))
	fiSite, fiCrd := 0, 0
	for k, t := range o.Types {
		bs[k] = Block{Type: t, FirstSiteCore: fiSite, FirstCrdCore: fiCrd}
		n := t.NSites * t.NMon
		fiSite += n
		fiCrd += 3 * n
	}
	return bs
}

// blocks is a package-private alias kept for reorder.go's brevity.
func (o Spec) blocks() []Block { return o.Blocks() }

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

// pairKey orders a site pair so (i,j) and (j,i) hash the same.
type pairKey [2]int

func key(i, j int) pairKey {
	if i <= j {
		return pairKey{i, j}
	}
	return pairKey{j, i}
}

// ExcludedSets holds the bonded-topology 1-2, 1-3 and 1-4 site pairs
// for one monomer type, mirroring systools::GetExcluded's three
// excluded_set_type outputs in the source this is grounded on.
type ExcludedSets struct {
	Exc12 map[pairKey]struct{}
	Exc13 map[pairKey]struct{}
	Exc14 map[pairKey]struct{}
}

// NewExcludedSets returns an ExcludedSets with all three sets allocated empty.
func NewExcludedSets() ExcludedSets {
	return ExcludedSets{
		Exc12: make(map[pairKey]struct{}),
		Exc13: make(map[pairKey]struct{}),
		Exc14: make(map[pairKey]struct{}),
	}
}

// Add12/Add13/Add14 record a bonded pair (i,j) of site indices within
// one monomer as 1-2, 1-3 or 1-4 bonded respectively.
func (o ExcludedSets) Add12(i, j int) { o.Exc12[key(i, j)] = struct{}{} }
func (o ExcludedSets) Add13(i, j int) { o.Exc13[key(i, j)] = struct{}{} }
func (o ExcludedSets) Add14(i, j int) { o.Exc14[key(i, j)] = struct{}{} }

// IsExcluded reports whether (i,j) is present in set, mirroring
// systools::IsExcluded.
func IsExcluded(set map[pairKey]struct{}, i, j int) bool {
	_, ok := set[key(i, j)]
	return ok
}

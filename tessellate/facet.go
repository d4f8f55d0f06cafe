// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package tessellate

import (
	"github.com/kcad/plantmodel/internal/linear"
	"github.com/kcad/plantmodel/primitive"
)

// vertexKey is the exact (position, normal) pair used to deduplicate
// facet-group vertices (spec.md 4.4, step 2).
type vertexKey struct {
	px, py, pz float32
	nx, ny, nz float32
}

func keyOf(v primitive.FacetVertex) vertexKey {
	return vertexKey{
		v.Position.X, v.Position.Y, v.Position.Z,
		v.Normal.X, v.Normal.Y, v.Normal.Z,
	}
}

// dedupTable accumulates the welded position/normal arrays shared by
// every patch in a facet group.
type dedupTable struct {
	index     map[vertexKey]uint32
	positions []linear.Vector3
	normals   []linear.Vector3
}

func newDedupTable() *dedupTable {
	return &dedupTable{index: make(map[vertexKey]uint32)}
}

// intern returns the shared index for v, appending a new entry only
// if this exact (position, normal) pair has not been seen before
// (spec.md 4.4, "Facet-group tessellation" step 2: "New vertices
// append to both arrays; duplicates reuse the existing index").
func (d *dedupTable) intern(v primitive.FacetVertex) uint32 {
	k := keyOf(v)
	if idx, ok := d.index[k]; ok {
		return idx
	}
	idx := uint32(len(d.positions))
	d.positions = append(d.positions, v.Position)
	d.normals = append(d.normals, v.Normal)
	d.index[k] = idx
	return idx
}

// fresh appends a brand-new vertex unconditionally — used when the
// polygon tessellator must synthesize a vertex at a contour
// intersection, whose normal is fixed to (0,1,0) by convention
// (spec.md 4.4 step 3, a documented limitation).
func (d *dedupTable) fresh(pos linear.Vector3) uint32 {
	idx := uint32(len(d.positions))
	d.positions = append(d.positions, pos)
	d.normals = append(d.normals, linear.Vector3{Y: 1})
	return idx
}

// FacetGroup tessellates an explicit polygon mesh: vertices are
// welded into shared position/normal arrays by exact (position,
// normal) equality, then each patch's contours are triangulated by a
// general polygon tessellator that accepts holes of arbitrary winding
// (spec.md 4.4, "Facet-group tessellation"). Positions and normals
// stay 1:1 throughout, so NormalIndex is left empty.
func FacetGroup(fg primitive.FacetGroup, _ Options) Mesh {
	table := newDedupTable()
	var positionIndex []uint32

	for _, patch := range fg.Patches {
		positionIndex = append(positionIndex, tessellatePatch(patch, table)...)
	}

	return Mesh{
		Positions:     table.positions,
		Normals:       table.normals,
		PositionIndex: positionIndex,
	}
}

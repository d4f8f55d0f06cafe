// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package tessellate converts each parametric PlantModel primitive
// into an indexed triangle mesh at a configurable resolution
// (spec.md 4.4). The tessellator is stateless: each call allocates
// and returns a fresh Mesh owned by the caller (spec.md 9, "Ownership
// of meshes"); there is no pooling and no interior pointers.
package tessellate

import (
	"math"

	"github.com/kcad/plantmodel/internal/linear"
)

// Mesh is the indexed triangle mesh every primitive builder returns.
// NormalIndex is left empty when normals are shared 1:1 with
// positions (spec.md 4.4): callers should fall back to PositionIndex
// for normal lookups in that case.
type Mesh struct {
	Positions     []linear.Vector3
	Normals       []linear.Vector3
	PositionIndex []uint32
	NormalIndex   []uint32
}

// Options controls tessellation resolution (spec.md 4.4, 6.4).
type Options struct {
	// MaxSideSize is the target world-space chord length of a
	// subdivided segment.
	MaxSideSize float32
	// MinSides is a lower bound on radial/angular subdivision.
	MinSides int
}

// DefaultOptions mirrors commonly-used defaults for plant-CAD viewers:
// fine enough to look round, coarse enough not to explode small
// fittings into thousands of triangles.
func DefaultOptions() Options {
	return Options{MaxSideSize: 0.1, MinSides: 8}
}

// sides returns the number of radial/angular subdivisions for a
// feature of the given world-space radius: max(MinSides,
// ceil(2*pi*radius / MaxSideSize)) (spec.md 4.4).
func (o Options) sides(radius float32) int {
	min := o.MinSides
	if min < 1 {
		min = 1
	}
	if radius <= 0 || o.MaxSideSize <= 0 {
		return min
	}
	n := int(math.Ceil(float64(2*math.Pi*radius) / float64(o.MaxSideSize)))
	if n < min {
		return min
	}
	return n
}

// arcSides returns the number of subdivisions for an arc of the given
// sweep angle (radians) and radius, floored by MinSides.
func (o Options) arcSides(angle, radius float32) int {
	min := o.MinSides
	if min < 1 {
		min = 1
	}
	if angle <= 0 || radius <= 0 || o.MaxSideSize <= 0 {
		return min
	}
	n := int(math.Ceil(float64(angle*radius) / float64(o.MaxSideSize)))
	if n < min {
		return min
	}
	return n
}

// meshBuilder accumulates positions/normals/indices one at a time;
// RectangularTorus builds its mesh through it, the other builders
// append to a Mesh directly.
type meshBuilder struct {
	m Mesh
}

func (b *meshBuilder) addPosition(v linear.Vector3) uint32 {
	b.m.Positions = append(b.m.Positions, v)
	return uint32(len(b.m.Positions) - 1)
}

func (b *meshBuilder) addNormal(v linear.Vector3) uint32 {
	b.m.Normals = append(b.m.Normals, v)
	return uint32(len(b.m.Normals) - 1)
}

func (b *meshBuilder) triangle(p0, p1, p2 uint32, n0, n1, n2 uint32) {
	b.m.PositionIndex = append(b.m.PositionIndex, p0, p1, p2)
	b.m.NormalIndex = append(b.m.NormalIndex, n0, n1, n2)
}

func (b *meshBuilder) mesh() Mesh { return b.m }

func unitNormal(p0, p1, p2 linear.Vector3) linear.Vector3 {
	n := p1.Sub(p0).Cross(p2.Sub(p0))
	u, _ := n.Normalize()
	return u
}

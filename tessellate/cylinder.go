// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package tessellate

import (
	"math"

	"github.com/kcad/plantmodel/internal/linear"
	"github.com/kcad/plantmodel/primitive"
)

// Cylinder tessellates a right circular cylinder with s radial steps
// (s = max(MinSides, ceil(2*pi*radius/MaxSideSize))), 2s positions
// (bottom ring then top ring interleaved in pairs), s normals (one
// per radial sample, shared between a bottom/top pair), and 2s
// triangles. The builder emits no caps (spec.md 8, scenario E).
func Cylinder(c primitive.Cylinder, opts Options) Mesh {
	s := opts.sides(c.Radius)

	m := Mesh{
		Positions: make([]linear.Vector3, 0, 2*s),
		Normals:   make([]linear.Vector3, 0, s),
	}

	for i := 0; i < s; i++ {
		theta := 2 * math.Pi * float64(i) / float64(s)
		cx, sy := float32(math.Cos(theta)), float32(math.Sin(theta))
		m.Positions = append(m.Positions,
			linear.Vector3{X: c.Radius * cx, Y: c.Radius * sy, Z: 0},
			linear.Vector3{X: c.Radius * cx, Y: c.Radius * sy, Z: c.Height},
		)
		m.Normals = append(m.Normals, linear.Vector3{X: cx, Y: sy, Z: 0})
	}

	for i := 0; i < s; i++ {
		v := uint32(2 * i)
		next := uint32(2 * ((i + 1) % s))

		// (v, v+2 mod 2s, v+1)
		m.PositionIndex = append(m.PositionIndex, v, next, v+1)
		m.NormalIndex = append(m.NormalIndex, normalForCylinderVertex(v, s), normalForCylinderVertex(next, s), normalForCylinderVertex(v+1, s))

		// (v+1, v+2 mod 2s, v+3 mod 2s)
		m.PositionIndex = append(m.PositionIndex, v+1, next, next+1)
		m.NormalIndex = append(m.NormalIndex, normalForCylinderVertex(v+1, s), normalForCylinderVertex(next, s), normalForCylinderVertex(next+1, s))
	}

	return m
}

// normalForCylinderVertex maps a position index in the interleaved
// bottom/top layout back to its shared radial-sample normal index.
func normalForCylinderVertex(positionIndex uint32, s int) uint32 {
	return (positionIndex / 2) % uint32(s)
}

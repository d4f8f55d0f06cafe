// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package tessellate

import (
	"github.com/kcad/plantmodel/internal/linear"
	"github.com/kcad/plantmodel/primitive"
)

// boxFace lists the four corners of one face, in winding order such
// that (c1-c0) x (c2-c0) points along Normal.
type boxFace struct {
	Normal linear.Vector3
	Corner func(hx, hy, hz float32) [4]linear.Vector3
}

var boxFaces = [6]boxFace{
	{ // +X
		Normal: linear.Vector3{X: 1},
		Corner: func(hx, hy, hz float32) [4]linear.Vector3 {
			return [4]linear.Vector3{
				{X: hx, Y: -hy, Z: -hz}, {X: hx, Y: hy, Z: -hz},
				{X: hx, Y: hy, Z: hz}, {X: hx, Y: -hy, Z: hz},
			}
		},
	},
	{ // -X
		Normal: linear.Vector3{X: -1},
		Corner: func(hx, hy, hz float32) [4]linear.Vector3 {
			return [4]linear.Vector3{
				{X: -hx, Y: -hy, Z: -hz}, {X: -hx, Y: -hy, Z: hz},
				{X: -hx, Y: hy, Z: hz}, {X: -hx, Y: hy, Z: -hz},
			}
		},
	},
	{ // +Y
		Normal: linear.Vector3{Y: 1},
		Corner: func(hx, hy, hz float32) [4]linear.Vector3 {
			return [4]linear.Vector3{
				{X: -hx, Y: hy, Z: -hz}, {X: -hx, Y: hy, Z: hz},
				{X: hx, Y: hy, Z: hz}, {X: hx, Y: hy, Z: -hz},
			}
		},
	},
	{ // -Y
		Normal: linear.Vector3{Y: -1},
		Corner: func(hx, hy, hz float32) [4]linear.Vector3 {
			return [4]linear.Vector3{
				{X: -hx, Y: -hy, Z: -hz}, {X: hx, Y: -hy, Z: -hz},
				{X: hx, Y: -hy, Z: hz}, {X: -hx, Y: -hy, Z: hz},
			}
		},
	},
	{ // +Z
		Normal: linear.Vector3{Z: 1},
		Corner: func(hx, hy, hz float32) [4]linear.Vector3 {
			return [4]linear.Vector3{
				{X: -hx, Y: -hy, Z: hz}, {X: hx, Y: -hy, Z: hz},
				{X: hx, Y: hy, Z: hz}, {X: -hx, Y: hy, Z: hz},
			}
		},
	},
	{ // -Z
		Normal: linear.Vector3{Z: -1},
		Corner: func(hx, hy, hz float32) [4]linear.Vector3 {
			return [4]linear.Vector3{
				{X: -hx, Y: -hy, Z: -hz}, {X: -hx, Y: hy, Z: -hz},
				{X: hx, Y: hy, Z: -hz}, {X: hx, Y: -hy, Z: -hz},
			}
		},
	},
}

// Box tessellates a box primitive. It always produces 24 positions (4
// per face), 6 per-face normals, and 36 position/normal indices
// regardless of the resolution options (spec.md 8, "Box mesh
// cardinality") — a box has no curved surface to subdivide.
func Box(b primitive.Box, _ Options) Mesh {
	hx, hy, hz := b.LX/2, b.LY/2, b.LZ/2

	m := Mesh{
		Positions:     make([]linear.Vector3, 0, 24),
		Normals:       make([]linear.Vector3, 0, 6),
		PositionIndex: make([]uint32, 0, 36),
		NormalIndex:   make([]uint32, 0, 36),
	}

	for faceIdx, face := range boxFaces {
		corners := face.Corner(hx, hy, hz)
		base := uint32(len(m.Positions))
		m.Positions = append(m.Positions, corners[:]...)
		m.Normals = append(m.Normals, face.Normal)
		n := uint32(faceIdx)

		m.PositionIndex = append(m.PositionIndex,
			base+0, base+1, base+2,
			base+0, base+2, base+3,
		)
		m.NormalIndex = append(m.NormalIndex, n, n, n, n, n, n)
	}

	return m
}

// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package tessellate

import (
	"github.com/kcad/plantmodel/internal/linear"
	"github.com/kcad/plantmodel/primitive"
)

// Pyramid tessellates a frustum-capped pyramid: 8 corner positions (4
// bottom, 4 top), 4 trapezoidal side quads plus 2 cap quads, each as
// 2 triangles. A triangle is skipped whenever any two of its three
// positions are exactly equal, which happens at the apex when the top
// rectangle degenerates to a point (spec.md 4.4).
func Pyramid(p primitive.Pyramid, _ Options) Mesh {
	xb, yb := p.XBottom/2, p.YBottom/2
	xt, yt := p.XTop/2, p.YTop/2

	bottom := [4]linear.Vector3{
		{X: -xb, Y: -yb, Z: 0},
		{X: xb, Y: -yb, Z: 0},
		{X: xb, Y: yb, Z: 0},
		{X: -xb, Y: yb, Z: 0},
	}
	top := [4]linear.Vector3{
		{X: p.XOffset - xt, Y: p.YOffset - yt, Z: p.Height},
		{X: p.XOffset + xt, Y: p.YOffset - yt, Z: p.Height},
		{X: p.XOffset + xt, Y: p.YOffset + yt, Z: p.Height},
		{X: p.XOffset - xt, Y: p.YOffset + yt, Z: p.Height},
	}

	var corners [8]linear.Vector3
	copy(corners[0:4], bottom[:])
	copy(corners[4:8], top[:])

	m := Mesh{Positions: corners[:]}

	addTriangle := func(a, b, c int) {
		pa, pb, pc := corners[a], corners[b], corners[c]
		if pa.ExactEqual(pb) || pa.ExactEqual(pc) || pb.ExactEqual(pc) {
			return
		}
		n := unitNormal(pa, pb, pc)
		ni := uint32(len(m.Normals))
		m.Normals = append(m.Normals, n)
		m.PositionIndex = append(m.PositionIndex, uint32(a), uint32(b), uint32(c))
		m.NormalIndex = append(m.NormalIndex, ni, ni, ni)
	}

	// Side quads: bottom[i], bottom[i+1], top[i+1], top[i].
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		addTriangle(i, j, 4+j)
		addTriangle(i, 4+j, 4+i)
	}

	// Bottom cap (normal -Z), reverse winding relative to top.
	addTriangle(0, 3, 2)
	addTriangle(0, 2, 1)

	// Top cap (normal +Z).
	addTriangle(4, 5, 6)
	addTriangle(4, 6, 7)

	return m
}

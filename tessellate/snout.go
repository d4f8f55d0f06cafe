// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package tessellate

import (
	"math"

	"github.com/kcad/plantmodel/internal/linear"
	"github.com/kcad/plantmodel/primitive"
)

// Snout tessellates an oblique frustum: bottom circle of diameter
// DBottom centred at the origin, top circle of diameter DTop centred
// at (XOffset, YOffset, Height). Side positions are laid out
// interleaved like Cylinder (bottom_i, top_i pairs) with a per-slice
// normal computed from the slant between the two rings; two end-cap
// triangle fans each share one centre vertex. When Height == 0 the
// rings coincide (a degenerate disc) and every side normal is exactly
// (0,0,1) rather than an undefined slant direction (spec.md 4.4, 8
// scenario 6).
func Snout(sn primitive.Snout, opts Options) Mesh {
	rb, rt := sn.DBottom/2, sn.DTop/2
	maxR := rb
	if rt > maxR {
		maxR = rt
	}
	s := opts.sides(maxR)

	m := Mesh{
		Positions: make([]linear.Vector3, 0, 2*s+2),
		Normals:   make([]linear.Vector3, 0, s+2),
	}

	for i := 0; i < s; i++ {
		theta := 2 * math.Pi * float64(i) / float64(s)
		cx, sy := float32(math.Cos(theta)), float32(math.Sin(theta))
		bottom := linear.Vector3{X: rb * cx, Y: rb * sy, Z: 0}
		top := linear.Vector3{X: sn.XOffset + rt*cx, Y: sn.YOffset + rt*sy, Z: sn.Height}
		m.Positions = append(m.Positions, bottom, top)

		var n linear.Vector3
		if sn.Height == 0 {
			n = linear.Vector3{Z: 1}
		} else {
			slant := top.Sub(bottom)
			tangent := linear.Vector3{X: -sy, Y: cx, Z: 0}
			n = unitNormal(linear.Vector3{}, tangent, slant)
			if n.Dot(linear.Vector3{X: cx, Y: sy, Z: 0}) < 0 {
				n = n.Scale(-1)
			}
		}
		m.Normals = append(m.Normals, n)
	}

	sideNormal := func(positionIndex uint32) uint32 { return (positionIndex / 2) % uint32(s) }

	for i := 0; i < s; i++ {
		v := uint32(2 * i)
		next := uint32(2 * ((i + 1) % s))
		m.PositionIndex = append(m.PositionIndex, v, next, v+1)
		m.NormalIndex = append(m.NormalIndex, sideNormal(v), sideNormal(next), sideNormal(v+1))
		m.PositionIndex = append(m.PositionIndex, v+1, next, next+1)
		m.NormalIndex = append(m.NormalIndex, sideNormal(v+1), sideNormal(next), sideNormal(next+1))
	}

	centerBottom := uint32(len(m.Positions))
	m.Positions = append(m.Positions, linear.Vector3{})
	centerTop := uint32(len(m.Positions))
	m.Positions = append(m.Positions, linear.Vector3{X: sn.XOffset, Y: sn.YOffset, Z: sn.Height})

	bottomNormalIdx := uint32(len(m.Normals))
	m.Normals = append(m.Normals, linear.Vector3{Z: -1})
	topNormalIdx := uint32(len(m.Normals))
	m.Normals = append(m.Normals, linear.Vector3{Z: 1})

	for i := 0; i < s; i++ {
		next := (i + 1) % s
		bi, bj := uint32(2*i), uint32(2*next)
		ti, tj := bi+1, bj+1

		m.PositionIndex = append(m.PositionIndex, centerBottom, bj, bi)
		m.NormalIndex = append(m.NormalIndex, bottomNormalIdx, bottomNormalIdx, bottomNormalIdx)

		m.PositionIndex = append(m.PositionIndex, centerTop, ti, tj)
		m.NormalIndex = append(m.NormalIndex, topNormalIdx, topNormalIdx, topNormalIdx)
	}

	return m
}

// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package tessellate

import (
	"math"

	"github.com/kcad/plantmodel/internal/linear"
	"github.com/kcad/plantmodel/primitive"
)

// RectangularTorus tessellates a rectangular cross-section swept
// through Angle radians, sides = max(MinSides,
// ceil(Angle*ROutside/MaxSideSize)) (spec.md 4.4). The cross-section
// spans [RInside, ROutside] radially and [0, Height] vertically. Four
// ruled strips (inner wall, outer wall, top, bottom) connect
// consecutive arc steps; two planar end caps close the sweep, with
// normals fixed to the arc-endpoint tangents' perpendiculars (0,-1,0)
// at the start and (-sin(Angle), cos(Angle), 0) at the end (spec.md
// 4.4).
func RectangularTorus(t primitive.RectangularTorus, opts Options) Mesh {
	sides := opts.arcSides(t.Angle, t.ROutside)

	b := &meshBuilder{}

	type ring struct{ innerBottom, innerTop, outerBottom, outerTop uint32 }
	rings := make([]ring, sides+1)

	for i := 0; i <= sides; i++ {
		theta := float64(t.Angle) * float64(i) / float64(sides)
		cx, sy := float32(math.Cos(theta)), float32(math.Sin(theta))

		rings[i] = ring{
			innerBottom: b.addPosition(linear.Vector3{X: t.RInside * cx, Y: t.RInside * sy, Z: 0}),
			innerTop:    b.addPosition(linear.Vector3{X: t.RInside * cx, Y: t.RInside * sy, Z: t.Height}),
			outerBottom: b.addPosition(linear.Vector3{X: t.ROutside * cx, Y: t.ROutside * sy, Z: 0}),
			outerTop:    b.addPosition(linear.Vector3{X: t.ROutside * cx, Y: t.ROutside * sy, Z: t.Height}),
		}
	}

	for i := 0; i < sides; i++ {
		theta0 := float64(t.Angle) * float64(i) / float64(sides)
		theta1 := float64(t.Angle) * float64(i+1) / float64(sides)
		c0, s0 := float32(math.Cos(theta0)), float32(math.Sin(theta0))
		c1, s1 := float32(math.Cos(theta1)), float32(math.Sin(theta1))

		nInner0 := b.addNormal(linear.Vector3{X: -c0, Y: -s0, Z: 0})
		nInner1 := b.addNormal(linear.Vector3{X: -c1, Y: -s1, Z: 0})
		quad(b, rings[i].innerBottom, rings[i+1].innerBottom, rings[i+1].innerTop, rings[i].innerTop,
			nInner0, nInner1, nInner1, nInner0)

		nOuter0 := b.addNormal(linear.Vector3{X: c0, Y: s0, Z: 0})
		nOuter1 := b.addNormal(linear.Vector3{X: c1, Y: s1, Z: 0})
		quad(b, rings[i].outerTop, rings[i+1].outerTop, rings[i+1].outerBottom, rings[i].outerBottom,
			nOuter0, nOuter1, nOuter1, nOuter0)

		nTop := b.addNormal(linear.Vector3{Z: 1})
		quad(b, rings[i].innerTop, rings[i+1].innerTop, rings[i+1].outerTop, rings[i].outerTop,
			nTop, nTop, nTop, nTop)

		nBottom := b.addNormal(linear.Vector3{Z: -1})
		quad(b, rings[i].innerBottom, rings[i].outerBottom, rings[i+1].outerBottom, rings[i+1].innerBottom,
			nBottom, nBottom, nBottom, nBottom)
	}

	startNormal := b.addNormal(linear.Vector3{Y: -1})
	quad(b, rings[0].innerBottom, rings[0].outerBottom, rings[0].outerTop, rings[0].innerTop,
		startNormal, startNormal, startNormal, startNormal)

	endSin, endCos := float32(math.Sin(float64(t.Angle))), float32(math.Cos(float64(t.Angle)))
	endNormal := b.addNormal(linear.Vector3{X: -endSin, Y: endCos, Z: 0})
	last := rings[sides]
	quad(b, last.innerTop, last.outerTop, last.outerBottom, last.innerBottom,
		endNormal, endNormal, endNormal, endNormal)

	return b.mesh()
}

// quad emits two triangles for the quad (p0,p1,p2,p3) in that winding
// order, one normal index per vertex.
func quad(b *meshBuilder, p0, p1, p2, p3 uint32, n0, n1, n2, n3 uint32) {
	b.triangle(p0, p1, p2, n0, n1, n2)
	b.triangle(p0, p2, p3, n0, n2, n3)
}

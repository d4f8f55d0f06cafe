// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package tessellate

import (
	"math"

	"github.com/kcad/plantmodel/internal/linear"
	"github.com/kcad/plantmodel/primitive"
)

// CircularTorus tessellates a circular cross-section swept through
// Angle radians: tsides segments around the sweep, csides around the
// tube, plus flat end caps centred at each arc endpoint (spec.md
// 4.4). The reference behaviour reuses the position-index array
// directly as the normal-index array rather than building a separate
// one, and this builder keeps that aliasing (spec.md 9). Because it
// appends exactly one normal per tube position, the aliased indices
// select the right normal for any tsides and csides.
func CircularTorus(t primitive.CircularTorus, opts Options) Mesh {
	centerRadius := (t.RInside + t.ROutside) / 2
	tubeRadius := (t.ROutside - t.RInside) / 2

	tsides := opts.arcSides(t.Angle, t.ROutside)
	csides := opts.sides(tubeRadius)

	m := Mesh{}
	cols := csides + 1
	index := func(t, c int) uint32 { return uint32(t*cols + c) }

	for ti := 0; ti <= tsides; ti++ {
		theta := float64(t.Angle) * float64(ti) / float64(tsides)
		ct, st := float32(math.Cos(theta)), float32(math.Sin(theta))
		for ci := 0; ci <= csides; ci++ {
			phi := 2 * math.Pi * float64(ci) / float64(csides)
			cp, sp := float32(math.Cos(phi)), float32(math.Sin(phi))

			radial := centerRadius + tubeRadius*cp
			pos := linear.Vector3{X: radial * ct, Y: radial * st, Z: tubeRadius * sp}
			m.Positions = append(m.Positions, pos)

			// Tube-local outward normal, rotated into the sweep frame.
			m.Normals = append(m.Normals, linear.Vector3{X: cp * ct, Y: cp * st, Z: sp})
		}
	}

	for ti := 0; ti < tsides; ti++ {
		for ci := 0; ci < csides; ci++ {
			a := index(ti, ci)
			b := index(ti, ci+1)
			c := index(ti+1, ci)
			d := index(ti+1, ci+1)
			m.PositionIndex = append(m.PositionIndex, a, b, c, b, d, c)
		}
	}

	// The reference behaviour aliases normal lookups onto the
	// position-index array (spec.md 9): normal_index carries the same
	// values as position_index for the tube surface. Copied rather
	// than slice-aliased so the cap fans below can extend each
	// independently without clobbering the other through shared
	// backing storage.
	m.NormalIndex = append([]uint32(nil), m.PositionIndex...)

	startCenter := linear.Vector3{X: centerRadius, Y: 0, Z: 0}
	endTheta := float64(t.Angle)
	endCenter := linear.Vector3{X: centerRadius * float32(math.Cos(endTheta)), Y: centerRadius * float32(math.Sin(endTheta)), Z: 0}
	appendCapFan(&m, startCenter, linear.Vector3{Y: -1}, 0, csides, cols, false)
	appendCapFan(&m, endCenter, linear.Vector3{X: -float32(math.Sin(endTheta)), Y: float32(math.Cos(endTheta))}, tsides, csides, cols, true)

	return m
}

// appendCapFan closes the tube's circular cross-section at sweep
// index ti with a triangle fan around a centre vertex.
func appendCapFan(m *Mesh, center, normal linear.Vector3, ti, csides, cols int, reverse bool) {
	centerIdx := uint32(len(m.Positions))
	m.Positions = append(m.Positions, center)
	m.Normals = append(m.Normals, normal)
	normalIdx := uint32(len(m.Normals) - 1)

	for ci := 0; ci < csides; ci++ {
		a := uint32(ti*cols + ci)
		b := uint32(ti*cols + ci + 1)
		if reverse {
			a, b = b, a
		}
		m.PositionIndex = append(m.PositionIndex, centerIdx, a, b)
		m.NormalIndex = append(m.NormalIndex, normalIdx, normalIdx, normalIdx)
	}
}

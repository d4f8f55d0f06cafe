// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package tessellate

import (
	"math"

	"github.com/kcad/plantmodel/internal/linear"
	"github.com/kcad/plantmodel/primitive"
)

// Sphere tessellates a UV sphere with s = max(8, MinSides)
// meridians/parallels (spec.md 4.4). Positions and normals coincide
// (each position is the outward unit direction scaled by radius), so
// NormalIndex is left empty and callers reuse PositionIndex for
// normal lookups. Pole rows are degenerate: this builder keeps the
// duplicate vertices rather than special-casing them away (spec.md
// 4.4, "Pole rows are degenerate").
func Sphere(sp primitive.Sphere, opts Options) Mesh {
	radius := sp.Diameter / 2
	s := opts.MinSides
	if s < 8 {
		s = 8
	}
	return uvSphereCap(radius, 0, math.Pi, s, s)
}

// uvSphereCap builds a UV-sphere patch of radius r between colatitude
// phiMin (0 = north pole) and phiMax (pi = south pole), with
// latSides latitude rows and lonSides longitude columns. It is shared
// by Sphere and the SphericalDish full-sphere fallback.
func uvSphereCap(r float32, phiMin, phiMax float64, latSides, lonSides int) Mesh {
	m := Mesh{}

	rows := latSides + 1
	cols := lonSides + 1 // duplicate seam column, closes the wrap

	index := func(row, col int) uint32 { return uint32(row*cols + col) }

	for row := 0; row < rows; row++ {
		phi := phiMin + (phiMax-phiMin)*float64(row)/float64(latSides)
		sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
		for col := 0; col < cols; col++ {
			theta := 2 * math.Pi * float64(col) / float64(lonSides)
			x := float32(sinPhi * math.Cos(theta))
			y := float32(sinPhi * math.Sin(theta))
			z := float32(cosPhi)
			dir := linear.Vector3{X: x, Y: y, Z: z}
			m.Positions = append(m.Positions, dir.Scale(r))
			m.Normals = append(m.Normals, dir)
		}
	}

	for row := 0; row < latSides; row++ {
		for col := 0; col < lonSides; col++ {
			a := index(row, col)
			b := index(row, col+1)
			c := index(row+1, col)
			d := index(row+1, col+1)
			m.PositionIndex = append(m.PositionIndex, a, c, b, b, c, d)
		}
	}

	return m
}

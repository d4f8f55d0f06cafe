// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package tessellate

import (
	"math"

	"github.com/kcad/plantmodel/internal/linear"
	"github.com/kcad/plantmodel/primitive"
)

// EllipticalDish tessellates a quarter-ellipse revolved about Z:
// sides latitudes (equator to apex) by csides longitudes, with a
// single apex vertex closing the top (spec.md 4.4). Diameter is the
// full equatorial opening; Radius is the polar semi-axis.
func EllipticalDish(d primitive.EllipticalDish, opts Options) Mesh {
	a := d.Diameter / 2
	b := d.Radius

	maxR := a
	if b > maxR {
		maxR = b
	}
	sides := opts.sides(maxR)
	csides := opts.sides(a)

	return revolveQuarterDome(
		func(phi float64) (radial, z float32) {
			return a * float32(math.Cos(phi)), b * float32(math.Sin(phi))
		},
		func(phi float64) linear.Vector3 {
			// Outward normal of an ellipse of revolution: gradient of
			// (x/a)^2+(y/a)^2+(z/b)^2=1, normalised.
			n := linear.Vector3{
				X: float32(math.Cos(phi)) / a,
				Y: 0,
				Z: float32(math.Sin(phi)) / b,
			}
			u, _ := n.Normalize()
			return u
		},
		0, math.Pi/2, sides, csides,
	)
}

// SphericalDish tessellates a spherical cap of radius r =
// (diameter^2 + 4*height^2) / (8*height), subtended from angle
// asin(1 - height/r) to pi/2 measured from the equatorial plane of
// that sphere. When height >= diameter the cap is at least a
// hemisphere and this delegates to the full UV sphere builder so the
// result is identical to Sphere{Diameter: diameter} (spec.md 8,
// scenario F).
func SphericalDish(d primitive.SphericalDish, opts Options) Mesh {
	if d.Height >= d.Diameter {
		return Sphere(primitive.Sphere{Diameter: d.Diameter}, opts)
	}

	r := (d.Diameter*d.Diameter + 4*d.Height*d.Height) / (8 * d.Height)
	startAngle := math.Asin(float64(1 - d.Height/r))

	sides := opts.sides(r)
	csides := opts.sides(d.Diameter / 2)

	center := linear.Vector3{Z: d.Height - r}

	m := revolveQuarterDome(
		func(psi float64) (radial, z float32) {
			return r * float32(math.Cos(psi)), r * float32(math.Sin(psi))
		},
		func(psi float64) linear.Vector3 {
			return linear.Vector3{X: float32(math.Cos(psi)), Z: float32(math.Sin(psi))}
		},
		startAngle, math.Pi/2, sides, csides,
	)
	for i := range m.Positions {
		m.Positions[i] = m.Positions[i].Add(center)
	}
	return m
}

// revolveQuarterDome builds a dome mesh by revolving a generating
// curve profile(angle) -> (radial distance from axis, height) about
// Z, for angle in [angleMin, angleMax] over `sides` steps, closed
// with a single apex vertex at angleMax and `csides` longitude
// divisions. normalAt gives the generating curve's outward normal in
// the X-Z half-plane (Y=0), rotated into each longitude like the
// position.
func revolveQuarterDome(
	profile func(angle float64) (radial, z float32),
	normalAt func(angle float64) linear.Vector3,
	angleMin, angleMax float64,
	sides, csides int,
) Mesh {
	m := Mesh{}
	cols := csides + 1
	index := func(row, col int) uint32 { return uint32(row*cols + col) }

	// sides rings from angleMin (row 0, the rim) up to but not
	// including the apex (the single vertex appended below), each with
	// csides+1 longitude columns (the last duplicating the first to
	// close the wrap).
	for row := 0; row < sides; row++ {
		angle := angleMin + (angleMax-angleMin)*float64(row)/float64(sides)
		radial, z := profile(angle)
		localN := normalAt(angle)
		for col := 0; col <= csides; col++ {
			theta := 2 * math.Pi * float64(col) / float64(csides)
			ct, st := float32(math.Cos(theta)), float32(math.Sin(theta))
			m.Positions = append(m.Positions, linear.Vector3{X: radial * ct, Y: radial * st, Z: z})
			m.Normals = append(m.Normals, linear.Vector3{X: localN.X * ct, Y: localN.X * st, Z: localN.Z})
		}
	}

	for row := 0; row < sides-1; row++ {
		for col := 0; col < csides; col++ {
			a := index(row, col)
			b := index(row, col+1)
			c := index(row+1, col)
			d := index(row+1, col+1)
			m.PositionIndex = append(m.PositionIndex, a, b, c, b, d, c)
		}
	}

	// Apex: a single vertex at angleMax, fanned from the outermost
	// generated ring.
	apexAngle := angleMax
	apexRadial, apexZ := profile(apexAngle)
	_ = apexRadial // by construction this is ~0 at the pole
	apexIdx := uint32(len(m.Positions))
	m.Positions = append(m.Positions, linear.Vector3{Z: apexZ})
	apexN := normalAt(apexAngle)
	m.Normals = append(m.Normals, linear.Vector3{X: 0, Y: 0, Z: apexN.Z})

	lastRing := sides - 1
	for col := 0; col < csides; col++ {
		a := index(lastRing, col)
		b := index(lastRing, col+1)
		m.PositionIndex = append(m.PositionIndex, a, b, apexIdx)
	}

	// Positions and normals are produced 1:1 throughout, so callers
	// reuse PositionIndex for normal lookups (spec.md 4.4).
	return m
}

// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package primitive defines the strongly-typed parameter records for
// the eleven kinds of PlantModel geometry a PRIM chunk can carry
// (spec.md 3, "Primitive"). The raw container format uses a single
// union with a kind integer; Kind keeps that wire shape as a small
// enum while the fields below are the tagged-variant equivalent the
// rest of the module works with.
package primitive

import "github.com/kcad/plantmodel/internal/linear"

// Kind identifies which of the eleven PRIM chunk bodies follows the
// common header (spec.md 4.2, "PRIM body").
type Kind uint32

// Primitive kinds, matching the wire value of primitiveKind.
const (
	KindPyramid Kind = iota + 1
	KindBox
	KindRectangularTorus
	KindCircularTorus
	KindEllipticalDish
	KindSphericalDish
	KindSnout
	KindCylinder
	KindSphere
	KindLine
	KindFacetGroup
)

// String names a Kind for logging and error messages.
func (k Kind) String() string {
	switch k {
	case KindPyramid:
		return "Pyramid"
	case KindBox:
		return "Box"
	case KindRectangularTorus:
		return "RectangularTorus"
	case KindCircularTorus:
		return "CircularTorus"
	case KindEllipticalDish:
		return "EllipticalDish"
	case KindSphericalDish:
		return "SphericalDish"
	case KindSnout:
		return "Snout"
	case KindCylinder:
		return "Cylinder"
	case KindSphere:
		return "Sphere"
	case KindLine:
		return "Line"
	case KindFacetGroup:
		return "FacetGroup"
	default:
		return "Unknown"
	}
}

// Valid reports whether k is one of the eleven known kinds.
func (k Kind) Valid() bool {
	return k >= KindPyramid && k <= KindFacetGroup
}

// Box is a rectangular solid described by its three full side
// lengths.
type Box struct {
	LX, LY, LZ float32
}

// Pyramid is a frustum-capped pyramid. The binary layout is
// authoritative over any conflicting documentation in the legacy
// source (spec.md 9, Open Questions): bottom/top rectangle extents,
// the top-rectangle offset from the bottom centre, then height.
type Pyramid struct {
	XBottom, YBottom float32
	XTop, YTop       float32
	XOffset, YOffset float32
	Height           float32
}

// RectangularTorus is a rectangular cross-section swept through Angle
// radians.
type RectangularTorus struct {
	RInside, ROutside float32
	Height            float32
	Angle             float32
}

// CircularTorus is a circular cross-section swept through Angle
// radians.
type CircularTorus struct {
	RInside, ROutside float32
	Angle             float32
}

// EllipticalDish is a quarter-ellipse surface of revolution.
// Diameter is the full bowl opening; Radius is the polar semi-axis.
type EllipticalDish struct {
	Diameter float32
	Radius   float32
}

// SphericalDish is a spherical cap. Height is the sagitta; when
// Height >= Diameter the cap degenerates to a full sphere (spec.md 8,
// scenario F).
type SphericalDish struct {
	Diameter float32
	Height   float32
}

// Snout is an oblique frustum (truncated cone with an offset top
// centre); Height == 0 is a legal degenerate disc. NormalOffsets
// carries the four legacy per-slice normal-offset floats: they are
// read off the wire but no downstream sink or the tessellator
// consumes them (spec.md 9, Open Questions) — kept for forward
// compatibility only.
type Snout struct {
	DBottom, DTop    float32
	Height           float32
	XOffset, YOffset float32
	NormalOffsets    [4]float32
}

// Cylinder is a right circular cylinder.
type Cylinder struct {
	Radius float32
	Height float32
}

// Sphere is a full sphere described by its diameter.
type Sphere struct {
	Diameter float32
}

// Line is a one-dimensional segment along local x.
type Line struct {
	StartX, EndX float32
}

// FacetVertex is one vertex of a facet-group contour: a position
// paired with its declared normal.
type FacetVertex struct {
	Position linear.Vector3
	Normal   linear.Vector3
}

// FacetContour is an ordered ring of vertices: the outer boundary of
// a patch, or one of its holes.
type FacetContour []FacetVertex

// FacetPatch is one or more contours that together bound a single
// (possibly non-convex, possibly holed) polygon.
type FacetPatch []FacetContour

// FacetGroup is the nested patches/contours/vertices list a PRIM
// chunk of kind 11 carries in place of a parametric solid (spec.md
// 4.2, "facetgroup" grammar).
type FacetGroup struct {
	Patches []FacetPatch
}

// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/kcad/plantmodel/event"
	"github.com/kcad/plantmodel/internal/linear"
	"github.com/kcad/plantmodel/palette"
	"github.com/kcad/plantmodel/primitive"
)

// statsSink embeds event.NopSink and overrides only what it needs to
// print a tree or a JSON tally, the way a dump tool is expected to be
// a thin consumer of the event stream rather than a real backend
// writer (spec.md 1, Non-goals).
type statsSink struct {
	event.NopSink

	depth int

	groups     int
	primitives map[string]int
}

func newStatsSink() *statsSink {
	return &statsSink{primitives: make(map[string]int)}
}

func (s *statsSink) indent() string {
	return strings.Repeat("  ", s.depth)
}

func (s *statsSink) StartGroup(name string, translation linear.Vector3, materialID uint32) {
	s.groups++
	fmt.Printf("%sgroup %q @ %v (material %d)\n", s.indent(), name, translation, materialID)
	s.depth++
}

func (s *statsSink) EndGroup() {
	s.depth--
}

func (s *statsSink) CreatePyramid(m linear.Matrix3x4, p primitive.Pyramid) {
	s.note(primitive.KindPyramid)
}

func (s *statsSink) CreateBox(m linear.Matrix3x4, b primitive.Box) {
	s.note(primitive.KindBox)
}

func (s *statsSink) CreateRectangularTorus(m linear.Matrix3x4, t primitive.RectangularTorus) {
	s.note(primitive.KindRectangularTorus)
}

func (s *statsSink) CreateCircularTorus(m linear.Matrix3x4, t primitive.CircularTorus) {
	s.note(primitive.KindCircularTorus)
}

func (s *statsSink) CreateEllipticalDish(m linear.Matrix3x4, d primitive.EllipticalDish) {
	s.note(primitive.KindEllipticalDish)
}

func (s *statsSink) CreateSphericalDish(m linear.Matrix3x4, d primitive.SphericalDish) {
	s.note(primitive.KindSphericalDish)
}

func (s *statsSink) CreateSnout(m linear.Matrix3x4, snt primitive.Snout) {
	s.note(primitive.KindSnout)
}

func (s *statsSink) CreateCylinder(m linear.Matrix3x4, c primitive.Cylinder) {
	s.note(primitive.KindCylinder)
}

func (s *statsSink) CreateSphere(m linear.Matrix3x4, sp primitive.Sphere) {
	s.note(primitive.KindSphere)
}

func (s *statsSink) CreateLine(m linear.Matrix3x4, startX, endX float32) {
	s.note(primitive.KindLine)
}

func (s *statsSink) CreateFacetGroup(m linear.Matrix3x4, fg primitive.FacetGroup) {
	s.note(primitive.KindFacetGroup)
}

func (s *statsSink) UpdateColorPalette(index uint32, rgba palette.RGBA) {}

func (s *statsSink) note(kind primitive.Kind) {
	s.primitives[kind.String()]++
	fmt.Printf("%s%s\n", s.indent(), kind)
}

func (s *statsSink) print(filename string) {
	fmt.Printf("%s: %d groups\n", filename, s.groups)
	for kind, count := range s.primitives {
		fmt.Printf("  %s: %d\n", kind, count)
	}
}

func (s *statsSink) summary() map[string]interface{} {
	return map[string]interface{}{
		"groups":     s.groups,
		"primitives": s.primitives,
	}
}

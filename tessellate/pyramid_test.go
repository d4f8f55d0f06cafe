// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package tessellate

import (
	"testing"

	"github.com/kcad/plantmodel/primitive"
)

func TestPyramidFrustum(t *testing.T) {
	p := primitive.Pyramid{XBottom: 4, YBottom: 4, XTop: 2, YTop: 2, Height: 1}
	m := Pyramid(p, DefaultOptions())

	if len(m.Positions) != 8 {
		t.Fatalf("Positions = %d, want 8", len(m.Positions))
	}
	// 4 side quads + 2 cap quads, all non-degenerate: 12 triangles.
	if got := len(m.PositionIndex) / 3; got != 12 {
		t.Fatalf("triangle count = %d, want 12", got)
	}
}

func TestPyramidApexSkipsDegenerateTriangles(t *testing.T) {
	// Top rectangle collapses to a point: every side quad contributes
	// exactly one non-degenerate triangle instead of two.
	p := primitive.Pyramid{XBottom: 4, YBottom: 4, XTop: 0, YTop: 0, Height: 3}
	m := Pyramid(p, DefaultOptions())

	for tri := 0; tri < len(m.PositionIndex); tri += 3 {
		a, b, c := m.Positions[m.PositionIndex[tri]], m.Positions[m.PositionIndex[tri+1]], m.Positions[m.PositionIndex[tri+2]]
		if a.ExactEqual(b) || b.ExactEqual(c) || a.ExactEqual(c) {
			t.Fatalf("triangle %d has a degenerate (repeated) vertex", tri/3)
		}
	}
	// 4 side triangles to the apex (the other side triangle per quad
	// collapses since both its top corners coincide at the apex), 2
	// bottom-cap triangles, and 0 top-cap triangles (all four top
	// corners coincide at the apex).
	if got := len(m.PositionIndex) / 3; got != 6 {
		t.Fatalf("triangle count = %d, want 6", got)
	}
}

// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package tessellate

import (
	"testing"

	"github.com/kcad/plantmodel/primitive"
)

func TestSphereNormalsMatchPositions(t *testing.T) {
	m := Sphere(primitive.Sphere{Diameter: 4}, DefaultOptions())

	if len(m.NormalIndex) != 0 {
		t.Fatalf("NormalIndex = %v, want empty (normals shared 1:1 with positions)", m.NormalIndex)
	}
	if len(m.Normals) != len(m.Positions) {
		t.Fatalf("Normals = %d, Positions = %d, want equal", len(m.Normals), len(m.Positions))
	}

	for i, p := range m.Positions {
		n := m.Normals[i]
		want := p.Scale(1 / p.Len())
		if !n.ApproxEqual(want) {
			t.Fatalf("position %d: normal %v does not point from centre through %v", i, n, p)
		}
	}
}

func TestSphereRadius(t *testing.T) {
	m := Sphere(primitive.Sphere{Diameter: 10}, DefaultOptions())
	for i, p := range m.Positions {
		if got := p.Len(); got < 4.999 || got > 5.001 {
			t.Fatalf("position %d has radius %v, want 5", i, got)
		}
	}
}

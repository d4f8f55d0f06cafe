// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package tessellate

import (
	"testing"

	"github.com/kcad/plantmodel/primitive"
)

func TestCylinderResolution(t *testing.T) {
	opts := Options{MaxSideSize: 0.5, MinSides: 8}
	m := Cylinder(primitive.Cylinder{Radius: 1, Height: 2}, opts)

	if len(m.Positions) != 26 {
		t.Fatalf("Positions = %d, want 26", len(m.Positions))
	}
	if len(m.Normals) != 13 {
		t.Fatalf("Normals = %d, want 13", len(m.Normals))
	}
}

func TestCylinderNoCaps(t *testing.T) {
	m := Cylinder(primitive.Cylinder{Radius: 1, Height: 2}, DefaultOptions())

	s := DefaultOptions().sides(1)
	if got := len(m.PositionIndex) / 3; got != 2*s {
		t.Fatalf("triangle count = %d, want %d (no end caps)", got, 2*s)
	}
}

func TestCylinderVertexOrdering(t *testing.T) {
	m := Cylinder(primitive.Cylinder{Radius: 1, Height: 3}, DefaultOptions())

	for i := 0; i < len(m.Positions); i += 2 {
		bottom, top := m.Positions[i], m.Positions[i+1]
		if bottom.Z != 0 {
			t.Fatalf("position %d expected on bottom ring (z=0), got z=%v", i, bottom.Z)
		}
		if top.Z != 3 {
			t.Fatalf("position %d expected on top ring (z=3), got z=%v", i+1, top.Z)
		}
	}
}

// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package tessellate

import (
	"testing"

	"github.com/kcad/plantmodel/primitive"
)

func TestBoxCardinality(t *testing.T) {
	m := Box(primitive.Box{LX: 2, LY: 4, LZ: 6}, DefaultOptions())

	if len(m.Positions) != 24 {
		t.Fatalf("Positions = %d, want 24", len(m.Positions))
	}
	if len(m.Normals) != 6 {
		t.Fatalf("Normals = %d, want 6", len(m.Normals))
	}
	if len(m.PositionIndex) != 36 {
		t.Fatalf("PositionIndex = %d, want 36", len(m.PositionIndex))
	}
	if len(m.NormalIndex) != 36 {
		t.Fatalf("NormalIndex = %d, want 36", len(m.NormalIndex))
	}
}

func TestBoxCardinalityIndependentOfResolution(t *testing.T) {
	coarse := Box(primitive.Box{LX: 1, LY: 1, LZ: 1}, Options{MaxSideSize: 100, MinSides: 1})
	fine := Box(primitive.Box{LX: 1, LY: 1, LZ: 1}, Options{MaxSideSize: 0.001, MinSides: 64})

	if len(coarse.Positions) != len(fine.Positions) {
		t.Fatalf("box position count depends on resolution: %d vs %d", len(coarse.Positions), len(fine.Positions))
	}
}

func TestBoxFaceWinding(t *testing.T) {
	m := Box(primitive.Box{LX: 2, LY: 2, LZ: 2}, DefaultOptions())

	for tri := 0; tri < len(m.PositionIndex); tri += 3 {
		pi := m.PositionIndex[tri : tri+3]
		ni := m.NormalIndex[tri : tri+3]
		if ni[0] != ni[1] || ni[1] != ni[2] {
			t.Fatalf("triangle %d does not share one flat normal: %v", tri/3, ni)
		}
		p0, p1, p2 := m.Positions[pi[0]], m.Positions[pi[1]], m.Positions[pi[2]]
		n := unitNormal(p0, p1, p2)
		want := m.Normals[ni[0]]
		if !n.ApproxEqual(want) {
			t.Fatalf("triangle %d winding gives normal %v, want %v", tri/3, n, want)
		}
	}
}

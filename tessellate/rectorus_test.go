// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package tessellate

import (
	"math"
	"testing"

	"github.com/kcad/plantmodel/internal/linear"
	"github.com/kcad/plantmodel/primitive"
)

func TestRectangularTorusEndCapNormals(t *testing.T) {
	angle := float32(math.Pi / 2)
	tr := primitive.RectangularTorus{RInside: 1, ROutside: 2, Height: 1, Angle: angle}
	m := RectangularTorus(tr, DefaultOptions())

	foundStart, foundEnd := false, false
	wantEnd := linear.Vector3{X: -float32(math.Sin(float64(angle))), Y: float32(math.Cos(float64(angle)))}
	for _, n := range m.Normals {
		if n.ApproxEqual(linear.Vector3{Y: -1}) {
			foundStart = true
		}
		if n.ApproxEqual(wantEnd) {
			foundEnd = true
		}
	}
	if !foundStart {
		t.Fatalf("no start-cap normal (0,-1,0) found among %v", m.Normals)
	}
	if !foundEnd {
		t.Fatalf("no end-cap normal %v found among %v", wantEnd, m.Normals)
	}
}

func TestRectangularTorusBounds(t *testing.T) {
	tr := primitive.RectangularTorus{RInside: 1, ROutside: 3, Height: 2, Angle: float32(math.Pi)}
	m := RectangularTorus(tr, DefaultOptions())

	for _, p := range m.Positions {
		r := float32(math.Hypot(float64(p.X), float64(p.Y)))
		if r < 0.999 || r > 3.001 {
			t.Fatalf("position %v has radius %v, want in [1,3]", p, r)
		}
		if p.Z < -0.001 || p.Z > 2.001 {
			t.Fatalf("position %v has z=%v, want in [0,2]", p, p.Z)
		}
	}
}

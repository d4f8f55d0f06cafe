// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package tessellate

import (
	"math"
	"testing"

	"github.com/kcad/plantmodel/primitive"
)

func TestSphericalDishDegeneratesToSphere(t *testing.T) {
	diameter := float32(4)
	dish := primitive.SphericalDish{Diameter: diameter, Height: diameter}
	sphere := primitive.Sphere{Diameter: diameter}

	got := SphericalDish(dish, DefaultOptions())
	want := Sphere(sphere, DefaultOptions())

	if len(got.Positions) != len(want.Positions) {
		t.Fatalf("Positions = %d, want %d (identical to Sphere)", len(got.Positions), len(want.Positions))
	}
	for i := range got.Positions {
		if !got.Positions[i].ApproxEqual(want.Positions[i]) {
			t.Fatalf("position %d = %v, want %v", i, got.Positions[i], want.Positions[i])
		}
	}
}

func TestSphericalDishApexHeight(t *testing.T) {
	dish := primitive.SphericalDish{Diameter: 4, Height: 1}
	m := SphericalDish(dish, DefaultOptions())

	apex := m.Positions[len(m.Positions)-1]
	if apex.Z < 0.999 || apex.Z > 1.001 {
		t.Fatalf("apex z = %v, want 1", apex.Z)
	}
	if math.Abs(float64(apex.X)) > 1e-3 || math.Abs(float64(apex.Y)) > 1e-3 {
		t.Fatalf("apex not on axis: %v", apex)
	}
}

func TestSphericalDishRimAtEquator(t *testing.T) {
	dish := primitive.SphericalDish{Diameter: 4, Height: 1}
	m := SphericalDish(dish, DefaultOptions())

	// The first generated ring sits at angleMin, i.e. on the rim: z
	// should be ~0 and planar radius ~diameter/2.
	for i := 0; i < 3; i++ {
		p := m.Positions[i]
		if math.Abs(float64(p.Z)) > 1e-2 {
			t.Fatalf("rim position %d has z=%v, want ~0", i, p.Z)
		}
		r := math.Hypot(float64(p.X), float64(p.Y))
		if math.Abs(r-2) > 1e-2 {
			t.Fatalf("rim position %d has radius %v, want ~2", i, r)
		}
	}
}

func TestEllipticalDishApex(t *testing.T) {
	d := primitive.EllipticalDish{Diameter: 6, Radius: 2}
	m := EllipticalDish(d, DefaultOptions())

	apex := m.Positions[len(m.Positions)-1]
	if apex.X != 0 || apex.Y != 0 {
		t.Fatalf("apex not on axis: %v", apex)
	}
	if apex.Z < 1.999 || apex.Z > 2.001 {
		t.Fatalf("apex z = %v, want 2 (the polar radius)", apex.Z)
	}
}

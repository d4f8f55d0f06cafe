// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package palette holds the legacy 0-255 material colour table
// inherited from the source plant-CAD tool (spec.md 3, "Lifecycle";
// GLOSSARY, "PDMS / Navisworks colour index"). It is process-wide
// constant data: the only mutation path available to a consumer is
// the updateColorPalette event, and that mutates the consumer's own
// copy, not this table (spec.md 9, "Global mutable state").
package palette

// RGBA is a four-channel 8-bit colour as carried by a COLR chunk.
type RGBA struct {
	R, G, B, A uint8
}

// Size is the number of entries in the material table; material ids
// outside [0, Size) are invalid.
const Size = 256

// Default is the built-in PDMS/Navisworks-compatible material table.
// Entry i is the default RGBA for material index i before any COLR
// chunk overrides it. The legacy tool's exact 256-entry table is
// proprietary to the upstream CAD product; this is a faithful-shape
// stand-in generated once at package init so every index still has a
// distinct, stable, fully-opaque colour (see DESIGN.md).
var Default [Size]RGBA

func init() {
	for i := 0; i < Size; i++ {
		Default[i] = hueRamp(i)
	}
}

// hueRamp derives a stable, visually distinct RGBA for material index
// i by walking the colour wheel in fixed steps, the same approach a
// legacy fixed-size swatch table produces by construction.
func hueRamp(i int) RGBA {
	const golden = 137 // degrees, golden-angle hue step for even spread
	hue := (i * golden) % 360
	r, g, b := hsvToRGB(float64(hue), 0.65, 0.95)
	return RGBA{r, g, b, 255}
}

func hsvToRGB(h, s, v float64) (r, g, b uint8) {
	c := v * s
	x := c * (1 - abs(mod(h/60, 2)-1))
	m := v - c
	var rp, gp, bp float64
	switch {
	case h < 60:
		rp, gp, bp = c, x, 0
	case h < 120:
		rp, gp, bp = x, c, 0
	case h < 180:
		rp, gp, bp = 0, c, x
	case h < 240:
		rp, gp, bp = 0, x, c
	case h < 300:
		rp, gp, bp = x, 0, c
	default:
		rp, gp, bp = c, 0, x
	}
	return scale(rp + m), scale(gp + m), scale(bp + m)
}

func scale(f float64) uint8 { return uint8(f*255 + 0.5) }

func mod(a, b float64) float64 {
	r := a
	for r >= b {
		r -= b
	}
	for r < 0 {
		r += b
	}
	return r
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// Lookup returns the default colour for a material index, or the
// zero RGBA with ok=false if index is out of range.
func Lookup(index uint32) (RGBA, bool) {
	if index >= Size {
		return RGBA{}, false
	}
	return Default[index], true
}

// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package container

import (
	"github.com/kcad/plantmodel/internal/linear"
	"github.com/kcad/plantmodel/primitive"
)

// parsePrimitive decodes one PRIM body: skip 2 words, version, the
// primitiveKind, a 3x4 matrix, 6 words of bounding box, then a
// per-kind payload (spec.md 4.2). Events are only forwarded to the
// sink while the object filter is satisfied; the bytes are always
// fully consumed regardless, so the stream stays in sync.
func (p *Parser) parsePrimitive() error {
	if err := p.cr.SkipWords(2); err != nil {
		return p.ioErr(err)
	}
	if _, err := p.cr.ReadU32(); err != nil { // version
		return p.ioErr(err)
	}
	kindWord, err := p.cr.ReadU32()
	if err != nil {
		return p.ioErr(err)
	}
	kind := primitive.Kind(kindWord)

	matrix, err := p.cr.ReadMatrix()
	if err != nil {
		return p.ioErr(err)
	}
	matrix.ScaleBasis(p.opts.Scale)

	if err := p.cr.SkipWords(6); err != nil { // bounding box
		return p.ioErr(err)
	}

	emit := p.objectFound > 0

	switch kind {
	case primitive.KindPyramid:
		return p.readPyramid(matrix, emit)
	case primitive.KindBox:
		return p.readBox(matrix, emit)
	case primitive.KindRectangularTorus:
		return p.readRectangularTorus(matrix, emit)
	case primitive.KindCircularTorus:
		return p.readCircularTorus(matrix, emit)
	case primitive.KindEllipticalDish:
		return p.readEllipticalDish(matrix, emit)
	case primitive.KindSphericalDish:
		return p.readSphericalDish(matrix, emit)
	case primitive.KindSnout:
		return p.readSnout(matrix, emit)
	case primitive.KindCylinder:
		return p.readCylinder(matrix, emit)
	case primitive.KindSphere:
		return p.readSphere(matrix, emit)
	case primitive.KindLine:
		return p.readLine(matrix, emit)
	case primitive.KindFacetGroup:
		return p.readFacetGroup(matrix, emit)
	default:
		return &ErrUnknownPrimitive{Kind: kindWord}
	}
}

func (p *Parser) floats(n int) ([]float32, error) {
	out := make([]float32, n)
	for i := range out {
		f, err := p.cr.ReadF32()
		if err != nil {
			return nil, p.ioErr(err)
		}
		out[i] = f
	}
	return out, nil
}

func (p *Parser) readPyramid(m linear.Matrix3x4, emit bool) error {
	f, err := p.floats(7)
	if err != nil {
		return err
	}
	if emit {
		p.Counts.Pyramids++
		p.sink.CreatePyramid(m, primitive.Pyramid{
			XBottom: f[0], YBottom: f[1],
			XTop: f[2], YTop: f[3],
			XOffset: f[4], YOffset: f[5],
			Height: f[6],
		})
	}
	return nil
}

func (p *Parser) readBox(m linear.Matrix3x4, emit bool) error {
	f, err := p.floats(3)
	if err != nil {
		return err
	}
	if emit {
		p.Counts.Boxes++
		p.sink.CreateBox(m, primitive.Box{LX: f[0], LY: f[1], LZ: f[2]})
	}
	return nil
}

func (p *Parser) readRectangularTorus(m linear.Matrix3x4, emit bool) error {
	f, err := p.floats(4)
	if err != nil {
		return err
	}
	if emit {
		p.Counts.RectangularToruses++
		p.sink.CreateRectangularTorus(m, primitive.RectangularTorus{
			RInside: f[0], ROutside: f[1], Height: f[2], Angle: f[3],
		})
	}
	return nil
}

func (p *Parser) readCircularTorus(m linear.Matrix3x4, emit bool) error {
	f, err := p.floats(3)
	if err != nil {
		return err
	}
	if emit {
		p.Counts.CircularToruses++
		p.sink.CreateCircularTorus(m, primitive.CircularTorus{
			RInside: f[0], ROutside: f[1], Angle: f[2],
		})
	}
	return nil
}

func (p *Parser) readEllipticalDish(m linear.Matrix3x4, emit bool) error {
	f, err := p.floats(2)
	if err != nil {
		return err
	}
	if emit {
		p.Counts.EllipticalDishes++
		p.sink.CreateEllipticalDish(m, primitive.EllipticalDish{Diameter: f[0], Radius: f[1]})
	}
	return nil
}

func (p *Parser) readSphericalDish(m linear.Matrix3x4, emit bool) error {
	f, err := p.floats(2)
	if err != nil {
		return err
	}
	if emit {
		p.Counts.SphericalDishes++
		p.sink.CreateSphericalDish(m, primitive.SphericalDish{Diameter: f[0], Height: f[1]})
	}
	return nil
}

func (p *Parser) readSnout(m linear.Matrix3x4, emit bool) error {
	f, err := p.floats(9)
	if err != nil {
		return err
	}
	if emit {
		p.Counts.Snouts++
		p.sink.CreateSnout(m, primitive.Snout{
			DBottom: f[0], DTop: f[1],
			Height:  f[2],
			XOffset: f[3], YOffset: f[4],
			NormalOffsets: [4]float32{f[5], f[6], f[7], f[8]},
		})
	}
	return nil
}

func (p *Parser) readCylinder(m linear.Matrix3x4, emit bool) error {
	f, err := p.floats(2)
	if err != nil {
		return err
	}
	if emit {
		p.Counts.Cylinders++
		p.sink.CreateCylinder(m, primitive.Cylinder{Radius: f[0], Height: f[1]})
	}
	return nil
}

func (p *Parser) readSphere(m linear.Matrix3x4, emit bool) error {
	f, err := p.floats(1)
	if err != nil {
		return err
	}
	if emit {
		p.Counts.Spheres++
		p.sink.CreateSphere(m, primitive.Sphere{Diameter: f[0]})
	}
	return nil
}

func (p *Parser) readLine(m linear.Matrix3x4, emit bool) error {
	f, err := p.floats(2)
	if err != nil {
		return err
	}
	if emit {
		p.Counts.Lines++
		p.sink.CreateLine(m, f[0], f[1])
	}
	return nil
}

// readFacetGroup decodes the three nested length-prefixed arrays
// (patches, contours, vertices) of a kind-11 primitive (spec.md 4.2);
// each vertex is six floats, position then normal.
func (p *Parser) readFacetGroup(m linear.Matrix3x4, emit bool) error {
	patchCount, err := p.cr.ReadU32()
	if err != nil {
		return p.ioErr(err)
	}
	fg := primitive.FacetGroup{Patches: make([]primitive.FacetPatch, patchCount)}
	for pi := range fg.Patches {
		contourCount, err := p.cr.ReadU32()
		if err != nil {
			return p.ioErr(err)
		}
		patch := make(primitive.FacetPatch, contourCount)
		for ci := range patch {
			vertexCount, err := p.cr.ReadU32()
			if err != nil {
				return p.ioErr(err)
			}
			contour := make(primitive.FacetContour, vertexCount)
			for vi := range contour {
				pos, err := p.cr.ReadVec3()
				if err != nil {
					return p.ioErr(err)
				}
				normal, err := p.cr.ReadVec3()
				if err != nil {
					return p.ioErr(err)
				}
				contour[vi] = primitive.FacetVertex{Position: pos, Normal: normal}
			}
			patch[ci] = contour
		}
		fg.Patches[pi] = patch
	}
	if emit {
		p.Counts.FacetGroups++
		p.sink.CreateFacetGroup(m, fg)
	}
	return nil
}

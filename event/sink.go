// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package event defines the abstract consumer the container parser
// drives (spec.md 6.3). No implementation lives in this module: the
// backend writers that turn this event stream into X3D, COLLADA,
// IFC, STL, or any other neutral format are external collaborators
// (spec.md 1).
package event

import (
	"github.com/kcad/plantmodel/internal/linear"
	"github.com/kcad/plantmodel/palette"
	"github.com/kcad/plantmodel/primitive"
)

// Sink receives the depth-first stream of events a parse emits. Every
// method may be called zero or more times except where noted; the
// parser guarantees the ordering spelled out in spec.md 5 and 8
// ("Ordering guarantees", "Ordering" property): startGroup/endGroup
// and startMetaData/endMetaData always nest correctly, and every
// createX call falls between the startGroup/endGroup of its
// declaring group (or at model scope).
type Sink interface {
	StartDocument()
	EndDocument()

	StartHeader(banner, fileNote, date, user, encoding string)
	EndHeader()

	StartModel(projectName, name string)
	EndModel()

	StartGroup(name string, translation linear.Vector3, materialID uint32)
	EndGroup()

	StartMetaData()
	MetaDataPair(key, value string)
	EndMetaData()

	CreatePyramid(m linear.Matrix3x4, p primitive.Pyramid)
	CreateBox(m linear.Matrix3x4, b primitive.Box)
	CreateRectangularTorus(m linear.Matrix3x4, t primitive.RectangularTorus)
	CreateCircularTorus(m linear.Matrix3x4, t primitive.CircularTorus)
	CreateEllipticalDish(m linear.Matrix3x4, d primitive.EllipticalDish)
	CreateSphericalDish(m linear.Matrix3x4, d primitive.SphericalDish)
	CreateSnout(m linear.Matrix3x4, s primitive.Snout)
	CreateCylinder(m linear.Matrix3x4, c primitive.Cylinder)
	CreateSphere(m linear.Matrix3x4, s primitive.Sphere)
	CreateLine(m linear.Matrix3x4, startX, endX float32)
	CreateFacetGroup(m linear.Matrix3x4, fg primitive.FacetGroup)

	UpdateColorPalette(index uint32, rgba palette.RGBA)
}

// NopSink is a Sink that discards every event. It is useful as an
// embedded default for test sinks that only care about a handful of
// methods, and as a smoke target for Fuzz.
type NopSink struct{}

func (NopSink) StartDocument() {}
func (NopSink) EndDocument()   {}

func (NopSink) StartHeader(banner, fileNote, date, user, encoding string) {}
func (NopSink) EndHeader()                                                {}

func (NopSink) StartModel(projectName, name string) {}
func (NopSink) EndModel()                           {}

func (NopSink) StartGroup(name string, translation linear.Vector3, materialID uint32) {}
func (NopSink) EndGroup()                                                             {}

func (NopSink) StartMetaData()                  {}
func (NopSink) MetaDataPair(key, value string) {}
func (NopSink) EndMetaData()                    {}

func (NopSink) CreatePyramid(m linear.Matrix3x4, p primitive.Pyramid)                     {}
func (NopSink) CreateBox(m linear.Matrix3x4, b primitive.Box)                              {}
func (NopSink) CreateRectangularTorus(m linear.Matrix3x4, t primitive.RectangularTorus)    {}
func (NopSink) CreateCircularTorus(m linear.Matrix3x4, t primitive.CircularTorus)          {}
func (NopSink) CreateEllipticalDish(m linear.Matrix3x4, d primitive.EllipticalDish)        {}
func (NopSink) CreateSphericalDish(m linear.Matrix3x4, d primitive.SphericalDish)          {}
func (NopSink) CreateSnout(m linear.Matrix3x4, s primitive.Snout)                          {}
func (NopSink) CreateCylinder(m linear.Matrix3x4, c primitive.Cylinder)                    {}
func (NopSink) CreateSphere(m linear.Matrix3x4, s primitive.Sphere)                        {}
func (NopSink) CreateLine(m linear.Matrix3x4, startX, endX float32)                        {}
func (NopSink) CreateFacetGroup(m linear.Matrix3x4, fg primitive.FacetGroup)               {}

func (NopSink) UpdateColorPalette(index uint32, rgba palette.RGBA) {}

var _ Sink = NopSink{}

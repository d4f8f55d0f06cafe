// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package container

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/kcad/plantmodel/event"
	"github.com/kcad/plantmodel/internal/linear"
	"github.com/kcad/plantmodel/palette"
	"github.com/kcad/plantmodel/primitive"
)

// builder assembles a well-formed container stream one field at a
// time, matching the wire grammar spec.md 4.2 documents.
type builder struct {
	buf bytes.Buffer
}

func (b *builder) u32(v uint32) *builder {
	binary.Write(&b.buf, binary.BigEndian, v)
	return b
}

func (b *builder) f32(v float32) *builder {
	binary.Write(&b.buf, binary.BigEndian, math.Float32bits(v))
	return b
}

func (b *builder) ident(s string) *builder {
	if s == "END" {
		for i := 0; i < 3; i++ {
			b.u32(uint32(s[i]))
		}
		return b
	}
	for i := 0; i < 4; i++ {
		b.u32(uint32(s[i]))
	}
	return b
}

// str writes a length-prefixed, NUL-padded string rounded up to a
// 4-byte boundary (spec.md 4.1 readString).
func (b *builder) str(s string) *builder {
	words := (len(s) + 4) / 4
	if words == 0 {
		words = 0
	}
	b.u32(uint32(words))
	padded := make([]byte, words*4)
	copy(padded, s)
	b.buf.Write(padded)
	return b
}

func (b *builder) skip(n int) *builder {
	for i := 0; i < n; i++ {
		b.u32(0)
	}
	return b
}

func (b *builder) matrix(m linear.Matrix3x4) *builder {
	for _, f := range m {
		b.f32(f)
	}
	return b
}

func (b *builder) head() *builder {
	b.ident("HEAD")
	b.skip(2)
	b.u32(1) // version 1: no encoding string
	b.str("banner")
	b.str("note")
	b.str("date")
	b.str("user")
	return b
}

func (b *builder) modelStart(project, name string) *builder {
	b.ident("MODL")
	b.skip(2)
	b.u32(1)
	b.str(project)
	b.str(name)
	return b
}

func (b *builder) groupStart(name string, translationMM linear.Vector3, materialID uint32) *builder {
	b.ident("CNTB")
	b.skip(2)
	b.u32(1)
	b.str(name)
	b.f32(translationMM.X)
	b.f32(translationMM.Y)
	b.f32(translationMM.Z)
	b.u32(materialID)
	return b
}

func (b *builder) groupEnd() *builder {
	b.ident("CNTE")
	b.skip(3)
	return b
}

func (b *builder) box(m linear.Matrix3x4, lx, ly, lz float32) *builder {
	b.ident("PRIM")
	b.skip(2)
	b.u32(1)
	b.u32(uint32(primitive.KindBox))
	b.matrix(m)
	b.skip(6)
	b.f32(lx)
	b.f32(ly)
	b.f32(lz)
	return b
}

func (b *builder) end() *builder {
	b.ident("END")
	return b
}

// recordingSink captures the events a parse produced, for assertions.
type recordingSink struct {
	event.NopSink
	groups  []string
	boxes   int
	palette []palette.RGBA
}

func (s *recordingSink) StartGroup(name string, translation linear.Vector3, materialID uint32) {
	s.groups = append(s.groups, name)
}

func (s *recordingSink) CreateBox(m linear.Matrix3x4, bx primitive.Box) {
	s.boxes++
}

func (s *recordingSink) UpdateColorPalette(index uint32, rgba palette.RGBA) {
	s.palette = append(s.palette, rgba)
}

func TestParserSingleGroupSingleBox(t *testing.T) {
	var b builder
	b.head()
	b.modelStart("proj", "model")
	b.groupStart("root", linear.Vector3{X: 1000, Y: 2000, Z: 3000}, 7)
	b.box(linear.Identity3x4(), 1, 2, 3)
	b.groupEnd()
	b.end()

	sink := &recordingSink{}
	p := NewParser(bytes.NewReader(b.buf.Bytes()), sink, DefaultOptions(), nil)
	if err := p.Run(); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
	if len(sink.groups) != 1 || sink.groups[0] != "root" {
		t.Fatalf("groups = %v, want [root]", sink.groups)
	}
	if sink.boxes != 1 {
		t.Fatalf("boxes = %d, want 1", sink.boxes)
	}
	if p.Counts.Groups != 1 || p.Counts.Boxes != 1 {
		t.Fatalf("Counts = %+v, want 1 group 1 box", p.Counts)
	}
}

func TestParserObjectFilterSuppressesNonMatchingSubtree(t *testing.T) {
	var b builder
	b.head()
	b.modelStart("proj", "model")
	b.groupStart("outer", linear.Vector3{}, 0)
	b.box(linear.Identity3x4(), 1, 1, 1)
	b.groupStart("target", linear.Vector3{}, 0)
	b.box(linear.Identity3x4(), 2, 2, 2)
	b.groupEnd()
	b.groupEnd()
	b.end()

	sink := &recordingSink{}
	opts := DefaultOptions()
	opts.ObjectName = "target"
	p := NewParser(bytes.NewReader(b.buf.Bytes()), sink, opts, nil)
	if err := p.Run(); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
	if len(sink.groups) != 1 || sink.groups[0] != "target" {
		t.Fatalf("groups = %v, want only [target]", sink.groups)
	}
	if sink.boxes != 1 {
		t.Fatalf("boxes = %d, want 1 (outer box suppressed)", sink.boxes)
	}
}

func TestParserForcedColorOverridesMaterialID(t *testing.T) {
	var reportedID uint32
	var b builder
	b.head()
	b.modelStart("proj", "model")
	b.groupStart("root", linear.Vector3{}, 42)
	b.groupEnd()
	b.end()

	sink := &capturingGroupSink{captured: &reportedID}
	opts := DefaultOptions()
	opts.ForcedColor = 9
	p := NewParser(bytes.NewReader(b.buf.Bytes()), sink, opts, nil)
	if err := p.Run(); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
	if reportedID != 9 {
		t.Fatalf("reported material id = %d, want 9 (forced)", reportedID)
	}
	found := false
	for _, a := range p.Anomalies {
		if a == AnoForcedColorOverride {
			found = true
		}
	}
	if !found {
		t.Fatalf("Anomalies = %v, want to include forced-color override", p.Anomalies)
	}
}

type capturingGroupSink struct {
	event.NopSink
	captured *uint32
}

func (s *capturingGroupSink) StartGroup(name string, translation linear.Vector3, materialID uint32) {
	*s.captured = materialID
}

func TestParserGroupTranslationConvertsMillimetresToMetres(t *testing.T) {
	var got linear.Vector3
	var b builder
	b.head()
	b.modelStart("proj", "model")
	b.groupStart("root", linear.Vector3{X: 1500, Y: 0, Z: -500}, 0)
	b.groupEnd()
	b.end()

	sink := &translationSink{captured: &got}
	p := NewParser(bytes.NewReader(b.buf.Bytes()), sink, DefaultOptions(), nil)
	if err := p.Run(); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
	if got.X != 1.5 || got.Z != -0.5 {
		t.Fatalf("translation = %v, want {1.5 0 -0.5}", got)
	}
}

type translationSink struct {
	event.NopSink
	captured *linear.Vector3
}

func (s *translationSink) StartGroup(name string, translation linear.Vector3, materialID uint32) {
	*s.captured = translation
}

func TestParserColorUpdatesPalette(t *testing.T) {
	var b builder
	b.head()
	b.modelStart("proj", "model")
	b.ident("COLR")
	b.skip(2)
	b.u32(1)
	b.u32(3) // palette index
	b.u32(0x11223344) // raw RGBA bytes packed as one word, per spec's "read 4 bytes RGBA"
	b.end()

	sink := &recordingSink{}
	p := NewParser(bytes.NewReader(b.buf.Bytes()), sink, DefaultOptions(), nil)
	if err := p.Run(); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
	if len(sink.palette) != 1 {
		t.Fatalf("palette updates = %d, want 1", len(sink.palette))
	}
	got := sink.palette[0]
	if got.R != 0x11 || got.G != 0x22 || got.B != 0x33 || got.A != 0x44 {
		t.Fatalf("rgba = %+v, want {11 22 33 44}", got)
	}
}

func TestParserMissingHeaderFails(t *testing.T) {
	p := NewParser(bytes.NewReader([]byte("not a plant model file at all")), event.NopSink{}, DefaultOptions(), nil)
	if err := p.Run(); err != ErrNoHeader {
		t.Fatalf("Run() = %v, want ErrNoHeader", err)
	}
	if p.LastError() != ErrNoHeader {
		t.Fatalf("LastError() = %v, want ErrNoHeader", p.LastError())
	}
}

func TestParserUnknownPrimitiveKindFails(t *testing.T) {
	var b builder
	b.head()
	b.modelStart("proj", "model")
	b.ident("PRIM")
	b.skip(2)
	b.u32(1)
	b.u32(99) // invalid kind
	b.matrix(linear.Identity3x4())
	b.skip(6)
	b.end()

	p := NewParser(bytes.NewReader(b.buf.Bytes()), event.NopSink{}, DefaultOptions(), nil)
	err := p.Run()
	unkErr, ok := err.(*ErrUnknownPrimitive)
	if !ok {
		t.Fatalf("Run() err = %v (%T), want *ErrUnknownPrimitive", err, err)
	}
	if unkErr.Kind != 99 {
		t.Fatalf("Kind = %d, want 99", unkErr.Kind)
	}
}

func TestParserScaleAppliesToBasisOnly(t *testing.T) {
	captured := make(chan linear.Matrix3x4, 1)
	var b builder
	b.head()
	b.modelStart("proj", "model")
	m := linear.Identity3x4()
	m[3], m[7], m[11] = 10, 20, 30 // translation column
	b.box(m, 1, 1, 1)
	b.end()

	sink := &matrixSink{captured: captured}
	opts := DefaultOptions()
	opts.Scale = 2
	p := NewParser(bytes.NewReader(b.buf.Bytes()), sink, opts, nil)
	if err := p.Run(); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
	got := <-captured
	if got[0] != 2 || got[5] != 2 || got[10] != 2 {
		t.Fatalf("basis = %v, want diagonal scaled to 2", got)
	}
	if got[3] != 10 || got[7] != 20 || got[11] != 30 {
		t.Fatalf("translation = %v, want unchanged {10 20 30}", got)
	}
}

type matrixSink struct {
	event.NopSink
	captured chan linear.Matrix3x4
}

func (s *matrixSink) CreateBox(m linear.Matrix3x4, b primitive.Box) {
	s.captured <- m
}

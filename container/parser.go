// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package container drives the chunk reader across the full
// HEAD/MODL/CNTB/PRIM/CNTE/COLR/END pushdown automaton (spec.md 4.2),
// managing the group stack, the object-name depth filter, the forced
// color override, and the lock-step attribute reader, and emitting
// the resulting events to a event.Sink.
package container

import (
	"io"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/kcad/plantmodel/attribute"
	"github.com/kcad/plantmodel/chunk"
	"github.com/kcad/plantmodel/event"
	"github.com/kcad/plantmodel/internal/linear"
	"github.com/kcad/plantmodel/internal/plog"
	"github.com/kcad/plantmodel/palette"
)

// Counts tallies the createX events emitted during one parse, one
// field per primitive kind (spec.md 8, "Round-trip of counters").
type Counts struct {
	Groups, Pyramids, Boxes, RectangularToruses, CircularToruses   int
	EllipticalDishes, SphericalDishes, Snouts, Cylinders, Spheres  int
	Lines, FacetGroups int
}

// Parser streams one PlantModel document into a Sink. Its state
// (group-filter depth, attribute reader, counters, last error) lives
// for the duration of exactly one Run call (spec.md 3, "Lifecycle").
type Parser struct {
	sink   event.Sink
	opts   Options
	logger *plog.Helper

	cr *chunk.Reader

	objectFound int
	attr        *attribute.Reader

	Anomalies []string
	Counts    Counts

	lastErr error

	forcedColorLogged bool

	// aggregation suppresses the per-stream startDocument/Header/Model
	// bracketing, used when this parser is one leaf of ReadFiles'
	// synthetic multi-file document (spec.md 4.2, "Aggregation").
	aggregation bool
}

// NewParser builds a Parser reading from r and emitting to sink.
// attr may be nil (no side-car metadata available or IgnoreAttributes
// is set).
func NewParser(r io.Reader, sink event.Sink, opts Options, attr *attribute.Reader) *Parser {
	p := &Parser{
		sink:   sink,
		opts:   opts,
		logger: opts.logger(),
		cr:     chunk.NewReader(r),
		attr:   attr,
	}
	// With no object filter, everything matches from the start,
	// including primitives declared directly under MODL before any
	// group is opened (spec.md 4.2, "Object filter").
	if opts.ObjectName == "" {
		p.objectFound = 1
	}
	return p
}

// LastError returns the reason the most recent Run failed, or nil.
func (p *Parser) LastError() error { return p.lastErr }

// Run parses the full document, emitting events to the Sink until END
// or a fatal error. Partial output already emitted through the Sink
// remains valid up to the last complete group (spec.md 4.2, "Failure
// modes").
func (p *Parser) Run() error {
	if err := p.runHeaderAndModel(); err != nil {
		p.lastErr = err
		return err
	}
	return nil
}

func (p *Parser) runHeaderAndModel() error {
	id, err := p.cr.Scan()
	if err != nil {
		return ErrNoHeader
	}
	if id != chunk.IdentHEAD {
		return ErrNoHeader
	}

	if !p.aggregation {
		p.sink.StartDocument()
	}
	if err := p.parseHeader(); err != nil {
		return err
	}

	id, err = p.cr.ReadIdentifier()
	if err != nil {
		return p.ioErr(err)
	}
	if id != chunk.IdentMODL {
		return &ErrUnexpectedIdentifier{State: "header", Got: id}
	}
	return p.parseModel()
}

// parseHeader decodes the HEAD body (spec.md 4.2): skip 2 words,
// read version, four strings, and (version >= 2) a fifth, the
// encoding label. "Unicode UTF-8" normalises to "UTF-8".
func (p *Parser) parseHeader() error {
	if err := p.cr.SkipWords(2); err != nil {
		return p.ioErr(err)
	}
	version, err := p.cr.ReadU32()
	if err != nil {
		return p.ioErr(err)
	}

	banner, err := p.cr.ReadString()
	if err != nil {
		return p.ioErr(err)
	}
	fileNote, err := p.cr.ReadString()
	if err != nil {
		return p.ioErr(err)
	}
	date, err := p.cr.ReadString()
	if err != nil {
		return p.ioErr(err)
	}
	user, err := p.cr.ReadString()
	if err != nil {
		return p.ioErr(err)
	}

	encoding := "UTF-8"
	if version >= 2 {
		encoding, err = p.cr.ReadString()
		if err != nil {
			return p.ioErr(err)
		}
		if encoding == "Unicode UTF-8" {
			encoding = "UTF-8"
		}
	}

	if encoding != "UTF-8" {
		if enc, err := htmlindex.Get(encoding); err == nil {
			p.cr.Encoding = enc
		} else {
			p.Anomalies = append(p.Anomalies, AnoUnknownEncoding)
			p.logger.Debugf("unrecognised header encoding %q: %v", encoding, err)
		}
	}

	if !p.aggregation {
		p.sink.StartHeader(banner, fileNote, date, user, encoding)
		p.sink.EndHeader()
	}
	return nil
}

// parseModel decodes the MODL body and its children (spec.md 4.2).
func (p *Parser) parseModel() error {
	if err := p.cr.SkipWords(2); err != nil {
		return p.ioErr(err)
	}
	if _, err := p.cr.ReadU32(); err != nil { // version
		return p.ioErr(err)
	}

	projectName, err := p.cr.ReadString()
	if err != nil {
		return p.ioErr(err)
	}
	name, err := p.cr.ReadString()
	if err != nil {
		return p.ioErr(err)
	}

	if !p.aggregation {
		p.sink.StartModel(projectName, name)
	}

	for {
		id, err := p.cr.ReadIdentifier()
		if err != nil {
			return p.ioErr(err)
		}
		switch id {
		case chunk.IdentEND:
			if !p.aggregation {
				p.sink.EndModel()
				p.sink.EndDocument()
			}
			return nil
		case chunk.IdentCNTB:
			if err := p.parseGroup(); err != nil {
				return err
			}
		case chunk.IdentPRIM:
			if err := p.parsePrimitive(); err != nil {
				return err
			}
		case chunk.IdentCOLR:
			if err := p.parseColor(); err != nil {
				return err
			}
		default:
			return &ErrUnexpectedIdentifier{State: "model", Got: id}
		}
	}
}

// parseGroup decodes one CNTB body and its children up to CNTE
// (spec.md 4.2). Group translation is millimetre in the wire format
// and is converted to metres here, independent of the user scale
// applied to primitive matrices.
func (p *Parser) parseGroup() error {
	if err := p.cr.SkipWords(2); err != nil {
		return p.ioErr(err)
	}
	if _, err := p.cr.ReadU32(); err != nil { // version
		return p.ioErr(err)
	}

	name, err := p.cr.ReadString()
	if err != nil {
		return p.ioErr(err)
	}
	translation, err := p.cr.ReadVec3()
	if err != nil {
		return p.ioErr(err)
	}
	translation = linear.Vector3{X: translation.X / 1000, Y: translation.Y / 1000, Z: translation.Z / 1000}

	materialID, err := p.cr.ReadU32()
	if err != nil {
		return p.ioErr(err)
	}

	matched := p.objectFound > 0 || p.opts.ObjectName == "" || name == p.opts.ObjectName
	if matched {
		p.objectFound++
	}

	if p.objectFound > 0 {
		p.Counts.Groups++
		reported := materialID
		if p.opts.ForcedColor != NoForcedColor {
			reported = uint32(p.opts.ForcedColor)
			if !p.forcedColorLogged {
				p.Anomalies = append(p.Anomalies, AnoForcedColorOverride)
				p.forcedColorLogged = true
			}
		}
		p.sink.StartGroup(name, translation, reported)
		p.emitAttributes(name)
	}

	for {
		id, err := p.cr.ReadIdentifier()
		if err != nil {
			return p.ioErr(err)
		}
		switch id {
		case chunk.IdentCNTE:
			if err := p.cr.SkipWords(3); err != nil {
				return p.ioErr(err)
			}
			if p.objectFound > 0 {
				p.sink.EndGroup()
			}
			if matched {
				p.objectFound--
			}
			return nil
		case chunk.IdentCNTB:
			if err := p.parseGroup(); err != nil {
				return err
			}
		case chunk.IdentPRIM:
			if err := p.parsePrimitive(); err != nil {
				return err
			}
		default:
			return &ErrUnexpectedIdentifier{State: "group", Got: id}
		}
	}
}

// emitAttributes runs the lock-step attribute reader for the group
// just opened, if one is attached (spec.md 4.3). Any failure here is
// swallowed: the attribute reader never fails the parse (spec.md 7).
func (p *Parser) emitAttributes(name string) {
	if p.attr == nil {
		return
	}
	pairs, ok := p.attr.ForGroup(name)
	if !ok {
		p.Anomalies = append(p.Anomalies, AnoAttributeBlockMissing)
		p.logger.Debugf("no attribute block found for group %q", name)
		return
	}
	p.sink.StartMetaData()
	for _, kv := range pairs {
		p.sink.MetaDataPair(kv.Key, kv.Value)
	}
	p.sink.EndMetaData()
}

// parseColor decodes a COLR body and forwards the palette update
// (spec.md 4.2).
func (p *Parser) parseColor() error {
	if err := p.cr.SkipWords(2); err != nil {
		return p.ioErr(err)
	}
	if _, err := p.cr.ReadU32(); err != nil { // version
		return p.ioErr(err)
	}
	index, err := p.cr.ReadU32()
	if err != nil {
		return p.ioErr(err)
	}
	// The four RGBA bytes are packed into the single word that follows,
	// unlike every other field in this stream which is one scalar per
	// word (spec.md 4.2, "COLR body").
	packed, err := p.cr.ReadU32()
	if err != nil {
		return p.ioErr(err)
	}
	rgba := palette.RGBA{
		R: byte(packed >> 24),
		G: byte(packed >> 16),
		B: byte(packed >> 8),
		A: byte(packed),
	}
	p.sink.UpdateColorPalette(index, rgba)
	return nil
}

func (p *Parser) ioErr(err error) error {
	switch err {
	case chunk.ErrTruncated:
		return ErrTruncated
	case chunk.ErrBadIdentifier:
		return ErrBadIdentifier
	default:
		return wrapIO(err)
	}
}

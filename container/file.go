// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package container

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/kcad/plantmodel/attribute"
	"github.com/kcad/plantmodel/event"
)

// File is an open PlantModel binary (spec.md 3, "Lifecycle"): open,
// parse once, close.
type File struct {
	data    []byte
	mapping mmap.MMap // non-nil only when data came from OpenFile
	f       *os.File

	opts Options
	attr *attribute.Reader

	parser *Parser
}

// OpenFile memory-maps name instead of reading it fully into memory
// (spec.md 5, "Large-input policy"), matching the way the teacher
// maps PE binaries in file.go.
func OpenFile(name string, opts Options) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	file := &File{data: data, mapping: data, f: f, opts: opts}
	if !opts.IgnoreAttributes {
		if attr, ok := attribute.Open(name); ok {
			file.attr = attr
		}
	}
	return file, nil
}

// OpenBytes builds a File directly from an in-memory buffer, for
// callers that already hold the bytes (e.g. Fuzz) or have no side-car
// file to look for.
func OpenBytes(data []byte, opts Options) *File {
	return &File{data: data, opts: opts}
}

// Close releases the memory mapping, if any.
func (file *File) Close() error {
	if file.mapping != nil {
		_ = file.mapping.Unmap()
	}
	if file.f != nil {
		return file.f.Close()
	}
	return nil
}

// Parse streams the container into sink. The returned error is also
// available afterwards through LastError.
func (file *File) Parse(sink event.Sink) error {
	file.parser = NewParser(bytes.NewReader(file.data), sink, file.opts, file.attr)
	return file.parser.Run()
}

// LastError returns the reason the most recent Parse failed, or nil.
func (file *File) LastError() error {
	if file.parser == nil {
		return nil
	}
	return file.parser.LastError()
}

// Anomalies lists the non-fatal oddities the most recent Parse
// recorded (spec.md 7).
func (file *File) Anomalies() []string {
	if file.parser == nil {
		return nil
	}
	return file.parser.Anomalies
}

// Counts reports the per-kind createX tallies of the most recent
// Parse.
func (file *File) Counts() Counts {
	if file.parser == nil {
		return Counts{}
	}
	return file.parser.Counts
}

// ReadFile opens name, parses it into sink, and closes it. This is
// the convenience entry point most callers want.
func ReadFile(name string, sink event.Sink, opts Options) error {
	file, err := OpenFile(name, opts)
	if err != nil {
		return err
	}
	defer file.Close()
	return file.Parse(sink)
}

// ReadBuffer parses an in-memory buffer with no side-car attribute
// lookup, since there is no path to look next to.
func ReadBuffer(data []byte, sink event.Sink, opts Options) error {
	file := OpenBytes(data, opts)
	return file.Parse(sink)
}

// baseName strips both directory and extension, the group name
// ReadFiles gives each aggregated input (spec.md 4.2, "Aggregation").
func baseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

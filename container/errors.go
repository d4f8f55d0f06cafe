// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package container

import "fmt"

// ErrNoHeader is returned when the stream ends before a valid HEAD
// identifier can be resynchronised onto (spec.md 7). It is the only
// failure the parser recovers from internally before giving up — the
// leading resync scan already tried and failed.
var ErrNoHeader = fmt.Errorf("container: HEAD identifier not found")

// ErrBadIdentifier is returned when the bytes at an expected
// identifier position do not fit the 4-ASCII-in-3/4-words shape
// (spec.md 7).
var ErrBadIdentifier = fmt.Errorf("container: bad identifier")

// ErrUnknownPrimitive is returned when a PRIM body declares a kind
// outside 1..11 (spec.md 7).
type ErrUnknownPrimitive struct {
	Kind uint32
}

func (e *ErrUnknownPrimitive) Error() string {
	return fmt.Sprintf("container: unknown primitive kind %d", e.Kind)
}

// ErrUnexpectedIdentifier is returned when a well-formed identifier is
// not legal in the automaton's current state, e.g. CNTE outside a
// group (spec.md 7).
type ErrUnexpectedIdentifier struct {
	State string
	Got   string
}

func (e *ErrUnexpectedIdentifier) Error() string {
	return fmt.Sprintf("container: unexpected identifier %q in state %q", e.Got, e.State)
}

// ErrTruncated is returned when the underlying stream ends mid-field.
var ErrTruncated = fmt.Errorf("container: truncated stream")

// wrapIO reports a failing read from the underlying byte source as an
// IoError (spec.md 7), distinct from ErrTruncated's clean EOF.
func wrapIO(err error) error {
	return fmt.Errorf("container: io error: %w", err)
}

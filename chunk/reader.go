// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package chunk implements the low-level big-endian binary decoding
// the PlantModel container format is built on (spec.md 4.1): fixed
// scalar types, 4-byte-aligned length-prefixed strings, the
// three-or-four-word identifier token, and the resynchronising
// identifier scan. It streams from an io.Reader through a fixed
// 4 KiB read buffer plus one string payload at a time, and never
// holds the whole input (spec.md 5, "Large-input policy").
package chunk

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/kcad/plantmodel/internal/linear"
	"golang.org/x/text/encoding"
)

// ErrBadIdentifier is returned by ReadIdentifier and Scan when the
// bytes at the expected identifier position do not fit the
// three/four-big-endian-word, low-byte-ASCII shape (spec.md 7).
var ErrBadIdentifier = errors.New("chunk: bad identifier")

// ErrTruncated is returned when the underlying stream ends before a
// requested field can be fully read.
var ErrTruncated = errors.New("chunk: truncated stream")

// Known identifier tokens (spec.md 4.1).
const (
	IdentHEAD = "HEAD"
	IdentEND  = "END"
	IdentMODL = "MODL"
	IdentCNTB = "CNTB"
	IdentPRIM = "PRIM"
	IdentCNTE = "CNTE"
	IdentCOLR = "COLR"
)

// knownIdentifiers is the set recognised during resynchronisation
// (spec.md 4.1, "Resynchronisation").
var knownIdentifiers = map[string]bool{
	IdentHEAD: true,
	IdentEND:  true,
	IdentMODL: true,
	IdentCNTB: true,
	IdentPRIM: true,
	IdentCNTE: true,
	IdentCOLR: true,
}

// Reader decodes the big-endian primitive types of the PlantModel
// wire format from a streaming byte source.
type Reader struct {
	r       *bufio.Reader
	wordBuf [4]byte
	// Encoding transcodes non-UTF-8 string payloads once the header
	// has declared one; nil means the payload is UTF-8 already.
	Encoding encoding.Encoding
}

// NewReader wraps r for chunk-level decoding.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReaderSize(r, 4096)}
}

// readWord reads exactly 4 bytes, the wire's base unit.
func (cr *Reader) readWord() ([4]byte, error) {
	var b [4]byte
	if _, err := io.ReadFull(cr.r, b[:]); err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return b, ErrTruncated
		}
		return b, err
	}
	return b, nil
}

// ReadU32 reads a big-endian uint32.
func (cr *Reader) ReadU32() (uint32, error) {
	b, err := cr.readWord()
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

// ReadI32 reads a big-endian int32.
func (cr *Reader) ReadI32() (int32, error) {
	u, err := cr.ReadU32()
	return int32(u), err
}

// ReadF32 reads a big-endian IEEE-754 float32.
func (cr *Reader) ReadF32() (float32, error) {
	u, err := cr.ReadU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(u), nil
}

// SkipWords advances past n 32-bit words.
func (cr *Reader) SkipWords(n int) error {
	for i := 0; i < n; i++ {
		if _, err := cr.readWord(); err != nil {
			return err
		}
	}
	return nil
}

// ReadVec3 reads three big-endian float32s in stream order.
func (cr *Reader) ReadVec3() (linear.Vector3, error) {
	x, err := cr.ReadF32()
	if err != nil {
		return linear.Vector3{}, err
	}
	y, err := cr.ReadF32()
	if err != nil {
		return linear.Vector3{}, err
	}
	z, err := cr.ReadF32()
	if err != nil {
		return linear.Vector3{}, err
	}
	return linear.Vector3{X: x, Y: y, Z: z}, nil
}

// ReadMatrix reads twelve big-endian float32s in stream order
// (spec.md 4.1, readMatrix).
func (cr *Reader) ReadMatrix() (linear.Matrix3x4, error) {
	var m linear.Matrix3x4
	for i := range m {
		f, err := cr.ReadF32()
		if err != nil {
			return m, err
		}
		m[i] = f
	}
	return m, nil
}

// ReadString reads a 4-byte big-endian word-count N, then 4*N raw
// bytes NUL-padded to that boundary; the effective string ends at the
// first NUL or at byte 4*N (spec.md 4.1, readString). If Encoding is
// set, the payload is transcoded before being returned.
func (cr *Reader) ReadString() (string, error) {
	words, err := cr.ReadU32()
	if err != nil {
		return "", err
	}
	n := int(words) * 4
	if n == 0 {
		return "", nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(cr.r, buf); err != nil {
		return "", ErrTruncated
	}
	if i := indexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	if cr.Encoding != nil {
		decoded, err := cr.Encoding.NewDecoder().Bytes(buf)
		if err == nil {
			buf = decoded
		}
	}
	return string(buf), nil
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}

// ReadIdentifier reads one chunk identifier: an ordinary token is
// four ASCII characters, each stored as a big-endian uint32 whose low
// byte is the character and whose upper three bytes must be zero
// (sixteen bytes total). The literal token "END" is the one
// exception, stored in only three such words (twelve bytes): the
// reader must assemble three characters, decide whether it has END,
// and only then consume a fourth word (spec.md 4.1).
func (cr *Reader) ReadIdentifier() (string, error) {
	var chars [3]byte
	for i := 0; i < 3; i++ {
		w, err := cr.readWord()
		if err != nil {
			return "", err
		}
		if w[0] != 0 || w[1] != 0 || w[2] != 0 {
			return "", ErrBadIdentifier
		}
		chars[i] = w[3]
	}
	if string(chars[:]) == IdentEND {
		return IdentEND, nil
	}
	w, err := cr.readWord()
	if err != nil {
		return "", err
	}
	if w[0] != 0 || w[1] != 0 || w[2] != 0 {
		return "", ErrBadIdentifier
	}
	return string(chars[:]) + string(w[3]), nil
}

// Scan resynchronises onto the next known identifier (spec.md 4.1,
// "Resynchronisation"): it slides a byte at a time through the
// stream, reinterpreting the trailing bytes as a 12-or-16-byte
// identifier shape, until one of the seven known keywords is
// recognised. EOF before a match is reported as ErrTruncated.
func (cr *Reader) Scan() (string, error) {
	var window []byte
	for {
		b, err := cr.r.ReadByte()
		if err != nil {
			return "", ErrTruncated
		}
		window = append(window, b)
		if len(window) > 16 {
			window = window[len(window)-16:]
		}
		if ident, ok := tryParseIdentifier(window); ok {
			return ident, nil
		}
	}
}

// tryParseIdentifier checks whether the trailing bytes of window form
// a valid 12- or 16-byte identifier shape naming a known keyword.
func tryParseIdentifier(window []byte) (string, bool) {
	if len(window) >= 12 {
		if ident, ok := parseIdentifierShape(window[len(window)-12:]); ok && ident == IdentEND {
			return ident, true
		}
	}
	if len(window) >= 16 {
		if ident, ok := parseIdentifierShape(window[len(window)-16:]); ok && knownIdentifiers[ident] {
			return ident, true
		}
	}
	return "", false
}

// parseIdentifierShape decodes b (12 or 16 bytes) as that many
// big-endian uint32 words, each of whose low byte is an ASCII
// character and whose upper three bytes are zero.
func parseIdentifierShape(b []byte) (string, bool) {
	if len(b)%4 != 0 {
		return "", false
	}
	chars := make([]byte, 0, len(b)/4)
	for i := 0; i < len(b); i += 4 {
		if b[i] != 0 || b[i+1] != 0 || b[i+2] != 0 {
			return "", false
		}
		chars = append(chars, b[i+3])
	}
	return string(chars), true
}

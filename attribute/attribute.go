// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package attribute reads the optional side-car text file that
// carries metadata parallel to a PlantModel binary's group tree
// (spec.md 4.3, 6.2). The reader advances in lock-step with the
// container parser's startGroup calls: it is a documented limitation
// of the format, not a bug, that attribute blocks must appear in the
// same depth-first order as the groups they describe, or later blocks
// are silently skipped.
package attribute

import (
	"bufio"
	"io"
	"strings"
)

// Pair is one key/value metadata entry.
type Pair struct {
	Key, Value string
}

// Reader walks a side-car file forward, one NEW block at a time, in
// lock-step with the groups the binary parser opens.
type Reader struct {
	lines []string
	pos   int
}

// New decodes raw (ISO-8859-1 or already UTF-8) side-car bytes and
// returns a Reader positioned at the start of the file. Decoding
// never fails: any byte >= 0x80 is expanded to its two-byte UTF-8
// sequence per spec.md 4.3/6.2. This is a no-op on pure ASCII text;
// input that is already UTF-8 with multi-byte sequences is expanded
// byte by byte as well, so those characters come out double-encoded.
func New(raw []byte) *Reader {
	text := latin1ToUTF8(raw)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return &Reader{lines: strings.Split(text, "\n")}
}

// latin1ToUTF8 expands each byte >= 0x80 into the two-byte UTF-8
// sequence for the matching Latin-1 code point (spec.md 4.3: "UTF-8
// output is produced from an ISO-8859-1 source by expanding each byte
// >= 0x80 into a two-byte UTF-8 sequence").
func latin1ToUTF8(raw []byte) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, c := range raw {
		if c < 0x80 {
			b.WriteByte(c)
		} else {
			b.WriteByte(0xC0 | (c >> 6))
			b.WriteByte(0x80 | (c & 0x3F))
		}
	}
	return b.String()
}

// ForGroup advances the reader until it finds "NEW <name>" (an exact
// match) or runs out of lines, then collects the key:=value lines that
// follow up to the next NEW line. It returns the pairs found, or
// ok=false if name was never reached (EOF, or the blocks are out of
// order relative to the binary's depth-first group sequence).
func (r *Reader) ForGroup(name string) (pairs []Pair, ok bool) {
	want := "NEW " + name
	for {
		line, found := r.nextNewLine()
		if !found {
			return nil, false
		}
		if line != want {
			continue
		}
		return r.collectPairs(), true
	}
}

// nextNewLine scans forward from the current position for the next
// "NEW ..." line, returning it without consuming the lines after it.
func (r *Reader) nextNewLine() (string, bool) {
	for r.pos < len(r.lines) {
		line := strings.TrimRight(r.lines[r.pos], " \t")
		r.pos++
		if strings.HasPrefix(line, "NEW ") {
			return line, true
		}
	}
	return "", false
}

// collectPairs reads key:=value lines until the next NEW line or EOF,
// leaving the reader positioned so that NEW line is re-read by the
// next ForGroup call.
func (r *Reader) collectPairs() []Pair {
	var pairs []Pair
	for r.pos < len(r.lines) {
		line := r.lines[r.pos]
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "NEW ") {
			break
		}
		r.pos++
		if trimmed == "" {
			continue
		}
		idx := strings.Index(trimmed, ":=")
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(trimmed[:idx])
		// value starts 4 characters after the ':' of ":=" (two after
		// the '=') per the legacy producer's fixed padding (spec.md
		// 4.3, 6.2).
		valueStart := idx + 4
		var value string
		if valueStart < len(trimmed) {
			value = strings.TrimSpace(trimmed[valueStart:])
		}
		pairs = append(pairs, Pair{Key: key, Value: value})
	}
	return pairs
}

// ReadAll is a convenience for callers that want to validate a whole
// file without lock-step group advancement; it
// streams line by line rather than materialising the split slice
// New already built, for symmetry with the streaming chunk reader.
func ReadAll(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

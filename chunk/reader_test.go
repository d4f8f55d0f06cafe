// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package chunk

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

func word(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func identBytes(s string) []byte {
	var buf bytes.Buffer
	n := 4
	if s == "END" {
		n = 3
	}
	for i := 0; i < n; i++ {
		buf.Write(word(uint32(s[i])))
	}
	return buf.Bytes()
}

func TestReadU32AndF32(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(word(42))
	buf.Write(word(math.Float32bits(3.5)))

	r := NewReader(&buf)
	u, err := r.ReadU32()
	if err != nil || u != 42 {
		t.Fatalf("ReadU32() = %d, %v, want 42, nil", u, err)
	}
	f, err := r.ReadF32()
	if err != nil || f != 3.5 {
		t.Fatalf("ReadF32() = %v, %v, want 3.5, nil", f, err)
	}
}

func TestReadIdentifierOrdinary(t *testing.T) {
	r := NewReader(bytes.NewReader(identBytes("HEAD")))
	id, err := r.ReadIdentifier()
	if err != nil || id != IdentHEAD {
		t.Fatalf("ReadIdentifier() = %q, %v, want HEAD, nil", id, err)
	}
}

func TestReadIdentifierEndIsThreeWords(t *testing.T) {
	raw := identBytes("END")
	if len(raw) != 12 {
		t.Fatalf("END fixture = %d bytes, want 12", len(raw))
	}
	r := NewReader(bytes.NewReader(raw))
	id, err := r.ReadIdentifier()
	if err != nil || id != IdentEND {
		t.Fatalf("ReadIdentifier() = %q, %v, want END, nil", id, err)
	}
}

func TestReadIdentifierRejectsNonZeroHighBytes(t *testing.T) {
	bad := []byte{0, 0, 1, 'H', 0, 0, 0, 'E', 0, 0, 0, 'A', 0, 0, 0, 'D'}
	r := NewReader(bytes.NewReader(bad))
	if _, err := r.ReadIdentifier(); err != ErrBadIdentifier {
		t.Fatalf("ReadIdentifier() err = %v, want ErrBadIdentifier", err)
	}
}

func TestReadStringNulTruncation(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(word(2)) // 2 words = 8 bytes
	buf.Write([]byte{'h', 'i', 0, 0, 0, 0, 0, 0})

	r := NewReader(&buf)
	s, err := r.ReadString()
	if err != nil || s != "hi" {
		t.Fatalf("ReadString() = %q, %v, want hi, nil", s, err)
	}
}

func TestReadStringEmpty(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(word(0))
	r := NewReader(&buf)
	s, err := r.ReadString()
	if err != nil || s != "" {
		t.Fatalf("ReadString() = %q, %v, want empty string, nil", s, err)
	}
}

func TestReadVec3AndMatrix(t *testing.T) {
	var buf bytes.Buffer
	for _, f := range []float32{1, 2, 3} {
		buf.Write(word(math.Float32bits(f)))
	}
	for i := 0; i < 12; i++ {
		buf.Write(word(math.Float32bits(float32(i))))
	}

	r := NewReader(&buf)
	v, err := r.ReadVec3()
	if err != nil || v.X != 1 || v.Y != 2 || v.Z != 3 {
		t.Fatalf("ReadVec3() = %+v, %v, want {1 2 3}, nil", v, err)
	}
	m, err := r.ReadMatrix()
	if err != nil {
		t.Fatalf("ReadMatrix() err = %v", err)
	}
	for i := 0; i < 12; i++ {
		if m[i] != float32(i) {
			t.Fatalf("m[%d] = %v, want %v", i, m[i], i)
		}
	}
}

func TestSkipWords(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(word(1))
	buf.Write(word(2))
	buf.Write(word(99))

	r := NewReader(&buf)
	if err := r.SkipWords(2); err != nil {
		t.Fatalf("SkipWords() err = %v", err)
	}
	u, err := r.ReadU32()
	if err != nil || u != 99 {
		t.Fatalf("ReadU32() after skip = %d, %v, want 99, nil", u, err)
	}
}

func TestScanResynchronisesOntoKnownIdentifier(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("garbage preceding any valid token")
	buf.Write(identBytes("HEAD"))

	r := NewReader(&buf)
	id, err := r.Scan()
	if err != nil || id != IdentHEAD {
		t.Fatalf("Scan() = %q, %v, want HEAD, nil", id, err)
	}
}

func TestScanTruncatedReturnsErrTruncated(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte("no identifier ever appears here")))
	if _, err := r.Scan(); err != ErrTruncated {
		t.Fatalf("Scan() err = %v, want ErrTruncated", err)
	}
}

func TestReadU32TruncatedMidField(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0, 0, 1}))
	if _, err := r.ReadU32(); err != ErrTruncated {
		t.Fatalf("ReadU32() err = %v, want ErrTruncated", err)
	}
}

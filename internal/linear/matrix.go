// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package linear

// Matrix3x4 is a row-major affine transform: columns 0-2 hold the
// rotation/scale basis, column 3 holds the translation. It decodes
// directly from the twelve floats a PRIM chunk carries in stream
// order (spec.md 3, 4.1 readMatrix).
type Matrix3x4 [12]float32

// Basis returns the 3x3 rotation/scale block as its three columns.
func (m Matrix3x4) Basis() (c0, c1, c2 Vector3) {
	return Vector3{m[0], m[4], m[8]},
		Vector3{m[1], m[5], m[9]},
		Vector3{m[2], m[6], m[10]}
}

// Translation returns the matrix's translation column.
func (m Matrix3x4) Translation() Vector3 {
	return Vector3{m[3], m[7], m[11]}
}

// ScaleBasis multiplies the rotation/scale block (the nine basis
// entries) by s in place, leaving the translation column untouched.
// This is the user-scale step spec.md 4.2 applies to every primitive
// matrix after it is read.
func (m *Matrix3x4) ScaleBasis(s float32) {
	for _, i := range [9]int{0, 1, 2, 4, 5, 6, 8, 9, 10} {
		m[i] *= s
	}
}

// Apply transforms v by m, treating v as a point (translation
// included).
func (m Matrix3x4) Apply(v Vector3) Vector3 {
	return Vector3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3],
		m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7],
		m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11],
	}
}

// ApplyDirection transforms v by m's rotation/scale block only,
// ignoring translation — used for normals.
func (m Matrix3x4) ApplyDirection(v Vector3) Vector3 {
	return Vector3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		m[4]*v.X + m[5]*v.Y + m[6]*v.Z,
		m[8]*v.X + m[9]*v.Y + m[10]*v.Z,
	}
}

// Identity3x4 returns the identity affine transform.
func Identity3x4() Matrix3x4 {
	return Matrix3x4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
	}
}

// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package tessellate

import (
	"math"
	"sort"

	"github.com/kcad/plantmodel/internal/linear"
	"github.com/kcad/plantmodel/primitive"
)

// vec2 is a point in the 2D plane a patch is projected onto for
// triangulation.
type vec2 struct{ x, y float32 }

func (a vec2) sub(b vec2) vec2 { return vec2{a.x - b.x, a.y - b.y} }
func cross2(a, b vec2) float32 { return a.x*b.y - a.y*b.x }

// loopVertex is one vertex of the flattened contour loop fed to the
// ear-clipping pass: its projected 2D position plus the shared
// position/normal index already assigned by the dedup table.
type loopVertex struct {
	p    vec2
	pos3 linear.Vector3
	idx  uint32
}

// tessellatePatch triangulates one facet-group patch: its vertices
// are welded into table, any holes are stitched into the outer
// contour with zero-area bridge edges, and the resulting single loop
// is ear-clipped into a flat triangle-index stream (spec.md 4.4,
// "Facet-group tessellation"). Patches with no contours produce no
// triangles.
func tessellatePatch(patch primitive.FacetPatch, table *dedupTable) []uint32 {
	if len(patch) == 0 {
		return nil
	}

	normal := newellNormal(patch[0])
	u, v := orthonormalBasis(normal)
	project := func(p linear.Vector3) vec2 {
		return vec2{p.Dot(u), p.Dot(v)}
	}

	loop := make([]loopVertex, 0, len(patch[0]))
	for _, fv := range patch[0] {
		loop = append(loop, loopVertex{p: project(fv.Position), pos3: fv.Position, idx: table.intern(fv)})
	}

	outerArea := signedArea(loop)
	holes := make([][]loopVertex, 0, len(patch)-1)
	for _, contour := range patch[1:] {
		hole := make([]loopVertex, 0, len(contour))
		for _, fv := range contour {
			hole = append(hole, loopVertex{p: project(fv.Position), pos3: fv.Position, idx: table.intern(fv)})
		}
		// A hole must wind opposite to the outer contour so that the
		// bridged loop subtracts its area instead of adding it.
		if (signedArea(hole) > 0) == (outerArea > 0) {
			reverse(hole)
		}
		holes = append(holes, hole)
	}

	// Bridge holes into the outer loop in decreasing order of their
	// rightmost vertex, matching the classic hole-merging order that
	// avoids bridges crossing still-unmerged holes.
	sort.Slice(holes, func(i, j int) bool {
		return maxX(holes[i]) > maxX(holes[j])
	})
	for _, hole := range holes {
		loop = bridgeHole(loop, hole)
	}

	return earClip(loop, table)
}

func maxX(loop []loopVertex) float32 {
	m := float32(math.Inf(-1))
	for _, lv := range loop {
		if lv.p.x > m {
			m = lv.p.x
		}
	}
	return m
}

// bridgeHole splices hole into outer by connecting the hole's
// rightmost vertex to its nearest outer vertex with a pair of
// coincident bridge edges, producing a single simple loop ear-clipping
// can consume directly. This does not synthesize any new vertex: the
// bridge reuses the two existing endpoints, each visited twice.
func bridgeHole(outer, hole []loopVertex) []loopVertex {
	hi := 0
	for i, lv := range hole {
		if lv.p.x > hole[hi].p.x {
			hi = i
		}
	}

	oi := 0
	best := float32(math.Inf(1))
	for i, lv := range outer {
		d := dist2(lv.p, hole[hi].p)
		if d < best {
			best = d
			oi = i
		}
	}

	merged := make([]loopVertex, 0, len(outer)+len(hole)+2)
	merged = append(merged, outer[:oi+1]...)
	merged = append(merged, hole[hi:]...)
	merged = append(merged, hole[:hi+1]...)
	merged = append(merged, outer[oi])
	merged = append(merged, outer[oi+1:]...)
	return merged
}

func dist2(a, b vec2) float32 {
	d := a.sub(b)
	return d.x*d.x + d.y*d.y
}

// earClip triangulates a simple (possibly bridged, non-convex) 2D
// polygon loop by repeatedly clipping convex, empty "ears". A loop
// that cannot be fully clipped — degenerate input or a genuine
// self-intersection the bridging step did not resolve — is closed off
// by fanning the remainder from a single fresh centroid vertex with
// its normal fixed to (0,1,0), so the caller always gets a valid mesh
// (spec.md 4.4, the documented limitation on synthesized vertices).
func earClip(loop []loopVertex, table *dedupTable) []uint32 {
	n := len(loop)
	if n < 3 {
		return nil
	}

	remaining := append([]loopVertex(nil), loop...)
	if signedArea(remaining) < 0 {
		reverse(remaining)
	}

	var indices []uint32
	guard := 0
	for len(remaining) > 3 && guard < n*n+16 {
		guard++
		clipped := false
		for i := range remaining {
			prev := remaining[(i-1+len(remaining))%len(remaining)]
			cur := remaining[i]
			next := remaining[(i+1)%len(remaining)]
			if !isConvex(prev.p, cur.p, next.p) {
				continue
			}
			if anyVertexInside(remaining, i, prev.p, cur.p, next.p) {
				continue
			}
			indices = append(indices, prev.idx, cur.idx, next.idx)
			remaining = append(remaining[:i], remaining[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return append(indices, fanRemainder(remaining, table)...)
		}
	}
	if len(remaining) == 3 {
		indices = append(indices, remaining[0].idx, remaining[1].idx, remaining[2].idx)
	}
	return indices
}

func signedArea(loop []loopVertex) float32 {
	var area float32
	n := len(loop)
	for i := 0; i < n; i++ {
		a, b := loop[i].p, loop[(i+1)%n].p
		area += a.x*b.y - b.x*a.y
	}
	return area / 2
}

func reverse(loop []loopVertex) {
	for i, j := 0, len(loop)-1; i < j; i, j = i+1, j-1 {
		loop[i], loop[j] = loop[j], loop[i]
	}
}

func isConvex(prev, cur, next vec2) bool {
	return cross2(cur.sub(prev), next.sub(cur)) > 0
}

func anyVertexInside(loop []loopVertex, skip int, a, b, c vec2) bool {
	for i, lv := range loop {
		if i == skip {
			continue
		}
		p := lv.p
		if p == a || p == b || p == c {
			continue
		}
		if pointInTriangle(p, a, b, c) {
			return true
		}
	}
	return false
}

func pointInTriangle(p, a, b, c vec2) bool {
	d1 := cross2(b.sub(a), p.sub(a))
	d2 := cross2(c.sub(b), p.sub(b))
	d3 := cross2(a.sub(c), p.sub(c))
	neg := d1 < 0 || d2 < 0 || d3 < 0
	pos := d1 > 0 || d2 > 0 || d3 > 0
	return !(neg && pos)
}

// fanRemainder closes off whatever ear-clipping could not resolve —
// degenerate input, or a self-intersection the hole-bridging pass did
// not untangle — by appending one fresh vertex at the remainder's 3D
// centroid (normal fixed to (0,1,0), spec.md 4.4) and fanning the
// remaining loop onto it.
func fanRemainder(remaining []loopVertex, table *dedupTable) []uint32 {
	if len(remaining) < 3 {
		return nil
	}
	var centroid linear.Vector3
	for _, lv := range remaining {
		centroid = centroid.Add(lv.pos3)
	}
	centroid = centroid.Scale(1 / float32(len(remaining)))
	apex := table.fresh(centroid)

	var out []uint32
	n := len(remaining)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		out = append(out, apex, remaining[i].idx, remaining[j].idx)
	}
	return out
}

// newellNormal computes a contour's best-fit plane normal by Newell's
// method, robust for non-convex (but planar, or near-planar) polygons.
func newellNormal(contour primitive.FacetContour) linear.Vector3 {
	var n linear.Vector3
	count := len(contour)
	for i := 0; i < count; i++ {
		cur := contour[i].Position
		next := contour[(i+1)%count].Position
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	if u, length := n.Normalize(); length > 0 {
		return u
	}
	return linear.Vector3{Z: 1}
}

// orthonormalBasis picks two unit vectors spanning the plane
// perpendicular to n.
func orthonormalBasis(n linear.Vector3) (u, v linear.Vector3) {
	ref := linear.Vector3{X: 1}
	if math.Abs(float64(n.X)) > 0.9 {
		ref = linear.Vector3{Y: 1}
	}
	u, _ = ref.Sub(n.Scale(ref.Dot(n))).Normalize()
	v = n.Cross(u)
	return u, v
}

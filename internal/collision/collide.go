package collision

import (
	"math"

	"github.com/san-kum/rigid2d/internal/body"
	"github.com/san-kum/rigid2d/internal/vmath"
)

// IntersectAABBs reports whether a and b overlap. Boxes that only touch along
// an edge count as separated.
func IntersectAABBs(a, b body.AABB) bool {
	if a.Max.X <= b.Min.X || b.Max.X <= a.Min.X ||
		a.Max.Y <= b.Min.Y || b.Max.Y <= a.Min.Y {
		return false
	}
	return true
}

// Collide tests two bodies for overlap. On overlap the normal points from a
// toward b and depth is the penetration along it.
func Collide(a, b *body.Body) (normal vmath.Vector, depth float64, ok bool) {
	switch a.Shape() {
	case body.Box:
		switch b.Shape() {
		case body.Box:
			return IntersectPolygons(a.Position(), a.TransformedVertices(), b.Position(), b.TransformedVertices())
		case body.Circle:
			normal, depth, ok = IntersectCirclePolygon(b.Position(), b.Radius(), a.Position(), a.TransformedVertices())
			return normal.Neg(), depth, ok
		}
	case body.Circle:
		switch b.Shape() {
		case body.Box:
			return IntersectCirclePolygon(a.Position(), a.Radius(), b.Position(), b.TransformedVertices())
		case body.Circle:
			return IntersectCircles(a.Position(), a.Radius(), b.Position(), b.Radius())
		}
	}
	return vmath.Zero, 0, false
}

// IntersectCircles tests two circles. The normal points from A toward B.
func IntersectCircles(centerA vmath.Vector, radiusA float64, centerB vmath.Vector, radiusB float64) (vmath.Vector, float64, bool) {
	distance := centerA.Distance(centerB)
	radii := radiusA + radiusB

	if distance >= radii {
		return vmath.Zero, 0, false
	}

	normal := centerB.Sub(centerA).Normalize()
	return normal, radii - distance, true
}

// IntersectPolygons runs the separating axis test over the edge normals of
// both convex polygons.
func IntersectPolygons(centerA vmath.Vector, verticesA []vmath.Vector, centerB vmath.Vector, verticesB []vmath.Vector) (vmath.Vector, float64, bool) {
	normal := vmath.Zero
	depth := math.MaxFloat64

	for _, verts := range [2][]vmath.Vector{verticesA, verticesB} {
		for i := range verts {
			axis := edgeNormal(verts, i)

			minA, maxA := ProjectVertices(verticesA, axis)
			minB, maxB := ProjectVertices(verticesB, axis)

			if minA >= maxB || minB >= maxA {
				return vmath.Zero, 0, false
			}

			axisDepth := math.Min(maxB-minA, maxA-minB)
			if axisDepth < depth {
				depth = axisDepth
				normal = axis
			}
		}
	}

	if centerB.Sub(centerA).Dot(normal) < 0 {
		normal = normal.Neg()
	}
	return normal, depth, true
}

// IntersectCirclePolygon tests a circle against a convex polygon. The normal
// points from the circle toward the polygon center.
func IntersectCirclePolygon(circleCenter vmath.Vector, radius float64, polygonCenter vmath.Vector, vertices []vmath.Vector) (vmath.Vector, float64, bool) {
	normal := vmath.Zero
	depth := math.MaxFloat64

	test := func(axis vmath.Vector) bool {
		minA, maxA := ProjectVertices(vertices, axis)
		minB, maxB := ProjectCircle(circleCenter, radius, axis)

		if minA >= maxB || minB >= maxA {
			return false
		}

		axisDepth := math.Min(maxB-minA, maxA-minB)
		if axisDepth < depth {
			depth = axisDepth
			normal = axis
		}
		return true
	}

	for i := range vertices {
		if !test(edgeNormal(vertices, i)) {
			return vmath.Zero, 0, false
		}
	}

	cp := vertices[ClosestVertexIndex(circleCenter, vertices)]
	if !test(cp.Sub(circleCenter).Normalize()) {
		return vmath.Zero, 0, false
	}

	if polygonCenter.Sub(circleCenter).Dot(normal) < 0 {
		normal = normal.Neg()
	}
	return normal, depth, true
}

// edgeNormal returns the unit normal of the edge starting at vertex i.
func edgeNormal(vertices []vmath.Vector, i int) vmath.Vector {
	va := vertices[i]
	vb := vertices[(i+1)%len(vertices)]
	edge := vb.Sub(va)
	return vmath.New(-edge.Y, edge.X).Normalize()
}

// ClosestVertexIndex returns the index of the vertex nearest to point, or -1
// for an empty slice.
func ClosestVertexIndex(point vmath.Vector, vertices []vmath.Vector) int {
	result := -1
	minDistance := math.MaxFloat64

	for i, v := range vertices {
		d := v.Distance(point)
		if d < minDistance {
			minDistance = d
			result = i
		}
	}
	return result
}

// ProjectVertices returns the extent of vertices along axis.
func ProjectVertices(vertices []vmath.Vector, axis vmath.Vector) (min, max float64) {
	min = math.MaxFloat64
	max = -math.MaxFloat64

	for _, v := range vertices {
		proj := v.Dot(axis)
		if proj < min {
			min = proj
		}
		if proj > max {
			max = proj
		}
	}
	return min, max
}

// ProjectCircle returns the extent of a circle along axis, which need not be
// unit length.
func ProjectCircle(center vmath.Vector, radius float64, axis vmath.Vector) (min, max float64) {
	offset := axis.Normalize().Scale(radius)

	min = center.Add(offset).Dot(axis)
	max = center.Sub(offset).Dot(axis)

	if min > max {
		min, max = max, min
	}
	return min, max
}

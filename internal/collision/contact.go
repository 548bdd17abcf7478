package collision

import (
	"math"

	"github.com/san-kum/rigid2d/internal/body"
	"github.com/san-kum/rigid2d/internal/vmath"
)

// PointSegmentDistance projects p onto segment ab and returns the squared
// distance to the closest point along with that point.
func PointSegmentDistance(p, a, b vmath.Vector) (distSq float64, cp vmath.Vector) {
	ab := b.Sub(a)
	ap := p.Sub(a)

	d := ap.Dot(ab) / ab.LengthSquared()

	switch {
	case d <= 0:
		cp = a
	case d >= 1:
		cp = b
	default:
		cp = a.Add(ab.Scale(d))
	}

	return p.DistanceSquared(cp), cp
}

// FindContactPoints returns up to two contact points for an overlapping pair.
// The caller must have confirmed the overlap with Collide.
func FindContactPoints(a, b *body.Body) (c1, c2 vmath.Vector, count int) {
	switch a.Shape() {
	case body.Box:
		switch b.Shape() {
		case body.Box:
			return FindPolygonsContactPoints(a.TransformedVertices(), b.TransformedVertices())
		case body.Circle:
			return FindCirclePolygonContactPoint(b.Position(), a.TransformedVertices()), vmath.Zero, 1
		}
	case body.Circle:
		switch b.Shape() {
		case body.Box:
			return FindCirclePolygonContactPoint(a.Position(), b.TransformedVertices()), vmath.Zero, 1
		case body.Circle:
			return FindCirclesContactPoint(a.Position(), a.Radius(), b.Position()), vmath.Zero, 1
		}
	}
	return vmath.Zero, vmath.Zero, 0
}

func FindCirclesContactPoint(centerA vmath.Vector, radiusA float64, centerB vmath.Vector) vmath.Vector {
	dir := centerB.Sub(centerA).Normalize()
	return centerA.Add(dir.Scale(radiusA))
}

// FindCirclePolygonContactPoint returns the point on the polygon boundary
// closest to the circle center.
func FindCirclePolygonContactPoint(circleCenter vmath.Vector, vertices []vmath.Vector) vmath.Vector {
	cp := vmath.Zero
	minDistSq := math.MaxFloat64

	for i := range vertices {
		va := vertices[i]
		vb := vertices[(i+1)%len(vertices)]

		distSq, contact := PointSegmentDistance(circleCenter, va, vb)
		if distSq < minDistSq {
			minDistSq = distSq
			cp = contact
		}
	}
	return cp
}

// FindPolygonsContactPoints scans every vertex of each polygon against every
// edge of the other. Points tied with the running minimum become the second
// contact unless they coincide with the first; with more than two tied points
// the last one found wins.
func FindPolygonsContactPoints(verticesA, verticesB []vmath.Vector) (c1, c2 vmath.Vector, count int) {
	minDistSq := math.MaxFloat64

	scan := func(points, edges []vmath.Vector) {
		for _, p := range points {
			for j := range edges {
				va := edges[j]
				vb := edges[(j+1)%len(edges)]

				distSq, cp := PointSegmentDistance(p, va, vb)

				if distSq == minDistSq {
					if !vmath.NearlyEqualVec(cp, c1) {
						c2 = cp
						count = 2
					}
				} else if distSq < minDistSq {
					minDistSq = distSq
					c1 = cp
					count = 1
				}
			}
		}
	}

	scan(verticesA, verticesB)
	scan(verticesB, verticesA)
	return c1, c2, count
}

// Package geometry holds the planar and geodesic helpers shared by the indoor
// pathfinder and the outdoor leg client.
package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// ProjectPointOntoSegment returns the point of segment AB closest to P.
// A degenerate segment (A == B) projects everything onto A.
func ProjectPointOntoSegment(a, b, p orb.Point) orb.Point {
	abX, abY := b[0]-a[0], b[1]-a[1]
	apX, apY := p[0]-a[0], p[1]-a[1]

	abSquared := abX*abX + abY*abY
	if abSquared == 0 {
		return a
	}

	t := (apX*abX + apY*abY) / abSquared
	t = math.Max(0, math.Min(1, t))

	// explicit conversions keep the multiply from being fused into the add
	return orb.Point{a[0] + float64(t*abX), a[1] + float64(t*abY)}
}

// NearestIndex returns the index of the polyline point with the smallest
// great-circle distance to point, or -1 for an empty polyline. Ties keep the
// lowest index.
func NearestIndex(point orb.Point, polyline []orb.Point) int {
	nearest := -1
	minDistance := math.Inf(1)
	for i, p := range polyline {
		d := geo.Distance(point, p)
		if d < minDistance {
			minDistance = d
			nearest = i
		}
	}
	return nearest
}

// BoundingBox returns [minLon, minLat, maxLon, maxLat], or nil for no points.
func BoundingBox(points []orb.Point) []float64 {
	if len(points) == 0 {
		return nil
	}
	bound := orb.MultiPoint(points).Bound()
	return []float64{bound.Min.Lon(), bound.Min.Lat(), bound.Max.Lon(), bound.Max.Lat()}
}

package geometry

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func onSegment(a, b, q orb.Point) bool {
	cross := (b[0]-a[0])*(q[1]-a[1]) - (b[1]-a[1])*(q[0]-a[0])
	if math.Abs(cross) > 1e-9 {
		return false
	}
	return q[0] >= math.Min(a[0], b[0])-1e-9 && q[0] <= math.Max(a[0], b[0])+1e-9 &&
		q[1] >= math.Min(a[1], b[1])-1e-9 && q[1] <= math.Max(a[1], b[1])+1e-9
}

func TestProjectPointOntoSegment(t *testing.T) {
	tests := []struct {
		name    string
		a, b, p orb.Point
		want    orb.Point
	}{
		{"interior", orb.Point{555, 220}, orb.Point{845, 220}, orb.Point{765, 195}, orb.Point{765, 220}},
		{"clamped to A", orb.Point{180, 220}, orb.Point{180, 400}, orb.Point{160, 200}, orb.Point{180, 220}},
		{"clamped to B", orb.Point{0, 0}, orb.Point{10, 0}, orb.Point{15, 5}, orb.Point{10, 0}},
		{"degenerate", orb.Point{3, 4}, orb.Point{3, 4}, orb.Point{100, 100}, orb.Point{3, 4}},
		{"diagonal", orb.Point{0, 0}, orb.Point{10, 10}, orb.Point{10, 0}, orb.Point{5, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProjectPointOntoSegment(tt.a, tt.b, tt.p)
			if math.Abs(got[0]-tt.want[0]) > 1e-9 || math.Abs(got[1]-tt.want[1]) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if !onSegment(tt.a, tt.b, got) {
				t.Errorf("%v is not on segment %v-%v", got, tt.a, tt.b)
			}
		})
	}
}

func TestProjectPointAlwaysOnSegment(t *testing.T) {
	a, b := orb.Point{-3, 7}, orb.Point{12, -2}
	for x := -20.0; x <= 20; x += 2.5 {
		for y := -20.0; y <= 20; y += 2.5 {
			q := ProjectPointOntoSegment(a, b, orb.Point{x, y})
			if !onSegment(a, b, q) {
				t.Fatalf("projection of (%v,%v) = %v left the segment", x, y, q)
			}
		}
	}
}

func TestNearestIndex(t *testing.T) {
	path := []orb.Point{
		{-73.5790, 45.4970},
		{-73.5780, 45.4975},
		{-73.5770, 45.4980},
		{-73.5760, 45.4985},
	}

	if got := NearestIndex(orb.Point{-73.5771, 45.4981}, path); got != 2 {
		t.Errorf("expected index 2, got %d", got)
	}
	if got := NearestIndex(orb.Point{-73.6, 45.4}, path); got != 0 {
		t.Errorf("expected index 0, got %d", got)
	}
	if got := NearestIndex(orb.Point{0, 0}, nil); got != -1 {
		t.Errorf("expected -1 for empty polyline, got %d", got)
	}
}

func TestBoundingBox(t *testing.T) {
	if got := BoundingBox(nil); got != nil {
		t.Errorf("expected nil for no points, got %v", got)
	}

	got := BoundingBox([]orb.Point{{-73.58, 45.49}, {-73.64, 45.45}, {-73.60, 45.50}})
	want := []float64{-73.64, 45.45, -73.58, 45.50}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

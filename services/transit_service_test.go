package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"campus-route-server/models"

	"github.com/paulmach/orb"
	"googlemaps.github.io/maps"
)

func encodePath(points ...orb.Point) string {
	latLngs := make([]maps.LatLng, len(points))
	for i, p := range points {
		latLngs[i] = maps.LatLng{Lat: p.Lat(), Lng: p.Lon()}
	}
	return maps.Encode(latLngs)
}

func mustDecode(t *testing.T, encoded string) []orb.Point {
	t.Helper()
	path, err := decodePath(encoded)
	if err != nil {
		t.Fatalf("decoding %q: %v", encoded, err)
	}
	return path
}

var (
	pointA = orb.Point{-73.60000, 45.50000}
	pointB = orb.Point{-73.59900, 45.50000}
	pointC = orb.Point{-73.59800, 45.50100}
	pointD = orb.Point{-73.59700, 45.50200}
	pointE = orb.Point{-73.59600, 45.50300}
	pointF = orb.Point{-73.59500, 45.50400}
)

func walkLeg() TransitLeg {
	leg := TransitLeg{
		Mode:     "foot",
		Distance: 250,
		Steps: []TransitWaypoint{
			{Distance: 138.5, StreetName: "Rue Guy", Heading: 90.0, Longitude: pointA.Lon(), Latitude: pointA.Lat()},
			{Distance: 111.5, StreetName: "Rue Sainte-Catherine", Heading: 45.5, Longitude: pointC.Lon(), Latitude: pointC.Lat()},
		},
	}
	leg.PointsOnLink.Points = encodePath(pointA, pointB, pointC)
	return leg
}

func busLeg() TransitLeg {
	leg := TransitLeg{
		Mode:     "bus",
		Distance: 400,
		Line:     &TransitLine{PublicCode: "24", Name: "Sherbrooke"},
		IntermediateQuays: []TransitWaypoint{
			{Name: "Atwater", Longitude: pointD.Lon(), Latitude: pointD.Lat()},
			{Name: "Lambert-Closse", Longitude: pointF.Lon(), Latitude: pointF.Lat()},
		},
	}
	leg.PointsOnLink.Points = encodePath(pointC, pointD, pointE, pointF)
	return leg
}

func TestSelectTripPattern(t *testing.T) {
	walkOnly := TripPattern{Distance: 1, Legs: []TransitLeg{walkLeg()}}
	mixed := TripPattern{Distance: 2, Legs: []TransitLeg{walkLeg(), busLeg()}}

	if p, ok := selectTripPattern([]TripPattern{walkOnly, mixed}); !ok || p.Distance != 2 {
		t.Errorf("expected the multi-leg pattern, got %v", p.Distance)
	}
	if p, ok := selectTripPattern([]TripPattern{walkOnly}); !ok || p.Distance != 1 {
		t.Errorf("expected the only pattern, got %v", p.Distance)
	}
	if _, ok := selectTripPattern(nil); ok {
		t.Error("expected no pattern")
	}
}

func TestAlignFootLeg(t *testing.T) {
	leg := walkLeg()
	path := mustDecode(t, leg.PointsOnLink.Points)

	steps, err := alignLegSteps(leg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(steps))
	}

	if steps[0].Instruction != "Head 90 on Rue Guy" {
		t.Errorf("unexpected instruction %q", steps[0].Instruction)
	}
	if steps[1].Instruction != "Head 45.5 on Rue Sainte-Catherine" {
		t.Errorf("unexpected instruction %q", steps[1].Instruction)
	}
	if !reflect.DeepEqual(steps[0].Coordinates, path[0:3]) {
		t.Errorf("step 0 should span the whole path, got %v", steps[0].Coordinates)
	}
	if !reflect.DeepEqual(steps[1].Coordinates, path[2:3]) {
		t.Errorf("step 1 should hold the last point only, got %v", steps[1].Coordinates)
	}
	if math.Abs(steps[0].Duration-100) > 1e-9 {
		t.Errorf("expected 138.5 m at walking speed to take 100 s, got %v", steps[0].Duration)
	}
	if steps[0].Type != 0 {
		t.Errorf("expected step type 0, got %d", steps[0].Type)
	}
}

func TestAlignTransitLeg(t *testing.T) {
	leg := busLeg()
	path := mustDecode(t, leg.PointsOnLink.Points)

	steps, err := alignLegSteps(leg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(steps))
	}

	if steps[0].Instruction != "Get on Bus 24 Sherbrooke: Atwater" {
		t.Errorf("unexpected instruction %q", steps[0].Instruction)
	}
	if steps[1].Instruction != "Get off Bus 24 Sherbrooke at Lambert-Closse" {
		t.Errorf("unexpected instruction %q", steps[1].Instruction)
	}
	if !reflect.DeepEqual(steps[0].Coordinates, path[0:2]) {
		t.Errorf("boarding step should run from the first point to the first stop, got %v", steps[0].Coordinates)
	}
	if !reflect.DeepEqual(steps[1].Coordinates, path[1:4]) {
		t.Errorf("last step should run to the end of the path, got %v", steps[1].Coordinates)
	}
	if steps[0].Distance != 0 || steps[0].Duration != 0 {
		t.Errorf("stops carry no distance, got %v/%v", steps[0].Distance, steps[0].Duration)
	}
}

func TestAlignStayInInstruction(t *testing.T) {
	leg := busLeg()
	leg.Mode = "METRO"
	leg.IntermediateQuays = []TransitWaypoint{
		{Name: "Guy-Concordia", Longitude: pointD.Lon(), Latitude: pointD.Lat()},
		{Name: "Peel", Longitude: pointE.Lon(), Latitude: pointE.Lat()},
		{Name: "McGill", Longitude: pointF.Lon(), Latitude: pointF.Lat()},
	}

	steps, err := alignLegSteps(leg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if steps[1].Instruction != "Stay in Metro 24 Sherbrooke: Peel" {
		t.Errorf("unexpected instruction %q", steps[1].Instruction)
	}
}

func TestAlignBackwardsMatch(t *testing.T) {
	leg := walkLeg()
	leg.Steps[0], leg.Steps[1] = leg.Steps[1], leg.Steps[0]

	steps, err := alignLegSteps(leg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if steps[0].Coordinates == nil || len(steps[0].Coordinates) != 0 {
		t.Errorf("a step matched after its successor should be empty, got %v", steps[0].Coordinates)
	}
	if len(steps[1].Coordinates) != 3 {
		t.Errorf("expected the last step to span the path, got %v", steps[1].Coordinates)
	}
}

func TestAlignInvalidPolyline(t *testing.T) {
	leg := walkLeg()
	leg.PointsOnLink.Points = ""

	_, err := alignLegSteps(leg)
	var upstream *UpstreamError
	if !errors.As(err, &upstream) || upstream.Status != http.StatusBadGateway {
		t.Errorf("expected 502 for a leg without geometry, got %v", err)
	}
}

func newTransitServer(t *testing.T, status int, body any, gotQuery *string) *TransitService {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected content type %q", r.Header.Get("Content-Type"))
		}
		raw, _ := io.ReadAll(r.Body)
		var req map[string]string
		if err := json.Unmarshal(raw, &req); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		if gotQuery != nil {
			*gotQuery = req["query"]
		}
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return NewTransitService(srv.URL, &http.Client{Timeout: 5 * time.Second})
}

func TestPlanTransit(t *testing.T) {
	var resp TransitResponse
	resp.Data.Trip.TripPatterns = []TripPattern{
		{Duration: 300, Distance: 260, Legs: []TransitLeg{walkLeg()}},
		{Duration: 900, Distance: 650, Legs: []TransitLeg{walkLeg(), busLeg()}},
	}

	var query string
	ts := newTransitServer(t, http.StatusOK, resp, &query)

	start, end := pointA, orb.Point{-73.5950, 45.5040}
	leg, err := ts.PlanTransit(context.Background(), start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, fragment := range []string{
		"wheelchairAccessible: true",
		"numTripPatterns: 3",
		"walkReluctance: 2.0",
		"latitude: 45.5 longitude: -73.6",
		"latitude: 45.504 longitude: -73.595",
	} {
		if !strings.Contains(query, fragment) {
			t.Errorf("query is missing %q:\n%s", fragment, query)
		}
	}

	if leg.Profile != models.PublicTransport {
		t.Errorf("expected public-transport profile, got %s", leg.Profile)
	}
	if leg.TotalDistance != 650 || leg.TotalDuration != 900 {
		t.Errorf("totals should come from the chosen pattern, got %v/%v", leg.TotalDistance, leg.TotalDuration)
	}
	if len(leg.Steps) != 5 {
		t.Fatalf("expected 2 walk + 2 bus + arrival steps, got %d", len(leg.Steps))
	}

	arrival := leg.Steps[4]
	if arrival.Instruction != "Arrived at destination" || arrival.Type != -1 {
		t.Errorf("unexpected arrival step %+v", arrival)
	}
	if !reflect.DeepEqual(arrival.Coordinates, []orb.Point{end}) {
		t.Errorf("arrival should carry the raw destination, got %v", arrival.Coordinates)
	}
	if leg.StartingCoordinates != start || leg.DestinationCoordinates != end {
		t.Errorf("leg endpoints should be the requested coordinates")
	}

	if len(leg.BBox) != 4 {
		t.Fatalf("expected a 4-value bbox, got %v", leg.BBox)
	}
	for _, step := range leg.Steps {
		for _, p := range step.Coordinates {
			if p.Lon() < leg.BBox[0] || p.Lat() < leg.BBox[1] || p.Lon() > leg.BBox[2] || p.Lat() > leg.BBox[3] {
				t.Errorf("point %v outside bbox %v", p, leg.BBox)
			}
		}
	}
}

func TestPlanTransitNoPatterns(t *testing.T) {
	var resp TransitResponse
	ts := newTransitServer(t, http.StatusOK, resp, nil)

	_, err := ts.PlanTransit(context.Background(), pointA, pointF)
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.Status != http.StatusBadRequest || upstream.Message != "No trip patterns found" {
		t.Errorf("unexpected error %+v", upstream)
	}
}

func TestPlanTransitUpstreamFailure(t *testing.T) {
	body := map[string]any{"errors": []any{map[string]any{"message": "Invalid coordinates"}}}
	ts := newTransitServer(t, http.StatusServiceUnavailable, body, nil)

	_, err := ts.PlanTransit(context.Background(), pointA, pointF)
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.Status != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", upstream.Status)
	}
	if errs, ok := upstream.Payload.([]any); !ok || len(errs) != 1 {
		t.Errorf("expected the planner errors as payload, got %v", upstream.Payload)
	}
}

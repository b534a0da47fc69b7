package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"campus-route-server/geometry"
	"campus-route-server/models"

	"github.com/paulmach/orb"
	"googlemaps.github.io/maps"
)

// AverageWalkingSpeed (m/s) turns transit step distances into durations.
const AverageWalkingSpeed = 1.385

const (
	tripPatternCount = 3
	walkReluctance   = 2.0
)

const tripQuery = `query PublicTransportQuery {
  trip(
    wheelchairAccessible: %t
    numTripPatterns: %d
    walkReluctance: %.1f
    from: { coordinates: { latitude: %s longitude: %s } }
    to: { coordinates: { latitude: %s longitude: %s } }
  ) {
    tripPatterns {
      expectedEndTime
      duration
      distance
      legs {
        mode
        distance
        duration
        fromPlace { name latitude longitude }
        toPlace { name latitude longitude }
        line { publicCode name }
        steps { distance relativeDirection streetName heading stayOn latitude longitude }
        intermediateQuays { name latitude longitude }
        pointsOnLink { points }
      }
    }
  }
}`

type TransitResponse struct {
	Data struct {
		Trip struct {
			TripPatterns []TripPattern `json:"tripPatterns"`
		} `json:"trip"`
	} `json:"data"`
	Errors []any `json:"errors,omitempty"`
}

type TripPattern struct {
	Duration float64      `json:"duration"`
	Distance float64      `json:"distance"`
	Legs     []TransitLeg `json:"legs"`
}

type TransitLeg struct {
	Mode              string            `json:"mode"`
	Distance          float64           `json:"distance"`
	Duration          float64           `json:"duration"`
	Line              *TransitLine      `json:"line"`
	Steps             []TransitWaypoint `json:"steps"`
	IntermediateQuays []TransitWaypoint `json:"intermediateQuays"`
	PointsOnLink      struct {
		Points string `json:"points"`
	} `json:"pointsOnLink"`
}

type TransitLine struct {
	PublicCode string `json:"publicCode"`
	Name       string `json:"name"`
}

// TransitWaypoint is either a walking step or an intermediate stop; the
// planner reports both with a position, and only the fields of its own kind
// are filled in.
type TransitWaypoint struct {
	Name       string  `json:"name"`
	Distance   float64 `json:"distance"`
	StreetName string  `json:"streetName"`
	Heading    any     `json:"heading"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

func (w TransitWaypoint) Point() orb.Point {
	return orb.Point{w.Longitude, w.Latitude}
}

// TransitService queries an OTP/Entur-shaped GraphQL trip planner.
type TransitService struct {
	baseURL    string
	httpClient *http.Client
}

func NewTransitService(baseURL string, httpClient *http.Client) *TransitService {
	return &TransitService{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func buildTripQuery(start, end orb.Point) string {
	return fmt.Sprintf(tripQuery,
		true,
		tripPatternCount,
		walkReluctance,
		formatDegrees(start.Lat()), formatDegrees(start.Lon()),
		formatDegrees(end.Lat()), formatDegrees(end.Lon()),
	)
}

func formatDegrees(v float64) string {
	return fmt.Sprintf("%g", v)
}

func (s *TransitService) PlanTransit(ctx context.Context, start, end orb.Point) (*models.RouteLeg, error) {
	log.Printf("=== Starting transit routing ===")
	log.Printf("Start: (%.6f, %.6f), End: (%.6f, %.6f)", start.Lat(), start.Lon(), end.Lat(), end.Lon())

	payload, err := json.Marshal(map[string]string{"query": buildTripQuery(start, end)})
	if err != nil {
		return nil, fmt.Errorf("failed to encode trip query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build transit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Message: fmt.Sprintf("failed to call transit planner: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Message: fmt.Sprintf("failed to read transit response: %v", err)}
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("Transit planner error: %s", resp.Status)
		return nil, &UpstreamError{
			Status:  resp.StatusCode,
			Message: "Failed to get directions",
			Payload: errorPayload(body, "errors"),
		}
	}

	var transitResp TransitResponse
	if err := json.Unmarshal(body, &transitResp); err != nil {
		return nil, malformed(fmt.Sprintf("failed to parse transit response: %v", err))
	}

	leg, err := parseTransitDirections(&transitResp, start, end)
	if err != nil {
		return nil, err
	}

	log.Printf("=== Transit routing completed with %d steps ===", len(leg.Steps))
	return leg, nil
}

// selectTripPattern prefers the first pattern with more than one leg so a
// walk-only answer does not hide a transit option.
func selectTripPattern(patterns []TripPattern) (TripPattern, bool) {
	if len(patterns) == 0 {
		return TripPattern{}, false
	}
	for _, p := range patterns {
		if len(p.Legs) > 1 {
			return p, true
		}
	}
	return patterns[0], true
}

func parseTransitDirections(transitResp *TransitResponse, start, end orb.Point) (*models.RouteLeg, error) {
	pattern, ok := selectTripPattern(transitResp.Data.Trip.TripPatterns)
	if !ok {
		if len(transitResp.Errors) > 0 {
			return nil, &UpstreamError{
				Status:  http.StatusBadGateway,
				Message: "Failed to get directions",
				Payload: transitResp.Errors,
			}
		}
		return nil, &UpstreamError{Status: http.StatusBadRequest, Message: "No trip patterns found"}
	}

	var steps []models.RouteStep
	for i, leg := range pattern.Legs {
		legSteps, err := alignLegSteps(leg)
		if err != nil {
			return nil, fmt.Errorf("leg %d (%s): %w", i, leg.Mode, err)
		}
		steps = append(steps, legSteps...)
	}
	steps = append(steps, models.RouteStep{
		Instruction: "Arrived at destination",
		Type:        -1,
		Coordinates: []orb.Point{end},
	})

	var all []orb.Point
	for _, step := range steps {
		all = append(all, step.Coordinates...)
	}

	return &models.RouteLeg{
		Profile:                models.PublicTransport,
		StartingCoordinates:    start,
		DestinationCoordinates: end,
		TotalDistance:          pattern.Distance,
		TotalDuration:          pattern.Duration,
		BBox:                   geometry.BoundingBox(all),
		Steps:                  steps,
	}, nil
}

func decodePath(points string) ([]orb.Point, error) {
	latLngs, err := maps.DecodePolyline(points)
	if err != nil {
		return nil, err
	}
	path := make([]orb.Point, len(latLngs))
	for i, ll := range latLngs {
		path[i] = orb.Point{ll.Lng, ll.Lat}
	}
	return path, nil
}

// alignLegSteps cuts the leg geometry into one slice per step. Each step is
// pinned to its nearest path point; a transit leg is additionally anchored at
// both ends of the path so boarding starts at the first point.
func alignLegSteps(leg TransitLeg) ([]models.RouteStep, error) {
	foot := leg.Mode == "foot"
	waypoints := leg.IntermediateQuays
	if foot {
		waypoints = leg.Steps
	}
	if len(waypoints) == 0 {
		return nil, nil
	}

	path, err := decodePath(leg.PointsOnLink.Points)
	if err != nil {
		return nil, malformed(fmt.Sprintf("invalid leg polyline: %v", err))
	}
	if len(path) == 0 {
		return nil, malformed("leg has no geometry")
	}
	last := len(path) - 1

	matched := make([]int, 0, len(waypoints)+2)
	if !foot {
		matched = append(matched, 0)
	}
	for _, wp := range waypoints {
		matched = append(matched, geometry.NearestIndex(wp.Point(), path))
	}
	if !foot {
		matched = append(matched, last)
	}

	steps := make([]models.RouteStep, 0, len(waypoints))
	for i, wp := range waypoints {
		from := matched[i]
		to := last
		if i < len(waypoints)-1 {
			to = matched[i+1]
		}

		coords := []orb.Point{}
		if from <= to {
			coords = append(coords, path[from:to+1]...)
		}

		steps = append(steps, models.RouteStep{
			Distance:    wp.Distance,
			Duration:    wp.Distance / AverageWalkingSpeed,
			Instruction: stepInstruction(leg, wp, i, len(waypoints)),
			Type:        0,
			Coordinates: coords,
		})
	}
	return steps, nil
}

func stepInstruction(leg TransitLeg, wp TransitWaypoint, i, n int) string {
	if leg.Mode == "foot" {
		return fmt.Sprintf("Head %s on %s", headingText(wp.Heading), wp.StreetName)
	}

	var line TransitLine
	if leg.Line != nil {
		line = *leg.Line
	}
	vehicle := fmt.Sprintf("%s %s %s", capitalize(leg.Mode), line.PublicCode, line.Name)

	switch i {
	case 0:
		return fmt.Sprintf("Get on %s: %s", vehicle, wp.Name)
	case n - 1:
		return fmt.Sprintf("Get off %s at %s", vehicle, wp.Name)
	default:
		return fmt.Sprintf("Stay in %s: %s", vehicle, wp.Name)
	}
}

func headingText(heading any) string {
	if heading == nil {
		return ""
	}
	return fmt.Sprint(heading)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	"campus-route-server/models"
	"campus-route-server/utils"

	"github.com/paulmach/orb"
)

type ORSResponse struct {
	BBox     []float64    `json:"bbox"`
	Features []ORSFeature `json:"features"`
	Metadata struct {
		Query struct {
			Profile string `json:"profile"`
		} `json:"query"`
	} `json:"metadata"`
}

type ORSFeature struct {
	Geometry struct {
		Coordinates []orb.Point `json:"coordinates"`
	} `json:"geometry"`
	Properties struct {
		Segments []ORSSegment `json:"segments"`
	} `json:"properties"`
}

type ORSSegment struct {
	Distance float64   `json:"distance"`
	Duration float64   `json:"duration"`
	Steps    []ORSStep `json:"steps"`
}

type ORSStep struct {
	Distance    float64 `json:"distance"`
	Duration    float64 `json:"duration"`
	Type        int     `json:"type"`
	Instruction string  `json:"instruction"`
	WayPoints   []int   `json:"way_points"`
}

// ORSService talks to an OpenRouteService-shaped directions endpoint:
// GET {base}/{profile}?start=lon,lat&end=lon,lat answering GeoJSON.
type ORSService struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewORSService(baseURL, apiKey string, httpClient *http.Client) *ORSService {
	return &ORSService{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

func (s *ORSService) CalculateRoute(ctx context.Context, start, end orb.Point, profile models.Profile) (*models.RouteLeg, error) {
	params := url.Values{}
	params.Set("start", utils.FormatCoordinate(start))
	params.Set("end", utils.FormatCoordinate(end))
	requestURL := fmt.Sprintf("%s/%s?%s", s.baseURL, profile, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build ORS request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/geo+json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Message: fmt.Sprintf("failed to call ORS: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Message: fmt.Sprintf("failed to read ORS response: %v", err)}
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("ORS request failed with status: %s", resp.Status)
		return nil, &UpstreamError{
			Status:  resp.StatusCode,
			Message: "Failed to get directions",
			Payload: errorPayload(body, "error"),
		}
	}

	var orsResp ORSResponse
	if err := json.Unmarshal(body, &orsResp); err != nil {
		return nil, &UpstreamError{
			Status:  http.StatusBadGateway,
			Message: fmt.Sprintf("failed to parse ORS response: %v", err),
		}
	}

	return parseORSDirections(&orsResp)
}

func parseORSDirections(orsResp *ORSResponse) (*models.RouteLeg, error) {
	if len(orsResp.Features) == 0 {
		return nil, malformed("No features found in GeoJSON data")
	}
	feature := orsResp.Features[0]
	coordinates := feature.Geometry.Coordinates
	if len(coordinates) == 0 || len(feature.Properties.Segments) == 0 {
		return nil, malformed("ORS route has no geometry or segments")
	}
	segment := feature.Properties.Segments[0]

	leg := &models.RouteLeg{
		Profile:                models.Profile(orsResp.Metadata.Query.Profile),
		StartingCoordinates:    coordinates[0],
		DestinationCoordinates: coordinates[len(coordinates)-1],
		TotalDistance:          segment.Distance,
		TotalDuration:          segment.Duration,
		BBox:                   models.BBox(orsResp.BBox),
		Steps:                  make([]models.RouteStep, 0, len(segment.Steps)),
	}

	for i, step := range segment.Steps {
		if len(step.WayPoints) != 2 {
			return nil, malformed(fmt.Sprintf("step %d has %d way points", i, len(step.WayPoints)))
		}
		from, to := step.WayPoints[0], step.WayPoints[1]
		if from < 0 || to >= len(coordinates) || from > to {
			return nil, malformed(fmt.Sprintf("step %d way points %v outside geometry of %d points", i, step.WayPoints, len(coordinates)))
		}

		leg.Steps = append(leg.Steps, models.RouteStep{
			Distance:    step.Distance,
			Duration:    step.Duration,
			Instruction: step.Instruction,
			Type:        step.Type,
			Coordinates: append([]orb.Point(nil), coordinates[from:to+1]...),
		})
	}

	return leg, nil
}

func malformed(message string) *UpstreamError {
	return &UpstreamError{Status: http.StatusBadGateway, Message: message}
}

// errorPayload pulls key out of an error body, falling back to the raw text
// when the body is not a JSON object.
func errorPayload(body []byte, key string) any {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		if len(body) == 0 {
			return "Unknown error"
		}
		return string(body)
	}
	if v, ok := payload[key]; ok {
		return v
	}
	return "Unknown error"
}

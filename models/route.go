package models

import "github.com/paulmach/orb"

// BBox is [minLon, minLat, maxLon, maxLat]. An empty BBox means no coordinates were seen.
type BBox []float64

type RouteStep struct {
	Distance    float64     `json:"distance"`
	Duration    float64     `json:"duration"`
	Instruction string      `json:"instruction"`
	Type        int         `json:"type"`
	Coordinates []orb.Point `json:"coordinates"`
}

type RouteLeg struct {
	Profile                Profile     `json:"profile"`
	StartingCoordinates    orb.Point   `json:"startingCoordinates"`
	DestinationCoordinates orb.Point   `json:"destinationCoordinates"`
	TotalDistance          float64     `json:"total_distance"`
	TotalDuration          float64     `json:"total_duration"`
	BBox                   BBox        `json:"bbox"`
	Steps                  []RouteStep `json:"steps"`
}

// Coordinates returns every step coordinate of the leg in order.
func (l *RouteLeg) Coordinates() []orb.Point {
	var points []orb.Point
	for _, step := range l.Steps {
		points = append(points, step.Coordinates...)
	}
	return points
}

// Trip leg names, in travel order.
const (
	LegWalkToStop   = "walk_to_stop"
	LegShuttleRide  = "shuttle_ride"
	LegWalkFromStop = "walk_from_stop"
)

var TripLegOrder = []string{LegWalkToStop, LegShuttleRide, LegWalkFromStop}

type Trip struct {
	TotalDistance       float64              `json:"total_distance"`
	TotalDuration       float64              `json:"total_duration"`
	BBox                BBox                 `json:"bbox"`
	Legs                map[string]*RouteLeg `json:"legs"`
	OriginBuilding      string               `json:"origin_building"`
	DestinationBuilding string               `json:"destination_building"`
	OriginCampus        string               `json:"origin_campus"`
	DestinationCampus   string               `json:"destination_campus"`
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"campus-route-server/geometry"
	"campus-route-server/models"
	"campus-route-server/store"
	"campus-route-server/utils"

	"github.com/paulmach/orb"
)

type LegRequester interface {
	RequestLeg(ctx context.Context, start, end orb.Point, profile models.Profile) (*models.RouteLeg, error)
}

// CampusStore resolves the reference data the shuttle composer needs.
// Lookups that match nothing return store.ErrNotFound.
type CampusStore interface {
	NearestBuilding(ctx context.Context, p orb.Point) (*models.Building, error)
	ShuttleStopByName(ctx context.Context, name string) (*models.ShuttleStop, error)
}

// TripResult is a single leg when both ends share a campus and a three-leg
// shuttle trip otherwise. Exactly one field is set.
type TripResult struct {
	Leg  *models.RouteLeg
	Trip *models.Trip
}

// Body is the value rendered to clients.
func (r *TripResult) Body() any {
	if r.Trip != nil {
		return r.Trip
	}
	return r.Leg
}

type RoutingService struct {
	legs  LegRequester
	store CampusStore
}

func NewRoutingService(legs LegRequester, campus CampusStore) *RoutingService {
	return &RoutingService{
		legs:  legs,
		store: campus,
	}
}

// GetDirections serves one profile between two "lon,lat" strings. The
// shuttle profile goes through the trip composer.
func (rs *RoutingService) GetDirections(ctx context.Context, profile models.Profile, start, end string) (*TripResult, error) {
	if profile == models.ConcordiaShuttle {
		return rs.ComposeMultiModalTrip(ctx, start, end)
	}
	if profile == models.Unknown {
		return nil, &NotFoundError{Message: "unknown routing profile"}
	}

	startPoint, endPoint, err := parseEndpoints(start, end)
	if err != nil {
		return nil, err
	}

	leg, err := rs.legs.RequestLeg(ctx, startPoint, endPoint, profile)
	if err != nil {
		return nil, err
	}
	return &TripResult{Leg: leg}, nil
}

func parseEndpoints(start, end string) (orb.Point, orb.Point, error) {
	if start == "" || end == "" {
		return orb.Point{}, orb.Point{}, &InvalidInputError{Message: "Missing start or end parameter"}
	}
	startPoint, err := utils.ParseCoordinate(start)
	if err != nil {
		return orb.Point{}, orb.Point{}, &InvalidInputError{Message: "Invalid coordinate format. Use 'lon,lat'."}
	}
	endPoint, err := utils.ParseCoordinate(end)
	if err != nil {
		return orb.Point{}, orb.Point{}, &InvalidInputError{Message: "Invalid coordinate format. Use 'lon,lat'."}
	}
	return startPoint, endPoint, nil
}

// ComposeMultiModalTrip walks to the origin campus shuttle stop, rides the
// shuttle, and walks on from the destination campus stop. Endpoints on the
// same campus get a plain walking leg instead.
func (rs *RoutingService) ComposeMultiModalTrip(ctx context.Context, start, end string) (*TripResult, error) {
	log.Printf("=== Composing shuttle trip from %s to %s ===", start, end)

	startPoint, endPoint, err := parseEndpoints(start, end)
	if err != nil {
		return nil, err
	}

	originBuilding, err := rs.nearestBuilding(ctx, startPoint)
	if err != nil {
		return nil, err
	}
	destinationBuilding, err := rs.nearestBuilding(ctx, endPoint)
	if err != nil {
		return nil, err
	}

	originCampus, destinationCampus := originBuilding.Campus, destinationBuilding.Campus
	log.Printf("Origin %s (%s), destination %s (%s)",
		originBuilding.BuildingCode, originCampus, destinationBuilding.BuildingCode, destinationCampus)

	if originCampus == destinationCampus {
		leg, err := rs.legs.RequestLeg(ctx, startPoint, endPoint, models.FootWalking)
		if err != nil {
			return nil, err
		}
		return &TripResult{Leg: leg}, nil
	}

	originStop, err := rs.shuttleStop(ctx, originCampus)
	if err != nil {
		return nil, err
	}
	destinationStop, err := rs.shuttleStop(ctx, destinationCampus)
	if err != nil {
		return nil, err
	}

	plan := []struct {
		name       string
		start, end orb.Point
		profile    models.Profile
	}{
		{models.LegWalkToStop, startPoint, originStop.Point(), models.FootWalking},
		{models.LegShuttleRide, originStop.Point(), destinationStop.Point(), models.DrivingCar},
		{models.LegWalkFromStop, destinationStop.Point(), endPoint, models.FootWalking},
	}

	legs := make(map[string]*models.RouteLeg, len(plan))
	for i, p := range plan {
		leg, err := rs.legs.RequestLeg(ctx, p.start, p.end, p.profile)
		if err != nil {
			log.Printf("Leg %d (%s) failed: %v", i+1, p.name, err)
			return nil, fmt.Errorf("error fetching %s directions for leg %d: %w", p.profile, i+1, err)
		}
		legs[p.name] = leg
	}

	trip := buildCombinedTrip(legs)
	trip.OriginBuilding = originBuilding.BuildingCode
	trip.DestinationBuilding = destinationBuilding.BuildingCode
	trip.OriginCampus = originCampus
	trip.DestinationCampus = destinationCampus

	log.Printf("=== Shuttle trip composed: %.0f m, %.0f s ===", trip.TotalDistance, trip.TotalDuration)
	return &TripResult{Trip: trip}, nil
}

func buildCombinedTrip(legs map[string]*models.RouteLeg) *models.Trip {
	trip := &models.Trip{Legs: legs}

	var all []orb.Point
	for _, name := range models.TripLegOrder {
		leg, ok := legs[name]
		if !ok {
			continue
		}
		trip.TotalDistance += leg.TotalDistance
		trip.TotalDuration += leg.TotalDuration
		all = append(all, leg.Coordinates()...)
	}

	trip.BBox = geometry.BoundingBox(all)
	if trip.BBox == nil {
		trip.BBox = models.BBox{}
	}
	return trip
}

func (rs *RoutingService) nearestBuilding(ctx context.Context, p orb.Point) (*models.Building, error) {
	building, err := rs.store.NearestBuilding(ctx, p)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Message: "No nearby building found for the given location."}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up nearest building: %w", err)
	}
	return building, nil
}

func (rs *RoutingService) shuttleStop(ctx context.Context, campus string) (*models.ShuttleStop, error) {
	stop, err := rs.store.ShuttleStopByName(ctx, campus)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Message: "Shuttle stop not found for one or both campuses."}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up shuttle stop %s: %w", campus, err)
	}
	return stop, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"campus-route-server/models"
	"campus-route-server/store"

	"github.com/paulmach/orb"
)

// DefaultShuttleStop answers upcoming-shuttle requests without usable
// coordinates.
const DefaultShuttleStop = "SGW"

const upcomingShuttleCount = 5

type ShuttleStore interface {
	ShuttleStops(ctx context.Context) ([]models.ShuttleStop, error)
	ShuttleStopByName(ctx context.Context, name string) (*models.ShuttleStop, error)
	ClosestShuttleStop(ctx context.Context, p orb.Point) (*models.ShuttleStop, error)
	UpcomingShuttles(ctx context.Context, campus string, now time.Time, limit int) ([]models.UpcomingShuttle, error)
}

type ShuttleService struct {
	store    ShuttleStore
	location *time.Location
	now      func() time.Time
}

func NewShuttleService(s ShuttleStore, location *time.Location) *ShuttleService {
	if location == nil {
		location = time.Local
	}
	return &ShuttleService{
		store:    s,
		location: location,
		now:      time.Now,
	}
}

func (ss *ShuttleService) Stops(ctx context.Context) ([]models.ShuttleStop, error) {
	return ss.store.ShuttleStops(ctx)
}

// Upcoming finds the stop closest to (long, lat) and its next departures
// today. Coordinates that do not parse select DefaultShuttleStop.
func (ss *ShuttleService) Upcoming(ctx context.Context, long, lat string) (*models.UpcomingShuttlesResponse, error) {
	var stop *models.ShuttleStop
	var err error

	if p, ok := parseLonLat(long, lat); ok {
		stop, err = ss.store.ClosestShuttleStop(ctx, p)
	} else {
		stop, err = ss.store.ShuttleStopByName(ctx, DefaultShuttleStop)
	}
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Message: "No shuttle stop registered"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find shuttle stop: %w", err)
	}

	upcoming, err := ss.store.UpcomingShuttles(ctx, stop.Name, ss.now().In(ss.location), upcomingShuttleCount)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule for %s: %w", stop.Name, err)
	}

	return &models.UpcomingShuttlesResponse{
		ShuttleStop:      *stop,
		UpcomingShuttles: upcoming,
	}, nil
}

func parseLonLat(long, lat string) (orb.Point, bool) {
	lon, err := strconv.ParseFloat(strings.TrimSpace(long), 64)
	if err != nil {
		return orb.Point{}, false
	}
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return orb.Point{}, false
	}
	return orb.Point{lon, la}, true
}

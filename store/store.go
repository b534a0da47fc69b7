// Package store keeps the campus reference data (buildings, shuttle stops
// and the shuttle timetable) in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"campus-route-server/models"

	_ "github.com/mattn/go-sqlite3"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and brings its schema up to
// date.
func New(dbPath string) (*Store, error) {
	dsn := dbPath
	if dbPath != MemoryPath {
		dir := filepath.Dir(dbPath)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("creating db directory: %w", err)
			}
		}
		dsn = dbPath + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if dbPath == MemoryPath {
		// every connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(4)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	s := &Store{db: db}
	if err := s.Migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// --- Buildings ---

func (s *Store) Buildings(ctx context.Context) ([]models.Building, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, building_code, campus, COALESCE(civic_address, ''), longitude, latitude
		FROM buildings ORDER BY building_code`)
	if err != nil {
		return nil, fmt.Errorf("querying buildings: %w", err)
	}
	defer rows.Close()

	var buildings []models.Building
	for rows.Next() {
		var b models.Building
		if err := rows.Scan(&b.ID, &b.Name, &b.BuildingCode, &b.Campus, &b.CivicAddress, &b.Longitude, &b.Latitude); err != nil {
			return nil, fmt.Errorf("scanning building: %w", err)
		}
		buildings = append(buildings, b)
	}
	return buildings, rows.Err()
}

// NearestBuilding returns the building with the smallest great-circle
// distance to p.
func (s *Store) NearestBuilding(ctx context.Context, p orb.Point) (*models.Building, error) {
	buildings, err := s.Buildings(ctx)
	if err != nil {
		return nil, err
	}

	var nearest *models.Building
	minDistance := math.Inf(1)
	for i := range buildings {
		d := geo.Distance(p, buildings[i].Point())
		if d < minDistance {
			minDistance = d
			nearest = &buildings[i]
		}
	}
	if nearest == nil {
		return nil, ErrNotFound
	}
	return nearest, nil
}

// --- Shuttle stops ---

func (s *Store) ShuttleStops(ctx context.Context) ([]models.ShuttleStop, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, latitude, longitude FROM shuttle_stops ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying shuttle stops: %w", err)
	}
	defer rows.Close()

	stops := []models.ShuttleStop{}
	for rows.Next() {
		var stop models.ShuttleStop
		if err := rows.Scan(&stop.ID, &stop.Name, &stop.Latitude, &stop.Longitude); err != nil {
			return nil, fmt.Errorf("scanning shuttle stop: %w", err)
		}
		stops = append(stops, stop)
	}
	return stops, rows.Err()
}

func (s *Store) ShuttleStopByName(ctx context.Context, name string) (*models.ShuttleStop, error) {
	var stop models.ShuttleStop
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, latitude, longitude FROM shuttle_stops WHERE name = ?`, name,
	).Scan(&stop.ID, &stop.Name, &stop.Latitude, &stop.Longitude)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying shuttle stop %s: %w", name, err)
	}
	return &stop, nil
}

// ClosestShuttleStop ranks stops by squared difference in degrees, which is
// enough to tell two campuses apart.
func (s *Store) ClosestShuttleStop(ctx context.Context, p orb.Point) (*models.ShuttleStop, error) {
	var stop models.ShuttleStop
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, latitude, longitude FROM shuttle_stops
		ORDER BY (latitude - ?) * (latitude - ?) + (longitude - ?) * (longitude - ?), name
		LIMIT 1`,
		p.Lat(), p.Lat(), p.Lon(), p.Lon(),
	).Scan(&stop.ID, &stop.Name, &stop.Latitude, &stop.Longitude)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying closest shuttle stop: %w", err)
	}
	return &stop, nil
}

// --- Schedule ---

// UpcomingShuttles returns up to limit departures from campus on now's
// weekday at or after now, in departure order. now's location decides the
// weekday and time of day.
func (s *Store) UpcomingShuttles(ctx context.Context, campus string, now time.Time, limit int) ([]models.UpcomingShuttle, error) {
	secondOfDay := now.Hour()*3600 + now.Minute()*60 + now.Second()

	rows, err := s.db.QueryContext(ctx, `
		SELECT departure_minute FROM shuttle_schedule
		WHERE campus = ? AND day_of_week = ? AND departure_minute * 60 >= ?
		ORDER BY departure_minute
		LIMIT ?`,
		campus, mondayFirst(now.Weekday()), secondOfDay, limit)
	if err != nil {
		return nil, fmt.Errorf("querying shuttle schedule: %w", err)
	}
	defer rows.Close()

	upcoming := []models.UpcomingShuttle{}
	for rows.Next() {
		var minute int
		if err := rows.Scan(&minute); err != nil {
			return nil, fmt.Errorf("scanning departure: %w", err)
		}
		departure := time.Date(now.Year(), now.Month(), now.Day(), minute/60, minute%60, 0, 0, now.Location())
		upcoming = append(upcoming, models.UpcomingShuttle{
			ScheduledTime:   formatMinute(minute),
			TimeToDeparture: int(math.Round(departure.Sub(now).Minutes())),
		})
	}
	return upcoming, rows.Err()
}

func mondayFirst(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func formatMinute(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

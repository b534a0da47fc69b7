package store

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"campus-route-server/models"
)

// ReferenceData is the seed file layout: every building and shuttle stop.
type ReferenceData struct {
	Buildings    []models.Building    `json:"buildings"`
	ShuttleStops []models.ShuttleStop `json:"shuttle_stops"`
}

func LoadReferenceFile(path string) (*ReferenceData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read reference file: %w", err)
	}
	var ref ReferenceData
	if err := json.Unmarshal(data, &ref); err != nil {
		return nil, fmt.Errorf("failed to parse reference file %s: %w", path, err)
	}
	return &ref, nil
}

// LoadSchedule reads a timetable CSV with the columns campus, day_of_week
// and time. Days are 0-6 from Monday or English weekday names; times are
// HH:MM.
func LoadSchedule(path string) ([]models.ShuttleDeparture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open schedule: %w", err)
	}
	defer f.Close()
	return ReadSchedule(f)
}

func ReadSchedule(src io.Reader) ([]models.ShuttleDeparture, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read schedule header: %w", err)
	}
	h := headerIndex(header)
	for _, col := range []string{"campus", "day_of_week", "time"} {
		if _, ok := h[col]; !ok {
			return nil, fmt.Errorf("schedule is missing column %q", col)
		}
	}

	var departures []models.ShuttleDeparture
	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read schedule line %d: %w", line, err)
		}
		if len(row) <= h["campus"] || len(row) <= h["day_of_week"] || len(row) <= h["time"] {
			return nil, fmt.Errorf("schedule line %d: too few fields", line)
		}

		day, err := parseDay(row[h["day_of_week"]])
		if err != nil {
			return nil, fmt.Errorf("schedule line %d: %w", line, err)
		}
		if _, err := parseMinute(row[h["time"]]); err != nil {
			return nil, fmt.Errorf("schedule line %d: %w", line, err)
		}

		departures = append(departures, models.ShuttleDeparture{
			Campus:    strings.TrimSpace(row[h["campus"]]),
			DayOfWeek: day,
			Time:      strings.TrimSpace(row[h["time"]]),
		})
	}
	return departures, nil
}

func headerIndex(hdr []string) map[string]int {
	m := make(map[string]int, len(hdr))
	for i, k := range hdr {
		m[strings.ToLower(strings.TrimSpace(k))] = i
	}
	return m
}

func parseDay(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 6 {
			return 0, fmt.Errorf("day_of_week %d out of range 0-6", n)
		}
		return n, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(s, d.String()) {
			return mondayFirst(d), nil
		}
	}
	return 0, fmt.Errorf("invalid day_of_week %q", s)
}

func parseMinute(s string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid departure time %q, want HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Seed replaces all reference data in one transaction.
func (s *Store) Seed(ctx context.Context, ref *ReferenceData, departures []models.ShuttleDeparture) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"buildings", "shuttle_stops", "shuttle_schedule"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for _, b := range ref.Buildings {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO buildings (name, building_code, campus, civic_address, longitude, latitude)
			VALUES (?, ?, ?, ?, ?, ?)`,
			b.Name, b.BuildingCode, b.Campus, b.CivicAddress, b.Longitude, b.Latitude,
		); err != nil {
			return fmt.Errorf("inserting building %s: %w", b.BuildingCode, err)
		}
	}

	for _, stop := range ref.ShuttleStops {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO shuttle_stops (name, longitude, latitude) VALUES (?, ?, ?)`,
			stop.Name, stop.Longitude, stop.Latitude,
		); err != nil {
			return fmt.Errorf("inserting shuttle stop %s: %w", stop.Name, err)
		}
	}

	for _, d := range departures {
		minute, err := parseMinute(d.Time)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO shuttle_schedule (campus, day_of_week, departure_minute) VALUES (?, ?, ?)`,
			d.Campus, d.DayOfWeek, minute,
		); err != nil {
			return fmt.Errorf("inserting departure %s %d %s: %w", d.Campus, d.DayOfWeek, d.Time, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}

	log.Printf("Seeded %d buildings, %d shuttle stops, %d departures",
		len(ref.Buildings), len(ref.ShuttleStops), len(departures))
	return nil
}

package models

import "github.com/paulmach/orb"

type Building struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	BuildingCode string  `json:"building_code"`
	Campus       string  `json:"campus"`
	CivicAddress string  `json:"civic_address,omitempty"`
	Longitude    float64 `json:"longitude"`
	Latitude     float64 `json:"latitude"`
}

func (b Building) Point() orb.Point {
	return orb.Point{b.Longitude, b.Latitude}
}

type ShuttleStop struct {
	ID        int64   `json:"-"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (s ShuttleStop) Point() orb.Point {
	return orb.Point{s.Longitude, s.Latitude}
}

// ShuttleDeparture is one scheduled departure. DayOfWeek follows Monday = 0.
type ShuttleDeparture struct {
	Campus    string `json:"campus"`
	DayOfWeek int    `json:"day_of_week"`
	Time      string `json:"time"`
}

type UpcomingShuttle struct {
	ScheduledTime   string `json:"scheduled_time"`
	TimeToDeparture int    `json:"time_to_departure"`
}

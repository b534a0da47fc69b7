package utils

import (
	"fmt"
	"strconv"
	"strings"

	"campus-route-server/models"

	"github.com/paulmach/orb"
)

func ParseProfile(input string) models.Profile {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "foot-walking", "walking", "walk":
		return models.FootWalking
	case "cycling-regular", "cycling", "bike":
		return models.CyclingRegular
	case "driving-car", "driving", "car":
		return models.DrivingCar
	case "wheelchair":
		return models.Wheelchair
	case "public-transport", "transit":
		return models.PublicTransport
	case "concordia-shuttle", "shuttle":
		return models.ConcordiaShuttle
	default:
		return models.Unknown
	}
}

// ParseCoordinate reads a "lon,lat" pair.
func ParseCoordinate(input string) (orb.Point, error) {
	parts := strings.Split(input, ",")
	if len(parts) != 2 {
		return orb.Point{}, fmt.Errorf("expected 'lon,lat', got %q", input)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("invalid longitude %q: %w", parts[0], err)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("invalid latitude %q: %w", parts[1], err)
	}
	return orb.Point{lon, lat}, nil
}

// FormatCoordinate renders a point the way the routing engines expect it.
func FormatCoordinate(p orb.Point) string {
	return strconv.FormatFloat(p.Lon(), 'f', -1, 64) + "," + strconv.FormatFloat(p.Lat(), 'f', -1, 64)
}

package common

import (
	"fmt"
	"strconv"
	"strings"
)

// Coordinate is a latitude/longitude pair.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// ParseCoordinates parses "lat,lon;lat,lon". Blank input yields no coordinates.
func ParseCoordinates(s string) ([]Coordinate, error) {
	var out []Coordinate
	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		c, err := ParseCoordinate(pair)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// ParseCoordinate parses a single "lat,lon" pair.
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Coordinate{}, fmt.Errorf("coordinate %q must be \"lat,lon\"", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid latitude in %q: %w", s, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid longitude in %q: %w", s, err)
	}
	return Coordinate{Latitude: lat, Longitude: lon}, nil
}

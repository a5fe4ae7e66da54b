package datastructure

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lintang-b-s/flood-evac-router/pkg"
)

// Coordinate is a planar point with x = longitude and y = latitude.
// Two coordinates are the same graph vertex iff they are == (exact 2-D equality).
type Coordinate struct {
	lon float64
	lat float64
}

func (c Coordinate) Lat() float64 {
	return c.lat
}

func (c Coordinate) Lon() float64 {
	return c.lon
}

func (c Coordinate) X() float64 {
	return c.lon
}

func (c Coordinate) Y() float64 {
	return c.lat
}

// 16 byte (128bit)

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		lat: lat,
		lon: lon,
	}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%v,%v)", c.lat, c.lon)
}

// Validate rejects NaN/Inf components and values outside the lat/lon range.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.lat) || math.IsNaN(c.lon) || math.IsInf(c.lat, 0) || math.IsInf(c.lon, 0) {
		return fmt.Errorf("%w: coordinate %v is not finite", pkg.ErrMalformedInput, c)
	}
	if c.lat < -90 || c.lat > 90 || c.lon < -180 || c.lon > 180 {
		return fmt.Errorf("%w: coordinate %v out of range", pkg.ErrMalformedInput, c)
	}
	return nil
}

// ParseCoordinate parses "lat,lon".
func ParseCoordinate(raw string) (Coordinate, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return Coordinate{}, fmt.Errorf("%w: coordinates must be in format lat,lon, got %q", pkg.ErrMalformedInput, raw)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: invalid latitude %q", pkg.ErrMalformedInput, parts[0])
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: invalid longitude %q", pkg.ErrMalformedInput, parts[1])
	}

	c := NewCoordinate(lat, lon)
	if err := c.Validate(); err != nil {
		return Coordinate{}, err
	}
	return c, nil
}

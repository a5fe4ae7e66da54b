package pkg

import "errors"

var (
	// caller supplied coordinates or segment geometry violate basic shape constraints
	ErrMalformedInput = errors.New("malformed input")
	// flood filter invoked with zero road segments
	ErrEmptyInput = errors.New("no road segments to filter")
	// flood backend unreachable, blank or malformed
	ErrUpstreamUnavailable = errors.New("cannot load flood zones from backend")
	// flood backend answered with a valid document holding zero polygons
	ErrNoPolygons = errors.New("flood backend returned zero polygons")
)

package datastructure

import (
	"math"
	"testing"

	"github.com/lintang-b-s/flood-evac-router/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinateIdentity(t *testing.T) {
	a := NewCoordinate(1.5, 2.5)
	b := NewCoordinate(1.5, 2.5)
	assert.Equal(t, a, b)
	assert.True(t, a == b)
	assert.Equal(t, 2.5, a.X())
	assert.Equal(t, 1.5, a.Y())

	set := map[Coordinate]int{a: 1}
	set[b]++
	assert.Len(t, set, 1)
	assert.Equal(t, 2, set[a])

	assert.NotEqual(t, NewCoordinate(0, 0.0001), NewCoordinate(0.0001, 0))
}

func TestParseCoordinate(t *testing.T) {
	c, err := ParseCoordinate("52.2297, 21.0122")
	require.NoError(t, err)
	assert.Equal(t, 52.2297, c.Lat())
	assert.Equal(t, 21.0122, c.Lon())

	for _, raw := range []string{"52.2", "1,2,3", "abc,1", "1,xyz", "91,0", "0,181", "NaN,0", ""} {
		_, err := ParseCoordinate(raw)
		assert.ErrorIs(t, err, pkg.ErrMalformedInput, raw)
	}
}

func TestCoordinateValidate(t *testing.T) {
	assert.NoError(t, NewCoordinate(-90, 180).Validate())
	assert.ErrorIs(t, NewCoordinate(math.Inf(1), 0).Validate(), pkg.ErrMalformedInput)
	assert.ErrorIs(t, NewCoordinate(0, math.NaN()).Validate(), pkg.ErrMalformedInput)
	assert.ErrorIs(t, NewCoordinate(-90.5, 0).Validate(), pkg.ErrMalformedInput)
}

func TestNewRoadSegment(t *testing.T) {
	geom := []Coordinate{NewCoordinate(0, 0), NewCoordinate(3, 4)}

	seg, err := NewRoadSegment("s1", geom, 2.5, true)
	require.NoError(t, err)
	assert.Equal(t, "s1", seg.ID())
	assert.Equal(t, 2.5, seg.Cost())
	assert.True(t, seg.IsFlooded())
	assert.Equal(t, geom[0], seg.StartPoint())
	assert.Equal(t, geom[1], seg.EndPoint())

	// the segment owns its geometry
	geom[0] = NewCoordinate(9, 9)
	assert.Equal(t, NewCoordinate(0, 0), seg.StartPoint())
	out := seg.Geometry()
	out[1] = NewCoordinate(9, 9)
	assert.Equal(t, NewCoordinate(3, 4), seg.EndPoint())

	withLength, err := NewRoadSegmentWithLength("s2", []Coordinate{NewCoordinate(0, 0), NewCoordinate(3, 4)}, false)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, withLength.Cost(), 1e-12)
	assert.False(t, withLength.IsFlooded())
}

func TestNewRoadSegmentRejectsMalformed(t *testing.T) {
	_, err := NewRoadSegment("short", []Coordinate{NewCoordinate(0, 0)}, 1, false)
	assert.ErrorIs(t, err, pkg.ErrMalformedInput)

	_, err = NewRoadSegment("empty", nil, 1, false)
	assert.ErrorIs(t, err, pkg.ErrMalformedInput)

	geom := []Coordinate{NewCoordinate(0, 0), NewCoordinate(1, 1)}
	_, err = NewRoadSegment("neg", geom, -1, false)
	assert.ErrorIs(t, err, pkg.ErrMalformedInput)
	_, err = NewRoadSegment("nan", geom, math.NaN(), false)
	assert.ErrorIs(t, err, pkg.ErrMalformedInput)
}

func TestNewFloodPolygonClosesRing(t *testing.T) {
	open := []Coordinate{NewCoordinate(0, 0), NewCoordinate(0, 1), NewCoordinate(1, 1)}
	p, err := NewFloodPolygon(open)
	require.NoError(t, err)
	assert.Equal(t, 4, p.NumberOfPoints())
	assert.Equal(t, p.PointAt(0), p.PointAt(3))

	closed := []Coordinate{NewCoordinate(0, 0), NewCoordinate(0, 1), NewCoordinate(1, 1), NewCoordinate(0, 0)}
	p, err = NewFloodPolygon(closed)
	require.NoError(t, err)
	assert.Equal(t, closed, p.Ring())

	_, err = NewFloodPolygon(open[:2])
	assert.ErrorIs(t, err, pkg.ErrMalformedInput)
}

func TestPolylineLength(t *testing.T) {
	assert.Equal(t, 0.0, PolylineLength(nil))
	coords := []Coordinate{NewCoordinate(0, 0), NewCoordinate(0, 3), NewCoordinate(4, 3)}
	assert.InDelta(t, 7.0, PolylineLength(coords), 1e-12)
	assert.InDelta(t, 5.0, EuclideanDistance(coords[0], coords[2]), 1e-12)
}

package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress_WithCoordinates(t *testing.T) {
	plain, coords := ParseAddress(`221B Baker St||{"lat":51.5,"lng":-0.1}`)

	assert.Equal(t, "221B Baker St", plain)
	require.NotNil(t, coords)
	assert.Equal(t, 51.5, coords.Lat)
	assert.Equal(t, -0.1, coords.Lng)
}

func TestParseAddress_MalformedCoordinates(t *testing.T) {
	plain, coords := ParseAddress("221B Baker St||not-json")

	assert.Equal(t, "221B Baker St", plain)
	assert.Nil(t, coords)
}

func TestParseAddress_MissingCoordinateHalf(t *testing.T) {
	plain, coords := ParseAddress("10 Main St")

	assert.Equal(t, "10 Main St", plain)
	assert.Nil(t, coords)
}

func TestParseAddress_PartialCoordinates(t *testing.T) {
	_, coords := ParseAddress(`10 Main St||{"lat":43.6}`)
	assert.Nil(t, coords)

	_, coords = ParseAddress(`10 Main St||{"lat":"43.6","lng":"-79.4"}`)
	assert.Nil(t, coords)
}

func TestDistanceKm_Symmetric(t *testing.T) {
	a := Coordinates{Lat: 43.65, Lng: -79.38}
	b := Coordinates{Lat: 45.42, Lng: -75.69}

	assert.InDelta(t, DistanceKm(a, b), DistanceKm(b, a), 1e-9)
	assert.Equal(t, 0.0, DistanceKm(a, a))
}

func TestDistanceKm_KnownDistance(t *testing.T) {
	toronto := Coordinates{Lat: 43.6532, Lng: -79.3832}
	ottawa := Coordinates{Lat: 45.4215, Lng: -75.6972}

	// Roughly 352 km between downtown Toronto and Ottawa.
	assert.InDelta(t, 352, DistanceKm(toronto, ottawa), 5)
}

func TestNearest_Properties(t *testing.T) {
	origin := Coordinates{Lat: 43.65, Lng: -79.38}
	candidates := []*Coordinates{
		{Lat: 44.0, Lng: -79.0},
		nil, // no coordinates, must be discarded
		{Lat: 43.66, Lng: -79.39},
		{Lat: 45.42, Lng: -75.69},
		{Lat: 43.70, Lng: -79.40},
		nil,
		{Lat: 43.90, Lng: -78.86},
		{Lat: 49.28, Lng: -123.12},
	}

	ranked := Nearest(origin, candidates, 5)

	assert.LessOrEqual(t, len(ranked), 5)
	for i, r := range ranked {
		assert.NotNil(t, candidates[r.Index])
		if i > 0 {
			assert.GreaterOrEqual(t, r.DistanceKm, ranked[i-1].DistanceKm)
		}
	}
	// Closest candidate is index 2.
	assert.Equal(t, 2, ranked[0].Index)
}

func TestNearest_TiesKeepEncounterOrder(t *testing.T) {
	origin := Coordinates{Lat: 0, Lng: 0}
	same := Coordinates{Lat: 1, Lng: 1}
	candidates := []*Coordinates{&same, &same, &same}

	ranked := Nearest(origin, candidates, 10)

	require.Len(t, ranked, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{ranked[0].Index, ranked[1].Index, ranked[2].Index})
}

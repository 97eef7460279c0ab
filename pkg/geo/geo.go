package geo

import (
	"encoding/json"
	"math"
	"sort"
	"strings"
)

// addressDelimiter separates the human-readable half of a composite
// address from its embedded coordinate JSON.
const addressDelimiter = "||"

const earthRadiusKm = 6371.0

// Coordinates represents geographical coordinates
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ParseAddress splits a composite address of the form
// `221B Baker St||{"lat":51.5,"lng":-0.1}` into its plain address and
// coordinates. The coordinate half is optional; when it is missing,
// malformed, or not a pair of numbers, the coordinates are nil. A bad
// coordinate segment is absence, not an error.
func ParseAddress(composite string) (string, *Coordinates) {
	plain, rest, found := strings.Cut(composite, addressDelimiter)
	plain = strings.TrimSpace(plain)
	if !found {
		return plain, nil
	}

	var raw struct {
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
	}
	if err := json.Unmarshal([]byte(rest), &raw); err != nil {
		return plain, nil
	}
	if raw.Lat == nil || raw.Lng == nil {
		return plain, nil
	}
	return plain, &Coordinates{Lat: *raw.Lat, Lng: *raw.Lng}
}

// DistanceKm computes the great-circle distance between two points
// using the haversine formula.
func DistanceKm(a, b Coordinates) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degreesToRadians(a.Lat))*math.Cos(degreesToRadians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// Round2 rounds a distance to two decimal places.
func Round2(km float64) float64 {
	return math.Round(km*100) / 100
}

// Ranked points back at a candidate by its position in the input slice.
type Ranked struct {
	Index      int
	DistanceKm float64
}

// Nearest ranks candidates by distance from origin. Candidates without
// coordinates are discarded. Results are sorted ascending by distance
// (stable, ties keep encounter order) and truncated to limit; reported
// distances are rounded to two decimals.
func Nearest(origin Coordinates, candidates []*Coordinates, limit int) []Ranked {
	ranked := make([]Ranked, 0, len(candidates))
	for i, c := range candidates {
		if c == nil {
			continue
		}
		ranked = append(ranked, Ranked{Index: i, DistanceKm: DistanceKm(origin, *c)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	for i := range ranked {
		ranked[i].DistanceKm = Round2(ranked[i].DistanceKm)
	}
	return ranked
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

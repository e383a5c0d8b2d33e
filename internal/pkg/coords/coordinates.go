// Package coords parses, validates and formats decimal-degree coordinates.
//
// (0, 0) is the in-band marker for "coordinates not set"; a place at the
// null island cannot be represented.
package coords

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Decimal degree bounds.
const (
	LatMin = -90.0
	LatMax = 90.0
	LonMin = -180.0
	LonMax = 180.0
)

// DefaultDecimals gives sub-meter precision.
const DefaultDecimals = 5

// Field names carried by RangeError.
const (
	FieldLat = "lat"
	FieldLon = "lon"
)

var ErrOutOfRange = errors.New("coordinate out of range")

// RangeError reports a coordinate outside its bounds, with the bounds, so the
// caller can render a parameterized message.
type RangeError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %v must be between %v and %v", e.Field, e.Value, e.Min, e.Max)
}

func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// Point is a latitude/longitude pair in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// IsSet reports whether p differs from the (0, 0) sentinel.
func (p Point) IsSet() bool {
	return p.Lat != 0 || p.Lon != 0
}

func (p Point) String() string {
	return FormatDefault(p.Lat, p.Lon)
}

var (
	numberPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	separator    = regexp.MustCompile(`\s*[,;]\s+|\s+[,;]\s*|\s+`)
)

// ParseDD parses one decimal-degree value. Either '.' or ',' may be the
// fractional separator. Trailing garbage is ignored; input with no leading
// number yields 0.
func ParseDD(s string) float64 {
	s = strings.Replace(strings.TrimSpace(s), ",", ".", 1)
	m := numberPrefix.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Parse reads free-text coordinates such as "55.744920, 37.604677".
// Two or more tokens give (lat, lon), one token gives (lat, 0), nothing gives
// (0, 0). It never fails: bad tokens become 0 and range checks are left to
// Validate.
func Parse(s string) Point {
	parts := tokens(s)
	switch {
	case len(parts) >= 2:
		return Point{Lat: ParseDD(parts[0]), Lon: ParseDD(parts[1])}
	case len(parts) == 1:
		return Point{Lat: ParseDD(parts[0])}
	default:
		return Point{}
	}
}

// tokens splits on whitespace and on commas with whitespace on either side.
// A lone token keeps a single comma as its decimal separator ("55,7558") and is
// split on commas otherwise ("55.7,37.6").
func tokens(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := nonEmpty(separator.Split(s, -1))
	if len(parts) == 1 {
		p := parts[0]
		if strings.Contains(p, ",") && (strings.Contains(p, ".") || strings.Count(p, ",") > 1) {
			parts = nonEmpty(strings.Split(p, ","))
		}
	}
	return parts
}

func nonEmpty(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks latitude then longitude and returns a *RangeError for the
// first one out of bounds.
func Validate(lat, lon float64) error {
	if math.IsNaN(lat) || lat < LatMin || lat > LatMax {
		return &RangeError{Field: FieldLat, Value: lat, Min: LatMin, Max: LatMax}
	}
	if math.IsNaN(lon) || lon < LonMin || lon > LonMax {
		return &RangeError{Field: FieldLon, Value: lon, Min: LonMin, Max: LonMax}
	}
	return nil
}

// Format renders "lat, lon" with a fixed number of decimals.
func Format(lat, lon float64, decimals int) string {
	if decimals < 0 {
		decimals = DefaultDecimals
	}
	return fmt.Sprintf("%.*f, %.*f", decimals, lat, decimals, lon)
}

func FormatDefault(lat, lon float64) string {
	return Format(lat, lon, DefaultDecimals)
}

// Package geo provides geographic path utilities: polyline encoding and
// decoding (Google's algorithm, 5-decimal precision), haversine distances in
// miles, and interpolation of points along a path by travelled distance.
package geo

import (
	"math"
)

// Point represents a geographic point with latitude and longitude in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Bounds is an axis-aligned bounding box around a path.
type Bounds struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// DecodePolyline decodes a polyline-encoded string into a slice of points.
func DecodePolyline(encoded string) []Point {
	if encoded == "" {
		return nil
	}

	var points []Point
	index := 0
	lat := 0
	lon := 0

	for index < len(encoded) {
		latDelta, newIndex := decodeValue(encoded, index)
		index = newIndex
		lat += latDelta

		lonDelta, newIndex := decodeValue(encoded, index)
		index = newIndex
		lon += lonDelta

		points = append(points, Point{
			Lat: float64(lat) / 1e5,
			Lon: float64(lon) / 1e5,
		})
	}

	return points
}

// decodeValue decodes a single delta value starting at index and returns it
// together with the new index position.
func decodeValue(encoded string, index int) (int, int) {
	shift := 0
	result := 0

	for index < len(encoded) {
		b := int(encoded[index]) - 63
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}

	if result&1 != 0 {
		return ^(result >> 1), index
	}
	return result >> 1, index
}

// EncodePolyline encodes a slice of points into a polyline-encoded string.
func EncodePolyline(points []Point) string {
	if len(points) == 0 {
		return ""
	}

	encoded := make([]byte, 0, len(points)*4)
	prevLat := 0
	prevLon := 0

	for _, p := range points {
		lat := int(math.Round(p.Lat * 1e5))
		lon := int(math.Round(p.Lon * 1e5))

		encoded = encodeValue(encoded, lat-prevLat)
		encoded = encodeValue(encoded, lon-prevLon)

		prevLat = lat
		prevLon = lon
	}

	return string(encoded)
}

func encodeValue(buf []byte, value int) []byte {
	if value < 0 {
		value = ^(value << 1)
	} else {
		value <<= 1
	}

	for value >= 0x20 {
		buf = append(buf, byte((value&0x1f)|0x20)+63)
		value >>= 5
	}
	buf = append(buf, byte(value)+63)

	return buf
}

const earthRadiusMiles = 3958.7613

// DistanceMiles returns the haversine distance between two points in miles.
func DistanceMiles(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	sinDLat := math.Sin(dLat / 2)
	sinDLon := math.Sin(dLon / 2)

	h := sinDLat*sinDLat + math.Cos(lat1)*math.Cos(lat2)*sinDLon*sinDLon
	return 2 * earthRadiusMiles * math.Asin(math.Sqrt(h))
}

// LengthMiles returns the total haversine length of a path in miles.
func LengthMiles(path []Point) float64 {
	if len(path) < 2 {
		return 0
	}

	var total float64
	for i := 1; i < len(path); i++ {
		total += DistanceMiles(path[i-1], path[i])
	}
	return total
}

// CumulativeMiles returns the prefix-sum arc length of a path: element i is
// the distance in miles travelled from path[0] to path[i]. The result has the
// same length as the input; an empty path yields nil.
func CumulativeMiles(path []Point) []float64 {
	if len(path) == 0 {
		return nil
	}

	cum := make([]float64, len(path))
	for i := 1; i < len(path); i++ {
		cum[i] = cum[i-1] + DistanceMiles(path[i-1], path[i])
	}
	return cum
}

// PointAlong returns the point located miles along the path, interpolating
// linearly within the containing segment. cum must be the value returned by
// CumulativeMiles for the same path. The second return value is false when the
// path is empty or the requested distance lies beyond the end of the path.
func PointAlong(path []Point, cum []float64, miles float64) (Point, bool) {
	if len(path) == 0 || len(cum) != len(path) {
		return Point{}, false
	}
	if miles <= 0 {
		return path[0], true
	}
	total := cum[len(cum)-1]
	if miles > total {
		return Point{}, false
	}

	// Binary search for the first prefix length >= miles.
	lo, hi := 1, len(cum)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if cum[mid] < miles {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	segLen := cum[lo] - cum[lo-1]
	if segLen == 0 {
		return path[lo], true
	}
	frac := (miles - cum[lo-1]) / segLen
	a, b := path[lo-1], path[lo]
	return Point{
		Lat: a.Lat + frac*(b.Lat-a.Lat),
		Lon: a.Lon + frac*(b.Lon-a.Lon),
	}, true
}

// PathBounds returns the bounding box of a path. The second return value is
// false for an empty path.
func PathBounds(path []Point) (Bounds, bool) {
	if len(path) == 0 {
		return Bounds{}, false
	}

	b := Bounds{
		MinLat: path[0].Lat, MaxLat: path[0].Lat,
		MinLon: path[0].Lon, MaxLon: path[0].Lon,
	}
	for _, p := range path[1:] {
		b.MinLat = math.Min(b.MinLat, p.Lat)
		b.MaxLat = math.Max(b.MaxLat, p.Lat)
		b.MinLon = math.Min(b.MinLon, p.Lon)
		b.MaxLon = math.Max(b.MaxLon, p.Lon)
	}
	return b, true
}

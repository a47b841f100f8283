package crs

import (
	"math"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// Projection maps geographic coordinates onto an unscaled planar plane and
// back. Every Unproject clamps its result to latitude [-90,90] and longitude
// [-180,180], so inverse operations never return out-of-range geographic
// coordinates, even from extrapolated planar input.
type Projection interface {
	Project(ll s2.LatLng) orb.Point
	Unproject(p orb.Point) s2.LatLng
	// Bounds reports the rectangle of valid projected space. ok is false for
	// projections covering the whole real plane.
	Bounds() (b orb.Bound, ok bool)
}

// earthRadius is the WGS84 semi-major axis in meters.
const earthRadius = 6378137.0

// maxMercatorLat is the latitude beyond which the spherical mercator
// y-coordinate diverges.
const maxMercatorLat = 85.0511287798

func clampLat(lat float64) float64 {
	return math.Max(-90, math.Min(90, lat))
}

func clampLng(lng float64) float64 {
	return math.Max(-180, math.Min(180, lng))
}

// LonLat is the equirectangular (plate carrée) projection: projected
// coordinates are longitude and latitude in degrees, unchanged.
type LonLat struct{}

// Project returns (longitude, latitude) in degrees.
func (LonLat) Project(ll s2.LatLng) orb.Point {
	return orb.Point{ll.Lng.Degrees(), ll.Lat.Degrees()}
}

// Unproject returns the clamped inverse of Project.
func (LonLat) Unproject(p orb.Point) s2.LatLng {
	return s2.LatLngFromDegrees(clampLat(p[1]), clampLng(p[0]))
}

// Bounds is the full longitude/latitude rectangle.
func (LonLat) Bounds() (orb.Bound, bool) {
	return orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}, true
}

// SphericalMercator is the projection used by most web map tile sets
// (EPSG:3857). Latitude is clamped to ±85.0511287798° before projecting so
// the projected plane stays square and finite.
type SphericalMercator struct{}

// Project converts ll to mercator meters.
func (SphericalMercator) Project(ll s2.LatLng) orb.Point {
	lat := math.Max(-maxMercatorLat, math.Min(maxMercatorLat, ll.Lat.Degrees()))
	sin := math.Sin(lat * math.Pi / 180)
	return orb.Point{
		earthRadius * ll.Lng.Degrees() * math.Pi / 180,
		earthRadius / 2 * math.Log((1+sin)/(1-sin)),
	}
}

// Unproject converts mercator meters back to geographic degrees, clamped.
func (SphericalMercator) Unproject(p orb.Point) s2.LatLng {
	lat := (2*math.Atan(math.Exp(p[1]/earthRadius)) - math.Pi/2) * 180 / math.Pi
	lng := p[0] * 180 / math.Pi / earthRadius
	return s2.LatLngFromDegrees(clampLat(lat), clampLng(lng))
}

// Bounds is the square of half-extent earthRadius*π meters.
func (SphericalMercator) Bounds() (orb.Bound, bool) {
	d := earthRadius * math.Pi
	return orb.Bound{Min: orb.Point{-d, -d}, Max: orb.Point{d, d}}, true
}

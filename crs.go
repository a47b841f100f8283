// Package crs implements the coordinate reference systems a map renderer
// uses to place content on a zoomable planar surface: conversions between
// geographic coordinates and render-space points at a given zoom level, for
// web-mercator, plain equirectangular, abstract-plane and table-driven
// externally-projected tile sets.
//
// All types are immutable values; every operation is a pure function of its
// inputs and safe for concurrent use without coordination.
package crs

import (
	"math"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// CRS composes a projection, an affine transformation and a zoom/scale
// relation into the end-to-end mapping between geographic coordinates and
// planar render coordinates at a given zoom level.
type CRS interface {
	// Code is an EPSG-style identifier for display and serialization.
	Code() string
	LatLngToPoint(ll s2.LatLng, zoom float64) orb.Point
	PointToLatLng(p orb.Point, zoom float64) s2.LatLng
	// Scale is the linear render-units-per-projected-unit factor at zoom.
	Scale(zoom float64) float64
	// Zoom is the inverse of Scale.
	Zoom(scale float64) float64
	// ProjectedBounds is the valid projected rectangle rescaled for zoom;
	// ok is false for CRSs declared infinite.
	ProjectedBounds(zoom float64) (b orb.Bound, ok bool)
	Infinite() bool
	// WrapLng reports the longitude interval over which the CRS repeats for
	// continuous horizontal panning, if any.
	WrapLng() (r [2]float64, ok bool)
	// WrapLat is the latitude counterpart of WrapLng.
	WrapLat() (r [2]float64, ok bool)
}

// staticCRS is a CRS with a single fixed transformation and the canonical
// power-of-two zoom/scale relation.
type staticCRS struct {
	code           string
	projection     Projection
	transformation Transformation
	wrapLng        *[2]float64
	wrapLat        *[2]float64
}

func (c *staticCRS) Code() string { return c.code }

func (c *staticCRS) LatLngToPoint(ll s2.LatLng, zoom float64) orb.Point {
	return c.transformation.Transform(c.projection.Project(ll), c.Scale(zoom))
}

func (c *staticCRS) PointToLatLng(p orb.Point, zoom float64) s2.LatLng {
	return c.projection.Unproject(c.transformation.Untransform(p, c.Scale(zoom)))
}

func (c *staticCRS) Scale(zoom float64) float64 {
	return 256 * math.Pow(2, zoom)
}

func (c *staticCRS) Zoom(scale float64) float64 {
	return math.Log2(scale / 256)
}

func (c *staticCRS) ProjectedBounds(zoom float64) (orb.Bound, bool) {
	b, ok := c.projection.Bounds()
	if !ok {
		return orb.Bound{}, false
	}
	s := c.Scale(zoom)
	return boundFromCorners(
		c.transformation.Transform(b.Min, s),
		c.transformation.Transform(b.Max, s),
	), true
}

func (c *staticCRS) Infinite() bool { return false }

func (c *staticCRS) WrapLng() ([2]float64, bool) {
	if c.wrapLng == nil {
		return [2]float64{}, false
	}
	return *c.wrapLng, true
}

func (c *staticCRS) WrapLat() ([2]float64, bool) {
	if c.wrapLat == nil {
		return [2]float64{}, false
	}
	return *c.wrapLat, true
}

// boundFromCorners normalizes two opposite corners into a min/max bound;
// y-flipping transformations swap the corners' vertical order.
func boundFromCorners(a, b orb.Point) orb.Bound {
	return orb.Bound{
		Min: orb.Point{math.Min(a[0], b[0]), math.Min(a[1], b[1])},
		Max: orb.Point{math.Max(a[0], b[0]), math.Max(a[1], b[1])},
	}
}

// mercatorScale normalizes the full mercator extent into the unit square.
const mercatorScale = 0.5 / (math.Pi * earthRadius)

var wrapLng180 = [2]float64{-180, 180}

// Simple maps longitude to x and latitude to y as-is, with y growing
// upward. For flat non-geographic planes such as game maps and floor plans.
var Simple CRS = &staticCRS{
	code:           "CRS.SIMPLE",
	projection:     LonLat{},
	transformation: Transformation{1, 0, -1, 0},
}

// EPSG3857 is the spherical web-mercator CRS used by most web map tile sets.
var EPSG3857 CRS = &staticCRS{
	code:           "EPSG:3857",
	projection:     SphericalMercator{},
	transformation: Transformation{mercatorScale, 0.5, -mercatorScale, 0.5},
	wrapLng:        &wrapLng180,
}

// EPSG4326 is the plain equirectangular CRS serving latitude/longitude tiles.
var EPSG4326 CRS = &staticCRS{
	code:           "EPSG:4326",
	projection:     LonLat{},
	transformation: Transformation{1.0 / 180, 1, -1.0 / 180, 0.5},
	wrapLng:        &wrapLng180,
}

// earthMeanRadius is the mean earth radius in meters, consistent with the
// WGS84 web mercator spheroid.
const earthMeanRadius = 6371000.0

// Distance returns the great-circle distance between a and b in meters on
// the mean earth sphere.
func Distance(a, b s2.LatLng) float64 {
	return earthMeanRadius * a.Distance(b).Radians()
}

// WrapLatLng returns ll with longitude and latitude wrapped into the wrap
// ranges of c, keeping coordinates continuous across the antimeridian. CRSs
// without wrap ranges return ll unchanged.
func WrapLatLng(c CRS, ll s2.LatLng) s2.LatLng {
	lat := ll.Lat.Degrees()
	lng := ll.Lng.Degrees()
	if r, ok := c.WrapLat(); ok {
		lat = wrapNum(lat, r)
	}
	if r, ok := c.WrapLng(); ok {
		lng = wrapNum(lng, r)
	}
	return s2.LatLngFromDegrees(lat, lng)
}

// wrapNum wraps x into [r[0], r[1]], mapping the upper endpoint onto itself.
func wrapNum(x float64, r [2]float64) float64 {
	if x == r[1] {
		return x
	}
	d := r[1] - r[0]
	return math.Mod(math.Mod(x-r[0], d)+d, d) + r[0]
}

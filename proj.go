package crs

import (
	"fmt"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
	"github.com/wroge/wgs84"
)

// TransformFunc converts a coordinate between two coordinate reference
// systems. The three-component shape matches the transform functions of the
// wgs84 package; the third component is unused by planar projections and
// passed through as zero.
type TransformFunc func(a, b, c float64) (a2, b2, c2 float64)

// Proj projects through an externally resolved coordinate system, such as a
// proj4-style EPSG definition. The forward direction maps WGS84
// longitude/latitude degrees into the target system.
type Proj struct {
	code    string
	forward TransformFunc
	inverse TransformFunc
	bounds  *orb.Bound
}

// NewProjProjection builds a projection from caller-supplied transform
// functions: forward maps (longitude, latitude) degrees into the target
// system, inverse maps back. bounds may be nil when the target plane is
// unbounded. Both functions must be deterministic for identical input.
func NewProjProjection(code string, forward, inverse TransformFunc, bounds *orb.Bound) *Proj {
	p := &Proj{code: code, forward: forward, inverse: inverse}
	if bounds != nil {
		b := *bounds
		p.bounds = &b
	}
	return p
}

// NewEPSGProjection resolves both transform directions for an EPSG code
// known to the wgs84 package.
func NewEPSGProjection(code int, bounds *orb.Bound) *Proj {
	epsg := wgs84.EPSG()
	return NewProjProjection(
		fmt.Sprintf("EPSG:%d", code),
		TransformFunc(wgs84.Transform(wgs84.WGS84().LonLat(), epsg.Code(code))),
		TransformFunc(wgs84.Transform(epsg.Code(code), wgs84.WGS84().LonLat())),
		bounds,
	)
}

// Code is the EPSG-style identifier of the target system.
func (p *Proj) Code() string { return p.code }

func (p *Proj) Project(ll s2.LatLng) orb.Point {
	x, y, _ := p.forward(ll.Lng.Degrees(), ll.Lat.Degrees(), 0)
	return orb.Point{x, y}
}

func (p *Proj) Unproject(pt orb.Point) s2.LatLng {
	lng, lat, _ := p.inverse(pt[0], pt[1], 0)
	return s2.LatLngFromDegrees(clampLat(lat), clampLng(lng))
}

func (p *Proj) Bounds() (orb.Bound, bool) {
	if p.bounds == nil {
		return orb.Bound{}, false
	}
	return *p.bounds, true
}

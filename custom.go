package crs

import (
	"errors"
	"math"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// CustomOptions configures a CustomCRS. Exactly one of Scales and
// Resolutions must be non-empty.
type CustomOptions struct {
	// Scales maps integer zoom levels to linear scale factors.
	Scales []float64
	// Resolutions are projected units per render unit; entry i becomes
	// scale 1/Resolutions[i]. Ignored when Scales is set.
	Resolutions []float64
	// Transformation overrides the default (1,0,-1,0) transformation. Only
	// used when no Origins are given.
	Transformation *Transformation
	// Origins are projected-plane origin points. A single origin yields one
	// transformation shifting by it; several yield one transformation per
	// zoom level, selected by the rounded zoom.
	Origins []orb.Point
	// Bounds is the valid projected rectangle. A CustomCRS without bounds
	// is infinite.
	Bounds *orb.Bound
}

// CustomCRS is a table-driven CRS for tile sets whose scale does not follow
// the power-of-two rule, such as proj4-defined regional tile services.
type CustomCRS struct {
	code            string
	projection      Projection
	scales          []float64
	transformations []Transformation // one per zoom level; empty when def applies
	def             Transformation
	bounds          *orb.Bound
}

// NewCustomCRS builds a CRS over proj with per-zoom scales from opt.Scales,
// or derived from opt.Resolutions. Supplying neither is a construction
// error.
func NewCustomCRS(code string, proj Projection, opt CustomOptions) (*CustomCRS, error) {
	c := &CustomCRS{code: code, projection: proj}
	switch {
	case len(opt.Scales) > 0:
		c.scales = append([]float64(nil), opt.Scales...)
	case len(opt.Resolutions) > 0:
		c.scales = make([]float64, len(opt.Resolutions))
		for i, r := range opt.Resolutions {
			c.scales[i] = 1 / r
		}
	default:
		return nil, errors.New("custom CRS requires scales or resolutions")
	}
	switch len(opt.Origins) {
	case 0:
		c.def = Transformation{1, 0, -1, 0}
		if opt.Transformation != nil {
			c.def = *opt.Transformation
		}
	case 1:
		o := opt.Origins[0]
		c.def = Transformation{1, -o[0], -1, o[1]}
	default:
		c.transformations = make([]Transformation, len(opt.Origins))
		for i, o := range opt.Origins {
			c.transformations[i] = Transformation{1, -o[0], -1, o[1]}
		}
	}
	if opt.Bounds != nil {
		b := *opt.Bounds
		c.bounds = &b
	}
	return c, nil
}

func (c *CustomCRS) Code() string { return c.code }

// transformation selects the per-zoom transformation by the rounded zoom,
// clamped to the table.
func (c *CustomCRS) transformation(zoom float64) Transformation {
	if len(c.transformations) == 0 {
		return c.def
	}
	i := int(math.Round(zoom))
	if i < 0 {
		i = 0
	} else if i >= len(c.transformations) {
		i = len(c.transformations) - 1
	}
	return c.transformations[i]
}

func (c *CustomCRS) LatLngToPoint(ll s2.LatLng, zoom float64) orb.Point {
	return c.transformation(zoom).Transform(c.projection.Project(ll), c.Scale(zoom))
}

func (c *CustomCRS) PointToLatLng(p orb.Point, zoom float64) s2.LatLng {
	return c.projection.Unproject(c.transformation(zoom).Untransform(p, c.Scale(zoom)))
}

// Scale looks zoom up in the scale table, interpolating linearly between
// adjacent levels for fractional zooms. Zooms needing an entry outside the
// table return NaN.
func (c *CustomCRS) Scale(zoom float64) float64 {
	i := int(math.Floor(zoom))
	if i < 0 || i >= len(c.scales) {
		return math.NaN()
	}
	if zoom == float64(i) {
		return c.scales[i]
	}
	if i+1 >= len(c.scales) {
		return math.NaN()
	}
	return c.scales[i] + (zoom-float64(i))*(c.scales[i+1]-c.scales[i])
}

// Zoom finds the largest table entry at or below scale and interpolates
// toward the next level. Scales below the smallest entry return -Inf;
// scales that would interpolate past the end of the table return NaN.
func (c *CustomCRS) Zoom(scale float64) float64 {
	idx := -1
	for i := len(c.scales) - 1; i >= 0; i-- {
		if c.scales[i] <= scale && (idx < 0 || c.scales[idx] < c.scales[i]) {
			idx = i
		}
	}
	if idx < 0 {
		return math.Inf(-1)
	}
	down := c.scales[idx]
	if down == scale {
		return float64(idx)
	}
	if idx+1 >= len(c.scales) {
		return math.NaN()
	}
	return float64(idx) + (scale-down)/(c.scales[idx+1]-down)
}

func (c *CustomCRS) ProjectedBounds(zoom float64) (orb.Bound, bool) {
	if c.bounds == nil {
		return orb.Bound{}, false
	}
	s := c.Scale(zoom)
	tr := c.transformation(zoom)
	return boundFromCorners(
		tr.Transform(c.bounds.Min, s),
		tr.Transform(c.bounds.Max, s),
	), true
}

func (c *CustomCRS) Infinite() bool { return c.bounds == nil }

func (c *CustomCRS) WrapLng() ([2]float64, bool) { return [2]float64{}, false }

func (c *CustomCRS) WrapLat() ([2]float64, bool) { return [2]float64{}, false }

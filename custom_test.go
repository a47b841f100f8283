package crs_test

import (
	"math"
	"testing"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	crs "github.com/Spyy004/flutter-map"
)

func TestNewCustomCRSRequiresScales(t *testing.T) {
	_, err := crs.NewCustomCRS("EPSG:5181", crs.LonLat{}, crs.CustomOptions{})
	require.Error(t, err)
}

func TestNewCustomCRSFromResolutions(t *testing.T) {
	c, err := crs.NewCustomCRS("EPSG:5181", crs.LonLat{}, crs.CustomOptions{
		Resolutions: []float64{8, 4, 2, 1},
	})
	require.NoError(t, err)
	require.InDelta(t, 0.125, c.Scale(0), 1e-12)
	require.InDelta(t, 1, c.Scale(3), 1e-12)
}

func TestCustomScaleInterpolation(t *testing.T) {
	c, err := crs.NewCustomCRS("test", crs.LonLat{}, crs.CustomOptions{
		Scales: []float64{1, 2, 4, 8},
	})
	require.NoError(t, err)
	require.Equal(t, 2.0, c.Scale(1))
	require.InDelta(t, 3, c.Scale(1.5), 1e-12)
	require.InDelta(t, 1.5, c.Zoom(3), 1e-12)
}

func TestCustomZoomFloorSearch(t *testing.T) {
	c, err := crs.NewCustomCRS("test", crs.LonLat{}, crs.CustomOptions{
		Scales: []float64{1, 4, 10},
	})
	require.NoError(t, err)
	// 7 sits between entries 4 and 10; interpolation starts from the floor
	// entry 4, not the nearest entry 10.
	require.InDelta(t, 1.5, c.Zoom(7), 1e-12)
	require.Equal(t, 2.0, c.Zoom(10))
}

func TestCustomZoomBelowMinimum(t *testing.T) {
	c, err := crs.NewCustomCRS("test", crs.LonLat{}, crs.CustomOptions{
		Scales: []float64{1, 4, 10},
	})
	require.NoError(t, err)
	require.True(t, math.IsInf(c.Zoom(0.1), -1))
}

func TestCustomScaleOutsideTable(t *testing.T) {
	c, err := crs.NewCustomCRS("test", crs.LonLat{}, crs.CustomOptions{
		Scales: []float64{1, 4, 10},
	})
	require.NoError(t, err)
	require.True(t, math.IsNaN(c.Scale(-0.5)))
	require.True(t, math.IsNaN(c.Scale(3)))
	require.True(t, math.IsNaN(c.Scale(2.5)))
	require.True(t, math.IsNaN(c.Zoom(11)))
}

func TestCustomTransformationSelection(t *testing.T) {
	c, err := crs.NewCustomCRS("test", crs.LonLat{}, crs.CustomOptions{
		Scales:  []float64{1, 1, 1},
		Origins: []orb.Point{{10, 0}, {20, 0}},
	})
	require.NoError(t, err)
	geo := s2.LatLngFromDegrees(0, 0)

	// Zoom below 0.5 rounds to transformation 0, above to 1; anything past
	// the origin list clamps to the last entry.
	require.InDelta(t, -10, c.LatLngToPoint(geo, 0)[0], 1e-12)
	require.InDelta(t, -10, c.LatLngToPoint(geo, 0.49)[0], 1e-12)
	require.InDelta(t, -20, c.LatLngToPoint(geo, 0.5)[0], 1e-12)
	require.InDelta(t, -20, c.LatLngToPoint(geo, 2)[0], 1e-12)
}

func TestCustomSingleOriginTransformation(t *testing.T) {
	c, err := crs.NewCustomCRS("test", crs.LonLat{}, crs.CustomOptions{
		Scales:  []float64{2},
		Origins: []orb.Point{{-30000, -60000}},
	})
	require.NoError(t, err)
	p := c.LatLngToPoint(s2.LatLngFromDegrees(0, 0), 0)
	require.InDelta(t, 2*30000, p[0], 1e-9)
	require.InDelta(t, 2*-60000, p[1], 1e-9)
}

func TestCustomExplicitTransformation(t *testing.T) {
	c, err := crs.NewCustomCRS("test", crs.LonLat{}, crs.CustomOptions{
		Scales:         []float64{1},
		Transformation: &crs.Transformation{A: 1, B: 5, C: 1, D: 7},
	})
	require.NoError(t, err)
	p := c.LatLngToPoint(s2.LatLngFromDegrees(2, 3), 0)
	require.InDelta(t, 8, p[0], 1e-12)
	require.InDelta(t, 9, p[1], 1e-12)
}

func TestCustomRoundTrip(t *testing.T) {
	bounds := orb.Bound{
		Min: orb.Point{-20037508, -20037508},
		Max: orb.Point{20037508, 20037508},
	}
	c, err := crs.NewCustomCRS("custom:3857", crs.SphericalMercator{}, crs.CustomOptions{
		Resolutions: []float64{8192, 4096, 2048, 1024, 512},
		Origins:     []orb.Point{{-20037508, 20037508}, {-20037508, 20037508}, {-10000000, 20037508}},
		Bounds:      &bounds,
	})
	require.NoError(t, err)
	for _, zoom := range []float64{0, 0.75, 1, 2.5, 4} {
		for lng := -170.0; lng <= 170; lng += 21.3 {
			for lat := -80.0; lat <= 80; lat += 9.7 {
				geo := s2.LatLngFromDegrees(lat, lng)
				geo2 := c.PointToLatLng(c.LatLngToPoint(geo, zoom), zoom)
				if math.Abs(geo2.Lat.Degrees()-lat) > 1e-8 ||
					math.Abs(geo2.Lng.Degrees()-lng) > 1e-8 {
					t.Fatalf("zoom %v: expected %s, got %s", zoom, geo, geo2)
				}
			}
		}
	}
}

func TestCustomProjectedBounds(t *testing.T) {
	bounds := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{100, 100}}
	c, err := crs.NewCustomCRS("test", crs.LonLat{}, crs.CustomOptions{
		Scales:  []float64{1, 2},
		Origins: []orb.Point{{0, 100}},
		Bounds:  &bounds,
	})
	require.NoError(t, err)
	require.False(t, c.Infinite())

	b, ok := c.ProjectedBounds(1)
	require.True(t, ok)
	require.InDelta(t, 0, b.Min[0], 1e-12)
	require.InDelta(t, 0, b.Min[1], 1e-12)
	require.InDelta(t, 200, b.Max[0], 1e-12)
	require.InDelta(t, 200, b.Max[1], 1e-12)
}

func TestCustomHasNoWrapRanges(t *testing.T) {
	c, err := crs.NewCustomCRS("test", crs.LonLat{}, crs.CustomOptions{
		Scales: []float64{1},
	})
	require.NoError(t, err)
	_, ok := c.WrapLng()
	require.False(t, ok)
	_, ok = c.WrapLat()
	require.False(t, ok)
}

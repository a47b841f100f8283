package crs

import "github.com/paulmach/orb"

// Transformation is an affine mapping between two planar coordinate spaces,
// applied independently per axis: x' = scale*(A*x+B), y' = scale*(C*y+D).
type Transformation struct {
	A, B, C, D float64
}

// Transform applies the transformation to p, scaled by scale.
func (t Transformation) Transform(p orb.Point, scale float64) orb.Point {
	return orb.Point{
		scale * (t.A*p[0] + t.B),
		scale * (t.C*p[1] + t.D),
	}
}

// Untransform reverses Transform. A transformation built with a zero A or C
// coefficient yields IEEE infinities here; that is a construction mistake
// surfaced through the result, not a checked condition.
func (t Transformation) Untransform(p orb.Point, scale float64) orb.Point {
	return orb.Point{
		(p[0]/scale - t.B) / t.A,
		(p[1]/scale - t.D) / t.C,
	}
}

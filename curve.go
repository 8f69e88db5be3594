package nurbs

import (
	"fmt"

	"github.com/ungerik/go3d/float64/vec3"
)

// Curve is a B-spline curve. It is rational if Weights is non-nil, in which
// case Weights holds one weight per control point.
//
// Control points are stored as 3D vectors; coordinates at positions ≥ Dim
// are not significant and kept at 0.
type Curve struct {
	Dim           int       // coordinate dimensionality, 1…3
	Degree        int       // polynomial degree
	Knots         []float64 // len(Knots) = N() + Degree + 1
	ControlPoints []vec3.T  // control points
	Weights       []float64 // nil for non-rational curves
}

// NewCurve creates a non-rational curve. Knots and points are copied.
func NewCurve(dim, degree int, knots []float64, points []vec3.T) (*Curve, error) {
	if err := checkDim(dim); err != nil {
		return nil, err
	}
	c := &Curve{
		Dim:           dim,
		Degree:        degree,
		Knots:         append([]float64(nil), knots...),
		ControlPoints: make([]vec3.T, len(points)),
	}
	for i, p := range points {
		c.ControlPoints[i] = Project(p, dim)
	}
	return c, nil
}

// NewRationalCurve creates a rational curve. There must be exactly one
// positive weight per control point.
func NewRationalCurve(dim, degree int, knots []float64, points []vec3.T, weights []float64) (*Curve, error) {
	if len(weights) != len(points) {
		return nil, fmt.Errorf("%w: %d weights for %d control points", ErrWeights, len(weights), len(points))
	}
	if err := checkPositive(weights); err != nil {
		return nil, err
	}
	c, err := NewCurve(dim, degree, knots, points)
	if err != nil {
		return nil, err
	}
	c.Weights = append([]float64{}, weights...)
	return c, nil
}

// N returns the number of control points.
func (c *Curve) N() int {
	return len(c.ControlPoints)
}

// IsRational is a predicate: does c carry weights?
func (c *Curve) IsRational() bool {
	return c.Weights != nil
}

// Weight returns the weight of control point i, which is 1 for
// non-rational curves.
func (c *Curve) Weight(i int) float64 {
	if c.Weights == nil {
		return 1.0
	}
	return c.Weights[i]
}

// Clone returns a deep copy of c.
func (c *Curve) Clone() *Curve {
	cc := &Curve{
		Dim:           c.Dim,
		Degree:        c.Degree,
		Knots:         append([]float64(nil), c.Knots...),
		ControlPoints: append([]vec3.T(nil), c.ControlPoints...),
	}
	if c.Weights != nil {
		cc.Weights = append([]float64{}, c.Weights...)
	}
	return cc
}

// Equal compares two curves. Numeric values are compared within Epsilon.
// A rational curve never equals a non-rational one, even if all its
// weights are 1.
func (c *Curve) Equal(o *Curve) bool {
	if c == nil || o == nil {
		return c == o
	}
	if c.Dim != o.Dim || c.Degree != o.Degree || c.IsRational() != o.IsRational() {
		return false
	}
	if !floatsEqual(c.Knots, o.Knots) || !floatsEqual(c.Weights, o.Weights) {
		return false
	}
	if len(c.ControlPoints) != len(o.ControlPoints) {
		return false
	}
	for i := range c.ControlPoints {
		if !VecEqual(c.ControlPoints[i], o.ControlPoints[i]) {
			tracer().Debugf("curves differ at control point %d", i)
			return false
		}
	}
	return true
}

// String returns a short description of c, for debugging.
func (c *Curve) String() string {
	kind := "curve"
	if c.IsRational() {
		kind = "rational curve"
	}
	return fmt.Sprintf("%s[dim=%d deg=%d n=%d knots=%d]", kind, c.Dim, c.Degree, c.N(), len(c.Knots))
}

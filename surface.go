package nurbs

import (
	"fmt"

	"github.com/ungerik/go3d/float64/vec3"
)

// Surface is a tensor-product B-spline surface. Control point (i, j) sits
// at row i (along u) and column j (along v). It is rational if Weights is
// non-nil; the weight grid then has the shape of the control point grid.
type Surface struct {
	Dim           int
	DegreeU       int
	DegreeV       int
	KnotsU        []float64
	KnotsV        []float64
	ControlPoints Grid[vec3.T]
	Weights       *Grid[float64] // nil for non-rational surfaces
}

// NewSurface creates a non-rational surface. Knots and points are copied.
func NewSurface(dim, degU, degV int, knotsU, knotsV []float64, points Grid[vec3.T]) (*Surface, error) {
	if err := checkDim(dim); err != nil {
		return nil, err
	}
	s := &Surface{
		Dim:           dim,
		DegreeU:       degU,
		DegreeV:       degV,
		KnotsU:        append([]float64(nil), knotsU...),
		KnotsV:        append([]float64(nil), knotsV...),
		ControlPoints: NewGrid[vec3.T](points.Rows(), points.Cols()),
	}
	for j := 0; j < points.Cols(); j++ {
		for i := 0; i < points.Rows(); i++ {
			s.ControlPoints.Set(i, j, Project(points.At(i, j), dim))
		}
	}
	return s, nil
}

// NewRationalSurface creates a rational surface. The weight grid must have
// the shape of the control point grid and hold positive weights only.
func NewRationalSurface(dim, degU, degV int, knotsU, knotsV []float64, points Grid[vec3.T],
	weights Grid[float64]) (*Surface, error) {
	if weights.Rows() != points.Rows() || weights.Cols() != points.Cols() {
		return nil, fmt.Errorf("%w: weights %d×%d, control points %d×%d", ErrWeights,
			weights.Rows(), weights.Cols(), points.Rows(), points.Cols())
	}
	if err := checkPositive(weights.data); err != nil {
		return nil, err
	}
	s, err := NewSurface(dim, degU, degV, knotsU, knotsV, points)
	if err != nil {
		return nil, err
	}
	w := weights.Clone()
	s.Weights = &w
	return s, nil
}

// NU returns the number of control points along u.
func (s *Surface) NU() int {
	return s.ControlPoints.Rows()
}

// NV returns the number of control points along v.
func (s *Surface) NV() int {
	return s.ControlPoints.Cols()
}

// IsRational is a predicate: does s carry weights?
func (s *Surface) IsRational() bool {
	return s.Weights != nil
}

// Weight returns the weight of control point (i, j), which is 1 for
// non-rational surfaces.
func (s *Surface) Weight(i, j int) float64 {
	if s.Weights == nil {
		return 1.0
	}
	return s.Weights.At(i, j)
}

// Clone returns a deep copy of s.
func (s *Surface) Clone() *Surface {
	sc := &Surface{
		Dim:           s.Dim,
		DegreeU:       s.DegreeU,
		DegreeV:       s.DegreeV,
		KnotsU:        append([]float64(nil), s.KnotsU...),
		KnotsV:        append([]float64(nil), s.KnotsV...),
		ControlPoints: s.ControlPoints.Clone(),
	}
	if s.Weights != nil {
		w := s.Weights.Clone()
		sc.Weights = &w
	}
	return sc
}

// Equal compares two surfaces. Numeric values are compared within Epsilon.
func (s *Surface) Equal(o *Surface) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.Dim != o.Dim || s.DegreeU != o.DegreeU || s.DegreeV != o.DegreeV {
		return false
	}
	if s.IsRational() != o.IsRational() || s.NU() != o.NU() || s.NV() != o.NV() {
		return false
	}
	if !floatsEqual(s.KnotsU, o.KnotsU) || !floatsEqual(s.KnotsV, o.KnotsV) {
		return false
	}
	for j := 0; j < s.NV(); j++ {
		for i := 0; i < s.NU(); i++ {
			if !VecEqual(s.ControlPoints.At(i, j), o.ControlPoints.At(i, j)) {
				tracer().Debugf("surfaces differ at control point (%d,%d)", i, j)
				return false
			}
			if !Is0(s.Weight(i, j) - o.Weight(i, j)) {
				return false
			}
		}
	}
	return true
}

// String returns a short description of s, for debugging.
func (s *Surface) String() string {
	kind := "surface"
	if s.IsRational() {
		kind = "rational surface"
	}
	return fmt.Sprintf("%s[dim=%d deg=%d×%d n=%d×%d]", kind, s.Dim, s.DegreeU, s.DegreeV, s.NU(), s.NV())
}

package obj

import (
	"fmt"

	"github.com/npillmayer/nurbs"
	"github.com/ungerik/go3d/float64/vec3"
)

// controlPointCount is len(knots) - degree - 1, which must not be negative.
func controlPointCount(knots []float64, degree int, axis string) (int, error) {
	n := len(knots) - degree - 1
	if n < 0 {
		return 0, fmt.Errorf("%w: %d knots, degree %d along %s", ErrCorrupt, len(knots), degree, axis)
	}
	return n, nil
}

// resolve looks up a 1-based vertex index in the pool.
func (acc *accumulator) resolve(k int) (vec3.T, float64, error) {
	inx := acc.indices[k]
	if inx < 1 || inx > len(acc.points) {
		return vec3.T{}, 0, fmt.Errorf("%w: index %d at position %d, %d vertices",
			ErrIndexRange, inx, k+1, len(acc.points))
	}
	return acc.points[inx-1], acc.weights[inx-1], nil
}

// buildCurve creates a curve from the accumulated records. The result owns
// all of its data. Weights are dropped if the file is non-rational.
func (acc *accumulator) buildCurve(dim int) (*nurbs.Curve, error) {
	n, err := controlPointCount(acc.knotsU, acc.degU, "u")
	if err != nil {
		return nil, err
	}
	if len(acc.indices) != n {
		return nil, fmt.Errorf("%w: %d indices, %d control points", ErrIndexCount, len(acc.indices), n)
	}
	pts := make([]vec3.T, n)
	weights := make([]float64, n)
	for k := 0; k < n; k++ {
		p, w, err := acc.resolve(k)
		if err != nil {
			return nil, err
		}
		pts[k], weights[k] = nurbs.Project(p, dim), w
	}
	crv := &nurbs.Curve{
		Dim:           dim,
		Degree:        acc.degU,
		Knots:         append([]float64(nil), acc.knotsU...),
		ControlPoints: pts,
	}
	if acc.rational {
		crv.Weights = weights
	}
	tracer().Debugf("built %v", crv)
	return crv, nil
}

// buildSurface creates a surface from the accumulated records. The index
// list is consumed with u varying fastest, i.e. column by column.
func (acc *accumulator) buildSurface(dim int) (*nurbs.Surface, error) {
	nu, err := controlPointCount(acc.knotsU, acc.degU, "u")
	if err != nil {
		return nil, err
	}
	nv, err := controlPointCount(acc.knotsV, acc.degV, "v")
	if err != nil {
		return nil, err
	}
	if len(acc.indices) != nu*nv {
		return nil, fmt.Errorf("%w: %d indices, %d×%d control points", ErrIndexCount,
			len(acc.indices), nu, nv)
	}
	pts := nurbs.NewGrid[vec3.T](nu, nv)
	weights := nurbs.NewGrid[float64](nu, nv)
	k := 0
	for j := 0; j < nv; j++ {
		for i := 0; i < nu; i++ {
			p, w, err := acc.resolve(k)
			if err != nil {
				return nil, err
			}
			pts.Set(i, j, nurbs.Project(p, dim))
			weights.Set(i, j, w)
			k++
		}
	}
	srf := &nurbs.Surface{
		Dim:           dim,
		DegreeU:       acc.degU,
		DegreeV:       acc.degV,
		KnotsU:        append([]float64(nil), acc.knotsU...),
		KnotsV:        append([]float64(nil), acc.knotsV...),
		ControlPoints: pts,
	}
	if acc.rational {
		srf.Weights = &weights
	}
	tracer().Debugf("built %v", srf)
	return srf, nil
}

package obj

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/npillmayer/nurbs"
	"github.com/ungerik/go3d/float64/vec3"
)

// serializer emits records. Write errors are sticky: after the first
// failure all further output is suppressed and the error is reported by
// flush.
type serializer struct {
	w    *bufio.Writer
	opts options
	err  error
}

func newSerializer(w io.Writer, opts options) *serializer {
	return &serializer{w: bufio.NewWriter(w), opts: opts}
}

func (s *serializer) str(str string) {
	if s.err == nil {
		_, s.err = s.w.WriteString(str)
	}
}

func (s *serializer) num(x float64) string {
	return strconv.FormatFloat(x, 'g', s.opts.precision, 64)
}

func (s *serializer) vertex(p vec3.T, w float64) {
	s.str("v " + s.num(p[0]) + " " + s.num(p[1]) + " " + s.num(p[2]) + " " + s.num(w) + "\n")
}

func (s *serializer) cstype(rational bool) {
	if rational {
		s.str("cstype rat bspline\n")
	} else {
		s.str("cstype bspline\n")
	}
}

// list writes a record with a prefix and a list of items, wrapping lines
// with the continuation marker if configured.
func (s *serializer) list(prefix string, items []string) {
	s.str(prefix)
	for k, item := range items {
		if s.opts.lineWrap > 0 && k > 0 && k%s.opts.lineWrap == 0 {
			s.str(" " + continuation + "\n")
		}
		s.str(" " + item)
	}
	s.str("\n")
}

func (s *serializer) knots(axis string, knots []float64) {
	items := make([]string, len(knots))
	for k, x := range knots {
		items[k] = s.num(x)
	}
	s.list("parm "+axis, items)
}

// body writes curv/surf: domain bounds, then indices 1…n.
func (s *serializer) body(keyword string, bounds []float64, n int) {
	items := make([]string, 0, len(bounds)+n)
	for _, b := range bounds {
		items = append(items, s.num(b))
	}
	for k := 1; k <= n; k++ {
		items = append(items, strconv.Itoa(k))
	}
	s.list(keyword, items)
}

func (s *serializer) flush() error {
	if s.err == nil {
		s.err = s.w.Flush()
	}
	return s.err
}

// domainBounds returns knots[degree] and knots[len-degree-1], the first
// and last knot of the parameter domain.
func domainBounds(knots []float64, degree int, axis string) (float64, float64, error) {
	if degree < 0 || len(knots) < degree+1 {
		return 0, 0, fmt.Errorf("%w: %d knots, degree %d along %s", ErrKnotVector, len(knots), degree, axis)
	}
	return knots[degree], knots[len(knots)-degree-1], nil
}

func writeDim(dim int) (int, error) {
	if dim == 0 {
		return nurbs.DefaultDim, nil
	}
	if dim < 1 || dim > 3 {
		return 0, nurbs.ErrDimension
	}
	return dim, nil
}

// encodeCurve checks c and writes it. Nothing is written if a check fails.
func encodeCurve(w io.Writer, c *nurbs.Curve, opts options) error {
	if c == nil {
		return ErrNilGeometry
	}
	dim, err := writeDim(c.Dim)
	if err != nil {
		return err
	}
	lo, hi, err := domainBounds(c.Knots, c.Degree, "u")
	if err != nil {
		return err
	}
	if c.IsRational() && len(c.Weights) != len(c.ControlPoints) {
		return fmt.Errorf("%w: %d weights for %d control points", ErrWeights,
			len(c.Weights), len(c.ControlPoints))
	}
	s := newSerializer(w, opts)
	for i, p := range c.ControlPoints {
		s.vertex(nurbs.Project(p, dim), c.Weight(i))
	}
	s.cstype(c.IsRational())
	s.str("deg " + strconv.Itoa(c.Degree) + "\n")
	s.body("curv", []float64{lo, hi}, len(c.ControlPoints))
	s.knots("u", c.Knots)
	s.str("end\n")
	return s.flush()
}

// encodeSurface checks srf and writes it. A surface without control
// points produces no output at all.
func encodeSurface(w io.Writer, srf *nurbs.Surface, opts options) error {
	if srf == nil {
		return ErrNilGeometry
	}
	nu, nv := srf.NU(), srf.NV()
	if nu == 0 || nv == 0 {
		tracer().Infof("surface has no control points, nothing to write")
		return nil
	}
	dim, err := writeDim(srf.Dim)
	if err != nil {
		return err
	}
	ulo, uhi, err := domainBounds(srf.KnotsU, srf.DegreeU, "u")
	if err != nil {
		return err
	}
	vlo, vhi, err := domainBounds(srf.KnotsV, srf.DegreeV, "v")
	if err != nil {
		return err
	}
	if srf.IsRational() && (srf.Weights.Rows() != nu || srf.Weights.Cols() != nv) {
		return fmt.Errorf("%w: weights %d×%d, control points %d×%d", ErrWeights,
			srf.Weights.Rows(), srf.Weights.Cols(), nu, nv)
	}
	s := newSerializer(w, opts)
	for j := 0; j < nv; j++ {
		for i := 0; i < nu; i++ {
			s.vertex(nurbs.Project(srf.ControlPoints.At(i, j), dim), srf.Weight(i, j))
		}
	}
	s.cstype(srf.IsRational())
	s.str("deg " + strconv.Itoa(srf.DegreeU) + " " + strconv.Itoa(srf.DegreeV) + "\n")
	s.body("surf", []float64{ulo, uhi, vlo, vhi}, nu*nv)
	s.knots("u", srf.KnotsU)
	s.knots("v", srf.KnotsV)
	s.str("end\n")
	return s.flush()
}

package obj

import (
	"bytes"
	"fmt"
	"io"

	"github.com/npillmayer/nurbs"
)

// === Reading ===============================================================

// DecodeCurve reads a curve from r. The curve is rational if and only if
// the input declares "cstype rat bspline".
func DecodeCurve(r io.Reader, opts ...Option) (*nurbs.Curve, error) {
	o := applyOptions(opts)
	acc, err := decode(r, curveKind, o)
	if err != nil {
		return nil, err
	}
	return acc.buildCurve(o.dim)
}

// DecodeSurface reads a surface from r. The surface is rational if and only
// if the input declares "cstype rat bspline".
func DecodeSurface(r io.Reader, opts ...Option) (*nurbs.Surface, error) {
	o := applyOptions(opts)
	acc, err := decode(r, surfaceKind, o)
	if err != nil {
		return nil, err
	}
	return acc.buildSurface(o.dim)
}

func decode(r io.Reader, kind geometryKind, o options) (*accumulator, error) {
	if o.dim < 1 || o.dim > 3 {
		return nil, nurbs.ErrDimension
	}
	acc := newAccumulator(kind)
	if err := acc.scan(newRecordScanner(r)); err != nil {
		return nil, err
	}
	if err := acc.checkRequired(); err != nil {
		return nil, err
	}
	tracer().Debugf("scanned %d vertices, %d indices, %d+%d knots",
		len(acc.points), len(acc.indices), len(acc.knotsU), len(acc.knotsV))
	return acc, nil
}

// ReadCurve reads a curve from the file at path.
func ReadCurve(path string, opts ...Option) (*nurbs.Curve, error) {
	o := applyOptions(opts)
	var crv *nurbs.Curve
	err := readFile(path, o, func(r io.Reader) (err error) {
		crv, err = DecodeCurve(r, opts...)
		return
	})
	if err != nil {
		return nil, err
	}
	tracer().Infof("read %v from %s", crv, path)
	return crv, nil
}

// ReadSurface reads a surface from the file at path.
func ReadSurface(path string, opts ...Option) (*nurbs.Surface, error) {
	o := applyOptions(opts)
	var srf *nurbs.Surface
	err := readFile(path, o, func(r io.Reader) (err error) {
		srf, err = DecodeSurface(r, opts...)
		return
	})
	if err != nil {
		return nil, err
	}
	tracer().Infof("read %v from %s", srf, path)
	return srf, nil
}

func readFile(path string, o options, decodeFn func(io.Reader) error) (err error) {
	f, err := openFile(path, o.compression)
	if err != nil {
		tracer().Errorf("cannot open %s: %v", path, err)
		return fmt.Errorf("cannot open file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	if err = decodeFn(f); err != nil {
		tracer().Errorf("reading %s: %v", path, err)
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// === Writing ===============================================================

// EncodeCurve writes c to w. Weights are written for every control point,
// as 1 for non-rational curves. If c cannot be written, nothing is written
// at all.
func EncodeCurve(w io.Writer, c *nurbs.Curve, opts ...Option) error {
	var buf bytes.Buffer
	if err := encodeCurve(&buf, c, applyOptions(opts)); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

// EncodeSurface writes srf to w. A surface without control points is not
// an error, but produces no output.
func EncodeSurface(w io.Writer, srf *nurbs.Surface, opts ...Option) error {
	var buf bytes.Buffer
	if err := encodeSurface(&buf, srf, applyOptions(opts)); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

// WriteCurve writes c to the file at path, replacing an existing file.
// The file is not touched if c cannot be written.
func WriteCurve(path string, c *nurbs.Curve, opts ...Option) error {
	o := applyOptions(opts)
	var buf bytes.Buffer
	if err := encodeCurve(&buf, c, o); err != nil {
		tracer().Errorf("cannot write curve to %s: %v", path, err)
		return err
	}
	if err := writeFile(path, buf.Bytes(), o.compression); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	tracer().Infof("wrote %v to %s", c, path)
	return nil
}

// WriteSurface writes srf to the file at path, replacing an existing file.
// A surface without control points results in an empty file.
func WriteSurface(path string, srf *nurbs.Surface, opts ...Option) error {
	o := applyOptions(opts)
	var buf bytes.Buffer
	if err := encodeSurface(&buf, srf, o); err != nil {
		tracer().Errorf("cannot write surface to %s: %v", path, err)
		return err
	}
	if err := writeFile(path, buf.Bytes(), o.compression); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	tracer().Infof("wrote %v to %s", srf, path)
	return nil
}

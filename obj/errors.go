package obj

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingSection indicates a required record (cstype, deg, curv/surf, parm) is absent.
	ErrMissingSection = errors.New("missing section")
	// ErrIncomplete indicates a record with too few fields.
	ErrIncomplete = errors.New("record missing/incomplete")
	// ErrIndexRange indicates a control point index not resolving within the vertex pool.
	ErrIndexRange = errors.New("control point index out of range")
	// ErrIndexCount indicates an index list not matching the control point count.
	ErrIndexCount = errors.New("index count does not match control point count")
	// ErrCorrupt indicates knot vector and degree which cannot size a control point array.
	ErrCorrupt = errors.New("knot vector too short for degree")
	// ErrKnotVector indicates a knot vector too short to write domain bounds.
	ErrKnotVector = errors.New("knot vector too short to derive domain bounds")
	// ErrWeights indicates a weight container not matching the control points.
	ErrWeights = errors.New("weights do not match control points")
	// ErrNilGeometry indicates a nil curve or surface argument.
	ErrNilGeometry = errors.New("curve or surface must not be nil")
)

// ParseError is an error while reading a record. Line is the physical line
// the record starts at, Section is its keyword.
type ParseError struct {
	Line    int
	Section string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: '%s': %v", e.Line, e.Section, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseError(rec record, err error) error {
	return &ParseError{Line: rec.Line, Section: rec.Keyword, Err: err}
}

func missing(section string) error {
	return fmt.Errorf("%w: '%s' line missing/incomplete in file", ErrMissingSection, section)
}

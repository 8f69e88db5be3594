package obj

import (
	"fmt"
	"strconv"

	"github.com/ungerik/go3d/float64/vec3"
)

type geometryKind int

const (
	curveKind geometryKind = iota
	surfaceKind
)

func (k geometryKind) body() string {
	if k == surfaceKind {
		return "surf"
	}
	return "curv"
}

// seen flags for required records.
type seen struct {
	cstype, deg, body, parmU, parmV bool
}

// accumulator collects the fields of all records of one read call.
// It is never shared between calls.
type accumulator struct {
	kind     geometryKind
	points   []vec3.T  // vertex pool positions
	weights  []float64 // vertex pool weights, parallel to points
	rational bool
	degU     int
	degV     int
	bounds   []float64 // domain bounds of curv/surf, discarded by the builder
	indices  []int     // 1-based control point indices
	knotsU   []float64
	knotsV   []float64
	seen     seen
}

func newAccumulator(kind geometryKind) *accumulator {
	return &accumulator{kind: kind}
}

// scan feeds all records up to 'end' or end of input into acc.
func (acc *accumulator) scan(rs *recordScanner) error {
	for rs.Next() {
		rec := rs.Record()
		if rec.Keyword == "end" {
			break
		}
		if err := acc.add(rec); err != nil {
			return err
		}
	}
	return rs.Err()
}

func (acc *accumulator) add(rec record) error {
	switch rec.Keyword {
	case "v":
		return acc.vertex(rec)
	case "cstype":
		acc.cstype(rec)
	case "deg":
		return acc.degree(rec)
	case "curv", "surf":
		if rec.Keyword != acc.kind.body() {
			return nil // other kind of freeform geometry
		}
		return acc.body(rec)
	case "parm":
		return acc.parm(rec)
	}
	return nil
}

// v x y z w
func (acc *accumulator) vertex(rec record) error {
	coords := [4]float64{0, 0, 0, 1}
	for i := 0; i < len(rec.Fields) && i < 4; i++ {
		x, err := parseFloat(rec.Fields[i])
		if err != nil {
			return parseError(rec, err)
		}
		coords[i] = x
	}
	acc.points = append(acc.points, vec3.T{coords[0], coords[1], coords[2]})
	acc.weights = append(acc.weights, coords[3])
	return nil
}

// cstype bspline | cstype rat bspline
func (acc *accumulator) cstype(rec record) {
	f := rec.Fields
	switch {
	case len(f) >= 1 && f[0] == "bspline":
		acc.rational = false
		acc.seen.cstype = true
	case len(f) >= 2 && f[0] == "rat" && f[1] == "bspline":
		acc.rational = true
		acc.seen.cstype = true
	default:
		tracer().Debugf("line %d: ignoring cstype %v", rec.Line, f)
	}
}

// deg d | deg du dv
func (acc *accumulator) degree(rec record) error {
	want := 1
	if acc.kind == surfaceKind {
		want = 2
	}
	if len(rec.Fields) < want {
		return parseError(rec, ErrIncomplete)
	}
	degs := make([]int, want)
	for i := range degs {
		d, err := strconv.Atoi(rec.Fields[i])
		if err != nil {
			return parseError(rec, err)
		}
		if d < 0 {
			return parseError(rec, fmt.Errorf("negative degree %d", d))
		}
		degs[i] = d
	}
	acc.degU = degs[0]
	if want == 2 {
		acc.degV = degs[1]
	}
	acc.seen.deg = true
	return nil
}

// curv u0 u1 i1 i2 … | surf u0 u1 v0 v1 i1 i2 …
func (acc *accumulator) body(rec record) error {
	nbounds := 2
	if acc.kind == surfaceKind {
		nbounds = 4
	}
	if len(rec.Fields) < nbounds {
		return parseError(rec, ErrIncomplete)
	}
	acc.bounds = acc.bounds[:0]
	for _, tok := range rec.Fields[:nbounds] {
		b, err := parseFloat(tok)
		if err != nil {
			return parseError(rec, err)
		}
		acc.bounds = append(acc.bounds, b)
	}
	acc.indices = acc.indices[:0]
	for _, tok := range rec.Fields[nbounds:] {
		inx, err := strconv.Atoi(tok)
		if err != nil {
			return parseError(rec, err)
		}
		acc.indices = append(acc.indices, inx)
	}
	acc.seen.body = true
	return nil
}

// parm u k1 k2 … | parm v k1 k2 …
func (acc *accumulator) parm(rec record) error {
	if len(rec.Fields) == 0 {
		return parseError(rec, ErrIncomplete)
	}
	knots, err := parseFloats(rec.Fields[1:])
	if err != nil {
		return parseError(rec, err)
	}
	switch rec.Fields[0] {
	case "u":
		acc.knotsU = knots
		acc.seen.parmU = true
	case "v":
		if acc.kind == curveKind {
			tracer().Debugf("line %d: ignoring parm v for curve", rec.Line)
			return nil
		}
		acc.knotsV = knots
		acc.seen.parmV = true
	default:
		return parseError(rec, fmt.Errorf("unknown parameter direction %q", rec.Fields[0]))
	}
	return nil
}

// checkRequired reports the first required record not seen during the scan.
func (acc *accumulator) checkRequired() error {
	switch {
	case !acc.seen.cstype:
		return missing("cstype")
	case !acc.seen.deg:
		return missing("deg")
	case !acc.seen.body:
		return missing(acc.kind.body())
	case !acc.seen.parmU:
		return missing("parm u")
	case acc.kind == surfaceKind && !acc.seen.parmV:
		return missing("parm v")
	}
	return nil
}

func parseFloat(tok string) (float64, error) {
	return strconv.ParseFloat(tok, 64)
}

func parseFloats(toks []string) ([]float64, error) {
	xs := make([]float64, 0, len(toks))
	for _, tok := range toks {
		x, err := parseFloat(tok)
		if err != nil {
			return nil, err
		}
		xs = append(xs, x)
	}
	return xs, nil
}

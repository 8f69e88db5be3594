package obj_test

import (
	"errors"
	"io/fs"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/nurbs"
	"github.com/npillmayer/nurbs/obj"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ungerik/go3d/float64/vec3"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Errorf("mismatch (-want +got):\n%s", d)
	}
}

const curveSource = `v 0 0 0
v 1 1 0 0.5
v 2 1 0 0.5
v 3 0 0
cstype bspline
deg 2
curv 0 1 1 2 3 4
parm u 0 0 0 0.5 1 1 1
end
`

func TestReadCurveFile(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	crv, err := obj.ReadCurve("testdata/curve.obj")
	require.NoError(t, err)
	assert.Equal(t, 3, crv.Degree)
	assert.Equal(t, 3, crv.Dim)
	diff(t, []float64{0, 0, 0, 0, 1, 1, 1, 1}, crv.Knots)
	diff(t, []vec3.T{{0, 0, 0}, {1, 2, 0}, {3, 2, 0}, {4, 0, 0}}, crv.ControlPoints)
	assert.False(t, crv.IsRational())
}

func TestReadRationalCurveFile(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	crv, err := obj.ReadCurve("testdata/rational_curve.obj")
	require.NoError(t, err)
	require.True(t, crv.IsRational())
	diff(t, []float64{1, 0.7071067811865476, 1}, crv.Weights)
	diff(t, []float64{0, 0, 0, 1, 1, 1}, crv.Knots)
	assert.Equal(t, vec3.T{1, 1, 0}, crv.ControlPoints[1])
}

func TestNonRationalDropsWeights(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	crv, err := obj.DecodeCurve(strings.NewReader(curveSource))
	require.NoError(t, err)
	assert.Nil(t, crv.Weights, "non-rational curve must not carry weights")
	for i := 0; i < crv.N(); i++ {
		assert.Equal(t, 1.0, crv.Weight(i))
	}
}

func TestReadCurveWithIndexPermutation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	src := strings.Replace(curveSource, "curv 0 1 1 2 3 4", "curv 0 1 4 3 2 1", 1)
	src = strings.Replace(src, "cstype bspline", "cstype rat bspline", 1)
	crv, err := obj.DecodeCurve(strings.NewReader(src))
	require.NoError(t, err)
	diff(t, []vec3.T{{3, 0, 0}, {2, 1, 0}, {1, 1, 0}, {0, 0, 0}}, crv.ControlPoints)
	diff(t, []float64{1, 0.5, 0.5, 1}, crv.Weights)
}

func TestContinuationParsesLikeSingleLine(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	split := strings.Replace(curveSource, "curv 0 1 1 2 3 4", "curv 0 1 1 \\\n2 \\\n 3 4", 1)
	split = strings.Replace(split, "parm u 0 0 0 0.5 1 1 1", "parm u 0 0 \\\n0 0.5 \\\n1 1 1", 1)
	c1, err := obj.DecodeCurve(strings.NewReader(curveSource))
	require.NoError(t, err)
	c2, err := obj.DecodeCurve(strings.NewReader(split))
	require.NoError(t, err)
	diff(t, c1, c2)
}

func TestReadCurveIgnoresUnknownAndStopsAtEnd(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	src := "o mycurve\n# comment\nvt 0.5 0.5\n" + curveSource + "deg 7\n"
	crv, err := obj.DecodeCurve(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 2, crv.Degree, "records after 'end' must be ignored")
}

func TestReadCurveDimension(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	src := strings.Replace(curveSource, "v 1 1 0 0.5", "v 1 1 7 0.5", 1)
	crv, err := obj.DecodeCurve(strings.NewReader(src), obj.WithDimension(2))
	require.NoError(t, err)
	assert.Equal(t, 2, crv.Dim)
	assert.Equal(t, vec3.T{1, 1, 0}, crv.ControlPoints[1])
	_, err = obj.DecodeCurve(strings.NewReader(src), obj.WithDimension(5))
	assert.True(t, errors.Is(err, nurbs.ErrDimension))
}

func TestVertexDefaults(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	src := "v 1\nv\nv 1 2 3 0.25 99\ncstype rat bspline\ndeg 0\ncurv 0 1 1 2 3\nparm u 0 0.3 0.6 1\n"
	crv, err := obj.DecodeCurve(strings.NewReader(src))
	require.NoError(t, err)
	diff(t, []vec3.T{{1, 0, 0}, {0, 0, 0}, {1, 2, 3}}, crv.ControlPoints)
	diff(t, []float64{1, 1, 0.25}, crv.Weights)
}

func TestMissingSections(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, section := range []string{"cstype", "deg", "curv", "parm"} {
		t.Run(section, func(t *testing.T) {
			var lines []string
			for _, line := range strings.Split(curveSource, "\n") {
				if !strings.HasPrefix(line, section+" ") {
					lines = append(lines, line)
				}
			}
			crv, err := obj.DecodeCurve(strings.NewReader(strings.Join(lines, "\n")))
			require.Error(t, err)
			assert.Nil(t, crv)
			assert.True(t, errors.Is(err, obj.ErrMissingSection), "got %v", err)
			assert.Contains(t, err.Error(), "'"+section)
		})
	}
}

func TestUnrecognizedCstypeCountsAsMissing(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	src := strings.Replace(curveSource, "cstype bspline", "cstype bezier", 1)
	_, err := obj.DecodeCurve(strings.NewReader(src))
	assert.True(t, errors.Is(err, obj.ErrMissingSection))
	assert.Contains(t, err.Error(), "'cstype'")
}

func TestMalformedNumbers(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cases := []struct {
		old, repl, section string
		line               int
	}{
		{"v 2 1 0 0.5", "v 2 one 0 0.5", "v", 3},
		{"deg 2", "deg two", "deg", 6},
		{"curv 0 1 1 2 3 4", "curv 0 1 1 2 x 4", "curv", 7},
		{"curv 0 1 1 2 3 4", "curv zero 1 1 2 3 4", "curv", 7},
		{"parm u 0 0 0 0.5 1 1 1", "parm u 0 0 0 .5. 1 1 1", "parm", 8},
	}
	for _, c := range cases {
		src := strings.Replace(curveSource, c.old, c.repl, 1)
		_, err := obj.DecodeCurve(strings.NewReader(src))
		var perr *obj.ParseError
		require.True(t, errors.As(err, &perr), "expected parse error for %q, got %v", c.repl, err)
		assert.Equal(t, c.section, perr.Section)
		assert.Equal(t, c.line, perr.Line)
		assert.True(t, errors.Is(err, strconv.ErrSyntax))
	}
}

func TestIncompleteRecords(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for old, repl := range map[string]string{
		"deg 2":                  "deg",
		"curv 0 1 1 2 3 4":       "curv 0",
		"parm u 0 0 0 0.5 1 1 1": "parm",
	} {
		src := strings.Replace(curveSource, old, repl, 1)
		_, err := obj.DecodeCurve(strings.NewReader(src))
		assert.True(t, errors.Is(err, obj.ErrIncomplete), "%q: got %v", repl, err)
	}
	src := strings.Replace(curveSource, "deg 2", "deg -1", 1)
	_, err := obj.DecodeCurve(strings.NewReader(src))
	var perr *obj.ParseError
	assert.True(t, errors.As(err, &perr))
	src = strings.Replace(curveSource, "parm u", "parm w", 1)
	_, err = obj.DecodeCurve(strings.NewReader(src))
	assert.True(t, errors.As(err, &perr))
}

func TestIndexErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, body := range []string{"curv 0 1 1 2 3 9", "curv 0 1 0 1 2 3", "curv 0 1 1 2 3 -1"} {
		src := strings.Replace(curveSource, "curv 0 1 1 2 3 4", body, 1)
		crv, err := obj.DecodeCurve(strings.NewReader(src))
		assert.Nil(t, crv)
		assert.True(t, errors.Is(err, obj.ErrIndexRange), "%q: got %v", body, err)
	}
	for _, body := range []string{"curv 0 1 1 2 3", "curv 0 1 1 2 3 4 4"} {
		src := strings.Replace(curveSource, "curv 0 1 1 2 3 4", body, 1)
		_, err := obj.DecodeCurve(strings.NewReader(src))
		assert.True(t, errors.Is(err, obj.ErrIndexCount), "%q: got %v", body, err)
	}
	src := strings.Replace(curveSource, "deg 2", "deg 9", 1)
	_, err := obj.DecodeCurve(strings.NewReader(src))
	assert.True(t, errors.Is(err, obj.ErrCorrupt), "got %v", err)
}

func TestReadFileNotFound(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	crv, err := obj.ReadCurve("testdata/does-not-exist.obj")
	assert.Nil(t, crv)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	srf, err := obj.ReadSurface("testdata/does-not-exist.obj")
	assert.Nil(t, srf)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

// --- Surfaces --------------------------------------------------------------

const surfaceSource = `v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
v 0 2 0
v 1 2 0
cstype bspline
deg 1 1
surf 0 1 0 1 1 2 3 4 5 6
parm u 0 0 1 1
parm v 0 0 0.5 1 1
end
`

func TestSurfaceGridOrdering(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	srf, err := obj.DecodeSurface(strings.NewReader(surfaceSource))
	require.NoError(t, err)
	require.Equal(t, 2, srf.NU())
	require.Equal(t, 3, srf.NV())
	want := map[[2]int]vec3.T{
		{0, 0}: {0, 0, 0}, {1, 0}: {1, 0, 0},
		{0, 1}: {0, 1, 0}, {1, 1}: {1, 1, 0},
		{0, 2}: {0, 2, 0}, {1, 2}: {1, 2, 0},
	}
	for ij, p := range want {
		assert.Equal(t, p, srf.ControlPoints.At(ij[0], ij[1]), "control point (%d,%d)", ij[0], ij[1])
	}
	assert.False(t, srf.IsRational())
	assert.Equal(t, 1.0, srf.Weight(1, 2))
}

func TestSurfaceWithPermutedIndices(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	src := strings.Replace(surfaceSource, "1 2 3 4 5 6", "6 5 4 3 2 1", 1)
	srf, err := obj.DecodeSurface(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, vec3.T{1, 2, 0}, srf.ControlPoints.At(0, 0))
	assert.Equal(t, vec3.T{0, 0, 0}, srf.ControlPoints.At(1, 2))
}

func TestReadSurfaceFileWithBlankLines(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	srf, err := obj.ReadSurface("testdata/surface.obj")
	require.NoError(t, err)
	assert.Equal(t, 1, srf.DegreeU)
	assert.Equal(t, 1, srf.DegreeV)
	diff(t, []float64{0, 0, 1, 1}, srf.KnotsU)
	diff(t, []float64{0, 0, 0.5, 1, 1}, srf.KnotsV)
	assert.Equal(t, vec3.T{1, 1, 1}, srf.ControlPoints.At(1, 1))
}

func TestReadRationalSurfaceFile(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	srf, err := obj.ReadSurface("testdata/rational_surface.obj")
	require.NoError(t, err)
	require.True(t, srf.IsRational())
	assert.Equal(t, 0.5, srf.Weight(1, 0))
	assert.Equal(t, 0.5, srf.Weight(0, 1))
	assert.Equal(t, 1.0, srf.Weight(1, 1))
}

func TestSurfaceMissingSections(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, prefix := range []string{"cstype ", "deg ", "surf ", "parm u", "parm v"} {
		var lines []string
		for _, line := range strings.Split(surfaceSource, "\n") {
			if !strings.HasPrefix(line, prefix) {
				lines = append(lines, line)
			}
		}
		srf, err := obj.DecodeSurface(strings.NewReader(strings.Join(lines, "\n")))
		assert.Nil(t, srf)
		assert.True(t, errors.Is(err, obj.ErrMissingSection), "%q: got %v", prefix, err)
		assert.Contains(t, err.Error(), "'"+strings.TrimSpace(prefix)+"'")
	}
}

func TestSurfaceErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	src := strings.Replace(surfaceSource, "deg 1 1", "deg 1", 1)
	_, err := obj.DecodeSurface(strings.NewReader(src))
	assert.True(t, errors.Is(err, obj.ErrIncomplete), "got %v", err)
	src = strings.Replace(surfaceSource, "surf 0 1 0 1 1 2 3 4 5 6", "surf 0 1 0 1 2 3 4 5 6", 1)
	_, err = obj.DecodeSurface(strings.NewReader(src))
	assert.True(t, errors.Is(err, obj.ErrIndexCount), "got %v", err)
	src = strings.Replace(surfaceSource, "surf 0 1 0 1 1 2 3 4 5 6", "surf 0 1 0 1 1 2 3 4 5 7", 1)
	_, err = obj.DecodeSurface(strings.NewReader(src))
	assert.True(t, errors.Is(err, obj.ErrIndexRange), "got %v", err)
	src = strings.Replace(surfaceSource, "parm v 0 0 0.5 1 1", "parm v 0", 1)
	_, err = obj.DecodeSurface(strings.NewReader(src))
	assert.True(t, errors.Is(err, obj.ErrCorrupt), "got %v", err)
}

func TestCurveReaderIgnoresSurfaceRecords(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	src := strings.Replace(curveSource, "end\n", "", 1) + "surf 0 1 0 1 1\nparm v 0 1\nend\n"
	crv, err := obj.DecodeCurve(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 4, crv.N())
}

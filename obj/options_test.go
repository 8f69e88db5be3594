package obj_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/nurbs/obj"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsFromConfig(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	conf := testconfig.Conf{
		obj.ConfPrecision: "4",
		obj.ConfLineWrap:  "2",
		obj.ConfDimension: "2",
	}
	opts, err := obj.OptionsFromConfig(conf)
	require.NoError(t, err)
	require.Len(t, opts, 3)

	crv := quadratic(t, nil)
	crv.ControlPoints[1][0] = 1.23456
	var buf bytes.Buffer
	require.NoError(t, obj.EncodeCurve(&buf, crv, opts...))
	out := buf.String()
	assert.Contains(t, out, "v 1.235 1 0 1\n")
	assert.Contains(t, out, "curv 0 1 \\\n 1 2 \\\n 3 4\n")

	back, err := obj.DecodeCurve(strings.NewReader(out), opts...)
	require.NoError(t, err)
	assert.Equal(t, 2, back.Dim)
}

func TestOptionsFromConfigCompression(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	opts, err := obj.OptionsFromConfig(testconfig.Conf{obj.ConfCompression: "GZIP"})
	require.NoError(t, err)
	assert.Len(t, opts, 1)
	_, err = obj.OptionsFromConfig(testconfig.Conf{obj.ConfCompression: "bzip2"})
	assert.Error(t, err)
	opts, err = obj.OptionsFromConfig(nil)
	assert.NoError(t, err)
	assert.Empty(t, opts)
}

func TestParseCompression(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for name, want := range map[string]obj.Compression{
		"":     obj.Auto,
		"auto": obj.Auto,
		"none": obj.None,
		"gz":   obj.Gzip,
		"Zstd": obj.Zstd,
		"lz4":  obj.LZ4,
	} {
		c, err := obj.ParseCompression(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, c, name)
	}
	assert.Equal(t, "zstd", obj.Zstd.String())
}

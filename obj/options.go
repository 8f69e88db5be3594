package obj

import (
	"fmt"
	"strings"

	"github.com/npillmayer/nurbs"
	"github.com/npillmayer/schuko"
)

// Option configures a read or write call.
type Option func(*options)

type options struct {
	dim         int         // coordinate dimensionality of the result, read only
	precision   int         // significant digits for floats, -1 = shortest exact
	lineWrap    int         // max. numbers per physical line, 0 = no wrap
	compression Compression // file compression
	concurrency int         // max. parallel reads of batch loading
}

func defaultOptions() options {
	return options{
		dim:         nurbs.DefaultDim,
		precision:   -1,
		compression: Auto,
		concurrency: 8,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithDimension sets the coordinate dimensionality (1…3) of geometry read.
// Coordinates beyond dim are dropped. Default is 3.
func WithDimension(dim int) Option {
	return func(o *options) {
		o.dim = dim
	}
}

// WithPrecision sets the number of significant digits for numbers written.
// A negative value selects the shortest representation which reads back
// to the identical float64, which is the default. Any other value may lose
// precision on round-trips.
func WithPrecision(digits int) Option {
	return func(o *options) {
		if digits == 0 {
			digits = -1
		}
		o.precision = digits
	}
}

// WithLineWrap breaks index and knot lists after n numbers per physical
// line, using the continuation marker. n ≤ 0 disables wrapping (default).
func WithLineWrap(n int) Option {
	return func(o *options) {
		o.lineWrap = max(n, 0)
	}
}

// WithCompression sets the compression for file reads and writes.
// Default is Auto, selecting by file name suffix.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithConcurrency limits the number of files read in parallel by
// ReadCurves and ReadSurfaces. Default is 8.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// Configuration keys understood by OptionsFromConfig.
const (
	ConfDimension   = "nurbs.obj.dimension"
	ConfPrecision   = "nurbs.obj.precision"
	ConfLineWrap    = "nurbs.obj.linewrap"
	ConfCompression = "nurbs.obj.compression"
	ConfConcurrency = "nurbs.obj.concurrency"
)

// OptionsFromConfig creates options from an application configuration.
// Keys which are not set leave the defaults untouched. An unknown
// compression name is an error.
func OptionsFromConfig(conf schuko.Configuration) ([]Option, error) {
	if conf == nil {
		return nil, nil
	}
	var opts []Option
	if conf.IsSet(ConfDimension) {
		opts = append(opts, WithDimension(conf.GetInt(ConfDimension)))
	}
	if conf.IsSet(ConfPrecision) {
		opts = append(opts, WithPrecision(conf.GetInt(ConfPrecision)))
	}
	if conf.IsSet(ConfLineWrap) {
		opts = append(opts, WithLineWrap(conf.GetInt(ConfLineWrap)))
	}
	if conf.IsSet(ConfCompression) {
		name := conf.GetString(ConfCompression)
		c, err := ParseCompression(name)
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", ConfCompression, err)
		}
		opts = append(opts, WithCompression(c))
	}
	if conf.IsSet(ConfConcurrency) {
		opts = append(opts, WithConcurrency(conf.GetInt(ConfConcurrency)))
	}
	tracer().Debugf("%d options from configuration", len(opts))
	return opts, nil
}

// ParseCompression maps a name ("none", "auto", "gzip", "zstd", "lz4") to a
// Compression. Case is ignored.
func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return Auto, nil
	case "none":
		return None, nil
	case "gzip", "gz":
		return Gzip, nil
	case "zstd", "zst":
		return Zstd, nil
	case "lz4":
		return LZ4, nil
	}
	return Auto, fmt.Errorf("unknown compression %q", name)
}

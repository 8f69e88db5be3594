package obj

import (
	"context"

	"github.com/npillmayer/nurbs"
	"golang.org/x/sync/errgroup"
)

// ReadCurves reads curves from several files in parallel. Results are in
// the order of paths. The first error cancels outstanding reads and is
// returned; no partial result is returned in that case.
func ReadCurves(ctx context.Context, paths []string, opts ...Option) ([]*nurbs.Curve, error) {
	return readAll(ctx, paths, opts, ReadCurve)
}

// ReadSurfaces reads surfaces from several files in parallel, see ReadCurves.
func ReadSurfaces(ctx context.Context, paths []string, opts ...Option) ([]*nurbs.Surface, error) {
	return readAll(ctx, paths, opts, ReadSurface)
}

func readAll[T any](ctx context.Context, paths []string, opts []Option,
	read func(string, ...Option) (T, error)) ([]T, error) {
	o := applyOptions(opts)
	results := make([]T, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := read(path, opts...)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	tracer().Infof("read %d files", len(paths))
	return results, nil
}

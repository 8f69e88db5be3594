/*
Package obj reads and writes NURBS curves and surfaces in the freeform
extension of the Wavefront OBJ format.

A curve file looks like this:

	v 0 0 0 1
	v 1 2 0 1
	v 3 2 0 1
	v 4 0 0 1
	cstype bspline
	deg 3
	curv 0 1 1 2 3 4
	parm u 0 0 0 0 1 1 1 1
	end

Records are lines starting with a keyword. A trailing backslash continues
a record on the next line. Recognized keywords are v, cstype, deg, curv,
surf, parm and end; everything else is skipped. Vertices are referenced
1-based by the curv/surf index list. The leading numbers of curv and surf
are the parameter domain bounds; on read they are discarded, as the full
knot vectors are given by the parm records.

Weights given in v records are kept only if the cstype record announces a
rational curve or surface ("cstype rat bspline"). For non-rational files
they are dropped on purpose and the resulting geometry has no weight
container. On write, weights are always emitted, using 1 for non-rational
geometry.

Reading and writing are single-pass and synchronous. No state is shared
between calls, therefore concurrent calls on distinct files are safe.

Files ending in .gz, .zst or .lz4 are transparently (de-)compressed,
see Compression.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package obj

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'nurbs.obj'
func tracer() tracing.Trace {
	return tracing.Select("nurbs.obj")
}

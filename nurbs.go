/*
Package nurbs holds value types for non-uniform rational B-spline curves
and surfaces, as consumed and produced by the OBJ codec in package obj.

The types are plain data holders: degree, knot vector(s), control points
and, for rational variants, weights. Evaluation of curves and surfaces
is not part of this package.

A curve or surface is rational if and only if it carries a weight
container. Non-rational values report a weight of 1.0 for every control
point.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package nurbs

import (
	"errors"
	"math"

	"github.com/npillmayer/schuko/tracing"
	"github.com/ungerik/go3d/float64/vec3"
)

// tracer writes to trace with key 'nurbs'
func tracer() tracing.Trace {
	return tracing.Select("nurbs")
}

var (
	// ErrDimension indicates a coordinate dimensionality outside of 1…3.
	ErrDimension = errors.New("coordinate dimension must be 1, 2 or 3")
	// ErrWeights indicates a weight container not matching the control points.
	ErrWeights = errors.New("weights do not match control points")
	// ErrNonPositiveWeight indicates a rational weight ≤ 0.
	ErrNonPositiveWeight = errors.New("rational weights must be positive")
)

// DefaultDim is the coordinate dimensionality used if none is given.
const DefaultDim = 3

// === Numeric Helpers =======================================================

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// VecEqual compares two points, component-wise within Epsilon.
func VecEqual(a, b vec3.T) bool {
	return Is0(a[0]-b[0]) && Is0(a[1]-b[1]) && Is0(a[2]-b[2])
}

// Project returns p with all components at positions ≥ dim set to 0.
func Project(p vec3.T, dim int) vec3.T {
	for k := dim; k < 3; k++ {
		p[k] = 0
	}
	return p
}

func checkDim(dim int) error {
	if dim < 1 || dim > 3 {
		return ErrDimension
	}
	return nil
}

func floatsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Is0(a[i] - b[i]) {
			return false
		}
	}
	return true
}

func checkPositive(w []float64) error {
	for _, x := range w {
		if x <= 0 {
			return ErrNonPositiveWeight
		}
	}
	return nil
}

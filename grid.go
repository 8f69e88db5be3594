package nurbs

import "fmt"

// Grid is a 2D container, addressable by (row, column). For surfaces rows
// run along u and columns along v. Storage is row-major.
//
// Accessing an element out of range panics, just as slice indexing does.
type Grid[T any] struct {
	rows, cols int
	data       []T
}

// NewGrid creates a grid of rows × cols zero values.
func NewGrid[T any](rows, cols int) Grid[T] {
	var g Grid[T]
	g.Resize(rows, cols)
	return g
}

// NewGridFilled creates a grid of rows × cols, each element set to v.
func NewGridFilled[T any](rows, cols int, v T) Grid[T] {
	g := NewGrid[T](rows, cols)
	for i := range g.data {
		g.data[i] = v
	}
	return g
}

// Resize changes the extents of g. Existing content is discarded.
// Negative extents are treated as 0.
func (g *Grid[T]) Resize(rows, cols int) {
	g.rows, g.cols = max(rows, 0), max(cols, 0)
	g.data = nil
	if g.rows > 0 && g.cols > 0 {
		g.data = make([]T, g.rows*g.cols)
	}
}

// Rows returns the row extent.
func (g Grid[T]) Rows() int {
	return g.rows
}

// Cols returns the column extent.
func (g Grid[T]) Cols() int {
	return g.cols
}

// Len returns rows × cols.
func (g Grid[T]) Len() int {
	return g.rows * g.cols
}

// At returns the element at (i, j).
func (g Grid[T]) At(i, j int) T {
	return g.data[g.offset(i, j)]
}

// Set replaces the element at (i, j).
func (g Grid[T]) Set(i, j int, v T) {
	g.data[g.offset(i, j)] = v
}

// Clone returns a deep copy of g.
func (g Grid[T]) Clone() Grid[T] {
	c := Grid[T]{rows: g.rows, cols: g.cols}
	if g.data != nil {
		c.data = append([]T(nil), g.data...)
	}
	return c
}

func (g Grid[T]) offset(i, j int) int {
	if i < 0 || i >= g.rows || j < 0 || j >= g.cols {
		panic(fmt.Sprintf("grid index (%d,%d) out of range [%d×%d]", i, j, g.rows, g.cols))
	}
	return i*g.cols + j
}

// Package coords provides an immutable two-dimensional vector used for chunk
// positions, tile positions and pixel offsets.
package coords

import (
	"fmt"
	"iter"
)

// Number is the set of component types a Coords can hold.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// Coords is a pair of components. All methods return new values.
type Coords[T Number] struct {
	X T
	Y T
}

// New returns Coords{x, y}.
func New[T Number](x, y T) Coords[T] {
	return Coords[T]{X: x, Y: y}
}

func (a Coords[T]) Add(b Coords[T]) Coords[T] {
	return Coords[T]{a.X + b.X, a.Y + b.Y}
}

func (a Coords[T]) Sub(b Coords[T]) Coords[T] {
	return Coords[T]{a.X - b.X, a.Y - b.Y}
}

// Mul multiplies componentwise.
func (a Coords[T]) Mul(b Coords[T]) Coords[T] {
	return Coords[T]{a.X * b.X, a.Y * b.Y}
}

// Scale multiplies both components by s.
func (a Coords[T]) Scale(s T) Coords[T] {
	return Coords[T]{a.X * s, a.Y * s}
}

// Div divides componentwise. Integer instantiations panic on a zero divisor,
// float instantiations produce ±Inf or NaN.
func (a Coords[T]) Div(b Coords[T]) Coords[T] {
	return Coords[T]{a.X / b.X, a.Y / b.Y}
}

// DivScalar divides both components by s, with the same zero policy as Div.
func (a Coords[T]) DivScalar(s T) Coords[T] {
	return Coords[T]{a.X / s, a.Y / s}
}

func (a Coords[T]) Neg() Coords[T] {
	return Coords[T]{-a.X, -a.Y}
}

func (a Coords[T]) Abs() Coords[T] {
	return Coords[T]{abs(a.X), abs(a.Y)}
}

// Less reports whether a sorts before b. It is true when a.Y < b.Y, and
// otherwise when a.X < b.X regardless of how the Y components compare. The
// relation is therefore not antisymmetric: (5,1) < (1,2) and (1,2) < (5,1)
// both hold. Do not use it with sort.Sort or slices.SortFunc.
func (a Coords[T]) Less(b Coords[T]) bool {
	if a.Y < b.Y {
		return true
	}
	if a.X < b.X {
		return true
	}
	return false
}

func (a Coords[T]) String() string {
	return fmt.Sprintf("(%v, %v)", a.X, a.Y)
}

// Range returns the coordinates of the grid [minX, maxX) x [minY, maxY),
// row by row: y in the outer loop, x in the inner one. A negative step walks
// down from min while the value stays above max. A zero step yields nothing.
func Range[T Number](minX, minY, maxX, maxY, stepX, stepY T) iter.Seq[Coords[T]] {
	return func(yield func(Coords[T]) bool) {
		if stepX == 0 || stepY == 0 {
			return
		}
		for y := minY; before(y, maxY, stepY); y += stepY {
			for x := minX; before(x, maxX, stepX); x += stepX {
				if !yield(Coords[T]{x, y}) {
					return
				}
			}
		}
	}
}

func before[T Number](v, end, step T) bool {
	if step > 0 {
		return v < end
	}
	return v > end
}

// Grid is Range with the minimum at (0, 0) and unit steps.
func Grid[T Number](maxX, maxY T) iter.Seq[Coords[T]] {
	return Range(0, 0, maxX, maxY, 1, 1)
}

func abs[T Number](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

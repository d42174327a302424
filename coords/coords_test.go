package coords_test

import (
	"iter"
	"math"
	"slices"
	"testing"

	"github.com/eak1mov/go-dynmap/coords"
	"github.com/google/go-cmp/cmp"
)

func TestArithmeticInt(t *testing.T) {
	values := []coords.Coords[int]{
		{X: 0, Y: 0},
		{X: 3, Y: -7},
		{X: -12, Y: 5},
		{X: 1 << 20, Y: -(1 << 20)},
	}
	for _, a := range values {
		for _, b := range values {
			if got := a.Add(b).Sub(b); got != a {
				t.Errorf("%v + %v - %v = %v, want = %v", a, b, b, got, a)
			}
			if got, want := a.Add(b), b.Add(a); got != want {
				t.Errorf("%v + %v = %v, want = %v", a, b, got, want)
			}
		}
		if got := a.Scale(1); got != a {
			t.Errorf("%v * 1 = %v", a, got)
		}
		if got := a.Mul(coords.New(1, 1)); got != a {
			t.Errorf("%v * (1, 1) = %v", a, got)
		}
		if got := a.Neg().Neg(); got != a {
			t.Errorf("-(-%v) = %v", a, got)
		}
		abs := a.Abs()
		if abs.X < 0 || abs.Y < 0 || (abs.X != a.X && abs.X != -a.X) || (abs.Y != a.Y && abs.Y != -a.Y) {
			t.Errorf("abs(%v) = %v", a, abs)
		}
	}
}

func TestArithmeticFloat(t *testing.T) {
	a := coords.New(-1.5, 2.25)
	b := coords.New(0.5, -4.0)

	if got := a.Add(b).Sub(b); got != a {
		t.Errorf("%v + %v - %v = %v", a, b, b, got)
	}
	if got, want := a.Abs(), coords.New(1.5, 2.25); got != want {
		t.Errorf("abs(%v) = %v, want = %v", a, got, want)
	}
	if got, want := a.Mul(b), coords.New(-0.75, -9.0); got != want {
		t.Errorf("%v * %v = %v, want = %v", a, b, got, want)
	}
	if got, want := a.DivScalar(2), coords.New(-0.75, 1.125); got != want {
		t.Errorf("%v / 2 = %v, want = %v", a, got, want)
	}
	if got, want := a.Div(b), coords.New(-3.0, -0.5625); got != want {
		t.Errorf("%v / %v = %v, want = %v", a, b, got, want)
	}

	inf := a.DivScalar(0)
	if !math.IsInf(inf.X, -1) || !math.IsInf(inf.Y, 1) {
		t.Errorf("%v / 0 = %v, want = (-Inf, +Inf)", a, inf)
	}
}

func TestIntegerDivision(t *testing.T) {
	if got, want := coords.New(7, -9).Div(coords.New(2, 3)), coords.New(3, -3); got != want {
		t.Errorf("Div = %v, want = %v", got, want)
	}
	if got, want := coords.New(64, 32).DivScalar(32), coords.New(2, 1); got != want {
		t.Errorf("DivScalar = %v, want = %v", got, want)
	}

	defer func() {
		if recover() == nil {
			t.Errorf("integer division by zero did not panic")
		}
	}()
	coords.New(1, 1).DivScalar(0)
}

func TestLess(t *testing.T) {
	a := coords.New(5, 1)
	b := coords.New(1, 2)

	// Y decides first, then X is compared on its own.
	if !a.Less(b) {
		t.Errorf("%v < %v = false, want = true", a, b)
	}
	if !b.Less(a) {
		t.Errorf("%v < %v = false, want = true", b, a)
	}

	for _, tc := range []struct {
		a, b coords.Coords[int]
		want bool
	}{
		{coords.New(0, 0), coords.New(0, 0), false},
		{coords.New(0, 0), coords.New(0, 1), true},
		{coords.New(0, 1), coords.New(0, 0), false},
		{coords.New(0, 5), coords.New(1, 5), true},
		{coords.New(1, 5), coords.New(0, 5), false},
		{coords.New(2, 3), coords.New(1, 3), false},
	} {
		if got := tc.a.Less(tc.b); got != tc.want {
			t.Errorf("%v < %v = %v, want = %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestString(t *testing.T) {
	if got, want := coords.New(3, -2).String(), "(3, -2)"; got != want {
		t.Errorf("String() = %q, want = %q", got, want)
	}
}

func TestRange(t *testing.T) {
	want := []coords.Coords[int]{
		{X: 1, Y: 10}, {X: 3, Y: 10},
		{X: 1, Y: 13}, {X: 3, Y: 13},
	}
	if diff := cmp.Diff(want, slices.Collect(coords.Range(1, 10, 5, 15, 2, 3))); diff != "" {
		t.Errorf("Range mismatch (-want+got):\n%v", diff)
	}

	// Non-square bounds use maxX for the inner loop.
	want = []coords.Coords[int]{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0},
	}
	if diff := cmp.Diff(want, slices.Collect(coords.Grid(3, 1))); diff != "" {
		t.Errorf("Grid mismatch (-want+got):\n%v", diff)
	}

	want = []coords.Coords[int]{
		{X: 5, Y: 2}, {X: 3, Y: 2},
		{X: 5, Y: 1}, {X: 3, Y: 1},
	}
	if diff := cmp.Diff(want, slices.Collect(coords.Range(5, 2, 1, 0, -2, -1))); diff != "" {
		t.Errorf("descending Range mismatch (-want+got):\n%v", diff)
	}

	for _, seq := range []iter.Seq[coords.Coords[int]]{
		coords.Range(0, 0, 4, 4, 0, 1),
		coords.Range(0, 0, 4, 4, -1, 1),
		coords.Range(4, 0, 0, 4, 1, 1),
	} {
		if got := slices.Collect(seq); len(got) != 0 {
			t.Errorf("Range = %v, want empty", got)
		}
	}
}

func TestGridRestartable(t *testing.T) {
	seq := coords.Grid(4, 4)
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second iteration mismatch (-first+second):\n%v", diff)
	}
	if len(first) != 16 {
		t.Errorf("len = %v, want = 16", len(first))
	}
	for i := 1; i < len(first); i++ {
		prev, cur := first[i-1], first[i]
		if cur.Y < prev.Y || (cur.Y == prev.Y && cur.X <= prev.X) {
			t.Errorf("grid order broken at %v: %v after %v", i, cur, prev)
		}
	}

	var partial []coords.Coords[int]
	for c := range seq {
		if c.Y == 1 {
			break
		}
		partial = append(partial, c)
	}
	if len(partial) != 4 {
		t.Errorf("early break collected %v values, want = 4", len(partial))
	}
}

package graphics

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// approxPoints compares points within the tolerance used throughout the
// geometry tests.
var approxPoints = cmp.Comparer(func(a, b Point) bool {
	const tolerance = 1e-3
	return math.Abs(float64(a.X-b.X)) < tolerance && math.Abs(float64(a.Y-b.Y)) < tolerance
})

func newTestPath() *Path {
	return NewPath(800, 800)
}

func TestPathCoordinateTransform(t *testing.T) {
	p := newTestPath()
	// PDF origin is the bottom left; internally that corner is
	// (-width/2, height/2).
	assert.Equal(t, Pt(-400, 400), p.transform(0, 0))
	assert.Equal(t, Pt(-390, 390), p.transform(10, 10))
	assert.Equal(t, Pt(400, -400), p.transform(800, 800))

	// The y leg is an involution: mapping twice restores the input.
	x, y := float32(123.5), float32(-42.25)
	once := p.transform(x, y)
	twice := p.transform(once.X, once.Y)
	assert.InDelta(t, float64(y), float64(twice.Y), 1e-6)

	// With no horizontal translation the x leg is the identity.
	zero := NewPath(0, 800)
	assert.Equal(t, x, zero.transform(x, y).X)
}

func TestPathMoveLineEnd(t *testing.T) {
	p := newTestPath()
	require.NoError(t, p.MoveTo(0, 0))
	require.NoError(t, p.LineTo(10, 10))
	require.NoError(t, p.Close())

	events, err := p.Build()
	require.NoError(t, err)
	want := []PathEvent{
		Begin{At: Pt(-400, 400)},
		Line{From: Pt(-400, 400), To: Pt(-390, 390)},
		End{First: Pt(-400, 400), Last: Pt(-390, 390), Close: true},
	}
	assert.Empty(t, cmp.Diff(want, events, approxPoints))
}

func TestPathChainedLinesAdvanceCurrent(t *testing.T) {
	p := newTestPath()
	require.NoError(t, p.MoveTo(0, 0))
	require.NoError(t, p.LineTo(10, 10))
	require.NoError(t, p.LineTo(20, 20))

	events, err := p.Build()
	require.NoError(t, err)
	want := []PathEvent{
		Begin{At: Pt(-400, 400)},
		Line{From: Pt(-400, 400), To: Pt(-390, 390)},
		Line{From: Pt(-390, 390), To: Pt(-380, 380)},
		End{First: Pt(-400, 400), Last: Pt(-380, 380), Close: false},
	}
	assert.Empty(t, cmp.Diff(want, events, approxPoints))
}

func TestPathMoveToEndsPriorSubPath(t *testing.T) {
	p := newTestPath()
	require.NoError(t, p.MoveTo(0, 0))
	require.NoError(t, p.MoveTo(50, 50))
	require.NoError(t, p.LineTo(60, 60))

	events, err := p.Build()
	require.NoError(t, err)
	require.Len(t, events, 5)
	first, ok := events[1].(End)
	require.True(t, ok)
	assert.False(t, first.Close)
	_, ok = events[2].(Begin)
	require.True(t, ok)
}

func TestPathLineWithoutMoveBeginsAtPageCorner(t *testing.T) {
	p := newTestPath()
	require.NoError(t, p.LineTo(10, 10))
	require.NoError(t, p.Close())

	events, err := p.Build()
	require.NoError(t, err)
	want := []PathEvent{
		Begin{At: Pt(-400, 400)},
		Line{From: Pt(-400, 400), To: Pt(-390, 390)},
		End{First: Pt(-400, 400), Last: Pt(-390, 390), Close: true},
	}
	assert.Empty(t, cmp.Diff(want, events, approxPoints))
}

func TestPathThinLineFillable(t *testing.T) {
	p := newTestPath()
	require.NoError(t, p.LineTo(10, 10))
	require.NoError(t, p.Close())
	p.MakeFillableIfNeeded()

	events, err := p.Build()
	require.NoError(t, err)

	p1 := Pt(-389.646, 390.354)
	p2 := Pt(-390.354, 389.646)
	p3 := Pt(-400.354, 399.646)
	p4 := Pt(-399.646, 400.354)
	want := []PathEvent{
		Begin{At: p1},
		Line{From: p1, To: p2},
		Line{From: p2, To: p3},
		Line{From: p3, To: p4},
		End{First: p1, Last: p4, Close: true},
	}
	assert.Empty(t, cmp.Diff(want, events, approxPoints))
}

func TestPathMakeFillableIsIdempotent(t *testing.T) {
	p := newTestPath()
	require.NoError(t, p.LineTo(10, 10))
	require.NoError(t, p.Close())
	p.MakeFillableIfNeeded()
	once := append([]PathEvent(nil), p.events...)
	p.MakeFillableIfNeeded()
	assert.Empty(t, cmp.Diff(once, p.events, approxPoints))
}

func TestPathMakeFillableDot(t *testing.T) {
	p := newTestPath()
	require.NoError(t, p.MoveTo(10, 10))
	require.NoError(t, p.LineTo(10, 10))
	require.NoError(t, p.Close())
	p.MakeFillableIfNeeded()

	events, err := p.Build()
	require.NoError(t, err)
	require.Len(t, events, 5)
	// The zero-length segment was perturbed, so every edge has positive
	// length.
	line := events[1].(Line)
	assert.Greater(t, Hypotenuse(line.From, line.To), float32(0))
}

func TestPathMakeFillableLeavesOtherSubPathsAlone(t *testing.T) {
	p := newTestPath()
	require.NoError(t, p.MoveTo(0, 0))
	require.NoError(t, p.LineTo(10, 0))
	require.NoError(t, p.LineTo(10, 10))
	require.NoError(t, p.Close())
	before := append([]PathEvent(nil), p.events...)
	p.MakeFillableIfNeeded()
	assert.Empty(t, cmp.Diff(before, p.events, approxPoints))
}

func TestPathMakeFillableMultipleThinSubPaths(t *testing.T) {
	p := newTestPath()
	require.NoError(t, p.MoveTo(0, 0))
	require.NoError(t, p.LineTo(10, 10))
	require.NoError(t, p.Close())
	require.NoError(t, p.MoveTo(100, 100))
	require.NoError(t, p.LineTo(120, 100))
	require.NoError(t, p.Close())
	p.MakeFillableIfNeeded()

	events, err := p.Build()
	require.NoError(t, err)
	require.Len(t, events, 10)
	assertWellFormed(t, events)
	end1 := events[4].(End)
	end2 := events[9].(End)
	assert.True(t, end1.Close)
	assert.True(t, end2.Close)
}

func TestPathRect(t *testing.T) {
	p := newTestPath()
	require.NoError(t, p.Rect(0, 0, 100, 50))

	events, err := p.Build()
	require.NoError(t, err)
	want := []PathEvent{
		Begin{At: Pt(-400, 400)},
		Line{From: Pt(-400, 400), To: Pt(-300, 400)},
		Line{From: Pt(-300, 400), To: Pt(-300, 350)},
		Line{From: Pt(-300, 350), To: Pt(-400, 350)},
		End{First: Pt(-400, 400), Last: Pt(-400, 350), Close: false},
	}
	assert.Empty(t, cmp.Diff(want, events, approxPoints))
}

func TestPathRectDegenerate(t *testing.T) {
	degenerate := newTestPath()
	require.NoError(t, degenerate.Rect(0, 0, 0, 0))
	got, err := degenerate.Build()
	require.NoError(t, err)

	unit := newTestPath()
	require.NoError(t, unit.Rect(0, 0, 1, 1))
	want, err := unit.Build()
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(want, got, approxPoints))
}

func TestPathBuildConsumes(t *testing.T) {
	p := newTestPath()
	require.NoError(t, p.MoveTo(0, 0))
	require.NoError(t, p.LineTo(10, 10))

	events, err := p.Build()
	require.NoError(t, err)
	assert.NotEmpty(t, events)
	assertWellFormed(t, events)

	again, err := p.Build()
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestPathCubicEvents(t *testing.T) {
	p := newTestPath()
	require.NoError(t, p.MoveTo(0, 0))
	require.NoError(t, p.CubicBezierTo(1, 1, 2, 2, 3, 3))
	require.NoError(t, p.CubicBezierToV(4, 4, 5, 5))

	events, err := p.Build()
	require.NoError(t, err)
	require.Len(t, events, 4)

	first := events[1].(Cubic)
	assert.Empty(t, cmp.Diff(Pt(-400, 400), first.From, approxPoints))
	assert.Empty(t, cmp.Diff(Pt(-397, 397), first.To, approxPoints))

	second := events[2].(Cubic)
	// The v form takes the current point as its first control point.
	assert.Empty(t, cmp.Diff(first.To, second.Ctrl1, approxPoints))
	assert.Empty(t, cmp.Diff(Pt(-395, 395), second.To, approxPoints))
}

// assertWellFormed checks the sub-path invariant: every sub-path is one
// Begin, segments, one End.
func assertWellFormed(t *testing.T, events []PathEvent) {
	t.Helper()
	open := false
	for i, event := range events {
		switch event.(type) {
		case Begin:
			require.False(t, open, "event %d: Begin inside an open sub-path", i)
			open = true
		case End:
			require.True(t, open, "event %d: End without Begin", i)
			open = false
		default:
			require.True(t, open, "event %d: segment outside a sub-path", i)
		}
	}
	require.False(t, open, "sequence ended with an open sub-path")
}

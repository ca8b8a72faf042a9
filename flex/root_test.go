package flex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, w, h float64, opts Options, items ...Item) map[string]Box {
	t.Helper()
	r := NewRoot(w, h, opts)
	for _, it := range items {
		require.NoError(t, r.AddChild(it))
	}
	r.Build()
	return r.Layout()
}

func TestJustifyRow(t *testing.T) {
	items := []Item{{ID: "a", Basis: 10, Cross: 4}, {ID: "b", Basis: 20, Cross: 6}}
	cases := []struct {
		justify Justify
		ax, bx  float64
	}{
		{JustifyStart, 0, 10},
		{JustifyEnd, 70, 80},
		{JustifyCenter, 35, 45},
		{JustifySpaceBetween, 0, 80},
		{JustifySpaceAround, 17.5, 62.5},
		{JustifySpaceEvenly, 70.0 / 3, 10 + 140.0/3},
	}
	for _, tc := range cases {
		t.Run(tc.justify.String(), func(t *testing.T) {
			got := build(t, 100, 10, Options{Justify: tc.justify, Align: AlignStart}, items...)
			assert.InDelta(t, tc.ax, got["a"].Position.X, 1e-9)
			assert.InDelta(t, tc.bx, got["b"].Position.X, 1e-9)
			assert.InDelta(t, 0, got["a"].Position.Y, 1e-9)
			assert.InDelta(t, 10, got["a"].Width, 1e-9)
			assert.InDelta(t, 4, got["a"].Height, 1e-9)
		})
	}
}

func TestColumnGapAndAlign(t *testing.T) {
	got := build(t, 10, 40, Options{Direction: Column, Justify: JustifyStart, Align: AlignCenter, RowGap: 2},
		Item{ID: "a", Basis: 5, Cross: 4}, Item{ID: "b", Basis: 7, Cross: 10})
	assert.Equal(t, Box{Position: Position{X: 3, Y: 0}, Width: 4, Height: 5}, got["a"])
	assert.Equal(t, Box{Position: Position{X: 0, Y: 7}, Width: 10, Height: 7}, got["b"])
}

func TestAlignEndAndStretch(t *testing.T) {
	end := build(t, 20, 10, Options{Align: AlignEnd}, Item{ID: "a", Basis: 5, Cross: 4})
	assert.InDelta(t, 6, end["a"].Position.Y, 1e-9)

	stretch := build(t, 20, 10, Options{Align: AlignStretch}, Item{ID: "a", Basis: 5, Cross: 4})
	assert.InDelta(t, 0, stretch["a"].Position.Y, 1e-9)
	assert.InDelta(t, 10, stretch["a"].Height, 1e-9)
}

func TestRowReverseMirrorsPositions(t *testing.T) {
	got := build(t, 100, 10, Options{Direction: RowReverse, Justify: JustifyStart, Align: AlignStart},
		Item{ID: "a", Basis: 10, Cross: 1}, Item{ID: "b", Basis: 20, Cross: 1})
	assert.InDelta(t, 90, got["a"].Position.X, 1e-9)
	assert.InDelta(t, 70, got["b"].Position.X, 1e-9)
}

func TestNegativeFreeSpaceFallbacks(t *testing.T) {
	items := []Item{{ID: "a", Basis: 10}, {ID: "b", Basis: 10}}
	between := build(t, 10, 5, Options{Justify: JustifySpaceBetween}, items...)
	assert.InDelta(t, 0, between["a"].Position.X, 1e-9)
	assert.InDelta(t, 10, between["b"].Position.X, 1e-9)

	around := build(t, 10, 5, Options{Justify: JustifySpaceAround}, items...)
	assert.InDelta(t, -5, around["a"].Position.X, 1e-9)
}

func TestSingleItemSpaceBetweenStartsAtZero(t *testing.T) {
	got := build(t, 50, 5, Options{Justify: JustifySpaceBetween}, Item{ID: "a", Basis: 10})
	assert.InDelta(t, 0, got["a"].Position.X, 1e-9)
}

func TestDuplicateItemRejected(t *testing.T) {
	r := NewRoot(10, 10, Options{})
	require.NoError(t, r.AddChild(Item{ID: "a"}))
	require.ErrorIs(t, r.AddChild(Item{ID: "a"}), ErrDuplicateItem)
	assert.Equal(t, 1, r.Len())
}

func TestDeterministic(t *testing.T) {
	opts := Options{Justify: JustifySpaceAround, Align: AlignCenter, ColumnGap: 1.5}
	items := []Item{{ID: "x", Basis: 3, Cross: 2}, {ID: "y", Basis: 4, Cross: 1}, {ID: "z", Basis: 1, Cross: 5}}
	first := build(t, 30, 8, opts, items...)
	second := build(t, 30, 8, opts, items...)
	assert.Equal(t, first, second)
}

func TestParseKeywords(t *testing.T) {
	d, err := ParseDirection(" Column ")
	require.NoError(t, err)
	assert.Equal(t, Column, d)

	j, err := ParseJustify("flex-end")
	require.NoError(t, err)
	assert.Equal(t, JustifyEnd, j)

	a, err := ParseAlign("")
	require.NoError(t, err)
	assert.Equal(t, AlignStretch, a)

	_, err = ParseDirection("diagonal")
	assert.ErrorIs(t, err, ErrInvalidOption)
	_, err = ParseJustify("space-sideways")
	assert.ErrorIs(t, err, ErrInvalidOption)
	_, err = ParseAlign("baseline")
	assert.ErrorIs(t, err, ErrInvalidOption)
}

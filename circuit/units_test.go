package circuit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestToNumberPolicy 覆盖尺寸字段的数值化规则：数字原样、字符串取前导数字、其余为 0。
func TestToNumberPolicy(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want float64
	}{
		{"number", 12.5, 12.5},
		{"int", 3, 3},
		{"bare string", "7", 7},
		{"unit suffix", "10mm", 10},
		{"spaced unit", " 2.5 in", 2.5},
		{"exponent", "1e2mil", 100},
		{"leading dot", ".5mm", 0.5},
		{"negative", "-4mm", -4},
		{"trailing garbage", "3mm)x", 3},
		{"no number", "mm10", 0},
		{"empty string", "", 0},
		{"nil", nil, 0},
		{"bool", true, 0},
		{"object", map[string]any{"x": 1.0}, 0},
		{"nan", math.NaN(), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, ToNumber(tc.in), 1e-12)
		})
	}
}

func TestParseDimensionStringKeepsUnit(t *testing.T) {
	d := ParseDimensionString("0.5in")
	assert.Equal(t, UnitIN, d.Unit)
	assert.InDelta(t, 0.5, d.Value, 1e-12)
	assert.InDelta(t, 12.7, d.MM(), 1e-9)
	assert.Equal(t, "0.5in", d.Text)

	cm := ParseDimensionString("2cm")
	assert.InDelta(t, 20, cm.MM(), 1e-9)

	unknown := ParseDimensionString("3furlong")
	assert.Equal(t, UnitNone, unknown.Unit)
	assert.InDelta(t, 3, unknown.MM(), 1e-12)
}

func TestDimensionKnown(t *testing.T) {
	assert.False(t, Dimension{}.Known())
	assert.False(t, ParseDimension(nil).Known())
	assert.False(t, Num(0).Known())
	assert.False(t, Num(-1).Known())
	assert.True(t, Num(0.1).Known())
	assert.True(t, ParseDimension("10mm").Known())
}

func TestUnitToString(t *testing.T) {
	for _, u := range []Unit{UnitMM, UnitCM, UnitIN, UnitMil, UnitPT} {
		require.Equal(t, u, unitFromString(UnitToString(u)))
	}
	assert.Equal(t, "", UnitToString(UnitNone))
}

package dsl_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/pcbflex/circuit"
	"github.com/ByLCY/pcbflex/dsl"
)

const sampleDSL = `
// 两个元件与一个电源子电路并列
board main width 12mm height 10mm {
  resistor R1
  capacitor C1 at 3, 4

  group power subcircuit width 10mm height 10mm {
    chip U1 size 2 2 at -1, 1; resistor R2 at 2, 0
  }
}
`

func TestParseDocument(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	require.NoError(t, err)
	require.NotNil(t, doc.Root)

	root := doc.Root
	assert.Equal(t, "board", root.Kind)
	assert.Equal(t, "main", root.Name)
	require.Len(t, root.Attrs, 2)
	require.NotNil(t, root.Attrs[0].Width)
	assert.Equal(t, "12mm", *root.Attrs[0].Width)

	require.Len(t, root.Body, 3)
	assert.Equal(t, "resistor", root.Body[0].Part.Kind)
	assert.Equal(t, "C1", root.Body[1].Part.Name)
	require.NotNil(t, root.Body[1].Part.Attrs[0].At)
	assert.Equal(t, "3", root.Body[1].Part.Attrs[0].At.X)
	assert.Equal(t, "4", root.Body[1].Part.Attrs[0].At.Y)

	group := root.Body[2].Group
	require.NotNil(t, group)
	assert.Equal(t, "power", group.Name)
	assert.True(t, group.Attrs[0].Subcircuit)
	require.Len(t, group.Body, 2)
	assert.Equal(t, "U1", group.Body[0].Part.Name)
	assert.Equal(t, "2", group.Body[0].Part.Attrs[0].Size.Width)
	assert.Equal(t, "-1", group.Body[0].Part.Attrs[1].At.X)
}

func TestParseQuotedNames(t *testing.T) {
	doc, err := dsl.Parse(strings.NewReader(`group "sensor block" subcircuit { led "D 1" }`))
	require.NoError(t, err)
	assert.Equal(t, "sensor block", doc.Root.Name)
	assert.Equal(t, "D 1", doc.Root.Body[0].Part.Name)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"missing body":  `board main`,
		"unclosed body": "board main {\n resistor R1\n",
		"bad attribute": `board main { resistor R1 width }`,
		"two roots":     "board a {}\nboard b {}",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := dsl.ParseString(input)
			assert.Error(t, err)
		})
	}
}

func TestCompileLinksElements(t *testing.T) {
	elements, err := dsl.Load(sampleDSL)
	require.NoError(t, err)

	idx := circuit.NewIndex(elements)

	bi, ok := idx.Lookup(circuit.TypePcbBoard, "pcb_board_0")
	require.True(t, ok)
	board := elements[bi]
	assert.Equal(t, 12.0, board.Width.Value)
	assert.Equal(t, 10.0, board.Height.Value)
	assert.Equal(t, "subcircuit_source_group_0", board.SubcircuitID)

	gi, ok := idx.PcbGroupForSource("source_group_1")
	require.True(t, ok)
	group := elements[gi]
	assert.True(t, group.IsSubcircuit)
	assert.Equal(t, "subcircuit_source_group_1", group.SubcircuitID)
	assert.True(t, group.Width.Known())

	sgi, ok := idx.SourceGroupForSubcircuit("subcircuit_source_group_1")
	require.True(t, ok)
	assert.Equal(t, "source_group_0", elements[sgi].ParentSourceGroupID)
	assert.Equal(t, "subcircuit_source_group_0", elements[sgi].ParentSubcircuitID)

	// U1 位于分组内，其 pcb_component 引用该 pcb_group。
	ci, ok := idx.PcbComponentForSource("source_component_2")
	require.True(t, ok)
	u1 := elements[ci]
	assert.Equal(t, group.ID, u1.PcbGroupID)
	assert.Equal(t, 2.0, u1.Width.Value)
	assert.Equal(t, circuit.Point{X: -1, Y: 1}, *u1.Center)
	assert.Len(t, idx.OwnedBy(u1.ID), 2)
}

func TestCompileDefaultsAndAutoPlacement(t *testing.T) {
	elements, err := dsl.Load(`board b { resistor R1; resistor R2; widget W1 }`)
	require.NoError(t, err)

	var comps []circuit.Element
	for _, e := range elements {
		if e.Type == circuit.TypePcbComponent {
			comps = append(comps, e)
		}
	}
	require.Len(t, comps, 3)
	assert.Equal(t, 1.0, comps[0].Width.Value)
	assert.Equal(t, 0.5, comps[0].Height.Value)
	assert.Equal(t, 1.0, comps[2].Height.Value)

	// 自动摆放的相邻元件间隔 1mm。
	assert.InDelta(t, 0.5, comps[0].Center.X, 1e-9)
	assert.InDelta(t, 2.5, comps[1].Center.X, 1e-9)
	assert.InDelta(t, 4.5, comps[2].Center.X, 1e-9)

	// 未给出板尺寸，留给布局推断。
	assert.False(t, elements[1].Width.Present)
}

func TestCompileGroupCenterFromMembers(t *testing.T) {
	elements, err := dsl.Load(`group g subcircuit { resistor R1 size 2 2 at 0, 0; resistor R2 size 2 2 at 4, 2 }`)
	require.NoError(t, err)
	g := elements[1]
	require.Equal(t, circuit.TypePcbGroup, g.Type)
	require.NotNil(t, g.Center)
	assert.Equal(t, circuit.Point{X: 2, Y: 1}, *g.Center)
}

func TestCompileConvertsUnits(t *testing.T) {
	elements, err := dsl.Load(`board b width 1in height 1cm { }`)
	require.NoError(t, err)
	assert.InDelta(t, 25.4, elements[1].Width.Value, 1e-9)
	assert.InDelta(t, 10, elements[1].Height.Value, 1e-9)
}

func TestCompileRejectsNestedBoard(t *testing.T) {
	_, err := dsl.Load("board a {\n  board b { }\n}")
	require.ErrorIs(t, err, dsl.ErrCompile)
}

func TestCompileIsDeterministic(t *testing.T) {
	a, err := dsl.Load(sampleDSL)
	require.NoError(t, err)
	b, err := dsl.Load(sampleDSL)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

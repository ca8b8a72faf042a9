package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func footprint() []Element {
	return []Element{
		{Type: TypePcbComponent, ID: "pcb_component_0", Center: &Point{X: 1, Y: 1}, Width: Num(2), Height: Num(1)},
		{Type: TypePcbSmtPad, ID: "pcb_smtpad_0", PcbComponentID: "pcb_component_0", X: ptr(0.5), Y: ptr(1)},
		{Type: TypePcbSmtPad, ID: "pcb_smtpad_1", PcbComponentID: "pcb_component_0", X: ptr(1.5), Y: ptr(1)},
		{Type: TypePcbComponent, ID: "pcb_component_1", Center: &Point{X: -3, Y: 0}, Width: Num(1), Height: Num(1)},
		{Type: "pcb_trace", ID: "pcb_trace_0"},
	}
}

func TestTranslateMovesOwnedGeometry(t *testing.T) {
	elements := footprint()
	idx := NewIndex(elements)

	Translate(elements, idx, 0, Point{X: 2, Y: -1})

	assert.Equal(t, Point{X: 3, Y: 0}, *elements[0].Center)
	assert.InDelta(t, 2.5, *elements[1].X, 1e-12)
	assert.InDelta(t, 0, *elements[1].Y, 1e-12)
	assert.InDelta(t, 3.5, *elements[2].X, 1e-12)
	assert.Equal(t, Point{X: -3, Y: 0}, *elements[3].Center, "unrelated component must stay")
	assert.False(t, elements[4].Positional())
}

func TestTranslateMovesRoutesAndEndpoints(t *testing.T) {
	elements, err := Unmarshal([]byte(`[
  {"type": "pcb_component", "pcb_component_id": "pc", "center": {"x": 5, "y": 3}, "width": 2, "height": 2},
  {"type": "pcb_silkscreen_path", "pcb_silkscreen_path_id": "sp", "pcb_component_id": "pc", "route": [{"x": 4, "y": 2}, {"x": 6, "y": 4}]},
  {"type": "pcb_silkscreen_line", "pcb_silkscreen_line_id": "sl", "pcb_component_id": "pc", "x1": 4, "y1": 2, "x2": 6, "y2": 2},
  {"type": "pcb_silkscreen_text", "pcb_silkscreen_text_id": "st", "pcb_component_id": "pc", "anchor_position": {"x": 5, "y": 4.5}, "text": "R1"},
  {"type": "pcb_fabrication_note_path", "pcb_fabrication_note_path_id": "fp", "pcb_component_id": "pc", "points": [{"x": 5, "y": "1mm"}], "position": {"x": 1, "y": 1}}
]`))
	require.NoError(t, err)
	original := Clone(elements)

	Translate(elements, NewIndex(elements), 0, Point{X: -5, Y: -3})

	assert.Equal(t, Point{}, *elements[0].Center)
	assert.Equal(t, []any{
		map[string]any{"x": -1.0, "y": -1.0},
		map[string]any{"x": 1.0, "y": 1.0},
	}, elements[1].Extra["route"])
	assert.Equal(t, -1.0, elements[2].Extra["x1"])
	assert.Equal(t, -1.0, elements[2].Extra["y1"])
	assert.Equal(t, 1.0, elements[2].Extra["x2"])
	assert.Equal(t, -1.0, elements[2].Extra["y2"])
	assert.Equal(t, map[string]any{"x": 0.0, "y": 1.5}, elements[3].Extra["anchor_position"])
	assert.Equal(t, "R1", elements[3].Extra["text"])
	// 非数值坐标保持原样。
	assert.Equal(t, []any{map[string]any{"x": 0.0, "y": "1mm"}}, elements[4].Extra["points"])
	assert.Equal(t, map[string]any{"x": -4.0, "y": -2.0}, elements[4].Extra["position"])

	assert.Equal(t, []any{
		map[string]any{"x": 4.0, "y": 2.0},
		map[string]any{"x": 6.0, "y": 4.0},
	}, original[1].Extra["route"], "clone must not share route points")
}

func TestBoundsOf(t *testing.T) {
	elements := footprint()
	b, ok := BoundsOf([]*Element{&elements[0], &elements[3]})
	require.True(t, ok)
	assert.InDelta(t, -3.5, b.MinX, 1e-12)
	assert.InDelta(t, 2, b.MaxX, 1e-12)
	assert.InDelta(t, -0.5, b.MinY, 1e-12)
	assert.InDelta(t, 1.5, b.MaxY, 1e-12)
	assert.InDelta(t, 5.5, b.Width(), 1e-12)
	assert.InDelta(t, 2, b.Height(), 1e-12)
	assert.Equal(t, Point{X: -0.75, Y: 0.5}, b.Center())

	_, ok = BoundsOf([]*Element{&elements[4]})
	assert.False(t, ok)
}

func TestIndexLookups(t *testing.T) {
	elements := []Element{
		{Type: TypeSourceGroup, ID: "source_group_0", SubcircuitID: "sub_0"},
		{Type: TypePcbGroup, ID: "pcb_group_0", SourceGroupID: "source_group_0"},
		{Type: TypePcbComponent, ID: "pcb_component_0", SourceComponentID: "source_component_0"},
		{Type: TypePcbComponent, ID: "pcb_component_0", SourceComponentID: "source_component_9"},
		{Type: TypePcbBoard, ID: "pcb_board_0"},
	}
	idx := NewIndex(elements)

	i, ok := idx.Lookup(TypePcbComponent, "pcb_component_0")
	require.True(t, ok)
	assert.Equal(t, 2, i, "first occurrence wins")

	i, ok = idx.PcbGroupForSource("source_group_0")
	require.True(t, ok)
	assert.Equal(t, 1, i)

	i, ok = idx.SourceGroupForSubcircuit("sub_0")
	require.True(t, ok)
	assert.Equal(t, 0, i)

	_, ok = idx.PcbComponentForSource("missing")
	assert.False(t, ok)
	assert.Equal(t, []int{4}, idx.Boards())
	assert.Equal(t, []int{1}, idx.PcbGroups())
}

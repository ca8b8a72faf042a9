package canvasrenderer

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/pcbflex/circuit"
	"github.com/ByLCY/pcbflex/dsl"
	"github.com/ByLCY/pcbflex/renderer"
)

func sampleBoard(t *testing.T) []circuit.Element {
	t.Helper()
	elements, err := dsl.Load(`
board main width 20 height 10 {
  resistor R1 at -5, 0
  group power width 6 height 4 at 4, 0 {
    capacitor C1 at 3, 0
    capacitor C2 at 5, 0
  }
}`)
	require.NoError(t, err)
	return elements
}

func TestDrawSizesCanvasToBoard(t *testing.T) {
	r := NewRenderer(Options{Margin: 1})
	c, err := r.Draw(sampleBoard(t))
	require.NoError(t, err)

	w, h := c.Size()
	assert.InDelta(t, 22, w, 1e-9)
	assert.InDelta(t, 12, h, 1e-9)
}

func TestRenderSVG(t *testing.T) {
	data, err := NewRenderer(Options{Format: renderer.FormatSVG}).Render(sampleBoard(t))
	require.NoError(t, err)
	s := string(data)
	assert.True(t, strings.Contains(s, "<svg"), "missing svg root")
	assert.Contains(t, s, "<path")
}

func TestRenderPDF(t *testing.T) {
	data, err := NewRenderer(Options{Format: renderer.FormatPDF}).Render(sampleBoard(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRenderPNGUsesResolution(t *testing.T) {
	data, err := NewRenderer(Options{Format: renderer.FormatPNG, Margin: 0, DPMM: 4}).Render(sampleBoard(t))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.InDelta(t, 80, img.Bounds().Dx(), 1)
	assert.InDelta(t, 40, img.Bounds().Dy(), 1)
}

func TestRenderRejectsEmptyInput(t *testing.T) {
	_, err := NewRenderer(Options{}).Render(nil)
	assert.Error(t, err)

	// 没有尺寸或位置的元素不绘制。
	_, err = NewRenderer(Options{}).Render([]circuit.Element{{Type: circuit.TypePcbBoard, ID: "b"}})
	assert.Error(t, err)
}

func TestShapeSkipsUnsizedElements(t *testing.T) {
	center := circuit.Point{}
	assert.Nil(t, shape(&circuit.Element{Type: circuit.TypePcbComponent, Center: &center}))
	assert.Nil(t, shape(&circuit.Element{Type: circuit.TypeSourceGroup}))
	assert.NotNil(t, shape(&circuit.Element{
		Type:   circuit.TypePcbSmtPad,
		Center: &center,
		Extra:  map[string]any{"shape": "circle", "radius": 0.3},
	}))
}

func TestNewRendererDefaults(t *testing.T) {
	r := NewRenderer(Options{Margin: -1})
	assert.Equal(t, renderer.FormatSVG, r.opts.Format)
	assert.Equal(t, defaultMargin, r.opts.Margin)
	assert.Equal(t, defaultDPMM, r.opts.DPMM)
	assert.NotNil(t, r.opts.Palette.Pad)
}

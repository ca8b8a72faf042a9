package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"math"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/ByLCY/pcbflex/circuit"
	"github.com/ByLCY/pcbflex/renderer"
)

const (
	outlineWidth   = 0.1
	defaultMargin  = 2.0
	defaultDPMM    = 10.0
	groupDashWidth = 0.4
)

// Renderer 通过 github.com/tdewolff/canvas 绘制板、分组、元件与焊盘的轮廓。
type Renderer struct {
	opts Options
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options 为 canvas 渲染器的配置。
type Options struct {
	Format renderer.Format
	// Margin 为画布四周留白（mm）。
	Margin float64
	// DPMM 为 PNG 输出的分辨率（像素/mm）。
	DPMM    float64
	Palette Palette
}

// Palette 为各类元素的颜色，空值使用默认配色。
type Palette struct {
	Background color.Color
	Board      color.Color
	Group      color.Color
	Component  color.Color
	Pad        color.Color
}

// DefaultPalette 返回绿色阻焊、金色焊盘的默认配色。
func DefaultPalette() Palette {
	return Palette{
		Background: canvas.White,
		Board:      canvas.Hex("#1b5e20"),
		Group:      canvas.Hex("#fdd835"),
		Component:  canvas.Hex("#eceff1"),
		Pad:        canvas.Hex("#c9a227"),
	}
}

// NewRenderer 创建基于 canvas 的渲染器。
func NewRenderer(opts Options) *Renderer {
	if opts.Format == "" {
		opts.Format = renderer.FormatSVG
	}
	if !(opts.Margin >= 0) {
		opts.Margin = defaultMargin
	}
	if !(opts.DPMM > 0) {
		opts.DPMM = defaultDPMM
	}
	def := DefaultPalette()
	pick := func(c, d color.Color) color.Color {
		if c == nil {
			return d
		}
		return c
	}
	opts.Palette = Palette{
		Background: pick(opts.Palette.Background, def.Background),
		Board:      pick(opts.Palette.Board, def.Board),
		Group:      pick(opts.Palette.Group, def.Group),
		Component:  pick(opts.Palette.Component, def.Component),
		Pad:        pick(opts.Palette.Pad, def.Pad),
	}
	return &Renderer{opts: opts}
}

// Render 绘制元素并按配置的格式编码。
func (r *Renderer) Render(elements []circuit.Element) ([]byte, error) {
	c, err := r.Draw(elements)
	if err != nil {
		return nil, err
	}
	w, h := c.Size()

	var buf bytes.Buffer
	switch r.opts.Format {
	case renderer.FormatSVG:
		writer := svg.New(&buf, w, h, nil)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 SVG 失败: %w", err)
		}
	case renderer.FormatPDF:
		writer := pdf.New(&buf, w, h, nil)
		writer.SetInfo("pcbflex", "", "", "", "pcbflex")
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 PDF 失败: %w", err)
		}
	case renderer.FormatPNG:
		img := rasterizer.Draw(c, canvas.DPMM(r.opts.DPMM), canvas.DefaultColorSpace)
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("写入 PNG 失败: %w", err)
		}
	default:
		return nil, fmt.Errorf("不支持的输出格式: %q", r.opts.Format)
	}
	return buf.Bytes(), nil
}

// Draw 在新画布上绘制元素，画布大小为元素包围盒加留白。板面坐标 y 轴向上，画布使用 CartesianI。
func (r *Renderer) Draw(elements []circuit.Element) (*canvas.Canvas, error) {
	drawable := make([]*circuit.Element, 0, len(elements))
	for i := range elements {
		if shape(&elements[i]) != nil {
			drawable = append(drawable, &elements[i])
		}
	}
	b, ok := circuit.BoundsOf(drawable)
	if !ok || b.Width() <= 0 || b.Height() <= 0 {
		return nil, fmt.Errorf("缺少可绘制的元素")
	}

	m := r.opts.Margin
	w, h := b.Width()+2*m, b.Height()+2*m
	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianI)

	ctx.SetFillColor(r.opts.Palette.Background)
	ctx.SetStrokeColor(canvas.Transparent)
	ctx.DrawPath(0, 0, canvas.Rectangle(w, h))

	origin := circuit.Point{X: b.MinX - m, Y: b.MinY - m}
	// 自底向上：板、分组、元件、焊盘。
	for _, typ := range []string{circuit.TypePcbBoard, circuit.TypePcbGroup, circuit.TypePcbComponent, circuit.TypePcbSmtPad} {
		for _, e := range drawable {
			if e.Type == typ {
				r.drawElement(ctx, e, origin)
			}
		}
	}
	return c, nil
}

func (r *Renderer) drawElement(ctx *canvas.Context, e *circuit.Element, origin circuit.Point) {
	p := shape(e)
	center, _ := e.Position()
	x, y := center.X-origin.X, center.Y-origin.Y
	pal := r.opts.Palette

	ctx.SetDashes(0)
	ctx.SetStrokeWidth(outlineWidth)
	switch e.Type {
	case circuit.TypePcbBoard:
		ctx.SetFillColor(pal.Board)
		ctx.SetStrokeColor(canvas.Black)
	case circuit.TypePcbGroup:
		ctx.SetFillColor(canvas.Transparent)
		ctx.SetStrokeColor(pal.Group)
		ctx.SetDashes(0, groupDashWidth, groupDashWidth)
	case circuit.TypePcbComponent:
		ctx.SetFillColor(canvas.Transparent)
		ctx.SetStrokeColor(pal.Component)
	default:
		ctx.SetFillColor(pal.Pad)
		ctx.SetStrokeColor(canvas.Transparent)
	}
	ctx.DrawPath(x, y, p)
}

// shape 返回以元素中心为原点的轮廓；没有位置或尺寸的元素返回 nil。
func shape(e *circuit.Element) *canvas.Path {
	switch e.Type {
	case circuit.TypePcbBoard, circuit.TypePcbGroup, circuit.TypePcbComponent, circuit.TypePcbSmtPad:
	default:
		return nil
	}
	if !e.Positional() {
		return nil
	}
	if e.Type == circuit.TypePcbSmtPad && e.Extra["shape"] == "circle" {
		radius := circuit.ToNumber(e.Extra["radius"])
		if radius > 0 && !math.IsInf(radius, 0) {
			return canvas.Circle(radius)
		}
		return nil
	}
	w, h := e.Width.Value, e.Height.Value
	if !e.Width.Known() || !e.Height.Known() {
		return nil
	}
	return canvas.Rectangle(w, h).Translate(-w/2, -h/2)
}

package dsl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ByLCY/pcbflex/circuit"
)

// ErrCompile 表示文档语法正确但无法转换为电路元素。
var ErrCompile = errors.New("dsl: compile error")

// 未指定尺寸时按元件类型使用的默认封装尺寸（mm）。
var defaultPartSize = map[string][2]float64{
	"resistor":  {1.0, 0.5},
	"capacitor": {1.6, 0.8},
	"inductor":  {1.6, 0.8},
	"led":       {1.6, 0.8},
	"diode":     {1.6, 0.8},
	"chip":      {5, 5},
}

// 未指定位置的元件在所属容器内从原点开始向右排开，间距 1mm。
const autoPlaceGap = 1.0

// Load 解析并编译 DSL 文本。
func Load(input string) ([]circuit.Element, error) {
	doc, err := ParseString(input)
	if err != nil {
		return nil, err
	}
	return Compile(doc)
}

// Compile 将 AST 转换为 Circuit JSON 元素。编号按出现顺序生成，结果可复现。
func Compile(doc *Document) ([]circuit.Element, error) {
	if doc == nil || doc.Root == nil {
		return nil, fmt.Errorf("%w: empty document", ErrCompile)
	}
	c := &compiler{counters: map[string]int{}}
	if err := c.container(doc.Root, scope{}, true); err != nil {
		return nil, err
	}
	return c.elements, nil
}

type compiler struct {
	elements []circuit.Element
	counters map[string]int
}

// scope 描述当前所在容器的链接字段。
type scope struct {
	sourceGroup string
	subcircuit  string
	pcbGroup    string
}

type attrs struct {
	subcircuit    bool
	width, height circuit.Dimension
	at            *circuit.Point
}

func (c *compiler) nextID(typ string) string {
	n := c.counters[typ]
	c.counters[typ]++
	return fmt.Sprintf("%s_%d", typ, n)
}

func (c *compiler) container(ct *Container, parent scope, root bool) error {
	a := readAttrs(ct.Attrs)
	if ct.Kind == "board" && !root {
		return fmt.Errorf("%w: %s: board %q must be the top-level container", ErrCompile, ct.Pos, ct.Name)
	}

	sgID := c.nextID(circuit.TypeSourceGroup)
	isSub := ct.Kind == "board" || a.subcircuit
	inner := scope{sourceGroup: sgID, subcircuit: parent.subcircuit}
	if isSub {
		inner.subcircuit = "subcircuit_" + sgID
	}

	sg := circuit.Element{
		Type:                circuit.TypeSourceGroup,
		ID:                  sgID,
		Name:                ct.Name,
		ParentSourceGroupID: parent.sourceGroup,
		ParentSubcircuitID:  parent.subcircuit,
		IsSubcircuit:        isSub,
	}
	if isSub {
		sg.SubcircuitID = inner.subcircuit
	}
	c.elements = append(c.elements, sg)

	var pcb circuit.Element
	if ct.Kind == "board" {
		center := circuit.Point{}
		if a.at != nil {
			center = *a.at
		}
		pcb = circuit.Element{
			Type:         circuit.TypePcbBoard,
			ID:           c.nextID(circuit.TypePcbBoard),
			Width:        a.width,
			Height:       a.height,
			Center:       &center,
			SubcircuitID: inner.subcircuit,
		}
	} else {
		pcb = circuit.Element{
			Type:          circuit.TypePcbGroup,
			ID:            c.nextID(circuit.TypePcbGroup),
			Name:          ct.Name,
			Width:         a.width,
			Height:        a.height,
			SourceGroupID: sgID,
			PcbGroupID:    parent.pcbGroup,
			IsSubcircuit:  isSub,
		}
		if isSub {
			pcb.SubcircuitID = inner.subcircuit
		}
		inner.pcbGroup = pcb.ID
	}
	at := len(c.elements)
	c.elements = append(c.elements, pcb)

	cursor := 0.0
	for _, st := range ct.Body {
		switch {
		case st.Group != nil:
			if err := c.container(st.Group, inner, false); err != nil {
				return err
			}
		case st.Part != nil:
			if err := c.part(st.Part, inner, &cursor); err != nil {
				return err
			}
		}
	}

	if ct.Kind == "group" {
		c.placeGroup(at, a.at)
	}
	return nil
}

// placeGroup 确定分组中心：显式位置优先，否则取成员包围盒中心。
func (c *compiler) placeGroup(at int, explicit *circuit.Point) {
	g := &c.elements[at]
	if explicit != nil {
		p := *explicit
		g.Center = &p
		return
	}
	members := make([]*circuit.Element, 0, len(c.elements)-at-1)
	for i := at + 1; i < len(c.elements); i++ {
		e := &c.elements[i]
		if e.Type == circuit.TypePcbComponent || e.Type == circuit.TypePcbGroup {
			members = append(members, e)
		}
	}
	center := circuit.Point{}
	if b, ok := circuit.BoundsOf(members); ok {
		center = b.Center()
	}
	g.Center = &center
}

func (c *compiler) part(pt *Part, s scope, cursor *float64) error {
	kind := strings.ToLower(pt.Kind)
	if kind == "board" || kind == "group" {
		return fmt.Errorf("%w: %s: %s %q needs a body", ErrCompile, pt.Pos, kind, pt.Name)
	}
	a := readAttrs(pt.Attrs)
	if a.subcircuit {
		return fmt.Errorf("%w: %s: part %q cannot be a subcircuit", ErrCompile, pt.Pos, pt.Name)
	}
	w, h := 1.0, 1.0
	if d, ok := defaultPartSize[kind]; ok {
		w, h = d[0], d[1]
	}
	if a.width.Present {
		w = a.width.Value
	}
	if a.height.Present {
		h = a.height.Value
	}

	var center circuit.Point
	if a.at != nil {
		center = *a.at
	} else {
		center = circuit.Point{X: *cursor + w/2}
		*cursor += w + autoPlaceGap
	}

	scID := c.nextID(circuit.TypeSourceComponent)
	c.elements = append(c.elements, circuit.Element{
		Type:          circuit.TypeSourceComponent,
		ID:            scID,
		Name:          pt.Name,
		SourceGroupID: s.sourceGroup,
		SubcircuitID:  s.subcircuit,
		Extra:         map[string]any{"ftype": "simple_" + kind},
	})

	pcID := c.nextID(circuit.TypePcbComponent)
	c.elements = append(c.elements, circuit.Element{
		Type:              circuit.TypePcbComponent,
		ID:                pcID,
		Width:             circuit.Num(w),
		Height:            circuit.Num(h),
		Center:            &center,
		SourceComponentID: scID,
		SubcircuitID:      s.subcircuit,
		PcbGroupID:        s.pcbGroup,
	})

	// 两个焊盘沿 x 轴对称分布在元件两端。
	for i, sign := range []float64{-1, 1} {
		x := center.X + sign*w/4
		y := center.Y
		c.elements = append(c.elements, circuit.Element{
			Type:           circuit.TypePcbSmtPad,
			ID:             c.nextID(circuit.TypePcbSmtPad),
			Width:          circuit.Num(w / 3),
			Height:         circuit.Num(h * 0.8),
			X:              &x,
			Y:              &y,
			SubcircuitID:   s.subcircuit,
			PcbComponentID: pcID,
			Extra: map[string]any{
				"shape":      "rect",
				"layer":      "top",
				"port_hints": []any{fmt.Sprint(i + 1)},
			},
		})
	}
	return nil
}

func readAttrs(list []*Attr) attrs {
	var a attrs
	for _, at := range list {
		switch {
		case at.Subcircuit:
			a.subcircuit = true
		case at.Width != nil:
			a.width = dimension(*at.Width)
		case at.Height != nil:
			a.height = dimension(*at.Height)
		case at.Size != nil:
			a.width = dimension(at.Size.Width)
			a.height = dimension(at.Size.Height)
		case at.At != nil:
			a.at = &circuit.Point{
				X: dimension(at.At.X).Value,
				Y: dimension(at.At.Y).Value,
			}
		}
	}
	return a
}

// dimension 将带单位的数字换算为毫米。
func dimension(tok string) circuit.Dimension {
	d := circuit.ParseDimensionString(tok)
	return circuit.Num(d.MM())
}

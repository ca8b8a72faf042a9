package circuit

import "math"

// Shift 将 e 的所有位置字段平移 d，包括保存在 Extra 中的路径点、多边形顶点、
// 线段端点与锚点。
func Shift(e *Element, d Point) {
	if e.Center != nil {
		c := e.Center.Add(d)
		e.Center = &c
	}
	if e.X != nil {
		x := *e.X + d.X
		e.X = &x
	}
	if e.Y != nil {
		y := *e.Y + d.Y
		e.Y = &y
	}
	if e.Extra != nil {
		shiftExtra(e.Extra, d)
	}
}

// 以其他键定位的几何数据。
var (
	pointListKeys = []string{"route", "points"}
	pointKeys     = []string{"anchor_position", "position"}
	xKeys         = []string{"x1", "x2"}
	yKeys         = []string{"y1", "y2"}
)

func shiftExtra(extra map[string]any, d Point) {
	for _, k := range pointListKeys {
		list, ok := extra[k].([]any)
		if !ok {
			continue
		}
		for _, p := range list {
			if m, ok := p.(map[string]any); ok {
				shiftPointMap(m, d)
			}
		}
	}
	for _, k := range pointKeys {
		if m, ok := extra[k].(map[string]any); ok {
			shiftPointMap(m, d)
		}
	}
	for _, k := range xKeys {
		if v, ok := extra[k].(float64); ok {
			extra[k] = v + d.X
		}
	}
	for _, k := range yKeys {
		if v, ok := extra[k].(float64); ok {
			extra[k] = v + d.Y
		}
	}
}

// shiftPointMap 平移 {"x": .., "y": ..} 形式的点；非数值坐标保持不变。
func shiftPointMap(m map[string]any, d Point) {
	if v, ok := m["x"].(float64); ok {
		m["x"] = v + d.X
	}
	if v, ok := m["y"].(float64); ok {
		m["y"] = v + d.Y
	}
}

// Translate 将下标 i 处的元素整体平移 d。pcb_component 所拥有的焊盘、过孔、
// 丝印等随之移动，封装内部几何与旋转保持不变。
func Translate(elements []Element, idx *Index, i int, d Point) {
	if d.X == 0 && d.Y == 0 {
		return
	}
	e := &elements[i]
	Shift(e, d)
	if e.Type != TypePcbComponent || e.ID == "" {
		return
	}
	for _, j := range idx.OwnedBy(e.ID) {
		Shift(&elements[j], d)
	}
}

// Bounds 为轴对齐包围盒。
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width 返回包围盒宽度。
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height 返回包围盒高度。
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Center 返回包围盒中心。
func (b Bounds) Center() Point {
	return Point{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// BoundsOf 返回包住所有元素的包围盒：有尺寸的元素计入其矩形，没有尺寸的计入其位置。
// 没有任何元素带位置时 ok 为 false。
func BoundsOf(elements []*Element) (b Bounds, ok bool) {
	b = Bounds{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, e := range elements {
		p, has := e.Position()
		if !has {
			continue
		}
		hw, hh := math.Max(e.Width.Value, 0)/2, math.Max(e.Height.Value, 0)/2
		b.MinX = math.Min(b.MinX, p.X-hw)
		b.MaxX = math.Max(b.MaxX, p.X+hw)
		b.MinY = math.Min(b.MinY, p.Y-hh)
		b.MaxY = math.Max(b.MaxY, p.Y+hh)
		ok = true
	}
	if !ok {
		return Bounds{}, false
	}
	return b, true
}

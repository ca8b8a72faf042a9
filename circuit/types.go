// Package circuit 描述布局所处理的 Circuit JSON 元素。
package circuit

// 布局识别的元素类型。其余元素原样保留，带 pcb_component_id 的随所属元件移动。
const (
	TypePcbBoard        = "pcb_board"
	TypePcbGroup        = "pcb_group"
	TypePcbComponent    = "pcb_component"
	TypePcbSmtPad       = "pcb_smtpad"
	TypeSourceGroup     = "source_group"
	TypeSourceComponent = "source_component"
)

// Point 为板面坐标（mm，y 轴向上）。
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add 返回 p 平移 d 后的点。
func (p Point) Add(d Point) Point { return Point{X: p.X + d.X, Y: p.Y + d.Y} }

// Sub 返回从 q 指向 p 的向量。
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Element 为 Circuit JSON 文档中的一条记录。
//
// 自身 id 在 JSON 中位于 "<type>_id" 键下，这里存于 ID；关联字段引用其他元素。
// 布局不认识的键保留在 Extra 中。
type Element struct {
	Type string
	ID   string
	Name string

	Width  Dimension
	Height Dimension

	// Center：以中心定位的元素（板、分组、元件）。
	Center *Point
	// X、Y：以松散坐标定位的元素（焊盘、过孔、丝印）。
	X *float64
	Y *float64

	SubcircuitID        string
	ParentSubcircuitID  string
	SourceGroupID       string
	ParentSourceGroupID string
	SourceComponentID   string
	PcbGroupID          string
	PcbComponentID      string
	IsSubcircuit        bool

	Extra map[string]any
}

// IDKey 返回保存自身 id 的 JSON 键。
func (e *Element) IDKey() string { return e.Type + "_id" }

// Position 返回元素的参考位置，没有位置时 ok 为 false。
func (e *Element) Position() (Point, bool) {
	if e.Center != nil {
		return *e.Center, true
	}
	if e.X != nil || e.Y != nil {
		var p Point
		if e.X != nil {
			p.X = *e.X
		}
		if e.Y != nil {
			p.Y = *e.Y
		}
		return p, true
	}
	return Point{}, false
}

// Positional 判断元素是否带任何位置字段。
func (e *Element) Positional() bool {
	_, ok := e.Position()
	return ok
}

// Owned 判断元素是否为固定在某个 pcb_component 上的几何（焊盘、过孔、丝印）。
func (e *Element) Owned() bool {
	return e.Type != TypePcbComponent && e.PcbComponentID != ""
}

// Clone 返回 e 的深拷贝。
func (e Element) Clone() Element {
	out := e
	if e.Center != nil {
		c := *e.Center
		out.Center = &c
	}
	if e.X != nil {
		x := *e.X
		out.X = &x
	}
	if e.Y != nil {
		y := *e.Y
		out.Y = &y
	}
	if e.Extra != nil {
		out.Extra = make(map[string]any, len(e.Extra))
		for k, v := range e.Extra {
			out.Extra[k] = cloneValue(v)
		}
	}
	return out
}

// Clone 深拷贝整个集合，保持顺序。
func Clone(elements []Element) []Element {
	if elements == nil {
		return nil
	}
	out := make([]Element, len(elements))
	for i := range elements {
		out[i] = elements[i].Clone()
	}
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, vv := range x {
			m[k] = cloneValue(vv)
		}
		return m
	case []any:
		s := make([]any, len(x))
		for i, vv := range x {
			s[i] = cloneValue(vv)
		}
		return s
	default:
		return v
	}
}

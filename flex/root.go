package flex

import (
	"errors"
	"fmt"
)

// ErrDuplicateItem 表示同一容器中重复加入了同一 id。
var ErrDuplicateItem = errors.New("flex: duplicate item id")

// Item 为容器的一个子条目。
type Item struct {
	ID string
	// Basis 为主轴方向尺寸。
	Basis float64
	// Cross 为交叉轴方向尺寸。
	Cross float64
}

// Position 为布局空间中的左上角（y 轴向下）。
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Box 为单个条目的求解结果。
type Box struct {
	Position Position `json:"position"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
}

// Root 为固定尺寸的 flex 容器。
type Root struct {
	width, height float64
	opts          Options
	items         []Item
	ids           map[string]struct{}
	layout        map[string]Box
}

// NewRoot 创建空容器。
func NewRoot(width, height float64, opts Options) *Root {
	return &Root{
		width:  width,
		height: height,
		opts:   opts,
		ids:    map[string]struct{}{},
	}
}

// AddChild 追加条目，条目按加入顺序排布。
func (r *Root) AddChild(it Item) error {
	if _, dup := r.ids[it.ID]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateItem, it.ID)
	}
	r.ids[it.ID] = struct{}{}
	r.items = append(r.items, it)
	r.layout = nil
	return nil
}

// Len 返回已加入的条目数。
func (r *Root) Len() int { return len(r.items) }

// Build 计算所有条目的位置。
func (r *Root) Build() {
	mainSize, crossSize := r.width, r.height
	if !r.opts.Direction.IsRow() {
		mainSize, crossSize = crossSize, mainSize
	}

	n := len(r.items)
	gap := r.opts.mainGap()
	used := 0.0
	for _, it := range r.items {
		used += it.Basis
	}
	if n > 1 {
		used += gap * float64(n-1)
	}
	start, between := distribute(r.opts.Justify, mainSize-used, n)

	out := make(map[string]Box, n)
	cursor := start
	for _, it := range r.items {
		mainPos := cursor
		cursor += it.Basis + gap + between
		if r.opts.Direction.IsReverse() {
			mainPos = mainSize - mainPos - it.Basis
		}

		cross := it.Cross
		crossPos := 0.0
		switch r.opts.Align {
		case AlignEnd:
			crossPos = crossSize - cross
		case AlignCenter:
			crossPos = (crossSize - cross) / 2
		case AlignStretch:
			if crossSize > 0 {
				cross = crossSize
			}
		}

		var b Box
		if r.opts.Direction.IsRow() {
			b = Box{Position: Position{X: mainPos, Y: crossPos}, Width: it.Basis, Height: cross}
		} else {
			b = Box{Position: Position{X: crossPos, Y: mainPos}, Width: cross, Height: it.Basis}
		}
		out[it.ID] = b
	}
	r.layout = out
}

// distribute 返回首个条目的主轴偏移与相邻条目间额外插入的间距。
// 剩余空间为负时按 CSS 的方式回退：space-between 退为 start，
// space-around 与 space-evenly 退为 center。
func distribute(j Justify, free float64, n int) (start, between float64) {
	if n == 0 {
		return 0, 0
	}
	switch j {
	case JustifyEnd:
		return free, 0
	case JustifyCenter:
		return free / 2, 0
	case JustifySpaceBetween:
		if free < 0 || n == 1 {
			return 0, 0
		}
		return 0, free / float64(n-1)
	case JustifySpaceAround:
		if free < 0 {
			return free / 2, 0
		}
		between = free / float64(n)
		return between / 2, between
	case JustifySpaceEvenly:
		if free < 0 {
			return free / 2, 0
		}
		between = free / float64(n+1)
		return between, between
	default:
		return 0, 0
	}
}

// Layout 返回以条目 id 为键的求解结果，必要时先执行 Build。返回的 map 为副本。
func (r *Root) Layout() map[string]Box {
	if r.layout == nil {
		r.Build()
	}
	out := make(map[string]Box, len(r.layout))
	for k, v := range r.layout {
		out[k] = v
	}
	return out
}

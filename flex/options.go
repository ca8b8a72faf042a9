// Package flex 实现一个小型、确定性的单行 flex 求解器。条目保持加入顺序，
// 不伸缩也不换行；求解器只负责分配剩余空间与对齐。
package flex

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidOption 表示无法识别的方向、主轴分布或交叉轴对齐关键字。
var ErrInvalidOption = errors.New("flex: invalid option")

// Direction 为主轴及其方向。
type Direction int

const (
	Row Direction = iota
	RowReverse
	Column
	ColumnReverse
)

// IsRow 判断主轴是否为水平方向。
func (d Direction) IsRow() bool { return d == Row || d == RowReverse }

// IsReverse 判断条目是否从末端开始排列。
func (d Direction) IsReverse() bool { return d == RowReverse || d == ColumnReverse }

func (d Direction) String() string {
	switch d {
	case Row:
		return "row"
	case RowReverse:
		return "row-reverse"
	case Column:
		return "column"
	case ColumnReverse:
		return "column-reverse"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection 解析 flex-direction 关键字，空串即 row。
func ParseDirection(s string) (Direction, error) {
	switch normalize(s) {
	case "", "row":
		return Row, nil
	case "row-reverse":
		return RowReverse, nil
	case "column":
		return Column, nil
	case "column-reverse":
		return ColumnReverse, nil
	default:
		return Row, fmt.Errorf("%w: direction %q", ErrInvalidOption, s)
	}
}

// Justify 决定主轴上剩余空间的分配方式。
type Justify int

const (
	JustifyStart Justify = iota
	JustifyEnd
	JustifyCenter
	JustifySpaceBetween
	JustifySpaceAround
	JustifySpaceEvenly
)

func (j Justify) String() string {
	switch j {
	case JustifyStart:
		return "start"
	case JustifyEnd:
		return "end"
	case JustifyCenter:
		return "center"
	case JustifySpaceBetween:
		return "space-between"
	case JustifySpaceAround:
		return "space-around"
	case JustifySpaceEvenly:
		return "space-evenly"
	default:
		return fmt.Sprintf("Justify(%d)", int(j))
	}
}

// ParseJustify 解析 justify-content 关键字，空串即 start。
func ParseJustify(s string) (Justify, error) {
	switch normalize(s) {
	case "", "start", "flex-start":
		return JustifyStart, nil
	case "end", "flex-end":
		return JustifyEnd, nil
	case "center":
		return JustifyCenter, nil
	case "space-between":
		return JustifySpaceBetween, nil
	case "space-around":
		return JustifySpaceAround, nil
	case "space-evenly":
		return JustifySpaceEvenly, nil
	default:
		return JustifyStart, fmt.Errorf("%w: justifyContent %q", ErrInvalidOption, s)
	}
}

// Align 决定条目在交叉轴上的位置。
type Align int

const (
	AlignStart Align = iota
	AlignEnd
	AlignCenter
	AlignStretch
)

func (a Align) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignEnd:
		return "end"
	case AlignCenter:
		return "center"
	case AlignStretch:
		return "stretch"
	default:
		return fmt.Sprintf("Align(%d)", int(a))
	}
}

// ParseAlign 解析 align-items 关键字，空串与 CSS 一样为 stretch。
func ParseAlign(s string) (Align, error) {
	switch normalize(s) {
	case "", "stretch":
		return AlignStretch, nil
	case "start", "flex-start":
		return AlignStart, nil
	case "end", "flex-end":
		return AlignEnd, nil
	case "center":
		return AlignCenter, nil
	default:
		return AlignStretch, fmt.Errorf("%w: alignItems %q", ErrInvalidOption, s)
	}
}

func normalize(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Options 为单个容器的配置。
type Options struct {
	Direction Direction
	Justify   Justify
	Align     Align
	ColumnGap float64
	RowGap    float64
}

// mainGap 返回主轴上相邻条目的间距。
func (o Options) mainGap() float64 {
	if o.Direction.IsRow() {
		return o.ColumnGap
	}
	return o.RowGap
}

package layout

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ByLCY/pcbflex/flex"
)

// ErrInvalidOptions 表示调用方传入了无法识别的布局参数。
var ErrInvalidOptions = errors.New("layout: invalid options")

// Options 配置一次布局计算。零值字段使用默认值：row / center / center / 0 / 0。
type Options struct {
	Direction      string  `json:"direction" mapstructure:"direction"`
	JustifyContent string  `json:"justifyContent" mapstructure:"justify_content"`
	AlignItems     string  `json:"alignItems" mapstructure:"align_items"`
	ColumnGap      float64 `json:"columnGap" mapstructure:"column_gap"`
	RowGap         float64 `json:"rowGap" mapstructure:"row_gap"`
	// InferContainerSize 为 true 时即使容器已有尺寸也重新推算。
	InferContainerSize bool `json:"inferContainerSize" mapstructure:"infer_container_size"`

	// Subcircuit 指定只布局该子电路；为空时布局整个文档的根容器。
	Subcircuit string `json:"subcircuit,omitempty" mapstructure:"subcircuit"`

	// Logger 为空时不输出日志。
	Logger *zap.Logger `json:"-" mapstructure:"-"`
}

// DefaultOptions 返回所有字段均为默认值的 Options。
func DefaultOptions() Options {
	return Options{
		Direction:      "row",
		JustifyContent: "center",
		AlignItems:     "center",
	}
}

// withDefaults 填充空字段。
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Direction == "" {
		o.Direction = d.Direction
	}
	if o.JustifyContent == "" {
		o.JustifyContent = d.JustifyContent
	}
	if o.AlignItems == "" {
		o.AlignItems = d.AlignItems
	}
	return o
}

// Validate 在布局开始前检查枚举取值与间距，发现问题立即返回。
func (o Options) Validate() error {
	_, err := o.flexOptions()
	return err
}

// flexOptions 将字符串参数转换为求解器参数。
func (o Options) flexOptions() (flex.Options, error) {
	o = o.withDefaults()
	dir, err := flex.ParseDirection(o.Direction)
	if err != nil {
		return flex.Options{}, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	justify, err := flex.ParseJustify(o.JustifyContent)
	if err != nil {
		return flex.Options{}, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	align, err := flex.ParseAlign(o.AlignItems)
	if err != nil {
		return flex.Options{}, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	if !(o.ColumnGap >= 0) || !(o.RowGap >= 0) {
		return flex.Options{}, fmt.Errorf("%w: gaps must be >= 0 (columnGap=%g, rowGap=%g)", ErrInvalidOptions, o.ColumnGap, o.RowGap)
	}
	return flex.Options{
		Direction: dir,
		Justify:   justify,
		Align:     align,
		ColumnGap: o.ColumnGap,
		RowGap:    o.RowGap,
	}, nil
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

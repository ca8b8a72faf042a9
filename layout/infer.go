package layout

import (
	"math"

	"go.uber.org/zap"

	"github.com/ByLCY/pcbflex/circuit"
	"github.com/ByLCY/pcbflex/flex"
)

// MinimumContainer 计算沿主轴排列所有条目所需的最小容器尺寸。
//   - row：宽 = 宽度之和 + columnGap × (n-1)，高 = 最大高度
//   - column：高 = 高度之和 + rowGap × (n-1)，宽 = 最大宽度
func MinimumContainer(items []Size, dir flex.Direction, columnGap, rowGap float64) Size {
	var sumW, sumH, maxW, maxH float64
	for _, it := range items {
		sumW += it.Width
		sumH += it.Height
		maxW = math.Max(maxW, it.Width)
		maxH = math.Max(maxH, it.Height)
	}
	gaps := float64(max(0, len(items)-1))
	if dir.IsRow() {
		return Size{Width: sumW + columnGap*gaps, Height: maxH}
	}
	return Size{Width: maxW, Height: sumH + rowGap*gaps}
}

// resolveSize 确定容器尺寸：缺失的方向用推算值补齐，强制推算时两个方向都覆盖。
// 结果写回容器实体，后续读取方能看到确定的尺寸。
func (p *pass) resolveSize(c *container, items []*item) {
	e := &p.elements[c.at]
	c.center, _ = e.Position()
	c.width, c.height = e.Width.Value, e.Height.Value

	force := p.opts.InferContainerSize
	if e.Width.Known() && e.Height.Known() && !force {
		return
	}
	sizes := make([]Size, len(items))
	for i, it := range items {
		sizes[i] = Size{Width: it.width, Height: it.height}
	}
	minSize := MinimumContainer(sizes, p.flexOpts.Direction, p.flexOpts.ColumnGap, p.flexOpts.RowGap)
	if force || !e.Width.Known() {
		c.width = minSize.Width
		e.Width = circuit.Num(minSize.Width)
	}
	if force || !e.Height.Known() {
		c.height = minSize.Height
		e.Height = circuit.Num(minSize.Height)
	}
	p.report.Container.Inferred = true
	p.log.Debug("inferred container size",
		zap.String("container", e.ID),
		zap.Float64("width", c.width),
		zap.Float64("height", c.height),
		zap.Bool("forced", force))
}

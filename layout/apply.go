package layout

import (
	"go.uber.org/zap"

	"github.com/ByLCY/pcbflex/circuit"
	"github.com/ByLCY/pcbflex/flex"
)

// solve 按插入顺序把条目交给求解器。主轴方向上的尺寸作为 flex basis。
func (p *pass) solve(c container, items []*item) ([]*item, map[string]flex.Box) {
	root := flex.NewRoot(c.width, c.height, p.flexOpts)
	added := make([]*item, 0, len(items))
	for _, it := range items {
		basis, cross := it.width, it.height
		if !p.flexOpts.Direction.IsRow() {
			basis, cross = cross, basis
		}
		if err := root.AddChild(flex.Item{ID: it.id, Basis: basis, Cross: cross}); err != nil {
			p.log.Debug("dropping item", zap.String("id", it.id), zap.Error(err))
			p.report.Skipped = append(p.report.Skipped, it.id)
			continue
		}
		added = append(added, it)
	}
	root.Build()
	return added, root.Layout()
}

// toDomain 将求解器的左上角坐标（y 向下）换算为容器坐标系中的中心点（y 向上）。
// 容器坐标系原点为容器中心。
func toDomain(c container, b flex.Box, width, height float64) circuit.Point {
	return circuit.Point{
		X: c.center.X + b.Position.X + width/2 - c.width/2,
		Y: c.center.Y - (b.Position.Y + height/2) + c.height/2,
	}
}

// apply 计算每个条目的位移并对其全部成员做刚体平移；求解结果中缺失的条目保持不动。
func (p *pass) apply(c container, items []*item, boxes map[string]flex.Box) {
	for _, it := range items {
		ir := ItemReport{
			ID:     it.id,
			Kind:   it.kind,
			Width:  it.width,
			Height: it.height,
			From:   it.center,
			To:     it.center,
		}
		for _, m := range it.members {
			ir.Members = append(ir.Members, p.elements[m].ID)
		}
		b, ok := boxes[it.id]
		if ok {
			box := b
			ir.Box = &box
			to := toDomain(c, b, it.width, it.height)
			d := to.Sub(it.center)
			for _, m := range it.members {
				circuit.Translate(p.elements, p.index, m, d)
			}
			ir.To, ir.Delta = to, d
		}
		p.report.Items = append(p.report.Items, ir)
	}
}

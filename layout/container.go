package layout

import (
	"go.uber.org/zap"

	"github.com/ByLCY/pcbflex/circuit"
	"github.com/ByLCY/pcbflex/hierarchy"
)

// container 是一次布局使用的坐标系：容器实体与其对应的遍历根。
type container struct {
	at     int
	node   *hierarchy.Node
	width  float64
	height float64
	center circuit.Point
}

// resolveContainer 选出容器并折叠只包裹一个已知尺寸分组的无意义层级。
func (p *pass) resolveContainer(root *hierarchy.Node) (container, bool) {
	if root == nil || root.SourceGroup == nil {
		return container{}, false
	}
	at, ok := p.rootContainer(root.SourceGroup)
	if !ok {
		p.log.Debug("no container for hierarchy root", zap.String("source_group", root.ID()))
		return container{}, false
	}

	node := root
	for len(node.Children) == 1 {
		child := node.Children[0]
		if !child.IsGroup() {
			break
		}
		gi, found := p.index.PcbGroupForSource(child.ID())
		if !found {
			break
		}
		g := &p.elements[gi]
		if !g.Width.Known() || !g.Height.Known() {
			break
		}
		p.log.Debug("collapsing single-child wrapper",
			zap.String("from", p.elements[at].ID),
			zap.String("to", g.ID))
		p.report.Container.Collapsed = append(p.report.Container.Collapsed, g.ID)
		at, node = gi, child
	}
	return container{at: at, node: node}, true
}

// rootContainer 按优先级选择容器：pcb_board 优先，其次是与根分组对应的子电路 pcb_group。
// 指定 Subcircuit 时只接受子电路编号一致的 board。
func (p *pass) rootContainer(sg *circuit.Element) (int, bool) {
	sub := sg.SubcircuitID
	targeted := p.opts.Subcircuit != ""
	for _, i := range p.index.Boards() {
		b := &p.elements[i]
		if sub != "" && b.SubcircuitID == sub {
			return i, true
		}
		if !targeted && b.SubcircuitID == "" {
			return i, true
		}
	}
	for _, i := range p.index.PcbGroups() {
		g := &p.elements[i]
		if !g.IsSubcircuit {
			continue
		}
		if (sub != "" && g.SubcircuitID == sub) || g.SourceGroupID == sg.ID {
			return i, true
		}
	}
	return 0, false
}

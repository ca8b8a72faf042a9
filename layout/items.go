package layout

import (
	"go.uber.org/zap"

	"github.com/ByLCY/pcbflex/circuit"
	"github.com/ByLCY/pcbflex/hierarchy"
)

// item 是根节点的一个直接子节点：叶子元件或整组移动的分组。
type item struct {
	id      string
	kind    hierarchy.NodeType
	members []int // 需要整体平移的元素下标
	width   float64
	height  float64
	center  circuit.Point
}

// extractItems 为容器的每个直接子节点生成条目，找不到实体的子节点被跳过。
func (p *pass) extractItems(c container) []*item {
	items := make([]*item, 0, len(c.node.Children))
	groupOwner := map[string]*item{}     // source_group id -> 条目
	componentOwner := map[string]*item{} // source_component id -> 条目
	claimed := map[int]bool{}

	for _, child := range c.node.Children {
		switch child.Type {
		case hierarchy.NodeComponent:
			ci, ok := p.index.PcbComponentForSource(child.ID())
			if !ok {
				p.skip(child, "pcb_component not found")
				continue
			}
			e := &p.elements[ci]
			center, _ := e.Position()
			it := &item{
				id:      firstNonEmpty(e.ID, child.ID()),
				kind:    hierarchy.NodeComponent,
				members: []int{ci},
				width:   e.Width.Value,
				height:  e.Height.Value,
				center:  center,
			}
			claimed[ci] = true
			items = append(items, it)

		case hierarchy.NodeGroup:
			gi, ok := p.index.PcbGroupForSource(child.ID())
			if !ok {
				p.skip(child, "pcb_group not found")
				continue
			}
			g := &p.elements[gi]
			it := &item{
				id:     firstNonEmpty(g.ID, child.ID()),
				kind:   hierarchy.NodeGroup,
				width:  g.Width.Value,
				height: g.Height.Value,
			}
			hierarchy.Walk(child, func(n *hierarchy.Node, _ int) {
				if n.IsGroup() {
					groupOwner[n.ID()] = it
				} else {
					componentOwner[n.ID()] = it
				}
			})
			items = append(items, it)
		}
	}

	if len(groupOwner) > 0 {
		p.collectMembers(groupOwner, componentOwner, claimed)
		for _, it := range items {
			if it.kind == hierarchy.NodeGroup {
				p.measureGroup(it)
			}
		}
	}
	return items
}

// collectMembers 一次扫描全部元素，把属于各分组子树的实体归入对应条目。
// 元件自有的焊盘、丝印等不单独归集，平移元件时随之移动。
func (p *pass) collectMembers(groupOwner, componentOwner map[string]*item, claimed map[int]bool) {
	pcbGroupOwner := map[string]*item{}
	for _, i := range p.index.PcbGroups() {
		g := &p.elements[i]
		if it := groupOwner[g.SourceGroupID]; it != nil && g.ID != "" {
			pcbGroupOwner[g.ID] = it
		}
	}

	for i := range p.elements {
		e := &p.elements[i]
		if claimed[i] || e.Owned() || i == p.containerAt {
			continue
		}
		var it *item
		switch e.Type {
		case circuit.TypePcbGroup:
			it = groupOwner[e.SourceGroupID]
		case circuit.TypePcbComponent:
			it = componentOwner[e.SourceComponentID]
			if it == nil && e.PcbGroupID != "" {
				it = pcbGroupOwner[e.PcbGroupID]
			}
		default:
			if e.PcbGroupID != "" {
				it = pcbGroupOwner[e.PcbGroupID]
			}
		}
		if it != nil {
			it.members = append(it.members, i)
		}
	}
}

// measureGroup 取分组容器实体的尺寸与中心；缺失时用成员的包围盒补齐。
func (p *pass) measureGroup(it *item) {
	var self *circuit.Element
	others := make([]*circuit.Element, 0, len(it.members))
	for _, m := range it.members {
		e := &p.elements[m]
		if e.Type == circuit.TypePcbGroup && e.ID == it.id && self == nil {
			self = e
			continue
		}
		others = append(others, e)
	}

	var center circuit.Point
	hasCenter := false
	if self != nil {
		center, hasCenter = self.Position()
	}
	if hasCenter && it.width > 0 && it.height > 0 {
		it.center = center
		return
	}
	b, ok := circuit.BoundsOf(others)
	if !ok {
		it.center = center
		return
	}
	if it.width <= 0 {
		it.width = b.Width()
	}
	if it.height <= 0 {
		it.height = b.Height()
	}
	if hasCenter {
		it.center = center
	} else {
		it.center = b.Center()
	}
}

func (p *pass) skip(child *hierarchy.Node, reason string) {
	p.log.Debug("skipping child", zap.String("id", child.ID()), zap.String("reason", reason))
	p.report.Skipped = append(p.report.Skipped, child.ID())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

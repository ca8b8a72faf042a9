// Package layout 将 Circuit JSON 中某个容器的直接子节点交给 flex 求解器排布，
// 再把求解结果换算回板坐标并整体平移各子节点包含的实体。
package layout

import (
	"sort"

	"go.uber.org/zap"

	"github.com/ByLCY/pcbflex/circuit"
	"github.com/ByLCY/pcbflex/flex"
	"github.com/ByLCY/pcbflex/hierarchy"
)

// pass 保存一次布局期间的全部状态，布局结束即丢弃。
type pass struct {
	elements    []circuit.Element
	index       *circuit.Index
	opts        Options
	flexOpts    flex.Options
	log         *zap.Logger
	report      *Report
	containerAt int
}

// Layout 对元素集合执行一次 flex 布局，返回新的集合，不修改 elements。
// 只有参数非法时返回错误；找不到容器或条目时原样返回副本。
func Layout(elements []circuit.Element, opts Options) ([]circuit.Element, error) {
	out, _, err := LayoutWithReport(elements, opts)
	return out, err
}

// LayoutWithReport 与 Layout 相同，额外返回本次布局的报告。
func LayoutWithReport(elements []circuit.Element, opts Options) ([]circuit.Element, *Report, error) {
	fo, err := opts.flexOptions()
	if err != nil {
		return nil, nil, err
	}
	p := &pass{
		elements:    circuit.Clone(elements),
		opts:        opts.withDefaults(),
		flexOpts:    fo,
		log:         opts.logger(),
		report:      &Report{NoOp: true},
		containerAt: -1,
	}
	p.index = circuit.NewIndex(p.elements)
	p.run()
	return p.elements, p.report, nil
}

func (p *pass) run() {
	c, ok := p.resolveContainer(p.hierarchyRoot())
	if !ok {
		return
	}
	p.containerAt = c.at
	ce := &p.elements[c.at]
	p.report.Container.Type = ce.Type
	p.report.Container.ID = ce.ID

	items := p.extractItems(c)
	if len(items) == 0 {
		p.log.Debug("nothing to lay out", zap.String("container", ce.ID))
		return
	}
	p.resolveSize(&c, items)
	p.report.Container.Width = c.width
	p.report.Container.Height = c.height
	p.report.Container.Center = c.center

	items, boxes := p.solve(c, items)
	p.apply(c, items, boxes)
	p.report.NoOp = false
	p.log.Debug("layout pass complete",
		zap.String("container", ce.ID),
		zap.Int("items", len(items)),
		zap.Int("skipped", len(p.report.Skipped)))
}

// hierarchyRoot 返回本次布局的遍历根：指定了 Subcircuit 时为该子电路的分组，否则为文档根分组。
func (p *pass) hierarchyRoot() *hierarchy.Node {
	if p.opts.Subcircuit == "" {
		return hierarchy.Build(p.elements)
	}
	i, ok := p.index.SourceGroupForSubcircuit(p.opts.Subcircuit)
	if !ok {
		p.log.Debug("unknown subcircuit", zap.String("subcircuit", p.opts.Subcircuit))
		return nil
	}
	return hierarchy.BuildFrom(p.elements, p.elements[i].ID)
}

// LayoutNested 先由内向外逐个布局嵌套的子电路分组，最后布局根容器。
// 每一步都以上一步的结果为输入，内层排布随外层整体平移而保持不变。
func LayoutNested(elements []circuit.Element, opts Options) ([]circuit.Element, error) {
	out, _, err := LayoutNestedWithReport(elements, opts)
	return out, err
}

// LayoutNestedWithReport 与 LayoutNested 相同，额外返回最后一次（根容器）布局的报告。
func LayoutNestedWithReport(elements []circuit.Element, opts Options) ([]circuit.Element, *Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	current := circuit.Clone(elements)
	for _, sub := range nestedSubcircuits(current, opts.Subcircuit) {
		o := opts
		o.Subcircuit = sub
		next, err := Layout(current, o)
		if err != nil {
			return nil, nil, err
		}
		current = next
	}
	return LayoutWithReport(current, opts)
}

// nestedSubcircuits 返回根以下所有子电路编号，深度大的在前，同深度保持文档顺序。
func nestedSubcircuits(elements []circuit.Element, rootSubcircuit string) []string {
	var root *hierarchy.Node
	if rootSubcircuit != "" {
		if i, ok := circuit.NewIndex(elements).SourceGroupForSubcircuit(rootSubcircuit); ok {
			root = hierarchy.BuildFrom(elements, elements[i].ID)
		}
	} else {
		root = hierarchy.Build(elements)
	}

	type entry struct {
		sub   string
		depth int
	}
	var found []entry
	hierarchy.Walk(root, func(n *hierarchy.Node, depth int) {
		if depth == 0 || !n.IsGroup() {
			return
		}
		if g := n.SourceGroup; g.IsSubcircuit && g.SubcircuitID != "" {
			found = append(found, entry{sub: g.SubcircuitID, depth: depth})
		}
	})
	sort.SliceStable(found, func(i, j int) bool { return found[i].depth > found[j].depth })

	out := make([]string, len(found))
	for i, e := range found {
		out[i] = e.sub
	}
	return out
}

// Package hierarchy 将扁平的 Circuit JSON 元素组织成以 source_group 为根的树。
package hierarchy

import (
	"github.com/ByLCY/pcbflex/circuit"
)

// NodeType 区分分组节点与元件节点。
type NodeType string

const (
	NodeGroup     NodeType = "group"
	NodeComponent NodeType = "component"
)

// Node 包装一个 source_group 或一个 source_component，子节点保持文档中的出现顺序。
type Node struct {
	Type            NodeType
	SourceGroup     *circuit.Element
	SourceComponent *circuit.Element
	Children        []*Node
}

// IsGroup 判断节点是否为分组。
func (n *Node) IsGroup() bool { return n != nil && n.Type == NodeGroup }

// ID 返回节点包装的 source 元素 id。
func (n *Node) ID() string {
	switch {
	case n == nil:
		return ""
	case n.SourceGroup != nil:
		return n.SourceGroup.ID
	case n.SourceComponent != nil:
		return n.SourceComponent.ID
	default:
		return ""
	}
}

// Build 以 FindRootSourceGroup 找到的根分组构建整棵树；找不到根时返回 nil。
// 返回的节点直接引用 elements 中的元素。
func Build(elements []circuit.Element) *Node {
	root := FindRootSourceGroup(elements, "")
	if root == nil {
		return nil
	}
	return BuildFrom(elements, root.ID)
}

// BuildFrom 以指定的 source_group 为根构建子树。
func BuildFrom(elements []circuit.Element, sourceGroupID string) *Node {
	groups := map[string]int{}
	subcircuits := map[string]string{}
	for i := range elements {
		e := &elements[i]
		if e.Type != circuit.TypeSourceGroup || e.ID == "" {
			continue
		}
		if _, dup := groups[e.ID]; !dup {
			groups[e.ID] = i
		}
		if e.SubcircuitID != "" {
			if _, dup := subcircuits[e.SubcircuitID]; !dup {
				subcircuits[e.SubcircuitID] = e.ID
			}
		}
	}
	rootIdx, ok := groups[sourceGroupID]
	if !ok {
		return nil
	}

	// 一次扫描收集每个分组的直接子元素（分组与元件混排，保持原始顺序）。
	children := map[string][]int{}
	for i := range elements {
		e := &elements[i]
		switch e.Type {
		case circuit.TypeSourceGroup:
			if parent := parentGroupID(e, subcircuits); parent != "" && parent != e.ID {
				children[parent] = append(children[parent], i)
			}
		case circuit.TypeSourceComponent:
			if e.SourceGroupID != "" {
				children[e.SourceGroupID] = append(children[e.SourceGroupID], i)
			}
		}
	}

	visited := map[string]bool{}
	var walk func(i int) *Node
	walk = func(i int) *Node {
		e := &elements[i]
		if e.Type == circuit.TypeSourceComponent {
			return &Node{Type: NodeComponent, SourceComponent: e}
		}
		n := &Node{Type: NodeGroup, SourceGroup: e}
		if visited[e.ID] {
			return n
		}
		visited[e.ID] = true
		for _, c := range children[e.ID] {
			if elements[c].Type == circuit.TypeSourceGroup && visited[elements[c].ID] {
				continue
			}
			n.Children = append(n.Children, walk(c))
		}
		return n
	}
	return walk(rootIdx)
}

// parentGroupID 优先使用 parent_source_group_id，缺失时退回到父子电路对应的分组。
func parentGroupID(e *circuit.Element, subcircuits map[string]string) string {
	if e.ParentSourceGroupID != "" {
		return e.ParentSourceGroupID
	}
	if e.ParentSubcircuitID != "" {
		return subcircuits[e.ParentSubcircuitID]
	}
	return ""
}

// Walk 以深度优先、先序的方式访问树中所有节点。
func Walk(n *Node, fn func(n *Node, depth int)) {
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		if n == nil {
			return
		}
		fn(n, depth)
		for _, c := range n.Children {
			visit(c, depth+1)
		}
	}
	visit(n, 0)
}

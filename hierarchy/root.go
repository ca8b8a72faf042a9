package hierarchy

import "github.com/ByLCY/pcbflex/circuit"

// FindRootSourceGroup 返回文档的根 source_group。
//
// 起点依次为：childSubcircuitID 对应的分组；唯一 pcb_board 的子电路分组；
// 任意一个没有父子电路的子电路分组。随后沿 parent_subcircuit_id 向上直到顶层。
func FindRootSourceGroup(elements []circuit.Element, childSubcircuitID string) *circuit.Element {
	bySub := func(id string) *circuit.Element {
		if id == "" {
			return nil
		}
		for i := range elements {
			if elements[i].Type == circuit.TypeSourceGroup && elements[i].SubcircuitID == id {
				return &elements[i]
			}
		}
		return nil
	}

	current := bySub(childSubcircuitID)
	if current == nil {
		for i := range elements {
			if elements[i].Type == circuit.TypePcbBoard {
				current = bySub(elements[i].SubcircuitID)
				break
			}
		}
	}
	if current == nil {
		for i := range elements {
			e := &elements[i]
			if e.Type == circuit.TypeSourceGroup && e.IsSubcircuit && e.ParentSubcircuitID == "" {
				current = e
				break
			}
		}
	}
	if current == nil {
		// 没有子电路标记时退回到第一个没有父分组的 source_group。
		for i := range elements {
			e := &elements[i]
			if e.Type == circuit.TypeSourceGroup && e.ParentSourceGroupID == "" && e.ParentSubcircuitID == "" {
				current = e
				break
			}
		}
	}

	seen := map[string]bool{}
	for current != nil && current.ParentSubcircuitID != "" && !seen[current.ID] {
		seen[current.ID] = true
		parent := bySub(current.ParentSubcircuitID)
		if parent == nil {
			break
		}
		current = parent
	}
	return current
}

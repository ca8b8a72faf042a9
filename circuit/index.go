package circuit

// Index 将 id 与关联字段映射到元素切片中的下标。每趟布局扫描一次建立；
// 切片重新排序后需重建，位置更新不影响索引。
type Index struct {
	byID map[idKey]int

	pcbComponentBySource map[string]int
	pcbGroupBySource     map[string]int
	sourceGroupBySub     map[string]int
	owned                map[string][]int

	boards []int
	groups []int
}

type idKey struct {
	typ string
	id  string
}

// NewIndex 扫描一遍元素。id 重复时以首次出现为准。
func NewIndex(elements []Element) *Index {
	idx := &Index{
		byID:                 make(map[idKey]int, len(elements)),
		pcbComponentBySource: map[string]int{},
		pcbGroupBySource:     map[string]int{},
		sourceGroupBySub:     map[string]int{},
		owned:                map[string][]int{},
	}
	for i := range elements {
		e := &elements[i]
		if e.ID != "" {
			k := idKey{typ: e.Type, id: e.ID}
			if _, dup := idx.byID[k]; !dup {
				idx.byID[k] = i
			}
		}
		switch e.Type {
		case TypePcbBoard:
			idx.boards = append(idx.boards, i)
		case TypePcbGroup:
			idx.groups = append(idx.groups, i)
			putFirst(idx.pcbGroupBySource, e.SourceGroupID, i)
		case TypePcbComponent:
			putFirst(idx.pcbComponentBySource, e.SourceComponentID, i)
		case TypeSourceGroup:
			putFirst(idx.sourceGroupBySub, e.SubcircuitID, i)
		}
		if e.Owned() {
			idx.owned[e.PcbComponentID] = append(idx.owned[e.PcbComponentID], i)
		}
	}
	return idx
}

func putFirst(m map[string]int, key string, i int) {
	if key == "" {
		return
	}
	if _, ok := m[key]; !ok {
		m[key] = i
	}
}

// Lookup 返回给定类型与 id 的元素下标。
func (x *Index) Lookup(typ, id string) (int, bool) {
	i, ok := x.byID[idKey{typ: typ, id: id}]
	return i, ok
}

// PcbComponentForSource 返回源元件对应的 pcb_component。
func (x *Index) PcbComponentForSource(sourceComponentID string) (int, bool) {
	i, ok := x.pcbComponentBySource[sourceComponentID]
	return i, ok
}

// PcbGroupForSource 返回源分组对应的 pcb_group。
func (x *Index) PcbGroupForSource(sourceGroupID string) (int, bool) {
	i, ok := x.pcbGroupBySource[sourceGroupID]
	return i, ok
}

// SourceGroupForSubcircuit 返回声明该子电路的 source_group。
func (x *Index) SourceGroupForSubcircuit(subcircuitID string) (int, bool) {
	i, ok := x.sourceGroupBySub[subcircuitID]
	return i, ok
}

// OwnedBy 返回 pcb_component 所拥有几何的下标。
func (x *Index) OwnedBy(pcbComponentID string) []int { return x.owned[pcbComponentID] }

// Boards 按文档顺序返回所有 pcb_board 的下标。
func (x *Index) Boards() []int { return x.boards }

// PcbGroups 按文档顺序返回所有 pcb_group 的下标。
func (x *Index) PcbGroups() []int { return x.groups }

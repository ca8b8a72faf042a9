package layout

// 该文件定义布局报告，供 LayoutWithReport 返回以及调试 JSON 输出共用。

import (
	"github.com/ByLCY/pcbflex/circuit"
	"github.com/ByLCY/pcbflex/flex"
	"github.com/ByLCY/pcbflex/hierarchy"
)

// Report 描述一次布局：使用的容器、每个条目的求解结果以及被跳过的子节点。
type Report struct {
	// NoOp 为 true 表示没有找到容器或条目，输出与输入一致。
	NoOp      bool          `json:"noop"`
	Container ContainerInfo `json:"container"`
	Items     []ItemReport  `json:"items"`
	// Skipped 记录因找不到对应实体而被排除的子节点 id。
	Skipped []string `json:"skipped,omitempty"`
}

// ContainerInfo 记录容器实体与最终使用的尺寸（mm）。
type ContainerInfo struct {
	Type   string        `json:"type"`
	ID     string        `json:"id"`
	Width  float64       `json:"width"`
	Height float64       `json:"height"`
	Center circuit.Point `json:"center"`
	// Inferred 为 true 表示至少一个方向的尺寸是推算出来的。
	Inferred bool `json:"inferred"`
	// Collapsed 按顺序记录因单子节点而向下折叠经过的分组。
	Collapsed []string `json:"collapsed,omitempty"`
}

// ItemReport 记录单个 flex 条目。
type ItemReport struct {
	ID      string             `json:"id"`
	Kind    hierarchy.NodeType `json:"kind"`
	Members []string           `json:"members"`
	Width   float64            `json:"width"`
	Height  float64            `json:"height"`
	Box     *flex.Box          `json:"box,omitempty"`
	From    circuit.Point      `json:"from"`
	To      circuit.Point      `json:"to"`
	Delta   circuit.Point      `json:"delta"`
}

// Size 为宽高对（mm）。
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

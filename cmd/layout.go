package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ByLCY/pcbflex/circuit"
	"github.com/ByLCY/pcbflex/layout"
)

func newLayoutCommand(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "layout [input]",
		Short: "Lay out the children of the board or subcircuit and print the updated circuit JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			elements, err := loadElements(inputArg(args), cmd.InOrStdin())
			if err != nil {
				return err
			}
			result, err := a.runLayout(elements)
			if err != nil {
				return err
			}
			data, err := circuit.Marshal(result)
			if err != nil {
				return fmt.Errorf("序列化结果失败: %w", err)
			}
			if out == "" || out == "-" {
				data = append(data, '\n')
			}
			return writeOutput(out, data, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&out, "out", "o", "", "输出路径（默认 stdout）")
	f.String("direction", "", "row / row-reverse / column / column-reverse")
	f.String("justify", "", "start / end / center / space-between / space-around / space-evenly")
	f.String("align", "", "start / end / center / stretch")
	f.Float64("column-gap", 0, "行方向条目间距（mm）")
	f.Float64("row-gap", 0, "列方向条目间距（mm）")
	f.Bool("infer-size", false, "即使容器已有尺寸也重新推算")
	f.String("subcircuit", "", "只布局该子电路")
	f.Bool("nested", false, "先由内向外布局所有子电路")
	f.String("debug-report", "", "布局报告 JSON 输出路径")
	bind := map[string]string{
		"layout.direction":            "direction",
		"layout.justify_content":      "justify",
		"layout.align_items":          "align",
		"layout.column_gap":           "column-gap",
		"layout.row_gap":              "row-gap",
		"layout.infer_container_size": "infer-size",
		"layout.subcircuit":           "subcircuit",
		"layout.nested":               "nested",
		"layout.debug_report":         "debug-report",
	}
	for key, name := range bind {
		_ = a.v.BindPFlag(key, f.Lookup(name))
	}
	return cmd
}

// runLayout 按配置执行单次或嵌套布局，并按需写出布局报告。
func (a *app) runLayout(elements []circuit.Element) ([]circuit.Element, error) {
	opts := a.cfg.LayoutOptions()
	opts.Logger = a.log.Named("layout")

	var (
		out []circuit.Element
		rep *layout.Report
		err error
	)
	if a.cfg.Layout.Nested {
		out, rep, err = layout.LayoutNestedWithReport(elements, opts)
	} else {
		out, rep, err = layout.LayoutWithReport(elements, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("布局计算失败: %w", err)
	}

	a.log.Info("layout finished",
		zap.Bool("noop", rep.NoOp),
		zap.String("container", rep.Container.ID),
		zap.Int("items", len(rep.Items)),
		zap.Strings("skipped", rep.Skipped))

	if path := a.cfg.Layout.DebugReport; path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("创建调试目录失败: %w", err)
		}
		if err := layout.WriteDebugJSON(rep, path); err != nil {
			return nil, fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}
	return out, nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ByLCY/pcbflex/renderer"
	canvasrenderer "github.com/ByLCY/pcbflex/renderer/canvas"
)

func newRenderCommand(a *app) *cobra.Command {
	var (
		out       string
		runLayout bool
	)
	cmd := &cobra.Command{
		Use:   "render [input]",
		Short: "Draw the board, groups, components and pads as SVG, PDF or PNG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			elements, err := loadElements(inputArg(args), cmd.InOrStdin())
			if err != nil {
				return err
			}
			if runLayout {
				if elements, err = a.runLayout(elements); err != nil {
					return err
				}
			}

			rc := a.cfg.Render
			var format renderer.Format
			if rc.Format != "" {
				format, err = renderer.ParseFormat(rc.Format)
			} else {
				format, err = renderer.FormatFromPath(out)
			}
			if err != nil {
				return err
			}

			var r renderer.Renderer = canvasrenderer.NewRenderer(canvasrenderer.Options{
				Format: format,
				Margin: rc.Margin,
				DPMM:   rc.DPMM,
			})
			data, err := r.Render(elements)
			if err != nil {
				return fmt.Errorf("渲染失败: %w", err)
			}
			a.log.Info("rendered", zap.String("format", string(format)), zap.Int("bytes", len(data)))
			return writeOutput(out, data, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&out, "out", "o", "", "输出路径，扩展名决定格式（- 表示 stdout，此时需指定 --format）")
	f.BoolVar(&runLayout, "layout", false, "渲染前先按配置执行布局")
	f.String("format", "", "svg / pdf / png")
	f.Float64("margin", 0, "画布留白（mm）")
	f.Float64("dpmm", 0, "PNG 分辨率（像素/mm）")
	_ = cmd.MarkFlagRequired("out")
	_ = a.v.BindPFlag("render.format", f.Lookup("format"))
	_ = a.v.BindPFlag("render.margin", f.Lookup("margin"))
	_ = a.v.BindPFlag("render.dpmm", f.Lookup("dpmm"))
	return cmd
}

// Package cmd 实现 pcbflex 命令行：layout 对 Circuit JSON 执行 flex 布局，render 将结果绘制为图像。
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ByLCY/pcbflex/config"
	"github.com/ByLCY/pcbflex/observability"
)

// app 保存一次命令执行期间共享的配置与日志。
type app struct {
	cfgFile string
	v       *viper.Viper
	cfg     *config.Config
	log     *zap.Logger
}

// NewRootCommand 构建完整的命令树。每次调用使用独立的 viper 实例。
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New(), log: zap.NewNop()}
	config.SetDefaults(a.v)

	root := &cobra.Command{
		Use:           "pcbflex",
		Short:         "Arrange PCB circuit JSON with a flexbox layout.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initialize()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			observability.Sync()
		},
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "配置文件（默认 ./pcbflex.yaml）")
	root.PersistentFlags().String("log-level", "", "日志级别：debug / info / warn / error")
	_ = a.v.BindPFlag("logger.level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(newLayoutCommand(a), newRenderCommand(a), newVersionCommand())
	return root
}

// Execute 运行命令行，失败时以非零状态退出。
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		observability.GetLogger().Error("command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "错误:", err)
		observability.Sync()
		os.Exit(1)
	}
}

// initialize 读取配置文件与 PCBFLEX_ 环境变量，随后初始化日志。
func (a *app) initialize() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.AddConfigPath(".")
		a.v.SetConfigName("pcbflex")
		a.v.SetConfigType("yaml")
	}
	a.v.SetEnvPrefix("PCBFLEX")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	cfg, err := config.NewConfigFromViper(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	observability.InitializeLogger(cfg.Logger)
	a.log = observability.GetLogger()
	a.log.Debug("configuration loaded", zap.String("file", a.v.ConfigFileUsed()))
	return nil
}

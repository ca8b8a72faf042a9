// Package config 读取 pcbflex 命令行使用的配置：配置文件、环境变量（PCBFLEX_ 前缀）与命令行参数。
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/ByLCY/pcbflex/layout"
	"github.com/ByLCY/pcbflex/renderer"
)

// ErrInvalidConfig 表示配置值无法使用。
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config 是完整配置。
type Config struct {
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Layout LayoutConfig `mapstructure:"layout" yaml:"layout"`
	Render RenderConfig `mapstructure:"render" yaml:"render"`
}

// LoggerConfig 配置日志输出与日志文件轮转。
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig 为控制台输出中各日志级别的颜色名。
type ColorConfig struct {
	Debug string `mapstructure:"debug" yaml:"debug"`
	Info  string `mapstructure:"info" yaml:"info"`
	Warn  string `mapstructure:"warn" yaml:"warn"`
	Error string `mapstructure:"error" yaml:"error"`
}

// LayoutConfig 对应 layout.Options 中可配置的部分。
type LayoutConfig struct {
	Direction          string  `mapstructure:"direction" yaml:"direction"`
	JustifyContent     string  `mapstructure:"justify_content" yaml:"justify_content"`
	AlignItems         string  `mapstructure:"align_items" yaml:"align_items"`
	ColumnGap          float64 `mapstructure:"column_gap" yaml:"column_gap"`
	RowGap             float64 `mapstructure:"row_gap" yaml:"row_gap"`
	InferContainerSize bool    `mapstructure:"infer_container_size" yaml:"infer_container_size"`
	Subcircuit         string  `mapstructure:"subcircuit" yaml:"subcircuit"`
	// Nested 为 true 时先由内向外布局所有子电路。
	Nested bool `mapstructure:"nested" yaml:"nested"`
	// DebugReport 非空时把布局报告写到该路径。
	DebugReport string `mapstructure:"debug_report" yaml:"debug_report"`
}

// RenderConfig 配置 render 子命令。
type RenderConfig struct {
	Format string  `mapstructure:"format" yaml:"format"`
	Margin float64 `mapstructure:"margin" yaml:"margin"`
	DPMM   float64 `mapstructure:"dpmm" yaml:"dpmm"`
}

// SetDefaults 注册全部默认值。
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "pcbflex")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")

	// -- Layout --
	d := layout.DefaultOptions()
	v.SetDefault("layout.direction", d.Direction)
	v.SetDefault("layout.justify_content", d.JustifyContent)
	v.SetDefault("layout.align_items", d.AlignItems)
	v.SetDefault("layout.column_gap", 0.0)
	v.SetDefault("layout.row_gap", 0.0)
	v.SetDefault("layout.infer_container_size", false)
	v.SetDefault("layout.subcircuit", "")
	v.SetDefault("layout.nested", false)
	v.SetDefault("layout.debug_report", "")

	// -- Render --
	v.SetDefault("render.format", "")
	v.SetDefault("render.margin", 2.0)
	v.SetDefault("render.dpmm", 10.0)
}

// NewDefaultConfig 返回只包含默认值的配置。
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// NewConfigFromViper 从 viper 实例解析并校验配置。
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 检查配置取值。
func (c *Config) Validate() error {
	if err := c.LayoutOptions().Validate(); err != nil {
		return fmt.Errorf("%w: layout: %w", ErrInvalidConfig, err)
	}
	if _, err := renderer.ParseFormat(c.Render.Format); err != nil {
		return fmt.Errorf("%w: render.format: %w", ErrInvalidConfig, err)
	}
	if c.Render.Margin < 0 {
		return fmt.Errorf("%w: render.margin must be >= 0", ErrInvalidConfig)
	}
	if c.Render.DPMM <= 0 {
		return fmt.Errorf("%w: render.dpmm must be positive", ErrInvalidConfig)
	}
	if c.Logger.LogFile != "" && c.Logger.MaxSize <= 0 {
		return fmt.Errorf("%w: logger.max_size must be positive when log_file is set", ErrInvalidConfig)
	}
	return nil
}

// LayoutOptions 转换为 layout.Options（不含 Logger）。
func (c *Config) LayoutOptions() layout.Options {
	l := c.Layout
	return layout.Options{
		Direction:          l.Direction,
		JustifyContent:     l.JustifyContent,
		AlignItems:         l.AlignItems,
		ColumnGap:          l.ColumnGap,
		RowGap:             l.RowGap,
		InferContainerSize: l.InferContainerSize,
		Subcircuit:         l.Subcircuit,
	}
}

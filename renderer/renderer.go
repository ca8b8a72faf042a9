package renderer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ByLCY/pcbflex/circuit"
)

// Renderer 将电路元素绘制为最终文件，例如 SVG、PDF 或 PNG。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(elements []circuit.Element) ([]byte, error)
}

// Format 是输出文件格式。
type Format string

const (
	FormatSVG Format = "svg"
	FormatPDF Format = "pdf"
	FormatPNG Format = "png"
)

// ParseFormat 解析格式名，大小写不敏感；空串默认为 svg。
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatSVG, nil
	case FormatSVG, FormatPDF, FormatPNG:
		return f, nil
	default:
		return "", fmt.Errorf("不支持的输出格式: %q", s)
	}
}

// FormatFromPath 根据文件扩展名推断格式。
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("无法从文件名推断输出格式: %q", path)
	}
	return ParseFormat(ext)
}

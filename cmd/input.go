package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/pcbflex/circuit"
	"github.com/ByLCY/pcbflex/dsl"
)

// 以这些扩展名结尾的输入按板描述语言解析，其余按 Circuit JSON 解析。
var dslExtensions = map[string]bool{".board": true, ".pcbflex": true}

// loadElements 读取输入文件；path 为空或 "-" 时从 stdin 读取 Circuit JSON。
func loadElements(path string, stdin io.Reader) ([]circuit.Element, error) {
	if path == "" || path == "-" {
		elements, err := circuit.Decode(stdin)
		if err != nil {
			return nil, fmt.Errorf("解析标准输入失败: %w", err)
		}
		return elements, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开输入文件 %s: %w", path, err)
	}
	defer file.Close()

	if dslExtensions[strings.ToLower(filepath.Ext(path))] {
		doc, err := dsl.Parse(file)
		if err != nil {
			return nil, fmt.Errorf("解析板描述失败: %w", err)
		}
		return dsl.Compile(doc)
	}
	elements, err := circuit.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("解析 %s 失败: %w", path, err)
	}
	return elements, nil
}

// writeOutput 写出结果；path 为空或 "-" 时写到 stdout。
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	return nil
}

func inputArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

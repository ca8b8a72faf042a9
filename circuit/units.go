package circuit

import (
	"math"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// 本文件定义元素共用的“数值或字符串”尺寸类型。

// Unit 为字符串尺寸上的单位后缀。
type Unit int

const (
	UnitNone Unit = iota // 纯数字或未知后缀
	UnitMM               // 毫米
	UnitCM               // 厘米
	UnitIN               // 英寸
	UnitMil              // 千分之一英寸
	UnitPT               // 磅
)

// 换算到毫米的常量。
const (
	PtToMm  = 0.352777
	InToMm  = 25.4
	MilToMm = 0.0254
)

// UnitToString 返回单位的简写。
func UnitToString(u Unit) string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitMil:
		return "mil"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

func unitFromString(s string) Unit {
	switch strings.ToLower(s) {
	case "mm":
		return UnitMM
	case "cm":
		return UnitCM
	case "in":
		return UnitIN
	case "mil":
		return UnitMil
	case "pt":
		return UnitPT
	default:
		return UnitNone
	}
}

// Dimension 为 Circuit JSON 中的宽或高：数字、"10mm" 这样的字符串，或缺省。
//
// Value 始终是开头的数值字面量；保留单位只为写回原文，以及供需要毫米值的调用方换算。
type Dimension struct {
	Value float64
	Unit  Unit
	// Text 为原始字符串，源值为数字时为空。
	Text string
	// Present 表示源数据中是否有该键。
	Present bool
}

// Num 返回数值尺寸。
func Num(v float64) Dimension { return Dimension{Value: v, Present: true} }

// Known 判断尺寸是否为可用的正值。
func (d Dimension) Known() bool { return d.Value > 0 && !math.IsInf(d.Value, 0) }

// MM 按单位换算为毫米。Circuit JSON 中的纯数字本身即为毫米。
func (d Dimension) MM() float64 {
	switch d.Unit {
	case UnitCM:
		return d.Value * 10
	case UnitIN:
		return d.Value * InToMm
	case UnitMil:
		return d.Value * MilToMm
	case UnitPT:
		return d.Value * PtToMm
	default:
		return d.Value
	}
}

// ToNumber 为尺寸字段的强制转换规则：数字原样使用，字符串取开头的数值字面量，其他一律为 0。
func ToNumber(v any) float64 {
	return ParseDimension(v).Value
}

// ParseDimension 将解码后的 JSON 值转换为 Dimension。
func ParseDimension(v any) Dimension {
	switch x := v.(type) {
	case nil:
		return Dimension{}
	case float64:
		return sanitize(Dimension{Value: x, Present: true})
	case float32:
		return sanitize(Dimension{Value: float64(x), Present: true})
	case int:
		return Dimension{Value: float64(x), Present: true}
	case int64:
		return Dimension{Value: float64(x), Present: true}
	case string:
		d := ParseDimensionString(x)
		d.Present = true
		return d
	default:
		return Dimension{Present: true}
	}
}

func sanitize(d Dimension) Dimension {
	if math.IsNaN(d.Value) {
		d.Value = 0
	}
	return d
}

var (
	dimensionLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "Number", Pattern: `[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`},
		{Name: "Word", Pattern: `[A-Za-z%]+`},
		{Name: "Other", Pattern: `.`},
	})

	dimensionParser = participle.MustBuild[dimensionLiteral](
		participle.Lexer(dimensionLexer),
		participle.Elide("Whitespace"),
	)
)

// dimensionLiteral：开头的数字、可选的单位词及其后内容，只使用前两部分。
type dimensionLiteral struct {
	Number string   `parser:"@Number"`
	Unit   string   `parser:"@Word?"`
	Rest   []string `parser:"( @Number | @Word | @Other )*"`
}

// ParseDimensionString 解析字符串尺寸并保留单位。不以数字开头的字符串得到 0。
func ParseDimensionString(value string) Dimension {
	d := Dimension{Text: value}
	if strings.TrimSpace(value) == "" {
		return d
	}
	lit, err := dimensionParser.ParseString("", value)
	if err != nil || lit == nil {
		return d
	}
	f, err := strconv.ParseFloat(lit.Number, 64)
	if err != nil {
		// ErrRange 时 ParseFloat 仍返回 ±Inf 或 0，沿用该数值。
		if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
			return d
		}
	}
	d.Value = f
	d.Unit = unitFromString(lit.Unit)
	return d
}

// jsonValue 返回写回 JSON 的值：有原始字符串时用原文，否则用数字。
func (d Dimension) jsonValue() any {
	if d.Text != "" {
		return d.Text
	}
	return d.Value
}

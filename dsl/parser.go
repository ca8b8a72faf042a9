// Package dsl 解析一种简单的电路板描述语言：
//
//	board main width 12mm height 10mm {
//	  resistor R1
//	  group power subcircuit width 10mm height 10mm {
//	    capacitor C1 size 1.6 0.8 at 2, -1
//	  }
//	}
//
// 并将其编译为 Circuit JSON 元素。
package dsl

import (
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	boardLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `[-+]?(?:\d+\.\d+|\d+|\.\d+)(?:mm|cm|in|mil|pt)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[,;:=]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(boardLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
		participle.Unquote("String"),
	)
)

// Document 为 AST 根节点：恰好一个顶层 board 或 group。
type Document struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Root *Container     `parser:"Newline* @@ Newline*"`
}

// Container 为 board 或 group，其中包含元件与嵌套分组。
type Container struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Kind  string         `parser:"@( 'board' | 'group' )"`
	Name  string         `parser:"@( Ident | String )"`
	Attrs []*Attr        `parser:"@@*"`
	Body  []*Statement   `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Statement 为容器内的一条语句。
type Statement struct {
	Group *Container `parser:"  @@"`
	Part  *Part      `parser:"| @@"`
}

// Part 放置一个元件，例如 `resistor R1 size 1 0.5 at 0, 2`。
type Part struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Kind  string         `parser:"@Ident"`
	Name  string         `parser:"@( Ident | String )"`
	Attrs []*Attr        `parser:"@@*"`
}

// Attr 为容器或元件后附的一个属性。
type Attr struct {
	Subcircuit bool       `parser:"  @'subcircuit'"`
	Width      *string    `parser:"| 'width' @Number"`
	Height     *string    `parser:"| 'height' @Number"`
	Size       *SizeSpec  `parser:"| 'size' @@"`
	At         *PointSpec `parser:"| 'at' @@"`
}

// SizeSpec 即 `size <w> <h>`。
type SizeSpec struct {
	Width  string `parser:"@Number"`
	Height string `parser:"@Number"`
}

// PointSpec 即 `at <x>, <y>`，逗号可省略。
type PointSpec struct {
	X string `parser:"@Number ','?"`
	Y string `parser:"@Number"`
}

// Parse 从 io.Reader 解析 DSL 内容。
func Parse(r io.Reader) (*Document, error) {
	return documentParser.Parse("", r)
}

// ParseString 从字符串解析 DSL 内容。
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}

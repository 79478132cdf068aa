// Package astdump 把语法树输出为缩进文本、Graphviz DOT 或 YAML。
// 只依赖节点的 Label 和 Children。
package astdump

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tangzhangming/lume/internal/parser"
)

// ErrUnknownFormat 无法识别的输出格式
var ErrUnknownFormat = errors.New("unknown output format")

// Format 输出格式
type Format int

const (
	FormatTree Format = iota
	FormatDOT
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTree:
		return "tree"
	case FormatDOT:
		return "dot"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// Extension 返回该格式的文件扩展名
func (f Format) Extension() string {
	switch f {
	case FormatDOT:
		return ".dot"
	case FormatYAML:
		return ".yaml"
	}
	return ".txt"
}

// ParseFormat 解析格式名
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "tree", "text":
		return FormatTree, nil
	case "dot", "graphviz":
		return FormatDOT, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return FormatTree, fmt.Errorf("%w %q", ErrUnknownFormat, name)
}

// Write 按格式输出
func Write(w io.Writer, root *parser.Statement, format Format) error {
	switch format {
	case FormatDOT:
		return WriteDOT(w, root)
	case FormatYAML:
		return WriteYAML(w, root)
	case FormatTree:
		return WriteTree(w, root)
	}
	return fmt.Errorf("%w %d", ErrUnknownFormat, int(format))
}

// WriteTree 输出缩进文本，每层缩进两个空格
func WriteTree(w io.Writer, root *parser.Statement) error {
	bw := bufio.NewWriter(w)
	writeTreeNode(bw, root, 0)
	return bw.Flush()
}

func writeTreeNode(w *bufio.Writer, s *parser.Statement, depth int) {
	if s == nil {
		return
	}
	w.WriteString(strings.Repeat("  ", depth))
	w.WriteString(s.Label())
	w.WriteByte('\n')
	for _, c := range s.Children() {
		writeTreeNode(w, c, depth+1)
	}
}

// WriteDOT 输出 Graphviz 有向图，节点按先序编号 node0, node1, ...
func WriteDOT(w io.Writer, root *parser.Statement) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("digraph AST {\n")
	if root != nil {
		id := 0
		writeDOTNode(bw, root, &id, -1)
	}
	bw.WriteString("}\n")
	return bw.Flush()
}

func writeDOTNode(w *bufio.Writer, s *parser.Statement, id *int, parent int) {
	self := *id
	*id++

	fmt.Fprintf(w, "  node%d [label=\"%s\"];\n", self, escapeDOT(s.Label()))
	if parent >= 0 {
		fmt.Fprintf(w, "  node%d -> node%d;\n", parent, self)
	}
	for _, c := range s.Children() {
		writeDOTNode(w, c, id, self)
	}
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func escapeDOT(label string) string {
	return dotEscaper.Replace(label)
}

type yamlNode struct {
	Label    string      `yaml:"label"`
	Line     int         `yaml:"line"`
	Children []*yamlNode `yaml:"children,omitempty"`
}

func toYAML(s *parser.Statement) *yamlNode {
	n := &yamlNode{Label: s.Label(), Line: s.Token.Line}
	for _, c := range s.Children() {
		n.Children = append(n.Children, toYAML(c))
	}
	return n
}

// WriteYAML 输出 YAML 文档
func WriteYAML(w io.Writer, root *parser.Statement) error {
	if root == nil {
		_, err := io.WriteString(w, "null\n")
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toYAML(root)); err != nil {
		return err
	}
	return enc.Close()
}

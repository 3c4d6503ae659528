// Package pysrc extracts structural outlines from Python source. An outline
// is the tree of class and function definitions with canonicalized headers,
// independent of formatting, so two files can be compared by shape rather
// than by bytes. It uses Tree-sitter for accurate parsing.
package pysrc

import (
	"context"
	"strings"

	"github.com/glorpus-work/goldfix/pkg/errors"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// NodeKind classifies an outline node.
type NodeKind string

const (
	// KindClass marks a class definition.
	KindClass NodeKind = "class"
	// KindFunction marks a function or method definition.
	KindFunction NodeKind = "function"
)

// Node is one definition in the outline.
type Node struct {
	Kind       NodeKind `json:"kind"`
	Name       string   `json:"name"`
	Signature  string   `json:"signature"`
	Decorators []string `json:"decorators,omitempty"`
	StartLine  int      `json:"start_line"`
	EndLine    int      `json:"end_line"`
	Children   []*Node  `json:"children,omitempty"`
}

// Module is the outline of one source file.
type Module struct {
	Nodes []*Node `json:"nodes"`
}

// Parser turns Python source into outlines.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a new Python outline parser. A Parser is not safe for
// concurrent use; Outline creates one per call.
func NewParser() *Parser {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	return &Parser{parser: parser}
}

// Outline parses content with a fresh parser.
func Outline(ctx context.Context, content []byte) (*Module, error) {
	return NewParser().Outline(ctx, content)
}

// Outline parses content and extracts its definition tree. Content that does
// not parse as Python yields ErrSyntax.
func (p *Parser) Outline(ctx context.Context, content []byte) (*Module, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, errors.Wrapf(ErrSyntax, "near line %d", firstErrorLine(root))
	}

	module := &Module{}
	collect(root, content, &module.Nodes)
	return module, nil
}

// collect walks the AST and extracts class and function definitions.
func collect(node *sitter.Node, content []byte, out *[]*Node) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)

		switch child.Type() {
		case "class_definition":
			if n := describeClass(child, content); n != nil {
				*out = append(*out, n)
			}

		case "function_definition":
			if n := describeFunction(child, content); n != nil {
				*out = append(*out, n)
			}

		case "decorated_definition":
			decorators := collectDecorators(child, content)
			for j := 0; j < int(child.NamedChildCount()); j++ {
				inner := child.NamedChild(j)
				var n *Node
				switch inner.Type() {
				case "class_definition":
					n = describeClass(inner, content)
				case "function_definition":
					n = describeFunction(inner, content)
				}
				if n != nil {
					// Include the decorators in the definition's span
					n.StartLine = int(child.StartPoint().Row) + 1
					n.Decorators = decorators
					*out = append(*out, n)
				}
			}

		default:
			// Recurse into other compound statements
			collect(child, content, out)
		}
	}
}

func describeClass(node *sitter.Node, content []byte) *Node {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := string(content[nameNode.StartByte():nameNode.EndByte()])

	signature := "class " + name
	if supers := node.ChildByFieldName("superclasses"); supers != nil {
		signature += canonical(string(content[supers.StartByte():supers.EndByte()]))
	}

	n := &Node{
		Kind:      KindClass,
		Name:      name,
		Signature: signature,
		StartLine: int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
	}
	if body := node.ChildByFieldName("body"); body != nil {
		collect(body, content, &n.Children)
	}
	return n
}

func describeFunction(node *sitter.Node, content []byte) *Node {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := string(content[nameNode.StartByte():nameNode.EndByte()])

	signature := "def " + name
	if params := node.ChildByFieldName("parameters"); params != nil {
		signature += canonical(string(content[params.StartByte():params.EndByte()]))
	}
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		signature += "->" + canonical(string(content[ret.StartByte():ret.EndByte()]))
	}

	n := &Node{
		Kind:      KindFunction,
		Name:      name,
		Signature: signature,
		StartLine: int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
	}
	if body := node.ChildByFieldName("body"); body != nil {
		collect(body, content, &n.Children)
	}
	return n
}

// collectDecorators extracts decorator names from a decorated definition.
func collectDecorators(node *sitter.Node, content []byte) []string {
	var decorators []string
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != "decorator" {
			continue
		}
		dec := strings.TrimPrefix(strings.TrimSpace(string(content[child.StartByte():child.EndByte()])), "@")
		if idx := strings.Index(dec, "("); idx > 0 {
			dec = dec[:idx]
		}
		if dec != "" {
			decorators = append(decorators, dec)
		}
	}
	return decorators
}

// firstErrorLine locates the first parse error for diagnostics.
func firstErrorLine(node *sitter.Node) int {
	if node.Type() == "ERROR" || node.IsMissing() {
		return int(node.StartPoint().Row) + 1
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if !child.HasError() {
			continue
		}
		if line := firstErrorLine(child); line > 0 {
			return line
		}
	}
	if node.HasError() {
		return int(node.StartPoint().Row) + 1
	}
	return 0
}

// canonical strips all whitespace from a header fragment, so formatting
// differences inside parameter and base lists do not affect the signature.
func canonical(s string) string {
	return strings.Join(strings.Fields(s), "")
}

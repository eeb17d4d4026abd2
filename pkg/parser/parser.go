// Package parser wraps tree-sitter for multi-language source parsing.
// It is the collaborator boundary between raw source text and the
// language-neutral trees the metric analyzers consume.
package parser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Language represents a supported programming language.
type Language string

const (
	LangGo         Language = "go"
	LangRust       Language = "rust"
	LangPython     Language = "python"
	LangTypeScript Language = "typescript"
	LangJavaScript Language = "javascript"
	LangTSX        Language = "tsx"
	LangJava       Language = "java"
	LangC          Language = "c"
	LangCPP        Language = "cpp"
	LangCSharp     Language = "csharp"
	LangRuby       Language = "ruby"
	LangPHP        Language = "php"
	LangBash       Language = "bash"
	LangUnknown    Language = "unknown"
)

// Parser wraps a tree-sitter parser instance.
type Parser struct {
	parser *sitter.Parser
}

// ParseResult contains the parsed AST and its source.
type ParseResult struct {
	Tree     *sitter.Tree
	Language Language
	Source   []byte
	Path     string
}

// New creates a new parser instance.
func New() *Parser {
	return &Parser{parser: sitter.NewParser()}
}

// ParseFile reads and parses a source file.
func (p *Parser) ParseFile(path string) (*ParseResult, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	lang := DetectLanguage(path)
	if lang == LangUnknown {
		return nil, fmt.Errorf("unsupported language for file: %s", path)
	}

	return p.Parse(source, lang, path)
}

// Parse parses source code with a specified language.
func (p *Parser) Parse(source []byte, lang Language, path string) (*ParseResult, error) {
	tsLang, err := treeSitterLanguage(lang)
	if err != nil {
		return nil, err
	}

	p.parser.SetLanguage(tsLang)
	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse: %w", err)
	}

	return &ParseResult{
		Tree:     tree,
		Language: lang,
		Source:   source,
		Path:     path,
	}, nil
}

// Close releases parser resources.
func (p *Parser) Close() {
	p.parser.Close()
}

func treeSitterLanguage(lang Language) (*sitter.Language, error) {
	switch lang {
	case LangGo:
		return golang.GetLanguage(), nil
	case LangRust:
		return rust.GetLanguage(), nil
	case LangPython:
		return python.GetLanguage(), nil
	case LangTypeScript:
		return typescript.GetLanguage(), nil
	case LangTSX:
		return tsx.GetLanguage(), nil
	case LangJavaScript:
		return javascript.GetLanguage(), nil
	case LangJava:
		return java.GetLanguage(), nil
	case LangC:
		return c.GetLanguage(), nil
	case LangCPP:
		return cpp.GetLanguage(), nil
	case LangCSharp:
		return csharp.GetLanguage(), nil
	case LangRuby:
		return ruby.GetLanguage(), nil
	case LangPHP:
		return php.GetLanguage(), nil
	case LangBash:
		return bash.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
}

// DetectLanguage determines the language from a file path.
func DetectLanguage(path string) Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		return LangGo
	case ".rs":
		return LangRust
	case ".py", ".pyw", ".pyi":
		return LangPython
	case ".ts":
		return LangTypeScript
	case ".tsx", ".jsx":
		return LangTSX
	case ".js", ".mjs", ".cjs":
		return LangJavaScript
	case ".java":
		return LangJava
	case ".c", ".h":
		return LangC
	case ".cpp", ".cc", ".cxx", ".hpp", ".hxx":
		return LangCPP
	case ".cs":
		return LangCSharp
	case ".rb":
		return LangRuby
	case ".php":
		return LangPHP
	case ".sh", ".bash":
		return LangBash
	default:
		return LangUnknown
	}
}

// NodeVisitor is a function that visits AST nodes. Returning false stops
// descent into the node's children.
type NodeVisitor func(node *sitter.Node, source []byte) bool

// Walk traverses the AST calling visitor for each node.
func Walk(node *sitter.Node, source []byte, visitor NodeVisitor) {
	if node == nil {
		return
	}

	if !visitor(node, source) {
		return
	}

	for i := range int(node.ChildCount()) {
		Walk(node.Child(i), source, visitor)
	}
}

// GetNodeText extracts the source text for a node. Returns an empty
// string for nil nodes or out-of-bounds spans.
func GetNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start := node.StartByte()
	end := node.EndByte()
	if start > end || end > uint32(len(source)) {
		return ""
	}
	return string(source[start:end])
}

// FunctionNode represents a parsed function or method.
type FunctionNode struct {
	Name      string
	StartLine uint32
	EndLine   uint32
	Body      *sitter.Node
}

// GetFunctions extracts all function definitions from parsed code.
func GetFunctions(result *ParseResult) []FunctionNode {
	var functions []FunctionNode
	funcTypes := toSet(functionNodeTypes(result.Language))

	Walk(result.Tree.RootNode(), result.Source, func(node *sitter.Node, source []byte) bool {
		if funcTypes[node.Type()] {
			functions = append(functions, extractFunction(node, source, result.Language))
		}
		return true
	})

	return functions
}

func functionNodeTypes(lang Language) []string {
	switch lang {
	case LangGo:
		return []string{"function_declaration", "method_declaration"}
	case LangRust:
		return []string{"function_item"}
	case LangPython:
		return []string{"function_definition"}
	case LangTypeScript, LangJavaScript, LangTSX:
		return []string{"function_declaration", "function", "arrow_function", "method_definition"}
	case LangJava, LangCSharp:
		return []string{"method_declaration", "constructor_declaration"}
	case LangC, LangCPP:
		return []string{"function_definition"}
	case LangRuby:
		return []string{"method", "singleton_method"}
	case LangPHP:
		return []string{"function_definition", "method_declaration"}
	default:
		return nil
	}
}

func extractFunction(node *sitter.Node, source []byte, lang Language) FunctionNode {
	fn := FunctionNode{
		StartLine: node.StartPoint().Row + 1,
		EndLine:   node.EndPoint().Row + 1,
	}

	switch lang {
	case LangC, LangCPP:
		// C/C++ function names sit inside the declarator chain.
		if declNode := node.ChildByFieldName("declarator"); declNode != nil {
			if nameNode := declNode.ChildByFieldName("declarator"); nameNode != nil {
				fn.Name = GetNodeText(nameNode, source)
			}
		}
	default:
		if nameNode := node.ChildByFieldName("name"); nameNode != nil {
			fn.Name = GetNodeText(nameNode, source)
		}
	}

	fn.Body = node.ChildByFieldName("body")
	if fn.Body == nil {
		fn.Body = node.ChildByFieldName("block")
	}
	if fn.Body == nil {
		// Ruby method bodies use body_statement.
		fn.Body = node.ChildByFieldName("body_statement")
	}

	return fn
}

// ClassNode represents a parsed class-like declaration together with its
// direct superclass references.
type ClassNode struct {
	Name         string
	StartLine    uint32
	EndLine      uint32
	Superclasses []string
}

// GetClasses extracts all class definitions from parsed code.
func GetClasses(result *ParseResult) []ClassNode {
	var classes []ClassNode
	classTypes := toSet(classNodeTypes(result.Language))

	Walk(result.Tree.RootNode(), result.Source, func(node *sitter.Node, source []byte) bool {
		if classTypes[node.Type()] {
			classes = append(classes, extractClass(node, source, result.Language))
			return false // don't descend into nested class bodies
		}
		return true
	})

	return classes
}

func classNodeTypes(lang Language) []string {
	switch lang {
	case LangPython:
		return []string{"class_definition"}
	case LangTypeScript, LangJavaScript, LangTSX:
		return []string{"class_declaration", "class"}
	case LangJava:
		return []string{"class_declaration", "interface_declaration"}
	case LangCPP:
		return []string{"class_specifier", "struct_specifier"}
	case LangCSharp:
		return []string{"class_declaration", "interface_declaration", "struct_declaration"}
	case LangRuby:
		return []string{"class"}
	case LangPHP:
		return []string{"class_declaration", "interface_declaration", "trait_declaration"}
	case LangRust:
		return []string{"struct_item"}
	case LangGo:
		return []string{"type_declaration"}
	default:
		return nil
	}
}

func extractClass(node *sitter.Node, source []byte, lang Language) ClassNode {
	cls := ClassNode{
		StartLine: node.StartPoint().Row + 1,
		EndLine:   node.EndPoint().Row + 1,
	}

	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		cls.Name = GetNodeText(nameNode, source)
	}

	cls.Superclasses = extractSuperclasses(node, source, lang)
	return cls
}

// extractSuperclasses returns the direct parent references of a class
// declaration. Only direct parents are reported, not the full ancestor
// chain.
func extractSuperclasses(node *sitter.Node, source []byte, lang Language) []string {
	var parents []string

	appendIdentifiers := func(list *sitter.Node) {
		if list == nil {
			return
		}
		for i := range int(list.NamedChildCount()) {
			child := list.NamedChild(i)
			switch child.Type() {
			case "identifier", "attribute", "type_identifier", "scoped_identifier",
				"scoped_type_identifier", "constant", "qualified_name", "generic_type",
				"base_class_clause_item", "member_expression":
				parents = append(parents, GetNodeText(child, source))
			}
		}
	}

	switch lang {
	case LangPython:
		appendIdentifiers(node.ChildByFieldName("superclasses"))
	case LangJava:
		if sc := node.ChildByFieldName("superclass"); sc != nil {
			for i := range int(sc.NamedChildCount()) {
				parents = append(parents, GetNodeText(sc.NamedChild(i), source))
			}
		}
		if ifaces := node.ChildByFieldName("interfaces"); ifaces != nil {
			for i := range int(ifaces.NamedChildCount()) {
				appendIdentifiers(ifaces.NamedChild(i))
			}
		}
	case LangTypeScript, LangJavaScript, LangTSX:
		for i := range int(node.NamedChildCount()) {
			child := node.NamedChild(i)
			if child.Type() == "class_heritage" {
				appendIdentifiers(child)
				// extends_clause / implements_clause nest one level deeper
				for j := range int(child.NamedChildCount()) {
					appendIdentifiers(child.NamedChild(j))
				}
			}
		}
	case LangRuby:
		if sc := node.ChildByFieldName("superclass"); sc != nil {
			for i := range int(sc.NamedChildCount()) {
				parents = append(parents, GetNodeText(sc.NamedChild(i), source))
			}
		}
	case LangPHP:
		for i := range int(node.NamedChildCount()) {
			child := node.NamedChild(i)
			if child.Type() == "base_clause" || child.Type() == "class_interface_clause" {
				appendIdentifiers(child)
			}
		}
	case LangCPP:
		for i := range int(node.NamedChildCount()) {
			child := node.NamedChild(i)
			if child.Type() == "base_class_clause" {
				appendIdentifiers(child)
			}
		}
	case LangCSharp:
		for i := range int(node.NamedChildCount()) {
			child := node.NamedChild(i)
			if child.Type() == "base_list" {
				appendIdentifiers(child)
			}
		}
	}

	return parents
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

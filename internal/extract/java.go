//go:build cgo

// Package extract produces declaration records from Java source files.
// It is the parsing collaborator for the analysis core: the core only
// ever sees the records, never a live syntax tree.
//
// Two sources are supported: tree-sitter parsing of raw .java content,
// and a pre-built SCIP index (scip-java output).
package extract

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"stacklens/internal/features"
	"stacklens/internal/model"
)

// Node types of interest in the tree-sitter Java grammar.
var (
	classNodeTypes = []string{
		"class_declaration",
		"interface_declaration",
		"enum_declaration",
		"record_declaration",
		"annotation_type_declaration",
	}
	methodNodeTypes = []string{
		"method_declaration",
		"constructor_declaration",
	}
	annotationNodeTypes = []string{
		"annotation",
		"marker_annotation",
	}
	decisionNodeTypes = []string{
		"if_statement",
		"for_statement",
		"enhanced_for_statement",
		"while_statement",
		"do_statement",
		"switch_expression",
		"switch_block_statement_group",
		"catch_clause",
		"ternary_expression",
	}
)

// Extractor parses Java sources with tree-sitter.
type Extractor struct {
	parser *sitter.Parser
}

// NewExtractor creates a new Java declaration extractor.
func NewExtractor() *Extractor {
	return &Extractor{parser: sitter.NewParser()}
}

// IsAvailable reports whether tree-sitter extraction is compiled in.
func IsAvailable() bool {
	return true
}

// ExtractFile parses one source file into a declaration record.
// A file that fails to parse yields a record with ParseFailed set and
// no declarations; extraction itself never fails.
func (e *Extractor) ExtractFile(ctx context.Context, file model.SourceFile) features.FileRecord {
	rec := features.FileRecord{Path: file.Path}

	e.parser.SetLanguage(java.GetLanguage())
	tree, err := e.parser.ParseCtx(ctx, nil, []byte(file.Content))
	if err != nil || tree == nil {
		rec.ParseFailed = true
		return rec
	}
	root := tree.RootNode()
	if root == nil || root.HasError() && root.NamedChildCount() == 0 {
		rec.ParseFailed = true
		return rec
	}

	rec.Imports = len(findNodes(root, []string{"import_declaration"}))

	for _, cls := range findNodes(root, classNodeTypes) {
		rec.Classes = append(rec.Classes, features.ClassDecl{
			Name:        nodeName(cls, file.Content),
			Annotations: countAnnotations(cls),
		})
	}

	for _, m := range findNodes(root, methodNodeTypes) {
		rec.Methods = append(rec.Methods, features.MethodDecl{
			Name:        nodeName(m, file.Content),
			Annotations: countAnnotations(m),
			StartLine:   int(m.StartPoint().Row) + 1,
			EndLine:     int(m.EndPoint().Row) + 1,
			Complexity:  methodComplexity(m),
		})
	}

	return rec
}

// ExtractAll extracts records for every file, in input order.
func (e *Extractor) ExtractAll(ctx context.Context, files []model.SourceFile) []features.FileRecord {
	records := make([]features.FileRecord, 0, len(files))
	for _, f := range files {
		records = append(records, e.ExtractFile(ctx, f))
	}
	return records
}

// nodeName returns the declared name of a class or method node.
func nodeName(node *sitter.Node, source string) string {
	name := node.ChildByFieldName("name")
	if name == nil {
		return ""
	}
	return source[name.StartByte():name.EndByte()]
}

// countAnnotations counts annotation nodes in a declaration's
// modifiers list.
func countAnnotations(decl *sitter.Node) int {
	count := 0
	for i := uint32(0); i < decl.ChildCount(); i++ {
		child := decl.Child(int(i))
		if child == nil || child.Type() != "modifiers" {
			continue
		}
		for j := uint32(0); j < child.ChildCount(); j++ {
			mod := child.Child(int(j))
			if mod != nil && typeIn(mod.Type(), annotationNodeTypes) {
				count++
			}
		}
	}
	return count
}

// methodComplexity is a cyclomatic complexity estimate: decision
// points under the method body plus one.
func methodComplexity(method *sitter.Node) int {
	return 1 + len(findNodes(method, decisionNodeTypes))
}

// findNodes collects all descendants (including root) of the given
// types, in document order.
func findNodes(root *sitter.Node, types []string) []*sitter.Node {
	var result []*sitter.Node

	var walk func(*sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}
		if typeIn(node.Type(), types) {
			result = append(result, node)
		}
		for i := uint32(0); i < node.ChildCount(); i++ {
			walk(node.Child(int(i)))
		}
	}

	walk(root)
	return result
}

func typeIn(t string, types []string) bool {
	for _, candidate := range types {
		if t == candidate {
			return true
		}
	}
	return false
}

// Package context implements the Context Tree Builder (spec component C):
// a depth-first visitor over a model.Program that emits a tree of
// model.Context nodes (root, conditional, assignment).
package context

import (
	"fmt"

	"github.com/pathreach/analyzer/model"
)

// Build walks a validated Program and returns its Context tree. Warnings
// are non-fatal: an unrecognized node kind is skipped, never rejected,
// matching the AST Adapter's documented tolerance.
func Build(prog *model.Program) (*model.Context, []string) {
	b := &builder{}
	root := model.NewRootContext()

	for _, p := range prog.Params {
		root.Declare(p.Name, p.Type)
	}

	// Top-level const/let/var declarations (outside the function) behave
	// like any other typed declaration with initializer: they register a
	// type and, if present, establish an assignment binding that the
	// function body's free variables may resolve against.
	var prefix []*model.Node
	for _, child := range prog.Root.Children {
		if child.Kind == model.KindFirstStatement {
			prefix = append(prefix, child)
		}
	}

	var bodyStmts []*model.Node
	if prog.Body != nil {
		bodyStmts = prog.Body.Children
	}

	attach := &root.Children
	b.process(append(append([]*model.Node{}, prefix...), bodyStmts...), attach, root)

	return root, b.warnings
}

type builder struct {
	warnings []string
}

func (b *builder) warnf(line int, format string, args ...interface{}) {
	b.warnings = append(b.warnings, fmt.Sprintf("line %d: "+format, append([]interface{}{line}, args...)...))
}

// process walks stmts in order, threading the attach point (the slice a
// newly created Context should be appended to) and parent back-link
// forward. Assignment and Conditional contexts each become the attach
// point for everything that follows them on the same control path.
func (b *builder) process(stmts []*model.Node, attach *[]*model.Context, parent *model.Context) {
	if len(stmts) == 0 {
		return
	}
	stmt, rest := stmts[0], stmts[1:]

	switch stmt.Kind {
	case model.KindFirstStatement:
		b.processVarDeclWrapper(stmt, rest, attach, parent)

	case model.KindExpressionStatement:
		b.processExpressionStatement(stmt, rest, attach, parent)

	case model.KindIfStatement:
		b.processIfStatement(stmt, rest, attach, parent)

	case model.KindReturnStatement:
		// Terminal: the walk over the AST for side effects does nothing
		// further for a literal-or-identifier return expression, and no
		// context node is introduced. Anything after a return in the
		// same block is unreachable source and is not visited.

	default:
		b.warnf(stmt.Line, "unrecognized node kind %q, skipped", stmt.Kind)
		b.process(rest, attach, parent)
	}
}

func (b *builder) processVarDeclWrapper(stmt *model.Node, rest []*model.Node, attach *[]*model.Context, parent *model.Context) {
	list := stmt.Child(0) // VariableDeclarationList
	if list == nil {
		b.process(rest, attach, parent)
		return
	}
	for _, decl := range list.Children {
		if decl.Kind != model.KindVariableDeclaration {
			continue
		}
		// Only a *typed* VariableDeclaration registers into the symbol
		// table; an untyped local (its type always inferable from a
		// literal initializer in the accepted subset) is resolved via
		// SSA-at-usage substitution instead, never through the table.
		if typ := model.SymbolType(decl.Operator); typ != model.TypeUnknown {
			parent.Root().Declare(decl.Text, typ)
		}

		init := decl.Child(0)
		if init == nil {
			continue
		}
		assignCtx := &model.Context{
			Kind:       model.ContextAssignmentKind,
			Parent:     parent,
			Variable:   decl.Text,
			Expression: init,
		}
		*attach = append(*attach, assignCtx)
		parent = assignCtx
		attach = &assignCtx.Children
	}
	b.process(rest, attach, parent)
}

func (b *builder) processExpressionStatement(stmt *model.Node, rest []*model.Node, attach *[]*model.Context, parent *model.Context) {
	expr := stmt.Child(0)
	if expr != nil && expr.Kind == model.KindBinaryExpression && expr.Operator == model.OpAssign {
		lhs, rhs := expr.Child(0), expr.Child(1)
		assignCtx := &model.Context{
			Kind:       model.ContextAssignmentKind,
			Parent:     parent,
			Variable:   lhs.Text,
			Expression: rhs,
		}
		*attach = append(*attach, assignCtx)
		b.process(rest, &assignCtx.Children, assignCtx)
		return
	}
	// Any other expression statement (e.g. a call site): observed only.
	b.process(rest, attach, parent)
}

func (b *builder) processIfStatement(stmt *model.Node, rest []*model.Node, attach *[]*model.Context, parent *model.Context) {
	predicate := stmt.Child(0)
	thenBlock := stmt.Child(1)
	elseNode := stmt.Child(2)

	condCtx := &model.Context{
		Kind:      model.ContextConditionalKind,
		Parent:    parent,
		Predicate: predicate,
		LineStart: stmt.Line,
		LineEnd:   stmt.EndLine,
	}
	*attach = append(*attach, condCtx)

	var thenStmts []*model.Node
	if thenBlock != nil {
		thenStmts = thenBlock.Children
	}
	b.process(append(append([]*model.Node{}, thenStmts...), rest...), &condCtx.Then, condCtx)

	var elseStmts []*model.Node
	if elseNode != nil {
		switch elseNode.Kind {
		case model.KindIfStatement:
			elseStmts = []*model.Node{elseNode}
		case model.KindBlock:
			elseStmts = elseNode.Children
		}
	}
	// An `if` without `else` still yields a false-polarity path: the
	// negated predicate carries no body of its own, only whatever
	// follows the `if` in the enclosing block.
	b.process(append(append([]*model.Node{}, elseStmts...), rest...), &condCtx.Else, condCtx)
}

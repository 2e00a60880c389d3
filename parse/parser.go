package parse

import (
	"fmt"

	"github.com/pathreach/analyzer/model"
)

// Parse runs the Source Validator and AST Adapter together: it lexes and
// parses source text under the strict accepted dialect, returning a
// model.Program on success. Any parse error, type error, or use of an
// unsupported construct is collected as a diagnostic; if any diagnostics
// were produced the pipeline halts with a *model.PrecheckFailedError
// carrying the joined list, and Program is nil.
func Parse(source string) (*model.Program, error) {
	toks, lexErrs := lex(source)
	p := &parser{toks: toks}
	p.errs = append(p.errs, lexErrs...)

	prog := p.parseProgram()

	if len(p.errs) > 0 {
		return nil, &model.PrecheckFailedError{Diagnostics: p.errs}
	}
	return prog, nil
}

type parser struct {
	toks []token
	pos  int
	errs []string
}

func (p *parser) cur() token  { return p.toks[p.pos] }
func (p *parser) at(i int) token {
	if p.pos+i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+i]
}
func (p *parser) advance() token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) errorf(line int, format string, args ...interface{}) {
	p.errs = append(p.errs, fmt.Sprintf("line %d: %s", line, fmt.Sprintf(format, args...)))
}

// expect consumes a token matching kind+text, or records a diagnostic and
// synchronizes to the next statement boundary.
func (p *parser) expect(kind tokenKind, text string) token {
	t := p.cur()
	if t.kind == kind && (text == "" || t.text == text) {
		return p.advance()
	}
	p.errorf(t.line, "expected %q, found %q", text, t.text)
	p.synchronize()
	return t
}

// synchronize skips tokens until a likely statement/declaration boundary,
// so one syntax error does not suppress every later diagnostic.
func (p *parser) synchronize() {
	for p.cur().kind != tokEOF {
		t := p.cur()
		if t.kind == tokPunct && (t.text == ";" || t.text == "}") {
			p.advance()
			return
		}
		p.advance()
	}
}

func (p *parser) isPunct(text string) bool {
	t := p.cur()
	return t.kind == tokPunct && t.text == text
}

func (p *parser) isOp(text string) bool {
	t := p.cur()
	return t.kind == tokOp && t.text == text
}

func (p *parser) isKeyword(text string) bool {
	t := p.cur()
	return t.kind == tokKeyword && t.text == text
}

// --- top level ---

func (p *parser) parseProgram() *model.Program {
	prog := &model.Program{Root: &model.Node{Kind: model.KindSourceFile, Line: 1}}

	for p.cur().kind != tokEOF {
		switch {
		case p.isKeyword("const") || p.isKeyword("let") || p.isKeyword("var"):
			decl := p.parseVarDecl()
			prog.Root.Children = append(prog.Root.Children, decl)
		case p.isKeyword("function"):
			fn := p.parseFunctionDeclaration()
			prog.Root.Children = append(prog.Root.Children, fn)
			if prog.Body == nil {
				p.fillProgramFromFunction(prog, fn)
			} else {
				p.errorf(fn.Line, "only a single function declaration is supported")
			}
		case p.isKeyword("class"):
			cls := p.parseClassDeclaration()
			prog.Root.Children = append(prog.Root.Children, cls)
			if fn := findArrowFunctionMethod(cls); fn != nil {
				if prog.Body == nil {
					p.fillProgramFromArrow(prog, cls, fn)
				} else {
					p.errorf(cls.Line, "only a single function or class method is supported")
				}
			}
		default:
			// A trailing call site, or anything else: parse as an
			// expression statement and let the Builder's generic
			// dispatch observe-and-skip whatever it doesn't recognize.
			stmt := p.parseExpressionStatement()
			if call := stmt.Child(0); call != nil && call.Kind == model.KindCallExpression && len(p.errs) > 0 {
				// A call that is the whole statement is accepted: drop the
				// diagnostic parseCallExpression records last, which
				// applies only to calls nested inside expressions.
				p.errs = p.errs[:len(p.errs)-1]
			}
			prog.Root.Children = append(prog.Root.Children, stmt)
		}
	}

	if prog.Body == nil {
		p.errorf(1, "no function declaration found")
	}
	return prog
}

func (p *parser) fillProgramFromFunction(prog *model.Program, fn *model.Node) {
	prog.FunctionName = fn.Text
	prog.Params, prog.Body = extractParamsAndBody(fn)
}

func (p *parser) fillProgramFromArrow(prog *model.Program, cls *model.Node, fn *model.Node) {
	prog.FunctionName = cls.Text + "." + fn.Text
	params, body := extractParamsAndBody(fn.Child(0))
	prog.Params = params
	prog.Body = body
}

func extractParamsAndBody(fn *model.Node) ([]model.Param, *model.Node) {
	var params []model.Param
	var body *model.Node
	for _, c := range fn.Children {
		switch c.Kind {
		case model.KindParameter:
			params = append(params, model.Param{Name: c.Text, Type: model.SymbolType(c.Operator), Line: c.Line})
		case model.KindBlock:
			body = c
		}
	}
	return params, body
}

func findArrowFunctionMethod(cls *model.Node) *model.Node {
	for _, c := range cls.Children {
		if c.Kind == model.KindPropertyDeclaration {
			if arrow := c.Child(0); arrow != nil && arrow.Kind == model.KindArrowFunction {
				return &model.Node{Kind: model.KindArrowFunction, Text: c.Text, Line: c.Line, Children: []*model.Node{arrow}}
			}
		}
	}
	return nil
}

func (p *parser) parseTypeName() string {
	t := p.cur()
	if t.kind != tokIdent {
		p.errorf(t.line, "expected a type name, found %q", t.text)
		return ""
	}
	p.advance()
	if t.text != string(model.TypeInt) && t.text != string(model.TypeBool) {
		p.errorf(t.line, "unsupported type %q: only number and boolean are accepted", t.text)
	}
	return t.text
}

func (p *parser) parseParamList() []*model.Node {
	var params []*model.Node
	p.expect(tokPunct, "(")
	for !p.isPunct(")") && p.cur().kind != tokEOF {
		nameTok := p.expect(tokIdent, "")
		typ := ""
		if p.isPunct(":") {
			p.advance()
			typ = p.parseTypeName()
		} else {
			p.errorf(nameTok.line, "parameter %q requires a type annotation", nameTok.text)
		}
		params = append(params, &model.Node{Kind: model.KindParameter, Text: nameTok.text, Operator: typ, Line: nameTok.line})
		if p.isPunct(",") {
			p.advance()
		} else {
			break
		}
	}
	p.expect(tokPunct, ")")
	return params
}

func (p *parser) parseFunctionDeclaration() *model.Node {
	kw := p.expect(tokKeyword, "function")
	nameTok := p.expect(tokIdent, "")
	params := p.parseParamList()
	if p.isPunct(":") {
		p.advance()
		p.parseTypeName() // return type, observed only
	}
	body := p.parseBlock()

	node := &model.Node{Kind: model.KindFunctionDeclaration, Text: nameTok.text, Line: kw.line, EndLine: body.EndLine}
	node.Children = append(node.Children, params...)
	node.Children = append(node.Children, body)
	return node
}

func (p *parser) parseClassDeclaration() *model.Node {
	kw := p.expect(tokKeyword, "class")
	nameTok := p.expect(tokIdent, "")
	p.expect(tokPunct, "{")
	node := &model.Node{Kind: model.KindClassDeclaration, Text: nameTok.text, Line: kw.line}
	for !p.isPunct("}") && p.cur().kind != tokEOF {
		node.Children = append(node.Children, p.parsePropertyDeclaration())
	}
	end := p.expect(tokPunct, "}")
	node.EndLine = end.line
	return node
}

func (p *parser) parsePropertyDeclaration() *model.Node {
	nameTok := p.expect(tokIdent, "")
	p.expect(tokOp, "=")
	arrow := p.parseArrowFunction()
	if p.isPunct(";") {
		p.advance()
	}
	return &model.Node{Kind: model.KindPropertyDeclaration, Text: nameTok.text, Line: nameTok.line, Children: []*model.Node{arrow}}
}

func (p *parser) parseArrowFunction() *model.Node {
	start := p.cur()
	params := p.parseParamList()
	if p.isPunct(":") {
		p.advance()
		p.parseTypeName()
	}
	p.expect(tokOp, "=>")
	body := p.parseBlock()
	node := &model.Node{Kind: model.KindArrowFunction, Line: start.line, EndLine: body.EndLine}
	node.Children = append(node.Children, params...)
	node.Children = append(node.Children, body)
	return node
}

func (p *parser) parseBlock() *model.Node {
	open := p.expect(tokPunct, "{")
	block := &model.Node{Kind: model.KindBlock, Line: open.line}
	for !p.isPunct("}") && p.cur().kind != tokEOF {
		block.Children = append(block.Children, p.parseStatement())
	}
	end := p.expect(tokPunct, "}")
	block.EndLine = end.line
	return block
}

// --- statements ---

func (p *parser) parseStatement() *model.Node {
	switch {
	case p.isKeyword("const") || p.isKeyword("let") || p.isKeyword("var"):
		return p.parseVarDecl()
	case p.isKeyword("if"):
		return p.parseIfStatement()
	case p.isKeyword("return"):
		return p.parseReturnStatement()
	case p.cur().kind == tokIdent && p.at(1).kind == tokOp && p.at(1).text == "=":
		return p.parseAssignStatement()
	case p.cur().kind == tokIdent && p.cur().text == "while" || p.cur().kind == tokIdent && p.cur().text == "for":
		t := p.cur()
		p.errorf(t.line, "loops are not supported by the accepted dialect")
		p.synchronize()
		return &model.Node{Kind: model.KindExpressionStatement, Line: t.line}
	default:
		return p.parseExpressionStatement()
	}
}

func (p *parser) parseVarDecl() *model.Node {
	kw := p.advance() // const/let/var
	nameTok := p.expect(tokIdent, "")
	typ := ""
	if p.isPunct(":") {
		p.advance()
		typ = p.parseTypeName()
	}
	p.expect(tokOp, "=")
	init := p.parseExpr()
	if p.isPunct(";") {
		p.advance()
	}
	declNode := &model.Node{Kind: model.KindVariableDeclaration, Text: nameTok.text, Operator: typ, Line: nameTok.line, Children: []*model.Node{init}}
	wrapped := &model.Node{Kind: model.KindVariableDeclarationList, Line: kw.line, Children: []*model.Node{declNode}}
	return &model.Node{Kind: model.KindFirstStatement, Line: kw.line, Children: []*model.Node{wrapped}}
}

func (p *parser) parseAssignStatement() *model.Node {
	nameTok := p.advance()
	opTok := p.expect(tokOp, "=")
	rhs := p.parseExpr()
	if p.isPunct(";") {
		p.advance()
	}
	lhs := &model.Node{Kind: model.KindIdentifier, Text: nameTok.text, Line: nameTok.line}
	bin := &model.Node{Kind: model.KindBinaryExpression, Operator: model.OpAssign, Line: opTok.line, Children: []*model.Node{lhs, rhs}}
	return &model.Node{Kind: model.KindExpressionStatement, Line: nameTok.line, Children: []*model.Node{bin}}
}

func (p *parser) parseIfStatement() *model.Node {
	kw := p.expect(tokKeyword, "if")
	p.expect(tokPunct, "(")
	cond := p.parseExpr()
	p.expect(tokPunct, ")")
	then := p.parseBlock()

	node := &model.Node{Kind: model.KindIfStatement, Line: kw.line, EndLine: then.EndLine, Children: []*model.Node{cond, then}}
	if p.isKeyword("else") {
		p.advance()
		if p.isKeyword("if") {
			elseIf := p.parseIfStatement()
			node.Children = append(node.Children, elseIf)
			node.EndLine = elseIf.EndLine
		} else {
			elseBlock := p.parseBlock()
			node.Children = append(node.Children, elseBlock)
			node.EndLine = elseBlock.EndLine
		}
	}
	return node
}

func (p *parser) parseReturnStatement() *model.Node {
	kw := p.expect(tokKeyword, "return")
	var expr *model.Node
	if !p.isPunct(";") {
		expr = p.parseExpr()
		if !expr.IsLiteralOrIdentifier() {
			p.errorf(kw.line, "return must yield an integer literal or identifier")
		}
	}
	if p.isPunct(";") {
		p.advance()
	}
	node := &model.Node{Kind: model.KindReturnStatement, Line: kw.line}
	if expr != nil {
		node.Children = []*model.Node{expr}
	}
	return node
}

func (p *parser) parseExpressionStatement() *model.Node {
	line := p.cur().line
	expr := p.parseExpr()
	if p.isPunct(";") {
		p.advance()
	} else if p.cur().kind != tokEOF {
		// Not terminated and not consumable as a further top-level item:
		// avoid looping forever.
		p.advance()
	}
	return &model.Node{Kind: model.KindExpressionStatement, Line: line, Children: []*model.Node{expr}}
}

// --- expressions, precedence climbing ---

func (p *parser) parseExpr() *model.Node {
	return p.parseLogicalOr()
}

func (p *parser) parseLogicalOr() *model.Node {
	left := p.parseLogicalAnd()
	for p.isOp(model.OpLogicalOr) {
		op := p.advance()
		right := p.parseLogicalAnd()
		left = &model.Node{Kind: model.KindBinaryExpression, Operator: op.text, Line: op.line, Children: []*model.Node{left, right}}
	}
	return left
}

func (p *parser) parseLogicalAnd() *model.Node {
	left := p.parseEquality()
	for p.isOp(model.OpLogicalAnd) {
		op := p.advance()
		right := p.parseEquality()
		left = &model.Node{Kind: model.KindBinaryExpression, Operator: op.text, Line: op.line, Children: []*model.Node{left, right}}
	}
	return left
}

func (p *parser) parseEquality() *model.Node {
	left := p.parseRelational()
	for p.isOp(model.OpEquals) || p.isOp(model.OpNotEquals) {
		op := p.advance()
		right := p.parseRelational()
		left = &model.Node{Kind: model.KindBinaryExpression, Operator: op.text, Line: op.line, Children: []*model.Node{left, right}}
	}
	return left
}

func (p *parser) parseRelational() *model.Node {
	left := p.parseBitwise()
	for p.isOp(model.OpLess) || p.isOp(model.OpLessEq) || p.isOp(model.OpGreater) || p.isOp(model.OpGreaterEq) {
		op := p.advance()
		right := p.parseBitwise()
		left = &model.Node{Kind: model.KindBinaryExpression, Operator: op.text, Line: op.line, Children: []*model.Node{left, right}}
	}
	return left
}

// parseBitwise accepts the bitwise/shift operators so a source using one
// parses instead of failing the Source Validator; none of them are
// resolved structurally by the Condition Evaluator (see model.OpBitwiseAnd
// and friends), which is what gives S5 its documented permissive
// treated-as-true outcome instead of a precheck failure.
func (p *parser) parseBitwise() *model.Node {
	left := p.parseUnary()
	for p.isOp(model.OpBitwiseAnd) || p.isOp(model.OpBitwiseOr) || p.isOp(model.OpBitwiseXor) ||
		p.isOp(model.OpShiftLeft) || p.isOp(model.OpShiftRight) {
		op := p.advance()
		right := p.parseUnary()
		left = &model.Node{Kind: model.KindBinaryExpression, Operator: op.text, Line: op.line, Children: []*model.Node{left, right}}
	}
	return left
}

func (p *parser) parseUnary() *model.Node {
	if p.isOp(model.OpLogicalNot) {
		op := p.advance()
		operand := p.parseUnary()
		return &model.Node{Kind: model.KindPrefixUnaryExpression, Operator: model.OpLogicalNot, Line: op.line, Children: []*model.Node{operand}}
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() *model.Node {
	n := p.parsePrimary()
	for p.isOp("!") && n != nil {
		// TypeScript non-null assertion operator: transparent wrapper.
		op := p.advance()
		n = &model.Node{Kind: model.KindNonNullExpression, Line: op.line, Children: []*model.Node{n}}
	}
	return n
}

func (p *parser) parsePrimary() *model.Node {
	t := p.cur()
	switch {
	case t.kind == tokNumber:
		p.advance()
		v, err := parseNumber(t.text)
		if err != nil {
			p.errorf(t.line, "%v", err)
		}
		return &model.Node{Kind: model.KindNumericLiteral, Text: t.text, Int: v, Line: t.line}
	case t.kind == tokString:
		p.advance()
		return &model.Node{Kind: model.KindStringLiteral, Text: t.text, Line: t.line}
	case t.kind == tokKeyword && t.text == "true":
		p.advance()
		return &model.Node{Kind: model.KindTrueKeyword, Bool: true, Line: t.line}
	case t.kind == tokKeyword && t.text == "false":
		p.advance()
		return &model.Node{Kind: model.KindFalseKeyword, Bool: false, Line: t.line}
	case t.kind == tokIdent && t.text == "this":
		p.advance()
		return p.parsePropertyAccessTail(&model.Node{Kind: model.KindThisKeyword, Line: t.line})
	case t.kind == tokIdent:
		p.advance()
		ident := &model.Node{Kind: model.KindIdentifier, Text: t.text, Line: t.line}
		if p.isPunct("(") {
			return p.parseCallExpression(ident)
		}
		return p.parsePropertyAccessTail(ident)
	case t.kind == tokPunct && t.text == "(":
		p.advance()
		inner := p.parseExpr()
		if p.isOp("?") {
			return p.parseConditionalTail(inner)
		}
		p.expect(tokPunct, ")")
		if p.isOp("?") {
			return p.parseConditionalTail(inner)
		}
		return inner
	default:
		p.errorf(t.line, "unexpected token %q in expression", t.text)
		p.advance()
		return &model.Node{Kind: model.KindIdentifier, Text: "", Line: t.line}
	}
}

func (p *parser) parsePropertyAccessTail(n *model.Node) *model.Node {
	for p.isPunct(".") {
		dot := p.advance()
		member := p.expect(tokIdent, "")
		n = &model.Node{Kind: model.KindPropertyAccessExpr, Text: member.text, Line: dot.line, Children: []*model.Node{n}}
	}
	return n
}

func (p *parser) parseCallExpression(callee *model.Node) *model.Node {
	open := p.expect(tokPunct, "(")
	node := &model.Node{Kind: model.KindCallExpression, Text: callee.Text, Line: open.line}
	for !p.isPunct(")") && p.cur().kind != tokEOF {
		node.Children = append(node.Children, p.parseExpr())
		if p.isPunct(",") {
			p.advance()
		} else {
			break
		}
	}
	p.expect(tokPunct, ")")
	p.errorf(open.line, "function calls are not supported inside expressions (no interprocedural analysis)")
	return node
}

func (p *parser) parseConditionalTail(cond *model.Node) *model.Node {
	q := p.expect(tokOp, "?")
	p.errorf(q.line, "ternary conditional expressions are not supported")
	_ = p.parseExpr()
	if p.isOp(":") || p.isPunct(":") {
		p.advance()
	}
	_ = p.parseExpr()
	return &model.Node{Kind: model.KindConditionalExpression, Line: q.line, Children: []*model.Node{cond}}
}

package condition

import (
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/pathreach/analyzer/model"
	"github.com/pathreach/analyzer/smt"
)

// Env is the per-path environment the Condition Evaluator resolves
// identifiers against: declared type from the Root symbol table, plus
// SSA-at-usage bindings installed by the Statement Processor as it walks
// assignments down the path.
type Env struct {
	Types    map[string]model.SymbolType
	Bindings map[string]*model.Node // variable -> its current RHS expression, substituted at usage
	Warn     func(format string, args ...interface{})
}

func NewEnv(types map[string]model.SymbolType) *Env {
	return &Env{Types: types, Bindings: make(map[string]*model.Node)}
}

func (e *Env) warnf(format string, args ...interface{}) {
	if e.Warn != nil {
		e.Warn(format, args...)
	}
}

// resolve follows SSA-at-usage substitution: if name has a binding
// installed by a prior assignment on this path, expand to that
// expression instead of treating name as a free symbol.
func (e *Env) resolve(name string) (*model.Node, bool) {
	n, ok := e.Bindings[name]
	return n, ok
}

// EvalBool translates a boolean-valued expression fragment into an SMT
// Formula.
func EvalBool(n *model.Node, env *Env) (smt.Formula, error) {
	if folded, ok := tryConstantFold(n); ok {
		if b, isBool := folded.(bool); isBool {
			return smt.BoolConst(b), nil
		}
	}

	switch n.Kind {
	case model.KindTrueKeyword:
		return smt.BoolConst(true), nil
	case model.KindFalseKeyword:
		return smt.BoolConst(false), nil

	case model.KindNonNullExpression:
		return EvalBool(n.Child(0), env)

	case model.KindPrefixUnaryExpression:
		if n.Operator == model.OpLogicalNot {
			inner, err := EvalBool(n.Child(0), env)
			if err != nil {
				return nil, err
			}
			return smt.Not{Arg: inner}, nil
		}

	case model.KindBinaryExpression:
		switch n.Operator {
		case model.OpLogicalAnd:
			l, err := EvalBool(n.Child(0), env)
			if err != nil {
				return nil, err
			}
			r, err := EvalBool(n.Child(1), env)
			if err != nil {
				return nil, err
			}
			return smt.And{Args: []smt.Formula{l, r}}, nil
		case model.OpLogicalOr:
			l, err := EvalBool(n.Child(0), env)
			if err != nil {
				return nil, err
			}
			r, err := EvalBool(n.Child(1), env)
			if err != nil {
				return nil, err
			}
			return smt.Or{Args: []smt.Formula{l, r}}, nil
		case model.OpLess, model.OpLessEq, model.OpGreater, model.OpGreaterEq, model.OpEquals, model.OpNotEquals:
			l, err := EvalInt(n.Child(0), env)
			if err != nil {
				return nil, err
			}
			r, err := EvalInt(n.Child(1), env)
			if err != nil {
				return nil, err
			}
			return smt.Compare{Op: smt.CompareOp(n.Operator), Left: l, Right: r}, nil
		}

	case model.KindIdentifier:
		term, err := evalIdentifier(n, env)
		if err != nil {
			return nil, err
		}
		if term.isBool {
			return term.boolForm, nil
		}
		env.warnf("line %d: identifier %q used as a boolean predicate has declared type number; treated as always-true", n.Line, n.Text)
		return smt.BoolConst(true), nil
	}

	env.warnf("line %d: unsupported boolean expression form, treated as always-true", n.Line)
	return smt.BoolConst(true), nil
}

// EvalInt translates an integer-valued expression fragment into an SMT
// Term.
func EvalInt(n *model.Node, env *Env) (smt.Term, error) {
	if folded, ok := tryConstantFold(n); ok {
		if i, isInt := folded.(int); isInt {
			return smt.Const(int64(i)), nil
		}
	}

	switch n.Kind {
	case model.KindNumericLiteral:
		return smt.Const(n.Int), nil
	case model.KindNonNullExpression:
		return EvalInt(n.Child(0), env)
	case model.KindIdentifier:
		term, err := evalIdentifier(n, env)
		if err != nil {
			return smt.Term{}, err
		}
		if !term.isBool {
			return term.intForm, nil
		}
		env.warnf("line %d: identifier %q has declared type boolean, used where a number was expected", n.Line, n.Text)
		return smt.Const(0), nil
	}
	env.warnf("line %d: unsupported integer expression form, treated as constant 0", n.Line)
	return smt.Const(0), nil
}

type resolvedIdent struct {
	isBool   bool
	intForm  smt.Term
	boolForm smt.Formula
}

func evalIdentifier(n *model.Node, env *Env) (resolvedIdent, error) {
	if bound, ok := env.resolve(n.Text); ok {
		typ := env.Types[n.Text]
		if typ == model.TypeBool {
			f, err := EvalBool(bound, env)
			if err != nil {
				return resolvedIdent{}, err
			}
			return resolvedIdent{isBool: true, boolForm: f}, nil
		}
		t, err := EvalInt(bound, env)
		if err != nil {
			return resolvedIdent{}, err
		}
		return resolvedIdent{intForm: t}, nil
	}

	typ, ok := env.Types[n.Text]
	if !ok {
		return resolvedIdent{}, &model.UnknownSymbolError{Symbol: n.Text}
	}
	switch typ {
	case model.TypeBool:
		return resolvedIdent{isBool: true, boolForm: smt.BoolVar{Name: n.Text}}, nil
	case model.TypeInt:
		return resolvedIdent{intForm: smt.Var(n.Text)}, nil
	default:
		return resolvedIdent{}, &model.UnsupportedTypeError{Symbol: n.Text, Type: string(typ)}
	}
}

// tryConstantFold renders a fully-literal (identifier-free) subexpression
// as an expr-lang program and evaluates it directly, the way the
// evaluator this was grounded on folds closed subexpressions before
// walking them structurally. Returns ok=false for anything referencing a
// variable, leaving evaluation to the recursive descent above.
func tryConstantFold(n *model.Node) (interface{}, bool) {
	if hasIdentifier(n) {
		return nil, false
	}
	text, ok := renderLiteralExpr(n)
	if !ok {
		return nil, false
	}
	program, err := expr.Compile(text)
	if err != nil {
		return nil, false
	}
	out, err := expr.Run(program, map[string]interface{}{})
	if err != nil {
		return nil, false
	}
	return out, true
}

func hasIdentifier(n *model.Node) bool {
	if n == nil {
		return false
	}
	if n.Kind == model.KindIdentifier {
		return true
	}
	for _, c := range n.Children {
		if hasIdentifier(c) {
			return true
		}
	}
	return false
}

func renderLiteralExpr(n *model.Node) (string, bool) {
	if n == nil {
		return "", false
	}
	switch n.Kind {
	case model.KindNumericLiteral:
		return fmt.Sprintf("%d", n.Int), true
	case model.KindTrueKeyword:
		return "true", true
	case model.KindFalseKeyword:
		return "false", true
	case model.KindNonNullExpression:
		return renderLiteralExpr(n.Child(0))
	case model.KindPrefixUnaryExpression:
		if n.Operator == model.OpLogicalNot {
			inner, ok := renderLiteralExpr(n.Child(0))
			if !ok {
				return "", false
			}
			return "!(" + inner + ")", true
		}
		return "", false
	case model.KindBinaryExpression:
		l, ok := renderLiteralExpr(n.Child(0))
		if !ok {
			return "", false
		}
		r, ok := renderLiteralExpr(n.Child(1))
		if !ok {
			return "", false
		}
		return "(" + l + " " + n.Operator + " " + r + ")", true
	default:
		return "", false
	}
}

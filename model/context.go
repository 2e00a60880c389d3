package model

// ContextKind discriminates the three Context node variants.
type ContextKind string

const (
	ContextRootKind        ContextKind = "root"
	ContextConditionalKind ContextKind = "conditional"
	ContextAssignmentKind  ContextKind = "assignment"
)

// Context is the central internal entity built by the Context Tree
// Builder. It is a tagged union over the three variants named in the
// data model; only the fields relevant to Kind are populated.
//
// Parent is a non-owning back-link, walked by Root() to reach the owning
// root; the root exclusively owns the subtree reachable from
// Children/Then/Else. PathNote line ranges come from the Conditions on a
// path, not from Parent.
//
// Per the recommended rearchitecture, polarity is not a mutable field on
// Conditional contexts: Then and Else are separate ordered child lists,
// populated directly by the Builder as it recurses into each branch with
// that branch's list as the attach point.
type Context struct {
	Kind   ContextKind
	Parent *Context

	// Root only: declared identifier -> type, populated by Parameter and
	// typed VariableDeclaration nodes.
	Symbols map[string]SymbolType

	// Root and Assignment: the linear continuation, i.e. the next
	// statement-derived context in the same branch.
	Children []*Context

	// Conditional only.
	Predicate *Node
	LineStart int
	LineEnd   int
	Then      []*Context
	Else      []*Context

	// Assignment only.
	Variable   string
	Expression *Node
}

// NewRootContext creates an empty root with an initialized symbol table.
func NewRootContext() *Context {
	return &Context{
		Kind:    ContextRootKind,
		Symbols: make(map[string]SymbolType),
	}
}

// Declare registers a parameter or variable's type in the nearest
// enclosing root's symbol table. Every Context in this tree shares one
// root, so "nearest" is always that single root.
func (c *Context) Declare(name string, typ SymbolType) {
	root := c.Root()
	root.Symbols[name] = typ
}

// Root walks parent links to the owning root context.
func (c *Context) Root() *Context {
	cur := c
	for cur.Parent != nil {
		cur = cur.Parent
	}
	return cur
}

// IsLinearLeaf reports whether a Root or Assignment context has no
// continuation, i.e. a path through it ends here. Conditional contexts
// never answer this question directly: a path through one terminates
// per-polarity (see pathenum), since an else-less `if` still yields a
// false-polarity leaf with an empty body.
func (c *Context) IsLinearLeaf() bool {
	return len(c.Children) == 0
}

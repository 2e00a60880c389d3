package model

// PathStep is one Context visited along a Path. Polarity is meaningful
// only when Context.Kind is ContextConditionalKind: a single Conditional
// Context is shared by both its true- and false-polarity paths, so the
// polarity taken at that point is recorded on the step, not the node.
type PathStep struct {
	Context  *Context
	Polarity bool
}

// Path is a finite ordered sequence of PathSteps from the Root to a leaf,
// preserving tree order.
type Path []PathStep

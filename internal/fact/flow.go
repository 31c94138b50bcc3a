package fact

// BranchKind classifies the innermost conditional construct around a fact.
type BranchKind uint8

const (
	BranchNone BranchKind = iota
	BranchThen
	BranchElse
	BranchLoop
)

// FlowContext records where in the control-flow structure a fact was
// observed: the enclosing function, the path of branch identifiers from
// the function body down to the fact, and whether a loop encloses it.
//
// Branch identifiers are assigned in source order per function, so two
// facts share a path prefix exactly when one's block encloses the
// other's on every execution.
type FlowContext struct {
	Func   string
	Path   []int
	Branch BranchKind
	InLoop bool
}

// SameFunc reports whether two contexts belong to the same function scope.
func (c FlowContext) SameFunc(other FlowContext) bool {
	return c.Func == other.Func
}

// Depth returns the branch nesting depth.
func (c FlowContext) Depth() int {
	return len(c.Path)
}

// AncestorOf reports whether c's block encloses other's block, i.e. c's
// path is a strict or equal prefix of other's. A top-level context
// (empty path) encloses everything in the same function.
func (c FlowContext) AncestorOf(other FlowContext) bool {
	if !c.SameFunc(other) {
		return false
	}

	if len(c.Path) > len(other.Path) {
		return false
	}

	for i, id := range c.Path {
		if other.Path[i] != id {
			return false
		}
	}

	return true
}

// Reachable reports whether control can flow from a fact in context c to
// one in context other: either block encloses the other, or they only
// share a common prefix (sequential siblings still execute in order when
// neither branch excludes the other; callers pair this with source order).
func (c FlowContext) Reachable(other FlowContext) bool {
	return c.AncestorOf(other) || other.AncestorOf(c)
}

// clonePath copies the path so contexts stay immutable once recorded.
func clonePath(path []int) []int {
	if len(path) == 0 {
		return nil
	}

	out := make([]int, len(path))
	copy(out, path)

	return out
}

// NewFlowContext captures a snapshot of the tracker state.
func NewFlowContext(fn string, path []int, branch BranchKind, inLoop bool) FlowContext {
	return FlowContext{
		Func:   fn,
		Path:   clonePath(path),
		Branch: branch,
		InLoop: inLoop,
	}
}

package fact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlowContextAncestorOf(t *testing.T) {
	top := NewFlowContext("f", nil, BranchNone, false)
	then := NewFlowContext("f", []int{3}, BranchThen, false)
	inner := NewFlowContext("f", []int{3, 7}, BranchLoop, true)
	sibling := NewFlowContext("f", []int{5}, BranchElse, false)
	other := NewFlowContext("g", nil, BranchNone, false)

	assert.True(t, top.AncestorOf(then))
	assert.True(t, top.AncestorOf(top))
	assert.True(t, then.AncestorOf(inner))

	assert.False(t, inner.AncestorOf(then))
	assert.False(t, then.AncestorOf(sibling))
	assert.False(t, top.AncestorOf(other))
}

func TestFlowContextReachable(t *testing.T) {
	top := NewFlowContext("f", nil, BranchNone, false)
	then := NewFlowContext("f", []int{3}, BranchThen, false)
	els := NewFlowContext("f", []int{5}, BranchElse, false)

	// Enclosing scopes reach inward and outward.
	assert.True(t, top.Reachable(then))
	assert.True(t, then.Reachable(top))

	// Divergent branches never reach each other.
	assert.False(t, then.Reachable(els))
}

func TestFlowContextImmutability(t *testing.T) {
	path := []int{1, 2}
	ctx := NewFlowContext("f", path, BranchThen, false)

	path[0] = 99

	assert.Equal(t, []int{1, 2}, ctx.Path)
	assert.Equal(t, 2, ctx.Depth())
}

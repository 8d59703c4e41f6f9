package kismetdc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// diamondCFG builds 0 -> {1,2} -> 3, the textbook dominance diamond.
func diamondCFG() *ControlFlowGraph {
	b := func(id BlockId, succs ...BlockId) *BasicBlock {
		return &BasicBlock{ID: id, Successors: succs, Statements: []Expr{{Offset: BytecodeOffset(id)}}}
	}
	blocks := []*BasicBlock{
		b(0, 1, 2),
		b(1, 3),
		b(2, 3),
		b(3),
	}
	cfg := &ControlFlowGraph{Blocks: blocks, EntryBlock: 0, OffsetToBlock: map[BytecodeOffset]BlockId{}}
	wirePredecessors(cfg)
	return cfg
}

func TestDominatorTreeDiamond(t *testing.T) {
	cfg := diamondCFG()
	dom := ComputeDominatorTree(cfg)

	require.True(t, dom.Dominates(0, 3))
	require.False(t, dom.StrictlyDominates(1, 2))
	require.False(t, dom.StrictlyDominates(2, 1))

	idom3, ok := dom.ImmediateDominator(3)
	require.True(t, ok)
	require.Equal(t, BlockId(0), idom3)
}

func TestPostDominatorTreeDiamond(t *testing.T) {
	cfg := diamondCFG()
	pdom := ComputePostDominatorTree(cfg)

	require.True(t, pdom.PostDominates(3, 1))
	require.True(t, pdom.PostDominates(3, 2))
	require.True(t, pdom.PostDominates(3, 0))

	m, ok := pdom.ImmediateCommonPostDominator(1, 2)
	require.True(t, ok)
	require.Equal(t, BlockId(3), m)

	// symmetric
	m2, ok := pdom.ImmediateCommonPostDominator(2, 1)
	require.True(t, ok)
	require.Equal(t, m, m2)
}

func TestDominanceFrontier(t *testing.T) {
	cfg := diamondCFG()
	dom := ComputeDominatorTree(cfg)
	df := dom.DominanceFrontier(cfg, 1)
	require.True(t, df[3])
	require.Len(t, df, 1)
}

package kismetdc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// diamondCFGWithTerminators builds the same 0 -> {1,2} -> 3 shape as
// diamondCFG, but with real Terminator values so Structure can reduce it.
func diamondCFGWithTerminators() *ControlFlowGraph {
	cond := Expr{Offset: 0, Kind: True{}}
	b0 := &BasicBlock{
		ID:         0,
		Statements: []Expr{{Offset: 0, Kind: JumpIfNot{Condition: cond, Target: 2}}},
		Terminator: Terminator{Kind: TermBranch, Condition: cond, TrueTarget: 1, FalseTarget: 2, Successors: []BlockId{1, 2}},
		Successors: []BlockId{1, 2},
	}
	b1 := &BasicBlock{
		ID:         1,
		Statements: []Expr{{Offset: 1, Kind: IntConst{Value: 10}}},
		Terminator: Terminator{Kind: TermGoto, Successors: []BlockId{3}},
		Successors: []BlockId{3},
	}
	b2 := &BasicBlock{
		ID:         2,
		Statements: []Expr{{Offset: 2, Kind: IntConst{Value: 20}}},
		Terminator: Terminator{Kind: TermGoto, Successors: []BlockId{3}},
		Successors: []BlockId{3},
	}
	b3 := &BasicBlock{
		ID:         3,
		Statements: []Expr{{Offset: 3, Kind: Return{Sub: Expr{Kind: IntZero{}}}}},
		Terminator: Terminator{Kind: TermReturn},
	}
	blocks := []*BasicBlock{b0, b1, b2, b3}
	cfg := &ControlFlowGraph{Blocks: blocks, EntryBlock: 0, OffsetToBlock: map[BytecodeOffset]BlockId{0: 0, 1: 1, 2: 2, 3: 3}}
	wirePredecessors(cfg)
	return cfg
}

func TestStructureReducesDiamondToIf(t *testing.T) {
	cfg := diamondCFGWithTerminators()
	dom := ComputeDominatorTree(cfg)
	pdom := ComputePostDominatorTree(cfg)
	loops := AnalyzeLoops(cfg, dom)

	result := Structure(cfg, dom, pdom, loops)
	require.True(t, result.Complete)
	require.Empty(t, result.Residual)

	root := result.Tree
	// The If collapses blocks 0-2; sequence reduction then appends the
	// merge block (3), so the root is Seq[If, block 3].
	if root.Kind == NodeSeq {
		require.Len(t, root.Children, 2)
		root = root.Children[0]
	}
	require.Equal(t, NodeIf, root.Kind)
	require.NotNil(t, root.Then)
	require.NotNil(t, root.Else)
}

func TestStructureIrreducibleShapeReturnsTree(t *testing.T) {
	// An irreducible shape: two blocks that jump into each other's middle
	// with no natural loop (0 -> 1, 0 -> 2, 1 -> 2, 2 -> 1). The
	// conditional and sequence rules fold it down to a single live node.
	b := func(id BlockId, succs ...BlockId) *BasicBlock {
		return &BasicBlock{ID: id, Successors: succs, Statements: []Expr{{Offset: BytecodeOffset(id)}},
			Terminator: Terminator{Kind: TermGoto, Successors: succs}}
	}
	b0 := b(0, 1, 2)
	b0.Terminator = Terminator{Kind: TermBranch, TrueTarget: 1, FalseTarget: 2, Successors: []BlockId{1, 2}}
	b1 := b(1, 2)
	b2 := b(2, 1)
	cfg := &ControlFlowGraph{Blocks: []*BasicBlock{b0, b1, b2}, EntryBlock: 0, OffsetToBlock: map[BytecodeOffset]BlockId{}}
	wirePredecessors(cfg)

	dom := ComputeDominatorTree(cfg)
	pdom := ComputePostDominatorTree(cfg)
	loops := AnalyzeLoops(cfg, dom)

	result := Structure(cfg, dom, pdom, loops)
	// Whether or not this particular shape happens to fully reduce is not
	// the point under test; what matters is that Structure never panics
	// and always returns a usable tree.
	require.NotNil(t, result.Tree)
}

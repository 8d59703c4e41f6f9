package kismetdc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// loopCFG builds 0 -> 1 -> 2 -> {1, 3}, a single natural loop {1,2} with
// header 1 and back edge 2 -> 1.
func loopCFG() *ControlFlowGraph {
	b := func(id BlockId, succs ...BlockId) *BasicBlock {
		return &BasicBlock{ID: id, Successors: succs, Statements: []Expr{{Offset: BytecodeOffset(id)}}}
	}
	blocks := []*BasicBlock{
		b(0, 1),
		b(1, 2),
		b(2, 1, 3),
		b(3),
	}
	cfg := &ControlFlowGraph{Blocks: blocks, EntryBlock: 0, OffsetToBlock: map[BytecodeOffset]BlockId{}}
	wirePredecessors(cfg)
	return cfg
}

func TestAnalyzeLoopsFindsSingleLoop(t *testing.T) {
	cfg := loopCFG()
	dom := ComputeDominatorTree(cfg)
	loops := AnalyzeLoops(cfg, dom)

	require.Len(t, loops.Loops, 1)
	l := loops.Loops[0]
	require.Equal(t, BlockId(1), l.Header)
	require.True(t, l.Blocks[1])
	require.True(t, l.Blocks[2])
	require.False(t, l.Blocks[0])
	require.False(t, l.Blocks[3])
	require.True(t, l.ExitBlocks[2])
	require.False(t, l.IsNested())

	loop, ok := loops.GetLoopForBlock(2)
	require.True(t, ok)
	require.Equal(t, BlockId(1), loop.Header)

	require.True(t, loops.IsLoopHeader(1))
	require.False(t, loops.IsLoopHeader(2))
}

// nestedLoopCFG builds an outer loop {1,2,3,4} with header 1 and an inner
// loop {2,3} with header 2, both closed by back edges into their headers.
func nestedLoopCFG() *ControlFlowGraph {
	b := func(id BlockId, succs ...BlockId) *BasicBlock {
		return &BasicBlock{ID: id, Successors: succs, Statements: []Expr{{Offset: BytecodeOffset(id)}}}
	}
	blocks := []*BasicBlock{
		b(0, 1),
		b(1, 2),
		b(2, 3),
		b(3, 2, 4),
		b(4, 1, 5),
		b(5),
	}
	cfg := &ControlFlowGraph{Blocks: blocks, EntryBlock: 0, OffsetToBlock: map[BytecodeOffset]BlockId{}}
	wirePredecessors(cfg)
	return cfg
}

func TestAnalyzeLoopsNesting(t *testing.T) {
	cfg := nestedLoopCFG()
	dom := ComputeDominatorTree(cfg)
	loops := AnalyzeLoops(cfg, dom)
	require.Len(t, loops.Loops, 2)

	var outer, inner *Loop
	for i := range loops.Loops {
		l := &loops.Loops[i]
		if l.Header == 1 {
			outer = l
		} else if l.Header == 2 {
			inner = l
		}
	}
	require.NotNil(t, outer)
	require.NotNil(t, inner)
	require.True(t, inner.IsNested())
	require.False(t, outer.IsNested())
	require.Equal(t, 1, inner.NestingDepth(loops.Loops))
	require.Equal(t, 0, outer.NestingDepth(loops.Loops))
}

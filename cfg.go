package kismetdc

import "sort"

// BlockId is a dense, stable index into ControlFlowGraph.Blocks.
type BlockId int

// TerminatorKind classifies how a block's control flow continues.
type TerminatorKind int

const (
	TermNone TerminatorKind = iota
	TermGoto
	TermBranch
	TermDynamicJump
	TermReturn
	// TermPopFlow is the execution-flow-stack lowering's multi-successor
	// terminator: every offset in the function's push-target set, or
	// TermDynamicJump behavior (no modelled successors) when that set is
	// empty.
	TermPopFlow
)

// Terminator is the last word on how a block hands off control. Successors
// is always complete and consistent with Kind; Goto/True/False/PopFlow all
// read back from it, Kind just says how to interpret it for rendering.
type Terminator struct {
	Kind        TerminatorKind
	Successors  []BlockId
	Condition   Expr // set for TermBranch
	TrueTarget  BlockId
	FalseTarget BlockId
	ReturnValue Expr // set for TermReturn
}

// BasicBlock is a maximal run of expressions with a single entry and a
// single terminator.
type BasicBlock struct {
	ID           BlockId
	Statements   []Expr
	Terminator   Terminator
	Predecessors []BlockId
	Successors   []BlockId
}

// ControlFlowGraph is the output of BuildCFG: ordered blocks plus the
// offset each one starts at.
type ControlFlowGraph struct {
	Blocks        []*BasicBlock
	EntryBlock    BlockId
	OffsetToBlock map[BytecodeOffset]BlockId
}

// BuildCFG lowers a parsed, top-level expression list into basic blocks
// with resolved terminators. It is total: any well-formed expression list
// (including one containing dead code) produces a CFG.
func BuildCFG(exprs []Expr) *ControlFlowGraph {
	if len(exprs) == 0 {
		return &ControlFlowGraph{OffsetToBlock: map[BytecodeOffset]BlockId{}}
	}

	leaders := leaderOffsets(exprs)
	blocks := partitionBlocks(exprs, leaders)

	offsetToBlock := make(map[BytecodeOffset]BlockId, len(blocks))
	for i, b := range blocks {
		offsetToBlock[b.Statements[0].Offset] = BlockId(i)
	}

	pushTargets := collectPushTargets(exprs)
	pushTargetBlocks := resolveTargetBlocks(pushTargets, offsetToBlock)

	nextOffset := nextOffsetIndex(exprs)

	for i, b := range blocks {
		last := b.Statements[len(b.Statements)-1]
		term := lowerTerminator(BlockId(i), last, blocks, offsetToBlock, nextOffset, pushTargetBlocks)
		term.Successors = filterValidBlocks(term.Successors, len(blocks))
		b.Terminator = term
		b.Successors = b.Terminator.Successors
	}

	cfg := &ControlFlowGraph{Blocks: blocks, EntryBlock: 0, OffsetToBlock: offsetToBlock}
	wirePredecessors(cfg)
	return cfg
}

// leaderOffsets computes the set of offsets in exprs that start a new
// basic block: the first expression, every statically-known jump/branch
// target (a superset of the strict jump/branch targets — the extra
// offsets CollectReferencedOffsets also reports, like SwitchValue's end
// offset and Context's skip offset, are harmless additional leaders since
// every block boundary they induce would exist anyway once their owning
// expression's successor is computed), and the fall-through point after
// every expression that ends a block.
func leaderOffsets(exprs []Expr) map[BytecodeOffset]bool {
	leaders := map[BytecodeOffset]bool{exprs[0].Offset: true}
	for o := range CollectReferencedOffsets(exprs) {
		leaders[o] = true
	}
	for i, e := range exprs {
		switch e.Kind.(type) {
		case Jump, JumpIfNot, ComputedJump, Return, PopExecutionFlow, EndOfScript:
			if i+1 < len(exprs) {
				leaders[exprs[i+1].Offset] = true
			}
		}
	}
	return leaders
}

func partitionBlocks(exprs []Expr, leaders map[BytecodeOffset]bool) []*BasicBlock {
	var blocks []*BasicBlock
	var cur []Expr
	for _, e := range exprs {
		if leaders[e.Offset] && len(cur) > 0 {
			blocks = append(blocks, &BasicBlock{ID: BlockId(len(blocks)), Statements: cur})
			cur = nil
		}
		cur = append(cur, e)
	}
	if len(cur) > 0 {
		blocks = append(blocks, &BasicBlock{ID: BlockId(len(blocks)), Statements: cur})
	}
	return blocks
}

func collectPushTargets(exprs []Expr) map[BytecodeOffset]bool {
	targets := map[BytecodeOffset]bool{}
	for _, top := range exprs {
		Visit(top, func(e Expr) {
			if push, ok := e.Kind.(PushExecutionFlow); ok {
				targets[push.PushOffset] = true
			}
		})
	}
	return targets
}

func resolveTargetBlocks(offsets map[BytecodeOffset]bool, offsetToBlock map[BytecodeOffset]BlockId) []BlockId {
	var out []BlockId
	for o := range offsets {
		if b, ok := offsetToBlock[o]; ok {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// nextOffsetIndex maps each expression's offset to the offset of the
// expression immediately following it in program order, for use by
// fall-through and JumpIfNot-true-target resolution.
func nextOffsetIndex(exprs []Expr) map[BytecodeOffset]BytecodeOffset {
	next := make(map[BytecodeOffset]BytecodeOffset, len(exprs))
	for i := 0; i+1 < len(exprs); i++ {
		next[exprs[i].Offset] = exprs[i+1].Offset
	}
	return next
}

func lowerTerminator(
	id BlockId,
	last Expr,
	blocks []*BasicBlock,
	offsetToBlock map[BytecodeOffset]BlockId,
	nextOffset map[BytecodeOffset]BytecodeOffset,
	pushTargetBlocks []BlockId,
) Terminator {
	switch k := last.Kind.(type) {
	case Jump:
		target := blockOf(k.Target, offsetToBlock)
		return Terminator{Kind: TermGoto, Successors: []BlockId{target}}
	case JumpIfNot:
		falseTarget := blockOf(k.Target, offsetToBlock)
		trueTarget := id
		if n, ok := nextOffset[last.Offset]; ok {
			trueTarget = blockOf(n, offsetToBlock)
		}
		return Terminator{
			Kind: TermBranch, Condition: k.Condition,
			TrueTarget: trueTarget, FalseTarget: falseTarget,
			Successors: dedupBlocks(trueTarget, falseTarget),
		}
	case Return:
		return Terminator{Kind: TermReturn, ReturnValue: k.Sub}
	case ComputedJump:
		return Terminator{Kind: TermDynamicJump}
	case EndOfScript:
		return Terminator{Kind: TermNone}
	case PopExecutionFlow:
		if len(pushTargetBlocks) == 0 {
			return Terminator{Kind: TermDynamicJump}
		}
		return Terminator{Kind: TermPopFlow, Successors: pushTargetBlocks}
	case PopExecutionFlowIfNot:
		if len(pushTargetBlocks) == 0 {
			return Terminator{Kind: TermDynamicJump}
		}
		return Terminator{Kind: TermPopFlow, Successors: pushTargetBlocks}
	default:
		if n, ok := nextOffset[last.Offset]; ok {
			target := blockOf(n, offsetToBlock)
			return Terminator{Kind: TermGoto, Successors: []BlockId{target}}
		}
		return Terminator{Kind: TermNone}
	}
}

func blockOf(offset BytecodeOffset, offsetToBlock map[BytecodeOffset]BlockId) BlockId {
	if b, ok := offsetToBlock[offset]; ok {
		return b
	}
	return -1
}

func dedupBlocks(a, b BlockId) []BlockId {
	if a == b {
		return []BlockId{a}
	}
	return []BlockId{a, b}
}

func filterValidBlocks(ids []BlockId, n int) []BlockId {
	out := ids[:0:0]
	for _, id := range ids {
		if id >= 0 && int(id) < n {
			out = append(out, id)
		}
	}
	return out
}

func wirePredecessors(cfg *ControlFlowGraph) {
	for _, b := range cfg.Blocks {
		for _, s := range b.Successors {
			if s < 0 || int(s) >= len(cfg.Blocks) {
				continue
			}
			cfg.Blocks[s].Predecessors = append(cfg.Blocks[s].Predecessors, b.ID)
		}
	}
}

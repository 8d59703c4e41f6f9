package kismetdc

import "sort"

// BackEdge is a CFG edge latch->header where header dominates latch.
type BackEdge struct {
	Latch  BlockId
	Header BlockId
}

// Loop is one natural loop: a header, the back edges that close it, its
// member blocks, its exits, and its place in the nesting tree.
type Loop struct {
	Header     BlockId
	Blocks     map[BlockId]bool
	BackEdges  []BackEdge
	ExitBlocks map[BlockId]bool
	Parent     int // index into LoopInfo.Loops, or -1
	Children   []int
}

// IsNested reports whether this loop has a parent loop.
func (l *Loop) IsNested() bool { return l.Parent >= 0 }

// NestingDepth returns this loop's depth among allLoops (0 = outermost).
func (l *Loop) NestingDepth(allLoops []Loop) int {
	depth := 0
	current := l.Parent
	for current >= 0 {
		depth++
		current = allLoops[current].Parent
	}
	return depth
}

// LoopInfo is the complete set of natural loops found in a function.
type LoopInfo struct {
	Loops []Loop
}

// AnalyzeLoops finds every natural loop in cfg using dom.
func AnalyzeLoops(cfg *ControlFlowGraph, dom *DominatorTree) *LoopInfo {
	backEdges := findBackEdges(cfg, dom)

	var loops []Loop
	loopIndex := map[BlockId]int{}

	for _, be := range backEdges {
		idx, ok := loopIndex[be.Header]
		if !ok {
			idx = len(loops)
			loops = append(loops, Loop{Header: be.Header, Blocks: map[BlockId]bool{}, Parent: -1})
			loopIndex[be.Header] = idx
		}
		loops[idx].BackEdges = append(loops[idx].BackEdges, be)

		for b := range findNaturalLoop(cfg, be.Header, be.Latch) {
			loops[idx].Blocks[b] = true
		}
	}

	for i := range loops {
		loops[i].ExitBlocks = findExitBlocks(cfg, loops[i].Blocks)
	}

	buildLoopTree(loops)

	return &LoopInfo{Loops: loops}
}

func findBackEdges(cfg *ControlFlowGraph, dom *DominatorTree) []BackEdge {
	var edges []BackEdge
	for _, b := range cfg.Blocks {
		for _, succ := range b.Successors {
			if dom.Dominates(succ, b.ID) {
				edges = append(edges, BackEdge{Latch: b.ID, Header: succ})
			}
		}
	}
	return edges
}

// findNaturalLoop computes the set of blocks reachable in the reverse
// graph from latch without crossing header, plus header and latch
// themselves.
func findNaturalLoop(cfg *ControlFlowGraph, header, latch BlockId) map[BlockId]bool {
	blocks := map[BlockId]bool{header: true, latch: true}

	worklist := []BlockId{latch}
	for len(worklist) > 0 {
		id := worklist[0]
		worklist = worklist[1:]
		if id < 0 || int(id) >= len(cfg.Blocks) {
			continue
		}
		for _, pred := range cfg.Blocks[id].Predecessors {
			if pred != header && !blocks[pred] {
				blocks[pred] = true
				worklist = append(worklist, pred)
			}
		}
	}

	return blocks
}

func findExitBlocks(cfg *ControlFlowGraph, loopBlocks map[BlockId]bool) map[BlockId]bool {
	exits := map[BlockId]bool{}
	for id := range loopBlocks {
		if id < 0 || int(id) >= len(cfg.Blocks) {
			continue
		}
		for _, succ := range cfg.Blocks[id].Successors {
			if !loopBlocks[succ] {
				exits[id] = true
				break
			}
		}
	}
	return exits
}

func isSubset(a, b map[BlockId]bool) bool {
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

// buildLoopTree assigns each loop the innermost strictly-containing loop
// as its parent, by strict blockset subset containment; equal headers
// never nest.
func buildLoopTree(loops []Loop) {
	for i := range loops {
		var potentialParents []int
		for j := range loops {
			if i == j {
				continue
			}
			if loops[i].Header != loops[j].Header && isSubset(loops[i].Blocks, loops[j].Blocks) {
				potentialParents = append(potentialParents, j)
			}
		}
		if len(potentialParents) == 0 {
			continue
		}
		innermost := potentialParents[0]
		minSize := len(loops[innermost].Blocks)
		for _, p := range potentialParents {
			if size := len(loops[p].Blocks); size < minSize {
				minSize = size
				innermost = p
			}
		}
		loops[i].Parent = innermost
	}

	for i := range loops {
		if loops[i].Parent >= 0 {
			loops[loops[i].Parent].Children = append(loops[loops[i].Parent].Children, i)
		}
	}
	for i := range loops {
		sort.Ints(loops[i].Children)
	}
}

// GetLoopForBlock returns the innermost loop containing block, if any.
func (li *LoopInfo) GetLoopForBlock(block BlockId) (*Loop, bool) {
	var result *Loop
	minSize := -1
	for i := range li.Loops {
		l := &li.Loops[i]
		if l.Blocks[block] && (minSize < 0 || len(l.Blocks) < minSize) {
			result = l
			minSize = len(l.Blocks)
		}
	}
	return result, result != nil
}

// IsLoopHeader reports whether block is the header of some loop.
func (li *LoopInfo) IsLoopHeader(block BlockId) bool {
	for _, l := range li.Loops {
		if l.Header == block {
			return true
		}
	}
	return false
}

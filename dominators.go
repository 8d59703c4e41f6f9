package kismetdc

import "sort"

const virtualExit BlockId = -1

// DominatorTree is the immediate-dominator mapping for a CFG plus its
// derived children map, computed with the Cooper-Harvey-Kennedy iterative
// algorithm.
type DominatorTree struct {
	Idom     map[BlockId]BlockId
	Children map[BlockId][]BlockId
	Entry    BlockId
}

// ComputeDominatorTree builds the dominator tree of cfg.
func ComputeDominatorTree(cfg *ControlFlowGraph) *DominatorTree {
	if len(cfg.Blocks) == 0 {
		return &DominatorTree{Idom: map[BlockId]BlockId{}, Children: map[BlockId][]BlockId{}, Entry: 0}
	}

	entry := cfg.EntryBlock
	rpo := reversePostorder(cfg, entry)
	rpoIndex := indexOf(rpo)

	idom := map[BlockId]BlockId{entry: entry}

	changed := true
	for changed {
		changed = false
		for _, id := range rpo[1:] {
			b := cfg.Blocks[id]

			var newIdom BlockId
			found := false
			for _, pred := range b.Predecessors {
				if _, ok := idom[pred]; ok {
					newIdom = pred
					found = true
					break
				}
			}
			if !found {
				continue
			}
			for _, pred := range b.Predecessors {
				if pred != newIdom {
					if _, ok := idom[pred]; ok {
						newIdom = intersect(idom, rpoIndex, pred, newIdom)
					}
				}
			}
			if cur, ok := idom[id]; !ok || cur != newIdom {
				idom[id] = newIdom
				changed = true
			}
		}
	}

	children := map[BlockId][]BlockId{}
	for child, parent := range idom {
		if child != parent {
			children[parent] = append(children[parent], child)
		}
	}
	for k := range children {
		sort.Slice(children[k], func(i, j int) bool { return children[k][i] < children[k][j] })
	}

	return &DominatorTree{Idom: idom, Children: children, Entry: entry}
}

func reversePostorder(cfg *ControlFlowGraph, entry BlockId) []BlockId {
	visited := map[BlockId]bool{}
	var postorder []BlockId
	var dfs func(BlockId)
	dfs = func(id BlockId) {
		if visited[id] || id < 0 || int(id) >= len(cfg.Blocks) {
			return
		}
		visited[id] = true
		for _, succ := range cfg.Blocks[id].Successors {
			dfs(succ)
		}
		postorder = append(postorder, id)
	}
	dfs(entry)
	reverseBlockIds(postorder)
	return postorder
}

func reverseBlockIds(ids []BlockId) {
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
}

func indexOf(order []BlockId) map[BlockId]int {
	idx := make(map[BlockId]int, len(order))
	for i, id := range order {
		idx[id] = i
	}
	return idx
}

func intersect(idom map[BlockId]BlockId, rpoIndex map[BlockId]int, b1, b2 BlockId) BlockId {
	for b1 != b2 {
		for rpoIndex[b1] > rpoIndex[b2] {
			b1 = idom[b1]
		}
		for rpoIndex[b2] > rpoIndex[b1] {
			b2 = idom[b2]
		}
	}
	return b1
}

// Dominates reports whether dominator dominates dominated.
func (d *DominatorTree) Dominates(dominator, dominated BlockId) bool {
	if dominator == dominated {
		return true
	}
	current := dominated
	for {
		idom, ok := d.Idom[current]
		if !ok {
			return false
		}
		if idom == current {
			return false
		}
		if idom == dominator {
			return true
		}
		current = idom
	}
}

// StrictlyDominates reports whether dominator strictly dominates dominated.
func (d *DominatorTree) StrictlyDominates(dominator, dominated BlockId) bool {
	return dominator != dominated && d.Dominates(dominator, dominated)
}

// DominatedBy returns every block dominated by dominator, dominator included.
func (d *DominatorTree) DominatedBy(dominator BlockId) map[BlockId]bool {
	result := map[BlockId]bool{dominator: true}
	worklist := []BlockId{dominator}
	for len(worklist) > 0 {
		b := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		for _, child := range d.Children[b] {
			if !result[child] {
				result[child] = true
				worklist = append(worklist, child)
			}
		}
	}
	return result
}

// ImmediateDominator returns block's immediate dominator, or (0, false) for
// the entry block.
func (d *DominatorTree) ImmediateDominator(block BlockId) (BlockId, bool) {
	idom, ok := d.Idom[block]
	if !ok || idom == block {
		return 0, false
	}
	return idom, true
}

// DominanceFrontier computes DF(block): successors of blocks dominated by
// block that are not strictly dominated by block themselves.
func (d *DominatorTree) DominanceFrontier(cfg *ControlFlowGraph, block BlockId) map[BlockId]bool {
	frontier := map[BlockId]bool{}
	for y := range d.DominatedBy(block) {
		if int(y) < 0 || int(y) >= len(cfg.Blocks) {
			continue
		}
		for _, s := range cfg.Blocks[y].Successors {
			if !d.StrictlyDominates(block, s) {
				frontier[s] = true
			}
		}
	}
	return frontier
}

// PostDominatorTree mirrors DominatorTree over the reverse graph, rooted at
// a synthetic virtual exit that post-dominates every real exit block.
type PostDominatorTree struct {
	Ipdom       map[BlockId]BlockId
	Children    map[BlockId][]BlockId
	VirtualExit BlockId
	ExitBlocks  map[BlockId]bool
}

// ComputePostDominatorTree builds the post-dominator tree of cfg. A block
// with no successors (including a DynamicJump block, which the CFG
// modelled with no successors) is an exit; if none exist, the last block
// in CFG order is treated as the sole exit.
func ComputePostDominatorTree(cfg *ControlFlowGraph) *PostDominatorTree {
	if len(cfg.Blocks) == 0 {
		return &PostDominatorTree{Ipdom: map[BlockId]BlockId{}, Children: map[BlockId][]BlockId{}, VirtualExit: virtualExit, ExitBlocks: map[BlockId]bool{}}
	}

	exitBlocks := map[BlockId]bool{}
	for _, b := range cfg.Blocks {
		if len(b.Successors) == 0 {
			exitBlocks[b.ID] = true
		}
	}
	if len(exitBlocks) == 0 {
		exitBlocks[cfg.Blocks[len(cfg.Blocks)-1].ID] = true
	}

	rpo := reversePostorderFromExits(cfg, exitBlocks)
	rpoIndex := indexOf(rpo)

	ipdom := map[BlockId]BlockId{virtualExit: virtualExit}
	for exit := range exitBlocks {
		ipdom[exit] = virtualExit
	}

	changed := true
	for changed {
		changed = false
		for _, id := range rpo {
			if exitBlocks[id] {
				continue
			}
			b := cfg.Blocks[id]

			var newIpdom BlockId
			found := false
			for _, succ := range b.Successors {
				if _, ok := ipdom[succ]; ok {
					newIpdom = succ
					found = true
					break
				}
			}
			if !found {
				continue
			}
			for _, succ := range b.Successors {
				if succ != newIpdom {
					if _, ok := ipdom[succ]; ok {
						newIpdom = intersectPost(ipdom, rpoIndex, succ, newIpdom)
					}
				}
			}
			if cur, ok := ipdom[id]; !ok || cur != newIpdom {
				ipdom[id] = newIpdom
				changed = true
			}
		}
	}

	children := map[BlockId][]BlockId{}
	for child, parent := range ipdom {
		if child != parent && parent != virtualExit {
			children[parent] = append(children[parent], child)
		}
	}
	for k := range children {
		sort.Slice(children[k], func(i, j int) bool { return children[k][i] < children[k][j] })
	}

	return &PostDominatorTree{Ipdom: ipdom, Children: children, VirtualExit: virtualExit, ExitBlocks: exitBlocks}
}

func reversePostorderFromExits(cfg *ControlFlowGraph, exitBlocks map[BlockId]bool) []BlockId {
	visited := map[BlockId]bool{}
	var postorder []BlockId
	var dfs func(BlockId)
	dfs = func(id BlockId) {
		if visited[id] || id < 0 || int(id) >= len(cfg.Blocks) {
			return
		}
		visited[id] = true
		for _, pred := range cfg.Blocks[id].Predecessors {
			dfs(pred)
		}
		postorder = append(postorder, id)
	}
	// Iterate exits in stable (sorted) order for deterministic output.
	exits := make([]BlockId, 0, len(exitBlocks))
	for e := range exitBlocks {
		exits = append(exits, e)
	}
	sort.Slice(exits, func(i, j int) bool { return exits[i] < exits[j] })
	for _, e := range exits {
		dfs(e)
	}
	reverseBlockIds(postorder)
	return postorder
}

const maxRpoIndex = int(^uint(0) >> 1)

func rpoIndexOrMax(rpoIndex map[BlockId]int, b BlockId) int {
	if b == virtualExit {
		return -1 // the root of the post-dominator tree
	}
	if i, ok := rpoIndex[b]; ok {
		return i
	}
	return maxRpoIndex
}

func intersectPost(ipdom map[BlockId]BlockId, rpoIndex map[BlockId]int, b1, b2 BlockId) BlockId {
	for b1 != b2 {
		for rpoIndexOrMax(rpoIndex, b1) > rpoIndexOrMax(rpoIndex, b2) {
			next, ok := ipdom[b1]
			if !ok {
				return b2
			}
			b1 = next
		}
		for rpoIndexOrMax(rpoIndex, b2) > rpoIndexOrMax(rpoIndex, b1) {
			next, ok := ipdom[b2]
			if !ok {
				return b1
			}
			b2 = next
		}
	}
	return b1
}

// PostDominates reports whether postdom post-dominates postdominated.
func (p *PostDominatorTree) PostDominates(postdom, postdominated BlockId) bool {
	if postdom == postdominated {
		return true
	}
	current := postdominated
	for {
		ipdom, ok := p.Ipdom[current]
		if !ok {
			return false
		}
		if ipdom == current || ipdom == p.VirtualExit {
			return false
		}
		if ipdom == postdom {
			return true
		}
		current = ipdom
	}
}

// StrictlyPostDominates reports whether postdom strictly post-dominates
// postdominated.
func (p *PostDominatorTree) StrictlyPostDominates(postdom, postdominated BlockId) bool {
	return postdom != postdominated && p.PostDominates(postdom, postdominated)
}

// ImmediatePostDominator returns block's immediate post-dominator, if any
// real block post-dominates it (not the virtual exit).
func (p *PostDominatorTree) ImmediatePostDominator(block BlockId) (BlockId, bool) {
	ipdom, ok := p.Ipdom[block]
	if !ok || ipdom == block || ipdom == p.VirtualExit {
		return 0, false
	}
	return ipdom, true
}

// ImmediateCommonPostDominator finds the nearest block that post-dominates
// both b1 and b2 — the natural merge point of a conditional. It is
// symmetric in (b1,b2) by construction: the dominatee case is checked from
// both directions before falling back to the general walk.
func (p *PostDominatorTree) ImmediateCommonPostDominator(b1, b2 BlockId) (BlockId, bool) {
	b1Postdoms := map[BlockId]bool{}
	current := b1
	for {
		ipdom, ok := p.Ipdom[current]
		if !ok || ipdom == current || ipdom == p.VirtualExit {
			break
		}
		b1Postdoms[ipdom] = true
		current = ipdom
	}

	if b1Postdoms[b2] {
		return b2, true
	}

	current = b2
	for {
		ipdom, ok := p.Ipdom[current]
		if !ok || ipdom == current || ipdom == p.VirtualExit {
			break
		}
		if ipdom == b1 {
			return b1, true
		}
		current = ipdom
	}

	current = b2
	for {
		ipdom, ok := p.Ipdom[current]
		if !ok || ipdom == current || ipdom == p.VirtualExit {
			break
		}
		if b1Postdoms[ipdom] {
			return ipdom, true
		}
		current = ipdom
	}

	return 0, false
}

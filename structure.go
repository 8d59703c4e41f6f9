package kismetdc

import "sort"

// Node is one node of the structured tree: the recursive output of
// Structure. Exactly one of the Kind-specific fields is meaningful for any
// given Kind.
type Node struct {
	Kind NodeKind

	// Seq
	Children []*Node

	// If
	Condition Expr
	Then      *Node
	Else      *Node // nil when the original false-edge target was the merge itself

	// While / DoWhile
	HeaderCond Expr
	Body       *Node

	// Switch
	Discriminant Expr
	Cases        []SwitchArm
	Default      *Node

	// Goto / BlockLeaf
	Label BlockId
	Block *BasicBlock

	// ExprStmt
	ExprStmt Expr
}

// NodeKind tags which shape a Node carries.
type NodeKind int

const (
	NodeSeq NodeKind = iota
	NodeIf
	NodeWhile
	NodeDoWhile
	NodeSwitch
	NodeBreak
	NodeContinue
	NodeGoto
	NodeBlockLeaf
	// NodeExprStmt wraps a bare Expr as a structured statement, used for
	// SwitchValue case/default bodies: in this bytecode a switch is a
	// value-producing expression, not a branching instruction, so its arms
	// have no sub-CFG region of their own to structure.
	NodeExprStmt
)

// SwitchArm is one case of a structured Switch.
type SwitchArm struct {
	Value Expr
	Body  *Node
}

// StructureResult is the outcome of Structure: the tree built so far, and
// whether reduction fully succeeded. Incomplete structuring is a normal
// outcome, not an error — Tree still holds a usable (if goto-heavy) program
// and Residual names the blocks that could not be folded away.
type StructureResult struct {
	Tree     *Node
	Complete bool
	Residual []BlockId
}

// Structure recovers ifs/loops/switches from cfg using dom/pdom/loops,
// following the Phoenix-style iterative reduction: loop reduction,
// conditional reduction, sequence reduction, switch reduction, repeated
// until no rule applies. Termination is guaranteed because every
// successful conditional or sequence reduction strictly decreases the
// number of live blocks, and a switch reduction replaces a block leaf with
// a node that no reduction matches again.
func Structure(cfg *ControlFlowGraph, dom *DominatorTree, pdom *PostDominatorTree, loops *LoopInfo) *StructureResult {
	s := &structurer{cfg: cfg, dom: dom, pdom: pdom, loops: loops, leaves: map[BlockId]*Node{}}
	for _, b := range cfg.Blocks {
		s.leaves[b.ID] = &Node{Kind: NodeBlockLeaf, Label: b.ID, Block: b}
	}
	s.succ = map[BlockId][]BlockId{}
	s.pred = map[BlockId][]BlockId{}
	for _, b := range cfg.Blocks {
		s.succ[b.ID] = append([]BlockId(nil), b.Successors...)
		s.pred[b.ID] = append([]BlockId(nil), b.Predecessors...)
	}
	s.live = map[BlockId]bool{}
	for _, b := range cfg.Blocks {
		s.live[b.ID] = true
	}

	s.reduceLoops()

	for s.reduceOnce() {
	}

	return s.finish()
}

type structurer struct {
	cfg   *ControlFlowGraph
	dom   *DominatorTree
	pdom  *PostDominatorTree
	loops *LoopInfo

	leaves map[BlockId]*Node     // current structured form of each live node
	succ   map[BlockId][]BlockId // working graph successors
	pred   map[BlockId][]BlockId // working graph predecessors
	live   map[BlockId]bool      // nodes still present in the working graph
}

// reduceLoops folds every innermost-first natural loop into a single leaf
// node whose successors are the loop's exit-edge targets.
func (s *structurer) reduceLoops() {
	order := innermostFirst(s.loops.Loops)
	for _, idx := range order {
		l := &s.loops.Loops[idx]
		s.reduceOneLoop(l)
	}
}

func innermostFirst(loops []Loop) []int {
	order := make([]int, len(loops))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return len(loops[order[i]].Blocks) < len(loops[order[j]].Blocks)
	})
	return order
}

func (s *structurer) reduceOneLoop(l *Loop) {
	members := s.liveLoopMembers(l)
	if len(members) == 0 {
		return
	}

	body := s.classifyLoop(l, members)

	exitTargets := s.loopExitTargets(l, members)

	s.collapse(members, l.Header, &Node{Kind: body.kind, HeaderCond: body.cond, Body: body.node}, exitTargets)
}

type classifiedLoopBody struct {
	kind NodeKind
	cond Expr
	node *Node
}

// classifyLoop picks While or DoWhile per the header and latch shapes. A
// loop that is neither a While nor has a branching latch becomes a DoWhile
// with no condition (an unconditional loop); no Break nodes are emitted
// for its exit edges. It builds the loop's body as a sequence of its member
// blocks (excluding the header's own branch when it is the loop condition).
func (s *structurer) classifyLoop(l *Loop, members map[BlockId]bool) classifiedLoopBody {
	header := l.Header
	headerBlock := s.cfg.Blocks[header]

	if headerBlock.Terminator.Kind == TermBranch {
		inLoop, outLoop := headerBlock.Terminator.TrueTarget, headerBlock.Terminator.FalseTarget
		if !members[inLoop] {
			inLoop, outLoop = outLoop, inLoop
		}
		if members[inLoop] && !members[outLoop] {
			bodyMembers := map[BlockId]bool{}
			for b := range members {
				if b != header {
					bodyMembers[b] = true
				}
			}
			return classifiedLoopBody{
				kind: NodeWhile,
				cond: headerBlock.Terminator.Condition,
				node: s.sequenceOf(orderedMembers(bodyMembers)),
			}
		}
	}

	for _, be := range l.BackEdges {
		latchBlock := s.cfg.Blocks[be.Latch]
		if latchBlock.Terminator.Kind == TermBranch {
			bodyMembers := map[BlockId]bool{}
			for b := range members {
				bodyMembers[b] = true
			}
			return classifiedLoopBody{
				kind: NodeDoWhile,
				cond: latchBlock.Terminator.Condition,
				node: s.sequenceOf(orderedMembers(bodyMembers)),
			}
		}
	}

	return classifiedLoopBody{
		kind: NodeDoWhile,
		node: s.sequenceOf(orderedMembers(members)),
	}
}

func orderedMembers(members map[BlockId]bool) []BlockId {
	out := make([]BlockId, 0, len(members))
	for b := range members {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *structurer) sequenceOf(ids []BlockId) *Node {
	var children []*Node
	for _, id := range ids {
		if n, ok := s.leaves[id]; ok {
			children = append(children, n)
		}
	}
	if len(children) == 1 {
		return children[0]
	}
	return &Node{Kind: NodeSeq, Children: children}
}

func (s *structurer) liveLoopMembers(l *Loop) map[BlockId]bool {
	members := map[BlockId]bool{}
	for b := range l.Blocks {
		if s.live[b] {
			members[b] = true
		}
	}
	return members
}

func (s *structurer) loopExitTargets(l *Loop, members map[BlockId]bool) []BlockId {
	seen := map[BlockId]bool{}
	var out []BlockId
	for b := range members {
		for _, succ := range s.succ[b] {
			if !members[succ] && !seen[succ] {
				seen[succ] = true
				out = append(out, succ)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// collapse removes every block in members from the working graph and
// replaces it with a single node at representative, whose successors
// become exitTargets.
func (s *structurer) collapse(members map[BlockId]bool, representative BlockId, node *Node, exitTargets []BlockId) {
	for b := range members {
		if b != representative {
			delete(s.live, b)
		}
	}
	s.live[representative] = true
	s.leaves[representative] = node

	newPreds := map[BlockId]bool{}
	for b := range members {
		for _, p := range s.pred[b] {
			if !members[p] {
				newPreds[p] = true
			}
		}
	}
	var preds []BlockId
	for p := range newPreds {
		preds = append(preds, p)
	}
	sort.Slice(preds, func(i, j int) bool { return preds[i] < preds[j] })

	s.succ[representative] = exitTargets
	s.pred[representative] = preds

	for _, p := range preds {
		s.succ[p] = retarget(s.succ[p], members, representative)
	}
	for _, t := range exitTargets {
		s.pred[t] = retarget(s.pred[t], members, representative)
	}
}

func retarget(ids []BlockId, members map[BlockId]bool, representative BlockId) []BlockId {
	seen := map[BlockId]bool{}
	var out []BlockId
	for _, id := range ids {
		r := id
		if members[id] {
			r = representative
		}
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

// reduceOnce applies the first applicable conditional, sequence, or switch
// reduction it finds and reports whether it made progress.
func (s *structurer) reduceOnce() bool {
	if s.reduceOneSwitch() {
		return true
	}
	if s.reduceOneConditional() {
		return true
	}
	return s.reduceOneSequence()
}

func liveOrder(live map[BlockId]bool) []BlockId {
	out := make([]BlockId, 0, len(live))
	for b := range live {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// reduceOneSwitch folds a block whose original terminator came from a
// SwitchValue statement in tail position. The parser never lowers
// SwitchValue into a Terminator variant of its own (it is a statement, not
// a branch instruction), so we detect it by inspecting the leaf's trailing
// statement.
func (s *structurer) reduceOneSwitch() bool {
	for _, id := range liveOrder(s.live) {
		leaf, ok := s.leaves[id]
		if !ok || leaf.Kind != NodeBlockLeaf || leaf.Block == nil {
			continue
		}
		stmts := leaf.Block.Statements
		if len(stmts) == 0 {
			continue
		}
		sw, ok := stmts[len(stmts)-1].Kind.(SwitchValue)
		if !ok {
			continue
		}

		var arms []SwitchArm
		for _, c := range sw.Cases {
			arms = append(arms, SwitchArm{Value: c.CaseValue, Body: &Node{Kind: NodeExprStmt, ExprStmt: c.Result}})
		}
		switchNode := &Node{
			Kind:         NodeSwitch,
			Discriminant: sw.Index,
			Cases:        arms,
			Default:      &Node{Kind: NodeExprStmt, ExprStmt: sw.Default},
		}

		node := switchNode
		if len(stmts) > 1 {
			children := make([]*Node, 0, len(stmts))
			for _, stmt := range stmts[:len(stmts)-1] {
				children = append(children, &Node{Kind: NodeExprStmt, ExprStmt: stmt})
			}
			children = append(children, switchNode)
			node = &Node{Kind: NodeSeq, Children: children}
		}
		s.leaves[id] = node
		return true
	}
	return false
}

// reduceOneConditional folds a Branch block h whose two successors meet at
// their immediate common post-dominator m into an If node, collapsing h
// and both arms into a single leaf with m as its unique successor.
func (s *structurer) reduceOneConditional() bool {
	for _, id := range liveOrder(s.live) {
		succs := s.succ[id]
		if len(succs) != 2 {
			continue
		}
		leaf, ok := s.leaves[id]
		if !ok || leaf.Kind != NodeBlockLeaf || leaf.Block == nil || leaf.Block.Terminator.Kind != TermBranch {
			continue
		}
		t, f := leaf.Block.Terminator.TrueTarget, leaf.Block.Terminator.FalseTarget
		if !s.live[t] || !s.live[f] {
			continue
		}
		m, ok := s.pdom.ImmediateCommonPostDominator(t, f)
		if !ok {
			continue
		}

		thenNode := s.regionUpTo(t, m)
		var elseNode *Node
		if f != m {
			elseNode = s.regionUpTo(f, m)
		}

		members := map[BlockId]bool{id: true}
		s.collectRegion(t, m, members)
		s.collectRegion(f, m, members)

		node := &Node{Kind: NodeIf, Condition: leaf.Block.Terminator.Condition, Then: thenNode, Else: elseNode}
		exitTargets := []BlockId{}
		if s.live[m] {
			exitTargets = []BlockId{m}
		}
		s.collapse(members, id, node, exitTargets)
		return true
	}
	return false
}

// regionUpTo builds the structured form of everything strictly between
// start and merge (exclusive), as a sequence of the blocks' own leaves in
// id order. It does not mutate the working graph; collapse does that once
// both arms have been captured.
func (s *structurer) regionUpTo(start, merge BlockId) *Node {
	members := map[BlockId]bool{}
	s.collectRegion(start, merge, members)
	return s.sequenceOf(orderedMembers(members))
}

func (s *structurer) collectRegion(start, merge BlockId, into map[BlockId]bool) {
	if start == merge || into[start] || !s.live[start] {
		return
	}
	into[start] = true
	for _, succ := range s.succ[start] {
		s.collectRegion(succ, merge, into)
	}
}

// reduceOneSequence concatenates a block with exactly one successor whose
// sole predecessor is that block.
func (s *structurer) reduceOneSequence() bool {
	for _, id := range liveOrder(s.live) {
		succs := s.succ[id]
		if len(succs) != 1 {
			continue
		}
		next := succs[0]
		if next == id || !s.live[next] {
			continue
		}
		if len(s.pred[next]) != 1 || s.pred[next][0] != id {
			continue
		}

		members := map[BlockId]bool{id: true, next: true}
		node := s.sequenceOf([]BlockId{id, next})
		s.collapse(members, id, node, s.succ[next])
		return true
	}
	return false
}

func (s *structurer) finish() *StructureResult {
	live := liveOrder(s.live)
	if len(live) == 1 {
		return &StructureResult{Tree: s.leaves[live[0]], Complete: true}
	}

	var children []*Node
	for _, id := range live {
		children = append(children, s.gotoOrLeaf(id))
	}
	return &StructureResult{Tree: &Node{Kind: NodeSeq, Children: children}, Complete: false, Residual: live}
}

func (s *structurer) gotoOrLeaf(id BlockId) *Node {
	leaf := s.leaves[id]
	if len(s.succ[id]) == 1 {
		return &Node{Kind: NodeSeq, Children: []*Node{leaf, {Kind: NodeGoto, Label: s.succ[id][0]}}}
	}
	return leaf
}

package kismetdc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildScript concatenates raw opcode bytes for CFG-shaped fixtures.
func buildScript(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func op(o Opcode) []byte { return []byte{byte(o)} }

func jumpIfNot(target uint32) []byte {
	return append(op(OpJumpIfNot), le32(nil, target)...)
}

func jump(target uint32) []byte {
	return append(op(OpJump), le32(nil, target)...)
}

// TestBuildCFGReturnOnly mirrors a Return(IntZero); EndOfScript function:
// the entry block's terminator must be Return, whatever the total block
// count turns out to be once the (unreachable) EndOfScript leader is
// accounted for.
func TestBuildCFGReturnOnly(t *testing.T) {
	script := buildScript(op(OpReturn), op(OpIntZero), op(OpEndOfScript))
	exprs, err := ParseAll(script, nil, nil)
	require.NoError(t, err)

	cfg := BuildCFG(exprs)
	require.NotEmpty(t, cfg.Blocks)

	entry := cfg.Blocks[cfg.EntryBlock]
	require.Equal(t, TermReturn, entry.Terminator.Kind)
	ic, ok := entry.Terminator.ReturnValue.Kind.(IntZero)
	require.True(t, ok)
	_ = ic
}

// TestBuildCFGBranch builds a diamond: JumpIfNot(@else) True ; IntConst(10) ;
// Jump(@tail) ; @else: IntConst(20) ; @tail: Return IntZero ; EndOfScript,
// and checks the branch block has two distinct, correctly assigned
// successors that both lead into the shared tail block.
func TestBuildCFGBranch(t *testing.T) {
	// Two passes: first with placeholder targets to learn the true offsets
	// each part starts at, then again with the real targets patched in.
	build := func(elseTarget, tailTarget uint32) ([]byte, map[string]int) {
		offsets := map[string]int{}
		var script []byte
		add := func(name string, bs []byte) {
			offsets[name] = len(script)
			script = append(script, bs...)
		}
		add("jumpifnot", jumpIfNot(elseTarget))
		add("cond", op(OpTrue))
		add("then_val", append(op(OpIntConst), le32(nil, 10)...))
		add("jump", jump(tailTarget))
		add("else_val", append(op(OpIntConst), le32(nil, 20)...))
		add("return", op(OpReturn))
		add("return_val", op(OpIntZero))
		add("eos", op(OpEndOfScript))
		return script, offsets
	}

	_, offsets := build(0, 0)
	elseTarget := uint32(offsets["else_val"])
	tailTarget := uint32(offsets["return"])
	script, offsets := build(elseTarget, tailTarget)
	require.Equal(t, offsets["else_val"], int(elseTarget))
	require.Equal(t, offsets["return"], int(tailTarget))

	exprs, err := ParseAll(script, nil, nil)
	require.NoError(t, err)

	cfg := BuildCFG(exprs)
	entry := cfg.Blocks[cfg.EntryBlock]
	require.Equal(t, TermBranch, entry.Terminator.Kind)
	require.NotEqual(t, entry.Terminator.TrueTarget, entry.Terminator.FalseTarget)
	require.Len(t, entry.Successors, 2)

	tailBlock := cfg.OffsetToBlock[BytecodeOffset(tailTarget)]
	require.Contains(t, entry.Successors, entry.Terminator.TrueTarget)
	require.Contains(t, entry.Successors, entry.Terminator.FalseTarget)
	// Both arms fall through or jump into the same tail block.
	require.Contains(t, cfg.Blocks[tailBlock].Predecessors, entry.Terminator.TrueTarget)
	require.Contains(t, cfg.Blocks[tailBlock].Predecessors, entry.Terminator.FalseTarget)
}

func TestBuildCFGEmptyScript(t *testing.T) {
	cfg := BuildCFG(nil)
	require.Empty(t, cfg.Blocks)
}

package render_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"kismetdc"
	"kismetdc/render"
)

func TestTextRendersIfElse(t *testing.T) {
	thenLeaf := &kismetdc.Node{
		Kind: kismetdc.NodeExprStmt,
		ExprStmt: kismetdc.Expr{Kind: kismetdc.Let{
			Variable: kismetdc.Expr{Kind: kismetdc.LocalVariable{Property: kismetdc.PropertyRef{Addr: 1}}},
			Value:    kismetdc.Expr{Kind: kismetdc.IntConst{Value: 10}},
		}},
	}
	elseLeaf := &kismetdc.Node{
		Kind: kismetdc.NodeExprStmt,
		ExprStmt: kismetdc.Expr{Kind: kismetdc.Let{
			Variable: kismetdc.Expr{Kind: kismetdc.LocalVariable{Property: kismetdc.PropertyRef{Addr: 1}}},
			Value:    kismetdc.Expr{Kind: kismetdc.IntConst{Value: 20}},
		}},
	}
	tree := &kismetdc.Node{
		Kind:      kismetdc.NodeIf,
		Condition: kismetdc.Expr{Kind: kismetdc.True{}},
		Then:      thenLeaf,
		Else:      elseLeaf,
	}

	out := render.Text(tree, nil)
	require.Contains(t, out, "if (true) {")
	require.Contains(t, out, "} else {")
	require.Contains(t, out, "= 10;")
	require.Contains(t, out, "= 20;")
}

func TestTextBlockLeafSkipsTerminatorStatement(t *testing.T) {
	block := &kismetdc.BasicBlock{
		Statements: []kismetdc.Expr{
			{Kind: kismetdc.IntConst{Value: 5}},
			{Kind: kismetdc.Jump{Target: 99}},
		},
	}
	tree := &kismetdc.Node{Kind: kismetdc.NodeBlockLeaf, Block: block}

	out := render.Text(tree, nil)
	require.Contains(t, out, "5;")
	require.NotContains(t, out, "goto")
}

func TestTextRendersUnresolvedCallMathAsPlainCall(t *testing.T) {
	tree := &kismetdc.Node{
		Kind: kismetdc.NodeExprStmt,
		ExprStmt: kismetdc.Expr{Kind: kismetdc.CallMath{
			Func: kismetdc.FunctionRefByAddress(0x1),
			Args: []kismetdc.Expr{
				{Kind: kismetdc.IntConst{Value: 1}},
				{Kind: kismetdc.IntConst{Value: 2}},
			},
		}},
	}

	// Without an index, the function resolves to its bare address, so
	// TryOperator cannot match and it renders as an ordinary call.
	out := render.Text(tree, nil)
	require.Contains(t, out, "(")
	require.Contains(t, out, "1")
	require.Contains(t, out, "2")
}

func TestTextRendersCallByName(t *testing.T) {
	tree := &kismetdc.Node{
		Kind: kismetdc.NodeExprStmt,
		ExprStmt: kismetdc.Expr{Kind: kismetdc.VirtualFunction{
			Func: kismetdc.FunctionRefByName(kismetdc.Name{Base: "DoThing"}),
			Args: []kismetdc.Expr{{Kind: kismetdc.IntOne{}}},
		}},
	}
	out := render.Text(tree, nil)
	require.Contains(t, out, "DoThing(1)")
}

package render_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"kismetdc/render"
)

func TestTryOperatorBinary(t *testing.T) {
	s, ok := render.TryOperator("/Script/Engine.KismetMathLibrary:Add_IntInt", []string{"a", "b"})
	require.True(t, ok)
	require.Equal(t, "(a + b)", s)
}

func TestTryOperatorUnary(t *testing.T) {
	s, ok := render.TryOperator("/Script/Engine.KismetMathLibrary:Not_PreBool", []string{"x"})
	require.True(t, ok)
	require.Equal(t, "!x", s)
}

func TestTryOperatorUnmatchedPath(t *testing.T) {
	_, ok := render.TryOperator("/Script/Engine.KismetMathLibrary:DoesNotExist", []string{"a", "b"})
	require.False(t, ok)
}

func TestTryOperatorWrongArity(t *testing.T) {
	// Add_IntInt is binary; calling TryOperator with one arg must not match.
	_, ok := render.TryOperator("/Script/Engine.KismetMathLibrary:Add_IntInt", []string{"a"})
	require.False(t, ok)
}

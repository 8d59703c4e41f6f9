package kismetdc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// le32 appends a little-endian uint32 to buf.
func le32(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func le64(buf []byte, v uint64) []byte {
	var b [8]byte
	for i := range b {
		b[i] = byte(v >> (8 * i))
	}
	return append(buf, b[:]...)
}

func TestParseIntConstAndReturn(t *testing.T) {
	var script []byte
	script = append(script, byte(OpReturn))
	script = append(script, byte(OpIntConst))
	script = le32(script, 7)
	script = append(script, byte(OpEndOfScript))

	exprs, err := ParseAll(script, nil, nil)
	require.NoError(t, err)
	require.Len(t, exprs, 2)

	ret, ok := exprs[0].Kind.(Return)
	require.True(t, ok)
	ic, ok := ret.Sub.Kind.(IntConst)
	require.True(t, ok)
	require.Equal(t, int32(7), ic.Value)

	_, ok = exprs[1].Kind.(EndOfScript)
	require.True(t, ok)
}

func TestParseJumpIfNot(t *testing.T) {
	var script []byte
	script = append(script, byte(OpJumpIfNot))
	script = le32(script, 0x99) // target
	script = append(script, byte(OpTrue))

	exprs, err := ParseAll(script, nil, nil)
	require.NoError(t, err)
	require.Len(t, exprs, 1)

	jin, ok := exprs[0].Kind.(JumpIfNot)
	require.True(t, ok)
	require.Equal(t, BytecodeOffset(0x99), jin.Target)
	_, ok = jin.Condition.Kind.(True)
	require.True(t, ok)
}

func TestParseFinalFunctionCall(t *testing.T) {
	var script []byte
	script = append(script, byte(OpFinalFunction))
	script = le64(script, 0x1234)
	script = append(script, byte(OpIntZero))
	script = append(script, byte(OpIntOne))
	script = append(script, byte(OpEndFunctionParms))

	exprs, err := ParseAll(script, nil, nil)
	require.NoError(t, err)
	require.Len(t, exprs, 1)

	ff, ok := exprs[0].Kind.(FinalFunction)
	require.True(t, ok)
	require.False(t, ff.Func.IsByName())
	require.Equal(t, Address(0x1234), ff.Func.Address())
	require.Len(t, ff.Args, 2)
}

func TestParseLetDerivesProperty(t *testing.T) {
	var script []byte
	script = append(script, byte(OpLet))
	script = append(script, byte(OpLocalVariable))
	script = le64(script, 0xAABB)
	script = append(script, byte(OpIntZero))

	exprs, err := ParseAll(script, nil, nil)
	require.NoError(t, err)
	let, ok := exprs[0].Kind.(Let)
	require.True(t, ok)
	require.Equal(t, Address(0xAABB), let.Property.Addr)
}

func TestParseUndocumentedOpcodeIsUnknownNotError(t *testing.T) {
	script := []byte{byte(OpBitFieldConst)}
	exprs, err := ParseAll(script, nil, nil)
	require.NoError(t, err)
	require.Len(t, exprs, 1)
	unk, ok := exprs[0].Kind.(Unknown)
	require.True(t, ok)
	require.Equal(t, byte(OpBitFieldConst), unk.Byte)
}

func TestParseUnknownInSubExpressionIsError(t *testing.T) {
	var script []byte
	script = append(script, byte(OpReturn))
	script = append(script, byte(OpBitFieldConst))

	_, err := ParseAll(script, nil, nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnknownOpcode))
}

func TestParseTruncatedStreamIsError(t *testing.T) {
	script := []byte{byte(OpIntConst), 0x01, 0x02} // missing two bytes of the i32
	_, err := ParseAll(script, nil, nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrTruncated))
}

func TestParseSwitchValue(t *testing.T) {
	var script []byte
	script = append(script, byte(OpSwitchValue))
	script = append(script, byte(OpIntZero)) // index
	script = append(script, 0x02, 0x00)      // 2 cases
	script = le32(script, 0)                 // end offset (unused by parser)

	script = append(script, byte(OpIntZero)) // case 0 value
	script = le32(script, 0)                 // skip offset
	script = append(script, byte(OpIntOne))  // case 0 result

	script = append(script, byte(OpIntOne))  // case 1 value
	script = le32(script, 0)                 // skip offset
	script = append(script, byte(OpIntZero)) // case 1 result

	script = append(script, byte(OpTrue)) // default

	exprs, err := ParseAll(script, nil, nil)
	require.NoError(t, err)
	sw, ok := exprs[0].Kind.(SwitchValue)
	require.True(t, ok)
	require.Len(t, sw.Cases, 2)
	_, ok = sw.Default.Kind.(True)
	require.True(t, ok)
}

func TestParseMalformedStreamFromStandaloneTerminator(t *testing.T) {
	script := []byte{byte(OpEndFunctionParms)}
	_, err := ParseAll(script, nil, nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMalformedStream))
}

package kismetdc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReaderPrimitives(t *testing.T) {
	script := []byte{
		0x2A,                                           // byte
		0x34, 0x12,                                     // word = 0x1234
		0xEF, 0xBE, 0xAD, 0xDE,                         // uint32 = 0xDEADBEEF
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // uint64 = 1
		'h', 'i', 0x00, // String8 "hi"
	}
	offset := 0
	r := NewReader(script)

	b, err := r.Byte(&offset)
	require.NoError(t, err)
	require.Equal(t, byte(0x2A), b)

	w, err := r.Word(&offset)
	require.NoError(t, err)
	require.Equal(t, uint16(0x1234), w)

	u32, err := r.Uint32(&offset)
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), u32)

	u64, err := r.Uint64(&offset)
	require.NoError(t, err)
	require.Equal(t, uint64(1), u64)

	s, err := r.String8(&offset)
	require.NoError(t, err)
	require.Equal(t, "hi", s)
	require.Equal(t, len(script), offset)
}

func TestReaderTruncated(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})
	offset := 0
	_, err := r.Uint64(&offset)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrTruncated))

	var de *DecodeError
	require.True(t, errors.As(err, &de))
	require.Equal(t, BytecodeOffset(0), de.Offset)
}

func TestReaderName(t *testing.T) {
	script := make([]byte, 12)
	putU32(script[0:4], 7)   // comparison index, discarded
	putU32(script[4:8], 42)  // display index
	putU32(script[8:12], 3)  // number (encodes as _2 suffix)
	names := map[uint32]string{42: "MyVar"}

	offset := 0
	r := NewReader(script)
	n, err := r.Name(&offset, names)
	require.NoError(t, err)
	require.Equal(t, "MyVar_2", n.String())
}

func TestReaderNameUnknown(t *testing.T) {
	script := make([]byte, 12)
	putU32(script[4:8], 99)
	offset := 0
	r := NewReader(script)
	n, err := r.Name(&offset, map[uint32]string{})
	require.NoError(t, err)
	require.Contains(t, n.String(), "99")
}

func TestReaderString16SkipsLoneSurrogates(t *testing.T) {
	script := []byte{
		'H', 0x00,
		'i', 0x00,
		0x00, 0xD8, // lone high surrogate, skipped
		0xFF, 0xDF, // lone low surrogate, skipped
		0x00, 0x00, // NUL terminator
	}
	offset := 0
	r := NewReader(script)
	s, err := r.String16(&offset)
	require.NoError(t, err)
	require.Equal(t, "Hi", s)
	require.Equal(t, len(script), offset)
}

func putU32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

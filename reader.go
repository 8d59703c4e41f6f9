package kismetdc

import "math"

// Reader is an endian-aware, panic-free reader over an immutable byte
// slice, advancing an externally-owned offset cursor. It is the sole place
// the parser touches raw bytes.
type Reader struct {
	script []byte
}

// NewReader wraps script for reading. script is borrowed, not copied.
func NewReader(script []byte) *Reader {
	return &Reader{script: script}
}

// Len returns the length of the underlying script buffer.
func (r *Reader) Len() int { return len(r.script) }

func (r *Reader) need(offset *int, n int) error {
	if *offset < 0 || *offset+n > len(r.script) {
		return decodeErr(BytecodeOffset(clampOffset(*offset)), ErrTruncated)
	}
	return nil
}

func clampOffset(o int) int {
	if o < 0 {
		return 0
	}
	return o
}

// Byte reads a single u8, advancing offset by 1.
func (r *Reader) Byte(offset *int) (byte, error) {
	if err := r.need(offset, 1); err != nil {
		return 0, err
	}
	v := r.script[*offset]
	*offset++
	return v, nil
}

// Word reads a little-endian u16, advancing offset by 2.
func (r *Reader) Word(offset *int) (uint16, error) {
	if err := r.need(offset, 2); err != nil {
		return 0, err
	}
	v := uint16(r.script[*offset]) | uint16(r.script[*offset+1])<<8
	*offset += 2
	return v, nil
}

// Int32 reads a little-endian i32, advancing offset by 4.
func (r *Reader) Int32(offset *int) (int32, error) {
	u, err := r.Uint32(offset)
	return int32(u), err
}

// Uint32 reads a little-endian u32, advancing offset by 4.
func (r *Reader) Uint32(offset *int) (uint32, error) {
	if err := r.need(offset, 4); err != nil {
		return 0, err
	}
	b := r.script[*offset : *offset+4]
	v := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	*offset += 4
	return v, nil
}

// Uint64 reads a little-endian u64, advancing offset by 8.
func (r *Reader) Uint64(offset *int) (uint64, error) {
	if err := r.need(offset, 8); err != nil {
		return 0, err
	}
	b := r.script[*offset : *offset+8]
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	*offset += 8
	return v, nil
}

// Float32 reads a raw IEEE-754 single-precision value, bitcast from a
// little-endian u32, advancing offset by 4.
func (r *Reader) Float32(offset *int) (float32, error) {
	bits, err := r.Uint32(offset)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

// SkipCount reads an i32 reinterpreted as u32, advancing offset by 4.
func (r *Reader) SkipCount(offset *int) (uint32, error) {
	return r.Uint32(offset)
}

// Address reads a u64 address, advancing offset by 8.
func (r *Reader) Address(offset *int) (Address, error) {
	v, err := r.Uint64(offset)
	return Address(v), err
}

// String8 reads a NUL-terminated 8-bit ASCII string.
func (r *Reader) String8(offset *int) (string, error) {
	var out []byte
	for {
		b, err := r.Byte(offset)
		if err != nil {
			return "", err
		}
		if b == 0 {
			break
		}
		out = append(out, b)
	}
	return string(out), nil
}

// String16 reads a NUL-terminated 16-bit UCS-2 string. Each code unit is
// mapped to a scalar code point where defined, skipped otherwise.
func (r *Reader) String16(offset *int) (string, error) {
	var out []rune
	for {
		w, err := r.Word(offset)
		if err != nil {
			return "", err
		}
		if w == 0 {
			break
		}
		if w < 0xD800 || w > 0xDFFF {
			out = append(out, rune(w))
		}
	}
	return string(out), nil
}

// Name reads an FScriptName: three consecutive little-endian u32s
// (comparisonIndex, displayIndex, number). comparisonIndex is discarded.
func (r *Reader) Name(offset *int, names map[uint32]string) (Name, error) {
	if _, err := r.Uint32(offset); err != nil { // comparison index, discarded
		return Name{}, err
	}
	displayIndex, err := r.Uint32(offset)
	if err != nil {
		return Name{}, err
	}
	number, err := r.Uint32(offset)
	if err != nil {
		return Name{}, err
	}
	base, ok := names[displayIndex]
	if !ok {
		base = unknownNameBase(displayIndex)
	}
	return Name{Base: base, Number: number}, nil
}

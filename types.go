package kismetdc

import "fmt"

// Address is an opaque 64-bit integer uniquely identifying an engine object
// in the metadata document. It has total ordering and equality defined on
// the underlying integer.
type Address uint64

// String renders the address the way the rest of the toolchain's disasm
// listings print numeric values.
func (a Address) String() string {
	return fmt.Sprintf("0x%016X", uint64(a))
}

// BytecodeOffset is a byte index into a function's script buffer. It is the
// stable label jumps and branches refer to.
type BytecodeOffset uint32

func (o BytecodeOffset) String() string {
	return fmt.Sprintf("0x%04X", uint32(o))
}

// Name is an interned display string paired with a non-negative
// disambiguation index. A Name literal in bytecode encodes
// (comparisonIndex, displayIndex, number) as three little-endian u32s, of
// which only displayIndex and number participate in the canonical form.
type Name struct {
	Base   string
	Number uint32
}

// String returns the canonical textual form: Base when Number is zero,
// else Base_{Number-1}.
func (n Name) String() string {
	if n.Number == 0 {
		return n.Base
	}
	return fmt.Sprintf("%s_%d", n.Base, n.Number-1)
}

func unknownNameBase(displayIndex uint32) string {
	return fmt.Sprintf("UnknownName_%d", displayIndex)
}

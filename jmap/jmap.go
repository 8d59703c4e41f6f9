// Package jmap is the metadata document model the Kismet decompiler's core
// (package kismetdc) borrows from. Loading it from JSON is deliberately a
// thin wrapper — the core only ever sees the typed Document below, never
// the JSON representation.
package jmap

// Kind tags the role an Object plays in the metadata document.
type Kind string

const (
	KindObject   Kind = "Object"
	KindStruct   Kind = "Struct"
	KindClass    Kind = "Class"
	KindFunction Kind = "Function"
)

// Property is one field of a struct-like Object, in declaration order.
type Property struct {
	Name    string `json:"name"`
	Address uint64 `json:"address"`
}

// Object is one entry of the metadata document. Every object carries an
// Address; Struct/Class/Function objects additionally carry Properties (in
// declaration order); Function objects additionally carry a Script, its
// flags, and the address of its enclosing struct.
type Object struct {
	Kind          Kind       `json:"kind"`
	Address       uint64     `json:"address"`
	Properties    []Property `json:"properties,omitempty"`
	Script        []byte     `json:"script,omitempty"`
	FunctionFlags uint32     `json:"function_flags,omitempty"`
	Struct        uint64     `json:"struct,omitempty"`
}

// IsStructLike reports whether Properties is meaningful for this object.
func (o *Object) IsStructLike() bool {
	return o.Kind == KindStruct || o.Kind == KindClass || o.Kind == KindFunction
}

// Document is the full metadata document: every engine object keyed by its
// string path, plus the DisplayIndex -> string table Name literals resolve
// against.
type Document struct {
	Objects map[string]*Object `json:"objects"`
	Names   map[uint32]string  `json:"names"`
}

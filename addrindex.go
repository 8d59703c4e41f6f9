package kismetdc

import (
	"strings"

	"github.com/dolthub/swiss"

	"kismetdc/jmap"
)

// ObjectInfo is the result of resolving an address to an engine object: its
// full document path and the object itself.
type ObjectInfo struct {
	Path   string
	Object *jmap.Object
}

// ShortName returns the trailing path segment (the last '/'-delimited
// component), the object's short display name.
func (o ObjectInfo) ShortName() string {
	if i := strings.LastIndexByte(o.Path, '/'); i >= 0 {
		return o.Path[i+1:]
	}
	return o.Path
}

// PropertyInfo is the result of resolving an address to a struct property.
type PropertyInfo struct {
	Owner    ObjectInfo
	Property jmap.Property
}

type propertyKey struct {
	path string
	pos  int
}

// AddressIndex maps 64-bit addresses to objects and properties, built once
// per decode session from a metadata document. Both maps are lookup-only
// after construction and immutable for the document's lifetime; the index
// borrows from the document and never mutates it.
//
// The two maps are large (one entry per object, one per struct property),
// built once and read many times per decode session with no further
// insertions — the access pattern github.com/dolthub/swiss's hash tables
// are built for, and the same library mna-nenuphar uses for its own
// integer/value-keyed lookup tables.
type AddressIndex struct {
	doc           *jmap.Document
	objectIndex   *swiss.Map[uint64, string]
	propertyIndex *swiss.Map[uint64, propertyKey]
}

// NewAddressIndex constructs an AddressIndex over doc. Every object
// contributes exactly one address->path binding; every property of every
// struct-like object contributes exactly one address->(owner,position)
// binding.
func NewAddressIndex(doc *jmap.Document) *AddressIndex {
	objIdx := swiss.NewMap[uint64, string](uint32(len(doc.Objects)))
	propCount := uint32(0)
	for _, obj := range doc.Objects {
		propCount += uint32(len(obj.Properties))
	}
	propIdx := swiss.NewMap[uint64, propertyKey](propCount)

	for path, obj := range doc.Objects {
		objIdx.Put(obj.Address, path)
	}
	for path, obj := range doc.Objects {
		if !obj.IsStructLike() {
			continue
		}
		for pos, prop := range obj.Properties {
			propIdx.Put(prop.Address, propertyKey{path: path, pos: pos})
		}
	}

	return &AddressIndex{doc: doc, objectIndex: objIdx, propertyIndex: propIdx}
}

// ResolveObject resolves addr to its object and document path, iff addr is
// registered.
func (ai *AddressIndex) ResolveObject(addr Address) (ObjectInfo, bool) {
	path, ok := ai.objectIndex.Get(uint64(addr))
	if !ok {
		return ObjectInfo{}, false
	}
	return ObjectInfo{Path: path, Object: ai.doc.Objects[path]}, true
}

// ResolveProperty resolves addr to its owning object and property.
func (ai *AddressIndex) ResolveProperty(addr Address) (PropertyInfo, bool) {
	key, ok := ai.propertyIndex.Get(uint64(addr))
	if !ok {
		return PropertyInfo{}, false
	}
	obj := ai.doc.Objects[key.path]
	return PropertyInfo{
		Owner:    ObjectInfo{Path: key.path, Object: obj},
		Property: obj.Properties[key.pos],
	}, true
}

package kismetdc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"kismetdc/jmap"
)

func TestAddressIndexResolveObject(t *testing.T) {
	doc := &jmap.Document{
		Objects: map[string]*jmap.Object{
			"/Game/Foo.Foo_C": {Kind: jmap.KindClass, Address: 0x1000},
		},
	}
	idx := NewAddressIndex(doc)

	info, ok := idx.ResolveObject(Address(0x1000))
	require.True(t, ok)
	require.Equal(t, "/Game/Foo.Foo_C", info.Path)
	require.Equal(t, "Foo_C", info.ShortName())

	_, ok = idx.ResolveObject(Address(0xDEAD))
	require.False(t, ok)
}

func TestAddressIndexResolveProperty(t *testing.T) {
	doc := &jmap.Document{
		Objects: map[string]*jmap.Object{
			"/Game/Foo.Foo_C": {
				Kind:    jmap.KindClass,
				Address: 0x1000,
				Properties: []jmap.Property{
					{Name: "Health", Address: 0x2000},
					{Name: "Mana", Address: 0x2008},
				},
			},
			"/Game/Bar.Bar": {Kind: jmap.KindObject, Address: 0x3000},
		},
	}
	idx := NewAddressIndex(doc)

	info, ok := idx.ResolveProperty(Address(0x2008))
	require.True(t, ok)
	require.Equal(t, "Mana", info.Property.Name)
	require.Equal(t, "/Game/Foo.Foo_C", info.Owner.Path)

	// An address registered only as an object (Bar's own address) does
	// not resolve as a property.
	_, ok = idx.ResolveProperty(Address(0x3000))
	require.False(t, ok)
}

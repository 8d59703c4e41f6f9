package jmap_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"kismetdc/jmap"
)

func TestLoadDecodesObjectsAndNames(t *testing.T) {
	raw := `{
		"objects": {
			"/Game/Foo.Foo_C": {
				"kind": "Class",
				"address": 4096,
				"properties": [{"name": "Health", "address": 8192}]
			},
			"/Game/Foo.Foo_C:Func": {
				"kind": "Function",
				"address": 4112,
				"script": [4, 37, 83]
			}
		},
		"names": {"0": "None", "1": "Health"}
	}`

	doc, err := jmap.Load(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, doc.Objects, 2)

	class := doc.Objects["/Game/Foo.Foo_C"]
	require.Equal(t, jmap.KindClass, class.Kind)
	require.True(t, class.IsStructLike())
	require.Equal(t, uint64(4096), class.Address)
	require.Len(t, class.Properties, 1)
	require.Equal(t, "Health", class.Properties[0].Name)

	fn := doc.Objects["/Game/Foo.Foo_C:Func"]
	require.Equal(t, jmap.KindFunction, fn.Kind)
	require.True(t, fn.IsStructLike())
	require.Equal(t, []byte{4, 37, 83}, fn.Script)

	require.Equal(t, "None", doc.Names[0])
	require.Equal(t, "Health", doc.Names[1])
}

func TestLoadDefaultsNilMaps(t *testing.T) {
	doc, err := jmap.Load(strings.NewReader(`{}`))
	require.NoError(t, err)
	require.NotNil(t, doc.Objects)
	require.NotNil(t, doc.Names)
	require.Empty(t, doc.Objects)
	require.Empty(t, doc.Names)
}

func TestLoadMalformedJSONIsError(t *testing.T) {
	_, err := jmap.Load(strings.NewReader(`{not json`))
	require.Error(t, err)
}

func TestObjectIsStructLikeOnlyForStructClassFunction(t *testing.T) {
	plain := jmap.Object{Kind: jmap.KindObject}
	require.False(t, plain.IsStructLike())

	str := jmap.Object{Kind: jmap.KindStruct}
	require.True(t, str.IsStructLike())
}

func TestLoadFileMissingPathIsError(t *testing.T) {
	_, err := jmap.LoadFile("/nonexistent/path/does-not-exist.json")
	require.Error(t, err)
}

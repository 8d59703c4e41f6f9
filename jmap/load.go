package jmap

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Load reads a metadata document from r.
//
// This is intentionally the only place encoding/json is used in the
// module: the metadata-document loader is an external collaborator of the
// decompilation core, not part of it, and no third-party JSON library
// pulled in elsewhere is a better fit for a one-shot "read a map of tagged
// objects" load than the standard library's own decoder (see DESIGN.md).
func Load(r io.Reader) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("jmap: decode: %w", err)
	}
	if doc.Objects == nil {
		doc.Objects = map[string]*Object{}
	}
	if doc.Names == nil {
		doc.Names = map[uint32]string{}
	}
	return &doc, nil
}

// LoadFile opens and loads a metadata document from path.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("jmap: %w", err)
	}
	defer f.Close()
	return Load(f)
}

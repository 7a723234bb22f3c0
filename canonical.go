package jsonpatch

import (
	"fmt"

	"github.com/go-json-experiment/json/jsontext"
)

// CanonicalizeBytes returns doc reformatted into the RFC 8785 canonical
// form (sorted object keys, fixed whitespace and number formatting). It is
// an ambient convenience for callers who want a stable byte representation
// of a patched document — for hashing or for comparing two documents
// byte-for-byte — not a replacement for the structural equality the test
// operation uses internally.
func CanonicalizeBytes(doc []byte) ([]byte, error) {
	value := jsontext.Value(append([]byte(nil), doc...))
	if err := value.Canonicalize(); err != nil {
		return nil, fmt.Errorf("canonicalize json: %w", err)
	}
	return []byte(value), nil
}

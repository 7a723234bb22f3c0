package jsonpatch

import (
	gojson "github.com/go-json-experiment/json"
)

// jsonMarshal and jsonUnmarshal are the byte-level JSON codec this module
// delegates to, per spec.md §1 ("byte-level JSON parsing and serialization
// ... treated as external collaborators"). github.com/go-json-experiment/json
// exposes a v1-compatible Marshal/Unmarshal surface, so it drops in wherever
// encoding/json would otherwise be called directly.
func jsonMarshal(v any) ([]byte, error) {
	return gojson.Marshal(v)
}

func jsonUnmarshal(data []byte, v any) error {
	return gojson.Unmarshal(data, v)
}

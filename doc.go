// Package jsonpatch applies RFC 6902 JSON Patch operations to JSON
// documents addressed with RFC 6901 JSON Pointers (package jsonpointer).
//
// Documents are the native Go representation encoding/json produces for
// untyped JSON: nil, bool, float64, string, []any, and map[string]any.
// Apply and ApplyInPlace operate on that representation directly;
// ApplyBytes and ApplyStream operate on raw JSON bytes, decoding and
// encoding with this module's JSON codec (github.com/go-json-experiment/json).
//
// A minimal example:
//
//	doc := map[string]any{"a": "b", "c": "d"}
//	patch, _ := jsonpatch.New([]byte(`[{"op":"add","path":"/e","value":"f"}]`))
//	result, err := jsonpatch.Apply(doc, patch)
package jsonpatch

package jsonpatch

import (
	"encoding/json"
	"fmt"

	"github.com/agentflare-ai/json6902/errs"
)

// Op names one of the six RFC 6902 operation kinds.
type Op string

const (
	Add     Op = "add"
	Remove  Op = "remove"
	Replace Op = "replace"
	Move    Op = "move"
	Copy    Op = "copy"
	Test    Op = "test"
)

// requiredFields lists, per operation kind, the JSON fields that must be
// present (not merely non-empty — "path":"" is a legal root pointer) for
// the operation to parse. A missing field is MissingPatchField, per
// spec.md §4.4 and §7.
var requiredFields = map[Op][]string{
	Add:     {"path", "value"},
	Remove:  {"path"},
	Replace: {"path", "value"},
	Move:    {"from", "path"},
	Copy:    {"from", "path"},
	Test:    {"path", "value"},
}

// Operation is a single JSON Patch step. Value holds arbitrary decoded JSON
// (nil, bool, float64, string, []any, map[string]any); it is nil and
// meaningless for remove/move/copy.
type Operation struct {
	Op    Op     `json:"op"`
	Path  string `json:"path,omitempty"`
	From  string `json:"from,omitempty"`
	Value any    `json:"value,omitempty"`
}

// Patch is an ordered sequence of Operations — the top-level JSON array
// described in spec.md §6.
type Patch []Operation

// New parses data as an RFC 6902 patch document (a top-level JSON array of
// operation objects). It delegates the byte-level decode to the module's
// JSON codec (see doc.go) and then validates per-operation required fields,
// matching spec.md §4.4 item 1.
func New(data []byte) (Patch, error) {
	var raw []map[string]json.RawMessage
	if err := jsonUnmarshal(data, &raw); err != nil {
		if isArrayOf(data) {
			return nil, errs.Newf(errs.InvalidPatchFormat, "decoding patch elements: %v", err)
		}
		return nil, errs.Newf(errs.InvalidPatchFormat, "patch document must be a JSON array of operations: %v", err)
	}

	patch := make(Patch, len(raw))
	for i, m := range raw {
		op, err := operationFromRaw(m, i)
		if err != nil {
			return nil, err
		}
		patch[i] = op
	}
	return patch, nil
}

// FromValue builds a Patch from a patch document that has already been
// decoded into the native JSON value shapes (nil, bool, float64, string,
// []any, map[string]any) — the construction path spec.md §6 names
// alongside decoding raw bytes, for callers who decoded the document
// themselves (e.g. as part of a larger payload) and only need the
// per-operation field validation New performs.
func FromValue(v any) (Patch, error) {
	raw, ok := v.([]any)
	if !ok {
		return nil, errs.Newf(errs.InvalidPatchFormat, "patch document must be a JSON array of operations, got %T", v)
	}

	patch := make(Patch, len(raw))
	for i, elem := range raw {
		m, ok := elem.(map[string]any)
		if !ok {
			return nil, errs.Newf(errs.InvalidPatchFormat, "patch element %d must be a JSON object, got %T", i, elem).WithOp("", i)
		}
		op, err := operationFromDecoded(m, i)
		if err != nil {
			return nil, err
		}
		patch[i] = op
	}
	return patch, nil
}

// isArrayOf is a light heuristic used only to make the InvalidPatchFormat
// message more useful; it does not affect control flow correctness since
// either branch returns the same error Kind.
func isArrayOf(data []byte) bool {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}

func operationFromRaw(m map[string]json.RawMessage, index int) (Operation, error) {
	opRaw, ok := m["op"]
	if !ok {
		return Operation{}, errs.New(errs.MissingPatchField).WithOp("", index).WithField("op")
	}
	var op Op
	if err := json.Unmarshal(opRaw, &op); err != nil {
		return Operation{}, errs.Newf(errs.UnknownOperation, "op field is not a string: %v", err).WithOp("", index)
	}

	required, known := requiredFields[op]
	if !known {
		return Operation{}, errs.Newf(errs.UnknownOperation, "%q", op).WithOp(string(op), index)
	}

	for _, field := range required {
		if _, present := m[field]; !present {
			return Operation{}, errs.New(errs.MissingPatchField).WithOp(string(op), index).WithField(field)
		}
	}

	result := Operation{Op: op}
	if raw, present := m["path"]; present {
		if err := json.Unmarshal(raw, &result.Path); err != nil {
			return Operation{}, errs.Newf(errs.MissingPatchField, "path is not a string: %v", err).WithOp(string(op), index).WithField("path")
		}
	}
	if raw, present := m["from"]; present {
		if err := json.Unmarshal(raw, &result.From); err != nil {
			return Operation{}, errs.Newf(errs.MissingPatchField, "from is not a string: %v", err).WithOp(string(op), index).WithField("from")
		}
	}
	if raw, present := m["value"]; present {
		if err := json.Unmarshal(raw, &result.Value); err != nil {
			return Operation{}, errs.Newf(errs.InvalidPatchFormat, "value is not valid JSON: %v", err).WithOp(string(op), index).WithField("value")
		}
	}
	return result, nil
}

// operationFromDecoded is operationFromRaw's counterpart for a patch
// document that arrived already decoded (FromValue) instead of as bytes
// (New): same required-field validation, but reading straight from the
// decoded map instead of re-unmarshalling json.RawMessage per field.
func operationFromDecoded(m map[string]any, index int) (Operation, error) {
	opVal, ok := m["op"]
	if !ok {
		return Operation{}, errs.New(errs.MissingPatchField).WithOp("", index).WithField("op")
	}
	opStr, ok := opVal.(string)
	if !ok {
		return Operation{}, errs.Newf(errs.UnknownOperation, "op field is not a string").WithOp("", index)
	}
	op := Op(opStr)

	required, known := requiredFields[op]
	if !known {
		return Operation{}, errs.Newf(errs.UnknownOperation, "%q", op).WithOp(string(op), index)
	}

	for _, field := range required {
		if _, present := m[field]; !present {
			return Operation{}, errs.New(errs.MissingPatchField).WithOp(string(op), index).WithField(field)
		}
	}

	result := Operation{Op: op}
	if raw, present := m["path"]; present {
		path, ok := raw.(string)
		if !ok {
			return Operation{}, errs.Newf(errs.MissingPatchField, "path is not a string").WithOp(string(op), index).WithField("path")
		}
		result.Path = path
	}
	if raw, present := m["from"]; present {
		from, ok := raw.(string)
		if !ok {
			return Operation{}, errs.Newf(errs.MissingPatchField, "from is not a string").WithOp(string(op), index).WithField("from")
		}
		result.From = from
	}
	if raw, present := m["value"]; present {
		result.Value = raw
	}
	return result, nil
}

// MarshalJSON emits exactly the fields required for o's kind, with no
// extras, per spec.md §6.
func (o Operation) MarshalJSON() ([]byte, error) {
	m := map[string]any{"op": string(o.Op)}
	for _, field := range requiredFields[o.Op] {
		switch field {
		case "path":
			m["path"] = o.Path
		case "from":
			m["from"] = o.From
		case "value":
			m["value"] = o.Value
		}
	}
	return json.Marshal(m)
}

// UnmarshalJSON validates required fields the same way New does, so that
// direct encoding/json.Unmarshal(data, &patch) calls (as the teacher's own
// tests use) enforce spec.md's field requirements too.
func (o *Operation) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return errs.Newf(errs.InvalidPatchFormat, "operation must be a JSON object: %v", err)
	}
	parsed, err := operationFromRaw(m, -1)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// Bytes serializes p back to an RFC 6902 patch document using the module's
// JSON codec.
func (p Patch) Bytes() ([]byte, error) {
	return jsonMarshal(p)
}

func (o Operation) String() string {
	switch o.Op {
	case Move, Copy:
		return fmt.Sprintf("%s from=%q path=%q", o.Op, o.From, o.Path)
	default:
		return fmt.Sprintf("%s path=%q", o.Op, o.Path)
	}
}

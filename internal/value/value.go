// Package value holds the free functions spec.md's Data Model section asks
// for over the native `any` representation of a decoded JSON document
// (nil, bool, float64, string, []any, map[string]any) — the representation
// every encoding/json-based Go program, including the teacher this module
// grew from, already uses for untyped JSON.
package value

import "github.com/brunoga/deep"

// Kind is the six-way tag spec.md's Data Model section describes. It exists
// so callers can exhaustively switch on a document value's shape instead of
// chaining type assertions.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "Null"
	case Bool:
		return "Bool"
	case Number:
		return "Number"
	case String:
		return "String"
	case Array:
		return "Array"
	case Object:
		return "Object"
	default:
		return "Invalid"
	}
}

// KindOf classifies v into one of the six JSON value shapes.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return Null
	case bool:
		return Bool
	case float64, int, int64, float32:
		return Number
	case string:
		return String
	case []any:
		return Array
	case map[string]any:
		return Object
	default:
		return Null
	}
}

// DeepCopy returns an independent copy of v: mutating the result never
// observably mutates v, and vice versa. It delegates to brunoga/deep rather
// than hand-rolling a recursive map/slice walk, since that is exactly the
// general-purpose reflection-based deep copy the JSON value shapes need.
func DeepCopy(v any) any {
	if v == nil {
		return nil
	}
	cp, err := deep.Copy(v)
	if err != nil {
		// deep.Copy only fails on unsupported kinds (channels, funcs, unsafe
		// pointers), none of which a decoded JSON document can contain.
		panic("value: unexpected DeepCopy failure on a JSON-shaped value: " + err.Error())
	}
	return cp
}

// Equal reports whether a and b are structurally equal per RFC 6902's test
// semantics: same Kind; numbers compare by mathematical value; arrays
// compare element-by-element in order; objects compare by key set with
// recursively-equal values, ignoring key order; booleans are never equal to
// numbers regardless of their underlying numeric value.
//
// This is hand-rolled rather than built on a generic equality library
// (including brunoga/deep's own Equal) because RFC 6902 equality has rules
// no general-purpose Go equality function knows about: boolean/number
// segregation and order-independent object comparison are JSON Patch
// semantics, not Go value semantics.
func Equal(a, b any) bool {
	ka, kb := KindOf(a), KindOf(b)
	if ka != kb {
		return false
	}
	switch ka {
	case Null:
		return true
	case Bool:
		return a.(bool) == b.(bool)
	case Number:
		return numeric(a) == numeric(b)
	case String:
		return a.(string) == b.(string)
	case Array:
		aa, bb := a.([]any), b.([]any)
		if len(aa) != len(bb) {
			return false
		}
		for i := range aa {
			if !Equal(aa[i], bb[i]) {
				return false
			}
		}
		return true
	case Object:
		ao, bo := a.(map[string]any), b.(map[string]any)
		if len(ao) != len(bo) {
			return false
		}
		for k, av := range ao {
			bv, ok := bo[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// numeric normalizes the Go numeric types KindOf treats as Number (float64,
// float32, int, int64) to a common float64 representation for comparison;
// other numeric types, such as json.Number, are not recognized. Exact big-integer fidelity beyond what
// float64 represents is out of scope per spec.md's Non-goals
// ("canonicalization of numeric representations beyond what value equality
// requires").
func numeric(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

package jsonpointer

import (
	"strconv"

	"github.com/agentflare-ai/json6902/errs"
)

// Locator is the result of resolving a pointer for mutation: either the
// document root, or a container (map or slice) plus the token addressing
// the position to mutate inside it. Parent is always the live value inside
// the document, never a detached copy, so callers can mutate through it.
type Locator struct {
	Root   bool
	Parent any
	Token  string
}

// Get evaluates ptr against doc and returns the addressed value, or
// NonexistentValue/IndexError/IndexOutOfBounds on failure (a token that
// walks into a scalar is NonexistentValue).
func Get(doc any, ptr Pointer) (any, error) {
	cur := doc
	for i, tok := range ptr.tokens {
		next, err := step(cur, tok, stepOptions{})
		if err != nil {
			return nil, withPath(err, ptr, i)
		}
		cur = next
	}
	return cur, nil
}

// Locate resolves ptr for a mutating operation: Root if ptr is empty,
// otherwise the parent container and terminal token. allowAppend permits the
// array terminal token "-" and an index equal to the array's length (both
// are valid only as the terminal of an add).
func Locate(doc any, ptr Pointer, allowAppend bool) (Locator, error) {
	if ptr.IsRoot() {
		return Locator{Root: true}, nil
	}

	parentPtr, token := ptr.Parent()
	cur := doc
	for i, tok := range parentPtr.tokens {
		next, err := step(cur, tok, stepOptions{})
		if err != nil {
			return Locator{}, withPath(err, ptr, i)
		}
		cur = next
	}

	switch cur.(type) {
	case map[string]any, []any:
	default:
		return Locator{}, errs.New(errs.TypeMismatch).WithPath(parentPtr.String())
	}

	if arr, ok := cur.([]any); ok {
		if token != "-" {
			if _, err := parseIndex(token, len(arr), allowAppend); err != nil {
				return Locator{}, withPath(err, ptr, len(parentPtr.tokens))
			}
		} else if !allowAppend {
			return Locator{}, withPath(errs.New(errs.IndexError), ptr, len(parentPtr.tokens))
		}
	}

	return Locator{Parent: cur, Token: token}, nil
}

type stepOptions struct{}

// step walks a single token into cur, returning the child value or a
// resolution error (Evaluate semantics: array indices must be strictly in
// bounds, "-" never resolves to a value).
func step(cur any, tok string, _ stepOptions) (any, error) {
	switch c := cur.(type) {
	case map[string]any:
		v, ok := c[tok]
		if !ok {
			return nil, errs.New(errs.NonexistentValue)
		}
		return v, nil
	case []any:
		idx, err := parseIndex(tok, len(c), false)
		if err != nil {
			return nil, err
		}
		return c[idx], nil
	default:
		return nil, errs.New(errs.NonexistentValue)
	}
}

// parseIndex validates tok against the RFC 6901 array-index grammar: a
// non-negative decimal integer with no leading zeros except the literal
// "0". When allowAppend is true, an index equal to length is accepted (an
// add-operation append); otherwise the index must be strictly less than
// length.
func parseIndex(tok string, length int, allowAppend bool) (int, error) {
	if tok == "" {
		return 0, errs.New(errs.IndexError)
	}
	if tok == "0" {
		// fallthrough to bounds check below
	} else {
		if tok[0] < '1' || tok[0] > '9' {
			return 0, errs.New(errs.IndexError)
		}
		for i := 1; i < len(tok); i++ {
			if tok[i] < '0' || tok[i] > '9' {
				return 0, errs.New(errs.IndexError)
			}
		}
	}

	idx, err := strconv.Atoi(tok)
	if err != nil {
		return 0, errs.New(errs.IndexError)
	}

	max := length
	if allowAppend {
		max = length + 1
	}
	if idx < 0 || idx >= max {
		return 0, errs.New(errs.IndexOutOfBounds)
	}
	return idx, nil
}

// ParseIndex validates tok as an array index that must already address an
// existing element of an array of the given length (remove, replace, and
// the source/destination-already-exists cases of move/copy).
func ParseIndex(tok string, length int) (int, error) {
	return parseIndex(tok, length, false)
}

// ParseInsertIndex validates tok as an array index for an insertion point:
// valid values are 0..length inclusive, where length means "append".
func ParseInsertIndex(tok string, length int) (int, error) {
	return parseIndex(tok, length, true)
}

func withPath(err error, ptr Pointer, tokenIndex int) error {
	if e, ok := errs.As(err); ok && e.Path == "" {
		partial, _ := truncate(ptr, tokenIndex+1)
		e.WithPath(partial.String())
	}
	return err
}

func truncate(ptr Pointer, n int) (Pointer, bool) {
	if n >= len(ptr.tokens) {
		return ptr, false
	}
	tokens := make([]string, n)
	copy(tokens, ptr.tokens[:n])
	return Pointer{tokens: tokens}, true
}

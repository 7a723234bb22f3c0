// Package jsonpointer implements RFC 6901 JSON Pointers: parsing both the
// standard ("/a/b") and URI-fragment ("#/a/b") surface forms, and resolving
// a parsed pointer against an in-memory JSON document built out of the
// usual encoding/json shapes (nil, bool, float64, string, []any,
// map[string]any).
//
// It is grounded in the same RFC 6901 corpus every pointer implementation in
// the wild ends up implementing, but is written from scratch for this
// module rather than wrapping an external pointer library: resolution and
// parsing are first-class, budgeted components here, not somebody else's
// dependency.
package jsonpointer

import (
	"net/url"
	"strings"

	"github.com/agentflare-ai/json6902/errs"
)

// Pointer is a parsed RFC 6901 JSON Pointer: an ordered sequence of decoded
// reference tokens. The empty Pointer denotes the document root.
type Pointer struct {
	tokens []string
}

// Root is the empty pointer, addressing the whole document.
func Root() Pointer { return Pointer{} }

// Parse parses s, accepting both the standard form ("/a/b") and the
// URI-fragment form ("#/a/b"). A bare "" and a bare "#" both denote Root.
func Parse(s string) (Pointer, error) {
	if strings.HasPrefix(s, "#") {
		decoded, err := url.PathUnescape(s[1:])
		if err != nil {
			return Pointer{}, errs.Newf(errs.InvalidPointer, "percent-decoding %q: %v", s, err).WithPath(s)
		}
		s = decoded
	}

	if s == "" {
		return Pointer{}, nil
	}

	if s[0] != '/' {
		return Pointer{}, errs.Newf(errs.InvalidPointer, "%q must be empty or begin with '/'", s).WithPath(s)
	}

	raw := strings.Split(s[1:], "/")
	tokens := make([]string, len(raw))
	for i, t := range raw {
		decoded, err := decodeToken(t)
		if err != nil {
			return Pointer{}, errs.Newf(errs.InvalidPointer, "token %q in %q: %v", t, s, err).WithPath(s)
		}
		tokens[i] = decoded
	}
	return Pointer{tokens: tokens}, nil
}

// decodeToken resolves ~1 -> '/' and ~0 -> '~' in a single left-to-right
// pass, so "~01" decodes to "~1" rather than "/".
func decodeToken(t string) (string, error) {
	if !strings.Contains(t, "~") {
		return t, nil
	}
	var b strings.Builder
	b.Grow(len(t))
	for i := 0; i < len(t); i++ {
		c := t[i]
		if c != '~' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(t) {
			return "", errs.ErrInvalidPointer
		}
		switch t[i+1] {
		case '0':
			b.WriteByte('~')
		case '1':
			b.WriteByte('/')
		default:
			return "", errs.ErrInvalidPointer
		}
		i++
	}
	return b.String(), nil
}

// encodeToken is the inverse of decodeToken: '~' -> "~0", '/' -> "~1", in
// that order so a literal "~1" round-trips as "~01", not "/".
func encodeToken(t string) string {
	if !strings.ContainsAny(t, "~/") {
		return t
	}
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(t)
}

// Tokens returns the pointer's decoded reference tokens. The returned slice
// must not be mutated by the caller.
func (p Pointer) Tokens() []string { return p.tokens }

// IsRoot reports whether p addresses the document root.
func (p Pointer) IsRoot() bool { return len(p.tokens) == 0 }

// Parent returns the pointer to p's parent container, and the last token of
// p. Calling it on Root is a programmer error (it panics), since Root has no
// parent; callers must check IsRoot first, as every operation in this
// module's Applier does.
func (p Pointer) Parent() (Pointer, string) {
	if p.IsRoot() {
		panic("jsonpointer: Parent called on root pointer")
	}
	last := len(p.tokens) - 1
	parent := make([]string, last)
	copy(parent, p.tokens[:last])
	return Pointer{tokens: parent}, p.tokens[last]
}

// Child returns a new pointer with token appended.
func (p Pointer) Child(token string) Pointer {
	tokens := make([]string, len(p.tokens)+1)
	copy(tokens, p.tokens)
	tokens[len(p.tokens)] = token
	return Pointer{tokens: tokens}
}

// String renders p in the canonical standard form.
func (p Pointer) String() string {
	if p.IsRoot() {
		return ""
	}
	var b strings.Builder
	for _, t := range p.tokens {
		b.WriteByte('/')
		b.WriteString(encodeToken(t))
	}
	return b.String()
}

// IsPrefixOf reports whether p is a proper prefix of other, i.e. other
// addresses a location strictly inside the subtree rooted at p. This is
// used by the Applier's move operation to reject moving a value into one of
// its own descendants.
func (p Pointer) IsPrefixOf(other Pointer) bool {
	if len(p.tokens) >= len(other.tokens) {
		return false
	}
	for i, t := range p.tokens {
		if other.tokens[i] != t {
			return false
		}
	}
	return true
}

// Equal reports whether p and other address the same location.
func (p Pointer) Equal(other Pointer) bool {
	if len(p.tokens) != len(other.tokens) {
		return false
	}
	for i, t := range p.tokens {
		if other.tokens[i] != t {
			return false
		}
	}
	return true
}

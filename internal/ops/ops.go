// Package ops implements the six RFC 6902 operation semantics of spec.md
// §4.3 as pure transformations over a document value (nil, bool, float64,
// string, []any, map[string]any), built on the jsonpointer package for
// addressing and internal/value for equality and deep-copy.
package ops

import (
	"github.com/agentflare-ai/json6902/errs"
	"github.com/agentflare-ai/json6902/internal/value"
	"github.com/agentflare-ai/json6902/jsonpointer"
)

// Add implements spec.md §4.3 "add". It returns the (possibly new) document
// root; on error the document may be left partially unmodified but never
// type-inconsistent.
func Add(doc any, ptr jsonpointer.Pointer, val any) (any, error) {
	val = value.DeepCopy(val)

	if ptr.IsRoot() {
		return val, nil
	}

	loc, err := jsonpointer.Locate(doc, ptr, true)
	if err != nil {
		return nil, err
	}

	switch parent := loc.Parent.(type) {
	case map[string]any:
		parent[loc.Token] = val
		return doc, nil
	case []any:
		idx, insertErr := arrayInsertIndex(loc.Token, len(parent))
		if insertErr != nil {
			return nil, insertErr
		}
		newArr := make([]any, 0, len(parent)+1)
		newArr = append(newArr, parent[:idx]...)
		newArr = append(newArr, val)
		newArr = append(newArr, parent[idx:]...)
		return setInParent(doc, ptr, newArr)
	default:
		return nil, errs.New(errs.TypeMismatch).WithPath(ptr.String())
	}
}

// Remove implements spec.md §4.3 "remove".
func Remove(doc any, ptr jsonpointer.Pointer) (any, error) {
	if ptr.IsRoot() {
		return nil, errs.New(errs.CannotRemoveRoot)
	}

	loc, err := jsonpointer.Locate(doc, ptr, false)
	if err != nil {
		return nil, err
	}

	switch parent := loc.Parent.(type) {
	case map[string]any:
		if _, ok := parent[loc.Token]; !ok {
			return nil, errs.New(errs.NonexistentValue).WithPath(ptr.String())
		}
		delete(parent, loc.Token)
		return doc, nil
	case []any:
		// Locate already rejected "-" here: it was called with
		// allowAppend=false, and "-" is only ever valid as the terminal
		// token of an add.
		idx, parseErr := arrayIndexInBounds(loc.Token, len(parent))
		if parseErr != nil {
			return nil, parseErr
		}
		newArr := make([]any, 0, len(parent)-1)
		newArr = append(newArr, parent[:idx]...)
		newArr = append(newArr, parent[idx+1:]...)
		return setInParent(doc, ptr, newArr)
	default:
		return nil, errs.New(errs.TypeMismatch).WithPath(ptr.String())
	}
}

// Replace implements spec.md §4.3 "replace": remove then add, but the
// target must already exist.
func Replace(doc any, ptr jsonpointer.Pointer, val any) (any, error) {
	if ptr.IsRoot() {
		return value.DeepCopy(val), nil
	}
	if _, err := jsonpointer.Get(doc, ptr); err != nil {
		return nil, err
	}

	loc, err := jsonpointer.Locate(doc, ptr, false)
	if err != nil {
		return nil, err
	}
	val = value.DeepCopy(val)

	switch parent := loc.Parent.(type) {
	case map[string]any:
		parent[loc.Token] = val
		return doc, nil
	case []any:
		idx, parseErr := arrayIndexInBounds(loc.Token, len(parent))
		if parseErr != nil {
			return nil, parseErr
		}
		parent[idx] = val
		return doc, nil
	default:
		return nil, errs.New(errs.TypeMismatch).WithPath(ptr.String())
	}
}

// Move implements spec.md §4.3 "move". from must resolve, and from must not
// be a proper prefix of path. from == path is a defined no-op.
func Move(doc any, from, path jsonpointer.Pointer) (any, error) {
	if from.Equal(path) {
		if _, err := jsonpointer.Get(doc, from); err != nil {
			return nil, err
		}
		return doc, nil
	}
	if from.IsPrefixOf(path) {
		return nil, errs.New(errs.InvalidMove).WithPath(path.String())
	}

	val, err := jsonpointer.Get(doc, from)
	if err != nil {
		return nil, err
	}
	val = value.DeepCopy(val)

	doc, err = Remove(doc, from)
	if err != nil {
		return nil, err
	}
	return addWithoutCopy(doc, path, val)
}

// Copy implements spec.md §4.3 "copy". from must resolve; no prefix
// restriction applies (unlike move, the source is untouched).
func Copy(doc any, from, path jsonpointer.Pointer) (any, error) {
	val, err := jsonpointer.Get(doc, from)
	if err != nil {
		return nil, err
	}
	return Add(doc, path, val)
}

// Test implements spec.md §4.3 "test": never mutates the document.
func Test(doc any, ptr jsonpointer.Pointer, expected any) error {
	actual, err := jsonpointer.Get(doc, ptr)
	if err != nil {
		return err
	}
	if !value.Equal(actual, expected) {
		return errs.New(errs.TestFailed).WithPath(ptr.String())
	}
	return nil
}

// addWithoutCopy is Add without the deep-copy step, used by Move, which has
// already deep-copied the detached value once (copying it again would be
// wasteful and would also defeat identity expectations for large subtrees).
func addWithoutCopy(doc any, ptr jsonpointer.Pointer, val any) (any, error) {
	if ptr.IsRoot() {
		return val, nil
	}
	loc, err := jsonpointer.Locate(doc, ptr, true)
	if err != nil {
		return nil, err
	}
	switch parent := loc.Parent.(type) {
	case map[string]any:
		parent[loc.Token] = val
		return doc, nil
	case []any:
		idx, insertErr := arrayInsertIndex(loc.Token, len(parent))
		if insertErr != nil {
			return nil, insertErr
		}
		newArr := make([]any, 0, len(parent)+1)
		newArr = append(newArr, parent[:idx]...)
		newArr = append(newArr, val)
		newArr = append(newArr, parent[idx:]...)
		return setInParent(doc, ptr, newArr)
	default:
		return nil, errs.New(errs.TypeMismatch).WithPath(ptr.String())
	}
}

// arrayInsertIndex resolves the terminal token of an add/move/copy
// destination against an array of the given length: "-" means append,
// otherwise the RFC 6901 index grammar applies and the index may equal
// length (append by index).
func arrayInsertIndex(token string, length int) (int, error) {
	if token == "-" {
		return length, nil
	}
	return jsonpointer.ParseInsertIndex(token, length)
}

// arrayIndexInBounds resolves a terminal array index that must already
// exist (remove/replace): "-" is never valid here.
func arrayIndexInBounds(token string, length int) (int, error) {
	return jsonpointer.ParseIndex(token, length)
}

// setInParent replaces the array at ptr's parent position with newArr. This
// is needed because Go slices cannot grow or shrink through an existing
// reference the way a map can be mutated through one: inserting into or
// removing from an array means the grandparent's slot (or the document
// root) must be repointed at the new backing slice.
func setInParent(doc any, ptr jsonpointer.Pointer, newArr []any) (any, error) {
	if ptr.IsRoot() {
		return newArr, nil
	}
	arrayPtr, _ := ptr.Parent()
	loc, err := jsonpointer.Locate(doc, arrayPtr, false)
	if err != nil {
		return nil, err
	}
	if loc.Root {
		return newArr, nil
	}
	switch parent := loc.Parent.(type) {
	case map[string]any:
		parent[loc.Token] = newArr
	case []any:
		idx, parseErr := arrayIndexInBounds(loc.Token, len(parent))
		if parseErr != nil {
			return nil, parseErr
		}
		parent[idx] = newArr
	}
	return doc, nil
}

package ops_test

import (
	"testing"

	"github.com/agentflare-ai/json6902/errs"
	"github.com/agentflare-ai/json6902/internal/ops"
	"github.com/agentflare-ai/json6902/jsonpointer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(t *testing.T, s string) jsonpointer.Pointer {
	t.Helper()
	p, err := jsonpointer.Parse(s)
	require.NoError(t, err)
	return p
}

func TestAddObjectMember(t *testing.T) {
	doc := map[string]any{"a": "b", "c": "d"}
	out, err := ops.Add(doc, ptr(t, "/e"), "f")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "b", "c": "d", "e": "f"}, out)
}

func TestAddArrayElementInsertsAtIndex(t *testing.T) {
	doc := map[string]any{"foo": []any{"bar", "baz"}}
	out, err := ops.Add(doc, ptr(t, "/foo/1"), "qux")
	require.NoError(t, err)
	assert.Equal(t, []any{"bar", "qux", "baz"}, out.(map[string]any)["foo"])
}

func TestAddArrayAppendDash(t *testing.T) {
	doc := map[string]any{"foo": []any{"bar"}}
	out, err := ops.Add(doc, ptr(t, "/foo/-"), "baz")
	require.NoError(t, err)
	assert.Equal(t, []any{"bar", "baz"}, out.(map[string]any)["foo"])
}

func TestAddArrayIndexOutOfBounds(t *testing.T) {
	doc := map[string]any{"foo": []any{"bar"}}
	_, err := ops.Add(doc, ptr(t, "/foo/5"), "x")
	require.Error(t, err)
	e, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.IndexOutOfBounds, e.Kind)
}

func TestAddRootReplacesWholeDocument(t *testing.T) {
	out, err := ops.Add(map[string]any{"a": 1.0}, jsonpointer.Root(), []any{1.0, 2.0})
	require.NoError(t, err)
	assert.Equal(t, []any{1.0, 2.0}, out)
}

func TestRemoveObjectMember(t *testing.T) {
	doc := map[string]any{"a": "b", "c": "d"}
	out, err := ops.Remove(doc, ptr(t, "/a"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"c": "d"}, out)
}

func TestRemoveNonexistentMember(t *testing.T) {
	doc := map[string]any{"c": "d"}
	_, err := ops.Remove(doc, ptr(t, "/a"))
	require.Error(t, err)
	e, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.NonexistentValue, e.Kind)
}

func TestRemoveRootIsCannotRemoveRoot(t *testing.T) {
	_, err := ops.Remove(map[string]any{"a": 1.0}, jsonpointer.Root())
	require.Error(t, err)
	e, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.CannotRemoveRoot, e.Kind)
}

func TestReplaceRequiresExistingTarget(t *testing.T) {
	doc := map[string]any{"a": "b"}
	_, err := ops.Replace(doc, ptr(t, "/missing"), "x")
	require.Error(t, err)
	e, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.NonexistentValue, e.Kind)
}

func TestMoveValue(t *testing.T) {
	doc := map[string]any{
		"foo": map[string]any{"bar": "baz", "waldo": "fred"},
		"qux": map[string]any{"corge": "grault"},
	}
	out, err := ops.Move(doc, ptr(t, "/foo/waldo"), ptr(t, "/qux/thud"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"foo": map[string]any{"bar": "baz"},
		"qux": map[string]any{"corge": "grault", "thud": "fred"},
	}, out)
}

func TestMoveRejectsSourceAsPrefixOfDestination(t *testing.T) {
	doc := map[string]any{"a": map[string]any{"b": 1.0}}
	_, err := ops.Move(doc, ptr(t, "/a"), ptr(t, "/a/b"))
	require.Error(t, err)
	e, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.InvalidMove, e.Kind)
}

func TestMoveToSelfIsNoOp(t *testing.T) {
	doc := map[string]any{"a": 1.0}
	out, err := ops.Move(doc, ptr(t, "/a"), ptr(t, "/a"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1.0}, out)
}

func TestCopyLeavesSourceIntact(t *testing.T) {
	doc := map[string]any{"src": map[string]any{"v": 5.0}, "arr": []any{1.0, 2.0}}
	out, err := ops.Copy(doc, ptr(t, "/src/v"), ptr(t, "/arr/-"))
	require.NoError(t, err)
	m := out.(map[string]any)
	assert.Equal(t, map[string]any{"v": 5.0}, m["src"])
	assert.Equal(t, []any{1.0, 2.0, 5.0}, m["arr"])
}

func TestCopyIsDeepNotAliased(t *testing.T) {
	doc := map[string]any{"src": map[string]any{"v": 5.0}}
	out, err := ops.Copy(doc, ptr(t, "/src"), ptr(t, "/dst"))
	require.NoError(t, err)
	m := out.(map[string]any)
	m["dst"].(map[string]any)["v"] = 99.0
	assert.Equal(t, 5.0, m["src"].(map[string]any)["v"], "copy must not alias the source subtree")
}

func TestTestSucceeds(t *testing.T) {
	doc := map[string]any{"baz": "qux", "foo": []any{"a", 2.0, "c"}}
	err := ops.Test(doc, ptr(t, "/baz"), "qux")
	assert.NoError(t, err)
}

func TestTestFails(t *testing.T) {
	doc := map[string]any{"baz": "qux"}
	err := ops.Test(doc, ptr(t, "/baz"), "bar")
	require.Error(t, err)
	e, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.TestFailed, e.Kind)
}

func TestTestObjectOrderIndependence(t *testing.T) {
	doc := map[string]any{"obj": map[string]any{"a": 1.0, "b": 2.0}}
	err := ops.Test(doc, ptr(t, "/obj"), map[string]any{"b": 2.0, "a": 1.0})
	assert.NoError(t, err)
}

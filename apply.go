package jsonpatch

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/agentflare-ai/json6902/errs"
	"github.com/agentflare-ai/json6902/internal/ops"
	"github.com/agentflare-ai/json6902/internal/value"
	"github.com/agentflare-ai/json6902/jsonpointer"
)

// MediaType is the RFC 6902 media type for a JSON Patch document. It is
// informational (spec.md §6) — this module builds no transport around it.
const MediaType = "application/json-patch+json"

// applyConfig holds the options spec.md §4.4 names: ApplyOnCopy,
// IgnoreNonexistentValues, and RelativeTo, plus the additive
// FailTestOnIgnoredMissing and the ambient WithLogger hook.
type applyConfig struct {
	applyOnCopy              bool
	ignoreNonexistent        bool
	failTestOnIgnoredMissing bool
	relativeTo               *jsonpointer.Pointer
	relativeToErr            error
	logger                   *slog.Logger
}

// Option configures a call to Apply, ApplyInPlace, ApplyBytes, or
// ApplyStream.
type Option func(*applyConfig)

// ApplyOnCopy makes the apply call deep-copy the target document before
// mutating it, so a failure midway leaves the caller's original
// byte-identical to its pre-call state (spec.md §8 law 5).
func ApplyOnCopy() Option {
	return func(c *applyConfig) { c.applyOnCopy = true }
}

// IgnoreNonexistentValues treats a NonexistentValue error from any single
// operation as a successful skip of that operation, rather than aborting
// the whole patch.
func IgnoreNonexistentValues() Option {
	return func(c *applyConfig) { c.ignoreNonexistent = true }
}

// FailTestOnIgnoredMissing keeps "test" load-bearing even when
// IgnoreNonexistentValues is set: a missing path under a "test" operation
// still aborts the patch. See SPEC_FULL.md §4.3.
func FailTestOnIgnoredMissing() Option {
	return func(c *applyConfig) { c.failTestOnIgnoredMissing = true }
}

// RelativeTo re-roots the patch: path is resolved once against the target
// document, and every operation's own path/from is then evaluated relative
// to that sub-value instead of the document root.
func RelativeTo(path string) Option {
	return func(c *applyConfig) {
		ptr, err := jsonpointer.Parse(path)
		if err != nil {
			c.relativeToErr = err
			return
		}
		c.relativeTo = &ptr
	}
}

// WithLogger attaches a structured logger to the apply call: one Debug
// record per operation applied or skipped, and a Warn record on failure.
// A successful apply never logs above Debug (spec.md's logger-silence
// property).
func WithLogger(logger *slog.Logger) Option {
	return func(c *applyConfig) { c.logger = logger }
}

func newConfig(opts []Option) *applyConfig {
	cfg := &applyConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Apply applies patch to document and returns a new, modified document;
// document itself is never mutated, regardless of whether ApplyOnCopy was
// passed explicitly.
func Apply(document any, patch Patch, opts ...Option) (any, error) {
	cfg := newConfig(opts)
	cfg.applyOnCopy = true
	return applyWithConfig(document, patch, cfg)
}

// ApplyInPlace applies patch to document, mutating it directly unless
// ApplyOnCopy is one of opts.
//
// WARNING: without ApplyOnCopy, this mutates document and may leave it
// partially modified if an operation fails partway through.
func ApplyInPlace(document any, patch Patch, opts ...Option) (any, error) {
	cfg := newConfig(opts)
	return applyWithConfig(document, patch, cfg)
}

func applyWithConfig(document any, patch Patch, cfg *applyConfig) (any, error) {
	if cfg.relativeToErr != nil {
		return nil, cfg.relativeToErr
	}

	doc := document
	if cfg.applyOnCopy {
		doc = value.DeepCopy(document)
	}

	if cfg.relativeTo == nil || cfg.relativeTo.IsRoot() {
		return runOps(doc, patch, cfg)
	}

	rel := *cfg.relativeTo
	sub, err := jsonpointer.Get(doc, rel)
	if err != nil {
		return nil, err
	}
	newSub, err := runOps(sub, patch, cfg)
	if err != nil {
		return nil, err
	}
	if _, werr := ops.Replace(doc, rel, newSub); werr != nil {
		return nil, werr
	}
	return doc, nil
}

// runOps is the Patch Driver's {Start -> Applying(i) -> Done | Failed}
// state machine from spec.md §4.4, operating directly on doc (already
// copied or not, per cfg.applyOnCopy).
func runOps(doc any, patch Patch, cfg *applyConfig) (any, error) {
	for i, op := range patch {
		result, err := applyOne(doc, op)
		if err == nil {
			doc = result
			logApplied(cfg, i, op)
			continue
		}

		if cfg.ignoreNonexistent && errs.IsKind(err, errs.NonexistentValue) {
			if op.Op == Test && cfg.failTestOnIgnoredMissing {
				err = annotate(err, op, i)
				logFailed(cfg, i, op, err)
				return nil, err
			}
			logSkipped(cfg, i, op, err)
			continue
		}

		err = annotate(err, op, i)
		logFailed(cfg, i, op, err)
		return nil, err
	}
	logDone(cfg, len(patch))
	return doc, nil
}

// applyOne dispatches a single operation, parsing its path/from pointers
// and delegating to internal/ops for the actual semantics.
func applyOne(doc any, op Operation) (any, error) {
	switch op.Op {
	case Add:
		path, err := jsonpointer.Parse(op.Path)
		if err != nil {
			return nil, err
		}
		return ops.Add(doc, path, op.Value)
	case Remove:
		path, err := jsonpointer.Parse(op.Path)
		if err != nil {
			return nil, err
		}
		return ops.Remove(doc, path)
	case Replace:
		path, err := jsonpointer.Parse(op.Path)
		if err != nil {
			return nil, err
		}
		return ops.Replace(doc, path, op.Value)
	case Move:
		from, err := jsonpointer.Parse(op.From)
		if err != nil {
			return nil, err
		}
		path, err := jsonpointer.Parse(op.Path)
		if err != nil {
			return nil, err
		}
		return ops.Move(doc, from, path)
	case Copy:
		from, err := jsonpointer.Parse(op.From)
		if err != nil {
			return nil, err
		}
		path, err := jsonpointer.Parse(op.Path)
		if err != nil {
			return nil, err
		}
		return ops.Copy(doc, from, path)
	case Test:
		path, err := jsonpointer.Parse(op.Path)
		if err != nil {
			return nil, err
		}
		return doc, ops.Test(doc, path, op.Value)
	default:
		return nil, errs.Newf(errs.UnknownOperation, "%q", op.Op)
	}
}

func annotate(err error, op Operation, index int) error {
	if e, ok := errs.As(err); ok && e.Op == "" {
		e.WithOp(string(op.Op), index)
	}
	return err
}

func logApplied(cfg *applyConfig, index int, op Operation) {
	if cfg.logger == nil {
		return
	}
	cfg.logger.Debug("jsonpatch: operation applied", slog.Int("index", index), slog.String("op", string(op.Op)), slog.String("path", op.Path))
}

func logSkipped(cfg *applyConfig, index int, op Operation, err error) {
	if cfg.logger == nil {
		return
	}
	cfg.logger.Debug("jsonpatch: operation skipped (nonexistent value ignored)", slog.Int("index", index), slog.String("op", string(op.Op)), slog.String("path", op.Path), slog.Any("cause", err))
}

func logFailed(cfg *applyConfig, index int, op Operation, err error) {
	if cfg.logger == nil {
		return
	}
	cfg.logger.Warn("jsonpatch: operation failed", slog.Int("index", index), slog.String("op", string(op.Op)), slog.String("path", op.Path), slog.Any("error", err))
}

func logDone(cfg *applyConfig, n int) {
	if cfg.logger == nil {
		return
	}
	cfg.logger.Debug("jsonpatch: patch applied", slog.Int("operations", n))
}

// ApplyBytes decodes doc and patch, applies the patch, and re-encodes the
// result, using the module's JSON codec for both ends.
func ApplyBytes(doc, patchData []byte, opts ...Option) ([]byte, error) {
	var document any
	if err := jsonUnmarshal(doc, &document); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}

	patch, err := New(patchData)
	if err != nil {
		return nil, err
	}

	result, err := Apply(document, patch, opts...)
	if err != nil {
		return nil, err
	}

	out, err := jsonMarshal(result)
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return out, nil
}

// ApplyStream applies patch to the document read from r, writing the
// result to w. This is the teacher's streaming convenience wrapper,
// generalized to accept the same options as Apply.
func ApplyStream(r io.Reader, w io.Writer, patch Patch, opts ...Option) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}

	var doc any
	if err := jsonUnmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decoding document: %w", err)
	}

	result, err := Apply(doc, patch, opts...)
	if err != nil {
		return err
	}

	out, err := jsonMarshal(result)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	_, err = w.Write(out)
	return err
}

package seq

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/lazyseq/errors"
	"github.com/kbukum/lazyseq/logger"
	"github.com/kbukum/lazyseq/observability"
)

// materialized reports that an operator drained a source into memory.
func materialized(operator string, count int) {
	st := current()
	if st.metrics != nil {
		st.metrics.RecordMaterialization(context.Background(), operator, count)
	}
	st.logger().Debug("sequence materialized", logger.Fields(
		logger.FieldOperator, operator,
		logger.FieldCount, count,
	))
}

// realize runs one realization and records its outcome.
func realize[R any](operation string, fn func() (R, error)) (R, error) {
	st := current()
	start := time.Now()
	r, err := fn()
	duration := time.Since(start)

	status := "ok"
	if err != nil {
		status = "error"
		st.logger().Debug("sequence realization failed", logger.MergeWithError(logger.Fields(
			logger.FieldOperation, operation,
			logger.FieldCode, string(errors.CodeOf(err)),
		), err))
	}
	if st.metrics != nil {
		ctx := context.Background()
		if err != nil {
			st.metrics.RecordError(ctx, string(errors.CodeOf(err)), component)
		}
		st.metrics.RecordRealization(ctx, operation, status, duration)
	}
	return r, err
}

type tracedContext[T any] struct {
	upstream[T]
	parent context.Context
	name   string
	ctx    context.Context
	span   trace.Span
	id     string
	count  int
	start  time.Time
	off    bool
}

// Traced passes s through unchanged and wraps every traversal in a span
// named name, started under ctx on the first pull and ended when the
// traversal is exhausted or fails. A traversal abandoned early leaves its
// span open. While tracing is switched off in the settings, traversals
// started pass through with no span, log line or metric.
func Traced[T any](ctx context.Context, s *Seq[T], name string) *Seq[T] {
	mustSource("traced", "source", s)
	if ctx == nil {
		panic(errors.Argument("traced", "context"))
	}
	src := FromSeq(s)
	return newSeq(tracedStep[T], func() any {
		return &tracedContext[T]{upstream: upstream[T]{src: src}, parent: ctx, name: name}
	})
}

func tracedStep[T any](c any, _ Cursor) (Cursor, T, error) {
	ctx := c.(*tracedContext[T])
	if ctx.phase == phaseInit && !current().tracing {
		ctx.off = true
	}
	if ctx.off {
		return ctx.pass()
	}
	if ctx.phase == phaseInit {
		ctx.id = uuid.NewString()
		ctx.start = time.Now()
		ctx.ctx, ctx.span = observability.StartSpan(ctx.parent, ctx.name)
		observability.SetSpanAttribute(ctx.ctx, observability.AttrTraversalID, ctx.id)
		if err := ctx.open(); err != nil {
			ctx.finish(err)
			return fail[T](err)
		}
	}
	if ctx.phase != phaseRun {
		return end[T]()
	}
	cur, v, err := ctx.up.Next()
	if err != nil {
		ctx.phase = phaseDone
		ctx.finish(err)
		return fail[T](err)
	}
	if cur == nil {
		ctx.phase = phaseDone
		ctx.finish(nil)
		return end[T]()
	}
	ctx.count++
	return cur, v, nil
}

func (ctx *tracedContext[T]) finish(err error) {
	status := "ok"
	if err != nil {
		status = "error"
		observability.SetSpanError(ctx.ctx, err)
	}
	observability.SetSpanAttribute(ctx.ctx, observability.AttrElementCount, ctx.count)
	observability.SetSpanAttribute(ctx.ctx, observability.AttrStatus, status)
	ctx.span.End()

	st := current()
	st.logger().WithContext(ctx.ctx).Debug("traversal finished", logger.MergeWithError(logger.Fields(
		logger.FieldOperation, ctx.name,
		logger.FieldStatus, status,
		logger.FieldCount, ctx.count,
		logger.FieldTraversalID, ctx.id,
	), err))
	if m := st.metrics; m != nil {
		m.RecordTraversal(ctx.ctx, ctx.name, status, ctx.count, time.Since(ctx.start))
	}
}

package seq

import (
	"github.com/kbukum/lazyseq/errors"
)

// placeholder marks an injected element whose caller supplied no cursor.
type placeholder struct{}

// Placeholder is the cursor reported for injected elements without a cursor
// of their own. It is never nil, so it cannot be mistaken for end of sequence.
var Placeholder Cursor = placeholder{}

// --- Filter ---

type whereContext[T any] struct {
	upstream[T]
	pred func(T, Cursor) bool
}

// Where keeps the elements for which pred returns true.
func (s *Seq[T]) Where(pred func(T) bool) *Seq[T] {
	mustFunc("where", "predicate", pred)
	return s.WhereAt(func(v T, _ Cursor) bool { return pred(v) })
}

// WhereAt keeps the elements for which pred returns true; pred also
// receives the upstream cursor of the element.
func (s *Seq[T]) WhereAt(pred func(T, Cursor) bool) *Seq[T] {
	mustFunc("where", "predicate", pred)
	src := FromSeq(s)
	return newSeq(whereStep[T], func() any {
		return &whereContext[T]{upstream: upstream[T]{src: src}, pred: pred}
	})
}

func whereStep[T any](c any, _ Cursor) (Cursor, T, error) {
	ctx := c.(*whereContext[T])
	if err := ctx.open(); err != nil {
		return fail[T](err)
	}
	for ctx.phase == phaseRun {
		cur, v, err := ctx.up.Next()
		if err != nil {
			return fail[T](err)
		}
		if cur == nil {
			ctx.phase = phaseDone
			break
		}
		if ctx.pred(v, cur) {
			return cur, v, nil
		}
	}
	return end[T]()
}

// --- Project ---

type selectContext[T, U any] struct {
	upstream[T]
	selector func(T, int) U
	position int
}

// Select projects every element. The selector receives the 1-based position
// of the element and must not return nil.
func Select[T, U any](s *Seq[T], selector func(T, int) U) *Seq[U] {
	mustSource("select", "source", s)
	mustFunc("select", "selector", selector)
	src := FromSeq(s)
	return newSeq(selectStep[T, U], func() any {
		return &selectContext[T, U]{upstream: upstream[T]{src: src}, selector: selector}
	})
}

func selectStep[T, U any](c any, _ Cursor) (Cursor, U, error) {
	ctx := c.(*selectContext[T, U])
	if err := ctx.open(); err != nil {
		return fail[U](err)
	}
	if ctx.phase != phaseRun {
		return end[U]()
	}
	cur, v, err := ctx.up.Next()
	if err != nil {
		return fail[U](err)
	}
	if cur == nil {
		ctx.phase = phaseDone
		return end[U]()
	}
	ctx.position++
	out := ctx.selector(v, ctx.position)
	if isNil(out) {
		return fail[U](errors.InvariantViolation("select", "selected value must be non-null").
			WithDetail("position", ctx.position))
	}
	return cur, out, nil
}

// --- Flatten ---

type selectManyContext[T, U any] struct {
	upstream[T]
	selector func(T, int) Iterable[U]
	position int
	inner    Triple[U]
}

// SelectMany projects every element to an Iterable and flattens the results.
// The selector receives the 1-based position of the outer element.
func SelectMany[T, U any](s *Seq[T], selector func(T, int) Iterable[U]) *Seq[U] {
	mustSource("selectMany", "source", s)
	mustFunc("selectMany", "selector", selector)
	src := FromSeq(s)
	return newSeq(selectManyStep[T, U], func() any {
		return &selectManyContext[T, U]{upstream: upstream[T]{src: src}, selector: selector}
	})
}

func selectManyStep[T, U any](c any, _ Cursor) (Cursor, U, error) {
	ctx := c.(*selectManyContext[T, U])
	if err := ctx.open(); err != nil {
		return fail[U](err)
	}
	for {
		switch ctx.phase {
		case phaseRun:
			cur, v, err := ctx.up.Next()
			if err != nil {
				return fail[U](err)
			}
			if cur == nil {
				ctx.phase = phaseDone
				return end[U]()
			}
			ctx.position++
			nested := ctx.selector(v, ctx.position)
			if isNil(nested) || nested.Source().Kind() == KindInvalid {
				return fail[U](errors.TypeMismatch("selectMany", "an iterable").
					WithDetail("position", ctx.position))
			}
			inner, err := Resolve(nested)
			if err != nil {
				return fail[U](err)
			}
			ctx.inner = inner
			ctx.phase = phaseSecond
		case phaseSecond:
			cur, u, err := ctx.inner.Next()
			if err != nil {
				return fail[U](err)
			}
			if cur == nil {
				ctx.phase = phaseRun
				continue
			}
			return cur, u, nil
		default:
			return end[U]()
		}
	}
}

// --- Concat ---

type concatContext[T any] struct {
	upstream[T]
	second Source[T]
}

// Concat yields every element of s, then every element of other.
func (s *Seq[T]) Concat(other Iterable[T]) *Seq[T] {
	mustSource("concat", "second", other)
	first, second := FromSeq(s), other.Source()
	return newSeq(concatStep[T], func() any {
		return &concatContext[T]{upstream: upstream[T]{src: first}, second: second}
	})
}

func concatStep[T any](c any, _ Cursor) (Cursor, T, error) {
	ctx := c.(*concatContext[T])
	if err := ctx.open(); err != nil {
		return fail[T](err)
	}
	for ctx.phase == phaseRun || ctx.phase == phaseSecond {
		cur, v, err := ctx.up.Next()
		if err != nil {
			return fail[T](err)
		}
		if cur != nil {
			return cur, v, nil
		}
		ctx.phase++
		if ctx.phase != phaseSecond {
			break
		}
		up, err := Resolve(ctx.second)
		if err != nil {
			ctx.phase = phaseDone
			return fail[T](err)
		}
		ctx.up = up
	}
	ctx.phase = phaseDone
	return end[T]()
}

// --- Append / Prepend ---

type injectContext[T any] struct {
	upstream[T]
	value    T
	cursor   Cursor
	injected bool
}

// Append yields every element of s followed by value.
func (s *Seq[T]) Append(value T) *Seq[T] { return s.AppendAt(value, nil) }

// AppendAt is Append with an explicit cursor for the injected element.
// A nil cursor is reported as Placeholder.
func (s *Seq[T]) AppendAt(value T, cur Cursor) *Seq[T] {
	src, cur := FromSeq(s), coerceCursor(cur)
	return newSeq(appendStep[T], func() any {
		return &injectContext[T]{upstream: upstream[T]{src: src}, value: value, cursor: cur}
	})
}

func appendStep[T any](c any, _ Cursor) (Cursor, T, error) {
	ctx := c.(*injectContext[T])
	if err := ctx.open(); err != nil {
		return fail[T](err)
	}
	switch ctx.phase {
	case phaseRun:
		cur, v, err := ctx.up.Next()
		if err != nil {
			return fail[T](err)
		}
		if cur != nil {
			return cur, v, nil
		}
		ctx.phase = phaseSecond
		ctx.injected = true
		return ctx.cursor, ctx.value, nil
	}
	ctx.phase = phaseDone
	return end[T]()
}

// Prepend yields value followed by every element of s.
func (s *Seq[T]) Prepend(value T) *Seq[T] { return s.PrependAt(value, nil) }

// PrependAt is Prepend with an explicit cursor for the injected element.
// A nil cursor is reported as Placeholder.
func (s *Seq[T]) PrependAt(value T, cur Cursor) *Seq[T] {
	src, cur := FromSeq(s), coerceCursor(cur)
	return newSeq(prependStep[T], func() any {
		return &injectContext[T]{upstream: upstream[T]{src: src}, value: value, cursor: cur}
	})
}

func prependStep[T any](c any, _ Cursor) (Cursor, T, error) {
	ctx := c.(*injectContext[T])
	if !ctx.injected {
		ctx.injected = true
		return ctx.cursor, ctx.value, nil
	}
	if err := ctx.open(); err != nil {
		return fail[T](err)
	}
	if ctx.phase != phaseRun {
		return end[T]()
	}
	cur, v, err := ctx.up.Next()
	if err != nil {
		return fail[T](err)
	}
	if cur == nil {
		ctx.phase = phaseDone
		return end[T]()
	}
	return cur, v, nil
}

func coerceCursor(cur Cursor) Cursor {
	if cur == nil {
		return Placeholder
	}
	return cur
}

// --- Take / Skip ---

type countContext[T any] struct {
	upstream[T]
	n    int
	seen int
}

// Take yields at most the first n elements. Upstream is not pulled past n.
func (s *Seq[T]) Take(n int) *Seq[T] {
	src := FromSeq(s)
	return newSeq(takeStep[T], func() any {
		return &countContext[T]{upstream: upstream[T]{src: src}, n: n}
	})
}

func takeStep[T any](c any, _ Cursor) (Cursor, T, error) {
	ctx := c.(*countContext[T])
	if ctx.seen >= ctx.n {
		ctx.phase = phaseDone
		return end[T]()
	}
	if err := ctx.open(); err != nil {
		return fail[T](err)
	}
	if ctx.phase != phaseRun {
		return end[T]()
	}
	cur, v, err := ctx.up.Next()
	if err != nil {
		return fail[T](err)
	}
	if cur == nil {
		ctx.phase = phaseDone
		return end[T]()
	}
	ctx.seen++
	return cur, v, nil
}

// Skip drops the first n elements.
func (s *Seq[T]) Skip(n int) *Seq[T] {
	src := FromSeq(s)
	return newSeq(skipStep[T], func() any {
		return &countContext[T]{upstream: upstream[T]{src: src}, n: n}
	})
}

func skipStep[T any](c any, _ Cursor) (Cursor, T, error) {
	ctx := c.(*countContext[T])
	if err := ctx.open(); err != nil {
		return fail[T](err)
	}
	for ctx.phase == phaseRun {
		cur, v, err := ctx.up.Next()
		if err != nil {
			return fail[T](err)
		}
		if cur == nil {
			ctx.phase = phaseDone
			break
		}
		if ctx.seen < ctx.n {
			ctx.seen++
			continue
		}
		return cur, v, nil
	}
	return end[T]()
}

type whileContext[T any] struct {
	upstream[T]
	pred    func(T) bool
	through bool
}

// TakeWhile yields elements until pred first returns false.
func (s *Seq[T]) TakeWhile(pred func(T) bool) *Seq[T] {
	mustFunc("takeWhile", "predicate", pred)
	src := FromSeq(s)
	return newSeq(takeWhileStep[T], func() any {
		return &whileContext[T]{upstream: upstream[T]{src: src}, pred: pred}
	})
}

func takeWhileStep[T any](c any, _ Cursor) (Cursor, T, error) {
	ctx := c.(*whileContext[T])
	if err := ctx.open(); err != nil {
		return fail[T](err)
	}
	if ctx.phase != phaseRun {
		return end[T]()
	}
	cur, v, err := ctx.up.Next()
	if err != nil {
		return fail[T](err)
	}
	if cur == nil || !ctx.pred(v) {
		ctx.phase = phaseDone
		return end[T]()
	}
	return cur, v, nil
}

// SkipWhile drops elements until pred first returns false, then yields the rest.
func (s *Seq[T]) SkipWhile(pred func(T) bool) *Seq[T] {
	mustFunc("skipWhile", "predicate", pred)
	src := FromSeq(s)
	return newSeq(skipWhileStep[T], func() any {
		return &whileContext[T]{upstream: upstream[T]{src: src}, pred: pred}
	})
}

func skipWhileStep[T any](c any, _ Cursor) (Cursor, T, error) {
	ctx := c.(*whileContext[T])
	if err := ctx.open(); err != nil {
		return fail[T](err)
	}
	for ctx.phase == phaseRun {
		cur, v, err := ctx.up.Next()
		if err != nil {
			return fail[T](err)
		}
		if cur == nil {
			ctx.phase = phaseDone
			break
		}
		if !ctx.through && ctx.pred(v) {
			continue
		}
		ctx.through = true
		return cur, v, nil
	}
	return end[T]()
}

// DefaultIfEmpty yields value once when s is empty, otherwise s unchanged.
func (s *Seq[T]) DefaultIfEmpty(value T) *Seq[T] {
	src := FromSeq(s)
	return newSeq(defaultIfEmptyStep[T], func() any {
		return &injectContext[T]{upstream: upstream[T]{src: src}, value: value, cursor: Placeholder}
	})
}

func defaultIfEmptyStep[T any](c any, _ Cursor) (Cursor, T, error) {
	ctx := c.(*injectContext[T])
	if err := ctx.open(); err != nil {
		return fail[T](err)
	}
	if ctx.phase != phaseRun {
		return end[T]()
	}
	cur, v, err := ctx.up.Next()
	if err != nil {
		return fail[T](err)
	}
	if cur != nil {
		ctx.injected = true
		return cur, v, nil
	}
	ctx.phase = phaseDone
	if !ctx.injected {
		ctx.injected = true
		return ctx.cursor, ctx.value, nil
	}
	return end[T]()
}

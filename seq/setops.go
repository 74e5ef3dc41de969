package seq

import (
	"github.com/kbukum/lazyseq/hashset"
)

// keyFunc maps an element to its deduplication key; nil means identity.
type keyFunc[T any] func(T) any

func (k keyFunc[T]) of(v T) any {
	if k == nil {
		return hashset.Key(any(v))
	}
	return hashset.Key(k(v))
}

type setContext[T any] struct {
	upstream[T]
	second Source[T]
	key    keyFunc[T]
	seen   *hashset.Set[any]
}

func newSetSeq[T any](step StepFunc[T], first *Seq[T], second Source[T], key keyFunc[T]) *Seq[T] {
	src := FromSeq(first)
	return newSeq(step, func() any {
		return &setContext[T]{
			upstream: upstream[T]{src: src},
			second:   second,
			key:      key,
			seen:     hashset.New[any](),
		}
	})
}

// Distinct drops elements equal to one already yielded.
func (s *Seq[T]) Distinct() *Seq[T] { return s.DistinctBy(nil) }

// DistinctBy drops elements whose key was already yielded. A nil key
// selector compares elements themselves.
func (s *Seq[T]) DistinctBy(key func(T) any) *Seq[T] {
	return newSetSeq(distinctStep[T], s, Source[T]{}, key)
}

func distinctStep[T any](c any, _ Cursor) (Cursor, T, error) {
	ctx := c.(*setContext[T])
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
		if ctx.seen.Add(ctx.key.of(v)) {
			return cur, v, nil
		}
	}
	return end[T]()
}

// Except yields the elements of s whose key is not in other, each key at
// most once. other is drained into a key set on the first pull.
func (s *Seq[T]) Except(other Iterable[T]) *Seq[T] { return s.ExceptBy(other, nil) }

// ExceptBy is Except with a key selector.
func (s *Seq[T]) ExceptBy(other Iterable[T], key func(T) any) *Seq[T] {
	mustSource("except", "second", other)
	return newSetSeq(exceptStep[T], s, other.Source(), key)
}

func exceptStep[T any](c any, _ Cursor) (Cursor, T, error) {
	ctx := c.(*setContext[T])
	if ctx.phase == phaseInit {
		if err := ctx.drainSecond("except"); err != nil {
			ctx.phase = phaseDone
			return fail[T](err)
		}
	}
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
		if ctx.seen.Add(ctx.key.of(v)) {
			return cur, v, nil
		}
	}
	return end[T]()
}

// Union yields the elements of s then of other, dropping any key already
// yielded from either. Both sources are read lazily.
func (s *Seq[T]) Union(other Iterable[T]) *Seq[T] { return s.UnionBy(other, nil) }

// UnionBy is Union with a key selector.
func (s *Seq[T]) UnionBy(other Iterable[T], key func(T) any) *Seq[T] {
	mustSource("union", "second", other)
	return newSetSeq(unionStep[T], s, other.Source(), key)
}

func unionStep[T any](c any, _ Cursor) (Cursor, T, error) {
	ctx := c.(*setContext[T])
	if err := ctx.open(); err != nil {
		return fail[T](err)
	}
	for ctx.phase == phaseRun || ctx.phase == phaseSecond {
		cur, v, err := ctx.up.Next()
		if err != nil {
			return fail[T](err)
		}
		if cur == nil {
			if ctx.phase == phaseSecond {
				ctx.phase = phaseDone
				break
			}
			up, err := Resolve(ctx.second)
			if err != nil {
				ctx.phase = phaseDone
				return fail[T](err)
			}
			ctx.up = up
			ctx.phase = phaseSecond
			continue
		}
		if ctx.seen.Add(ctx.key.of(v)) {
			return cur, v, nil
		}
	}
	return end[T]()
}

// Intersect yields the elements of s whose key is in other, each key once.
// other is drained into a key set on the first pull.
func (s *Seq[T]) Intersect(other Iterable[T]) *Seq[T] { return s.IntersectBy(other, nil) }

// IntersectBy is Intersect with a key selector.
func (s *Seq[T]) IntersectBy(other Iterable[T], key func(T) any) *Seq[T] {
	mustSource("intersect", "second", other)
	return newSetSeq(intersectStep[T], s, other.Source(), key)
}

func intersectStep[T any](c any, _ Cursor) (Cursor, T, error) {
	ctx := c.(*setContext[T])
	if ctx.phase == phaseInit {
		if err := ctx.drainSecond("intersect"); err != nil {
			ctx.phase = phaseDone
			return fail[T](err)
		}
	}
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
		if ctx.seen.Remove(ctx.key.of(v)) {
			return cur, v, nil
		}
	}
	return end[T]()
}

// drainSecond fills the key set from the second source.
func (ctx *setContext[T]) drainSecond(operator string) error {
	t, err := Resolve(ctx.second)
	if err != nil {
		return err
	}
	for {
		cur, v, err := t.Next()
		if err != nil {
			return err
		}
		if cur == nil {
			break
		}
		ctx.seen.Add(ctx.key.of(v))
	}
	materialized(operator, ctx.seen.Len())
	return nil
}

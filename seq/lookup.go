package seq

import (
	"github.com/kbukum/lazyseq/errors"
)

// Grouping is one key of a Lookup with its elements in encounter order.
type Grouping[K comparable, E any] struct {
	Key      K
	Elements []E
}

// Lookup maps keys to ordered groups of elements. Keys keep first-appearance
// order. A Lookup is not modified after it has been built, so it can be
// iterated any number of times as an Iterable of Groupings.
type Lookup[K comparable, E any] struct {
	groups []Grouping[K, E]
	index  map[K]int
}

func newLookup[K comparable, E any]() *Lookup[K, E] {
	return &Lookup[K, E]{index: make(map[K]int)}
}

func (l *Lookup[K, E]) add(key K, elem E) {
	i, ok := l.index[key]
	if !ok {
		i = len(l.groups)
		l.index[key] = i
		l.groups = append(l.groups, Grouping[K, E]{Key: key})
	}
	l.groups[i].Elements = append(l.groups[i].Elements, elem)
}

// Len returns the number of distinct keys.
func (l *Lookup[K, E]) Len() int { return len(l.groups) }

// Has reports whether key has a group.
func (l *Lookup[K, E]) Has(key K) bool {
	_, ok := l.index[key]
	return ok
}

// Get returns the elements grouped under key, or nil.
func (l *Lookup[K, E]) Get(key K) []E {
	if i, ok := l.index[key]; ok {
		return l.groups[i].Elements
	}
	return nil
}

// Keys returns the keys in first-appearance order.
func (l *Lookup[K, E]) Keys() []K {
	keys := make([]K, len(l.groups))
	for i, g := range l.groups {
		keys[i] = g.Key
	}
	return keys
}

// Source returns the groupings as an array source.
func (l *Lookup[K, E]) Source() Source[Grouping[K, E]] {
	return FromSlice(l.groups)
}

// buildLookup drains t into a new Lookup.
func buildLookup[T any, K comparable, E any](operator string, t *Triple[T], key func(T) K, elem func(T) E) (*Lookup[K, E], error) {
	l := newLookup[K, E]()
	for {
		cur, v, err := t.Next()
		if err != nil {
			return nil, err
		}
		if cur == nil {
			break
		}
		k := key(v)
		if isNil(k) {
			return nil, errors.InvariantViolation(operator, "group key must be non-null")
		}
		l.add(k, elem(v))
	}
	return l, nil
}

func identity[T any](v T) T { return v }

type groupContext[T any, K comparable, E, R any] struct {
	upstream[T]
	key    func(T) K
	elem   func(T) E
	result func(K, []E) R
	groups []Grouping[K, E]
	pos    int
}

// GroupBy groups the elements of s by key. The upstream is drained into a
// Lookup on the first pull; groups are then yielded in first-appearance order.
func GroupBy[T any, K comparable](s *Seq[T], key func(T) K) *Seq[Grouping[K, T]] {
	return GroupBySelect(s, key, identity[T])
}

// GroupBySelect is GroupBy with an element projection.
func GroupBySelect[T any, K comparable, E any](s *Seq[T], key func(T) K, elem func(T) E) *Seq[Grouping[K, E]] {
	return GroupByResult(s, key, elem, func(k K, es []E) Grouping[K, E] {
		return Grouping[K, E]{Key: k, Elements: es}
	})
}

// GroupByResult is GroupBy with an element projection and a result selector
// applied to every key and its group.
func GroupByResult[T any, K comparable, E, R any](s *Seq[T], key func(T) K, elem func(T) E, result func(K, []E) R) *Seq[R] {
	mustSource("groupBy", "source", s)
	mustFunc("groupBy", "keySelector", key)
	mustFunc("groupBy", "elementSelector", elem)
	mustFunc("groupBy", "resultSelector", result)
	src := FromSeq(s)
	return newSeq(groupStep[T, K, E, R], func() any {
		return &groupContext[T, K, E, R]{upstream: upstream[T]{src: src}, key: key, elem: elem, result: result}
	})
}

func groupStep[T any, K comparable, E, R any](c any, _ Cursor) (Cursor, R, error) {
	ctx := c.(*groupContext[T, K, E, R])
	if ctx.phase == phaseInit {
		if err := ctx.open(); err != nil {
			return fail[R](err)
		}
		l, err := buildLookup("groupBy", &ctx.up, ctx.key, ctx.elem)
		if err != nil {
			ctx.phase = phaseDone
			return fail[R](err)
		}
		ctx.groups = l.groups
		materialized("groupBy", len(ctx.groups))
	}
	if ctx.phase != phaseRun || ctx.pos >= len(ctx.groups) {
		ctx.phase = phaseDone
		return end[R]()
	}
	g := ctx.groups[ctx.pos]
	ctx.pos++
	return ctx.pos - 1, ctx.result(g.Key, g.Elements), nil
}

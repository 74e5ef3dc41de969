package seq

import (
	"cmp"
	"slices"

	"github.com/kbukum/lazyseq/errors"
)

type sortKey[T any] struct {
	ascending bool
	compare   func(a, b T) int
}

// sortKeys is the growable key list owned by one sort node. ThenBy appends
// to it in place; each traversal snapshots it when it materializes.
type sortKeys[T any] struct {
	list []sortKey[T]
}

// Ordered is the node returned by the sort family. It behaves like any other
// *Seq, and additionally accepts ThenBy, ThenByDescending and ThenFunc,
// which extend its key list in place rather than building a new node.
type Ordered[T any] struct {
	*Seq[T]
	keys *sortKeys[T]
}

type sortContext[T any] struct {
	upstream[T]
	keys   *sortKeys[T]
	buffer []T
	pos    int
}

func newOrdered[T any](operator string, s *Seq[T], first sortKey[T]) *Ordered[T] {
	mustSource(operator, "source", s)
	keys := &sortKeys[T]{list: []sortKey[T]{first}}
	src := FromSeq(s)
	node := newSeq(sortStep[T], func() any {
		return &sortContext[T]{upstream: upstream[T]{src: src}, keys: keys}
	})
	return &Ordered[T]{Seq: node, keys: keys}
}

// Sort orders the elements ascending.
func Sort[T cmp.Ordered](s *Seq[T]) *Ordered[T] {
	return newOrdered("sort", s, sortKey[T]{ascending: true, compare: cmp.Compare[T]})
}

// SortDescending orders the elements descending.
func SortDescending[T cmp.Ordered](s *Seq[T]) *Ordered[T] {
	return newOrdered("sortDescending", s, sortKey[T]{compare: cmp.Compare[T]})
}

// SortBy orders the elements ascending by key.
func SortBy[T any, K cmp.Ordered](s *Seq[T], key func(T) K) *Ordered[T] {
	mustFunc("sortBy", "keySelector", key)
	return newOrdered("sortBy", s, sortKey[T]{ascending: true, compare: byKey(key)})
}

// SortByDescending orders the elements descending by key.
func SortByDescending[T any, K cmp.Ordered](s *Seq[T], key func(T) K) *Ordered[T] {
	mustFunc("sortByDescending", "keySelector", key)
	return newOrdered("sortByDescending", s, sortKey[T]{compare: byKey(key)})
}

// SortFunc orders the elements ascending by a three-way comparator.
func SortFunc[T any](s *Seq[T], compare func(a, b T) int) *Ordered[T] {
	mustFunc("sortFunc", "comparer", compare)
	return newOrdered("sortFunc", s, sortKey[T]{ascending: true, compare: compare})
}

// SortFuncDescending orders the elements descending by a three-way comparator.
func SortFuncDescending[T any](s *Seq[T], compare func(a, b T) int) *Ordered[T] {
	mustFunc("sortFuncDescending", "comparer", compare)
	return newOrdered("sortFuncDescending", s, sortKey[T]{compare: compare})
}

// ThenBy breaks ties of o ascending by key. It mutates and returns o.
func ThenBy[T any, K cmp.Ordered](o *Ordered[T], key func(T) K) *Ordered[T] {
	mustFunc("thenBy", "keySelector", key)
	return o.then("thenBy", sortKey[T]{ascending: true, compare: byKey(key)})
}

// ThenByDescending breaks ties of o descending by key. It mutates and returns o.
func ThenByDescending[T any, K cmp.Ordered](o *Ordered[T], key func(T) K) *Ordered[T] {
	mustFunc("thenByDescending", "keySelector", key)
	return o.then("thenByDescending", sortKey[T]{compare: byKey(key)})
}

// ThenFunc breaks ties of o with a three-way comparator. It mutates and returns o.
func ThenFunc[T any](o *Ordered[T], compare func(a, b T) int) *Ordered[T] {
	mustFunc("thenFunc", "comparer", compare)
	return o.then("thenFunc", sortKey[T]{ascending: true, compare: compare})
}

// ThenFuncDescending breaks ties of o with a reversed three-way comparator.
func ThenFuncDescending[T any](o *Ordered[T], compare func(a, b T) int) *Ordered[T] {
	mustFunc("thenFuncDescending", "comparer", compare)
	return o.then("thenFuncDescending", sortKey[T]{compare: compare})
}

func (o *Ordered[T]) then(operator string, key sortKey[T]) *Ordered[T] {
	if o == nil || o.Seq == nil || o.keys == nil {
		panic(errors.InvalidChain(operator, "a sort"))
	}
	o.keys.list = append(o.keys.list, key)
	return o
}

func byKey[T any, K cmp.Ordered](key func(T) K) func(a, b T) int {
	return func(a, b T) int { return cmp.Compare(key(a), key(b)) }
}

// composeKeys builds one comparator out of a key list.
func composeKeys[T any](keys []sortKey[T]) func(a, b T) int {
	if len(keys) == 1 {
		k := keys[0]
		if k.ascending {
			return k.compare
		}
		return func(a, b T) int { return k.compare(b, a) }
	}
	return func(a, b T) int {
		for _, k := range keys {
			c := k.compare(a, b)
			if c == 0 {
				continue
			}
			if !k.ascending {
				return -c
			}
			return c
		}
		return 0
	}
}

func sortStep[T any](c any, _ Cursor) (Cursor, T, error) {
	ctx := c.(*sortContext[T])
	if ctx.phase == phaseInit {
		if err := ctx.open(); err != nil {
			return fail[T](err)
		}
		buffer, err := drainTriple(&ctx.up)
		if err != nil {
			ctx.phase = phaseDone
			return fail[T](err)
		}
		compare := composeKeys(slices.Clone(ctx.keys.list))
		if current().stableSort {
			slices.SortStableFunc(buffer, compare)
		} else {
			slices.SortFunc(buffer, compare)
		}
		ctx.buffer = buffer
		materialized("sort", len(buffer))
	}
	if ctx.phase != phaseRun || ctx.pos >= len(ctx.buffer) {
		ctx.phase = phaseDone
		return end[T]()
	}
	ctx.pos++
	return ctx.pos - 1, ctx.buffer[ctx.pos-1], nil
}

type reverseContext[T any] struct {
	upstream[T]
	buffer []T
	pos    int
}

// Reverse yields the elements in reverse order. The upstream is drained on
// the first pull.
func (s *Seq[T]) Reverse() *Seq[T] {
	src := FromSeq(s)
	return newSeq(reverseStep[T], func() any {
		return &reverseContext[T]{upstream: upstream[T]{src: src}}
	})
}

func reverseStep[T any](c any, _ Cursor) (Cursor, T, error) {
	ctx := c.(*reverseContext[T])
	if ctx.phase == phaseInit {
		if err := ctx.open(); err != nil {
			return fail[T](err)
		}
		buffer, err := drainTriple(&ctx.up)
		if err != nil {
			ctx.phase = phaseDone
			return fail[T](err)
		}
		ctx.buffer = buffer
		ctx.pos = len(buffer)
		materialized("reverse", len(buffer))
	}
	if ctx.phase != phaseRun || ctx.pos <= 0 {
		ctx.phase = phaseDone
		return end[T]()
	}
	ctx.pos--
	return ctx.pos, ctx.buffer[ctx.pos], nil
}

// drainTriple pulls every remaining element of t into a new slice.
func drainTriple[T any](t *Triple[T]) ([]T, error) {
	var out []T
	for {
		cur, v, err := t.Next()
		if err != nil {
			return nil, err
		}
		if cur == nil {
			return out, nil
		}
		out = append(out, v)
	}
}

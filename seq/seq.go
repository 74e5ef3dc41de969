package seq

import (
	"iter"
	"reflect"

	"github.com/kbukum/lazyseq/errors"
)

// Context phases shared by the operator state machines.
const (
	phaseInit   = 0
	phaseRun    = 1
	phaseSecond = 2
	phaseDone   = -4
)

// Seq is a lazy sequence node. It is immutable once built: chaining returns
// new nodes and consuming never touches the node itself.
type Seq[T any] struct {
	step    StepFunc[T]
	factory func() any
	cursor  Cursor

	// items backs nodes built straight from a slice so Count, First and
	// Last can answer without iterating.
	items   []T
	isDense bool
}

func newSeq[T any](step StepFunc[T], factory func() any) *Seq[T] {
	return &Seq[T]{step: step, factory: factory, cursor: Start}
}

// Triple returns a fresh iteration triple; the factory is invoked once per call.
func (s *Seq[T]) Triple() Triple[T] {
	return Triple[T]{Step: s.step, Context: s.factory(), Cursor: s.cursor}
}

// Source returns s as a chain source.
func (s *Seq[T]) Source() Source[T] { return FromSeq(s) }

// Create builds a node over any Iterable without iterating it. Unsupported
// sources fail with NOT_ITERABLE on the first pull, not here.
func Create[T any](src Iterable[T]) *Seq[T] {
	if src == nil {
		return passThrough(Source[T]{})
	}
	s := src.Source()
	switch s.kind {
	case KindArray:
		return From(s.array)
	case KindChain:
		return s.node
	}
	return passThrough(s)
}

// From builds a node over a slice.
func From[T any](items []T) *Seq[T] {
	return &Seq[T]{
		step:    arrayStep[T],
		factory: func() any { return items },
		cursor:  Start,
		items:   items,
		isDense: true,
	}
}

// Of builds a node over the given values.
func Of[T any](items ...T) *Seq[T] { return From(items) }

// FromMapSeq builds a node over the entries of m.
func FromMapSeq[K comparable, V any](m map[K]V) *Seq[Entry[K, V]] {
	return Create[Entry[K, V]](FromMap(m))
}

// Empty returns a sequence with no elements.
func Empty[T any]() *Seq[T] { return From[T](nil) }

// Build runs fn and converts a chain-construction panic (INVALID_ARGUMENT,
// INVALID_CHAIN) into a returned error. Other panics propagate.
func Build[T any](fn func() *Seq[T]) (s *Seq[T], err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if appErr, ok := r.(*errors.AppError); ok && errors.IsBuildTimeCode(appErr.Code) {
			s, err = nil, appErr
			return
		}
		panic(r)
	}()
	return fn(), nil
}

// Values returns a range-over-func view of a fresh traversal. A pull error
// is yielded once with the zero value and ends the iteration.
func (s *Seq[T]) Values() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		t := s.Triple()
		for {
			cur, v, err := t.Next()
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if cur == nil || !yield(v, nil) {
				return
			}
		}
	}
}

// All returns a range-over-func view of cursor/value pairs of a fresh
// traversal. It stops silently at the first error; use Values to see it.
func (s *Seq[T]) All() iter.Seq2[Cursor, T] {
	return func(yield func(Cursor, T) bool) {
		t := s.Triple()
		for {
			cur, v, err := t.Next()
			if err != nil || cur == nil || !yield(cur, v) {
				return
			}
		}
	}
}

// upstream is embedded by every operator context that reads from a parent.
type upstream[T any] struct {
	phase int
	src   Source[T]
	up    Triple[T]
}

// open resolves the parent on the first pull.
func (u *upstream[T]) open() error {
	if u.phase != phaseInit {
		return nil
	}
	t, err := Resolve[T](u.src)
	if err != nil {
		u.phase = phaseDone
		return err
	}
	u.up = t
	u.phase = phaseRun
	return nil
}

type passContext[T any] struct {
	upstream[T]
}

func passThrough[T any](src Source[T]) *Seq[T] {
	return newSeq(passStep[T], func() any {
		return &passContext[T]{upstream: upstream[T]{src: src}}
	})
}

func passStep[T any](c any, _ Cursor) (Cursor, T, error) {
	return c.(*passContext[T]).pass()
}

// pass yields the upstream elements unchanged.
func (u *upstream[T]) pass() (Cursor, T, error) {
	if err := u.open(); err != nil {
		return fail[T](err)
	}
	if u.phase != phaseRun {
		return end[T]()
	}
	cur, v, err := u.up.Next()
	if err != nil {
		return fail[T](err)
	}
	if cur == nil {
		u.phase = phaseDone
		return end[T]()
	}
	return cur, v, nil
}

func end[T any]() (Cursor, T, error) {
	var zero T
	return nil, zero, nil
}

func fail[T any](err error) (Cursor, T, error) {
	var zero T
	return nil, zero, err
}

// isNil reports whether v is a nil interface, pointer, map, func or chan.
// Nil slices are valid empty values and do not count.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func mustFunc(operator, argument string, fn any) {
	if isNil(fn) {
		panic(errors.Argument(operator, argument))
	}
}

func mustSource(operator, argument string, src any) {
	if isNil(src) {
		panic(errors.Argument(operator, argument))
	}
}

package seq

import (
	"github.com/kbukum/lazyseq/errors"
	"github.com/kbukum/lazyseq/util"
)

// Cursor is an opaque position marker handed back and forth between a step
// function and its caller. A nil Cursor signals end of sequence.
type Cursor = any

// Start is the cursor every fresh traversal begins from.
const Start = -1

// StepFunc pulls the element following cur out of ctx. It returns a nil
// Cursor once the sequence is exhausted.
type StepFunc[T any] func(ctx any, cur Cursor) (Cursor, T, error)

// Triple is the canonical iteration state: a step function, the context it
// mutates and the cursor of the last element pulled.
type Triple[T any] struct {
	Step    StepFunc[T]
	Context any
	Cursor  Cursor
}

// Next pulls the next element and advances the triple. The returned cursor
// is nil at end of sequence; once exhausted the triple stays exhausted.
func (t *Triple[T]) Next() (Cursor, T, error) {
	var zero T
	if t.Cursor == nil || t.Step == nil {
		return nil, zero, nil
	}
	next, v, err := t.Step(t.Context, t.Cursor)
	if err != nil {
		t.Cursor = nil
		return nil, zero, err
	}
	t.Cursor = next
	if next == nil {
		return nil, zero, nil
	}
	return next, v, nil
}

// Kind tags the variant held by a Source.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindArray
	KindAssociative
	KindChain
	KindRawTriple
	KindStep
)

func (k Kind) String() string {
	switch k {
	case KindArray:
		return "array"
	case KindAssociative:
		return "associative"
	case KindChain:
		return "chain"
	case KindRawTriple:
		return "triple"
	case KindStep:
		return "step"
	default:
		return "invalid"
	}
}

// Iterable is anything that can be resolved into a Source.
type Iterable[T any] interface {
	Source() Source[T]
}

// Source is the closed set of things the engine can iterate. The zero value
// is KindInvalid and fails to resolve with a NOT_ITERABLE error.
type Source[T any] struct {
	kind     Kind
	array    []T
	assoc    func() Triple[T]
	node     *Seq[T]
	triple   Triple[T]
	step     StepFunc[T]
	supplier any
}

// Source returns s itself so a Source can be passed wherever an Iterable is expected.
func (s Source[T]) Source() Source[T] { return s }

// Kind returns the variant tag.
func (s Source[T]) Kind() Kind { return s.kind }

// FromSlice wraps a dense ordered container. Cursors are 0-based indexes.
func FromSlice[T any](items []T) Source[T] {
	return Source[T]{kind: KindArray, array: items}
}

// Entry is one key/value pair of an associative source.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// FromMap wraps an associative container. Enumeration order is unspecified.
func FromMap[K comparable, V any](m map[K]V) Source[Entry[K, V]] {
	return Source[Entry[K, V]]{
		kind: KindAssociative,
		assoc: func() Triple[Entry[K, V]] {
			return Triple[Entry[K, V]]{
				Step:    mapStep[K, V],
				Context: &mapContext[K, V]{items: m, keys: util.Keys(m)},
				Cursor:  Start,
			}
		},
	}
}

// FromSeq wraps a chain node. A nil node yields an invalid source.
func FromSeq[T any](s *Seq[T]) Source[T] {
	if s == nil {
		return Source[T]{}
	}
	return Source[T]{kind: KindChain, node: s}
}

// FromTriple wraps an externally built iteration triple; it is used as-is.
func FromTriple[T any](t Triple[T]) Source[T] {
	return Source[T]{kind: KindRawTriple, triple: t}
}

// FromStep wraps a bare step function. supplier is either the context value
// itself or a func() any invoked once per traversal to build it.
func FromStep[T any](step StepFunc[T], supplier any) Source[T] {
	if step == nil {
		return Source[T]{}
	}
	return Source[T]{kind: KindStep, step: step, supplier: supplier}
}

// Resolve normalizes src into an iteration triple. Chain sources get a fresh
// context from their factory, so every call starts an independent traversal.
func Resolve[T any](src Iterable[T]) (Triple[T], error) {
	if src == nil {
		return Triple[T]{}, errors.NotIterable("nil")
	}
	s := src.Source()
	switch s.kind {
	case KindArray:
		return Triple[T]{Step: arrayStep[T], Context: s.array, Cursor: Start}, nil
	case KindAssociative:
		return s.assoc(), nil
	case KindChain:
		return s.node.Triple(), nil
	case KindRawTriple:
		return s.triple, nil
	case KindStep:
		ctx := s.supplier
		if supply, ok := ctx.(func() any); ok {
			ctx = supply()
		}
		return Triple[T]{Step: s.step, Context: ctx, Cursor: Start}, nil
	}
	return Triple[T]{}, errors.NotIterable(s.kind.String())
}

// ToTriple exposes the iteration triple of src for embedding code.
func ToTriple[T any](src Iterable[T]) (Triple[T], error) {
	return Resolve(src)
}

func arrayStep[T any](ctx any, cur Cursor) (Cursor, T, error) {
	items := ctx.([]T)
	i := cur.(int) + 1
	if i >= len(items) {
		var zero T
		return nil, zero, nil
	}
	return i, items[i], nil
}

type mapContext[K comparable, V any] struct {
	items map[K]V
	keys  []K
}

func mapStep[K comparable, V any](ctx any, cur Cursor) (Cursor, Entry[K, V], error) {
	c := ctx.(*mapContext[K, V])
	for i := cur.(int) + 1; i < len(c.keys); i++ {
		k := c.keys[i]
		if v, ok := c.items[k]; ok {
			return i, Entry[K, V]{Key: k, Value: v}, nil
		}
	}
	return nil, Entry[K, V]{}, nil
}

// dense returns the backing slice of src when it is a plain array source.
func dense[T any](src Iterable[T]) ([]T, bool) {
	if src == nil {
		return nil, false
	}
	s := src.Source()
	switch s.kind {
	case KindArray:
		return s.array, true
	case KindChain:
		if s.node.isDense {
			return s.node.items, true
		}
	}
	return nil, false
}

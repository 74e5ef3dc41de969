package seq

import (
	"cmp"

	"github.com/kbukum/lazyseq/errors"
	"github.com/kbukum/lazyseq/hashset"
)

// Number is the constraint of Sum and Average.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Aggregate folds src with fn, seeding the accumulator with the first
// element. It fails with EMPTY_SEQUENCE when src is empty.
func Aggregate[T any](src Iterable[T], fn func(acc, v T) T) (T, error) {
	return realize("aggregate", func() (T, error) {
		var acc T
		if fn == nil {
			return acc, errors.Argument("aggregate", "accumulator")
		}
		seeded := false
		err := each(src, func(v T) bool {
			if !seeded {
				acc, seeded = v, true
				return true
			}
			acc = fn(acc, v)
			return true
		})
		if err == nil && !seeded {
			err = errors.EmptySequence("aggregate")
		}
		return acc, err
	})
}

// Reduce is Aggregate.
func Reduce[T any](src Iterable[T], fn func(acc, v T) T) (T, error) {
	return Aggregate(src, fn)
}

// Fold folds src with fn starting from seed. An empty src yields seed.
func Fold[T, A any](src Iterable[T], seed A, fn func(acc A, v T) A) (A, error) {
	return realize("fold", func() (A, error) {
		return fold(src, seed, fn)
	})
}

// FoldMap is Fold followed by a projection of the final accumulator.
func FoldMap[T, A, R any](src Iterable[T], seed A, fn func(acc A, v T) A, project func(A) R) (R, error) {
	return realize("fold", func() (R, error) {
		var zero R
		if project == nil {
			return zero, errors.Argument("fold", "projector")
		}
		acc, err := fold(src, seed, fn)
		if err != nil {
			return zero, err
		}
		return project(acc), nil
	})
}

func fold[T, A any](src Iterable[T], seed A, fn func(acc A, v T) A) (A, error) {
	if fn == nil {
		return seed, errors.Argument("fold", "accumulator")
	}
	acc := seed
	err := each(src, func(v T) bool {
		acc = fn(acc, v)
		return true
	})
	return acc, err
}

// Sum adds up the elements of src. An empty src sums to zero.
func Sum[T Number](src Iterable[T]) (T, error) {
	return realize("sum", func() (T, error) {
		var total T
		err := each(src, func(v T) bool {
			total += v
			return true
		})
		return total, err
	})
}

// SumBy adds up selector over the elements of src.
func SumBy[T any, N Number](src Iterable[T], selector func(T) N) (N, error) {
	return realize("sumBy", func() (N, error) {
		var total N
		if selector == nil {
			return total, errors.Argument("sumBy", "selector")
		}
		err := each(src, func(v T) bool {
			total += selector(v)
			return true
		})
		return total, err
	})
}

// Average returns the arithmetic mean of src. It fails with EMPTY_SEQUENCE
// when src is empty.
func Average[T Number](src Iterable[T]) (float64, error) {
	return realize("average", func() (float64, error) {
		var total float64
		n := 0
		err := each(src, func(v T) bool {
			total += float64(v)
			n++
			return true
		})
		if err != nil {
			return 0, err
		}
		if n == 0 {
			return 0, errors.EmptySequence("average")
		}
		return total / float64(n), nil
	})
}

// Min returns the smallest element. It fails with EMPTY_SEQUENCE when src is empty.
func Min[T cmp.Ordered](src Iterable[T]) (T, error) {
	return realize("min", func() (T, error) {
		return extreme("min", src, identity[T], -1)
	})
}

// Max returns the largest element. It fails with EMPTY_SEQUENCE when src is empty.
func Max[T cmp.Ordered](src Iterable[T]) (T, error) {
	return realize("max", func() (T, error) {
		return extreme("max", src, identity[T], 1)
	})
}

// MinBy returns the first element with the smallest key. It fails with
// EMPTY_SEQUENCE when src is empty.
func MinBy[T any, K cmp.Ordered](src Iterable[T], key func(T) K) (T, error) {
	return realize("minBy", func() (T, error) {
		return extreme("minBy", src, key, -1)
	})
}

// MaxBy returns the first element with the largest key. It fails with
// EMPTY_SEQUENCE when src is empty.
func MaxBy[T any, K cmp.Ordered](src Iterable[T], key func(T) K) (T, error) {
	return realize("maxBy", func() (T, error) {
		return extreme("maxBy", src, key, 1)
	})
}

// extreme scans src for the element whose key compares to all others with
// the sign of want.
func extreme[T any, K cmp.Ordered](operation string, src Iterable[T], key func(T) K, want int) (T, error) {
	var best T
	if key == nil {
		return best, errors.Argument(operation, "keySelector")
	}
	var bestKey K
	seeded := false
	err := each(src, func(v T) bool {
		k := key(v)
		if !seeded || cmp.Compare(k, bestKey) == want {
			best, bestKey, seeded = v, k, true
		}
		return true
	})
	if err == nil && !seeded {
		err = errors.EmptySequence(operation)
	}
	return best, err
}

// Count returns the number of elements. Slice-backed sources answer without iterating.
func Count[T any](src Iterable[T]) (int, error) {
	return realize("count", func() (int, error) {
		if items, ok := dense(src); ok {
			return len(items), nil
		}
		return countBy(src, nil)
	})
}

// CountBy returns the number of elements matching pred.
func CountBy[T any](src Iterable[T], pred func(T) bool) (int, error) {
	return realize("countBy", func() (int, error) {
		if pred == nil {
			return 0, errors.Argument("countBy", "predicate")
		}
		return countBy(src, pred)
	})
}

func countBy[T any](src Iterable[T], pred func(T) bool) (int, error) {
	n := 0
	err := each(src, func(v T) bool {
		if pred == nil || pred(v) {
			n++
		}
		return true
	})
	return n, err
}

// Any reports whether some element matches pred, or whether src has any
// element when pred is nil. It stops at the first match.
func Any[T any](src Iterable[T], pred func(T) bool) (bool, error) {
	return realize("any", func() (bool, error) {
		found := false
		err := each(src, func(v T) bool {
			found = pred == nil || pred(v)
			return !found
		})
		return found, err
	})
}

// All reports whether every element matches pred. It stops at the first
// counterexample; an empty src satisfies it.
func All[T any](src Iterable[T], pred func(T) bool) (bool, error) {
	return realize("all", func() (bool, error) {
		if pred == nil {
			return false, errors.Argument("all", "predicate")
		}
		ok := true
		err := each(src, func(v T) bool {
			ok = pred(v)
			return ok
		})
		return ok, err
	})
}

// ForEach calls fn for every element and stops at the first error fn returns.
func ForEach[T any](src Iterable[T], fn func(T) error) error {
	_, err := realize("forEach", func() (struct{}, error) {
		if fn == nil {
			return struct{}{}, errors.Argument("forEach", "action")
		}
		var fnErr error
		err := each(src, func(v T) bool {
			fnErr = fn(v)
			return fnErr == nil
		})
		if err != nil {
			return struct{}{}, err
		}
		return struct{}{}, fnErr
	})
	return err
}

// ToList collects the elements of src into a new slice.
func ToList[T any](src Iterable[T]) ([]T, error) {
	return realize("toList", func() ([]T, error) {
		out := []T{}
		err := each(src, func(v T) bool {
			out = append(out, v)
			return true
		})
		if err != nil {
			return nil, err
		}
		return out, nil
	})
}

// ToSet collects the distinct elements of src.
func ToSet[T comparable](src Iterable[T]) (*hashset.Set[T], error) {
	return realize("toSet", func() (*hashset.Set[T], error) {
		set := hashset.New[T]()
		err := each(src, func(v T) bool {
			set.Add(v)
			return true
		})
		if err != nil {
			return nil, err
		}
		return set, nil
	})
}

// ToDictionary maps every element to a key/value pair. A later element with
// a key already present overwrites the earlier one.
func ToDictionary[T any, K comparable, V any](src Iterable[T], key func(T) K, value func(T) V) (map[K]V, error) {
	return realize("toDictionary", func() (map[K]V, error) {
		if key == nil {
			return nil, errors.Argument("toDictionary", "keySelector")
		}
		if value == nil {
			return nil, errors.Argument("toDictionary", "valueSelector")
		}
		out := make(map[K]V)
		err := each(src, func(v T) bool {
			out[key(v)] = value(v)
			return true
		})
		if err != nil {
			return nil, err
		}
		return out, nil
	})
}

// ToLookup groups the elements of src by key.
func ToLookup[T any, K comparable](src Iterable[T], key func(T) K) (*Lookup[K, T], error) {
	return ToLookupSelect(src, key, identity[T])
}

// ToLookupSelect groups projected elements of src by key.
func ToLookupSelect[T any, K comparable, E any](src Iterable[T], key func(T) K, elem func(T) E) (*Lookup[K, E], error) {
	return realize("toLookup", func() (*Lookup[K, E], error) {
		if key == nil {
			return nil, errors.Argument("toLookup", "keySelector")
		}
		if elem == nil {
			return nil, errors.Argument("toLookup", "elementSelector")
		}
		t, err := Resolve(src)
		if err != nil {
			return nil, err
		}
		return buildLookup("toLookup", &t, key, elem)
	})
}

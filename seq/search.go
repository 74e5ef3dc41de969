package seq

import (
	"reflect"

	"github.com/kbukum/lazyseq/errors"
)

// each pulls every element of src through fn until fn returns false.
func each[T any](src Iterable[T], fn func(v T) bool) error {
	t, err := Resolve(src)
	if err != nil {
		return err
	}
	for {
		cur, v, err := t.Next()
		if err != nil {
			return err
		}
		if cur == nil || !fn(v) {
			return nil
		}
	}
}

// Equals compares a and b by value. Slices and arrays are compared element
// by element, maps key by key and structs field by field, recursively, so a
// nil slice equals an empty one at any depth. Values held in interfaces are
// compared by their dynamic type and value. Pointers, chans and funcs
// compare by identity; two non-nil funcs are never equal.
func Equals(a, b any) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() == vb.Type() && va.Comparable() && a == b {
		return true
	}
	return equalValues(va, vb)
}

func equalValues(va, vb reflect.Value) bool {
	va, vb = unwrap(va), unwrap(vb)
	if nilValue(va) || nilValue(vb) {
		return nilValue(va) && nilValue(vb)
	}
	switch shape(va) {
	case shapeList:
		if shape(vb) != shapeList || va.Len() != vb.Len() {
			return false
		}
		for i := 0; i < va.Len(); i++ {
			if !equalValues(va.Index(i), vb.Index(i)) {
				return false
			}
		}
		return true
	case shapeMap:
		if shape(vb) != shapeMap || va.Len() != vb.Len() || va.Type().Key() != vb.Type().Key() {
			return false
		}
		iter := va.MapRange()
		for iter.Next() {
			other := vb.MapIndex(iter.Key())
			if !other.IsValid() || !equalValues(iter.Value(), other) {
				return false
			}
		}
		return true
	}
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Struct:
		for i := 0; i < va.NumField(); i++ {
			if !equalValues(va.Field(i), vb.Field(i)) {
				return false
			}
		}
		return true
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Bool:
		return va.Bool() == vb.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return va.Int() == vb.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return va.Uint() == vb.Uint()
	case reflect.Float32, reflect.Float64:
		return va.Float() == vb.Float()
	case reflect.Complex64, reflect.Complex128:
		return va.Complex() == vb.Complex()
	case reflect.String:
		return va.String() == vb.String()
	}
	return false
}

// unwrap strips non-nil interface layers.
func unwrap(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	return v
}

// nilValue is isNil for values reached inside a composite.
func nilValue(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

type valueShape int

const (
	shapeScalar valueShape = iota
	shapeList
	shapeMap
)

func shape(v reflect.Value) valueShape {
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return shapeList
	case reflect.Map:
		return shapeMap
	}
	return shapeScalar
}

func equalsOf[T any](eq func(a, b T) bool) func(a, b T) bool {
	if eq != nil {
		return eq
	}
	return func(a, b T) bool { return Equals(a, b) }
}

// SequenceEqual reports whether a and b hold equal elements in the same
// order and have the same length. A nil eq uses Equals.
func SequenceEqual[T any](a, b Iterable[T], eq func(x, y T) bool) (bool, error) {
	eq = equalsOf(eq)
	return realize("sequenceEqual", func() (bool, error) {
		ta, err := Resolve(a)
		if err != nil {
			return false, err
		}
		tb, err := Resolve(b)
		if err != nil {
			return false, err
		}
		for {
			ca, x, err := ta.Next()
			if err != nil {
				return false, err
			}
			cb, y, err := tb.Next()
			if err != nil {
				return false, err
			}
			if ca == nil || cb == nil {
				return ca == nil && cb == nil, nil
			}
			if !eq(x, y) {
				return false, nil
			}
		}
	})
}

// Contains reports whether src holds an element equal to v. A nil eq uses Equals.
func Contains[T any](src Iterable[T], v T, eq func(x, y T) bool) (bool, error) {
	i, err := indexOf("contains", src, v, eq)
	return i > 0, err
}

// IndexOf returns the 1-based position of the first element equal to v, or
// -1 when there is none. A nil eq uses Equals.
func IndexOf[T any](src Iterable[T], v T, eq func(x, y T) bool) (int, error) {
	return indexOf("indexOf", src, v, eq)
}

func indexOf[T any](operation string, src Iterable[T], v T, eq func(x, y T) bool) (int, error) {
	eq = equalsOf(eq)
	return realize(operation, func() (int, error) {
		pos, found := 0, -1
		err := each(src, func(x T) bool {
			pos++
			if eq(x, v) {
				found = pos
				return false
			}
			return true
		})
		return found, err
	})
}

// First returns the first element matching pred, or the first element when
// pred is nil. It fails with EMPTY_SEQUENCE when there is none.
func First[T any](src Iterable[T], pred func(T) bool) (T, error) {
	return realize("first", func() (T, error) {
		v, ok, err := findFirst(src, pred)
		if err == nil && !ok {
			err = errors.EmptySequence("first")
		}
		return v, err
	})
}

// FirstOrDefault is First returning def instead of failing.
func FirstOrDefault[T any](src Iterable[T], pred func(T) bool, def T) (T, error) {
	return realize("firstOrDefault", func() (T, error) {
		v, ok, err := findFirst(src, pred)
		if err != nil || !ok {
			return def, err
		}
		return v, nil
	})
}

func findFirst[T any](src Iterable[T], pred func(T) bool) (found T, ok bool, err error) {
	if items, isDense := dense(src); isDense && pred == nil {
		if len(items) == 0 {
			return found, false, nil
		}
		return items[0], true, nil
	}
	err = each(src, func(v T) bool {
		if pred == nil || pred(v) {
			found, ok = v, true
			return false
		}
		return true
	})
	return found, ok, err
}

// Last returns the last element matching pred, or the last element when
// pred is nil. It fails with EMPTY_SEQUENCE when there is none.
func Last[T any](src Iterable[T], pred func(T) bool) (T, error) {
	return realize("last", func() (T, error) {
		v, ok, err := findLast(src, pred)
		if err == nil && !ok {
			err = errors.EmptySequence("last")
		}
		return v, err
	})
}

// LastOrDefault is Last returning def instead of failing.
func LastOrDefault[T any](src Iterable[T], pred func(T) bool, def T) (T, error) {
	return realize("lastOrDefault", func() (T, error) {
		v, ok, err := findLast(src, pred)
		if err != nil || !ok {
			return def, err
		}
		return v, nil
	})
}

func findLast[T any](src Iterable[T], pred func(T) bool) (found T, ok bool, err error) {
	if items, isDense := dense(src); isDense {
		for i := len(items) - 1; i >= 0; i-- {
			if pred == nil || pred(items[i]) {
				return items[i], true, nil
			}
		}
		return found, false, nil
	}
	err = each(src, func(v T) bool {
		if pred == nil || pred(v) {
			found, ok = v, true
		}
		return true
	})
	return found, ok, err
}

// ElementAt returns the element at the 0-based index. It fails with
// EMPTY_SEQUENCE when the sequence is shorter.
func ElementAt[T any](src Iterable[T], index int) (T, error) {
	return realize("elementAt", func() (T, error) {
		v, ok, err := elementAt(src, index)
		if err == nil && !ok {
			err = errors.EmptySequence("elementAt").WithDetail("index", index)
		}
		return v, err
	})
}

// ElementAtOrDefault is ElementAt returning def instead of failing.
func ElementAtOrDefault[T any](src Iterable[T], index int, def T) (T, error) {
	return realize("elementAtOrDefault", func() (T, error) {
		v, ok, err := elementAt(src, index)
		if err != nil || !ok {
			return def, err
		}
		return v, nil
	})
}

func elementAt[T any](src Iterable[T], index int) (found T, ok bool, err error) {
	if index < 0 {
		return found, false, nil
	}
	if items, isDense := dense(src); isDense {
		if index >= len(items) {
			return found, false, nil
		}
		return items[index], true, nil
	}
	i := 0
	err = each(src, func(v T) bool {
		if i == index {
			found, ok = v, true
			return false
		}
		i++
		return true
	})
	return found, ok, err
}

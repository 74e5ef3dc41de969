package hashset

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Set is a presence-only set of keys.
type Set[K comparable] struct {
	items map[K]struct{}
}

// New creates an empty set.
func New[K comparable]() *Set[K] {
	return &Set[K]{items: make(map[K]struct{})}
}

// Of creates a set holding the given keys.
func Of[K comparable](keys ...K) *Set[K] {
	s := &Set[K]{items: make(map[K]struct{}, len(keys))}
	for _, k := range keys {
		s.items[k] = struct{}{}
	}
	return s
}

// Add inserts key and reports whether it was newly inserted.
func (s *Set[K]) Add(key K) bool {
	if _, ok := s.items[key]; ok {
		return false
	}
	s.items[key] = struct{}{}
	return true
}

// Remove deletes key and reports whether it was present.
func (s *Set[K]) Remove(key K) bool {
	if _, ok := s.items[key]; !ok {
		return false
	}
	delete(s.items, key)
	return true
}

// Has reports whether key is present.
func (s *Set[K]) Has(key K) bool {
	_, ok := s.items[key]
	return ok
}

// Len returns the number of keys.
func (s *Set[K]) Len() int { return len(s.items) }

// Values returns the keys in unspecified order.
func (s *Set[K]) Values() []K {
	out := make([]K, 0, len(s.items))
	for k := range s.items {
		out = append(out, k)
	}
	return out
}

// fingerprint stands in for values that cannot be map keys.
type fingerprint string

// Key returns a value usable as a map key for v. Comparable values are
// returned as-is; slices, maps, funcs and structs holding them are reduced
// to a structural fingerprint of their contents. Every value in the
// fingerprint is tagged with its type, so values held in interfaces only
// share a key when their dynamic types match. A nil slice and an empty one
// share a key; a nil map and an empty one do not.
func Key(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Comparable() {
		return v
	}
	var b strings.Builder
	writeValue(&b, rv)
	return fingerprint(b.String())
}

func writeValue(b *strings.Builder, v reflect.Value) {
	if !v.IsValid() {
		b.WriteString("<nil>")
		return
	}
	b.WriteString(v.Type().String())
	switch v.Kind() {
	case reflect.Interface:
		b.WriteByte('(')
		if v.IsNil() {
			b.WriteString("<nil>")
		} else {
			writeValue(b, v.Elem())
		}
		b.WriteByte(')')
	case reflect.Slice, reflect.Array:
		b.WriteByte('[')
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				b.WriteByte(',')
			}
			writeValue(b, v.Index(i))
		}
		b.WriteByte(']')
	case reflect.Map:
		if v.IsNil() {
			b.WriteString("<nil>")
			return
		}
		entries := make([]string, 0, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			var e strings.Builder
			writeValue(&e, iter.Key())
			e.WriteByte(':')
			writeValue(&e, iter.Value())
			entries = append(entries, e.String())
		}
		slices.Sort(entries)
		b.WriteByte('{')
		b.WriteString(strings.Join(entries, ","))
		b.WriteByte('}')
	case reflect.Struct:
		b.WriteByte('{')
		for i := 0; i < v.NumField(); i++ {
			if i > 0 {
				b.WriteByte(',')
			}
			writeValue(b, v.Field(i))
		}
		b.WriteByte('}')
	case reflect.Pointer, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		// Identity, as with ==.
		fmt.Fprintf(b, "(%#x)", v.Pointer())
	case reflect.String:
		b.WriteString(strconv.Quote(v.String()))
	case reflect.Bool:
		b.WriteString(strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.WriteByte('(')
		b.WriteString(strconv.FormatInt(v.Int(), 10))
		b.WriteByte(')')
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b.WriteByte('(')
		b.WriteString(strconv.FormatUint(v.Uint(), 10))
		b.WriteByte(')')
	case reflect.Float32, reflect.Float64:
		b.WriteByte('(')
		b.WriteString(strconv.FormatFloat(v.Float(), 'g', -1, 64))
		b.WriteByte(')')
	case reflect.Complex64, reflect.Complex128:
		b.WriteString(strconv.FormatComplex(v.Complex(), 'g', -1, 128))
	}
}

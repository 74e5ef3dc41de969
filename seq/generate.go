package seq

import "github.com/kbukum/lazyseq/errors"

type rangeContext struct {
	next, stop int
}

// Range yields count consecutive integers starting at start.
func Range(start, count int) *Seq[int] {
	if count < 0 {
		panic(errors.Argument("range", "count"))
	}
	return newSeq(rangeStep, func() any {
		return &rangeContext{next: start, stop: start + count}
	})
}

func rangeStep(c any, cur Cursor) (Cursor, int, error) {
	ctx := c.(*rangeContext)
	if ctx.next >= ctx.stop {
		return end[int]()
	}
	v := ctx.next
	ctx.next++
	return coerceIndex(cur) + 1, v, nil
}

type repeatContext struct {
	left int
}

// Repeat yields value n times.
func Repeat[T any](value T, n int) *Seq[T] {
	if n < 0 {
		panic(errors.Argument("repeat", "count"))
	}
	return newSeq(func(c any, cur Cursor) (Cursor, T, error) {
		ctx := c.(*repeatContext)
		if ctx.left == 0 {
			return end[T]()
		}
		ctx.left--
		return coerceIndex(cur) + 1, value, nil
	}, func() any {
		return &repeatContext{left: n}
	})
}

func coerceIndex(cur Cursor) int {
	if i, ok := cur.(int); ok {
		return i
	}
	return Start
}

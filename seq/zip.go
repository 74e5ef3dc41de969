package seq

// Pair is the default result of Zip.
type Pair[A, B any] struct {
	First  A
	Second B
}

type zipContext[A, B, R any] struct {
	upstream[A]
	second  Source[B]
	other   Triple[B]
	combine func(A, B) R
}

// Zip pairs the elements of a and b in lockstep and stops at the shorter one.
func Zip[A, B any](a *Seq[A], b Iterable[B]) *Seq[Pair[A, B]] {
	return ZipWith(a, b, func(x A, y B) Pair[A, B] { return Pair[A, B]{First: x, Second: y} })
}

// ZipWith combines the elements of a and b in lockstep with fn and stops at
// the shorter one.
func ZipWith[A, B, R any](a *Seq[A], b Iterable[B], fn func(A, B) R) *Seq[R] {
	mustSource("zip", "first", a)
	mustSource("zip", "second", b)
	mustFunc("zip", "resultSelector", fn)
	first, second := FromSeq(a), b.Source()
	return newSeq(zipStep[A, B, R], func() any {
		return &zipContext[A, B, R]{upstream: upstream[A]{src: first}, second: second, combine: fn}
	})
}

func zipStep[A, B, R any](c any, _ Cursor) (Cursor, R, error) {
	ctx := c.(*zipContext[A, B, R])
	if ctx.phase == phaseInit {
		other, err := Resolve(ctx.second)
		if err != nil {
			ctx.phase = phaseDone
			return fail[R](err)
		}
		ctx.other = other
	}
	if err := ctx.open(); err != nil {
		return fail[R](err)
	}
	if ctx.phase != phaseRun {
		return end[R]()
	}
	cur, x, err := ctx.up.Next()
	if err != nil {
		return fail[R](err)
	}
	if cur == nil {
		ctx.phase = phaseDone
		return end[R]()
	}
	other, y, err := ctx.other.Next()
	if err != nil {
		return fail[R](err)
	}
	if other == nil {
		ctx.phase = phaseDone
		return end[R]()
	}
	return cur, ctx.combine(x, y), nil
}

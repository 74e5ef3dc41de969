package seq

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/lazyseq/errors"
)

type person struct {
	Name string
	Age  int
	City string
}

var people = []person{
	{Name: "John", Age: 42, City: "NY"},
	{Name: "Anna", Age: 22, City: "NY"},
	{Name: "Emily", Age: 33, City: "NY"},
	{Name: "Mark", Age: 51, City: "LA"},
	{Name: "Zoe", Age: 33, City: "LA"},
}

func TestSort(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 5}, list[int](t, Sort(Of(3, 1, 5, 2))))
	assert.Equal(t, []int{5, 3, 2, 1}, list[int](t, SortDescending(Of(3, 1, 5, 2))))
	assert.Equal(t, []string{}, list[string](t, Sort(Empty[string]())))
}

func TestSortBy_IsStable(t *testing.T) {
	byAge := SortBy(From(people), func(p person) int { return p.Age })
	names := list[string](t, Select(byAge.Seq, func(p person, _ int) string { return p.Name }))
	assert.Equal(t, []string{"Anna", "Emily", "Zoe", "John", "Mark"}, names)

	desc := SortByDescending(From(people), func(p person) int { return p.Age })
	names = list[string](t, Select(desc.Seq, func(p person, _ int) string { return p.Name }))
	assert.Equal(t, []string{"Mark", "John", "Emily", "Zoe", "Anna"}, names)
}

func TestThenBy_BreaksTies(t *testing.T) {
	o := SortBy(From(people), func(p person) string { return p.City })
	o = ThenByDescending(o, func(p person) int { return p.Age })
	o = ThenBy(o, func(p person) string { return p.Name })

	got := list[person](t, o)
	names := make([]string, len(got))
	for i, p := range got {
		names[i] = p.Name
	}
	assert.Equal(t, []string{"Mark", "Zoe", "John", "Emily", "Anna"}, names)
}

func TestThenFunc(t *testing.T) {
	words := Of("bb", "a", "ccc", "B", "A")
	o := SortFunc(words, func(a, b string) int { return len(a) - len(b) })
	o = ThenFunc(o, func(a, b string) int { return strings.Compare(a, b) })
	assert.Equal(t, []string{"A", "B", "a", "bb", "ccc"}, list[string](t, o))

	o = SortFuncDescending(words, func(a, b string) int { return len(a) - len(b) })
	o = ThenFuncDescending(o, strings.Compare)
	assert.Equal(t, []string{"ccc", "bb", "a", "B", "A"}, list[string](t, o))
}

func TestThenBy_ExtendsNodeInPlace(t *testing.T) {
	o := SortBy(Of("b2", "a2", "b1", "a1"), func(s string) byte { return s[0] })
	assert.Equal(t, []string{"a2", "a1", "b2", "b1"}, list[string](t, o))

	same := ThenBy(o, func(s string) byte { return s[1] })
	assert.Same(t, o, same)
	assert.Equal(t, []string{"a1", "a2", "b1", "b2"}, list[string](t, o))
}

func TestThenBy_InvalidChain(t *testing.T) {
	key := func(v int) int { return v }
	for name, o := range map[string]*Ordered[int]{
		"nil":  nil,
		"zero": {},
	} {
		t.Run(name, func(t *testing.T) {
			err := buildErr(t, func() *Seq[int] { return ThenBy(o, key).Seq })
			requireCode(t, err, errors.ErrCodeInvalidChain)
		})
	}
}

func TestSort_Unstable(t *testing.T) {
	t.Cleanup(Reset)
	Configure(WithStableSort(false))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, list[int](t, Sort(Of(5, 3, 4, 1, 2))))
}

func TestSort_ChainsLikeAnySeq(t *testing.T) {
	top := Sort(Of(4, 1, 3, 2)).Where(func(v int) bool { return v > 1 }).Take(2)
	assert.Equal(t, []int{2, 3}, list[int](t, top))
}

func TestReverse(t *testing.T) {
	assert.Equal(t, []int{3, 2, 1}, list[int](t, Of(1, 2, 3).Reverse()))
	assert.Equal(t, []int{}, list[int](t, Empty[int]().Reverse()))
}

// Filter adults living in NY, project name and age, order by age descending.
func TestPeopleQuery(t *testing.T) {
	type row struct {
		Name string
		Age  int
	}
	nyAdults := From(people).Where(func(p person) bool { return p.Age > 25 && p.City == "NY" })
	rows := Select(nyAdults, func(p person, _ int) row { return row{Name: p.Name, Age: p.Age} })
	sorted := SortByDescending(rows, func(r row) int { return r.Age })

	got, err := ToList[row](sorted)
	require.NoError(t, err)
	assert.Equal(t, []row{{"John", 42}, {"Emily", 33}}, got)
}

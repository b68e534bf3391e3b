package aggregate

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

type entry struct {
	key   string
	value float64
}

func TestFold_EveryKeyAppearsOnce(t *testing.T) {
	records := []entry{
		{"a", 1}, {"b", 2}, {"a", 3}, {"c", 4}, {"b", 5},
	}

	groups := Fold(records,
		func(e entry) string { return e.key },
		func(string) float64 { return 0 },
		func(acc float64, e entry) float64 { return acc + e.value },
	)

	assert.Len(t, groups, 3)
	assert.Equal(t, 4.0, groups["a"])
	assert.Equal(t, 7.0, groups["b"])
	assert.Equal(t, 4.0, groups["c"])
}

func TestFold_EmptyInput(t *testing.T) {
	groups := Fold(nil,
		func(e entry) string { return e.key },
		func(string) float64 { return 0 },
		func(acc float64, e entry) float64 { return acc + e.value },
	)

	assert.Empty(t, groups)
}

func TestFold_OrderInsensitiveForAdditiveFields(t *testing.T) {
	records := make([]entry, 0, 50)
	for i := 0; i < 50; i++ {
		records = append(records, entry{key: string(rune('a' + i%5)), value: float64(i)})
	}

	sum := func(rs []entry) map[string]float64 {
		return Fold(rs,
			func(e entry) string { return e.key },
			func(string) float64 { return 0 },
			func(acc float64, e entry) float64 { return acc + e.value },
		)
	}

	expected := sum(records)

	shuffled := make([]entry, len(records))
	copy(shuffled, records)
	rand.New(rand.NewSource(42)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	assert.Equal(t, expected, sum(shuffled))
}

func TestSortedKeys(t *testing.T) {
	groups := map[string]int{"b": 1, "c": 2, "a": 3}
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(groups))
}

func TestSortAscending_Stable(t *testing.T) {
	records := []entry{{"b", 1}, {"a", 2}, {"b", 3}, {"a", 4}}
	SortAscending(records, func(e entry) string { return e.key })

	assert.Equal(t, []entry{{"a", 2}, {"a", 4}, {"b", 1}, {"b", 3}}, records)
}

package numbering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNext_EmptyScopeStartsAtOne(t *testing.T) {
	assert.Equal(t, "1", Next(nil))
	assert.Equal(t, "1", Next([]string{}))
}

func TestNext_MaxPlusOne(t *testing.T) {
	assert.Equal(t, "4", Next([]string{"1", "2", "3"}))
	assert.Equal(t, "11", Next([]string{"3", "10", "7"}))
}

func TestNext_IgnoresMalformed(t *testing.T) {
	assert.Equal(t, "6", Next([]string{"INV-001", "5", "", "abc", " 2 "}))
	assert.Equal(t, "1", Next([]string{"INV-001", "legacy"}))
	assert.Equal(t, "1", Next([]string{"-3"}))
}

func TestNext_Monotonic(t *testing.T) {
	issued := []string{}
	previous := int64(0)
	for i := 0; i < 20; i++ {
		next := Next(issued)
		assert.Greater(t, mustInt(t, next), previous)
		previous = mustInt(t, next)
		issued = append(issued, next)
	}
}

func mustInt(t *testing.T, s string) int64 {
	t.Helper()
	var value int64
	for _, r := range s {
		value = value*10 + int64(r-'0')
	}
	return value
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddCounts(t *testing.T) {
	base := map[string]int{"temporal-pulses": 10, "amber": 1}

	out, _, ok := AddCounts(base, map[string]int{"temporal-pulses": -4, "grain": 3})
	assert.True(t, ok)
	assert.Equal(t, map[string]int{"temporal-pulses": 6, "amber": 1, "grain": 3}, out)
	assert.Equal(t, 10, base["temporal-pulses"], "base is not modified")

	out, key, ok := AddCounts(base, map[string]int{"amber": -2})
	assert.False(t, ok)
	assert.Equal(t, "amber", key)
	assert.Equal(t, base, out)
}

func TestNegateAndPositiveCounts(t *testing.T) {
	assert.Equal(t, map[string]int{"a": -2, "b": 3}, NegateCounts(map[string]int{"a": 2, "b": -3}))
	assert.Equal(t, map[string]int{"b": 3}, PositiveCounts(map[string]int{"a": -2, "b": 3, "c": 0}))
}

func TestCopyCounts_NeverNil(t *testing.T) {
	assert.NotNil(t, CopyCounts(nil))
}

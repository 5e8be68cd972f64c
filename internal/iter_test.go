package internal

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := map[string]int{"one": 1}
	b := map[string]int{"two": 2}

	got := map[string]int{}
	for k, v := range IterSeq2Concat(maps.All(a), maps.All(b)) {
		got[k] = v
	}
	assert.Equal(map[string]int{"one": 1, "two": 2}, got)

	count := 0
	for range IterSeq2Concat(maps.All(a), maps.All(b)) {
		count++
		break
	}
	assert.Equal(1, count)
}

func TestIterSeq2Sorted(t *testing.T) {
	assert := assert.New(t)

	a := map[string]int{"c": 3, "a": 1}
	b := map[string]int{"b": 2, "a": 10}

	var keys []string
	var values []int
	for k, v := range IterSeq2Sorted(IterSeq2Concat(maps.All(a), maps.All(b))) {
		keys = append(keys, k)
		values = append(values, v)
	}
	assert.Equal([]string{"a", "b", "c"}, keys)
	assert.Equal([]int{10, 2, 3}, values)
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisasterDeltas(t *testing.T) {
	totals := map[uint]int{
		1: 100,
		2: 75,
		3: 0,
		4: -20,
		5: 1,
	}

	deltas := DisasterDeltas(totals)

	assert.Equal(t, map[uint]int{1: -50, 2: -37}, deltas)
	assert.NotContains(t, deltas, uint(3), "broke team loses nothing")
	assert.NotContains(t, deltas, uint(4), "negative gold clamps to zero")
	assert.NotContains(t, deltas, uint(5), "a single bar floors to no loss")
}

func TestDisasterDeltasEmpty(t *testing.T) {
	assert.Empty(t, DisasterDeltas(nil))
	assert.Empty(t, DisasterDeltas(map[uint]int{}))
}

func TestWorldPeaceDeltas(t *testing.T) {
	totals := map[uint]int{
		1: 40,
		2: 0,
		3: -5,
	}

	deltas := WorldPeaceDeltas(totals)

	assert.Equal(t, map[uint]int{1: 40}, deltas)
	assert.NotContains(t, deltas, uint(2))
	assert.NotContains(t, deltas, uint(3), "debt does not double")
}

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReverseG(t *testing.T) {
	assert.Equal(t, []int{3, 2, 1}, ReverseG([]int{1, 2, 3}))
	assert.Equal(t, []string{"B", "A"}, ReverseG([]string{"A", "B"}))

	orig := []int{1, 2}
	_ = ReverseG(orig)
	assert.Equal(t, []int{1, 2}, orig)
}

func TestPackNodePairSymmetric(t *testing.T) {
	assert.Equal(t, PackNodePair(3, 7), PackNodePair(7, 3))
	assert.NotEqual(t, PackNodePair(3, 7), PackNodePair(3, 8))

	a, b := UnpackNodePair(PackNodePair(7, 3))
	assert.Equal(t, int32(3), a)
	assert.Equal(t, int32(7), b)
}

package routecore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStagedArray_OrderedByStageThenInsertion(t *testing.T) {
	var arr StagedArray[string]
	arr.Append(0, "zero-a")
	arr.Append(-5, "neg-five")
	arr.Append(0, "zero-b")
	arr.Append(10, "ten")

	assert.Equal(t, []string{"neg-five", "zero-a", "zero-b", "ten"}, arr.Ordered())
	assert.Equal(t, 4, arr.Len())
	assert.False(t, arr.IsEmpty())
}

func TestStagedArray_Empty(t *testing.T) {
	var arr StagedArray[int]
	assert.True(t, arr.IsEmpty())
	assert.Equal(t, 0, arr.Len())
	assert.Nil(t, arr.Ordered())
}

func TestMergeStaged_TiesFavorEarlierArray(t *testing.T) {
	var a, b StagedArray[string]
	a.Append(0, "a0")
	b.Append(0, "b0")
	a.Append(5, "a5")
	b.Append(-1, "b-1")

	merged := MergeStaged(&a, &b)
	assert.Equal(t, []string{"b-1", "a0", "b0", "a5"}, merged)
}

func TestMergeStaged_SkipsNilAndEmpty(t *testing.T) {
	var a StagedArray[string]
	a.Append(0, "only")
	merged := MergeStaged[string](nil, &a, &StagedArray[string]{})
	assert.Equal(t, []string{"only"}, merged)
}

func TestMergeStaged_AllEmptyYieldsNil(t *testing.T) {
	var a, b StagedArray[int]
	assert.Nil(t, MergeStaged(&a, &b))
}

package halo

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocal_IsTheTrivialSingleRankExchanger(t *testing.T) {
	var l Local
	assert.Equal(t, 0, l.Rank())
	assert.Equal(t, 1, l.Size())
	assert.True(t, l.IsRoot())
	assert.Equal(t, 3.5, l.AllreduceSum(3.5))
	assert.Equal(t, -2.0, l.AllreduceMax(-2.0))
}

func TestRing_AllreduceSumAndMaxCombineEveryRank(t *testing.T) {
	ring := NewRing(3)
	values := []float64{1, 2, 3}
	sums := make([]float64, 3)
	maxes := make([]float64, 3)

	var wg sync.WaitGroup
	wg.Add(3)
	for i := 0; i < 3; i++ {
		go func(i int) {
			defer wg.Done()
			sums[i] = ring[i].AllreduceSum(values[i])
			maxes[i] = ring[i].AllreduceMax(values[i])
		}(i)
	}
	wg.Wait()

	for i := 0; i < 3; i++ {
		assert.Equal(t, 6.0, sums[i], "rank %d", i)
		assert.Equal(t, 3.0, maxes[i], "rank %d", i)
	}
}

func TestRing_IsRootOnlyForRankZero(t *testing.T) {
	ring := NewRing(2)
	assert.True(t, ring[0].IsRoot())
	assert.False(t, ring[1].IsRoot())
}

func TestExchange_DeliversEachRankWhatOthersPostedToIt(t *testing.T) {
	ring := NewRing(2)
	var got0, got1 map[int][]int

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		got0 = Exchange(ring[0], map[int][]int{1: {10, 11}})
	}()
	go func() {
		defer wg.Done()
		got1 = Exchange(ring[1], map[int][]int{0: {20}})
	}()
	wg.Wait()

	assert.Equal(t, []int{20}, got0[1])
	assert.Equal(t, []int{10, 11}, got1[0])
}

package core

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFreqToTicks(t *testing.T) {
	tests := []struct {
		target, operating, want uint32
	}{
		{120, 6000000, 50000},
		{60, 6000000, 100000},
		{120, 48000000, 400000},
		{7, 100, 14},
		{3, 10, 3},
		{1, 2, 2},
		{4000000000, 4294967295, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FreqToTicks(tt.target, tt.operating),
			"FreqToTicks(%d, %d)", tt.target, tt.operating)
	}
}

// The tick count must equal floor((1/target) / (1/operating)) computed with
// exact rationals.
func TestFreqToTicksMatchesPeriodRatio(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 2000; i++ {
		target := uint32(rng.Int63n(1<<20)) + 1
		operating := target + 1 + uint32(rng.Int63n(1<<31))

		ratio := new(big.Rat).Quo(
			big.NewRat(1, int64(target)),
			big.NewRat(1, int64(operating)),
		)
		want := new(big.Int).Quo(ratio.Num(), ratio.Denom())

		assert.Equal(t, want.Uint64(), uint64(FreqToTicks(target, operating)),
			"FreqToTicks(%d, %d)", target, operating)
	}
}

func TestFreqToTicksZeroTargetPanics(t *testing.T) {
	assert.Panics(t, func() { FreqToTicks(0, 6000000) })
}

func TestHalfCycleTicks(t *testing.T) {
	p := DefaultProfile()
	assert.Equal(t, uint32(6000000), p.TimerClock())
	assert.Equal(t, uint32(50000), HalfCycleTicks(p))
	assert.Equal(t, FreqToTicks(120, 6000000), HalfCycleTicks(p))

	p.TargetHz = 50
	assert.Equal(t, uint32(60000), HalfCycleTicks(p))
}

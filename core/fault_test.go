package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hbridge/core"
	"hbridge/sim"
)

func TestFaultSinkBlinks(t *testing.T) {
	b := sim.New(core.OperatingFreq, sim.Faults{})
	sink := core.NewFaultSink(b.Indicator(), b.Delay(), 1000)

	require.True(t, b.RunFor(5000, func() { sink.Halt(nil) }))
	assert.Equal(t, 6, b.IndicatorToggles())
	assert.Equal(t, uint64(6000), b.Cycles())
}

func TestFaultSinkZeroBlinkFallsBack(t *testing.T) {
	b := sim.New(core.OperatingFreq, sim.Faults{})
	sink := core.NewFaultSink(b.Indicator(), b.Delay(), 0)

	require.True(t, b.RunFor(core.BlinkCycles, func() { sink.Halt(core.ErrInvalidProfile) }))
	assert.Equal(t, 2, b.IndicatorToggles())
	assert.Equal(t, uint64(2*core.BlinkCycles), b.Cycles())
}

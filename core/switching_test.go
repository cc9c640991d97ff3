package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hbridge/core"
	"hbridge/sim"
)

func newSwitcher(t *testing.T, negative bool) (*core.Switcher, *sim.Board) {
	t.Helper()

	b := sim.New(core.OperatingFreq, sim.Faults{})
	sw := b.Switches()
	ind := b.Indicator()
	sw.Configure()
	ind.Configure()
	ind.Set(negative)

	return core.NewSwitcher(b.Timer(), sw, ind, b.Delay(), core.DeadTimeCycles), b
}

func TestSwitchWordValid(t *testing.T) {
	for w := core.SwitchWord(0); w < 16; w++ {
		want := w == core.SwitchesOff || w == core.PositivePair || w == core.NegativePair
		assert.Equal(t, want, w.Valid(), "word %s", w)
	}

	assert.False(t, core.PositivePair.Overlaps())
	assert.False(t, core.NegativePair.Overlaps())
	assert.True(t, (core.PositivePair | core.NegativePair).Overlaps())
	assert.Equal(t, "invalid(0x0f)", (core.PositivePair | core.NegativePair).String())
}

func TestSwitcherAlternates(t *testing.T) {
	for _, startNegative := range []bool{false, true} {
		s, b := newSwitcher(t, startNegative)

		const n = 50
		for i := 0; i < n; i++ {
			s.HandleInterrupt()
		}

		trace := b.Trace()
		// Configure's all-off write, then off+pair per interrupt.
		require.Len(t, trace, 1+2*n)

		negative := startNegative
		for i := 0; i < n; i++ {
			off := trace[1+2*i]
			on := trace[2+2*i]

			assert.Equal(t, core.SwitchesOff, off.Word, "interrupt %d did not open the bridge", i)

			want := core.PositivePair
			if negative {
				want = core.NegativePair
			}
			assert.Equal(t, want, on.Word, "interrupt %d", i)
			assert.GreaterOrEqual(t, on.Cycle-off.Cycle, uint64(core.DeadTimeCycles),
				"interrupt %d dead-time", i)

			negative = !negative
		}

		snap := s.Snapshot()
		assert.Equal(t, uint32(n), snap.HalfCycles)
		assert.Equal(t, negative, snap.Negative)
		assert.Equal(t, negative, b.IndicatorLevel())
	}
}

// Sample the output word after every write: after the all-off step and after
// the energize step of each interrupt.
func TestSwitcherNeverOverlaps(t *testing.T) {
	s, b := newSwitcher(t, false)

	var previous core.SwitchWord
	for i := 0; i < 200; i++ {
		s.HandleInterrupt()
	}

	for i, sample := range b.Trace() {
		assert.True(t, sample.Word.Valid(), "sample %d: %s", i, sample.Word)
		assert.False(t, sample.Word.Overlaps(), "sample %d: %s", i, sample.Word)

		// Two pairs are never written back to back.
		if sample.Word != core.SwitchesOff {
			assert.Equal(t, core.SwitchesOff, previous, "sample %d follows %s", i, previous)
		}
		previous = sample.Word
	}
}

func TestSwitcherClearsInterruptEveryTime(t *testing.T) {
	s, b := newSwitcher(t, false)

	for i := 0; i < 7; i++ {
		s.HandleInterrupt()
	}

	assert.Len(t, registers(b.Writes(), core.PeripheralTimer), 7)
	assert.Equal(t, uint32(7), s.Snapshot().HalfCycles)
	assert.Equal(t, core.PositivePair, s.Snapshot().Last)
}

func TestSwitcherRecordsTiming(t *testing.T) {
	core.ClearTimingRing()
	s, _ := newSwitcher(t, false)

	s.HandleInterrupt()
	s.HandleInterrupt()

	events := core.TimingEvents()
	require.Len(t, events, 2)
	assert.Equal(t, uint8(core.EvtEnergize), events[0].EventType)
	assert.Equal(t, uint8(core.PositivePair), events[0].Pattern)
	assert.Equal(t, uint8(core.NegativePair), events[1].Pattern)
	assert.Equal(t, uint32(2), events[1].Count)
}

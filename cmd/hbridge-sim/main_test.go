package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hbridge/config"
	"hbridge/core"
	"hbridge/sim"
)

func TestAnalyzeCleanTrace(t *testing.T) {
	trace := []sim.Sample{
		{Cycle: 0, Word: core.SwitchesOff},
		{Cycle: 100, Word: core.SwitchesOff},
		{Cycle: 104, Word: core.PositivePair},
		{Cycle: 200, Word: core.SwitchesOff},
		{Cycle: 206, Word: core.NegativePair},
	}

	r := analyze(trace, 4)
	assert.Empty(t, r.violations)
	assert.Equal(t, 1, r.positive)
	assert.Equal(t, 1, r.negative)
	assert.Equal(t, uint64(4), r.minDeadTime)
}

func TestAnalyzePeriodStats(t *testing.T) {
	trace := []sim.Sample{
		{Cycle: 0, Word: core.SwitchesOff},
		{Cycle: 4, Word: core.PositivePair},
		{Cycle: 100, Word: core.SwitchesOff},
		{Cycle: 104, Word: core.NegativePair},
		{Cycle: 200, Word: core.SwitchesOff},
		{Cycle: 204, Word: core.PositivePair},
	}

	r := analyze(trace, 4)
	assert.Equal(t, []float64{100, 100}, r.periods)

	mean, jitter := r.periodStats()
	assert.InDelta(t, 100, mean, 1e-9)
	assert.InDelta(t, 0, jitter, 1e-9)
}

func TestAnalyzeViolations(t *testing.T) {
	trace := []sim.Sample{
		{Cycle: 0, Word: core.PositivePair}, // no dead-time before
		{Cycle: 10, Word: core.SwitchesOff},
		{Cycle: 12, Word: core.NegativePair}, // gap too short
		{Cycle: 20, Word: core.SwitchesOff},
		{Cycle: 30, Word: core.NegativePair}, // repeated pair
		{Cycle: 40, Word: core.PositivePair | core.NegativePair}, // shoot-through
	}

	r := analyze(trace, 4)
	assert.Len(t, r.violations, 5)
	// The shoot-through word is neither half-cycle.
	assert.Equal(t, 1, r.positive)
	assert.Equal(t, 2, r.negative)
}

func TestWriteConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hbridge.yaml")

	rootCmd.SetArgs([]string{"write-config", "--config", path})
	require.NoError(t, rootCmd.Execute())

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestRunHealthyBoard(t *testing.T) {
	opts.seconds = 1
	assert.Equal(t, 0, run(config.Default()))
}

func TestRunBootFault(t *testing.T) {
	cfg := config.Default()
	cfg.Faults.StuckBusy = true
	assert.Equal(t, 2, run(cfg))
}

func TestRunZeroBlinkProfileHalts(t *testing.T) {
	cfg := config.Default()
	cfg.Inverter.BlinkCycles = 0
	require.ErrorIs(t, cfg.Validate(), core.ErrInvalidProfile)

	done := make(chan int, 1)
	go func() { done <- run(cfg) }()

	select {
	case code := <-done:
		assert.Equal(t, 2, code)
	case <-time.After(10 * time.Second):
		t.Fatal("run did not return for a zero blink period")
	}
}

func TestCheckSeconds(t *testing.T) {
	assert.NoError(t, checkSeconds(1))
	assert.NoError(t, checkSeconds(maxSeconds))
	assert.Error(t, checkSeconds(0))
	assert.Error(t, checkSeconds(maxSeconds+1))
}

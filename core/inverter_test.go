package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hbridge/core"
	"hbridge/sim"
)

func newInverter(faults sim.Faults, p core.Profile) (*core.Inverter, *sim.Board) {
	b := sim.New(p.OperatingHz, faults)
	inv := core.New(b.Hardware(), p)
	b.SetInterruptHandler(sim.IRQTA1N, inv.HandleInterrupt)
	return inv, b
}

func TestInverterOneSecond(t *testing.T) {
	inv, b := newInverter(sim.Faults{}, core.DefaultProfile())

	require.NoError(t, inv.Start())

	assert.Equal(t, core.ClockConfigured, inv.ClockState())
	assert.Equal(t, uint32(50000), inv.Ticks())
	assert.Equal(t, uint16(core.FreqToTicks(120, 6000000)), b.TimerPeriod())
	assert.True(t, b.InterruptsEnabled())
	assert.True(t, b.SwitchesConfigured())
	assert.Equal(t, core.SwitchesOff, b.SwitchWord())

	b.AdvanceSeconds(1)

	snap := inv.Switcher().Snapshot()
	assert.Equal(t, uint32(120), snap.HalfCycles)
	assert.Equal(t, 120, b.IndicatorToggles())

	var positive, negative int
	for _, s := range b.Trace() {
		switch s.Word {
		case core.PositivePair:
			positive++
		case core.NegativePair:
			negative++
		}
	}
	// One full output cycle is one positive and one negative half-cycle.
	assert.Equal(t, 60, positive)
	assert.Equal(t, 60, negative)
}

func TestInverterHalfCycleSpacing(t *testing.T) {
	inv, b := newInverter(sim.Faults{}, core.DefaultProfile())
	require.NoError(t, inv.Start())

	b.AdvanceSeconds(1)

	period := uint64(inv.Ticks()) * core.TimerDivider
	var last uint64
	for _, s := range b.Trace() {
		if s.Word != core.SwitchesOff {
			if last != 0 {
				assert.Equal(t, period, s.Cycle-last)
			}
			last = s.Cycle
		}
	}
}

func TestInverterNoInterruptsBeforeStart(t *testing.T) {
	inv, b := newInverter(sim.Faults{}, core.DefaultProfile())

	b.AdvanceSeconds(1)
	assert.Zero(t, inv.Switcher().Snapshot().HalfCycles)
	assert.Empty(t, b.Trace())
}

func TestInverterClockFaultHalts(t *testing.T) {
	inv, b := newInverter(sim.Faults{InitialPowerState: core.PowerAM1LDO}, core.DefaultProfile())

	halted := b.RunFor(10*core.BlinkCycles, inv.Run)

	assert.True(t, halted)
	assert.Equal(t, core.ClockFaulted, inv.ClockState())
	// Ten full blink periods fit in the budget; the eleventh toggle overruns it.
	assert.Equal(t, 11, b.IndicatorToggles())
	assert.False(t, b.InterruptsEnabled())
	assert.False(t, b.TimerRunning())
	assert.Equal(t, core.SwitchesOff, b.SwitchWord())
	assert.Empty(t, registers(b.Writes(),
		core.PeripheralPower, core.PeripheralFlash, core.PeripheralClockSystem, core.PeripheralTimer))
}

func TestInverterTickLimitHalts(t *testing.T) {
	p := core.DefaultProfile()
	p.TimerDivider = 1 // 400000 ticks per half-cycle

	inv, b := newInverter(sim.Faults{}, p)
	err := inv.Start()

	assert.ErrorIs(t, err, core.ErrTickCountOutOfRange)
	assert.Equal(t, core.ClockConfigured, inv.ClockState())
	assert.Empty(t, registers(b.Writes(), core.PeripheralTimer))
	assert.False(t, b.InterruptsEnabled())

	assert.True(t, b.RunFor(core.BlinkCycles, func() { inv.Halt(err) }))
	assert.Equal(t, 2, b.IndicatorToggles())
}

func TestInverterUnsupportedDividerHalts(t *testing.T) {
	p := core.DefaultProfile()
	p.TimerDivider = 16 // 25000 ticks, in range, but no such Timer_A divider

	inv, b := newInverter(sim.Faults{}, p)
	err := inv.Start()

	assert.ErrorIs(t, err, core.ErrUnsupportedDivider)
	assert.False(t, b.TimerRunning())
	assert.False(t, b.InterruptsEnabled())
}

func TestInverterZeroBlinkProfileHalts(t *testing.T) {
	p := core.DefaultProfile()
	p.BlinkCycles = 0

	inv, b := newInverter(sim.Faults{}, p)
	assert.Equal(t, uint32(core.BlinkCycles), inv.BlinkCycles())

	halted := b.RunFor(10*core.BlinkCycles, inv.Run)

	assert.True(t, halted)
	assert.Equal(t, 11, b.IndicatorToggles())
	assert.Equal(t, core.SwitchesOff, b.SwitchWord())
}

func TestInverterInvalidProfile(t *testing.T) {
	p := core.DefaultProfile()
	p.DeadTimeCycles = 0

	inv, b := newInverter(sim.Faults{}, p)

	assert.ErrorIs(t, inv.Start(), core.ErrInvalidProfile)
	assert.Empty(t, b.Writes())
}

func TestInverterWithoutClockCapability(t *testing.T) {
	b := sim.New(core.OperatingFreq, sim.Faults{InitialPowerState: core.PowerAM1LDO})
	hw := b.Hardware()
	hw.Clock = nil

	inv := core.New(hw, core.DefaultProfile())
	require.NoError(t, inv.Start())
	assert.Equal(t, core.ClockConfigured, inv.ClockState())
	assert.True(t, b.TimerRunning())
}

func TestNewPanicsOnMissingCapability(t *testing.T) {
	b := sim.New(core.OperatingFreq, sim.Faults{})
	hw := b.Hardware()
	hw.Switches = nil

	assert.Panics(t, func() { core.New(hw, core.DefaultProfile()) })
}

func TestHardwareClaimsOnce(t *testing.T) {
	b := sim.New(core.OperatingFreq, sim.Faults{})
	b.Hardware()

	assert.Panics(t, func() { b.Timer() })
}

package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hbridge/core"
	"hbridge/sim"
)

func registers(writes []sim.Write, peripherals ...core.Peripheral) []string {
	var regs []string
	for _, w := range writes {
		for _, p := range peripherals {
			if w.Peripheral == p {
				regs = append(regs, w.Register)
			}
		}
	}
	return regs
}

func TestClockConfigure(t *testing.T) {
	b := sim.New(core.OperatingFreq, sim.Faults{})
	c := core.NewClockConfigurator(b.Clock(), core.TransitionPolls)

	require.NoError(t, c.Configure())

	assert.Equal(t, core.ClockConfigured, c.State())
	assert.Equal(t, core.PowerAM1LDO, b.PowerState())
	assert.Equal(t, uint8(2), b.FlashWaitStates(core.FlashBank0))
	assert.Equal(t, uint8(2), b.FlashWaitStates(core.FlashBank1))
	assert.Equal(t, uint32(48000000), b.MCLK())
	assert.True(t, b.ClocksLocked())
	assert.Zero(t, b.LockViolations())

	assert.Equal(t, []string{
		"PCMCTL0",
		"FLCTL_BANK0_RDCTL",
		"FLCTL_BANK1_RDCTL",
		"CSKEY",
		"CSCTL0",
		"CSCTL0",
		"CSCTL1",
		"CSKEY",
	}, registers(b.Writes(), core.PeripheralPower, core.PeripheralFlash, core.PeripheralClockSystem))
}

func TestClockConfigureFaults(t *testing.T) {
	tests := []struct {
		name   string
		faults sim.Faults
		want   error
		// power state request reached before the fault
		requested bool
	}{
		{"not AM0 at entry", sim.Faults{InitialPowerState: core.PowerAM1LDO}, core.ErrUnexpectedPowerState, false},
		{"DCDC at entry", sim.Faults{InitialPowerState: core.PowerAM0DCDC}, core.ErrUnexpectedPowerState, false},
		{"busy never clears", sim.Faults{StuckBusy: true}, core.ErrTransitionTimeout, false},
		{"invalid transition", sim.Faults{InvalidTransition: true}, core.ErrInvalidTransition, true},
		{"wrong result state", sim.Faults{WrongResultState: true}, core.ErrUnexpectedPowerState, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := sim.New(core.OperatingFreq, tt.faults)
			c := core.NewClockConfigurator(b.Clock(), core.TransitionPolls)

			err := c.Configure()
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, core.ClockFaulted, c.State())

			// Nothing past the failed check touches flash timing or clocks.
			assert.Empty(t, registers(b.Writes(), core.PeripheralFlash, core.PeripheralClockSystem))
			assert.Equal(t, uint8(0), b.FlashWaitStates(core.FlashBank0))
			assert.Equal(t, uint32(3000000), b.MCLK())

			power := registers(b.Writes(), core.PeripheralPower)
			if tt.requested {
				assert.Equal(t, []string{"PCMCTL0"}, power)
			} else {
				assert.Empty(t, power)
			}
		})
	}
}

func TestClockStateString(t *testing.T) {
	assert.Equal(t, "default", core.ClockDefault.String())
	assert.Equal(t, "faulted", core.ClockFaulted.String())
	assert.Equal(t, "AM1_LDO", core.PowerAM1LDO.String())
	assert.Equal(t, "CPM_17", core.PowerState(17).String())
}

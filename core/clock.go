package core

// ClockState is the progress of the clock configuration sequence.
type ClockState uint8

const (
	ClockDefault      ClockState = iota // AM0_LDO, DCO at reset frequency
	ClockIntermediate                   // AM1_LDO reached
	ClockConfigured                     // MCLK from DCO at 48MHz
	ClockFaulted
)

func (s ClockState) String() string {
	switch s {
	case ClockDefault:
		return "default"
	case ClockIntermediate:
		return "intermediate"
	case ClockConfigured:
		return "configured"
	case ClockFaulted:
		return "faulted"
	default:
		return "unknown"
	}
}

// Flash read wait-states needed with MCLK at 48MHz.
const FlashWaitStates48MHz = 2

// ClockConfigurator raises the system clock from the reset state to 48MHz.
type ClockConfigurator struct {
	cc    ClockControl
	polls uint32
	state ClockState
}

// NewClockConfigurator returns a configurator that gives up on a power state
// transition after polls status reads.
func NewClockConfigurator(cc ClockControl, polls uint32) *ClockConfigurator {
	return &ClockConfigurator{cc: cc, polls: polls}
}

// State returns how far the sequence got.
func (c *ClockConfigurator) State() ClockState {
	return c.state
}

// Configure runs the sequence AM0_LDO -> AM1_LDO, flash wait-states, then
// MCLK = DCO/1 at 48MHz. Any unexpected status moves the configurator to
// ClockFaulted and stops before the next register write.
func (c *ClockConfigurator) Configure() error {
	if c.cc.PowerState() != PowerAM0LDO {
		return c.fail(ErrUnexpectedPowerState)
	}

	if err := c.waitTransition(); err != nil {
		return c.fail(err)
	}
	c.cc.RequestPowerState(PowerAM1LDO)
	if err := c.waitTransition(); err != nil {
		return c.fail(err)
	}
	if c.cc.TransitionInvalid() {
		return c.fail(ErrInvalidTransition)
	}
	if c.cc.PowerState() != PowerAM1LDO {
		return c.fail(ErrUnexpectedPowerState)
	}
	c.state = ClockIntermediate
	RecordTiming(EvtClockStep, uint8(ClockIntermediate), 0, uint32(PowerAM1LDO), 0)

	// Core voltage first, then flash timing, then the faster clock.
	c.cc.SetFlashWaitStates(FlashBank0, FlashWaitStates48MHz)
	c.cc.SetFlashWaitStates(FlashBank1, FlashWaitStates48MHz)

	c.cc.UnlockClocks(ClockKey)
	c.cc.ResetDCOTuning()
	c.cc.SetDCORange(DCORange48MHz)
	c.cc.SelectMasterClock(ClockSourceDCO, ClockDivide1)
	c.cc.LockClocks()

	c.state = ClockConfigured
	RecordTiming(EvtClockStep, uint8(ClockConfigured), 0, uint32(DCORange48MHz), 0)
	return nil
}

// waitTransition polls the busy flag at most c.polls times.
func (c *ClockConfigurator) waitTransition() error {
	for i := uint32(0); i < c.polls; i++ {
		if !c.cc.TransitionBusy() {
			return nil
		}
	}
	return ErrTransitionTimeout
}

func (c *ClockConfigurator) fail(err error) error {
	c.state = ClockFaulted
	RecordTiming(EvtClockStep, uint8(ClockFaulted), 0, uint32(c.cc.PowerState()), 0)
	return err
}

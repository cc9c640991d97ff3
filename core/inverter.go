// Package core holds the hardware-independent inverter logic: clock bring-up,
// timer arming, and the interrupt-driven switching state machine. Targets
// supply the register-level capabilities.
package core

// Hardware is the set of capabilities a target hands to the inverter.
type Hardware struct {
	// Clock is nil on targets whose runtime already set up the clocks.
	Clock      ClockControl
	Timer      PeriodicTimer
	Interrupts InterruptController
	Switches   SwitchPort
	Indicator  OutputPin // fault indicator, also holds the polarity flag
	Delay      Delayer
}

// Inverter sequences start-up and owns the switching state machine.
type Inverter struct {
	hw      Hardware
	profile Profile

	clock    *ClockConfigurator
	switcher *Switcher
	fault    *FaultSink
	ticks    uint32
}

// New wires the inverter to hw. It panics if a required capability is
// missing.
func New(hw Hardware, p Profile) *Inverter {
	switch {
	case hw.Timer == nil:
		panic("timer not configured")
	case hw.Interrupts == nil:
		panic("interrupt controller not configured")
	case hw.Switches == nil:
		panic("switch port not configured")
	case hw.Indicator == nil:
		panic("indicator pin not configured")
	case hw.Delay == nil:
		panic("delay not configured")
	}

	inv := &Inverter{
		hw:       hw,
		profile:  p,
		switcher: NewSwitcher(hw.Timer, hw.Switches, hw.Indicator, hw.Delay, p.DeadTimeCycles),
		fault:    NewFaultSink(hw.Indicator, hw.Delay, p.BlinkCycles),
	}
	if hw.Clock != nil {
		inv.clock = NewClockConfigurator(hw.Clock, p.TransitionPolls)
	}
	return inv
}

// Start runs the one-time setup with interrupts masked: outputs to their
// safe baseline, clock, then the half-cycle timer. Interrupts are enabled
// only once everything the handler reads is initialized.
func (inv *Inverter) Start() error {
	inv.hw.Interrupts.DisableInterrupts()

	if err := inv.profile.Validate(); err != nil {
		return err
	}

	inv.hw.Switches.Configure()
	inv.hw.Indicator.Configure()

	if inv.clock != nil {
		DebugPrintln("[BOOT] clock")
		if err := inv.clock.Configure(); err != nil {
			return err
		}
	}

	inv.ticks = HalfCycleTicks(inv.profile)
	DebugPrintln("[BOOT] timer ticks=" + utoa(inv.ticks))
	if err := ConfigureTimer(inv.hw.Timer, inv.hw.Interrupts, inv.ticks, inv.profile.TimerConfig()); err != nil {
		return err
	}

	inv.hw.Interrupts.EnableInterrupts()
	DebugPrintln("[BOOT] running")
	return nil
}

// Run starts the inverter and halts in the fault sink if start-up fails.
func (inv *Inverter) Run() {
	if err := inv.Start(); err != nil {
		inv.Halt(err)
	}
}

// Halt masks interrupts, opens every switch and enters the fault sink. It
// never returns.
func (inv *Inverter) Halt(cause error) {
	inv.hw.Interrupts.DisableInterrupts()
	inv.hw.Switches.Write(SwitchesOff)
	inv.fault.Halt(cause)
}

// HandleInterrupt is the timer interrupt entry point.
func (inv *Inverter) HandleInterrupt() {
	inv.switcher.HandleInterrupt()
}

// Ticks returns the programmed half-cycle period, zero before Start.
func (inv *Inverter) Ticks() uint32 {
	return inv.ticks
}

// Profile returns the profile the inverter was built with.
func (inv *Inverter) Profile() Profile {
	return inv.profile
}

// ClockState reports clock configuration progress. Targets without a clock
// capability always report ClockConfigured.
func (inv *Inverter) ClockState() ClockState {
	if inv.clock == nil {
		return ClockConfigured
	}
	return inv.clock.State()
}

// BlinkCycles returns the fault indicator half-period the sink blinks with.
func (inv *Inverter) BlinkCycles() uint32 {
	return inv.fault.blinkCycles
}

// Switcher returns the switching state machine.
func (inv *Inverter) Switcher() *Switcher {
	return inv.switcher
}

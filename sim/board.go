// Package sim is a register-level simulation of the inverter board. It
// implements every core capability so the firmware logic can be booted and
// clocked on a host.
package sim

import (
	"hbridge/core"
)

// IRQTA1N is the Timer_A1 overflow/CCR1-4 interrupt line (INT_TA1_N - 16).
const IRQTA1N core.IRQ = 11

// ErrHalted is the panic value raised by the simulated delay once the cycle
// deadline set by RunFor passes. It lets tests drive code that never returns.
const ErrHalted = core.Error("simulation halted")

// transitionPolls is how many busy reads a healthy power transition takes.
const transitionPolls = 3

// Faults selects hardware misbehaviour to inject.
type Faults struct {
	// InitialPowerState is the power state at reset. Zero is AM0_LDO.
	InitialPowerState core.PowerState
	// StuckBusy keeps the transition busy flag set forever.
	StuckBusy bool
	// InvalidTransition raises the invalid-transition flag on a request.
	InvalidTransition bool
	// WrongResultState lands a transition in AM1_DCDC instead of the
	// requested state.
	WrongResultState bool
}

// Write is one logged register write.
type Write struct {
	Peripheral core.Peripheral
	Register   string
	Value      uint32
	Cycle      uint64
}

// Sample is the switch output word right after a write to the port.
type Sample struct {
	Cycle uint64
	Word  core.SwitchWord
}

// Board holds the simulated register state.
type Board struct {
	cpuHz  uint32
	faults Faults
	claims core.Claims

	// PCM
	power      core.PowerState
	busyPolls  int
	invalidIFG bool

	// FLCTL
	waitStates [2]uint8

	// CS
	csUnlocked     bool
	dcoRange       core.DCORange
	mclkSource     core.ClockSource
	mclkDivider    core.ClockDivider
	lockViolations int

	// Timer_A1
	period      uint16
	timerCfg    core.TimerConfig
	timerActive bool
	pending     bool
	expiry      event

	// NVIC
	irqEnabled [2]uint32
	globalIRQ  bool
	handlers   map[core.IRQ]func()

	// P4 switches, P1.0 indicator
	switchesConfigured  bool
	switches            core.SwitchWord
	indicatorConfigured bool
	indicator           bool
	indicatorToggles    int

	cycles   uint64
	deadline uint64
	armed    bool
	sched    scheduler
	writes   []Write
	trace    []Sample
}

// New returns a board in its reset state whose CPU runs at cpuHz once the
// clock is configured.
func New(cpuHz uint32, faults Faults) *Board {
	return &Board{
		cpuHz:       cpuHz,
		faults:      faults,
		power:       faults.InitialPowerState,
		dcoRange:    core.DCORange3MHz,
		mclkSource:  core.ClockSourceDCO,
		mclkDivider: core.ClockDivide1,
		handlers:    make(map[core.IRQ]func()),
	}
}

// Hardware claims every peripheral and returns the capability set.
func (b *Board) Hardware() core.Hardware {
	return core.Hardware{
		Clock:      b.Clock(),
		Timer:      b.Timer(),
		Interrupts: b.Interrupts(),
		Switches:   b.Switches(),
		Indicator:  b.Indicator(),
		Delay:      b.Delay(),
	}
}

// Clock claims the power, flash and clock system blocks.
func (b *Board) Clock() core.ClockControl {
	b.claims.MustClaim(core.PeripheralPower)
	b.claims.MustClaim(core.PeripheralFlash)
	b.claims.MustClaim(core.PeripheralClockSystem)
	return &clockDriver{b: b}
}

// Timer claims Timer_A1.
func (b *Board) Timer() core.PeriodicTimer {
	b.claims.MustClaim(core.PeripheralTimer)
	return &timerDriver{b: b}
}

// Interrupts claims the NVIC.
func (b *Board) Interrupts() core.InterruptController {
	b.claims.MustClaim(core.PeripheralInterrupts)
	return &nvicDriver{b: b}
}

// Switches claims P4.0-P4.3.
func (b *Board) Switches() core.SwitchPort {
	b.claims.MustClaim(core.PeripheralSwitches)
	return &switchDriver{b: b}
}

// Indicator claims P1.0.
func (b *Board) Indicator() core.OutputPin {
	b.claims.MustClaim(core.PeripheralIndicator)
	return &indicatorDriver{b: b}
}

// Delay claims the cycle delay.
func (b *Board) Delay() core.Delayer {
	b.claims.MustClaim(core.PeripheralDelay)
	return &delayDriver{b: b}
}

// SetInterruptHandler registers fn for irq, like interrupt.New on target.
func (b *Board) SetInterruptHandler(irq core.IRQ, fn func()) {
	b.handlers[irq] = fn
}

// Advance runs the board for cycles CPU cycles, firing the timer interrupt
// at every period boundary it crosses.
func (b *Board) Advance(cycles uint64) {
	until := b.cycles + cycles
	b.sched.dispatch(&b.cycles, until)
	if b.cycles < until {
		b.cycles = until
	}
}

// AdvanceSeconds runs the board for whole seconds of CPU time.
func (b *Board) AdvanceSeconds(seconds uint64) {
	b.Advance(uint64(seconds) * uint64(b.cpuHz))
}

// RunFor calls fn and stops it with ErrHalted once it has spent more than
// cycles in delays. It reports whether fn was stopped.
func (b *Board) RunFor(cycles uint64, fn func()) (halted bool) {
	b.deadline = b.cycles + cycles
	b.armed = true
	defer func() {
		b.armed = false
		if r := recover(); r != nil {
			if r == ErrHalted {
				halted = true
				return
			}
			panic(r)
		}
	}()
	fn()
	return false
}

func (b *Board) log(p core.Peripheral, reg string, value uint32) {
	b.writes = append(b.writes, Write{Peripheral: p, Register: reg, Value: value, Cycle: b.cycles})
}

// timerExpired is the Timer_A1 overflow: raise the flag and vector to the
// handler when the line and global interrupts are enabled.
func (b *Board) timerExpired(e *event) uint8 {
	if !b.timerActive {
		return evDone
	}
	if b.timerCfg.OverflowInterrupt {
		b.pending = true
	}
	b.deliver()
	e.wake += b.periodCycles()
	return evReschedule
}

// deliver vectors to the Timer_A1 handler if its flag is pending and both the
// line and global interrupts are enabled. A flag latched while masked fires
// as soon as it is unmasked.
func (b *Board) deliver() {
	if b.pending && b.globalIRQ && b.IRQEnabled(IRQTA1N) {
		if fn := b.handlers[IRQTA1N]; fn != nil {
			fn()
		}
	}
}

// periodCycles is one timer period in CPU cycles. In up mode the counter
// runs from 0 to the period register; the MSP432 driver loads ticks-1, so
// the simulated period is the tick count the core asked for. Start only
// accepts dividers Timer_A supports.
func (b *Board) periodCycles() uint64 {
	return uint64(b.period) * uint64(b.timerCfg.Divider)
}

// Cycles returns the elapsed CPU cycles.
func (b *Board) Cycles() uint64 { return b.cycles }

// Writes returns the register write log.
func (b *Board) Writes() []Write { return b.writes }

// Trace returns every switch word written, with its cycle.
func (b *Board) Trace() []Sample { return b.trace }

// PowerState returns PCMCTL0.CPM.
func (b *Board) PowerState() core.PowerState { return b.power }

// FlashWaitStates returns the read wait-states of bank.
func (b *Board) FlashWaitStates(bank core.FlashBank) uint8 { return b.waitStates[bank] }

// ClocksLocked reports whether CSKEY is locked.
func (b *Board) ClocksLocked() bool { return !b.csUnlocked }

// LockViolations counts clock system writes attempted while locked.
func (b *Board) LockViolations() int { return b.lockViolations }

// MCLK returns the master clock frequency the clock system is set for.
func (b *Board) MCLK() uint32 {
	if b.mclkSource != core.ClockSourceDCO {
		return 0
	}
	var hz uint32
	switch b.dcoRange {
	case core.DCORange1_5MHz:
		hz = 1500000
	case core.DCORange3MHz:
		hz = 3000000
	case core.DCORange6MHz:
		hz = 6000000
	case core.DCORange12MHz:
		hz = 12000000
	case core.DCORange24MHz:
		hz = 24000000
	case core.DCORange48MHz:
		hz = 48000000
	}
	return hz >> b.mclkDivider
}

// TimerPeriod returns the tick count the timer was programmed with.
func (b *Board) TimerPeriod() uint16 { return b.period }

// TimerConfig returns the configuration the timer was started with.
func (b *Board) TimerConfig() core.TimerConfig { return b.timerCfg }

// TimerRunning reports whether the timer was started.
func (b *Board) TimerRunning() bool { return b.timerActive }

// IRQEnabled reports whether irq is enabled at the NVIC.
func (b *Board) IRQEnabled(irq core.IRQ) bool {
	return b.irqEnabled[irq>>5]&(1<<(irq&31)) != 0
}

// InterruptsEnabled reports the global interrupt enable.
func (b *Board) InterruptsEnabled() bool { return b.globalIRQ }

// SwitchWord returns the current switch output word.
func (b *Board) SwitchWord() core.SwitchWord { return b.switches }

// SwitchesConfigured reports whether P4.0-P4.3 are outputs.
func (b *Board) SwitchesConfigured() bool { return b.switchesConfigured }

// IndicatorLevel returns the P1.0 level.
func (b *Board) IndicatorLevel() bool { return b.indicator }

// IndicatorToggles counts P1.0 level changes.
func (b *Board) IndicatorToggles() int { return b.indicatorToggles }

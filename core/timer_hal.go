package core

// TimerSource selects the timer input clock.
type TimerSource uint8

const (
	TimerSourceTACLK TimerSource = iota
	TimerSourceACLK
	TimerSourceSMCLK
	TimerSourceINCLK
)

// CountMode selects how the timer counter runs.
type CountMode uint8

const (
	CountStop       CountMode = iota
	CountUp                   // 0 up to the period register, then wrap
	CountContinuous           // 0 up to 0xFFFF
	CountUpDown               // 0 up to the period register and back
)

// TimerConfig is applied when the timer is started.
type TimerConfig struct {
	Source            TimerSource
	Divider           uint32 // input clock pre-divider
	Mode              CountMode
	OverflowInterrupt bool
}

// TimerADivider returns the Timer_A ID field for div. Timer_A divides its
// input by 1, 2, 4 or 8 only.
func TimerADivider(div uint32) (id uint8, ok bool) {
	switch div {
	case 1:
		return 0, true
	case 2:
		return 1, true
	case 4:
		return 2, true
	case 8:
		return 3, true
	}
	return 0, false
}

// IRQ is an interrupt line number at the interrupt controller.
type IRQ uint16

// PeriodicTimer is a hardware timer that raises an interrupt every period.
type PeriodicTimer interface {
	// IRQ returns the interrupt line the timer raises.
	IRQ() IRQ

	// SetPeriod programs the period register in timer ticks.
	SetPeriod(ticks uint16)

	// Start selects the input clock, divider and count mode, and enables the
	// overflow interrupt as requested. It fails with ErrUnsupportedDivider,
	// before touching the control register, if the hardware cannot divide
	// by cfg.Divider.
	Start(cfg TimerConfig) error

	// ClearInterrupt acknowledges the pending timer interrupt.
	ClearInterrupt()
}

// InterruptController enables interrupt lines and gates interrupts globally.
type InterruptController interface {
	EnableIRQ(irq IRQ)
	EnableInterrupts()
	DisableInterrupts()
}

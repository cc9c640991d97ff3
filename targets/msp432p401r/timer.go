//go:build msp432p401r

package main

import (
	"device/arm"
	"hbridge/core"
)

// timerA1 drives Timer_A1 as the half-cycle timebase.
type timerA1 struct{}

func newTimerA1(claims *core.Claims) *timerA1 {
	claims.MustClaim(core.PeripheralTimer)
	return &timerA1{}
}

func (timerA1) IRQ() core.IRQ { return irqTA1N }

// SetPeriod loads CCR0. Up mode counts 0..CCR0 inclusive, so one period of
// ticks counts needs ticks-1.
func (timerA1) SetPeriod(ticks uint16) {
	reg16(TA1CCR0).Set(ticks - 1)
}

func (timerA1) Start(cfg core.TimerConfig) error {
	id, ok := core.TimerADivider(cfg.Divider)
	if !ok {
		return core.ErrUnsupportedDivider
	}

	ctl := uint16(cfg.Source)<<TACTL_TASSEL_Pos |
		uint16(id)<<TACTL_ID_Pos |
		uint16(cfg.Mode)<<TACTL_MC_Pos |
		TACTL_TACLR
	if cfg.OverflowInterrupt {
		ctl |= TACTL_TAIE
	}
	reg16(TA1CTL).Set(ctl)
	return nil
}

// ClearInterrupt reads TA1IV, which clears the highest pending flag, and
// drops TAIFG explicitly in case a capture flag was ahead of it.
func (timerA1) ClearInterrupt() {
	reg16(TA1IV).Get()
	reg16(TA1CTL).ClearBits(TACTL_TAIFG)
}

// nvic drives the interrupt controller and PRIMASK.
type nvic struct{}

func newNVIC(claims *core.Claims) *nvic {
	claims.MustClaim(core.PeripheralInterrupts)
	return &nvic{}
}

func (nvic) EnableIRQ(irq core.IRQ) {
	reg32(NVIC_ISER0 + 4*uintptr(irq>>5)).Set(1 << (irq & 31))
}

func (nvic) EnableInterrupts() { arm.Asm("cpsie i") }

func (nvic) DisableInterrupts() { arm.Asm("cpsid i") }

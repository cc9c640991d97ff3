//go:build rp2040

package main

import (
	"device/arm"
	"runtime/volatile"
	"unsafe"

	"hbridge/core"
)

// PWM slice 7 is used only as a counter; its wrap interrupt is the
// half-cycle timebase. GPIO14/15 stay unassigned.
const (
	pwmBase  = 0x40050000
	pwmSlice = 7

	pwmChCSR = pwmBase + pwmSlice*0x14 + 0x00
	pwmChDIV = pwmBase + pwmSlice*0x14 + 0x04
	pwmChCTR = pwmBase + pwmSlice*0x14 + 0x08
	pwmChTOP = pwmBase + pwmSlice*0x14 + 0x10
	pwmINTR  = pwmBase + 0xA4
	pwmINTE  = pwmBase + 0xA8

	pwmCSREn     = 1 << 0
	pwmDIVIntPos = 4
	pwmSliceBit  = 1 << pwmSlice

	// IRQ_PWM_IRQ_WRAP
	pwmWrapIRQ = 4
)

var (
	pwmCSR  = (*volatile.Register32)(unsafe.Pointer(uintptr(pwmChCSR)))
	pwmDIV  = (*volatile.Register32)(unsafe.Pointer(uintptr(pwmChDIV)))
	pwmCTR  = (*volatile.Register32)(unsafe.Pointer(uintptr(pwmChCTR)))
	pwmTOP  = (*volatile.Register32)(unsafe.Pointer(uintptr(pwmChTOP)))
	pwmIntr = (*volatile.Register32)(unsafe.Pointer(uintptr(pwmINTR)))
	pwmInte = (*volatile.Register32)(unsafe.Pointer(uintptr(pwmINTE)))
)

// pwmTimer implements core.PeriodicTimer on a PWM slice counter. The slice
// counts clk_sys through its integer divider regardless of cfg.Source.
type pwmTimer struct{}

func newPWMTimer(claims *core.Claims) *pwmTimer {
	claims.MustClaim(core.PeripheralTimer)
	return &pwmTimer{}
}

func (pwmTimer) IRQ() core.IRQ { return pwmWrapIRQ }

// SetPeriod loads TOP. The counter wraps after TOP, so a period of ticks
// counts needs ticks-1.
func (pwmTimer) SetPeriod(ticks uint16) {
	pwmTOP.Set(uint32(ticks) - 1)
}

// Start accepts the 8-bit integer part of the slice divider, 1 to 255.
func (pwmTimer) Start(cfg core.TimerConfig) error {
	if cfg.Divider == 0 || cfg.Divider > 0xFF {
		return core.ErrUnsupportedDivider
	}

	pwmCSR.Set(0)
	pwmCTR.Set(0)
	pwmDIV.Set(cfg.Divider << pwmDIVIntPos)

	pwmIntr.Set(pwmSliceBit)
	if cfg.OverflowInterrupt {
		pwmInte.SetBits(pwmSliceBit)
	} else {
		pwmInte.ClearBits(pwmSliceBit)
	}
	if cfg.Mode != core.CountStop {
		pwmCSR.Set(pwmCSREn)
	}
	return nil
}

// ClearInterrupt acknowledges the wrap flag; INTR is write-one-to-clear.
func (pwmTimer) ClearInterrupt() {
	pwmIntr.Set(pwmSliceBit)
}

// nvic drives the interrupt controller and PRIMASK.
type nvic struct{}

func newNVIC(claims *core.Claims) *nvic {
	claims.MustClaim(core.PeripheralInterrupts)
	return &nvic{}
}

func (nvic) EnableIRQ(irq core.IRQ) { arm.EnableIRQ(uint32(irq)) }

func (nvic) EnableInterrupts() { arm.Asm("cpsie i") }

func (nvic) DisableInterrupts() { arm.Asm("cpsid i") }

//go:build msp432p401r

package main

import (
	"device/arm"
	"runtime/interrupt"

	"hbridge/core"
)

var inv *core.Inverter

func main() {
	// Hold the watchdog; the switching loop never services it.
	reg16(WDTCTL).Set(WDTPW | WDTHOLD)

	var claims core.Claims
	hw := core.Hardware{
		Clock:      newPCMClock(&claims),
		Timer:      newTimerA1(&claims),
		Interrupts: newNVIC(&claims),
		Switches:   newP4Switches(&claims),
		Indicator:  newP1Indicator(&claims),
		Delay:      newSpinDelay(&claims),
	}
	inv = core.New(hw, core.DefaultProfile())

	interrupt.New(irqTA1N, handleTA1N)

	inv.Run()
	for {
		arm.Asm("wfi")
	}
}

func handleTA1N(interrupt.Interrupt) {
	inv.HandleInterrupt()
}

//go:build rp2040

package main

import (
	"device/arm"
	"machine"
	"runtime/interrupt"

	"hbridge/core"
)

const switchBase = machine.GPIO2 // GPIO2-GPIO5

// rp2040Profile retunes the default profile for a 125 MHz clk_sys and the
// 8-bit PWM divider. 125 MHz / 64 / 120 gives 16276 ticks per half-cycle.
func rp2040Profile() core.Profile {
	p := core.DefaultProfile()
	p.OperatingHz = 125000000
	p.TimerDivider = 64
	p.DeadTimeCycles = 16
	p.BlinkCycles = 8000000
	return p
}

var inv *core.Inverter

func main() {
	core.SetDebugWriter(func(s string) { println(s) })

	var claims core.Claims
	hw := core.Hardware{
		Timer:      newPWMTimer(&claims),
		Interrupts: newNVIC(&claims),
		Switches:   newPIOBridge(&claims, switchBase),
		Indicator:  newLEDIndicator(&claims, machine.LED),
		Delay:      newCycleDelay(&claims),
	}
	inv = core.New(hw, rp2040Profile())

	// Stop any watchdog left running across the reset; failing that, halt
	// with the bridge open.
	if err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0}); err != nil {
		hw.Switches.Configure()
		inv.Halt(err)
	}

	interrupt.New(pwmWrapIRQ, handlePWMWrap)

	inv.Run()
	for {
		arm.Asm("wfi")
	}
}

func handlePWMWrap(interrupt.Interrupt) {
	inv.HandleInterrupt()
}

//go:build rp2040

package main

import (
	"machine"
	"time"

	"hbridge/core"

	"tinygo.org/x/drivers/delay"
)

// cycleDelay converts CPU cycles to wall time and busy-waits through the
// drivers delay package.
type cycleDelay struct {
	cpuHz uint64
}

func newCycleDelay(claims *core.Claims) *cycleDelay {
	claims.MustClaim(core.PeripheralDelay)
	return &cycleDelay{cpuHz: uint64(machine.CPUFrequency())}
}

// DelayCycles rounds up to the next nanosecond.
func (d *cycleDelay) DelayCycles(cycles uint32) {
	ns := (uint64(cycles)*uint64(time.Second) + d.cpuHz - 1) / d.cpuHz
	delay.Sleep(time.Duration(ns))
}

// ledIndicator is the on-board LED. Get reads the pad back, which also
// serves as the polarity flag.
type ledIndicator struct {
	pin machine.Pin
}

func newLEDIndicator(claims *core.Claims, pin machine.Pin) *ledIndicator {
	claims.MustClaim(core.PeripheralIndicator)
	return &ledIndicator{pin: pin}
}

func (l *ledIndicator) Configure() {
	l.pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	l.pin.Low()
}

func (l *ledIndicator) Set(high bool) { l.pin.Set(high) }

func (l *ledIndicator) Get() bool { return l.pin.Get() }

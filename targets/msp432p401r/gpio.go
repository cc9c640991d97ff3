//go:build msp432p401r

package main

import (
	"hbridge/core"
)

const switchMask = 0x0F

// p4Switches drives the bridge gates on P4.0-P4.3.
type p4Switches struct{}

func newP4Switches(claims *core.Claims) *p4Switches {
	claims.MustClaim(core.PeripheralSwitches)
	return &p4Switches{}
}

func (p p4Switches) Configure() {
	reg8(P4DIR).SetBits(switchMask)
	p.Write(core.SwitchesOff)
}

// Write replaces the low nibble of P4OUT in a single store.
func (p4Switches) Write(w core.SwitchWord) {
	out := reg8(P4OUT)
	out.Set(out.Get()&^switchMask | uint8(w)&switchMask)
}

// p1Indicator is the LED on P1.0.
type p1Indicator struct{}

func newP1Indicator(claims *core.Claims) *p1Indicator {
	claims.MustClaim(core.PeripheralIndicator)
	return &p1Indicator{}
}

func (p p1Indicator) Configure() {
	reg8(P1DIR).SetBits(0x01)
	p.Set(false)
}

func (p1Indicator) Set(high bool) {
	if high {
		reg8(P1OUT).SetBits(0x01)
	} else {
		reg8(P1OUT).ClearBits(0x01)
	}
}

func (p1Indicator) Get() bool {
	return reg8(P1OUT).HasBits(0x01)
}

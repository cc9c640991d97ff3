//go:build msp432p401r

package main

import (
	"runtime/volatile"

	"hbridge/core"
)

// spinDelay busy-waits on volatile reads. Each iteration takes at least one
// cycle, so the delay never comes up short.
type spinDelay struct{}

func newSpinDelay(claims *core.Claims) *spinDelay {
	claims.MustClaim(core.PeripheralDelay)
	return &spinDelay{}
}

func (spinDelay) DelayCycles(cycles uint32) {
	var dummy volatile.Register32
	for i := uint32(0); i < cycles; i++ {
		dummy.Get()
	}
}

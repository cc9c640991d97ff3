//go:build tinygo

package core

import "runtime/interrupt"

type interruptState = interrupt.State

// disableInterrupts masks interrupts and returns the previous state
func disableInterrupts() interruptState {
	return interrupt.Disable()
}

// restoreInterrupts restores the saved interrupt state
func restoreInterrupts(state interruptState) {
	interrupt.Restore(state)
}

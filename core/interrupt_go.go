//go:build !tinygo

package core

// interruptState stands in for the saved PRIMASK on host builds.
type interruptState uintptr

// disableInterrupts does nothing on host builds: the simulator delivers
// interrupts on the caller's goroutine, so nothing can preempt the reader.
func disableInterrupts() interruptState {
	return 0
}

// restoreInterrupts does nothing on host builds.
func restoreInterrupts(interruptState) {}

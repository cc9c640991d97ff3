package core

// FreqToTicks returns how many operatingHz clock ticks elapse in one period
// of targetHz. The ratio of the two periods (1/target) / (1/operating)
// reduces to operating/target, so plain integer division gives the exact
// floor without any floating point drift.
//
// targetHz must be non-zero.
func FreqToTicks(targetHz, operatingHz uint32) uint32 {
	if targetHz == 0 {
		panic("core: zero target frequency")
	}
	return operatingHz / targetHz
}

// HalfCycleTicks returns the timer period for one half-cycle of the output.
// Two switching events make one output cycle, so the timer runs at twice
// the target frequency.
func HalfCycleTicks(p Profile) uint32 {
	return FreqToTicks(2*p.TargetHz, p.TimerClock())
}

package core

// FaultSink is the terminal state for every boot fault: it blinks the
// indicator forever.
type FaultSink struct {
	indicator   OutputPin
	delay       Delayer
	blinkCycles uint32
}

// NewFaultSink returns a sink that toggles indicator every blinkCycles CPU
// cycles. A zero period falls back to BlinkCycles so the blink stays
// visible even when the profile that failed validation supplied it.
func NewFaultSink(indicator OutputPin, d Delayer, blinkCycles uint32) *FaultSink {
	if blinkCycles == 0 {
		blinkCycles = BlinkCycles
	}
	return &FaultSink{
		indicator:   indicator,
		delay:       d,
		blinkCycles: blinkCycles,
	}
}

// Halt reports cause on the debug writer and blinks the indicator. It never
// returns.
func (f *FaultSink) Halt(cause error) {
	RecordTiming(EvtFault, 0, 0, f.blinkCycles, 0)
	if cause != nil {
		DebugPrintln("[FAULT] " + cause.Error())
	}

	f.indicator.Configure()
	for {
		f.indicator.Set(!f.indicator.Get())
		f.delay.DelayCycles(f.blinkCycles)
	}
}

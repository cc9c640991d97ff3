package core

// TickLimit is the largest period accepted for the 16-bit period register,
// kept under 0xFFFF as a safety margin.
const TickLimit = 65000

// ConfigureTimer programs t for one interrupt every ticks timer ticks,
// enables its line at ic and starts it with cfg. Out-of-range tick counts
// are rejected before any register is written; a divider the timer cannot
// apply leaves it stopped.
func ConfigureTimer(t PeriodicTimer, ic InterruptController, ticks uint32, cfg TimerConfig) error {
	if ticks == 0 || ticks > TickLimit {
		return ErrTickCountOutOfRange
	}

	t.SetPeriod(uint16(ticks))
	ic.EnableIRQ(t.IRQ())
	if err := t.Start(cfg); err != nil {
		return err
	}

	RecordTiming(EvtTimerArmed, 0, 0, ticks, cfg.Divider)
	return nil
}

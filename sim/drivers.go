package sim

import (
	"hbridge/core"
)

// clockDriver simulates PCM, FLCTL and CS.
type clockDriver struct {
	b *Board
}

func (d *clockDriver) PowerState() core.PowerState {
	return d.b.power
}

func (d *clockDriver) TransitionBusy() bool {
	if d.b.faults.StuckBusy {
		return true
	}
	if d.b.busyPolls > 0 {
		d.b.busyPolls--
		return true
	}
	return false
}

func (d *clockDriver) RequestPowerState(s core.PowerState) {
	b := d.b
	b.log(core.PeripheralPower, "PCMCTL0", core.ClockKey<<16|uint32(s))
	b.busyPolls = transitionPolls

	switch {
	case b.faults.InvalidTransition:
		b.invalidIFG = true
	case b.faults.WrongResultState:
		b.power = core.PowerAM1DCDC
	default:
		b.power = s
	}
}

func (d *clockDriver) TransitionInvalid() bool {
	return d.b.invalidIFG
}

func (d *clockDriver) SetFlashWaitStates(bank core.FlashBank, waits uint8) {
	reg := "FLCTL_BANK0_RDCTL"
	if bank == core.FlashBank1 {
		reg = "FLCTL_BANK1_RDCTL"
	}
	d.b.log(core.PeripheralFlash, reg, uint32(waits)<<12)
	d.b.waitStates[bank] = waits
}

func (d *clockDriver) UnlockClocks(key uint16) {
	d.b.log(core.PeripheralClockSystem, "CSKEY", uint32(key))
	d.b.csUnlocked = key == core.ClockKey
}

// csWrite logs a clock system write and reports whether it took effect.
func (d *clockDriver) csWrite(reg string, value uint32) bool {
	d.b.log(core.PeripheralClockSystem, reg, value)
	if !d.b.csUnlocked {
		d.b.lockViolations++
		return false
	}
	return true
}

func (d *clockDriver) ResetDCOTuning() {
	d.csWrite("CSCTL0", 0)
}

func (d *clockDriver) SetDCORange(r core.DCORange) {
	if d.csWrite("CSCTL0", uint32(r)<<16) {
		d.b.dcoRange = r
	}
}

func (d *clockDriver) SelectMasterClock(src core.ClockSource, div core.ClockDivider) {
	if d.csWrite("CSCTL1", uint32(src)|uint32(div)<<16) {
		d.b.mclkSource = src
		d.b.mclkDivider = div
	}
}

func (d *clockDriver) LockClocks() {
	d.b.log(core.PeripheralClockSystem, "CSKEY", 0)
	d.b.csUnlocked = false
}

// timerDriver simulates Timer_A1.
type timerDriver struct {
	b *Board
}

func (d *timerDriver) IRQ() core.IRQ {
	return IRQTA1N
}

func (d *timerDriver) SetPeriod(ticks uint16) {
	d.b.log(core.PeripheralTimer, "TA1CCR0", uint32(ticks))
	d.b.period = ticks
}

func (d *timerDriver) Start(cfg core.TimerConfig) error {
	id, ok := core.TimerADivider(cfg.Divider)
	if !ok {
		return core.ErrUnsupportedDivider
	}

	b := d.b
	b.log(core.PeripheralTimer, "TA1CTL", uint32(cfg.Source)<<8|uint32(id)<<6|uint32(cfg.Mode)<<4)
	b.timerCfg = cfg

	b.sched.remove(&b.expiry)
	b.timerActive = cfg.Mode != core.CountStop && b.period != 0
	if !b.timerActive {
		return nil
	}
	b.expiry = event{wake: b.cycles + b.periodCycles(), handler: b.timerExpired}
	b.sched.add(&b.expiry)
	return nil
}

func (d *timerDriver) ClearInterrupt() {
	d.b.log(core.PeripheralTimer, "TA1IV", 0)
	d.b.pending = false
}

// nvicDriver simulates the NVIC and PRIMASK.
type nvicDriver struct {
	b *Board
}

func (d *nvicDriver) EnableIRQ(irq core.IRQ) {
	d.b.log(core.PeripheralInterrupts, "NVIC_ISER", 1<<(irq&31))
	d.b.irqEnabled[irq>>5] |= 1 << (irq & 31)
	d.b.deliver()
}

func (d *nvicDriver) EnableInterrupts() {
	d.b.globalIRQ = true
	d.b.deliver()
}

func (d *nvicDriver) DisableInterrupts() {
	d.b.globalIRQ = false
}

// switchDriver simulates P4.0-P4.3.
type switchDriver struct {
	b *Board
}

func (d *switchDriver) Configure() {
	d.b.log(core.PeripheralSwitches, "P4DIR", 0x0F)
	d.b.switchesConfigured = true
	d.Write(core.SwitchesOff)
}

func (d *switchDriver) Write(w core.SwitchWord) {
	b := d.b
	b.log(core.PeripheralSwitches, "P4OUT", uint32(w))
	b.switches = w
	b.trace = append(b.trace, Sample{Cycle: b.cycles, Word: w})
}

// indicatorDriver simulates P1.0.
type indicatorDriver struct {
	b *Board
}

func (d *indicatorDriver) Configure() {
	d.b.log(core.PeripheralIndicator, "P1DIR", 0x01)
	d.b.indicatorConfigured = true
	d.Set(false)
}

func (d *indicatorDriver) Set(high bool) {
	b := d.b
	var v uint32
	if high {
		v = 1
	}
	b.log(core.PeripheralIndicator, "P1OUT", v)
	if high != b.indicator {
		b.indicatorToggles++
	}
	b.indicator = high
}

func (d *indicatorDriver) Get() bool {
	return d.b.indicator
}

// delayDriver advances the cycle counter.
type delayDriver struct {
	b *Board
}

func (d *delayDriver) DelayCycles(cycles uint32) {
	b := d.b
	b.cycles += uint64(cycles)
	if b.armed && b.cycles > b.deadline {
		panic(ErrHalted)
	}
}

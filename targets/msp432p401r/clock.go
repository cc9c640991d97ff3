//go:build msp432p401r

package main

import (
	"hbridge/core"
)

// pcmClock drives PCM, FLCTL and CS.
type pcmClock struct{}

func newPCMClock(claims *core.Claims) *pcmClock {
	claims.MustClaim(core.PeripheralPower)
	claims.MustClaim(core.PeripheralFlash)
	claims.MustClaim(core.PeripheralClockSystem)
	return &pcmClock{}
}

func (pcmClock) PowerState() core.PowerState {
	return core.PowerState((reg32(PCMCTL0).Get() & PCMCTL0_CPM_Msk) >> PCMCTL0_CPM_Pos)
}

func (pcmClock) TransitionBusy() bool {
	return reg32(PCMCTL1).HasBits(PCMCTL1_PMR_BUSY)
}

// RequestPowerState writes AMR under the PCM key, keeping the low-power mode
// request bits.
func (pcmClock) RequestPowerState(s core.PowerState) {
	ctl := reg32(PCMCTL0)
	v := ctl.Get() &^ (0xFFFF0000 | PCMCTL0_AMR_Msk)
	ctl.Set(core.ClockKey<<PCMCTL0_KEY_Pos | v | uint32(s)&PCMCTL0_AMR_Msk)
}

func (pcmClock) TransitionInvalid() bool {
	return reg32(PCMIFG).HasBits(PCMIFG_AM_INVALID)
}

func (pcmClock) SetFlashWaitStates(bank core.FlashBank, waits uint8) {
	addr := uintptr(FLCTL_BANK0_RDCTL)
	if bank == core.FlashBank1 {
		addr = FLCTL_BANK1_RDCTL
	}
	reg32(addr).ReplaceBits(uint32(waits), FLCTL_RDCTL_WAIT_Msk>>FLCTL_RDCTL_WAIT_Pos, FLCTL_RDCTL_WAIT_Pos)
}

func (pcmClock) UnlockClocks(key uint16) {
	reg32(CSKEY).Set(uint32(key))
}

func (pcmClock) ResetDCOTuning() {
	reg32(CSCTL0).Set(0)
}

func (pcmClock) SetDCORange(r core.DCORange) {
	reg32(CSCTL0).Set(uint32(r) << CSCTL0_DCORSEL_Pos)
}

func (pcmClock) SelectMasterClock(src core.ClockSource, div core.ClockDivider) {
	ctl := reg32(CSCTL1)
	v := ctl.Get() &^ (CSCTL1_SELM_Msk | CSCTL1_DIVM_Msk)
	ctl.Set(v | uint32(src)&CSCTL1_SELM_Msk | uint32(div)<<CSCTL1_DIVM_Pos)
}

func (pcmClock) LockClocks() {
	reg32(CSKEY).Set(0)
}

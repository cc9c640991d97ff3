package core

// PowerState is the active-mode power state reported by the power control
// module (PCMCTL0.CPM).
type PowerState uint8

const (
	PowerAM0LDO  PowerState = 0x00
	PowerAM1LDO  PowerState = 0x01
	PowerAM0DCDC PowerState = 0x04
	PowerAM1DCDC PowerState = 0x05
	PowerAM0LF   PowerState = 0x08
	PowerAM1LF   PowerState = 0x09
)

func (s PowerState) String() string {
	switch s {
	case PowerAM0LDO:
		return "AM0_LDO"
	case PowerAM1LDO:
		return "AM1_LDO"
	case PowerAM0DCDC:
		return "AM0_DCDC"
	case PowerAM1DCDC:
		return "AM1_DCDC"
	case PowerAM0LF:
		return "AM0_LF"
	case PowerAM1LF:
		return "AM1_LF"
	default:
		return "CPM_" + utoa(uint32(s))
	}
}

// FlashBank selects one of the two flash banks.
type FlashBank uint8

const (
	FlashBank0 FlashBank = iota
	FlashBank1
)

// DCORange is the DCO frequency range select (CSCTL0.DCORSEL).
type DCORange uint8

const (
	DCORange1_5MHz DCORange = iota
	DCORange3MHz
	DCORange6MHz
	DCORange12MHz
	DCORange24MHz
	DCORange48MHz
)

// ClockSource is a master clock source select (CSCTL1.SELM).
type ClockSource uint8

const (
	ClockSourceLFXT ClockSource = iota
	ClockSourceVLO
	ClockSourceREFO
	ClockSourceDCO
	ClockSourceMOD
	ClockSourceHFXT
)

// ClockDivider is a master clock divider select (CSCTL1.DIVM).
type ClockDivider uint8

const (
	ClockDivide1 ClockDivider = iota
	ClockDivide2
	ClockDivide4
	ClockDivide8
	ClockDivide16
	ClockDivide32
	ClockDivide64
	ClockDivide128
)

// ClockKey unlocks both the power control and the clock system register
// interfaces.
const ClockKey = 0x695A

// ClockControl is the abstract interface to the power control module, the
// flash controller read timing and the clock system.
type ClockControl interface {
	// PowerState reports the current power state.
	PowerState() PowerState

	// TransitionBusy reports whether a power state transition is in flight.
	TransitionBusy() bool

	// RequestPowerState starts a transition to s.
	RequestPowerState(s PowerState)

	// TransitionInvalid reports the invalid-transition fault flag.
	TransitionInvalid() bool

	// SetFlashWaitStates programs the read wait-states of one bank.
	SetFlashWaitStates(bank FlashBank, waits uint8)

	// UnlockClocks opens the clock system registers for writing.
	UnlockClocks(key uint16)

	// ResetDCOTuning clears the DCO tuning parameters.
	ResetDCOTuning()

	// SetDCORange selects the DCO frequency range.
	SetDCORange(r DCORange)

	// SelectMasterClock routes src to MCLK through div.
	SelectMasterClock(src ClockSource, div ClockDivider)

	// LockClocks closes the clock system registers.
	LockClocks()
}

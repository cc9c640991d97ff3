//go:build rp2040

package main

import (
	"machine"

	"hbridge/core"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

// PIO program that drives the four gate lines. Every word pulled from the
// FIFO first forces all lines low for the hardware dead-time, then applies
// the low nibble, so no two patterns can ever meet without a gap:
//
//	.wrap_target
//	pull block
//	set pins, 0 [deadTime]
//	out pins, 4
//	.wrap
func buildBridgeProgram(deadTime uint8) []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		asm.Pull(false, true).Encode(),                          // 0: pull block
		asm.Set(rp2pio.SetDestPins, 0).Delay(deadTime).Encode(), // 1: set pins, 0 [dead]
		asm.Out(rp2pio.OutDestPins, 4).Encode(),                 // 2: out pins, 4
	}
}

const (
	bridgePIOOrigin = 0
	// Maximum instruction delay: 32 PIO cycles, 256 ns at 125 MHz.
	bridgeDeadTime = 31
)

// pioBridge implements core.SwitchPort on a PIO state machine driving four
// consecutive pins.
type pioBridge struct {
	pio  *rp2pio.PIO
	sm   rp2pio.StateMachine
	base machine.Pin
}

func newPIOBridge(claims *core.Claims, base machine.Pin) *pioBridge {
	claims.MustClaim(core.PeripheralSwitches)
	return &pioBridge{
		pio:  rp2pio.PIO0,
		sm:   rp2pio.PIO0.StateMachine(0),
		base: base,
	}
}

func (b *pioBridge) Configure() {
	b.sm.TryClaim()

	program := buildBridgeProgram(bridgeDeadTime)
	offset, err := b.pio.AddProgram(program, bridgePIOOrigin)
	if err != nil {
		// Origin 0 on a fresh PIO block cannot collide.
		panic(err)
	}

	for i := machine.Pin(0); i < 4; i++ {
		(b.base + i).Configure(machine.PinConfig{Mode: b.pio.PinMode()})
	}

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetSetPins(b.base, 4)
	cfg.SetOutPins(b.base, 4)
	cfg.SetOutShift(true, false, 32)
	cfg.SetWrap(offset+uint8(len(program))-1, offset)
	cfg.SetClkDivIntFrac(1, 0)
	b.sm.Init(offset, cfg)

	b.sm.SetPinsConsecutive(b.base, 4, false)
	b.sm.SetPindirsConsecutive(b.base, 4, true)
	b.sm.SetEnabled(true)

	b.Write(core.SwitchesOff)
}

func (b *pioBridge) Write(w core.SwitchWord) {
	for b.sm.IsTxFIFOFull() {
	}
	b.sm.TxPut(uint32(w))
}

//go:build msp432p401r

package main

import (
	"runtime/volatile"
	"unsafe"
)

// Peripheral base addresses (MSP432P401R datasheet, table 6-21).
const (
	PCM_BASE   = 0x40010000
	CS_BASE    = 0x40010400
	FLCTL_BASE = 0x40011000
	TA1_BASE   = 0x40000400
	WDT_BASE   = 0x40004800
	PA_BASE    = 0x40004C00 // P1/P2
	PB_BASE    = 0x40004C20 // P3/P4
	NVIC_BASE  = 0xE000E100
)

// Register addresses.
const (
	PCMCTL0   = PCM_BASE + 0x00
	PCMCTL1   = PCM_BASE + 0x04
	PCMIFG    = PCM_BASE + 0x0C
	PCMCLRIFG = PCM_BASE + 0x10

	CSKEY  = CS_BASE + 0x00
	CSCTL0 = CS_BASE + 0x04
	CSCTL1 = CS_BASE + 0x08

	FLCTL_BANK0_RDCTL = FLCTL_BASE + 0x10
	FLCTL_BANK1_RDCTL = FLCTL_BASE + 0x14

	TA1CTL  = TA1_BASE + 0x00
	TA1CCR0 = TA1_BASE + 0x12
	TA1IV   = TA1_BASE + 0x2E

	WDTCTL = WDT_BASE + 0x0C

	P1OUT = PA_BASE + 0x02
	P1DIR = PA_BASE + 0x04
	P4OUT = PB_BASE + 0x03
	P4DIR = PB_BASE + 0x05

	NVIC_ISER0 = NVIC_BASE + 0x00
)

// Field layouts.
const (
	PCMCTL0_AMR_Msk   = 0x0000000F
	PCMCTL0_CPM_Pos   = 8
	PCMCTL0_CPM_Msk   = 0x00003F00
	PCMCTL0_KEY_Pos   = 16
	PCMCTL1_PMR_BUSY  = 1 << 8
	PCMIFG_AM_INVALID = 1 << 2

	CSCTL0_DCORSEL_Pos = 16
	CSCTL1_SELM_Msk    = 0x00000007
	CSCTL1_DIVM_Pos    = 16
	CSCTL1_DIVM_Msk    = 0x00070000

	FLCTL_RDCTL_WAIT_Pos = 12
	FLCTL_RDCTL_WAIT_Msk = 0x0000F000

	TACTL_TAIFG      = 1 << 0
	TACTL_TAIE       = 1 << 1
	TACTL_TACLR      = 1 << 2
	TACTL_MC_Pos     = 4
	TACTL_ID_Pos     = 6
	TACTL_TASSEL_Pos = 8

	WDTPW   = 0x5A00
	WDTHOLD = 0x0080
)

// INT_TA1_N is exception 27; the NVIC line is that minus the 16 core
// exceptions.
const irqTA1N = 27 - 16

func reg8(addr uintptr) *volatile.Register8 {
	return (*volatile.Register8)(unsafe.Pointer(addr))
}

func reg16(addr uintptr) *volatile.Register16 {
	return (*volatile.Register16)(unsafe.Pointer(addr))
}

func reg32(addr uintptr) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(addr))
}

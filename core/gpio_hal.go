package core

// SwitchWord is the level of the four bridge switch-control lines, one bit
// per switch:
//
//	1   0
//	  L
//	3   2
//
// Bits 0 and 1 drive the high-side switches, bits 2 and 3 the low side.
type SwitchWord uint8

// SwitchPort is the abstract output port wired to the bridge gate drivers.
// Platform-specific implementations handle the actual registers.
type SwitchPort interface {
	// Configure makes the four lines outputs and drives them all low.
	Configure()

	// Write drives all four lines at once.
	Write(w SwitchWord)
}

// OutputPin is a single discrete output. The indicator pin doubles as the
// polarity flag, so it must read back the level last written.
type OutputPin interface {
	// Configure makes the pin an output and drives it low.
	Configure()

	// Set drives the pin high (true) or low (false).
	Set(high bool)

	// Get returns the level the pin is currently driving.
	Get() bool
}

// Delayer blocks the caller for a number of CPU clock cycles.
type Delayer interface {
	DelayCycles(cycles uint32)
}

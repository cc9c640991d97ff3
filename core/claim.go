package core

// Peripheral identifies a register block owned by one capability driver.
type Peripheral uint8

const (
	PeripheralPower Peripheral = iota
	PeripheralFlash
	PeripheralClockSystem
	PeripheralTimer
	PeripheralInterrupts
	PeripheralSwitches
	PeripheralIndicator
	PeripheralDelay
)

// Claims records which peripherals have been handed out. Drivers claim their
// register blocks when they are constructed, so two drivers can never share
// one.
type Claims struct {
	mask uint32
}

// Claim marks p as owned. It fails if p was already claimed.
func (c *Claims) Claim(p Peripheral) error {
	bit := uint32(1) << p
	if c.mask&bit != 0 {
		return ErrPeripheralClaimed
	}
	c.mask |= bit
	return nil
}

// MustClaim is Claim for board bring-up code, where a double claim is a
// wiring bug.
func (c *Claims) MustClaim(p Peripheral) {
	if err := c.Claim(p); err != nil {
		panic("peripheral " + utoa(uint32(p)) + " already claimed")
	}
}

// Claimed reports whether p is owned.
func (c *Claims) Claimed(p Peripheral) bool {
	return c.mask&(uint32(1)<<p) != 0
}

package core

// Error is a constant error value reported by the inverter core.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrUnexpectedPowerState = Error("unexpected power state")
	ErrInvalidTransition    = Error("invalid power state transition")
	ErrTransitionTimeout    = Error("power state transition timed out")
	ErrTickCountOutOfRange  = Error("timer tick count out of range")
	ErrInvalidProfile       = Error("invalid inverter profile")
	ErrPeripheralClaimed    = Error("peripheral already claimed")
	ErrUnsupportedDivider   = Error("timer divider not supported")
)

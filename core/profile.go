package core

// Operating point of the MSP432P401R build.
const (
	TargetFreq      = 60       // output waveform frequency in Hz
	OperatingFreq   = 48000000 // MCLK and SMCLK once the DCO is selected
	TimerDivider    = 8        // Timer_A input divider (ID__8)
	DeadTimeCycles  = 4        // all-off gap between pairs, in CPU cycles
	BlinkCycles     = 3100000  // fault indicator half-period, in CPU cycles
	TransitionPolls = 100000   // busy-wait cap for a power state transition
)

// Profile holds the compiled-in constants the inverter runs with.
type Profile struct {
	TargetHz        uint32
	OperatingHz     uint32
	TimerDivider    uint32
	DeadTimeCycles  uint32
	BlinkCycles     uint32
	TransitionPolls uint32
}

// DefaultProfile returns the MSP432P401R operating point.
func DefaultProfile() Profile {
	return Profile{
		TargetHz:        TargetFreq,
		OperatingHz:     OperatingFreq,
		TimerDivider:    TimerDivider,
		DeadTimeCycles:  DeadTimeCycles,
		BlinkCycles:     BlinkCycles,
		TransitionPolls: TransitionPolls,
	}
}

// TimerClock returns the timer input frequency after the divider.
func (p Profile) TimerClock() uint32 {
	if p.TimerDivider == 0 {
		return 0
	}
	return p.OperatingHz / p.TimerDivider
}

// TimerConfig returns the timer setup used for the half-cycle interrupt.
func (p Profile) TimerConfig() TimerConfig {
	return TimerConfig{
		Source:            TimerSourceSMCLK,
		Divider:           p.TimerDivider,
		Mode:              CountUp,
		OverflowInterrupt: true,
	}
}

// CyclesToNS converts CPU cycles at the operating clock to nanoseconds.
func (p Profile) CyclesToNS(cycles uint32) uint32 {
	if p.OperatingHz == 0 {
		return 0
	}
	return uint32(uint64(cycles) * 1000000000 / uint64(p.OperatingHz))
}

// CyclesToUS converts CPU cycles at the operating clock to microseconds.
func (p Profile) CyclesToUS(cycles uint32) uint32 {
	if p.OperatingHz == 0 {
		return 0
	}
	return uint32(uint64(cycles) * 1000000 / uint64(p.OperatingHz))
}

// ProfileError reports the profile field that failed validation.
type ProfileError struct {
	Field string
}

func (e *ProfileError) Error() string {
	return string(ErrInvalidProfile) + ": " + e.Field
}

func (e *ProfileError) Unwrap() error {
	return ErrInvalidProfile
}

// Validate checks the relations the switching logic depends on. The timer
// clock must exceed twice the target frequency so that both half-cycle
// events of one output period get at least one tick each.
func (p Profile) Validate() error {
	switch {
	case p.TargetHz == 0:
		return &ProfileError{Field: "target_hz"}
	case p.TimerDivider == 0:
		return &ProfileError{Field: "timer_divider"}
	case uint64(p.TimerClock()) <= 2*uint64(p.TargetHz):
		return &ProfileError{Field: "operating_hz"}
	case p.DeadTimeCycles == 0:
		return &ProfileError{Field: "dead_time_cycles"}
	case p.BlinkCycles == 0:
		return &ProfileError{Field: "blink_cycles"}
	case p.TransitionPolls == 0:
		return &ProfileError{Field: "transition_polls"}
	}
	return nil
}

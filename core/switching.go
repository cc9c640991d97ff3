package core

// Switch patterns. Exactly one diagonal pair conducts at a time.
const (
	SwitchesOff  SwitchWord = 0x00
	PositivePair SwitchWord = 0x06 // switches 1 and 2: load driven positive
	NegativePair SwitchWord = 0x09 // switches 0 and 3: load driven negative

	switchMask SwitchWord = 0x0F
)

// Valid reports whether w is all off or exactly one diagonal pair. Any other
// word shorts a bridge leg.
func (w SwitchWord) Valid() bool {
	return w == SwitchesOff || w == PositivePair || w == NegativePair
}

// Overlaps reports whether w has lines from both diagonal pairs set.
func (w SwitchWord) Overlaps() bool {
	return w&PositivePair != 0 && w&NegativePair != 0
}

func (w SwitchWord) String() string {
	switch w {
	case SwitchesOff:
		return "off"
	case PositivePair:
		return "positive"
	case NegativePair:
		return "negative"
	default:
		return "invalid(" + hex8(uint8(w&switchMask)) + ")"
	}
}

// SwitchState is a foreground copy of the switching state machine.
type SwitchState struct {
	HalfCycles uint32     // interrupts handled so far
	Last       SwitchWord // pattern energized by the last interrupt
	Negative   bool       // polarity the next interrupt will energize
}

// Switcher alternates the bridge between the two diagonal pairs, one
// half-cycle per timer interrupt. Only the interrupt context mutates it.
type Switcher struct {
	timer    PeriodicTimer
	switches SwitchPort
	polarity OutputPin
	delay    Delayer
	deadTime uint32

	halfCycles uint32
	last       SwitchWord
}

// NewSwitcher returns a switcher that keeps its polarity flag in the level
// of the polarity pin.
func NewSwitcher(t PeriodicTimer, sw SwitchPort, polarity OutputPin, d Delayer, deadTimeCycles uint32) *Switcher {
	return &Switcher{
		timer:    t,
		switches: sw,
		polarity: polarity,
		delay:    d,
		deadTime: deadTimeCycles,
	}
}

// HandleInterrupt is the timer interrupt handler. Every invocation passes
// through the all-off state for the dead-time before energizing the pair
// selected by the polarity flag, then flips the flag.
func (s *Switcher) HandleInterrupt() {
	s.timer.ClearInterrupt()

	s.switches.Write(SwitchesOff)
	s.delay.DelayCycles(s.deadTime)

	negative := s.polarity.Get()
	next := PositivePair
	if negative {
		next = NegativePair
	}
	s.switches.Write(next)

	s.polarity.Set(!negative)

	s.last = next
	s.halfCycles++
	RecordTiming(EvtEnergize, uint8(next), s.halfCycles, s.deadTime, 0)
}

// Snapshot copies the switching state with interrupts masked.
func (s *Switcher) Snapshot() SwitchState {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	return SwitchState{
		HalfCycles: s.halfCycles,
		Last:       s.last,
		Negative:   s.polarity.Get(),
	}
}

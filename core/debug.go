package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// TimingEvent captures one inverter event for post-mortem analysis
type TimingEvent struct {
	EventType uint8  // Event type code
	Pattern   uint8  // Switch word or clock state, depending on EventType
	Count     uint32 // Half-cycle count at the event
	Value1    uint32 // Context-dependent value
	Value2    uint32 // Context-dependent value
}

// Event type codes
const (
	EvtEnergize   = 1 // Diagonal pair energized after dead-time
	EvtClockStep  = 2 // Clock configurator changed state
	EvtTimerArmed = 3 // Half-cycle timer started
	EvtFault      = 4 // Fault sink entered
)

const (
	TimingRingSize = 32 // Keep last 32 events for post-mortem
)

var (
	// debugPrintln is the global debug print function (set by platform code)
	debugPrintln DebugWriter = func(s string) {}

	// Timing capture ring buffer (non-blocking, written from the interrupt
	// handler and from boot code before interrupts are enabled)
	timingRing     [TimingRingSize]TimingEvent
	timingRingHead uint8
)

// SetDebugWriter sets the platform-specific debug output function
func SetDebugWriter(writer DebugWriter) {
	if writer == nil {
		writer = func(s string) {}
	}
	debugPrintln = writer
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	debugPrintln(msg)
}

// RecordTiming captures an event in the ring buffer. Cheap enough for the
// interrupt handler: no allocation, no output.
func RecordTiming(eventType, pattern uint8, count, value1, value2 uint32) {
	idx := timingRingHead
	timingRing[idx] = TimingEvent{
		EventType: eventType,
		Pattern:   pattern,
		Count:     count,
		Value1:    value1,
		Value2:    value2,
	}
	timingRingHead = (idx + 1) % TimingRingSize
}

// TimingEvents returns the recorded events, oldest first.
func TimingEvents() []TimingEvent {
	events := make([]TimingEvent, 0, TimingRingSize)
	start := timingRingHead
	for i := uint8(0); i < TimingRingSize; i++ {
		evt := timingRing[(start+i)%TimingRingSize]
		if evt.EventType == 0 {
			continue // Empty slot
		}
		events = append(events, evt)
	}
	return events
}

// DumpTimingRing writes the timing ring to the debug writer, oldest first.
// Call it from the foreground, never from the interrupt handler.
func DumpTimingRing() {
	debugPrintln("[TIMING] === Timing Ring Dump ===")
	for _, evt := range TimingEvents() {
		var name, detail string
		switch evt.EventType {
		case EvtEnergize:
			name = "ENERGIZE"
			detail = " pattern=" + SwitchWord(evt.Pattern).String() +
				" dead=" + utoa(evt.Value1)
		case EvtClockStep:
			name = "CLOCK"
			detail = " state=" + ClockState(evt.Pattern).String() +
				" v1=" + utoa(evt.Value1)
		case EvtTimerArmed:
			name = "TIMER_ARMED"
			detail = " ticks=" + utoa(evt.Value1) + " div=" + utoa(evt.Value2)
		case EvtFault:
			name = "FAULT!"
			detail = " blink=" + utoa(evt.Value1)
		default:
			name = "UNKNOWN"
		}
		debugPrintln("[TIMING] " + name + " n=" + utoa(evt.Count) + detail)
	}
	debugPrintln("[TIMING] === End Dump ===")
}

// ClearTimingRing clears the timing buffer
func ClearTimingRing() {
	for i := range timingRing {
		timingRing[i] = TimingEvent{}
	}
	timingRingHead = 0
}

package sim

// event is a scheduled action on the simulated cycle clock
type event struct {
	wake    uint64
	handler func(*event) uint8
	next    *event
}

const (
	evDone       = 0
	evReschedule = 1
)

// scheduler keeps pending events sorted by wake cycle
type scheduler struct {
	list *event
}

// add inserts e in sorted order by wake cycle
func (s *scheduler) add(e *event) {
	if s.list == nil || e.wake < s.list.wake {
		e.next = s.list
		s.list = e
		return
	}

	current := s.list
	for current.next != nil && current.next.wake <= e.wake {
		current = current.next
	}

	e.next = current.next
	current.next = e
}

// remove drops e if it is pending
func (s *scheduler) remove(e *event) {
	if s.list == e {
		s.list = e.next
		e.next = nil
		return
	}
	for current := s.list; current != nil; current = current.next {
		if current.next == e {
			current.next = e.next
			e.next = nil
			return
		}
	}
}

// dispatch runs every event due at or before until, in wake order. now is
// moved forward to each event's wake cycle before its handler runs.
func (s *scheduler) dispatch(now *uint64, until uint64) {
	for s.list != nil && s.list.wake <= until {
		e := s.list
		s.list = e.next
		e.next = nil

		if e.wake > *now {
			*now = e.wake
		}

		if e.handler(e) == evReschedule {
			s.add(e)
		}
	}
}

package core

// Batch folds the events collected during one frame into s.
//
// A paused or finished game only accepts Restart, Pause and Connect, in
// arrival order. Otherwise events are applied in a fixed order: every Pause,
// one Tick, the remaining input events in arrival order, one LockDelay of a
// frame's length, every GarbageOut, then every Restart. Gravity and locking
// thus always resolve before garbage, and garbage before a restart.
func Batch(r Rules, s State, events []Event) State {
	if s.Halted() {
		for _, e := range events {
			switch e.(type) {
			case Restart, Pause, Connect:
				s = Apply(r, s, e)
			}
		}
		return s
	}

	for _, e := range Order(r, events) {
		s = Apply(r, s, e)
	}
	return s
}

// Order returns the events of one live frame in application order, including
// the synthesized Tick and LockDelay.
func Order(r Rules, events []Event) []Event {
	var pauses, inputs, garbage, restarts []Event
	for _, e := range events {
		switch e.(type) {
		case Pause:
			pauses = append(pauses, e)
		case GarbageOut:
			garbage = append(garbage, e)
		case Restart:
			restarts = append(restarts, e)
		default:
			inputs = append(inputs, e)
		}
	}

	ordered := make([]Event, 0, len(events)+2)
	ordered = append(ordered, pauses...)
	ordered = append(ordered, Tick{})
	ordered = append(ordered, inputs...)
	ordered = append(ordered, LockDelay{Elapsed: r.Frame})
	ordered = append(ordered, garbage...)
	ordered = append(ordered, restarts...)
	return ordered
}

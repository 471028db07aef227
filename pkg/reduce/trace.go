package reduce

import "github.com/vic/tromp/pkg/lambda"

// Event records one contracted redex.
type Event struct {
	Step int
	// Path locates the redex from the root: L is the function side of an
	// application, R its argument, B the body of an abstraction.
	Path  string
	Redex lambda.Term
}

// Stats summarizes a reduction run.
type Stats struct {
	Steps    int
	PeakSize int
}

// eventLog keeps the first capacity events of a run. It belongs to a single
// Run call.
type eventLog struct {
	buf []Event
	cap int
}

func newEventLog(capacity int) *eventLog {
	if capacity < 0 {
		capacity = 0
	}
	return &eventLog{cap: capacity}
}

func (l *eventLog) record(ev Event) {
	if len(l.buf) >= l.cap {
		return
	}
	l.buf = append(l.buf, ev)
}

func (l *eventLog) snapshot() []Event {
	if len(l.buf) == 0 {
		return nil
	}
	res := make([]Event, len(l.buf))
	copy(res, l.buf)
	return res
}

package service

import "sync"

// eventLocks serializes booking-side writes per event id. The gateway has
// no transactions or locking, so without this two concurrent Book calls
// can read the same remaining capacity, both pass the check and oversell
// the event. Serializing per event closes that lost-update window for a
// single back-office process; the locks are never released back to keep
// the structure simple (the event id space is small).
type eventLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newEventLocks() *eventLocks {
	return &eventLocks{locks: make(map[int64]*sync.Mutex)}
}

// lock acquires the mutex for the event id and returns its unlock func.
func (l *eventLocks) lock(eventID int64) func() {
	l.mu.Lock()
	m, ok := l.locks[eventID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[eventID] = m
	}
	l.mu.Unlock()
	m.Lock()
	return m.Unlock
}

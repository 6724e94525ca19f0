// Package schedule provides a single-threaded, tick-advanced task scheduler.
//
// Tasks never run on another goroutine: they fire inside Advance, on the
// caller's frame, in the order they were scheduled.
package schedule

import (
	"github.com/elliotchance/orderedmap/v2"
)

// Handle identifies a scheduled task. The zero Handle is never issued.
type Handle uint64

type task struct {
	remaining float64
	callback  func()
}

// Queue is a one-shot timer queue driven by elapsed simulation time
type Queue struct {
	nextID  Handle
	pending *orderedmap.OrderedMap[Handle, *task]
	now     float64
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{
		nextID:  1, // 0 is "no handle"
		pending: orderedmap.NewOrderedMap[Handle, *task](),
	}
}

// ScheduleOnce runs callback once after delaySeconds of advanced time.
// A non-positive delay fires on the next Advance.
func (q *Queue) ScheduleOnce(delaySeconds float64, callback func()) Handle {
	id := q.nextID
	q.nextID++
	if delaySeconds < 0 {
		delaySeconds = 0
	}
	q.pending.Set(id, &task{remaining: delaySeconds, callback: callback})
	return id
}

// CancelIfPending cancels the task if it has not fired yet.
// Returns true if a pending task was removed.
func (q *Queue) CancelIfPending(h Handle) bool {
	if h == 0 {
		return false
	}
	return q.pending.Delete(h)
}

// IsPending reports whether the task is still waiting to fire
func (q *Queue) IsPending(h Handle) bool {
	_, ok := q.pending.Get(h)
	return ok
}

// Pending returns the number of outstanding tasks
func (q *Queue) Pending() int {
	return q.pending.Len()
}

// Now returns the total advanced time in seconds
func (q *Queue) Now() float64 {
	return q.now
}

// Advance moves time forward by dt and fires every task that became due.
// Tasks scheduled by a firing callback wait for the next Advance.
func (q *Queue) Advance(dt float64) {
	if dt < 0 {
		dt = 0
	}
	q.now += dt

	var due []Handle
	for el := q.pending.Front(); el != nil; el = el.Next() {
		el.Value.remaining -= dt
		if el.Value.remaining <= 0 {
			due = append(due, el.Key)
		}
	}

	for _, id := range due {
		// An earlier callback in this batch may have cancelled it
		t, ok := q.pending.Get(id)
		if !ok {
			continue
		}
		q.pending.Delete(id)
		t.callback()
	}
}

// Package scheduler drives the timed events of an emulated machine in a
// deterministic order.
package scheduler

import (
	"container/heap"
	"context"

	"github.com/retroenv/retrodrivers/internal/attotime"
)

// events processed between two checks of the context.
const cancelCheckInterval = 4096

// Callback is called when a timer fires. param is the value the timer was
// last armed with.
type Callback func(param int)

// Timer is a one-shot or periodic event source owned by a scheduler.
type Timer struct {
	name   string
	cb     Callback
	param  int
	expire attotime.Time
	period attotime.Time

	enabled bool
	seq     uint64 // insertion order, tie breaker for equal expire times
	index   int    // heap index, -1 when not queued

	s *Scheduler
}

// Name returns the name the timer was created with.
func (t *Timer) Name() string {
	return t.name
}

// Enabled returns whether the timer is armed.
func (t *Timer) Enabled() bool {
	return t.enabled
}

// Expire returns the time of the next firing.
func (t *Timer) Expire() attotime.Time {
	return t.expire
}

// Adjust arms the timer to fire once after delay.
func (t *Timer) Adjust(delay attotime.Time, param int) {
	t.AdjustPeriodic(delay, attotime.Zero, param)
}

// AdjustPeriodic arms the timer to fire after delay and then every period.
// A zero period makes the timer one-shot.
func (t *Timer) AdjustPeriodic(delay, period attotime.Time, param int) {
	t.param = param
	t.period = period
	t.expire = t.s.now.Add(delay)
	t.enabled = true
	t.s.seq++
	t.seq = t.s.seq

	if t.index >= 0 {
		heap.Fix(&t.s.queue, t.index)
		return
	}
	heap.Push(&t.s.queue, t)
}

// Disable removes the timer from the queue.
func (t *Timer) Disable() {
	t.enabled = false
	if t.index >= 0 {
		heap.Remove(&t.s.queue, t.index)
	}
}

// Scheduler orders timers by expiry time. It is not safe for concurrent
// use; every machine instance owns its own scheduler.
type Scheduler struct {
	now   attotime.Time
	queue timerQueue
	seq   uint64
	fired uint64
}

// New returns a scheduler starting at time zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the current emulated time.
func (s *Scheduler) Now() attotime.Time {
	return s.now
}

// Fired returns the total number of timer callbacks executed.
func (s *Scheduler) Fired() uint64 {
	return s.fired
}

// NewTimer creates a disarmed timer.
func (s *Scheduler) NewTimer(name string, cb Callback) *Timer {
	return &Timer{
		name:  name,
		cb:    cb,
		index: -1,
		s:     s,
	}
}

// Periodic creates a timer that fires every period, the first time one
// period from now.
func (s *Scheduler) Periodic(name string, period attotime.Time, cb Callback) *Timer {
	t := s.NewTimer(name, cb)
	t.AdjustPeriodic(period, period, 0)
	return t
}

// RunFor advances emulated time by d.
func (s *Scheduler) RunFor(ctx context.Context, d attotime.Time) error {
	return s.RunUntil(ctx, s.now.Add(d))
}

// RunUntil fires every timer expiring at or before end, in expiry order.
// Timers with equal expiry fire in the order they were armed.
func (s *Scheduler) RunUntil(ctx context.Context, end attotime.Time) error {
	processed := 0
	for len(s.queue) > 0 {
		next := s.queue[0]
		if end.Before(next.expire) {
			break
		}

		processed++
		if processed%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		s.now = next.expire
		if next.period == attotime.Zero {
			heap.Pop(&s.queue)
			next.enabled = false
		} else {
			next.expire = next.expire.Add(next.period)
			s.seq++
			next.seq = s.seq
			heap.Fix(&s.queue, next.index)
		}

		s.fired++
		next.cb(next.param)
	}

	if s.now.Before(end) {
		s.now = end
	}
	return ctx.Err()
}

type timerQueue []*Timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	a, b := q[i], q[j]
	if a.expire != b.expire {
		return a.expire.Before(b.expire)
	}
	return a.seq < b.seq
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*Timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

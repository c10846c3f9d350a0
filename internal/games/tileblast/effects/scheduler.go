// Package effects schedules delayed detonations on a virtual clock.
//
// A user interaction opens with Begin and may fan out into any number of
// effects, each due after its own delay. Handlers may add further effects
// while running. When the last outstanding effect of an interaction has
// been handled, the drained callback fires exactly once with the
// interaction's commit id. The clock only moves when the host calls
// Advance or Drain, so the whole package is single-threaded.
package effects

import (
	"context"
	"time"

	"github.com/zyedidia/generic/heap"

	"github.com/vovakirdan/tileblast/internal/games/tileblast/board"
)

// Effect is one scheduled unit of work.
type Effect[T any] struct {
	Delay    time.Duration
	CommitID board.CommitID
	Data     T

	due  time.Duration
	seq  uint64
	done chan struct{}
}

// Due returns the virtual time at which the effect runs.
func (e *Effect[T]) Due() time.Duration {
	return e.due
}

// Done is closed once the effect's handler has returned.
func (e *Effect[T]) Done() <-chan struct{} {
	return e.done
}

// Handled reports whether the handler has run.
func (e *Effect[T]) Handled() bool {
	select {
	case <-e.done:
		return true
	default:
		return false
	}
}

// Handler runs an effect. It may call Scheduler.Add.
type Handler[T any] func(*Effect[T])

// DrainedFunc is called once when an interaction has no effects left.
type DrainedFunc func(board.CommitID)

// Scheduler runs effects in due order; ties run in insertion order.
type Scheduler[T any] struct {
	handler Handler[T]
	drained DrainedFunc

	now     time.Duration
	queue   *heap.Heap[*Effect[T]]
	seq     uint64
	running bool

	commit     board.CommitID // open interaction, 0 when idle
	lastCommit board.CommitID
}

// New creates a scheduler. drained may be nil.
func New[T any](handler Handler[T], drained DrainedFunc) *Scheduler[T] {
	return &Scheduler[T]{
		handler: handler,
		drained: drained,
		queue:   heap.New[*Effect[T]](before[T]),
	}
}

func before[T any](a, b *Effect[T]) bool {
	if a.due != b.due {
		return a.due < b.due
	}
	return a.seq < b.seq
}

// Now returns the virtual clock.
func (s *Scheduler[T]) Now() time.Duration {
	return s.now
}

// Pending returns the number of effects not yet handled.
func (s *Scheduler[T]) Pending() int {
	return s.queue.Size()
}

// Busy reports whether an interaction is open.
func (s *Scheduler[T]) Busy() bool {
	return s.commit != 0
}

// CommitID returns the open interaction's commit id, or 0.
func (s *Scheduler[T]) CommitID() board.CommitID {
	return s.commit
}

// Begin opens an interaction and returns its commit id. Calling Begin
// while an interaction is open returns the open id.
func (s *Scheduler[T]) Begin() board.CommitID {
	if s.commit == 0 {
		s.lastCommit++
		s.commit = s.lastCommit
	}
	return s.commit
}

// Add schedules data to be handled after delay. The effect counts as
// outstanding immediately, so adding from inside a handler keeps the
// interaction open. Add opens an interaction if none is open.
// Negative delays are treated as zero.
func (s *Scheduler[T]) Add(delay time.Duration, data T) *Effect[T] {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	e := &Effect[T]{
		Delay:    delay,
		CommitID: s.Begin(),
		Data:     data,
		due:      s.now + delay,
		seq:      s.seq,
		done:     make(chan struct{}),
	}
	s.queue.Push(e)
	return e
}

// Advance moves the clock forward by dt and runs every effect that falls
// due, including ones added by handlers along the way. It returns the
// number of handlers run. Calls made from inside a handler are ignored.
func (s *Scheduler[T]) Advance(dt time.Duration) int {
	if s.running {
		return 0
	}
	target := s.now + max(dt, 0)
	ran := 0
	for {
		next, ok := s.queue.Peek()
		if !ok || next.due > target {
			break
		}
		s.queue.Pop()
		s.run(next)
		ran++
	}
	s.now = target
	return ran
}

// Drain runs effects until none remain, jumping the clock to each due
// time. ctx is checked between handlers; on cancellation the remaining
// effects stay queued and ctx.Err() is returned.
func (s *Scheduler[T]) Drain(ctx context.Context) error {
	if s.running {
		return nil
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		next, ok := s.queue.Pop()
		if !ok {
			return nil
		}
		s.run(next)
	}
}

// Reset drops queued effects without running them, closes the open
// interaction and restarts commit ids and the clock.
func (s *Scheduler[T]) Reset() {
	s.queue = heap.New[*Effect[T]](before[T])
	s.now = 0
	s.seq = 0
	s.commit = 0
	s.lastCommit = 0
}

func (s *Scheduler[T]) run(e *Effect[T]) {
	if e.due > s.now {
		s.now = e.due
	}
	s.running = true
	if s.handler != nil {
		s.handler(e)
	}
	s.running = false
	close(e.done)

	if s.queue.Size() > 0 {
		return
	}
	id := s.commit
	s.commit = 0
	if s.drained != nil && id != 0 {
		s.drained(id)
	}
}

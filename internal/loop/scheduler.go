package loop

import (
	"context"
	"time"
)

// PollScheduler is a Scheduler for hosts that own the frame loop, such as a game
// engine's update callback. Each Poll runs the pending callback, if any.
// At most one callback is pending; a new Request replaces it.
type PollScheduler struct {
	pending func()
	seq     uint64
}

// Request implements Scheduler. The cancel func only withdraws this request,
// never a later one.
func (s *PollScheduler) Request(fn func()) (cancel func()) {
	s.seq++
	id := s.seq
	s.pending = fn
	return func() {
		if s.seq == id {
			s.pending = nil
		}
	}
}

// Pending reports whether a callback is waiting for the next frame.
func (s *PollScheduler) Pending() bool {
	return s.pending != nil
}

// Poll runs the pending callback and reports whether there was one.
func (s *PollScheduler) Poll() bool {
	fn := s.pending
	if fn == nil {
		return false
	}
	s.pending = nil
	fn()
	return true
}

// FrameScheduler is a single-goroutine Scheduler paced to a fixed frame time.
type FrameScheduler struct {
	PollScheduler
	frameTime time.Duration
}

// NewFrameScheduler creates a scheduler that runs at most one callback per frameTime.
func NewFrameScheduler(frameTime time.Duration) *FrameScheduler {
	return &FrameScheduler{frameTime: frameTime}
}

// Run executes pending callbacks, one per frame, sleeping out the rest of each frame.
// It returns nil once nothing is pending, or ctx's error when ctx is done.
func (s *FrameScheduler) Run(ctx context.Context) error {
	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		frameStart := time.Now()
		if !s.Poll() {
			return nil
		}

		elapsed := time.Since(frameStart)
		if elapsed < s.frameTime {
			timer.Reset(s.frameTime - elapsed)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
}

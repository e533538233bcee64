// Package loop drives frames: a tick scheduler, the driver that re-arms it, and
// the terminal session that renders each frame over a local TTY or SSH.
package loop

// Scheduler is the host's "run this on the next frame" primitive.
// The returned cancel func withdraws the request if it has not run yet.
type Scheduler interface {
	Request(fn func()) (cancel func())
}

// Driver runs step once per scheduled frame and re-arms itself after each step.
// It is not safe for concurrent use; drive it from the scheduler's goroutine.
type Driver struct {
	sched   Scheduler
	step    func()
	cancel  func()
	ticks   uint64
	running bool
}

// NewDriver creates a stopped driver.
func NewDriver(sched Scheduler, step func()) *Driver {
	return &Driver{sched: sched, step: step}
}

// Start requests the first tick. Starting a running driver does nothing.
func (d *Driver) Start() {
	if d.running {
		return
	}
	d.running = true
	d.cancel = d.sched.Request(d.tick)
}

// Stop withdraws the pending request. Calling Stop from inside the step
// prevents the next request; calling it twice is a no-op.
func (d *Driver) Stop() {
	if !d.running {
		return
	}
	d.running = false
	if cancel := d.cancel; cancel != nil {
		d.cancel = nil
		cancel()
	}
}

// Running reports whether the driver is between Start and Stop.
func (d *Driver) Running() bool {
	return d.running
}

// Ticks returns how many steps have run.
func (d *Driver) Ticks() uint64 {
	return d.ticks
}

func (d *Driver) tick() {
	d.cancel = nil
	if !d.running {
		return
	}
	d.ticks++
	d.step()
	if d.running {
		d.cancel = d.sched.Request(d.tick)
	}
}

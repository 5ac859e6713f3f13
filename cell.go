package waiter

import (
	"context"
	"sync"
	"time"
)

// cell is the single-slot rendezvous underneath both front ends. A cell
// accepts at most one value and wakes at most one waiter. Whichever of
// delivery, timeout, and cancellation takes the mutex first decides the
// outcome; the losers get error returns.
type cell[V any] struct {
	mu    sync.Mutex
	state uint8
	rsp   V
	done  chan struct{} // closed once the cell resolves
}

const (
	cellEmpty   uint8 = iota // no waiter armed, no value delivered
	cellArmed                // a waiter committed to block
	cellFilled               // value delivered, not yet consumed
	cellRetired              // consumed, timed out, or cancelled
)

func newCell[V any]() *cell[V] {
	return &cell[V]{done: make(chan struct{})}
}

// arm commits the calling goroutine to block once. ready reports that the
// producer ran ahead and the value can be consumed without suspending.
func (c *cell[V]) arm() (ready bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case cellEmpty:
		c.state = cellArmed
		return false, nil
	case cellFilled:
		return true, nil
	case cellArmed:
		return false, ErrAlreadyArmed
	default:
		return false, ErrCancelled
	}
}

// fill delivers rsp into the cell and wakes the waiter. Exactly one fill
// ever succeeds; later attempts fail with ErrAlreadyResolved and the value
// is dropped, never queued or overwritten.
func (c *cell[V]) fill(rsp V) error {
	c.mu.Lock()
	switch c.state {
	case cellEmpty, cellArmed:
		c.rsp = rsp
		c.state = cellFilled
		close(c.done)
		c.mu.Unlock()
		return nil
	default:
		c.mu.Unlock()
		return ErrAlreadyResolved
	}
}

// retire cancels the cell from outside, waking the waiter with
// ErrCancelled. It reports whether the cell was still unresolved.
func (c *cell[V]) retire() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == cellFilled || c.state == cellRetired {
		return false
	}
	c.state = cellRetired
	close(c.done)
	return true
}

// wait blocks until the cell resolves. A negative timeout means no
// deadline.
func (c *cell[V]) wait(timeout time.Duration) (V, error) {
	ready, err := c.arm()
	if err != nil {
		var zero V
		return zero, err
	}
	if !ready {
		if timeout < 0 {
			<-c.done
		} else {
			t := time.NewTimer(timeout)
			select {
			case <-c.done:
				t.Stop()
			case <-t.C:
			}
		}
	}
	return c.settle(ErrTimeout)
}

// waitCtx is wait with the deadline and cancellation taken from ctx.
func (c *cell[V]) waitCtx(ctx context.Context) (V, error) {
	ready, err := c.arm()
	if err != nil {
		var zero V
		return zero, err
	}
	if !ready {
		select {
		case <-c.done:
		case <-ctx.Done():
			return c.settle(ctx.Err())
		}
	}
	return c.settle(ErrTimeout)
}

// settle turns the resolved (or expired) cell into the waiter's outcome.
// The expiry decision happens here: if no value landed by the time the
// mutex is taken, the cell retires and any later fill is rejected, so a
// delivery racing the timeout either wins cleanly or fails cleanly.
func (c *cell[V]) settle(expired error) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case cellFilled:
		c.state = cellRetired
		return c.rsp, nil
	case cellArmed:
		c.state = cellRetired
		close(c.done)
		var zero V
		return zero, expired
	default:
		var zero V
		return zero, ErrCancelled
	}
}

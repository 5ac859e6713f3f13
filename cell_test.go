package waiter

import (
	"testing"
	"time"

	"github.com/zeebo/assert"
)

func TestCellFillThenWait(t *testing.T) {
	c := newCell[int]()
	assert.NoError(t, c.fill(42))

	// the producer ran ahead; the wait must observe the value immediately
	v, err := c.wait(-1)
	assert.NoError(t, err)
	assert.Equal(t, v, 42)
}

func TestCellWaitThenFill(t *testing.T) {
	c := newCell[int]()
	go func() {
		time.Sleep(10 * time.Millisecond)
		c.fill(7)
	}()

	v, err := c.wait(-1)
	assert.NoError(t, err)
	assert.Equal(t, v, 7)
}

func TestCellSecondFillRejected(t *testing.T) {
	c := newCell[int]()
	assert.NoError(t, c.fill(1))
	assert.That(t, c.fill(2) == ErrAlreadyResolved)

	v, err := c.wait(-1)
	assert.NoError(t, err)
	assert.Equal(t, v, 1)
}

func TestCellFillAfterConsume(t *testing.T) {
	c := newCell[int]()
	assert.NoError(t, c.fill(1))
	_, err := c.wait(-1)
	assert.NoError(t, err)
	assert.That(t, c.fill(2) == ErrAlreadyResolved)
}

func TestCellTimeoutThenFill(t *testing.T) {
	c := newCell[int]()
	_, err := c.wait(time.Millisecond)
	assert.That(t, err == ErrTimeout)

	// the timeout decision already retired the cell
	assert.That(t, c.fill(9) == ErrAlreadyResolved)
}

func TestCellRetire(t *testing.T) {
	c := newCell[int]()
	errs := make(chan error, 1)
	go func() {
		_, err := c.wait(-1)
		errs <- err
	}()

	time.Sleep(10 * time.Millisecond)
	assert.That(t, c.retire())
	assert.That(t, <-errs == ErrCancelled)
	assert.That(t, !c.retire())
}

func TestCellConcurrentWait(t *testing.T) {
	c := newCell[int]()
	ready, err := c.arm()
	assert.NoError(t, err)
	assert.That(t, !ready)

	// a second wait while the first is armed is misuse, not a deadlock
	_, err = c.wait(time.Second)
	assert.That(t, err == ErrAlreadyArmed)

	// the first wait is undisturbed
	assert.NoError(t, c.fill(3))
	v, err := c.settle(ErrTimeout)
	assert.NoError(t, err)
	assert.Equal(t, v, 3)
}

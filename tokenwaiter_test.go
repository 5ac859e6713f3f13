package waiter

import (
	"testing"
	"time"

	"github.com/zeebo/assert"
)

func TestTokenWaiterID(t *testing.T) {
	var s TokenSlab[int]
	w := NewTokenWaiter(&s)

	_, err := w.ID()
	assert.NoError(t, err)

	// the previous token must resolve before a new one can be minted
	_, err = w.ID()
	assert.That(t, err == ErrTokenOutstanding)
}

func TestTokenWaiterNoToken(t *testing.T) {
	var s TokenSlab[int]
	w := NewTokenWaiter(&s)
	_, err := w.WaitRsp()
	assert.That(t, err == ErrInvalidToken)
}

func TestTokenWaiterReuse(t *testing.T) {
	var s TokenSlab[int]
	w := NewTokenWaiter(&s)

	for j := 0; j < 100; j++ {
		tok, err := w.ID()
		assert.NoError(t, err)
		go s.Deliver(tok, j+100)
		v, err := w.WaitRsp()
		assert.NoError(t, err)
		assert.Equal(t, v, j+100)

		// after the wait the same waiter mints a fresh token with an
		// independent lifecycle
		tok2, err := w.ID()
		assert.NoError(t, err)
		assert.That(t, tok2 != tok)
		go s.Deliver(tok2, j)
		v, err = w.WaitRspTimeout(2 * time.Second)
		assert.NoError(t, err)
		assert.Equal(t, v, j)
	}
	assert.Equal(t, s.Len(), 0)
}

func TestTokenWaiterTimeout(t *testing.T) {
	var s TokenSlab[int]
	w := NewTokenWaiter(&s)
	tok, err := w.ID()
	assert.NoError(t, err)

	errs := make(chan error, 1)
	go func() {
		time.Sleep(102 * time.Millisecond)
		errs <- s.Deliver(tok, 42)
	}()

	_, err = w.WaitRspTimeout(100 * time.Millisecond)
	assert.That(t, err == ErrTimeout)

	// the late delivery is rejected, and the waiter is free to mint again
	assert.That(t, <-errs == ErrInvalidToken)
	_, err = w.ID()
	assert.NoError(t, err)
}

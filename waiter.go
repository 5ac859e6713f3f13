package waiter

import (
	"context"
	"time"
)

// Waiter is the consumer handle for one outstanding correlation. It is
// bound to one identifier (a map key or a slab token) and resolves exactly
// once: with the delivered value, a timeout, or cancellation. Resolving
// retires the identifier, so a spent Waiter cannot be waited on again.
type Waiter[V any] struct {
	cell *cell[V]
	drop func() // retires the identifier: map entry removal or slab slot free
}

// WaitRsp blocks until the response is delivered or the waiter is
// cancelled.
func (w *Waiter[V]) WaitRsp() (V, error) {
	rsp, err := w.cell.wait(-1)
	return w.finish(rsp, err)
}

// WaitRspTimeout blocks up to d for the response. The identifier retires
// atomically with the timeout decision: a delivery that loses the race
// fails on the producer side instead of landing in a vanished waiter. A
// non-positive d times out immediately unless the response already landed.
func (w *Waiter[V]) WaitRspTimeout(d time.Duration) (V, error) {
	if d < 0 {
		d = 0
	}
	rsp, err := w.cell.wait(d)
	return w.finish(rsp, err)
}

// WaitRspContext blocks until the response is delivered or ctx is done, in
// which case the context's own error is returned and the identifier is
// retired the same way a timeout retires it.
func (w *Waiter[V]) WaitRspContext(ctx context.Context) (V, error) {
	rsp, err := w.cell.waitCtx(ctx)
	return w.finish(rsp, err)
}

// finish retires the identifier once the wait resolved, keeping the map
// and slab free of entries nobody can deliver to. A concurrent-wait error
// leaves the first wait and its identifier undisturbed.
func (w *Waiter[V]) finish(rsp V, err error) (V, error) {
	if err == ErrAlreadyArmed {
		return rsp, err
	}
	if w.drop != nil {
		w.drop()
	}
	return rsp, err
}

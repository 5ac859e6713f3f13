package waiter

import "time"

// TokenWaiter is a reusable front end over a TokenSlab for callers that
// keep one waiter per connection or per worker and run many
// request/response cycles through it. Each cycle mints a fresh token with
// ID, waits, and only then can mint again. A cycle's token goes stale the
// moment the cycle resolves, so a response from a previous cycle can never
// leak into the next one.
//
// A TokenWaiter is single-owner: one goroutine drives the ID and wait
// calls. Delivery stays concurrent through TokenSlab.Deliver.
type TokenWaiter[V any] struct {
	slab *TokenSlab[V]
	w    *Waiter[V]
}

// NewTokenWaiter returns a TokenWaiter minting from s.
func NewTokenWaiter[V any](s *TokenSlab[V]) *TokenWaiter[V] {
	return &TokenWaiter[V]{slab: s}
}

// ID mints the correlation token for a new cycle. While the previous
// token is unresolved it fails with ErrTokenOutstanding; once the pending
// wait resolves a new token can be minted.
func (t *TokenWaiter[V]) ID() (Token, error) {
	if t.w != nil {
		return 0, ErrTokenOutstanding
	}
	tok, w := t.slab.Alloc()
	t.w = w
	return tok, nil
}

// WaitRsp blocks until the current cycle's response is delivered or the
// waiter is cancelled, then closes the cycle. Waiting without a minted
// token fails with ErrInvalidToken.
func (t *TokenWaiter[V]) WaitRsp() (V, error) {
	if t.w == nil {
		var zero V
		return zero, ErrInvalidToken
	}
	rsp, err := t.w.WaitRsp()
	t.close(err)
	return rsp, err
}

// WaitRspTimeout is WaitRsp with a deadline.
func (t *TokenWaiter[V]) WaitRspTimeout(d time.Duration) (V, error) {
	if t.w == nil {
		var zero V
		return zero, ErrInvalidToken
	}
	rsp, err := t.w.WaitRspTimeout(d)
	t.close(err)
	return rsp, err
}

func (t *TokenWaiter[V]) close(err error) {
	if err != ErrAlreadyArmed {
		t.w = nil
	}
}

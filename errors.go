package waiter

import "errors"

var (
	// ErrDuplicateKey is returned by WaiterMap.NewWaiter when the key
	// already has a live waiter. Nothing is mutated.
	ErrDuplicateKey = errors.New("waiter: key already has a live waiter")

	// ErrNoSuchWaiter is returned by WaiterMap.SetRsp when no waiter is
	// registered under the key. Normal for responses that arrive after
	// their waiter timed out or was cancelled.
	ErrNoSuchWaiter = errors.New("waiter: no waiter registered for key")

	// ErrInvalidToken is returned by TokenSlab.Deliver when the token is
	// stale, already spent, or was never issued.
	ErrInvalidToken = errors.New("waiter: stale or unknown token")

	// ErrTimeout is returned from a wait whose deadline elapsed with
	// nothing delivered.
	ErrTimeout = errors.New("waiter: wait rsp timeout")

	// ErrCancelled is returned from a wait whose waiter was retired
	// externally, e.g. by CancelAll during teardown.
	ErrCancelled = errors.New("waiter: wait rsp cancelled")

	// ErrAlreadyResolved is returned to a producer whose delivery lost
	// the race: the value was already delivered, consumed, or the waiter
	// timed out. The late value is dropped.
	ErrAlreadyResolved = errors.New("waiter: rsp already resolved")

	// ErrAlreadyArmed is returned to the second of two concurrent waits
	// on one waiter. The first wait is undisturbed.
	ErrAlreadyArmed = errors.New("waiter: concurrent wait on one waiter")

	// ErrTokenOutstanding is returned by TokenWaiter.ID while the token
	// of the previous cycle is still unresolved.
	ErrTokenOutstanding = errors.New("waiter: token still outstanding")
)

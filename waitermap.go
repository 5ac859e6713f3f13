package waiter

import "github.com/llxisdsh/pb"

// WaiterMap routes responses to blocked callers by a caller-chosen key,
// typically a request id already present in the protocol. A key has at
// most one live waiter at a time, and delivery is a one-shot ticket that
// removes the entry however the race with timeout turns out. The zero
// value is ready to use.
type WaiterMap[K comparable, V any] struct {
	m pb.MapOf[K, *cell[V]]
}

// NewWaiterMap returns an empty WaiterMap.
func NewWaiterMap[K comparable, V any]() *WaiterMap[K, V] {
	return &WaiterMap[K, V]{}
}

// NewWaiter registers a fresh waiter under key. The key must be published
// to the producer only after NewWaiter returns, and keys of concurrently
// outstanding requests must be distinct: a live duplicate fails with
// ErrDuplicateKey and mutates nothing.
func (m *WaiterMap[K, V]) NewWaiter(key K) (*Waiter[V], error) {
	c := newCell[V]()
	if _, loaded := m.m.LoadOrStore(key, c); loaded {
		return nil, ErrDuplicateKey
	}
	return &Waiter[V]{
		cell: c,
		// remove only our own entry: the key may already belong to a
		// successor by the time a timed-out waiter cleans up
		drop: func() { m.m.CompareAndDelete(key, c) },
	}, nil
}

// SetRsp delivers rsp to the waiter registered under key and retires the
// entry. A response arriving after its waiter timed out or was cancelled
// fails with ErrNoSuchWaiter, or with ErrAlreadyResolved when it loses
// the race by a hair; late responses are expected and harmless.
func (m *WaiterMap[K, V]) SetRsp(key K, rsp V) error {
	c, ok := m.m.LoadAndDelete(key)
	if !ok {
		return ErrNoSuchWaiter
	}
	return c.fill(rsp)
}

// Len reports the number of outstanding waiters.
func (m *WaiterMap[K, V]) Len() int { return m.m.Size() }

// CancelAll wakes every outstanding waiter with ErrCancelled and clears
// the map. Meant for teardown of whatever transport the responses were
// going to arrive on.
func (m *WaiterMap[K, V]) CancelAll() {
	m.m.Range(func(key K, c *cell[V]) bool {
		c.retire()
		m.m.CompareAndDelete(key, c)
		return true
	})
}

package waiter

import "sync"

// TokenSlab mints compact correlation handles for callers that have no
// natural key. Alloc hands out a Token plus the waiter bound to it; the
// producer threads the token through its protocol and calls Deliver. Slot
// reuse is guarded by per-slot generations, so a stale token can never
// reach a slot's next occupant. The zero value is ready to use.
type TokenSlab[V any] struct {
	mu    sync.Mutex
	slots []tokenSlot[V]
	free  []uint32 // LIFO of freed slot indexes
}

type tokenSlot[V any] struct {
	gen  uint32   // bumped on every free, before the slot can be reused
	cell *cell[V] // nil while the slot is free
}

// NewTokenSlab returns an empty TokenSlab.
func NewTokenSlab[V any]() *TokenSlab[V] {
	return &TokenSlab[V]{}
}

// Alloc mints a token for one response and returns it with the bound
// waiter. The token must reach the producer only after Alloc returns.
// Every allocation gets a fresh cell; cells are never reused, so a stale
// producer still holding a previous token cannot touch the new waiter.
func (s *TokenSlab[V]) Alloc() (Token, *Waiter[V]) {
	c := newCell[V]()
	s.mu.Lock()
	var idx uint32
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.slots = append(s.slots, tokenSlot[V]{gen: 1})
		idx = uint32(len(s.slots) - 1)
	}
	s.slots[idx].cell = c
	tok := packToken(idx, s.slots[idx].gen)
	s.mu.Unlock()

	return tok, &Waiter[V]{
		cell: c,
		drop: func() { s.release(tok, c) },
	}
}

// Deliver routes rsp to the waiter holding tok. The slot is freed in the
// same critical section that validates the token, so at most one Deliver
// per token ever succeeds. A spent, stale, or fabricated token fails with
// ErrInvalidToken without touching unrelated slots; losing the race
// against the waiter's timeout fails with ErrAlreadyResolved.
func (s *TokenSlab[V]) Deliver(tok Token, rsp V) error {
	idx, gen := tok.split()
	s.mu.Lock()
	if int(idx) >= len(s.slots) {
		s.mu.Unlock()
		return ErrInvalidToken
	}
	sl := &s.slots[idx]
	if sl.cell == nil || sl.gen != gen {
		s.mu.Unlock()
		return ErrInvalidToken
	}
	c := sl.cell
	s.freeLocked(idx)
	s.mu.Unlock()
	return c.fill(rsp)
}

// Len reports the number of occupied slots.
func (s *TokenSlab[V]) Len() int {
	s.mu.Lock()
	n := len(s.slots) - len(s.free)
	s.mu.Unlock()
	return n
}

// CancelAll wakes every outstanding waiter with ErrCancelled and frees
// all slots.
func (s *TokenSlab[V]) CancelAll() {
	s.mu.Lock()
	for i := range s.slots {
		if c := s.slots[i].cell; c != nil {
			c.retire()
			s.freeLocked(uint32(i))
		}
	}
	s.mu.Unlock()
}

// release frees the slot behind tok if it still belongs to c. Runs when
// the waiter resolves on its own (timeout or cancellation); the
// generation check makes it a no-op after Deliver already freed the slot
// or after the slot moved on to a new occupant.
func (s *TokenSlab[V]) release(tok Token, c *cell[V]) {
	idx, gen := tok.split()
	s.mu.Lock()
	if int(idx) < len(s.slots) {
		sl := &s.slots[idx]
		if sl.cell == c && sl.gen == gen {
			s.freeLocked(idx)
		}
	}
	s.mu.Unlock()
}

// freeLocked clears the slot and bumps its generation before the slot
// becomes eligible for reuse. Callers hold s.mu.
func (s *TokenSlab[V]) freeLocked(idx uint32) {
	sl := &s.slots[idx]
	sl.cell = nil
	sl.gen++
	s.free = append(s.free, idx)
}

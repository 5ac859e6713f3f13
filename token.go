package waiter

// Token correlates one outstanding TokenSlab waiter. It packs the slot
// index in the low 32 bits and the slot's generation in the high 32, so a
// token is good for exactly one delivery: freeing the slot bumps the
// generation and every token previously issued for it goes permanently
// stale. Generations start at 1, so the zero Token is never issued and is
// always invalid.
type Token uint64

// Gen reports the slot generation encoded in the token.
func (t Token) Gen() uint32 { return uint32(t >> 32) }

func packToken(idx, gen uint32) Token {
	return Token(uint64(gen)<<32 | uint64(idx))
}

func (t Token) split() (idx, gen uint32) {
	return uint32(t), uint32(t >> 32)
}

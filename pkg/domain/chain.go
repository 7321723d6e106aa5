package domain

// Chain is the ordered sequence of direction tokens accumulated during one
// gesture, e.g. "RDL". No two adjacent tokens are equal.
//
// Chain is an immutable value: Append returns a new chain, so a chain handed
// to an observer is never mutated afterwards.
type Chain string

// Empty reports whether the chain holds no tokens.
func (c Chain) Empty() bool {
	return len(c) == 0
}

// Len returns the number of tokens.
func (c Chain) Len() int {
	return len(c)
}

// Last returns the most recent token, or DirectionNone for an empty chain.
func (c Chain) Last() Direction {
	if len(c) == 0 {
		return DirectionNone
	}
	return Direction(c[len(c)-1])
}

// Append returns the chain extended by d. The second result is false, and the
// chain is returned unchanged, when d is invalid or repeats the last token.
func (c Chain) Append(d Direction) (Chain, bool) {
	if !d.Valid() || d == c.Last() {
		return c, false
	}
	return c + Chain(rune(d)), true
}

// Directions splits the chain into its tokens.
func (c Chain) Directions() []Direction {
	out := make([]Direction, len(c))
	for i := 0; i < len(c); i++ {
		out[i] = Direction(c[i])
	}
	return out
}

func (c Chain) String() string {
	return string(c)
}

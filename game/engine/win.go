package engine

// Solved reports whether every rune cell is covered by ruby material.
// Pure scan over the rune cells only; no state is kept between calls.
func (b *Board) Solved() bool {
	for t := range b.runes {
		if !b.HasRubyAt(t) {
			return false
		}
	}
	return true
}

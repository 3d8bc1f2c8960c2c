package primitives

import (
	"fmt"
	"iter"
	"math/bits"
	"strings"
)

const (
	// MinLetter and MaxLetter bound the crossword alphabet.
	MinLetter = 'A'
	MaxLetter = 'Z'

	// AlphabetSize is the number of letters a cell can hold.
	AlphabetSize = MaxLetter - MinLetter + 1
)

// Alphabet lists every letter in enumeration order.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

const fullMask = uint32(1)<<AlphabetSize - 1

// CharSet efficiently represents a set of letters from the alphabet.
//
// The zero value is an empty set. CharSet is a small value type and can be
// copied freely.
type CharSet struct {
	bits uint32
}

// NewCharSet returns an empty set.
func NewCharSet() *CharSet {
	return &CharSet{}
}

// FullCharSet returns a set holding every letter of the alphabet.
func FullCharSet() *CharSet {
	return &CharSet{bits: fullMask}
}

// CharSetOf returns a set holding the given letters. Letters outside the
// alphabet are reported as an error.
func CharSetOf(letters string) (*CharSet, error) {
	cs := NewCharSet()
	for _, r := range letters {
		if err := cs.Add(r); err != nil {
			return nil, err
		}
	}
	return cs, nil
}

// InAlphabet reports whether r is a letter a cell can hold.
func InAlphabet(r rune) bool {
	return r >= MinLetter && r <= MaxLetter
}

// Add adds a character to the set.
func (c *CharSet) Add(r rune) error {
	if !InAlphabet(r) {
		return fmt.Errorf("character %q is out of range", r)
	}
	c.bits |= 1 << (r - MinLetter)
	return nil
}

// Intersect removes every character that other does not hold.
func (c *CharSet) Intersect(other *CharSet) {
	c.bits &= other.bits
}

// Contains checks if a character is in the set.
func (c CharSet) Contains(r rune) bool {
	if !InAlphabet(r) {
		return false
	}
	return c.bits&(1<<(r-MinLetter)) != 0
}

// IsFull checks if the set is full.
func (c CharSet) IsFull() bool {
	return c.bits == fullMask
}

// IsEmpty checks if the set holds no characters.
func (c CharSet) IsEmpty() bool {
	return c.bits == 0
}

// Count returns the number of characters in the set.
func (c CharSet) Count() int {
	return bits.OnesCount32(c.bits)
}

// Equal reports whether both sets hold the same characters.
func (c CharSet) Equal(other *CharSet) bool {
	return c.bits == other.bits
}

// Letters yields the characters of the set in alphabet order.
func (c CharSet) Letters() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for rest := c.bits; rest != 0; rest &= rest - 1 {
			if !yield(MinLetter + rune(bits.TrailingZeros32(rest))) {
				return
			}
		}
	}
}

// String renders the set as its letters, e.g. "[ACZ]".
func (c CharSet) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for r := range c.Letters() {
		b.WriteRune(r)
	}
	b.WriteByte(']')
	return b.String()
}

package primitives

import (
	"fmt"
	"iter"
	"math/bits"
	"strings"
	"sync"
)

// PossibleLines is a set of candidate strings for one line of a puzzle. All
// strings have the same length and use only letters of the Alphabet.
//
// Filtering shares the underlying strings: a filtered set only carries a
// membership bitset over the lines it was made from.
type PossibleLines struct {
	u   *lineUniverse
	set []uint64
}

type lineUniverse struct {
	lines      []string
	numLetters int
	blocks     int

	masksOnce sync.Once
	// masks is a flattened 3D tensor of line-membership bitsets.
	//
	// The bitset of lines holding letter c at position pos starts at
	// (pos*AlphabetSize+c)*blocks.
	masks []uint64
}

// MakePossibleLines builds a set from lines, keeping their order. Lines that
// do not have exactly numLetters letters from the Alphabet are dropped.
func MakePossibleLines(numLetters int, lines []string) PossibleLines {
	u := &lineUniverse{numLetters: numLetters}
	for _, line := range lines {
		if fits(line, numLetters) {
			u.lines = append(u.lines, line)
		}
	}
	u.blocks = (len(u.lines) + 63) / 64

	set := make([]uint64, u.blocks)
	for idx := range u.lines {
		set[idx/64] |= 1 << uint(idx%64)
	}
	return PossibleLines{u: u, set: set}
}

func fits(line string, numLetters int) bool {
	if len(line) != numLetters {
		return false
	}
	for _, r := range line {
		if !InAlphabet(r) {
			return false
		}
	}
	return true
}

func (u *lineUniverse) ensureMasks() {
	u.masksOnce.Do(func() {
		u.masks = make([]uint64, u.numLetters*AlphabetSize*u.blocks)
		for idx, line := range u.lines {
			for pos, r := range line {
				base := u.maskBase(pos, int(r-MinLetter))
				u.masks[base+idx/64] |= 1 << uint(idx%64)
			}
		}
	})
}

func (u *lineUniverse) maskBase(pos int, charIdx int) int {
	return (pos*AlphabetSize + charIdx) * u.blocks
}

// NumLetters returns the length of every line in the set.
func (p PossibleLines) NumLetters() int {
	return p.u.numLetters
}

// MaxPossibilities returns the number of lines in the set.
func (p PossibleLines) MaxPossibilities() int64 {
	var n int64
	for _, b := range p.set {
		n += int64(bits.OnesCount64(b))
	}
	return n
}

// CharsAt adds the letters that appear at index in some line to accumulate.
func (p PossibleLines) CharsAt(accumulate *CharSet, index int) {
	if index < 0 || index >= p.u.numLetters || accumulate.IsFull() {
		return
	}
	p.u.ensureMasks()
	for cidx := 0; cidx < AlphabetSize; cidx++ {
		if hasIntersectionAt(p.set, p.u.masks, p.u.maskBase(index, cidx), p.u.blocks) {
			_ = accumulate.Add(MinLetter + rune(cidx))
		}
	}
}

// FilterAny keeps only the lines whose letter at index is in constraint.
func (p PossibleLines) FilterAny(constraint *CharSet, index int) PossibleLines {
	out := make([]uint64, p.u.blocks)
	if index < 0 || index >= p.u.numLetters {
		return PossibleLines{u: p.u, set: out}
	}
	p.u.ensureMasks()
	for r := range constraint.Letters() {
		base := p.u.maskBase(index, int(r-MinLetter))
		for b := range out {
			out[b] |= p.u.masks[base+b]
		}
	}
	for b := range out {
		out[b] &= p.set[b]
	}
	return PossibleLines{u: p.u, set: out}
}

// Iterate yields the lines of the set in the order they were given.
func (p PossibleLines) Iterate() iter.Seq[string] {
	return func(yield func(string) bool) {
		for idx := range iterateSetBits(p.set) {
			if !yield(p.u.lines[idx]) {
				return
			}
		}
	}
}

func (p PossibleLines) String() string {
	var shown []string
	for line := range p.Iterate() {
		if len(shown) == 3 {
			shown = append(shown, "...")
			break
		}
		shown = append(shown, line)
	}
	return fmt.Sprintf("PossibleLines(%d, [%s])", p.MaxPossibilities(), strings.Join(shown, " "))
}

func iterateSetBits(set []uint64) iter.Seq[int] {
	return func(yield func(int) bool) {
		for b, word := range set {
			for word != 0 {
				tz := bits.TrailingZeros64(word)
				if !yield(b*64 + tz) {
					return
				}
				word &= word - 1
			}
		}
	}
}

func hasIntersectionAt(set []uint64, masks []uint64, base int, blocks int) bool {
	for b := range blocks {
		if set[b]&masks[base+b] != 0 {
			return true
		}
	}
	return false
}

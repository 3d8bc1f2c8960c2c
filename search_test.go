package hexword

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crosswarped.com/hexword/pkg/automaton"
)

func TestExpressionPartialMatch(t *testing.T) {
	s := MustExpression(`^(A|DC)*$`)

	for _, in := range []string{"A", "DC", "AAADCD"} {
		assert.True(t, s.PartiallyMatches(in), "PartiallyMatches(%q)", in)
	}
	for _, in := range []string{"ADD", "DCDDC", "Z"} {
		assert.False(t, s.PartiallyMatches(in), "PartiallyMatches(%q)", in)
	}

	assert.True(t, s.FullyMatches("A"))
	assert.True(t, s.FullyMatches("DC"))
	assert.False(t, s.FullyMatches("AAADCD"), "a dangling D is alive but not finished")
}

func TestNewExpressionRejectsMalformedPattern(t *testing.T) {
	_, err := NewExpression(`(B|CD`)
	require.Error(t, err)

	var synErr *automaton.SyntaxError
	assert.True(t, errors.As(err, &synErr))
}

func TestFunctionSearch(t *testing.T) {
	s := NewFunction("two_same_chars", twoSameChars)

	assert.True(t, s.PartiallyMatches("Q"))
	assert.True(t, s.PartiallyMatches("QQ"))
	assert.False(t, s.PartiallyMatches("QR"))
	assert.Equal(t, s.PartiallyMatches("QR"), s.FullyMatches("QR"))
	assert.Equal(t, "func:two_same_chars", s.String())
}

func TestSearchConcurrentUse(t *testing.T) {
	searches := []Search{
		MustExpression(`^(HEX|H.G)$`),
		NewFunction("two_same_chars", twoSameChars),
	}

	var wg sync.WaitGroup
	for range 8 {
		for _, s := range searches {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 100 {
					s.PartiallyMatches("HH")
					s.FullyMatches("HEX")
				}
			}()
		}
	}
	wg.Wait()
}

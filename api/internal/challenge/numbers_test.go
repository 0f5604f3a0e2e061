package challenge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenValues(tokens []numberToken) []int {
	vals := make([]int, 0, len(tokens))
	for _, t := range tokens {
		vals = append(vals, t.value)
	}
	return vals
}

func TestMatchWordExact(t *testing.T) {
	v := normalize("seven")
	end, ok := matchWord(v.alphaDigits, v.boundaries, 0, "seven")
	require.True(t, ok)
	assert.Equal(t, 5, end)
}

func TestMatchWordDoubledLetters(t *testing.T) {
	for _, in := range []string{"seeven", "sevven", "seveen", "sevenn"} {
		v := normalize(in)
		end, ok := matchWord(v.alphaDigits, v.boundaries, 0, "seven")
		require.True(t, ok, in)
		assert.Equal(t, len(in), end, in)
	}
}

func TestMatchWordInteriorSubstitution(t *testing.T) {
	// One substitution is allowed for words of five or more characters,
	// interior positions only.
	v := normalize("twinty")
	_, ok := matchWord(v.alphaDigits, v.boundaries, 0, "twenty")
	assert.True(t, ok)

	// Short words get no budget at all.
	v = normalize("tho")
	_, ok = matchWord(v.alphaDigits, v.boundaries, 0, "two")
	assert.False(t, ok)
}

func TestMatchWordEdgeMismatchFails(t *testing.T) {
	v := normalize("qwenty") // first character
	_, ok := matchWord(v.alphaDigits, v.boundaries, 0, "twenty")
	assert.False(t, ok)

	v = normalize("twentx") // last character
	_, ok = matchWord(v.alphaDigits, v.boundaries, 0, "twenty")
	assert.False(t, ok)
}

func TestExtractNumbersPlain(t *testing.T) {
	v := normalize("at twenty meters and five more")
	assert.Equal(t, []int{20, 5}, tokenValues(extractNumbers(v)))
}

func TestExtractNumbersDigitsAnywhere(t *testing.T) {
	// Bare digit runs are accepted unconditionally, even mid-word.
	v := normalize("x15y and 30")
	tokens := extractNumbers(v)
	assert.Equal(t, []int{15, 30}, tokenValues(tokens))
}

func TestExtractNumbersBoundarySafety(t *testing.T) {
	// "ten" inside "antenna" must not be extracted.
	v := normalize("the antenna hums")
	assert.Empty(t, extractNumbers(v))
}

func TestExtractNumbersConcatenatedCompound(t *testing.T) {
	spacedOut := extractNumbers(normalize("twenty three"))
	glued := extractNumbers(normalize("twentythree"))
	require.Equal(t, []int{20, 3}, tokenValues(spacedOut))
	require.Equal(t, []int{20, 3}, tokenValues(glued))
	// Zero gap between the pair in both spellings: the resolver merges on it.
	assert.Equal(t, spacedOut[0].end, spacedOut[1].start)
	assert.Equal(t, glued[0].end, glued[1].start)
}

func TestExtractNumbersMisspellings(t *testing.T) {
	assert.Equal(t, []int{20}, tokenValues(extractNumbers(normalize("twenny crabs"))))
	assert.Equal(t, []int{40}, tokenValues(extractNumbers(normalize("fourty crabs"))))
}

func TestExtractNumbersNone(t *testing.T) {
	assert.Empty(t, extractNumbers(normalize("no digits in this sentence")))
}

func TestExtractNumbersSpansOrderedAndDisjoint(t *testing.T) {
	v := normalize("ten crabs, twenty claws, 7 shells")
	tokens := extractNumbers(v)
	require.Equal(t, []int{10, 20, 7}, tokenValues(tokens))
	for i, tok := range tokens {
		assert.Less(t, tok.start, tok.end)
		if i > 0 {
			assert.GreaterOrEqual(t, tok.start, tokens[i-1].end)
		}
	}
}

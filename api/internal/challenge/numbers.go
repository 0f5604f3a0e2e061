package challenge

import (
	"sort"
	"strconv"
)

// numberToken is one extracted number with its span in the alphaDigits view.
// Spans never overlap within one extraction pass.
type numberToken struct {
	value int
	start int
	end   int
}

// numberWords is the literal dictionary: zero through ninety by tens, plus
// hundred and thousand, plus the phonetic misspellings seen in challenges.
var numberWords = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50, "sixty": 60,
	"seventy": 70, "eighty": 80, "ninety": 90,
	"hundred": 100, "thousand": 1000,

	// phonetic misspellings
	"twenny": 20, "fourty": 40,
}

// wordsByLength lists the dictionary longest first so a longer match is never
// shadowed by a shorter prefix match.
var wordsByLength = func() []string {
	words := make([]string, 0, len(numberWords))
	for w := range numberWords {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})
	return words
}()

// matchWord walks word against view starting at start and reports where the
// match ends. The walk is an explicit two-pointer scan:
//
//   - a mismatch is allowed only as an interior substitution (never at the
//     first or last character), charged against a budget of one for words of
//     five or more characters and zero otherwise;
//   - on a match, the run of identical consecutive view characters is
//     consumed whole unless the next word character is the same character
//     (so it still has something to match), or this is the last word
//     character and the run does not end exactly on a boundary offset (so an
//     adjacent word sharing the letter is not swallowed).
func matchWord(view string, boundaries map[int]bool, start int, word string) (int, bool) {
	budget := 0
	if len(word) >= 5 {
		budget = 1
	}
	i, j := start, 0
	for j < len(word) {
		if i >= len(view) {
			return 0, false
		}
		c := view[i]
		if c != word[j] {
			if j == 0 || j == len(word)-1 || budget == 0 {
				return 0, false
			}
			budget--
			i++
			j++
			continue
		}
		run := i
		for run < len(view) && view[run] == c {
			run++
		}
		switch {
		case j == len(word)-1:
			if boundaries[run] {
				i = run
			} else {
				i++
			}
		case word[j+1] == c:
			i++
		default:
			i = run
		}
		j++
	}
	return i, true
}

// extractNumbers scans the alphaDigits view left to right, greedy and
// non-overlapping, and returns every number word or digit run found.
func extractNumbers(v views) []numberToken {
	var tokens []numberToken
	i := 0
	for i < len(v.alphaDigits) {
		if isASCIIDigit(v.alphaDigits[i]) {
			j := i
			for j < len(v.alphaDigits) && isASCIIDigit(v.alphaDigits[j]) {
				j++
			}
			// Bare digit runs are accepted unconditionally.
			if n, err := strconv.Atoi(v.alphaDigits[i:j]); err == nil {
				tokens = append(tokens, numberToken{value: n, start: i, end: j})
			}
			i = j
			continue
		}
		end, val, ok := matchNumberWordAt(v, i, tokens)
		if !ok {
			i++
			continue
		}
		tokens = append(tokens, numberToken{value: val, start: i, end: end})
		i = end
	}
	return tokens
}

// matchNumberWordAt tries every dictionary word at one offset. A match is
// accepted only when it ends on a boundary offset, or the position right
// after it begins another number word (concatenated compounds), or it is a
// units word directly following an accepted tens value with zero gap.
func matchNumberWordAt(v views, start int, accepted []numberToken) (end, value int, ok bool) {
	for _, w := range wordsByLength {
		e, matched := matchWord(v.alphaDigits, v.boundaries, start, w)
		if !matched {
			continue
		}
		val := numberWords[w]
		if v.boundaries[e] || startsNumberWord(v, e) || unitAfterTens(val, start, accepted) {
			return e, val, true
		}
	}
	return 0, 0, false
}

func startsNumberWord(v views, off int) bool {
	if off >= len(v.alphaDigits) {
		return false
	}
	for _, w := range wordsByLength {
		if _, ok := matchWord(v.alphaDigits, v.boundaries, off, w); ok {
			return true
		}
	}
	return false
}

func unitAfterTens(value, start int, accepted []numberToken) bool {
	if value < 1 || value > 9 || len(accepted) == 0 {
		return false
	}
	last := accepted[len(accepted)-1]
	return last.end == start && last.value >= 20 && last.value <= 90 && last.value%10 == 0
}

func isASCIIDigit(c byte) bool { return c >= '0' && c <= '9' }

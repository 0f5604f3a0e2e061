package challenge

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// views holds the two normalized projections of one challenge prompt plus the
// boundary set of the stripped view. Recomputed per call, never cached.
type views struct {
	// alphaDigits is the prompt with everything that is not a letter or a
	// digit removed, lower-cased. Number extraction runs on this view.
	alphaDigits string
	// boundaries marks the offsets in alphaDigits where a maximal
	// letter/digit run of the source text ended. A number word may only
	// complete at such an offset without bleeding into an unrelated word.
	boundaries map[int]bool
	// spaced is the prompt with every non-alphanumeric, non-whitespace rune
	// replaced by a space, lower-cased, and any rune repeated 3+ times in a
	// row collapsed to one occurrence.
	spaced string
}

func normalize(text string) views {
	folded := strings.ToLower(norm.NFKC.String(text))

	var stripped strings.Builder
	stripped.Grow(len(folded))
	bounds := make(map[int]bool)
	inRun := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			stripped.WriteRune(r)
			inRun = true
			continue
		}
		if inRun {
			bounds[stripped.Len()] = true
			inRun = false
		}
	}
	if inRun {
		bounds[stripped.Len()] = true
	}

	return views{
		alphaDigits: stripped.String(),
		boundaries:  bounds,
		spaced:      collapseRepeats(spacedView(folded)),
	}
}

func spacedView(folded string) string {
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// collapseRepeats shrinks any rune repeated three or more times in a row to a
// single occurrence. Doubled runes stay: doubling is the obfuscation the
// keyword patterns must still see through.
func collapseRepeats(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var prev rune = -1
	run := 0
	flush := func() {
		n := run
		if n >= 3 {
			n = 1
		}
		for i := 0; i < n; i++ {
			b.WriteRune(prev)
		}
	}
	for _, r := range s {
		if r == prev {
			run++
			continue
		}
		flush()
		prev, run = r, 1
	}
	flush()
	return b.String()
}

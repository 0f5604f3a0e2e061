package challenge

// mergeCompounds folds zero-gap neighbours into single values: a tens word
// (20..90) followed by a units word (1..9) becomes tens+units, and any value
// in 1..99 followed by "hundred" becomes value*100. Merges cascade left to
// right, so "twenty three hundred" resolves to 2300.
func mergeCompounds(tokens []numberToken) []numberToken {
	out := make([]numberToken, 0, len(tokens))
	for _, t := range tokens {
		if n := len(out); n > 0 && out[n-1].end == t.start {
			prev := out[n-1]
			switch {
			case prev.value >= 20 && prev.value <= 90 && prev.value%10 == 0 &&
				t.value >= 1 && t.value <= 9:
				out[n-1] = numberToken{value: prev.value + t.value, start: prev.start, end: t.end}
				continue
			case t.value == 100 && prev.value >= 1 && prev.value <= 99:
				out[n-1] = numberToken{value: prev.value * 100, start: prev.start, end: t.end}
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// suppressPhantomTens drops a standalone tens value when the value right
// after it is strictly greater but still under tens+10: the same tens word
// was matched twice, once on its own and once inside the compound that
// follows it. tens+10 itself is the next tens word, a legitimate distinct
// number, and is kept.
func suppressPhantomTens(tokens []numberToken) []numberToken {
	out := make([]numberToken, 0, len(tokens))
	for i, t := range tokens {
		if t.value > 0 && t.value < 100 && t.value%10 == 0 && i+1 < len(tokens) {
			next := tokens[i+1].value
			if next > t.value && next < t.value+10 {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

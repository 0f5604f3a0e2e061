package challenge

import (
	"regexp"
	"strconv"
)

var (
	digitRun = regexp.MustCompile(`\d+`)
	// Standalone "by" usually marks the second operand of the action
	// ("accelerates by seven"), so earlier numbers are scene-setting.
	// Observed challenge phrasing, not a general rule.
	byWord = regexp.MustCompile(`\bby\b`)
)

// selectOperands picks the two values the evaluator combines. Two numbers are
// taken in order. With three or more, the trailing pair wins when the spaced
// view contains the standalone word "by", otherwise the leading pair. With
// fewer than two, raw digit runs in the spaced view are the last resort.
func selectOperands(v views, tokens []numberToken) (a, b float64, ok bool) {
	if len(tokens) >= 2 {
		if len(tokens) > 2 && byWord.MatchString(v.spaced) {
			last := tokens[len(tokens)-1]
			prev := tokens[len(tokens)-2]
			return float64(prev.value), float64(last.value), true
		}
		return float64(tokens[0].value), float64(tokens[1].value), true
	}
	raw := digitRun.FindAllString(v.spaced, -1)
	if len(raw) >= 2 {
		first, err1 := strconv.ParseFloat(raw[0], 64)
		second, err2 := strconv.ParseFloat(raw[1], 64)
		if err1 == nil && err2 == nil {
			return first, second, true
		}
	}
	return 0, 0, false
}

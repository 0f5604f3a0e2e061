package challenge

import (
	"fmt"
	"regexp"
	"strings"
)

// operation is the arithmetic operation inferred from keyword priority.
type operation int

const (
	opAdd operation = iota
	opSubtract
	opMultiply
	opDivide
)

// keywordPattern compiles keyword stems into obfuscation-tolerant patterns:
// every literal letter becomes "one or more of that letter" so doubled
// letters keep matching, and a space inside a stem may vanish entirely in the
// stripped view.
func keywordPattern(stems ...string) *regexp.Regexp {
	alts := make([]string, 0, len(stems))
	for _, stem := range stems {
		var p strings.Builder
		for _, r := range stem {
			if r == ' ' {
				p.WriteString(`\s*`)
				continue
			}
			p.WriteRune(r)
			p.WriteByte('+')
		}
		alts = append(alts, p.String())
	}
	return regexp.MustCompile(strings.Join(alts, "|"))
}

// Stems cover the inflections: "multipl" matches multiply, multiplied and
// multiplies. Priority is fixed; the first category that matches wins no
// matter where later-priority keywords also appear.
var opPatterns = []struct {
	op      operation
	pattern *regexp.Regexp
}{
	{opMultiply, keywordPattern("multipl", "tripl", "doubl", "times", "factor")},
	{opDivide, keywordPattern("divid", "splits into", "per group")},
	{opSubtract, keywordPattern("slow", "lose", "minus", "reduc", "decreas",
		"drop", "remov", "subtract", "fewer", "decelerat")},
	{opAdd, keywordPattern("plus", "gain", "increas", "combined", "total",
		"add", "together", "accelerat")},
}

// classifyOperation matches the keyword categories against the concatenation
// of both normalized views. No match defaults to addition, the dominant
// phrasing in challenges.
func classifyOperation(surface string) operation {
	for _, c := range opPatterns {
		if c.pattern.MatchString(surface) {
			return c.op
		}
	}
	return opAdd
}

func evaluate(op operation, a, b float64) string {
	switch op {
	case opMultiply:
		return formatAnswer(a * b)
	case opDivide:
		if b == 0 {
			return "0.00"
		}
		return formatAnswer(a / b)
	case opSubtract:
		return formatAnswer(a - b)
	default:
		return formatAnswer(a + b)
	}
}

var (
	doublePattern = keywordPattern("doubl")
	triplePattern = keywordPattern("tripl")
	halvePattern  = keywordPattern("halv")
)

// soloAnswer handles the single-operand specials, checked only when exactly
// one number was extracted: doubles, triples, halves.
func soloAnswer(surface string, value float64) (string, bool) {
	switch {
	case doublePattern.MatchString(surface):
		return formatAnswer(value * 2), true
	case triplePattern.MatchString(surface):
		return formatAnswer(value * 3), true
	case halvePattern.MatchString(surface):
		return formatAnswer(value / 2), true
	}
	return "", false
}

func formatAnswer(x float64) string { return fmt.Sprintf("%.2f", x) }

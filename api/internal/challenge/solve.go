// Package challenge solves Moltbook verification challenges: short
// natural-language arithmetic word problems whose digits and operator
// keywords are deliberately obfuscated with doubled letters, character
// substitutions, decorative noise and spelled-out numbers.
//
// The pipeline is a straight five-stage pass — normalize, extract numbers,
// resolve compounds and noise, select operands, classify and evaluate — with
// no retries. Any stage that cannot produce a confident result makes the
// whole call fail with ErrUnsolved; the solver never guesses silently.
package challenge

import "errors"

// ErrUnsolved reports that no confident answer could be produced: fewer than
// two usable operands survived both the fuzzy extractor and the raw-digit
// fallback, and no single-operand special applied.
var ErrUnsolved = errors.New("challenge unsolved")

// Solve recovers the operands and the operation from an obfuscated arithmetic
// prompt and returns the result with exactly two fractional digits, e.g.
// "15.00". It is a pure function: stateless, deterministic and safe for
// concurrent use.
func Solve(text string) (string, error) {
	v := normalize(text)
	tokens := suppressPhantomTens(mergeCompounds(extractNumbers(v)))
	surface := v.alphaDigits + " " + v.spaced

	if a, b, ok := selectOperands(v, tokens); ok {
		return evaluate(classifyOperation(surface), a, b), nil
	}
	if len(tokens) == 1 {
		if answer, ok := soloAnswer(surface, float64(tokens[0].value)); ok {
			return answer, nil
		}
	}
	return "", ErrUnsolved
}

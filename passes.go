package sniffkit

import "regexp"

// Fixed scoring constants.
const (
	// SignatureWeight is added to a hypothesis when its signature is present.
	SignatureWeight = 1.0

	// PlaintextThreshold is added to the text hypothesis when neither the
	// HTML nor the JavaScript signature is present.
	PlaintextThreshold = 1
)

var (
	htmlSignature = regexp.MustCompile(`(?i)<!html|<!DOCTYPE html`)

	// \s in Go regexp lacks \v, so the whitespace class is spelled out.
	jsSignature = regexp.MustCompile("var[\t\n\v\f\r ]|function")
)

// punctuationPass compares angle-bracket density with brace/paren density
// and credits exactly one of the html and javascript hypotheses. Ties go to
// html. An empty histogram contributes 0 to html.
func punctuationPass(s *Scores, h *Histogram) {
	percentHTML := h.Ratio('<', '>')
	percentJS := h.Ratio('{', '}', '(', ')')

	if percentHTML >= percentJS {
		s.HTML += percentHTML
	} else {
		s.JavaScript += percentJS
	}
}

// signaturePass looks for doctype markers and JavaScript keywords. Matching is
// presence based: several keywords still add SignatureWeight once.
func signaturePass(s *Scores, data []byte) {
	hasHTML := htmlSignature.Match(data)
	if hasHTML {
		s.HTML += SignatureWeight
	}

	hasJS := jsSignature.Match(data)
	if hasJS {
		s.JavaScript += SignatureWeight
	}

	if !hasHTML && !hasJS {
		s.Text += PlaintextThreshold
	}
}

// combine picks the verdict. HTML wins ties against the sum of the other
// two; JavaScript must strictly dominate.
func combine(s Scores) Label {
	switch {
	case s.HTML >= s.JavaScript+s.Text:
		return HTML
	case s.JavaScript > s.HTML+s.Text:
		return JavaScript
	default:
		return PlainText
	}
}

// Verdict applies the verdict rules to externally supplied scores. It is
// useful when tuning against recorded hypothesis values.
func Verdict(s Scores) Label {
	return combine(s)
}

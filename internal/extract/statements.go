package extract

import (
	"strings"
	"time"

	"github.com/probatio/probatio/internal/model"
)

// Sentence length bounds for statement candidates. Anything shorter is a
// fragment, anything longer is a run-on unlikely to be one assertion.
const (
	minSentenceLen = 30
	maxSentenceLen = 500
)

// factualIndicators are verbs that mark a sentence as asserting something.
var factualIndicators = []string{
	" was ", " were ", " is ", " are ", " did ", " did not ",
	" paid ", " signed ", " transferred ", " received ", " occurred ",
	" agreed ", " stated ", " confirmed ", " deposited ", " withdrew ",
}

// opinionMarkers disqualify a sentence as a factual statement.
var opinionMarkers = []string{
	"i think", "i believe", "i feel", "in my opinion", "probably",
	"maybe", "perhaps", "it seems", "allegedly",
}

// boilerplateMarkers identify page furniture and legal boilerplate.
var boilerplateMarkers = []string{
	"page ", "all rights reserved", "confidential", "this document",
	"see exhibit", "continued on", "intentionally left blank",
}

// extractStatements segments the text into sentences and keeps those that
// assert a fact: they contain a factual indicator verb and are neither
// questions, opinions, nor boilerplate.
func (e *Engine) extractStatements(evidenceID, text string, now time.Time) []model.AtomicFact {
	var facts []model.AtomicFact

	for _, sentence := range splitSentences(text) {
		lower := strings.ToLower(sentence)

		if strings.HasSuffix(sentence, "?") {
			continue
		}
		if containsAny(lower, opinionMarkers) {
			continue
		}
		if containsAny(lower, boilerplateMarkers) {
			continue
		}
		if !containsAny(" "+lower+" ", factualIndicators) {
			continue
		}

		confidence := 0.60
		if strings.ContainsAny(sentence, "0123456789") {
			confidence += 0.10 // quantified statements are easier to corroborate
		}

		facts = append(facts, fact(evidenceID, model.FactStatement, normalize(sentence), confidence, sentence, "heuristic:statement", now))
	}

	return facts
}

// splitSentences splits text into sentences (simple heuristic).
func splitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)

		if r == '.' || r == '!' || r == '?' {
			// Look ahead to avoid splitting on abbreviations.
			if i+1 < len(text) && (text[i+1] == ' ' || text[i+1] == '\t') {
				sentence := strings.TrimSpace(current.String())
				if len(sentence) >= minSentenceLen && len(sentence) <= maxSentenceLen {
					sentences = append(sentences, sentence)
				}
				current.Reset()
			}
		}
	}

	if current.Len() > 0 {
		sentence := strings.TrimSpace(current.String())
		if len(sentence) >= minSentenceLen && len(sentence) <= maxSentenceLen {
			sentences = append(sentences, sentence)
		}
	}

	return sentences
}

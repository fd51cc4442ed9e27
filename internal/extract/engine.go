// Package extract implements the pattern-based fact extraction engine: it
// turns raw evidentiary text into typed atomic facts with per-fact
// confidence. Extraction is heuristic, deterministic, and never fails on
// malformed text; it degrades to fewer facts.
package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/probatio/probatio/internal/logging"
	"github.com/probatio/probatio/internal/model"
)

// contextRadius is the number of characters of surrounding text kept with
// each fact.
const contextRadius = 60

var (
	currencyPattern   = regexp.MustCompile(`\$\s?\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?|\$\s?\d+(?:\.\d{1,2})?`)
	percentagePattern = regexp.MustCompile(`\b\d{1,3}(?:\.\d+)?\s?%`)

	numericDatePattern = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`)
	isoDatePattern     = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	writtenDatePattern = regexp.MustCompile(`\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}\b`)

	personPattern  = regexp.MustCompile(`\b(?:Mr\.|Ms\.|Mrs\.|Dr\.|Judge|Officer|Detective)?\s?[A-Z][a-z]+\s+[A-Z][a-z]+\b`)
	titledPattern  = regexp.MustCompile(`^(?:Mr\.|Ms\.|Mrs\.|Dr\.|Judge|Officer|Detective)\s`)
	addressPattern = regexp.MustCompile(`\b\d+\s+[A-Z][a-z]+(?:\s[A-Z][a-z]+)*\s(?:Street|St\.?|Avenue|Ave\.?|Road|Rd\.?|Boulevard|Blvd\.?|Lane|Ln\.?|Drive|Dr\.?|Court|Ct\.?)\b`)
	cityPattern    = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s[A-Z][a-z]+)?,\s?[A-Z]{2}\b`)
)

// paymentKeywords raise amount confidence when they appear in context.
var paymentKeywords = []string{"payment", "paid", "invoice", "amount due", "balance", "deposit", "wire"}

// dateEventKeywords raise date confidence when they appear in context.
var dateEventKeywords = []string{"signed", "executed", "occurred", "dated", "effective", "filed", "delivered"}

// roleKeywords raise person confidence when they appear in context.
var roleKeywords = []string{"attorney", "counsel", "witness", "officer", "judge", "notary", "manager", "accountant", "plaintiff", "defendant"}

// personStopwords are capitalized bigrams that are not names.
var personStopwords = map[string]bool{
	"United States":  true,
	"New York":       true,
	"Supreme Court":  true,
	"District Court": true,
	"Exhibit A":      true,
	"Wells Fargo":    true,
}

// Engine extracts atomic facts from evidence text
type Engine struct {
	sink logging.Sink
}

// NewEngine creates an extraction engine reporting through the given sink.
func NewEngine(sink logging.Sink) *Engine {
	if sink == nil {
		sink = logging.Discard
	}
	return &Engine{sink: sink}
}

// Extract runs every enabled extractor family over the text and returns the
// facts clearing the configured confidence cutoff. Identical input always
// yields an identical fact list. The evidence reference must carry an id.
func (e *Engine) Extract(ev *model.Evidence, rawText string, cfg model.ExtractionConfig) ([]model.AtomicFact, error) {
	if ev == nil || ev.ID == "" {
		return nil, model.NewValidationError("extraction requires an evidence reference with an id")
	}

	text := rawText
	if looksLikeHTML(text) {
		text = visibleText(text)
	}

	now := time.Now()
	var facts []model.AtomicFact

	if cfg.Amounts {
		facts = append(facts, e.extractAmounts(ev.ID, text, now)...)
	}
	if cfg.Dates {
		facts = append(facts, e.extractDates(ev.ID, text, now)...)
	}
	if cfg.Persons {
		facts = append(facts, e.extractPersons(ev.ID, text, now)...)
	}
	if cfg.Locations {
		facts = append(facts, e.extractLocations(ev.ID, text, now)...)
	}
	if cfg.Statements {
		facts = append(facts, e.extractStatements(ev.ID, text, now)...)
	}

	facts = append(facts, e.extractSpecialized(ev, text, now)...)

	facts = dedupeFacts(facts)

	// Final filter: nothing below the cutoff leaves the engine.
	filtered := facts[:0]
	for _, f := range facts {
		if f.ConfidenceScore >= cfg.MinimumConfidence {
			filtered = append(filtered, f)
		}
	}
	facts = filtered

	e.sink.Log(logging.LevelInfo, "fact extraction complete", map[string]any{
		"evidence_id":     ev.ID,
		"facts":           len(facts),
		"mean_confidence": meanConfidence(facts),
	})

	return facts, nil
}

// extractAmounts finds currency amounts and percentages.
func (e *Engine) extractAmounts(evidenceID, text string, now time.Time) []model.AtomicFact {
	var facts []model.AtomicFact

	for _, loc := range currencyPattern.FindAllStringIndex(text, -1) {
		match := text[loc[0]:loc[1]]
		context := contextWindow(text, loc[0], loc[1])

		confidence := 0.70
		if containsAny(strings.ToLower(context), paymentKeywords) {
			confidence += 0.15
		}
		if isRoundAmount(match) {
			confidence -= 0.05
		}

		facts = append(facts, fact(evidenceID, model.FactAmount, normalize(match), confidence, context, "pattern:currency", now))
	}

	for _, loc := range percentagePattern.FindAllStringIndex(text, -1) {
		match := text[loc[0]:loc[1]]
		context := contextWindow(text, loc[0], loc[1])

		confidence := 0.65
		if containsAny(strings.ToLower(context), []string{"interest", "rate", "fee", "share", "ownership"}) {
			confidence += 0.15
		}

		facts = append(facts, fact(evidenceID, model.FactPercentage, normalize(match), confidence, context, "pattern:percentage", now))
	}

	return facts
}

// extractDates finds calendar dates in numeric, ISO, and written forms.
func (e *Engine) extractDates(evidenceID, text string, now time.Time) []model.AtomicFact {
	var facts []model.AtomicFact

	for _, p := range []struct {
		re     *regexp.Regexp
		source string
	}{
		{numericDatePattern, "pattern:date-numeric"},
		{isoDatePattern, "pattern:date-iso"},
		{writtenDatePattern, "pattern:date-written"},
	} {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			match := text[loc[0]:loc[1]]
			context := contextWindow(text, loc[0], loc[1])

			confidence := 0.70
			if containsAny(strings.ToLower(context), dateEventKeywords) {
				confidence += 0.15
			}

			facts = append(facts, fact(evidenceID, model.FactDate, normalize(match), confidence, context, p.source, now))
		}
	}

	return facts
}

// extractPersons finds capitalized name pairs, boosted by titles and nearby
// professional-role keywords.
func (e *Engine) extractPersons(evidenceID, text string, now time.Time) []model.AtomicFact {
	var facts []model.AtomicFact

	for _, loc := range personPattern.FindAllStringIndex(text, -1) {
		match := strings.TrimSpace(text[loc[0]:loc[1]])
		if personStopwords[match] {
			continue
		}
		context := contextWindow(text, loc[0], loc[1])

		confidence := 0.60
		if titledPattern.MatchString(match) {
			confidence += 0.15
		}
		if containsAny(strings.ToLower(context), roleKeywords) {
			confidence += 0.15
		}

		facts = append(facts, fact(evidenceID, model.FactPerson, normalize(match), confidence, context, "pattern:person", now))
	}

	return facts
}

// extractLocations finds street addresses and city/state pairs.
func (e *Engine) extractLocations(evidenceID, text string, now time.Time) []model.AtomicFact {
	var facts []model.AtomicFact

	for _, loc := range addressPattern.FindAllStringIndex(text, -1) {
		match := text[loc[0]:loc[1]]
		context := contextWindow(text, loc[0], loc[1])
		facts = append(facts, fact(evidenceID, model.FactLocation, normalize(match), 0.75, context, "pattern:address", now))
	}

	for _, loc := range cityPattern.FindAllStringIndex(text, -1) {
		match := text[loc[0]:loc[1]]
		context := contextWindow(text, loc[0], loc[1])
		facts = append(facts, fact(evidenceID, model.FactLocation, normalize(match), 0.65, context, "pattern:city-state", now))
	}

	return facts
}

// fact assembles one candidate with its confidence clamped to [0,1].
func fact(evidenceID string, factType model.FactType, content string, confidence float64, context, source string, now time.Time) model.AtomicFact {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return model.AtomicFact{
		EvidenceID:      evidenceID,
		FactType:        factType,
		Content:         content,
		ConfidenceScore: confidence,
		Context:         context,
		Source:          source,
		ExtractedAt:     now,
	}
}

// contextWindow returns the text surrounding [start,end).
func contextWindow(text string, start, end int) string {
	from := start - contextRadius
	if from < 0 {
		from = 0
	}
	to := end + contextRadius
	if to > len(text) {
		to = len(text)
	}
	return strings.TrimSpace(text[from:to])
}

// isRoundAmount reports whether a currency match looks like a round figure
// ($5,000 rather than $4,987.12). Round numbers are slightly more likely to
// be estimates than records.
func isRoundAmount(match string) bool {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, match)
	if strings.Contains(match, ".") && !strings.HasSuffix(digits, "00") {
		return false
	}
	return strings.HasSuffix(digits, "00") || strings.HasSuffix(digits, "000")
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// normalize collapses whitespace in matched content.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// dedupeFacts removes duplicate (type, content) candidates, keeping the
// highest-confidence occurrence.
func dedupeFacts(facts []model.AtomicFact) []model.AtomicFact {
	best := make(map[string]int)
	var unique []model.AtomicFact

	for _, f := range facts {
		key := string(f.FactType) + "|" + strings.ToLower(f.Content)
		if idx, seen := best[key]; seen {
			if f.ConfidenceScore > unique[idx].ConfidenceScore {
				unique[idx] = f
			}
			continue
		}
		best[key] = len(unique)
		unique = append(unique, f)
	}

	return unique
}

func meanConfidence(facts []model.AtomicFact) float64 {
	if len(facts) == 0 {
		return 0
	}
	var sum float64
	for _, f := range facts {
		sum += f.ConfidenceScore
	}
	return sum / float64(len(facts))
}

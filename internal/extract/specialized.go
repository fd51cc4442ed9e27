package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/probatio/probatio/internal/model"
)

var (
	accountPattern     = regexp.MustCompile(`(?i)\b(?:account|acct\.?)\s*(?:no\.?|number|#)?\s*[:#]?\s*(\d[\d-]{4,})`)
	transactionPattern = regexp.MustCompile(`(?i)\b(?:transaction|txn|wire|transfer|confirmation)\s*(?:id|no\.?|number|#)?\s*[:#]?\s*([A-Z0-9][A-Z0-9-]{5,})`)
	caseNumberPattern  = regexp.MustCompile(`(?i)\b(?:case|docket|cause)\s*(?:no\.?|number|#)?\s*[:#]?\s*([A-Za-z0-9][A-Za-z0-9:\-]{3,})`)
	courtCodePattern   = regexp.MustCompile(`\b\d{2,4}-[A-Z]{1,4}-\d{2,6}\b`)
)

// contractObligations mark clauses worth extracting as contract terms.
var contractObligations = []string{
	" shall ", " must ", " agrees to ", " is required to ", " will pay ",
	" is entitled to ", " warrants ", " covenants ",
}

// extractSpecialized adds facts conditioned on evidence classification:
// financial-tier evidence yields account and transaction facts,
// government-tier evidence yields case numbers, and any text mentioning a
// contract yields contract terms.
func (e *Engine) extractSpecialized(ev *model.Evidence, text string, now time.Time) []model.AtomicFact {
	var facts []model.AtomicFact

	switch ev.Tier {
	case model.TierFinancialInstitution, model.TierBusinessRecords:
		facts = append(facts, e.extractFinancialIdentifiers(ev.ID, text, now)...)
	case model.TierGovernment, model.TierSelfAuthenticating:
		facts = append(facts, e.extractCaseNumbers(ev.ID, text, now)...)
	}

	lower := strings.ToLower(text)
	if strings.Contains(lower, "contract") || strings.Contains(lower, "agreement") {
		facts = append(facts, e.extractContractTerms(ev.ID, text, now)...)
	}

	return facts
}

// extractFinancialIdentifiers finds account and transaction references.
func (e *Engine) extractFinancialIdentifiers(evidenceID, text string, now time.Time) []model.AtomicFact {
	var facts []model.AtomicFact

	for _, m := range accountPattern.FindAllStringSubmatchIndex(text, -1) {
		identifier := text[m[2]:m[3]]
		context := contextWindow(text, m[0], m[1])
		facts = append(facts, fact(evidenceID, model.FactAccount, normalize(identifier), 0.80, context, "pattern:account", now))
	}

	for _, m := range transactionPattern.FindAllStringSubmatchIndex(text, -1) {
		identifier := text[m[2]:m[3]]
		context := contextWindow(text, m[0], m[1])
		facts = append(facts, fact(evidenceID, model.FactTransaction, normalize(identifier), 0.75, context, "pattern:transaction", now))
	}

	return facts
}

// extractCaseNumbers finds court and agency case references.
func (e *Engine) extractCaseNumbers(evidenceID, text string, now time.Time) []model.AtomicFact {
	var facts []model.AtomicFact

	for _, m := range caseNumberPattern.FindAllStringSubmatchIndex(text, -1) {
		identifier := text[m[2]:m[3]]
		context := contextWindow(text, m[0], m[1])
		facts = append(facts, fact(evidenceID, model.FactCaseNumber, normalize(identifier), 0.80, context, "pattern:case-number", now))
	}

	for _, loc := range courtCodePattern.FindAllStringIndex(text, -1) {
		match := text[loc[0]:loc[1]]
		context := contextWindow(text, loc[0], loc[1])
		facts = append(facts, fact(evidenceID, model.FactCaseNumber, normalize(match), 0.70, context, "pattern:court-code", now))
	}

	return facts
}

// extractContractTerms keeps sentences that impose an obligation.
func (e *Engine) extractContractTerms(evidenceID, text string, now time.Time) []model.AtomicFact {
	var facts []model.AtomicFact

	for _, sentence := range splitSentences(text) {
		lower := " " + strings.ToLower(sentence) + " "
		if !containsAny(lower, contractObligations) {
			continue
		}
		facts = append(facts, fact(evidenceID, model.FactContractTerm, normalize(sentence), 0.70, sentence, "heuristic:contract-term", now))
	}

	return facts
}

package contradiction

import "github.com/probatio/probatio/internal/model"

// detectIdentity is an extension point for role conflicts among PERSON
// facts (the same person appearing as both witness and signatory, for
// example). The baseline implementation reports nothing.
func (d *Detector) detectIdentity(_, _ []model.AtomicFact) []model.Contradiction {
	return nil
}

// detectLogical is an extension point for physical or causal
// impossibility checks across two items. The baseline implementation
// reports nothing.
func (d *Detector) detectLogical(_, _ *model.Evidence, _, _ []model.AtomicFact) []model.Contradiction {
	return nil
}

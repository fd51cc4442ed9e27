package cli

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/probatio/probatio/internal/model"
	"github.com/probatio/probatio/internal/service"
	"github.com/probatio/probatio/internal/store"
)

// caseFile is the on-disk description of a case. The CLI store is
// in-memory, so every command rebuilds state from such a bundle.
type caseFile struct {
	CaseID   string         `yaml:"case_id"`
	Evidence []caseEvidence `yaml:"evidence"`
}

// caseEvidence is one artifact in a case bundle. Text is the raw document
// body facts are extracted from.
type caseEvidence struct {
	Tier               string    `yaml:"tier"`
	Description        string    `yaml:"description"`
	ContentType        string    `yaml:"content_type"`
	Location           string    `yaml:"location"`
	UploadedBy         string    `yaml:"uploaded_by"`
	UploadedAt         time.Time `yaml:"uploaded_at"`
	Status             string    `yaml:"status"`
	CorroborationCount int       `yaml:"corroboration_count"`
	CustodyEntries     int       `yaml:"custody_entries"`
	Text               string    `yaml:"text"`
}

func loadCaseFile(path string) (*caseFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read case file: %w", err)
	}

	var cf caseFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse case file: %w", err)
	}
	if cf.CaseID == "" {
		return nil, fmt.Errorf("case file %s has no case_id", path)
	}
	if len(cf.Evidence) == 0 {
		return nil, fmt.Errorf("case file %s lists no evidence", path)
	}
	return &cf, nil
}

// buildCase replays a bundle into the store: intake, declared state
// overrides, custody depth, and fact extraction. It returns the stored
// records in bundle order.
func buildCase(svc *service.Service, st store.Store, cf *caseFile) ([]model.Evidence, error) {
	built := make([]model.Evidence, 0, len(cf.Evidence))

	for i, item := range cf.Evidence {
		ev, err := svc.Intake(service.IntakeRequest{
			CaseID:      cf.CaseID,
			Tier:        model.EvidenceTier(item.Tier),
			Description: item.Description,
			ContentType: item.ContentType,
			Location:    item.Location,
			UploadedBy:  item.UploadedBy,
			Content:     []byte(item.Text),
		})
		if err != nil {
			return nil, fmt.Errorf("evidence %d: %w", i+1, err)
		}

		// Bundles describe pre-existing state, not a fresh upload.
		ev, err = st.UpdateEvidence(ev.ID, func(e *model.Evidence) error {
			if !item.UploadedAt.IsZero() {
				e.UploadedAt = item.UploadedAt
				e.LastTrustUpdate = item.UploadedAt
			}
			if item.Status != "" {
				e.Status = model.EvidenceStatus(item.Status)
			}
			e.CorroborationCount = item.CorroborationCount
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("evidence %d: %w", i+1, err)
		}

		for extra := 1; extra < item.CustodyEntries; extra++ {
			_, err := st.AppendCustodyEntry(&model.CustodyEntry{
				EvidenceID:  ev.ID,
				Action:      model.ActionAnalyzed,
				PerformedBy: item.UploadedBy,
			})
			if err != nil {
				return nil, fmt.Errorf("evidence %d custody: %w", i+1, err)
			}
		}

		if item.Text != "" {
			if _, err := svc.ExtractFacts(ev, item.Text, nil); err != nil {
				return nil, fmt.Errorf("evidence %d facts: %w", i+1, err)
			}
		}

		built = append(built, *ev)
	}

	return built, nil
}

// findByArtifactCode locates a built record by its ART code.
func findByArtifactCode(items []model.Evidence, code string) (*model.Evidence, error) {
	for i := range items {
		if items[i].ArtifactCode == code {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("artifact %s not found in case bundle", code)
}

// Package categorizer assigns taxonomy labels to scored finding groups from
// the static taxonomy table.
package categorizer

import (
	"bytemomo/remora/internal/config"
	"bytemomo/remora/internal/domain"
)

type Categorizer struct {
	taxonomy map[string][]config.CategoryRef
}

func New(taxonomy map[string][]config.CategoryRef) *Categorizer {
	return &Categorizer{taxonomy: taxonomy}
}

// Categorize attaches the taxonomy labels for the group's vulnerability type.
// Types without a table entry get the Uncategorized label, so the category
// set is never empty.
func (c *Categorizer) Categorize(group domain.FindingGroup, risk domain.RiskScore) domain.CategorizedFinding {
	refs := c.taxonomy[group.VulnerabilityType]
	if len(refs) == 0 {
		refs = c.taxonomy[config.TypeUnclassified]
	}

	categories := make([]domain.Category, 0, len(refs))
	for _, ref := range refs {
		conf := ref.Confidence
		if conf == "" {
			conf = domain.ConfidenceLikely
		}
		categories = append(categories, domain.Category{
			Taxonomy:   ref.Taxonomy,
			Label:      ref.Label,
			Confidence: conf,
		})
	}
	if len(categories) == 0 {
		// Invariant: categories is never empty, even when the unclassified
		// table entry itself is missing.
		categories = append(categories, domain.Category{
			Taxonomy:   "none",
			Label:      "Uncategorized",
			Confidence: domain.ConfidenceTentative,
		})
	}

	return domain.CategorizedFinding{
		Group:      group,
		Risk:       risk,
		Categories: categories,
	}
}

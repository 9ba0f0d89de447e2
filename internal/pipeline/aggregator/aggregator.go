// Package aggregator orders the final finding set deterministically and
// computes the run summary statistics.
package aggregator

import (
	"math"
	"sort"
	"time"

	"bytemomo/remora/internal/adapter/jsonreport"
	"bytemomo/remora/internal/domain"
)

// SortFindings orders categorized findings by severity band (worst first),
// then by group ID, giving every run over the same input the same output
// order regardless of map iteration or goroutine completion order.
func SortFindings(findings []domain.CategorizedFinding) {
	sort.Slice(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Risk.SeverityBand.Rank() != b.Risk.SeverityBand.Rank() {
			return a.Risk.SeverityBand.Rank() > b.Risk.SeverityBand.Rank()
		}
		return a.Group.GroupID < b.Group.GroupID
	})
}

// BuildSummary computes the counts reported alongside the dataset: groups per
// severity band and category, findings per source tool, the share of groups
// each tool contributed to, and the accumulated non-fatal errors.
func BuildSummary(findings []domain.CategorizedFinding, rejected []domain.RejectedFinding, parseFailures []string) domain.Summary {
	summary := domain.Summary{
		SchemaVersion:  jsonreport.SchemaVersion,
		GeneratedAt:    time.Now().UTC(),
		TotalGroups:    len(findings),
		BySeverity:     map[string]int{},
		ByCategory:     map[string]int{},
		BySourceTool:   map[string]int{},
		SourceCoverage: map[string]float64{},
		RejectedCount:  len(rejected),
		ParseFailures:  parseFailures,
	}

	groupsPerTool := map[string]int{}
	for _, cf := range findings {
		summary.BySeverity[string(cf.Risk.SeverityBand)]++
		for _, cat := range cf.Categories {
			summary.ByCategory[cat.Taxonomy+"/"+cat.Label]++
		}
		for _, m := range cf.Group.Members {
			summary.BySourceTool[string(m.SourceTool)]++
			summary.TotalFindings++
		}
		for _, tool := range cf.Group.SourceTools() {
			groupsPerTool[string(tool)]++
		}
	}

	if len(findings) > 0 {
		for tool, n := range groupsPerTool {
			pct := float64(n) / float64(len(findings)) * 100
			summary.SourceCoverage[tool] = math.Round(pct*10) / 10
		}
	}

	return summary
}

// Package correlator partitions normalized findings into groups that describe
// the same underlying vulnerability across sources.
package correlator

import (
	"sort"

	"bytemomo/remora/internal/domain"
)

// DefaultLineWindow is the default maximum line distance for two same-file
// findings to count as the same vulnerability.
const DefaultLineWindow = 3

type Correlator struct {
	lineWindow int
}

func New(lineWindow int) *Correlator {
	if lineWindow < 0 {
		lineWindow = DefaultLineWindow
	}
	return &Correlator{lineWindow: lineWindow}
}

// Correlate partitions the findings into groups via connected components of
// the pairwise similarity relation. The result does not depend on input
// order: findings are sorted by ID first and graph connectivity is
// order-independent, so identical inputs always produce identical groups.
func (c *Correlator) Correlate(findings []domain.NormalizedFinding) []domain.FindingGroup {
	if len(findings) == 0 {
		return nil
	}

	sorted := make([]domain.NormalizedFinding, len(findings))
	copy(sorted, findings)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	// Pairwise comparison within same-type buckets; only same-type findings
	// can ever merge, so cross-type pairs are never even considered.
	byType := make(map[string][]int)
	for i, f := range sorted {
		byType[f.VulnerabilityType] = append(byType[f.VulnerabilityType], i)
	}

	uf := newUnionFind(len(sorted))
	for _, bucket := range byType {
		for i := 0; i < len(bucket); i++ {
			for j := i + 1; j < len(bucket); j++ {
				if c.sameVulnerability(sorted[bucket[i]], sorted[bucket[j]]) {
					uf.union(bucket[i], bucket[j])
				}
			}
		}
	}

	components := make(map[int][]domain.NormalizedFinding)
	for i, f := range sorted {
		root := uf.find(i)
		components[root] = append(components[root], f)
	}

	groups := make([]domain.FindingGroup, 0, len(components))
	for _, members := range components {
		groups = append(groups, buildGroup(members))
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].GroupID < groups[j].GroupID })
	return groups
}

// sameVulnerability is the candidate-pair rule: identical vulnerability type
// plus overlapping location, either same file within the line window or same
// canonical endpoint and method.
func (c *Correlator) sameVulnerability(a, b domain.NormalizedFinding) bool {
	if a.VulnerabilityType != b.VulnerabilityType {
		return false
	}

	if a.Location.HasFileLocation() && b.Location.HasFileLocation() &&
		a.Location.FilePath == b.Location.FilePath {
		diff := a.Location.LineNumber - b.Location.LineNumber
		if diff < 0 {
			diff = -diff
		}
		if diff <= c.lineWindow {
			return true
		}
	}

	if a.Location.HasURLLocation() && b.Location.HasURLLocation() &&
		a.Location.URL == b.Location.URL &&
		a.Location.HTTPMethod == b.Location.HTTPMethod {
		return true
	}

	return false
}

// buildGroup assembles one FindingGroup from its members. Members arrive in
// ID order, so the first member carries the smallest ID and the group ID,
// merged location and evidence order are all stable across runs.
func buildGroup(members []domain.NormalizedFinding) domain.FindingGroup {
	group := domain.FindingGroup{
		GroupID:           members[0].ID,
		VulnerabilityType: members[0].VulnerabilityType,
		Members:           members,
		MergedLocation:    mergeLocations(members),
	}

	for _, m := range members {
		if m.Evidence == "" {
			continue
		}
		group.MergedEvidence = append(group.MergedEvidence, domain.TaggedEvidence{
			SourceTool: m.SourceTool,
			ToolName:   m.ToolName,
			Evidence:   m.Evidence,
		})
	}
	return group
}

func mergeLocations(members []domain.NormalizedFinding) domain.Location {
	var merged domain.Location

	for _, m := range members {
		if !m.Location.HasFileLocation() {
			continue
		}
		if merged.FilePath == "" {
			merged.FilePath = m.Location.FilePath
			merged.LineNumber = m.Location.LineNumber
		} else if m.Location.FilePath == merged.FilePath &&
			m.Location.LineNumber > 0 &&
			(merged.LineNumber == 0 || m.Location.LineNumber < merged.LineNumber) {
			merged.LineNumber = m.Location.LineNumber
		}
	}

	for _, m := range members {
		if m.Location.HasURLLocation() {
			merged.URL = m.Location.URL
			merged.HTTPMethod = m.Location.HTTPMethod
			break
		}
	}

	return merged
}

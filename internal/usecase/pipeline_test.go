package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bytemomo/remora/internal/adapter/jsonreport"
	"bytemomo/remora/internal/config"
	"bytemomo/remora/internal/domain"
)

const brakemanReport = `{
  "scan_info": {"app_path": "/rails/app"},
  "warnings": [
    {
      "warning_type": "SQL Injection",
      "fingerprint": "abc123",
      "check_name": "SQL",
      "message": "Possible SQL injection",
      "file": "app/models/user.rb",
      "line": 42,
      "code": "User.where(\"name = '#{params[:name]}'\")",
      "confidence": "High"
    }
  ]
}`

const manualReport = `[
  {
    "id": "rev-001",
    "type": "sql_injection",
    "title": "String interpolation in User.search",
    "evidence": "Verified with sqlmap against staging",
    "file": "app/models/user.rb",
    "line": 44,
    "confidence": "confirmed",
    "reviewer": "alice"
  },
  {
    "id": "rev-002",
    "description": "Something felt off but I could not pin it down"
  }
]`

const zapReport = `{
  "site": [
    {
      "@name": "https://example.com",
      "alerts": [
        {
          "pluginid": "40018",
          "name": "SQL Injection",
          "riskdesc": "High (Medium)",
          "confidence": "Medium",
          "desc": "SQL injection may be possible.",
          "instances": [
            {"uri": "https://example.com/users?id=1", "method": "GET", "evidence": "error in your SQL syntax"},
            {"uri": "https://example.com/users?id=2", "method": "GET"}
          ]
        }
      ]
    }
  ]
}`

func writeInputs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func runPipeline(t *testing.T, inputDir string) (*RunResult, string) {
	t.Helper()
	out := t.TempDir()
	p := NewPipeline(config.Default(), jsonreport.New(out), 4)
	result, err := p.Run(context.Background(), inputDir)
	require.NoError(t, err)
	return result, out
}

func TestRun_CrossSourceCorrelation(t *testing.T) {
	inputDir := writeInputs(t, map[string]string{
		"sast/brakeman.json": brakemanReport,
		"manual/review.json": manualReport,
	})

	result, _ := runPipeline(t, inputDir)
	assert.Equal(t, StatusCompleted, result.Status)

	// The scanner hit at line 42 and the confirmed review at line 44 land in
	// one group; the rejected review entry is reported, not dropped.
	require.Len(t, result.Findings, 1)
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, domain.ReasonInsufficientSignal, result.Rejected[0].Reason)

	group := result.Findings[0].Group
	assert.Equal(t, "sql_injection", group.VulnerabilityType)
	require.Len(t, group.Members, 2)
	assert.True(t, group.HasConfirmedManual())
	assert.Equal(t, "app/models/user.rb", group.MergedLocation.FilePath)
	assert.Equal(t, 42, group.MergedLocation.LineNumber)

	risk := result.Findings[0].Risk
	assert.Equal(t, 7.75, risk.LikelihoodScore)
	assert.Equal(t, domain.BandCritical, risk.SeverityBand)
}

func TestRun_ProbeVariantsCollapse(t *testing.T) {
	inputDir := writeInputs(t, map[string]string{
		"dast/zap.json": zapReport,
	})

	result, _ := runPipeline(t, inputDir)

	// Both probes of /users differ only in the query string, so they land in
	// one group after URL canonicalization.
	require.Len(t, result.Findings, 1)
	group := result.Findings[0].Group
	assert.Len(t, group.Members, 2)
	assert.Equal(t, "https://example.com/users", group.MergedLocation.URL)
	assert.Equal(t, "GET", group.MergedLocation.HTTPMethod)
	require.Len(t, group.MergedEvidence, 1)
	assert.Equal(t, "zap", group.MergedEvidence[0].ToolName)
}

func TestRun_ParseFailureIsIsolated(t *testing.T) {
	inputDir := writeInputs(t, map[string]string{
		"sast/brakeman.json": brakemanReport,
		"dast/broken.json":   `{"site": [}`,
	})

	result, out := runPipeline(t, inputDir)

	assert.Equal(t, StatusCompletedWithErrors, result.Status)
	require.Len(t, result.ParseFailures, 1)
	assert.Contains(t, result.ParseFailures[0], "broken.json")

	// The healthy file is still fully processed and all outputs exist.
	assert.Len(t, result.Findings, 1)
	for _, name := range []string{jsonreport.CategorizedFile, jsonreport.SummaryFile, jsonreport.RejectedFile} {
		_, err := os.Stat(filepath.Join(out, name))
		assert.NoError(t, err, name)
	}
}

func TestRun_UnknownExtensionSkipped(t *testing.T) {
	inputDir := writeInputs(t, map[string]string{
		"sast/brakeman.json": brakemanReport,
		"sast/notes.txt":     "not a report",
	})

	result, _ := runPipeline(t, inputDir)
	assert.Equal(t, StatusCompleted, result.Status)
	assert.Len(t, result.Findings, 1)
}

func TestRun_MissingSubdirsTolerated(t *testing.T) {
	inputDir := writeInputs(t, map[string]string{
		"manual/review.json": manualReport,
	})

	result, _ := runPipeline(t, inputDir)
	assert.Equal(t, StatusCompleted, result.Status)
	assert.Len(t, result.Findings, 1)
}

func TestRun_Summary(t *testing.T) {
	inputDir := writeInputs(t, map[string]string{
		"sast/brakeman.json": brakemanReport,
		"dast/zap.json":      zapReport,
		"manual/review.json": manualReport,
	})

	result, _ := runPipeline(t, inputDir)
	s := result.Summary

	assert.Equal(t, jsonreport.SchemaVersion, s.SchemaVersion)
	assert.Equal(t, 2, s.TotalGroups)
	assert.Equal(t, 4, s.TotalFindings)
	assert.Equal(t, 1, s.RejectedCount)
	assert.Equal(t, 2, s.BySeverity["critical"])
	assert.Equal(t, 1, s.BySourceTool["sast"])
	assert.Equal(t, 2, s.BySourceTool["dast"])
	assert.Equal(t, 1, s.BySourceTool["manual"])
	assert.Equal(t, 50.0, s.SourceCoverage["sast"])
	assert.Equal(t, 50.0, s.SourceCoverage["dast"])
	assert.Equal(t, 50.0, s.SourceCoverage["manual"])
}

func TestRun_OutputDeterministic(t *testing.T) {
	inputDir := writeInputs(t, map[string]string{
		"sast/brakeman.json": brakemanReport,
		"dast/zap.json":      zapReport,
		"manual/review.json": manualReport,
	})

	_, out1 := runPipeline(t, inputDir)
	_, out2 := runPipeline(t, inputDir)

	first, err := os.ReadFile(filepath.Join(out1, jsonreport.CategorizedFile))
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(out2, jsonreport.CategorizedFile))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

package domain

// Adapter parses one tool's native output format into tool-agnostic records.
// Adapters do syntactic parsing only; severity reinterpretation and vocabulary
// mapping belong to the normalizer.
type Adapter interface {
	// Tool reports which source-tool class this adapter serves.
	Tool() SourceTool

	// Format reports the native file format, e.g. "json" or "xml".
	Format() string

	// Parse converts raw file content into RawFindings. A malformed file
	// yields a *ParseError; the caller isolates the failure per file.
	Parse(sourceFile string, data []byte) ([]RawFinding, error)
}

// ReportWriter persists the pipeline output set. Implementations must write
// atomically so an interrupted run never leaves a partial file behind.
type ReportWriter interface {
	WriteCategorized(findings []CategorizedFinding) (string, error)
	WriteSummary(summary Summary) (string, error)
	WriteRejected(rejected []RejectedFinding) (string, error)
}

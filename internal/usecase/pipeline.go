// Package usecase wires the pipeline stages together: adapters feed the
// normalizer per input file, the correlator runs once everything is
// collected, scoring and categorization fan out per group and the aggregator
// writes the final dataset.
package usecase

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"bytemomo/remora/internal/adapter/dastjson"
	"bytemomo/remora/internal/adapter/manualjson"
	"bytemomo/remora/internal/adapter/nmapxml"
	"bytemomo/remora/internal/adapter/sastjson"
	"bytemomo/remora/internal/config"
	"bytemomo/remora/internal/domain"
	"bytemomo/remora/internal/pipeline/aggregator"
	"bytemomo/remora/internal/pipeline/categorizer"
	"bytemomo/remora/internal/pipeline/correlator"
	"bytemomo/remora/internal/pipeline/normalizer"
	"bytemomo/remora/internal/pipeline/scorer"
)

// Run statuses. A run with per-file parse failures still completes and
// produces output; the status records the partial success.
const (
	StatusCompleted           = "completed"
	StatusCompletedWithErrors = "completed_with_errors"
)

// Pipeline executes one batch triage run.
type Pipeline struct {
	cfg        *config.Config
	writer     domain.ReportWriter
	maxWorkers int

	// adapters keyed by "<input subdir>/<extension>".
	adapters map[string]domain.Adapter
}

// RunResult is the complete outcome of one pipeline run.
type RunResult struct {
	Findings      []domain.CategorizedFinding
	Rejected      []domain.RejectedFinding
	Summary       domain.Summary
	ParseFailures []string
	Status        string
	OutputPaths   []string
	Duration      time.Duration
}

func NewPipeline(cfg *config.Config, writer domain.ReportWriter, maxWorkers int) *Pipeline {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}
	return &Pipeline{
		cfg:        cfg,
		writer:     writer,
		maxWorkers: maxWorkers,
		adapters: map[string]domain.Adapter{
			cfg.Inputs.SASTDir + "/json":   sastjson.New(),
			cfg.Inputs.DASTDir + "/json":   dastjson.New(),
			cfg.Inputs.DASTDir + "/xml":    nmapxml.New(),
			cfg.Inputs.ManualDir + "/json": manualjson.New(),
		},
	}
}

type inputFile struct {
	path    string
	adapter domain.Adapter
}

type fileResult struct {
	normalized []domain.NormalizedFinding
	rejected   []domain.RejectedFinding
	parseErr   error
}

// Run executes the full pipeline over the input directory.
func (p *Pipeline) Run(ctx context.Context, inputDir string) (*RunResult, error) {
	start := time.Now()

	files, err := p.discoverInputs(inputDir)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"input_dir": inputDir,
		"files":     len(files),
	}).Info("Starting triage run")

	normalized, rejected, parseFailures := p.parseAndNormalize(ctx, files)

	// Correlation needs the complete normalized set; everything above this
	// line must have finished before the similarity graph is built.
	groups := correlator.New(p.cfg.Correlation.LineWindow).Correlate(normalized)
	log.WithFields(log.Fields{
		"findings": len(normalized),
		"groups":   len(groups),
		"rejected": len(rejected),
	}).Info("Correlation complete")

	findings := p.scoreAndCategorize(groups)
	aggregator.SortFindings(findings)

	sort.Strings(parseFailures)
	summary := aggregator.BuildSummary(findings, rejected, parseFailures)

	paths, err := p.writeOutputs(findings, rejected, summary)
	if err != nil {
		return nil, err
	}

	status := StatusCompleted
	if len(parseFailures) > 0 {
		status = StatusCompletedWithErrors
	}

	return &RunResult{
		Findings:      findings,
		Rejected:      rejected,
		Summary:       summary,
		ParseFailures: parseFailures,
		Status:        status,
		OutputPaths:   paths,
		Duration:      time.Since(start),
	}, nil
}

// discoverInputs walks the configured input subdirectories and pairs each
// file with the adapter for its subdirectory and extension. Files with no
// matching adapter are skipped with a warning.
func (p *Pipeline) discoverInputs(inputDir string) ([]inputFile, error) {
	var files []inputFile

	for _, sub := range []string{p.cfg.Inputs.SASTDir, p.cfg.Inputs.DASTDir, p.cfg.Inputs.ManualDir} {
		dir := filepath.Join(inputDir, sub)
		entries, err := os.ReadDir(dir)
		if os.IsNotExist(err) {
			log.WithField("dir", dir).Debug("Input subdirectory missing, skipping")
			continue
		}
		if err != nil {
			return nil, err
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(entry.Name())), ".")
			adapter, ok := p.adapters[sub+"/"+ext]
			if !ok {
				log.WithFields(log.Fields{
					"file":   entry.Name(),
					"subdir": sub,
				}).Warn("No adapter for file, skipping")
				continue
			}
			files = append(files, inputFile{
				path:    filepath.Join(dir, entry.Name()),
				adapter: adapter,
			})
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].path < files[j].path })
	return files, nil
}

// parseAndNormalize fans the input files out over a bounded worker pool.
// Files are independent, so a parse failure in one never blocks or cancels
// the others; failures are collected and surfaced, not fatal.
func (p *Pipeline) parseAndNormalize(ctx context.Context, files []inputFile) ([]domain.NormalizedFinding, []domain.RejectedFinding, []string) {
	norm := normalizer.New(p.cfg)

	sem := make(chan struct{}, p.maxWorkers)
	out := make(chan fileResult, len(files))

	for _, f := range files {
		f := f
		sem <- struct{}{}
		go func() {
			defer func() { <-sem }()
			out <- p.processFile(ctx, norm, f)
		}()
	}

	var normalized []domain.NormalizedFinding
	var rejected []domain.RejectedFinding
	var parseFailures []string
	for range files {
		res := <-out
		if res.parseErr != nil {
			parseFailures = append(parseFailures, res.parseErr.Error())
			continue
		}
		normalized = append(normalized, res.normalized...)
		rejected = append(rejected, res.rejected...)
	}
	return normalized, rejected, parseFailures
}

func (p *Pipeline) processFile(_ context.Context, norm *normalizer.Normalizer, f inputFile) fileResult {
	l := log.WithFields(log.Fields{
		"file": f.path,
		"tool": f.adapter.Tool(),
	})

	data, err := os.ReadFile(f.path)
	if err != nil {
		l.WithError(err).Error("Could not read input file")
		return fileResult{parseErr: &domain.ParseError{SourceFile: f.path, Err: err}}
	}

	raws, err := f.adapter.Parse(f.path, data)
	if err != nil {
		l.WithError(err).Error("Input file failed to parse")
		return fileResult{parseErr: err}
	}

	normalized, rejected := norm.NormalizeAll(raws)
	l.WithFields(log.Fields{
		"raw":      len(raws),
		"accepted": len(normalized),
		"rejected": len(rejected),
	}).Info("File normalized")

	return fileResult{normalized: normalized, rejected: rejected}
}

// scoreAndCategorize rates groups concurrently. Scoring is pure and per
// group, so workers write disjoint slice slots and no ordering applies.
func (p *Pipeline) scoreAndCategorize(groups []domain.FindingGroup) []domain.CategorizedFinding {
	sc := scorer.New(p.cfg.Scoring)
	cat := categorizer.New(p.cfg.Taxonomy)

	findings := make([]domain.CategorizedFinding, len(groups))
	sem := make(chan struct{}, p.maxWorkers)
	done := make(chan struct{}, len(groups))

	for i, g := range groups {
		i, g := i, g
		sem <- struct{}{}
		go func() {
			defer func() { <-sem }()
			findings[i] = cat.Categorize(g, sc.Score(g))
			done <- struct{}{}
		}()
	}
	for range groups {
		<-done
	}
	return findings
}

func (p *Pipeline) writeOutputs(findings []domain.CategorizedFinding, rejected []domain.RejectedFinding, summary domain.Summary) ([]string, error) {
	var paths []string

	path, err := p.writer.WriteCategorized(findings)
	if err != nil {
		return nil, err
	}
	paths = append(paths, path)

	path, err = p.writer.WriteSummary(summary)
	if err != nil {
		return nil, err
	}
	paths = append(paths, path)

	path, err = p.writer.WriteRejected(rejected)
	if err != nil {
		return nil, err
	}
	paths = append(paths, path)

	return paths, nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"bytemomo/remora/internal/adapter/jsonreport"
	"bytemomo/remora/internal/adapter/logger"
	"bytemomo/remora/internal/config"
	"bytemomo/remora/internal/usecase"
)

var (
	version = "1.0.0"
	commit  = "dev"
)

type options struct {
	inputDir    string
	outDir      string
	configPath  string
	workers     int
	verbose     bool
	versionFlag bool
}

func registerFlags(fs *flag.FlagSet) *options {
	var o options
	fs.StringVar(&o.inputDir, "input-dir", "", "Directory with raw findings (sast/, dast/, manual/) (required)")
	fs.StringVar(&o.outDir, "output-dir", "./remora-results", "Output directory")
	fs.StringVar(&o.outDir, "out", "./remora-results", "Output directory (alias for --output-dir)")
	fs.StringVar(&o.configPath, "config", "", "Path to pipeline YAML config (optional, defaults built in)")
	fs.IntVar(&o.workers, "workers", 0, "Max parallel workers (0 = number of CPUs)")
	fs.BoolVar(&o.verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&o.versionFlag, "version", false, "Show version information")
	return &o
}

func main() {
	opts := registerFlags(flag.CommandLine)
	flag.Parse()

	if opts.versionFlag {
		fmt.Printf("remora finding triage pipeline v%s (%s)\n", version, commit)
		os.Exit(0)
	}

	if opts.inputDir == "" {
		fmt.Fprintf(os.Stderr, "Error: --input-dir is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not create output directory: %v\n", err)
		os.Exit(1)
	}

	level := logrus.InfoLevel
	if opts.verbose {
		level = logrus.DebugLevel
	}
	logger.SetLoggerToStructured(level, filepath.Join(opts.outDir, "remora.log"))

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		// Broken configuration would corrupt every downstream score, so
		// nothing runs at all.
		logrus.WithError(err).Error("Invalid configuration")
		os.Exit(1)
	}

	pipeline := usecase.NewPipeline(cfg, jsonreport.New(opts.outDir), opts.workers)

	result, err := pipeline.Run(context.Background(), opts.inputDir)
	if err != nil {
		logrus.WithError(err).Error("Triage run failed")
		os.Exit(1)
	}

	printSummary(result)

	if result.Status == usecase.StatusCompletedWithErrors {
		logrus.WithField("parse_failures", len(result.ParseFailures)).
			Warn("Run completed with unparseable input files")
		os.Exit(2)
	}
}

func printSummary(result *usecase.RunResult) {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("TRIAGE RUN SUMMARY")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("Status: %s\n", result.Status)
	fmt.Printf("Duration: %s\n", result.Duration)
	fmt.Printf("Finding groups: %d (%d findings)\n", result.Summary.TotalGroups, result.Summary.TotalFindings)
	fmt.Printf("Critical: %d, High: %d, Medium: %d, Low: %d, Info: %d\n",
		result.Summary.BySeverity["critical"],
		result.Summary.BySeverity["high"],
		result.Summary.BySeverity["medium"],
		result.Summary.BySeverity["low"],
		result.Summary.BySeverity["info"])
	fmt.Printf("Rejected findings: %d\n", result.Summary.RejectedCount)

	if len(result.ParseFailures) > 0 {
		fmt.Printf("\nUNPARSEABLE INPUT FILES:\n")
		for i, msg := range result.ParseFailures {
			if i == 5 {
				fmt.Printf("  - ... and %d more\n", len(result.ParseFailures)-5)
				break
			}
			fmt.Printf("  - %s\n", msg)
		}
	}

	fmt.Printf("\nOutput files:\n")
	for _, p := range result.OutputPaths {
		fmt.Printf("  %s\n", p)
	}
	fmt.Println(strings.Repeat("=", 60))
}

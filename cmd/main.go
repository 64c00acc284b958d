// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"roster-scan/internal/config"
	"roster-scan/internal/observability"
	"roster-scan/internal/parallel"
	"roster-scan/internal/pipeline"
	"roster-scan/internal/recordio"
	"roster-scan/internal/report"
	"roster-scan/internal/version"

	"golang.org/x/term"
)

// Exit codes: 0 clean, 1 validation failure with -fail-on-missing,
// 2 fatal setup or source errors.
const (
	exitOK         = 0
	exitValidation = 1
	exitFatal      = 2
)

// loadConfiguration loads the configuration file or returns default config
func loadConfiguration(configFile string) *config.Config {
	configPath := configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
		cfg, _ = config.LoadConfig("")
	}
	return cfg
}

// finalConfiguration holds resolved configuration values
type finalConfiguration struct {
	outputDir     string
	priorCSV      string
	workers       int
	startPage     int
	verbose       bool
	debug         bool
	noColor       bool
	failOnMissing bool
	saveText      bool
}

// resolveConfiguration applies precedence: command line flags override
// config file values, which override built-in defaults.
func resolveConfiguration(cfg *config.Config, flagsSet map[string]bool,
	outputDir string, prior string, workers, startPage int,
	verbose, debug, noColor, failOnMissing, saveText bool) finalConfiguration {

	final := finalConfiguration{
		outputDir:     cfg.Defaults.OutputDir,
		workers:       cfg.Defaults.Workers,
		startPage:     cfg.Defaults.StartPage,
		verbose:       cfg.Defaults.Verbose,
		debug:         cfg.Defaults.Debug,
		noColor:       cfg.Defaults.NoColor,
		failOnMissing: cfg.Defaults.FailOnMissing,
	}

	if flagsSet["output"] {
		final.outputDir = outputDir
	}
	if flagsSet["workers"] {
		final.workers = workers
	}
	if flagsSet["start-page"] {
		final.startPage = startPage
	}
	if flagsSet["verbose"] {
		final.verbose = verbose
	}
	if flagsSet["debug"] {
		final.debug = debug
	}
	if flagsSet["no-color"] {
		final.noColor = noColor
	}
	if flagsSet["fail-on-missing"] {
		final.failOnMissing = failOnMissing
	}
	final.priorCSV = prior
	final.saveText = saveText

	// Color only makes sense on a terminal.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		final.noColor = true
	}

	return final
}

// discoverInputs expands the input argument into the list of source
// files: a single file, every .txt/.pdf in a directory, or a glob.
func discoverInputs(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err == nil && info.IsDir() {
		entries, err := os.ReadDir(input)
		if err != nil {
			return nil, fmt.Errorf("reading directory %s: %w", input, err)
		}
		var files []string
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if isSupportedSource(entry.Name()) {
				files = append(files, filepath.Join(input, entry.Name()))
			}
		}
		sort.Strings(files)
		return files, nil
	}
	if err == nil {
		if !isSupportedSource(input) {
			return nil, fmt.Errorf("unsupported file type: %s (want .txt or .pdf)", input)
		}
		return []string{input}, nil
	}

	// Not a file or directory; try as a glob pattern.
	matches, globErr := filepath.Glob(input)
	if globErr != nil || len(matches) == 0 {
		return nil, fmt.Errorf("no input found at %s", input)
	}
	var files []string
	for _, match := range matches {
		if isSupportedSource(match) {
			files = append(files, match)
		}
	}
	sort.Strings(files)
	return files, nil
}

func isSupportedSource(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".pdf":
		return true
	}
	return false
}

// outputPathFor maps a source file to its CSV path in the output dir.
func outputPathFor(outputDir, source, newExt string) string {
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+newExt)
}

func main() {
	inputFile := flag.String("input", "", "Path to the input file, directory, or glob pattern (e.g., *.txt)")
	outputDir := flag.String("output", ".", "Directory where extracted CSV files are written")
	priorCSV := flag.String("prior", "", "Path to a previously extracted CSV to validate against")
	configFile := flag.String("config", "", "Path to configuration file (YAML)")
	workers := flag.Int("workers", 0, "Number of concurrent workers (default: CPU count)")
	startPage := flag.Int("start-page", 1, "Physical page number of the first PDF page (for page banners)")
	verbose := flag.Bool("verbose", false, "Display individual extraction warnings")
	debug := flag.Bool("debug", false, "Enable debug logging of pipeline operations")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	failOnMissing := flag.Bool("fail-on-missing", false, "Exit non-zero when cross-validation finds missing names")
	saveText := flag.Bool("save-text", false, "Also write the normalized text extracted from each source")
	showVersion := flag.Bool("version", false, "Show version information")

	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		os.Exit(exitOK)
	}

	if *inputFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -input is required")
		flag.Usage()
		os.Exit(exitFatal)
	}

	flagsSet := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { flagsSet[f.Name] = true })

	cfg := loadConfiguration(*configFile)
	final := resolveConfiguration(cfg, flagsSet,
		*outputDir, *priorCSV, *workers, *startPage,
		*verbose, *debug, *noColor, *failOnMissing, *saveText)

	files, err := discoverInputs(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitFatal)
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no .txt or .pdf files found at %s\n", *inputFile)
		os.Exit(exitFatal)
	}

	if err := os.MkdirAll(final.outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: creating output directory: %v\n", err)
		os.Exit(exitFatal)
	}

	level := observability.Off
	if final.debug {
		level = observability.Debug
	}
	observer := observability.NewObserver(level, os.Stderr)

	pipe := pipeline.New(pipeline.Options{
		Limits:          cfg.ExtractionLimits(),
		Substitutions:   cfg.Substitutions,
		ScannerKeywords: cfg.ScannerKeywords,
		Observer:        observer,
	})

	sources := make([]pipeline.Source, len(files))
	for i, file := range files {
		sources[i] = pipeline.Source{
			Path:      file,
			PriorCSV:  final.priorCSV,
			StartPage: final.startPage,
		}
	}

	results := parallel.RunAll(final.workers, pipe, observer, sources)

	formatter := report.NewFormatter()
	opts := report.Options{NoColor: final.noColor, Verbose: final.verbose}

	exitCode := exitOK
	for _, result := range results {
		if result == nil {
			continue
		}
		if result.Error != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", result.Source, result.Error)
			exitCode = exitFatal
			continue
		}

		run := result.Run
		csvPath := outputPathFor(final.outputDir, result.Source, ".csv")
		if err := recordio.WriteFile(csvPath, run.Records); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", csvPath, err)
			exitCode = exitFatal
			continue
		}

		if final.saveText {
			textPath := outputPathFor(final.outputDir, result.Source, ".extracted.txt")
			if err := os.WriteFile(textPath, []byte(run.Text), 0o644); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", textPath, err)
			}
		}

		fmt.Println(formatter.Summarize(result.Source, len(run.Records), run.Warnings, run.Validation, opts))

		if run.ShortPages > 0 {
			fmt.Fprintf(os.Stderr, "Note: %s has %d near-empty page(s); they may need OCR\n",
				result.Source, run.ShortPages)
		}

		if final.failOnMissing && !run.Validation.Passed() && exitCode == exitOK {
			exitCode = exitValidation
		}
	}

	os.Exit(exitCode)
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package pipeline runs the full extraction sequence for one source:
// decode, normalize, segment, extract, then an independent name scan over
// the same normalized text, and finally cross-validation of the two.
// Each run is self-contained; nothing is shared across sources.
package pipeline

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"roster-scan/internal/crossval"
	"roster-scan/internal/extract"
	"roster-scan/internal/namescan"
	"roster-scan/internal/observability"
	"roster-scan/internal/pdftext"
	"roster-scan/internal/recordio"
	"roster-scan/internal/segment"
	"roster-scan/internal/textenc"
	"roster-scan/internal/textnorm"
)

// pageBanner matches the page markers pdftext emits. They help a human
// trace entries to pages but are noise to the extractor.
var pageBanner = regexp.MustCompile(`(?m)^--- PAGE \d+ ---$`)

// Source identifies one input file and how to validate it.
type Source struct {
	// Path is the .txt or .pdf file to process.
	Path string

	// PriorCSV, when set, supplies the recorded names to validate
	// against instead of this run's own records.
	PriorCSV string

	// StartPage offsets PDF page banners (cover pages shift numbering).
	StartPage int
}

// RunResult aggregates everything one source produced.
type RunResult struct {
	Source     string
	Records    []extract.Record
	Warnings   []extract.Warning
	Candidates []namescan.Candidate
	Validation crossval.Result

	// Encoding is the text encoding that decoded the source, empty for
	// PDF sources.
	Encoding     string
	UsedFallback bool

	// Text is the normalized text the run operated on, kept so callers
	// can persist the intermediate artifact.
	Text string

	// ShortPages counts near-empty PDF pages, a sign of missing OCR.
	ShortPages int
}

// Pipeline holds the configured stages.
type Pipeline struct {
	normalizer *textnorm.Normalizer
	extractor  *extract.Extractor
	scanner    *namescan.Scanner
	observer   *observability.Observer
}

// Options configure a pipeline.
type Options struct {
	Limits          extract.Limits
	Substitutions   map[string]string
	ScannerKeywords []string
	Observer        *observability.Observer
}

// New creates a pipeline. A zero Limits value falls back to the defaults.
func New(opts Options) *Pipeline {
	limits := opts.Limits
	if limits.MinLines == 0 {
		limits = extract.DefaultLimits()
	}
	return &Pipeline{
		normalizer: textnorm.NewNormalizer(opts.Substitutions),
		extractor:  extract.NewExtractor(limits),
		scanner:    namescan.NewScanner(opts.ScannerKeywords),
		observer:   opts.Observer,
	}
}

// Run processes one source end to end. Only source-level failures (file
// unreadable, PDF unparseable) return an error; extraction anomalies are
// reported as warnings inside the result.
func (p *Pipeline) Run(source Source) (*RunResult, error) {
	result := &RunResult{Source: source.Path}

	done := p.observer.StartTiming("pipeline", "run", source.Path)

	text, err := p.readSource(source, result)
	if err != nil {
		done(false, nil)
		return nil, err
	}

	normalized := p.normalizer.Normalize(stripPageBanners(text))
	result.Text = normalized

	blocks := segment.Split(normalized)
	result.Records, result.Warnings = p.extractor.ExtractAll(toExtractBlocks(blocks))
	result.Candidates = p.scanner.Scan(normalized)

	recorded, priorFailed := p.recordedNames(source, result.Records)
	result.Validation = crossval.Validate(namescan.Names(result.Candidates), recorded)
	result.Validation.PriorSourceFailed = priorFailed

	done(true, map[string]any{
		"records":    len(result.Records),
		"candidates": len(result.Candidates),
		"warnings":   len(result.Warnings),
	})

	return result, nil
}

// readSource decodes the input file according to its extension.
func (p *Pipeline) readSource(source Source, result *RunResult) (string, error) {
	if strings.EqualFold(filepath.Ext(source.Path), ".pdf") {
		done := p.observer.StartTiming("pipeline", "extract_pdf", source.Path)
		content, err := pdftext.ExtractFile(source.Path, pdftext.Options{StartPage: source.StartPage})
		if err != nil {
			done(false, nil)
			return "", fmt.Errorf("extracting text from %s: %w", source.Path, err)
		}
		done(true, map[string]any{"pages": content.PageCount, "short_pages": content.ShortPages})
		result.ShortPages = content.ShortPages
		return content.Text, nil
	}

	done := p.observer.StartTiming("pipeline", "decode", source.Path)
	decoded, err := textenc.DecodeFile(source.Path)
	if err != nil {
		done(false, nil)
		return "", err
	}
	done(true, map[string]any{"encoding": decoded.Encoding})
	result.Encoding = decoded.Encoding
	result.UsedFallback = decoded.UsedFallback
	return decoded.Text, nil
}

// recordedNames picks the validation target: the prior CSV when supplied,
// this run's own records otherwise. An unreadable prior source degrades
// to an empty set and sets the flag.
func (p *Pipeline) recordedNames(source Source, records []extract.Record) ([]string, bool) {
	if source.PriorCSV != "" {
		names, ok := recordio.ReadPriorNames(source.PriorCSV)
		return names, !ok
	}

	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.FullName
	}
	return names, false
}

func stripPageBanners(text string) string {
	return pageBanner.ReplaceAllString(text, "")
}

func toExtractBlocks(blocks []segment.Block) []extract.Block {
	out := make([]extract.Block, len(blocks))
	for i, b := range blocks {
		out[i] = extract.Block{Index: b.Index, Lines: b.Lines}
	}
	return out
}

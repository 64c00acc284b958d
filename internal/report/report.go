// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package report renders the per-source extraction summary. Formatting
// only; every number it prints was decided elsewhere.
package report

import (
	"fmt"
	"strings"

	"roster-scan/internal/crossval"
	"roster-scan/internal/extract"

	"github.com/fatih/color"
)

// missingNamePreviewCap bounds how many missing names a summary lists
// before collapsing the rest into a count.
const missingNamePreviewCap = 10

// Options control summary rendering.
type Options struct {
	NoColor bool
	Verbose bool // list every warning, not just the tally
}

// Formatter renders summaries.
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a summary formatter.
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":  color.New(color.FgGreen),
			"yellow": color.New(color.FgYellow),
			"red":    color.New(color.FgRed),
			"cyan":   color.New(color.FgCyan),
			"white":  color.New(color.FgWhite, color.Bold),
		},
	}
}

// Summarize produces the human-readable summary for one processed
// source: record/warning counts, the validation verdict, and a capped
// preview of missing names.
func (f *Formatter) Summarize(source string, recordCount int, warnings []extract.Warning, result crossval.Result, opts Options) string {
	if opts.NoColor {
		color.NoColor = true
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", f.colors["white"].Sprint("Source:"), source)
	fmt.Fprintf(&b, "  Records emitted:  %d\n", recordCount)
	fmt.Fprintf(&b, "  Names scanned:    %d\n", result.TotalScanned)
	fmt.Fprintf(&b, "  Warnings:         %d\n", len(warnings))

	if opts.Verbose {
		for _, w := range warnings {
			fmt.Fprintf(&b, "    %s %s\n", f.colors["yellow"].Sprint("WARNING"), w.String())
		}
	}

	if result.PriorSourceFailed {
		fmt.Fprintf(&b, "  %s prior record source unreadable; validating against an empty set\n",
			f.colors["yellow"].Sprint("NOTE:"))
	}

	if result.Passed() {
		fmt.Fprintf(&b, "  %s all %d scanned names accounted for\n",
			f.colors["green"].Sprint("VALIDATION PASSED:"), result.TotalScanned)
	} else {
		fmt.Fprintf(&b, "  %s %d scanned name(s) missing from the records:\n",
			f.colors["red"].Sprint("VALIDATION FAILED:"), len(result.MissingNames))
		for i, name := range result.MissingNames {
			if i == missingNamePreviewCap {
				fmt.Fprintf(&b, "    -> ... and %d more\n", len(result.MissingNames)-missingNamePreviewCap)
				break
			}
			fmt.Fprintf(&b, "    -> %s\n", name)
		}
	}

	switch result.Classification {
	case crossval.OverExtracted:
		fmt.Fprintf(&b, "  %s more records (%d) than scanned names (%d); the scanner's filters are stricter, not necessarily an error\n",
			f.colors["yellow"].Sprint("NOTE:"), result.TotalRecorded, result.TotalScanned)
	case crossval.UnderExtracted:
		fmt.Fprintf(&b, "  %s fewer records (%d) than scanned names (%d); possible data loss\n",
			f.colors["yellow"].Sprint("NOTE:"), result.TotalRecorded, result.TotalScanned)
	}

	return b.String()
}

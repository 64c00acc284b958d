// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package pagecut trims scanned roster PDFs before text extraction.
// Directory scans routinely carry cover pages, adverts, and index pages
// that would pollute extraction; cutting them out first is cheaper than
// filtering their text downstream.
package pagecut

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pageToken is one element of a page spec: a single page or a range.
var pageToken = regexp.MustCompile(`^(\d+)(?:-(\d+))?$`)

// Cutter performs page operations using pdfcpu.
type Cutter struct {
	pdfConfig *model.Configuration
}

// NewCutter creates a cutter with the default pdfcpu configuration.
func NewCutter() *Cutter {
	return &Cutter{pdfConfig: model.NewDefaultConfiguration()}
}

// ParsePageSpec validates a 1-based comma-separated page spec like
// "1,3,5-7" and returns the tokens in pdfcpu's selection syntax.
func ParsePageSpec(spec string) ([]string, error) {
	var pages []string
	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		m := pageToken.FindStringSubmatch(token)
		if m == nil {
			return nil, fmt.Errorf("invalid page token %q (want N or N-M)", token)
		}

		first, err := strconv.Atoi(m[1])
		if err != nil || first < 1 {
			return nil, fmt.Errorf("invalid page number %q (pages are 1-based)", m[1])
		}
		if m[2] != "" {
			last, err := strconv.Atoi(m[2])
			if err != nil || last < first {
				return nil, fmt.Errorf("invalid page range %q", token)
			}
		}

		pages = append(pages, token)
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("empty page spec")
	}
	return pages, nil
}

// Remove deletes the specified pages from inFile, writing the rest to
// outFile.
func (c *Cutter) Remove(inFile, outFile, spec string) error {
	pages, err := ParsePageSpec(spec)
	if err != nil {
		return err
	}
	if err := api.ValidateFile(inFile, c.pdfConfig); err != nil {
		return fmt.Errorf("invalid PDF %s: %w", inFile, err)
	}
	if err := api.RemovePagesFile(inFile, outFile, pages, c.pdfConfig); err != nil {
		return fmt.Errorf("removing pages from %s: %w", inFile, err)
	}
	return nil
}

// Keep retains only the specified pages of inFile, writing them to
// outFile.
func (c *Cutter) Keep(inFile, outFile, spec string) error {
	pages, err := ParsePageSpec(spec)
	if err != nil {
		return err
	}
	if err := api.ValidateFile(inFile, c.pdfConfig); err != nil {
		return fmt.Errorf("invalid PDF %s: %w", inFile, err)
	}
	if err := api.TrimFile(inFile, outFile, pages, c.pdfConfig); err != nil {
		return fmt.Errorf("trimming %s: %w", inFile, err)
	}
	return nil
}

// Split writes every page of inFile as a standalone PDF into outDir.
func (c *Cutter) Split(inFile, outDir string) error {
	if err := api.ValidateFile(inFile, c.pdfConfig); err != nil {
		return fmt.Errorf("invalid PDF %s: %w", inFile, err)
	}
	if err := api.SplitFile(inFile, outDir, 1, c.pdfConfig); err != nil {
		return fmt.Errorf("splitting %s: %w", inFile, err)
	}
	return nil
}

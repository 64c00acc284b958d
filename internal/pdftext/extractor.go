// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package pdftext extracts plain text from scanned roster PDFs. Pages are
// emitted with numbered banners so a reviewer can trace an entry back to
// the physical page, and pages with almost no text are counted separately
// because they usually mean an image-only scan that OCR never touched.
package pdftext

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DefaultMaxPages caps processing for very large PDFs.
const DefaultMaxPages = 50

// shortPageThreshold is the character count below which a page is counted
// as effectively empty.
const shortPageThreshold = 20

// Options control extraction.
type Options struct {
	// StartPage is the 1-based number printed in the first page banner.
	// Zero means 1. Scanned volumes often start mid-book, so banners
	// need to carry the physical page number rather than the PDF index.
	StartPage int

	// MaxPages caps the number of pages processed. Zero means
	// DefaultMaxPages.
	MaxPages int
}

// Content is the extracted text plus per-run counters.
type Content struct {
	Filename   string
	Text       string
	PageCount  int
	ShortPages int
	WordCount  int
}

// ExtractFile extracts text from every page of the PDF at path.
func ExtractFile(path string, opts Options) (*Content, error) {
	content := &Content{
		Filename: filepath.Base(path),
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return content, fmt.Errorf("error opening PDF: %v", err)
	}
	defer f.Close()

	content.PageCount = r.NumPage()
	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	if content.PageCount > maxPages {
		content.PageCount = maxPages
	}

	startPage := opts.StartPage
	if startPage <= 0 {
		startPage = 1
	}

	type pageResult struct {
		pageNum int
		text    string
		err     error
	}

	resultChan := make(chan pageResult, content.PageCount)
	for i := 1; i <= content.PageCount; i++ {
		go func(pageNum int) {
			p := r.Page(pageNum)
			if p.V.IsNull() {
				resultChan <- pageResult{pageNum: pageNum, err: fmt.Errorf("null page")}
				return
			}
			text, err := extractPageText(p)
			resultChan <- pageResult{pageNum: pageNum, text: text, err: err}
		}(i)
	}

	pageTexts := make(map[int]string)
	for i := 0; i < content.PageCount; i++ {
		result := <-resultChan
		if result.err != nil {
			continue
		}
		pageTexts[result.pageNum] = result.text
	}

	var buf bytes.Buffer
	for i := 1; i <= content.PageCount; i++ {
		text := strings.TrimSpace(pageTexts[i])
		if len(text) < shortPageThreshold {
			content.ShortPages++
		}
		if buf.Len() > 0 {
			buf.WriteString("\n\n")
		}
		// Banner carries the physical page number, offset by StartPage.
		buf.WriteString(fmt.Sprintf("--- PAGE %d ---\n", startPage+i-1))
		buf.WriteString(text)
	}

	content.Text = cleanText(buf.String())
	content.WordCount = len(strings.Fields(content.Text))

	return content, nil
}

// extractPageText extracts one page using row-based positioning for better
// spacing, falling back to plain text when row data is unavailable.
func extractPageText(p pdf.Page) (string, error) {
	rows, err := p.GetTextByRow()
	if err != nil {
		return p.GetPlainText(nil)
	}

	sortedRows := make([]*pdf.Row, 0, len(rows))
	for _, row := range rows {
		if row != nil && len(row.Content) > 0 {
			sortedRows = append(sortedRows, row)
		}
	}
	sort.Slice(sortedRows, func(i, j int) bool {
		return averageY(sortedRows[i].Content) < averageY(sortedRows[j].Content)
	})

	var buf bytes.Buffer
	for _, row := range sortedRows {
		rowText := reconstructRowText(row.Content)
		if strings.TrimSpace(rowText) != "" {
			buf.WriteString(rowText)
			buf.WriteString("\n")
		}
	}
	return buf.String(), nil
}

func averageY(elements []pdf.Text) float64 {
	if len(elements) == 0 {
		return 0
	}
	var total float64
	for _, e := range elements {
		total += e.Y
	}
	return total / float64(len(elements))
}

// reconstructRowText joins a row's text elements left to right, inserting
// a space wherever the horizontal gap exceeds 20% of the font size.
func reconstructRowText(elements []pdf.Text) string {
	sorted := make([]pdf.Text, len(elements))
	copy(sorted, elements)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].X < sorted[j].X
	})

	var buf bytes.Buffer
	for i, element := range sorted {
		buf.WriteString(element.S)
		if i == len(sorted)-1 {
			continue
		}

		gap := sorted[i+1].X - (element.X + element.W)
		fontSize := element.FontSize
		if fontSize <= 0 {
			fontSize = 12
		}
		if gap > fontSize*0.2 {
			buf.WriteString(" ")
		}
	}
	return buf.String()
}

// cleanText trims each line and collapses runs of spaces, keeping blank
// lines intact since they carry the entry boundaries.
func cleanText(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\t", " "), "\n")
	for i, line := range lines {
		for strings.Contains(line, "  ") {
			line = strings.ReplaceAll(line, "  ", " ")
		}
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package extract parses segmented entry blocks into five-field roster
// records using the positional layout of the source directories:
//
//	FULL NAME
//	IDENTIFIER (student number)
//	ADDRESS LINE(S)
//	EMAIL@DOMAIN
//	Tel. PHONE NUMBER
//
// Extraction never fails: every anomaly becomes a Warning tied to the
// offending block and processing continues.
package extract

import (
	"fmt"
	"strings"
	"unicode"
)

// Category classifies a warning per the block shape / field split.
type Category string

const (
	// CategoryStructural flags malformed block shape (too few or too
	// many lines, oversized line).
	CategoryStructural Category = "structural"
	// CategoryField flags a missing or ill-formed field inside an
	// otherwise processable block.
	CategoryField Category = "field"
)

// Record is one extracted roster entry. Identifier and FullName are
// always populated from the block's first two lines (best effort, never
// validated away); the remaining fields may be empty.
type Record struct {
	Identifier string
	FullName   string
	Email      string
	Phone      string
	Address    string
}

// Warning reports one anomaly detected in one entry block. Warnings are
// informational and never block record emission, except the too-few-lines
// case handled by the extractor itself.
type Warning struct {
	EntryIndex int
	Category   Category
	Message    string
}

func (w Warning) String() string {
	return fmt.Sprintf("entry %d: %s", w.EntryIndex+1, w.Message)
}

// Limits bound the structural checks. The zero value is not usable; use
// DefaultLimits or a config-derived value.
type Limits struct {
	MinLines      int // blocks with fewer non-empty lines emit no record
	MaxLines      int // blocks with more lines are flagged as concatenated
	MaxLineLength int // single lines longer than this are flagged
	MinIDLength   int // identifier length bounds, in characters
	MaxIDLength   int
}

// DefaultLimits matches the source directory format: 4-7 lines per entry,
// 8-15 digit student numbers.
func DefaultLimits() Limits {
	return Limits{
		MinLines:      4,
		MaxLines:      7,
		MaxLineLength: 200,
		MinIDLength:   8,
		MaxIDLength:   15,
	}
}

const phonePrefix = "Tel."

// Extractor turns entry blocks into records.
type Extractor struct {
	limits Limits
}

// NewExtractor creates an extractor with the given limits.
func NewExtractor(limits Limits) *Extractor {
	return &Extractor{limits: limits}
}

// Block is the minimal view of a segmented entry this package needs.
type Block struct {
	Index int
	Lines []string
}

// ExtractAll processes every block, returning the emitted records in
// block order and all warnings raised along the way.
func (e *Extractor) ExtractAll(blocks []Block) ([]Record, []Warning) {
	var records []Record
	var warnings []Warning

	for _, block := range blocks {
		record, blockWarnings, ok := e.Extract(block)
		warnings = append(warnings, blockWarnings...)
		if ok {
			records = append(records, record)
		}
	}

	return records, warnings
}

// Extract parses a single block. ok is false only for blocks below the
// minimum line count, the one case where no record is emitted.
func (e *Extractor) Extract(block Block) (Record, []Warning, bool) {
	var warnings []Warning
	warn := func(cat Category, format string, args ...any) {
		warnings = append(warnings, Warning{
			EntryIndex: block.Index,
			Category:   cat,
			Message:    fmt.Sprintf(format, args...),
		})
	}

	lines := block.Lines

	if len(lines) > e.limits.MaxLines {
		warn(CategoryStructural, "too many lines (%d). Entry might be concatenated", len(lines))
	}

	if len(lines) < e.limits.MinLines {
		warn(CategoryStructural, "too few lines (%d). Entry might be malformed or incomplete", len(lines))
		return Record{}, warnings, false
	}

	fullname := lines[0]
	identifier := lines[1]

	if !isAllDigits(identifier) {
		warn(CategoryField, "identifier %q is not numeric. Entry may be corrupted", identifier)
	}
	if len(identifier) < e.limits.MinIDLength || len(identifier) > e.limits.MaxIDLength {
		warn(CategoryField, "identifier %q has unusual length (%d). Expected %d-%d digits",
			identifier, len(identifier), e.limits.MinIDLength, e.limits.MaxIDLength)
	}

	email := firstLine(lines, func(l string) bool { return strings.Contains(l, "@") })
	if email == "" {
		warn(CategoryField, "no email found for %q. Entry might be incomplete", fullname)
	} else if strings.Count(email, "@") > 1 {
		warn(CategoryField, "multiple '@' symbols in %q. Possible data concatenation", email)
	}

	phone := firstLine(lines, isPhoneLine)
	if phone == "" {
		warn(CategoryField, "no phone field found for %q", fullname)
	} else {
		cleaned := strings.TrimSpace(strings.ReplaceAll(phone, phonePrefix, ""))
		if phoneContainsLetters(cleaned) {
			warn(CategoryField, "phone field contains letters: %q. Possible data concatenation", phone)
		}
		phone = cleaned
	}

	// Address is everything after the identifier that is neither the
	// email nor a phone line.
	var addressLines []string
	for _, line := range lines[2:] {
		if strings.Contains(line, "@") || isPhoneLine(line) {
			continue
		}
		addressLines = append(addressLines, line)
	}
	address := strings.Join(addressLines, " ")
	if address == "" {
		warn(CategoryField, "no address found for %q", fullname)
	}

	for _, line := range lines {
		if len(line) > e.limits.MaxLineLength {
			warn(CategoryStructural, "suspiciously long line (%d chars). Possible concatenated entries", len(line))
			break
		}
	}

	return Record{
		Identifier: identifier,
		FullName:   fullname,
		Email:      email,
		Phone:      phone,
		Address:    address,
	}, warnings, true
}

func firstLine(lines []string, match func(string) bool) string {
	for _, line := range lines {
		if match(line) {
			return line
		}
	}
	return ""
}

func isPhoneLine(line string) bool {
	return strings.HasPrefix(strings.ToLower(line), "tel")
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// phoneContainsLetters reports whether the cleaned phone value still
// carries alphabetic characters once separators are removed, which
// signals text concatenated onto the number.
func phoneContainsLetters(phone string) bool {
	stripped := strings.NewReplacer("-", "", "/", "", " ", "").Replace(phone)
	for _, r := range stripped {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

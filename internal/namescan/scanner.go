// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package namescan finds name-like text immediately preceding a student
// number anywhere in the normalized blob, ignoring entry boundaries.
//
// This is deliberately a second, independent extraction strategy: the
// positional extractor trusts that line 0 of every block is a name, which
// breaks silently when segmentation merges or splits entries. A scan that
// never looks at block boundaries gives an orthogonal signal over the
// same text, and the divergence between the two is how data loss gets
// caught. Do not fold this into the extractor.
package namescan

import (
	"regexp"
	"strings"
	"unicode"
)

// namePattern captures letters/spaces/periods immediately followed by a
// run of 8-10 digits (the student number that anchors every entry).
var namePattern = regexp.MustCompile(`([A-Za-z][A-Za-z\s.]+?)(\d{8,10})`)

// phoneFragment matches a slash or dash leading into a digit, the shape
// of a phone-number tail accidentally captured as name text.
var phoneFragment = regexp.MustCompile(`[/\-]\s*\d`)

// defaultExcludeKeywords disqualify a candidate as email or web debris.
var defaultExcludeKeywords = []string{
	".com", ".co.", ".id", "yahoo", "gmail", "hotmail", "email",
}

const phonePrefixToken = "tel."

// Candidate is one name-like match, paired with the digit run that
// anchored it.
type Candidate struct {
	Name     string
	DigitRun string
}

// Scanner scans normalized text for name candidates.
type Scanner struct {
	excludeKeywords []string
}

// NewScanner creates a scanner with the default exclusion keywords,
// optionally extended from config.
func NewScanner(extraKeywords []string) *Scanner {
	keywords := make([]string, 0, len(defaultExcludeKeywords)+len(extraKeywords))
	keywords = append(keywords, defaultExcludeKeywords...)
	for _, kw := range extraKeywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return &Scanner{excludeKeywords: keywords}
}

// Scan returns the deduplicated name candidates found in text, in first
// occurrence order.
//
// Deduplication has one deliberate exception: a later duplicate is kept
// when the earlier occurrence's text ends with the phone prefix token,
// guarding against an accidental "... Tel." capture shadowing the real
// name. The rule is a narrow patch for one observed failure shape; keep
// it narrow.
func (s *Scanner) Scan(text string) []Candidate {
	var candidates []Candidate
	seen := make(map[string]bool)

	for _, match := range namePattern.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(match[1])
		if !s.accept(name) {
			continue
		}
		if seen[name] && !strings.HasSuffix(strings.ToLower(name), phonePrefixToken) {
			continue
		}
		seen[name] = true
		candidates = append(candidates, Candidate{Name: name, DigitRun: match[2]})
	}

	return candidates
}

// Names returns just the candidate name strings, in scan order.
func Names(candidates []Candidate) []string {
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
	}
	return names
}

// accept applies the exclusion filters in order. Any hit discards the
// candidate.
func (s *Scanner) accept(name string) bool {
	if strings.Contains(name, "@") {
		return false
	}

	lower := strings.ToLower(name)
	if lower == "tel" || lower == phonePrefixToken || strings.HasSuffix(lower, phonePrefixToken) {
		return false
	}

	for _, keyword := range s.excludeKeywords {
		if strings.Contains(lower, keyword) {
			return false
		}
	}

	if phoneFragment.MatchString(name) {
		return false
	}

	if len(name) < 3 || strings.Count(name, ".") >= 3 {
		return false
	}

	alpha := 0
	for _, r := range name {
		if unicode.IsLetter(r) {
			alpha++
		}
	}
	return alpha*2 >= len(name)
}

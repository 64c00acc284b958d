// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package textnorm repairs known encoding artifacts in scanned text so the
// downstream extractors only ever see canonical ASCII punctuation.
package textnorm

import "strings"

// defaultSubstitutions maps encoding artifacts to their ASCII equivalents.
// The patterns do not overlap, so substitution order is irrelevant.
// Keys cover the artifacts observed in OCR output of old printed
// directories: typographic dashes, the Unicode replacement character, and
// the C1 control code points a latin-1 decode produces from cp1252
// punctuation bytes. The keys are code points, never raw bytes: input
// arrives here already decoded to valid UTF-8, and a single-byte pattern
// would tear multi-byte runes that contain it.
var defaultSubstitutions = map[string]string{
	"Ð":      "-",
	"—":      "-", // em dash
	"–":      "-", // en dash
	"�":      "-", // replacement character
	"\u0092": "'", // cp1252 curly apostrophe via latin-1
	"\u0093": `"`, // opening quote
	"\u0094": `"`, // closing quote
	"\u0096": "-", // mis-decoded en dash
	"\u0097": "-", // mis-decoded em dash
}

// Normalizer applies a fixed artifact substitution table to raw text.
type Normalizer struct {
	replacer *strings.Replacer
}

// NewNormalizer creates a normalizer using the default substitution table,
// optionally extended by extra pattern->replacement pairs from config.
// Extra entries never override the defaults.
func NewNormalizer(extra map[string]string) *Normalizer {
	pairs := make([]string, 0, (len(defaultSubstitutions)+len(extra))*2)
	for pattern, replacement := range defaultSubstitutions {
		pairs = append(pairs, pattern, replacement)
	}
	for pattern, replacement := range extra {
		if _, exists := defaultSubstitutions[pattern]; exists || pattern == "" {
			continue
		}
		pairs = append(pairs, pattern, replacement)
	}
	return &Normalizer{replacer: strings.NewReplacer(pairs...)}
}

// Normalize returns text with every artifact in the table replaced.
// Pure and idempotent: no replacement value appears as a pattern.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}
	return n.replacer.Replace(text)
}

// Normalize applies the default substitution table.
func Normalize(text string) string {
	return NewNormalizer(nil).Normalize(text)
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package segment splits normalized directory text into candidate entry
// blocks. Entries in the source material are separated by blank lines.
package segment

import (
	"regexp"
	"strings"
)

// blockBoundary matches a run of two or more line breaks, tolerating the
// carriage returns and stray horizontal whitespace OCR leaves on "blank"
// lines.
var blockBoundary = regexp.MustCompile(`\r?\n[ \t\r]*\r?\n[\s]*`)

// Block is one candidate entry: its trimmed, non-empty lines in source
// order, plus the zero-based index of the block within the input.
type Block struct {
	Index int
	Lines []string
}

// Split divides normalized text into blocks on blank-line boundaries.
// Lines are trimmed of surrounding whitespace (including \r artifacts)
// and empty lines are dropped. Chunks that contain no non-empty lines
// produce no block. Ordering follows the input.
func Split(text string) []Block {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	chunks := blockBoundary.Split(strings.TrimSpace(text), -1)
	blocks := make([]Block, 0, len(chunks))

	for _, chunk := range chunks {
		var lines []string
		for _, line := range strings.Split(chunk, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			lines = append(lines, line)
		}
		if len(lines) == 0 {
			continue
		}
		blocks = append(blocks, Block{Index: len(blocks), Lines: lines})
	}

	return blocks
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package segment

import (
	"fmt"
	"strings"
	"testing"
)

func TestSplit_BlankLineBoundaries(t *testing.T) {
	text := "Jane Doe\n12345678\nJl. Merdeka 1\n\nJohn Roe\n87654321\nJl. Pahlawan 2"
	blocks := Split(text)

	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Lines[0] != "Jane Doe" {
		t.Errorf("first block starts with %q, want %q", blocks[0].Lines[0], "Jane Doe")
	}
	if blocks[1].Lines[0] != "John Roe" {
		t.Errorf("second block starts with %q, want %q", blocks[1].Lines[0], "John Roe")
	}
}

func TestSplit_OrderAndCount(t *testing.T) {
	// N separated non-empty chunks must yield exactly N blocks in order.
	var parts []string
	for i := 0; i < 25; i++ {
		parts = append(parts, fmt.Sprintf("Name %d\n%08d", i, i))
	}
	blocks := Split(strings.Join(parts, "\n\n"))

	if len(blocks) != 25 {
		t.Fatalf("expected 25 blocks, got %d", len(blocks))
	}
	for i, block := range blocks {
		if block.Index != i {
			t.Errorf("block %d has index %d", i, block.Index)
		}
		expected := fmt.Sprintf("Name %d", i)
		if block.Lines[0] != expected {
			t.Errorf("block %d starts with %q, want %q", i, block.Lines[0], expected)
		}
	}
}

func TestSplit_CarriageReturns(t *testing.T) {
	text := "Jane Doe\r\n12345678\r\n\r\nJohn Roe\r\n87654321"
	blocks := Split(text)

	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	for _, block := range blocks {
		for _, line := range block.Lines {
			if strings.ContainsAny(line, "\r\n") {
				t.Errorf("line %q retains line-break artifacts", line)
			}
		}
	}
}

func TestSplit_WhitespaceOnlySeparatorLines(t *testing.T) {
	// An OCR "blank" line often carries spaces; it still separates blocks.
	text := "Jane Doe\n12345678\n   \nJohn Roe\n87654321"
	blocks := Split(text)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
}

func TestSplit_DropsEmptyChunks(t *testing.T) {
	text := "\n\n\nJane Doe\n12345678\n\n\n\n\n"
	blocks := Split(text)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if len(blocks[0].Lines) != 2 {
		t.Errorf("expected 2 lines, got %d", len(blocks[0].Lines))
	}
}

func TestSplit_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "\n\n\n", "   \n \t\n"} {
		if blocks := Split(input); len(blocks) != 0 {
			t.Errorf("Split(%q) = %d blocks, want 0", input, len(blocks))
		}
	}
}

func TestSplit_SingleBlockKeepsAllLines(t *testing.T) {
	text := "Jane Doe\n12345678\nJl. Merdeka 1\njane@example.com"
	blocks := Split(text)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if len(blocks[0].Lines) != 4 {
		t.Errorf("expected 4 lines, got %d: %v", len(blocks[0].Lines), blocks[0].Lines)
	}
}

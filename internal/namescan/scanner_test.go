// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package namescan

import (
	"strings"
	"testing"
)

func TestScan_FindsNamesBeforeDigitRuns(t *testing.T) {
	// The comma breaks the name character class, so the second match
	// starts cleanly at "John".
	text := "Jane Doe12345678, John Roe87654321"
	candidates := NewScanner(nil).Scan(text)

	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %v", len(candidates), candidates)
	}
	if candidates[0].Name != "Jane Doe" || candidates[0].DigitRun != "12345678" {
		t.Errorf("first candidate = %+v", candidates[0])
	}
	if candidates[1].Name != "John Roe" || candidates[1].DigitRun != "87654321" {
		t.Errorf("second candidate = %+v", candidates[1])
	}
}

func TestScan_IgnoresBlockBoundaries(t *testing.T) {
	// Merged entries with no blank line between them still yield both
	// names; that is the point of the orthogonal scan.
	text := "Jane Doe\n12345678\nJl. Merdeka 1 John Roe\n87654321\nJl. Pahlawan 2"
	names := Names(NewScanner(nil).Scan(text))

	if len(names) != 2 {
		t.Fatalf("expected 2 names, got %v", names)
	}
}

func TestScan_DigitRunBounds(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		found bool
	}{
		{"seven digits rejected", "Jane Doe1234567 ", false},
		{"eight digits accepted", "Jane Doe12345678 ", true},
		{"ten digits accepted", "Jane Doe1234567890 ", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			candidates := NewScanner(nil).Scan(tc.text)
			if got := len(candidates) == 1; got != tc.found {
				t.Errorf("found=%v, want %v (candidates %v)", got, tc.found, candidates)
			}
		})
	}
}

func TestScan_ExclusionFilters(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"gmail keyword", "budi.gmail99887766 "},
		{"dotcom keyword", "wisma.com88776655 "},
		{"yahoo keyword", "siti yahoo mail12398745 "},
		{"phone prefix token", "Tel.99887766 "},
		{"ends with phone prefix", "Jane Doe Tel.99887766 "},
		{"too short", "Ab99887766 "},
		{"too many periods", "J.R.R. Abc99887766 "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if candidates := NewScanner(nil).Scan(tc.text); len(candidates) != 0 {
				t.Errorf("expected rejection, got %v", candidates)
			}
		})
	}
}

func TestScan_MostlyAlphaFilter(t *testing.T) {
	// Fewer than 50% letters is rejected; periods and spaces count
	// against the ratio.
	rejected := "ab    .12345678 "
	if candidates := NewScanner(nil).Scan(rejected); len(candidates) != 0 {
		t.Errorf("expected rejection of low-alpha candidate, got %v", candidates)
	}

	accepted := "Jane Doe12345678 "
	if candidates := NewScanner(nil).Scan(accepted); len(candidates) != 1 {
		t.Errorf("expected acceptance, got %v", candidates)
	}
}

func TestAccept_PhoneFragmentFilter(t *testing.T) {
	// The match pattern itself cannot produce a dash, so this filter is
	// exercised directly; it stays because the keyword lists are
	// config-extensible and a widened pattern must not regress it.
	s := NewScanner(nil)
	if s.accept("Ruko 5/ 2") {
		t.Error("slash-digit fragment should be rejected")
	}
	if s.accept("Blok - 7") {
		t.Error("dash-digit fragment should be rejected")
	}
	if !s.accept("Jane Doe") {
		t.Error("plain name should be accepted")
	}
}

func TestScan_DeduplicatesByExactString(t *testing.T) {
	text := "Jane Doe12345678, Jane Doe12345678,"
	names := Names(NewScanner(nil).Scan(text))

	if len(names) != 1 {
		t.Fatalf("expected 1 deduplicated name, got %v", names)
	}
	if names[0] != "Jane Doe" {
		t.Errorf("name = %q", names[0])
	}
}

func TestScan_CaseDifferingNamesAreDistinct(t *testing.T) {
	text := "Jane Doe12345678, JANE DOE87654321 "
	names := Names(NewScanner(nil).Scan(text))
	if len(names) != 2 {
		t.Errorf("dedup must be exact-match, got %v", names)
	}
}

func TestScan_ExtraKeywords(t *testing.T) {
	s := NewScanner([]string{"wisma"})
	if candidates := s.Scan("Wisma Barat12345678 "); len(candidates) != 0 {
		t.Errorf("configured keyword not applied: %v", candidates)
	}
}

func TestScan_OrderFollowsSource(t *testing.T) {
	var b strings.Builder
	expected := []string{"Alpha Satu", "Beta Dua", "Gamma Tiga"}
	digits := []string{"11112222", "33334444", "55556666"}
	for i, name := range expected {
		b.WriteString(name)
		b.WriteString(digits[i])
		b.WriteString(", ")
	}

	names := Names(NewScanner(nil).Scan(b.String()))
	if len(names) != len(expected) {
		t.Fatalf("got %v", names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("position %d = %q, want %q", i, names[i], expected[i])
		}
	}
}

func TestScan_EmptyInput(t *testing.T) {
	if candidates := NewScanner(nil).Scan(""); len(candidates) != 0 {
		t.Errorf("expected no candidates, got %v", candidates)
	}
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package crossval reconciles the two extraction strategies: the names
// the heuristic scanner found in the raw text versus the full names that
// actually made it into records. A name present in one set but not the
// other is the signal that extraction silently lost or invented data.
package crossval

import "strings"

// Classification relates the scanned and recorded counts.
type Classification string

const (
	// Consistent means both strategies saw the same number of entries.
	Consistent Classification = "consistent"
	// OverExtracted means more records than scanned names. Not
	// necessarily an error: the extractor emits records the scanner's
	// stricter filters may reject.
	OverExtracted Classification = "over-extracted"
	// UnderExtracted means fewer records than scanned names. Likely
	// real data loss; worth investigating.
	UnderExtracted Classification = "under-extracted"
)

// Result is the outcome of one validation run. Recomputed fresh every
// run; nothing is persisted.
type Result struct {
	MissingNames   []string
	TotalScanned   int
	TotalRecorded  int
	Classification Classification

	// PriorSourceFailed is set when validation ran against an external
	// record set that could not be read. The run degrades to zero
	// recorded names rather than aborting.
	PriorSourceFailed bool
}

// Passed reports the overall verdict: no scanned name went missing.
func (r Result) Passed() bool {
	return len(r.MissingNames) == 0
}

// Validate computes which candidate names have no case-insensitive exact
// match among the recorded full names. Matching is exact after
// lowercasing; no fuzzy comparison. MissingNames preserves candidate
// order.
func Validate(candidates []string, recorded []string) Result {
	recordedSet := make(map[string]bool, len(recorded))
	for _, name := range recorded {
		recordedSet[strings.ToLower(name)] = true
	}

	var missing []string
	for _, candidate := range candidates {
		if !recordedSet[strings.ToLower(candidate)] {
			missing = append(missing, candidate)
		}
	}

	return Result{
		MissingNames:   missing,
		TotalScanned:   len(candidates),
		TotalRecorded:  len(recorded),
		Classification: classify(len(candidates), len(recorded)),
	}
}

func classify(scanned, recorded int) Classification {
	switch {
	case recorded > scanned:
		return OverExtracted
	case recorded < scanned:
		return UnderExtracted
	default:
		return Consistent
	}
}

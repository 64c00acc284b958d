// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"roster-scan/internal/pipeline"
)

func writeRoster(t *testing.T, dir string, ordinal int) string {
	t.Helper()
	content := fmt.Sprintf("Person %c\n1234567%d\nJl. Merdeka %d\np%d@example.com\nTel. 021-55%d\n",
		'A'+rune(ordinal), ordinal, ordinal, ordinal, ordinal)
	path := filepath.Join(dir, fmt.Sprintf("roster-%d.txt", ordinal))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunAll_OrderedResults(t *testing.T) {
	dir := t.TempDir()
	var sources []pipeline.Source
	for i := 0; i < 5; i++ {
		sources = append(sources, pipeline.Source{Path: writeRoster(t, dir, i)})
	}

	results := RunAll(3, pipeline.New(pipeline.Options{}), nil, sources)

	if len(results) != len(sources) {
		t.Fatalf("results = %d, want %d", len(results), len(sources))
	}
	for i, result := range results {
		if result == nil {
			t.Fatalf("result %d missing", i)
		}
		if result.Ordinal != i {
			t.Errorf("result %d has ordinal %d", i, result.Ordinal)
		}
		if result.Source != sources[i].Path {
			t.Errorf("result %d source = %q, want %q", i, result.Source, sources[i].Path)
		}
		if result.Error != nil {
			t.Errorf("result %d error: %v", i, result.Error)
		}
		if len(result.Run.Records) != 1 {
			t.Errorf("result %d records = %d", i, len(result.Run.Records))
		}
	}
}

func TestRunAll_ErrorIsolatedPerSource(t *testing.T) {
	dir := t.TempDir()
	sources := []pipeline.Source{
		{Path: writeRoster(t, dir, 0)},
		{Path: filepath.Join(dir, "absent.txt")},
		{Path: writeRoster(t, dir, 2)},
	}

	results := RunAll(2, pipeline.New(pipeline.Options{}), nil, sources)

	if results[0].Error != nil || results[2].Error != nil {
		t.Errorf("healthy sources errored: %v, %v", results[0].Error, results[2].Error)
	}
	if results[1].Error == nil {
		t.Error("expected error for missing source")
	}
	if results[1].Run != nil {
		t.Error("failed source should carry no run result")
	}
}

func TestRunAll_SingleWorkerFloor(t *testing.T) {
	dir := t.TempDir()
	sources := []pipeline.Source{{Path: writeRoster(t, dir, 0)}}

	// Zero workers must still make progress.
	results := RunAll(0, pipeline.New(pipeline.Options{}), nil, sources)
	if len(results) != 1 || results[0] == nil || results[0].Error != nil {
		t.Fatalf("results = %+v", results)
	}
}

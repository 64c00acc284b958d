// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package recordio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roster-scan/internal/extract"
)

func TestWriteRecords_HeaderAndRows(t *testing.T) {
	records := []extract.Record{
		{Identifier: "12345678", FullName: "Jane Doe", Email: "jane@example.com", Phone: "021-555", Address: "Jl. Merdeka 1"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, records))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "NIM,Fullname,Email,Phone Number,Address", lines[0])
	assert.Equal(t, "12345678,Jane Doe,jane@example.com,021-555,Jl. Merdeka 1", lines[1])
}

func TestWriteRecords_EscapesCommasAndQuotes(t *testing.T) {
	records := []extract.Record{
		{Identifier: "12345678", FullName: `Jane "JD" Doe`, Email: "", Phone: "", Address: "Jl. Merdeka 1, Blok C"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, records))

	assert.Contains(t, buf.String(), `"Jane ""JD"" Doe"`)
	assert.Contains(t, buf.String(), `"Jl. Merdeka 1, Blok C"`)
}

func TestWriteRecords_SanitizesFormulaPrefix(t *testing.T) {
	records := []extract.Record{
		{Identifier: "12345678", FullName: "=SUM(A1)", Phone: "-555"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, records))

	assert.Contains(t, buf.String(), "'=SUM(A1)")
	assert.Contains(t, buf.String(), "'-555")
}

func TestReadPriorNames_RoundTrip(t *testing.T) {
	records := []extract.Record{
		{Identifier: "12345678", FullName: "Jane Doe", Email: "jane@example.com", Phone: "021-555", Address: "Jl. Merdeka 1"},
		{Identifier: "87654321", FullName: "John Roe", Address: "Jl. Pahlawan 2, Blok A"},
	}

	path := filepath.Join(t.TempDir(), "alumni.csv")
	require.NoError(t, WriteFile(path, records))

	names, ok := ReadPriorNames(path)
	require.True(t, ok)
	assert.Equal(t, []string{"Jane Doe", "John Roe"}, names)
}

func TestReadPriorNames_MissingFile(t *testing.T) {
	names, ok := ReadPriorNames(filepath.Join(t.TempDir(), "absent.csv"))
	assert.False(t, ok)
	assert.Empty(t, names)
}

func TestReadPriorNames_NoFullnameColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c\n1,2,3\n"), 0o644))

	_, ok := ReadPriorNames(path)
	assert.False(t, ok)
}

func TestReadPriorNames_HeaderCaseInsensitive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.csv")
	require.NoError(t, os.WriteFile(path, []byte("nim,FULLNAME\n12345678,Jane Doe\n"), 0o644))

	names, ok := ReadPriorNames(path)
	require.True(t, ok)
	assert.Equal(t, []string{"Jane Doe"}, names)
}

func TestReadPriorNames_RaggedRowsSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ragged.csv")
	require.NoError(t, os.WriteFile(path, []byte("NIM,Fullname\n12345678,Jane Doe\n99\n"), 0o644))

	names, ok := ReadPriorNames(path)
	require.True(t, ok)
	assert.Equal(t, []string{"Jane Doe"}, names)
}

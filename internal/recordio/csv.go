// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package recordio persists extracted records as CSV and reads prior
// record sets back for cross-validation.
package recordio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"roster-scan/internal/extract"
)

// Header is the fixed output column order. Column names match the
// historical sheets the validation runs compare against.
var Header = []string{"NIM", "Fullname", "Email", "Phone Number", "Address"}

// fullnameColumn is the column the prior-record reader needs.
const fullnameColumn = "Fullname"

// WriteRecords writes the header plus one row per record.
func WriteRecords(w io.Writer, records []extract.Record) error {
	rows := make([]string, 0, len(records)+1)
	rows = append(rows, strings.Join(Header, ","))

	for _, r := range records {
		fields := []string{r.Identifier, r.FullName, r.Email, r.Phone, r.Address}
		escaped := make([]string, len(fields))
		for i, field := range fields {
			escaped[i] = escapeField(field)
		}
		rows = append(rows, strings.Join(escaped, ","))
	}

	_, err := io.WriteString(w, strings.Join(rows, "\n")+"\n")
	return err
}

// WriteFile writes records to path, creating or truncating it.
func WriteFile(path string, records []extract.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteRecords(f, records); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// ReadPriorNames extracts the Fullname column from a previously written
// CSV. A missing, unreadable, or headerless file is a degraded condition,
// not an error: it returns no names and ok=false, and the caller
// validates against an empty set.
func ReadPriorNames(path string) (names []string, ok bool) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, false
	}

	nameIndex := -1
	for i, col := range header {
		if strings.EqualFold(strings.TrimSpace(col), fullnameColumn) {
			nameIndex = i
			break
		}
	}
	if nameIndex < 0 {
		return nil, false
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, false
		}
		if nameIndex < len(row) {
			names = append(names, strings.TrimSpace(row[nameIndex]))
		}
	}

	return names, true
}

// escapeField quotes a CSV field when needed and neutralizes spreadsheet
// formula injection, same as the scan report CSVs.
func escapeField(field string) string {
	field = sanitizeFormulaInjection(field)

	if strings.ContainsAny(field, ",\"\n\r") {
		return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return field
}

// sanitizeFormulaInjection prefixes fields that a spreadsheet would
// execute as a formula.
func sanitizeFormulaInjection(field string) string {
	if len(field) == 0 {
		return field
	}
	switch field[0] {
	case '=', '+', '-', '@':
		return "'" + field
	}
	return field
}

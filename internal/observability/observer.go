// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package observability provides operation timing for the extraction
// pipeline. Rendering of results stays elsewhere; this only records what
// ran, for how long, and whether it worked.
package observability

import (
	"encoding/json"
	"io"
	"time"
)

// Level controls how much the observer emits.
type Level int

const (
	// Off disables all emission.
	Off Level = iota
	// Metrics tracks timings without emitting per-operation lines.
	Metrics
	// Debug emits one JSON line per completed operation.
	Debug
)

// Observer records pipeline operations.
type Observer struct {
	level  Level
	writer io.Writer
}

// NewObserver creates an observer writing debug lines to w.
func NewObserver(level Level, w io.Writer) *Observer {
	return &Observer{level: level, writer: w}
}

// OperationData is one completed operation.
type OperationData struct {
	Component  string         `json:"component"`
	Operation  string         `json:"operation"`
	Source     string         `json:"source,omitempty"`
	DurationMs int64          `json:"duration_ms"`
	Success    bool           `json:"success"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// StartTiming begins timing an operation and returns the completion
// callback. Safe to call on a nil observer; the callback is still
// non-nil.
func (o *Observer) StartTiming(component, operation, source string) func(success bool, metadata map[string]any) {
	if o == nil || o.level == Off {
		return func(bool, map[string]any) {}
	}

	start := time.Now()
	return func(success bool, metadata map[string]any) {
		o.log(OperationData{
			Component:  component,
			Operation:  operation,
			Source:     source,
			DurationMs: time.Since(start).Milliseconds(),
			Success:    success,
			Metadata:   metadata,
		})
	}
}

func (o *Observer) log(data OperationData) {
	if o.level < Debug || o.writer == nil {
		return
	}
	json.NewEncoder(o.writer).Encode(data)
}

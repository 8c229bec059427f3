// Copyright 2025 - 2026, Bartosz Jarocki and the templ-i18next contributors
// SPDX-License-Identifier: MIT

package audit

import (
	"context"
	"fmt"
	"runtime/trace"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// Span represents one source file moving through the rewrite pipeline.
type Span struct {
	// only these fields are set automatically
	task     *trace.Task
	start    time.Time
	duration time.Duration

	Stage        Stage
	File         string
	Replacements int
	Units        []string
	Bytes        int // Bytes is the size of the rendered output, when written
	Error        error
}

// Stage names a pipeline phase.
type Stage string

// Constants for pipeline stages.
const (
	StageParse   Stage = "parse"
	StageRewrite Stage = "rewrite"
	StageWrite   Stage = "write"
)

// Begin starts timing the span and opens an execution trace task, so runs
// under `go tool trace` show per-file regions.
func (span *Span) Begin(ctx context.Context) context.Context {
	span.start = time.Now()

	ctx, span.task = trace.NewTask(ctx, string(span.Stage))

	return ctx
}

// End stops timing. Calling End more than once is harmless.
func (span *Span) End() {
	// only log once
	if span.task != nil {
		span.duration = time.Since(span.start)
		span.task.End()

		span.task = nil
	}
}

// Log emits the span at debug level.
func (span Span) Log() {
	event := log.Debug()

	event.Str("sys", string(span.Stage))
	event.Str("file", span.File)
	event.Dur("dur", span.duration)

	if span.Replacements > 0 {
		event.Int("replacements", span.Replacements)
	}

	if len(span.Units) > 0 {
		event.Strs("units", span.Units)
	}

	if span.Bytes > 0 {
		event.Str("len", humanizeSize(span.Bytes))
	}

	if span.Error != nil {
		event.Err(span.Error)
	}

	event.Send()
}

const (
	bytesInKB = 1024
	bytesInMB = bytesInKB * bytesInKB
	bytesInGB = bytesInMB * bytesInKB
)

func humanizeSize(x int) string {
	if x < bytesInKB {
		return strconv.Itoa(x)
	}

	if x < bytesInMB {
		return fmt.Sprintf("%.2fK", float64(x)/bytesInKB)
	}

	if x < bytesInGB {
		return fmt.Sprintf("%.2fM", float64(x)/bytesInMB)
	}

	return fmt.Sprintf("%.2fG", float64(x)/bytesInGB)
}

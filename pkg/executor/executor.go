// Package executor runs a suite's cases one after another. Cases are
// independent: a failing or unreachable case never stops the ones after it.
package executor

import (
	"context"
	"log/slog"
	"time"

	"harnesscheck/pkg/response"
	"harnesscheck/pkg/suite"
)

// Runner executes and reports a single case.
type Runner interface {
	Run(ctx context.Context, tc suite.Case) *response.Record
}

// Completer prints the end-of-run banner.
type Completer interface {
	Complete()
}

// Execute runs every case of s in order through run, then calls done exactly
// once. A cancelled ctx does not skip cases; each remaining request fails
// fast and is reported as a transport failure.
func Execute(ctx context.Context, s *suite.Suite, run Runner, done Completer) {
	start := time.Now()
	slog.Info("Starting suite", "suite", s.Name, "cases", len(s.Cases))

	for i, tc := range s.Cases {
		slog.Debug("Running case", "index", i+1, "name", tc.Name, "method", tc.Method, "path", tc.Path)
		run.Run(ctx, tc)
	}

	done.Complete()
	slog.Info("Suite finished", "suite", s.Name, "duration", time.Since(start))
}

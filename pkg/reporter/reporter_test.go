package reporter_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"harnesscheck/pkg/reporter"
)

func newReporter() (*reporter.Reporter, *bytes.Buffer) {
	var buf bytes.Buffer
	r := reporter.New(&buf)
	r.DisableColor()
	return r, &buf
}

func TestReporterLines(t *testing.T) {
	testCases := []struct {
		Name     string
		Emit     func(r *reporter.Reporter)
		Expected string
	}{
		{
			Name:     "pass",
			Emit:     func(r *reporter.Reporter) { r.Pass("health - basic", 200) },
			Expected: "✓ health - basic [200]\n",
		},
		{
			Name:     "fail_with_dump",
			Emit:     func(r *reporter.Reporter) { r.Fail("health - basic", 200, "{\n  \"status\": \"degraded\"\n}") },
			Expected: "✗ health - basic [200]\n  Response: {\n  \"status\": \"degraded\"\n}\n",
		},
		{
			Name: "transport_failure",
			Emit: func(r *reporter.Reporter) {
				r.TransportFailure("health - basic", errors.New("connection refused"))
			},
			Expected: "✗ health - basic - connection refused\n",
		},
		{
			Name:     "banner",
			Emit:     func(r *reporter.Reporter) { r.Complete() },
			Expected: "\n=== Tests Complete ===\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			r, buf := newReporter()
			tc.Emit(r)
			assert.Equal(t, tc.Expected, buf.String())
		})
	}
}

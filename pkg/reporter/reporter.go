// Package reporter prints endpoint check results to the console.
package reporter

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

const (
	passGlyph = "✓"
	failGlyph = "✗"

	// Banner is printed once after the last case.
	Banner = "=== Tests Complete ==="
)

// Reporter formats one line per case onto w.
type Reporter struct {
	mu   sync.Mutex
	w    io.Writer
	pass *color.Color
	fail *color.Color
	dim  *color.Color
}

// New creates a Reporter writing to w. Colors follow color.NoColor unless
// disabled explicitly with DisableColor.
func New(w io.Writer) *Reporter {
	return &Reporter{
		w:    w,
		pass: color.New(color.FgGreen),
		fail: color.New(color.FgRed),
		dim:  color.New(color.Faint),
	}
}

// DisableColor turns off colored glyphs for this reporter only.
func (r *Reporter) DisableColor() {
	r.pass.DisableColor()
	r.fail.DisableColor()
	r.dim.DisableColor()
}

// Pass prints "✓ name [status]".
func (r *Reporter) Pass(name string, status int) {
	r.printf("%s %s [%d]\n", r.pass.Sprint(passGlyph), name, status)
}

// Fail prints "✗ name [status]" followed by the indented response dump.
func (r *Reporter) Fail(name string, status int, dump string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, "%s %s [%d]\n", r.fail.Sprint(failGlyph), name, status)
	fmt.Fprintf(r.w, "  Response: %s\n", r.dim.Sprint(dump))
}

// TransportFailure prints "✗ name - err" for a request that got no response.
func (r *Reporter) TransportFailure(name string, err error) {
	r.printf("%s %s - %v\n", r.fail.Sprint(failGlyph), name, err)
}

// Complete prints the end-of-run banner preceded by a blank line.
func (r *Reporter) Complete() {
	r.printf("\n%s\n", Banner)
}

func (r *Reporter) printf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, format, args...)
}

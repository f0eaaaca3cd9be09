// Package suite defines the test cases run by the endpoint checker, the
// built-in AethermancerHarness suite, and the YAML suite file format.
package suite

import (
	"net/http"

	"harnesscheck/pkg/checks"
)

// Case is one independent request/check pair. A nil Body sends no request
// body; a nil Check falls back to checks.Default.
type Case struct {
	Name   string
	Method string
	Path   string
	Body   map[string]any
	Check  checks.Check
}

// Suite is an ordered list of cases.
type Suite struct {
	Name        string
	Description string
	Cases       []Case
}

// File is the top-level structure of a YAML suite file.
type File struct {
	Name        string            `yaml:"name" json:"name"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty"`
	Variables   map[string]string `yaml:"variables,omitempty" json:"variables,omitempty"`
	Cases       []CaseSpec        `yaml:"cases" json:"cases"`
}

// CaseSpec is the declarative form of a Case.
type CaseSpec struct {
	Name   string         `yaml:"name" json:"name"`
	Method string         `yaml:"method,omitempty" json:"method,omitempty"`
	Path   string         `yaml:"path" json:"path"`
	Body   map[string]any `yaml:"body,omitempty" json:"body,omitempty"`
	Check  *checks.Spec   `yaml:"check,omitempty" json:"check,omitempty"`
}

var knownMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
}

// This file handles loading suites from YAML files: unmarshalling into File,
// validating its structure, substituting variables and compiling checks.
package suite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"harnesscheck/pkg/checks"
	"harnesscheck/pkg/vars"
)

// LoadSuiteFromFile reads a YAML suite file and compiles it into a Suite.
func LoadSuiteFromFile(filePath string) (*Suite, error) {
	data, err := os.ReadFile(filepath.Clean(filePath))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read suite file '%s'", filePath)
	}

	s, err := ParseSuite(data)
	if err != nil {
		return nil, errors.Wrapf(err, "suite file '%s'", filepath.Base(filePath))
	}
	return s, nil
}

// ParseSuite compiles YAML suite content into a Suite.
func ParseSuite(data []byte) (*Suite, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "YAML parsing error")
	}
	if err := ValidateFile(&f); err != nil {
		return nil, errors.Wrap(err, "validation failed")
	}
	return Compile(&f, checks.DefaultRegistry)
}

// ValidateFile performs structural validation of a suite file.
func ValidateFile(f *File) error {
	if f == nil {
		return errors.New("nil suite cannot be validated")
	}
	if f.Name == "" {
		return errors.New("suite name is required")
	}
	if len(f.Cases) == 0 {
		return errors.New("at least one case is required")
	}

	seen := make(map[string]int, len(f.Cases))
	for i, c := range f.Cases {
		if c.Name == "" {
			return errors.Errorf("cases[%d].name is required", i)
		}
		if prev, dup := seen[c.Name]; dup {
			return errors.Errorf("cases[%d].name %q duplicates cases[%d]", i, c.Name, prev)
		}
		seen[c.Name] = i

		if c.Path == "" {
			return errors.Errorf("cases[%d].path is required", i)
		}
		if !strings.HasPrefix(c.Path, "/") && !strings.HasPrefix(c.Path, "{{") {
			return errors.Errorf("cases[%d].path must start with '/': %s", i, c.Path)
		}
		if c.Method != "" && !knownMethods[strings.ToUpper(c.Method)] {
			return errors.Errorf("cases[%d].method %q is not a supported HTTP method", i, c.Method)
		}
	}
	return nil
}

// Compile substitutes variables and builds checks, turning a validated File
// into a runnable Suite.
func Compile(f *File, registry *checks.Registry) (*Suite, error) {
	set := vars.New(f.Variables)
	s := &Suite{
		Name:        f.Name,
		Description: f.Description,
		Cases:       make([]Case, 0, len(f.Cases)),
	}

	for i, spec := range f.Cases {
		c, err := compileCase(&spec, set, registry)
		if err != nil {
			return nil, fmt.Errorf("cases[%d] (%s): %w", i, spec.Name, err)
		}
		s.Cases = append(s.Cases, *c)
	}
	return s, nil
}

func compileCase(spec *CaseSpec, set *vars.Set, registry *checks.Registry) (*Case, error) {
	method := strings.ToUpper(spec.Method)
	if method == "" {
		method = "GET"
	}

	name, err := set.Substitute(spec.Name)
	if err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}

	path, err := set.Substitute(spec.Path)
	if err != nil {
		return nil, fmt.Errorf("path: %w", err)
	}
	if !strings.HasPrefix(path, "/") {
		return nil, fmt.Errorf("path must start with '/' after substitution: %s", path)
	}

	var body map[string]any
	if spec.Body != nil {
		sub, err := set.SubstituteValue(spec.Body)
		if err != nil {
			return nil, fmt.Errorf("body: %w", err)
		}
		body = sub.(map[string]any)
		if _, err := json.Marshal(body); err != nil {
			return nil, fmt.Errorf("body is not encodable as JSON: %w", err)
		}
	}

	check, err := registry.Build(spec.Check)
	if err != nil {
		return nil, fmt.Errorf("check: %w", err)
	}

	return &Case{
		Name:   name,
		Method: method,
		Path:   path,
		Body:   body,
		Check:  check,
	}, nil
}

// Package vars implements {{ ... }} substitution for suite files. A Set is
// built once from the suite's variables and never mutated, so every case sees
// the same values regardless of execution order.
package vars

import (
	"fmt"
	"sort"
	"strings"
)

// Set is an immutable collection of named string variables.
type Set struct {
	values map[string]string
}

// New copies values into a new Set.
func New(values map[string]string) *Set {
	s := &Set{values: make(map[string]string, len(values))}
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

// Lookup returns the value of name.
func (s *Set) Lookup(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.values[name]
	return v, ok
}

// Names returns the variable names in sorted order.
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.values))
	for k := range s.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Substitute replaces every {{ name }} or {{ func(args) }} in input.
func (s *Set) Substitute(input string) (string, error) {
	if !strings.Contains(input, "{{") {
		return input, nil
	}

	var out strings.Builder
	rest := input
	for {
		open := strings.Index(rest, "{{")
		if open == -1 {
			out.WriteString(rest)
			break
		}
		closing := strings.Index(rest[open:], "}}")
		if closing == -1 {
			return "", fmt.Errorf("unclosed substitution pattern in '%s'", rest[open:])
		}
		closing += open

		replacement, err := s.resolve(strings.TrimSpace(rest[open+2 : closing]))
		if err != nil {
			return "", err
		}
		out.WriteString(rest[:open])
		out.WriteString(replacement)
		rest = rest[closing+2:]
	}
	return out.String(), nil
}

// SubstituteValue walks a decoded body and substitutes inside every string.
// Maps and slices are copied; other values are returned unchanged.
func (s *Set) SubstituteValue(v any) (any, error) {
	switch t := v.(type) {
	case string:
		return s.Substitute(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			sub, err := s.SubstituteValue(item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			out[k] = sub
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			sub, err := s.SubstituteValue(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = sub
		}
		return out, nil
	default:
		return v, nil
	}
}

func (s *Set) resolve(pattern string) (string, error) {
	if pattern == "" {
		return "", fmt.Errorf("empty substitution pattern")
	}

	nameEnd := strings.Index(pattern, "(")
	if nameEnd == -1 {
		v, ok := s.Lookup(pattern)
		if !ok {
			return "", fmt.Errorf("undefined variable: %s", pattern)
		}
		return v, nil
	}

	if !strings.HasSuffix(pattern, ")") {
		return "", fmt.Errorf("invalid function call syntax: missing closing parenthesis in '%s'", pattern)
	}
	name := strings.TrimSpace(pattern[:nameEnd])
	fn, ok := GetFunction(name)
	if !ok {
		return "", fmt.Errorf("undefined function: %s", name)
	}

	var args []string
	if argsStr := strings.TrimSpace(pattern[nameEnd+1 : len(pattern)-1]); argsStr != "" {
		for _, raw := range strings.Split(argsStr, ",") {
			arg := strings.TrimSpace(raw)
			if unquoted, ok := unquote(arg); ok {
				args = append(args, unquoted)
				continue
			}
			if v, ok := s.Lookup(arg); ok {
				args = append(args, v)
				continue
			}
			args = append(args, arg)
		}
	}

	result, err := fn(args...)
	if err != nil {
		return "", fmt.Errorf("error executing function %s: %w", name, err)
	}
	return result, nil
}

func unquote(s string) (string, bool) {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1], true
	}
	return "", false
}

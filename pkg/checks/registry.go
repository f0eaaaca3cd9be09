// This file defines the registry that turns a declarative Spec into a Check.
// Builders are registered by type name in init and looked up at suite load
// time, so an unknown or malformed check fails before any request is sent.
package checks

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"github.com/antchfx/xpath"
)

// Builder compiles a Spec of one type into a Check. The registry is passed in
// so composite types can build their children.
type Builder func(r *Registry, spec *Spec) (Check, error)

// Registry manages the registration and lookup of check builders.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// NewRegistry creates a new empty check registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]Builder)}
}

// Register adds a builder for checkType.
func (r *Registry) Register(checkType string, b Builder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b == nil {
		return fmt.Errorf("check builder for type '%s' is nil", checkType)
	}
	if _, exists := r.builders[checkType]; exists {
		return fmt.Errorf("check builder for type '%s' is already registered", checkType)
	}
	r.builders[checkType] = b
	return nil
}

// MustRegister adds a builder, panicking if it fails.
func (r *Registry) MustRegister(checkType string, b Builder) {
	if err := r.Register(checkType, b); err != nil {
		panic(err)
	}
}

// Get retrieves the builder for checkType.
func (r *Registry) Get(checkType string) (Builder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, exists := r.builders[checkType]
	if !exists {
		return nil, fmt.Errorf("no builder registered for check type '%s'", checkType)
	}
	return b, nil
}

// Types lists the registered check types.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.builders))
	for t := range r.builders {
		types = append(types, t)
	}
	return types
}

// Build compiles spec. A nil spec yields Default.
func (r *Registry) Build(spec *Spec) (Check, error) {
	if spec == nil {
		return Default(), nil
	}
	if spec.Type == "" {
		return nil, fmt.Errorf("check missing required 'type' field")
	}
	b, err := r.Get(spec.Type)
	if err != nil {
		return nil, err
	}
	c, err := b(r, spec)
	if err != nil {
		return nil, fmt.Errorf("%s check: %w", spec.Type, err)
	}
	return c, nil
}

func (r *Registry) buildAll(specs []Spec) ([]Check, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("requires at least one entry in 'checks'")
	}
	cs := make([]Check, 0, len(specs))
	for i := range specs {
		c, err := r.Build(&specs[i])
		if err != nil {
			return nil, fmt.Errorf("checks[%d]: %w", i, err)
		}
		cs = append(cs, c)
	}
	return cs, nil
}

// DefaultRegistry holds the standard check types.
var DefaultRegistry = NewRegistry()

// MustRegisterCheck registers a builder with the default registry.
func MustRegisterCheck(checkType string, b Builder) {
	DefaultRegistry.MustRegister(checkType, b)
}

// Build compiles spec with the default registry.
func Build(spec *Spec) (Check, error) {
	return DefaultRegistry.Build(spec)
}

func buildStatusOK(_ *Registry, _ *Spec) (Check, error) {
	return Default(), nil
}

func buildStatus(_ *Registry, spec *Spec) (Check, error) {
	switch {
	case spec.Status != 0:
		return StatusIs(spec.Status), nil
	case spec.Range != "":
		lo, hi, found := strings.Cut(spec.Range, "-")
		if !found {
			return nil, fmt.Errorf("invalid status range format: %s", spec.Range)
		}
		min, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid min status in range: %s", lo)
		}
		max, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return nil, fmt.Errorf("invalid max status in range: %s", hi)
		}
		if min > max {
			return nil, fmt.Errorf("empty status range: %s", spec.Range)
		}
		return StatusBetween(min, max), nil
	default:
		return nil, fmt.Errorf("requires 'status' or 'range'")
	}
}

func buildFieldEquals(_ *Registry, spec *Spec) (Check, error) {
	if spec.Key == "" {
		return nil, fmt.Errorf("requires 'key'")
	}
	return FieldEquals(spec.Key, spec.Value), nil
}

func buildHasKey(_ *Registry, spec *Spec) (Check, error) {
	if spec.Key == "" {
		return nil, fmt.Errorf("requires 'key'")
	}
	return HasKey(spec.Key), nil
}

func buildHasAnyKey(_ *Registry, spec *Spec) (Check, error) {
	if len(spec.Keys) == 0 {
		return nil, fmt.Errorf("requires 'keys'")
	}
	return HasAnyKey(spec.Keys...), nil
}

func buildLacksKey(_ *Registry, spec *Spec) (Check, error) {
	if spec.Key == "" {
		return nil, fmt.Errorf("requires 'key'")
	}
	return LacksKey(spec.Key), nil
}

func buildJSONPath(_ *Registry, spec *Spec) (Check, error) {
	if spec.Path == "" {
		return nil, fmt.Errorf("requires 'path'")
	}
	expr, err := parsePath(spec.Path)
	if err != nil {
		return nil, err
	}
	if spec.Null {
		if spec.Value != nil || spec.Pattern != "" {
			return nil, fmt.Errorf("'null' excludes 'value' and 'pattern'")
		}
		return JSONPathNull(spec.Path), nil
	}
	var re *regexp.Regexp
	if spec.Pattern != "" {
		if re, err = regexp.Compile(spec.Pattern); err != nil {
			return nil, fmt.Errorf("invalid regex pattern %s: %w", spec.Pattern, err)
		}
	}
	return jsonPath(expr, spec.Value, re), nil
}

func buildSchema(_ *Registry, spec *Spec) (Check, error) {
	if len(spec.Schema) == 0 {
		return nil, fmt.Errorf("requires 'schema'")
	}
	schema, err := compileSchema(spec.Schema)
	if err != nil {
		return nil, err
	}
	return Schema(schema), nil
}

func buildBodyContains(_ *Registry, spec *Spec) (Check, error) {
	if spec.Contains == "" {
		return nil, fmt.Errorf("requires 'contains'")
	}
	return BodyContains(spec.Contains), nil
}

func buildBodyRegex(_ *Registry, spec *Spec) (Check, error) {
	if spec.Pattern == "" {
		return nil, fmt.Errorf("requires 'pattern'")
	}
	re, err := regexp.Compile(spec.Pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern %s: %w", spec.Pattern, err)
	}
	return BodyMatches(re), nil
}

func buildHeader(_ *Registry, spec *Spec) (Check, error) {
	if spec.Header == "" {
		return nil, fmt.Errorf("requires 'header'")
	}
	if spec.Contains != "" {
		return HeaderContains(spec.Header, spec.Contains), nil
	}
	want, ok := spec.Value.(string)
	if !ok {
		return nil, fmt.Errorf("requires a string 'value' or 'contains'")
	}
	return HeaderEquals(spec.Header, want), nil
}

func buildCSS(_ *Registry, spec *Spec) (Check, error) {
	if spec.Selector == "" {
		return nil, fmt.Errorf("requires 'selector'")
	}
	if _, err := cascadia.Compile(spec.Selector); err != nil {
		return nil, fmt.Errorf("invalid selector %s: %w", spec.Selector, err)
	}
	return CSSMatches(spec.Selector, spec.Contains), nil
}

func buildXPath(_ *Registry, spec *Spec) (Check, error) {
	if spec.XPath == "" {
		return nil, fmt.Errorf("requires 'xpath'")
	}
	if _, err := xpath.Compile(spec.XPath); err != nil {
		return nil, fmt.Errorf("invalid xpath %s: %w", spec.XPath, err)
	}
	return XPathMatches(spec.XPath, spec.Contains), nil
}

func buildAnyOf(r *Registry, spec *Spec) (Check, error) {
	cs, err := r.buildAll(spec.Checks)
	if err != nil {
		return nil, err
	}
	return Any(cs...), nil
}

func buildAllOf(r *Registry, spec *Spec) (Check, error) {
	cs, err := r.buildAll(spec.Checks)
	if err != nil {
		return nil, err
	}
	return All(cs...), nil
}

func buildNot(r *Registry, spec *Spec) (Check, error) {
	if len(spec.Checks) != 1 {
		return nil, fmt.Errorf("requires exactly one entry in 'checks'")
	}
	c, err := r.Build(&spec.Checks[0])
	if err != nil {
		return nil, err
	}
	return Not(c), nil
}

func buildAlways(_ *Registry, _ *Spec) (Check, error) {
	return Always(), nil
}

func init() {
	MustRegisterCheck("status_ok", buildStatusOK)
	MustRegisterCheck("status", buildStatus)
	MustRegisterCheck("field_equals", buildFieldEquals)
	MustRegisterCheck("has_key", buildHasKey)
	MustRegisterCheck("has_any_key", buildHasAnyKey)
	MustRegisterCheck("lacks_key", buildLacksKey)
	MustRegisterCheck("json_path", buildJSONPath)
	MustRegisterCheck("json_schema", buildSchema)
	MustRegisterCheck("body_contains", buildBodyContains)
	MustRegisterCheck("body_regex", buildBodyRegex)
	MustRegisterCheck("header", buildHeader)
	MustRegisterCheck("css", buildCSS)
	MustRegisterCheck("xpath", buildXPath)
	MustRegisterCheck("any_of", buildAnyOf)
	MustRegisterCheck("all_of", buildAllOf)
	MustRegisterCheck("not", buildNot)
	MustRegisterCheck("always", buildAlways)
}

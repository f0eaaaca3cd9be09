// Package checks defines the judgment applied to a harness response and
// provides a registry of declarative check types used by YAML suites.
// Each case carries at most one Check; a case without one is judged by Default.
package checks

import (
	"fmt"
	"strings"

	"harnesscheck/pkg/response"
)

// Check decides whether a response passes.
type Check interface {
	Evaluate(rec *response.Record) bool
}

// CheckFunc adapts an ordinary function to the Check interface.
type CheckFunc func(rec *response.Record) bool

// Evaluate calls f(rec).
func (f CheckFunc) Evaluate(rec *response.Record) bool {
	return f(rec)
}

// described pairs a check function with a human-readable description used by
// the list command.
type described struct {
	desc string
	fn   CheckFunc
}

func (d described) Evaluate(rec *response.Record) bool { return d.fn(rec) }
func (d described) String() string                     { return d.desc }

// Named wraps fn in a Check that prints as desc.
func Named(desc string, fn CheckFunc) Check {
	return described{desc: desc, fn: fn}
}

// Describe returns a short description of c.
func Describe(c Check) string {
	if c == nil {
		return Default().(fmt.Stringer).String()
	}
	if s, ok := c.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", c)
}

// Evaluate applies c to rec, falling back to Default when c is nil.
func Evaluate(c Check, rec *response.Record) bool {
	if rec == nil {
		return false
	}
	if c == nil {
		c = Default()
	}
	return c.Evaluate(rec)
}

// Default passes when the status code denotes success.
func Default() Check {
	return Named("status ok", func(rec *response.Record) bool {
		return rec.OK()
	})
}

// Always passes unconditionally.
func Always() Check {
	return Named("always", func(*response.Record) bool { return true })
}

// StatusIs passes when the status code equals code.
func StatusIs(code int) Check {
	return Named(fmt.Sprintf("status == %d", code), func(rec *response.Record) bool {
		return rec.StatusCode == code
	})
}

// Not inverts c.
func Not(c Check) Check {
	return Named("not("+Describe(c)+")", func(rec *response.Record) bool {
		return !Evaluate(c, rec)
	})
}

// Any passes when at least one of cs passes. Evaluation short-circuits.
func Any(cs ...Check) Check {
	return Named(join("any", cs), func(rec *response.Record) bool {
		for _, c := range cs {
			if Evaluate(c, rec) {
				return true
			}
		}
		return false
	})
}

// All passes when every one of cs passes.
func All(cs ...Check) Check {
	return Named(join("all", cs), func(rec *response.Record) bool {
		for _, c := range cs {
			if !Evaluate(c, rec) {
				return false
			}
		}
		return true
	})
}

func join(op string, cs []Check) string {
	parts := make([]string, 0, len(cs))
	for _, c := range cs {
		parts = append(parts, Describe(c))
	}
	return op + "(" + strings.Join(parts, ", ") + ")"
}

// This file holds checks over the parsed body fields: top-level key presence,
// key equality, and JSONPath lookups into nested objects and arrays.
package checks

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/ohler55/ojg/jp"

	"harnesscheck/pkg/response"
)

// FieldEquals passes when the top-level field key equals want.
func FieldEquals(key string, want any) Check {
	return Named(fmt.Sprintf("%s == %v", key, want), func(rec *response.Record) bool {
		got, ok := rec.Field(key)
		return ok && valuesEqual(got, want)
	})
}

// HasKey passes when the top-level field key is present.
func HasKey(key string) Check {
	return Named("has "+key, func(rec *response.Record) bool {
		_, ok := rec.Field(key)
		return ok
	})
}

// HasAnyKey passes when at least one of keys is a top-level field.
func HasAnyKey(keys ...string) Check {
	return Named("has any of "+strings.Join(keys, "|"), func(rec *response.Record) bool {
		fields := rec.Fields()
		for _, k := range keys {
			if _, ok := fields[k]; ok {
				return true
			}
		}
		return false
	})
}

// LacksKey passes when the top-level field key is absent.
func LacksKey(key string) Check {
	return Named("lacks "+key, func(rec *response.Record) bool {
		_, ok := rec.Field(key)
		return !ok
	})
}

// JSONPath passes when path resolves in the parsed body. A non-nil want must
// equal a resolved value; a non-nil pattern must match its string form. It
// panics if path does not parse; suite files go through the registry, which
// reports the error instead.
func JSONPath(path string, want any, pattern *regexp.Regexp) Check {
	return jsonPath(mustParsePath(path), want, pattern)
}

// JSONPathNull passes when path resolves to JSON null.
func JSONPathNull(path string) Check {
	expr := mustParsePath(path)
	return Named(expr.String()+" == null", func(rec *response.Record) bool {
		for _, got := range expr.Get(rec.Fields()) {
			if got == nil {
				return true
			}
		}
		return false
	})
}

func jsonPath(expr jp.Expr, want any, pattern *regexp.Regexp) Check {
	desc := "exists " + expr.String()
	switch {
	case pattern != nil:
		desc = fmt.Sprintf("%s =~ /%s/", expr, pattern)
	case want != nil:
		desc = fmt.Sprintf("%s == %v", expr, want)
	}
	return Named(desc, func(rec *response.Record) bool {
		for _, got := range expr.Get(rec.Fields()) {
			if want != nil && !valuesEqual(got, want) {
				continue
			}
			if pattern != nil && !pattern.MatchString(fmt.Sprintf("%v", got)) {
				continue
			}
			return true
		}
		return false
	})
}

// parsePath compiles a JSONPath expression rooted at $.
func parsePath(path string) (jp.Expr, error) {
	if !strings.HasPrefix(path, "$") {
		return nil, fmt.Errorf("JSONPath must start with $: %q", path)
	}
	expr, err := jp.ParseString(path)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONPath %q: %w", path, err)
	}
	return expr, nil
}

func mustParsePath(path string) jp.Expr {
	expr, err := parsePath(path)
	if err != nil {
		panic(err)
	}
	return expr
}

// valuesEqual compares decoded JSON against an expected value, treating all
// numeric kinds as float64.
func valuesEqual(actual, expected any) bool {
	a, aNum := toFloat64(actual)
	e, eNum := toFloat64(expected)
	if aNum || eNum {
		return aNum && eNum && a == e
	}
	return reflect.DeepEqual(actual, expected)
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

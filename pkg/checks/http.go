// This file contains checks over the raw HTTP response: status ranges, body
// substrings and regular expressions, and header values.
package checks

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"harnesscheck/pkg/response"
)

// StatusBetween passes when min <= status <= max.
func StatusBetween(min, max int) Check {
	return Named(fmt.Sprintf("status in %d-%d", min, max), func(rec *response.Record) bool {
		return rec.StatusCode >= min && rec.StatusCode <= max
	})
}

// BodyContains passes when the untruncated body contains substr.
func BodyContains(substr string) Check {
	return Named(fmt.Sprintf("body contains %q", substr), func(rec *response.Record) bool {
		return bytes.Contains(rec.Raw, []byte(substr))
	})
}

// BodyMatches passes when re matches the untruncated body.
func BodyMatches(re *regexp.Regexp) Check {
	return Named(fmt.Sprintf("body =~ /%s/", re), func(rec *response.Record) bool {
		return re.Match(rec.Raw)
	})
}

// HeaderEquals passes when the first value of header name equals want.
// Header names are matched case-insensitively.
func HeaderEquals(name, want string) Check {
	return Named(fmt.Sprintf("header %s == %q", name, want), func(rec *response.Record) bool {
		values := rec.Header.Values(name)
		return len(values) > 0 && values[0] == want
	})
}

// HeaderContains passes when the first value of header name contains substr.
func HeaderContains(name, substr string) Check {
	return Named(fmt.Sprintf("header %s contains %q", name, substr), func(rec *response.Record) bool {
		values := rec.Header.Values(name)
		return len(values) > 0 && strings.Contains(values[0], substr)
	})
}

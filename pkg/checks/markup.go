// This file implements checks over bodies that are not JSON: CSS selectors
// against HTML (goquery) and XPath expressions against XML (xmlquery).
package checks

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/xmlquery"

	"harnesscheck/pkg/response"
)

// CSSMatches passes when selector matches at least one element of an HTML
// body. With a non-empty contains, some matched element's text must also
// contain it.
func CSSMatches(selector, contains string) Check {
	return Named(describeMarkup("css", selector, contains), func(rec *response.Record) bool {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rec.Raw))
		if err != nil {
			slog.Debug("Failed to parse HTML body", "selector", selector, "error", err)
			return false
		}
		found := false
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if contains == "" || strings.Contains(s.Text(), contains) {
				found = true
				return false
			}
			return true
		})
		return found
	})
}

// XPathMatches passes when expr selects at least one node of an XML body.
// With a non-empty contains, some selected node's inner text must contain it.
func XPathMatches(expr, contains string) Check {
	return Named(describeMarkup("xpath", expr, contains), func(rec *response.Record) bool {
		doc, err := xmlquery.Parse(bytes.NewReader(rec.Raw))
		if err != nil {
			slog.Debug("Failed to parse XML body", "xpath", expr, "error", err)
			return false
		}
		nodes, err := xmlquery.QueryAll(doc, expr)
		if err != nil {
			slog.Debug("XPath query failed", "xpath", expr, "error", err)
			return false
		}
		for _, n := range nodes {
			if contains == "" || strings.Contains(n.InnerText(), contains) {
				return true
			}
		}
		return false
	})
}

func describeMarkup(kind, expr, contains string) string {
	if contains == "" {
		return fmt.Sprintf("%s %s", kind, expr)
	}
	return fmt.Sprintf("%s %s contains %q", kind, expr, contains)
}

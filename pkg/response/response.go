// Package response defines the record built from a single harness reply.
// The parsed body is a tagged union: either a structured JSON object or a
// truncated raw-text fallback, so every check sees the same mapping shape.
package response

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"harnesscheck/pkg/utils"
)

const (
	// RawKey is the sentinel field under which RawTextBody exposes its text.
	RawKey = "_raw"
	// RawLimit caps the characters kept from a body that is not a JSON object.
	RawLimit = 500
	// DumpLimit caps the characters of the diagnostic dump printed on failure.
	DumpLimit = 200
)

// Body is either StructuredBody or RawTextBody.
type Body interface {
	// Fields returns the body as a mapping.
	Fields() map[string]any
	isBody()
}

// StructuredBody is a response body that parsed as a JSON object.
// An empty response body is represented as a StructuredBody with no fields.
type StructuredBody struct {
	Values map[string]any
}

// RawTextBody is a response body that could not be parsed as a JSON object.
type RawTextBody struct {
	Text string
}

func (b StructuredBody) Fields() map[string]any {
	if b.Values == nil {
		return map[string]any{}
	}
	return b.Values
}

func (b RawTextBody) Fields() map[string]any {
	return map[string]any{RawKey: b.Text}
}

func (StructuredBody) isBody() {}
func (RawTextBody) isBody()    {}

// Record is the outcome of one request/response exchange.
type Record struct {
	StatusCode int
	Header     http.Header
	Body       Body
	// Raw holds the complete, untruncated body bytes.
	Raw []byte
}

// New builds a Record from a status code, headers and raw body bytes.
func New(statusCode int, header http.Header, raw []byte) *Record {
	if header == nil {
		header = http.Header{}
	}
	return &Record{
		StatusCode: statusCode,
		Header:     header,
		Body:       ParseBody(raw),
		Raw:        raw,
	}
}

// ParseBody decodes raw as a JSON object. Empty input yields an empty
// StructuredBody; anything that is not a JSON object falls back to a
// RawTextBody holding the first RawLimit characters.
func ParseBody(raw []byte) Body {
	if len(raw) == 0 {
		return StructuredBody{Values: map[string]any{}}
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return RawTextBody{Text: utils.Truncate(string(raw), RawLimit)}
	}
	return StructuredBody{Values: fields}
}

// OK reports whether the status code denotes success. Like the usual
// client-library notion of "ok", anything below 400 counts.
func (r *Record) OK() bool {
	return r.StatusCode < http.StatusBadRequest
}

// Fields returns the parsed body as a mapping; never nil.
func (r *Record) Fields() map[string]any {
	if r == nil || r.Body == nil {
		return map[string]any{}
	}
	return r.Body.Fields()
}

// Field looks up a top-level key in the parsed body.
func (r *Record) Field(key string) (any, bool) {
	v, ok := r.Fields()[key]
	return v, ok
}

// Dump renders the parsed body as indented JSON truncated to DumpLimit
// characters. Keys are sorted and non-ASCII text is written unescaped, so the
// cut point follows the sorted layout rather than the server's field order.
func (r *Record) Dump() string {
	return utils.Truncate(Indent(r.Fields()), DumpLimit)
}

// Indent encodes v as two-space indented JSON without HTML escaping.
func Indent(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return ""
	}
	return strings.TrimRight(buf.String(), "\n")
}

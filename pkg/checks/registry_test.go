package checks_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"harnesscheck/pkg/checks"
)

func TestBuild(t *testing.T) {
	testCases := []struct {
		Name     string
		Spec     *checks.Spec
		Body     string
		Status   int
		Expected bool
	}{
		{Name: "nil_is_default", Spec: nil, Status: http.StatusOK, Expected: true},
		{Name: "status_ok", Spec: &checks.Spec{Type: "status_ok"}, Status: http.StatusBadRequest, Expected: false},
		{Name: "status_exact", Spec: &checks.Spec{Type: "status", Status: 404}, Status: http.StatusNotFound, Expected: true},
		{Name: "status_range", Spec: &checks.Spec{Type: "status", Range: "400-499"}, Status: http.StatusMethodNotAllowed, Expected: true},
		{
			Name:     "field_equals",
			Spec:     &checks.Spec{Type: "field_equals", Key: "error", Value: "Not found"},
			Body:     `{"error": "Not found"}`,
			Status:   http.StatusNotFound,
			Expected: true,
		},
		{
			Name:     "has_any_key",
			Spec:     &checks.Spec{Type: "has_any_key", Keys: []string{"mode", "player"}},
			Body:     `{"mode": "exploration"}`,
			Status:   http.StatusOK,
			Expected: true,
		},
		{
			Name: "any_of",
			Spec: &checks.Spec{Type: "any_of", Checks: []checks.Spec{
				{Type: "has_key", Key: "text"},
				{Type: "lacks_key", Key: "error"},
			}},
			Body:     `{"error": "boom"}`,
			Status:   http.StatusOK,
			Expected: false,
		},
		{
			Name:     "not",
			Spec:     &checks.Spec{Type: "not", Checks: []checks.Spec{{Type: "has_key", Key: "error"}}},
			Body:     `{"success": true}`,
			Status:   http.StatusOK,
			Expected: true,
		},
		{
			Name:     "json_path_value",
			Spec:     &checks.Spec{Type: "json_path", Path: "$.position.x", Value: 10.5},
			Body:     `{"position": {"x": 10.5, "y": -5, "z": 0}}`,
			Status:   http.StatusOK,
			Expected: true,
		},
		{
			Name:     "json_path_null",
			Spec:     &checks.Spec{Type: "json_path", Path: "$.combat.enemy", Null: true},
			Body:     `{"combat": {"enemy": null}}`,
			Status:   http.StatusOK,
			Expected: true,
		},
		{
			Name:     "json_path_null_absent_key",
			Spec:     &checks.Spec{Type: "json_path", Path: "$.combat.enemy", Null: true},
			Body:     `{"combat": {}}`,
			Status:   http.StatusOK,
			Expected: false,
		},
		{
			Name:     "json_path_null_non_null_value",
			Spec:     &checks.Spec{Type: "json_path", Path: "$.combat.enemy", Null: true},
			Body:     `{"combat": {"enemy": "Cherufe"}}`,
			Status:   http.StatusOK,
			Expected: false,
		},
		{
			Name:     "json_path_wildcard_value",
			Spec:     &checks.Spec{Type: "json_path", Path: "$.actions[*].name", Value: "Strike"},
			Body:     `{"actions": [{"name": "Guard"}, {"name": "Strike"}]}`,
			Status:   http.StatusOK,
			Expected: true,
		},
		{
			Name:     "header_contains",
			Spec:     &checks.Spec{Type: "header", Header: "Content-Type", Contains: "json"},
			Status:   http.StatusOK,
			Expected: true,
		},
		{Name: "always", Spec: &checks.Spec{Type: "always"}, Status: http.StatusInternalServerError, Expected: true},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			c, err := checks.Build(tc.Spec)
			require.NoError(t, err)
			assert.Equal(t, tc.Expected, c.Evaluate(record(tc.Status, tc.Body)))
		})
	}
}

func TestBuildErrors(t *testing.T) {
	testCases := []struct {
		Name string
		Spec *checks.Spec
	}{
		{Name: "missing_type", Spec: &checks.Spec{}},
		{Name: "unknown_type", Spec: &checks.Spec{Type: "telepathy"}},
		{Name: "field_equals_without_key", Spec: &checks.Spec{Type: "field_equals"}},
		{Name: "status_without_value", Spec: &checks.Spec{Type: "status"}},
		{Name: "status_bad_range", Spec: &checks.Spec{Type: "status", Range: "500"}},
		{Name: "status_inverted_range", Spec: &checks.Spec{Type: "status", Range: "499-400"}},
		{Name: "json_path_without_dollar", Spec: &checks.Spec{Type: "json_path", Path: "player.name"}},
		{Name: "json_path_unterminated_index", Spec: &checks.Spec{Type: "json_path", Path: "$.a[1"}},
		{Name: "json_path_null_with_value", Spec: &checks.Spec{Type: "json_path", Path: "$.a", Null: true, Value: "x"}},
		{Name: "body_regex_invalid", Spec: &checks.Spec{Type: "body_regex", Pattern: "("}},
		{Name: "xpath_invalid", Spec: &checks.Spec{Type: "xpath", XPath: "//["}},
		{Name: "css_invalid", Spec: &checks.Spec{Type: "css", Selector: "div["}},
		{Name: "json_schema_empty", Spec: &checks.Spec{Type: "json_schema"}},
		{Name: "any_of_empty", Spec: &checks.Spec{Type: "any_of"}},
		{Name: "any_of_nested_error", Spec: &checks.Spec{Type: "any_of", Checks: []checks.Spec{{Type: "nope"}}}},
		{Name: "not_two_children", Spec: &checks.Spec{Type: "not", Checks: []checks.Spec{{Type: "always"}, {Type: "always"}}}},
		{Name: "header_non_string_value", Spec: &checks.Spec{Type: "header", Header: "X", Value: 3}},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			_, err := checks.Build(tc.Spec)
			assert.Error(t, err)
		})
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := checks.NewRegistry()
	builder := func(*checks.Registry, *checks.Spec) (checks.Check, error) { return checks.Always(), nil }

	require.NoError(t, r.Register("custom", builder))
	assert.Error(t, r.Register("custom", builder))
	assert.Error(t, r.Register("nil", nil))
	assert.Panics(t, func() { r.MustRegister("custom", builder) })
	assert.ElementsMatch(t, []string{"custom"}, r.Types())
}

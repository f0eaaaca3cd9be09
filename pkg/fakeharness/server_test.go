package fakeharness_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"harnesscheck/pkg/fakeharness"
)

func do(t *testing.T, h http.Handler, method, path, body string) (int, http.Header, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w.Code, w.Header(), out
}

func TestRouting(t *testing.T) {
	testCases := []struct {
		Name         string
		Method       string
		Path         string
		Body         string
		ExpectedCode int
		ExpectedKey  string
		ExpectedVal  any
	}{
		{Name: "health", Method: http.MethodGet, Path: "/health", ExpectedCode: 200, ExpectedKey: "status", ExpectedVal: "ok"},
		{Name: "health_any_method", Method: http.MethodPost, Path: "/health", ExpectedCode: 200, ExpectedKey: "status", ExpectedVal: "ok"},
		{Name: "uppercase_path", Method: http.MethodGet, Path: "/HEALTH", ExpectedCode: 200, ExpectedKey: "status", ExpectedVal: "ok"},
		{Name: "state_json", Method: http.MethodGet, Path: "/state", ExpectedCode: 200, ExpectedKey: "mode", ExpectedVal: "exploration"},
		{Name: "actions_outside_combat", Method: http.MethodGet, Path: "/actions", ExpectedCode: 200, ExpectedKey: "error", ExpectedVal: "Not in combat"},
		{Name: "enemy_actions_outside_combat", Method: http.MethodGet, Path: "/combat/enemy-actions", ExpectedCode: 200, ExpectedKey: "success", ExpectedVal: false},
		{Name: "not_found", Method: http.MethodGet, Path: "/invalid", ExpectedCode: 404, ExpectedKey: "error", ExpectedVal: "Not found"},
		{Name: "trailing_slash_not_found", Method: http.MethodGet, Path: "/health/", ExpectedCode: 404, ExpectedKey: "error", ExpectedVal: "Not found"},
		{Name: "get_on_action", Method: http.MethodGet, Path: "/combat/action", ExpectedCode: 405, ExpectedKey: "error", ExpectedVal: "Method not allowed"},
		{Name: "get_on_skill_select", Method: http.MethodGet, Path: "/skill-select", ExpectedCode: 405, ExpectedKey: "error", ExpectedVal: "Method not allowed"},
		{Name: "bad_json_body", Method: http.MethodPost, Path: "/combat/start", Body: "{", ExpectedCode: 500, ExpectedKey: "error"},
		{
			Name: "both_indexes", Method: http.MethodPost, Path: "/combat/action",
			Body:         `{"consumableIndex": 0, "skillIndex": 0}`,
			ExpectedCode: 200, ExpectedKey: "error", ExpectedVal: "Cannot specify both consumableIndex and skillIndex",
		},
		{
			Name: "skill_select_out_of_range", Method: http.MethodPost, Path: "/skill-select",
			Body:         `{"skillIndex": 5}`,
			ExpectedCode: 200, ExpectedKey: "error", ExpectedVal: "Invalid skillIndex: 5. Use 0-2 for skills, -1 for max health.",
		},
		{
			Name: "skill_select_reroll", Method: http.MethodPost, Path: "/skill-select",
			Body:         `{"reroll": true}`,
			ExpectedCode: 200, ExpectedKey: "reroll", ExpectedVal: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			code, header, body := do(t, fakeharness.New(), tc.Method, tc.Path, tc.Body)
			assert.Equal(t, tc.ExpectedCode, code)
			assert.Equal(t, "*", header.Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "application/json", header.Get("Content-Type"))
			require.Contains(t, body, tc.ExpectedKey)
			if tc.ExpectedVal != nil {
				assert.Equal(t, tc.ExpectedVal, body[tc.ExpectedKey])
			}
		})
	}
}

func TestNotFoundListsEndpoints(t *testing.T) {
	_, _, body := do(t, fakeharness.New(), http.MethodGet, "/nope", "")
	endpoints, ok := body["endpoints"].([]any)
	require.True(t, ok)
	require.Len(t, endpoints, len(fakeharness.Endpoints))
	for i, e := range fakeharness.Endpoints {
		assert.Equal(t, e, endpoints[i])
	}
}

func TestStateText(t *testing.T) {
	_, _, body := do(t, fakeharness.New(), http.MethodGet, "/state?format=text", "")
	text, ok := body["text"].(string)
	require.True(t, ok)
	assert.Contains(t, text, "Mode: exploration")
}

func TestCombatFlow(t *testing.T) {
	h := fakeharness.New(fakeharness.WithMonsterGroups(2))

	_, _, body := do(t, h, http.MethodPost, "/combat/start", `{"monsterGroupIndex": 7}`)
	assert.Equal(t, "Invalid monster group index: 7. Valid range: 0-1", body["error"])

	_, _, body = do(t, h, http.MethodPost, "/exploration/teleport", `{"x": 10.5, "y": -5.0, "z": 0}`)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]any{"x": 10.5, "y": -5.0, "z": float64(0)}, body["position"])

	_, _, body = do(t, h, http.MethodPost, "/combat/start", `{"monsterGroupIndex": 0}`)
	assert.Equal(t, true, body["success"])

	_, _, body = do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, true, body["inCombat"])

	_, _, body = do(t, h, http.MethodPost, "/combat/start", `{"monsterGroupIndex": 0, "voidBlitz": true}`)
	assert.Equal(t, "Cannot void blitz during combat", body["error"])

	_, _, body = do(t, h, http.MethodGet, "/actions", "")
	actions, ok := body["actions"].([]any)
	require.True(t, ok)
	assert.Len(t, actions, 3)

	_, _, body = do(t, h, http.MethodPost, "/combat/preview", `{"actorIndex": 0, "skillIndex": 1, "targetIndex": 0}`)
	assert.Equal(t, map[string]any{"damage": float64(15)}, body["preview"])

	_, _, body = do(t, h, http.MethodPost, "/combat/action", `{"consumableIndex": 0, "targetIndex": 0}`)
	assert.Equal(t, "Potion", body["consumable"])

	_, _, body = do(t, h, http.MethodPost, "/exploration/teleport", `{"x": 1}`)
	assert.Equal(t, "Cannot teleport during combat", body["error"])
}

func TestStartsInCombat(t *testing.T) {
	_, _, body := do(t, fakeharness.New(fakeharness.InCombat()), http.MethodGet, "/state", "")
	assert.Equal(t, "combat", body["mode"])
	assert.Contains(t, body, "combat")
}

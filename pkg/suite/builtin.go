package suite

import (
	"net/http"

	"harnesscheck/pkg/checks"
)

// Builtin returns the smoke suite for the AethermancerHarness REST surface,
// in the order the cases are meant to run.
func Builtin() *Suite {
	return &Suite{
		Name:        "aethermancer-harness",
		Description: "Endpoint smoke tests for AethermancerHarness",
		Cases: []Case{
			// Health
			{
				Name:   "health - basic",
				Method: http.MethodGet,
				Path:   "/health",
				Check:  checks.FieldEquals("status", "ok"),
			},

			// State
			{
				Name:   "state - json format",
				Method: http.MethodGet,
				Path:   "/state",
				Check:  checks.HasAnyKey("mode", "player", "combat"),
			},
			{
				Name:   "state - text format",
				Method: http.MethodGet,
				Path:   "/state?format=text",
				Check:  checks.Any(checks.HasKey("text"), checks.LacksKey("error")),
			},

			// Actions (combat only)
			{Name: "actions - get available", Method: http.MethodGet, Path: "/actions"},

			// Combat enemy actions
			{Name: "enemy-actions - get intentions", Method: http.MethodGet, Path: "/combat/enemy-actions"},

			// Combat start
			{
				Name:   "combat/start - with group 0",
				Method: http.MethodPost,
				Path:   "/combat/start",
				Body:   map[string]any{"monsterGroupIndex": 0},
			},
			{
				Name:   "combat/start - with void blitz",
				Method: http.MethodPost,
				Path:   "/combat/start",
				Body:   map[string]any{"monsterGroupIndex": 0, "voidBlitz": true},
			},

			// Combat preview
			{
				Name:   "combat/preview - actor 0, skill 0, target 0",
				Method: http.MethodPost,
				Path:   "/combat/preview",
				Body:   map[string]any{"actorIndex": 0, "skillIndex": 0, "targetIndex": 0},
			},

			// Combat action
			{
				Name:   "combat/action - execute skill",
				Method: http.MethodPost,
				Path:   "/combat/action",
				Body:   map[string]any{"actorIndex": 0, "skillIndex": 0, "targetIndex": 0},
			},
			{
				Name:   "combat/action - use consumable",
				Method: http.MethodPost,
				Path:   "/combat/action",
				Body:   map[string]any{"consumableIndex": 0, "targetIndex": 0},
			},

			// Exploration teleport
			{
				Name:   "teleport - to origin",
				Method: http.MethodPost,
				Path:   "/exploration/teleport",
				Body:   map[string]any{"x": 0, "y": 0, "z": 0},
			},
			{
				Name:   "teleport - specific coords",
				Method: http.MethodPost,
				Path:   "/exploration/teleport",
				Body:   map[string]any{"x": 10.5, "y": -5.0, "z": 0},
			},

			// Exploration interact
			{Name: "interact - trigger nearby", Method: http.MethodPost, Path: "/exploration/interact"},

			// Skill select
			{
				Name:   "skill-select - pick skill 0",
				Method: http.MethodPost,
				Path:   "/skill-select",
				Body:   map[string]any{"skillIndex": 0},
			},
			{
				Name:   "skill-select - reroll",
				Method: http.MethodPost,
				Path:   "/skill-select",
				Body:   map[string]any{"reroll": true},
			},

			// Error cases
			{
				Name:   "404 - invalid endpoint",
				Method: http.MethodGet,
				Path:   "/invalid",
				Check:  checks.FieldEquals("error", "Not found"),
			},
			{
				Name:   "405 - wrong method on POST endpoint",
				Method: http.MethodGet,
				Path:   "/combat/action",
				// Passes for any response; the error key is consulted but
				// never decides the outcome.
				Check: checks.Any(checks.HasKey("error"), checks.Always()),
			},
		},
	}
}

package fakeharness

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
)

const (
	modeExploration = "exploration"
	modeCombat      = "combat"
)

var (
	playerSkills = []string{"Strike", "Guard", "Aether Bolt"}
	enemyNames   = []string{"Wolpertinger", "Sporemother"}
	consumables  = []string{"Potion", "Ether"}
)

type position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type gameState struct {
	mode          string
	monsterGroups int
	defeated      map[int]bool
	pos           position
	round         int
}

func newGameState(groups int) gameState {
	return gameState{mode: modeExploration, monsterGroups: groups, defeated: map[int]bool{}}
}

func (g *gameState) inCombat() bool { return g.mode == modeCombat }

// readBody decodes an optional JSON object body. An empty body is an empty
// object.
func readBody(r *http.Request) (map[string]any, error) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

func intValue(m map[string]any, key string, def int) int {
	if f, ok := m[key].(float64); ok {
		return int(f)
	}
	return def
}

func floatValue(m map[string]any, key string, def float64) float64 {
	if f, ok := m[key].(float64); ok {
		return f
	}
	return def
}

func boolValue(m map[string]any, key string, def bool) bool {
	if b, ok := m[key].(bool); ok {
		return b
	}
	return def
}

func failure(msg string) map[string]any {
	return map[string]any{"success": false, "error": msg}
}

// withBody decodes the request body and passes it to fn, answering 500 when
// the body is not a JSON object.
func (s *Server) withBody(w http.ResponseWriter, r *http.Request, fn func(body map[string]any) any) {
	body, err := readBody(r)
	if err != nil {
		s.logger.Error("Error handling request", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}
	s.mu.Lock()
	out := fn(body)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	inCombat := s.state.inCombat()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"gameReady":     true,
		"inCombat":      inCombat,
		"readyForInput": true,
		"inputStatus":   "ready",
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.URL.Query().Get("format") == "text" {
		writeJSON(w, http.StatusOK, map[string]any{"text": s.stateText()})
		return
	}

	state := map[string]any{
		"mode":   s.state.mode,
		"player": map[string]any{"position": s.state.pos, "skills": playerSkills},
	}
	if s.state.inCombat() {
		state["combat"] = map[string]any{"round": s.state.round, "enemies": enemyNames}
	} else {
		state["monsterGroups"] = s.state.monsterGroups
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) stateText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Mode: %s\n", s.state.mode)
	fmt.Fprintf(&b, "Position: (%g, %g, %g)\n", s.state.pos.X, s.state.pos.Y, s.state.pos.Z)
	if s.state.inCombat() {
		fmt.Fprintf(&b, "Round: %d\nEnemies: %s\n", s.state.round, strings.Join(enemyNames, ", "))
	}
	return b.String()
}

func (s *Server) handleActions(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.inCombat() {
		writeJSON(w, http.StatusOK, map[string]any{"actions": []any{}, "error": "Not in combat"})
		return
	}
	actions := make([]map[string]any, 0, len(playerSkills))
	for i, name := range playerSkills {
		actions = append(actions, map[string]any{"skillIndex": i, "name": name, "targets": []int{0, 1}})
	}
	writeJSON(w, http.StatusOK, map[string]any{"actions": actions})
}

func (s *Server) handleEnemyActions(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.inCombat() {
		writeJSON(w, http.StatusOK, failure("Not in combat"))
		return
	}
	intentions := make([]map[string]any, 0, len(enemyNames))
	for i, name := range enemyNames {
		intentions = append(intentions, map[string]any{"enemyIndex": i, "name": name, "skill": "Bite", "targetIndex": 0})
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "enemies": intentions})
}

func (s *Server) handleCombatStart(w http.ResponseWriter, r *http.Request) {
	s.withBody(w, r, func(body map[string]any) any {
		group := intValue(body, "monsterGroupIndex", -1)
		monster := intValue(body, "monsterIndex", 0)
		voidBlitz := boolValue(body, "voidBlitz", false)

		if s.state.inCombat() {
			if voidBlitz {
				return failure("Cannot void blitz during combat")
			}
			return failure("Already in combat")
		}
		if s.state.monsterGroups == 0 {
			return failure("No monster groups available")
		}
		if group < 0 || group >= s.state.monsterGroups {
			return failure(fmt.Sprintf("Invalid monster group index: %d. Valid range: 0-%d", group, s.state.monsterGroups-1))
		}
		if s.state.defeated[group] {
			return failure("Monster group already defeated")
		}

		s.state.mode = modeCombat
		s.state.round = 1
		out := map[string]any{"success": true, "monsterGroupIndex": group, "voidBlitz": voidBlitz}
		if voidBlitz {
			out["monsterIndex"] = monster
		}
		return out
	})
}

// resolveCombatInput applies the shared consumable-vs-skill rules of the
// action and preview endpoints.
func (s *Server) resolveCombatInput(body map[string]any, preview bool) map[string]any {
	consumable := intValue(body, "consumableIndex", -1)
	skill := intValue(body, "skillIndex", -1)
	target := intValue(body, "targetIndex", -1)

	if consumable >= 0 && skill >= 0 {
		return map[string]any{"error": "Cannot specify both consumableIndex and skillIndex"}
	}
	if !s.state.inCombat() {
		if preview {
			return failure("Not in combat")
		}
		return failure("Game not ready for input")
	}

	if consumable >= 0 {
		if consumable >= len(consumables) {
			return failure(fmt.Sprintf("Invalid consumable index: %d", consumable))
		}
		return map[string]any{"success": true, "consumable": consumables[consumable], "targetIndex": target}
	}

	actor := intValue(body, "actorIndex", -1)
	if actor < 0 || actor > 2 {
		return failure(fmt.Sprintf("Invalid actor index: %d", actor))
	}
	if skill < 0 || skill >= len(playerSkills) {
		return failure(fmt.Sprintf("Invalid skill index: %d", skill))
	}

	out := map[string]any{"success": true, "actorIndex": actor, "skill": playerSkills[skill], "targetIndex": target}
	if preview {
		out["preview"] = map[string]any{"damage": 10 + 5*skill}
	} else {
		s.state.round++
	}
	return out
}

func (s *Server) handleCombatAction(w http.ResponseWriter, r *http.Request) {
	s.withBody(w, r, func(body map[string]any) any { return s.resolveCombatInput(body, false) })
}

func (s *Server) handleCombatPreview(w http.ResponseWriter, r *http.Request) {
	s.withBody(w, r, func(body map[string]any) any { return s.resolveCombatInput(body, true) })
}

func (s *Server) handleTeleport(w http.ResponseWriter, r *http.Request) {
	s.withBody(w, r, func(body map[string]any) any {
		if s.state.inCombat() {
			return failure("Cannot teleport during combat")
		}
		s.state.pos = position{
			X: floatValue(body, "x", 0),
			Y: floatValue(body, "y", 0),
			Z: floatValue(body, "z", 0),
		}
		return map[string]any{"success": true, "position": s.state.pos}
	})
}

func (s *Server) handleInteract(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.inCombat() {
		writeJSON(w, http.StatusOK, failure("Cannot interact during combat"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "interacted": false, "message": "Nothing to interact with"})
}

func (s *Server) handleSkillSelect(w http.ResponseWriter, r *http.Request) {
	s.withBody(w, r, func(body map[string]any) any {
		if boolValue(body, "reroll", false) {
			return map[string]any{"success": true, "reroll": true}
		}
		skill := intValue(body, "skillIndex", -1)
		if skill < -1 || skill > 2 {
			return map[string]any{"error": fmt.Sprintf("Invalid skillIndex: %d. Use 0-2 for skills, -1 for max health.", skill)}
		}
		if skill == -1 {
			return map[string]any{"success": true, "choice": "max health"}
		}
		return map[string]any{"success": true, "skillIndex": skill}
	})
}

package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xeipuuv/gojsonschema"

	"github.com/mkessler/quickcap/internal/domain/capture"
	"github.com/mkessler/quickcap/internal/domain/category"
)

// createTaskSchemaJSON rejects malformed create requests before any tracker
// call is made.
const createTaskSchemaJSON = `{
  "type": "object",
  "required": ["task", "projectId"],
  "properties": {
    "task": {
      "type": "object",
      "required": ["title"],
      "properties": {
        "title": { "type": "string", "minLength": 1 },
        "description": { "type": "string" },
        "category": { "type": "string" },
        "priority": { "type": "integer", "minimum": 1, "maximum": 5 },
        "deadline": { "type": "string" },
        "subtasks": { "type": "array", "items": { "type": "string" } },
        "tags": { "type": "array", "items": { "type": "string" } }
      }
    },
    "projectId": { "type": "integer", "minimum": 1 },
    "userId": { "type": "integer", "minimum": 1 }
  }
}`

var createTaskSchemaLoader = gojsonschema.NewStringLoader(createTaskSchemaJSON)

type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{"success": false, "message": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{"success": true, "status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft, raw, err := s.analyze.Analyze(r.Context(), req.Text)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, capture.ErrInvalidTask) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success":     true,
		"preview":     s.analyze.Preview(draft),
		"rawResponse": raw,
	})
}

func (s *Server) handleCreateTasks(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := gojsonschema.Validate(createTaskSchemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !result.Valid() {
		writeError(w, http.StatusBadRequest, result.Errors()[0].String())
		return
	}

	var req struct {
		Task      capture.Preview `json:"task"`
		ProjectID int             `json:"projectId"`
		UserID    int             `json:"userId"`
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID := req.UserID
	if userID == 0 {
		values, err := s.settings.All()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		userID = values.DefaultUser()
	}

	created, err := s.captures.Materialize(r.Context(), req.Task.Draft(req.ProjectID), userID)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success":    true,
		"mainTaskId": created.MainTaskID,
		"subtaskIds": created.SubtaskIDs,
	})
}

func (s *Server) handleListModels(w http.ResponseWriter, r *http.Request) {
	models, err := s.analyze.ListModels(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "models": models})
}

func (s *Server) handleConnectionTest(w http.ResponseWriter, r *http.Request) {
	provider := envelope{"ok": true}
	if err := s.analyze.TestProvider(r.Context()); err != nil {
		provider = envelope{"ok": false, "message": err.Error()}
	}

	trackerResult := envelope{"ok": false, "message": "tracker not configured"}
	if s.tracker != nil {
		trackerResult = envelope{"ok": true}
		if err := s.tracker.TestConnection(r.Context()); err != nil {
			trackerResult = envelope{"ok": false, "message": err.Error()}
		}
	}

	writeJSON(w, http.StatusOK, envelope{
		"success":  true,
		"provider": provider,
		"tracker":  trackerResult,
	})
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	values, err := s.settings.All()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "settings": values.Redacted()})
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var update map[string]string
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.settings.SetAll(update); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true})
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.categories.All()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "categories": cats})
}

func (s *Server) handleSaveCategory(w http.ResponseWriter, r *http.Request) {
	var cat category.Category
	if err := json.NewDecoder(r.Body).Decode(&cat); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.categories.Save(cat); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true})
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	err := s.categories.Delete(r.PathValue("key"))
	switch {
	case errors.Is(err, category.ErrDefaultProtected):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, category.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, envelope{"success": true})
	}
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/progdash/progdash/internal/models"
	"github.com/progdash/progdash/internal/store"
)

// AdminHandler serves suggestion lookups, admin settings, and the
// program export/import endpoints.
type AdminHandler struct {
	store store.Storage
	now   func() time.Time
}

func NewAdminHandler(st store.Storage) *AdminHandler {
	return &AdminHandler{store: st, now: time.Now}
}

// ListProgramSuggestions filters the suggestion catalog by the keyword
// query parameter. An empty keyword returns everything.
func (h *AdminHandler) ListProgramSuggestions(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	suggestions, err := h.store.ProgramSuggestions(r.Context(), keyword)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, errors.New("failed to fetch suggestions"))
		return
	}
	if suggestions == nil {
		suggestions = []models.ProgramSuggestion{}
	}
	writeJSON(w, http.StatusOK, suggestions)
}

func (h *AdminHandler) CreateProgramSuggestion(w http.ResponseWriter, r *http.Request) {
	var suggestion models.ProgramSuggestion
	if err := json.NewDecoder(r.Body).Decode(&suggestion); err != nil {
		writeError(w, r, http.StatusBadRequest, errors.New("invalid suggestion"))
		return
	}
	if strings.TrimSpace(suggestion.Keyword) == "" || strings.TrimSpace(suggestion.Name) == "" {
		writeError(w, r, http.StatusBadRequest, errors.New("keyword and name are required"))
		return
	}
	stored, err := h.store.CreateProgramSuggestion(r.Context(), &suggestion)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, errors.New("failed to create suggestion"))
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

func (h *AdminHandler) ListAdminSettings(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	settings, err := h.store.AdminSettings(r.Context(), category)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, errors.New("failed to fetch settings"))
		return
	}
	if settings == nil {
		settings = []models.AdminSetting{}
	}
	writeJSON(w, http.StatusOK, settings)
}

type upsertSettingRequest struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Category string `json:"category"`
}

func (h *AdminHandler) UpsertAdminSetting(w http.ResponseWriter, r *http.Request) {
	var req upsertSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, errors.New("invalid setting"))
		return
	}
	if strings.TrimSpace(req.Key) == "" {
		writeError(w, r, http.StatusBadRequest, errors.New("setting key is required"))
		return
	}
	if req.Category == "" {
		req.Category = "general"
	}
	stored, err := h.store.UpsertAdminSetting(r.Context(), req.Key, req.Value, req.Category)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, errors.New("failed to save setting"))
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

const exportVersion = "1"

type exportPayload struct {
	Version    string            `json:"version"`
	ExportedAt time.Time         `json:"exportedAt"`
	Programs   []models.Program  `json:"programs"`
	Activities []models.Activity `json:"activities"`
}

// ExportPrograms dumps every program and activity as one JSON document.
func (h *AdminHandler) ExportPrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := h.store.Programs(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, errors.New("failed to export programs"))
		return
	}
	activities, err := h.store.Activities(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, errors.New("failed to export activities"))
		return
	}
	if programs == nil {
		programs = []models.Program{}
	}
	if activities == nil {
		activities = []models.Activity{}
	}
	w.Header().Set("Content-Disposition", `attachment; filename="programs-export.json"`)
	writeJSON(w, http.StatusOK, exportPayload{
		Version:    exportVersion,
		ExportedAt: h.now().UTC(),
		Programs:   programs,
		Activities: activities,
	})
}

type importPayload struct {
	Programs   []models.Program  `json:"programs"`
	Activities []models.Activity `json:"activities"`
}

type importResult struct {
	ProgramsImported   int `json:"programsImported"`
	ActivitiesImported int `json:"activitiesImported"`
}

// ImportPrograms loads a previously exported document. Every record is
// re-created with a fresh id so imports never collide with existing
// rows.
func (h *AdminHandler) ImportPrograms(w http.ResponseWriter, r *http.Request) {
	var payload importPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, r, http.StatusBadRequest, errors.New("invalid import payload"))
		return
	}

	result := importResult{}
	for i := range payload.Programs {
		p := payload.Programs[i]
		oldID := p.ID
		p.ID = ""
		stored, err := h.store.CreateProgram(r.Context(), &p)
		if err != nil {
			writeError(w, r, http.StatusInternalServerError, errors.New("failed to import programs"))
			return
		}
		result.ProgramsImported++
		// re-point this program's activities at the new id
		for j := range payload.Activities {
			if oldID != "" && payload.Activities[j].ProgramID == oldID {
				payload.Activities[j].ProgramID = stored.ID
			}
		}
	}
	for i := range payload.Activities {
		a := payload.Activities[i]
		a.ID = ""
		if _, err := h.store.CreateActivity(r.Context(), &a); err != nil {
			writeError(w, r, http.StatusInternalServerError, errors.New("failed to import activities"))
			return
		}
		result.ActivitiesImported++
	}
	writeJSON(w, http.StatusOK, result)
}

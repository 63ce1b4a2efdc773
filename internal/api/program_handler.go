package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/progdash/progdash/internal/models"
	"github.com/progdash/progdash/internal/store"
)

// ProgramHandler serves program and activity CRUD.
type ProgramHandler struct {
	store store.Storage
}

func NewProgramHandler(st store.Storage) *ProgramHandler {
	return &ProgramHandler{store: st}
}

func (h *ProgramHandler) ListPrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := h.store.Programs(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, errors.New("failed to fetch programs"))
		return
	}
	if programs == nil {
		programs = []models.Program{}
	}
	writeJSON(w, http.StatusOK, programs)
}

func (h *ProgramHandler) GetProgram(w http.ResponseWriter, r *http.Request) {
	program, err := h.store.Program(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, errors.New("failed to fetch program"))
		return
	}
	if program == nil {
		writeError(w, r, http.StatusNotFound, errors.New("program not found"))
		return
	}
	writeJSON(w, http.StatusOK, program)
}

func (h *ProgramHandler) CreateProgram(w http.ResponseWriter, r *http.Request) {
	var program models.Program
	if err := json.NewDecoder(r.Body).Decode(&program); err != nil {
		writeError(w, r, http.StatusBadRequest, errors.New("invalid program"))
		return
	}
	if strings.TrimSpace(program.Name) == "" {
		writeError(w, r, http.StatusBadRequest, errors.New("program name is required"))
		return
	}
	if program.Status == "" {
		program.Status = models.ProgramStatusActive
	}
	stored, err := h.store.CreateProgram(r.Context(), &program)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, errors.New("failed to create program"))
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

func (h *ProgramHandler) UpdateProgram(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	existing, err := h.store.Program(r.Context(), id)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, errors.New("failed to fetch program"))
		return
	}
	if existing == nil {
		writeError(w, r, http.StatusNotFound, errors.New("program not found"))
		return
	}

	program := *existing
	if err := json.NewDecoder(r.Body).Decode(&program); err != nil {
		writeError(w, r, http.StatusBadRequest, errors.New("invalid program"))
		return
	}
	program.ID = id
	program.CreatedAt = existing.CreatedAt

	stored, err := h.store.UpdateProgram(r.Context(), &program)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, errors.New("failed to update program"))
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

func (h *ProgramHandler) DeleteProgram(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.store.DeleteProgram(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, errors.New("failed to delete program"))
		return
	}
	if !deleted {
		writeError(w, r, http.StatusNotFound, errors.New("program not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProgramHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.store.Activities(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, errors.New("failed to fetch activities"))
		return
	}
	if activities == nil {
		activities = []models.Activity{}
	}
	writeJSON(w, http.StatusOK, activities)
}

func (h *ProgramHandler) ListProgramActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.store.ActivitiesByProgram(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, errors.New("failed to fetch activities"))
		return
	}
	if activities == nil {
		activities = []models.Activity{}
	}
	writeJSON(w, http.StatusOK, activities)
}

func (h *ProgramHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var activity models.Activity
	if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
		writeError(w, r, http.StatusBadRequest, errors.New("invalid activity"))
		return
	}
	if strings.TrimSpace(activity.Type) == "" {
		writeError(w, r, http.StatusBadRequest, errors.New("activity type is required"))
		return
	}
	stored, err := h.store.CreateActivity(r.Context(), &activity)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, errors.New("failed to create activity"))
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

func (h *ProgramHandler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	var activity models.Activity
	if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
		writeError(w, r, http.StatusBadRequest, errors.New("invalid activity"))
		return
	}
	activity.ID = mux.Vars(r)["id"]

	stored, err := h.store.UpdateActivity(r.Context(), &activity)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, errors.New("failed to update activity"))
		return
	}
	if stored == nil {
		writeError(w, r, http.StatusNotFound, errors.New("activity not found"))
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

func (h *ProgramHandler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.store.DeleteActivity(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, errors.New("failed to delete activity"))
		return
	}
	if !deleted {
		writeError(w, r, http.StatusNotFound, errors.New("activity not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/progdash/progdash/internal/builder"
	"github.com/progdash/progdash/internal/logging"
	"github.com/progdash/progdash/internal/models"
	"github.com/progdash/progdash/internal/store"
)

// TableConfigHandler serves the saved-as-a-whole table builder configs.
type TableConfigHandler struct {
	store store.Storage
}

func NewTableConfigHandler(st store.Storage) *TableConfigHandler {
	return &TableConfigHandler{store: st}
}

// GetTableConfig returns the saved config for a table, or 404 when the
// table has never been saved.
func (h *TableConfigHandler) GetTableConfig(w http.ResponseWriter, r *http.Request) {
	tableName := mux.Vars(r)["tableName"]
	logging.EnrichTable(r.Context(), tableName)

	cfg, err := h.store.TableConfig(r.Context(), tableName)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, errors.New("failed to fetch table config"))
		return
	}
	if cfg == nil {
		writeError(w, r, http.StatusNotFound, errors.New("table config not found"))
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// SaveTableConfig replaces a table's columns and data in one write.
func (h *TableConfigHandler) SaveTableConfig(w http.ResponseWriter, r *http.Request) {
	var cfg models.TableConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, r, http.StatusBadRequest, errors.New("invalid table config"))
		return
	}
	if cfg.TableName == "" {
		writeError(w, r, http.StatusBadRequest, errors.New("table name is required"))
		return
	}
	logging.EnrichTable(r.Context(), cfg.TableName)

	seen := map[string]bool{}
	for _, col := range cfg.Columns {
		if col.Key == "" {
			writeError(w, r, http.StatusBadRequest, builder.ErrEmptyKey)
			return
		}
		if seen[col.Key] {
			writeError(w, r, http.StatusBadRequest, builder.ErrDuplicateKey)
			return
		}
		seen[col.Key] = true
		if !col.Type.Valid() {
			writeError(w, r, http.StatusBadRequest, builder.ErrInvalidType)
			return
		}
	}
	if cfg.Columns == nil {
		cfg.Columns = []models.BuilderColumn{}
	}
	if cfg.Data == nil {
		cfg.Data = []map[string]string{}
	}

	stored, err := h.store.UpsertTableConfig(r.Context(), &cfg)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, errors.New("failed to save table config"))
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

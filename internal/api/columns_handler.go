package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/progdash/progdash/internal/columns"
	"github.com/progdash/progdash/internal/logging"
	"github.com/progdash/progdash/internal/models"
	"github.com/progdash/progdash/internal/store"
)

// ColumnHandler serves both column configuration resources: the
// display-only column headers and the full field descriptors.
type ColumnHandler struct {
	store   store.Storage
	manager *columns.Manager
}

func NewColumnHandler(st store.Storage, manager *columns.Manager) *ColumnHandler {
	return &ColumnHandler{store: st, manager: manager}
}

// GetColumnHeaders returns every header for a table, hidden ones
// included. Unknown tables yield an empty array, not a 404.
func (h *ColumnHandler) GetColumnHeaders(w http.ResponseWriter, r *http.Request) {
	tableName := mux.Vars(r)["tableName"]
	logging.EnrichTable(r.Context(), tableName)

	headers, err := h.store.ColumnHeaders(r.Context(), tableName)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, errors.New("failed to fetch column headers"))
		return
	}
	if headers == nil {
		headers = []models.ColumnHeader{}
	}
	writeJSON(w, http.StatusOK, headers)
}

func (h *ColumnHandler) UpsertColumnHeader(w http.ResponseWriter, r *http.Request) {
	var header models.ColumnHeader
	if err := json.NewDecoder(r.Body).Decode(&header); err != nil {
		writeError(w, r, http.StatusBadRequest, errors.New("invalid column header configuration"))
		return
	}
	if strings.TrimSpace(header.ColumnKey) == "" || strings.TrimSpace(header.DisplayName) == "" {
		writeError(w, r, http.StatusBadRequest, errors.New("column key and display name are required"))
		return
	}
	if header.TableName == "" {
		writeError(w, r, http.StatusBadRequest, errors.New("table name is required"))
		return
	}
	if header.Width == "" {
		header.Width = "auto"
	}
	if header.Alignment == "" {
		header.Alignment = models.AlignLeft
	}
	logging.EnrichTable(r.Context(), header.TableName)

	stored, err := h.store.UpsertColumnHeader(r.Context(), &header)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, errors.New("failed to save column header"))
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

// GetTableColumns returns all field descriptors for a table, sorted by
// sortOrder.
func (h *ColumnHandler) GetTableColumns(w http.ResponseWriter, r *http.Request) {
	tableName := mux.Vars(r)["tableName"]
	logging.EnrichTable(r.Context(), tableName)

	cols, err := h.manager.List(r.Context(), tableName)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, errors.New("failed to fetch table columns"))
		return
	}
	if cols == nil {
		cols = []models.ColumnDescriptor{}
	}
	writeJSON(w, http.StatusOK, cols)
}

type upsertColumnRequest struct {
	ID              string           `json:"id"`
	TableName       string           `json:"tableName"`
	ColumnKey       string           `json:"columnKey"`
	DisplayName     string           `json:"displayName"`
	DataType        models.DataType  `json:"dataType"`
	IsVisible       *bool            `json:"isVisible"`
	IsEditable      *bool            `json:"isEditable"`
	SortOrder       *int             `json:"sortOrder"`
	Width           string           `json:"width"`
	Alignment       models.Alignment `json:"alignment"`
	SelectOptions   []string         `json:"selectOptions"`
	FormatOptions   map[string]any   `json:"formatOptions"`
	ValidationRules map[string]any   `json:"validationRules"`
	Description     string           `json:"description"`
}

// UpsertTableColumn creates a column when the body carries no id and no
// matching key exists, and updates it otherwise.
func (h *ColumnHandler) UpsertTableColumn(w http.ResponseWriter, r *http.Request) {
	var req upsertColumnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, errors.New("invalid column configuration"))
		return
	}
	if req.TableName == "" {
		writeError(w, r, http.StatusBadRequest, errors.New("table name is required"))
		return
	}
	logging.EnrichTable(r.Context(), req.TableName)

	existing, err := h.manager.List(r.Context(), req.TableName)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, errors.New("failed to fetch table columns"))
		return
	}
	isUpdate := req.ID != ""
	if !isUpdate {
		for _, c := range existing {
			if c.ColumnKey == req.ColumnKey {
				isUpdate = true
				break
			}
		}
	}

	var stored *models.ColumnDescriptor
	if isUpdate {
		stored, err = h.manager.Update(r.Context(), descriptorFromRequest(req, existing))
	} else {
		stored, err = h.manager.Add(r.Context(), columns.AddParams{
			TableName:     req.TableName,
			ColumnKey:     req.ColumnKey,
			DisplayName:   req.DisplayName,
			DataType:      req.DataType,
			Alignment:     req.Alignment,
			Width:         req.Width,
			Visible:       req.IsVisible,
			Editable:      req.IsEditable,
			SelectOptions: req.SelectOptions,
			Description:   req.Description,
		})
	}
	if err != nil {
		writeError(w, r, statusForColumnError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

func descriptorFromRequest(req upsertColumnRequest, existing []models.ColumnDescriptor) models.ColumnDescriptor {
	d := models.ColumnDescriptor{
		ID:              req.ID,
		TableName:       req.TableName,
		ColumnKey:       req.ColumnKey,
		DisplayName:     req.DisplayName,
		DataType:        req.DataType,
		IsVisible:       true,
		IsEditable:      true,
		Width:           req.Width,
		Alignment:       req.Alignment,
		SelectOptions:   req.SelectOptions,
		FormatOptions:   req.FormatOptions,
		ValidationRules: req.ValidationRules,
		Description:     req.Description,
	}
	// keep fields the body omitted
	for _, c := range existing {
		if (req.ID != "" && c.ID == req.ID) || (req.ID == "" && c.ColumnKey == req.ColumnKey) {
			if req.DataType == "" {
				d.DataType = c.DataType
			}
			if req.Alignment == "" {
				d.Alignment = c.Alignment
			}
			if req.Width == "" {
				d.Width = c.Width
			}
			d.IsVisible = c.IsVisible
			d.IsEditable = c.IsEditable
			d.SortOrder = c.SortOrder
			break
		}
	}
	if req.SortOrder != nil {
		d.SortOrder = *req.SortOrder
	}
	if req.IsVisible != nil {
		d.IsVisible = *req.IsVisible
	}
	if req.IsEditable != nil {
		d.IsEditable = *req.IsEditable
	}
	if d.DataType == "" {
		d.DataType = models.DataTypeText
	}
	if d.Alignment == "" {
		d.Alignment = models.AlignLeft
	}
	if d.Width == "" {
		d.Width = "auto"
	}
	return d
}

type reorderRequest struct {
	ColumnKey string `json:"columnKey"`
	Direction string `json:"direction"` // "up" or "down"
}

// ReorderTableColumn swaps a column with its neighbor and returns the
// full renumbered list.
func (h *ColumnHandler) ReorderTableColumn(w http.ResponseWriter, r *http.Request) {
	tableName := mux.Vars(r)["tableName"]
	logging.EnrichTable(r.Context(), tableName)

	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, errors.New("invalid reorder request"))
		return
	}
	cols, err := h.manager.Move(r.Context(), tableName, req.ColumnKey, columns.Direction(req.Direction))
	if err != nil {
		writeError(w, r, statusForColumnError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, cols)
}

type visibilityRequest struct {
	ColumnKey string `json:"columnKey"`
}

func (h *ColumnHandler) ToggleTableColumnVisibility(w http.ResponseWriter, r *http.Request) {
	tableName := mux.Vars(r)["tableName"]
	logging.EnrichTable(r.Context(), tableName)

	var req visibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, errors.New("invalid visibility request"))
		return
	}
	stored, err := h.manager.ToggleVisibility(r.Context(), tableName, req.ColumnKey)
	if err != nil {
		writeError(w, r, statusForColumnError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

// DeleteTableColumn is deliberately unimplemented; see the manager.
func (h *ColumnHandler) DeleteTableColumn(w http.ResponseWriter, r *http.Request) {
	tableName := mux.Vars(r)["tableName"]
	columnKey := mux.Vars(r)["columnKey"]
	err := h.manager.Delete(r.Context(), tableName, columnKey)
	writeError(w, r, http.StatusNotImplemented, err)
}

func statusForColumnError(err error) int {
	switch {
	case errors.Is(err, columns.ErrMissingRequired),
		errors.Is(err, columns.ErrDuplicateKey),
		errors.Is(err, columns.ErrInvalidDataType),
		errors.Is(err, columns.ErrInvalidAlignment),
		errors.Is(err, columns.ErrInvalidDirection):
		return http.StatusBadRequest
	case errors.Is(err, columns.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, columns.ErrDeleteUnsupported):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

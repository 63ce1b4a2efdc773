package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/progdash/progdash/internal/columns"
	"github.com/progdash/progdash/internal/logging"
	"github.com/progdash/progdash/internal/models"
	"github.com/progdash/progdash/internal/store"
	"github.com/progdash/progdash/internal/table"
)

// RenderHandler produces the server-side render model for a table:
// visible columns in order, plus every row dispatched through the cell
// renderer.
type RenderHandler struct {
	store    store.Storage
	manager  *columns.Manager
	renderer *table.Renderer
}

func NewRenderHandler(st store.Storage, manager *columns.Manager) *RenderHandler {
	return &RenderHandler{
		store:   st,
		manager: manager,
		renderer: &table.Renderer{
			Actions: table.ActionSet{CanEdit: true, CanDelete: true},
		},
	}
}

// RenderTable renders the named table. "programs" and "activities" read
// the entity stores; any other name reads a saved table config and 404s
// when none exists. Optional sort and dir query parameters apply a row
// sort before rendering.
func (h *RenderHandler) RenderTable(w http.ResponseWriter, r *http.Request) {
	tableName := mux.Vars(r)["tableName"]
	logging.EnrichTable(r.Context(), tableName)

	rows, found, err := h.tableRows(r.Context(), tableName)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, errors.New("failed to fetch table data"))
		return
	}
	if !found {
		writeError(w, r, http.StatusNotFound, errors.New("table not found"))
		return
	}

	cols, err := h.manager.ListOrInfer(r.Context(), tableName, rows)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, errors.New("failed to fetch table columns"))
		return
	}

	var sortState *table.SortState
	if key := r.URL.Query().Get("sort"); key != "" {
		dir := table.SortDirection(r.URL.Query().Get("dir"))
		if dir != table.SortDesc {
			dir = table.SortAsc
		}
		sortState = &table.SortState{Key: key, Direction: dir}
	}

	writeJSON(w, http.StatusOK, h.renderer.Render(cols, rows, sortState))
}

func (h *RenderHandler) tableRows(ctx context.Context, tableName string) ([]table.Row, bool, error) {
	switch tableName {
	case "programs":
		programs, err := h.store.Programs(ctx)
		if err != nil {
			return nil, false, err
		}
		rows := make([]table.Row, 0, len(programs))
		for _, p := range programs {
			rows = append(rows, programRow(p))
		}
		return rows, true, nil
	case "activities":
		activities, err := h.store.Activities(ctx)
		if err != nil {
			return nil, false, err
		}
		rows := make([]table.Row, 0, len(activities))
		for _, a := range activities {
			rows = append(rows, activityRow(a))
		}
		return rows, true, nil
	}

	cfg, err := h.store.TableConfig(ctx, tableName)
	if err != nil {
		return nil, false, err
	}
	if cfg == nil {
		return nil, false, nil
	}
	rows := make([]table.Row, 0, len(cfg.Data))
	for i, record := range cfg.Data {
		row := table.NewRow(strconv.Itoa(i))
		for k, v := range record {
			row.Fields[k] = table.TextValue(v)
		}
		rows = append(rows, row)
	}
	return rows, true, nil
}

func programRow(p models.Program) table.Row {
	row := table.NewRow(p.ID)
	row.Fields["id"] = table.TextValue(p.ID)
	row.Fields["name"] = table.TextValue(p.Name)
	row.Fields["description"] = table.TextValue(p.Description)
	row.Fields["status"] = table.TextValue(p.Status)
	row.Fields["progress"] = table.NumberValue(float64(p.Progress))
	row.Fields["participants"] = table.NumberValue(float64(p.Participants))
	if p.StartDate != nil {
		row.Fields["startDate"] = table.DateValue(*p.StartDate)
	}
	if p.EndDate != nil {
		row.Fields["endDate"] = table.DateValue(*p.EndDate)
	}
	row.Fields["budgetAllocated"] = table.NumberValue(float64(p.BudgetAllocated))
	row.Fields["budgetUsed"] = table.NumberValue(float64(p.BudgetUsed))
	row.Fields["color"] = table.TextValue(p.Color)
	if p.ImageURL != "" {
		row.Fields["imageUrl"] = table.TextValue(p.ImageURL)
	}
	row.Fields["category"] = table.TextValue(p.Category)
	row.Fields["priority"] = table.TextValue(p.Priority)
	return row
}

func activityRow(a models.Activity) table.Row {
	row := table.NewRow(a.ID)
	row.Fields["id"] = table.TextValue(a.ID)
	row.Fields["programId"] = table.TextValue(a.ProgramID)
	row.Fields["type"] = table.TextValue(a.Type)
	row.Fields["description"] = table.TextValue(a.Description)
	row.Fields["date"] = table.DateValue(a.Date)
	row.Fields["status"] = table.TextValue(a.Status)
	row.Fields["details"] = table.TextValue(a.Details)
	return row
}

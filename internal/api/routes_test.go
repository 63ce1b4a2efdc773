package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/progdash/progdash/internal/api"
	"github.com/progdash/progdash/internal/auth"
	"github.com/progdash/progdash/internal/models"
	"github.com/progdash/progdash/internal/store"
)

type testEnv struct {
	router *mux.Router
	store  *store.Memory
	cookie *http.Cookie
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	st := store.NewMemory()
	svc := auth.NewService(st, time.Hour)
	router := api.NewRouter(api.RouterConfig{
		Store:         st,
		AuthService:   svc,
		SessionTTL:    time.Hour,
		AllowedOrigin: "http://localhost:5173",
		Logger:        zerolog.Nop(),
	})
	return &testEnv{router: router, store: st}
}

// signup creates an admin account and keeps its session cookie for
// subsequent requests.
func (e *testEnv) signup(t *testing.T) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"email":    "admin@example.com",
		"password": "s3cret",
		"username": "admin",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookie {
			e.cookie = c
		}
	}
	require.NotNil(t, e.cookie)
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if e.cookie != nil {
		req.AddCookie(e.cookie)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestColumnHeadersUnknownTableIsEmptyArray(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/column-headers/unknown", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestColumnHeaderUpsertRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/column-headers", map[string]any{
		"tableName": "activities", "columnKey": "type", "displayName": "Type",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestColumnHeaderUpsert(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t)

	rec := env.do(t, http.MethodPost, "/api/column-headers", map[string]any{
		"tableName": "activities", "columnKey": "type", "displayName": "Activity Type",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	stored := decodeJSON[models.ColumnHeader](t, rec)
	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, "auto", stored.Width)
	assert.Equal(t, models.AlignLeft, stored.Alignment)

	// missing required fields
	rec = env.do(t, http.MethodPost, "/api/column-headers", map[string]any{
		"tableName": "activities", "columnKey": "", "displayName": "X",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTableColumnLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t)

	for _, key := range []string{"name", "status", "progress"} {
		rec := env.do(t, http.MethodPost, "/api/table-columns", map[string]any{
			"tableName": "programs", "columnKey": key, "displayName": key,
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	// duplicate key without an id is treated as an update, not an error
	rec := env.do(t, http.MethodPost, "/api/table-columns", map[string]any{
		"tableName": "programs", "columnKey": "name", "displayName": "Program Name",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/table-columns/programs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cols := decodeJSON[[]models.ColumnDescriptor](t, rec)
	require.Len(t, cols, 3)
	assert.Equal(t, "Program Name", cols[0].DisplayName)

	// reorder: move status up
	rec = env.do(t, http.MethodPost, "/api/table-columns/programs/reorder", map[string]string{
		"columnKey": "status", "direction": "up",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	cols = decodeJSON[[]models.ColumnDescriptor](t, rec)
	assert.Equal(t, "status", cols[0].ColumnKey)
	assert.Equal(t, "name", cols[1].ColumnKey)

	// visibility toggle
	rec = env.do(t, http.MethodPost, "/api/table-columns/programs/visibility", map[string]string{
		"columnKey": "progress",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	toggled := decodeJSON[models.ColumnDescriptor](t, rec)
	assert.False(t, toggled.IsVisible)

	// delete stays unimplemented
	rec = env.do(t, http.MethodDelete, "/api/table-columns/programs/progress", nil)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestTableColumnReorderErrors(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t)

	rec := env.do(t, http.MethodPost, "/api/table-columns/programs/reorder", map[string]string{
		"columnKey": "missing", "direction": "up",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/table-columns", map[string]any{
		"tableName": "programs", "columnKey": "name", "displayName": "Name",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/table-columns/programs/reorder", map[string]string{
		"columnKey": "name", "direction": "sideways",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTableConfigNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/table-config/custom", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTableConfigSaveAndFetch(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t)

	rec := env.do(t, http.MethodPost, "/api/table-config", map[string]any{
		"tableName": "custom",
		"columns": []map[string]string{
			{"key": "task", "label": "Task", "type": "text"},
			{"key": "status", "label": "Status", "type": "status"},
		},
		"data": []map[string]string{
			{"task": "ship it", "status": "IN PROGRESS"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/table-config/custom", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cfg := decodeJSON[models.TableConfig](t, rec)
	assert.Len(t, cfg.Columns, 2)
	assert.Len(t, cfg.Data, 1)
}

func TestTableConfigValidation(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t)

	rec := env.do(t, http.MethodPost, "/api/table-config", map[string]any{
		"tableName": "custom",
		"columns":   []map[string]string{{"key": "", "label": "X", "type": "text"}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/table-config", map[string]any{
		"tableName": "custom",
		"columns": []map[string]string{
			{"key": "a", "label": "A", "type": "text"},
			{"key": "a", "label": "Dup", "type": "text"},
		},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/table-config", map[string]any{
		"tableName": "custom",
		"columns":   []map[string]string{{"key": "a", "label": "A", "type": "number"}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProgramCRUD(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t)

	rec := env.do(t, http.MethodPost, "/api/programs", map[string]any{
		"name": "Outreach", "color": "#2563eb",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeJSON[models.Program](t, rec)
	assert.Equal(t, models.ProgramStatusActive, created.Status)

	rec = env.do(t, http.MethodPut, "/api/programs/"+created.ID, map[string]any{
		"name": "Outreach", "progress": 60,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeJSON[models.Program](t, rec)
	assert.Equal(t, 60, updated.Progress)

	rec = env.do(t, http.MethodGet, "/api/programs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeJSON[[]models.Program](t, rec), 1)

	rec = env.do(t, http.MethodDelete, "/api/programs/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/programs/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProgramValidation(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t)

	rec := env.do(t, http.MethodPost, "/api/programs", map[string]any{"name": "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/programs/missing", map[string]any{"name": "X"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProgramActivities(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t)
	ctx := context.Background()

	program, err := env.store.CreateProgram(ctx, &models.Program{Name: "Outreach"})
	require.NoError(t, err)
	_, err = env.store.CreateActivity(ctx, &models.Activity{ProgramID: program.ID, Type: "Kickoff", Date: time.Now(), Status: "completed"})
	require.NoError(t, err)
	_, err = env.store.CreateActivity(ctx, &models.Activity{ProgramID: "other", Type: "Stray", Date: time.Now(), Status: "pending"})
	require.NoError(t, err)

	rec := env.do(t, http.MethodGet, "/api/programs/"+program.ID+"/activities", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	activities := decodeJSON[[]models.Activity](t, rec)
	require.Len(t, activities, 1)
	assert.Equal(t, "Kickoff", activities[0].Type)
}

func TestRenderUnknownTable(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/tables/nope/render", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRenderProgramsWithInferredColumns(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.store.CreateProgram(ctx, &models.Program{Name: "Beta", Status: models.ProgramStatusActive, Color: "#111111"})
	require.NoError(t, err)
	_, err = env.store.CreateProgram(ctx, &models.Program{Name: "Alpha", Status: models.ProgramStatusCompleted, Color: "#222222"})
	require.NoError(t, err)

	rec := env.do(t, http.MethodGet, "/api/tables/programs/render?sort=name&dir=asc", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Headers []map[string]any `json:"headers"`
		Rows    []struct {
			ID    string           `json:"id"`
			Cells []map[string]any `json:"cells"`
		} `json:"rows"`
		Empty bool `json:"empty"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))

	assert.False(t, out.Empty)
	require.Len(t, out.Rows, 2)
	assert.NotEmpty(t, out.Headers)
	// id column leads when no stored configuration exists
	assert.Equal(t, "id", out.Headers[0]["key"])
}

func TestRenderSavedTableConfig(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t)

	rec := env.do(t, http.MethodPost, "/api/table-config", map[string]any{
		"tableName": "custom",
		"columns":   []map[string]string{{"key": "task", "label": "Task", "type": "text"}},
		"data":      []map[string]string{{"task": "ship it"}},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/tables/custom/render", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ship it")
}

func TestAuthFlow(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/auth/admin-exists", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"adminExists": false}`, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/auth/user", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	env.signup(t)

	rec = env.do(t, http.MethodGet, "/api/auth/user", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	user := decodeJSON[models.SessionUser](t, rec)
	assert.Equal(t, "admin", user.Username)

	rec = env.do(t, http.MethodGet, "/api/auth/admin-exists", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"adminExists": true}`, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/auth/user", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminSettingsAndSuggestions(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t)

	rec := env.do(t, http.MethodPost, "/api/admin-settings", map[string]string{
		"key": "site_title", "value": "Dashboard",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	setting := decodeJSON[models.AdminSetting](t, rec)
	assert.Equal(t, "general", setting.Category)

	rec = env.do(t, http.MethodPost, "/api/program-suggestions", map[string]any{
		"keyword": "fitness", "name": "Run Club", "type": "health",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/program-suggestions?keyword=fit", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeJSON[[]models.ProgramSuggestion](t, rec), 1)
}

func TestExportImportRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t)
	ctx := context.Background()

	program, err := env.store.CreateProgram(ctx, &models.Program{Name: "Outreach"})
	require.NoError(t, err)
	_, err = env.store.CreateActivity(ctx, &models.Activity{ProgramID: program.ID, Type: "Kickoff", Date: time.Now(), Status: "completed"})
	require.NoError(t, err)

	rec := env.do(t, http.MethodGet, "/api/export/programs", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var exported map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &exported))

	rec = env.do(t, http.MethodPost, "/api/import/programs", map[string]json.RawMessage{
		"programs":   exported["programs"],
		"activities": exported["activities"],
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"programsImported": 1, "activitiesImported": 1}`, rec.Body.String())

	programs, err := env.store.Programs(ctx)
	require.NoError(t, err)
	assert.Len(t, programs, 2)
}

package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/progdash/progdash/internal/auth"
	"github.com/progdash/progdash/internal/columns"
	"github.com/progdash/progdash/internal/store"
)

// RouterConfig carries everything the HTTP surface needs.
type RouterConfig struct {
	Store         store.Storage
	AuthService   *auth.Service
	SessionTTL    time.Duration
	AllowedOrigin string
	Logger        zerolog.Logger
}

// NewRouter wires every handler behind the shared middleware chain.
// Reads are public; anything that writes configuration or entities
// requires an admin session.
func NewRouter(cfg RouterConfig) *mux.Router {
	manager := columns.NewManager(cfg.Store)
	columnHandler := NewColumnHandler(cfg.Store, manager)
	tableConfigHandler := NewTableConfigHandler(cfg.Store)
	programHandler := NewProgramHandler(cfg.Store)
	adminHandler := NewAdminHandler(cfg.Store)
	authHandler := NewAuthHandler(cfg.AuthService, cfg.SessionTTL)
	renderHandler := NewRenderHandler(cfg.Store, manager)
	authMW := auth.NewMiddleware(cfg.AuthService)

	r := mux.NewRouter()
	r.Use(CORSMiddleware(cfg.AllowedOrigin))
	r.Use(RecoveryMiddleware)
	r.Use(authMW.LoadSession)
	r.Use(LoggingMiddleware(cfg.Logger))

	api := r.PathPrefix("/api").Subrouter()

	// auth
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/auth/user", authHandler.CurrentUser).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/auth/admin-exists", authHandler.AdminExists).Methods(http.MethodGet, http.MethodOptions)

	// public reads
	api.HandleFunc("/column-headers/{tableName}", columnHandler.GetColumnHeaders).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/table-columns/{tableName}", columnHandler.GetTableColumns).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/table-config/{tableName}", tableConfigHandler.GetTableConfig).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/tables/{tableName}/render", renderHandler.RenderTable).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/programs", programHandler.ListPrograms).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/programs/{id}", programHandler.GetProgram).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/programs/{id}/activities", programHandler.ListProgramActivities).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/activities", programHandler.ListActivities).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/program-suggestions", adminHandler.ListProgramSuggestions).Methods(http.MethodGet, http.MethodOptions)

	// admin-only writes
	admin := api.NewRoute().Subrouter()
	admin.Use(authMW.RequireAdmin)
	admin.HandleFunc("/column-headers", columnHandler.UpsertColumnHeader).Methods(http.MethodPost, http.MethodOptions)
	admin.HandleFunc("/table-columns", columnHandler.UpsertTableColumn).Methods(http.MethodPost, http.MethodOptions)
	admin.HandleFunc("/table-columns/{tableName}/reorder", columnHandler.ReorderTableColumn).Methods(http.MethodPost, http.MethodOptions)
	admin.HandleFunc("/table-columns/{tableName}/visibility", columnHandler.ToggleTableColumnVisibility).Methods(http.MethodPost, http.MethodOptions)
	admin.HandleFunc("/table-columns/{tableName}/{columnKey}", columnHandler.DeleteTableColumn).Methods(http.MethodDelete, http.MethodOptions)
	admin.HandleFunc("/table-config", tableConfigHandler.SaveTableConfig).Methods(http.MethodPost, http.MethodOptions)
	admin.HandleFunc("/programs", programHandler.CreateProgram).Methods(http.MethodPost, http.MethodOptions)
	admin.HandleFunc("/programs/{id}", programHandler.UpdateProgram).Methods(http.MethodPut, http.MethodOptions)
	admin.HandleFunc("/programs/{id}", programHandler.DeleteProgram).Methods(http.MethodDelete, http.MethodOptions)
	admin.HandleFunc("/activities", programHandler.CreateActivity).Methods(http.MethodPost, http.MethodOptions)
	admin.HandleFunc("/activities/{id}", programHandler.UpdateActivity).Methods(http.MethodPut, http.MethodOptions)
	admin.HandleFunc("/activities/{id}", programHandler.DeleteActivity).Methods(http.MethodDelete, http.MethodOptions)
	admin.HandleFunc("/program-suggestions", adminHandler.CreateProgramSuggestion).Methods(http.MethodPost, http.MethodOptions)
	admin.HandleFunc("/admin-settings", adminHandler.ListAdminSettings).Methods(http.MethodGet, http.MethodOptions)
	admin.HandleFunc("/admin-settings", adminHandler.UpsertAdminSetting).Methods(http.MethodPost, http.MethodOptions)
	admin.HandleFunc("/export/programs", adminHandler.ExportPrograms).Methods(http.MethodGet, http.MethodOptions)
	admin.HandleFunc("/import/programs", adminHandler.ImportPrograms).Methods(http.MethodPost, http.MethodOptions)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	return r
}

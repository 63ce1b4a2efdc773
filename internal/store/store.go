package store

import (
	"context"
	"time"

	"github.com/progdash/progdash/internal/models"
)

// Storage is the persistence contract for the dashboard. Lookups of a
// missing entity return (nil, nil): absence is an expected state, not a
// failure. List calls on unknown table names return empty slices.
// Deletes report whether anything was removed.
type Storage interface {
	// Programs
	Programs(ctx context.Context) ([]models.Program, error)
	Program(ctx context.Context, id string) (*models.Program, error)
	CreateProgram(ctx context.Context, p *models.Program) (*models.Program, error)
	UpdateProgram(ctx context.Context, p *models.Program) (*models.Program, error)
	DeleteProgram(ctx context.Context, id string) (bool, error)

	// Activities
	Activities(ctx context.Context) ([]models.Activity, error)
	ActivitiesByProgram(ctx context.Context, programID string) ([]models.Activity, error)
	CreateActivity(ctx context.Context, a *models.Activity) (*models.Activity, error)
	UpdateActivity(ctx context.Context, a *models.Activity) (*models.Activity, error)
	DeleteActivity(ctx context.Context, id string) (bool, error)

	// Table builder blobs
	TableConfig(ctx context.Context, tableName string) (*models.TableConfig, error)
	UpsertTableConfig(ctx context.Context, cfg *models.TableConfig) (*models.TableConfig, error)

	// Display-only column headers
	ColumnHeaders(ctx context.Context, tableName string) ([]models.ColumnHeader, error)
	UpsertColumnHeader(ctx context.Context, h *models.ColumnHeader) (*models.ColumnHeader, error)

	// Full field descriptors
	ColumnDescriptors(ctx context.Context, tableName string) ([]models.ColumnDescriptor, error)
	UpsertColumnDescriptor(ctx context.Context, d *models.ColumnDescriptor) (*models.ColumnDescriptor, error)

	// Program suggestions
	ProgramSuggestions(ctx context.Context, keyword string) ([]models.ProgramSuggestion, error)
	CreateProgramSuggestion(ctx context.Context, s *models.ProgramSuggestion) (*models.ProgramSuggestion, error)

	// Admin settings
	AdminSettings(ctx context.Context, category string) ([]models.AdminSetting, error)
	UpsertAdminSetting(ctx context.Context, key, value, category string) (*models.AdminSetting, error)

	// Users
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) (*models.User, error)
	CountAdmins(ctx context.Context) (int, error)

	// Sessions
	CreateSession(ctx context.Context, s *models.Session) error
	Session(ctx context.Context, sid string) (*models.Session, error)
	DeleteSession(ctx context.Context, sid string) (bool, error)
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error)

	Close() error
}

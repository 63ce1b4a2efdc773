package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/progdash/progdash/internal/models"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

type PostgresStore struct {
	db *bun.DB
}

func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(connectionString)))

	db := bun.NewDB(sqldb, pgdialect.New())

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)

	store := &PostgresStore{db: db}

	ctx := context.Background()
	if err := store.InitializeDatabase(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// DB exposes the underlying bun handle for the migrate command.
func (s *PostgresStore) DB() *bun.DB { return s.db }

func (s *PostgresStore) InitializeDatabase(ctx context.Context) error {
	tables := []any{
		(*models.ProgramDB)(nil),
		(*models.ActivityDB)(nil),
		(*models.TableConfigDB)(nil),
		(*models.ColumnHeaderDB)(nil),
		(*models.TableColumnDB)(nil),
		(*models.ProgramSuggestionDB)(nil),
		(*models.AdminSettingDB)(nil),
		(*models.UserDB)(nil),
		(*models.SessionDB)(nil),
	}
	for _, model := range tables {
		_, err := s.db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table for %T: %w", model, err)
		}
	}

	indexes := []struct {
		model   any
		name    string
		columns []string
	}{
		{(*models.ActivityDB)(nil), "idx_activities_program_id", []string{"program_id"}},
		{(*models.ActivityDB)(nil), "idx_activities_date", []string{"date"}},
		{(*models.ColumnHeaderDB)(nil), "idx_column_headers_table", []string{"table_name"}},
		{(*models.TableColumnDB)(nil), "idx_table_columns_table", []string{"table_name"}},
		{(*models.ProgramSuggestionDB)(nil), "idx_suggestions_keyword", []string{"keyword"}},
		{(*models.SessionDB)(nil), "idx_sessions_expire", []string{"expire"}},
	}
	for _, idx := range indexes {
		_, err := s.db.NewCreateIndex().
			Model(idx.model).
			Index(idx.name).
			Column(idx.columns...).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}

func (s *PostgresStore) Programs(ctx context.Context) ([]models.Program, error) {
	var rows []models.ProgramDB
	err := s.db.NewSelect().
		Model(&rows).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	out := make([]models.Program, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToProgram())
	}
	return out, nil
}

func (s *PostgresStore) Program(ctx context.Context, id string) (*models.Program, error) {
	row := new(models.ProgramDB)
	err := s.db.NewSelect().
		Model(row).
		Where("id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get program: %w", err)
	}
	return row.ToProgram(), nil
}

func (s *PostgresStore) CreateProgram(ctx context.Context, p *models.Program) (*models.Program, error) {
	row := models.ProgramFromDomain(p)
	row.ID = uuid.New().String()
	row.CreatedAt = time.Now()
	row.UpdatedAt = row.CreatedAt
	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create program: %w", err)
	}
	return row.ToProgram(), nil
}

func (s *PostgresStore) UpdateProgram(ctx context.Context, p *models.Program) (*models.Program, error) {
	row := models.ProgramFromDomain(p)
	row.UpdatedAt = time.Now()
	res, err := s.db.NewUpdate().
		Model(row).
		WherePK().
		ExcludeColumn("created_at").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update program: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, nil
	}
	return s.Program(ctx, p.ID)
}

func (s *PostgresStore) DeleteProgram(ctx context.Context, id string) (bool, error) {
	res, err := s.db.NewDelete().
		Model((*models.ProgramDB)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to delete program: %w", err)
	}
	affected, _ := res.RowsAffected()
	return affected > 0, nil
}

func (s *PostgresStore) Activities(ctx context.Context) ([]models.Activity, error) {
	var rows []models.ActivityDB
	err := s.db.NewSelect().
		Model(&rows).
		Order("date DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	out := make([]models.Activity, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToActivity())
	}
	return out, nil
}

func (s *PostgresStore) ActivitiesByProgram(ctx context.Context, programID string) ([]models.Activity, error) {
	var rows []models.ActivityDB
	err := s.db.NewSelect().
		Model(&rows).
		Where("program_id = ?", programID).
		Order("date DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities for program: %w", err)
	}
	out := make([]models.Activity, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToActivity())
	}
	return out, nil
}

func (s *PostgresStore) CreateActivity(ctx context.Context, a *models.Activity) (*models.Activity, error) {
	row := models.ActivityFromDomain(a)
	row.ID = uuid.New().String()
	row.CreatedAt = time.Now()
	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}
	return row.ToActivity(), nil
}

func (s *PostgresStore) UpdateActivity(ctx context.Context, a *models.Activity) (*models.Activity, error) {
	row := models.ActivityFromDomain(a)
	res, err := s.db.NewUpdate().
		Model(row).
		WherePK().
		ExcludeColumn("created_at").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update activity: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, nil
	}
	return row.ToActivity(), nil
}

func (s *PostgresStore) DeleteActivity(ctx context.Context, id string) (bool, error) {
	res, err := s.db.NewDelete().
		Model((*models.ActivityDB)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to delete activity: %w", err)
	}
	affected, _ := res.RowsAffected()
	return affected > 0, nil
}

func (s *PostgresStore) TableConfig(ctx context.Context, tableName string) (*models.TableConfig, error) {
	row := new(models.TableConfigDB)
	err := s.db.NewSelect().
		Model(row).
		Where("table_name = ?", tableName).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get table config: %w", err)
	}
	return row.ToTableConfig(), nil
}

func (s *PostgresStore) UpsertTableConfig(ctx context.Context, cfg *models.TableConfig) (*models.TableConfig, error) {
	row := models.TableConfigFromDomain(cfg)
	row.UpdatedAt = time.Now()
	if row.ID == "" {
		row.ID = uuid.New().String()
	}
	_, err := s.db.NewInsert().
		Model(row).
		On("CONFLICT (table_name) DO UPDATE").
		Set("columns = EXCLUDED.columns").
		Set("data = EXCLUDED.data").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert table config: %w", err)
	}
	return s.TableConfig(ctx, cfg.TableName)
}

func (s *PostgresStore) ColumnHeaders(ctx context.Context, tableName string) ([]models.ColumnHeader, error) {
	var rows []models.ColumnHeaderDB
	err := s.db.NewSelect().
		Model(&rows).
		Where("table_name = ?", tableName).
		Order("sort_order ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list column headers: %w", err)
	}
	out := make([]models.ColumnHeader, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToColumnHeader())
	}
	return out, nil
}

func (s *PostgresStore) UpsertColumnHeader(ctx context.Context, h *models.ColumnHeader) (*models.ColumnHeader, error) {
	row := models.ColumnHeaderFromDomain(h)
	row.UpdatedAt = time.Now()
	if row.ID == "" {
		row.ID = uuid.New().String()
	}
	_, err := s.db.NewInsert().
		Model(row).
		On("CONFLICT (table_name, column_key) DO UPDATE").
		Set("display_name = EXCLUDED.display_name").
		Set("is_visible = EXCLUDED.is_visible").
		Set("sort_order = EXCLUDED.sort_order").
		Set("width = EXCLUDED.width").
		Set("alignment = EXCLUDED.alignment").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert column header: %w", err)
	}
	return s.columnHeader(ctx, h.TableName, h.ColumnKey)
}

func (s *PostgresStore) columnHeader(ctx context.Context, tableName, columnKey string) (*models.ColumnHeader, error) {
	row := new(models.ColumnHeaderDB)
	err := s.db.NewSelect().
		Model(row).
		Where("table_name = ?", tableName).
		Where("column_key = ?", columnKey).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read back column header: %w", err)
	}
	return row.ToColumnHeader(), nil
}

func (s *PostgresStore) ColumnDescriptors(ctx context.Context, tableName string) ([]models.ColumnDescriptor, error) {
	var rows []models.TableColumnDB
	err := s.db.NewSelect().
		Model(&rows).
		Where("table_name = ?", tableName).
		Order("sort_order ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list table columns: %w", err)
	}
	out := make([]models.ColumnDescriptor, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToColumnDescriptor())
	}
	return out, nil
}

func (s *PostgresStore) UpsertColumnDescriptor(ctx context.Context, d *models.ColumnDescriptor) (*models.ColumnDescriptor, error) {
	row := models.ColumnDescriptorFromDomain(d)
	row.UpdatedAt = time.Now()
	if row.ID == "" {
		row.ID = uuid.New().String()
	}
	_, err := s.db.NewInsert().
		Model(row).
		On("CONFLICT (table_name, column_key) DO UPDATE").
		Set("display_name = EXCLUDED.display_name").
		Set("data_type = EXCLUDED.data_type").
		Set("is_visible = EXCLUDED.is_visible").
		Set("is_editable = EXCLUDED.is_editable").
		Set("sort_order = EXCLUDED.sort_order").
		Set("width = EXCLUDED.width").
		Set("alignment = EXCLUDED.alignment").
		Set("select_options = EXCLUDED.select_options").
		Set("format_options = EXCLUDED.format_options").
		Set("validation_rules = EXCLUDED.validation_rules").
		Set("description = EXCLUDED.description").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert table column: %w", err)
	}
	return s.columnDescriptor(ctx, d.TableName, d.ColumnKey)
}

func (s *PostgresStore) columnDescriptor(ctx context.Context, tableName, columnKey string) (*models.ColumnDescriptor, error) {
	row := new(models.TableColumnDB)
	err := s.db.NewSelect().
		Model(row).
		Where("table_name = ?", tableName).
		Where("column_key = ?", columnKey).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read back table column: %w", err)
	}
	return row.ToColumnDescriptor(), nil
}

func (s *PostgresStore) ProgramSuggestions(ctx context.Context, keyword string) ([]models.ProgramSuggestion, error) {
	var rows []models.ProgramSuggestionDB
	q := s.db.NewSelect().Model(&rows)
	if keyword != "" {
		pattern := "%" + keyword + "%"
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("keyword ILIKE ?", pattern).
				WhereOr("name ILIKE ?", pattern).
				WhereOr("? = ANY(tags)", keyword)
		})
	}
	if err := q.Order("created_at ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list program suggestions: %w", err)
	}
	out := make([]models.ProgramSuggestion, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToProgramSuggestion())
	}
	return out, nil
}

func (s *PostgresStore) CreateProgramSuggestion(ctx context.Context, sg *models.ProgramSuggestion) (*models.ProgramSuggestion, error) {
	row := models.ProgramSuggestionFromDomain(sg)
	row.ID = uuid.New().String()
	row.CreatedAt = time.Now()
	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create program suggestion: %w", err)
	}
	return row.ToProgramSuggestion(), nil
}

func (s *PostgresStore) AdminSettings(ctx context.Context, category string) ([]models.AdminSetting, error) {
	var rows []models.AdminSettingDB
	q := s.db.NewSelect().Model(&rows)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Order("key ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list admin settings: %w", err)
	}
	out := make([]models.AdminSetting, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToAdminSetting())
	}
	return out, nil
}

func (s *PostgresStore) UpsertAdminSetting(ctx context.Context, key, value, category string) (*models.AdminSetting, error) {
	row := &models.AdminSettingDB{
		ID:        uuid.New().String(),
		Key:       key,
		Value:     value,
		Category:  category,
		UpdatedAt: time.Now(),
	}
	_, err := s.db.NewInsert().
		Model(row).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("category = EXCLUDED.category").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert admin setting: %w", err)
	}
	stored := new(models.AdminSettingDB)
	if err := s.db.NewSelect().Model(stored).Where("key = ?", key).Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to read back admin setting: %w", err)
	}
	return stored.ToAdminSetting(), nil
}

func (s *PostgresStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := new(models.UserDB)
	err := s.db.NewSelect().
		Model(row).
		Where("email = ?", email).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return row.ToUser(), nil
}

func (s *PostgresStore) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	row := new(models.UserDB)
	err := s.db.NewSelect().
		Model(row).
		Where("username = ?", username).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return row.ToUser(), nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, u *models.User) (*models.User, error) {
	row := models.UserFromDomain(u)
	row.ID = uuid.New().String()
	row.CreatedAt = time.Now()
	row.UpdatedAt = row.CreatedAt
	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return row.ToUser(), nil
}

func (s *PostgresStore) CountAdmins(ctx context.Context) (int, error) {
	n, err := s.db.NewSelect().
		Model((*models.UserDB)(nil)).
		Where("role = ?", models.RoleAdmin).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) CreateSession(ctx context.Context, sess *models.Session) error {
	row := models.SessionFromDomain(sess)
	if _, err := s.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (s *PostgresStore) Session(ctx context.Context, sid string) (*models.Session, error) {
	row := new(models.SessionDB)
	err := s.db.NewSelect().
		Model(row).
		Where("sid = ?", sid).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return row.ToSession(), nil
}

func (s *PostgresStore) DeleteSession(ctx context.Context, sid string) (bool, error) {
	res, err := s.db.NewDelete().
		Model((*models.SessionDB)(nil)).
		Where("sid = ?", sid).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to delete session: %w", err)
	}
	affected, _ := res.RowsAffected()
	return affected > 0, nil
}

func (s *PostgresStore) DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	res, err := s.db.NewDelete().
		Model((*models.SessionDB)(nil)).
		Where("expire < ?", now).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	affected, _ := res.RowsAffected()
	return int(affected), nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

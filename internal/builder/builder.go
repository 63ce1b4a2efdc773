package builder

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/progdash/progdash/internal/models"
)

// StatusOptions is the fixed option list offered when editing a
// status-typed cell.
var StatusOptions = []string{
	"COMPLETED",
	"IN PROGRESS",
	"SCHEDULED",
	"PENDING",
	"CANCELLED",
}

var (
	ErrColumnIndex   = errors.New("column index out of range")
	ErrRowIndex      = errors.New("row index out of range")
	ErrUnknownColumn = errors.New("no column with that key")
	ErrEmptyKey      = errors.New("column key must not be empty")
	ErrDuplicateKey  = errors.New("column key already in use")
	ErrInvalidType   = errors.New("invalid column type")
	ErrInvalidStatus = errors.New("value is not a valid status option")
)

// Store persists the builder's combined configuration blob.
type Store interface {
	TableConfig(ctx context.Context, tableName string) (*models.TableConfig, error)
	UpsertTableConfig(ctx context.Context, cfg *models.TableConfig) (*models.TableConfig, error)
}

// Builder edits a single freeform table: its column list and all of its
// row data. Every operation is local until Save pushes the whole blob.
type Builder struct {
	store     Store
	tableName string
	columns   []models.BuilderColumn
	rows      []map[string]string
	now       func() time.Time
}

func New(store Store, tableName string) *Builder {
	return &Builder{
		store:     store,
		tableName: tableName,
		now:       time.Now,
	}
}

// Load pulls the stored configuration. A table with no stored blob
// starts empty; that is not an error.
func (b *Builder) Load(ctx context.Context) error {
	cfg, err := b.store.TableConfig(ctx, b.tableName)
	if err != nil {
		return fmt.Errorf("load table config %q: %w", b.tableName, err)
	}
	if cfg == nil {
		b.columns = nil
		b.rows = nil
		return nil
	}
	b.columns = slices.Clone(cfg.Columns)
	b.rows = cloneRows(cfg.Data)
	return nil
}

func (b *Builder) Columns() []models.BuilderColumn {
	return slices.Clone(b.columns)
}

func (b *Builder) Rows() []map[string]string {
	return cloneRows(b.rows)
}

// AddColumn appends a fresh text column with a time-derived unique key.
func (b *Builder) AddColumn() models.BuilderColumn {
	key := fmt.Sprintf("column_%d", b.now().UnixMilli())
	for b.hasKey(key) {
		key += "_1"
	}
	col := models.BuilderColumn{
		Key:   key,
		Label: "New Column",
		Type:  models.BuilderColumnText,
	}
	b.columns = append(b.columns, col)
	return col
}

func (b *Builder) RenameColumn(i int, label string) error {
	if i < 0 || i >= len(b.columns) {
		return ErrColumnIndex
	}
	b.columns[i].Label = label
	return nil
}

// SetColumnKey changes a column's key. Existing row data keeps the old
// key; only future rows pick up the new one.
func (b *Builder) SetColumnKey(i int, key string) error {
	if i < 0 || i >= len(b.columns) {
		return ErrColumnIndex
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyKey
	}
	if key != b.columns[i].Key && b.hasKey(key) {
		return ErrDuplicateKey
	}
	b.columns[i].Key = key
	return nil
}

func (b *Builder) SetColumnType(i int, t models.BuilderColumnType) error {
	if i < 0 || i >= len(b.columns) {
		return ErrColumnIndex
	}
	switch t {
	case models.BuilderColumnText, models.BuilderColumnDate,
		models.BuilderColumnStatus, models.BuilderColumnActions:
	default:
		return ErrInvalidType
	}
	b.columns[i].Type = t
	return nil
}

// DeleteColumn removes the column and strips its key from every row so
// no orphaned fields remain.
func (b *Builder) DeleteColumn(i int) error {
	if i < 0 || i >= len(b.columns) {
		return ErrColumnIndex
	}
	key := b.columns[i].Key
	b.columns = append(b.columns[:i], b.columns[i+1:]...)
	for _, row := range b.rows {
		delete(row, key)
	}
	return nil
}

// AddRow appends a row pre-populated with an empty string for every
// current column key.
func (b *Builder) AddRow() map[string]string {
	row := make(map[string]string, len(b.columns))
	for _, col := range b.columns {
		row[col.Key] = ""
	}
	b.rows = append(b.rows, row)
	return copyRow(row)
}

// UpdateCell sets one cell. Status columns only accept the fixed option
// list.
func (b *Builder) UpdateCell(rowIndex int, columnKey, value string) error {
	if rowIndex < 0 || rowIndex >= len(b.rows) {
		return ErrRowIndex
	}
	var col *models.BuilderColumn
	for i := range b.columns {
		if b.columns[i].Key == columnKey {
			col = &b.columns[i]
			break
		}
	}
	if col == nil {
		return ErrUnknownColumn
	}
	if col.Type == models.BuilderColumnStatus && !slices.Contains(StatusOptions, value) {
		return ErrInvalidStatus
	}
	b.rows[rowIndex][columnKey] = value
	return nil
}

func (b *Builder) DeleteRow(i int) error {
	if i < 0 || i >= len(b.rows) {
		return ErrRowIndex
	}
	b.rows = append(b.rows[:i], b.rows[i+1:]...)
	return nil
}

// Save is the single persistence point: the whole {columns, rows} state
// goes out as one upsert.
func (b *Builder) Save(ctx context.Context) (*models.TableConfig, error) {
	cfg := &models.TableConfig{
		TableName: b.tableName,
		Columns:   slices.Clone(b.columns),
		Data:      cloneRows(b.rows),
	}
	stored, err := b.store.UpsertTableConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("save table config %q: %w", b.tableName, err)
	}
	return stored, nil
}

func (b *Builder) hasKey(key string) bool {
	for _, c := range b.columns {
		if c.Key == key {
			return true
		}
	}
	return false
}

func copyRow(row map[string]string) map[string]string {
	out := make(map[string]string, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

func cloneRows(rows []map[string]string) []map[string]string {
	out := make([]map[string]string, len(rows))
	for i, r := range rows {
		out[i] = copyRow(r)
	}
	return out
}

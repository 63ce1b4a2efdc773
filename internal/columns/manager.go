package columns

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/progdash/progdash/internal/models"
	"github.com/progdash/progdash/internal/table"
)

var (
	ErrMissingRequired   = errors.New("column key and display name are required")
	ErrDuplicateKey      = errors.New("column key already exists for this table")
	ErrNotFound          = errors.New("column not found")
	ErrInvalidDataType   = errors.New("invalid data type")
	ErrInvalidAlignment  = errors.New("invalid alignment")
	ErrInvalidDirection  = errors.New("invalid move direction")
	ErrDeleteUnsupported = errors.New("column delete is not supported")
)

// Store is the persistence contract the manager needs. Absent tables
// yield an empty list, not an error.
type Store interface {
	ColumnDescriptors(ctx context.Context, tableName string) ([]models.ColumnDescriptor, error)
	UpsertColumnDescriptor(ctx context.Context, d *models.ColumnDescriptor) (*models.ColumnDescriptor, error)
}

// Manager owns the column configuration of logical tables: listing,
// adding, editing, visibility toggles and reordering.
type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// List returns every descriptor for a table, hidden ones included,
// ordered by sortOrder.
func (m *Manager) List(ctx context.Context, tableName string) ([]models.ColumnDescriptor, error) {
	cols, err := m.store.ColumnDescriptors(ctx, tableName)
	if err != nil {
		return nil, fmt.Errorf("list columns for %q: %w", tableName, err)
	}
	sort.SliceStable(cols, func(i, j int) bool {
		return cols[i].SortOrder < cols[j].SortOrder
	})
	return cols, nil
}

// ListOrInfer returns stored descriptors, or descriptors inferred from
// the first row when the table has no configuration yet. Inferred
// descriptors are not written back.
func (m *Manager) ListOrInfer(ctx context.Context, tableName string, rows []table.Row) ([]models.ColumnDescriptor, error) {
	cols, err := m.List(ctx, tableName)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 && len(rows) > 0 {
		return AutoDescriptors(tableName, rows[0]), nil
	}
	return cols, nil
}

// AddParams carries the operator input for a new column. Visible and
// Editable default to true when left nil.
type AddParams struct {
	TableName     string
	ColumnKey     string
	DisplayName   string
	DataType      models.DataType
	Alignment     models.Alignment
	Width         string
	Visible       *bool
	Editable      *bool
	SelectOptions []string
	Description   string
}

// Add appends a new column at the end of the table's ordering.
func (m *Manager) Add(ctx context.Context, p AddParams) (*models.ColumnDescriptor, error) {
	key := strings.TrimSpace(p.ColumnKey)
	name := strings.TrimSpace(p.DisplayName)
	if key == "" || name == "" {
		return nil, ErrMissingRequired
	}
	if p.DataType == "" {
		p.DataType = models.DataTypeText
	}
	if !p.DataType.Valid() {
		return nil, ErrInvalidDataType
	}
	if p.Alignment == "" {
		p.Alignment = models.AlignLeft
	}
	if !p.Alignment.Valid() {
		return nil, ErrInvalidAlignment
	}
	if p.Width == "" {
		p.Width = "auto"
	}

	existing, err := m.List(ctx, p.TableName)
	if err != nil {
		return nil, err
	}
	for _, c := range existing {
		if c.ColumnKey == key {
			return nil, ErrDuplicateKey
		}
	}

	d := &models.ColumnDescriptor{
		TableName:     p.TableName,
		ColumnKey:     key,
		DisplayName:   name,
		DataType:      p.DataType,
		IsVisible:     boolOrDefault(p.Visible, true),
		IsEditable:    boolOrDefault(p.Editable, true),
		SortOrder:     len(existing),
		Width:         p.Width,
		Alignment:     p.Alignment,
		SelectOptions: p.SelectOptions,
		Description:   p.Description,
	}
	stored, err := m.store.UpsertColumnDescriptor(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("add column %q: %w", key, err)
	}
	return stored, nil
}

// Update persists edits to an existing descriptor via upsert.
func (m *Manager) Update(ctx context.Context, d models.ColumnDescriptor) (*models.ColumnDescriptor, error) {
	if strings.TrimSpace(d.ColumnKey) == "" || strings.TrimSpace(d.DisplayName) == "" {
		return nil, ErrMissingRequired
	}
	if !d.DataType.Valid() {
		return nil, ErrInvalidDataType
	}
	if !d.Alignment.Valid() {
		return nil, ErrInvalidAlignment
	}
	stored, err := m.store.UpsertColumnDescriptor(ctx, &d)
	if err != nil {
		return nil, fmt.Errorf("update column %q: %w", d.ColumnKey, err)
	}
	return stored, nil
}

// ToggleVisibility flips one column's visibility and persists it
// immediately.
func (m *Manager) ToggleVisibility(ctx context.Context, tableName, columnKey string) (*models.ColumnDescriptor, error) {
	cols, err := m.List(ctx, tableName)
	if err != nil {
		return nil, err
	}
	for i := range cols {
		if cols[i].ColumnKey == columnKey {
			cols[i].IsVisible = !cols[i].IsVisible
			stored, err := m.store.UpsertColumnDescriptor(ctx, &cols[i])
			if err != nil {
				return nil, fmt.Errorf("toggle visibility of %q: %w", columnKey, err)
			}
			return stored, nil
		}
	}
	return nil, ErrNotFound
}

type Direction string

const (
	MoveUp   Direction = "up"
	MoveDown Direction = "down"
)

// Move swaps a column with its neighbor in the current ordering and
// renumbers all columns to 0..n-1. Moving the first column up or the
// last column down changes nothing. Every descriptor whose sortOrder
// changed is persisted.
func (m *Manager) Move(ctx context.Context, tableName, columnKey string, dir Direction) ([]models.ColumnDescriptor, error) {
	if dir != MoveUp && dir != MoveDown {
		return nil, ErrInvalidDirection
	}
	cols, err := m.List(ctx, tableName)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, c := range cols {
		if c.ColumnKey == columnKey {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrNotFound
	}

	target := idx - 1
	if dir == MoveDown {
		target = idx + 1
	}
	if target < 0 || target >= len(cols) {
		return cols, nil
	}

	cols[idx], cols[target] = cols[target], cols[idx]
	for i := range cols {
		if cols[i].SortOrder == i {
			continue
		}
		cols[i].SortOrder = i
		stored, err := m.store.UpsertColumnDescriptor(ctx, &cols[i])
		if err != nil {
			return nil, fmt.Errorf("reorder column %q: %w", cols[i].ColumnKey, err)
		}
		cols[i] = *stored
	}
	return cols, nil
}

// Delete is intentionally unimplemented: whether removal should cascade
// into stored row data or only hide the column is still undecided.
func (m *Manager) Delete(ctx context.Context, tableName, columnKey string) error {
	return ErrDeleteUnsupported
}

func boolOrDefault(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

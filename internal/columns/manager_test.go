package columns_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/progdash/progdash/internal/columns"
	"github.com/progdash/progdash/internal/models"
	"github.com/progdash/progdash/internal/store"
	"github.com/progdash/progdash/internal/table"
)

func seedColumns(t *testing.T, m *columns.Manager, tableName string, keys ...string) {
	t.Helper()
	for _, key := range keys {
		_, err := m.Add(context.Background(), columns.AddParams{
			TableName:   tableName,
			ColumnKey:   key,
			DisplayName: key,
		})
		require.NoError(t, err)
	}
}

func keysInOrder(cols []models.ColumnDescriptor) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.ColumnKey
	}
	return out
}

func TestManagerAddDefaults(t *testing.T) {
	m := columns.NewManager(store.NewMemory())

	stored, err := m.Add(context.Background(), columns.AddParams{
		TableName:   "programs",
		ColumnKey:   "name",
		DisplayName: "Name",
	})
	require.NoError(t, err)

	assert.Equal(t, models.DataTypeText, stored.DataType)
	assert.Equal(t, models.AlignLeft, stored.Alignment)
	assert.Equal(t, "auto", stored.Width)
	assert.True(t, stored.IsVisible)
	assert.True(t, stored.IsEditable)
	assert.Equal(t, 0, stored.SortOrder)
	assert.NotEmpty(t, stored.ID)

	second, err := m.Add(context.Background(), columns.AddParams{
		TableName:   "programs",
		ColumnKey:   "status",
		DisplayName: "Status",
		DataType:    models.DataTypeStatus,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, second.SortOrder)
}

func TestManagerAddValidation(t *testing.T) {
	m := columns.NewManager(store.NewMemory())
	ctx := context.Background()

	_, err := m.Add(ctx, columns.AddParams{TableName: "programs", ColumnKey: "  ", DisplayName: "Name"})
	assert.ErrorIs(t, err, columns.ErrMissingRequired)

	_, err = m.Add(ctx, columns.AddParams{TableName: "programs", ColumnKey: "name", DisplayName: ""})
	assert.ErrorIs(t, err, columns.ErrMissingRequired)

	_, err = m.Add(ctx, columns.AddParams{TableName: "programs", ColumnKey: "x", DisplayName: "X", DataType: "banana"})
	assert.ErrorIs(t, err, columns.ErrInvalidDataType)

	_, err = m.Add(ctx, columns.AddParams{TableName: "programs", ColumnKey: "x", DisplayName: "X", Alignment: "middle"})
	assert.ErrorIs(t, err, columns.ErrInvalidAlignment)

	seedColumns(t, m, "programs", "name")
	_, err = m.Add(ctx, columns.AddParams{TableName: "programs", ColumnKey: "name", DisplayName: "Again"})
	assert.ErrorIs(t, err, columns.ErrDuplicateKey)

	// same key on another table is fine
	_, err = m.Add(ctx, columns.AddParams{TableName: "activities", ColumnKey: "name", DisplayName: "Name"})
	assert.NoError(t, err)
}

func TestManagerToggleVisibility(t *testing.T) {
	m := columns.NewManager(store.NewMemory())
	ctx := context.Background()
	seedColumns(t, m, "programs", "name")

	stored, err := m.ToggleVisibility(ctx, "programs", "name")
	require.NoError(t, err)
	assert.False(t, stored.IsVisible)

	stored, err = m.ToggleVisibility(ctx, "programs", "name")
	require.NoError(t, err)
	assert.True(t, stored.IsVisible)

	_, err = m.ToggleVisibility(ctx, "programs", "missing")
	assert.ErrorIs(t, err, columns.ErrNotFound)
}

func TestManagerMove(t *testing.T) {
	m := columns.NewManager(store.NewMemory())
	ctx := context.Background()
	seedColumns(t, m, "programs", "a", "b", "c")

	cols, err := m.Move(ctx, "programs", "b", columns.MoveUp)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, keysInOrder(cols))

	// renumbering survives a reload
	cols, err = m.List(ctx, "programs")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, keysInOrder(cols))
	for i, c := range cols {
		assert.Equal(t, i, c.SortOrder)
	}

	cols, err = m.Move(ctx, "programs", "a", columns.MoveDown)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a"}, keysInOrder(cols))
}

func TestManagerMoveBoundaryIsNoOp(t *testing.T) {
	m := columns.NewManager(store.NewMemory())
	ctx := context.Background()
	seedColumns(t, m, "programs", "a", "b")

	cols, err := m.Move(ctx, "programs", "a", columns.MoveUp)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keysInOrder(cols))

	cols, err = m.Move(ctx, "programs", "b", columns.MoveDown)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keysInOrder(cols))
}

func TestManagerMoveErrors(t *testing.T) {
	m := columns.NewManager(store.NewMemory())
	ctx := context.Background()
	seedColumns(t, m, "programs", "a")

	_, err := m.Move(ctx, "programs", "a", "sideways")
	assert.ErrorIs(t, err, columns.ErrInvalidDirection)

	_, err = m.Move(ctx, "programs", "missing", columns.MoveUp)
	assert.ErrorIs(t, err, columns.ErrNotFound)
}

func TestManagerDeleteUnsupported(t *testing.T) {
	m := columns.NewManager(store.NewMemory())
	err := m.Delete(context.Background(), "programs", "name")
	assert.ErrorIs(t, err, columns.ErrDeleteUnsupported)
}

func TestManagerListOrInfer(t *testing.T) {
	m := columns.NewManager(store.NewMemory())
	ctx := context.Background()

	sample := table.NewRow("r1")
	sample.Fields["name"] = table.TextValue("Outreach")

	cols, err := m.ListOrInfer(ctx, "programs", []table.Row{sample})
	require.NoError(t, err)
	require.Len(t, cols, 1)
	assert.Equal(t, "name", cols[0].ColumnKey)

	// stored configuration wins over inference
	seedColumns(t, m, "programs", "status")
	cols, err = m.ListOrInfer(ctx, "programs", []table.Row{sample})
	require.NoError(t, err)
	require.Len(t, cols, 1)
	assert.Equal(t, "status", cols[0].ColumnKey)
}

package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/progdash/progdash/internal/models"
)

func textColumn(key string, editable bool) models.ColumnDescriptor {
	return models.ColumnDescriptor{
		TableName:  "programs",
		ColumnKey:  key,
		DataType:   models.DataTypeText,
		IsEditable: editable,
	}
}

func TestCellEditorCommit(t *testing.T) {
	var committed []Row
	e := NewCellEditor(func(r Row) { committed = append(committed, r) })

	rows := []Row{rowWith("r1", "name", TextValue("old"))}

	require.NoError(t, e.Begin(rows[0], textColumn("name", true)))
	e.Input("new value")
	require.NoError(t, e.Commit(rows))

	require.Len(t, committed, 1)
	assert.Equal(t, "r1", committed[0].ID)
	assert.Equal(t, "new value", committed[0].Get("name").Text())

	// commit leaves edit mode
	_, _, ok := e.Editing()
	assert.False(t, ok)
	assert.ErrorIs(t, e.Commit(rows), ErrNoEdit)
}

func TestCellEditorCancelDiscardsDraft(t *testing.T) {
	var committed int
	e := NewCellEditor(func(Row) { committed++ })

	rows := []Row{rowWith("r1", "name", TextValue("old"))}

	require.NoError(t, e.Begin(rows[0], textColumn("name", true)))
	e.Input("discarded")
	e.Cancel()

	assert.Zero(t, committed)
	assert.ErrorIs(t, e.Commit(rows), ErrNoEdit)
	assert.Equal(t, "old", rows[0].Get("name").Text())
}

func TestCellEditorRejectsNonEditableCells(t *testing.T) {
	e := NewCellEditor(nil)
	row := rowWith("r1", "name", TextValue("x"))

	assert.ErrorIs(t, e.Begin(row, textColumn("name", false)), ErrNotEditable)

	statusCol := models.ColumnDescriptor{
		ColumnKey:  "status",
		DataType:   models.DataTypeStatus,
		IsEditable: true,
	}
	assert.ErrorIs(t, e.Begin(row, statusCol), ErrNotEditable)
}

func TestCellEditorBeginReplacesActiveEdit(t *testing.T) {
	e := NewCellEditor(nil)
	rows := []Row{
		rowWith("r1", "name", TextValue("a")),
		rowWith("r2", "name", TextValue("b")),
	}

	require.NoError(t, e.Begin(rows[0], textColumn("name", true)))
	require.NoError(t, e.Begin(rows[1], textColumn("name", true)))

	rowID, column, ok := e.Editing()
	assert.True(t, ok)
	assert.Equal(t, "r2", rowID)
	assert.Equal(t, "name", column)
}

func TestCellEditorCommitOnDeletedRow(t *testing.T) {
	e := NewCellEditor(nil)
	row := rowWith("gone", "name", TextValue("x"))

	require.NoError(t, e.Begin(row, textColumn("name", true)))
	assert.ErrorIs(t, e.Commit([]Row{rowWith("other", "name", TextValue("y"))}), ErrRowGone)

	_, _, ok := e.Editing()
	assert.False(t, ok)
}

package table

import (
	"errors"

	"github.com/progdash/progdash/internal/models"
)

var (
	ErrNotEditable = errors.New("cell is not editable")
	ErrNoEdit      = errors.New("no cell is being edited")
	ErrRowGone     = errors.New("edited row no longer exists")
)

// CellEditor tracks the single in-flight inline edit. Only text columns
// flagged editable accept edits; beginning a new edit replaces any
// previous one.
type CellEditor struct {
	onCommit func(Row)

	active bool
	rowID  string
	column string
	value  string
}

func NewCellEditor(onCommit func(Row)) *CellEditor {
	return &CellEditor{onCommit: onCommit}
}

// Begin enters edit mode on one cell, seeding the draft with the cell's
// current value.
func (e *CellEditor) Begin(row Row, col models.ColumnDescriptor) error {
	if col.DataType != models.DataTypeText || !col.IsEditable {
		return ErrNotEditable
	}
	e.active = true
	e.rowID = row.ID
	e.column = col.ColumnKey
	e.value = row.Get(col.ColumnKey).String()
	return nil
}

// Input replaces the draft value.
func (e *CellEditor) Input(s string) {
	if e.active {
		e.value = s
	}
}

// Editing reports the cell currently in edit mode.
func (e *CellEditor) Editing() (rowID, column string, ok bool) {
	return e.rowID, e.column, e.active
}

// Commit applies the draft to the edited row and reports the full
// updated row through the commit callback, then leaves edit mode.
func (e *CellEditor) Commit(rows []Row) error {
	if !e.active {
		return ErrNoEdit
	}
	for _, row := range rows {
		if row.ID == e.rowID {
			updated := row.With(e.column, TextValue(e.value))
			e.reset()
			if e.onCommit != nil {
				e.onCommit(updated)
			}
			return nil
		}
	}
	e.reset()
	return ErrRowGone
}

// Cancel leaves edit mode without committing.
func (e *CellEditor) Cancel() {
	e.reset()
}

func (e *CellEditor) reset() {
	e.active = false
	e.rowID = ""
	e.column = ""
	e.value = ""
}

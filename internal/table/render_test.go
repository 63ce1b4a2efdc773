package table

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/progdash/progdash/internal/models"
)

func TestStatusVariant(t *testing.T) {
	assert.Equal(t, BadgeDefault, StatusVariant("active"))
	assert.Equal(t, BadgeDefault, StatusVariant("Active"))
	assert.Equal(t, BadgeSecondary, StatusVariant("completed"))
	assert.Equal(t, BadgeDestructive, StatusVariant("cancelled"))
	assert.Equal(t, BadgeOutline, StatusVariant("paused"))
	assert.Equal(t, BadgeOutline, StatusVariant(""))
}

func TestRenderFiltersAndOrdersColumns(t *testing.T) {
	cols := []models.ColumnDescriptor{
		{ColumnKey: "status", DisplayName: "Status", DataType: models.DataTypeStatus, IsVisible: true, SortOrder: 1},
		{ColumnKey: "secret", DisplayName: "Secret", DataType: models.DataTypeText, IsVisible: false, SortOrder: 2},
		{ColumnKey: "name", DisplayName: "Name", DataType: models.DataTypeText, IsVisible: true, SortOrder: 0},
	}
	rows := []Row{rowWith("r1", "name", TextValue("Outreach"))}

	r := &Renderer{}
	out := r.Render(cols, rows, nil)

	require.Len(t, out.Headers, 2)
	assert.Equal(t, "name", out.Headers[0].Key)
	assert.Equal(t, "status", out.Headers[1].Key)
	assert.Equal(t, "auto", out.Headers[0].Width)
	require.Len(t, out.Rows, 1)
	require.Len(t, out.Rows[0].Cells, 2)
	assert.False(t, out.Empty)
}

func TestRenderEmptyTable(t *testing.T) {
	cols := []models.ColumnDescriptor{
		{ColumnKey: "name", DisplayName: "Name", DataType: models.DataTypeText, IsVisible: true},
	}

	r := &Renderer{}
	out := r.Render(cols, nil, nil)

	assert.True(t, out.Empty)
	assert.Empty(t, out.Rows)
	require.Len(t, out.Headers, 1)
}

func TestRenderCellTypes(t *testing.T) {
	ts := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	row := NewRow("r1")
	row.Fields["name"] = TextValue("Outreach")
	row.Fields["status"] = TextValue("completed")
	row.Fields["date"] = DateValue(ts)
	row.Fields["photo"] = TextValue("https://example.com/a.png")
	row.Fields["color"] = TextValue("#2563eb")
	row.Fields["progress"] = NumberValue(35)

	cols := []models.ColumnDescriptor{
		{ColumnKey: "name", DataType: models.DataTypeText, IsVisible: true, IsEditable: true, SortOrder: 0},
		{ColumnKey: "status", DataType: models.DataTypeStatus, IsVisible: true, SortOrder: 1},
		{ColumnKey: "date", DataType: models.DataTypeDate, IsVisible: true, SortOrder: 2},
		{ColumnKey: "photo", DataType: models.DataTypeImage, IsVisible: true, SortOrder: 3},
		{ColumnKey: "color", DataType: models.DataTypeColor, IsVisible: true, SortOrder: 4},
		{ColumnKey: "progress", DataType: models.DataTypeProgress, IsVisible: true, SortOrder: 5},
		{ColumnKey: "actions", DataType: models.DataTypeActions, IsVisible: true, SortOrder: 6},
	}

	r := &Renderer{Actions: ActionSet{CanEdit: true, CanDelete: true}}
	out := r.Render(cols, []Row{row}, nil)

	require.Len(t, out.Rows, 1)
	cells := out.Rows[0].Cells
	require.Len(t, cells, 7)

	assert.Equal(t, "Outreach", cells[0].Text)
	assert.True(t, cells[0].Editable)

	assert.Equal(t, "completed", cells[1].Text)
	assert.Equal(t, BadgeSecondary, cells[1].Badge)

	assert.Equal(t, "Mar 14, 2025", cells[2].Text)

	assert.Equal(t, "https://example.com/a.png", cells[3].ImageURL)
	assert.False(t, cells[3].Placeholder)

	assert.Equal(t, "#2563eb", cells[4].Swatch)

	assert.Equal(t, float64(35), cells[5].Percent)
	assert.Equal(t, "35%", cells[5].Text)

	require.Len(t, cells[6].Actions, 2)
	assert.Equal(t, "edit", cells[6].Actions[0].Name)
	assert.Equal(t, "delete", cells[6].Actions[1].Name)
	assert.Equal(t, "destructive", cells[6].Actions[1].Variant)
}

func TestRenderMissingValues(t *testing.T) {
	row := NewRow("r1")
	cols := []models.ColumnDescriptor{
		{ColumnKey: "name", DataType: models.DataTypeText, IsVisible: true, SortOrder: 0},
		{ColumnKey: "count", DataType: models.DataTypeNumber, IsVisible: true, SortOrder: 1},
		{ColumnKey: "photo", DataType: models.DataTypeImage, IsVisible: true, SortOrder: 2},
		{ColumnKey: "date", DataType: models.DataTypeDate, IsVisible: true, SortOrder: 3},
	}

	r := &Renderer{}
	out := r.Render(cols, []Row{row}, nil)

	cells := out.Rows[0].Cells
	assert.Equal(t, "-", cells[0].Text)
	assert.Equal(t, "-", cells[1].Text)
	assert.True(t, cells[2].Placeholder)
	assert.Equal(t, "", cells[3].Text)
}

func TestRenderDateFromText(t *testing.T) {
	row := NewRow("r1")
	row.Fields["date"] = TextValue("2025-03-14")
	row.Fields["raw"] = TextValue("next week")

	cols := []models.ColumnDescriptor{
		{ColumnKey: "date", DataType: models.DataTypeDate, IsVisible: true, SortOrder: 0},
		{ColumnKey: "raw", DataType: models.DataTypeDate, IsVisible: true, SortOrder: 1},
	}

	r := &Renderer{}
	out := r.Render(cols, []Row{row}, nil)

	assert.Equal(t, "Mar 14, 2025", out.Rows[0].Cells[0].Text)
	// unparseable date text passes through untouched
	assert.Equal(t, "next week", out.Rows[0].Cells[1].Text)
}

func TestRenderAppliesRowSort(t *testing.T) {
	cols := []models.ColumnDescriptor{
		{ColumnKey: "name", DataType: models.DataTypeText, IsVisible: true},
	}
	rows := []Row{
		rowWith("b", "name", TextValue("banana")),
		rowWith("a", "name", TextValue("apple")),
	}

	r := &Renderer{}
	out := r.Render(cols, rows, &SortState{Key: "name", Direction: SortAsc})

	require.Len(t, out.Rows, 2)
	assert.Equal(t, "a", out.Rows[0].ID)
	assert.Equal(t, "b", out.Rows[1].ID)
	require.NotNil(t, out.Sort)
	assert.Equal(t, "name", out.Sort.Key)
}

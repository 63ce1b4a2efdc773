package table

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/progdash/progdash/internal/models"
)

type BadgeVariant string

const (
	BadgeDefault     BadgeVariant = "default"
	BadgeSecondary   BadgeVariant = "secondary"
	BadgeDestructive BadgeVariant = "destructive"
	BadgeOutline     BadgeVariant = "outline"
)

// StatusVariant maps a status value to its badge style.
func StatusVariant(status string) BadgeVariant {
	switch strings.ToLower(status) {
	case "active":
		return BadgeDefault
	case "completed":
		return BadgeSecondary
	case "cancelled":
		return BadgeDestructive
	}
	return BadgeOutline
}

// Action is one button rendered in an actions cell.
type Action struct {
	Name    string `json:"name"`
	Label   string `json:"label,omitempty"`
	Icon    string `json:"icon,omitempty"`
	Variant string `json:"variant"` // default, destructive, outline
}

// ActionSet configures which actions cells of an actions column carry.
type ActionSet struct {
	CanEdit   bool
	CanDelete bool
	Custom    []Action
}

func (s ActionSet) actions() []Action {
	var out []Action
	if s.CanEdit {
		out = append(out, Action{Name: "edit", Icon: "edit", Variant: "outline"})
	}
	if s.CanDelete {
		out = append(out, Action{Name: "delete", Icon: "trash", Variant: "destructive"})
	}
	for _, a := range s.Custom {
		if a.Variant == "" {
			a.Variant = "outline"
		}
		out = append(out, a)
	}
	return out
}

// Cell is the render model for one table cell. Type discriminates which
// of the optional fields are meaningful.
type Cell struct {
	Column      string           `json:"column"`
	Type        models.DataType  `json:"type"`
	Align       models.Alignment `json:"align"`
	Text        string           `json:"text,omitempty"`
	Editable    bool             `json:"editable,omitempty"`
	Badge       BadgeVariant     `json:"badge,omitempty"`
	ImageURL    string           `json:"imageUrl,omitempty"`
	Placeholder bool             `json:"placeholder,omitempty"`
	Swatch      string           `json:"swatch,omitempty"`
	Percent     float64          `json:"percent,omitempty"`
	Actions     []Action         `json:"actions,omitempty"`
}

type Header struct {
	Key   string           `json:"key"`
	Label string           `json:"label"`
	Width string           `json:"width"`
	Align models.Alignment `json:"align"`
}

type RenderedRow struct {
	ID    string `json:"id"`
	Cells []Cell `json:"cells"`
}

type RenderedTable struct {
	Headers []Header      `json:"headers"`
	Rows    []RenderedRow `json:"rows"`
	Empty   bool          `json:"empty"`
	Sort    *SortState    `json:"sort,omitempty"`
}

// Renderer turns column configuration plus row data into a typed render
// model. Hidden columns are dropped, columns are ordered by sortOrder,
// and each cell is dispatched on its column's data type.
type Renderer struct {
	Actions ActionSet
}

func (r *Renderer) Render(cols []models.ColumnDescriptor, rows []Row, sortState *SortState) RenderedTable {
	visible := make([]models.ColumnDescriptor, 0, len(cols))
	for _, c := range cols {
		if c.IsVisible {
			visible = append(visible, c)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].SortOrder < visible[j].SortOrder
	})

	if sortState != nil && sortState.Key != "" {
		rows = SortRows(rows, sortState.Key, sortState.Direction)
	}

	out := RenderedTable{
		Headers: make([]Header, 0, len(visible)),
		Rows:    make([]RenderedRow, 0, len(rows)),
		Empty:   len(rows) == 0,
		Sort:    sortState,
	}
	for _, c := range visible {
		width := c.Width
		if width == "" {
			width = "auto"
		}
		out.Headers = append(out.Headers, Header{
			Key:   c.ColumnKey,
			Label: c.DisplayName,
			Width: width,
			Align: c.Alignment,
		})
	}
	for _, row := range rows {
		rendered := RenderedRow{ID: row.ID, Cells: make([]Cell, 0, len(visible))}
		for _, c := range visible {
			rendered.Cells = append(rendered.Cells, r.renderCell(c, row))
		}
		out.Rows = append(out.Rows, rendered)
	}
	return out
}

func (r *Renderer) renderCell(col models.ColumnDescriptor, row Row) Cell {
	v := row.Get(col.ColumnKey)
	cell := Cell{Column: col.ColumnKey, Type: col.DataType, Align: col.Alignment}

	switch col.DataType {
	case models.DataTypeNumber:
		cell.Text = displayText(v)
	case models.DataTypeDate:
		cell.Text = formatDate(v)
	case models.DataTypeStatus:
		cell.Text = v.String()
		cell.Badge = StatusVariant(v.String())
	case models.DataTypeImage:
		if s := v.String(); s != "" {
			cell.ImageURL = s
		} else {
			cell.Placeholder = true
		}
	case models.DataTypeColor:
		cell.Swatch = v.String()
		cell.Text = v.String()
	case models.DataTypeProgress:
		pct := progressPercent(v)
		cell.Percent = pct
		cell.Text = fmt.Sprintf("%v%%", strconv.FormatFloat(pct, 'f', -1, 64))
	case models.DataTypeActions:
		cell.Actions = r.Actions.actions()
	default:
		// text, boolean and select all read as plain text
		cell.Text = displayText(v)
		cell.Editable = col.IsEditable
	}
	return cell
}

// displayText renders a missing value as "-" so empty cells stay visible.
func displayText(v Value) string {
	if v.IsNull() {
		return "-"
	}
	return v.String()
}

func formatDate(v Value) string {
	switch v.Kind() {
	case KindDate:
		return v.Date().Format("Jan 2, 2006")
	case KindText:
		s := v.Text()
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Format("Jan 2, 2006")
			}
		}
		return s
	}
	return ""
}

func progressPercent(v Value) float64 {
	switch v.Kind() {
	case KindNumber:
		return v.Number()
	case KindText:
		if f, err := strconv.ParseFloat(v.Text(), 64); err == nil {
			return f
		}
	}
	return 0
}

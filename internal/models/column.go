package models

import "time"

// DataType classifies how a column's cells are rendered and edited.
type DataType string

const (
	DataTypeText     DataType = "text"
	DataTypeNumber   DataType = "number"
	DataTypeDate     DataType = "date"
	DataTypeStatus   DataType = "status"
	DataTypeImage    DataType = "image"
	DataTypeColor    DataType = "color"
	DataTypeProgress DataType = "progress"
	DataTypeBoolean  DataType = "boolean"
	DataTypeSelect   DataType = "select"
	DataTypeActions  DataType = "actions"
)

func (t DataType) Valid() bool {
	switch t {
	case DataTypeText, DataTypeNumber, DataTypeDate, DataTypeStatus,
		DataTypeImage, DataTypeColor, DataTypeProgress, DataTypeBoolean,
		DataTypeSelect, DataTypeActions:
		return true
	}
	return false
}

type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

func (a Alignment) Valid() bool {
	switch a {
	case AlignLeft, AlignCenter, AlignRight:
		return true
	}
	return false
}

// ColumnDescriptor is the full per-column field configuration for one
// logical table. ColumnKey is unique within TableName; SortOrder values
// only matter relative to each other.
type ColumnDescriptor struct {
	ID              string         `json:"id,omitempty"`
	TableName       string         `json:"tableName"`
	ColumnKey       string         `json:"columnKey"`
	DisplayName     string         `json:"displayName"`
	DataType        DataType       `json:"dataType"`
	IsVisible       bool           `json:"isVisible"`
	IsEditable      bool           `json:"isEditable"`
	SortOrder       int            `json:"sortOrder"`
	Width           string         `json:"width"` // "auto", "150px", "20%"
	Alignment       Alignment      `json:"alignment"`
	SelectOptions   []string       `json:"selectOptions,omitempty"`
	FormatOptions   map[string]any `json:"formatOptions,omitempty"`
	ValidationRules map[string]any `json:"validationRules,omitempty"`
	Description     string         `json:"description,omitempty"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// ColumnHeader is the display-only descriptor variant behind the
// column-headers resource. It carries no type or edit configuration.
type ColumnHeader struct {
	ID          string    `json:"id,omitempty"`
	TableName   string    `json:"tableName"`
	ColumnKey   string    `json:"columnKey"`
	DisplayName string    `json:"displayName"`
	IsVisible   bool      `json:"isVisible"`
	SortOrder   int       `json:"sortOrder"`
	Width       string    `json:"width"`
	Alignment   Alignment `json:"alignment"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

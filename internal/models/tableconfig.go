package models

import "time"

// BuilderColumnType is the reduced type set used by the ad hoc table
// builder. The full DataType set only applies to managed field
// descriptors.
type BuilderColumnType string

const (
	BuilderColumnText    BuilderColumnType = "text"
	BuilderColumnDate    BuilderColumnType = "date"
	BuilderColumnStatus  BuilderColumnType = "status"
	BuilderColumnActions BuilderColumnType = "actions"
)

func (t BuilderColumnType) Valid() bool {
	switch t {
	case BuilderColumnText, BuilderColumnDate, BuilderColumnStatus, BuilderColumnActions:
		return true
	}
	return false
}

type BuilderColumn struct {
	Key   string            `json:"key"`
	Label string            `json:"label"`
	Type  BuilderColumnType `json:"type"`
}

// TableConfig is the single-document blob holding an ad hoc table's
// entire column list and row data.
type TableConfig struct {
	ID        string              `json:"id,omitempty"`
	TableName string              `json:"tableName"`
	Columns   []BuilderColumn     `json:"columns"`
	Data      []map[string]string `json:"data"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

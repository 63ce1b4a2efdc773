package models

import "time"

// AdminSetting is a keyed UI/content setting, grouped by category
// ("ui", "theme", "content").
type AdminSetting struct {
	ID        string    `json:"id,omitempty"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	Category  string    `json:"category"`
	UpdatedAt time.Time `json:"updatedAt"`
}

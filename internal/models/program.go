package models

import "time"

// Program statuses used by the dashboard.
const (
	ProgramStatusActive    = "active"
	ProgramStatusPaused    = "paused"
	ProgramStatusCompleted = "completed"
	ProgramStatusCancelled = "cancelled"
)

type Program struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Description     string         `json:"description,omitempty"`
	Status          string         `json:"status"`
	Progress        int            `json:"progress"` // 0-100
	Participants    int            `json:"participants"`
	StartDate       *time.Time     `json:"startDate,omitempty"`
	EndDate         *time.Time     `json:"endDate,omitempty"`
	BudgetAllocated int            `json:"budgetAllocated"`
	BudgetUsed      int            `json:"budgetUsed"`
	Color           string         `json:"color"`
	Icon            string         `json:"icon,omitempty"`
	ImageURL        string         `json:"imageUrl,omitempty"`
	Tags            []string       `json:"tags,omitempty"`
	Category        string         `json:"category,omitempty"`
	Priority        string         `json:"priority,omitempty"` // low, medium, high
	Metadata        map[string]any `json:"metadata,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

type Activity struct {
	ID          string    `json:"id"`
	ProgramID   string    `json:"programId,omitempty"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"` // completed, in_progress, scheduled, pending, cancelled
	Details     string    `json:"details,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ProgramSuggestion struct {
	ID           string         `json:"id"`
	Keyword      string         `json:"keyword"`
	Name         string         `json:"name"`
	Type         string         `json:"type"`
	Description  string         `json:"description,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
	Category     string         `json:"category,omitempty"`
	Priority     string         `json:"priority,omitempty"`
	DefaultColor string         `json:"defaultColor,omitempty"`
	DefaultIcon  string         `json:"defaultIcon,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	IsActive     bool           `json:"isActive"`
	CreatedAt    time.Time      `json:"createdAt"`
}

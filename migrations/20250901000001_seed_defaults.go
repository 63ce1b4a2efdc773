package migrations

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/progdash/progdash/internal/models"
)

func init() {
	Migrations.MustRegister(seedDefaultsUp, seedDefaultsDown)
}

// seedDefaultsUp loads the default activities column headers, the
// starter admin settings, and one sample program with a couple of
// activities so a fresh install renders something.
func seedDefaultsUp(ctx context.Context, db *bun.DB) error {
	now := time.Now()

	headers := []models.ColumnHeaderDB{
		{TableName: "activities", ColumnKey: "type", DisplayName: "Activity Type", SortOrder: 0},
		{TableName: "activities", ColumnKey: "description", DisplayName: "Description", SortOrder: 1},
		{TableName: "activities", ColumnKey: "date", DisplayName: "Date", SortOrder: 2},
		{TableName: "activities", ColumnKey: "status", DisplayName: "Status", SortOrder: 3},
		{TableName: "activities", ColumnKey: "details", DisplayName: "Details", SortOrder: 4},
	}
	for i := range headers {
		headers[i].ID = uuid.New().String()
		headers[i].IsVisible = true
		headers[i].Width = "auto"
		headers[i].Alignment = models.AlignLeft
		headers[i].UpdatedAt = now
	}
	if _, err := db.NewInsert().
		Model(&headers).
		On("CONFLICT (table_name, column_key) DO NOTHING").
		Exec(ctx); err != nil {
		return err
	}

	settings := []models.AdminSettingDB{
		{Key: "site_title", Value: "Program Dashboard", Category: "general"},
		{Key: "default_table", Value: "programs", Category: "general"},
		{Key: "items_per_page", Value: "25", Category: "display"},
	}
	for i := range settings {
		settings[i].ID = uuid.New().String()
		settings[i].UpdatedAt = now
	}
	if _, err := db.NewInsert().
		Model(&settings).
		On("CONFLICT (key) DO NOTHING").
		Exec(ctx); err != nil {
		return err
	}

	start := now.AddDate(0, -1, 0)
	program := models.ProgramDB{
		ID:              uuid.New().String(),
		Name:            "Community Outreach",
		Description:     "Neighborhood engagement and volunteer coordination",
		Status:          models.ProgramStatusActive,
		Progress:        35,
		Participants:    42,
		StartDate:       &start,
		BudgetAllocated: 15000,
		BudgetUsed:      4200,
		Color:           "#2563eb",
		Category:        "community",
		Priority:        "medium",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if _, err := db.NewInsert().Model(&program).Exec(ctx); err != nil {
		return err
	}

	activities := []models.ActivityDB{
		{
			ID:          uuid.New().String(),
			ProgramID:   program.ID,
			Type:        "Kickoff Meeting",
			Description: "Initial planning session with volunteers",
			Date:        start,
			Status:      "completed",
			CreatedAt:   now,
		},
		{
			ID:          uuid.New().String(),
			ProgramID:   program.ID,
			Type:        "Site Visit",
			Description: "Walkthrough of the first neighborhood site",
			Date:        now.AddDate(0, 0, 7),
			Status:      "scheduled",
			CreatedAt:   now,
		},
	}
	if _, err := db.NewInsert().Model(&activities).Exec(ctx); err != nil {
		return err
	}

	return nil
}

func seedDefaultsDown(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewDelete().
		Model((*models.ActivityDB)(nil)).
		Where("type IN (?, ?)", "Kickoff Meeting", "Site Visit").
		Exec(ctx); err != nil {
		return err
	}
	if _, err := db.NewDelete().
		Model((*models.ProgramDB)(nil)).
		Where("name = ?", "Community Outreach").
		Exec(ctx); err != nil {
		return err
	}
	if _, err := db.NewDelete().
		Model((*models.AdminSettingDB)(nil)).
		Where("key IN (?, ?, ?)", "site_title", "default_table", "items_per_page").
		Exec(ctx); err != nil {
		return err
	}
	if _, err := db.NewDelete().
		Model((*models.ColumnHeaderDB)(nil)).
		Where("table_name = ?", "activities").
		Exec(ctx); err != nil {
		return err
	}
	return nil
}

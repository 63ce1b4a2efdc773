// Package migrations holds the bun migration set for the dashboard
// database. Schema creation happens in the store on startup; seed data
// lives here so it runs exactly once.
package migrations

import "github.com/uptrace/bun/migrate"

var Migrations = migrate.NewMigrations()

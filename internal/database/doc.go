// Package database provides SQLite access through gorm.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup, migrations, read-only sources
//	└── runs/            # Run history of washed files
//
// Two kinds of databases are opened:
//
//   - The run history (NewDatabase): created on demand and migrated, holds
//     one entities.WashRun per washed file.
//   - Record sources (OpenSource): existing files opened read-only; a query
//     produces the rows of a table via QueryStrings.
//
// # Example Usage
//
//	db, err := database.NewDatabase("./qawash-history.db")
//	repo := runs.NewRepository(db.DB)
//	recent, err := repo.GetRecentRuns(20)
package database

package database

import (
	"database/sql"
	"fmt"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/qawash/internal/entities"
	qlog "github.com/mrlokans/qawash/internal/logger"
)

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens (or creates) the run-history database and migrates it.
func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&entities.WashRun{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	qlog.Debugf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

// OpenSource opens an existing SQLite file as a read-only record source.
// Nothing is migrated or created.
func OpenSource(dbPath string) (*Database, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("source database %s: %w", dbPath, err)
	}
	db, err := gorm.Open(sqlite.Open("file:"+dbPath+"?mode=ro"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open source database: %w", err)
	}
	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// QueryStrings runs a query and returns the column names and every row
// as nullable strings, in result order.
func (d *Database) QueryStrings(query string) ([]string, [][]sql.NullString, error) {
	rows, err := d.DB.Raw(query).Rows()
	if err != nil {
		return nil, nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var result [][]sql.NullString
	for rows.Next() {
		values := make([]sql.NullString, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, fmt.Errorf("failed to scan row %d: %w", len(result), err)
		}
		result = append(result, values)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return columns, result, nil
}

// Package repository implements the PostgreSQL store for the panel:
// endpoints, subscribers, payments, settings, templates and admin
// accounts. Methods follow the create/read/update/delete contract of the
// services layer; rows absent from the store are reported as nil results,
// not errors.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	// pgx driver registration for database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Storage encapsulates the PostgreSQL connection.
type Storage struct {
	DB *sql.DB
}

// New opens the PostgreSQL connection and verifies it with a ping.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// Ready verifies the connection is alive and the schema has been migrated.
func (s *Storage) Ready(ctx context.Context) error {
	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'subscribers'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table subscribers missing or query error: %w", err)
	}
	return nil
}

package database

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// ArchiveDB wraps the MySQL connection for the reporting archive (store B):
// the flattened bet archive and its detail staging table. It is a downstream
// sink fed by idempotent batch writes; no transaction spans both stores.
type ArchiveDB struct {
	*sqlx.DB
}

// NewArchiveConnection opens the reporting archive store.
func NewArchiveConnection(databaseURL string, maxConns int) (*ArchiveDB, error) {
	db, err := sqlx.Connect("mysql", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to archive database: %w", err)
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
	}
	return &ArchiveDB{DB: db}, nil
}

// Close closes the archive connection.
func (db *ArchiveDB) Close() error {
	return db.DB.Close()
}

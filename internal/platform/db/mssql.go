package db

import (
	"database/sql"
	"fmt"
	"time"

	// SQL Server driver for the branch store.
	_ "github.com/denisenkom/go-mssqldb"
)

// NewSQLServer opens the branch ("sucursal") store. The branch runs a legacy
// SQL Server instance whose schema shares nothing with the primary store
// beyond the article key.
func NewSQLServer(dsn string) (*sql.DB, error) {
	conn, err := sql.Open("sqlserver", dsn)
	if err != nil {
		return nil, fmt.Errorf("platform/db: open sqlserver: %w", err)
	}

	conn.SetMaxOpenConns(4)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(30 * time.Minute)

	// The branch link is flaky; a failed ping here is not fatal because the
	// catalog degrades to zero branch stock when the store is unreachable.
	return conn, nil
}

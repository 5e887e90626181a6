package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB holds the database connection pool
var DB *sql.DB

// InitDB initializes the database connection from environment variables
func InitDB() error {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		// Build connection string from individual variables
		host := os.Getenv("DB_HOST")
		port := os.Getenv("DB_PORT")
		user := os.Getenv("DB_USER")
		password := os.Getenv("DB_PASSWORD")
		dbname := os.Getenv("DB_NAME")
		sslmode := os.Getenv("DB_SSLMODE")

		if host == "" || user == "" || dbname == "" {
			return fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
		}

		if port == "" {
			port = "5432"
		}
		if sslmode == "" {
			sslmode = "disable"
		}

		connStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			host, port, user, password, dbname, sslmode)
	}

	var err error
	DB, err = sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	DB.SetMaxOpenConns(10)
	DB.SetMaxIdleConns(5)
	DB.SetConnMaxLifetime(30 * time.Minute)

	ctx := context.Background()
	if err := DB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := ensureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	log.Printf("✓ Database connection established successfully")
	return nil
}

// ensureSchema creates the products table on first run.
func ensureSchema(ctx context.Context) error {
	_, err := DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			m_number TEXT UNIQUE NOT NULL,
			description TEXT DEFAULT '',
			size TEXT DEFAULT 'saville',
			color TEXT DEFAULT 'silver',
			orientation TEXT DEFAULT 'landscape',
			layout_mode TEXT DEFAULT 'A',
			icon_files TEXT DEFAULT '',
			text_line_1 TEXT DEFAULT '',
			text_line_2 TEXT DEFAULT '',
			text_line_3 TEXT DEFAULT '',
			font TEXT DEFAULT 'arial_heavy',
			material TEXT DEFAULT '',
			mounting_type TEXT DEFAULT 'self_adhesive',
			ean TEXT DEFAULT '',
			qa_status TEXT DEFAULT 'pending',
			icon_scale REAL DEFAULT 1.0,
			text_scale REAL DEFAULT 1.0,
			icon_offset_x REAL DEFAULT 0.0,
			icon_offset_y REAL DEFAULT 0.0
		)`)
	return err
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

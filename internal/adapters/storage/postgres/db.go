package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// defaults razonables para el server de desarrollo
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Schema crea las tablas si no existen. Es idempotente.
const Schema = `
CREATE TABLE IF NOT EXISTS pets (
	id            TEXT PRIMARY KEY,
	owner_user_id TEXT NOT NULL,
	name          TEXT NOT NULL,
	species       TEXT NOT NULL,
	breed         TEXT NOT NULL DEFAULT '',
	birth_date    DATE,
	is_primary    BOOLEAN NOT NULL DEFAULT FALSE,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS pets_owner_idx ON pets (owner_user_id, created_at);

CREATE TABLE IF NOT EXISTS reminders (
	id            TEXT PRIMARY KEY,
	owner_user_id TEXT NOT NULL,
	pet_id        TEXT REFERENCES pets (id),
	title         TEXT NOT NULL,
	status        TEXT NOT NULL,
	priority      TEXT NOT NULL,
	tags          TEXT NOT NULL DEFAULT '[]',
	scheduled_at  TIMESTAMPTZ,
	due_at        TIMESTAMPTZ,
	snooze_until  TIMESTAMPTZ,
	completed_at  TIMESTAMPTZ,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS reminders_owner_idx ON reminders (owner_user_id, created_at);
`

func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, Schema)
	return err
}

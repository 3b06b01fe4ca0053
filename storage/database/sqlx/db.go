package sqlxrepos

import (
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/hekima/shule/core"
)

var schema = `
CREATE TABLE IF NOT EXISTS users (
	id            SERIAL PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	full_name     TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	role          TEXT NOT NULL,
	password_hash BYTEA NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS classes (
	id         SERIAL PRIMARY KEY,
	name       TEXT NOT NULL,
	teacher_id INTEGER NOT NULL,
	schedule   TEXT NOT NULL,
	room       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS attendance (
	id         SERIAL PRIMARY KEY,
	class_id   INTEGER NOT NULL,
	student_id INTEGER NOT NULL,
	date       TIMESTAMPTZ NOT NULL,
	status     TEXT NOT NULL
);

-- one record per student, class and calendar day; the insert relies on this
-- to stay race-free under concurrent submissions
CREATE UNIQUE INDEX IF NOT EXISTS attendance_once_per_day
	ON attendance (student_id, class_id, (date::date));

CREATE TABLE IF NOT EXISTS notifications (
	id         SERIAL PRIMARY KEY,
	user_id    INTEGER NOT NULL,
	message    TEXT NOT NULL,
	read       BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

func Open(conf *core.Config) (*sqlx.DB, error) {
	return sqlx.Connect("postgres", conf.DatabaseURL)
}

// CreateTables bootstraps the schema; idempotent.
func CreateTables(db *sqlx.DB) error {
	_, err := db.Exec(schema)
	return err
}

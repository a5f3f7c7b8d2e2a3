package database

const schema = `
CREATE TABLE users (
	id INTEGER PRIMARY KEY,
	anilist_id INTEGER,
	anilist_token TEXT,
	language_code TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE INDEX idx_users_anilist_id ON users(anilist_id);

CREATE TABLE chat_groups (
	id INTEGER PRIMARY KEY,
	language_code TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`

// migrations contains incremental schema changes
// migrations[0] is empty because version 0 uses the base schema
var migrations = []string{
	"",
}

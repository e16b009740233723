package sqlstore

// SQL común a Postgres y SQLite. Las restricciones únicas se nombran
// table_column_key para poder mapear la violación al campo.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id         TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name  TEXT NOT NULL,
		phone      TEXT NOT NULL,
		email      TEXT NOT NULL,
		rut        TEXT NOT NULL,
		address    TEXT NOT NULL,
		CONSTRAINT clients_email_key UNIQUE (email),
		CONSTRAINT clients_rut_key UNIQUE (rut)
	)`,
	`CREATE TABLE IF NOT EXISTS pets (
		id      TEXT PRIMARY KEY,
		name    TEXT NOT NULL,
		sex     TEXT NOT NULL,
		age     INTEGER NOT NULL,
		species TEXT NOT NULL,
		breed   TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS veterinarians (
		id        TEXT PRIMARY KEY,
		full_name TEXT NOT NULL,
		specialty TEXT NOT NULL,
		email     TEXT NOT NULL,
		phone     TEXT NOT NULL,
		address   TEXT NOT NULL,
		CONSTRAINT veterinarians_full_name_key UNIQUE (full_name),
		CONSTRAINT veterinarians_email_key UNIQUE (email),
		CONSTRAINT veterinarians_phone_key UNIQUE (phone)
	)`,
	`CREATE TABLE IF NOT EXISTS breeds (
		id              TEXT PRIMARY KEY,
		animal          TEXT NOT NULL,
		name            TEXT NOT NULL,
		scientific_name TEXT NOT NULL DEFAULT '',
		lifespan        INTEGER NOT NULL DEFAULT 0,
		feeding         TEXT NOT NULL DEFAULT '',
		walk_time       TEXT NOT NULL DEFAULT '',
		fun_fact        TEXT NOT NULL,
		recommendation  TEXT NOT NULL,
		CONSTRAINT breeds_name_key UNIQUE (name)
	)`,
	`CREATE TABLE IF NOT EXISTS remedies (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		recommended_use TEXT NOT NULL,
		frequency       TEXT NOT NULL,
		animal          TEXT NOT NULL,
		CONSTRAINT remedies_name_key UNIQUE (name)
	)`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id               TEXT PRIMARY KEY,
		client_id        TEXT NOT NULL REFERENCES clients (id) ON DELETE CASCADE,
		pet_id           TEXT NOT NULL REFERENCES pets (id) ON DELETE CASCADE,
		veterinarian_id  TEXT NULL REFERENCES veterinarians (id) ON DELETE SET NULL,
		appointment_date TEXT NOT NULL,
		reason           TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS appointment_remedies (
		appointment_id TEXT NOT NULL REFERENCES appointments (id) ON DELETE CASCADE,
		remedy_id      TEXT NOT NULL REFERENCES remedies (id) ON DELETE CASCADE,
		PRIMARY KEY (appointment_id, remedy_id)
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		email         TEXT NOT NULL,
		phone         TEXT NOT NULL DEFAULT '',
		full_name     TEXT NOT NULL,
		role          TEXT NOT NULL,
		CONSTRAINT users_username_key UNIQUE (username)
	)`,
	`CREATE INDEX IF NOT EXISTS appointments_client_id_idx ON appointments (client_id)`,
	`CREATE INDEX IF NOT EXISTS appointments_pet_id_idx ON appointments (pet_id)`,
}

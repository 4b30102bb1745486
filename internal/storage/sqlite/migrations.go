package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    is_active INTEGER NOT NULL DEFAULT 1,
    created_at INTEGER NOT NULL
);

-- No foreign keys on user_groups, memberships or payments: entities
-- reference each other by key only, and existence checks happen at the
-- operation boundary in the service layer.
CREATE TABLE IF NOT EXISTS user_groups (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id TEXT NOT NULL,
    group_id TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS groups (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL,
    monthly_amount REAL NOT NULL,
    duration_months INTEGER NOT NULL,
    total_members INTEGER NOT NULL,
    current_members INTEGER NOT NULL,
    status TEXT NOT NULL,
    created_by TEXT NOT NULL,
    current_cycle INTEGER NOT NULL,
    payout_order TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS group_slots (
    group_id TEXT NOT NULL,
    slot_number INTEGER NOT NULL,
    PRIMARY KEY (group_id, slot_number),
    FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS memberships (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    group_id TEXT NOT NULL,
    slot_number INTEGER NOT NULL,
    payout_cycle INTEGER NOT NULL,
    status TEXT NOT NULL,
    joined_at INTEGER NOT NULL,
    total_paid REAL NOT NULL DEFAULT 0,
    has_received_payout INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS payments (
    id TEXT PRIMARY KEY,
    group_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    cycle_number INTEGER NOT NULL,
    amount REAL NOT NULL,
    status TEXT NOT NULL,
    paid_at INTEGER,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS id_counter (
    id INTEGER PRIMARY KEY CHECK (id = 0),
    value INTEGER NOT NULL
);

INSERT OR IGNORE INTO id_counter (id, value) VALUES (0, 0);

CREATE INDEX IF NOT EXISTS idx_user_groups_user_id ON user_groups(user_id);
CREATE INDEX IF NOT EXISTS idx_group_slots_group_id ON group_slots(group_id);
CREATE INDEX IF NOT EXISTS idx_memberships_group_id ON memberships(group_id);
CREATE INDEX IF NOT EXISTS idx_payments_user_group ON payments(user_id, group_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

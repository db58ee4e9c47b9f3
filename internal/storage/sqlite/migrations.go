package sqlite

import "database/sql"

// schema sets up the database. It runs on startup to ensure tables exist.
// Decimal columns are TEXT so values round-trip exactly.
const schema = `
CREATE TABLE IF NOT EXISTS estimates (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS line_items (
    estimate_id TEXT NOT NULL,
    id TEXT NOT NULL,
    position INTEGER NOT NULL,
    description TEXT NOT NULL,
    quantity TEXT NOT NULL,
    unit TEXT NOT NULL,
    unit_price TEXT NOT NULL,
    category TEXT NOT NULL,
    formula TEXT NOT NULL,
    total_price TEXT NOT NULL,
    vendor_name TEXT NOT NULL,
    PRIMARY KEY (estimate_id, id),
    FOREIGN KEY (estimate_id) REFERENCES estimates(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_line_items_position ON line_items(estimate_id, position);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

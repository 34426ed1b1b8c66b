package sqlite

import "database/sql"

// schema sets up the single table holding every collection.
// Documents are BSON blobs keyed by collection and canonical hex identifier;
// seq preserves insertion order.
const schema = `
CREATE TABLE IF NOT EXISTS documents (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    collection TEXT NOT NULL,
    id TEXT NOT NULL,
    body BLOB NOT NULL,
    UNIQUE (collection, id)
);

CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents(collection, seq);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

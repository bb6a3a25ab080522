package journal

// Schema creates the fetch journal table. ULID primary keys sort by
// creation time, so the id index doubles as a time index.
const Schema = `
CREATE TABLE IF NOT EXISTS fetches (
    id          TEXT PRIMARY KEY,
    symbol      TEXT NOT NULL,
    start_date  TIMESTAMP NOT NULL,
    end_date    TIMESTAMP NOT NULL,
    bars        INTEGER NOT NULL,
    source      TEXT NOT NULL,
    duration_ms INTEGER NOT NULL,
    fetched_at  TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_fetches_symbol ON fetches(symbol);
`

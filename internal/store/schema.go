package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS profiles (
    session_id           TEXT PRIMARY KEY,
    payload              BLOB NOT NULL,
    committed_at         TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS flags (
    session_id           TEXT NOT NULL,
    name                 TEXT NOT NULL,
    value                INTEGER NOT NULL DEFAULT 0,
    updated_at           TEXT NOT NULL,
    PRIMARY KEY (session_id, name)
);

CREATE INDEX IF NOT EXISTS idx_profiles_committed ON profiles(committed_at);
`

package storage

const schema = `
-- Decks own their cards; ids are assigned by the client.
CREATE TABLE IF NOT EXISTS decks (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at TEXT NOT NULL
);

-- Scheduling columns are stored verbatim from the client.
CREATE TABLE IF NOT EXISTS cards (
    id TEXT PRIMARY KEY,
    deck_id TEXT NOT NULL REFERENCES decks(id) ON DELETE CASCADE,
    front TEXT NOT NULL,
    back TEXT NOT NULL,
    ease REAL NOT NULL DEFAULT 2.5,
    interval INTEGER NOT NULL DEFAULT 1,
    reps INTEGER NOT NULL DEFAULT 0,
    lapses INTEGER NOT NULL DEFAULT 0,
    grade INTEGER,
    due_date TEXT,
    last_reviewed TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

-- One row per calendar day. all_due_completed: NULL unknown, 0 false, 1 true.
CREATE TABLE IF NOT EXISTS review_stats (
    day TEXT PRIMARY KEY,
    reviews INTEGER NOT NULL DEFAULT 0,
    correct INTEGER NOT NULL DEFAULT 0,
    lapses INTEGER NOT NULL DEFAULT 0,
    all_due_completed INTEGER
);

CREATE TABLE IF NOT EXISTS irregular_verbs (
    infinitive TEXT PRIMARY KEY,
    simple_past TEXT NOT NULL,
    past_participle TEXT NOT NULL,
    translation_ru TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS verbs_governance (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    infinitive TEXT NOT NULL,
    particle TEXT,
    preposition TEXT,
    full_expression TEXT NOT NULL,
    translation TEXT NOT NULL,
    type TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cards_deck_id ON cards(deck_id);
CREATE INDEX IF NOT EXISTS idx_review_stats_day ON review_stats(day);
CREATE INDEX IF NOT EXISTS idx_irregular_verbs_infinitive ON irregular_verbs(infinitive);
CREATE INDEX IF NOT EXISTS idx_verbs_governance_infinitive ON verbs_governance(infinitive);
CREATE INDEX IF NOT EXISTS idx_verbs_governance_full_expression ON verbs_governance(full_expression);
`

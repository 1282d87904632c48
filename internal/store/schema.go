// ABOUTME: SQL DDL for the memory store: base tables, FTS5 indexes, and sync triggers
// ABOUTME: Grounded on harperreed-memory's schema.go shape and itsddvn-goclaw's chunks_fts pattern
package store

// SchemaVersion is the current schema version. Init is a forward-only
// migration: running it against an equal-or-lower on-disk version is
// idempotent; against a higher on-disk version it fails with ErrSchemaTooNew.
const SchemaVersion = 1

// schema is applied in full on every Init call; every statement is
// idempotent (IF NOT EXISTS / CREATE TRIGGER IF NOT EXISTS).
const schema = `
CREATE TABLE IF NOT EXISTS schema_meta (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    external_id TEXT NOT NULL UNIQUE,
    started_at DATETIME NOT NULL,
    ended_at DATETIME,
    summary TEXT,
    project TEXT,
    cwd TEXT,
    branch TEXT,
    model TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_project ON sessions(project);

CREATE TABLE IF NOT EXISTS messages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_ref TEXT NOT NULL,
    ts DATETIME NOT NULL,
    role TEXT NOT NULL,
    content TEXT NOT NULL,
    project TEXT
);
CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_ref, ts, id);

CREATE TABLE IF NOT EXISTS decisions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at DATETIME NOT NULL,
    session_ref TEXT,
    category TEXT,
    project TEXT,
    decision TEXT NOT NULL,
    reasoning TEXT,
    alternatives TEXT,
    status TEXT NOT NULL DEFAULT 'active'
);
CREATE INDEX IF NOT EXISTS idx_decisions_project ON decisions(project);
CREATE INDEX IF NOT EXISTS idx_decisions_created ON decisions(created_at);

CREATE TABLE IF NOT EXISTS learnings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at DATETIME NOT NULL,
    session_ref TEXT,
    category TEXT,
    project TEXT,
    problem TEXT NOT NULL,
    solution TEXT,
    prevention TEXT,
    tags TEXT
);
CREATE INDEX IF NOT EXISTS idx_learnings_project ON learnings(project);
CREATE INDEX IF NOT EXISTS idx_learnings_created ON learnings(created_at);

CREATE TABLE IF NOT EXISTS breadcrumbs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at DATETIME NOT NULL,
    session_ref TEXT,
    content TEXT NOT NULL,
    category TEXT,
    project TEXT,
    importance INTEGER NOT NULL DEFAULT 5,
    expires_at DATETIME
);
CREATE INDEX IF NOT EXISTS idx_breadcrumbs_project ON breadcrumbs(project);
CREATE INDEX IF NOT EXISTS idx_breadcrumbs_created ON breadcrumbs(created_at);

CREATE TABLE IF NOT EXISTS loa (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at DATETIME NOT NULL,
    title TEXT NOT NULL,
    description TEXT,
    extract TEXT NOT NULL,
    range_start INTEGER,
    range_end INTEGER,
    parent INTEGER REFERENCES loa(id) ON DELETE SET NULL,
    session_ref TEXT,
    project TEXT,
    tags TEXT,
    message_count INTEGER
);
CREATE INDEX IF NOT EXISTS idx_loa_parent ON loa(parent);
CREATE INDEX IF NOT EXISTS idx_loa_range ON loa(range_start, range_end);
CREATE INDEX IF NOT EXISTS idx_loa_created ON loa(created_at);

CREATE TABLE IF NOT EXISTS telos (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    code TEXT NOT NULL UNIQUE,
    type TEXT NOT NULL,
    category TEXT,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    parent_code TEXT,
    source_file TEXT,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS documents (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    path TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    type TEXT NOT NULL,
    content TEXT NOT NULL,
    summary TEXT,
    size_bytes INTEGER NOT NULL DEFAULT 0,
    file_modified_at DATETIME,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS embeddings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    source_kind TEXT NOT NULL,
    source_id INTEGER NOT NULL,
    model TEXT NOT NULL,
    dimensions INTEGER NOT NULL,
    vector BLOB NOT NULL,
    created_at DATETIME NOT NULL,
    UNIQUE(source_kind, source_id)
);
CREATE INDEX IF NOT EXISTS idx_embeddings_kind ON embeddings(source_kind);

-- Lexical index: one FTS5 "external content" virtual table per searchable
-- kind, columns per spec §4.3, synchronized by triggers rather than
-- application code so the 1:1 invariant holds even for writers that bypass
-- the repository layer.

CREATE VIRTUAL TABLE IF NOT EXISTS messages_fts USING fts5(
    content, project,
    content='messages', content_rowid='id',
    tokenize='porter unicode61'
);
CREATE TRIGGER IF NOT EXISTS messages_ai AFTER INSERT ON messages BEGIN
    INSERT INTO messages_fts(rowid, content, project) VALUES (new.id, new.content, new.project);
END;
CREATE TRIGGER IF NOT EXISTS messages_ad AFTER DELETE ON messages BEGIN
    INSERT INTO messages_fts(messages_fts, rowid, content, project) VALUES ('delete', old.id, old.content, old.project);
END;
CREATE TRIGGER IF NOT EXISTS messages_au AFTER UPDATE ON messages BEGIN
    INSERT INTO messages_fts(messages_fts, rowid, content, project) VALUES ('delete', old.id, old.content, old.project);
    INSERT INTO messages_fts(rowid, content, project) VALUES (new.id, new.content, new.project);
END;

CREATE VIRTUAL TABLE IF NOT EXISTS decisions_fts USING fts5(
    decision, reasoning, project,
    content='decisions', content_rowid='id',
    tokenize='porter unicode61'
);
CREATE TRIGGER IF NOT EXISTS decisions_ai AFTER INSERT ON decisions BEGIN
    INSERT INTO decisions_fts(rowid, decision, reasoning, project) VALUES (new.id, new.decision, new.reasoning, new.project);
END;
CREATE TRIGGER IF NOT EXISTS decisions_ad AFTER DELETE ON decisions BEGIN
    INSERT INTO decisions_fts(decisions_fts, rowid, decision, reasoning, project) VALUES ('delete', old.id, old.decision, old.reasoning, old.project);
END;
CREATE TRIGGER IF NOT EXISTS decisions_au AFTER UPDATE ON decisions BEGIN
    INSERT INTO decisions_fts(decisions_fts, rowid, decision, reasoning, project) VALUES ('delete', old.id, old.decision, old.reasoning, old.project);
    INSERT INTO decisions_fts(rowid, decision, reasoning, project) VALUES (new.id, new.decision, new.reasoning, new.project);
END;

CREATE VIRTUAL TABLE IF NOT EXISTS learnings_fts USING fts5(
    problem, solution, tags, project,
    content='learnings', content_rowid='id',
    tokenize='porter unicode61'
);
CREATE TRIGGER IF NOT EXISTS learnings_ai AFTER INSERT ON learnings BEGIN
    INSERT INTO learnings_fts(rowid, problem, solution, tags, project) VALUES (new.id, new.problem, new.solution, new.tags, new.project);
END;
CREATE TRIGGER IF NOT EXISTS learnings_ad AFTER DELETE ON learnings BEGIN
    INSERT INTO learnings_fts(learnings_fts, rowid, problem, solution, tags, project) VALUES ('delete', old.id, old.problem, old.solution, old.tags, old.project);
END;
CREATE TRIGGER IF NOT EXISTS learnings_au AFTER UPDATE ON learnings BEGIN
    INSERT INTO learnings_fts(learnings_fts, rowid, problem, solution, tags, project) VALUES ('delete', old.id, old.problem, old.solution, old.tags, old.project);
    INSERT INTO learnings_fts(rowid, problem, solution, tags, project) VALUES (new.id, new.problem, new.solution, new.tags, new.project);
END;

CREATE VIRTUAL TABLE IF NOT EXISTS breadcrumbs_fts USING fts5(
    content, category, project,
    content='breadcrumbs', content_rowid='id',
    tokenize='porter unicode61'
);
CREATE TRIGGER IF NOT EXISTS breadcrumbs_ai AFTER INSERT ON breadcrumbs BEGIN
    INSERT INTO breadcrumbs_fts(rowid, content, category, project) VALUES (new.id, new.content, new.category, new.project);
END;
CREATE TRIGGER IF NOT EXISTS breadcrumbs_ad AFTER DELETE ON breadcrumbs BEGIN
    INSERT INTO breadcrumbs_fts(breadcrumbs_fts, rowid, content, category, project) VALUES ('delete', old.id, old.content, old.category, old.project);
END;
CREATE TRIGGER IF NOT EXISTS breadcrumbs_au AFTER UPDATE ON breadcrumbs BEGIN
    INSERT INTO breadcrumbs_fts(breadcrumbs_fts, rowid, content, category, project) VALUES ('delete', old.id, old.content, old.category, old.project);
    INSERT INTO breadcrumbs_fts(rowid, content, category, project) VALUES (new.id, new.content, new.category, new.project);
END;

CREATE VIRTUAL TABLE IF NOT EXISTS loa_fts USING fts5(
    title, description, extract, tags, project,
    content='loa', content_rowid='id',
    tokenize='porter unicode61'
);
CREATE TRIGGER IF NOT EXISTS loa_ai AFTER INSERT ON loa BEGIN
    INSERT INTO loa_fts(rowid, title, description, extract, tags, project) VALUES (new.id, new.title, new.description, new.extract, new.tags, new.project);
END;
CREATE TRIGGER IF NOT EXISTS loa_ad AFTER DELETE ON loa BEGIN
    INSERT INTO loa_fts(loa_fts, rowid, title, description, extract, tags, project) VALUES ('delete', old.id, old.title, old.description, old.extract, old.tags, old.project);
END;
CREATE TRIGGER IF NOT EXISTS loa_au AFTER UPDATE ON loa BEGIN
    INSERT INTO loa_fts(loa_fts, rowid, title, description, extract, tags, project) VALUES ('delete', old.id, old.title, old.description, old.extract, old.tags, old.project);
    INSERT INTO loa_fts(rowid, title, description, extract, tags, project) VALUES (new.id, new.title, new.description, new.extract, new.tags, new.project);
END;

CREATE VIRTUAL TABLE IF NOT EXISTS telos_fts USING fts5(
    code, type, title, content, category,
    content='telos', content_rowid='id',
    tokenize='porter unicode61'
);
CREATE TRIGGER IF NOT EXISTS telos_ai AFTER INSERT ON telos BEGIN
    INSERT INTO telos_fts(rowid, code, type, title, content, category) VALUES (new.id, new.code, new.type, new.title, new.content, new.category);
END;
CREATE TRIGGER IF NOT EXISTS telos_ad AFTER DELETE ON telos BEGIN
    INSERT INTO telos_fts(telos_fts, rowid, code, type, title, content, category) VALUES ('delete', old.id, old.code, old.type, old.title, old.content, old.category);
END;
CREATE TRIGGER IF NOT EXISTS telos_au AFTER UPDATE ON telos BEGIN
    INSERT INTO telos_fts(telos_fts, rowid, code, type, title, content, category) VALUES ('delete', old.id, old.code, old.type, old.title, old.content, old.category);
    INSERT INTO telos_fts(rowid, code, type, title, content, category) VALUES (new.id, new.code, new.type, new.title, new.content, new.category);
END;

CREATE VIRTUAL TABLE IF NOT EXISTS documents_fts USING fts5(
    title, type, content, summary, path,
    content='documents', content_rowid='id',
    tokenize='porter unicode61'
);
CREATE TRIGGER IF NOT EXISTS documents_ai AFTER INSERT ON documents BEGIN
    INSERT INTO documents_fts(rowid, title, type, content, summary, path) VALUES (new.id, new.title, new.type, new.content, new.summary, new.path);
END;
CREATE TRIGGER IF NOT EXISTS documents_ad AFTER DELETE ON documents BEGIN
    INSERT INTO documents_fts(documents_fts, rowid, title, type, content, summary, path) VALUES ('delete', old.id, old.title, old.type, old.content, old.summary, old.path);
END;
CREATE TRIGGER IF NOT EXISTS documents_au AFTER UPDATE ON documents BEGIN
    INSERT INTO documents_fts(documents_fts, rowid, title, type, content, summary, path) VALUES ('delete', old.id, old.title, old.type, old.content, old.summary, old.path);
    INSERT INTO documents_fts(rowid, title, type, content, summary, path) VALUES (new.id, new.title, new.type, new.content, new.summary, new.path);
END;
`

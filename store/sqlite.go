package store

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/enola-dev/enola-sub007/errors"
	"github.com/enola-dev/enola-sub007/thing"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

const schema = `CREATE TABLE IF NOT EXISTS things (
	iri        TEXT PRIMARY KEY,
	doc        BLOB NOT NULL,
	updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
)`

// SQLite stores Things as JSON documents in a single table.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path. ":memory:" gives a
// private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	dsn := "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.WrapFatal(err, "SQLite", "OpenSQLite", "open "+path)
	}
	if path == ":memory:" {
		// every pooled connection would otherwise see its own database
		db.SetMaxOpenConns(1)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.WrapFatal(err, "SQLite", "OpenSQLite", "create schema")
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Put(ctx context.Context, t thing.Thing) error {
	doc, err := encode("Put", t)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO things (iri, doc) VALUES (?, ?)
		 ON CONFLICT(iri) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		t.IRI(), doc)
	if err != nil {
		return backendFailure(err, "SQLite", "Put", "upsert "+t.IRI())
	}
	return nil
}

func (s *SQLite) Get(ctx context.Context, iri string) (thing.Thing, error) {
	if err := checkIRI("Get", iri); err != nil {
		return thing.Thing{}, err
	}
	var doc []byte
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM things WHERE iri = ?`, iri).Scan(&doc)
	if stderrors.Is(err, sql.ErrNoRows) {
		return thing.Thing{}, notFound("Get", iri)
	}
	if err != nil {
		return thing.Thing{}, backendFailure(err, "SQLite", "Get", "select "+iri)
	}
	return decode("Get", iri, doc)
}

func (s *SQLite) Delete(ctx context.Context, iri string) error {
	if err := checkIRI("Delete", iri); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM things WHERE iri = ?`, iri); err != nil {
		return backendFailure(err, "SQLite", "Delete", "delete "+iri)
	}
	return nil
}

// List compares prefixes with substr, which unlike LIKE is case-sensitive
// and has no wildcards to escape.
func (s *SQLite) List(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT iri FROM things WHERE substr(iri, 1, length(?1)) = ?1 ORDER BY iri`, prefix)
	if err != nil {
		return nil, backendFailure(err, "SQLite", "List", "select")
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var iri string
		if err := rows.Scan(&iri); err != nil {
			return nil, backendFailure(err, "SQLite", "List", "scan")
		}
		out = append(out, iri)
	}
	if err := rows.Err(); err != nil {
		return nil, backendFailure(err, "SQLite", "List", "iterate")
	}
	return out, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

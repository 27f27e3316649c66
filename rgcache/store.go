// Package rgcache persists compiled parse tables keyed by grammar
// fingerprint, so a grammar compiled once need not be run through
// automaton/table construction again on the next process that needs it.
package rgcache

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
	"github.com/kestrel-dev/redhorse/grammar"
	"github.com/kestrel-dev/redhorse/parse"
	"golang.org/x/crypto/bcrypt"
	"modernc.org/sqlite"
)

// ErrNotFound is returned by Get when no build record exists for a
// fingerprint.
var ErrNotFound = errors.New("no cached build for this fingerprint")

// Build is a stored compilation result: the table itself plus the bookkeeping
// a cache consumer (rgserver, the CLI) wants alongside it.
type Build struct {
	ID          uuid.UUID
	Fingerprint string
	Table       *parse.Table
	CreatedAt   time.Time
}

// Store is a sqlite-backed build-record cache keyed by fingerprint. All
// writes go through a mutex: modernc.org/sqlite's driver serializes access to
// one *sql.DB internally, and the mutex additionally keeps Put and
// CreateAPIKey from interleaving with one another. Reads do not take it.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (creating if necessary) a build-record cache at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, wrapDBError(err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	stmt := `CREATE TABLE IF NOT EXISTS builds (
		id          TEXT NOT NULL PRIMARY KEY,
		fingerprint TEXT NOT NULL UNIQUE,
		table_data  TEXT NOT NULL,
		created     INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS api_keys (
		id         TEXT NOT NULL PRIMARY KEY,
		name       TEXT NOT NULL,
		key_hash   TEXT NOT NULL,
		created    INTEGER NOT NULL
	);`
	_, err := s.db.Exec(stmt)
	return wrapDBError(err)
}

// CreateAPIKey generates a random API key, stores its bcrypt hash under name,
// and returns the plaintext key. The plaintext is never stored and cannot be
// recovered later -- only verified against via VerifyAPIKey.
func (s *Store) CreateAPIKey(ctx context.Context, name string) (id uuid.UUID, plaintext string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err = uuid.NewRandom()
	if err != nil {
		return uuid.UUID{}, "", fmt.Errorf("could not generate key id: %w", err)
	}

	rawKey, err := uuid.NewRandom()
	if err != nil {
		return uuid.UUID{}, "", fmt.Errorf("could not generate key material: %w", err)
	}
	plaintext = rawKey.String()

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return uuid.UUID{}, "", fmt.Errorf("hash key: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `INSERT INTO api_keys (id, name, key_hash, created) VALUES (?, ?, ?, ?)`,
		id.String(), name, string(hash), time.Now().Unix())
	if err != nil {
		return uuid.UUID{}, "", wrapDBError(err)
	}

	return id, plaintext, nil
}

// VerifyAPIKey returns whether plaintext matches some stored API key's hash.
func (s *Store) VerifyAPIKey(ctx context.Context, plaintext string) (bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key_hash FROM api_keys`)
	if err != nil {
		return false, wrapDBError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var hash string
		if err := rows.Scan(&hash); err != nil {
			return false, wrapDBError(err)
		}
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil {
			return true, nil
		}
	}
	return false, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the cached build for fingerprint, or ErrNotFound if none
// exists.
func (s *Store) Get(ctx context.Context, fingerprint string) (Build, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, table_data, created FROM builds WHERE fingerprint = ?`, fingerprint)

	var idStr, encoded string
	var created int64
	if err := row.Scan(&idStr, &encoded, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Build{}, ErrNotFound
		}
		return Build{}, wrapDBError(err)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return Build{}, fmt.Errorf("stored build id %q is not a valid UUID: %w", idStr, err)
	}

	tableData, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Build{}, fmt.Errorf("stored table data is not valid base64: %w", err)
	}

	var table parse.Table
	n, err := rezi.DecBinary(tableData, &table)
	if err != nil {
		return Build{}, fmt.Errorf("rezi decode of stored table: %w", err)
	}
	if n != len(tableData) {
		return Build{}, fmt.Errorf("rezi decode consumed %d/%d bytes of stored table", n, len(tableData))
	}

	return Build{
		ID:          id,
		Fingerprint: fingerprint,
		Table:       &table,
		CreatedAt:   time.Unix(created, 0),
	}, nil
}

// Put stores table under g's fingerprint, replacing any prior build for that
// fingerprint, and returns the resulting Build record.
func (s *Store) Put(ctx context.Context, g *grammar.Grammar, table *parse.Table) (Build, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := uuid.NewRandom()
	if err != nil {
		return Build{}, fmt.Errorf("could not generate build id: %w", err)
	}

	tableData := rezi.EncBinary(table)
	encoded := base64.StdEncoding.EncodeToString(tableData)
	now := time.Now()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO builds (id, fingerprint, table_data, created)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(fingerprint) DO UPDATE SET id = excluded.id, table_data = excluded.table_data, created = excluded.created
	`, id.String(), g.Fingerprint(), encoded, now.Unix())
	if err != nil {
		return Build{}, wrapDBError(err)
	}

	return Build{ID: id, Fingerprint: g.Fingerprint(), Table: table, CreatedAt: now}, nil
}

func wrapDBError(err error) error {
	if err == nil {
		return nil
	}
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		return fmt.Errorf("%s", sqlite.ErrorCodeString[sqliteErr.Code()])
	}
	return err
}

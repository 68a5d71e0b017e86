package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

// Document keys. Each maps to one JSON document in the records table.
const (
	keyCharges  = "charges"
	keyBills    = "bills"
	keyExpenses = "expenses"
	keySettings = "settings"
)

// Store holds all records in memory and mirrors every mutation to the
// SQLite-backed document table. After a successful open, the in-memory
// state is the source of truth; a failed write is not surfaced.
type Store struct {
	db *sql.DB

	charges  []ChargeSession
	bills    []MeterBill
	expenses []Expense
	settings Settings
}

// New opens (or creates) the SQLite database at dbPath, runs migrations,
// and loads all four documents. A missing or corrupt document falls back
// to its default value.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, settings: DefaultSettings()}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	s.loadDoc(keyCharges, &s.charges)
	s.loadDoc(keyBills, &s.bills)
	s.loadDoc(keyExpenses, &s.expenses)
	if settings := DefaultSettings(); s.loadDoc(keySettings, &settings) {
		s.settings = settings
	}

	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS records (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(ddl)
	return err
}

// loadDoc reads and decodes one document. It reports false and leaves v
// untouched on a missing key or a decode failure.
func (s *Store) loadDoc(key string, v any) bool {
	var value string
	err := s.db.QueryRow(`SELECT value FROM records WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(value), v); err != nil {
		return false
	}
	return true
}

// saveDoc serializes and writes one document. Write failures are
// swallowed: the in-memory state stays authoritative for the rest of the
// session.
func (s *Store) saveDoc(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.db.Exec(
		`INSERT INTO records (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(data),
	)
}

// newID returns a process-unique record identifier.
func newID() string {
	return strconv.FormatInt(time.Now().UnixNano(), 10)
}

// Snapshot returns a full backup of all four documents.
func (s *Store) Snapshot() Snapshot {
	settings := s.Settings()
	return Snapshot{
		Settings:    &settings,
		Charges:     s.Charges(),
		Bills:       s.Bills(),
		Expenses:    s.Expenses(),
		hasCharges:  true,
		hasBills:    true,
		hasExpenses: true,
	}
}

// Restore replaces the collections present in the snapshot and persists
// them. Absent collections are left untouched. All replacements are
// applied before Restore returns.
func (s *Store) Restore(sn Snapshot) {
	if sn.hasCharges {
		s.charges = sn.Charges
		s.saveDoc(keyCharges, s.charges)
	}
	if sn.hasBills {
		s.bills = sn.Bills
		s.saveDoc(keyBills, s.bills)
	}
	if sn.hasExpenses {
		s.expenses = sn.Expenses
		s.saveDoc(keyExpenses, s.expenses)
	}
	if sn.Settings != nil {
		s.settings = *sn.Settings
		s.saveDoc(keySettings, s.settings)
	}
}

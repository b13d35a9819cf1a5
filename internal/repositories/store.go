package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/tunevault/internal/shared"
)

// Store owns the SQLite connection that backs every repository.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// OpenStore opens the database at path with the given busy timeout and wraps it in a [Store].
func OpenStore(path string, busyTimeoutMS int) (*Store, error) {
	db, err := shared.NewDatabase(path, busyTimeoutMS)
	if err != nil {
		return nil, err
	}
	return NewStore(db), nil
}

// Initialize applies pending migrations and inserts the default account if it is absent.
//
// Safe to call on every start. An existing default account is never overwritten.
// Reports whether the default account row was created by this call.
func (s *Store) Initialize(username, password string) (bool, error) {
	if err := shared.RunMigrations(s.db); err != nil {
		return false, wrapError("initialize schema", err)
	}
	return NewUserRepository(s).EnsureDefault(username, password)
}

// Exec runs a mutating statement with positional arguments.
//
// Each statement commits on its own.
func (s *Store) Exec(statement string, args ...any) (sql.Result, error) {
	result, err := s.db.Exec(statement, args...)
	if err != nil {
		return nil, wrapError("execute statement", err)
	}
	return result, nil
}

// FetchOne returns the first row of query, or nil when no row matches.
func (s *Store) FetchOne(query string, args ...any) (Row, error) {
	rows, err := s.FetchAll(query, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// FetchAll returns every row of query in the order the engine produces them.
func (s *Store) FetchAll(query string, args ...any) ([]Row, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, wrapError("query", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, wrapError("read columns", err)
	}

	var result []Row
	for rows.Next() {
		values := make(Row, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, wrapError("scan row", err)
		}
		result = append(result, values)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapError("iterate rows", fmt.Errorf("row iteration error: %w", err))
	}

	return result, nil
}

// DB returns the underlying handle, for migrations and tests.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close releases the connection.
func (s *Store) Close() error {
	return s.db.Close()
}

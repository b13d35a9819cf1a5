package repositories

import (
	"fmt"

	"github.com/desertthunder/tunevault/internal/models"
)

// UserRepository provides lookups over the users table.
//
// There is no registration: rows come from [UserRepository.EnsureDefault] only.
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a new [UserRepository] backed by store
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// FindByUsername returns the user row for username, or nil when there is none.
func (r *UserRepository) FindByUsername(username string) (*models.User, error) {
	row, err := r.store.FetchOne("SELECT username, password FROM users WHERE username = ?", username)
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	if row == nil {
		return nil, nil
	}
	return scanUser(row)
}

// EnsureDefault inserts the account if no row with that username exists.
//
// An existing row keeps its password. Reports whether a row was inserted.
func (r *UserRepository) EnsureDefault(username, password string) (bool, error) {
	if err := models.NewUser(username, password).Validate(); err != nil {
		return false, fmt.Errorf("validation failed: %w", err)
	}

	result, err := r.store.Exec("INSERT OR IGNORE INTO users (username, password) VALUES (?, ?)", username, password)
	if err != nil {
		return false, fmt.Errorf("failed to seed user: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n > 0, nil
}

// List returns every user ordered by username.
func (r *UserRepository) List() ([]*models.User, error) {
	rows, err := r.store.FetchAll("SELECT username, password FROM users ORDER BY username ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}

	users := make([]*models.User, 0, len(rows))
	for _, row := range rows {
		user, err := scanUser(row)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func scanUser(row Row) (*models.User, error) {
	username, err := row.String(0)
	if err != nil {
		return nil, fmt.Errorf("failed to scan username: %w", err)
	}
	password, err := row.String(1)
	if err != nil {
		return nil, fmt.Errorf("failed to scan password: %w", err)
	}
	return models.NewUser(username, password), nil
}

// package repositories provides persistence layer implementations for all model types.
//
// Each repository builds on the [Store] primitives and implements models.Repository for a specific entity type.
package repositories

import (
	"fmt"
	"strconv"

	"github.com/desertthunder/tunevault/internal/shared"
)

// Row is a single result row, one value per selected column.
//
// A nil Row from [Store.FetchOne] means no row matched.
type Row []any

// Int64 returns column i as an int64.
func (r Row) Int64(i int) (int64, error) {
	if i < 0 || i >= len(r) {
		return 0, fmt.Errorf("column %d out of range (%d columns)", i, len(r))
	}

	switch v := r[i].(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case nil:
		return 0, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	case []byte:
		return strconv.ParseInt(string(v), 10, 64)
	default:
		return 0, fmt.Errorf("column %d: unexpected type %T", i, v)
	}
}

// String returns column i as a string.
func (r Row) String(i int) (string, error) {
	if i < 0 || i >= len(r) {
		return "", fmt.Errorf("column %d out of range (%d columns)", i, len(r))
	}

	switch v := r[i].(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	default:
		return "", fmt.Errorf("column %d: unexpected type %T", i, v)
	}
}

// wrapError annotates err with the failed action and tags connection-level failures with [shared.ErrStorageUnavailable].
func wrapError(action string, err error) error {
	if err == nil {
		return nil
	}
	if shared.IsUnavailable(err) {
		return fmt.Errorf("%w: failed to %s: %v", shared.ErrStorageUnavailable, action, err)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

package credential

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/locvowork/hrms_gateway/internal/database/builder"
)

// SQLStore keeps values in a two-column table:
//
//	CREATE TABLE kv_store (key TEXT PRIMARY KEY, value TEXT NOT NULL)
type SQLStore struct {
	db    *sql.DB
	table string
}

// NewSQLStore creates a store on table (default "kv_store").
func NewSQLStore(db *sql.DB, table string) *SQLStore {
	if table == "" {
		table = "kv_store"
	}
	return &SQLStore{db: db, table: table}
}

// EnsureSchema creates the table if it does not exist.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (key TEXT PRIMARY KEY, value TEXT NOT NULL)`, s.table)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create %s: %w", s.table, err)
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	query, args, err := builder.NewSQLBuilder().
		Select("value").
		From(s.table).
		Where("key = ?", key).
		BuildSafe()
	if err != nil {
		return "", false, err
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLStore) Put(ctx context.Context, key, value string) error {
	query, args, err := builder.NewSQLBuilder().
		Insert(s.table, "key", "value").
		Values(key, value).
		OnConflictUpdate([]string{"key"}, "value").
		BuildSafe()
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	query, args, err := builder.NewSQLBuilder().Delete(s.table).Where("key = ?", key).BuildSafe()
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

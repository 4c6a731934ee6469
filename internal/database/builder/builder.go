// Package builder assembles the small set of Postgres statements the
// key/value credential table needs. "?" markers in conditions are rewritten
// to $1..$n in argument order.
package builder

import (
	"fmt"
	"strings"
)

type kind int

const (
	kindSelect kind = iota + 1
	kindInsert
	kindUpdate
	kindDelete
)

// SQLBuilder helps construct SQL queries dynamically.
type SQLBuilder struct {
	kind       kind
	table      string
	columns    []string
	values     []interface{}
	updateCols []string
	setArgs    []interface{}
	where      []string
	whereArgs  []interface{}
	conflict   []string
	upsertCols []string
	limit      int
}

// NewSQLBuilder creates a new instance of SQLBuilder.
func NewSQLBuilder() *SQLBuilder {
	return &SQLBuilder{}
}

// Select specifies the columns to retrieve.
func (b *SQLBuilder) Select(cols ...string) *SQLBuilder {
	b.kind = kindSelect
	b.columns = cols
	return b
}

// From specifies the table to select from.
func (b *SQLBuilder) From(table string) *SQLBuilder {
	b.table = table
	return b
}

// Insert specifies the table and columns for insertion.
func (b *SQLBuilder) Insert(table string, cols ...string) *SQLBuilder {
	b.kind = kindInsert
	b.table = table
	b.columns = cols
	return b
}

// Values specifies the values for insertion.
func (b *SQLBuilder) Values(vals ...interface{}) *SQLBuilder {
	b.values = vals
	return b
}

// OnConflictUpdate turns an insert into an upsert: on a conflict over
// target, cols are overwritten with the proposed values.
func (b *SQLBuilder) OnConflictUpdate(target []string, cols ...string) *SQLBuilder {
	b.conflict = target
	b.upsertCols = cols
	return b
}

// Update specifies the table to update.
func (b *SQLBuilder) Update(table string) *SQLBuilder {
	b.kind = kindUpdate
	b.table = table
	return b
}

// Set adds a column assignment to an update.
func (b *SQLBuilder) Set(col string, val interface{}) *SQLBuilder {
	b.updateCols = append(b.updateCols, col)
	b.setArgs = append(b.setArgs, val)
	return b
}

// Delete specifies the table to delete from.
func (b *SQLBuilder) Delete(table string) *SQLBuilder {
	b.kind = kindDelete
	b.table = table
	return b
}

// Where adds a condition; conditions are joined with AND.
func (b *SQLBuilder) Where(condition string, args ...interface{}) *SQLBuilder {
	b.where = append(b.where, condition)
	b.whereArgs = append(b.whereArgs, args...)
	return b
}

// Limit adds a LIMIT clause.
func (b *SQLBuilder) Limit(limit int) *SQLBuilder {
	b.limit = limit
	return b
}

// BuildSafe is Build plus a check that every "?" received an argument.
func (b *SQLBuilder) BuildSafe() (string, []interface{}, error) {
	if b.kind == 0 || b.table == "" {
		return "", nil, fmt.Errorf("incomplete statement")
	}
	markers := strings.Count(strings.Join(b.where, " "), "?")
	if markers != len(b.whereArgs) {
		return "", nil, fmt.Errorf("placeholder count (%d) does not match argument count (%d)", markers, len(b.whereArgs))
	}
	if b.kind == kindInsert && len(b.values) != len(b.columns) {
		return "", nil, fmt.Errorf("value count (%d) does not match column count (%d)", len(b.values), len(b.columns))
	}
	sql, args := b.Build()
	return sql, args, nil
}

// Build constructs the final SQL string and arguments.
func (b *SQLBuilder) Build() (string, []interface{}) {
	var sb strings.Builder
	var args []interface{}
	next := 1

	switch b.kind {
	case kindSelect:
		fmt.Fprintf(&sb, "SELECT %s FROM %s", strings.Join(b.columns, ", "), b.table)
	case kindInsert:
		placeholders := make([]string, len(b.values))
		for i := range b.values {
			placeholders[i] = fmt.Sprintf("$%d", next)
			next++
		}
		fmt.Fprintf(&sb, "INSERT INTO %s (%s) VALUES (%s)",
			b.table, strings.Join(b.columns, ", "), strings.Join(placeholders, ", "))
		args = append(args, b.values...)
		if len(b.conflict) > 0 {
			sets := make([]string, len(b.upsertCols))
			for i, col := range b.upsertCols {
				sets[i] = fmt.Sprintf("%s = EXCLUDED.%s", col, col)
			}
			fmt.Fprintf(&sb, " ON CONFLICT (%s) DO UPDATE SET %s",
				strings.Join(b.conflict, ", "), strings.Join(sets, ", "))
		}
		return sb.String(), args
	case kindUpdate:
		sets := make([]string, len(b.updateCols))
		for i, col := range b.updateCols {
			sets[i] = fmt.Sprintf("%s = $%d", col, next)
			next++
		}
		fmt.Fprintf(&sb, "UPDATE %s SET %s", b.table, strings.Join(sets, ", "))
		args = append(args, b.setArgs...)
	case kindDelete:
		fmt.Fprintf(&sb, "DELETE FROM %s", b.table)
	}

	if len(b.where) > 0 {
		sb.WriteString(" WHERE ")
		for i, part := range strings.Split(strings.Join(b.where, " AND "), "?") {
			if i > 0 {
				fmt.Fprintf(&sb, "$%d", next)
				next++
			}
			sb.WriteString(part)
		}
		args = append(args, b.whereArgs...)
	}

	if b.limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", b.limit)
	}
	return sb.String(), args
}

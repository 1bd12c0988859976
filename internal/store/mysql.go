package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
)

// MySQL implements Store on top of a MySQL database. Statements are built
// from equality predicates only, mirroring the gateway contract: the
// repositories never see SQL and never get more than single-table CRUD.
type MySQL struct {
	db *sql.DB
}

// NewMySQL returns a MySQL-backed store bound to the given database handle.
func NewMySQL(db *sql.DB) *MySQL { return &MySQL{db: db} }

// Insert adds one row and returns the auto-increment id assigned by the
// store. Columns are sorted so the generated SQL is deterministic.
func (s *MySQL) Insert(ctx context.Context, table string, row Row) (int64, error) {
	cols := sortedKeys(row)
	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		placeholders[i] = "?"
		args[i] = row[c]
	}
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", table, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert %s: last insert id: %w", table, err)
	}
	return id, nil
}

// SelectWhere returns all rows matching the equality filter. Column values
// are normalized: integer columns come back as int64, text and DECIMAL
// columns as string, DATETIME as time.Time (parseTime=true on the DSN).
func (s *MySQL) SelectWhere(ctx context.Context, table string, filter Filter, opts *Options) ([]Row, error) {
	q := "SELECT * FROM " + table
	where, args := buildWhere(filter)
	q += where
	if opts != nil && opts.OrderBy != "" {
		q += " ORDER BY " + opts.OrderBy
	}
	if opts != nil && opts.Limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("select %s: columns: %w", table, err)
	}

	out := make([]Row, 0)
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("select %s: scan: %w", table, err)
		}
		r := make(Row, len(cols))
		for i, c := range cols {
			// The driver hands text and DECIMAL columns back as []byte.
			if b, ok := vals[i].([]byte); ok {
				r[c] = string(b)
			} else {
				r[c] = vals[i]
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Update applies the given fields to every row matching the filter.
func (s *MySQL) Update(ctx context.Context, table string, fields Row, filter Filter) error {
	cols := sortedKeys(fields)
	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+len(filter))
	for i, c := range cols {
		sets[i] = c + " = ?"
		args = append(args, fields[c])
	}
	where, whereArgs := buildWhere(filter)
	args = append(args, whereArgs...)
	q := fmt.Sprintf("UPDATE %s SET %s%s", table, strings.Join(sets, ", "), where)
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	return nil
}

// Delete removes every row matching the filter.
func (s *MySQL) Delete(ctx context.Context, table string, filter Filter) error {
	where, args := buildWhere(filter)
	q := "DELETE FROM " + table + where
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return nil
}

func buildWhere(filter Filter) (string, []any) {
	if len(filter) == 0 {
		return "", nil
	}
	cols := sortedKeys(Row(filter))
	preds := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		preds[i] = c + " = ?"
		args[i] = filter[c]
	}
	return " WHERE " + strings.Join(preds, " AND "), args
}

func sortedKeys(r Row) []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

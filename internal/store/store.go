// Package store defines the record-store gateway used for all persistence.
// The remote store is a plain tabular CRUD service: it offers per-table
// insert, equality-filtered select, update and delete, and nothing else.
// No transactions, no foreign keys, no locking: every multi-row
// consistency guarantee belongs to the service layer on top.
package store

import "context"

// Row is a single table row keyed by column name. Values are normalized to
// int64, float64, string, bool, time.Time or nil regardless of backing
// implementation.
type Row map[string]any

// Filter is a set of equality predicates, column name to required value.
// An empty (or nil) filter matches every row in the table.
type Filter map[string]any

// Options tunes a SelectWhere call. OrderBy is a column name, optionally
// suffixed with " DESC". Limit <= 0 means no limit.
type Options struct {
	OrderBy string
	Limit   int
}

// Store is the gateway contract consumed by the entity repositories.
// Insert returns the store-assigned integer id of the new row.
type Store interface {
	Insert(ctx context.Context, table string, row Row) (int64, error)
	SelectWhere(ctx context.Context, table string, filter Filter, opts *Options) ([]Row, error)
	Update(ctx context.Context, table string, fields Row, filter Filter) error
	Delete(ctx context.Context, table string, filter Filter) error
}

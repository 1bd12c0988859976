package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// Memory is an in-process Store used by the test suite and by demo setups
// that have no MySQL available. It honors the same contract as the remote
// store: auto-assigned integer ids in the "id" column, equality filters,
// ordering and limits. All methods are safe for concurrent use.
type Memory struct {
	mu     sync.RWMutex
	tables map[string][]Row
	nextID map[string]int64
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		tables: make(map[string][]Row),
		nextID: make(map[string]int64),
	}
}

func (s *Memory) Insert(ctx context.Context, table string, row Row) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID[table]++
	id := s.nextID[table]
	r := make(Row, len(row)+1)
	for k, v := range row {
		r[k] = normalize(v)
	}
	r["id"] = id
	s.tables[table] = append(s.tables[table], r)
	return id, nil
}

func (s *Memory) SelectWhere(ctx context.Context, table string, filter Filter, opts *Options) ([]Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Row, 0)
	for _, r := range s.tables[table] {
		if matches(r, filter) {
			out = append(out, copyRow(r))
		}
	}
	if opts != nil && opts.OrderBy != "" {
		col, desc := parseOrderBy(opts.OrderBy)
		sort.SliceStable(out, func(i, j int) bool {
			less := compare(out[i][col], out[j][col]) < 0
			if desc {
				return !less && compare(out[i][col], out[j][col]) != 0
			}
			return less
		})
	}
	if opts != nil && opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (s *Memory) Update(ctx context.Context, table string, fields Row, filter Filter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.tables[table] {
		if matches(r, filter) {
			for k, v := range fields {
				r[k] = normalize(v)
			}
		}
	}
	return nil
}

func (s *Memory) Delete(ctx context.Context, table string, filter Filter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.tables[table][:0]
	for _, r := range s.tables[table] {
		if !matches(r, filter) {
			kept = append(kept, r)
		}
	}
	s.tables[table] = kept
	return nil
}

func matches(r Row, filter Filter) bool {
	for k, want := range filter {
		if compare(r[k], normalize(want)) != 0 {
			return false
		}
	}
	return true
}

func copyRow(r Row) Row {
	c := make(Row, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

func parseOrderBy(s string) (col string, desc bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", false
	}
	col = fields[0]
	desc = len(fields) > 1 && strings.EqualFold(fields[1], "DESC")
	return col, desc
}

// normalize widens numeric values so that filters and stored rows compare
// consistently no matter which concrete type the caller used.
func normalize(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case uint:
		return int64(n)
	case uint64:
		return int64(n)
	case float32:
		return float64(n)
	default:
		return v
	}
}

// compare orders two normalized values. Mismatched or unknown types
// compare as unequal (1) so that filters simply fail to match.
func compare(a, b any) int {
	switch av := a.(type) {
	case int64:
		if bv, ok := b.(int64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case float64:
		if bv, ok := b.(float64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			switch {
			case av.Before(bv):
				return -1
			case av.After(bv):
				return 1
			}
			return 0
		}
	case nil:
		if b == nil {
			return 0
		}
	}
	return 1
}

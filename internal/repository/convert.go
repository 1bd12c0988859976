package repository

import (
	"strconv"
	"time"

	"github.com/eventdesk/eventdesk/internal/store"
)

// Gateway rows carry loosely typed values: the MySQL backing returns
// int64 for integer columns, string for text and DECIMAL, and time.Time
// for DATE/DATETIME; the in-memory backing stores whatever the
// repositories wrote. These helpers normalize both shapes.

func rowInt64(r store.Row, col string) int64 {
	switch v := r[col].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	}
	return 0
}

func rowInt(r store.Row, col string) int { return int(rowInt64(r, col)) }

func rowFloat(r store.Row, col string) float64 {
	switch v := r[col].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	}
	return 0
}

func rowString(r store.Row, col string) string {
	if s, ok := r[col].(string); ok {
		return s
	}
	return ""
}

func rowStringPtr(r store.Row, col string) *string {
	if s, ok := r[col].(string); ok && s != "" {
		return &s
	}
	return nil
}

func rowTime(r store.Row, col string) time.Time {
	switch v := r[col].(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t.UTC()
			}
		}
	}
	return time.Time{}
}

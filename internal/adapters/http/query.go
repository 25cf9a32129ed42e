package http

import (
	"fmt"
	"net/url"
	"strconv"
)

// queryReader parses optional query parameters, keeping the first error.
type queryReader struct {
	values url.Values
	err    error
}

func (q *queryReader) Int(key string, def int) int {
	raw := q.values.Get(key)
	if raw == "" || q.err != nil {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		q.err = fmt.Errorf("query %q: %w", key, err)
		return def
	}
	return v
}

func (q *queryReader) Float(key string, def float64) float64 {
	raw := q.values.Get(key)
	if raw == "" || q.err != nil {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		q.err = fmt.Errorf("query %q: %w", key, err)
		return def
	}
	return v
}

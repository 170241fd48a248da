package domain

import (
	"encoding/json"
	"math"
)

// DefinitionEntry is one definition record exactly as the dictionary service returned it.
// The accessors below only read it and return zero values for missing or mistyped keys.
type DefinitionEntry map[string]any

func (d DefinitionEntry) Word() string       { return d.String("word") }
func (d DefinitionEntry) Definition() string { return d.String("definition") }
func (d DefinitionEntry) Example() string    { return d.String("example") }
func (d DefinitionEntry) Permalink() string  { return d.String("permalink") }
func (d DefinitionEntry) Author() string     { return d.String("author") }
func (d DefinitionEntry) ThumbsUp() int64    { return d.Int("thumbs_up") }
func (d DefinitionEntry) ThumbsDown() int64  { return d.Int("thumbs_down") }
func (d DefinitionEntry) DefID() int64       { return d.Int("defid") }

// String returns the string stored under key.
func (d DefinitionEntry) String(key string) string {
	if s, ok := d[key].(string); ok {
		return s
	}
	return ""
}

// Int returns the integral number stored under key.
func (d DefinitionEntry) Int(key string) int64 {
	switch v := d[key].(type) {
	case float64:
		// MaxInt64 rounds up to 2^63 as a float64, which is already out of range.
		if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return 0
		}
		return int64(v)
	case int:
		return int64(v)
	case int64:
		return v
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

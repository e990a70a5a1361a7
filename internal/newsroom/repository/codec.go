package repository

import (
	"encoding/json"
	"strconv"
)

// Field values are stored as plain strings; lists are stored as JSON arrays.
// Parsing is lenient: a missing or malformed value falls back to the
// caller's default so partially written entities stay readable.

func parseIntOr(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func parseInt64Or(s string, def int64) int64 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return def
	}
	return v
}

func parseFloatOr(s string, def float64) float64 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

func formatInt(v int) string         { return strconv.Itoa(v) }
func formatInt64(v int64) string     { return strconv.FormatInt(v, 10) }
func formatFloat(v float64) string   { return strconv.FormatFloat(v, 'f', -1, 64) }
func formatBool(v bool) string       { return strconv.FormatBool(v) }

func marshalList(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func unmarshalStrings(s string) []string {
	if s == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

func unmarshalInts(s string) []int {
	if s == "" {
		return []int{}
	}
	var out []int
	if err := json.Unmarshal([]byte(s), &out); err != nil || out == nil {
		return []int{}
	}
	return out
}

// Package state owns the workspace held by the running process and its persisted form.
package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// isoDate matches the timestamps the workspace writes, with optional milliseconds and Z suffix.
var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d{3})?Z?$`)

const isoLayout = "2006-01-02T15:04:05"

// Marshal encodes a persisted value.
func Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode state value: %w", err)
	}
	return b, nil
}

// Unmarshal decodes data into v. When the plain decode fails, timestamps without a zone are
// read as UTC and the decode is retried, so values written by older clients still load.
func Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err == nil {
		return nil
	}
	generic, err := DecodeValue(data)
	if err != nil {
		return err
	}
	normalized, err := json.Marshal(generic)
	if err != nil {
		return fmt.Errorf("encode state value: %w", err)
	}
	if err := json.Unmarshal(normalized, v); err != nil {
		return fmt.Errorf("decode state value: %w", err)
	}
	return nil
}

// DecodeValue decodes data without a target type. Strings that look like ISO timestamps come
// back as time.Time; numbers come back as json.Number.
func DecodeValue(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode state value: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("decode state value: trailing data")
	}
	return Revive(v), nil
}

// Revive walks a decoded value and replaces timestamp strings with time.Time.
func Revive(v any) any {
	switch t := v.(type) {
	case string:
		if ts, ok := parseISO(t); ok {
			return ts
		}
		return t
	case map[string]any:
		for k, item := range t {
			t[k] = Revive(item)
		}
		return t
	case []any:
		for i, item := range t {
			t[i] = Revive(item)
		}
		return t
	default:
		return v
	}
}

func parseISO(s string) (time.Time, bool) {
	if !isoDate.MatchString(s) {
		return time.Time{}, false
	}
	ts, err := time.ParseInLocation(isoLayout, strings.TrimSuffix(s, "Z"), time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

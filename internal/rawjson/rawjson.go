// Package rawjson navigates decoded JSON values (map[string]any / []any) whose
// layout is not known ahead of time.
package rawjson

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Object is a decoded JSON object
type Object = map[string]any

// Decode parses body keeping numbers as json.Number
func Decode(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// Lookup walks a dot-separated path. Numeric segments index into arrays.
func Lookup(v any, path string) (any, bool) {
	cur := v
	for _, part := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			next, ok := node[part]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}

// Get is Lookup without the presence flag
func Get(v any, path string) any {
	out, _ := Lookup(v, path)
	return out
}

// AsObject reports whether v is a JSON object
func AsObject(v any) (Object, bool) {
	o, ok := v.(map[string]any)
	return o, ok
}

// AsArray reports whether v is a JSON array
func AsArray(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

// NonEmptyArray returns the array at path when it has at least one element
func NonEmptyArray(v any, path string) ([]any, bool) {
	a, ok := AsArray(Get(v, path))
	if !ok || len(a) == 0 {
		return nil, false
	}
	return a, true
}

// Objects keeps the elements of arr that are objects, in order
func Objects(arr []any) []Object {
	out := make([]Object, 0, len(arr))
	for _, item := range arr {
		if o, ok := AsObject(item); ok {
			out = append(out, o)
		}
	}
	return out
}

// String returns v when it is a string with non-blank content
func String(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// Number converts JSON numbers and numeric strings to float64
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

// Bool reports whether v is a JSON boolean
func Bool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// Keys returns the keys of o in sorted order
func Keys(o Object) []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

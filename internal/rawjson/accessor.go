package rawjson

import (
	"encoding/json"
	"strconv"
)

// Accessor extracts one candidate value from an object
type Accessor func(o Object) (any, bool)

// Path is the common accessor: a dotted path into o
func Path(p string) Accessor {
	return func(o Object) (any, bool) { return Lookup(o, p) }
}

// FirstString evaluates accessors in order and returns the first non-blank string
func FirstString(o Object, def string, chain ...Accessor) string {
	for _, a := range chain {
		v, ok := a(o)
		if !ok {
			continue
		}
		if s, ok := String(v); ok {
			return s
		}
	}
	return def
}

// FirstNumber returns the first numeric value. A present zero counts as a match.
func FirstNumber(o Object, def float64, chain ...Accessor) float64 {
	for _, a := range chain {
		v, ok := a(o)
		if !ok {
			continue
		}
		if f, ok := Number(v); ok {
			return f
		}
	}
	return def
}

// FirstNonZero returns the first numeric value different from zero
func FirstNonZero(o Object, def float64, chain ...Accessor) float64 {
	for _, a := range chain {
		v, ok := a(o)
		if !ok {
			continue
		}
		if f, ok := Number(v); ok && f != 0 {
			return f
		}
	}
	return def
}

// Text is Path that also accepts numbers, rendered without exponent.
// Upstream ids and flight numbers come either way.
func Text(p string) Accessor {
	return func(o Object) (any, bool) {
		v, ok := Lookup(o, p)
		if !ok {
			return nil, false
		}
		switch n := v.(type) {
		case json.Number:
			return n.String(), true
		case float64:
			return strconv.FormatFloat(n, 'f', -1, 64), true
		}
		return v, true
	}
}

// Concat joins the string forms of two paths; it matches only when the first is present
func Concat(first, second string) Accessor {
	a, b := Text(first), Text(second)
	return func(o Object) (any, bool) {
		head, ok := a(o)
		if !ok {
			return nil, false
		}
		hs, ok := String(head)
		if !ok {
			return nil, false
		}
		tail, _ := b(o)
		ts, _ := tail.(string)
		return hs + ts, true
	}
}

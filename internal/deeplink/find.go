// Package deeplink discovers booking URLs embedded in upstream offers and
// builds Skyscanner fallback URLs when none is present.
package deeplink

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/h4ckm1n-dev/skyscanner-cli/internal/rawjson"
)

// MaxDepth bounds the recursive walk. Levels 0 to MaxDepth-1 are inspected.
const MaxDepth = 3

// Props are the property names that may carry a booking URL
var Props = []string{"deeplink", "deepLink", "bookingLink", "bookingUrl", "url", "referralUrl"}

var fixedPaths = []string{
	"pricingDetails.actionDetails.referralUrl",
	"pricingDetails.actionDetails.deepLink",
	"pricingDetails.bookingDetails.referralUrl",
	"booking.referralUrl",
	"pricing.referralUrl",
	"pricing.deeplink",
	"context.booking.deeplink",
	"actionDetails.deeplink",
	"bookingOptions.0.actionDetails.deeplink",
}

// Match is a discovered URL and where it was found, e.g. obj.pricingOptions[0].url
type Match struct {
	URL    string
	Source string
}

// IsValid reports whether s is an absolute http(s) URL with a host
func IsValid(s string) bool {
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return false
	}
	u, err := url.Parse(s)
	return err == nil && u.Host != ""
}

// Find searches a raw offer for an embedded booking URL
func Find(offer any) (Match, bool) {
	return find(offer, "obj", 0)
}

func find(v any, path string, depth int) (Match, bool) {
	if depth > MaxDepth {
		return Match{}, false
	}

	switch node := v.(type) {
	case map[string]any:
		if m, ok := findKnown(node, path); ok {
			return m, true
		}
		if depth < MaxDepth-1 {
			for _, k := range rawjson.Keys(node) {
				if m, ok := descend(node[k], path+"."+k, depth); ok {
					return m, true
				}
			}
		}
	case []any:
		if depth < MaxDepth-1 {
			for i, item := range node {
				if m, ok := descend(item, fmt.Sprintf("%s[%d]", path, i), depth); ok {
					return m, true
				}
			}
		}
	}
	return Match{}, false
}

func descend(child any, path string, depth int) (Match, bool) {
	switch child.(type) {
	case map[string]any, []any:
		return find(child, path, depth+1)
	}
	return Match{}, false
}

// findKnown checks the well-known locations of one object, without recursion
func findKnown(obj rawjson.Object, path string) (Match, bool) {
	if m, ok := checkProps(obj, path); ok {
		return m, true
	}

	if options, ok := rawjson.AsArray(obj["pricingOptions"]); ok {
		for i, opt := range options {
			option, ok := rawjson.AsObject(opt)
			if !ok {
				continue
			}
			optPath := fmt.Sprintf("%s.pricingOptions[%d]", path, i)
			if m, ok := checkProps(option, optPath); ok {
				return m, true
			}
			items, _ := rawjson.AsArray(option["items"])
			for j, it := range items {
				item, ok := rawjson.AsObject(it)
				if !ok {
					continue
				}
				if m, ok := checkProps(item, fmt.Sprintf("%s.items[%d]", optPath, j)); ok {
					return m, true
				}
			}
		}
	}

	if price, ok := rawjson.AsObject(obj["price"]); ok {
		if m, ok := checkProps(price, path+".price"); ok {
			return m, true
		}
		options, _ := rawjson.AsArray(price["options"])
		for i, opt := range options {
			option, ok := rawjson.AsObject(opt)
			if !ok {
				continue
			}
			if m, ok := checkProps(option, fmt.Sprintf("%s.price.options[%d]", path, i)); ok {
				return m, true
			}
		}
	}

	if links, ok := rawjson.AsObject(obj["links"]); ok {
		if m, ok := checkProps(links, path+".links"); ok {
			return m, true
		}
	}

	for _, p := range fixedPaths {
		if s, ok := rawjson.Get(obj, p).(string); ok && IsValid(s) {
			return Match{URL: s, Source: path + "." + p}, true
		}
	}
	return Match{}, false
}

func checkProps(obj rawjson.Object, path string) (Match, bool) {
	for _, prop := range Props {
		if s, ok := obj[prop].(string); ok && IsValid(s) {
			return Match{URL: s, Source: path + "." + prop}, true
		}
	}
	return Match{}, false
}

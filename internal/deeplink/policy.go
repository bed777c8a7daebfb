package deeplink

import (
	"strings"

	"github.com/h4ckm1n-dev/skyscanner-cli/internal/config"
)

const (
	DefaultTLD = "fr"
	ThaiTLD    = "co.th"
)

// Rule maps a route onto a Skyscanner country domain
type Rule struct {
	Name string
	From []string
	To   []string
	TLD  string
}

func (r Rule) matches(origin, destination string) bool {
	return contains(r.From, origin) && contains(r.To, destination)
}

// Policy is an ordered rule table; the first matching rule wins
type Policy []Rule

// DefaultPolicy sends Bangkok to Paris itineraries to the Thai site
func DefaultPolicy() Policy {
	return Policy{
		{
			Name: "bangkok-paris",
			From: []string{"BKK", "DMK", "BKKT"},
			To:   []string{"CDG", "ORY", "BVA", "PARI"},
			TLD:  ThaiTLD,
		},
	}
}

// PolicyFrom puts the configured routes ahead of DefaultPolicy.
// Routes without codes or domain are skipped.
func PolicyFrom(routes []config.RouteConfig) Policy {
	p := make(Policy, 0, len(routes)+1)
	for _, r := range routes {
		tld := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(r.TLD)), ".")
		from, to := upper(r.From), upper(r.To)
		if tld == "" || len(from) == 0 || len(to) == 0 {
			continue
		}
		p = append(p, Rule{Name: r.Name, From: from, To: to, TLD: tld})
	}
	return append(p, DefaultPolicy()...)
}

func upper(codes []string) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// TLD returns the domain for the route, or def when no rule applies
func (p Policy) TLD(origin, destination, def string) string {
	for _, r := range p {
		if r.matches(origin, destination) {
			return r.TLD
		}
	}
	return def
}

func contains(codes []string, code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return false
	}
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

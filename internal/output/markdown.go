package output

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/h4ckm1n-dev/skyscanner-cli/internal/core"
)

// Report renders a flight search as a Markdown document
func Report(q core.FlightQuery, res *core.SearchResult, locale string) []byte {
	num := numberPrinter(locale)
	var b bytes.Buffer
	p := q.Params

	fmt.Fprintf(&b, "# Flights %s → %s\n\n", p.OriginID, p.DestinationID)
	fmt.Fprintf(&b, "- Departure: %s\n", p.DepartureDate)
	if p.RoundTrip() {
		fmt.Fprintf(&b, "- Return: %s\n", p.ReturnDate)
	}
	fmt.Fprintf(&b, "- Passengers: %d (%s)\n", p.Adults, p.Cabin)
	if q.Filter.MaxPrice < core.NoPriceCap {
		fmt.Fprintf(&b, "- Max price: %s\n", formatPrice(num, core.Price{Amount: q.Filter.MaxPrice}))
	}
	if q.Filter.MaxStops < core.Unlimited && q.Filter.MaxStops >= 0 {
		fmt.Fprintf(&b, "- Max stops: %d\n", q.Filter.MaxStops)
	}
	if len(q.Filter.Airlines) > 0 {
		fmt.Fprintf(&b, "- Airlines: %s\n", strings.Join(q.Filter.Airlines, ", "))
	}
	if q.Sort != "" {
		fmt.Fprintf(&b, "- Sort: %s\n", q.Sort)
	}
	fmt.Fprintf(&b, "- Mode: %s\n", res.Mode)
	if len(res.Providers) > 0 {
		fmt.Fprintf(&b, "- Providers: %s\n", strings.Join(res.Providers, ", "))
	}
	fmt.Fprintf(&b, "- Search id: `%s`\n", res.SearchID)
	fmt.Fprintf(&b, "- Generated: %s\n", res.FetchedAt.UTC().Format(time.RFC3339))

	fmt.Fprintf(&b, "\n## Itineraries (%d)\n\n", len(res.Flights))
	if len(res.Flights) == 0 {
		b.WriteString("No flight found.\n")
	} else {
		b.WriteString("| # | Price | Airlines | Stops | Duration | Departure | Booking |\n")
		b.WriteString("|---|---|---|---|---|---|---|\n")
		for i, f := range res.Flights {
			fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s | %s |\n",
				i+1,
				cell(formatPrice(num, f.Price)),
				cell(strings.Join(f.Carriers(), ", ")),
				cell(stopsSummary(f)),
				Duration(f.TotalDuration()),
				cell(departure(f)),
				bookingCell(f.DeepLink),
			)
		}
	}

	if len(res.Errors) > 0 {
		b.WriteString("\n## Provider errors\n\n")
		for _, e := range res.Errors {
			fmt.Fprintf(&b, "- **%s** (%s): %s\n", e.Provider, e.Code, e.Reason)
		}
	}
	return b.Bytes()
}

func stopsSummary(f core.Flight) string {
	parts := make([]string, 0, len(f.Legs))
	for _, l := range f.Legs {
		parts = append(parts, stopsLabel(l.Stops))
	}
	return strings.Join(parts, " / ")
}

func departure(f core.Flight) string {
	if ts := f.Departure(); !ts.IsZero() {
		return ts.Format("2006-01-02 15:04")
	}
	if len(f.Legs) > 0 {
		if s, ok := f.Legs[0].First(); ok {
			return s.Departure.Time
		}
	}
	return ""
}

func bookingCell(link string) string {
	if link == "" {
		return "-"
	}
	return "[book](" + strings.ReplaceAll(link, ")", "%29") + ")"
}

// cell escapes table separators
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

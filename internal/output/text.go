package output

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/h4ckm1n-dev/skyscanner-cli/internal/core"
)

// ChartWidth is the width of the longest trend bar
const ChartWidth = 40

const rule = "─────────────────────────────────────"

// Text renders results for a terminal, numbers formatted for a locale
type Text struct {
	w   io.Writer
	num *message.Printer
}

// NewText writes to w, or to Writer when w is nil
func NewText(w io.Writer, locale string) *Text {
	if w == nil {
		w = Writer
	}
	return &Text{w: w, num: numberPrinter(locale)}
}

func numberPrinter(locale string) *message.Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.French
	}
	return message.NewPrinter(tag)
}

func formatPrice(p *message.Printer, price core.Price) string {
	return strings.TrimSpace(p.Sprintf("%v %s", number.Decimal(price.Amount, number.Scale(2)), price.Currency))
}

// Price formats an amount with two decimals in the locale, e.g. "1 234,50 EUR"
func (t *Text) Price(p core.Price) string { return formatPrice(t.num, p) }

// Duration renders minutes as 7h05
func Duration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%dh%02d", minutes/60, minutes%60)
}

func stopsLabel(stops int) string {
	switch stops {
	case 0:
		return "direct"
	case 1:
		return "1 stop"
	default:
		return fmt.Sprintf("%d stops", stops)
	}
}

// clock renders an endpoint time as 15/03 10:25, falling back to the raw value
func clock(e core.Endpoint) string {
	ts := e.Timestamp()
	if ts.IsZero() {
		return e.Time
	}
	return ts.Format("02/01 15:04")
}

func (t *Text) printf(format string, args ...any) {
	fmt.Fprintf(t.w, format, args...)
}

func (t *Text) Places(places []core.Place) {
	if len(places) == 0 {
		t.printf("No place found.\n")
		return
	}
	tw := tabwriter.NewWriter(t.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tENTITY\tNAME\tCITY\tCOUNTRY")
	for _, p := range places {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.Code(), p.EntityID, p.Name, p.City, p.CountryName)
	}
	_ = tw.Flush()
}

// Flights renders one page of itineraries. index is the 1-based rank of the first flight.
func (t *Text) Flights(flights []core.Flight, index, page, pages, total int) {
	if len(flights) == 0 {
		t.printf("No flight found.\n")
		return
	}

	for i, f := range flights {
		n := index + i
		t.printf("\n%d. %s", n, t.Price(f.Price))
		if n == 1 && total > 1 {
			t.printf("  [best price]")
		}
		t.printf("\n")
		if len(f.Legs) > 1 {
			t.printf("   Total duration: %s\n", Duration(f.TotalDuration()))
		}
		for li, l := range f.Legs {
			t.leg(li, l)
		}
		if f.DeepLink != "" {
			t.printf("\n   Book: %s\n", f.DeepLink)
		}
		if i < len(flights)-1 {
			t.printf("\n%s\n", strings.Repeat("═", 58))
		}
	}

	cheapest := flights[0].Price
	if index > 1 {
		t.printf("\n\n%d itineraries found.\n", total)
	} else {
		t.printf("\n\n%d itineraries found. Prices from %s\n", total, t.Price(cheapest))
	}
	if pages > 1 {
		t.printf("Page %d/%d\n", page, pages)
	}
}

func (t *Text) leg(i int, l core.Leg) {
	label := "OUTBOUND"
	if i > 0 {
		label = "RETURN"
	}
	t.printf("\n   %s  %s (%s)", label, Duration(l.Duration), stopsLabel(l.Stops))
	if first, ok := l.First(); ok {
		if ts := first.Departure.Timestamp(); !ts.IsZero() {
			t.printf("  %s", ts.Format("Mon 02/01"))
		}
	}
	t.printf("\n   %s\n", rule)

	for si, s := range l.Segments {
		t.printf("   %s %s\n", s.Carrier, s.FlightNumber)
		bar := strings.Repeat("─", clamp(s.Duration/30, 5, 20))
		t.printf("   %s %s %s> %s %s (%s)\n",
			clock(s.Departure), s.Departure.Code, bar, clock(s.Arrival), s.Arrival.Code, Duration(s.Duration))
		if si < len(l.Segments)-1 {
			next := l.Segments[si+1]
			t.printf("      layover at %s (%s)", s.Arrival.Airport, s.Arrival.Code)
			arr, dep := s.Arrival.Timestamp(), next.Departure.Timestamp()
			if !arr.IsZero() && !dep.IsZero() {
				t.printf(" %s", Duration(int(dep.Sub(arr)/time.Minute)))
			}
			t.printf("\n")
		}
	}
}

func (t *Text) Deeplinks(sets []core.DeeplinkSet) {
	if len(sets) == 0 {
		t.printf("No booking link generated.\n")
		return
	}
	for i, d := range sets {
		t.printf("\n%d. %s\n", i+1, d.ID)
		t.printf("   standard:     %s\n", d.StandardLink)
		t.printf("   config:       %s\n", d.ConfigLink)
		t.printf("   thai config:  %s\n", d.ThaiConfigLink)
		if d.OriginalLink != "" {
			t.printf("   original:     %s\n", d.OriginalLink)
		}
	}
}

// Trends draws one bar per point scaled between the cheapest and the dearest
func (t *Text) Trends(points []core.TrendPoint, currency string) {
	if len(points) == 0 {
		t.printf("No trend data.\n")
		return
	}

	lo, hi := points[0].Price, points[0].Price
	for _, p := range points[1:] {
		lo = math.Min(lo, p.Price)
		hi = math.Max(hi, p.Price)
	}
	span := hi - lo

	price := func(v float64) string { return t.Price(core.Price{Amount: v, Currency: currency}) }
	t.printf("\n           max %s\n", price(hi))
	for _, p := range points {
		width := ChartWidth
		if span > 0 {
			width = int(math.Round((p.Price - lo) / span * ChartWidth))
		}
		label := p.Date
		if d, err := time.Parse("2006-01-02", p.Date); err == nil {
			label = d.Format("Mon 02/01")
		}
		mark := ""
		if p.Price == lo {
			mark = "  <- cheapest"
		}
		t.printf("%s │ %-*s %s%s\n", label, ChartWidth, strings.Repeat("█", width), price(p.Price), mark)
	}
	t.printf("           min %s\n", price(lo))

	if best, ok := core.CheapestTrend(points); ok {
		t.printf("\nCheapest date: %s at %s\n", best.Date, price(best.Price))
	}
}

func (t *Text) Airlines(airlines []core.Airline) {
	tw := tabwriter.NewWriter(t.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME\tCOUNTRY")
	for _, a := range airlines {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", a.Code, a.Name, a.Country)
	}
	_ = tw.Flush()
}

func (t *Text) Providers(infos []core.ProviderInfo) {
	tw := tabwriter.NewWriter(t.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTIER\tSTATUS\tREASON")
	for _, p := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Name, p.Tier, p.Status, p.Reason)
	}
	_ = tw.Flush()
}

func (t *Text) Doctor(r core.DoctorReport) {
	state := "healthy"
	if !r.Healthy {
		state = "unhealthy"
	}
	t.printf("%s: %s\n\n", state, r.Summary)
	t.Providers(r.Providers)
}

// Errors lists provider failures after the results
func (t *Text) Errors(errs []core.ProviderError) {
	for _, e := range errs {
		t.printf("warning: %s (%s): %s", e.Provider, e.Code, e.Reason)
		if e.Fallback != "" {
			t.printf(" [%s]", e.Fallback)
		}
		t.printf("\n")
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Session prints the id to pass to flights details
func (t *Text) Session(flights []core.Flight) {
	for _, f := range flights {
		if f.SessionID != "" {
			t.printf("Session: %s\n", f.SessionID)
			return
		}
	}
}

func (t *Text) Files(title string, paths []string) {
	t.Section(title)
	if len(paths) == 0 {
		t.printf("none\n")
		return
	}
	for _, p := range paths {
		t.printf("%s\n", p)
	}
}

// Section prints a heading between result blocks
func (t *Text) Section(title string) {
	t.printf("\n%s\n%s\n", title, strings.Repeat("─", len([]rune(title))))
}

package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/h4ckm1n-dev/skyscanner-cli/internal/config"
	"github.com/h4ckm1n-dev/skyscanner-cli/internal/core"
	perr "github.com/h4ckm1n-dev/skyscanner-cli/internal/errors"
)

func segment(carrier, number, from, dep, to, arr string, minutes int) core.Segment {
	return core.Segment{
		Carrier:      carrier,
		FlightNumber: number,
		Departure:    core.Endpoint{Airport: from + " airport", Code: from, Time: dep},
		Arrival:      core.Endpoint{Airport: to + " airport", Code: to, Time: arr},
		Duration:     minutes,
	}
}

func sampleFlights() []core.Flight {
	return []core.Flight{
		{
			ID:    "f1",
			Price: core.Price{Amount: 1234.5, Currency: "EUR"},
			Legs: []core.Leg{{
				Duration: 425,
				Stops:    1,
				Segments: []core.Segment{
					segment("Air France", "AF1", "CDG", "2025-03-15T10:25:00", "FRA", "2025-03-15T11:40:00", 75),
					segment("Air France", "AF2", "FRA", "2025-03-15T13:10:00", "JFK", "2025-03-15T17:30:00", 260),
				},
			}},
			DeepLink: "https://www.skyscanner.fr/transport/vols/cdg/jfk/250315/",
		},
		{
			ID:    "f2",
			Price: core.Price{Amount: 1500, Currency: "EUR"},
			Legs: []core.Leg{{
				Duration: 500,
				Segments: []core.Segment{segment("Delta | Air", "DL9", "CDG", "2025-03-15T08:00:00", "JFK", "2025-03-15T16:20:00", 500)},
			}},
		},
	}
}

func TestDuration(t *testing.T) {
	assert.Equal(t, "7h05", Duration(425))
	assert.Equal(t, "0h00", Duration(-3))
	assert.Equal(t, "12h30", Duration(750))
}

func TestPrice_Locale(t *testing.T) {
	assert.Equal(t, "1,234.50 EUR", NewText(&bytes.Buffer{}, "en-US").Price(core.Price{Amount: 1234.5, Currency: "EUR"}))

	fr := NewText(&bytes.Buffer{}, "fr-FR").Price(core.Price{Amount: 1234.5, Currency: "EUR"})
	assert.True(t, strings.HasSuffix(fr, ",50 EUR"), fr)

	assert.Equal(t, "99.00", NewText(&bytes.Buffer{}, "en").Price(core.Price{Amount: 99}))
}

func TestFlights_Text(t *testing.T) {
	var buf bytes.Buffer
	NewText(&buf, "en-US").Flights(sampleFlights(), 1, 1, 2, 12)
	out := buf.String()

	assert.Contains(t, out, "1. 1,234.50 EUR  [best price]")
	assert.Contains(t, out, "OUTBOUND  7h05 (1 stop)  Sat 15/03")
	assert.Contains(t, out, "15/03 10:25 CDG")
	assert.Contains(t, out, "layover at FRA airport (FRA) 1h30")
	assert.Contains(t, out, "Book: https://www.skyscanner.fr/transport/vols/cdg/jfk/250315/")
	assert.Contains(t, out, "2. 1,500.00 EUR")
	assert.Contains(t, out, "12 itineraries found. Prices from 1,234.50 EUR")
	assert.Contains(t, out, "Page 1/2")
}

func TestFlights_LaterPage(t *testing.T) {
	var buf bytes.Buffer
	NewText(&buf, "en-US").Flights(sampleFlights(), 11, 2, 2, 12)
	out := buf.String()

	assert.Contains(t, out, "11. 1,234.50 EUR\n")
	assert.NotContains(t, out, "best price")
	assert.Contains(t, out, "Page 2/2")
}

func TestFlights_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewText(&buf, "en-US").Flights(nil, 1, 1, 0, 0)
	assert.Equal(t, "No flight found.\n", buf.String())
}

func TestTrends_Chart(t *testing.T) {
	points := []core.TrendPoint{
		{Date: "2025-03-03", Price: 200},
		{Date: "2025-03-10", Price: 300},
		{Date: "2025-03-17", Price: 250},
	}
	var buf bytes.Buffer
	NewText(&buf, "en-US").Trends(points, "EUR")
	out := buf.String()

	lines := strings.Split(out, "\n")
	var bars []string
	for _, l := range lines {
		if strings.Contains(l, "│") {
			bars = append(bars, l)
		}
	}
	require.Len(t, bars, 3)
	assert.Equal(t, 0, strings.Count(bars[0], "█"))
	assert.Equal(t, ChartWidth, strings.Count(bars[1], "█"))
	assert.Equal(t, ChartWidth/2, strings.Count(bars[2], "█"))
	assert.Contains(t, bars[0], "<- cheapest")
	assert.Contains(t, out, "Cheapest date: 2025-03-03 at 200.00 EUR")
}

func TestTrends_FlatSeries(t *testing.T) {
	var buf bytes.Buffer
	NewText(&buf, "en-US").Trends([]core.TrendPoint{{Date: "2025-03-03", Price: 100}, {Date: "2025-03-10", Price: 100}}, "EUR")
	assert.Equal(t, 2*ChartWidth, strings.Count(buf.String(), "█"))
}

func TestPlacesAndProviders(t *testing.T) {
	var buf bytes.Buffer
	text := NewText(&buf, "en-US")
	text.Places([]core.Place{{SkyID: "CDG", EntityID: "95565041", Name: "Paris Charles de Gaulle", City: "Paris", CountryName: "France"}})
	text.Providers([]core.ProviderInfo{{Name: "skyscrapper", Tier: core.TierEasySignup, Status: "no_credentials", Reason: "set RAPIDAPI_KEY"}})
	text.Errors([]core.ProviderError{{Provider: "skyscrapper", Code: "upstream", Reason: "boom", Fallback: "trying next provider"}})
	out := buf.String()

	assert.Regexp(t, `CDG\s+95565041\s+Paris Charles de Gaulle\s+Paris\s+France`, out)
	assert.Regexp(t, `skyscrapper\s+easySignup\s+no_credentials\s+set RAPIDAPI_KEY`, out)
	assert.Contains(t, out, "warning: skyscrapper (upstream): boom [trying next provider]")
}

func TestDeeplinks_Text(t *testing.T) {
	var buf bytes.Buffer
	NewText(&buf, "en-US").Deeplinks([]core.DeeplinkSet{{
		ID:             "f1",
		StandardLink:   "https://www.skyscanner.fr/a",
		ConfigLink:     "https://www.skyscanner.fr/b",
		ThaiConfigLink: "https://www.skyscanner.co.th/b",
	}})
	out := buf.String()
	assert.Contains(t, out, "thai config:  https://www.skyscanner.co.th/b")
	assert.NotContains(t, out, "original:")
}

func TestReport_Markdown(t *testing.T) {
	q := core.FlightQuery{
		Params: core.SearchParams{OriginID: "CDG", DestinationID: "JFK", DepartureDate: "2025-03-15", ReturnDate: "2025-03-22", Adults: 2, Cabin: core.CabinEconomy},
		Filter: core.FilterSpec{MaxPrice: 2000, MaxStops: 1},
		Sort:   core.SortPriceAsc,
	}
	res := &core.SearchResult{
		SearchID:  "sid",
		Mode:      config.ModeMock,
		Providers: []string{"mock_skyscrapper"},
		Flights:   sampleFlights(),
		Errors:    []core.ProviderError{{Provider: "skyscrapper", Code: "not_configured", Reason: "missing key"}},
		FetchedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	md := string(Report(q, res, "en-US"))
	assert.True(t, strings.HasPrefix(md, "# Flights CDG → JFK\n"))
	assert.Contains(t, md, "- Return: 2025-03-22")
	assert.Contains(t, md, "- Passengers: 2 (economy)")
	assert.Contains(t, md, "- Max price: 2,000.00")
	assert.Contains(t, md, "- Max stops: 1")
	assert.Contains(t, md, "- Generated: 2025-03-01T09:00:00Z")
	assert.Contains(t, md, "## Itineraries (2)")
	assert.Contains(t, md, "| 1 | 1,234.50 EUR | Air France | 1 stop | 7h05 | 2025-03-15 10:25 | [book](https://www.skyscanner.fr/transport/vols/cdg/jfk/250315/) |")
	assert.Contains(t, md, `| Delta \| Air |`)
	assert.Contains(t, md, "- **skyscrapper** (not_configured): missing key")

	q.Filter = core.Unfiltered()
	md = string(Report(q, res, "en-US"))
	assert.NotContains(t, md, "- Max price")
	assert.NotContains(t, md, "- Max stops")

	q.Filter.MaxPrice = 0
	assert.Contains(t, string(Report(q, res, "en-US")), "- Max price: 0.00")
}

func TestJSONError(t *testing.T) {
	var buf bytes.Buffer
	prev := Writer
	Writer = &buf
	t.Cleanup(func() { Writer = prev })

	JSONError("search failed", perr.New(perr.ErrorCodeInvalidArgument, "OriginID is required"))
	assert.JSONEq(t, `{"error":"search failed","code":"invalid_argument","details":"OriginID is required"}`, buf.String())

	buf.Reset()
	JSONError("boom", errors.New("plain"))
	assert.Contains(t, buf.String(), `"code": "unknown"`)
}

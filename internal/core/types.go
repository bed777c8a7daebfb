package core

import (
	"context"
	"math"
	"time"

	"github.com/h4ckm1n-dev/skyscanner-cli/internal/config"
)

type Capability string

const (
	CapPlacesSearch  Capability = "places.search"
	CapFlightsSearch Capability = "flights.search"
	CapFlightDetails Capability = "flights.details"
	CapDeepLink      Capability = "deepLink"
)

type ProviderTier string

const (
	TierEasySignup ProviderTier = "easySignup"
	TierLocal      ProviderTier = "local"
)

type Cabin string

const (
	CabinEconomy        Cabin = "economy"
	CabinPremiumEconomy Cabin = "premiumeconomy"
	CabinBusiness       Cabin = "business"
	CabinFirst          Cabin = "first"
)

// Place is one autocomplete hit. IATA and SkyID are both usable as routing code.
type Place struct {
	EntityID    string `json:"entityId"`
	SkyID       string `json:"skyId"`
	Name        string `json:"name"`
	City        string `json:"city"`
	CountryName string `json:"countryName"`
	IATA        string `json:"iata"`
}

// Code returns the routing code of the place
func (p Place) Code() string {
	if p.IATA != "" {
		return p.IATA
	}
	return p.SkyID
}

type SearchParams struct {
	OriginID            string `json:"originId" validate:"required,min=2,max=8"`
	DestinationID       string `json:"destinationId" validate:"required,min=2,max=8,nefield=OriginID"`
	OriginEntityID      string `json:"originEntityId,omitempty"`
	DestinationEntityID string `json:"destinationEntityId,omitempty"`
	DepartureDate       string `json:"departureDate" validate:"required,datetime=2006-01-02"`
	ReturnDate          string `json:"returnDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Adults              int    `json:"adults" validate:"min=1,max=9"`
	Cabin               Cabin  `json:"cabin" validate:"required,oneof=economy premiumeconomy business first"`
}

// RoundTrip reports whether a return date was requested
func (p SearchParams) RoundTrip() bool { return p.ReturnDate != "" }

type Endpoint struct {
	Airport string `json:"airport"`
	Code    string `json:"code"`
	Time    string `json:"time"`
}

// Timestamp parses Time; unparseable values yield the zero time
func (e Endpoint) Timestamp() time.Time {
	t, _ := ParseTimestamp(e.Time)
	return t
}

type Segment struct {
	Carrier      string   `json:"carrier"`
	FlightNumber string   `json:"flightNumber"`
	Departure    Endpoint `json:"departure"`
	Arrival      Endpoint `json:"arrival"`
	Duration     int      `json:"duration"`
}

type Leg struct {
	Duration int       `json:"duration"`
	Stops    int       `json:"stops"`
	Segments []Segment `json:"segments"`
}

// First returns the first segment of the leg
func (l Leg) First() (Segment, bool) {
	if len(l.Segments) == 0 {
		return Segment{}, false
	}
	return l.Segments[0], true
}

// Last returns the last segment of the leg
func (l Leg) Last() (Segment, bool) {
	if len(l.Segments) == 0 {
		return Segment{}, false
	}
	return l.Segments[len(l.Segments)-1], true
}

type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type Flight struct {
	ID             string `json:"id"`
	SessionID      string `json:"sessionId"`
	Price          Price  `json:"price"`
	Legs           []Leg  `json:"legs"`
	DeepLink       string `json:"deepLink"`
	DeepLinkSource string `json:"deepLinkSource,omitempty"`
	SyntheticID    bool   `json:"syntheticId,omitempty"`
}

// TotalDuration sums the leg durations in minutes
func (f Flight) TotalDuration() int {
	total := 0
	for _, l := range f.Legs {
		total += l.Duration
	}
	return total
}

// Departure is the departure timestamp of the first segment of the first leg
func (f Flight) Departure() time.Time {
	if len(f.Legs) == 0 {
		return time.Time{}
	}
	s, ok := f.Legs[0].First()
	if !ok {
		return time.Time{}
	}
	return s.Departure.Timestamp()
}

// Carriers lists distinct carrier names in segment order
func (f Flight) Carriers() []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range f.Legs {
		for _, s := range l.Segments {
			if seen[s.Carrier] {
				continue
			}
			seen[s.Carrier] = true
			out = append(out, s.Carrier)
		}
	}
	return out
}

type TrendPoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// Unlimited is the MaxStops value that disables the stop filter
const Unlimited = 999

// NoPriceCap is the MaxPrice value that keeps every price
const NoPriceCap = math.MaxFloat64

// DefaultPageSize applies when neither the caller nor the config sets one
const DefaultPageSize = 10

type FilterSpec struct {
	MaxPrice float64  `json:"maxPrice,omitempty"`
	MaxStops int      `json:"maxStops"`
	Airlines []string `json:"airlines,omitempty"`
}

// Unfiltered keeps every flight
func Unfiltered() FilterSpec {
	return FilterSpec{MaxPrice: NoPriceCap, MaxStops: Unlimited}
}

type SortKey string

const (
	SortPriceAsc      SortKey = "price_asc"
	SortPriceDesc     SortKey = "price_desc"
	SortDurationAsc   SortKey = "duration_asc"
	SortDepartureAsc  SortKey = "departure_asc"
	SortDepartureDesc SortKey = "departure_desc"
)

// SortKeys lists the supported sort keys
func SortKeys() []SortKey {
	return []SortKey{SortPriceAsc, SortPriceDesc, SortDurationAsc, SortDepartureAsc, SortDepartureDesc}
}

type DeeplinkSet struct {
	ID             string `json:"id"`
	StandardLink   string `json:"standardLink"`
	ConfigLink     string `json:"configLink"`
	ThaiConfigLink string `json:"thaiConfigLink"`
	OriginalLink   string `json:"originalLink"`
}

type SearchResult struct {
	SearchID   string          `json:"searchId"`
	Query      interface{}     `json:"query"`
	Mode       config.Mode     `json:"mode"`
	Providers  []string        `json:"providers"`
	Places     []Place         `json:"places,omitempty"`
	Flights    []Flight        `json:"flights,omitempty"`
	Deeplinks  []DeeplinkSet   `json:"deeplinks,omitempty"`
	TotalFound int             `json:"totalFound"`
	Errors     []ProviderError `json:"errors,omitempty"`
	FetchedAt  time.Time       `json:"fetchedAt"`
}

type ProviderError struct {
	Provider string `json:"provider"`
	Code     string `json:"code,omitempty"`
	Reason   string `json:"reason"`
	Fallback string `json:"fallback,omitempty"`
}

type ProviderInfo struct {
	Name         string       `json:"name"`
	Capabilities []Capability `json:"capabilities"`
	Tier         ProviderTier `json:"tier"`
	Status       string       `json:"status"`
	Reason       string       `json:"reason,omitempty"`
}

type DoctorReport struct {
	Mode      config.Mode    `json:"mode"`
	Providers []ProviderInfo `json:"providers"`
	Healthy   bool           `json:"healthy"`
	Summary   string         `json:"summary"`
}

// FlightAdapter is one upstream the orchestrator can query.
// Implementations degrade to empty results and report failures as errors;
// they never panic on malformed payloads.
type FlightAdapter interface {
	Name() string
	Tier() ProviderTier
	Capabilities() []Capability
	Available() (bool, string)
	SearchPlaces(ctx context.Context, query string) ([]Place, error)
	SearchFlights(ctx context.Context, p SearchParams) ([]Flight, error)
	FlightDetails(ctx context.Context, p SearchParams, sessionID string) ([]Flight, error)
}

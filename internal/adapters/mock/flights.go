// Package mock serves deterministic Sky-Scrapper payloads without network access.
// Payloads take the same decode path as live responses.
package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/h4ckm1n-dev/skyscanner-cli/internal/config"
	"github.com/h4ckm1n-dev/skyscanner-cli/internal/core"
	perr "github.com/h4ckm1n-dev/skyscanner-cli/internal/errors"
	"github.com/h4ckm1n-dev/skyscanner-cli/internal/logger"
	"github.com/h4ckm1n-dev/skyscanner-cli/internal/normalize"
	"github.com/h4ckm1n-dev/skyscanner-cli/internal/shape"
)

const (
	timeLayout = "2006-01-02T15:04:05"
	isoDate    = "2006-01-02"
)

type SkyScrapperAdapter struct {
	currency string
	log      *logger.Logger
}

func NewSkyScrapperAdapter(cfg *config.Config) *SkyScrapperAdapter {
	return &SkyScrapperAdapter{currency: cfg.API.Currency, log: logger.Named("mock_skyscrapper")}
}

func (a *SkyScrapperAdapter) Name() string            { return "mock_skyscrapper" }
func (a *SkyScrapperAdapter) Tier() core.ProviderTier { return core.TierLocal }
func (a *SkyScrapperAdapter) Capabilities() []core.Capability {
	return []core.Capability{core.CapPlacesSearch, core.CapFlightsSearch, core.CapFlightDetails, core.CapDeepLink}
}
func (a *SkyScrapperAdapter) Available() (bool, string) { return true, "" }

func (a *SkyScrapperAdapter) SearchPlaces(ctx context.Context, query string) ([]core.Place, error) {
	if err := ctx.Err(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "places.search")
	}
	s, err := a.decode("places.search", placesPayload(query))
	if err != nil {
		return nil, err
	}
	return normalize.Places(s), nil
}

func (a *SkyScrapperAdapter) SearchFlights(ctx context.Context, p core.SearchParams) ([]core.Flight, error) {
	return a.flights(ctx, "flights.search", p, "")
}

// FlightDetails replays the search of the session with booking links on every offer.
// An unknown session is answered with an upstream failure payload.
func (a *SkyScrapperAdapter) FlightDetails(ctx context.Context, p core.SearchParams, sessionID string) ([]core.Flight, error) {
	return a.flights(ctx, "flights.details", p, sessionID)
}

func (a *SkyScrapperAdapter) flights(ctx context.Context, op string, p core.SearchParams, sessionID string) ([]core.Flight, error) {
	if err := ctx.Err(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, op)
	}

	var payload any
	switch {
	case sessionID == "":
		payload = a.offers(p, false)
	case sessionID != sessionFor(p):
		payload = failurePayload{Status: false, Message: "session " + sessionID + " not found or expired"}
	default:
		payload = a.offers(p, true)
	}

	s, err := a.decode(op, payload)
	if err != nil {
		return nil, err
	}
	if f, ok := s.(shape.Failure); ok {
		return nil, perr.Newf(perr.ErrorCodeUpstream, "upstream failure: %s", f.Reason).WithOp(op)
	}
	return normalize.Flights(s, normalize.Options{DefaultCurrency: a.currency, Log: a.log}), nil
}

func (a *SkyScrapperAdapter) decode(op string, payload any) (shape.Shape, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDecode, op)
	}
	s, err := shape.Decode(body)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDecode, op)
	}
	a.log.Debug().Str("op", op).Str("shape", string(s.Tag())).Int("bytes", len(body)).Msg("mock payload decoded")
	return s, nil
}

// searchFlights payload layout

type failurePayload struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

type offersPayload struct {
	Status    bool       `json:"status"`
	SessionID string     `json:"sessionId"`
	Data      offersData `json:"data"`
}

type offersData struct {
	Context     offersContext `json:"context"`
	Itineraries []itinerary   `json:"itineraries"`
}

type offersContext struct {
	Status       string `json:"status"`
	SessionID    string `json:"sessionId"`
	TotalResults int    `json:"totalResults"`
}

type itinerary struct {
	ID             string          `json:"id"`
	Price          itineraryPrice  `json:"price"`
	Legs           []itineraryLeg  `json:"legs"`
	PricingOptions []pricingOption `json:"pricingOptions,omitempty"`
}

type itineraryPrice struct {
	Raw       float64 `json:"raw"`
	Formatted string  `json:"formatted"`
	Currency  string  `json:"currency"`
}

type legPlace struct {
	DisplayCode string `json:"displayCode"`
	Name        string `json:"name"`
}

type itineraryLeg struct {
	Origin            legPlace           `json:"origin"`
	Destination       legPlace           `json:"destination"`
	DurationInMinutes int                `json:"durationInMinutes"`
	StopCount         int                `json:"stopCount"`
	Departure         string             `json:"departure"`
	Arrival           string             `json:"arrival"`
	Segments          []itinerarySegment `json:"segments"`
}

type itinerarySegment struct {
	Origin                legPlace `json:"origin"`
	Destination           legPlace `json:"destination"`
	Departure             string   `json:"departure"`
	Arrival               string   `json:"arrival"`
	DurationInMinutes     int      `json:"durationInMinutes"`
	MarketingFlightNumber string   `json:"marketingFlightNumber"`
	MarketingCarrier      carrier  `json:"marketingCarrier"`
}

type carrier struct {
	Name        string `json:"name"`
	AlternateID string `json:"alternateId"`
}

type pricingOption struct {
	Price pricingAmount `json:"price"`
	Items []pricingItem `json:"items"`
}

type pricingAmount struct {
	Amount float64 `json:"amount"`
}

type pricingItem struct {
	AgentID string `json:"agentId"`
	URL     string `json:"url"`
}

var cabinFactor = map[core.Cabin]float64{
	core.CabinEconomy:        1,
	core.CabinPremiumEconomy: 1.6,
	core.CabinBusiness:       3.2,
	core.CabinFirst:          5,
}

func seedFor(p core.SearchParams) int64 {
	return core.HashSeed(strings.ToUpper(p.OriginID+p.DestinationID) + p.DepartureDate + p.ReturnDate)
}

func sessionFor(p core.SearchParams) string {
	return "mock-" + strconv.FormatInt(seedFor(p)%1_000_000_007, 36)
}

// offers generates 5 to 8 itineraries for p. The same params always yield the same offers.
// Every third offer embeds a booking link; withLinks embeds one on all of them.
func (a *SkyScrapperAdapter) offers(p core.SearchParams, withLinks bool) offersPayload {
	rng := rand.New(rand.NewSource(seedFor(p)))
	airlines := core.Airlines()
	origin, dest := strings.ToUpper(p.OriginID), strings.ToUpper(p.DestinationID)
	depart, _ := time.Parse(isoDate, p.DepartureDate)
	ret, _ := time.Parse(isoDate, p.ReturnDate)

	adults := p.Adults
	if adults < 1 {
		adults = 1
	}
	factor, ok := cabinFactor[p.Cabin]
	if !ok {
		factor = 1
	}

	count := 5 + rng.Intn(4)
	session := sessionFor(p)
	itineraries := make([]itinerary, 0, count)
	for i := 0; i < count; i++ {
		al := airlines[rng.Intn(len(airlines))]
		stops := rng.Intn(3)

		legs := []itineraryLeg{buildLeg(rng, al, origin, dest, depart, stops)}
		if p.RoundTrip() {
			legs = append(legs, buildLeg(rng, al, dest, origin, ret, stops))
		}

		price := 200.0 + float64(rng.Intn(1200)) - float64(stops)*50
		if price < 150 {
			price = 150
		}
		if p.RoundTrip() {
			price *= 1.8
		}
		price = math.Round(price*factor*float64(adults)*100) / 100

		it := itinerary{
			ID:    offerID(legs[0], al.Code),
			Price: itineraryPrice{Raw: price, Formatted: fmt.Sprintf("%.0f %s", price, a.currency), Currency: a.currency},
			Legs:  legs,
		}
		if withLinks || i%3 == 0 {
			it.PricingOptions = []pricingOption{{
				Price: pricingAmount{Amount: price},
				Items: []pricingItem{{
					AgentID: strings.ToLower(al.Code),
					URL:     bookingURL(p, al.Code, it.ID),
				}},
			}}
		}
		itineraries = append(itineraries, it)
	}

	return offersPayload{
		Status:    true,
		SessionID: session,
		Data: offersData{
			Context:     offersContext{Status: "complete", SessionID: session, TotalResults: len(itineraries)},
			Itineraries: itineraries,
		},
	}
}

// buildLeg chains stops+1 segments from origin to dest through distinct hubs
func buildLeg(rng *rand.Rand, al core.Airline, origin, dest string, day time.Time, stops int) itineraryLeg {
	codes := []string{origin}
	for _, h := range rng.Perm(len(hubs)) {
		if len(codes) == stops+1 {
			break
		}
		if hub := hubs[h]; hub != origin && hub != dest {
			codes = append(codes, hub)
		}
	}
	codes = append(codes, dest)

	start := day.Add(time.Duration(6+rng.Intn(16))*time.Hour + time.Duration(rng.Intn(12)*5)*time.Minute)
	t := start
	segments := make([]itinerarySegment, 0, len(codes)-1)
	for i := 0; i < len(codes)-1; i++ {
		duration := 55 + rng.Intn(400)
		arrive := t.Add(time.Duration(duration) * time.Minute)
		segments = append(segments, itinerarySegment{
			Origin:                legPlace{DisplayCode: codes[i], Name: airportName(codes[i])},
			Destination:           legPlace{DisplayCode: codes[i+1], Name: airportName(codes[i+1])},
			Departure:             t.Format(timeLayout),
			Arrival:               arrive.Format(timeLayout),
			DurationInMinutes:     duration,
			MarketingFlightNumber: strconv.Itoa(100 + rng.Intn(8900)),
			MarketingCarrier:      carrier{Name: al.Name, AlternateID: al.Code},
		})
		t = arrive.Add(time.Duration(40+rng.Intn(140)) * time.Minute)
	}

	last := segments[len(segments)-1]
	end, _ := time.Parse(timeLayout, last.Arrival)
	return itineraryLeg{
		Origin:            segments[0].Origin,
		Destination:       last.Destination,
		DurationInMinutes: int(end.Sub(start).Minutes()),
		StopCount:         len(segments) - 1,
		Departure:         segments[0].Departure,
		Arrival:           last.Arrival,
		Segments:          segments,
	}
}

// offerID mimics upstream itinerary ids, e.g. CDG-2506011005--AF-1-JFK-2506011840
func offerID(l itineraryLeg, carrierCode string) string {
	dep, _ := time.Parse(timeLayout, l.Departure)
	arr, _ := time.Parse(timeLayout, l.Arrival)
	return fmt.Sprintf("%s-%s--%s-%d-%s-%s",
		l.Origin.DisplayCode, dep.Format("0601021504"), carrierCode, l.StopCount,
		l.Destination.DisplayCode, arr.Format("0601021504"))
}

func bookingURL(p core.SearchParams, agent, id string) string {
	return fmt.Sprintf("https://www.skyscanner.fr/transport_deeplink/4.0/FR/fr-FR/EUR/%s/1/%s/%s/%s?itinerary=%s",
		strings.ToLower(agent), strings.ToUpper(p.OriginID), strings.ToUpper(p.DestinationID), p.DepartureDate, id)
}

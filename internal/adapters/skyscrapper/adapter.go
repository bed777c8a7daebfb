package skyscrapper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/h4ckm1n-dev/skyscanner-cli/internal/config"
	"github.com/h4ckm1n-dev/skyscanner-cli/internal/core"
	perr "github.com/h4ckm1n-dev/skyscanner-cli/internal/errors"
	"github.com/h4ckm1n-dev/skyscanner-cli/internal/logger"
	"github.com/h4ckm1n-dev/skyscanner-cli/internal/normalize"
	"github.com/h4ckm1n-dev/skyscanner-cli/internal/shape"
)

// Adapter is the live Sky-Scrapper provider.
// Subscribe on RapidAPI and set RAPIDAPI_KEY to enable.
type Adapter struct {
	client *Client
	api    config.APIConfig
	log    *logger.Logger
}

func New(cfg *config.Config) *Adapter {
	return NewWithClient(NewClient(Options{
		BaseURL: cfg.API.BaseURL,
		Host:    cfg.API.Host,
		Key:     cfg.API.Key,
		Timeout: cfg.API.Timeout,
	}), cfg.API)
}

func NewWithClient(c *Client, api config.APIConfig) *Adapter {
	return &Adapter{client: c, api: api, log: logger.Named("skyscrapper")}
}

func (a *Adapter) Name() string            { return "skyscrapper" }
func (a *Adapter) Tier() core.ProviderTier { return core.TierEasySignup }
func (a *Adapter) Capabilities() []core.Capability {
	return []core.Capability{core.CapPlacesSearch, core.CapFlightsSearch, core.CapFlightDetails, core.CapDeepLink}
}

func (a *Adapter) Available() (bool, string) {
	if !a.client.HasKey() {
		return false, "set RAPIDAPI_KEY (subscribe to Sky-Scrapper on https://rapidapi.com)"
	}
	return true, ""
}

type placeEndpoint struct {
	url   string
	host  string
	query url.Values
}

// placeEndpoints lists the autocomplete candidates in the order they are tried
func (a *Adapter) placeEndpoints(query string) []placeEndpoint {
	o := a.client.opts
	locale := orDefault(a.api.Locale, "fr-FR")
	return []placeEndpoint{
		{url: o.BaseURL + "/api/v1/flights/searchAirport", query: url.Values{"query": {query}, "locale": {locale}}},
		{url: o.HostURL + "/flights/auto-complete", query: url.Values{"query": {query}}},
		{url: o.HostURL + "/locations/query", query: url.Values{"query": {query}, "locale": {locale}}},
		{
			url: fmt.Sprintf("%s/apiservices/autosuggest/v1.0/%s/%s/%s/", o.LegacyBaseURL,
				orDefault(a.api.CountryCode, "FR"), orDefault(a.api.Currency, "EUR"), locale),
			host:  o.LegacyHost,
			query: url.Values{"query": {query}},
		},
	}
}

// SearchPlaces tries every autocomplete endpoint in sequence; the first one
// whose payload yields places wins
func (a *Adapter) SearchPlaces(ctx context.Context, query string) ([]core.Place, error) {
	var lastErr error
	for _, ep := range a.placeEndpoints(query) {
		body, err := a.client.Get(ctx, ep.url, ep.host, ep.query)
		if err != nil {
			if perr.IsCode(err, perr.ErrorCodeNotConfigured) {
				return nil, err
			}
			a.log.Debug().Err(err).Str("endpoint", ep.url).Msg("autocomplete endpoint failed")
			lastErr = err
			continue
		}

		s, err := shape.Decode(body)
		if err != nil {
			lastErr = perr.Wrapf(err, perr.ErrorCodeDecode, "decode %s", ep.url)
			continue
		}
		if !shape.HasResults(s) {
			a.log.Debug().Str("endpoint", ep.url).Str("shape", string(s.Tag())).Msg("no places in payload")
			continue
		}
		if places := normalize.Places(s); len(places) > 0 {
			a.log.Debug().Str("endpoint", ep.url).Str("shape", string(s.Tag())).Int("places", len(places)).Msg("places resolved")
			return places, nil
		}
		a.log.Debug().Str("endpoint", ep.url).Str("shape", string(s.Tag())).Msg("payload held no usable place")
	}
	return nil, lastErr
}

func (a *Adapter) SearchFlights(ctx context.Context, p core.SearchParams) ([]core.Flight, error) {
	q := url.Values{}
	q.Set("originSkyId", p.OriginID)
	q.Set("destinationSkyId", p.DestinationID)
	q.Set("originEntityId", p.OriginEntityID)
	q.Set("destinationEntityId", p.DestinationEntityID)
	q.Set("date", p.DepartureDate)
	if p.RoundTrip() {
		q.Set("returnDate", p.ReturnDate)
	}
	q.Set("cabinClass", string(p.Cabin))
	a.market(q, p)

	return a.flights(ctx, "/api/v1/flights/searchFlights", q)
}

type detailLeg struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
}

func (a *Adapter) FlightDetails(ctx context.Context, p core.SearchParams, sessionID string) ([]core.Flight, error) {
	legs := []detailLeg{{Origin: p.OriginID, Destination: p.DestinationID, Date: p.DepartureDate}}
	if p.RoundTrip() {
		legs = append(legs, detailLeg{Origin: p.DestinationID, Destination: p.OriginID, Date: p.ReturnDate})
	}
	encoded, err := json.Marshal(legs)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "encode legs")
	}

	q := url.Values{}
	q.Set("legs", string(encoded))
	q.Set("cabinClass", string(p.Cabin))
	if sessionID != "" {
		q.Set("sessionId", sessionID)
	}
	a.market(q, p)

	return a.flights(ctx, "/api/v1/flights/getFlightDetails", q)
}

func (a *Adapter) market(q url.Values, p core.SearchParams) {
	adults := p.Adults
	if adults < 1 {
		adults = 1
	}
	q.Set("adults", strconv.Itoa(adults))
	q.Set("currency", orDefault(a.api.Currency, "EUR"))
	q.Set("countryCode", orDefault(a.api.CountryCode, "FR"))
	q.Set("market", orDefault(a.api.Market, "fr-FR"))
	q.Set("locale", orDefault(a.api.Locale, "fr-FR"))
}

func (a *Adapter) flights(ctx context.Context, path string, q url.Values) ([]core.Flight, error) {
	body, err := a.client.Get(ctx, a.client.opts.BaseURL+path, "", q)
	if err != nil {
		return nil, err
	}

	s, err := shape.Decode(body)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDecode, "decode %s", path)
	}
	switch v := s.(type) {
	case shape.Failure:
		return nil, perr.Newf(perr.ErrorCodeUpstream, "upstream failure: %s", v.Reason).WithOp(path)
	case shape.Unrecognized:
		a.log.Debug().Str("path", path).Msg("no offers in payload")
		return nil, nil
	}

	flights := normalize.Flights(s, normalize.Options{DefaultCurrency: a.api.Currency, Log: a.log})
	a.log.Debug().Str("path", path).Str("shape", string(s.Tag())).Int("flights", len(flights)).Msg("flights normalized")
	return flights, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

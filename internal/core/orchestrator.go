package core

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	perr "github.com/h4ckm1n-dev/skyscanner-cli/internal/errors"
	"github.com/h4ckm1n-dev/skyscanner-cli/internal/logger"
)

// defaultTimeout bounds one whole operation, all endpoint attempts included
const defaultTimeout = 2 * time.Minute

// DefaultDeeplinkLimit is how many flights ExtractDeeplinks keeps
const DefaultDeeplinkLimit = 5

var placeCode = regexp.MustCompile(`^[A-Za-z]{3,4}$`)

// Linker turns a normalized flight into booking links
type Linker interface {
	Resolve(f Flight, p SearchParams) (link, source string)
	Variants(f Flight, p SearchParams) DeeplinkSet
}

type FlightQuery struct {
	Params SearchParams `json:"params"`
	Filter FilterSpec   `json:"filter"`
	Sort   SortKey      `json:"sort"`
}

type Orchestrator struct {
	router *Router
	linker Linker
	log    *logger.Logger
}

func NewOrchestrator(router *Router, linker Linker) *Orchestrator {
	return &Orchestrator{router: router, linker: linker, log: logger.Named("orchestrator")}
}

func (o *Orchestrator) newResult(query interface{}) *SearchResult {
	return &SearchResult{
		SearchID:  uuid.NewString(),
		Query:     query,
		Mode:      o.router.cfg.Mode,
		FetchedAt: time.Now().UTC(),
	}
}

func noProviders(capability string) ProviderError {
	return ProviderError{
		Provider: "none",
		Code:     perr.ErrorCodeNotConfigured.String(),
		Reason:   "no active " + capability + " providers for current mode",
		Fallback: "use --mode mock or set RAPIDAPI_KEY",
	}
}

// providerError records a failed adapter call and logs it as a warning
func (o *Orchestrator) providerError(res *SearchResult, adapter FlightAdapter, err error) {
	code := perr.CodeOf(err)
	o.log.Warn().
		Str("search_id", res.SearchID).
		Str("provider", adapter.Name()).
		Str("code", code.String()).
		Err(err).
		Msg("provider call failed")
	res.Errors = append(res.Errors, ProviderError{
		Provider: adapter.Name(),
		Code:     code.String(),
		Reason:   err.Error(),
		Fallback: "trying next provider",
	})
}

// SearchPlaces resolves free text to places. Adapters are tried in order; the first non-empty answer wins.
func (o *Orchestrator) SearchPlaces(ctx context.Context, query string) (*SearchResult, error) {
	res := o.newResult(map[string]string{"query": query})
	if query == "" {
		return nil, perr.New(perr.ErrorCodeInvalidArgument, "query is required").WithOp("places.search")
	}

	adapters := o.router.ActiveFlightAdapters()
	if len(adapters) == 0 {
		res.Errors = append(res.Errors, noProviders("places"))
		return res, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	for _, a := range adapters {
		places, err := a.SearchPlaces(ctx, query)
		if err != nil {
			o.providerError(res, a, err)
			continue
		}
		res.Providers = append(res.Providers, a.Name())
		if len(places) == 0 {
			continue
		}
		res.Places = places
		break
	}

	res.TotalFound = len(res.Places)
	return res, nil
}

// ResolvePlace turns a routing code or free text into one place.
// A code with no matching record is kept as typed; text with no match is an error.
func (o *Orchestrator) ResolvePlace(ctx context.Context, input string) (Place, error) {
	input = strings.TrimSpace(input)
	res, err := o.SearchPlaces(ctx, input)
	if err != nil {
		return Place{}, err
	}

	if placeCode.MatchString(input) {
		code := strings.ToUpper(input)
		for _, p := range res.Places {
			if strings.EqualFold(p.Code(), code) {
				return p, nil
			}
		}
		if len(res.Places) == 0 {
			return Place{SkyID: code}, nil
		}
	}
	if len(res.Places) == 0 {
		return Place{}, perr.Newf(perr.ErrorCodeInvalidArgument, "no place matches %q", input).WithOp("places.resolve")
	}
	return res.Places[0], nil
}

// SearchFlights validates the query, fetches offers and applies filter and sort.
// Validation failures are the only errors returned; upstream trouble ends up in SearchResult.Errors.
func (o *Orchestrator) SearchFlights(ctx context.Context, q FlightQuery) (*SearchResult, error) {
	if err := q.Params.Validate(); err != nil {
		return nil, err
	}

	res := o.newResult(q)
	flights := o.fetch(ctx, res, func(ctx context.Context, a FlightAdapter) ([]Flight, error) {
		return a.SearchFlights(ctx, q.Params)
	})
	o.attachLinks(flights, q.Params)

	flights = Sort(Filter(flights, q.Filter), q.Sort)
	res.Flights = flights
	res.TotalFound = len(flights)

	o.log.Debug().
		Str("search_id", res.SearchID).
		Int("flights", len(flights)).
		Strs("providers", res.Providers).
		Msg("flight search done")
	return res, nil
}

// FlightDetails fetches the detailed itineraries of a search session
func (o *Orchestrator) FlightDetails(ctx context.Context, p SearchParams, sessionID string) (*SearchResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if sessionID == "" {
		return nil, perr.New(perr.ErrorCodeInvalidArgument, "session id is required").WithOp("flights.details")
	}

	res := o.newResult(map[string]interface{}{"params": p, "sessionId": sessionID})
	flights := o.fetch(ctx, res, func(ctx context.Context, a FlightAdapter) ([]Flight, error) {
		return a.FlightDetails(ctx, p, sessionID)
	})
	o.attachLinks(flights, p)

	res.Flights = flights
	res.TotalFound = len(flights)
	return res, nil
}

// ExtractDeeplinks runs a search, enriches it through the details call of the
// returned session, and builds every link variant for the cheapest flights
func (o *Orchestrator) ExtractDeeplinks(ctx context.Context, p SearchParams, limit int) (*SearchResult, error) {
	if limit <= 0 {
		limit = DefaultDeeplinkLimit
	}

	search, err := o.SearchFlights(ctx, FlightQuery{Params: p, Filter: Unfiltered(), Sort: SortPriceAsc})
	if err != nil {
		return nil, err
	}

	res := search
	if sessionID := firstSession(search.Flights); sessionID != "" {
		details, err := o.FlightDetails(ctx, p, sessionID)
		if err != nil {
			return nil, err
		}
		if len(details.Flights) > 0 {
			details.Errors = append(search.Errors, details.Errors...)
			res = details
		} else {
			o.log.Warn().Str("session_id", sessionID).Msg("details returned no flights, keeping search results")
		}
	}

	top := res.Flights
	if len(top) > limit {
		top = top[:limit]
	}
	res.Flights = top
	res.Deeplinks = make([]DeeplinkSet, 0, len(top))
	for _, f := range top {
		res.Deeplinks = append(res.Deeplinks, o.linker.Variants(f, p))
	}
	res.TotalFound = len(top)
	return res, nil
}

// fetch tries every active adapter in order until one returns flights
func (o *Orchestrator) fetch(ctx context.Context, res *SearchResult, call func(context.Context, FlightAdapter) ([]Flight, error)) []Flight {
	adapters := o.router.ActiveFlightAdapters()
	if len(adapters) == 0 {
		res.Errors = append(res.Errors, noProviders("flight"))
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	for _, a := range adapters {
		flights, err := call(ctx, a)
		if err != nil {
			o.providerError(res, a, err)
			continue
		}
		res.Providers = append(res.Providers, a.Name())
		if len(flights) > 0 {
			return flights
		}
	}
	return nil
}

func (o *Orchestrator) attachLinks(flights []Flight, p SearchParams) {
	if o.linker == nil {
		return
	}
	for i := range flights {
		flights[i].DeepLink, flights[i].DeepLinkSource = o.linker.Resolve(flights[i], p)
	}
}

func firstSession(flights []Flight) string {
	for _, f := range flights {
		if f.SessionID != "" {
			return f.SessionID
		}
	}
	return ""
}

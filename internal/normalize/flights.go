// Package normalize maps detected upstream shapes onto the core model.
package normalize

import (
	"fmt"

	"github.com/h4ckm1n-dev/skyscanner-cli/internal/core"
	"github.com/h4ckm1n-dev/skyscanner-cli/internal/deeplink"
	"github.com/h4ckm1n-dev/skyscanner-cli/internal/logger"
	"github.com/h4ckm1n-dev/skyscanner-cli/internal/rawjson"
	"github.com/h4ckm1n-dev/skyscanner-cli/internal/shape"
)

const unknownCarrier = "Unknown"

type Options struct {
	// DefaultCurrency applies when an offer carries no currency
	DefaultCurrency string
	Log             *logger.Logger
}

var at = rawjson.Path

var (
	carrierChain      = []rawjson.Accessor{at("marketingCarrier.name"), at("airline.name"), at("operatingCarrier.name")}
	flightNumberChain = []rawjson.Accessor{rawjson.Text("flightNumber"), rawjson.Concat("marketingCarrier.alternateId", "marketingFlightNumber")}
	durationChain     = []rawjson.Accessor{at("durationInMinutes"), at("duration.totalMinutes"), at("duration.minutes")}

	depAirportChain = []rawjson.Accessor{at("origin.name"), at("origin.displayCode"), at("departure.airport.name")}
	depCodeChain    = []rawjson.Accessor{at("origin.displayCode"), at("departure.airport.code")}
	depTimeChain    = []rawjson.Accessor{at("departure"), at("departureDateTime"), at("departure.time")}
	arrAirportChain = []rawjson.Accessor{at("destination.name"), at("destination.displayCode"), at("arrival.airport.name")}
	arrCodeChain    = []rawjson.Accessor{at("destination.displayCode"), at("arrival.airport.code")}
	arrTimeChain    = []rawjson.Accessor{at("arrival"), at("arrivalDateTime"), at("arrival.time")}

	priceChain    = []rawjson.Accessor{at("price.raw"), at("price.amount"), at("price.total"), at("pricing.price.amount"), at("pricingOptions.0.price.amount")}
	currencyChain = []rawjson.Accessor{at("price.currency"), at("pricing.price.currency"), at("pricingOptions.0.price.currency")}
)

// Flights extracts flights from an offer-bearing shape, sorted by ascending price.
// Other shapes yield nil.
func Flights(s shape.Shape, opt Options) []core.Flight {
	log := opt.Log
	if log == nil {
		log = logger.Named("normalize")
	}
	currency := opt.DefaultCurrency
	if currency == "" {
		currency = "EUR"
	}

	var (
		offers    []any
		sessionID string
	)
	switch v := s.(type) {
	case shape.SkyScrapperOffers:
		offers, sessionID = v.Offers, v.SessionID
	case shape.GenericDataArray:
		offers = v.Items
	case shape.RawArray:
		offers = v.Items
	case shape.Failure:
		log.Warn().Str("reason", v.Reason).Msg("upstream reported failure")
		return nil
	default:
		log.Debug().Str("shape", string(s.Tag())).Msg("shape carries no offers")
		return nil
	}

	flights := make([]core.Flight, 0, len(offers))
	for i, raw := range offers {
		f, ok := flight(raw, i, sessionID, currency, log)
		if !ok {
			continue
		}
		flights = append(flights, f)
	}

	if len(flights) == 0 && len(offers) > 0 {
		log.Warn().Int("offers", len(offers)).Msg("no offer could be normalized")
	}
	core.SortByPrice(flights)
	return flights
}

func flight(raw any, i int, sessionID, currency string, log *logger.Logger) (core.Flight, bool) {
	offer, ok := rawjson.AsObject(raw)
	if !ok {
		log.Debug().Int("offer", i).Msg("offer is not an object, dropped")
		return core.Flight{}, false
	}
	rawLegs, ok := rawjson.AsArray(offer["legs"])
	if !ok {
		log.Debug().Int("offer", i).Msg("offer without legs, dropped")
		return core.Flight{}, false
	}

	legs := make([]core.Leg, 0, len(rawLegs))
	for _, rl := range rawLegs {
		if l, ok := leg(rl); ok {
			legs = append(legs, l)
		} else {
			log.Debug().Int("offer", i).Msg("leg without valid segments, dropped")
		}
	}
	if len(legs) == 0 {
		log.Debug().Int("offer", i).Msg("offer has no usable leg, dropped")
		return core.Flight{}, false
	}

	f := core.Flight{
		ID:        rawjson.FirstString(offer, "", rawjson.Text("id")),
		SessionID: sessionID,
		Price: core.Price{
			Amount:   rawjson.FirstNumber(offer, 0, priceChain...),
			Currency: rawjson.FirstString(offer, currency, currencyChain...),
		},
		Legs: legs,
	}
	if f.Price.Amount < 0 {
		f.Price.Amount = 0
	}
	if f.ID == "" {
		f.ID = fmt.Sprintf("flight-%s-%d", sessionID, i)
		f.SyntheticID = true
	}
	if m, ok := deeplink.Find(offer); ok {
		f.DeepLink, f.DeepLinkSource = m.URL, m.Source
		log.Debug().Str("flight", f.ID).Str("source", m.Source).Msg("embedded deeplink found")
	}
	return f, true
}

func leg(raw any) (core.Leg, bool) {
	obj, ok := rawjson.AsObject(raw)
	if !ok {
		return core.Leg{}, false
	}
	rawSegs, ok := rawjson.AsArray(obj["segments"])
	if !ok {
		return core.Leg{}, false
	}
	segObjs := rawjson.Objects(rawSegs)
	if len(segObjs) == 0 {
		return core.Leg{}, false
	}

	segments := make([]core.Segment, 0, len(segObjs))
	for _, s := range segObjs {
		segments = append(segments, segment(s))
	}

	stops := len(segments) - 1
	if v, ok := rawjson.Lookup(obj, "stopCount"); ok {
		if n, ok := rawjson.Number(v); ok && n >= 0 {
			stops = int(n)
		}
	}

	return core.Leg{
		Duration: minutes(obj),
		Stops:    stops,
		Segments: segments,
	}, true
}

func segment(s rawjson.Object) core.Segment {
	return core.Segment{
		Carrier:      rawjson.FirstString(s, unknownCarrier, carrierChain...),
		FlightNumber: rawjson.FirstString(s, "", flightNumberChain...),
		Departure: core.Endpoint{
			Airport: rawjson.FirstString(s, "", depAirportChain...),
			Code:    rawjson.FirstString(s, "", depCodeChain...),
			Time:    rawjson.FirstString(s, "", depTimeChain...),
		},
		Arrival: core.Endpoint{
			Airport: rawjson.FirstString(s, "", arrAirportChain...),
			Code:    rawjson.FirstString(s, "", arrCodeChain...),
			Time:    rawjson.FirstString(s, "", arrTimeChain...),
		},
		Duration: minutes(s),
	}
}

// minutes reads a duration; zero falls through to the next source
func minutes(o rawjson.Object) int {
	n := rawjson.FirstNonZero(o, 0, durationChain...)
	if n < 0 {
		return 0
	}
	return int(n)
}

// Package shape classifies decoded upstream payloads into a closed set of
// response layouts so normalization never has to guess.
package shape

import (
	"fmt"

	"github.com/h4ckm1n-dev/skyscanner-cli/internal/rawjson"
)

type Tag string

const (
	TagSkyScrapperOffers   Tag = "skyscrapper_offers"
	TagSkyScrapperPlaces   Tag = "skyscrapper_places"
	TagAutoCompleteSuggest Tag = "autocomplete_suggest"
	TagLegacyPlaces        Tag = "legacy_places"
	TagGenericDataArray    Tag = "generic_data_array"
	TagRawArray            Tag = "raw_array"
	TagFailure             Tag = "failure"
	TagUnrecognized        Tag = "unrecognized"
)

// Shape is one detected payload layout
type Shape interface {
	Tag() Tag
}

// SkyScrapperOffers holds the raw offer collection of a flight search
type SkyScrapperOffers struct {
	SessionID string
	Offers    []any
}

type SkyScrapperPlaces struct {
	Places []any
}

type AutoCompleteSuggest struct {
	Suggestions []any
}

// LegacyPlaces is the capitalized Places array of the v1 autosuggest API
type LegacyPlaces struct {
	Places []any
}

type GenericDataArray struct {
	Items []any
}

type RawArray struct {
	Items []any
}

// Failure is an explicit upstream failure, whatever collections came along
type Failure struct {
	Reason string
}

// Unrecognized means zero results. Err is set when the body was not JSON.
type Unrecognized struct {
	Err error
}

func (SkyScrapperOffers) Tag() Tag   { return TagSkyScrapperOffers }
func (SkyScrapperPlaces) Tag() Tag   { return TagSkyScrapperPlaces }
func (AutoCompleteSuggest) Tag() Tag { return TagAutoCompleteSuggest }
func (LegacyPlaces) Tag() Tag        { return TagLegacyPlaces }
func (GenericDataArray) Tag() Tag    { return TagGenericDataArray }
func (RawArray) Tag() Tag            { return TagRawArray }
func (Failure) Tag() Tag             { return TagFailure }
func (Unrecognized) Tag() Tag        { return TagUnrecognized }

type probe func(v any) (Shape, bool)

// probes run in priority order; the first match wins
var probes = []probe{
	probeFailure,
	probeOffers,
	probeArrayAt("data.places", func(a []any) Shape { return SkyScrapperPlaces{Places: a} }),
	probeArrayAt("inputSuggest", func(a []any) Shape { return AutoCompleteSuggest{Suggestions: a} }),
	probeArrayAt("Places", func(a []any) Shape { return LegacyPlaces{Places: a} }),
	probeArrayAt("data", func(a []any) Shape { return GenericDataArray{Items: a} }),
	probeRawArray,
}

// offerPaths are checked in order for a flight offer collection
var offerPaths = []string{
	"data.itineraries",
	"data.flightOffers",
	"data.flightResults",
	"flightResults",
}

// Detect classifies a decoded JSON value
func Detect(v any) Shape {
	for _, p := range probes {
		if s, ok := p(v); ok {
			return s
		}
	}
	return Unrecognized{}
}

// Decode parses body and detects its shape. Malformed JSON yields Unrecognized plus the error.
func Decode(body []byte) (Shape, error) {
	v, err := rawjson.Decode(body)
	if err != nil {
		return Unrecognized{Err: err}, err
	}
	return Detect(v), nil
}

// HasResults reports whether s carries a non-empty collection
func HasResults(s Shape) bool {
	switch s.(type) {
	case Failure, Unrecognized:
		return false
	}
	return true
}

func probeFailure(v any) (Shape, bool) {
	obj, ok := rawjson.AsObject(v)
	if !ok {
		return nil, false
	}
	// A missing status counts as success: autocomplete payloads never carry one.
	// Offer payloads without status are therefore looser than status !== true.
	if status, present := obj["status"]; present {
		if b, isBool := rawjson.Bool(status); !isBool || !b {
			return Failure{Reason: failureReason(obj, fmt.Sprintf("status %v", status))}, true
		}
	}
	if s, _ := rawjson.String(rawjson.Get(obj, "data.context.status")); s == "failure" {
		return Failure{Reason: failureReason(obj, "context status failure")}, true
	}
	return nil, false
}

func failureReason(obj rawjson.Object, def string) string {
	switch m := obj["message"].(type) {
	case string:
		if m != "" {
			return m
		}
	case []any, map[string]any:
		return fmt.Sprint(m)
	}
	return def
}

func probeOffers(v any) (Shape, bool) {
	for _, p := range offerPaths {
		if offers, ok := rawjson.NonEmptyArray(v, p); ok {
			return SkyScrapperOffers{SessionID: sessionID(v), Offers: offers}, true
		}
	}
	if data, ok := rawjson.NonEmptyArray(v, "data"); ok && offerLike(data[0]) {
		return SkyScrapperOffers{SessionID: sessionID(v), Offers: data}, true
	}
	return nil, false
}

func offerLike(v any) bool {
	o, ok := rawjson.AsObject(v)
	if !ok {
		return false
	}
	_, legs := o["legs"]
	_, segments := o["segments"]
	return legs || segments
}

func sessionID(v any) string {
	for _, p := range []string{"sessionId", "data.context.sessionId"} {
		if s, ok := rawjson.String(rawjson.Get(v, p)); ok {
			return s
		}
	}
	return ""
}

func probeArrayAt(path string, build func([]any) Shape) probe {
	return func(v any) (Shape, bool) {
		if _, isObj := rawjson.AsObject(v); !isObj {
			return nil, false
		}
		a, ok := rawjson.NonEmptyArray(v, path)
		if !ok {
			return nil, false
		}
		return build(a), true
	}
}

func probeRawArray(v any) (Shape, bool) {
	a, ok := rawjson.AsArray(v)
	if !ok || len(a) == 0 {
		return nil, false
	}
	return RawArray{Items: a}, true
}

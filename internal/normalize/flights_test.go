package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/h4ckm1n-dev/skyscanner-cli/internal/core"
	"github.com/h4ckm1n-dev/skyscanner-cli/internal/shape"
)

func flightsOf(t *testing.T, body string) []core.Flight {
	t.Helper()
	s, err := shape.Decode([]byte(body))
	require.NoError(t, err)
	return Flights(s, Options{DefaultCurrency: "EUR"})
}

func TestFlights_AirFranceOffer(t *testing.T) {
	flights := flightsOf(t, `{"status":true,"sessionId":"s1","data":{"itineraries":[
		{"price":{"amount":120,"currency":"EUR"},"legs":[{"segments":[{
			"marketingCarrier":{"name":"Air France"},
			"origin":{"displayCode":"CDG"},"destination":{"displayCode":"LHR"},
			"departure":"2025-06-01T10:00","arrival":"2025-06-01T11:00","durationInMinutes":60}]}]}]}}`)

	require.Len(t, flights, 1)
	f := flights[0]
	assert.Equal(t, 120.0, f.Price.Amount)
	assert.Equal(t, "EUR", f.Price.Currency)
	assert.Equal(t, "flight-s1-0", f.ID)
	assert.True(t, f.SyntheticID)
	assert.Equal(t, "s1", f.SessionID)
	require.Len(t, f.Legs, 1)
	assert.Equal(t, 0, f.Legs[0].Stops)
	require.Len(t, f.Legs[0].Segments, 1)

	seg := f.Legs[0].Segments[0]
	assert.Equal(t, "Air France", seg.Carrier)
	assert.Equal(t, "CDG", seg.Departure.Code)
	assert.Equal(t, "CDG", seg.Departure.Airport)
	assert.Equal(t, "LHR", seg.Arrival.Code)
	assert.Equal(t, "2025-06-01T10:00", seg.Departure.Time)
	assert.Equal(t, "2025-06-01T11:00", seg.Arrival.Time)
	assert.Equal(t, 60, seg.Duration)
	assert.Empty(t, f.DeepLink)
}

func TestFlights_SortedByPrice(t *testing.T) {
	flights := flightsOf(t, `{"data":{"itineraries":[
		{"id":"a","price":{"raw":200},"legs":[{"segments":[{}]}]},
		{"id":"b","price":{"raw":150},"legs":[{"segments":[{}]}]}]}}`)

	require.Len(t, flights, 2)
	assert.Equal(t, 150.0, flights[0].Price.Amount)
	assert.Equal(t, 200.0, flights[1].Price.Amount)
	assert.Equal(t, "b", flights[0].ID)
}

func TestFlights_StatusFalseIsEmpty(t *testing.T) {
	assert.Empty(t, flightsOf(t, `{"status":false,"data":{"itineraries":[{"price":{"raw":1},"legs":[{"segments":[{}]}]}]}}`))
}

func TestFlights_DropsMalformedOffers(t *testing.T) {
	flights := flightsOf(t, `{"data":{"itineraries":[
		"not an object",
		{"id":"nolegs","price":{"raw":1}},
		{"id":"legsnotarray","legs":{"segments":[]}},
		{"id":"emptysegments","legs":[{"segments":[]},{"segments":["x",null]}]},
		{"id":"kept","price":{"raw":99},"legs":[{"segments":[]},{"segments":[{"flightNumber":"AF1"}]}]}]}}`)

	require.Len(t, flights, 1)
	assert.Equal(t, "kept", flights[0].ID)
	assert.Len(t, flights[0].Legs, 1, "the empty leg is dropped")
}

func TestFlights_Stops(t *testing.T) {
	flights := flightsOf(t, `{"data":{"itineraries":[
		{"id":"derived","legs":[{"segments":[{},{},{}]}]},
		{"id":"explicit","legs":[{"stopCount":0,"segments":[{},{}]}]}]}}`)

	require.Len(t, flights, 2)
	byID := map[string]core.Flight{flights[0].ID: flights[0], flights[1].ID: flights[1]}
	assert.Equal(t, 2, byID["derived"].Legs[0].Stops)
	assert.Equal(t, 0, byID["explicit"].Legs[0].Stops, "stopCount is trusted")
}

func TestFlights_FieldFallbacks(t *testing.T) {
	flights := flightsOf(t, `{"sessionId":"s","data":{"itineraries":[{
		"id":12345,
		"pricingOptions":[{"price":{"amount":"310.40","currency":"USD"}}],
		"legs":[{"duration":{"totalMinutes":0,"minutes":95},"segments":[{
			"airline":{"name":"KLM"},
			"marketingCarrier":{"alternateId":"KL","name":""},"marketingFlightNumber":"1230",
			"departure":{"airport":{"name":"Schiphol","code":"AMS"},"time":"2025-06-01T07:00:00"},
			"arrivalDateTime":"2025-06-01T08:35:00",
			"arrival":{"airport":{"code":"CDG"}},
			"duration":{"minutes":95}}]}]}]}}`)

	require.Len(t, flights, 1)
	f := flights[0]
	assert.Equal(t, "12345", f.ID)
	assert.False(t, f.SyntheticID)
	assert.Equal(t, 310.40, f.Price.Amount)
	assert.Equal(t, "USD", f.Price.Currency)
	assert.Equal(t, 95, f.Legs[0].Duration, "a zero duration falls through")

	seg := f.Legs[0].Segments[0]
	assert.Equal(t, "KLM", seg.Carrier)
	assert.Equal(t, "KL1230", seg.FlightNumber)
	assert.Equal(t, "Schiphol", seg.Departure.Airport)
	assert.Equal(t, "AMS", seg.Departure.Code)
	assert.Equal(t, "2025-06-01T07:00:00", seg.Departure.Time)
	assert.Equal(t, "2025-06-01T08:35:00", seg.Arrival.Time)
	assert.Equal(t, "CDG", seg.Arrival.Code)
}

func TestFlights_PresentZeroPriceCounts(t *testing.T) {
	flights := flightsOf(t, `[{"id":"z","price":{"raw":0,"amount":500},"legs":[{"segments":[{}]}]}]`)
	require.Len(t, flights, 1)
	assert.Equal(t, 0.0, flights[0].Price.Amount)
	assert.Equal(t, "Unknown", flights[0].Legs[0].Segments[0].Carrier)
	assert.Equal(t, "EUR", flights[0].Price.Currency)
}

func TestFlights_EmbeddedDeeplink(t *testing.T) {
	flights := flightsOf(t, `{"data":[{"id":"x","legs":[{"segments":[{}]}],
		"pricingOptions":[{"items":[{"url":"https://agent.example.com/x"}]}]}]}`)
	require.Len(t, flights, 1)
	assert.Equal(t, "https://agent.example.com/x", flights[0].DeepLink)
	assert.Equal(t, "obj.pricingOptions[0].items[0].url", flights[0].DeepLinkSource)
}

func TestFlights_NonOfferShapes(t *testing.T) {
	assert.Nil(t, Flights(shape.AutoCompleteSuggest{Suggestions: []any{map[string]any{}}}, Options{}))
	assert.Nil(t, Flights(shape.Unrecognized{}, Options{}))
}

package mock

import (
	"strings"

	"github.com/h4ckm1n-dev/skyscanner-cli/internal/core"
)

type mockPlace struct {
	SkyID    string
	EntityID string
	Name     string
	City     string
	Country  string
	Type     string
}

var mockPlaces = []mockPlace{
	{"PARI", "27539733", "Paris (any)", "Paris", "France", "CITY"},
	{"CDG", "95565041", "Paris Charles de Gaulle", "Paris", "France", "AIRPORT"},
	{"ORY", "95565040", "Paris Orly", "Paris", "France", "AIRPORT"},
	{"LOND", "27544008", "London (any)", "London", "United Kingdom", "CITY"},
	{"LHR", "95565050", "London Heathrow", "London", "United Kingdom", "AIRPORT"},
	{"LGW", "95565051", "London Gatwick", "London", "United Kingdom", "AIRPORT"},
	{"NYCA", "27537542", "New York (any)", "New York", "United States", "CITY"},
	{"JFK", "95565058", "New York John F. Kennedy", "New York", "United States", "AIRPORT"},
	{"BKKT", "27536671", "Bangkok (any)", "Bangkok", "Thailand", "CITY"},
	{"BKK", "128668046", "Bangkok Suvarnabhumi", "Bangkok", "Thailand", "AIRPORT"},
	{"DMK", "128667143", "Bangkok Don Mueang", "Bangkok", "Thailand", "AIRPORT"},
	{"DXB", "95673506", "Dubai International", "Dubai", "United Arab Emirates", "AIRPORT"},
	{"HND", "128667157", "Tokyo Haneda", "Tokyo", "Japan", "AIRPORT"},
	{"FCO", "95565065", "Rome Fiumicino", "Rome", "Italy", "AIRPORT"},
	{"BCN", "95565085", "Barcelona El Prat", "Barcelona", "Spain", "AIRPORT"},
	{"MAD", "95565077", "Madrid Barajas", "Madrid", "Spain", "AIRPORT"},
	{"AMS", "95565044", "Amsterdam Schiphol", "Amsterdam", "Netherlands", "AIRPORT"},
	{"FRA", "95673374", "Frankfurt am Main", "Frankfurt", "Germany", "AIRPORT"},
	{"IST", "95673343", "Istanbul", "Istanbul", "Turkey", "AIRPORT"},
	{"DOH", "95673415", "Doha Hamad", "Doha", "Qatar", "AIRPORT"},
}

// hubs are the connection airports used for generated stops
var hubs = []string{"FRA", "AMS", "IST", "DXB", "DOH", "MAD", "CDG", "LHR"}

// matchPlaces returns every catalog place whose code, name or city contains query
func matchPlaces(query string) []mockPlace {
	q := core.Fold(query)
	if q == "" {
		return nil
	}
	var out []mockPlace
	for _, p := range mockPlaces {
		if core.Fold(p.SkyID) == q ||
			strings.Contains(core.Fold(p.Name), q) ||
			strings.Contains(core.Fold(p.City), q) {
			out = append(out, p)
		}
	}
	return out
}

// airportName resolves a code to its display name, falling back to the code itself
func airportName(code string) string {
	for _, p := range mockPlaces {
		if strings.EqualFold(p.SkyID, code) {
			return p.Name
		}
	}
	return code
}

// searchAirport payload layout

type airportPayload struct {
	Status bool            `json:"status"`
	Data   []airportRecord `json:"data"`
}

type airportRecord struct {
	SkyID        string              `json:"skyId"`
	EntityID     string              `json:"entityId"`
	Presentation airportPresentation `json:"presentation"`
	Navigation   airportNavigation   `json:"navigation"`
}

type airportPresentation struct {
	Title           string `json:"title"`
	SuggestionTitle string `json:"suggestionTitle"`
	Subtitle        string `json:"subtitle"`
}

type airportNavigation struct {
	EntityID             string               `json:"entityId"`
	EntityType           string               `json:"entityType"`
	LocalizedName        string               `json:"localizedName"`
	RelevantFlightParams relevantFlightParams `json:"relevantFlightParams"`
}

type relevantFlightParams struct {
	SkyID           string `json:"skyId"`
	EntityID        string `json:"entityId"`
	FlightPlaceType string `json:"flightPlaceType"`
	LocalizedName   string `json:"localizedName"`
}

func placesPayload(query string) airportPayload {
	matches := matchPlaces(query)
	payload := airportPayload{Status: true, Data: make([]airportRecord, 0, len(matches))}
	for _, p := range matches {
		payload.Data = append(payload.Data, airportRecord{
			SkyID:    p.SkyID,
			EntityID: p.EntityID,
			Presentation: airportPresentation{
				Title:           p.City,
				SuggestionTitle: p.Name + " (" + p.SkyID + ")",
				Subtitle:        p.Country,
			},
			Navigation: airportNavigation{
				EntityID:      p.EntityID,
				EntityType:    p.Type,
				LocalizedName: p.Name,
				RelevantFlightParams: relevantFlightParams{
					SkyID:           p.SkyID,
					EntityID:        p.EntityID,
					FlightPlaceType: p.Type,
					LocalizedName:   p.Name,
				},
			},
		})
	}
	return payload
}

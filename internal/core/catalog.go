package core

import "fmt"

type Airline struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// Label renders the airline the way carriers are matched in links, e.g. "Air France (AF)"
func (a Airline) Label() string { return fmt.Sprintf("%s (%s)", a.Name, a.Code) }

var airlines = []Airline{
	{"AF", "Air France", "France"},
	{"BA", "British Airways", "United Kingdom"},
	{"LH", "Lufthansa", "Germany"},
	{"FR", "Ryanair", "Ireland"},
	{"U2", "EasyJet", "United Kingdom"},
	{"KL", "KLM", "Netherlands"},
	{"IB", "Iberia", "Spain"},
	{"SN", "Brussels Airlines", "Belgium"},
	{"LX", "Swiss", "Switzerland"},
	{"AZ", "Alitalia", "Italy"},
	{"SK", "SAS", "Sweden"},
	{"OS", "Austrian Airlines", "Austria"},
	{"TK", "Turkish Airlines", "Turkey"},
	{"EK", "Emirates", "United Arab Emirates"},
	{"QR", "Qatar Airways", "Qatar"},
	{"EY", "Etihad Airways", "United Arab Emirates"},
	{"SQ", "Singapore Airlines", "Singapore"},
	{"CX", "Cathay Pacific", "Hong Kong"},
	{"JL", "Japan Airlines", "Japan"},
	{"NH", "ANA", "Japan"},
	{"OZ", "Asiana Airlines", "South Korea"},
	{"KE", "Korean Air", "South Korea"},
	{"CA", "Air China", "China"},
	{"MU", "China Eastern", "China"},
	{"CZ", "China Southern", "China"},
	{"TG", "Thai Airways", "Thailand"},
	{"SU", "Aeroflot", "Russia"},
	{"AA", "American Airlines", "United States"},
	{"UA", "United Airlines", "United States"},
	{"DL", "Delta Air Lines", "United States"},
	{"AC", "Air Canada", "Canada"},
	{"QF", "Qantas", "Australia"},
}

// Airlines returns a copy of the known airline table
func Airlines() []Airline {
	out := make([]Airline, len(airlines))
	copy(out, airlines)
	return out
}

type Region struct {
	Name  string   `json:"name"`
	Codes []string `json:"codes"`
}

// PopularRegions groups the popular airports shown by the airports command
func PopularRegions() []Region {
	return []Region{
		{Name: "Europe", Codes: []string{"CDG", "ORY", "LHR", "FCO", "BCN", "MAD"}},
		{Name: "North America", Codes: []string{"JFK"}},
		{Name: "Asia", Codes: []string{"BKK", "HND", "DXB"}},
	}
}

// PopularAirports lists the codes of every popular region in display order
func PopularAirports() []string {
	var codes []string
	for _, r := range PopularRegions() {
		codes = append(codes, r.Codes...)
	}
	return codes
}

package core

import (
	"sort"
	"strings"
)

// SortByPrice orders flights by ascending price in place, keeping offer order on ties
func SortByPrice(flights []Flight) {
	sort.SliceStable(flights, func(i, j int) bool {
		return flights[i].Price.Amount < flights[j].Price.Amount
	})
}

// Filter keeps flights within the price cap, whose every leg respects the stop cap,
// and that fly at least one segment with a selected airline.
// The price cap always applies, NoPriceCap keeps every price; MaxStops >= Unlimited disables the stop cap.
func Filter(flights []Flight, spec FilterSpec) []Flight {
	airlines := normalizeSet(spec.Airlines)
	out := make([]Flight, 0, len(flights))
	for _, f := range flights {
		if f.Price.Amount > spec.MaxPrice {
			continue
		}
		if !matchStops(f, spec.MaxStops) {
			continue
		}
		if !matchAirlines(f, airlines) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func matchStops(f Flight, maxStops int) bool {
	if maxStops >= Unlimited || maxStops < 0 {
		return true
	}
	for _, l := range f.Legs {
		if l.Stops > maxStops {
			return false
		}
	}
	return true
}

func matchAirlines(f Flight, airlines map[string]struct{}) bool {
	if len(airlines) == 0 {
		return true
	}
	for _, l := range f.Legs {
		for _, s := range l.Segments {
			if _, ok := airlines[Fold(s.Carrier)]; ok {
				return true
			}
		}
	}
	return false
}

// Sort returns a sorted copy of flights. Unknown keys keep the input order.
func Sort(flights []Flight, key SortKey) []Flight {
	sorted := make([]Flight, len(flights))
	copy(sorted, flights)

	var less func(a, b Flight) bool
	switch key {
	case SortPriceAsc, "":
		less = func(a, b Flight) bool { return a.Price.Amount < b.Price.Amount }
	case SortPriceDesc:
		less = func(a, b Flight) bool { return a.Price.Amount > b.Price.Amount }
	case SortDurationAsc:
		less = func(a, b Flight) bool { return a.TotalDuration() < b.TotalDuration() }
	case SortDepartureAsc:
		less = func(a, b Flight) bool { return a.Departure().Before(b.Departure()) }
	case SortDepartureDesc:
		less = func(a, b Flight) bool { return a.Departure().After(b.Departure()) }
	default:
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	return sorted
}

// ParseSortKey maps user input onto a SortKey
func ParseSortKey(s string) (SortKey, bool) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if k == "" {
		return SortPriceAsc, true
	}
	for _, known := range SortKeys() {
		if k == known {
			return k, true
		}
	}
	return "", false
}

// Paginate returns the 1-based page of flights and the total page count
func Paginate(flights []Flight, page, size int) ([]Flight, int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := (len(flights) + size - 1) / size
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(flights) {
		return nil, pages
	}
	end := start + size
	if end > len(flights) {
		end = len(flights)
	}
	return flights[start:end], pages
}

func normalizeSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		value := Fold(v)
		if value == "" {
			continue
		}
		set[value] = struct{}{}
	}
	return set
}

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkFlight(id string, price float64, stops int, carrier, departure string, duration int) Flight {
	segs := make([]Segment, stops+1)
	for i := range segs {
		segs[i] = Segment{Carrier: carrier, Departure: Endpoint{Code: "CDG", Time: departure}}
	}
	return Flight{
		ID:    id,
		Price: Price{Amount: price, Currency: "EUR"},
		Legs:  []Leg{{Duration: duration, Stops: stops, Segments: segs}},
	}
}

func ids(flights []Flight) []string {
	out := make([]string, 0, len(flights))
	for _, f := range flights {
		out = append(out, f.ID)
	}
	return out
}

func sample() []Flight {
	return []Flight{
		mkFlight("a", 300, 0, "Air France", "2025-03-15T10:00:00", 120),
		mkFlight("b", 150, 1, "KLM", "2025-03-15T08:30:00", 300),
		mkFlight("c", 220, 2, "Lufthansa", "2025-03-15T18:45:00", 240),
		mkFlight("d", 150, 0, "air france", "2025-03-15T06:00:00", 90),
	}
}

func TestFilter_MaxPriceHolds(t *testing.T) {
	for _, max := range []float64{100, 150, 220, 1000} {
		got := Filter(sample(), FilterSpec{MaxPrice: max, MaxStops: Unlimited})
		for _, f := range got {
			assert.LessOrEqual(t, f.Price.Amount, max)
		}
	}
	assert.Len(t, Filter(sample(), Unfiltered()), 4)
}

func TestFilter_ZeroAndNegativeCaps(t *testing.T) {
	flights := []Flight{
		mkFlight("free", 0, 0, "KLM", "2025-03-15T06:00:00", 90),
		mkFlight("paid", 120, 0, "KLM", "2025-03-15T08:00:00", 90),
	}
	assert.Equal(t, []string{"free"}, ids(Filter(flights, FilterSpec{MaxPrice: 0, MaxStops: Unlimited})))
	assert.Empty(t, Filter(flights, FilterSpec{MaxPrice: -5, MaxStops: Unlimited}))
	assert.Equal(t, []string{"free", "paid"}, ids(Filter(flights, Unfiltered())))
}

func TestFilter_Stops(t *testing.T) {
	assert.Equal(t, []string{"a", "d"}, ids(Filter(sample(), FilterSpec{MaxPrice: NoPriceCap, MaxStops: 0})))
	assert.Equal(t, []string{"a", "b", "d"}, ids(Filter(sample(), FilterSpec{MaxPrice: NoPriceCap, MaxStops: 1})))
	assert.Len(t, Filter(sample(), Unfiltered()), 4)
}

func TestFilter_AirlinesCaseInsensitive(t *testing.T) {
	got := Filter(sample(), FilterSpec{MaxPrice: NoPriceCap, MaxStops: Unlimited, Airlines: []string{"AIR FRANCE", " klm "}})
	assert.Equal(t, []string{"a", "b", "d"}, ids(got))

	assert.Empty(t, Filter(sample(), FilterSpec{MaxPrice: NoPriceCap, MaxStops: Unlimited, Airlines: []string{"Ryanair"}}))
}

func TestSort_Keys(t *testing.T) {
	cases := []struct {
		key  SortKey
		want []string
	}{
		{SortPriceAsc, []string{"b", "d", "c", "a"}},
		{SortPriceDesc, []string{"a", "c", "b", "d"}},
		{SortDurationAsc, []string{"d", "a", "c", "b"}},
		{SortDepartureAsc, []string{"d", "b", "a", "c"}},
		{SortDepartureDesc, []string{"c", "a", "b", "d"}},
		{"", []string{"b", "d", "c", "a"}},
		{"bogus", []string{"a", "b", "c", "d"}},
	}
	for _, tc := range cases {
		t.Run(string(tc.key), func(t *testing.T) {
			assert.Equal(t, tc.want, ids(Sort(sample(), tc.key)))
		})
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	in := sample()
	_ = Sort(in, SortPriceDesc)
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(in))
}

func TestSortByPrice_StableOnTies(t *testing.T) {
	flights := []Flight{
		mkFlight("first", 200, 0, "X", "", 0),
		mkFlight("second", 150, 0, "X", "", 0),
		mkFlight("third", 150, 0, "X", "", 0),
	}
	SortByPrice(flights)
	assert.Equal(t, []string{"second", "third", "first"}, ids(flights))
}

func TestParseSortKey(t *testing.T) {
	k, ok := ParseSortKey(" Price_Desc ")
	require.True(t, ok)
	assert.Equal(t, SortPriceDesc, k)

	k, ok = ParseSortKey("")
	require.True(t, ok)
	assert.Equal(t, SortPriceAsc, k)

	_, ok = ParseSortKey("cheapest")
	assert.False(t, ok)
}

func TestPaginate(t *testing.T) {
	flights := make([]Flight, 23)
	for i := range flights {
		flights[i] = mkFlight(string(rune('a'+i)), float64(i), 0, "X", "", 0)
	}

	page, pages := Paginate(flights, 1, 10)
	assert.Equal(t, 3, pages)
	assert.Len(t, page, 10)

	page, _ = Paginate(flights, 3, 10)
	assert.Len(t, page, 3)

	page, _ = Paginate(flights, 4, 10)
	assert.Empty(t, page)

	page, pages = Paginate(flights, 0, 0)
	assert.Equal(t, (len(flights)+DefaultPageSize-1)/DefaultPageSize, pages)
	assert.Equal(t, "a", page[0].ID)
}

func TestFilter_AirlinesIgnoreAccents(t *testing.T) {
	flights := []Flight{mkFlight("x", 100, 0, "Aéromexico", "2025-03-15T06:00:00", 90)}
	assert.Len(t, Filter(flights, FilterSpec{MaxPrice: NoPriceCap, MaxStops: Unlimited, Airlines: []string{"AEROMEXICO"}}), 1)
}

func TestFold(t *testing.T) {
	assert.Equal(t, "zurich", Fold(" Zürich "))
	assert.Equal(t, "sao paulo", Fold("São   Paulo"))
	assert.Equal(t, "", Fold("  "))
}

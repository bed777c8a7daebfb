package normalize

import (
	"github.com/h4ckm1n-dev/skyscanner-cli/internal/core"
	"github.com/h4ckm1n-dev/skyscanner-cli/internal/rawjson"
	"github.com/h4ckm1n-dev/skyscanner-cli/internal/shape"
)

// placeMapping lists the fallback chain of every Place field for one payload layout
type placeMapping struct {
	entityID []rawjson.Accessor
	skyID    []rawjson.Accessor
	name     []rawjson.Accessor
	city     []rawjson.Accessor
	country  []rawjson.Accessor
	iata     []rawjson.Accessor
}

func (m placeMapping) apply(o rawjson.Object) core.Place {
	return core.Place{
		EntityID:    rawjson.FirstString(o, "", m.entityID...),
		SkyID:       rawjson.FirstString(o, "", m.skyID...),
		Name:        rawjson.FirstString(o, "", m.name...),
		City:        rawjson.FirstString(o, "", m.city...),
		CountryName: rawjson.FirstString(o, "", m.country...),
		IATA:        rawjson.FirstString(o, "", m.iata...),
	}
}

var text = rawjson.Text

var (
	// searchAirport: data[] with presentation/navigation blocks
	airportMapping = placeMapping{
		entityID: []rawjson.Accessor{text("entityId"), text("navigation.entityId")},
		skyID:    []rawjson.Accessor{at("skyId"), at("navigation.relevantFlightParams.skyId")},
		name:     []rawjson.Accessor{at("navigation.localizedName"), at("presentation.title")},
		city:     []rawjson.Accessor{at("presentation.title"), at("navigation.localizedName")},
		country:  []rawjson.Accessor{at("presentation.subtitle")},
		iata:     []rawjson.Accessor{at("skyId"), at("navigation.relevantFlightParams.skyId")},
	}

	placesMapping = placeMapping{
		entityID: []rawjson.Accessor{text("entityId"), text("id"), text("placeId")},
		skyID:    []rawjson.Accessor{at("iataCode"), at("code")},
		name:     []rawjson.Accessor{at("name")},
		city:     []rawjson.Accessor{at("cityName"), at("city"), at("name")},
		country:  []rawjson.Accessor{at("countryName"), at("country.name")},
		iata:     []rawjson.Accessor{at("iataCode"), at("code")},
	}

	suggestMapping = placeMapping{
		entityID: []rawjson.Accessor{text("navigation.entityId")},
		skyID:    []rawjson.Accessor{at("navigation.relevantFlightParams.skyId")},
		name:     []rawjson.Accessor{at("navigation.localizedName"), at("presentation.title")},
		city:     []rawjson.Accessor{at("presentation.title"), at("navigation.localizedName")},
		country:  []rawjson.Accessor{at("presentation.subtitle")},
		iata:     []rawjson.Accessor{at("navigation.relevantFlightParams.skyId")},
	}

	legacyMapping = placeMapping{
		entityID: []rawjson.Accessor{text("PlaceId")},
		skyID:    []rawjson.Accessor{text("PlaceId")},
		name:     []rawjson.Accessor{at("PlaceName")},
		city:     []rawjson.Accessor{at("CityName"), at("PlaceName")},
		country:  []rawjson.Accessor{at("CountryName")},
		iata:     []rawjson.Accessor{at("IataCode"), text("PlaceId")},
	}

	genericMapping = placeMapping{
		entityID: []rawjson.Accessor{text("entityId"), text("id")},
		skyID:    []rawjson.Accessor{at("skyId"), text("id")},
		name:     []rawjson.Accessor{at("name"), at("title")},
		city:     []rawjson.Accessor{at("city.name"), at("title"), at("name")},
		country:  []rawjson.Accessor{at("country.name")},
		iata:     []rawjson.Accessor{at("iata"), text("id")},
	}

	rawArrayMapping = placeMapping{
		entityID: []rawjson.Accessor{text("entityId"), text("id")},
		skyID:    []rawjson.Accessor{at("skyId"), text("id")},
		name:     []rawjson.Accessor{at("name"), at("title")},
		city:     []rawjson.Accessor{at("city"), at("title"), at("name")},
		country:  []rawjson.Accessor{at("country.name")},
		iata:     []rawjson.Accessor{at("iata"), text("id")},
	}
)

// Places extracts autocomplete hits. Records without a routing code are dropped.
func Places(s shape.Shape) []core.Place {
	var (
		items   []any
		mapping func(o rawjson.Object) placeMapping
	)
	fixed := func(m placeMapping) func(rawjson.Object) placeMapping {
		return func(rawjson.Object) placeMapping { return m }
	}

	switch v := s.(type) {
	case shape.GenericDataArray:
		items, mapping = v.Items, dataItemMapping
	case shape.SkyScrapperPlaces:
		items, mapping = v.Places, fixed(placesMapping)
	case shape.AutoCompleteSuggest:
		items, mapping = v.Suggestions, fixed(suggestMapping)
	case shape.LegacyPlaces:
		items, mapping = v.Places, fixed(legacyMapping)
	case shape.RawArray:
		items, mapping = v.Items, fixed(rawArrayMapping)
	default:
		return nil
	}

	places := make([]core.Place, 0, len(items))
	for _, o := range rawjson.Objects(items) {
		place := mapping(o).apply(o)
		if place.Code() == "" {
			continue
		}
		places = append(places, place)
	}
	return places
}

// dataItemMapping tells searchAirport records from plain data[] records
func dataItemMapping(o rawjson.Object) placeMapping {
	_, nav := o["navigation"]
	_, pres := o["presentation"]
	if nav || pres {
		return airportMapping
	}
	return genericMapping
}

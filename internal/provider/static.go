package provider

import (
	"context"
	"encoding/json"
	"math/rand"
	"strings"
	"time"

	"github.com/jsantoso/fareview/internal/models"
	"github.com/jsantoso/fareview/internal/provider/data"
)

type staticOffers struct {
	Offers []RawOffer `json:"offers"`
}

type staticAirports struct {
	Airports []RawPlace `json:"airports"`
}

// StaticProvider serves a canned offer dataset. It stands in for the real
// upstream in local development and tests, with a small simulated latency.
type StaticProvider struct {
	offers   []RawOffer
	airports []models.Airport
}

func NewStaticProvider() (*StaticProvider, error) {
	var offers staticOffers
	if err := json.Unmarshal(data.Offers, &offers); err != nil {
		return nil, err
	}

	var airports staticAirports
	if err := json.Unmarshal(data.Airports, &airports); err != nil {
		return nil, err
	}

	p := &StaticProvider{offers: offers.Offers}
	for _, a := range airports.Airports {
		p.airports = append(p.airports, models.Airport{
			Code:     a.IATACode,
			Name:     a.Name,
			City:     a.CityName,
			TimeZone: a.TimeZone,
		})
	}
	return p, nil
}

func (p *StaticProvider) Name() string {
	return "static"
}

func (p *StaticProvider) Search(ctx context.Context, criteria models.SearchCriteria) ([]RawOffer, error) {
	delay := time.Duration(30+rand.Intn(50)) * time.Millisecond
	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	var results []RawOffer
	for _, offer := range p.offers {
		if !matchesCriteria(offer, criteria) {
			continue
		}
		results = append(results, offer)
	}
	return results, nil
}

func (p *StaticProvider) ListAirports(ctx context.Context) ([]models.Airport, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return p.airports, nil
}

func matchesCriteria(offer RawOffer, criteria models.SearchCriteria) bool {
	if len(offer.Slices) == 0 {
		return false
	}
	first := offer.Slices[0]
	if !strings.EqualFold(first.Origin.IATACode, criteria.Origin) ||
		!strings.EqualFold(first.Destination.IATACode, criteria.Destination) {
		return false
	}
	if !strings.EqualFold(offer.CabinClass, string(criteria.CabinClass)) {
		return false
	}
	if len(first.Segments) == 0 {
		return false
	}
	return strings.HasPrefix(first.Segments[0].DepartingAt, criteria.DepartureDate)
}

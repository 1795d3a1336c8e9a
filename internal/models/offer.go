package models

import "time"

type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// PriceBreakdown carries one currency: base and tax share the total's.
type PriceBreakdown struct {
	Total Money `json:"total"`
	Base  Money `json:"base"`
	Tax   Money `json:"tax"`
}

type Airport struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	City     string `json:"city"`
	TimeZone string `json:"time_zone"`
}

type Carrier struct {
	Name    string `json:"name"`
	Code    string `json:"code"`
	LogoURL string `json:"logo_url,omitempty"`
}

type Segment struct {
	Origin       Airport   `json:"origin"`
	Destination  Airport   `json:"destination"`
	Carrier      Carrier   `json:"carrier"`
	FlightNumber string    `json:"flight_number"`
	DepartsAt    time.Time `json:"departs_at"`
	ArrivesAt    time.Time `json:"arrives_at"`
}

func (s Segment) DurationMinutes() int {
	return int(s.ArrivesAt.Sub(s.DepartsAt) / time.Minute)
}

// Slice is one directional leg of the journey, outbound or return.
type Slice struct {
	Segments []Segment `json:"segments"`
}

func (s Slice) DurationMinutes() int {
	if len(s.Segments) == 0 {
		return 0
	}
	first := s.Segments[0]
	last := s.Segments[len(s.Segments)-1]
	return int(last.ArrivesAt.Sub(first.DepartsAt) / time.Minute)
}

// Offer is one priced itinerary option. It is created by the normalizer and
// never mutated afterwards; a nil EmissionsKg means the provider reported no
// emissions data, which is distinct from a reported zero.
type Offer struct {
	ID          string         `json:"id"`
	Slices      []Slice        `json:"slices"`
	CabinClass  CabinClass     `json:"cabin_class"`
	Price       PriceBreakdown `json:"price"`
	EmissionsKg *float64       `json:"emissions_kg,omitempty"`
	ChangeFee   *Money         `json:"change_fee,omitempty"`
}

package provider

// Raw wire types for the upstream offer schema. Field names are the
// provider's contract; amounts arrive as decimal strings and are parsed by
// the normalizer, never here.

type RawOffer struct {
	ID               string         `json:"id"`
	TotalAmount      string         `json:"total_amount"`
	TotalCurrency    string         `json:"total_currency"`
	BaseAmount       string         `json:"base_amount"`
	TaxAmount        string         `json:"tax_amount"`
	TotalEmissionsKg string         `json:"total_emissions_kg"`
	CabinClass       string         `json:"cabin_class"`
	Slices           []RawSlice     `json:"slices"`
	Conditions       *RawConditions `json:"conditions,omitempty"`
}

type RawSlice struct {
	ID          string       `json:"id"`
	Origin      RawPlace     `json:"origin"`
	Destination RawPlace     `json:"destination"`
	Segments    []RawSegment `json:"segments"`
}

type RawSegment struct {
	ID                           string     `json:"id"`
	Origin                       RawPlace   `json:"origin"`
	Destination                  RawPlace   `json:"destination"`
	DepartingAt                  string     `json:"departing_at"`
	ArrivingAt                   string     `json:"arriving_at"`
	MarketingCarrier             RawCarrier `json:"marketing_carrier"`
	MarketingCarrierFlightNumber string     `json:"marketing_carrier_flight_number"`
}

type RawPlace struct {
	IATACode string `json:"iata_code"`
	Name     string `json:"name"`
	CityName string `json:"city_name"`
	TimeZone string `json:"time_zone"`
}

type RawCarrier struct {
	Name          string `json:"name"`
	IATACode      string `json:"iata_code"`
	LogoSymbolURL string `json:"logo_symbol_url"`
}

type RawConditions struct {
	ChangeBeforeDeparture *RawPenalty `json:"change_before_departure,omitempty"`
}

type RawPenalty struct {
	PenaltyAmount   string `json:"penalty_amount"`
	PenaltyCurrency string `json:"penalty_currency"`
}

// Package view builds the render-ready models the page consumes. All
// currency, duration and timestamp strings are produced here through
// pkg/format, so the fallback-currency policy lives in one place.
package view

import (
	"github.com/jsantoso/fareview/internal/models"
	"github.com/jsantoso/fareview/internal/session"
	"github.com/jsantoso/fareview/pkg/format"
)

type SessionView struct {
	SessionID string                 `json:"session_id"`
	State     string                 `json:"state"`
	Criteria  *models.SearchCriteria `json:"criteria,omitempty"`
	Error     string                 `json:"error,omitempty"`
	Offers    []OfferView            `json:"offers"`
	Count     int                    `json:"count"`
	Selection string                 `json:"selection,omitempty"`
}

type OfferView struct {
	ID           string      `json:"id"`
	CabinClass   string      `json:"cabin_class"`
	Total        string      `json:"total"`
	BaseFare     string      `json:"base_fare"`
	TaxesAndFees string      `json:"taxes_and_fees"`
	ChangeFee    string      `json:"change_fee,omitempty"`
	Emissions    string      `json:"emissions,omitempty"`
	HasEmissions bool        `json:"has_emissions"`
	Slices       []SliceView `json:"slices"`
	Expanded     bool        `json:"expanded"`
}

type SliceView struct {
	Duration string        `json:"duration"`
	Segments []SegmentView `json:"segments"`
}

type SegmentView struct {
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	Carrier        string `json:"carrier"`
	CarrierLogoURL string `json:"carrier_logo_url,omitempty"`
	FlightNumber   string `json:"flight_number"`
	DepartsAt      string `json:"departs_at"`
	ArrivesAt      string `json:"arrives_at"`
	Duration       string `json:"duration"`
}

type Builder struct {
	fallbackCurrency string
}

func NewBuilder(fallbackCurrency string) *Builder {
	return &Builder{fallbackCurrency: fallbackCurrency}
}

func (b *Builder) Session(sessionID string, snap session.Snapshot) SessionView {
	sv := SessionView{
		SessionID: sessionID,
		State:     string(snap.Phase),
		Error:     snap.Failure,
		Offers:    []OfferView{},
		Selection: snap.Selection,
	}
	if snap.Phase != session.PhaseIdle {
		criteria := snap.Criteria
		sv.Criteria = &criteria
	}
	for _, offer := range snap.Offers {
		sv.Offers = append(sv.Offers, b.Offer(offer, offer.ID == snap.Selection))
	}
	sv.Count = len(sv.Offers)
	return sv
}

func (b *Builder) Offer(offer models.Offer, expanded bool) OfferView {
	ov := OfferView{
		ID:           offer.ID,
		CabinClass:   offer.CabinClass.Label(),
		Total:        b.money(offer.Price.Total),
		BaseFare:     b.money(offer.Price.Base),
		TaxesAndFees: b.money(offer.Price.Tax),
		Expanded:     expanded,
	}
	if offer.ChangeFee != nil {
		ov.ChangeFee = b.money(*offer.ChangeFee)
	}
	if offer.EmissionsKg != nil {
		ov.HasEmissions = true
		ov.Emissions = format.Emissions(*offer.EmissionsKg)
	}
	for _, slice := range offer.Slices {
		ov.Slices = append(ov.Slices, b.slice(slice))
	}
	return ov
}

func (b *Builder) slice(slice models.Slice) SliceView {
	sv := SliceView{
		Duration: format.Duration(slice.DurationMinutes()),
	}
	for _, seg := range slice.Segments {
		sv.Segments = append(sv.Segments, SegmentView{
			Origin:         place(seg.Origin),
			Destination:    place(seg.Destination),
			Carrier:        seg.Carrier.Name,
			CarrierLogoURL: seg.Carrier.LogoURL,
			FlightNumber:   seg.FlightNumber,
			DepartsAt:      format.DateTime(seg.DepartsAt),
			ArrivesAt:      format.DateTime(seg.ArrivesAt),
			Duration:       format.Duration(seg.DurationMinutes()),
		})
	}
	return sv
}

func (b *Builder) money(m models.Money) string {
	return format.MoneyOrFallback(m.Amount, m.Currency, b.fallbackCurrency)
}

func place(a models.Airport) string {
	if a.City == "" {
		return a.Code
	}
	return a.City + " (" + a.Code + ")"
}

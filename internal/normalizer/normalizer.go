// Package normalizer maps raw upstream offers into display-ready Offer
// values. One malformed offer never fails a batch; it is logged and skipped.
package normalizer

import (
	"fmt"
	"log"
	"strconv"

	"github.com/jsantoso/fareview/internal/models"
	"github.com/jsantoso/fareview/internal/provider"
	"github.com/jsantoso/fareview/internal/timeutil"
)

type MalformedOfferError struct {
	OfferID string
	Reason  string
}

func (e *MalformedOfferError) Error() string {
	id := e.OfferID
	if id == "" {
		id = "<no id>"
	}
	return fmt.Sprintf("malformed offer %s: %s", id, e.Reason)
}

func malformed(id, reason string) *MalformedOfferError {
	return &MalformedOfferError{OfferID: id, Reason: reason}
}

// Normalize converts one raw offer. It is pure: no shared state, and the
// returned Offer owns all of its slices.
func Normalize(raw provider.RawOffer) (models.Offer, error) {
	if raw.ID == "" {
		return models.Offer{}, malformed(raw.ID, "missing id")
	}
	if len(raw.Slices) == 0 {
		return models.Offer{}, malformed(raw.ID, "no slices")
	}

	price, err := normalizePrice(raw)
	if err != nil {
		return models.Offer{}, err
	}

	slices := make([]models.Slice, 0, len(raw.Slices))
	for i, rawSlice := range raw.Slices {
		slice, err := normalizeSlice(raw.ID, i, rawSlice)
		if err != nil {
			return models.Offer{}, err
		}
		slices = append(slices, slice)
	}

	offer := models.Offer{
		ID:          raw.ID,
		Slices:      slices,
		CabinClass:  models.CabinClass(raw.CabinClass),
		Price:       price,
		EmissionsKg: parseEmissions(raw.TotalEmissionsKg),
		ChangeFee:   parseChangeFee(raw.Conditions),
	}
	return offer, nil
}

// NormalizeAll keeps the upstream ordering and drops only the offers that
// fail to normalize. An all-malformed batch yields an empty result, which is
// a valid "zero itineraries" outcome rather than an error.
func NormalizeAll(raws []provider.RawOffer) []models.Offer {
	offers := make([]models.Offer, 0, len(raws))
	for _, raw := range raws {
		offer, err := Normalize(raw)
		if err != nil {
			log.Printf("Skipping offer: %v", err)
			continue
		}
		offers = append(offers, offer)
	}
	return offers
}

func normalizePrice(raw provider.RawOffer) (models.PriceBreakdown, error) {
	if raw.TotalAmount == "" {
		return models.PriceBreakdown{}, malformed(raw.ID, "missing total_amount")
	}
	if raw.TotalCurrency == "" {
		return models.PriceBreakdown{}, malformed(raw.ID, "missing total_currency")
	}

	total, err := strconv.ParseFloat(raw.TotalAmount, 64)
	if err != nil {
		return models.PriceBreakdown{}, malformed(raw.ID, "total_amount is not a decimal")
	}
	if total < 0 {
		return models.PriceBreakdown{}, malformed(raw.ID, "total_amount is negative")
	}

	base, err := parseOptionalAmount(raw.BaseAmount)
	if err != nil {
		return models.PriceBreakdown{}, malformed(raw.ID, "base_amount is not a decimal")
	}

	// Tax defaults to zero when the upstream omits it.
	tax, err := parseOptionalAmount(raw.TaxAmount)
	if err != nil {
		return models.PriceBreakdown{}, malformed(raw.ID, "tax_amount is not a decimal")
	}

	// Base and tax share the total's currency; the upstream never supplies
	// an independent one per component.
	currency := raw.TotalCurrency
	return models.PriceBreakdown{
		Total: models.Money{Amount: total, Currency: currency},
		Base:  models.Money{Amount: base, Currency: currency},
		Tax:   models.Money{Amount: tax, Currency: currency},
	}, nil
}

func parseOptionalAmount(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("negative amount")
	}
	return v, nil
}

func normalizeSlice(offerID string, index int, raw provider.RawSlice) (models.Slice, error) {
	if len(raw.Segments) == 0 {
		return models.Slice{}, malformed(offerID, fmt.Sprintf("slice %d has no segments", index))
	}

	segments := make([]models.Segment, 0, len(raw.Segments))
	for i, rawSeg := range raw.Segments {
		seg, err := normalizeSegment(offerID, rawSeg)
		if err != nil {
			return models.Slice{}, err
		}
		if i > 0 && segments[i-1].Destination.Code != seg.Origin.Code {
			return models.Slice{}, malformed(offerID, fmt.Sprintf("slice %d segments do not connect", index))
		}
		segments = append(segments, seg)
	}

	return models.Slice{Segments: segments}, nil
}

func normalizeSegment(offerID string, raw provider.RawSegment) (models.Segment, error) {
	departs, err := timeutil.ParseInZone(raw.DepartingAt, raw.Origin.TimeZone)
	if err != nil {
		return models.Segment{}, malformed(offerID, "unparseable departing_at")
	}
	arrives, err := timeutil.ParseInZone(raw.ArrivingAt, raw.Destination.TimeZone)
	if err != nil {
		return models.Segment{}, malformed(offerID, "unparseable arriving_at")
	}
	if arrives.Before(departs) {
		return models.Segment{}, malformed(offerID, "segment arrives before it departs")
	}

	return models.Segment{
		Origin:       normalizePlace(raw.Origin),
		Destination:  normalizePlace(raw.Destination),
		Carrier: models.Carrier{
			Name:    raw.MarketingCarrier.Name,
			Code:    raw.MarketingCarrier.IATACode,
			LogoURL: raw.MarketingCarrier.LogoSymbolURL,
		},
		FlightNumber: raw.MarketingCarrier.IATACode + raw.MarketingCarrierFlightNumber,
		DepartsAt:    departs,
		ArrivesAt:    arrives,
	}, nil
}

func normalizePlace(raw provider.RawPlace) models.Airport {
	return models.Airport{
		Code:     raw.IATACode,
		Name:     raw.Name,
		City:     raw.CityName,
		TimeZone: raw.TimeZone,
	}
}

// parseEmissions keeps "no data" distinct from "zero kilograms": absent or
// unparseable values yield nil, a literal "0" yields a present zero.
func parseEmissions(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

func parseChangeFee(conditions *provider.RawConditions) *models.Money {
	if conditions == nil || conditions.ChangeBeforeDeparture == nil {
		return nil
	}
	penalty := conditions.ChangeBeforeDeparture
	if penalty.PenaltyAmount == "" || penalty.PenaltyCurrency == "" {
		return nil
	}
	amount, err := strconv.ParseFloat(penalty.PenaltyAmount, 64)
	if err != nil || amount < 0 {
		return nil
	}
	return &models.Money{Amount: amount, Currency: penalty.PenaltyCurrency}
}

package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsantoso/fareview/internal/models"
	"github.com/jsantoso/fareview/internal/session"
)

func sampleOffer(id string) models.Offer {
	london := time.FixedZone("BST", 1*60*60)
	newYork := time.FixedZone("EDT", -4*60*60)

	return models.Offer{
		ID:         id,
		CabinClass: models.CabinEconomy,
		Price: models.PriceBreakdown{
			Total: models.Money{Amount: 412.60, Currency: "GBP"},
			Base:  models.Money{Amount: 336.20, Currency: "GBP"},
			Tax:   models.Money{Amount: 76.40, Currency: "GBP"},
		},
		Slices: []models.Slice{
			{
				Segments: []models.Segment{
					{
						Origin:       models.Airport{Code: "LHR", City: "London", TimeZone: "Europe/London"},
						Destination:  models.Airport{Code: "JFK", City: "New York", TimeZone: "America/New_York"},
						Carrier:      models.Carrier{Name: "British Airways", Code: "BA"},
						FlightNumber: "BA117",
						DepartsAt:    time.Date(2025, time.June, 1, 9, 25, 0, 0, london),
						ArrivesAt:    time.Date(2025, time.June, 1, 12, 20, 0, 0, newYork),
					},
				},
			},
		},
	}
}

func TestOfferView(t *testing.T) {
	b := NewBuilder("GBP")

	ov := b.Offer(sampleOffer("off_1"), false)

	assert.Equal(t, "off_1", ov.ID)
	assert.Equal(t, "Economy", ov.CabinClass)
	assert.Contains(t, ov.Total, "412.60")
	assert.Contains(t, ov.BaseFare, "336.20")
	assert.Contains(t, ov.TaxesAndFees, "76.40")
	assert.False(t, ov.Expanded)
	assert.Empty(t, ov.ChangeFee)

	require.Len(t, ov.Slices, 1)
	require.Len(t, ov.Slices[0].Segments, 1)
	seg := ov.Slices[0].Segments[0]
	assert.Equal(t, "London (LHR)", seg.Origin)
	assert.Equal(t, "New York (JFK)", seg.Destination)
	assert.Equal(t, "Sun, 01 Jun, 09:25", seg.DepartsAt)
	assert.Equal(t, "Sun, 01 Jun, 12:20", seg.ArrivesAt)
	// 09:25 BST to 12:20 EDT is 7h55m in the air.
	assert.Equal(t, "7h 55m", seg.Duration)
}

func TestOfferViewEmissionsUnknownVsZero(t *testing.T) {
	b := NewBuilder("GBP")

	unknown := b.Offer(sampleOffer("off_1"), false)
	assert.False(t, unknown.HasEmissions)
	assert.Empty(t, unknown.Emissions)

	zero := sampleOffer("off_2")
	z := 0.0
	zero.EmissionsKg = &z
	zv := b.Offer(zero, false)
	assert.True(t, zv.HasEmissions)
	assert.Equal(t, "0 kg", zv.Emissions)

	assert.NotEqual(t, unknown.Emissions, zv.Emissions, "unknown and zero emissions must render differently")
}

func TestOfferViewCurrencyFallback(t *testing.T) {
	b := NewBuilder("GBP")

	offer := sampleOffer("off_1")
	offer.Price.Total.Currency = "???"
	ov := b.Offer(offer, false)

	assert.Contains(t, ov.Total, "£", "unformattable currency falls back to the default")
	assert.Contains(t, ov.Total, "412.60")
}

func TestOfferViewChangeFee(t *testing.T) {
	b := NewBuilder("GBP")

	offer := sampleOffer("off_1")
	offer.ChangeFee = &models.Money{Amount: 125, Currency: "GBP"}
	ov := b.Offer(offer, false)

	assert.Contains(t, ov.ChangeFee, "125.00")
}

func TestSessionViewMarksSelection(t *testing.T) {
	b := NewBuilder("GBP")

	s := session.New("s1")
	criteria := models.SearchCriteria{
		Origin:        "LHR",
		Destination:   "JFK",
		DepartureDate: "2025-06-01",
		Passengers:    1,
		CabinClass:    models.CabinEconomy,
	}
	seq, err := s.Submit(criteria)
	require.NoError(t, err)
	require.True(t, s.Complete(seq, []models.Offer{sampleOffer("off_1"), sampleOffer("off_2")}))
	require.NoError(t, s.ToggleSelection("off_2"))

	sv := b.Session("s1", s.Snapshot())

	assert.Equal(t, "s1", sv.SessionID)
	assert.Equal(t, "success", sv.State)
	assert.Equal(t, 2, sv.Count)
	assert.Equal(t, "off_2", sv.Selection)
	require.Len(t, sv.Offers, 2)
	assert.False(t, sv.Offers[0].Expanded)
	assert.True(t, sv.Offers[1].Expanded)
}

func TestSessionViewIdle(t *testing.T) {
	b := NewBuilder("GBP")
	sv := b.Session("s1", session.New("s1").Snapshot())

	assert.Equal(t, "idle", sv.State)
	assert.Nil(t, sv.Criteria)
	assert.NotNil(t, sv.Offers)
	assert.Zero(t, sv.Count)
}

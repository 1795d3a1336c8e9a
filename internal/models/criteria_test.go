package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validCriteria() SearchCriteria {
	return SearchCriteria{
		Origin:        "LHR",
		Destination:   "JFK",
		DepartureDate: "2025-06-01",
		Passengers:    2,
		CabinClass:    CabinEconomy,
	}
}

func TestValidateOK(t *testing.T) {
	c := validCriteria()
	assert.NoError(t, c.Validate())
}

func TestValidateRoundTrip(t *testing.T) {
	c := validCriteria()
	ret := "2025-06-08"
	c.ReturnDate = &ret
	assert.NoError(t, c.Validate())
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SearchCriteria)
		want   ValidationError
	}{
		{"missing origin", func(c *SearchCriteria) { c.Origin = "" }, ErrMissingOrigin},
		{"short origin", func(c *SearchCriteria) { c.Origin = "LH" }, ErrInvalidOrigin},
		{"lowercase origin", func(c *SearchCriteria) { c.Origin = "lhr" }, ErrInvalidOrigin},
		{"missing destination", func(c *SearchCriteria) { c.Destination = "" }, ErrMissingDestination},
		{"numeric destination", func(c *SearchCriteria) { c.Destination = "J1K" }, ErrInvalidDestination},
		{"same airports", func(c *SearchCriteria) { c.Destination = "LHR" }, ErrSameOriginDestination},
		{"missing departure date", func(c *SearchCriteria) { c.DepartureDate = "" }, ErrMissingDepartureDate},
		{"bad departure date", func(c *SearchCriteria) { c.DepartureDate = "01/06/2025" }, ErrInvalidDepartureDate},
		{"bad return date", func(c *SearchCriteria) { r := "soon"; c.ReturnDate = &r }, ErrInvalidReturnDate},
		{"return before departure", func(c *SearchCriteria) { r := "2025-05-30"; c.ReturnDate = &r }, ErrReturnBeforeDeparture},
		{"zero passengers", func(c *SearchCriteria) { c.Passengers = 0 }, ErrInvalidPassengers},
		{"too many passengers", func(c *SearchCriteria) { c.Passengers = 10 }, ErrInvalidPassengers},
		{"bad cabin", func(c *SearchCriteria) { c.CabinClass = "steerage" }, ErrInvalidCabinClass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCriteria()
			tt.mutate(&c)
			assert.ErrorIs(t, c.Validate(), tt.want)
		})
	}
}

func TestNormalize(t *testing.T) {
	empty := ""
	c := SearchCriteria{
		Origin:      " lhr ",
		Destination: "jfk",
		ReturnDate:  &empty,
	}
	c.Normalize()

	assert.Equal(t, "LHR", c.Origin)
	assert.Equal(t, "JFK", c.Destination)
	assert.Equal(t, CabinEconomy, c.CabinClass)
	assert.Nil(t, c.ReturnDate)
}

func TestCabinClassLabel(t *testing.T) {
	assert.Equal(t, "Economy", CabinEconomy.Label())
	assert.Equal(t, "Premium Economy", CabinPremiumEconomy.Label())
	assert.Equal(t, "Business", CabinBusiness.Label())
	assert.Equal(t, "First Class", CabinFirst.Label())
	assert.Equal(t, "glider", CabinClass("glider").Label())
}

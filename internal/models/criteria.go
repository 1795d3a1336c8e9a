package models

import (
	"strings"
	"time"
)

type CabinClass string

const (
	CabinEconomy        CabinClass = "economy"
	CabinPremiumEconomy CabinClass = "premium_economy"
	CabinBusiness       CabinClass = "business"
	CabinFirst          CabinClass = "first"
)

func (c CabinClass) Valid() bool {
	switch c {
	case CabinEconomy, CabinPremiumEconomy, CabinBusiness, CabinFirst:
		return true
	}
	return false
}

func (c CabinClass) Label() string {
	switch c {
	case CabinEconomy:
		return "Economy"
	case CabinPremiumEconomy:
		return "Premium Economy"
	case CabinBusiness:
		return "Business"
	case CabinFirst:
		return "First Class"
	}
	return string(c)
}

const dateLayout = "2006-01-02"

type SearchCriteria struct {
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	DepartureDate string     `json:"departure_date"`
	ReturnDate    *string    `json:"return_date,omitempty"`
	Passengers    int        `json:"passengers"`
	CabinClass    CabinClass `json:"cabin_class"`
}

// Normalize upper-cases airport codes and fills defaults the form layer may
// omit. It never rejects; Validate does that.
func (c *SearchCriteria) Normalize() {
	c.Origin = strings.ToUpper(strings.TrimSpace(c.Origin))
	c.Destination = strings.ToUpper(strings.TrimSpace(c.Destination))
	if c.CabinClass == "" {
		c.CabinClass = CabinEconomy
	}
	if c.ReturnDate != nil && *c.ReturnDate == "" {
		c.ReturnDate = nil
	}
}

func (c *SearchCriteria) Validate() error {
	if c.Origin == "" {
		return ErrMissingOrigin
	}
	if !isIATACode(c.Origin) {
		return ErrInvalidOrigin
	}
	if c.Destination == "" {
		return ErrMissingDestination
	}
	if !isIATACode(c.Destination) {
		return ErrInvalidDestination
	}
	if c.Origin == c.Destination {
		return ErrSameOriginDestination
	}
	if c.DepartureDate == "" {
		return ErrMissingDepartureDate
	}
	depart, err := time.Parse(dateLayout, c.DepartureDate)
	if err != nil {
		return ErrInvalidDepartureDate
	}
	if c.ReturnDate != nil {
		ret, err := time.Parse(dateLayout, *c.ReturnDate)
		if err != nil {
			return ErrInvalidReturnDate
		}
		if ret.Before(depart) {
			return ErrReturnBeforeDeparture
		}
	}
	if c.Passengers < 1 || c.Passengers > 9 {
		return ErrInvalidPassengers
	}
	if !c.CabinClass.Valid() {
		return ErrInvalidCabinClass
	}
	return nil
}

func isIATACode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingOrigin         ValidationError = "origin is required"
	ErrInvalidOrigin         ValidationError = "origin must be a 3-letter airport code"
	ErrMissingDestination    ValidationError = "destination is required"
	ErrInvalidDestination    ValidationError = "destination must be a 3-letter airport code"
	ErrSameOriginDestination ValidationError = "origin and destination must differ"
	ErrMissingDepartureDate  ValidationError = "departure_date is required"
	ErrInvalidDepartureDate  ValidationError = "departure_date must be YYYY-MM-DD"
	ErrInvalidReturnDate     ValidationError = "return_date must be YYYY-MM-DD"
	ErrReturnBeforeDeparture ValidationError = "return_date must not be before departure_date"
	ErrInvalidPassengers     ValidationError = "passengers must be between 1 and 9"
	ErrInvalidCabinClass     ValidationError = "cabin_class is not recognized"
)

package provider

import (
	"context"

	"github.com/jsantoso/fareview/internal/models"
)

type Provider interface {
	Name() string
	Search(ctx context.Context, criteria models.SearchCriteria) ([]RawOffer, error)
	ListAirports(ctx context.Context) ([]models.Airport, error)
}

type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Err:      err,
	}
}

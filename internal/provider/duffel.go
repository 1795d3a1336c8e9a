package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jsantoso/fareview/internal/models"
)

const apiVersion = "v2"

type DuffelConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// DuffelProvider talks to a Duffel-compatible offer API.
type DuffelProvider struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewDuffelProvider(cfg DuffelConfig) *DuffelProvider {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &DuffelProvider{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *DuffelProvider) Name() string {
	return "duffel"
}

type offerRequestSlice struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
}

type offerRequestPassenger struct {
	Type string `json:"type"`
}

type offerRequestPayload struct {
	Data struct {
		Slices     []offerRequestSlice     `json:"slices"`
		Passengers []offerRequestPassenger `json:"passengers"`
		CabinClass string                  `json:"cabin_class"`
	} `json:"data"`
}

type offerRequestResponse struct {
	Data struct {
		Offers []RawOffer `json:"offers"`
	} `json:"data"`
}

func (p *DuffelProvider) Search(ctx context.Context, criteria models.SearchCriteria) ([]RawOffer, error) {
	var payload offerRequestPayload
	payload.Data.Slices = []offerRequestSlice{{
		Origin:        criteria.Origin,
		Destination:   criteria.Destination,
		DepartureDate: criteria.DepartureDate,
	}}
	if criteria.ReturnDate != nil {
		payload.Data.Slices = append(payload.Data.Slices, offerRequestSlice{
			Origin:        criteria.Destination,
			Destination:   criteria.Origin,
			DepartureDate: *criteria.ReturnDate,
		})
	}
	for i := 0; i < criteria.Passengers; i++ {
		payload.Data.Passengers = append(payload.Data.Passengers, offerRequestPassenger{Type: "adult"})
	}
	payload.Data.CabinClass = string(criteria.CabinClass)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, NewProviderError(p.Name(), err)
	}

	url := p.baseURL + "/air/offer_requests?return_offers=true"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, NewProviderError(p.Name(), err)
	}
	p.setHeaders(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, NewProviderError(p.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, NewProviderError(p.Name(), fmt.Errorf("offer request failed with status %d", resp.StatusCode))
	}

	var decoded offerRequestResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, NewProviderError(p.Name(), err)
	}

	return decoded.Data.Offers, nil
}

type airportListResponse struct {
	Data []RawPlace `json:"data"`
}

func (p *DuffelProvider) ListAirports(ctx context.Context) ([]models.Airport, error) {
	url := p.baseURL + "/air/airports?limit=200"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewProviderError(p.Name(), err)
	}
	p.setHeaders(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, NewProviderError(p.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, NewProviderError(p.Name(), fmt.Errorf("airport list failed with status %d", resp.StatusCode))
	}

	var decoded airportListResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, NewProviderError(p.Name(), err)
	}

	airports := make([]models.Airport, 0, len(decoded.Data))
	for _, a := range decoded.Data {
		airports = append(airports, models.Airport{
			Code:     a.IATACode,
			Name:     a.Name,
			City:     a.CityName,
			TimeZone: a.TimeZone,
		})
	}
	return airports, nil
}

func (p *DuffelProvider) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Duffel-Version", apiVersion)
	req.Header.Set("Authorization", "Bearer "+p.token)
}

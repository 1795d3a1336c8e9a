package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsantoso/fareview/internal/cache"
	"github.com/jsantoso/fareview/internal/models"
	"github.com/jsantoso/fareview/internal/provider"
	"github.com/jsantoso/fareview/internal/session"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Name() string {
	return "mock"
}

func (m *MockProvider) Search(ctx context.Context, criteria models.SearchCriteria) ([]provider.RawOffer, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]provider.RawOffer), args.Error(1)
}

func (m *MockProvider) ListAirports(ctx context.Context) ([]models.Airport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Airport), args.Error(1)
}

func testCriteria() models.SearchCriteria {
	return models.SearchCriteria{
		Origin:        "LHR",
		Destination:   "JFK",
		DepartureDate: "2025-06-01",
		Passengers:    2,
		CabinClass:    models.CabinEconomy,
	}
}

func rawOffer(id string) provider.RawOffer {
	return provider.RawOffer{
		ID:            id,
		TotalAmount:   "354.10",
		TotalCurrency: "GBP",
		BaseAmount:    "289.90",
		TaxAmount:     "64.20",
		CabinClass:    "economy",
		Slices: []provider.RawSlice{
			{
				Segments: []provider.RawSegment{
					{
						Origin:      provider.RawPlace{IATACode: "LHR", CityName: "London", TimeZone: "Europe/London"},
						Destination: provider.RawPlace{IATACode: "JFK", CityName: "New York", TimeZone: "America/New_York"},
						DepartingAt: "2025-06-01T09:25:00",
						ArrivingAt:  "2025-06-01T12:20:00",
						MarketingCarrier: provider.RawCarrier{
							Name:     "British Airways",
							IATACode: "BA",
						},
						MarketingCarrierFlightNumber: "117",
					},
				},
			},
		},
	}
}

func newRunner(p provider.Provider) *Runner {
	return NewRunner(p, cache.NewNoOpCache(), Config{
		Timeout:    time.Second,
		MaxRetries: 0,
	})
}

// The full submit-to-success path: three raw offers come back, one is
// missing its total amount, and the session ends up with exactly the two
// survivors in their original relative order.
func TestRunSubmitToSuccess(t *testing.T) {
	criteria := testCriteria()

	broken := rawOffer("off_2")
	broken.TotalAmount = ""

	mockProvider := &MockProvider{}
	mockProvider.On("Search", mock.Anything, criteria).
		Return([]provider.RawOffer{rawOffer("off_1"), broken, rawOffer("off_3")}, nil).Once()

	sess := session.New("s1")
	seq, err := sess.Submit(criteria)
	require.NoError(t, err)
	assert.Equal(t, session.PhaseSearching, sess.Snapshot().Phase)

	newRunner(mockProvider).Run(context.Background(), sess, seq, criteria)

	snap := sess.Snapshot()
	assert.Equal(t, session.PhaseSuccess, snap.Phase)
	require.Len(t, snap.Offers, 2)
	assert.Equal(t, "off_1", snap.Offers[0].ID)
	assert.Equal(t, "off_3", snap.Offers[1].ID)

	mockProvider.AssertExpectations(t)
}

func TestRunProviderFailure(t *testing.T) {
	criteria := testCriteria()

	mockProvider := &MockProvider{}
	mockProvider.On("Search", mock.Anything, criteria).
		Return(nil, errors.New("upstream unavailable")).Once()

	sess := session.New("s1")
	seq, err := sess.Submit(criteria)
	require.NoError(t, err)

	newRunner(mockProvider).Run(context.Background(), sess, seq, criteria)

	snap := sess.Snapshot()
	assert.Equal(t, session.PhaseFailed, snap.Phase)
	assert.Equal(t, "upstream unavailable", snap.Failure)
}

func TestRunRetriesBeforeFailing(t *testing.T) {
	criteria := testCriteria()

	mockProvider := &MockProvider{}
	mockProvider.On("Search", mock.Anything, criteria).
		Return(nil, errors.New("flaky")).Once()
	mockProvider.On("Search", mock.Anything, criteria).
		Return([]provider.RawOffer{rawOffer("off_1")}, nil).Once()

	runner := NewRunner(mockProvider, cache.NewNoOpCache(), Config{
		Timeout:     time.Second,
		MaxRetries:  2,
		RetryDelays: []time.Duration{time.Millisecond},
	})

	sess := session.New("s1")
	seq, err := sess.Submit(criteria)
	require.NoError(t, err)

	runner.Run(context.Background(), sess, seq, criteria)

	snap := sess.Snapshot()
	assert.Equal(t, session.PhaseSuccess, snap.Phase)
	require.Len(t, snap.Offers, 1)
	mockProvider.AssertExpectations(t)
}

func TestRunStaleResultDropped(t *testing.T) {
	criteria := testCriteria()

	mockProvider := &MockProvider{}
	mockProvider.On("Search", mock.Anything, criteria).
		Return([]provider.RawOffer{rawOffer("off_old")}, nil).Once()

	sess := session.New("s1")
	firstSeq, err := sess.Submit(criteria)
	require.NoError(t, err)

	// A second submit lands before the first response is delivered.
	_, err = sess.Submit(criteria)
	require.NoError(t, err)

	newRunner(mockProvider).Run(context.Background(), sess, firstSeq, criteria)

	snap := sess.Snapshot()
	assert.Equal(t, session.PhaseSearching, snap.Phase, "stale result must not resolve the newer search")
	assert.Empty(t, snap.Offers)
}

func TestRunEmptyResponseIsSuccess(t *testing.T) {
	criteria := testCriteria()

	mockProvider := &MockProvider{}
	mockProvider.On("Search", mock.Anything, criteria).
		Return([]provider.RawOffer{}, nil).Once()

	sess := session.New("s1")
	seq, err := sess.Submit(criteria)
	require.NoError(t, err)

	newRunner(mockProvider).Run(context.Background(), sess, seq, criteria)

	snap := sess.Snapshot()
	assert.Equal(t, session.PhaseSuccess, snap.Phase)
	assert.Empty(t, snap.Offers)
	assert.Empty(t, snap.Failure)
}

// All offers malformed still resolves to an empty success: "provider
// returned garbage" renders like "no flights found", it is not a failure.
func TestRunAllMalformedIsEmptySuccess(t *testing.T) {
	criteria := testCriteria()

	broken := rawOffer("off_1")
	broken.TotalCurrency = ""

	mockProvider := &MockProvider{}
	mockProvider.On("Search", mock.Anything, criteria).
		Return([]provider.RawOffer{broken}, nil).Once()

	sess := session.New("s1")
	seq, err := sess.Submit(criteria)
	require.NoError(t, err)

	newRunner(mockProvider).Run(context.Background(), sess, seq, criteria)

	snap := sess.Snapshot()
	assert.Equal(t, session.PhaseSuccess, snap.Phase)
	assert.Empty(t, snap.Offers)
}

type stubCache struct {
	cache.NoOpCache
	offers []provider.RawOffer
}

func (c *stubCache) GetOffers(ctx context.Context, criteria models.SearchCriteria) ([]provider.RawOffer, bool) {
	return c.offers, c.offers != nil
}

func TestRunServesFromCache(t *testing.T) {
	criteria := testCriteria()

	mockProvider := &MockProvider{}

	runner := NewRunner(mockProvider, &stubCache{offers: []provider.RawOffer{rawOffer("off_cached")}}, Config{
		Timeout: time.Second,
	})

	sess := session.New("s1")
	seq, err := sess.Submit(criteria)
	require.NoError(t, err)

	runner.Run(context.Background(), sess, seq, criteria)

	snap := sess.Snapshot()
	assert.Equal(t, session.PhaseSuccess, snap.Phase)
	require.Len(t, snap.Offers, 1)
	assert.Equal(t, "off_cached", snap.Offers[0].ID)
	mockProvider.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

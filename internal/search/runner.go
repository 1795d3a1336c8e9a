// Package search drives one upstream search per submit: cache lookup, rate
// limiting, retries with backoff, normalization, and finally reporting the
// outcome to the session under the submit's sequence number. Stale outcomes
// are rejected by the session and simply logged here.
package search

import (
	"context"
	"log"
	"time"

	"github.com/jsantoso/fareview/internal/cache"
	"github.com/jsantoso/fareview/internal/models"
	"github.com/jsantoso/fareview/internal/normalizer"
	"github.com/jsantoso/fareview/internal/provider"
	"github.com/jsantoso/fareview/internal/ratelimit"
	"github.com/jsantoso/fareview/internal/session"
)

type Config struct {
	Timeout     time.Duration
	MaxRetries  int
	RetryDelays []time.Duration
	RateLimiter *ratelimit.Limiter
}

type Runner struct {
	provider provider.Provider
	cache    cache.Cache
	config   Config
}

func NewRunner(p provider.Provider, c cache.Cache, config Config) *Runner {
	return &Runner{
		provider: p,
		cache:    c,
		config:   config,
	}
}

// Run resolves one submitted search and delivers the result to the session.
// It is safe to call concurrently; the seq guard in the session keeps only
// the latest submit's outcome.
func (r *Runner) Run(ctx context.Context, sess *session.Session, seq uint64, criteria models.SearchCriteria) {
	searchCtx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	if raw, ok := r.cache.GetOffers(searchCtx, criteria); ok {
		r.deliver(sess, seq, raw)
		return
	}

	if r.config.RateLimiter != nil {
		if err := r.config.RateLimiter.Wait(searchCtx, r.provider.Name()); err != nil {
			r.fail(sess, seq, err)
			return
		}
	}

	raw, err := r.searchWithRetry(searchCtx, criteria)
	if err != nil {
		r.fail(sess, seq, err)
		return
	}

	_ = r.cache.SetOffers(searchCtx, criteria, raw)
	r.deliver(sess, seq, raw)
}

func (r *Runner) deliver(sess *session.Session, seq uint64, raw []provider.RawOffer) {
	offers := normalizer.NormalizeAll(raw)
	if !sess.Complete(seq, offers) {
		log.Printf("Dropping stale search result for session %s (seq %d)", sess.ID(), seq)
	}
}

func (r *Runner) fail(sess *session.Session, seq uint64, err error) {
	log.Printf("Search failed for session %s (seq %d): %v", sess.ID(), seq, err)
	if !sess.Fail(seq, err) {
		log.Printf("Dropping stale search failure for session %s (seq %d)", sess.ID(), seq)
	}
}

func (r *Runner) searchWithRetry(ctx context.Context, criteria models.SearchCriteria) ([]provider.RawOffer, error) {
	var lastErr error

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if attempt > 0 && len(r.config.RetryDelays) > 0 {
			delayIdx := attempt - 1
			if delayIdx >= len(r.config.RetryDelays) {
				delayIdx = len(r.config.RetryDelays) - 1
			}
			delay := r.config.RetryDelays[delayIdx]

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		raw, err := r.provider.Search(ctx, criteria)
		if err == nil {
			return raw, nil
		}

		lastErr = err
		log.Printf("Provider %s attempt %d failed: %v", r.provider.Name(), attempt+1, err)
	}

	return nil, lastErr
}

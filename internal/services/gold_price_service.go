package services

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	apperrors "github.com/elizi/goldtool/internal/errors"
	"github.com/elizi/goldtool/internal/models"
	"github.com/elizi/goldtool/internal/repositories"
)

const goldCacheTTL = 10 * time.Minute

// Hard fallback used when the feed fails and no cache exists yet
var (
	fallbackBuying  = decimal.RequireFromString("7090.98")
	fallbackSelling = decimal.RequireFromString("7091.83")
)

type priceWithProvenance struct {
	price      *models.GoldPrice
	provenance models.PriceProvenance
}

// GoldPriceServiceImpl implements GoldPriceService. All mutations of the
// current price and its provenance happen under mu, so a reader never sees a
// price paired with a provenance from a different point in time.
type GoldPriceServiceImpl struct {
	feed   GoldFeedProvider
	repo   repositories.GoldPriceRepository
	logger *zap.Logger
	now    func() time.Time

	mu         sync.Mutex
	current    *models.GoldPrice
	provenance models.PriceProvenance
	lastFetch  time.Time
	manual     *models.GoldPrice
	generation uint64

	fetchGroup singleflight.Group
}

// NewGoldPriceService creates a gold price service. repo may be nil (tests);
// when present it persists the manual override across restarts.
func NewGoldPriceService(feed GoldFeedProvider, repo repositories.GoldPriceRepository, logger *zap.Logger) *GoldPriceServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoldPriceServiceImpl{
		feed:   feed,
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Restore reloads a persisted manual override and the last fetched snapshot.
// Called once at startup, before the service is shared.
func (s *GoldPriceServiceImpl) Restore(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	manual, err := s.repo.GetManual(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if manual != nil {
		s.manual = &models.GoldPrice{
			Currency:  manual.Currency,
			Buying:    manual.Buying,
			Selling:   manual.Selling,
			Timestamp: manual.CreatedAt,
		}
		s.lastFetch = s.now()
		s.logger.Info("restored manual gold price override",
			zap.String("selling", manual.Selling.String()))
		return nil
	}
	snapshot, err := s.repo.LatestSnapshot(ctx)
	if err != nil {
		return err
	}
	if snapshot != nil {
		s.current = &models.GoldPrice{
			Currency:  snapshot.Currency,
			Buying:    snapshot.Buying,
			Selling:   snapshot.Selling,
			Timestamp: snapshot.FetchedAt,
		}
		s.provenance = models.ProvenanceCached
		// Deliberately stale: the snapshot serves until the first fetch lands
		s.lastFetch = time.Time{}
	}
	return nil
}

// GetCurrentPrice returns the current price: manual override first, then a
// still-fresh cached value, then a live fetch with stale-cache/fallback
// recovery. Concurrent callers share a single in-flight fetch.
func (s *GoldPriceServiceImpl) GetCurrentPrice(ctx context.Context) (*models.GoldPrice, error) {
	s.mu.Lock()
	if s.manual != nil {
		p := *s.manual
		s.mu.Unlock()
		return &p, nil
	}
	if s.current != nil && !s.lastFetch.IsZero() && s.now().Sub(s.lastFetch) < goldCacheTTL {
		p := *s.current
		s.mu.Unlock()
		return &p, nil
	}
	gen := s.generation
	s.mu.Unlock()

	return s.fetch(ctx, gen)
}

// Refresh bypasses the freshness window but still honors a manual override
func (s *GoldPriceServiceImpl) Refresh(ctx context.Context) (*models.GoldPrice, error) {
	s.mu.Lock()
	if s.manual != nil {
		p := *s.manual
		s.mu.Unlock()
		return &p, nil
	}
	gen := s.generation
	s.mu.Unlock()

	return s.fetch(ctx, gen)
}

// fetch performs the single-flight feed fetch. A result landing after a
// manual override was set (generation changed) is discarded in favor of the
// override; a failed fetch degrades to the stale cache, then the fallback
// constant.
func (s *GoldPriceServiceImpl) fetch(ctx context.Context, gen uint64) (*models.GoldPrice, error) {
	v, err, _ := s.fetchGroup.Do("spot", func() (interface{}, error) {
		price, fetchErr := s.feed.FetchSpot(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()

		// An override set while the fetch was in flight wins unconditionally
		if s.manual != nil || s.generation != gen {
			if s.manual != nil {
				p := *s.manual
				return priceWithProvenance{&p, models.ProvenanceManual}, nil
			}
			gen = s.generation
		}

		if fetchErr != nil {
			s.logger.Warn("gold price fetch failed", zap.Error(fetchErr))
			if s.current != nil {
				p := *s.current
				s.provenance = models.ProvenanceCached
				return priceWithProvenance{&p, models.ProvenanceCached}, nil
			}
			fallback := &models.GoldPrice{
				Currency:  "TRY",
				Buying:    fallbackBuying,
				Selling:   fallbackSelling,
				Timestamp: s.now(),
			}
			s.current = fallback
			s.provenance = models.ProvenanceFallback
			s.lastFetch = s.now()
			p := *fallback
			return priceWithProvenance{&p, models.ProvenanceFallback}, nil
		}

		s.current = price
		s.provenance = models.ProvenanceLive
		s.lastFetch = s.now()
		s.persistSnapshot(price, "feed")
		p := *price
		return priceWithProvenance{&p, models.ProvenanceLive}, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(priceWithProvenance).price, nil
}

// SetManualPrice pins an operator-set price that supersedes the feed until
// cleared. Both values are required and must be non-negative.
func (s *GoldPriceServiceImpl) SetManualPrice(ctx context.Context, buying, selling decimal.Decimal) (*models.GoldPrice, error) {
	if buying.IsNegative() || selling.IsNegative() {
		return nil, apperrors.ErrInvalidPrice
	}
	manual := &models.GoldPrice{
		Currency:  "TRY",
		Buying:    buying,
		Selling:   selling,
		Timestamp: s.now(),
	}

	s.mu.Lock()
	s.manual = manual
	s.provenance = models.ProvenanceManual
	s.lastFetch = s.now()
	s.generation++
	s.mu.Unlock()

	if s.repo != nil {
		err := s.repo.SetManual(ctx, &models.ManualGoldPrice{
			Currency: manual.Currency,
			Buying:   buying,
			Selling:  selling,
		})
		if err != nil {
			s.logger.Warn("failed to persist manual gold price", zap.Error(err))
		}
	}
	s.logger.Info("manual gold price set",
		zap.String("buying", buying.String()),
		zap.String("selling", selling.String()))

	p := *manual
	return &p, nil
}

// ClearManualPrice removes the override and immediately refreshes from the feed
func (s *GoldPriceServiceImpl) ClearManualPrice(ctx context.Context) (*models.GoldPrice, error) {
	s.mu.Lock()
	s.manual = nil
	s.lastFetch = time.Time{}
	s.generation++
	s.mu.Unlock()

	if s.repo != nil {
		if err := s.repo.ClearManual(ctx); err != nil {
			s.logger.Warn("failed to clear persisted manual price", zap.Error(err))
		}
	}
	return s.Refresh(ctx)
}

// HasManualPrice reports whether an operator override is active
func (s *GoldPriceServiceImpl) HasManualPrice() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manual != nil
}

// IsCacheValid reports whether the current value is within the freshness window
func (s *GoldPriceServiceImpl) IsCacheValid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastFetch.IsZero() {
		return false
	}
	return s.now().Sub(s.lastFetch) < goldCacheTTL
}

// CacheAgeMinutes returns whole minutes since the last successful fetch or
// override, or -1 if there has been none.
func (s *GoldPriceServiceImpl) CacheAgeMinutes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastFetch.IsZero() {
		return -1
	}
	return int(s.now().Sub(s.lastFetch) / time.Minute)
}

// Status returns the price plus provenance for the admin screen
func (s *GoldPriceServiceImpl) Status(ctx context.Context) (*models.GoldPriceStatus, error) {
	price, err := s.GetCurrentPrice(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	prov := s.provenance
	if s.manual != nil {
		prov = models.ProvenanceManual
	} else if prov == models.ProvenanceLive && !s.lastFetch.IsZero() && s.now().Sub(s.lastFetch) >= goldCacheTTL {
		prov = models.ProvenanceCached
	}
	valid := !s.lastFetch.IsZero() && s.now().Sub(s.lastFetch) < goldCacheTTL
	age := -1
	if !s.lastFetch.IsZero() {
		age = int(s.now().Sub(s.lastFetch) / time.Minute)
	}
	return &models.GoldPriceStatus{
		Price:           price,
		Provenance:      prov,
		CacheValid:      valid,
		CacheAgeMinutes: age,
		ManualOverride:  s.manual != nil,
	}, nil
}

func (s *GoldPriceServiceImpl) persistSnapshot(p *models.GoldPrice, source string) {
	if s.repo == nil {
		return
	}
	// Snapshot writes are best-effort; quoting never waits on them
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := s.repo.SaveSnapshot(ctx, &models.GoldPriceSnapshot{
			Currency:  p.Currency,
			Buying:    p.Buying,
			Selling:   p.Selling,
			Source:    source,
			FetchedAt: p.Timestamp,
		})
		if err != nil {
			s.logger.Warn("failed to persist gold price snapshot", zap.Error(err))
		}
	}()
}

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/elizi/goldtool/internal/errors"
	"github.com/elizi/goldtool/internal/models"
)

func testPrice(buying, selling float64) *models.GoldPrice {
	return &models.GoldPrice{
		Currency:  "TRY",
		Buying:    decimal.NewFromFloat(buying),
		Selling:   decimal.NewFromFloat(selling),
		Timestamp: time.Now(),
	}
}

// newTestGoldPriceService wires a service with an injectable clock
func newTestGoldPriceService(feed GoldFeedProvider, repo *mockGoldPriceRepo) (*GoldPriceServiceImpl, *time.Time) {
	var svc *GoldPriceServiceImpl
	if repo != nil {
		svc = NewGoldPriceService(feed, repo, nil)
	} else {
		svc = NewGoldPriceService(feed, nil, nil)
	}
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	clock := &now
	svc.now = func() time.Time { return *clock }
	return svc, clock
}

func TestGetCurrentPrice_FetchesAndCaches(t *testing.T) {
	feed := &mockFeed{price: testPrice(3000, 3001)}
	svc, clock := newTestGoldPriceService(feed, nil)
	ctx := context.Background()

	p1, err := svc.GetCurrentPrice(ctx)
	if err != nil {
		t.Fatalf("GetCurrentPrice failed: %v", err)
	}
	if !p1.Selling.Equal(decimal.NewFromInt(3001)) {
		t.Errorf("selling = %s, want 3001", p1.Selling)
	}
	if feed.callCount() != 1 {
		t.Fatalf("feed calls = %d, want 1", feed.callCount())
	}

	// Within the freshness window the cached value serves without a fetch
	*clock = clock.Add(9 * time.Minute)
	p2, err := svc.GetCurrentPrice(ctx)
	if err != nil {
		t.Fatalf("cached GetCurrentPrice failed: %v", err)
	}
	if !p2.Selling.Equal(p1.Selling) || feed.callCount() != 1 {
		t.Errorf("expected cached price with 1 feed call, got %s with %d calls", p2.Selling, feed.callCount())
	}
	if !svc.IsCacheValid() {
		t.Error("IsCacheValid = false inside freshness window")
	}

	// Past the window the next read fetches again
	*clock = clock.Add(2 * time.Minute)
	feed.set(testPrice(3100, 3101), nil)
	p3, err := svc.GetCurrentPrice(ctx)
	if err != nil {
		t.Fatalf("refetch failed: %v", err)
	}
	if !p3.Selling.Equal(decimal.NewFromInt(3101)) {
		t.Errorf("selling = %s, want 3101 after expiry", p3.Selling)
	}
	if feed.callCount() != 2 {
		t.Errorf("feed calls = %d, want 2", feed.callCount())
	}
}

func TestManualOverride_TakesPriority(t *testing.T) {
	feed := &mockFeed{price: testPrice(3000, 3001)}
	svc, _ := newTestGoldPriceService(feed, nil)
	ctx := context.Background()

	manual, err := svc.SetManualPrice(ctx, decimal.NewFromInt(2800), decimal.NewFromInt(2900))
	if err != nil {
		t.Fatalf("SetManualPrice failed: %v", err)
	}
	if !svc.HasManualPrice() {
		t.Fatal("HasManualPrice = false after SetManualPrice")
	}

	got, err := svc.GetCurrentPrice(ctx)
	if err != nil {
		t.Fatalf("GetCurrentPrice failed: %v", err)
	}
	if !got.Selling.Equal(manual.Selling) {
		t.Errorf("selling = %s, want override %s", got.Selling, manual.Selling)
	}
	if feed.callCount() != 0 {
		t.Errorf("feed calls = %d, want 0 while overridden", feed.callCount())
	}

	// Refresh also honors the override
	got, err = svc.Refresh(ctx)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if !got.Selling.Equal(manual.Selling) || feed.callCount() != 0 {
		t.Errorf("Refresh returned %s with %d feed calls, want override and 0", got.Selling, feed.callCount())
	}
}

func TestSetManualPrice_RejectsNegative(t *testing.T) {
	svc, _ := newTestGoldPriceService(&mockFeed{price: testPrice(3000, 3001)}, nil)
	_, err := svc.SetManualPrice(context.Background(), decimal.NewFromInt(-1), decimal.NewFromInt(2900))
	if !errors.Is(err, apperrors.ErrInvalidPrice) {
		t.Errorf("err = %v, want ErrInvalidPrice", err)
	}
	_, err = svc.SetManualPrice(context.Background(), decimal.NewFromInt(2800), decimal.NewFromInt(-1))
	if !errors.Is(err, apperrors.ErrInvalidPrice) {
		t.Errorf("err = %v, want ErrInvalidPrice", err)
	}
	if svc.HasManualPrice() {
		t.Error("rejected override must not stick")
	}
}

func TestClearManualPrice_RefreshesFromFeed(t *testing.T) {
	feed := &mockFeed{price: testPrice(3000, 3001)}
	svc, _ := newTestGoldPriceService(feed, nil)
	ctx := context.Background()

	if _, err := svc.SetManualPrice(ctx, decimal.NewFromInt(2800), decimal.NewFromInt(2900)); err != nil {
		t.Fatalf("SetManualPrice failed: %v", err)
	}
	got, err := svc.ClearManualPrice(ctx)
	if err != nil {
		t.Fatalf("ClearManualPrice failed: %v", err)
	}
	if svc.HasManualPrice() {
		t.Error("HasManualPrice = true after clear")
	}
	if !got.Selling.Equal(decimal.NewFromInt(3001)) {
		t.Errorf("selling = %s, want feed value 3001", got.Selling)
	}
	if feed.callCount() != 1 {
		t.Errorf("feed calls = %d, want 1", feed.callCount())
	}
}

func TestManualOverride_PersistsAcrossRestart(t *testing.T) {
	repo := &mockGoldPriceRepo{}
	ctx := context.Background()

	svc1, _ := newTestGoldPriceService(&mockFeed{price: testPrice(3000, 3001)}, repo)
	if _, err := svc1.SetManualPrice(ctx, decimal.NewFromInt(2800), decimal.NewFromInt(2900)); err != nil {
		t.Fatalf("SetManualPrice failed: %v", err)
	}

	feed2 := &mockFeed{price: testPrice(3000, 3001)}
	svc2, _ := newTestGoldPriceService(feed2, repo)
	if err := svc2.Restore(ctx); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if !svc2.HasManualPrice() {
		t.Fatal("override not restored")
	}
	got, err := svc2.GetCurrentPrice(ctx)
	if err != nil {
		t.Fatalf("GetCurrentPrice failed: %v", err)
	}
	if !got.Selling.Equal(decimal.NewFromInt(2900)) || feed2.callCount() != 0 {
		t.Errorf("restored service returned %s with %d feed calls, want 2900 and 0", got.Selling, feed2.callCount())
	}
}

func TestRestore_SnapshotServesUntilFirstFetch(t *testing.T) {
	repo := &mockGoldPriceRepo{}
	ctx := context.Background()
	repo.SaveSnapshot(ctx, &models.GoldPriceSnapshot{
		Currency:  "TRY",
		Buying:    decimal.NewFromInt(2700),
		Selling:   decimal.NewFromInt(2750),
		Source:    "feed",
		FetchedAt: time.Now().Add(-time.Hour),
	})

	// Feed down: the restored snapshot carries the first read
	feed := &mockFeed{err: errors.New("feed down")}
	svc, _ := newTestGoldPriceService(feed, repo)
	if err := svc.Restore(ctx); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if svc.IsCacheValid() {
		t.Error("restored snapshot must count as stale")
	}
	got, err := svc.GetCurrentPrice(ctx)
	if err != nil {
		t.Fatalf("GetCurrentPrice failed: %v", err)
	}
	if !got.Selling.Equal(decimal.NewFromInt(2750)) {
		t.Errorf("selling = %s, want snapshot value 2750", got.Selling)
	}
	if feed.callCount() != 1 {
		t.Errorf("feed calls = %d, want 1 (fetch attempted before falling back)", feed.callCount())
	}
}

func TestFetch_FallbackWhenNoCache(t *testing.T) {
	feed := &mockFeed{err: errors.New("feed down")}
	svc, _ := newTestGoldPriceService(feed, nil)

	got, err := svc.GetCurrentPrice(context.Background())
	if err != nil {
		t.Fatalf("GetCurrentPrice failed: %v", err)
	}
	if !got.Buying.Equal(fallbackBuying) || !got.Selling.Equal(fallbackSelling) {
		t.Errorf("got %s/%s, want fallback %s/%s", got.Buying, got.Selling, fallbackBuying, fallbackSelling)
	}
}

func TestFetch_StaleCacheBeatsFallback(t *testing.T) {
	feed := &mockFeed{price: testPrice(3000, 3001)}
	svc, clock := newTestGoldPriceService(feed, nil)
	ctx := context.Background()

	if _, err := svc.GetCurrentPrice(ctx); err != nil {
		t.Fatalf("initial fetch failed: %v", err)
	}

	*clock = clock.Add(30 * time.Minute)
	feed.set(nil, errors.New("feed down"))
	got, err := svc.GetCurrentPrice(ctx)
	if err != nil {
		t.Fatalf("GetCurrentPrice failed: %v", err)
	}
	if !got.Selling.Equal(decimal.NewFromInt(3001)) {
		t.Errorf("selling = %s, want stale cached 3001", got.Selling)
	}
}

func TestGetCurrentPrice_SingleFlight(t *testing.T) {
	block := make(chan struct{})
	feed := &mockFeed{price: testPrice(3000, 3001), blockCh: block}
	svc, _ := newTestGoldPriceService(feed, nil)
	ctx := context.Background()

	const callers = 8
	var wg sync.WaitGroup
	results := make([]*models.GoldPrice, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.GetCurrentPrice(ctx)
		}(i)
	}

	// Wait for the first caller to reach the feed, then release everyone
	for feed.callCount() == 0 {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(10 * time.Millisecond)
	close(block)
	wg.Wait()

	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
		if !results[i].Selling.Equal(decimal.NewFromInt(3001)) {
			t.Errorf("caller %d got %s, want 3001", i, results[i].Selling)
		}
	}
	if feed.callCount() != 1 {
		t.Errorf("feed calls = %d, want 1 for concurrent callers", feed.callCount())
	}
}

func TestManualOverride_WinsOverInFlightFetch(t *testing.T) {
	block := make(chan struct{})
	feed := &mockFeed{price: testPrice(3000, 3001), blockCh: block}
	svc, _ := newTestGoldPriceService(feed, nil)
	ctx := context.Background()

	done := make(chan struct{})
	var got *models.GoldPrice
	var fetchErr error
	go func() {
		got, fetchErr = svc.GetCurrentPrice(ctx)
		close(done)
	}()

	for feed.callCount() == 0 {
		time.Sleep(time.Millisecond)
	}
	if _, err := svc.SetManualPrice(ctx, decimal.NewFromInt(2800), decimal.NewFromInt(2900)); err != nil {
		t.Fatalf("SetManualPrice failed: %v", err)
	}
	close(block)
	<-done

	if fetchErr != nil {
		t.Fatalf("GetCurrentPrice failed: %v", fetchErr)
	}
	if !got.Selling.Equal(decimal.NewFromInt(2900)) {
		t.Errorf("in-flight fetch returned %s, want override 2900", got.Selling)
	}
	after, err := svc.GetCurrentPrice(ctx)
	if err != nil {
		t.Fatalf("GetCurrentPrice failed: %v", err)
	}
	if !after.Selling.Equal(decimal.NewFromInt(2900)) {
		t.Errorf("late fetch result overwrote the override: got %s", after.Selling)
	}
}

func TestCacheAgeMinutes(t *testing.T) {
	feed := &mockFeed{price: testPrice(3000, 3001)}
	svc, clock := newTestGoldPriceService(feed, nil)

	if got := svc.CacheAgeMinutes(); got != -1 {
		t.Errorf("CacheAgeMinutes before any fetch = %d, want -1", got)
	}
	if _, err := svc.GetCurrentPrice(context.Background()); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	*clock = clock.Add(25 * time.Minute)
	if got := svc.CacheAgeMinutes(); got != 25 {
		t.Errorf("CacheAgeMinutes = %d, want 25", got)
	}
	if svc.IsCacheValid() {
		t.Error("IsCacheValid = true at 25 minutes")
	}
}

func TestStatus_ReportsProvenance(t *testing.T) {
	feed := &mockFeed{price: testPrice(3000, 3001)}
	svc, _ := newTestGoldPriceService(feed, nil)
	ctx := context.Background()

	st, err := svc.Status(ctx)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if st.Provenance != models.ProvenanceLive || !st.CacheValid || st.ManualOverride {
		t.Errorf("status = %+v, want live/valid/no-override", st)
	}

	if _, err := svc.SetManualPrice(ctx, decimal.NewFromInt(2800), decimal.NewFromInt(2900)); err != nil {
		t.Fatalf("SetManualPrice failed: %v", err)
	}
	st, err = svc.Status(ctx)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if st.Provenance != models.ProvenanceManual || !st.ManualOverride {
		t.Errorf("status = %+v, want manual provenance", st)
	}
	if !st.Price.Selling.Equal(decimal.NewFromInt(2900)) {
		t.Errorf("status price = %s, want 2900", st.Price.Selling)
	}
}

package usecase

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/gradewatch/watcher/internal/domain"
)

// WatchService runs one fetch-filter-notify pass: fetch the listing page,
// extract and normalize its variants, filter them, then notify. There is no
// retry loop and no state survives the run.
type WatchService struct {
	source     domain.ListingSource
	filter     *FilterService
	notifier   *NotifyService
	productURL string
}

// NewWatchService creates a new watch service
func NewWatchService(
	source domain.ListingSource,
	filter *FilterService,
	notifier *NotifyService,
	productURL string,
) *WatchService {
	return &WatchService{
		source:     source,
		filter:     filter,
		notifier:   notifier,
		productURL: productURL,
	}
}

// Run executes one pass and returns the per-message dispatch outcomes. A
// non-nil error means the run failed before any notification was attempted.
func (s *WatchService) Run(ctx context.Context) ([]domain.DispatchResult, error) {
	runID := uuid.NewString()[:8]
	log.Printf("[run %s] watching %s", runID, s.productURL)

	variants, err := s.source.FetchVariants(ctx, s.productURL)
	if err != nil {
		log.Printf("[run %s] failed: %v", runID, err)
		return nil, err
	}

	records := s.filter.FilterAndProject(variants)
	alerts := s.filter.TargetPriceMatches(records)
	if len(alerts) > 0 {
		log.Printf("[run %s] %d records at target price %q", runID, len(alerts), s.filter.Criteria().TargetPrice)
	}

	// the fallback message names the product even when nothing matched; if
	// normalization dropped every variant, fall back to a generic noun
	fallbackName := "product"
	if len(variants) > 0 {
		fallbackName = domain.ShortName(variants[0].Name)
	}

	results := s.notifier.Notify(ctx, records, alerts, fallbackName, s.filter.Criteria().Grade)

	log.Printf("[run %s] done", runID)
	return results, nil
}

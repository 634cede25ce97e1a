package usecase

import (
	"context"
	"log"
	"sync"

	"github.com/gradewatch/watcher/internal/domain"
)

// NotifyService fans a run's outbound messages out to every configured
// adapter. Dispatches are independent: the full batch is built up front, sent
// concurrently, and every outcome is collected before the run completes. One
// failing send never suppresses a sibling.
type NotifyService struct {
	adapters      []domain.NotificationAdapter
	mentionHandle string
}

// NewNotifyService creates a new notify service
func NewNotifyService(adapters []domain.NotificationAdapter, mentionHandle string) *NotifyService {
	return &NotifyService{
		adapters:      adapters,
		mentionHandle: mentionHandle,
	}
}

type outbound struct {
	adapter string
	kind    domain.DispatchKind
	send    func(context.Context) error
}

// Notify dispatches per-record messages (plus the alert subset) across all
// adapters, or exactly one fallback message per adapter when no records
// matched. It returns one result per message sent.
func (s *NotifyService) Notify(
	ctx context.Context,
	records []domain.FilteredRecord,
	alerts []domain.FilteredRecord,
	fallbackName string,
	grade domain.Grade,
) []domain.DispatchResult {
	batch := s.buildBatch(records, alerts, fallbackName, grade)

	results := make([]domain.DispatchResult, len(batch))
	var wg sync.WaitGroup
	for i, out := range batch {
		wg.Add(1)
		go func(i int, out outbound) {
			defer wg.Done()
			results[i] = domain.DispatchResult{
				Adapter: out.adapter,
				Kind:    out.kind,
				Err:     out.send(ctx),
			}
		}(i, out)
	}
	wg.Wait()

	succeeded := 0
	for _, r := range results {
		if r.Err == nil {
			succeeded++
		}
	}
	log.Printf("[notify] dispatched %d messages: %d ok, %d failed",
		len(results), succeeded, len(results)-succeeded)

	return results
}

func (s *NotifyService) buildBatch(
	records []domain.FilteredRecord,
	alerts []domain.FilteredRecord,
	fallbackName string,
	grade domain.Grade,
) []outbound {
	var batch []outbound

	if len(records) == 0 {
		for _, a := range s.adapters {
			a := a
			batch = append(batch, outbound{
				adapter: a.Name(),
				kind:    domain.DispatchFallback,
				send: func(ctx context.Context) error {
					return a.SendFallback(ctx, fallbackName, grade)
				},
			})
		}
		return batch
	}

	for _, a := range s.adapters {
		a := a
		for _, rec := range records {
			rec := rec
			batch = append(batch, outbound{
				adapter: a.Name(),
				kind:    domain.DispatchRecord,
				send: func(ctx context.Context) error {
					return a.SendRecord(ctx, rec)
				},
			})
		}
	}

	for _, a := range s.adapters {
		alerter, ok := a.(domain.AlertSender)
		if !ok {
			continue
		}
		name := a.Name()
		for _, rec := range alerts {
			rec := rec
			batch = append(batch, outbound{
				adapter: name,
				kind:    domain.DispatchAlert,
				send: func(ctx context.Context) error {
					return alerter.SendAlert(ctx, rec, s.mentionHandle)
				},
			})
		}
	}

	return batch
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dkazlouski/currency_exchange_app/internal/apperrors"
	"github.com/dkazlouski/currency_exchange_app/internal/core/domain"
	portsclients "github.com/dkazlouski/currency_exchange_app/internal/core/ports/clients"
	portsrepo "github.com/dkazlouski/currency_exchange_app/internal/core/ports/repositories"
)

// feedDateLayouts are the timestamp shapes the feed has been observed to emit.
var feedDateLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// RateSyncService orchestrates one fetch-from-feed, upsert-into-store cycle as
// an idempotent unit. It adds no retry logic of its own: feed and storage
// failures propagate unchanged to the caller.
type RateSyncService struct {
	BaseService
	feed     portsclients.RateFeed
	rateRepo portsrepo.RateRepository
}

// NewRateSyncService creates a new RateSyncService.
func NewRateSyncService(feed portsclients.RateFeed, rateRepo portsrepo.RateRepository) *RateSyncService {
	return &RateSyncService{
		feed:     feed,
		rateRepo: rateRepo,
	}
}

// SyncForDate fetches the daily rate list (feed's "today" when ondate is nil),
// maps every record and upserts the whole batch atomically. Re-running it for
// the same date with an unchanged feed leaves the store in the same state. A
// feed returning zero records is a no-op, not an error.
func (s *RateSyncService) SyncForDate(ctx context.Context, ondate *time.Time) (int64, error) {
	records, err := s.feed.FetchDaily(ctx, ondate)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		s.LogInfo(ctx, "Rates feed returned no records, nothing to sync")
		return 0, nil
	}

	// Map the full batch before writing anything. One bad record aborts the
	// whole run: a partial import would leave stale scale/rate pairs for the
	// currencies that were skipped.
	rates := make([]domain.Rate, len(records))
	for i, record := range records {
		rate, err := mapFeedRecord(record)
		if err != nil {
			return 0, err
		}
		rates[i] = rate
	}

	count, err := s.rateRepo.UpsertRates(ctx, rates)
	if err != nil {
		return 0, err
	}

	s.LogInfo(ctx, "Rates synced", slog.Int64("rows_affected", count))
	return count, nil
}

// mapFeedRecord converts one raw feed record to a Rate row. The rate date is
// taken from the record itself, not from the requested sync date.
func mapFeedRecord(record portsclients.RateRecord) (domain.Rate, error) {
	if strings.TrimSpace(record.Abbreviation) == "" {
		return domain.Rate{}, apperrors.NewExternalServiceError("rates feed record is missing a currency abbreviation", nil)
	}
	if record.Scale < 1 {
		return domain.Rate{}, apperrors.NewExternalServiceError(
			fmt.Sprintf("rates feed record for %s has invalid scale %d", record.Abbreviation, record.Scale), nil)
	}
	// An absent or null Cur_OfficialRate decodes to decimal zero; persisting it
	// would poison every conversion involving the currency.
	if !record.Rate.IsPositive() {
		return domain.Rate{}, apperrors.NewExternalServiceError(
			fmt.Sprintf("rates feed record for %s has non-positive rate %s", record.Abbreviation, record.Rate), nil)
	}
	if record.Date == "" {
		return domain.Rate{}, apperrors.NewExternalServiceError(
			"rates feed record for "+record.Abbreviation+" is missing its date", nil)
	}

	parsed, err := parseFeedDate(record.Date)
	if err != nil {
		return domain.Rate{}, apperrors.NewExternalServiceError(
			"rates feed record for "+record.Abbreviation+" has an unparseable date", err)
	}

	return domain.Rate{
		Currency: strings.ToUpper(record.Abbreviation),
		Scale:    record.Scale,
		Rate:     record.Rate,
		Date:     time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC),
	}, nil
}

func parseFeedDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range feedDateLayouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

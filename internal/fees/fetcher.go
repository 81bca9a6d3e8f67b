package fees

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/feetracker-io/wallet-fee-tracker/internal/observability/metrics"
	"github.com/feetracker-io/wallet-fee-tracker/internal/types"
)

// firstCursor is the cursor of the oldest page of an account history.
const firstCursor = "0"

// TransactionSource returns one page of an account's transaction history.
type TransactionSource interface {
	GetAccountTransactions(ctx context.Context, address string, count uint64, start string) (*types.TransactionsPage, error)
}

// PageHandler consumes a fetched page before the next one is requested.
type PageHandler func(records []types.LedgerRecord)

// ProgressFunc is told the cumulative record count after every page. It is informational only.
type ProgressFunc func(recordsFetched int)

type Fetcher struct {
	source   TransactionSource
	pageSize uint64
	maxPages uint64
}

func NewFetcher(source TransactionSource, pageSize, maxPages uint64) *Fetcher {
	return &Fetcher{
		source:   source,
		pageSize: pageSize,
		maxPages: maxPages,
	}
}

// FetchAll walks the account history page by page, strictly in order, handing every page to
// handle. It stops on an empty page, a page shorter than the page size, a missing cursor or
// after maxPages pages. Any failed page fails the whole walk.
func (f *Fetcher) FetchAll(ctx context.Context, address string, handle PageHandler, onProgress ProgressFunc) (int, error) {
	log := log.Ctx(ctx)

	cursor := firstCursor
	total := 0
	for page := uint64(1); ; page++ {
		if page > f.maxPages {
			log.Warn().
				Uint64("max_pages", f.maxPages).
				Int("records_fetched", total).
				Msg("max pages reached, stopping pagination")
			return total, nil
		}

		resp, err := f.source.GetAccountTransactions(ctx, address, f.pageSize, cursor)
		if err != nil {
			return total, wrapFetchError(page, err)
		}
		if resp == nil {
			return total, types.NewShapeError(fmt.Sprintf("page %d: empty response", page))
		}
		metrics.RecordLedgerPageFetched(len(resp.Records))

		if len(resp.Records) == 0 {
			log.Debug().Uint64("page", page).Msg("empty page, history exhausted")
			return total, nil
		}

		handle(resp.Records)
		total += len(resp.Records)
		if onProgress != nil {
			onProgress(total)
		}

		log.Debug().
			Uint64("page", page).
			Int("page_records", len(resp.Records)).
			Int("records_fetched", total).
			Msg("fetched transactions page")

		if uint64(len(resp.Records)) < f.pageSize || resp.Cursor == nil {
			return total, nil
		}
		cursor = *resp.Cursor
	}
}

// wrapFetchError keeps typed ledger errors, except exhausted rate limit retries which are
// reported as a plain network failure.
func wrapFetchError(page uint64, err error) error {
	var typedErr *types.Error
	if errors.As(err, &typedErr) && typedErr.StatusCode != http.StatusTooManyRequests {
		return typedErr
	}
	return types.NewNetworkError(fmt.Errorf("page %d: %w", page, err))
}

package ledgerclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/feetracker-io/wallet-fee-tracker/internal/clients/client"
	"github.com/feetracker-io/wallet-fee-tracker/internal/config"
	"github.com/feetracker-io/wallet-fee-tracker/internal/types"
)

const (
	transactionsEndpoint = "/accounts/{address}/transactions"
	balanceEndpoint      = "/accounts/{address}/balance"
)

type Client struct {
	httpClient *http.Client
	cfg        *config.LedgerConfig
}

func (c *Client) GetBaseURL() string {
	return strings.TrimSuffix(c.cfg.URL, "/")
}

func (c *Client) GetDefaultRequestTimeout() time.Duration {
	return c.cfg.Timeout
}

func (c *Client) GetHttpClient() *http.Client {
	return c.httpClient
}

// NewClient returns a ledger client. A nil cfg falls back to the defaults (without an url).
func NewClient(cfg *config.LedgerConfig) *Client {
	if cfg == nil {
		cfg = config.DefaultLedgerConfig()
	}

	return &Client{
		httpClient: &http.Client{},
		cfg:        cfg,
	}
}

type transactionsResponse struct {
	Record json.RawMessage `json:"record"`
	Cursor json.RawMessage `json:"cursor"`
}

func (c *Client) GetAccountTransactions(
	ctx context.Context, address string, count uint64, start string,
) (*types.TransactionsPage, error) {
	type empty struct{}

	call := func() (*types.TransactionsPage, error) {
		query := url.Values{}
		query.Set("count", strconv.FormatUint(count, 10))
		query.Set("start", start)

		opts := &client.HttpClientOptions{
			Path:         accountPath(transactionsEndpoint, address) + "?" + query.Encode(),
			TemplatePath: transactionsEndpoint,
		}

		resp, err := client.SendRequest[empty, transactionsResponse](ctx, c, http.MethodGet, opts, nil)
		if err != nil {
			return nil, err
		}

		return parseTransactionsPage(resp)
	}

	page, err := clientCallWithRetry(ctx, call, c.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions of %s from cursor %s: %w", address, start, err)
	}
	return page, nil
}

func (c *Client) GetAccountBalance(ctx context.Context, address string) (string, error) {
	type empty struct{}
	type balanceResponse struct {
		Balance json.Number `json:"balance"`
	}

	call := func() (string, error) {
		opts := &client.HttpClientOptions{
			Path:         accountPath(balanceEndpoint, address),
			TemplatePath: balanceEndpoint,
		}

		resp, err := client.SendRequest[empty, balanceResponse](ctx, c, http.MethodGet, opts, nil)
		if err != nil {
			return "", err
		}
		if resp.Balance == "" {
			return "", types.NewShapeError("balance response without balance")
		}
		return resp.Balance.String(), nil
	}

	balance, err := clientCallWithRetry(ctx, call, c.cfg)
	if err != nil {
		return "", fmt.Errorf("failed to get balance of %s: %w", address, err)
	}
	return balance, nil
}

func accountPath(template, address string) string {
	return strings.Replace(template, "{address}", url.PathEscape(address), 1)
}

// parseTransactionsPage validates the paginated structure. A missing record list is a shape
// error, a null one is an empty page.
func parseTransactionsPage(resp *transactionsResponse) (*types.TransactionsPage, error) {
	if len(resp.Record) == 0 {
		return nil, types.NewShapeError("response has no record field")
	}

	page := &types.TransactionsPage{}
	if !isNull(resp.Record) {
		dec := json.NewDecoder(bytes.NewReader(resp.Record))
		dec.UseNumber()
		if err := dec.Decode(&page.Records); err != nil {
			return nil, types.NewShapeError(fmt.Sprintf("record is not a list of objects: %v", err))
		}
	}

	cursor, err := parseCursor(resp.Cursor)
	if err != nil {
		return nil, err
	}
	page.Cursor = cursor

	return page, nil
}

// parseCursor accepts an absent/null cursor, a string or a number.
func parseCursor(raw json.RawMessage) (*string, error) {
	if len(raw) == 0 || isNull(raw) {
		return nil, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return &s, nil
	}

	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&n); err == nil {
		cursor := n.String()
		return &cursor, nil
	}

	return nil, types.NewShapeError(fmt.Sprintf("unsupported cursor %s", string(raw)))
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

func clientCallWithRetry[T any](
	ctx context.Context,
	call retry.RetryableFuncWithData[T],
	cfg *config.LedgerConfig,
) (T, error) {
	result, err := retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(cfg.MaxRetryTimes),
		retry.Delay(cfg.RetryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			// only rate limited calls are retried, any other failure aborts the run
			return client.IsRateLimitError(err)
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().
				Uint("attempt", n+1).
				Uint("max_attempts", cfg.MaxRetryTimes).
				Err(err).
				Msg("ledger rate limit exceeded, retrying with exponential backoff")
		}))
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

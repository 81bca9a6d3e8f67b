package priceclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/feetracker-io/wallet-fee-tracker/internal/clients/client"
	"github.com/feetracker-io/wallet-fee-tracker/internal/config"
	"github.com/feetracker-io/wallet-fee-tracker/internal/types"
)

const (
	endpoint     = "/simple/price"
	apiKeyHeader = "x-cg-pro-api-key"
)

type Client struct {
	httpClient *http.Client
	cfg        *config.PriceConfig
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

// NewClient returns nil when price lookups are not configured.
func NewClient(cfg *config.PriceConfig) *Client {
	if cfg == nil {
		return nil
	}

	return &Client{
		httpClient: &http.Client{},
		cfg:        cfg,
	}
}

// GetUSDPrice returns the latest usd price of the configured asset.
func (c *Client) GetUSDPrice(ctx context.Context) (float64, error) {
	type empty struct{}
	// keyed by asset id, then by currency
	type priceResponse map[string]map[string]float64

	call := func() (float64, error) {
		query := url.Values{}
		query.Set("ids", c.cfg.AssetID)
		query.Set("vs_currencies", "usd")

		opts := &client.HttpClientOptions{
			Path:         endpoint + "?" + query.Encode(),
			TemplatePath: endpoint,
		}
		if c.cfg.APIKey != "" {
			opts.Headers = map[string]string{apiKeyHeader: c.cfg.APIKey}
		}

		resp, err := client.SendRequest[empty, priceResponse](ctx, c, http.MethodGet, opts, nil)
		if err != nil {
			return 0, err
		}

		price, ok := (*resp)[c.cfg.AssetID]["usd"]
		if !ok {
			return 0, types.NewShapeError(fmt.Sprintf("no usd price for %q", c.cfg.AssetID))
		}
		return price, nil
	}

	price, err := retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(c.cfg.MaxRetryTimes),
		retry.Delay(c.cfg.RetryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(client.IsRateLimitError),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().
				Uint("attempt", n+1).
				Err(err).
				Msg("price api rate limit exceeded, retrying")
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to get usd price of %q: %w", c.cfg.AssetID, err)
	}
	return price, nil
}

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/feetracker-io/wallet-fee-tracker/internal/observability/metrics"
	"github.com/feetracker-io/wallet-fee-tracker/internal/types"
)

// rateLimitMsg is matched by the clients' retry policies.
const rateLimitMsg = "rate limit exceeded"

type BaseClient interface {
	GetBaseURL() string
	GetDefaultRequestTimeout() time.Duration
	GetHttpClient() *http.Client
}

type HttpClientOptions struct {
	// Timeout overrides the client's default request timeout when positive
	Timeout time.Duration
	Path    string
	// TemplatePath is the path without ids, used as the metrics label
	TemplatePath string
	Headers      map[string]string
}

// IsRateLimitError reports whether err comes from a 429 response.
func IsRateLimitError(err error) bool {
	var typedErr *types.Error
	if !errors.As(err, &typedErr) {
		return false
	}
	return typedErr.StatusCode == http.StatusTooManyRequests
}

// SendRequest sends a request with a json body (if input is not nil) and decodes the json
// response into R. Non 2xx responses are returned as *types.Error.
func SendRequest[I any, R any](
	ctx context.Context, client BaseClient, method string, opts *HttpClientOptions, input *I,
) (*R, error) {
	timeout := client.GetDefaultRequestTimeout()
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	completeURL := client.GetBaseURL() + opts.Path

	var body io.Reader
	if input != nil {
		payload, err := json.Marshal(input)
		if err != nil {
			return nil, types.NewInternalServiceError(fmt.Errorf("failed to marshal request body: %w", err))
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, completeURL, body)
	if err != nil {
		return nil, types.NewInternalServiceError(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if input != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	stopTimer := metrics.StartClientRequestDurationTimer(client.GetBaseURL(), method, opts.TemplatePath)

	resp, err := client.GetHttpClient().Do(req)
	if err != nil {
		stopTimer(0)
		if ctx.Err() == context.DeadlineExceeded {
			return nil, types.NewNetworkError(fmt.Errorf("request to %s timed out after %s", opts.TemplatePath, timeout))
		}
		return nil, types.NewNetworkError(fmt.Errorf("request to %s failed: %w", opts.TemplatePath, err))
	}
	defer resp.Body.Close()
	stopTimer(resp.StatusCode)

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, types.NewErrorWithMsg(http.StatusTooManyRequests, types.NetworkError,
			fmt.Sprintf("%s when calling %s", rateLimitMsg, opts.TemplatePath))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Ctx(ctx).Debug().
			Int("status", resp.StatusCode).
			Str("path", opts.TemplatePath).
			Str("body", string(respBody)).
			Msg("non success response")
		return nil, types.NewNetworkError(fmt.Errorf("unexpected status %d from %s", resp.StatusCode, opts.TemplatePath))
	}

	var output R
	if err := json.NewDecoder(resp.Body).Decode(&output); err != nil {
		return nil, types.NewShapeError(fmt.Sprintf("failed to decode %s response: %v", opts.TemplatePath, err))
	}

	return &output, nil
}

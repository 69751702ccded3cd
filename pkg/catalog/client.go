package catalog

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/matst80/slask-discovery/pkg/common/jsoncompat"
	"github.com/matst80/slask-discovery/pkg/types"
)

const SequenceHeader = "X-Request-Sequence"

// TransportError is returned for any non-success answer from the catalog.
type TransportError struct {
	StatusCode int
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("catalog returned status %d", e.StatusCode)
}

// HTTPClient posts filter requests as json to a remote catalog.
type HTTPClient struct {
	httpClient *http.Client
	url        string
	logger     zerolog.Logger
}

func NewHTTPClient(url string, timeout time.Duration, logger zerolog.Logger) *HTTPClient {
	return &HTTPClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		url:    url,
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

func (c *HTTPClient) Search(ctx context.Context, req types.FilterRequest) (*types.CatalogResponse, error) {
	body, err := jsoncompat.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(SequenceHeader, strconv.FormatUint(req.Sequence, 10))

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{StatusCode: resp.StatusCode}
	}

	var result types.CatalogResponse
	if err := jsoncompat.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Products == nil {
		result.Products = []types.Product{}
	}
	c.logger.Debug().
		Uint64("sequence", req.Sequence).
		Int("total", result.TotalCount).
		Dur("took", time.Since(start)).
		Msg("catalog search")
	return &result, nil
}

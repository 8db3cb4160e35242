package taxlookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/freelance_ledger/internal/apperrors"
	"github.com/SscSPs/freelance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/freelance_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/freelance_ledger/internal/middleware"
)

// maxResponseBytes caps how much of a lookup response is read.
const maxResponseBytes = 1 << 20

// Client fetches published tax rules from an external HTTP source.
// The source answers GET {baseURL}/tax-rules/{year} with a partial rule set.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a lookup client. A non-positive timeout uses five seconds.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

var _ portsrepo.TaxRulesLookup = (*Client)(nil)

// FetchTaxRules returns whatever rules the source publishes for year.
// Every failure wraps apperrors.ErrExternalLookup.
func (c *Client) FetchTaxRules(ctx context.Context, year int) (*domain.TaxRulesData, error) {
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.Int("year", year))

	url := c.baseURL + "/tax-rules/" + strconv.Itoa(year)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", apperrors.ErrExternalLookup, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrExternalLookup, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.Debug("Tax rule source returned non-OK status", slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d: %s", apperrors.ErrExternalLookup, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var data domain.TaxRulesData
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", apperrors.ErrExternalLookup, err)
	}

	logger.Debug("Fetched tax rules from external source")
	return &data, nil
}

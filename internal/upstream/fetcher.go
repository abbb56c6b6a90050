package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hyper-a11/cyber-gst-info/internal/models"
	apperrors "github.com/hyper-a11/cyber-gst-info/pkg/errors"
)

// Fetcher retrieves the raw registration record for a GSTIN. Implementations
// signal failure through the upstream ServiceError taxonomy; an empty record
// with a nil error means the upstream simply had no matching rows.
type Fetcher interface {
	Fetch(ctx context.Context, gstin string) (models.RawRecord, error)
}

// browser-style headers the public endpoint expects; without them it rejects
// the request.
var requestHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
	"Accept":          "application/json, text/plain, */*",
	"Accept-Language": "en-IN,en-US;q=0.9,en;q=0.8",
	"Referer":         "https://charteredinfo.com/",
	"Origin":          "https://charteredinfo.com",
	"Connection":      "keep-alive",
}

// Client fetches registration records from the public GST return tracker API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient creates an upstream client with a bounded request timeout. No
// retries: the upstream is unreliable, and a single failed fetch fails the
// request immediately.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     logger,
	}
}

// Fetch performs a single GET against the upstream and flattens the JSON
// payload into a RawRecord.
func (c *Client) Fetch(ctx context.Context, gstin string) (models.RawRecord, error) {
	reqURL := c.baseURL + "?gstin=" + url.QueryEscape(gstin)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternalServer)
	}
	for name, value := range requestHeaders {
		req.Header.Set(name, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			c.logger.Warn("Upstream request timed out", zap.String("gstin", gstin), zap.Error(err))
			return nil, apperrors.Wrap(err, apperrors.ErrUpstreamTimeout)
		}
		c.logger.Warn("Upstream request failed", zap.String("gstin", gstin), zap.Error(err))
		return nil, apperrors.Wrap(err, apperrors.ErrUpstreamUnreachable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Upstream returned non-OK status", zap.String("gstin", gstin), zap.Int("status", resp.StatusCode))
		return nil, apperrors.Wrap(fmt.Errorf("upstream status %d", resp.StatusCode), apperrors.ErrUpstreamUnreachable)
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Warn("Upstream returned unparseable body", zap.String("gstin", gstin), zap.Error(err))
		return nil, apperrors.Wrap(err, apperrors.ErrUpstreamMalformed)
	}

	return Flatten(payload), nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// addrOrder is the order the principal-address components read naturally when
// joined into one line.
var addrOrder = []string{"flno", "bno", "bnm", "st", "loc", "dst", "stcd", "pncd"}

// Flatten turns the upstream JSON payload into the flat label->text mapping
// the normalizer consumes. Top-level scalar fields keep their keys; the nested
// principal-place block contributes "ntr" and a joined address line under
// "adr".
func Flatten(payload map[string]interface{}) models.RawRecord {
	raw := make(models.RawRecord)
	for key, value := range payload {
		if text, ok := value.(string); ok {
			raw[key] = text
		}
	}

	pradr, ok := payload["pradr"].(map[string]interface{})
	if !ok {
		return raw
	}
	if ntr, ok := pradr["ntr"].(string); ok && ntr != "" {
		raw["ntr"] = ntr
	}
	if addr, ok := pradr["addr"].(map[string]interface{}); ok {
		if line := joinAddress(addr); line != "" {
			raw["adr"] = line
		}
	}
	return raw
}

func joinAddress(addr map[string]interface{}) string {
	var parts []string
	for _, key := range addrOrder {
		if text, ok := addr[key].(string); ok {
			if text = strings.TrimSpace(text); text != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, ", ")
}

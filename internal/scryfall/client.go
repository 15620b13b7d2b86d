// Package scryfall looks up card records in the Scryfall API.
package scryfall

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/arcanaland/framesmith/internal/card"
)

// DefaultBaseURL is the public Scryfall API
const DefaultBaseURL = "https://api.scryfall.com"

// ErrNotFound is returned when no card matches a name
var ErrNotFound = errors.New("card not found")

// ArtMode selects which printing supplies the art
type ArtMode string

const (
	ArtDefault  ArtMode = ""         // the printing the fuzzy lookup returns
	ArtEarliest ArtMode = "earliest" // first printing by release date
	ArtLatest   ArtMode = "latest"   // most recent printing
)

// ParseArtMode validates a mode given on the command line
func ParseArtMode(s string) (ArtMode, error) {
	switch m := ArtMode(strings.ToLower(s)); m {
	case ArtDefault, ArtEarliest, ArtLatest:
		return m, nil
	}
	return "", fmt.Errorf("unknown art mode %q (want earliest or latest)", s)
}

// Client implements ports.Catalog
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	mode       ArtMode
	logger     *zap.Logger
}

// NewClient creates a Client. limiter may be shared with other users of the
// API; nil disables rate limiting.
func NewClient(httpClient *http.Client, baseURL string, limiter *rate.Limiter, mode ArtMode, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		limiter:    limiter,
		mode:       mode,
		logger:     logger,
	}
}

// NewLimiter returns a limiter allowing one request per delay
func NewLimiter(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}

// Lookup finds a card by fuzzy name and returns its attributes
func (c *Client) Lookup(ctx context.Context, name string) (card.Attributes, error) {
	var named cardObject
	if err := c.get(ctx, "/cards/named", url.Values{"fuzzy": {name}}, &named); err != nil {
		return card.Attributes{}, fmt.Errorf("error looking up %q: %w", name, err)
	}

	if c.mode == ArtDefault || named.OracleID == "" {
		return named.attributes(), nil
	}

	dir := "asc"
	if c.mode == ArtLatest {
		dir = "desc"
	}
	var prints searchResult
	query := url.Values{
		"q":      {"oracle_id:" + named.OracleID},
		"unique": {"prints"},
		"order":  {"released"},
		"dir":    {dir},
	}
	if err := c.get(ctx, "/cards/search", query, &prints); err != nil {
		c.logger.Warn("printing search failed, using default printing",
			zap.String("card", name), zap.Error(err))
		return named.attributes(), nil
	}
	for _, p := range prints.Data {
		if p.artCrop() != "" {
			c.logger.Debug("selected printing",
				zap.String("card", name), zap.String("mode", string(c.mode)),
				zap.String("set", p.Set), zap.String("number", p.CollectorNumber))
			return p.attributes(), nil
		}
	}
	return named.attributes(), nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "framesmith/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("scryfall returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

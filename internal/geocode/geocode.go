// Package geocode provides a client resolving free-text addresses to
// coordinates via the OpenStreetMap Nominatim search API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/winlux/internal/apperr"
	"github.com/ja-he/winlux/internal/model"
)

// DefaultEndpoint is the public Nominatim search endpoint.
const DefaultEndpoint = "https://nominatim.openstreetmap.org/search"

// Transport sends HTTP requests; *http.Client satisfies it.
type Transport interface {
	Do(*http.Request) (*http.Response, error)
}

// NominatimItem represents a single search result from Nominatim.
type NominatimItem struct {
	Lat         string `json:"lat"`          // "51.5074456",
	Lon         string `json:"lon"`          // "-0.1277653",
	DisplayName string `json:"display_name"` // "London, Greater London, England, United Kingdom",
}

// Client resolves addresses. It sends at most one request per call and does
// not retry.
type Client struct {
	endpoint  string
	userAgent string
	transport Transport
	limiter   *RateLimiter

	mutex      sync.Mutex
	queryCount int
}

// NewClient creates a new geocoding client.
//
// An empty endpoint selects DefaultEndpoint, a nil transport selects an
// http.Client with a timeout, and a nil limiter a fresh one with MinInterval.
// Clients that should share the service's budget must share a limiter.
func NewClient(endpoint, userAgent string, transport Transport, limiter *RateLimiter) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if transport == nil {
		transport = &http.Client{Timeout: 30 * time.Second}
	}
	if limiter == nil {
		limiter = NewRateLimiter(MinInterval)
	}
	return &Client{
		endpoint:  endpoint,
		userAgent: userAgent,
		transport: transport,
		limiter:   limiter,
	}
}

// QueryCount returns the number of requests sent so far.
func (c *Client) QueryCount() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.queryCount
}

// Geocode resolves the given address to its best match.
func (c *Client) Geocode(ctx context.Context, address string) (model.GeocodeResult, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return model.GeocodeResult{}, apperr.New(apperr.Validation, apperr.CodeAddressEmpty)
	}

	query := url.Values{}
	query.Set("q", trimmed)
	query.Set("format", "jsonv2")
	query.Set("limit", "1")
	query.Set("addressdetails", "0")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return model.GeocodeResult{}, apperr.Wrap(apperr.HTTP, apperr.CodeNetworkRequestFailed, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	if err := c.limiter.Acquire(ctx); err != nil {
		return model.GeocodeResult{}, apperr.Wrap(apperr.HTTP, apperr.CodeNetworkRequestFailed, err)
	}

	c.mutex.Lock()
	c.queryCount++
	c.mutex.Unlock()

	start := time.Now()
	response, err := c.transport.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("address", trimmed).Msg("geocoding request failed")
		return model.GeocodeResult{}, apperr.Wrap(apperr.HTTP, apperr.CodeNetworkRequestFailed, err)
	}
	defer response.Body.Close()
	log.Debug().
		Str("address", trimmed).
		Int("status", response.StatusCode).
		Dur("took", time.Since(start)).
		Msg("geocoding request done")

	if response.StatusCode < 200 || response.StatusCode > 299 {
		body, _ := io.ReadAll(response.Body)
		return model.GeocodeResult{}, apperr.New(apperr.HTTP, apperr.CodeGeocodeHTTPFailed).
			WithParam("status", response.Status).
			WithParam("body", string(body))
	}

	items := []NominatimItem{}
	if err := json.NewDecoder(response.Body).Decode(&items); err != nil {
		return model.GeocodeResult{}, apperr.Wrap(apperr.Parse, apperr.CodeGeocodeParseFailed, err)
	}
	if len(items) == 0 {
		return model.GeocodeResult{}, apperr.New(apperr.NotFound, apperr.CodeGeocodeNotFound).
			WithParam("address", trimmed)
	}
	first := items[0]

	latitude, err := strconv.ParseFloat(strings.TrimSpace(first.Lat), 64)
	if err != nil {
		return model.GeocodeResult{}, apperr.Wrap(apperr.Parse, apperr.CodeGeocodeLatitudeParse, err)
	}
	longitude, err := strconv.ParseFloat(strings.TrimSpace(first.Lon), 64)
	if err != nil {
		return model.GeocodeResult{}, apperr.Wrap(apperr.Parse, apperr.CodeGeocodeLongitudeParse, err)
	}

	return model.GeocodeResult{
		Address:     trimmed,
		DisplayName: first.DisplayName,
		Latitude:    latitude,
		Longitude:   longitude,
	}, nil
}

// UserAgent returns the identifying client label for the given version.
func UserAgent(version string) string {
	return fmt.Sprintf("WinLux/%s (+https://github.com/Lparksi/WinLux)", version)
}

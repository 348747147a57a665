package geocode_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja-he/winlux/internal/apperr"
	"github.com/ja-he/winlux/internal/geocode"
)

type transportFunc func(*http.Request) (*http.Response, error)

func (f transportFunc) Do(r *http.Request) (*http.Response, error) { return f(r) }

func newServer(t *testing.T, status int, body string) (*httptest.Server, *[]*http.Request) {
	t.Helper()
	var mutex sync.Mutex
	requests := []*http.Request{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mutex.Lock()
		requests = append(requests, r.Clone(context.Background()))
		mutex.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func TestGeocode(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		server, requests := newServer(t, http.StatusOK, `[{"lat":"51.5074456","lon":"-0.1277653","display_name":"London, Greater London, England, United Kingdom","place_id":1}]`)
		client := geocode.NewClient(server.URL, geocode.UserAgent("1.2.3"), nil, geocode.NewRateLimiter(0))

		result, err := client.Geocode(ctx, "  London  ")
		require.NoError(t, err)
		assert.Equal(t, "London", result.Address)
		assert.Equal(t, "London, Greater London, England, United Kingdom", result.DisplayName)
		assert.InDelta(t, 51.5074456, result.Latitude, 1e-9)
		assert.InDelta(t, -0.1277653, result.Longitude, 1e-9)

		require.Len(t, *requests, 1)
		r := (*requests)[0]
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "London", r.URL.Query().Get("q"))
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "0", r.URL.Query().Get("addressdetails"))
		assert.Equal(t, "WinLux/1.2.3 (+https://github.com/Lparksi/WinLux)", r.Header.Get("User-Agent"))
		assert.Equal(t, 1, client.QueryCount())
	})

	t.Run("empty address never reaches the network", func(t *testing.T) {
		called := false
		client := geocode.NewClient("http://invalid.test", "test", transportFunc(func(*http.Request) (*http.Response, error) {
			called = true
			return nil, errors.New("unexpected")
		}), nil)

		for _, address := range []string{"", "   ", "\t\n"} {
			_, err := client.Geocode(ctx, address)
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.Validation))
			assert.Equal(t, apperr.CodeAddressEmpty, apperr.CodeOf(err))
		}
		assert.False(t, called)
		assert.Equal(t, 0, client.QueryCount())
	})

	t.Run("non-success status", func(t *testing.T) {
		server, _ := newServer(t, http.StatusTooManyRequests, "slow down")
		client := geocode.NewClient(server.URL, "test", nil, geocode.NewRateLimiter(0))

		_, err := client.Geocode(ctx, "London")
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.HTTP))
		var e *apperr.Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, apperr.CodeGeocodeHTTPFailed, e.Code)
		assert.Equal(t, "429 Too Many Requests", e.Params["status"])
		assert.Equal(t, "slow down", e.Params["body"])
	})

	t.Run("malformed body", func(t *testing.T) {
		server, _ := newServer(t, http.StatusOK, `{"not":"a list"`)
		client := geocode.NewClient(server.URL, "test", nil, geocode.NewRateLimiter(0))

		_, err := client.Geocode(ctx, "London")
		assert.True(t, apperr.Is(err, apperr.Parse))
		assert.Equal(t, apperr.CodeGeocodeParseFailed, apperr.CodeOf(err))
	})

	t.Run("no match", func(t *testing.T) {
		server, _ := newServer(t, http.StatusOK, `[]`)
		client := geocode.NewClient(server.URL, "test", nil, geocode.NewRateLimiter(0))

		_, err := client.Geocode(ctx, "Atlantis")
		assert.True(t, apperr.Is(err, apperr.NotFound))
		var e *apperr.Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, "Atlantis", e.Params["address"])
	})

	t.Run("bad coordinates", func(t *testing.T) {
		server, _ := newServer(t, http.StatusOK, `[{"lat":"north","lon":"1.0","display_name":"x"}]`)
		client := geocode.NewClient(server.URL, "test", nil, geocode.NewRateLimiter(0))
		_, err := client.Geocode(ctx, "x")
		assert.True(t, apperr.Is(err, apperr.Parse))
		assert.Equal(t, apperr.CodeGeocodeLatitudeParse, apperr.CodeOf(err))

		server, _ = newServer(t, http.StatusOK, `[{"lat":"1.0","lon":"","display_name":"x"}]`)
		client = geocode.NewClient(server.URL, "test", nil, geocode.NewRateLimiter(0))
		_, err = client.Geocode(ctx, "x")
		assert.True(t, apperr.Is(err, apperr.Parse))
		assert.Equal(t, apperr.CodeGeocodeLongitudeParse, apperr.CodeOf(err))
	})

	t.Run("transport failure is not retried", func(t *testing.T) {
		calls := 0
		client := geocode.NewClient("http://invalid.test", "test", transportFunc(func(*http.Request) (*http.Response, error) {
			calls++
			return nil, errors.New("connection refused")
		}), geocode.NewRateLimiter(0))

		_, err := client.Geocode(ctx, "London")
		assert.True(t, apperr.Is(err, apperr.HTTP))
		assert.Equal(t, apperr.CodeNetworkRequestFailed, apperr.CodeOf(err))
		assert.Equal(t, 1, calls)
	})
}

func TestRateLimiting(t *testing.T) {

	t.Run("sequential calls are spaced by the minimum interval", func(t *testing.T) {
		const n = 3
		server, requests := newServer(t, http.StatusOK, `[{"lat":"1","lon":"2","display_name":"x"}]`)
		client := geocode.NewClient(server.URL, "test", nil, nil)

		start := time.Now()
		for i := 0; i < n; i++ {
			_, err := client.Geocode(context.Background(), "x")
			require.NoError(t, err)
		}
		assert.GreaterOrEqual(t, time.Since(start), (n-1)*geocode.MinInterval)
		assert.Len(t, *requests, n)
	})

	t.Run("concurrent callers are serialized", func(t *testing.T) {
		const n = 4
		const interval = 100 * time.Millisecond
		limiter := geocode.NewRateLimiter(interval)

		var mutex sync.Mutex
		grants := []time.Time{}
		var wg sync.WaitGroup
		start := time.Now()
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, limiter.Acquire(context.Background()))
				mutex.Lock()
				grants = append(grants, time.Now())
				mutex.Unlock()
			}()
		}
		wg.Wait()

		assert.GreaterOrEqual(t, time.Since(start), (n-1)*interval)
		sort.Slice(grants, func(i, j int) bool { return grants[i].Before(grants[j]) })
		for i := 1; i < len(grants); i++ {
			// grants are recorded right after Acquire returns, allow for a
			// little scheduling jitter
			assert.GreaterOrEqual(t, grants[i].Sub(grants[i-1]), interval-10*time.Millisecond)
		}
	})

	t.Run("clients sharing a limiter share its budget", func(t *testing.T) {
		const interval = 100 * time.Millisecond
		server, _ := newServer(t, http.StatusOK, `[{"lat":"1","lon":"2","display_name":"x"}]`)
		limiter := geocode.NewRateLimiter(interval)
		a := geocode.NewClient(server.URL, "test", nil, limiter)
		b := geocode.NewClient(server.URL, "test", nil, limiter)

		start := time.Now()
		_, err := a.Geocode(context.Background(), "x")
		require.NoError(t, err)
		_, err = b.Geocode(context.Background(), "x")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), interval)
	})

	t.Run("cancelled wait grants no permit", func(t *testing.T) {
		limiter := geocode.NewRateLimiter(time.Hour)
		require.NoError(t, limiter.Acquire(context.Background()))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		err := limiter.Acquire(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("first permit is immediate", func(t *testing.T) {
		limiter := geocode.NewRateLimiter(time.Hour)
		start := time.Now()
		require.NoError(t, limiter.Acquire(context.Background()))
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})
}

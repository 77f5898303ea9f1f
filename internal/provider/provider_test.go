package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVIN = "1HGCM82633A004352"

func TestClient_FetchHistory(t *testing.T) {
	t.Run("DecodesHistoryArray", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, fmt.Sprintf("/history/car/%s", testVIN), r.URL.Path)
			assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
			assert.Equal(t, "desc", r.URL.Query().Get("sort_order"))
			fmt.Fprint(w, `[{"id":"mc-1","price":18500,"last_seen_at_date":"2024-03-01"}]`)
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-key")
		records, err := client.FetchHistory(context.Background(), testVIN)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "mc-1", records[0].ID)
		assert.Equal(t, float64(18500), records[0].Price)
	})

	t.Run("NonArrayBodyIsEmptyHistory", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"num_found":0}`)
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-key")
		records, err := client.FetchHistory(context.Background(), testVIN)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("UpstreamFailure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-key")
		_, err := client.FetchHistory(context.Background(), testVIN)
		require.Error(t, err)

		var upstream *UpstreamError
		require.True(t, errors.As(err, &upstream))
		assert.Equal(t, http.StatusTooManyRequests, upstream.StatusCode)
	})

	t.Run("MissingAPIKey", func(t *testing.T) {
		client := NewClient("http://unused.invalid", "")
		_, err := client.FetchHistory(context.Background(), testVIN)
		assert.True(t, errors.Is(err, ErrNoAPIKey))
	})
}

func TestClient_FetchSpecs(t *testing.T) {
	t.Run("DecodesSpecs", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, fmt.Sprintf("/decode/car/%s/specs", testVIN), r.URL.Path)
			fmt.Fprint(w, `{"year":2020,"make":"Honda","model":"Civic","exterior_color":"Blue"}`)
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-key")
		specs, err := client.FetchSpecs(context.Background(), testVIN)
		require.NoError(t, err)
		assert.Equal(t, "2020", specs.Year)
		assert.Equal(t, "Honda", specs.Make)
		assert.Equal(t, "Civic", specs.Model)
		assert.Equal(t, "Blue", specs.ExteriorColor)
	})

	t.Run("YearAsString", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"year":"2020","make":"Honda","model":"Civic","exterior_color":"Blue"}`)
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-key")
		specs, err := client.FetchSpecs(context.Background(), testVIN)
		require.NoError(t, err)
		assert.Equal(t, "2020", specs.Year)
	})

	t.Run("ColorFallbackFromHistory", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == fmt.Sprintf("/decode/car/%s/specs", testVIN) {
				fmt.Fprint(w, `{"year":2020,"make":"Honda","model":"Civic"}`)
				return
			}
			fmt.Fprint(w, `[{"id":"mc-1","exterior_color":"Crystal Black"}]`)
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-key")
		specs, err := client.FetchSpecs(context.Background(), testVIN)
		require.NoError(t, err)
		assert.Equal(t, "Crystal Black", specs.ExteriorColor)
	})

	t.Run("ColorFallbackFailureKeepsSpecs", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == fmt.Sprintf("/decode/car/%s/specs", testVIN) {
				fmt.Fprint(w, `{"year":2020,"make":"Honda","model":"Civic"}`)
				return
			}
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-key")
		specs, err := client.FetchSpecs(context.Background(), testVIN)
		require.NoError(t, err)
		assert.Equal(t, "Honda", specs.Make)
		assert.Equal(t, "", specs.ExteriorColor)
	})
}

package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIClient_Post(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "machine learning", body["query"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"count": 2}}`))
	}))
	defer srv.Close()

	api := &APIClient{baseURL: srv.URL, httpClient: srv.Client()}

	resp, err := api.Post("/search", map[string]string{"query": "machine learning"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"count": 2}`, string(resp.Data))
}

func TestAPIClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`{"data": {"status": "ok"}}`))
	}))
	defer srv.Close()

	api := &APIClient{baseURL: srv.URL, httpClient: srv.Client()}

	resp, err := api.Get("/health")
	require.NoError(t, err)
	assert.Contains(t, string(resp.Data), "ok")
}

func TestAPIClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "query is required"}`))
	}))
	defer srv.Close()

	api := &APIClient{baseURL: srv.URL, httpClient: srv.Client()}

	_, err := api.Post("/search", map[string]string{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "query is required", apiErr.Message)
}

func TestNewAPIClientWithCmd_Cascade(t *testing.T) {
	t.Setenv(envAPIURL, "http://env-host:9999")
	api := NewAPIClientWithCmd(nil)
	assert.Equal(t, "http://env-host:9999", api.baseURL)

	t.Setenv(envAPIURL, "")
	api = NewAPIClientWithCmd(nil)
	assert.Equal(t, defaultAPIURL, api.baseURL)
}

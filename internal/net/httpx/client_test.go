package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSON_DecodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "stockpulse-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"apple","count":3}`))
	}))
	defer srv.Close()

	c := New(5*time.Second, "stockpulse-test")
	var out struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	err := c.GetJSON(context.Background(), srv.URL, url.Values{"symbol": {"AAPL"}}, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "apple", out.Name)
	assert.Equal(t, 3, out.Count)
}

func TestGetJSON_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(5*time.Second, "")
	err := c.GetJSON(context.Background(), srv.URL, nil, nil, nil)
	require.Error(t, err)
	assert.True(t, IsRateLimited(err))

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTooManyRequests, se.Code)
}

func TestGetJSON_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(5*time.Second, "")
	err := c.GetJSON(context.Background(), srv.URL, nil, nil, nil)
	require.Error(t, err)
	assert.False(t, IsRateLimited(err))
}

func TestPostFormJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		w.Write([]byte(`{"access_token":"tok"}`))
	}))
	defer srv.Close()

	c := New(5*time.Second, "")
	var out struct {
		AccessToken string `json:"access_token"`
	}
	err := c.PostFormJSON(context.Background(), srv.URL, url.Values{"grant_type": {"client_credentials"}}, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "tok", out.AccessToken)
}

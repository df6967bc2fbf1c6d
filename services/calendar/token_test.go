package calendar

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func brokerProvider(srv *httptest.Server) *BrokerTokenProvider {
	return &BrokerTokenProvider{
		BaseURL: srv.URL,
		APIKey:  "broker-key",
		Client:  &http.Client{Timeout: 2 * time.Second},
	}
}

func TestBrokerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/connections/owner-1/token", r.URL.Path)
		assert.Equal(t, "Bearer broker-key", r.Header.Get("Authorization"))
		w.Write([]byte(`{"access_token":"tok-123"}`))
	}))
	defer srv.Close()

	token, err := brokerProvider(srv).Token(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
}

func TestBrokerTokenNotConnected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := brokerProvider(srv).Token(context.Background(), "owner-1")
	assert.ErrorIs(t, err, ErrUserNotConnected)
}

func TestBrokerTokenEmptyGrant(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":""}`))
	}))
	defer srv.Close()

	_, err := brokerProvider(srv).Token(context.Background(), "owner-1")
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestBrokerTokenServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := brokerProvider(srv).Token(context.Background(), "owner-1")
	require.Error(t, err)
	var ext *ExternalServiceError
	assert.True(t, errors.As(err, &ext))
}

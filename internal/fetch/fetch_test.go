package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte("Zone1,02/22/18,0,1,0,0,0\n"))
	}))
	defer srv.Close()

	f := New(time.Second, zap.NewNop(), nil)
	body, err := f.Get(context.Background(), "schedule", srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Zone1,02/22/18,0,1,0,0,0\n", string(body))
}

func TestGetRejectsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := New(time.Second, zap.NewNop(), nil)
	_, err := f.Get(context.Background(), "catalogue", srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalogue returned status 404")
}

func TestGetTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	f := New(time.Second, zap.NewNop(), nil)
	_, err := f.Get(context.Background(), "boundaries", url)
	assert.Error(t, err)
}

func TestGetHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := New(5*time.Second, zap.NewNop(), nil)
	_, err := f.Get(ctx, "schedule", srv.URL)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetRejectsOversizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 17)))
	}))
	defer srv.Close()

	f := New(time.Second, zap.NewNop(), nil)
	f.maxBytes = 16
	_, err := f.Get(context.Background(), "schedule", srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schedule response exceeds 16 bytes")

	f.maxBytes = 17
	body, err := f.Get(context.Background(), "schedule", srv.URL)
	require.NoError(t, err)
	assert.Len(t, body, 17)
}

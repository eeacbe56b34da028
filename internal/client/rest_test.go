package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbteutonia/mitgliederbereich/internal/domain"
)

func TestRESTBackendErrorExtraction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/members/with-error":
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"error": "member already exists"}`))
		case "/members/with-message":
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message": "invalid payload"}`))
		default:
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("<html>gateway</html>"))
		}
	}))
	defer srv.Close()

	b := NewRESTBackend(srv.URL)
	ctx := context.Background()

	// The "error" body field becomes the message
	_, err := b.GetMember(ctx, "with-error")
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusConflict, reqErr.Status)
	assert.Equal(t, "member already exists", reqErr.Message)

	// "message" is the fallback field
	_, err = b.GetMember(ctx, "with-message")
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "invalid payload", reqErr.Message)

	// Non-JSON bodies degrade to the generic text
	_, err = b.GetMember(ctx, "other")
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "HTTP 502", reqErr.Message)
	assert.Equal(t, "request failed (502): HTTP 502", reqErr.Error())
}

func TestRESTBackendNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	b := NewRESTBackend(srv.URL)
	assert.NoError(t, b.DeleteMember(context.Background(), "m1"))
}

func TestRESTBackendTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	b := NewRESTBackendWithClient(srv.URL, &http.Client{Timeout: 30 * time.Millisecond})
	_, err := b.ListMembers(context.Background())
	assert.ErrorIs(t, err, ErrTimeout)

	// A canceled context classifies as timeout too
	b2 := NewRESTBackend(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err = b2.ListMembers(ctx)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestRESTBackendNetworkError(t *testing.T) {
	// Nothing listens here
	b := NewRESTBackend("http://127.0.0.1:1")
	_, err := b.ListMembers(context.Background())
	assert.ErrorIs(t, err, ErrNetwork)
	assert.False(t, errors.Is(err, ErrTimeout))
}

func TestRESTBackendRoundTrips(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/meals":
			assert.Equal(t, "2026", r.URL.Query().Get("year"))
			assert.Equal(t, "11", r.URL.Query().Get("week"))
			w.Write([]byte(`[{"year":2026,"week":11,"day_index":2,"hauptgericht":"Gulasch"}]`))
		case r.Method == http.MethodPost && r.URL.Path == "/members/login":
			w.Write([]byte(`[{"id":"m1","full_name":"Theo Reichert"}]`))
		case r.Method == http.MethodGet && r.URL.Path == "/expenses":
			assert.Equal(t, "2026-02-01", r.URL.Query().Get("start_date"))
			w.Write([]byte(`[{"member_id":"m1","category":"meals","amount":6}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	b := NewRESTBackend(srv.URL)
	ctx := context.Background()

	meals, err := b.MealsForWeek(ctx, 2026, 11)
	require.NoError(t, err)
	require.Len(t, meals, 1)
	assert.Equal(t, "Gulasch", meals[0].Hauptgericht)

	matches, err := b.LoginLookup(ctx, "Theo Reichert")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "m1", matches[0].ID)

	expenses, err := b.ListExpenses(ctx, "2026-02-01")
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, domain.ExpenseMeals, expenses[0].Category)
}

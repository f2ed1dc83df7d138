package netx

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chatfiles/chatfiles/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressReader_ReportsMonotonicProgress(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 100_000)

	var events []models.Progress
	pr := NewProgressReader(bytes.NewReader(payload), int64(len(payload)), func(p models.Progress) {
		events = append(events, p)
	})

	got, err := io.ReadAll(pr)
	require.NoError(t, err)
	require.Equal(t, payload, got)
	require.NotEmpty(t, events)

	prev := -1
	for _, e := range events {
		assert.GreaterOrEqual(t, e.Percentage, prev)
		prev = e.Percentage
	}
	assert.Equal(t, 100, events[len(events)-1].Percentage)
	assert.Equal(t, int64(len(payload)), pr.Loaded())
}

func TestProgressReader_UnknownTotalEmitsNothing(t *testing.T) {
	var calls int
	pr := NewProgressReader(strings.NewReader("abc"), 0, func(models.Progress) { calls++ })

	_, err := io.ReadAll(pr)
	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(http.StatusForbidden) // any status counts as reachable
	}))
	defer srv.Close()

	assert.True(t, Probe(context.Background(), srv.Client(), srv.URL))

	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close()
	assert.False(t, Probe(context.Background(), http.DefaultClient, dead.URL))
}

func TestPutWithProgress_Success(t *testing.T) {
	body := []byte("file-bytes")

	var gotBody []byte
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		gotContentType = r.Header.Get("Content-Type")
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		gotBody = b
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	var events []models.Progress
	err := PutWithProgress(context.Background(), srv.Client(), srv.URL+"/bucket/key", "image/jpeg", body, func(p models.Progress) {
		events = append(events, p)
	})
	require.NoError(t, err)
	assert.Equal(t, body, gotBody)
	assert.Equal(t, "image/jpeg", gotContentType)
	require.NotEmpty(t, events)
	assert.Equal(t, 100, events[len(events)-1].Percentage)
}

func TestPutWithProgress_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer srv.Close()

	err := PutWithProgress(context.Background(), srv.Client(), srv.URL, "text/plain", []byte("x"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestPutWithProgress_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	err := PutWithProgress(context.Background(), http.DefaultClient, srv.URL, "text/plain", []byte("x"), nil)
	require.Error(t, err)
}

func TestReadAllWithProgress(t *testing.T) {
	payload := bytes.Repeat([]byte("y"), 90_000)

	var events []models.Progress
	got, err := ReadAllWithProgress(bytes.NewReader(payload), int64(len(payload)), func(p models.Progress) {
		events = append(events, p)
	})
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	require.NotEmpty(t, events)
	prev := -1
	for _, e := range events {
		assert.GreaterOrEqual(t, e.Percentage, prev)
		prev = e.Percentage
	}
	assert.Equal(t, 100, events[len(events)-1].Percentage)
}

func TestReadAllWithProgress_UnknownLength(t *testing.T) {
	var calls int
	got, err := ReadAllWithProgress(strings.NewReader("hello"), -1, func(models.Progress) { calls++ })
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got)
	assert.Zero(t, calls)
}

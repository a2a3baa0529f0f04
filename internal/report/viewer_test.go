package report

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewerLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/reports/overview", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"report_period":"August 2026"}`))
	}))
	defer srv.Close()

	v := NewViewer(srv.URL, KindOverview)

	_, ok := v.Current()
	assert.False(t, ok)

	require.NoError(t, v.Load(context.Background(), nil))

	payload, ok := v.Current()
	require.True(t, ok)
	assert.JSONEq(t, `{"report_period":"August 2026"}`, string(payload))
	assert.False(t, v.Stale())
	assert.NoError(t, v.Err())
}

func TestViewerDiscardsSupersededResponse(t *testing.T) {
	slowStarted := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("period") == "year" {
			close(slowStarted)
			<-release
			w.Write([]byte(`{"request":"first"}`))
			return
		}
		w.Write([]byte(`{"request":"second"}`))
	}))
	defer srv.Close()

	v := NewViewer(srv.URL, KindFinancial)

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- v.Load(context.Background(), map[string]string{"period": "year"})
	}()

	// The second request is issued while the first is still in flight
	// and completes before it.
	<-slowStarted
	require.NoError(t, v.Load(context.Background(), map[string]string{"period": "month"}))

	close(release)
	require.NoError(t, <-firstDone)

	// The late first response must not overwrite the newer payload
	payload, ok := v.Current()
	require.True(t, ok)
	assert.JSONEq(t, `{"request":"second"}`, string(payload))
	assert.False(t, v.Stale())
}

func TestViewerKeepsStalePayloadOnFailure(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"report_period":"August 2026"}`))
	}))
	defer srv.Close()

	v := NewViewer(srv.URL, KindCustomer)
	require.NoError(t, v.Load(context.Background(), nil))

	fail.Store(true)
	err := v.Load(context.Background(), nil)
	require.Error(t, err)

	// The previous payload survives the failed refresh, marked stale
	payload, ok := v.Current()
	require.True(t, ok)
	assert.JSONEq(t, `{"report_period":"August 2026"}`, string(payload))
	assert.True(t, v.Stale())
	assert.Error(t, v.Err())

	v.ClearErr()
	assert.NoError(t, v.Err())

	// A later successful refresh clears the stale flag
	fail.Store(false)
	require.NoError(t, v.Load(context.Background(), nil))
	assert.False(t, v.Stale())
}

func TestViewerNoData(t *testing.T) {
	var body atomic.Value
	body.Store(`{"top_customers":[]}`)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body.Load().(string)))
	}))
	defer srv.Close()

	v := NewViewer(srv.URL, KindCustomer)

	// An empty document is a successful load in the no-data state,
	// not a fetch failure.
	body.Store(`{}`)
	require.NoError(t, v.Load(context.Background(), nil))
	_, ok := v.Current()
	assert.True(t, ok)
	assert.True(t, v.NoData())
	assert.NoError(t, v.Err())
	assert.False(t, v.Stale())

	// Records arriving later clear the no-data state
	body.Store(`{"top_customers":[{"customer_id":1}]}`)
	require.NoError(t, v.Load(context.Background(), nil))
	assert.False(t, v.NoData())
}

func TestViewerFirstLoadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	v := NewViewer(srv.URL, KindInventory)
	require.Error(t, v.Load(context.Background(), nil))

	// Nothing was ever committed, so there is nothing stale to show
	_, ok := v.Current()
	assert.False(t, ok)
	assert.False(t, v.Stale())
	assert.False(t, v.NoData())
	assert.Error(t, v.Err())
}

package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
)

// Viewer holds the report payload for one report view and keeps it
// consistent under overlapping fetches. Each Load takes a monotonic
// request token; a response is committed only while its token is still
// the newest one issued, so a stale response arriving after a newer
// request is discarded instead of overwriting fresher data.
type Viewer struct {
	kind   string
	client *resty.Client

	seq atomic.Uint64

	mu      sync.Mutex
	payload json.RawMessage
	loaded  bool
	noData  bool
	stale   bool
	lastErr error
}

// NewViewer creates a viewer for one report kind fetching from the
// given base URL.
func NewViewer(baseURL, kind string) *Viewer {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(30 * time.Second)
	return &Viewer{kind: kind, client: client}
}

// Load fetches the report with the given query parameters. If a newer
// Load has been issued by the time the response arrives, the result is
// dropped and the newer request decides the view state. A failed fetch
// keeps the previously committed payload, marked stale.
func (v *Viewer) Load(ctx context.Context, params map[string]string) error {
	token := v.seq.Add(1)

	resp, err := v.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get("/api/reports/" + v.kind)

	v.mu.Lock()
	defer v.mu.Unlock()

	// Superseded by a newer request: discard, whatever the outcome.
	if token != v.seq.Load() {
		return nil
	}

	if err != nil {
		v.lastErr = err
		v.stale = v.loaded
		return err
	}
	if resp.IsError() {
		v.lastErr = fmt.Errorf("%s report fetch failed: %s", v.kind, resp.Status())
		v.stale = v.loaded
		return v.lastErr
	}

	body := resp.Body()
	v.payload = append(json.RawMessage(nil), body...)
	v.loaded = true
	v.noData = emptyPayload(body)
	v.stale = false
	v.lastErr = nil
	return nil
}

// emptyPayload reports whether a committed response body carries no
// records. An empty body, a JSON null or an empty document all count.
func emptyPayload(body []byte) bool {
	switch s := strings.TrimSpace(string(body)); s {
	case "", "null", "{}", "[]":
		return true
	}
	return false
}

// Current returns the last committed payload. ok is false until the
// first successful load.
func (v *Viewer) Current() (payload json.RawMessage, ok bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.payload, v.loaded
}

// NoData reports whether the last committed fetch succeeded but
// carried no records. This is a normal view state, distinct from a
// fetch failure: Err stays nil and the view shows an empty report.
func (v *Viewer) NoData() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded && v.noData
}

// Stale reports whether the committed payload predates a failed fetch
func (v *Viewer) Stale() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stale
}

// Err returns the error of the most recent non-superseded fetch, or
// nil after a success. It is the view's dismissible error banner.
func (v *Viewer) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastErr
}

// ClearErr dismisses the error banner
func (v *Viewer) ClearErr() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastErr = nil
}

// Package bridgetest provides an in-process host that speaks the bridge
// wire protocol, for tests.
package bridgetest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/csheth/cutout/internal/bridge"
)

// Host records calls and streams queued events to every subscriber.
type Host struct {
	mu      sync.Mutex
	calls   []Recorded
	fail    map[string]int
	events  chan bridge.Event
	onCall  func(method string, h *Host)
	server  *httptest.Server
	closing chan struct{}
	once    sync.Once
}

// Recorded is one received call.
type Recorded struct {
	Method  string
	DataURL string
}

// NewHost starts an httptest server. Events pushed before a subscriber
// connects are buffered.
func NewHost() *Host {
	h := &Host{
		fail:    map[string]int{},
		events:  make(chan bridge.Event, 64),
		closing: make(chan struct{}),
	}
	h.server = httptest.NewServer(h)
	return h
}

// URL is the endpoint to hand to bridge.NewClient.
func (h *Host) URL() string {
	return h.server.URL
}

// Close stops the server and ends open event streams.
func (h *Host) Close() {
	h.once.Do(func() { close(h.closing) })
	h.server.Close()
}

// Push queues an event for the stream.
func (h *Host) Push(ev bridge.Event) {
	h.events <- ev
}

// FailWith makes every call to method answer with status.
func (h *Host) FailWith(method string, status int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fail[method] = status
}

// OnCall registers a hook run after each successful call, e.g. to push the
// events a real host would emit.
func (h *Host) OnCall(fn func(method string, h *Host)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onCall = fn
}

// Calls returns the calls received so far.
func (h *Host) Calls() []Recorded {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Recorded(nil), h.calls...)
}

// Methods returns the method names received so far.
func (h *Host) Methods() []string {
	calls := h.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Method
	}
	return out
}

func (h *Host) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet && r.URL.Path == "/api/events" {
		h.serveEvents(w, r)
		return
	}
	if r.Method != http.MethodPost || !strings.HasPrefix(r.URL.Path, "/api/") {
		http.NotFound(w, r)
		return
	}
	method := strings.TrimPrefix(r.URL.Path, "/api/")
	var body struct {
		DataURL string `json:"data_url"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	h.mu.Lock()
	h.calls = append(h.calls, Recorded{Method: method, DataURL: body.DataURL})
	status := h.fail[method]
	hook := h.onCall
	h.mu.Unlock()

	if status != 0 {
		http.Error(w, method+" unavailable", status)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	if hook != nil {
		hook(method, h)
	}
}

func (h *Host) serveEvents(w http.ResponseWriter, r *http.Request) {
	flusher, _ := w.(http.Flusher)
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)
	if flusher != nil {
		flusher.Flush()
	}
	enc := json.NewEncoder(w)
	for {
		select {
		case ev := <-h.events:
			if err := enc.Encode(ev); err != nil {
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		case <-r.Context().Done():
			return
		case <-h.closing:
			return
		}
	}
}

// Package bridge is the request/response boundary to the host runtime that
// owns the image engine, the native dialogs and the window.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Method names used on the wire.
const (
	MethodSelectImage          = "select_image"
	MethodSaveImage            = "save_image"
	MethodSelectInputFolder    = "select_input_folder"
	MethodSelectOutputFolder   = "select_output_folder"
	MethodStartBatch           = "start_batch_processing"
	MethodStopBatch            = "stop_batch_processing"
	MethodMinimizeWindow       = "minimize_window"
	MethodToggleMaximizeWindow = "toggle_maximize_window"
	MethodCloseWindow          = "close_window"
)

// API is the host surface. Each call resolves independently; results of
// long running work come back later as Events.
type API interface {
	SelectImage(ctx context.Context) error
	SaveImage(ctx context.Context, dataURL string) error
	SelectInputFolder(ctx context.Context) error
	SelectOutputFolder(ctx context.Context) error
	StartBatch(ctx context.Context) error
	StopBatch(ctx context.Context) error
	MinimizeWindow(ctx context.Context) error
	ToggleMaximizeWindow(ctx context.Context) error
	CloseWindow(ctx context.Context) error
	// Events streams host events until ctx ends or the stream breaks. The
	// error channel receives at most one value and is closed afterwards.
	Events(ctx context.Context) (<-chan Event, <-chan error)
}

// EventType enumerates host to UI events.
type EventType string

const (
	EventReady        EventType = "ready"
	EventSingleResult EventType = "single_result"
	EventProgress     EventType = "progress"
	EventLog          EventType = "log"
	EventNotify       EventType = "notify"
	EventFolder       EventType = "folder"
	EventBatch        EventType = "batch"
	EventLoading      EventType = "loading"
)

// Folder roles carried by EventFolder.
const (
	FolderInput  = "input"
	FolderOutput = "output"
)

// Event is one host notification. Only the fields relevant to Type are set.
type Event struct {
	Type      EventType `json:"type"`
	Message   string    `json:"message,omitempty"`
	Kind      string    `json:"kind,omitempty"`
	Percent   float64   `json:"percent,omitempty"`
	Original  string    `json:"original,omitempty"`
	Processed string    `json:"processed,omitempty"`
	Folder    string    `json:"folder,omitempty"`
	Path      string    `json:"path,omitempty"`
	Running   bool      `json:"running,omitempty"`
	Busy      bool      `json:"busy,omitempty"`
}

// DecodeEvent parses one JSON line.
func DecodeEvent(line []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(line, &ev); err != nil {
		return Event{}, fmt.Errorf("decode host event: %w", err)
	}
	if ev.Type == "" {
		return Event{}, fmt.Errorf("decode host event: missing type")
	}
	return ev, nil
}

const pngDataURLPrefix = "data:image/png;base64,"

// PNGDataURL wraps a base64 PNG payload the way SaveImage expects it.
func PNGDataURL(b64 string) string {
	if strings.HasPrefix(b64, pngDataURLPrefix) {
		return b64
	}
	return pngDataURLPrefix + b64
}

// SplitDataURL returns the base64 part of a data URL, or the input when it
// carries no data URL header.
func SplitDataURL(value string) string {
	if !strings.HasPrefix(value, "data:") {
		return value
	}
	if idx := strings.IndexByte(value, ','); idx >= 0 {
		return value[idx+1:]
	}
	return value
}

// APIError is returned for host responses with an error status.
type APIError struct {
	Method string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("host %s: status %d", e.Method, e.Status)
	}
	return fmt.Sprintf("host %s: status %d (%s)", e.Method, e.Status, e.Body)
}

package bridge

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultCallTimeout = 30 * time.Second

// Config describes how to reach the host.
type Config struct {
	Endpoint   string
	Timeout    time.Duration
	HTTPClient *http.Client

	// Logger receives stream diagnostics such as undecodable lines. Nil
	// discards them.
	Logger *zerolog.Logger
}

// Client talks to the host over HTTP: POST /api/<method> for calls and a
// JSON lines stream on GET /api/events.
type Client struct {
	host    string
	timeout time.Duration
	client  *http.Client
	log     zerolog.Logger
}

var _ API = (*Client)(nil)

// NewClient validates cfg and returns a Client.
func NewClient(cfg Config) (*Client, error) {
	host := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	if host == "" {
		return nil, errors.New("bridge: host endpoint is required")
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	client := cfg.HTTPClient
	if client == nil {
		// No client-level timeout: the event stream is long lived. Calls
		// get a per-request deadline instead.
		client = &http.Client{}
	}
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = cfg.Logger.With().Str("component", "bridge").Logger()
	}
	return &Client{host: host, timeout: timeout, client: client, log: log}, nil
}

// Endpoint returns the normalized host URL.
func (c *Client) Endpoint() string {
	return c.host
}

func (c *Client) SelectImage(ctx context.Context) error {
	return c.call(ctx, MethodSelectImage, nil)
}

func (c *Client) SaveImage(ctx context.Context, dataURL string) error {
	if strings.TrimSpace(dataURL) == "" {
		return errors.New("bridge: save_image needs a payload")
	}
	return c.call(ctx, MethodSaveImage, map[string]string{"data_url": dataURL})
}

func (c *Client) SelectInputFolder(ctx context.Context) error {
	return c.call(ctx, MethodSelectInputFolder, nil)
}

func (c *Client) SelectOutputFolder(ctx context.Context) error {
	return c.call(ctx, MethodSelectOutputFolder, nil)
}

func (c *Client) StartBatch(ctx context.Context) error {
	return c.call(ctx, MethodStartBatch, nil)
}

func (c *Client) StopBatch(ctx context.Context) error {
	return c.call(ctx, MethodStopBatch, nil)
}

func (c *Client) MinimizeWindow(ctx context.Context) error {
	return c.call(ctx, MethodMinimizeWindow, nil)
}

func (c *Client) ToggleMaximizeWindow(ctx context.Context) error {
	return c.call(ctx, MethodToggleMaximizeWindow, nil)
}

func (c *Client) CloseWindow(ctx context.Context) error {
	return c.call(ctx, MethodCloseWindow, nil)
}

func (c *Client) call(ctx context.Context, method string, payload any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if payload == nil {
		payload = struct{}{}
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/"+method, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("host %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{Method: method, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Events opens the host event stream.
func (c *Client) Events(ctx context.Context) (<-chan Event, <-chan error) {
	events := make(chan Event)
	errs := make(chan error, 1)
	go func() {
		defer close(events)
		defer close(errs)
		if err := c.stream(ctx, events); err != nil {
			errs <- err
		}
	}()
	return events, errs
}

func (c *Client) stream(ctx context.Context, out chan<- Event) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"/api/events", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/x-ndjson")
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("host events: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{Method: "events", Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	reader := bufio.NewReader(resp.Body)
	for {
		line, readErr := reader.ReadBytes('\n')
		if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
			// A bad line is dropped; the events after it still arrive.
			if ev, err := DecodeEvent(trimmed); err != nil {
				c.log.Warn().Err(err).Str("line", clip(trimmed, 200)).Msg("skipping undecodable host event")
			} else {
				select {
				case out <- ev:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return io.EOF
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("host events: %w", readErr)
		}
	}
}

func clip(line []byte, n int) string {
	if len(line) <= n {
		return string(line)
	}
	return string(line[:n]) + "..."
}

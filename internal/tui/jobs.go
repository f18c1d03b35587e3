package tui

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/csheth/cutout/internal/bridge"
)

type jobStatus string

const (
	jobStatusRunning   jobStatus = "running"
	jobStatusSucceeded jobStatus = "succeeded"
	jobStatusFailed    jobStatus = "failed"
)

type jobSnapshot struct {
	ID          string
	Method      string
	Status      jobStatus
	StartedAt   time.Time
	CompletedAt time.Time
	Err         string
	Duration    time.Duration
}

type jobSignalMsg struct {
	Snapshot jobSnapshot
}

type jobResultMsg struct {
	Snapshot jobSnapshot
	Err      error
}

// jobBus runs bridge calls off the update loop and reports their lifecycle
// back as messages.
type jobBus struct {
	counter int64
	api     bridge.API
	ctx     context.Context
	log     zerolog.Logger
}

func newJobBus(ctx context.Context, api bridge.API, log zerolog.Logger) *jobBus {
	return &jobBus{
		api: api,
		ctx: ctx,
		log: log.With().Str("component", "jobs").Logger(),
	}
}

func (b *jobBus) nextID(method string) string {
	idx := atomic.AddInt64(&b.counter, 1)
	return fmt.Sprintf("%s-%d", method, idx)
}

func (b *jobBus) Start(call bridge.Call) tea.Cmd {
	id := b.nextID(call.Name)
	started := time.Now()
	startSnapshot := jobSnapshot{ID: id, Method: call.Name, Status: jobStatusRunning, StartedAt: started}
	startCmd := func() tea.Msg {
		return jobSignalMsg{Snapshot: startSnapshot}
	}

	api := b.api
	parent := b.ctx
	runCmd := func() tea.Msg {
		var err error
		if api == nil {
			err = fmt.Errorf("no host configured")
		} else {
			err = call.Run(parent, api)
		}
		snapshot := jobSnapshot{
			ID:          id,
			Method:      call.Name,
			StartedAt:   started,
			CompletedAt: time.Now(),
		}
		if err != nil {
			snapshot.Status = jobStatusFailed
			snapshot.Err = err.Error()
		} else {
			snapshot.Status = jobStatusSucceeded
		}
		snapshot.Duration = snapshot.CompletedAt.Sub(started)
		b.log.Debug().
			Str("method", call.Name).
			Str("status", string(snapshot.Status)).
			Dur("duration", snapshot.Duration).
			Err(err).
			Msg("bridge call finished")
		return jobResultMsg{Snapshot: snapshot, Err: err}
	}

	return tea.Sequence(startCmd, runCmd)
}

func callFor(method string) bridge.Call {
	return bridge.Call{
		Name: method,
		Run: func(ctx context.Context, api bridge.API) error {
			switch method {
			case bridge.MethodSelectImage:
				return api.SelectImage(ctx)
			case bridge.MethodSelectInputFolder:
				return api.SelectInputFolder(ctx)
			case bridge.MethodSelectOutputFolder:
				return api.SelectOutputFolder(ctx)
			case bridge.MethodStartBatch:
				return api.StartBatch(ctx)
			case bridge.MethodStopBatch:
				return api.StopBatch(ctx)
			case bridge.MethodMinimizeWindow:
				return api.MinimizeWindow(ctx)
			case bridge.MethodToggleMaximizeWindow:
				return api.ToggleMaximizeWindow(ctx)
			case bridge.MethodCloseWindow:
				return api.CloseWindow(ctx)
			default:
				return fmt.Errorf("unsupported bridge method %q", method)
			}
		},
	}
}

func saveCall(processed string) bridge.Call {
	dataURL := bridge.PNGDataURL(processed)
	return bridge.Call{
		Name: bridge.MethodSaveImage,
		Run: func(ctx context.Context, api bridge.API) error {
			return api.SaveImage(ctx, dataURL)
		},
	}
}

package tui

import (
	"time"

	"github.com/csheth/cutout/internal/bridge"
	"github.com/csheth/cutout/internal/uistate"
)

const (
	appTitle       = "cutout"
	appTagline     = "AI background remover"
	welcomeMessage = "Welcome to cutout!"
	readyMessage   = "Application initialized successfully!"
	dropMessage    = "Drag and drop support coming soon!"
)

const (
	minContentWidth   = 40
	minContentHeight  = 10
	menuWidth         = 18
	toastWidth        = 40
	defaultWidth      = 100
	defaultHeight     = 30
	consoleMinHeight  = 4
	defaultReconnect  = 2 * time.Second
	maxReconnectDelay = 30 * time.Second
	defaultWelcomeIn  = time.Second
	defaultExportDir  = "."
	waitingForHostMsg = "waiting for host"
)

var tabLabels = map[uistate.Tab]string{
	uistate.TabSingle:   "Single Image",
	uistate.TabBatch:    "Batch Process",
	uistate.TabSettings: "Settings",
}

var actionLabels = map[string]string{
	bridge.MethodSelectImage:          "Select image",
	bridge.MethodSaveImage:            "Save image",
	bridge.MethodSelectInputFolder:    "Select input folder",
	bridge.MethodSelectOutputFolder:   "Select output folder",
	bridge.MethodStartBatch:           "Start batch",
	bridge.MethodStopBatch:            "Stop batch",
	bridge.MethodMinimizeWindow:       "Minimize window",
	bridge.MethodToggleMaximizeWindow: "Maximize window",
	bridge.MethodCloseWindow:          "Close window",
}

func actionLabel(method string) string {
	if label, ok := actionLabels[method]; ok {
		return label
	}
	return method
}

// Zone ids for mouse targets.
const (
	zoneMenuPrefix  = "menu:"
	zoneThemePrefix = "theme:"
	zoneToastPrefix = "toast:"
	zoneMinimize    = "chrome:minimize"
	zoneMaximize    = "chrome:maximize"
	zoneClose       = "chrome:close"
	zoneDrop        = "single:drop"
	zoneSave        = "single:save"
	zoneExport      = "single:export"
	zoneInput       = "batch:input"
	zoneOutput      = "batch:output"
	zoneStart       = "batch:start"
	zoneStop        = "batch:stop"
	zoneClearLog    = "batch:clear"
)

type singleResult struct {
	Original  string
	Processed string
}

type folderSelection struct {
	Input  string
	Output string
}

type hostEventMsg struct {
	Event bridge.Event
}

type streamOpenedMsg struct {
	events <-chan bridge.Event
	errs   <-chan error
}

type streamClosedMsg struct {
	err error
}

type reconnectMsg struct{}

type welcomeMsg struct{}

type exportResultMsg struct {
	path string
	err  error
}

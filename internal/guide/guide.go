package guide

import (
	"fmt"
	"strings"
)

// Step represents one actionable hint in the help overlay.
type Step struct {
	Title       string
	Description string
}

// Metadata carries just enough context for personalizing guide steps.
type Metadata struct {
	HostURL   string
	ExportDir string
	Mouse     bool
}

// Build returns the getting-started checklist shown with the key help.
func Build(meta Metadata) []Step {
	host := strings.TrimSpace(meta.HostURL)
	if host == "" {
		host = "the host"
	}
	exportDir := strings.TrimSpace(meta.ExportDir)
	if exportDir == "" {
		exportDir = "the current directory"
	}
	click := ""
	if meta.Mouse {
		click = " or click the drop area"
	}

	return []Step{
		{
			Title:       "Connect",
			Description: fmt.Sprintf("cutout talks to %s. Actions typed before it reports ready are queued and sent once it is.", host),
		},
		{
			Title:       "Remove a background",
			Description: fmt.Sprintf("On the Single tab press ctrl+o%s to pick an image. The original and the cutout appear side by side.", click),
		},
		{
			Title:       "Keep the result",
			Description: fmt.Sprintf("Press s to save through the host's dialog, or e to write processed_<time>.png into %s.", exportDir),
		},
		{
			Title:       "Process a folder",
			Description: "On the Batch tab choose input (i) and output (o) folders, then enter to start and x to stop. Progress and log lines stream in as the host works.",
		},
		{
			Title:       "Make it yours",
			Description: "Settings switches between the dark and light themes. The choice is remembered for the next launch.",
		},
	}
}

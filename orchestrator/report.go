package orchestrator

import (
	"fmt"
	"strings"
	"time"
)

// BuildReport renders a run summary as Markdown. The server renders it to
// HTML on request; the CLI just writes it next to the document.
func BuildReport(r RunResult) string {
	var sb strings.Builder
	sb.WriteString("# Generation report\n\n")
	sb.WriteString(fmt.Sprintf("Request: %s\n\n", r.Request))
	if r.ThemeContext != "" {
		sb.WriteString(fmt.Sprintf("Theme: %s\n\n", r.ThemeContext))
	}
	sb.WriteString(fmt.Sprintf("Output: `%s` (took %s)\n\n", r.OutputPath, r.Duration.Round(time.Millisecond)))

	sb.WriteString("## Sections\n\n")
	failed := make(map[string]bool, len(r.FailedSections))
	for _, name := range r.FailedSections {
		failed[name] = true
	}
	for _, name := range r.Sections {
		status := "ok"
		if failed[name] {
			status = "failed, placeholder rendered"
		}
		sb.WriteString(fmt.Sprintf("- `%s`: %s\n", name, status))
	}

	if len(r.Images) > 0 {
		sb.WriteString("\n## Images\n\n")
		for _, img := range r.Images {
			if img.Err != "" {
				sb.WriteString(fmt.Sprintf("- `%s`: failed: %s\n", img.Filename, img.Err))
			} else {
				sb.WriteString(fmt.Sprintf("- `%s`: written to %s\n", img.Filename, img.Path))
			}
		}
	}
	return sb.String()
}

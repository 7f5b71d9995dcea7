// Package fixtures embeds the default dashboard records.
package fixtures

import "embed"

// Files of the fixture set.
const (
	LeadsFile           = "leads.json"
	CallsFile           = "calls.json"
	NotificationsFile   = "notifications.json"
	SystemLogsFile      = "system_logs.json"
	WorkflowMetricsFile = "workflow_metrics.json"
)

//go:embed *.json
var FS embed.FS

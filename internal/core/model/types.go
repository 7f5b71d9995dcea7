package model

import "time"

// Email is a triaged inbound email. Confidence and Classification are
// fixture data; nothing in this module recomputes them.
type Email struct {
	ID             string    `json:"id"`
	Sender         string    `json:"sender"`
	Subject        string    `json:"subject"`
	ReceivedAt     time.Time `json:"receivedAt"`
	Confidence     int       `json:"confidence"`
	Classification string    `json:"classification"`
	ProjectName    string    `json:"projectName,omitempty"`
	ProjectID      string    `json:"projectId,omitempty"`
	Priority       string    `json:"priority"`
	Status         string    `json:"status"`
	Attachments    []string  `json:"attachments"`
	Snippet        string    `json:"snippet"`
	FullBody       string    `json:"fullBody"`
}

// Call is a transcribed phone call.
type Call struct {
	ID            string    `json:"id"`
	Caller        string    `json:"caller"`
	Timestamp     time.Time `json:"timestamp"`
	Duration      string    `json:"duration"`
	Urgency       string    `json:"urgency"`
	ProjectName   string    `json:"projectName,omitempty"`
	ProjectID     string    `json:"projectId,omitempty"`
	Summary       string    `json:"summary"`
	Transcription string    `json:"transcription"`
	Tags          []string  `json:"tags"`
	ActionItems   []string  `json:"actionItems"`
	Confidence    int       `json:"confidence"`
}

// HasTag reports whether the call carries the given tag.
func (c Call) HasTag(tag string) bool {
	return contains(c.Tags, tag)
}

// Project is a construction project. Name is unique and is what the
// fixtures use to reference it.
type Project struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Client         string     `json:"client"`
	Value          string     `json:"value"`
	Status         string     `json:"status"`
	StartDate      time.Time  `json:"startDate"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	ProjectManager string     `json:"projectManager"`
	Description    string     `json:"description"`
	LastActivity   time.Time  `json:"lastActivity"`
}

// Notification is a recent alert pushed to a Slack channel.
type Notification struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Channel     string    `json:"channel"`
	ProjectName string    `json:"projectName,omitempty"`
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
}

// SlackChannel is an alert destination.
type SlackChannel struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Active     bool     `json:"active"`
	AlertTypes []string `json:"alertTypes"`
}

// LogEntry is a system log line shown on the admin view.
type LogEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Service   string    `json:"service"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Duration  string    `json:"duration,omitempty"`
}

// WorkflowMetrics holds the headline figures of the overview.
type WorkflowMetrics struct {
	EmailProcessing struct {
		Today                int     `json:"today"`
		AccuracyRate         float64 `json:"accuracyRate"`
		AutoRoutedPercentage float64 `json:"autoRoutedPercentage"`
		ProcessingTimeAvg    string  `json:"processingTimeAvg"`
	} `json:"emailProcessing"`
	CallProcessing struct {
		Today                 int     `json:"today"`
		TranscriptionAccuracy float64 `json:"transcriptionAccuracy"`
	} `json:"callProcessing"`
	SlackNotifications struct {
		Sent         int     `json:"sent"`
		DeliveryRate float64 `json:"deliveryRate"`
	} `json:"slackNotifications"`
	ProjectBinders struct {
		ActiveProjects int `json:"activeProjects"`
	} `json:"projectBinders"`
}

// PerformanceMetrics are the system health figures on the admin view.
type PerformanceMetrics struct {
	SystemUptime        string `json:"systemUptime"`
	AverageResponseTime string `json:"averageResponseTime"`
	MemoryUsage         string `json:"memoryUsage"`
	ActiveConnections   int    `json:"activeConnections"`
	QueuedTasks         int    `json:"queuedTasks"`
}

// QueueBacklogged reports whether the task queue is longer than the admin
// view tolerates.
func (p PerformanceMetrics) QueueBacklogged() bool {
	return p.QueuedTasks > 5
}

// Integration is an external service the workflow connects to.
type Integration struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Connected   bool   `json:"connected"`
	LastSync    string `json:"lastSync"`
}

// Status renders the connection state.
func (i Integration) Status() string {
	if i.Connected {
		return "connected"
	}
	return "disconnected"
}

// DefaultIntegrations lists the services shown on the admin view.
func DefaultIntegrations() []Integration {
	return []Integration{
		{ID: "gmail", Name: "Gmail API", Description: "Email classification and routing", Connected: true, LastSync: "2 minutes ago"},
		{ID: "outlook", Name: "Outlook Graph API", Description: "Enterprise email integration", Connected: false, LastSync: "Not configured"},
		{ID: "openphone", Name: "OpenPhone API", Description: "Call recording and transcription", Connected: true, LastSync: "5 minutes ago"},
		{ID: "onedrive", Name: "OneDrive Storage", Description: "Document storage and organization", Connected: true, LastSync: "1 minute ago"},
		{ID: "slack", Name: "Slack Webhooks", Description: "Team notifications and alerts", Connected: true, LastSync: "Real-time"},
	}
}

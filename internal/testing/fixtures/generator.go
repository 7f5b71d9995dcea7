// Package fixtures builds dashboard records and fixture directories for
// tests.
package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-jobflow/internal/core/model"
)

// TestDataGenerator writes fixture files into a directory.
type TestDataGenerator struct {
	baseDir string
}

// NewTestDataGenerator creates a generator rooted at baseDir.
func NewTestDataGenerator(baseDir string) *TestDataGenerator {
	return &TestDataGenerator{baseDir: baseDir}
}

// Dir is the fixture directory.
func (g *TestDataGenerator) Dir() string {
	return g.baseDir
}

// WriteLeads writes leads.json.
func (g *TestDataGenerator) WriteLeads(emails []model.Email, projects []model.Project) error {
	return g.WriteJSON("leads.json", map[string]interface{}{
		"emails":   emails,
		"projects": projects,
	})
}

// WriteCalls writes calls.json.
func (g *TestDataGenerator) WriteCalls(calls []model.Call) error {
	return g.WriteJSON("calls.json", map[string]interface{}{"calls": calls})
}

// WriteNotifications writes notifications.json.
func (g *TestDataGenerator) WriteNotifications(alerts []model.Notification, channels []model.SlackChannel) error {
	return g.WriteJSON("notifications.json", map[string]interface{}{
		"recentAlerts":  alerts,
		"slackChannels": channels,
	})
}

// WriteJSON encodes v into name inside the fixture directory.
func (g *TestDataGenerator) WriteJSON(name string, v interface{}) error {
	if err := os.MkdirAll(g.baseDir, 0755); err != nil {
		return err
	}
	data, err := sonic.ConfigDefault.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return os.WriteFile(filepath.Join(g.baseDir, name), data, 0644)
}

// WriteRaw writes content verbatim, for malformed-input tests.
func (g *TestDataGenerator) WriteRaw(name, content string) error {
	if err := os.MkdirAll(g.baseDir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(g.baseDir, name), []byte(content), 0644)
}

// Email returns a routed enquiry received at receivedAt.
func Email(id string, receivedAt time.Time) model.Email {
	return model.Email{
		ID:             id,
		Sender:         fmt.Sprintf("%s@example.com", id),
		Subject:        fmt.Sprintf("Subject %s", id),
		ReceivedAt:     receivedAt,
		Confidence:     85,
		Classification: model.ClassificationEnquiry,
		Priority:       model.PriorityMedium,
		Status:         model.StatusAutoRouted,
		Attachments:    []string{},
		Snippet:        fmt.Sprintf("Snippet for %s", id),
		FullBody:       fmt.Sprintf("Body for %s", id),
	}
}

// Call returns a medium-urgency call at ts.
func Call(id string, ts time.Time) model.Call {
	return model.Call{
		ID:          id,
		Caller:      fmt.Sprintf("Caller %s", id),
		Timestamp:   ts,
		Duration:    "2:00",
		Urgency:     model.PriorityMedium,
		Summary:     fmt.Sprintf("Summary for %s", id),
		Tags:        []string{},
		ActionItems: []string{},
		Confidence:  90,
	}
}

// Project returns an in-progress project started at start.
func Project(id, name string, start time.Time) model.Project {
	return model.Project{
		ID:             id,
		Name:           name,
		Client:         "Client " + id,
		Value:          "$1,000,000",
		Status:         model.ProjectInProgress,
		StartDate:      start,
		ProjectManager: "PM " + id,
		LastActivity:   start,
	}
}

// ForProject links an email to a project by name.
func ForProject(e model.Email, projectName string) model.Email {
	e.ProjectName = projectName
	return e
}

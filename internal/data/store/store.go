// Package store loads the read-only dashboard records and resolves the
// references between them.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-jobflow/internal/core/model"
	"github.com/penwyp/go-jobflow/internal/data/fixtures"
	"github.com/penwyp/go-jobflow/internal/util"
	"golang.org/x/sync/errgroup"
)

// SourceEmbedded names the built-in fixture set.
const SourceEmbedded = "embedded"

type leadsFile struct {
	Emails   []model.Email   `json:"emails"`
	Projects []model.Project `json:"projects"`
}

type callsFile struct {
	Calls []model.Call `json:"calls"`
}

type notificationsFile struct {
	RecentAlerts  []model.Notification `json:"recentAlerts"`
	SlackChannels []model.SlackChannel `json:"slackChannels"`
}

type systemLogsFile struct {
	SystemLogs         []model.LogEntry         `json:"systemLogs"`
	PerformanceMetrics model.PerformanceMetrics `json:"performanceMetrics"`
}

// Store holds one loaded fixture set. It is immutable after Load; reloading
// produces a new Store.
type Store struct {
	source        string
	emails        []model.Email
	calls         []model.Call
	projects      []model.Project
	notifications []model.Notification
	channels      []model.SlackChannel
	logs          []model.LogEntry
	performance   model.PerformanceMetrics
	metrics       model.WorkflowMetrics

	projectsByID   map[string]int
	projectsByName map[string]int
	emailsByID     map[string]int

	unresolved int
}

// Communications are the emails and calls linked to one project.
type Communications struct {
	Emails []model.Email
	Calls  []model.Call
}

// Total is the number of linked records.
func (c Communications) Total() int {
	return len(c.Emails) + len(c.Calls)
}

// Load reads the fixture set from dir, or the embedded set when dir is
// empty. leads.json is required; the other files are optional.
func Load(dir string) (*Store, error) {
	if dir == "" {
		return LoadFS(fixtures.FS, SourceEmbedded)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open data dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data dir %s is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir), dir)
}

// LoadFS reads the fixture set from fsys, decoding the files concurrently.
// source is only used for logging.
func LoadFS(fsys fs.FS, source string) (*Store, error) {
	s := &Store{source: source}

	var (
		leads         leadsFile
		calls         callsFile
		notifications notificationsFile
		logs          systemLogsFile
	)
	var g errgroup.Group
	g.Go(func() error { return decode(fsys, fixtures.LeadsFile, &leads, true) })
	g.Go(func() error { return decode(fsys, fixtures.CallsFile, &calls, false) })
	g.Go(func() error { return decode(fsys, fixtures.NotificationsFile, &notifications, false) })
	g.Go(func() error { return decode(fsys, fixtures.SystemLogsFile, &logs, false) })
	g.Go(func() error { return decode(fsys, fixtures.WorkflowMetricsFile, &s.metrics, false) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.emails = leads.Emails
	s.projects = leads.Projects
	s.calls = calls.Calls
	s.notifications = notifications.RecentAlerts
	s.channels = notifications.SlackChannels
	s.logs = logs.SystemLogs
	s.performance = logs.PerformanceMetrics

	if err := s.index(); err != nil {
		return nil, err
	}
	s.resolve()

	util.LogInfo("records loaded",
		util.F("source", source),
		util.F("emails", len(s.emails)),
		util.F("calls", len(s.calls)),
		util.F("projects", len(s.projects)),
		util.F("unresolved", s.unresolved))
	return s, nil
}

func decode(fsys fs.FS, name string, v interface{}, required bool) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			util.LogDebug("optional fixture missing", util.F("file", name))
			return nil
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := sonic.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (s *Store) index() error {
	s.projectsByID = make(map[string]int, len(s.projects))
	s.projectsByName = make(map[string]int, len(s.projects))
	for i, p := range s.projects {
		if _, dup := s.projectsByID[p.ID]; dup {
			return fmt.Errorf("duplicate project id %q", p.ID)
		}
		if _, dup := s.projectsByName[p.Name]; dup {
			return fmt.Errorf("duplicate project name %q", p.Name)
		}
		s.projectsByID[p.ID] = i
		s.projectsByName[p.Name] = i
	}

	s.emailsByID = make(map[string]int, len(s.emails))
	for i, e := range s.emails {
		s.emailsByID[e.ID] = i
	}
	return nil
}

// resolve fills ProjectID on emails and calls. An explicit projectId wins;
// otherwise the project name is looked up. Names that match no project
// are logged and left unresolved.
func (s *Store) resolve() {
	for i := range s.emails {
		e := &s.emails[i]
		e.ProjectID = s.resolveRef("email", e.ID, e.ProjectID, e.ProjectName)
	}
	for i := range s.calls {
		c := &s.calls[i]
		c.ProjectID = s.resolveRef("call", c.ID, c.ProjectID, c.ProjectName)
	}
}

func (s *Store) resolveRef(kind, id, projectID, projectName string) string {
	if projectID != "" {
		if _, ok := s.projectsByID[projectID]; ok {
			return projectID
		}
		util.LogWarn("unknown project id", util.F("record", kind+":"+id), util.F("project_id", projectID))
	}
	if projectName == "" {
		return ""
	}
	if i, ok := s.projectsByName[projectName]; ok {
		return s.projects[i].ID
	}
	s.unresolved++
	util.LogWarn("unresolved project name", util.F("record", kind+":"+id), util.F("name", projectName))
	return ""
}

// Source is the directory the records came from, or "embedded".
func (s *Store) Source() string { return s.source }

// Unresolved counts records whose project name matched no project.
func (s *Store) Unresolved() int { return s.unresolved }

func (s *Store) Emails() []model.Email {
	return append([]model.Email(nil), s.emails...)
}

func (s *Store) Calls() []model.Call {
	return append([]model.Call(nil), s.calls...)
}

func (s *Store) Projects() []model.Project {
	return append([]model.Project(nil), s.projects...)
}

func (s *Store) Notifications() []model.Notification {
	return append([]model.Notification(nil), s.notifications...)
}

func (s *Store) SlackChannels() []model.SlackChannel {
	return append([]model.SlackChannel(nil), s.channels...)
}

func (s *Store) Logs() []model.LogEntry {
	return append([]model.LogEntry(nil), s.logs...)
}

func (s *Store) Performance() model.PerformanceMetrics { return s.performance }

func (s *Store) Metrics() model.WorkflowMetrics { return s.metrics }

// EmailByID looks up a single email.
func (s *Store) EmailByID(id string) (model.Email, bool) {
	i, ok := s.emailsByID[id]
	if !ok {
		return model.Email{}, false
	}
	return s.emails[i], true
}

// CallByID looks up a single call.
func (s *Store) CallByID(id string) (model.Call, bool) {
	for _, c := range s.calls {
		if c.ID == id {
			return c, true
		}
	}
	return model.Call{}, false
}

// ProjectByID looks up a project by its identifier.
func (s *Store) ProjectByID(id string) (model.Project, bool) {
	i, ok := s.projectsByID[id]
	if !ok {
		return model.Project{}, false
	}
	return s.projects[i], true
}

// ProjectByName looks up a project by its display name.
func (s *Store) ProjectByName(name string) (model.Project, bool) {
	i, ok := s.projectsByName[name]
	if !ok {
		return model.Project{}, false
	}
	return s.projects[i], true
}

// FindProject accepts either a project ID or a project name.
func (s *Store) FindProject(ref string) (model.Project, bool) {
	if p, ok := s.ProjectByID(ref); ok {
		return p, true
	}
	return s.ProjectByName(ref)
}

// Communications returns the emails and calls resolved to projectID, in
// fixture order.
func (s *Store) Communications(projectID string) Communications {
	var c Communications
	if projectID == "" {
		return c
	}
	for _, e := range s.emails {
		if e.ProjectID == projectID {
			c.Emails = append(c.Emails, e)
		}
	}
	for _, call := range s.calls {
		if call.ProjectID == projectID {
			c.Calls = append(c.Calls, call)
		}
	}
	return c
}

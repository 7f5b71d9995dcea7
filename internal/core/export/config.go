// Package export models the project export dialog. Exports are simulated:
// a request is validated, logged and acknowledged, but no file is written.
package export

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Formats
const (
	FormatPDF   = "pdf"
	FormatExcel = "excel"
	FormatCSV   = "csv"
	FormatJSON  = "json"
)

// Date ranges
const (
	RangeWeek    = "week"
	RangeMonth   = "month"
	RangeQuarter = "quarter"
	RangeYear    = "year"
	RangeAll     = "all"
	RangeCustom  = "custom"
)

// Project scopes
const (
	ScopeAll      = "all"
	ScopeSpecific = "specific"
)

var (
	ValidFormats    = []string{FormatPDF, FormatExcel, FormatCSV, FormatJSON}
	ValidDateRanges = []string{RangeWeek, RangeMonth, RangeQuarter, RangeYear, RangeAll, RangeCustom}
	ValidScopes     = []string{ScopeAll, ScopeSpecific}

	ErrInvalidConfig = errors.New("invalid export config")
)

// Per-section size contributions in MB, before the range multiplier.
const (
	emailsSizeMB     = 2.5
	callsSizeMB      = 1.2
	documentsSizeMB  = 5.8
	systemLogsSizeMB = 0.8
	aiReasoningMB    = 1.5
)

var rangeMultiplier = map[string]float64{
	RangeWeek:    0.1,
	RangeMonth:   0.5,
	RangeQuarter: 1.5,
	RangeYear:    6,
	RangeAll:     12,
	RangeCustom:  1,
}

// Config is one export request.
type Config struct {
	RequestID          string     `json:"requestId"`
	Format             string     `json:"format"`
	DateRange          string     `json:"dateRange"`
	IncludeEmails      bool       `json:"includeEmails"`
	IncludeCalls       bool       `json:"includeCalls"`
	IncludeDocuments   bool       `json:"includeDocuments"`
	IncludeSystemLogs  bool       `json:"includeSystemLogs"`
	IncludeAIReasoning bool       `json:"includeAIReasoning"`
	ProjectScope       string     `json:"projectScope"`
	SelectedProjects   []string   `json:"selectedProjects"`
	CustomStart        *time.Time `json:"customStartDate,omitempty"`
	CustomEnd          *time.Time `json:"customEndDate,omitempty"`
}

// DefaultConfig returns the dialog's initial state with a new request ID.
func DefaultConfig() Config {
	return Config{
		RequestID:          uuid.NewString(),
		Format:             FormatPDF,
		DateRange:          RangeMonth,
		IncludeEmails:      true,
		IncludeCalls:       true,
		IncludeDocuments:   true,
		IncludeSystemLogs:  false,
		IncludeAIReasoning: true,
		ProjectScope:       ScopeAll,
		SelectedProjects:   []string{},
	}
}

// ToggleProject adds projectID to the selection, or removes it if present.
func (c *Config) ToggleProject(projectID string) {
	for i, id := range c.SelectedProjects {
		if id == projectID {
			updated := make([]string, 0, len(c.SelectedProjects)-1)
			updated = append(updated, c.SelectedProjects[:i]...)
			c.SelectedProjects = append(updated, c.SelectedProjects[i+1:]...)
			return
		}
	}
	c.SelectedProjects = append(c.SelectedProjects, projectID)
}

// Validate checks enum values and the combinations the dialog requires.
func (c *Config) Validate() error {
	if !contains(ValidFormats, c.Format) {
		return fmt.Errorf("%w: format %q", ErrInvalidConfig, c.Format)
	}
	if !contains(ValidDateRanges, c.DateRange) {
		return fmt.Errorf("%w: date range %q", ErrInvalidConfig, c.DateRange)
	}
	if !contains(ValidScopes, c.ProjectScope) {
		return fmt.Errorf("%w: project scope %q", ErrInvalidConfig, c.ProjectScope)
	}
	if c.DateRange == RangeCustom {
		if c.CustomStart == nil || c.CustomEnd == nil {
			return fmt.Errorf("%w: custom range needs start and end dates", ErrInvalidConfig)
		}
		if c.CustomStart.After(*c.CustomEnd) {
			return fmt.Errorf("%w: start date is after end date", ErrInvalidConfig)
		}
	}
	if c.ProjectScope == ScopeSpecific && len(c.SelectedProjects) == 0 {
		return fmt.Errorf("%w: no projects selected", ErrInvalidConfig)
	}
	if !c.IncludesAnything() {
		return fmt.Errorf("%w: nothing selected to export", ErrInvalidConfig)
	}
	return nil
}

// IncludesAnything reports whether at least one section is selected.
func (c *Config) IncludesAnything() bool {
	return c.IncludeEmails || c.IncludeCalls || c.IncludeDocuments ||
		c.IncludeSystemLogs || c.IncludeAIReasoning
}

// EstimatedSizeMB sums the selected sections and scales by the date range,
// rounded to one decimal place.
func (c *Config) EstimatedSizeMB() float64 {
	size := 0.0
	if c.IncludeEmails {
		size += emailsSizeMB
	}
	if c.IncludeCalls {
		size += callsSizeMB
	}
	if c.IncludeDocuments {
		size += documentsSizeMB
	}
	if c.IncludeSystemLogs {
		size += systemLogsSizeMB
	}
	if c.IncludeAIReasoning {
		size += aiReasoningMB
	}
	return math.Round(size*rangeMultiplier[c.DateRange]*10) / 10
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

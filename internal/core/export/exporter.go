package export

import (
	"context"
	"time"

	"github.com/penwyp/go-jobflow/internal/util"
)

// Result acknowledges a completed export.
type Result struct {
	RequestID   string    `json:"requestId"`
	Format      string    `json:"format"`
	SizeMB      float64   `json:"estimatedSizeMB"`
	CompletedAt time.Time `json:"completedAt"`
}

// Exporter carries out an export request.
type Exporter interface {
	Export(ctx context.Context, cfg Config) (*Result, error)
}

// LogExporter records the request in the log and completes after a
// simulated processing delay. It never writes an export file.
type LogExporter struct {
	delay  time.Duration
	clock  util.Clock
	logger util.LoggerInterface
}

// NewLogExporter creates an exporter. A nil clock uses the global time
// provider.
func NewLogExporter(delay time.Duration, clock util.Clock) *LogExporter {
	if clock == nil {
		clock = util.GetTimeProvider()
	}
	return &LogExporter{delay: delay, clock: clock}
}

// WithLogger routes the exporter's log lines to logger instead of the
// global one.
func (e *LogExporter) WithLogger(logger util.LoggerInterface) *LogExporter {
	e.logger = logger
	return e
}

// Export validates cfg, waits out the delay and returns an acknowledgement.
// Cancelling ctx aborts the wait.
func (e *LogExporter) Export(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fields := []util.Field{
		util.F("request_id", cfg.RequestID),
		util.F("format", cfg.Format),
		util.F("range", cfg.DateRange),
		util.F("scope", cfg.ProjectScope),
		util.F("projects", len(cfg.SelectedProjects)),
	}
	e.info("export requested", fields...)

	if e.delay > 0 {
		timer := time.NewTimer(e.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			e.warn("export cancelled", util.F("request_id", cfg.RequestID))
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{
		RequestID:   cfg.RequestID,
		Format:      cfg.Format,
		SizeMB:      cfg.EstimatedSizeMB(),
		CompletedAt: e.clock.Now(),
	}
	e.info("export completed", util.F("request_id", cfg.RequestID), util.F("size_mb", result.SizeMB))
	return result, nil
}

func (e *LogExporter) info(msg string, fields ...util.Field) {
	if e.logger != nil {
		e.logger.Info(msg, fields...)
		return
	}
	util.LogInfo(msg, fields...)
}

func (e *LogExporter) warn(msg string, fields ...util.Field) {
	if e.logger != nil {
		e.logger.Warn(msg, fields...)
		return
	}
	util.LogWarn(msg, fields...)
}

package constants

import "time"

const (
	Day = 24 * time.Hour

	// Email date range buckets, in days of age
	TodayMaxDays     = 1
	YesterdayMaxDays = 2
	WeekMaxDays      = 7
	MonthMaxDays     = 30
	QuarterMaxDays   = 90

	// Timeline phase boundaries, in days of age (exclusive upper bounds)
	CurrentPhaseDays         = 30
	PreviousQuarterPhaseDays = 90
	MidProjectPhaseDays      = 180

	// Watcher debounce for bursts of fixture writes
	ReloadDebounce = 200 * time.Millisecond
)

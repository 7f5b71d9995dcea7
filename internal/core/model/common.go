package model

// Email classifications
const (
	ClassificationBid     = "Bid"
	ClassificationEnquiry = "Enquiry"
	ClassificationSpam    = "Spam"
)

// Priority levels shared by emails (priority) and calls (urgency)
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Email processing statuses
const (
	StatusAutoRouted    = "auto_routed"
	StatusPendingReview = "pending_review"
	StatusUrgent        = "urgent"
	StatusProcessing    = "processing"
)

// Project statuses
const (
	ProjectPlanning   = "planning"
	ProjectBidding    = "bidding"
	ProjectInProgress = "in_progress"
	ProjectCompleted  = "completed"
)

// System log levels
const (
	LogSuccess = "SUCCESS"
	LogInfo    = "INFO"
	LogWarn    = "WARN"
	LogError   = "ERROR"
)

var (
	ValidClassifications = []string{ClassificationBid, ClassificationEnquiry, ClassificationSpam}
	ValidPriorities      = []string{PriorityHigh, PriorityMedium, PriorityLow}
	ValidStatuses        = []string{StatusAutoRouted, StatusPendingReview, StatusUrgent, StatusProcessing}
	ValidProjectStatuses = []string{ProjectPlanning, ProjectBidding, ProjectInProgress, ProjectCompleted}
	ValidLogLevels       = []string{LogSuccess, LogInfo, LogWarn, LogError}
)

// IsValidClassification checks if a classification string is known.
func IsValidClassification(c string) bool {
	return contains(ValidClassifications, c)
}

// IsValidPriority checks if a priority string is known.
func IsValidPriority(p string) bool {
	return contains(ValidPriorities, p)
}

// IsValidStatus checks if an email status string is known.
func IsValidStatus(s string) bool {
	return contains(ValidStatuses, s)
}

// IsValidLogLevel checks if a log level string is known.
func IsValidLogLevel(l string) bool {
	return contains(ValidLogLevels, l)
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

package constants

// Confidence cutoffs shared by the filter buckets and default routing.
const (
	HighConfidence   = 80
	MediumConfidence = 60

	DefaultAutoRouteThreshold   = 80
	DefaultHumanReviewThreshold = 60
	DefaultManualSortThreshold  = 40

	MaxConfidence = 100
)

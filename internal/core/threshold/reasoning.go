package threshold

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/penwyp/go-jobflow/internal/core/model"
)

// Route is the routing decision for a confidence score.
type Route string

const (
	RouteAuto        Route = "auto_route"
	RouteHumanReview Route = "human_review"
	RouteManualSort  Route = "manual_sort"
)

// Label is the human-readable form used in reasoning output.
func (r Route) Label() string {
	switch r {
	case RouteAuto:
		return "Auto-route"
	case RouteHumanReview:
		return "Human review"
	default:
		return "Manual sort"
	}
}

// Route picks the routing decision for confidence using the configured
// auto-route and human-review thresholds.
func (c *Config) Route(confidence int) Route {
	switch {
	case confidence >= c.AutoRouteThreshold:
		return RouteAuto
	case confidence >= c.HumanReviewThreshold:
		return RouteHumanReview
	default:
		return RouteManualSort
	}
}

// ReasoningStep is one stage of the explanation shown with an email.
type ReasoningStep struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Confidence  int      `json:"confidence"`
	Details     []string `json:"details"`
}

// Explain describes how an email would have been triaged. Everything is
// derived from the record's stored fields; nothing is re-scored.
func (c *Config) Explain(email model.Email) []ReasoningStep {
	gov := strings.Contains(email.Sender, ".gov")

	return []ReasoningStep{
		{
			Title:       "Content Analysis",
			Description: "Analyzed email content for construction industry keywords and context",
			Confidence:  clamp(email.Confidence + 5),
			Details: []string{
				fmt.Sprintf("Subject contains: %q keywords", subjectKeyword(email.Subject)),
				fmt.Sprintf("Sender domain: %s", senderDomain(email.Sender)),
				fmt.Sprintf("Body text contains %d characters with construction terminology", utf8.RuneCountInString(email.FullBody)),
			},
		},
		{
			Title:       "Classification Decision",
			Description: "Applied machine learning model to determine email category",
			Confidence:  email.Confidence,
			Details: []string{
				fmt.Sprintf("Primary indicators: %s", indicators(email.Classification)),
				fmt.Sprintf("Confidence threshold: %d%% (%s)", email.Confidence, c.Route(email.Confidence).Label()),
				fmt.Sprintf("Project linkage: %s", linkage(email.ProjectName)),
			},
		},
		{
			Title:       "Priority Assessment",
			Description: "Evaluated urgency level based on content and sender",
			Confidence:  clamp(email.Confidence - 5),
			Details: []string{
				fmt.Sprintf("Urgency keywords: %s", pick(email.Priority,
					"URGENT, violation, immediate action required", "timeline, deadline, review required", "routine communication")),
				fmt.Sprintf("Sender authority: %s", ifElse(gov, "Government - High priority", "Commercial - Standard priority")),
				fmt.Sprintf("Response timeline: %s", pick(email.Priority,
					"Immediate (< 2 hours)", "Same day", "Standard (24-48 hours)")),
			},
		},
		{
			Title:       "Routing Decision",
			Description: "Determined final destination based on classification and confidence",
			Confidence:  email.Confidence,
			Details: []string{
				fmt.Sprintf("Target folder: %s", TargetFolder(email)),
				fmt.Sprintf("Notification routing: %s", pick(email.Priority,
					"#project-alerts channel + SMS", "#general-updates channel", "Daily digest only")),
				fmt.Sprintf("Action required: %s", ifElse(email.Status == model.StatusAutoRouted,
					"None - Automatically processed", "Manual review required")),
			},
		},
	}
}

// TargetFolder is the inbox folder an email is filed under.
func TargetFolder(email model.Email) string {
	switch email.Classification {
	case model.ClassificationBid:
		return "Bids & RFPs"
	case model.ClassificationEnquiry:
		if email.ProjectName != "" {
			return "Project: " + email.ProjectName
		}
		return "General Enquiries"
	default:
		return "Spam/Marketing"
	}
}

func subjectKeyword(subject string) string {
	switch {
	case strings.Contains(subject, "RFP"):
		return "RFP"
	case strings.Contains(subject, "permit"):
		return "permit"
	case strings.Contains(subject, "violation"):
		return "safety violation"
	default:
		return "project-related"
	}
}

func senderDomain(sender string) string {
	switch {
	case strings.Contains(sender, ".gov"):
		return "Government entity"
	case strings.Contains(sender, ".com"):
		return "Commercial entity"
	default:
		return "Unknown domain"
	}
}

func indicators(classification string) string {
	switch classification {
	case model.ClassificationBid:
		return "RFP keywords, budget mentions, proposal timeline"
	case model.ClassificationEnquiry:
		return "Project updates, permit status, client communication"
	default:
		return "Marketing language, unrelated content, promotional offers"
	}
}

func linkage(projectName string) string {
	if projectName == "" {
		return "No existing project match"
	}
	return fmt.Sprintf("Matched to %q", projectName)
}

// pick chooses by priority level: high, medium, anything else.
func pick(priority, high, medium, other string) string {
	switch priority {
	case model.PriorityHigh:
		return high
	case model.PriorityMedium:
		return medium
	default:
		return other
	}
}

func ifElse(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}

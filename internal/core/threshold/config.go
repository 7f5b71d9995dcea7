// Package threshold holds the editable AI routing configuration: confidence
// thresholds, keyword lists and signal weights. Edits are in-memory only.
package threshold

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/penwyp/go-jobflow/internal/core/constants"
)

var (
	ErrUnknownThreshold   = errors.New("unknown threshold")
	ErrUnknownWeight      = errors.New("unknown weight")
	ErrUnknownKeywordKind = errors.New("unknown keyword kind")
)

// Threshold names
const (
	AutoRoute   = "autoRoute"
	HumanReview = "humanReview"
	ManualSort  = "manualSort"
)

// Weight names
const (
	WeightSubjectAnalysis  = "subjectAnalysis"
	WeightSenderReputation = "senderReputation"
	WeightContentAnalysis  = "contentAnalysis"
	WeightProjectMatching  = "projectMatching"
)

// Keyword list kinds
const (
	KeywordPriority = "priority"
	KeywordUrgent   = "urgent"
	KeywordSpam     = "spam"
)

// Weights are the relative contributions of each signal, in percent.
type Weights struct {
	SubjectAnalysis  int `json:"subjectAnalysis" yaml:"subject_analysis"`
	SenderReputation int `json:"senderReputation" yaml:"sender_reputation"`
	ContentAnalysis  int `json:"contentAnalysis" yaml:"content_analysis"`
	ProjectMatching  int `json:"projectMatching" yaml:"project_matching"`
}

// Sum is the total of all four weights.
func (w Weights) Sum() int {
	return w.SubjectAnalysis + w.SenderReputation + w.ContentAnalysis + w.ProjectMatching
}

func (w *Weights) slot(name string) *int {
	switch name {
	case WeightSubjectAnalysis:
		return &w.SubjectAnalysis
	case WeightSenderReputation:
		return &w.SenderReputation
	case WeightContentAnalysis:
		return &w.ContentAnalysis
	case WeightProjectMatching:
		return &w.ProjectMatching
	}
	return nil
}

func (w *Weights) all() []*int {
	return []*int{&w.SubjectAnalysis, &w.SenderReputation, &w.ContentAnalysis, &w.ProjectMatching}
}

// Config is the routing configuration shown in the thresholds dialog.
type Config struct {
	AutoRouteThreshold   int      `json:"autoRouteThreshold" yaml:"auto_route_threshold"`
	HumanReviewThreshold int      `json:"humanReviewThreshold" yaml:"human_review_threshold"`
	ManualSortThreshold  int      `json:"manualSortThreshold" yaml:"manual_sort_threshold"`
	PriorityKeywords     []string `json:"priorityKeywords" yaml:"priority_keywords"`
	UrgentKeywords       []string `json:"urgentKeywords" yaml:"urgent_keywords"`
	SpamKeywords         []string `json:"spamKeywords" yaml:"spam_keywords"`
	Weights              Weights  `json:"confidenceWeights" yaml:"confidence_weights"`
}

// Defaults returns a fresh copy of the factory configuration.
func Defaults() Config {
	return Config{
		AutoRouteThreshold:   constants.DefaultAutoRouteThreshold,
		HumanReviewThreshold: constants.DefaultHumanReviewThreshold,
		ManualSortThreshold:  constants.DefaultManualSortThreshold,
		PriorityKeywords:     []string{"urgent", "permit delay", "code violation", "safety issue", "deadline", "emergency"},
		UrgentKeywords:       []string{"URGENT", "IMMEDIATE", "CRITICAL", "STOP WORK", "VIOLATION", "EMERGENCY"},
		SpamKeywords:         []string{"sale", "discount", "promotion", "deal", "offer", "limited time"},
		Weights: Weights{
			SubjectAnalysis:  25,
			SenderReputation: 20,
			ContentAnalysis:  35,
			ProjectMatching:  20,
		},
	}
}

// ResetToDefaults discards every edit.
func (c *Config) ResetToDefaults() {
	*c = Defaults()
}

// SetThreshold clamps value to [0,100] and stores it. Ordering between
// thresholds is not enforced; see Ordered.
func (c *Config) SetThreshold(name string, value int) error {
	v := clamp(value)
	switch name {
	case AutoRoute:
		c.AutoRouteThreshold = v
	case HumanReview:
		c.HumanReviewThreshold = v
	case ManualSort:
		c.ManualSortThreshold = v
	default:
		return fmt.Errorf("%w: %q", ErrUnknownThreshold, name)
	}
	return nil
}

// Ordered reports whether auto-route > human review > manual sort.
func (c *Config) Ordered() bool {
	return c.AutoRouteThreshold > c.HumanReviewThreshold &&
		c.HumanReviewThreshold > c.ManualSortThreshold
}

// SetWeight clamps value to [0,100], stores it, and when the four weights
// no longer sum to 100 rescales every weight by 100/sum, rounding each
// independently. The rounded sum can land within 2 of 100. A zero sum
// splits evenly.
func (c *Config) SetWeight(name string, value int) error {
	p := c.Weights.slot(name)
	if p == nil {
		return fmt.Errorf("%w: %q", ErrUnknownWeight, name)
	}
	*p = clamp(value)

	total := c.Weights.Sum()
	if total == 100 {
		return nil
	}
	if total == 0 {
		for _, w := range c.Weights.all() {
			*w = 25
		}
		return nil
	}

	scale := 100 / float64(total)
	for _, w := range c.Weights.all() {
		*w = int(math.Floor(float64(*w)*scale + 0.5))
	}
	return nil
}

// Keywords returns the list of the given kind.
func (c *Config) Keywords(kind string) ([]string, error) {
	p, err := c.keywordSlot(kind)
	if err != nil {
		return nil, err
	}
	return *p, nil
}

// AddKeyword trims and lowercases word before appending it. Blank input is
// ignored and duplicates are allowed.
func (c *Config) AddKeyword(kind, word string) error {
	p, err := c.keywordSlot(kind)
	if err != nil {
		return err
	}
	normalized := strings.ToLower(strings.TrimSpace(word))
	if normalized == "" {
		return nil
	}
	*p = append(*p, normalized)
	return nil
}

// RemoveKeyword deletes the first exact match of word and reports whether
// one was found.
func (c *Config) RemoveKeyword(kind, word string) (bool, error) {
	p, err := c.keywordSlot(kind)
	if err != nil {
		return false, err
	}
	list := *p
	for i, k := range list {
		if k == word {
			updated := make([]string, 0, len(list)-1)
			updated = append(updated, list[:i]...)
			*p = append(updated, list[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (c *Config) keywordSlot(kind string) (*[]string, error) {
	switch kind {
	case KeywordPriority:
		return &c.PriorityKeywords, nil
	case KeywordUrgent:
		return &c.UrgentKeywords, nil
	case KeywordSpam:
		return &c.SpamKeywords, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKeywordKind, kind)
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > constants.MaxConfidence {
		return constants.MaxConfidence
	}
	return v
}

package threshold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := Defaults()
	assert.Equal(t, 80, c.AutoRouteThreshold)
	assert.Equal(t, 60, c.HumanReviewThreshold)
	assert.Equal(t, 40, c.ManualSortThreshold)
	assert.Equal(t, 100, c.Weights.Sum())
	assert.Contains(t, c.PriorityKeywords, "permit delay")
	assert.Contains(t, c.UrgentKeywords, "STOP WORK")
	assert.Contains(t, c.SpamKeywords, "limited time")
	assert.True(t, c.Ordered())

	c.PriorityKeywords[0] = "mutated"
	assert.Equal(t, "urgent", Defaults().PriorityKeywords[0])
}

func TestSetThreshold(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    int
		expected int
	}{
		{name: "in range", field: AutoRoute, value: 85, expected: 85},
		{name: "clamped high", field: HumanReview, value: 140, expected: 100},
		{name: "clamped low", field: ManualSort, value: -5, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Defaults()
			require.NoError(t, c.SetThreshold(tt.field, tt.value))
			switch tt.field {
			case AutoRoute:
				assert.Equal(t, tt.expected, c.AutoRouteThreshold)
			case HumanReview:
				assert.Equal(t, tt.expected, c.HumanReviewThreshold)
			case ManualSort:
				assert.Equal(t, tt.expected, c.ManualSortThreshold)
			}
		})
	}

	c := Defaults()
	assert.ErrorIs(t, c.SetThreshold("spamCutoff", 10), ErrUnknownThreshold)
}

func TestSetThreshold_OrderingNotEnforced(t *testing.T) {
	c := Defaults()
	require.NoError(t, c.SetThreshold(AutoRoute, 30))
	assert.Equal(t, 30, c.AutoRouteThreshold)
	assert.Equal(t, 60, c.HumanReviewThreshold)
	assert.False(t, c.Ordered())
}

func TestSetWeight_Rescales(t *testing.T) {
	c := Defaults()
	require.NoError(t, c.SetWeight(WeightSubjectAnalysis, 50))

	assert.Equal(t, Weights{SubjectAnalysis: 40, SenderReputation: 16, ContentAnalysis: 28, ProjectMatching: 16}, c.Weights)
	assert.InDelta(t, 100, c.Weights.Sum(), 2)
}

func TestSetWeight_SumWithinTolerance(t *testing.T) {
	values := []int{0, 1, 7, 13, 33, 50, 77, 99, 100, 150}
	names := []string{WeightSubjectAnalysis, WeightSenderReputation, WeightContentAnalysis, WeightProjectMatching}

	for _, name := range names {
		for _, v := range values {
			c := Defaults()
			require.NoError(t, c.SetWeight(name, v))
			assert.InDelta(t, 100, c.Weights.Sum(), 2, "%s=%d -> %+v", name, v, c.Weights)
		}
	}
}

func TestSetWeight_NoRescaleWhenSumIs100(t *testing.T) {
	c := Defaults()
	require.NoError(t, c.SetWeight(WeightContentAnalysis, 35))
	assert.Equal(t, Defaults().Weights, c.Weights)
}

func TestSetWeight_AllZeroSplitsEvenly(t *testing.T) {
	c := Defaults()
	c.Weights = Weights{SubjectAnalysis: 10}
	require.NoError(t, c.SetWeight(WeightSubjectAnalysis, 0))
	assert.Equal(t, Weights{25, 25, 25, 25}, c.Weights)
}

func TestSetWeight_UnknownName(t *testing.T) {
	c := Defaults()
	assert.ErrorIs(t, c.SetWeight("attachmentCount", 10), ErrUnknownWeight)
	assert.Equal(t, Defaults().Weights, c.Weights)
}

func TestAddKeyword(t *testing.T) {
	c := Defaults()
	before := len(c.SpamKeywords)

	require.NoError(t, c.AddKeyword(KeywordSpam, "  Free Trial "))
	assert.Equal(t, "free trial", c.SpamKeywords[len(c.SpamKeywords)-1])

	require.NoError(t, c.AddKeyword(KeywordSpam, "   "))
	assert.Len(t, c.SpamKeywords, before+1)

	require.NoError(t, c.AddKeyword(KeywordSpam, "sale"))
	assert.Len(t, c.SpamKeywords, before+2)

	assert.ErrorIs(t, c.AddKeyword("billing", "x"), ErrUnknownKeywordKind)
}

func TestRemoveKeyword(t *testing.T) {
	c := Defaults()
	require.NoError(t, c.AddKeyword(KeywordPriority, "deadline"))

	removed, err := c.RemoveKeyword(KeywordPriority, "deadline")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, []string{"urgent", "permit delay", "code violation", "safety issue", "emergency", "deadline"}, c.PriorityKeywords)

	removed, err = c.RemoveKeyword(KeywordPriority, "not-there")
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = c.RemoveKeyword("billing", "x")
	assert.ErrorIs(t, err, ErrUnknownKeywordKind)
}

func TestRemoveKeyword_DoesNotAliasDefaults(t *testing.T) {
	c := Defaults()
	kept := c.UrgentKeywords
	_, err := c.RemoveKeyword(KeywordUrgent, "URGENT")
	require.NoError(t, err)
	assert.Equal(t, "URGENT", kept[0])
	assert.NotContains(t, c.UrgentKeywords, "URGENT")
}

func TestResetToDefaults(t *testing.T) {
	c := Defaults()
	require.NoError(t, c.SetThreshold(AutoRoute, 95))
	require.NoError(t, c.SetWeight(WeightProjectMatching, 70))
	require.NoError(t, c.AddKeyword(KeywordSpam, "webinar"))

	c.ResetToDefaults()
	assert.Equal(t, Defaults(), c)

	c.ResetToDefaults()
	assert.Equal(t, Defaults(), c)
}

func TestKeywords(t *testing.T) {
	c := Defaults()
	got, err := c.Keywords(KeywordUrgent)
	require.NoError(t, err)
	assert.Equal(t, c.UrgentKeywords, got)

	_, err = c.Keywords("other")
	assert.ErrorIs(t, err, ErrUnknownKeywordKind)
}

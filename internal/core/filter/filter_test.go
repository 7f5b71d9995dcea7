package filter

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/penwyp/go-jobflow/internal/core/model"
	"github.com/penwyp/go-jobflow/internal/util"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 1, 15, 17, 0, 0, 0, time.UTC)

func ids(emails []model.Email) []string {
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		out = append(out, e.ID)
	}
	return out
}

func sampleEmails() []model.Email {
	return []model.Email{
		{
			ID: "e1", Sender: "procurement@cityofspringfield.gov", Subject: "RFP: Municipal Library Renovation",
			ReceivedAt: testNow.Add(-2 * time.Hour), Confidence: 94, Classification: model.ClassificationBid,
			ProjectName: "Municipal Library", Priority: model.PriorityHigh, Status: model.StatusAutoRouted,
			Snippet: "Sealed bids are due by February 1",
		},
		{
			ID: "e2", Sender: "sarah@harborconsulting.com", Subject: "Question about foundation specs",
			ReceivedAt: testNow.Add(-30 * time.Hour), Confidence: 80, Classification: model.ClassificationEnquiry,
			ProjectName: "Harbor View Apartments", Priority: model.PriorityMedium, Status: model.StatusPendingReview,
			Snippet: "Could you confirm the rebar grade",
		},
		{
			ID: "e3", Sender: "deals@bulksupplyco.net", Subject: "Limited offer on lumber",
			ReceivedAt: testNow.Add(-5 * 24 * time.Hour), Confidence: 59, Classification: model.ClassificationSpam,
			Priority: model.PriorityLow, Status: model.StatusProcessing,
			Snippet: "Save 40% this week only",
		},
		{
			ID: "e4", Sender: "inspector@county.gov", Subject: "Inspection rescheduled",
			ReceivedAt: testNow.Add(-45 * 24 * time.Hour), Confidence: 60, Classification: model.ClassificationEnquiry,
			ProjectName: "Harbor View Apartments", Priority: model.PriorityHigh, Status: model.StatusUrgent,
			Snippet: "The FRAMING inspection moved to Thursday",
		},
	}
}

func TestApply_EmptyStateReturnsAllInOrder(t *testing.T) {
	emails := sampleEmails()
	engine := NewEngine(util.FixedClock(testNow))

	got := engine.Apply(emails, State{})
	if diff := cmp.Diff(emails, got); diff != "" {
		t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_ClassificationExample(t *testing.T) {
	emails := []model.Email{
		{ID: "a", Classification: model.ClassificationEnquiry},
		{ID: "b", Classification: model.ClassificationBid},
		{ID: "c", Classification: model.ClassificationSpam},
	}
	got := NewEngine(util.FixedClock(testNow)).Apply(emails, State{Classification: "Bid"})
	assert.Equal(t, []string{"b"}, ids(got))
}

func TestApply_Fields(t *testing.T) {
	engine := NewEngine(util.FixedClock(testNow))

	tests := []struct {
		name     string
		state    State
		expected []string
	}{
		{name: "search subject case-insensitive", state: State{Search: "rfp"}, expected: []string{"e1"}},
		{name: "search sender", state: State{Search: "HARBORCONSULTING"}, expected: []string{"e2"}},
		{name: "search snippet", state: State{Search: "framing"}, expected: []string{"e4"}},
		{name: "search no match", state: State{Search: "asbestos"}, expected: []string{}},
		{name: "classification is case-sensitive", state: State{Classification: "bid"}, expected: []string{}},
		{name: "priority", state: State{Priority: "high"}, expected: []string{"e1", "e4"}},
		{name: "status", state: State{Status: "pending_review"}, expected: []string{"e2"}},
		{name: "project exact", state: State{Project: "Harbor View Apartments"}, expected: []string{"e2", "e4"}},
		{name: "project partial does not match", state: State{Project: "Harbor View"}, expected: []string{}},
		{name: "confidence high", state: State{Confidence: "high"}, expected: []string{"e1", "e2"}},
		{name: "confidence medium", state: State{Confidence: "medium"}, expected: []string{"e4"}},
		{name: "confidence low", state: State{Confidence: "low"}, expected: []string{"e3"}},
		{name: "date today", state: State{DateRange: "today"}, expected: []string{"e1"}},
		{name: "date yesterday", state: State{DateRange: "yesterday"}, expected: []string{"e2"}},
		{name: "date week", state: State{DateRange: "week"}, expected: []string{"e1", "e2", "e3"}},
		{name: "date month", state: State{DateRange: "month"}, expected: []string{"e1", "e2", "e3"}},
		{name: "date quarter", state: State{DateRange: "quarter"}, expected: []string{"e1", "e2", "e3", "e4"}},
		{name: "sender government", state: State{Sender: "government"}, expected: []string{"e1", "e4"}},
		{name: "sender commercial", state: State{Sender: "commercial"}, expected: []string{"e2"}},
		{name: "sender consulting", state: State{Sender: "consulting"}, expected: []string{"e2"}},
		{name: "sender suppliers", state: State{Sender: "suppliers"}, expected: []string{"e3"}},
		{name: "unknown bucket does not constrain", state: State{Sender: "nonprofit"}, expected: []string{"e1", "e2", "e3", "e4"}},
		{
			name:     "fields combine with AND",
			state:    State{Priority: "high", Sender: "government", DateRange: "today"},
			expected: []string{"e1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Apply(sampleEmails(), tt.state)
			assert.Equal(t, tt.expected, ids(got))
		})
	}
}

func TestApply_ClearAllRestoresFullList(t *testing.T) {
	emails := sampleEmails()
	engine := NewEngine(util.FixedClock(testNow))

	state := State{Priority: "high", Sender: "government", Search: "library"}
	assert.Len(t, engine.Apply(emails, state), 1)

	state.ClearAll()
	assert.Equal(t, ids(emails), ids(engine.Apply(emails, state)))
}

func TestApply_ResultIsSubsetInInputOrder(t *testing.T) {
	emails := sampleEmails()
	got := NewEngine(util.FixedClock(testNow)).Apply(emails, State{Confidence: "high"})

	pos := make(map[string]int, len(emails))
	for i, e := range emails {
		pos[e.ID] = i
	}
	for i := 1; i < len(got); i++ {
		assert.Less(t, pos[got[i-1].ID], pos[got[i].ID])
	}
}

func TestInConfidenceBucket_Boundaries(t *testing.T) {
	tests := []struct {
		confidence int
		bucket     string
	}{
		{100, ConfidenceHigh},
		{80, ConfidenceHigh},
		{79, ConfidenceMedium},
		{60, ConfidenceMedium},
		{59, ConfidenceLow},
		{0, ConfidenceLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.bucket, ConfidenceBucket(tt.confidence), "confidence %d", tt.confidence)
		for _, b := range []string{ConfidenceHigh, ConfidenceMedium, ConfidenceLow} {
			assert.Equal(t, b == tt.bucket, InConfidenceBucket(tt.confidence, b),
				"confidence %d bucket %s", tt.confidence, b)
		}
	}
}

func TestInDateRange_Boundaries(t *testing.T) {
	day := 24 * time.Hour

	tests := []struct {
		name     string
		age      time.Duration
		bucket   string
		expected bool
	}{
		{name: "exactly one day is today", age: day, bucket: RangeToday, expected: true},
		{name: "exactly one day is not yesterday", age: day, bucket: RangeYesterday, expected: false},
		{name: "just over one day is yesterday", age: day + time.Minute, bucket: RangeYesterday, expected: true},
		{name: "exactly two days is yesterday", age: 2 * day, bucket: RangeYesterday, expected: true},
		{name: "over two days is not yesterday", age: 2*day + time.Minute, bucket: RangeYesterday, expected: false},
		{name: "seven days is week", age: 7 * day, bucket: RangeWeek, expected: true},
		{name: "over seven days is not week", age: 7*day + time.Second, bucket: RangeWeek, expected: false},
		{name: "thirty days is month", age: 30 * day, bucket: RangeMonth, expected: true},
		{name: "ninety days is quarter", age: 90 * day, bucket: RangeQuarter, expected: true},
		{name: "over ninety days", age: 91 * day, bucket: RangeQuarter, expected: false},
		{name: "future date counts as today", age: -time.Hour, bucket: RangeToday, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InDateRange(testNow.Add(-tt.age), tt.bucket, testNow))
		})
	}
}

func TestInSenderBucket(t *testing.T) {
	assert.True(t, InSenderBucket("permits@agency.gov", SenderGovernment))
	assert.False(t, InSenderBucket("permits@AGENCY.GOV", SenderGovernment))
	assert.True(t, InSenderBucket("info@Acme-Consulting.net", SenderConsulting))
	assert.True(t, InSenderBucket("orders@SupplyHouse.org", SenderSuppliers))
	assert.False(t, InSenderBucket("team@builders.org", SenderCommercial))
}

func TestEngine_ClockMovesDateBuckets(t *testing.T) {
	email := model.Email{ID: "x", ReceivedAt: testNow.Add(-12 * time.Hour)}
	state := State{DateRange: RangeToday}

	records := []model.Email{email}

	assert.Len(t, NewEngine(util.FixedClock(testNow)).Apply(records, state), 1)
	assert.Empty(t, NewEngine(util.FixedClock(testNow.Add(48*time.Hour))).Apply(records, state))
}

func TestApply_SearchLowercasesWithoutFolding(t *testing.T) {
	emails := []model.Email{{ID: "x", Subject: "Straße paving schedule"}}
	engine := NewEngine(util.FixedClock(testNow))

	assert.Len(t, engine.Apply(emails, State{Search: "STRAßE"}), 1)
	assert.Empty(t, engine.Apply(emails, State{Search: "strasse"}))
}

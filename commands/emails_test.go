package commands

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-jobflow/internal/core/filter"
	"github.com/penwyp/go-jobflow/internal/core/model"
	"github.com/penwyp/go-jobflow/internal/core/threshold"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emailIDs(emails []model.Email) []string {
	ids := make([]string, len(emails))
	for i, e := range emails {
		ids[i] = e.ID
	}
	return ids
}

func TestEmails_JSONFilters(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "high confidence this week",
			args:     []string{"--confidence", "high", "--date-range", "week"},
			expected: []string{"email-001", "email-002", "email-003", "email-004", "email-007"},
		},
		{
			name:     "bids",
			args:     []string{"--classification", "Bid"},
			expected: []string{"email-001", "email-006"},
		},
		{
			name:     "all clears a filter",
			args:     []string{"--classification", "all", "--sender", "government"},
			expected: []string{"email-001", "email-003"},
		},
		{
			name:     "search is case-insensitive",
			args:     []string{"--search", "HARBOR"},
			expected: []string{"email-002"},
		},
		{
			name:     "today",
			args:     []string{"--date-range", "today", "--sort", "confidence"},
			expected: []string{"email-001", "email-003", "email-002"},
		},
		{
			name:     "limit",
			args:     []string{"--limit", "2"},
			expected: []string{"email-001", "email-002"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newCLIEnv(t)
			out, err := env.run(t, append([]string{"emails", "-o", "json"}, tt.args...)...)
			require.NoError(t, err)

			var list emailList
			require.NoError(t, sonic.Unmarshal([]byte(out), &list))
			assert.Equal(t, tt.expected, emailIDs(list.Emails))
			assert.Equal(t, 10, list.Total)
		})
	}
}

func TestEmails_FilterStateFromFlags(t *testing.T) {
	env := newCLIEnv(t)
	out, err := env.run(t, "emails", "-o", "json", "--priority", "high", "--project", "Riverside Medical Center")
	require.NoError(t, err)

	var list emailList
	require.NoError(t, sonic.Unmarshal([]byte(out), &list))
	assert.Equal(t, filter.State{Priority: "high", Project: "Riverside Medical Center"}, list.Filters)
	assert.Equal(t, []string{"email-003", "email-010"}, emailIDs(list.Emails))
}

func TestEmails_CSV(t *testing.T) {
	env := newCLIEnv(t)
	out, err := env.run(t, "emails", "-o", "csv", "--classification", "Spam", "--sort", "received:asc")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "ID", records[0][0])
	assert.Equal(t, "email-008", records[1][0])
	assert.Equal(t, "email-004", records[2][0])
	assert.Equal(t, "97", records[2][5])
}

func TestEmails_TableFooter(t *testing.T) {
	env := newCLIEnv(t)
	out, err := env.run(t, "emails", "--status", "urgent")
	require.NoError(t, err)
	assert.Contains(t, out, "email-003")
	assert.Contains(t, out, "Showing 1 of 10 emails (1 filter active)")
}

func TestEmails_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "unknown sort", args: []string{"emails", "--sort", "cost"}, wantErr: "unknown sort field"},
		{name: "watch without data dir", args: []string{"emails", "--watch"}, wantErr: "--watch needs a --data directory"},
		{name: "unknown email", args: []string{"emails", "show", "email-999"}, wantErr: "not found"},
		{name: "misspelt confidence", args: []string{"emails", "-o", "json", "--confidence", "hgih"}, wantErr: "invalid --confidence"},
		{name: "unknown date range", args: []string{"emails", "-o", "json", "--date-range", "fortnight"}, wantErr: "invalid --date-range"},
		{name: "unknown sender type", args: []string{"emails", "--sender", "banks"}, wantErr: "invalid --sender"},
		{name: "lowercase classification", args: []string{"emails", "--classification", "bid"}, wantErr: "invalid --classification"},
		{name: "unknown priority", args: []string{"emails", "--priority", "urgent"}, wantErr: "invalid --priority"},
		{name: "unknown status", args: []string{"emails", "--status", "done"}, wantErr: "invalid --status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newCLIEnv(t)
			_, err := env.run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEmailShow(t *testing.T) {
	env := newCLIEnv(t)
	out, err := env.run(t, "emails", "show", "email-003")
	require.NoError(t, err)
	assert.Contains(t, out, "URGENT: Code violation notice")
	assert.Contains(t, out, "AI reasoning")
	assert.Contains(t, out, "Routing Decision")
}

func TestEmailShow_JSON(t *testing.T) {
	env := newCLIEnv(t)
	out, err := env.run(t, "emails", "show", "email-005", "-o", "json")
	require.NoError(t, err)

	var detail emailDetail
	require.NoError(t, sonic.Unmarshal([]byte(out), &detail))
	assert.Equal(t, "email-005", detail.Email.ID)
	assert.Equal(t, threshold.RouteHumanReview, detail.Route)
	assert.Equal(t, "Project: Downtown Transit Hub", detail.TargetFolder)
	assert.Len(t, detail.Reasoning, 4)
}

package util

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeTimeProvider(t *testing.T) {
	mu.Lock()
	globalTimeProvider = nil
	mu.Unlock()

	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "local timezone", timezone: "Local"},
		{name: "UTC timezone", timezone: "UTC"},
		{name: "valid timezone America/Chicago", timezone: "America/Chicago"},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
		{name: "empty timezone defaults to Local", timezone: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := InitializeTimeProvider(tt.timezone)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "invalid timezone")
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, GetTimeProvider())
			}
		})
	}
}

func TestGetTimeProvider_DefaultsToLocal(t *testing.T) {
	mu.Lock()
	globalTimeProvider = nil
	mu.Unlock()

	provider := GetTimeProvider()
	require.NotNil(t, provider)
	assert.Equal(t, time.Local, provider.Location())

	assert.Same(t, provider, GetTimeProvider())
}

func TestTimeProvider_Now(t *testing.T) {
	provider, err := NewTimeProvider("UTC")
	require.NoError(t, err)

	before := time.Now().UTC()
	now := provider.Now()
	after := time.Now().UTC()

	assert.False(t, now.Before(before))
	assert.False(t, now.After(after))
	assert.Equal(t, "UTC", now.Location().String())
}

func TestTimeProvider_In(t *testing.T) {
	provider, err := NewTimeProvider("Asia/Shanghai")
	require.NoError(t, err)

	utcTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	converted := provider.In(utcTime)

	assert.True(t, utcTime.Equal(converted))
	assert.Equal(t, 20, converted.Hour())
}

func TestTimeProvider_Format(t *testing.T) {
	provider, err := NewTimeProvider("UTC")
	require.NoError(t, err)

	testTime := time.Date(2025, 1, 15, 16, 45, 0, 0, time.UTC)

	tests := []struct {
		name     string
		layout   string
		expected string
	}{
		{name: "RFC3339", layout: time.RFC3339, expected: "2025-01-15T16:45:00Z"},
		{name: "day bucket", layout: "2006-01-02", expected: "2025-01-15"},
		{name: "timeline label", layout: "Jan 2, 15:04", expected: "Jan 15, 16:45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, provider.Format(testTime, tt.layout))
		})
	}
}

func TestTimeProvider_Concurrency(t *testing.T) {
	provider, err := NewTimeProvider("UTC")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 20)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = provider.Now()
			_ = provider.Format(time.Now(), time.RFC3339)
		}()
	}

	timezones := []string{"UTC", "America/Denver", "Europe/London"}
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if err := provider.SetTimezone(timezones[idx%len(timezones)]); err != nil {
				errs <- err
			}
		}(i)
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent operation error: %v", err)
	}
}

func TestFixedClock(t *testing.T) {
	instant := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	var clock Clock = FixedClock(instant)

	assert.True(t, instant.Equal(clock.Now()))
	assert.True(t, instant.Equal(clock.Now()))
}

func TestDaysBetween(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		t        time.Time
		expected float64
	}{
		{name: "same instant", t: now, expected: 0},
		{name: "one day", t: now.Add(-24 * time.Hour), expected: 1},
		{name: "half day", t: now.Add(-12 * time.Hour), expected: 0.5},
		{name: "future", t: now.Add(48 * time.Hour), expected: -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, DaysBetween(tt.t, now), 1e-9)
		})
	}
}

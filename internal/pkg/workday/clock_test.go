package workday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock_TodayFollowsBusinessTimezone(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	// 20:00 UTC is already the next day in Kolkata (UTC+05:30).
	instant := time.Date(2024, 6, 10, 20, 0, 0, 0, time.UTC)
	clock := NewClock(kolkata).WithNow(func() time.Time { return instant })

	assert.Equal(t, time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC), clock.Today())
	assert.Equal(t, time.UTC, clock.Now().Location())
	assert.True(t, clock.Now().Equal(instant))
}

func TestClock_DateOfMatchesParseDate(t *testing.T) {
	clock := NewClock(nil)
	parsed, err := ParseDate("2024-06-10")
	require.NoError(t, err)

	got := clock.DateOf(time.Date(2024, 6, 10, 23, 59, 0, 0, time.UTC))
	assert.True(t, got.Equal(parsed))
	assert.Equal(t, "2024-06-10", FormatDate(got))
}

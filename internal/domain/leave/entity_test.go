package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestInclusiveDays(t *testing.T) {
	assert.Equal(t, 1, InclusiveDays(day("2024-06-10"), day("2024-06-10")))
	assert.Equal(t, 2, InclusiveDays(day("2024-06-10"), day("2024-06-11")))
	assert.Equal(t, 31, InclusiveDays(day("2024-01-01"), day("2024-01-31")))
	assert.Equal(t, 2, InclusiveDays(day("2024-02-28"), day("2024-02-29")))
}

func TestRecord_CoversAndOverlaps(t *testing.T) {
	r := Record{StartDate: day("2024-06-10"), EndDate: day("2024-06-12")}

	assert.True(t, r.Covers(day("2024-06-10")))
	assert.True(t, r.Covers(day("2024-06-12")))
	assert.False(t, r.Covers(day("2024-06-13")))

	assert.True(t, r.Overlaps(day("2024-06-12"), day("2024-06-20")))
	assert.True(t, r.Overlaps(day("2024-06-01"), day("2024-06-10")))
	assert.False(t, r.Overlaps(day("2024-06-13"), day("2024-06-14")))
}

func TestAdjustAction_Apply(t *testing.T) {
	b := Balance{TotalAllocated: 10, Used: 4}

	got, err := AdjustAdd.Apply(b, 3)
	assert.NoError(t, err)
	assert.Equal(t, 13, got)

	got, err = AdjustDeduct.Apply(b, 3)
	assert.NoError(t, err)
	assert.Equal(t, 7, got)

	// Deduct floors at the days already used.
	got, err = AdjustDeduct.Apply(b, 50)
	assert.NoError(t, err)
	assert.Equal(t, 4, got)

	// Deduct on an unused balance floors at zero.
	got, err = AdjustDeduct.Apply(Balance{TotalAllocated: 2}, 5)
	assert.NoError(t, err)
	assert.Equal(t, 0, got)

	got, err = AdjustSet.Apply(b, 6)
	assert.NoError(t, err)
	assert.Equal(t, 6, got)

	_, err = AdjustSet.Apply(b, 3)
	assert.ErrorIs(t, err, ErrAllocationBelowUsage)

	_, err = AdjustAction("multiply").Apply(b, 2)
	assert.ErrorIs(t, err, ErrInvalidAdjustAction)

	_, err = AdjustAdd.Apply(Balance{TotalAllocated: MaxAllocation}, 1)
	assert.ErrorIs(t, err, ErrAllocationTooLarge)

	_, err = AdjustSet.Apply(b, MaxAllocation+1)
	assert.ErrorIs(t, err, ErrAllocationTooLarge)
}

func TestType_IsValid(t *testing.T) {
	for _, lt := range []string{"sick", "personal", "annual", "compensatory"} {
		assert.True(t, Type(lt).IsValid(), lt)
	}
	assert.False(t, Type("maternity").IsValid())
	assert.False(t, Type("").IsValid())
}

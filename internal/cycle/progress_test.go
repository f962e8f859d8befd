package cycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustInstant(t *testing.T, s string) time.Time {
	t.Helper()

	ts, err := ParseInstant(s)
	require.NoError(t, err)

	return ts
}

func TestProgress_HalfCycle(t *testing.T) {
	last := mustInstant(t, "2024-01-01T00:00:00Z")
	now := mustInstant(t, "2024-01-03T00:00:00Z")

	p, err := Progress(last, 4, now)
	require.NoError(t, err)
	assert.Equal(t, 0.5, p)
	assert.Equal(t, 50, Percent(p))
}

func TestProgress_OverdueClampsToOne(t *testing.T) {
	last := mustInstant(t, "2024-01-01T00:00:00Z")
	now := mustInstant(t, "2024-01-10T00:00:00Z")

	p, err := Progress(last, 3, now)
	require.NoError(t, err)
	assert.Equal(t, 1.0, p)
	assert.Equal(t, 100, Percent(p))
}

func TestProgress_ZeroAtLastWatered(t *testing.T) {
	last := mustInstant(t, "2024-01-01T00:00:00Z")

	for _, days := range []int{1, 3, 5, 30} {
		p, err := Progress(last, days, last)
		require.NoError(t, err)
		assert.Equal(t, 0.0, p, "days=%d", days)
	}
}

func TestProgress_NowBeforeLastWateredClampsToZero(t *testing.T) {
	last := mustInstant(t, "2024-01-05T12:00:00Z")
	now := mustInstant(t, "2024-01-01T00:00:00Z")

	p, err := Progress(last, 2, now)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p)
}

func TestProgress_OneOnceIntervalElapsed(t *testing.T) {
	last := mustInstant(t, "2024-03-10T08:15:00+01:00")

	for _, days := range []int{1, 2, 7} {
		due := last.Add(time.Duration(days) * 24 * time.Hour)

		p, err := Progress(last, days, due)
		require.NoError(t, err)
		assert.Equal(t, 1.0, p)

		p, err = Progress(last, days, due.Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, 1.0, p)
	}
}

func TestProgress_LinearWithinBounds(t *testing.T) {
	last := mustInstant(t, "2024-01-01T00:00:00Z")

	tests := []struct {
		elapsed time.Duration
		days    int
		want    float64
	}{
		{elapsed: 6 * time.Hour, days: 1, want: 0.25},
		{elapsed: 36 * time.Hour, days: 3, want: 0.5},
		{elapsed: 18 * time.Hour, days: 4, want: 0.1875},
		{elapsed: 5 * 24 * time.Hour, days: 10, want: 0.5},
	}

	for _, tt := range tests {
		p, err := Progress(last, tt.days, last.Add(tt.elapsed))
		require.NoError(t, err)
		assert.Equal(t, FractionalDays(last, last.Add(tt.elapsed))/float64(tt.days), p)
		assert.Equal(t, tt.want, p)
	}
}

func TestProgress_AlwaysWithinUnitInterval(t *testing.T) {
	last := mustInstant(t, "2024-06-01T10:00:00Z")

	for h := -72; h <= 24*12; h += 5 {
		p, err := Progress(last, 7, last.Add(time.Duration(h)*time.Hour))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}

func TestProgress_IsPure(t *testing.T) {
	last := mustInstant(t, "2024-01-01T00:00:00Z")
	now := mustInstant(t, "2024-01-02T07:00:00Z")

	first, err := Progress(last, 3, now)
	require.NoError(t, err)
	second, err := Progress(last, 3, now)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestProgress_InvalidInterval(t *testing.T) {
	last := mustInstant(t, "2024-01-01T00:00:00Z")

	for _, days := range []int{0, -1, -30} {
		p, err := Progress(last, days, last.Add(time.Hour))
		assert.ErrorIs(t, err, ErrInvalidInterval)
		assert.Equal(t, 0.0, p)
	}
}

func TestProgress_ZeroInstant(t *testing.T) {
	_, err := Progress(time.Time{}, 3, time.Now())
	assert.ErrorIs(t, err, ErrUnparseableInstant)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, Percent(0))
	assert.Equal(t, 33, Percent(1.0/3))
	assert.Equal(t, 67, Percent(2.0/3))
	assert.Equal(t, 100, Percent(1))
}

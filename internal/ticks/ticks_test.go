package ticks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSeconds(t *testing.T) {
	for _, tc := range []struct {
		seconds int64
		want    int64
	}{
		{0, 0},
		{1, 10_000_000},
		{60, 600_000_000},
		{3600, 36_000_000_000},
	} {
		got, err := FromSeconds(tc.seconds)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "seconds=%d", tc.seconds)
	}
}

func TestFromSecondsRejectsNegative(t *testing.T) {
	_, err := FromSeconds(-1)
	assert.Error(t, err)
}

func TestInterval(t *testing.T) {
	got, err := Interval(30)
	require.NoError(t, err)
	assert.Equal(t, int64(18_000_000_000), got)

	got, err = Interval(1)
	require.NoError(t, err)
	assert.Equal(t, int64(600_000_000), got)
}

func TestIntervalRejectsNonPositive(t *testing.T) {
	_, err := Interval(0)
	assert.Error(t, err)
	_, err = Interval(-5)
	assert.Error(t, err)
}

func TestDaily(t *testing.T) {
	got, err := Daily(3, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(108_000_000_000), got)

	got, err = Daily(0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)

	got, err = Daily(23, 59)
	require.NoError(t, err)
	assert.Equal(t, int64((23*3600+59*60))*PerSecond, got)
}

func TestParseTimeOfDay(t *testing.T) {
	hour, minute, err := ParseTimeOfDay("03:30")
	require.NoError(t, err)
	assert.Equal(t, 3, hour)
	assert.Equal(t, 30, minute)

	for _, bad := range []string{"", "3", "03:30:00", "aa:bb", "24:00", "12:60"} {
		_, _, err := ParseTimeOfDay(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestDailyRejectsOutOfRange(t *testing.T) {
	for _, tc := range []struct{ hour, minute int }{
		{-1, 0},
		{24, 0},
		{0, -1},
		{0, 60},
	} {
		_, err := Daily(tc.hour, tc.minute)
		assert.Error(t, err, "hour=%d minute=%d", tc.hour, tc.minute)
	}
}

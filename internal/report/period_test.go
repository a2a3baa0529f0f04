package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return parsed
}

func TestResolvePeriodMonth(t *testing.T) {
	now := mustTime(t, "2026-08-15")

	p, err := ResolvePeriod(PeriodMonth, "", "", now)
	require.NoError(t, err)
	assert.Equal(t, "August 2026", p.Label)
	assert.Equal(t, mustTime(t, "2026-08-01"), p.Start)
	assert.Equal(t, mustTime(t, "2026-09-01"), p.End)

	// Empty period defaults to month
	def, err := ResolvePeriod("", "", "", now)
	require.NoError(t, err)
	assert.Equal(t, p, def)
}

func TestResolvePeriodQuarter(t *testing.T) {
	p, err := ResolvePeriod(PeriodQuarter, "", "", mustTime(t, "2026-08-15"))
	require.NoError(t, err)
	assert.Equal(t, "Q3 2026", p.Label)
	assert.Equal(t, mustTime(t, "2026-07-01"), p.Start)
	assert.Equal(t, mustTime(t, "2026-10-01"), p.End)
}

func TestResolvePeriodYear(t *testing.T) {
	p, err := ResolvePeriod(PeriodYear, "", "", mustTime(t, "2026-08-15"))
	require.NoError(t, err)
	assert.Equal(t, "2026", p.Label)
	assert.Equal(t, mustTime(t, "2026-01-01"), p.Start)
	assert.Equal(t, mustTime(t, "2027-01-01"), p.End)
}

func TestResolvePeriodCustom(t *testing.T) {
	p, err := ResolvePeriod(PeriodCustom, "2026-01-01", "2026-03-15", mustTime(t, "2026-08-15"))
	require.NoError(t, err)
	assert.Equal(t, "2026-01-01 to 2026-03-15", p.Label)
	assert.Equal(t, mustTime(t, "2026-01-01"), p.Start)
	// End date is included in the window
	assert.Equal(t, mustTime(t, "2026-03-16"), p.End)
}

func TestResolvePeriodErrors(t *testing.T) {
	now := mustTime(t, "2026-08-15")

	_, err := ResolvePeriod(PeriodCustom, "", "", now)
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = ResolvePeriod(PeriodCustom, "2026-01-01", "", now)
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = ResolvePeriod(PeriodCustom, "01/01/2026", "2026-03-15", now)
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = ResolvePeriod(PeriodCustom, "2026-03-15", "2026-01-01", now)
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = ResolvePeriod("weekly", "", "", now)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestPreviousMonth(t *testing.T) {
	p := PreviousMonth(mustTime(t, "2026-01-15"))
	assert.Equal(t, "December 2025", p.Label)
	assert.Equal(t, mustTime(t, "2025-12-01"), p.Start)
	assert.Equal(t, mustTime(t, "2026-01-01"), p.End)
}

func TestMonthsIn(t *testing.T) {
	window, err := ResolvePeriod(PeriodCustom, "2026-01-15", "2026-03-10", mustTime(t, "2026-08-15"))
	require.NoError(t, err)

	months := monthsIn(window)
	require.Len(t, months, 3)
	assert.Equal(t, time.January, months[0].Month())
	assert.Equal(t, time.March, months[2].Month())
}

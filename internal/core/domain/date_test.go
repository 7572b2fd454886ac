package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/critpath/internal/core/domain"
)

func TestDayRound(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	late := time.Date(2024, time.March, 3, 23, 30, 0, 0, loc)

	assert.Equal(t, time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC), domain.DayRound(late))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, domain.DaysBetween(jan1, jan1.Add(20*time.Hour)))
	assert.Equal(t, 31, domain.DaysBetween(jan1, jan1.AddDate(0, 1, 0)))
	assert.Equal(t, -2, domain.DaysBetween(jan1, jan1.AddDate(0, 0, -2)))
	// 2024 is a leap year.
	assert.Equal(t, 366, domain.DaysBetween(jan1, jan1.AddDate(1, 0, 0)))
}

func TestAddDays(t *testing.T) {
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), domain.AddDays(time.Date(2024, time.February, 28, 12, 0, 0, 0, time.UTC), 2))
}

func TestParseDate(t *testing.T) {
	d, err := domain.ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), d)

	_, err = domain.ParseDate("2024-02-30")
	assert.Error(t, err)
	_, err = domain.ParseDate("29/02/2024")
	assert.Error(t, err)
}

package builtin_test

import (
	"testing"
	"time"

	// Packages
	toolcall "github.com/mutablelogic/go-toolcall"
	builtin "github.com/mutablelogic/go-toolcall/pkg/builtin"
	schema "github.com/mutablelogic/go-toolcall/pkg/schema"
	assert "github.com/stretchr/testify/assert"
)

///////////////////////////////////////////////////////////////////////////////
// TEST SET-UP

// Friday 1 March 2024, 13:30 UTC
var fixedNow = time.Date(2024, time.March, 1, 13, 30, 0, 0, time.UTC)

func datetimeHandlers() map[string]schema.Handler {
	return builtin.Datetime(func() time.Time { return fixedNow }).Handlers()
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_datetime_001(t *testing.T) {
	// Current date and time in a zone
	assert := assert.New(t)
	current := datetimeHandlers()["get_current_datetime"]

	result, err := current(t.Context(), map[string]any{})
	assert.NoError(err)
	assert.Equal("2024-03-01 13:30:00 (Friday)", result)

	result, err = current(t.Context(), map[string]any{"timezone": "Asia/Tokyo"})
	assert.NoError(err)
	assert.Equal("2024-03-01 22:30:00 (Friday)", result)

	result, err = current(t.Context(), map[string]any{"timezone": "Pacific/Kiritimati"})
	assert.NoError(err)
	assert.Equal("2024-03-02 03:30:00 (Saturday)", result)

	_, err = current(t.Context(), map[string]any{"timezone": "Mars/Olympus"})
	assert.ErrorIs(err, toolcall.ErrInvalidArguments)
}

func Test_datetime_002(t *testing.T) {
	// Weekday of relative and formatted dates
	assert := assert.New(t)
	weekday := datetimeHandlers()["get_weekday"]

	tests := map[string]string{
		"today":      "2024-03-01 is Friday",
		"Tomorrow":   "2024-03-02 is Saturday",
		"yesterday":  "2024-02-29 is Thursday",
		"2024-12-25": "2024-12-25 is Wednesday",
		"25.12.2024": "2024-12-25 is Wednesday",
		"25/12/2024": "2024-12-25 is Wednesday",
		"12/25/2024": "2024-12-25 is Wednesday",
		"25-12-2024": "2024-12-25 is Wednesday",
	}
	for date, expected := range tests {
		result, err := weekday(t.Context(), map[string]any{"date": date})
		if assert.NoError(err, date) {
			assert.Equal(expected, result, date)
		}
	}

	_, err := weekday(t.Context(), map[string]any{"date": "next week"})
	assert.ErrorIs(err, toolcall.ErrInvalidArguments)
	_, err = weekday(t.Context(), map[string]any{})
	assert.ErrorIs(err, toolcall.ErrInvalidArguments)
}

func Test_datetime_003(t *testing.T) {
	// Absolute difference in days
	assert := assert.New(t)
	difference := datetimeHandlers()["calculate_date_difference"]

	result, err := difference(t.Context(), map[string]any{"date1": "2024-01-01", "date2": "2024-12-31"})
	assert.NoError(err)
	assert.Equal("365 days", result)

	result, err = difference(t.Context(), map[string]any{"date1": "tomorrow", "date2": "yesterday"})
	assert.NoError(err)
	assert.Equal("2 days", result)

	_, err = difference(t.Context(), map[string]any{"date1": "today", "date2": "soon"})
	assert.ErrorIs(err, toolcall.ErrInvalidArguments)
}

package builtin

import (
	"context"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	// Packages
	toolcall "github.com/mutablelogic/go-toolcall"
	plugin "github.com/mutablelogic/go-toolcall/pkg/plugin"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Clock returns the current time
type Clock func() time.Time

type datetime struct {
	now Clock
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DatetimeID = "datetime"
)

const (
	dateLayout     = "2006-01-02"
	datetimeLayout = "2006-01-02 15:04:05"
	hoursPerDay    = 24
)

// Accepted date layouts, tried in order. Day-first wins when ambiguous.
var dateLayouts = []string{
	dateLayout,
	"02.01.2006",
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Datetime returns the datetime plugin. When clock is nil the system clock
// is used.
func Datetime(clock Clock) plugin.Plugin {
	if clock == nil {
		clock = time.Now
	}
	dt := &datetime{now: clock}
	return plugin.New(DatetimeID, plugin.Handlers{
		"get_current_datetime":      dt.currentDatetime,
		"get_weekday":               dt.weekday,
		"calculate_date_difference": dt.dateDifference,
	})
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (dt *datetime) currentDatetime(_ context.Context, args map[string]any) (any, error) {
	zone := plugin.OptString(args, "timezone", "UTC")
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, toolcall.ErrInvalidArguments.Withf("unknown timezone %q", zone)
	}
	now := dt.now().In(loc)
	return fmt.Sprintf("%s (%s)", now.Format(datetimeLayout), now.Weekday()), nil
}

func (dt *datetime) weekday(_ context.Context, args map[string]any) (any, error) {
	value, err := plugin.String(args, "date")
	if err != nil {
		return nil, err
	}
	date, err := dt.parseDate(value)
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("%s is %s", date.Format(dateLayout), date.Weekday()), nil
}

func (dt *datetime) dateDifference(_ context.Context, args map[string]any) (any, error) {
	var dates [2]time.Time
	for i, key := range []string{"date1", "date2"} {
		value, err := plugin.String(args, key)
		if err != nil {
			return nil, err
		}
		if dates[i], err = dt.parseDate(value); err != nil {
			return nil, err
		}
	}
	days := int(dates[1].Sub(dates[0]).Hours() / hoursPerDay)
	if days < 0 {
		days = -days
	}
	return fmt.Sprintf("%d days", days), nil
}

// parseDate returns midnight UTC of a date, which may be relative to today
func (dt *datetime) parseDate(value string) (time.Time, error) {
	now := dt.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}
	for _, layout := range dateLayouts {
		if date, err := time.ParseInLocation(layout, strings.TrimSpace(value), time.UTC); err == nil {
			return date, nil
		}
	}
	return time.Time{}, toolcall.ErrInvalidArguments.Withf("cannot parse date %q", value)
}

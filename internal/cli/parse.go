package cli

import (
	"strconv"
	"time"

	"tito/internal/errors"
	"tito/internal/services"
)

// acceptedTimeLayouts are tried in order when parsing user-supplied instants.
var acceptedTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseID parses a positive integer id argument.
func parseID(field, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidInputError(field, arg, "must be a positive integer id")
	}
	return id, nil
}

// parseTimeArg parses a user-supplied time in one of the accepted layouts,
// interpreted in the local time zone.
func parseTimeArg(field, arg string) (time.Time, error) {
	for _, layout := range acceptedTimeLayouts {
		if t, err := time.ParseInLocation(layout, arg, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.NewInvalidInputError(field, arg, "must be a date like 2006-01-02 or a timestamp like 2006-01-02 15:04")
}

// resolveRange turns the --range preset or the --from/--to pair into an
// inclusive range. A bare --from runs to now; a bare --to starts at zero.
func resolveRange(preset, from, to string, now time.Time) (time.Time, time.Time, error) {
	switch preset {
	case "":
		// fall through to from/to handling
	case "today":
		start, end := services.RangeToday(now)
		return start, end, nil
	case "week":
		start, end := services.RangeThisWeek(now)
		return start, end, nil
	case "month":
		start, end := services.RangeThisMonth(now)
		return start, end, nil
	case "7d":
		start, end := services.RangeLastNDays(now, 7)
		return start, end, nil
	case "30d":
		start, end := services.RangeLastNDays(now, 30)
		return start, end, nil
	default:
		return time.Time{}, time.Time{}, errors.NewInvalidInputError("range", preset, "must be one of today, week, month, 7d, 30d")
	}

	var start, end time.Time
	var err error
	if from != "" {
		start, err = parseTimeArg("from", from)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if to != "" {
		end, err = parseTimeArg("to", to)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		// A bare date means the whole day.
		if end.Hour() == 0 && end.Minute() == 0 && end.Second() == 0 {
			end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
	} else {
		end = now
	}
	return start, end, nil
}

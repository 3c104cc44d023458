package service

import (
	"time"

	"github.com/pageza/healthtracker/backend/internal/types"
)

// now is replaced in tests that depend on "today".
var now = time.Now

func today() string {
	return now().Format(types.DateLayout)
}

// resolveDate returns date, or today when date is empty. A non-empty date must
// be YYYY-MM-DD.
func resolveDate(date string) (string, error) {
	if date == "" {
		return today(), nil
	}
	if _, err := time.Parse(types.DateLayout, date); err != nil {
		return "", types.NewValidationError("date", "Invalid date format (expected YYYY-MM-DD)")
	}
	return date, nil
}

// dateRange returns from and to, defaulting to the last days days through today.
func dateRange(from, to string, days int) (string, string, error) {
	var err error
	if to, err = resolveDate(to); err != nil {
		return "", "", err
	}
	if from == "" {
		end, _ := time.Parse(types.DateLayout, to)
		from = end.AddDate(0, 0, -days).Format(types.DateLayout)
	} else if from, err = resolveDate(from); err != nil {
		return "", "", err
	}
	return from, to, nil
}

package appointments

import "time"

// Window is an inclusive [Start, End] time range used by listing filters
// and reports. All windows are computed in UTC.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window, boundaries included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// DayWindow covers the UTC calendar day containing ref.
func DayWindow(ref time.Time) Window {
	ref = ref.UTC()
	start := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	return Window{Start: start, End: endOfDay(start)}
}

// WeekWindow covers the Monday-through-Sunday week containing ref.
// Sunday belongs to the week that started the previous Monday.
func WeekWindow(ref time.Time) Window {
	ref = ref.UTC()
	diff := int(ref.Weekday()) - int(time.Monday)
	if ref.Weekday() == time.Sunday {
		diff = 6
	}
	monday := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -diff)
	return Window{Start: monday, End: endOfDay(monday.AddDate(0, 0, 6))}
}

// MonthWindow covers the UTC calendar month containing ref.
func MonthWindow(ref time.Time) Window {
	ref = ref.UTC()
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Window{Start: start, End: endOfDay(start.AddDate(0, 1, -1))}
}

// RangeWindow covers the inclusive span of calendar days from start's day
// through end's day.
func RangeWindow(start, end time.Time) Window {
	start = start.UTC()
	end = end.UTC()
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return Window{Start: s, End: endOfDay(e)}
}

// KeywordWindow maps a range keyword to its window around ref.
func KeywordWindow(keyword string, ref time.Time) (Window, error) {
	switch keyword {
	case "today":
		return DayWindow(ref), nil
	case "week":
		return WeekWindow(ref), nil
	case "month":
		return MonthWindow(ref), nil
	default:
		return Window{}, ErrInvalidRange
	}
}

func endOfDay(dayStart time.Time) time.Time {
	return dayStart.AddDate(0, 0, 1).Add(-time.Millisecond)
}

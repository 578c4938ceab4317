package appointments

import (
	"testing"
	"time"
)

func TestDayWindow(t *testing.T) {
	ref := time.Date(2025, 3, 12, 14, 30, 0, 0, time.UTC)
	win := DayWindow(ref)

	if want := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC); !win.Start.Equal(want) {
		t.Errorf("start = %v, want %v", win.Start, want)
	}
	if want := time.Date(2025, 3, 12, 23, 59, 59, 999e6, time.UTC); !win.End.Equal(want) {
		t.Errorf("end = %v, want %v", win.End, want)
	}
}

func TestWeekWindow_MondayStart(t *testing.T) {
	// Wednesday March 12 2025 belongs to the week of Monday March 10.
	ref := time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)
	win := WeekWindow(ref)

	if want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC); !win.Start.Equal(want) {
		t.Errorf("start = %v, want %v", win.Start, want)
	}
	if want := time.Date(2025, 3, 16, 23, 59, 59, 999e6, time.UTC); !win.End.Equal(want) {
		t.Errorf("end = %v, want %v", win.End, want)
	}
}

func TestWeekWindow_SundayBelongsToPreviousMonday(t *testing.T) {
	// Sunday March 16 2025 belongs to the week started Monday March 10.
	ref := time.Date(2025, 3, 16, 23, 0, 0, 0, time.UTC)
	win := WeekWindow(ref)

	if want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC); !win.Start.Equal(want) {
		t.Errorf("start = %v, want %v", win.Start, want)
	}
	if !win.Contains(ref) {
		t.Error("expected Sunday evening inside its own week")
	}
}

func TestWeekWindow_MondayStartsNewWeek(t *testing.T) {
	sunday := time.Date(2025, 3, 16, 12, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)

	if WeekWindow(monday).Contains(sunday) {
		t.Error("Monday's week must not contain the previous Sunday")
	}
	if !WeekWindow(monday).Contains(monday) {
		t.Error("Monday's week must contain Monday itself")
	}
}

func TestMonthWindow(t *testing.T) {
	ref := time.Date(2025, 2, 14, 8, 0, 0, 0, time.UTC)
	win := MonthWindow(ref)

	if want := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC); !win.Start.Equal(want) {
		t.Errorf("start = %v, want %v", win.Start, want)
	}
	if want := time.Date(2025, 2, 28, 23, 59, 59, 999e6, time.UTC); !win.End.Equal(want) {
		t.Errorf("end = %v, want %v", win.End, want)
	}
}

func TestRangeWindow_InclusiveBounds(t *testing.T) {
	win := RangeWindow(
		time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC))

	if !win.Contains(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("expected start-day midnight inside window")
	}
	if !win.Contains(time.Date(2025, 3, 5, 23, 59, 59, 0, time.UTC)) {
		t.Error("expected end-day evening inside window")
	}
	if win.Contains(time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC)) {
		t.Error("expected day after range outside window")
	}
}

func TestKeywordWindow_RejectsUnknownKeyword(t *testing.T) {
	if _, err := KeywordWindow("fortnight", time.Now()); err != ErrInvalidRange {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

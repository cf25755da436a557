package optimizer

import "testing"

func TestParseTimeToMinutes(t *testing.T) {
	cases := map[string]int{
		"00:00": 0,
		"09:30": 570,
		"22:00": 1320,
		"23:59": 1439,
	}
	for text, want := range cases {
		got, err := ParseTimeToMinutes(text)
		if err != nil {
			t.Errorf("ParseTimeToMinutes(%q) returned error: %v", text, err)
			continue
		}
		if got != want {
			t.Errorf("ParseTimeToMinutes(%q) = %d, want %d", text, got, want)
		}
	}

	for _, bad := range []string{"", "0930", "24:00", "12:60", "ab:cd"} {
		if _, err := ParseTimeToMinutes(bad); err == nil {
			t.Errorf("ParseTimeToMinutes(%q) should fail", bad)
		}
	}
}

func TestDurationHours(t *testing.T) {
	day, _ := ParseTimeToMinutes("09:00")
	dayEnd, _ := ParseTimeToMinutes("17:00")
	if got := DurationHours(day, dayEnd); got != 8 {
		t.Errorf("Expected 8 hour day shift, got %d", got)
	}

	// Overnight shift wraps past midnight
	night, _ := ParseTimeToMinutes("22:00")
	nightEnd, _ := ParseTimeToMinutes("06:00")
	if got := DurationHours(night, nightEnd); got != 8 {
		t.Errorf("Expected 8 hour overnight shift, got %d", got)
	}

	// Ending exactly at midnight is a full positive duration
	evening, _ := ParseTimeToMinutes("16:00")
	midnight, _ := ParseTimeToMinutes("00:00")
	if got := DurationHours(evening, midnight); got != 8 {
		t.Errorf("Expected 8 hours up to midnight, got %d", got)
	}
}

func TestWeekKey(t *testing.T) {
	// 2024-12-30 falls in ISO week 1 of 2025
	monday, err := WeekKey("2024-12-30")
	if err != nil {
		t.Fatalf("WeekKey returned error: %v", err)
	}
	thursday, _ := WeekKey("2025-01-02")
	if monday != thursday {
		t.Errorf("Expected same week key across the year boundary, got %s vs %s", monday, thursday)
	}
	if monday != "2025-W01" {
		t.Errorf("Expected 2025-W01, got %s", monday)
	}

	nextWeek, _ := WeekKey("2025-01-06")
	if nextWeek == monday {
		t.Errorf("Expected a different key for the following week")
	}

	if _, err := WeekKey("30/12/2024"); err == nil {
		t.Errorf("Expected error for malformed date")
	}
}

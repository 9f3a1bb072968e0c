package schedule

import (
	"reflect"
	"testing"
)

func TestHourlySlots_FullWorkday(t *testing.T) {
	got, err := HourlySlots("08:00", "17:00")
	if err != nil {
		t.Fatalf("HourlySlots returned error: %v", err)
	}

	want := []string{"08:00", "09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestHourlySlots_MinutesDropAfterFirstSlot(t *testing.T) {
	// 09:30 entra; el siguiente paso es 10:00 (minutos a cero), que ya no es < 10:30?
	// Sí lo es: 10:00 < 10:30, así que también entra. El comportamiento histórico
	// pierde el offset :30 a partir del segundo slot.
	got, err := HourlySlots("09:30", "10:30")
	if err != nil {
		t.Fatalf("HourlySlots returned error: %v", err)
	}

	want := []string{"09:30", "10:00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestHourlySlots_EmptyAndReversedRanges(t *testing.T) {
	for _, tc := range [][2]string{
		{"10:00", "10:00"},
		{"15:00", "09:00"},
	} {
		got, err := HourlySlots(tc[0], tc[1])
		if err != nil {
			t.Fatalf("HourlySlots(%q,%q) returned error: %v", tc[0], tc[1], err)
		}
		if len(got) != 0 {
			t.Fatalf("HourlySlots(%q,%q): expected empty, got %v", tc[0], tc[1], got)
		}
	}
}

func TestHourlySlots_RejectsMalformedTimes(t *testing.T) {
	for _, bad := range []string{"", "8", "25:00", "08:60", "ocho:00"} {
		if _, err := HourlySlots(bad, "17:00"); err == nil {
			t.Fatalf("expected error for start %q", bad)
		}
	}
}

func TestWeekdayCode(t *testing.T) {
	cases := map[string]string{
		"2025-12-21": "sun",
		"2025-12-22": "mon",
		"2025-12-27": "sat",
	}
	for date, want := range cases {
		got, err := WeekdayCode(date)
		if err != nil {
			t.Fatalf("WeekdayCode(%q) error: %v", date, err)
		}
		if got != want {
			t.Fatalf("WeekdayCode(%q) = %q, want %q", date, got, want)
		}
	}

	if _, err := WeekdayCode("21/12/2025"); err != ErrBadDate {
		t.Fatalf("expected ErrBadDate, got %v", err)
	}
}

func TestFree_PreservesOrderAndSubtractsTaken(t *testing.T) {
	slots := []string{"08:00", "09:00", "10:00", "11:00"}
	got := Free(slots, []string{"09:00", "11:00", "09:00"})

	want := []string{"08:00", "10:00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFree_EmptyGrid(t *testing.T) {
	if got := Free(nil, []string{"08:00"}); len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}
}

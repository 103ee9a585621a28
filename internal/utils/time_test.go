package utils

import (
	"slices"
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: ""},
		{name: "Local returns local", timezone: "Local"},
		{name: "valid timezone UTC", timezone: "UTC"},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestSameDay(t *testing.T) {
	utc := time.UTC
	plus5 := time.FixedZone("UTC+5", 5*60*60)

	tests := []struct {
		name string
		a    time.Time
		ref  time.Time
		want bool
	}{
		{
			name: "morning and evening of the same day",
			a:    time.Date(2024, 3, 10, 6, 0, 0, 0, utc),
			ref:  time.Date(2024, 3, 10, 23, 59, 0, 0, utc),
			want: true,
		},
		{
			name: "midnight boundary",
			a:    time.Date(2024, 3, 10, 23, 59, 59, 0, utc),
			ref:  time.Date(2024, 3, 11, 0, 0, 0, 0, utc),
			want: false,
		},
		{
			name: "judged in the reference location",
			a:    time.Date(2024, 3, 10, 20, 0, 0, 0, utc),
			ref:  time.Date(2024, 3, 11, 2, 0, 0, 0, plus5),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameDay(tt.a, tt.ref); got != tt.want {
				t.Errorf("SameDay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStartOfWeek(t *testing.T) {
	// Wednesday 2024-03-13
	wed := time.Date(2024, 3, 13, 15, 30, 0, 0, time.UTC)
	got := StartOfWeek(wed)
	want := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartOfWeek() = %v, want %v", got, want)
	}

	sun := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	if got := StartOfWeek(sun); !got.Equal(want) {
		t.Errorf("StartOfWeek(sunday) = %v, want %v", got, want)
	}
}

func TestDaysIn(t *testing.T) {
	if got := DaysIn(2024, time.February); got != 29 {
		t.Errorf("DaysIn(2024, Feb) = %d, want 29", got)
	}
	if got := DaysIn(2023, time.February); got != 28 {
		t.Errorf("DaysIn(2023, Feb) = %d, want 28", got)
	}
	if got := DaysIn(2024, time.December); got != 31 {
		t.Errorf("DaysIn(2024, Dec) = %d, want 31", got)
	}
}

func TestFormatTime12h(t *testing.T) {
	tests := map[string]string{
		"09:00": "9:00 AM",
		"00:15": "12:15 AM",
		"12:00": "12:00 PM",
		"21:45": "9:45 PM",
		"bogus": "bogus",
	}
	for in, want := range tests {
		if got := FormatTime12h(in); got != want {
			t.Errorf("FormatTime12h(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseWeekdays(t *testing.T) {
	tests := []struct {
		input   string
		want    []time.Weekday
		wantErr bool
	}{
		{input: "mon,wed,fri", want: []time.Weekday{time.Monday, time.Wednesday, time.Friday}},
		{input: "0, 6", want: []time.Weekday{time.Sunday, time.Saturday}},
		{input: "Monday,monday,1", want: []time.Weekday{time.Monday}},
		{input: "weekends", want: []time.Weekday{time.Sunday, time.Saturday}},
		{input: "weekdays", want: []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}},
		{input: "funday", wantErr: true},
		{input: "7", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWeekdays(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWeekdays() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !slices.Equal(got, tt.want) {
				t.Errorf("ParseWeekdays() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	tests := []struct {
		in   string
		want string
	}{
		{"~", "/home/tester"},
		{"~/.config/habitlit/habitlit.db", "/home/tester/.config/habitlit/habitlit.db"},
		{"/var/lib/habitlit.db", "/var/lib/habitlit.db"},
		{"relative/habitlit.json", "relative/habitlit.json"},
		{"~other/file", "~other/file"},
	}
	for _, tt := range tests {
		got, err := ExpandHome(tt.in)
		if err != nil {
			t.Fatalf("ExpandHome(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

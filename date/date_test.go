package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the Time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.Time() != d2.Time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid Time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Date
	}{
		{"2023-06-01", New(2023, 6, 1)},
		{"2025-7-1", New(2025, 7, 1)},
		{" 2024-02-29 ", New(2024, 2, 29)},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q) unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := Parse("2023-13-01"); err == nil {
		t.Error("Parse(2023-13-01) expected an error")
	}
}

// TestParseTimeUTC checks plain dates are UTC midnight whatever the local zone.
func TestParseTimeUTC(t *testing.T) {
	saved := time.Local
	time.Local = time.FixedZone("behind", -8*3600)
	defer func() { time.Local = saved }()

	got, err := ParseTime("2023-06-01")
	if err != nil {
		t.Fatalf("ParseTime() unexpected error %v", err)
	}
	want := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) || got.Location() != time.UTC {
		t.Errorf("ParseTime() = %v, want %v", got, want)
	}
	if Of(got) != New(2023, 6, 1) {
		t.Errorf("Of(%v) = %v, off by one day", got, Of(got))
	}
}

func TestParseTimeLayouts(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2023-06-01T10:30:00Z", time.Date(2023, 6, 1, 10, 30, 0, 0, time.UTC)},
		{"2023-06-01T10:30:00+02:00", time.Date(2023, 6, 1, 8, 30, 0, 0, time.UTC)},
		{"2023-06-01T10:30:00", time.Date(2023, 6, 1, 10, 30, 0, 0, time.UTC)},
		{"2023-06-01 10:30:00", time.Date(2023, 6, 1, 10, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseTime(tt.in)
		if err != nil {
			t.Errorf("ParseTime(%q) unexpected error %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	for _, in := range []string{"", "yesterday", "01/06/2023"} {
		if _, err := ParseTime(in); err == nil {
			t.Errorf("ParseTime(%q) expected an error", in)
		}
	}
}

func TestDateJSON(t *testing.T) {
	var v struct {
		A, B, C Date
	}
	if err := json.Unmarshal([]byte(`{"A":"2023-06-01","B":null,"C":""}`), &v); err != nil {
		t.Fatalf("Unmarshal() unexpected error %v", err)
	}
	if v.A != New(2023, 6, 1) || !v.B.IsZero() || !v.C.IsZero() {
		t.Errorf("Unmarshal() = %+v", v)
	}
	got, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal() unexpected error %v", err)
	}
	if want := `{"A":"2023-06-01","B":null,"C":null}`; string(got) != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}
}

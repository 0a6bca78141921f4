package normalize

import (
	"errors"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestDurationSeconds(t *testing.T) {
	tests := []struct {
		name     string
		input    *string
		expected int64
	}{
		{"hours minutes seconds", strPtr("PT1H2M3S"), 3723},
		{"minutes only", strPtr("PT45M"), 2700},
		{"seconds only", strPtr("PT30S"), 30},
		{"hours only", strPtr("PT2H"), 7200},
		{"hours and seconds", strPtr("PT1H30S"), 3630},
		{"empty duration", strPtr("PT"), 0},
		{"zero seconds", strPtr("PT0S"), 0},
		{"long video", strPtr("PT11H22M33S"), 40953},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DurationSeconds(tt.input)
			if err != nil {
				t.Fatalf("DurationSeconds(%q) failed: %v", *tt.input, err)
			}
			if got == nil {
				t.Fatalf("DurationSeconds(%q) = nil, want %d", *tt.input, tt.expected)
			}
			if *got != tt.expected {
				t.Errorf("DurationSeconds(%q) = %d, want %d", *tt.input, *got, tt.expected)
			}
		})
	}
}

func TestDurationSecondsNil(t *testing.T) {
	got, err := DurationSeconds(nil)
	if err != nil {
		t.Fatalf("DurationSeconds(nil) failed: %v", err)
	}
	if got != nil {
		t.Errorf("DurationSeconds(nil) = %d, want nil", *got)
	}
}

func TestDurationSecondsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing marker", "1H2M3S"},
		{"wrong marker", "XX1H2M3S"},
		{"lowercase marker", "pt1h2m3s"},
		{"empty string", ""},
		{"misordered units", "PT3S5M"},
		{"trailing garbage", "PT5Mabc"},
		{"no digits before unit", "PTH"},
		{"negative component", "PT-5M"},
		{"date component", "P1DT5M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DurationSeconds(&tt.input)
			if err == nil {
				t.Fatalf("DurationSeconds(%q) = %d, want FormatError", tt.input, *got)
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Errorf("DurationSeconds(%q) error = %T, want *FormatError", tt.input, err)
			}
		})
	}
}

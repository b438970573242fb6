package input

import (
	"reflect"
	"testing"
)

func TestParseEmojis(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: []string{}},
		{name: "spaces", input: "☕ 🎤", want: []string{"☕", "🎤"}},
		{name: "commas", input: "☕,🎤, 🍽", want: []string{"☕", "🎤", "🍽"}},
		{name: "duplicates", input: "☕ ☕", want: []string{"☕"}},
		{name: "blanks", input: " , ,", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseEmojis(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ParseEmojis(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}

	if got := FormatEmojis([]string{"☕", "🎤"}); got != "☕ 🎤" {
		t.Fatalf("FormatEmojis = %q", got)
	}
}

func TestNormalizeClock(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"9", "09:00"},
		{"14", "14:00"},
		{"930", "09:30"},
		{"0930", "09:30"},
		{"9:30", "09:30"},
		{"09:05", "09:05"},
		{" 10:00 ", "10:00"},
		{"9:75", "9:75"},
		{"noon", "noon"},
		{"12345", "12345"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeClock(tt.input); got != tt.want {
			t.Errorf("NormalizeClock(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

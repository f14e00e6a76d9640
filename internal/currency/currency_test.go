package currency

import (
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		symbol string
		want   string
	}{
		{"whole amount with grouping", 45000, "R", "R45,000"},
		{"small amount", 500, "R", "R500"},
		{"cents kept", 1234.5, "R", "R1,234.50"},
		{"default symbol", 100, "", "R100"},
		{"negative amount", -2500, "R", "-R2,500"},
		{"zero", 0, "R", "R0"},
		{"million grouping", 1500000, "R", "R1,500,000"},
		{"fraction rounds up into whole part", 0.999, "R", "R1"},
		{"carry crosses a thousands group", 45000.999, "R", "R45,001"},
		{"half cent rounds up", 0.005, "R", "R0.01"},
		{"sub-cent fraction dropped", 100.001, "R", "R100"},
		{"negative rounding to zero drops the sign", -0.001, "R", "R0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.amount, tt.symbol); got != tt.want {
				t.Errorf("Format(%v, %q) = %q, want %q", tt.amount, tt.symbol, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"R45,000", 45000},
		{"R1,234.50", 1234.5},
		{"500", 500},
		{"not a number", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := Parse(tt.in); got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name  string
		part  float64
		total float64
		want  int
	}{
		{"three quarters", 45000, 60000, 75},
		{"zero total yields zero", 100, 0, 0},
		{"rounds to nearest", 1, 3, 33},
		{"rounds up", 2, 3, 67},
		{"over target", 150, 100, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percentage(tt.part, tt.total); got != tt.want {
				t.Errorf("Percentage(%v, %v) = %d, want %d", tt.part, tt.total, got, tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(d); got != "15 Dec 2024" {
		t.Errorf("FormatDate() = %q, want %q", got, "15 Dec 2024")
	}
}

func TestTimeUntil(t *testing.T) {
	now := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		target time.Time
		want   string
	}{
		{"past target", now.Add(-time.Hour), "Expired"},
		{"one day", now.Add(24 * time.Hour), "1 day"},
		{"a few days", now.Add(3 * 24 * time.Hour), "3 days"},
		{"two weeks", now.Add(14 * 24 * time.Hour), "2 weeks"},
		{"two months", now.Add(60 * 24 * time.Hour), "2 months"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TimeUntil(tt.target, now); got != tt.want {
				t.Errorf("TimeUntil() = %q, want %q", got, tt.want)
			}
		})
	}
}

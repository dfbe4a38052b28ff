package entry

import (
	"errors"
	"testing"
	"time"

	"nathanbeddoewebdev/vitals/internal/metric"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParse(t *testing.T) {
	var s Session
	line, err := s.Parse("Weight 80 01012024 kg")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if line.Name != "weight" {
		t.Errorf("Name = %q, want weight", line.Name)
	}
	if f, ok := line.Value.Float(); !ok || f != 80 || line.Value.Kind() != metric.KindNumber {
		t.Errorf("Value = %v (%s), want number 80", line.Value, line.Value.Kind())
	}
	if !line.Date.Equal(date(2024, time.January, 1)) {
		t.Errorf("Date = %v, want 2024-01-01", line.Date)
	}
	if line.Unit != "kg" {
		t.Errorf("Unit = %q, want kg", line.Unit)
	}
}

func TestParse_ValueKinds(t *testing.T) {
	tests := []struct {
		in   string
		kind metric.Kind
	}{
		{"fasting TRUE 02012024", metric.KindBoolean},
		{"crp <5 02012024", metric.KindInequality},
		{"mood good 02012024", metric.KindText},
		{"temp 36.6 02012024", metric.KindNumber},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var s Session
			line, err := s.Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if line.Value.Kind() != tt.kind {
				t.Errorf("kind = %s, want %s", line.Value.Kind(), tt.kind)
			}
		})
	}
}

func TestParse_WildcardIdempotence(t *testing.T) {
	var s Session
	first, err := s.Parse("weight 80 01012024")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	second, err := s.Parse("* * *")
	if err != nil {
		t.Fatalf("Parse wildcards: %v", err)
	}
	if first.Name != second.Name || first.Value != second.Value || !first.Date.Equal(second.Date) || first.Unit != second.Unit {
		t.Errorf("wildcard line %+v differs from %+v", second, first)
	}
}

func TestParse_WildcardsReadSameSnapshot(t *testing.T) {
	var s Session
	if _, err := s.Parse("weight 80 01012024 kg"); err != nil {
		t.Fatal(err)
	}
	line, err := s.Parse("height * 05012024 *")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if line.Name != "height" || line.Value.String() != "80" || line.Unit != "kg" {
		t.Errorf("unexpected line %+v", line)
	}
	if !line.Date.Equal(date(2024, time.January, 5)) {
		t.Errorf("Date = %v", line.Date)
	}

	// The next wildcard name repeats height, the last line's name.
	next, err := s.Parse("* 1.8 *")
	if err != nil {
		t.Fatal(err)
	}
	if next.Name != "height" || !next.Date.Equal(date(2024, time.January, 5)) {
		t.Errorf("unexpected line %+v", next)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"weight 80", ErrMalformedArity},
		{"weight 80 01012024 kg extra", ErrMalformedArity},
		{"", ErrMalformedArity},
		{"weight 80 2024-01-01", ErrBadDate},
		{"weight 80 32012024", ErrBadDate},
		{"crp <<5 01012024", ErrBadValue},
		{"* 80 01012024", ErrNoPrevious},
		{"weight * 01012024", ErrNoPrevious},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var s Session
			_, err := s.Parse(tt.in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Parse(%q) error = %v, want %v", tt.in, err, tt.want)
			}
			if !errors.Is(err, ErrMalformedInput) {
				t.Errorf("error %v does not match ErrMalformedInput", err)
			}
		})
	}
}

func TestParse_FailureLeavesStateAlone(t *testing.T) {
	var s Session
	if _, err := s.Parse("weight 80 01012024"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Parse("height 180 notadate"); err == nil {
		t.Fatal("expected date error")
	}
	line, err := s.Parse("* * *")
	if err != nil {
		t.Fatal(err)
	}
	if line.Name != "weight" {
		t.Errorf("Name = %q, failed line leaked into session state", line.Name)
	}
}

func TestParse_WildcardDateBeforeAnyLine(t *testing.T) {
	var s Session
	line, err := s.Parse("weight 80 *")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !line.Date.IsZero() || line.Date.Year() != 1 {
		t.Errorf("Date = %v, want 0001-01-01", line.Date)
	}
}

func TestIsVerbatim(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{`"weigth"`, "weigth", true},
		{"weigth*", "weigth", true},
		{"*", "*", false},
		{`"`, `"`, false},
		{"weight", "weight", false},
	}
	for _, tt := range tests {
		got, ok := IsVerbatim(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("IsVerbatim(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := map[string]Mode{
		"manual": Manual, "2": Assisted, " Speedy ": Speedy, "3": Speedy, "1": Manual,
	}
	for in, want := range tests {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseMode("4"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}
}

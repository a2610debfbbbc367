package fields

import (
	"encoding/json"
	"testing"
	"time"
)

func fixedParser() YearParser {
	return YearParser{Now: func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }}
}

func TestParseYear(t *testing.T) {
	p := fixedParser()
	tests := []struct {
		name string
		in   any
		want int
		ok   bool
	}{
		{"four digit string", "2020", 2020, true},
		{"iso date", "2020-05-01", 2020, true},
		{"iso datetime", "2019-12-31T23:00:00.000Z", 2019, true},
		{"unix seconds number", json.Number("1622505600"), 2021, true},
		{"unix seconds string", "1622505600", 2021, true},
		{"unix seconds float", float64(1622505600), 2021, true},
		{"literal year number", json.Number("1999"), 1999, true},
		{"literal year int", 2024, 2024, true},
		{"future in range", "2031", 2031, true},
		{"far future timestamp", json.Number("99999999999"), 0, false},
		{"slash date", "15/08/2018", 2018, true},
		{"long form date", "June 1, 2021", 2021, true},
		{"not a date", "not-a-date", 0, false},
		{"blank", "   ", 0, false},
		{"negative", -5, 0, false},
		{"fraction", 2020.5, 0, false},
		{"bool", true, 0, false},
		{"nil", nil, 0, false},
		{"zero year", "0000", 0, false},
		{"four digit number past range", json.Number("2040"), 0, false},
		{"four digit string past range", "2040", 0, false},
		{"four digit string before range", "1850", 0, false},
		{"literal year before range", json.Number("1850"), 0, false},
		{"literal year float past range", float64(3000), 0, false},
		{"largest four digit number", json.Number("9999"), 0, false},
		{"whole float json number", json.Number("2021.0"), 2021, true},
		{"range floor", json.Number("1900"), 1900, true},
		{"iso date past range", "2040-01-01", 0, false},
		{"short number", json.Number("500"), 0, false},
		{"short int", 500, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Parse(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("Parse(%v) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestYearChainOrder(t *testing.T) {
	chain := fixedParser().Chain()
	got, ok := chain(map[string]any{"year": "unknown", "release_date": "2015-02-03", "first_air_date": "2010-01-01"})
	if !ok || got != 2015 {
		t.Fatalf("chain = %d, %v; want 2015", got, ok)
	}
	if _, ok := chain(map[string]any{"title": "x"}); ok {
		t.Fatal("expected absent year")
	}
}

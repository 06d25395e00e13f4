package parser

import "testing"

func TestScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		value  int
		parsed bool
	}{
		{name: "wrapped in prose", input: "2. **Experience Match Score:** 87% overall", value: 87, parsed: true},
		{name: "first match wins", input: "Score 40%, but could reach 90% with training", value: 40, parsed: true},
		{name: "single digit", input: "match: 5%", value: 5, parsed: true},
		{name: "hundred", input: "100%", value: 100, parsed: true},
		{name: "clamped", input: "a solid 150% fit", value: 100, parsed: true},
		{name: "four digits keep last three", input: "1234%", value: 100, parsed: true},
		{name: "space before percent", input: "87 %", value: 0, parsed: false},
		{name: "no percent token", input: "The candidate looks strong.", value: 0, parsed: false},
		{name: "empty", input: "", value: 0, parsed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Score(tt.input)
			if got.Value != tt.value || got.Parsed != tt.parsed {
				t.Fatalf("expected {%d %v}, got %+v", tt.value, tt.parsed, got)
			}
		})
	}
}

func TestScoreIsIdempotent(t *testing.T) {
	text := "...87%..."
	first, second := Score(text), Score(text)
	if first != second || first.Value != 87 {
		t.Fatalf("unexpected results: %+v, %+v", first, second)
	}
}

package patterns

import (
	"reflect"
	"testing"
)

func TestNumericCitation(t *testing.T) {
	got := NumericCitation.FindAllString("As shown in [1] and [42], but not [a].", -1)
	want := []string{"[1]", "[42]"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("matches = %v, want %v", got, want)
	}
}

func TestParentheticalCitationRequiresYear(t *testing.T) {
	text := "Confirmed (Smith, 2020) but not (see below)."
	got := ParentheticalCitation.FindAllString(text, -1)
	if len(got) != 1 || got[0] != "(Smith, 2020)" {
		t.Errorf("matches = %v, want [(Smith, 2020)]", got)
	}
}

func TestNarrativeCitation(t *testing.T) {
	text := "Jones et al., 2019 demonstrated this effect."
	if NarrativeCitation.FindString(text) != "Jones et al., 2019" {
		t.Errorf("no narrative match in %q", text)
	}
}

func TestYearBounds(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"published in 1997", "1997"},
		{"published in 2045", "2045"},
		{"sample size 1850", ""},
		{"error code 2150", ""},
	}
	for _, tt := range tests {
		if got := Year.FindString(tt.text); got != tt.want {
			t.Errorf("Year(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "terminators",
			text: "First sentence. Second one? Third one!",
			want: []string{"First sentence.", "Second one?", "Third one!"},
		},
		{
			name: "no trailing terminator",
			text: "First. Trailing fragment",
			want: []string{"First.", "Trailing fragment"},
		},
		{
			name: "decimal not split",
			text: "Accuracy was 3.5 percent. Done.",
			want: []string{"Accuracy was 3.5 percent.", "Done."},
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitSentences(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestContainsAny(t *testing.T) {
	if !ContainsAny("A key LIMITATION here", []string{"limitation"}) {
		t.Error("expected case-insensitive match")
	}
	if ContainsAny("nothing relevant", []string{"limitation", "drawback"}) {
		t.Error("unexpected match")
	}
}

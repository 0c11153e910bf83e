package vocab

import "testing"

func TestWordTypeFromNumber(t *testing.T) {
	tests := []struct {
		n    int
		want WordType
	}{
		{0, WordTypeNone},
		{1, WordTypeNoun},
		{2, WordTypePronoun},
		{3, WordTypeVerb},
		{11, WordTypeAuxiliary},
		{12, WordTypePhrase},
		{13, WordTypeNone},
		{-1, WordTypeNone},
	}
	for _, tt := range tests {
		if got := WordTypeFromNumber(tt.n); got != tt.want {
			t.Errorf("WordTypeFromNumber(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestParseWordType(t *testing.T) {
	tests := []struct {
		in     string
		want   WordType
		wantOK bool
	}{
		{"4", WordTypeAdjective, true},
		{" 12\n", WordTypePhrase, true},
		{"99", WordTypeNone, true},
		{"Verb", WordTypeVerb, true},
		{"interjection", WordTypeInterjection, true},
		{"gerund", WordTypeNone, false},
		{"", WordTypeNone, false},
	}
	for _, tt := range tests {
		got, ok := ParseWordType(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseWordType(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestWordTypeIsValid(t *testing.T) {
	for _, wt := range WordTypes {
		if !wt.IsValid() {
			t.Errorf("%q should be valid", wt)
		}
	}
	if WordTypeNone.IsValid() {
		t.Error("WordTypeNone should not be valid")
	}
	if WordTypeNone.String() != "unclassified" {
		t.Errorf("got %q", WordTypeNone.String())
	}
}

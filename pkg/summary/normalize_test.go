package summary

import "testing"

func TestCleanName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Paris", "Paris"},
		{"city country", "Paris, France", "Paris, France"},
		{"leading preposition", "in Tokyo", "Tokyo"},
		{"leading article", "The Eiffel Tower", "Eiffel Tower"},
		{"parenthetical", "Eiffel Tower (Paris)", "Eiffel Tower"},
		{"bracketed", "Louvre [museum]", "Louvre"},
		{"dash description", "Santorini - a Greek island", "Santorini"},
		{"trailing clause", "Kyoto, which has many temples", "Kyoto"},
		{"quoted", `"Central Park"`, "Central Park"},
		{"curly quotes", "“Big Ben”", "Big Ben"},
		{"trailing punctuation", "Rome.", "Rome"},
		{"whitespace collapse", "  New   York  ", "New York"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanName(tt.in); got != tt.want {
				t.Errorf("CleanName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanName_Idempotent(t *testing.T) {
	inputs := []string{
		"in the old town of Prague",
		"Eiffel Tower (Paris)",
		"Santorini - a Greek island",
		"Paris, France",
		`"Machu Picchu"`,
	}
	for _, in := range inputs {
		once := CleanName(in)
		if twice := CleanName(once); twice != once {
			t.Errorf("CleanName not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestIsValidName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"plain city", "Paris", true},
		{"city country", "Paris, France", true},
		{"landmark", "Eiffel Tower", true},
		{"too short", "P", false},
		{"too long", longName(101), false},
		{"skip phrase", "the video background", false},
		{"no-content phrase", "none mentioned", false},
		{"narration word", "beautiful scene", false},
		{"mostly digits", "123 456", false},
		{"no letters", "12:34", false},
		{"too many words", "a long sentence that describes the whole journey", false},
		{"six words ok", "Basilica of the Sacred Heart Paris", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidName(tt.in); got != tt.want {
				t.Errorf("IsValidName(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func longName(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'a'
	}
	return string(b)
}

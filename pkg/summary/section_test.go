package summary

import "testing"

func TestSectionFinder_HeadingWithIcon(t *testing.T) {
	text := "### 📝 Summary\nA trip through Europe.\n\n### 📍 Locations:\n- Paris, France\n- Tokyo, Japan\n\n### 💡 Tips\nGo in spring."

	got := locationsFinder.Find(text)
	want := "- Paris, France\n- Tokyo, Japan"
	if got != want {
		t.Errorf("Find() = %q, want %q", got, want)
	}
}

func TestSectionFinder_Alternatives(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "heading without icon",
			text: "## Summary\nStuff.\n\n## Locations\n- Rome\n\n## Notes\nMore.",
			want: "- Rome",
		},
		{
			name: "bold label",
			text: "**Summary:**\nStuff.\n\n**Locations:**\n- Lisbon\n- Porto\n\n**Tips:**\nNone.",
			want: "- Lisbon\n- Porto",
		},
		{
			name: "bare label with colon",
			text: "Locations:\nParis\nTips: pack light",
			want: "Paris",
		},
		{
			name: "horizontal rule boundary",
			text: "### 📍 Locations:\n- Kyoto\n---\nfooter",
			want: "- Kyoto",
		},
		{
			name: "section at end of text",
			text: "intro\n\n### 📍 Locations:\n- Oslo\n- Bergen",
			want: "- Oslo\n- Bergen",
		},
		{
			name: "singular label",
			text: "### 📍 Location:\n- Madrid\n\n### Other\nx",
			want: "- Madrid",
		},
		{
			name: "case insensitive",
			text: "### 📍 LOCATIONS:\n- Cairo\n\n### Other\nx",
			want: "- Cairo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := locationsFinder.Find(tt.text); got != tt.want {
				t.Errorf("Find() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSectionFinder_NoSection(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty text", ""},
		{"no label at all", "### Summary\nJust a story about food."},
		{"label mid-sentence", "We visited many locations: some were great."},
		{"empty section body", "### 📍 Locations:\n  \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := locationsFinder.Find(tt.text); got != "" {
				t.Errorf("Find() = %q, want empty", got)
			}
		})
	}
}

func TestSectionFinder_FirstStrategyWins(t *testing.T) {
	// Both an icon heading and a bare label present. The icon heading is the
	// more specific strategy and must win; no merging across strategies.
	text := "### 📍 Locations:\n- Athens\n\n### More\nfiller\n\nLocations:\nSparta"

	got := locationsFinder.Find(text)
	if got != "- Athens" {
		t.Errorf("Find() = %q, want %q", got, "- Athens")
	}
}

package conv

import (
	"strings"
	"testing"
)

func TestMarkdownToTelegramHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "plain text",
			input:    "The admissions office is open on weekdays",
			expected: "The admissions office is open on weekdays\n",
		},
		{
			name:     "bold text",
			input:    "**Assumption University**",
			expected: "<strong>Assumption University</strong>\n",
		},
		{
			name:     "italic text",
			input:    "*founded in 1969*",
			expected: "<em>founded in 1969</em>\n",
		},
		{
			name:     "inline code",
			input:    "`admissions@au.edu`",
			expected: "<code>admissions@au.edu</code>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkdownToTelegramHTML([]byte(tt.input))
			if got != tt.expected {
				t.Errorf("MarkdownToTelegramHTML() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestMarkdownToTelegramHTML_StripsDisallowedTags(t *testing.T) {
	got := MarkdownToTelegramHTML([]byte("# Tuition\n\nSee the table below"))
	if strings.Contains(got, "<h1>") {
		t.Errorf("expected headings to be stripped, got %q", got)
	}
	if !strings.Contains(got, "Tuition") {
		t.Errorf("expected heading text to survive, got %q", got)
	}
}

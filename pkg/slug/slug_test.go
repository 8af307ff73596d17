package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/sigkit/pkg/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		opts     []slug.Option
		expected string
	}{
		{name: "owner name", input: "Jane Lee", expected: "jane-lee"},
		{name: "punctuation", input: "Hello, World!", expected: "hello-world"},
		{name: "leading and trailing spaces", input: "  Trim Me  ", expected: "trim-me"},
		{name: "empty", input: "", expected: ""},
		{name: "only symbols", input: "!@#$%^&*()", expected: ""},
		{name: "diacritics", input: "Café résumé naïve", expected: "cafe-resume-naive"},
		{name: "german", input: "Über Größe straße", expected: "uber-grosse-strasse"},
		{name: "polish", input: "Zażółć gęślą jaźń", expected: "zazolc-gesla-jazn"},
		{name: "nordic", input: "Søren Ærø", expected: "soren-aero"},
		{name: "emoji", input: "Hello 😀 World 🌍", expected: "hello-world"},
		{name: "cjk only", input: "山田太郎", expected: ""},
		{name: "email", input: "user@example.com", expected: "user-example-com"},
		{name: "tabs and newlines", input: "Line1\nLine2\tTabbed", expected: "line1-line2-tabbed"},
		{name: "keep case", input: "Hello World", opts: []slug.Option{slug.Lowercase(false)}, expected: "Hello-World"},
		{name: "custom separator", input: "Hello World", opts: []slug.Option{slug.Separator("_")}, expected: "hello_world"},
		{
			name:     "max length",
			input:    "This is a very long title that should be truncated",
			opts:     []slug.Option{slug.MaxLength(20)},
			expected: "this-is-a-very-long",
		},
		{name: "max length at separator", input: "Cut off cleanly", opts: []slug.Option{slug.MaxLength(7)}, expected: "cut-off"},
		{
			name:  "custom replacements",
			input: "Fish & Chips @ Home",
			opts: []slug.Option{
				slug.CustomReplace(map[string]string{"&": "and", "@": "at"}),
			},
			expected: "fish-and-chips-at-home",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, slug.Make(tt.input, tt.opts...))
		})
	}
}

func TestFold(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Zoe Saldana", slug.Fold("Zoë Saldaña"))
	assert.Equal(t, "Lodz", slug.Fold("Łódź"))
	assert.Equal(t, "plain", slug.Fold("plain"))
}

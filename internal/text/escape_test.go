package text

import (
	"strings"
	"testing"
)

// reservedChars is the exact set EscapeMarkdownV2 must escape.
const reservedChars = "_*[]()~`>#+-=|{}.!"

// TestEscapeMarkdownV2 tests the escaper with various input types. The
// tests are organized into logical categories using subtests.
func TestEscapeMarkdownV2(t *testing.T) {
	t.Parallel()

	type escapeTestCase struct {
		name     string
		input    string
		expected string
	}

	testGroups := map[string][]escapeTestCase{
		"Basic Inputs": {
			{
				name:     "empty string",
				input:    "",
				expected: "",
			},
			{
				name:     "plain text untouched",
				input:    "hello world",
				expected: "hello world",
			},
			{
				name:     "single underscore",
				input:    "_",
				expected: "\\_",
			},
			{
				name:     "word with underscore and bang",
				input:    "Hello_World!",
				expected: "Hello\\_World\\!",
			},
			{
				name:     "unicode passes through",
				input:    "café ☕",
				expected: "café ☕",
			},
		},
		"Reserved Characters": {
			{
				name:     "every reserved character",
				input:    reservedChars,
				expected: "\\_\\*\\[\\]\\(\\)\\~\\`\\>\\#\\+\\-\\=\\|\\{\\}\\.\\!",
			},
			{
				name:     "markdown link",
				input:    "[link](https://example.com)",
				expected: "\\[link\\]\\(https://example\\.com\\)",
			},
			{
				name:     "sentence with punctuation",
				input:    "Nice. Very nice!",
				expected: "Nice\\. Very nice\\!",
			},
			{
				name:     "repeated characters",
				input:    "**bold**",
				expected: "\\*\\*bold\\*\\*",
			},
		},
		"Backslash Handling": {
			{
				name:     "existing backslash untouched",
				input:    "a\\b",
				expected: "a\\b",
			},
			{
				name:     "already escaped text double-escapes",
				input:    "\\_",
				expected: "\\\\_",
			},
		},
	}

	for groupName, cases := range testGroups {
		t.Run(groupName, func(t *testing.T) {
			t.Parallel()
			for _, tc := range cases {
				t.Run(tc.name, func(t *testing.T) {
					got := EscapeMarkdownV2(tc.input)
					if got != tc.expected {
						t.Errorf("EscapeMarkdownV2(%q) = %q, want %q", tc.input, got, tc.expected)
					}
				})
			}
		})
	}
}

// TestEscapeMarkdownV2LeavesNoUnescapedReserved verifies that for varied
// inputs the output contains no reserved character without a preceding
// backslash.
func TestEscapeMarkdownV2LeavesNoUnescapedReserved(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"a_b*c[d]e(f)g~h`i>j#k+l-m=n|o{p}q.r!s",
		strings.Repeat(reservedChars, 3),
		"mixed text with some _markdown_ and a URL https://example.com/x?y=1",
		"multi\nline.\ntext!",
	}

	for _, input := range inputs {
		got := EscapeMarkdownV2(input)
		for i, r := range got {
			if strings.ContainsRune(reservedChars, r) {
				if i == 0 || got[i-1] != '\\' {
					t.Errorf("EscapeMarkdownV2(%q): unescaped %q at index %d in %q", input, r, i, got)
				}
			}
		}
	}
}

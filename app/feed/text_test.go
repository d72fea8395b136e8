package feed

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestLimit(t *testing.T) {
	long := strings.Repeat("a", 200)

	tests := []struct {
		name     string
		text     string
		limit    int
		expected string
	}{
		{"under limit", "Breaking: Something Happened", 160, "Breaking: Something Happened"},
		{"exactly at limit", "abcdef", 6, "abcdef"},
		{"one over limit", "abcdefg", 6, "abc..."},
		{"long text", long, 160, strings.Repeat("a", 157) + "..."},
		{"multibyte runes", "ÆØÅÆØÅÆØÅ", 6, "ÆØÅ..."},
		{"empty", "", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Limit(tt.text, tt.limit)
			if result != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, result)
			}
		})
	}
}

func TestLimitLengthIsExact(t *testing.T) {
	for _, limit := range []int{4, 10, 160} {
		text := strings.Repeat("x", limit+25)
		result := Limit(text, limit)
		if n := utf8.RuneCountInString(result); n != limit {
			t.Errorf("limit %d: expected %d runes, got %d", limit, limit, n)
		}
		if !strings.HasSuffix(result, "...") {
			t.Errorf("limit %d: expected ellipsis suffix, got '%s'", limit, result)
		}
	}
}

func TestLimitNormalizesCombiningMarks(t *testing.T) {
	// "e" followed by a combining acute accent composes into one rune.
	decomposed := "cafe\u0301"
	result := Limit(decomposed, 4)
	if result != "caf\u00e9" {
		t.Errorf("Expected composed %q, got %q", "caf\u00e9", result)
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		{"50% off", "50%% off"},
		{"Tom & Jerry", "Tom && Jerry"},
		{"a@b^c*d%e&f", "a@@b^^c**d%%e&&f"},
		{"%%", "%%%%"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			result := Escape(tt.text)
			if result != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, result)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	result := Sanitize("He said \"hi\"\r\nthen left")
	if result != "He said hithen left" {
		t.Errorf("Expected quotes and line breaks removed, got '%s'", result)
	}
}

func TestSanitizeLink(t *testing.T) {
	tests := []struct {
		name     string
		link     string
		expected string
	}{
		{"clean link unchanged", "http://example.com/a?b=c", "http://example.com/a?b=c"},
		{"quote", `http://example.com/"x"`, "http://example.com/%22x%22"},
		{"newline", "http://example.com/a\nb", "http://example.com/a%0Ab"},
		{"carriage return", "http://example.com/a\rb", "http://example.com/a%0Db"},
		{"trailing backslash", `http://example.com/a\`, "http://example.com/a%5C"},
		{"inner backslash unchanged", `http://example.com/a\b`, `http://example.com/a\b`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeLink(tt.link)
			if result != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, result)
			}
		})
	}
}

func TestTitle(t *testing.T) {
	result := Title("  \"Big\" 50% sale\n", 160)
	if result != "Big 50%% sale" {
		t.Errorf("Expected 'Big 50%% sale', got '%s'", result)
	}
}

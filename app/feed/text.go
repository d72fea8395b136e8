package feed

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const ellipsis = "..."

var (
	sanitizer = strings.NewReplacer(`"`, "", "\n", "", "\r", "")

	// FVWM reads these as hotkey, picture and side-picture markers inside a
	// menu label. Doubling produces the literal character.
	escaper = strings.NewReplacer(
		"@", "@@",
		"^", "^^",
		"*", "**",
		"%", "%%",
		"&", "&&",
	)

	linkSanitizer = strings.NewReplacer(`"`, "%22", "\n", "%0A", "\r", "%0D")
)

// Sanitize removes characters that would end a quoted directive argument.
func Sanitize(text string) string {
	return sanitizer.Replace(text)
}

// Limit truncates text to length runes, marking the cut with an ellipsis.
func Limit(text string, length int) string {
	text = norm.NFC.String(text)
	runes := []rune(text)
	if len(runes) <= length {
		return text
	}
	if length <= len(ellipsis) {
		return string(runes[:length])
	}
	return string(runes[:length-len(ellipsis)]) + ellipsis
}

// Escape doubles the menu control characters.
func Escape(text string) string {
	return escaper.Replace(text)
}

// SanitizeLink percent-escapes characters that would break out of a quoted
// Exec argument. A trailing backslash would escape the closing quote, so it
// is escaped too.
func SanitizeLink(link string) string {
	link = linkSanitizer.Replace(link)
	if strings.HasSuffix(link, `\`) {
		link = strings.TrimSuffix(link, `\`) + "%5C"
	}
	return link
}

// Title prepares free text for use as a menu label.
func Title(text string, length int) string {
	return Escape(Limit(strings.TrimSpace(Sanitize(text)), length))
}

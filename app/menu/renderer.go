package menu

import (
	"fmt"
	"strings"
)

const (
	ErrorLabel   = "error connecting to feed"
	RefreshLabel = "Refresh"
)

type Renderer struct {
	browser string
	options string
}

func NewRenderer(browser, options string) *Renderer {
	return &Renderer{
		browser: strings.TrimSpace(browser),
		options: strings.TrimSpace(options),
	}
}

// Lines renders a menu as FVWM directives, one per line.
func (r *Renderer) Lines(m Menu) []string {
	id := quote(m.ID)
	lines := make([]string, 0, len(m.Entries)+4)

	if m.Parent != "" {
		lines = append(lines, fmt.Sprintf(`AddToMenu "%s" "%s" Popup "%s"`, quote(m.Parent), m.Title, id))
	}

	lines = append(lines,
		fmt.Sprintf(`DestroyMenu "%s"`, id),
		fmt.Sprintf(`AddToMenu "%s" "%s" Title`, id, m.Title),
	)

	for _, entry := range m.Entries {
		lines = append(lines, fmt.Sprintf(`AddToMenu "%s" "%s" %s`, id, label(entry), r.action(entry.Link)))
	}

	lines = append(lines, fmt.Sprintf(`AddToMenu "%s" "%s" DestroyMenu "%s"`, id, RefreshLabel, id))

	return lines
}

// ErrorLines renders the placeholder shown in place of a feed that could not
// be fetched or parsed.
func (r *Renderer) ErrorLines(menuID string) []string {
	return []string{fmt.Sprintf(`AddToMenu "%s" "%s" "Nop"`, quote(menuID), ErrorLabel)}
}

func (r *Renderer) action(link string) string {
	command := "Exec exec " + r.browser
	if r.options != "" {
		command += " " + r.options
	}
	return fmt.Sprintf(`%s "%s"`, command, link)
}

func label(entry Entry) string {
	if entry.Picture == "" {
		return entry.Title
	}

	switch entry.Placement {
	case PlacementLeft:
		return "%" + entry.Picture + "%" + entry.Title
	case PlacementAbove:
		return "*" + entry.Picture + "*" + entry.Title
	default:
		return entry.Title
	}
}

// quote drops characters that would end a quoted menu name early.
func quote(s string) string {
	return strings.NewReplacer(`"`, "", "\r", "", "\n", "").Replace(s)
}

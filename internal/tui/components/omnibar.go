package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bookverse/verso/internal/domain"
	"github.com/bookverse/verso/internal/search"
	"github.com/bookverse/verso/internal/tui/styles"
)

const omnibarMaxResults = 8

// Omnibar is a fuzzy quick-jump overlay. Typing narrows the catalog,
// enter jumps the main list to the selection.
type Omnibar struct {
	visible bool
	input   textinput.Model
	books   []domain.Book
	matches []search.Match
	cursor  int
}

// NewOmnibar creates a hidden omnibar
func NewOmnibar() Omnibar {
	ti := textinput.New()
	ti.Placeholder = "jump to book..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "» "
	return Omnibar{input: ti}
}

// Show opens the omnibar over the given catalog snapshot
func (o *Omnibar) Show(books []domain.Book) {
	o.visible = true
	o.books = books
	o.matches = nil
	o.cursor = 0
	o.input.SetValue("")
	o.input.Focus()
}

// Hide dismisses the omnibar
func (o *Omnibar) Hide() {
	o.visible = false
	o.input.Blur()
}

// IsVisible returns whether the omnibar is shown
func (o Omnibar) IsVisible() bool { return o.visible }

// Update handles input, returning the id of the chosen book on enter
func (o Omnibar) Update(msg tea.Msg) (Omnibar, tea.Cmd, string) {
	if !o.visible {
		return o, nil, ""
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "down", "ctrl+n":
			if o.cursor < len(o.matches)-1 {
				o.cursor++
			}
			return o, nil, ""
		case "up", "ctrl+p":
			if o.cursor > 0 {
				o.cursor--
			}
			return o, nil, ""
		case "enter":
			if o.cursor < len(o.matches) {
				return o, nil, o.matches[o.cursor].Book.ID
			}
			return o, nil, ""
		}
	}

	var cmd tea.Cmd
	o.input, cmd = o.input.Update(msg)
	o.matches = search.QuickJump(o.input.Value(), o.books)
	if len(o.matches) > omnibarMaxResults {
		o.matches = o.matches[:omnibarMaxResults]
	}
	if o.cursor >= len(o.matches) {
		o.cursor = 0
	}
	return o, cmd, ""
}

// View renders the omnibar overlay
func (o Omnibar) View() string {
	var rows []string
	rows = append(rows, o.input.View(), "")

	if len(o.matches) == 0 {
		if o.input.Value() == "" {
			rows = append(rows, styles.DimStyle.Render("type to search the catalog"))
		} else {
			rows = append(rows, styles.DimStyle.Render("no matches"))
		}
	}
	for i, m := range o.matches {
		line := fmt.Sprintf("%s by %s", truncate(m.Book.Title, 32), truncate(m.Book.Author, 20))
		if i == o.cursor {
			line = styles.SelectedItemStyle.Render("> " + line)
		} else {
			line = styles.NormalItemStyle.Render("  " + line)
		}
		rows = append(rows, line)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Amber).
		Padding(1, 2).
		Width(50).
		Render(content)
}

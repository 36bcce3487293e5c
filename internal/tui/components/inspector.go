package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bookverse/verso/internal/domain"
	"github.com/bookverse/verso/internal/tui/styles"
)

// Inspector shows the details of the selected book
type Inspector struct {
	book    *domain.Book
	baseURL string

	width  int
	height int
}

// NewInspector creates an empty inspector. baseURL resolves server-relative
// cover paths for display.
func NewInspector(baseURL string) Inspector {
	return Inspector{baseURL: baseURL}
}

// SetBook sets the book to display (nil clears the pane)
func (i *Inspector) SetBook(book *domain.Book) {
	i.book = book
}

// SetSize updates the component dimensions
func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
}

// View renders the inspector pane
func (i Inspector) View() string {
	interiorWidth := i.width - 4
	if interiorWidth < 10 {
		interiorWidth = 10
	}

	var lines []string

	if i.book == nil {
		lines = append(lines, styles.DimStyle.Render("Nothing selected"))
	} else {
		b := i.book

		title := b.Title
		if b.IsFeatured {
			title = styles.FeaturedStyle.Render(styles.FeaturedChar) + " " + title
		}
		lines = append(lines, styles.TitleStyle.Render(title))
		lines = append(lines, styles.SubtitleStyle.Render("by "+b.Author))
		lines = append(lines, "")
		lines = append(lines, styles.AccentStyle.Render(b.FormattedPrice())+styles.DimStyle.Render("  ·  "+b.Category))
		lines = append(lines, "")

		for _, line := range wrap(b.Description, interiorWidth) {
			lines = append(lines, styles.SubtitleStyle.Render(line))
		}

		lines = append(lines, "")
		if cover := b.CoverURL(i.baseURL); cover != "" {
			lines = append(lines, styles.DimStyle.Render("Cover: "+truncate(cover, interiorWidth-7)))
		} else {
			lines = append(lines, styles.DimStyle.Render("Cover: (placeholder)"))
		}
		lines = append(lines, "")
		lines = append(lines, styles.HighlightStyle.Render(b.CTAButtonText()))
	}

	// Clamp to pane height
	maxLines := i.height - borderHeight
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}

	content := strings.Join(lines, "\n")
	return styles.InactiveBorder.
		Width(interiorWidth + 2).
		Height(i.height - borderHeight).
		Padding(0, 1).
		Render(lipgloss.NewStyle().Width(interiorWidth).Render(content))
}

// wrap breaks text into lines no wider than width
func wrap(text string, width int) []string {
	if width < 1 {
		return nil
	}
	var lines []string
	var current strings.Builder
	for _, word := range strings.Fields(text) {
		if current.Len() > 0 && current.Len()+1+len(word) > width {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}

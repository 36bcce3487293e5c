package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/bookverse/verso/internal/domain"
	"github.com/bookverse/verso/internal/tui/styles"
)

const (
	borderHeight         = 2 // Top + bottom border
	scrollIndicatorLines = 2 // "↑ more" header + "↓ more" footer
)

// BookList is a scrollable, selectable column of book records
type BookList struct {
	title  string
	books  []domain.Book
	cursor int
	offset int
	query  string // Active search query, used for match highlighting

	width      int
	height     int
	maxVisible int
	focused    bool
	loading    bool
}

// NewBookList creates an empty book list
func NewBookList(title string) *BookList {
	return &BookList{title: title, focused: true}
}

// SetBooks replaces the visible books, keeping the selection on the same book
// when it survives the change
func (l *BookList) SetBooks(books []domain.Book) {
	selectedID := ""
	if b := l.Selected(); b != nil {
		selectedID = b.ID
	}

	l.books = books
	l.loading = false

	l.cursor = 0
	for i, b := range books {
		if b.ID == selectedID {
			l.cursor = i
			break
		}
	}
	l.ensureVisible()
}

// SetQuery sets the search query used to highlight matched characters
func (l *BookList) SetQuery(query string) {
	l.query = strings.TrimSpace(query)
}

// SetLoading toggles the loading placeholder
func (l *BookList) SetLoading(loading bool) {
	l.loading = loading
}

// SetFocused toggles the active border
func (l *BookList) SetFocused(focused bool) {
	l.focused = focused
}

// SetSize updates the component dimensions
func (l *BookList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.maxVisible = height - borderHeight - scrollIndicatorLines - 1 // -1 for title
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
	l.ensureVisible()
}

// Len returns the number of visible books
func (l *BookList) Len() int {
	return len(l.books)
}

// Selected returns the book under the cursor, or nil
func (l *BookList) Selected() *domain.Book {
	if l.cursor < 0 || l.cursor >= len(l.books) {
		return nil
	}
	b := l.books[l.cursor]
	return &b
}

// SelectID moves the cursor to the book with the given id, if present
func (l *BookList) SelectID(id string) {
	for i, b := range l.books {
		if b.ID == id {
			l.cursor = i
			l.ensureVisible()
			return
		}
	}
}

// MoveUp moves the cursor up one entry
func (l *BookList) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
		l.ensureVisible()
	}
}

// MoveDown moves the cursor down one entry
func (l *BookList) MoveDown() {
	if l.cursor < len(l.books)-1 {
		l.cursor++
		l.ensureVisible()
	}
}

// MoveTop jumps to the first entry
func (l *BookList) MoveTop() {
	l.cursor = 0
	l.ensureVisible()
}

// MoveBottom jumps to the last entry
func (l *BookList) MoveBottom() {
	if len(l.books) > 0 {
		l.cursor = len(l.books) - 1
		l.ensureVisible()
	}
}

func (l *BookList) ensureVisible() {
	if l.maxVisible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// View renders the list column
func (l *BookList) View() string {
	border := styles.InactiveBorder
	if l.focused {
		border = styles.ActiveBorder
	}

	interiorWidth := l.width - 2
	if interiorWidth < 10 {
		interiorWidth = 10
	}

	var lines []string
	lines = append(lines, styles.TitleStyle.Render(truncate(l.title, interiorWidth-1)))

	switch {
	case l.loading:
		lines = append(lines, styles.DimStyle.Render("Loading..."))
	case len(l.books) == 0:
		lines = append(lines, styles.DimStyle.Render("No books to show"))
	default:
		if l.offset > 0 {
			lines = append(lines, styles.DimStyle.Render("↑ more"))
		} else {
			lines = append(lines, "")
		}

		end := l.offset + l.maxVisible
		if end > len(l.books) {
			end = len(l.books)
		}
		for i := l.offset; i < end; i++ {
			lines = append(lines, l.renderItem(i, interiorWidth))
		}

		if end < len(l.books) {
			lines = append(lines, styles.DimStyle.Render("↓ more"))
		}
	}

	content := strings.Join(lines, "\n")
	return border.Width(interiorWidth).Height(l.height - borderHeight).Render(content)
}

// renderItem renders one row: featured marker, title (with query highlight),
// author and price
func (l *BookList) renderItem(i, width int) string {
	b := l.books[i]

	marker := " "
	if b.IsFeatured {
		marker = styles.FeaturedStyle.Render(styles.FeaturedChar)
	}

	price := b.FormattedPrice()
	// Room for marker, spacing and the right-aligned price
	titleWidth := width - lipgloss.Width(price) - 5
	if titleWidth < 4 {
		titleWidth = 4
	}

	title := l.renderTitle(b.Title, titleWidth, i == l.cursor)
	line := fmt.Sprintf("%s %s %s", marker, title, styles.DimStyle.Render(price))

	if i == l.cursor {
		return styles.SelectedItemStyle.Render(line)
	}
	return styles.NormalItemStyle.Render(line)
}

// renderTitle pads/truncates the title and highlights query matches
func (l *BookList) renderTitle(title string, width int, selected bool) string {
	display := truncate(title, width)
	pad := width - lipgloss.Width(display)
	if pad < 0 {
		pad = 0
	}
	padded := display + strings.Repeat(" ", pad)

	if l.query == "" {
		return padded
	}

	matches := fuzzy.Find(strings.ToLower(l.query), []string{strings.ToLower(display)})
	if len(matches) == 0 {
		return padded
	}

	matched := make(map[int]bool, len(matches[0].MatchedIndexes))
	for _, idx := range matches[0].MatchedIndexes {
		matched[idx] = true
	}

	var sb strings.Builder
	for idx, r := range []rune(padded) {
		if matched[idx] {
			sb.WriteString(styles.MatchedRuneStyle.Render(string(r)))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// truncate cuts s to at most width terminal cells. Counting cells rather
// than runes keeps double-width characters (CJK titles) from overflowing
// the column.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	var sb strings.Builder
	used := 0
	for _, r := range s {
		rw := lipgloss.Width(string(r))
		if used+rw > width-1 {
			break
		}
		sb.WriteRune(r)
		used += rw
	}
	return sb.String() + "…"
}

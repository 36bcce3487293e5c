package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bookverse/verso/internal/catalog"
	"github.com/bookverse/verso/internal/session"
	"github.com/bookverse/verso/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	if m.ShowFeatured {
		sections = append(sections, m.renderFeaturedRail())
	}
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
		m.List.View(),
		" ",
		m.Inspector.View(),
	))
	sections = append(sections, m.renderFooter())

	base := lipgloss.JoinVertical(lipgloss.Left, sections...)

	switch m.State {
	case StateAuth:
		return m.centered(m.AuthForm.View())
	case StateForm:
		return m.centered(m.BookForm.View())
	case StateOmnibar:
		return m.centered(m.Omnibar.View())
	case StateConfirmDelete:
		return m.centered(m.renderDeleteConfirmation())
	case StateConfirmLogout:
		return m.centered(m.renderLogoutConfirmation())
	}

	return base
}

// centered places a dialog in the middle of the screen. Dialogs replace the
// browse view rather than compositing over it.
func (m Model) centered(dialog string) string {
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, dialog)
}

func (m Model) renderHeader() string {
	title := styles.TitleStyle.Render("Verso")
	subtitle := styles.DimStyle.Render("BookVerse catalog")

	var who string
	switch m.Session.Status() {
	case session.StatusInitializing:
		who = styles.DimStyle.Render("restoring session...")
	case session.StatusAuthenticated:
		if u := m.Session.CurrentUser(); u != nil {
			label := u.Name
			if u.IsAdmin() {
				label += " (admin)"
			}
			who = styles.AccentStyle.Render(label)
		}
	default:
		who = styles.DimStyle.Render("browsing anonymously · a to sign in")
	}

	left := title + " " + subtitle
	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(who) - 1
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + who
}

// renderFeaturedRail shows the featured subset independent of active filters
func (m Model) renderFeaturedRail() string {
	featured := catalog.Featured(m.Catalog.Books())
	if len(featured) == 0 {
		return styles.DimStyle.Render("no featured books")
	}

	var parts []string
	for _, b := range featured {
		parts = append(parts, b.Title)
		if lipgloss.Width(strings.Join(parts, " · ")) > m.Width-12 {
			parts = parts[:len(parts)-1]
			parts = append(parts, "...")
			break
		}
	}
	return styles.FeaturedStyle.Render(styles.FeaturedChar+" ") +
		styles.SubtitleStyle.Render(strings.Join(parts, " · "))
}

func (m Model) renderFooter() string {
	// Left side: status or active filters
	var left string
	switch {
	case m.StatusMsg != "" && m.StatusIsErr:
		left = styles.ErrorStyle.Render(m.StatusMsg)
	case m.StatusMsg != "":
		left = styles.SuccessStyle.Render(m.StatusMsg)
	case m.State == StateSearching:
		left = m.searchInput.View()
	default:
		left = m.renderFilterSummary()
	}

	var right string
	if m.Loading {
		frame := styles.SpinnerFrames[m.SpinnerFrame%len(styles.SpinnerFrames)]
		right = styles.AccentStyle.Render(frame + " loading")
	} else {
		right = styles.DimStyle.Render("? help · q quit")
	}

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderFilterSummary() string {
	var parts []string
	if m.Criteria.Category != "" && !strings.EqualFold(m.Criteria.Category, "all") {
		parts = append(parts, "category:"+m.Criteria.Category)
	}
	if m.Criteria.Query != "" {
		parts = append(parts, fmt.Sprintf("search:%q", m.Criteria.Query))
	}
	if m.Criteria.FeaturedOnly {
		parts = append(parts, "featured")
	}
	if len(parts) == 0 {
		return styles.DimStyle.Render(fmt.Sprintf("%d books", m.List.Len()))
	}
	return styles.AccentStyle.Render(strings.Join(parts, " ")) +
		styles.DimStyle.Render(fmt.Sprintf(" · %d shown · esc clears", m.List.Len()))
}

func (m Model) renderHelp() string {
	rows := []string{
		styles.TitleStyle.Render("Keyboard Reference"),
		"",
		styles.SubtitleStyle.Render("Browse"),
		"  j/k ↑/↓    move selection",
		"  g/G        first/last book",
		"  /          search title or author",
		"  o          quick jump (fuzzy)",
		"  c/tab      next category",
		"  C          previous category",
		"  f          featured only",
		"  esc        clear filters",
		"  r          reload catalog",
		"",
		styles.SubtitleStyle.Render("Account"),
		"  a          sign in or register",
		"  L          sign out",
		"",
		styles.SubtitleStyle.Render("Admin"),
		"  n          new book",
		"  e          edit selected",
		"  x          delete selected",
		"  *          toggle featured flag",
		"",
		styles.DimStyle.Render("press any key to close"),
	}

	content := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Amber).
		Padding(1, 3).
		Render(strings.Join(rows, "\n"))
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderDeleteConfirmation() string {
	title := ""
	if m.pendingDelete != nil {
		title = m.pendingDelete.Title
	}
	if runes := []rune(title); len(runes) > 40 {
		title = string(runes[:39]) + "…"
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Delete book?"),
		"",
		title,
		"",
		styles.DimStyle.Render("y delete · n cancel"),
	)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Red).
		Padding(1, 2).
		Render(content)
}

func (m Model) renderLogoutConfirmation() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Sign out?"),
		"",
		styles.DimStyle.Render("The saved session will be removed."),
		"",
		styles.DimStyle.Render("y sign out · n cancel"),
	)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Amber).
		Padding(1, 2).
		Render(content)
}

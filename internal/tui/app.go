package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bookverse/verso/internal/catalog"
	"github.com/bookverse/verso/internal/domain"
	"github.com/bookverse/verso/internal/session"
	"github.com/bookverse/verso/internal/store"
	"github.com/bookverse/verso/internal/tui/components"
)

// Preference keys in the state store
const prefCategory = "last_category"

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateInitializing ApplicationState = iota
	StateBrowsing
	StateSearching
	StateAuth
	StateForm
	StateOmnibar
	StateConfirmDelete
	StateConfirmLogout
	StateHelp
)

// Layout proportions
const (
	ListPercent      = 45
	InspectorPercent = 55
	MinPaneWidth     = 24

	// Header + footer
	ChromeHeight = 4
)

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	Session *session.Store
	Catalog *catalog.Service
	Prefs   *store.StateStore

	// UI components
	List      *components.BookList
	Inspector components.Inspector
	AuthForm  components.AuthForm
	BookForm  components.BookForm
	Omnibar   components.Omnibar

	// Browse state
	Criteria   domain.Criteria
	Categories []string

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	Loading      bool
	SpinnerFrame int
	ShowFeatured bool // Featured rail above the list

	searchInput   textinput.Model
	pendingDelete *domain.Book

	logger *slog.Logger
}

// NewModel creates a new application model
func NewModel(sess *session.Store, cat *catalog.Service, state *store.StateStore, baseURL string, showFeatured bool, logger *slog.Logger) Model {
	si := textinput.New()
	si.Placeholder = "search title or author..."
	si.CharLimit = 100
	si.Prompt = "/ "

	criteria := domain.DefaultCriteria()
	if c := state.Pref(prefCategory); c != "" {
		criteria.Category = c
	}

	if logger == nil {
		logger = slog.Default()
	}

	list := components.NewBookList("Catalog")
	list.SetLoading(true)

	return Model{
		State:        StateInitializing,
		Session:      sess,
		Catalog:      cat,
		Prefs:        state,
		List:         list,
		Inspector:    components.NewInspector(baseURL),
		AuthForm:     components.NewAuthForm(),
		BookForm:     components.NewBookForm(),
		Omnibar:      components.NewOmnibar(),
		Criteria:     criteria,
		Categories:   []string{domain.CategoryAll},
		Loading:      true,
		ShowFeatured: showFeatured,
		searchInput:  si,
		logger:       logger,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		InitSessionCmd(m.Session),
		LoadBooksCmd(m.Catalog),
		LoadCategoriesCmd(m.Catalog),
		TickCmd(),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		if m.Loading {
			return m, TickCmd()
		}
		return m, nil

	case SessionResolvedMsg:
		if m.State == StateInitializing {
			m.State = StateBrowsing
		}
		if msg.Status == session.StatusAuthenticated && msg.User != nil {
			m.StatusMsg = fmt.Sprintf("Signed in as %s", msg.User.Name)
			m.StatusIsErr = false
			return m, ClearStatusCmd()
		}
		return m, nil

	case BooksLoadedMsg:
		m.Loading = false
		m.List.SetLoading(false)
		m.applyFilter()
		return m, nil

	case CategoriesLoadedMsg:
		m.Categories = msg.Categories
		return m, nil

	case AuthResultMsg:
		if msg.Err != nil {
			m.AuthForm.SetError(domain.Message(msg.Err))
			return m, nil
		}
		m.AuthForm.Hide()
		m.State = StateBrowsing
		if msg.User != nil {
			m.StatusMsg = fmt.Sprintf("Signed in as %s", msg.User.Name)
			m.StatusIsErr = false
		}
		return m, ClearStatusCmd()

	case LoggedOutMsg:
		m.State = StateBrowsing
		m.StatusMsg = "Signed out"
		m.StatusIsErr = false
		return m, ClearStatusCmd()

	case BookFetchedMsg:
		m.BookForm.ShowEdit(msg.Book)
		m.State = StateForm
		return m, textinput.Blink

	case BookSavedMsg:
		m.BookForm.Hide()
		m.State = StateBrowsing
		m.applyFilter()
		m.List.SelectID(msg.Book.ID)
		m.updateInspector()
		if msg.Created {
			m.StatusMsg = fmt.Sprintf("Created %q", msg.Book.Title)
		} else {
			m.StatusMsg = fmt.Sprintf("Saved %q", msg.Book.Title)
		}
		m.StatusIsErr = false
		return m, ClearStatusCmd()

	case BookSaveFailedMsg:
		if errors.Is(msg.Err, domain.ErrAuthFailed) {
			return m.handleSessionExpired()
		}
		m.BookForm.SetError(domain.Message(msg.Err))
		return m, nil

	case BookDeletedMsg:
		m.State = StateBrowsing
		m.pendingDelete = nil
		m.applyFilter()
		m.StatusMsg = fmt.Sprintf("Deleted %q", msg.Title)
		m.StatusIsErr = false
		return m, ClearStatusCmd()

	case ErrMsg:
		m.Loading = false
		m.List.SetLoading(false)
		if errors.Is(msg.Err, domain.ErrAuthFailed) {
			return m.handleSessionExpired()
		}
		m.logger.Error("operation failed", "context", msg.Context, "error", msg.Err)
		if m.State == StateConfirmDelete {
			m.State = StateBrowsing
			m.pendingDelete = nil
		}
		m.StatusMsg = domain.Message(msg.Err)
		m.StatusIsErr = true
		return m, ClearStatusCmd()

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd()

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

// handleSessionExpired drops the stale session and prompts for login
func (m Model) handleSessionExpired() (tea.Model, tea.Cmd) {
	m.Session.Invalidate()
	m.BookForm.Hide()
	m.AuthForm.Show(components.ModeLogin)
	m.AuthForm.SetError("Session expired, please sign in again")
	m.State = StateAuth
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.State {
	case StateInitializing:
		return m, nil

	case StateAuth:
		return m.handleAuthKeys(msg)

	case StateForm:
		return m.handleFormKeys(msg)

	case StateSearching:
		return m.handleSearchKeys(msg)

	case StateOmnibar:
		return m.handleOmnibarKeys(msg)

	case StateConfirmDelete:
		switch msg.String() {
		case "y", "enter":
			if m.pendingDelete != nil {
				return m, DeleteBookCmd(m.Catalog, m.pendingDelete.ID, m.pendingDelete.Title)
			}
			m.State = StateBrowsing
			return m, nil
		case "n", "esc":
			m.State = StateBrowsing
			m.pendingDelete = nil
			return m, nil
		}
		return m, nil

	case StateConfirmLogout:
		switch msg.String() {
		case "y", "enter":
			return m, LogoutCmd(m.Session)
		case "n", "esc":
			m.State = StateBrowsing
			return m, nil
		}
		return m, nil

	case StateHelp:
		m.State = StateBrowsing
		return m, nil
	}

	return m.handleBrowsingKeys(msg)
}

func (m Model) handleAuthKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.AuthForm.Hide()
		m.State = StateBrowsing
		return m, nil
	}

	var cmd tea.Cmd
	var submit *components.AuthSubmit
	m.AuthForm, cmd, submit = m.AuthForm.Update(msg)
	if submit != nil {
		m.AuthForm.SetSubmitting(true)
		return m, AuthCmd(m.Session, *submit)
	}
	return m, cmd
}

func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.BookForm.Hide()
		m.State = StateBrowsing
		return m, nil
	}

	var cmd tea.Cmd
	var submit *components.BookSubmit
	m.BookForm, cmd, submit = m.BookForm.Update(msg)
	if submit != nil {
		m.BookForm.SetSubmitting(true)
		return m, SaveBookCmd(m.Catalog, *submit)
	}
	return m, cmd
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.Criteria.Query = ""
		m.State = StateBrowsing
		m.applyFilter()
		return m, nil
	case "enter":
		m.searchInput.Blur()
		m.State = StateBrowsing
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.Criteria.Query = m.searchInput.Value()
	m.applyFilter()
	return m, cmd
}

func (m Model) handleOmnibarKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.Omnibar.Hide()
		m.State = StateBrowsing
		return m, nil
	}

	var cmd tea.Cmd
	var jumpID string
	m.Omnibar, cmd, jumpID = m.Omnibar.Update(msg)
	if jumpID != "" {
		m.Omnibar.Hide()
		m.State = StateBrowsing
		// Quick jump lands on the book even when filters hide it
		if _, visible := m.visibleByID(jumpID); !visible {
			m.Criteria = domain.DefaultCriteria()
			m.searchInput.SetValue("")
			m.applyFilter()
		}
		m.List.SelectID(jumpID)
		m.updateInspector()
		return m, nil
	}
	return m, cmd
}

func (m Model) handleBrowsingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		m.List.MoveUp()
		m.updateInspector()
		return m, nil
	case "down", "j":
		m.List.MoveDown()
		m.updateInspector()
		return m, nil
	case "home", "g":
		m.List.MoveTop()
		m.updateInspector()
		return m, nil
	case "end", "G":
		m.List.MoveBottom()
		m.updateInspector()
		return m, nil

	case "/":
		m.State = StateSearching
		m.searchInput.SetValue(m.Criteria.Query)
		m.searchInput.Focus()
		return m, textinput.Blink

	case "o":
		m.Omnibar.Show(m.Catalog.Books())
		m.State = StateOmnibar
		return m, textinput.Blink

	case "c", "tab":
		m.cycleCategory(1)
		return m, nil
	case "C", "shift+tab":
		m.cycleCategory(-1)
		return m, nil

	case "f":
		m.Criteria.FeaturedOnly = !m.Criteria.FeaturedOnly
		m.applyFilter()
		return m, nil

	case "esc":
		if !m.Criteria.IsDefault() {
			m.Criteria = domain.DefaultCriteria()
			m.searchInput.SetValue("")
			if err := m.Prefs.SetPref(prefCategory, ""); err != nil {
				m.logger.Warn("failed to save category preference", "error", err)
			}
			m.applyFilter()
		}
		return m, nil

	case "r":
		m.Loading = true
		m.List.SetLoading(true)
		return m, tea.Batch(LoadBooksCmd(m.Catalog), LoadCategoriesCmd(m.Catalog), TickCmd())

	case "a":
		if m.Session.Status() != session.StatusAuthenticated {
			m.AuthForm.Show(components.ModeLogin)
			m.State = StateAuth
			return m, textinput.Blink
		}
		return m, nil

	case "L":
		if m.Session.Status() == session.StatusAuthenticated {
			m.State = StateConfirmLogout
		}
		return m, nil

	case "n":
		if m.requireAdmin() {
			m.BookForm.ShowCreate()
			m.State = StateForm
			return m, textinput.Blink
		}
		return m, ClearStatusCmd()

	case "e":
		if m.requireAdmin() {
			if sel := m.List.Selected(); sel != nil {
				// Re-read the record so the form starts from server state
				return m, FetchBookCmd(m.Catalog, sel.ID)
			}
			return m, nil
		}
		return m, ClearStatusCmd()

	case "x", "delete":
		if m.requireAdmin() {
			if sel := m.List.Selected(); sel != nil {
				book := *sel
				m.pendingDelete = &book
				m.State = StateConfirmDelete
			}
			return m, nil
		}
		return m, ClearStatusCmd()

	case "*":
		if m.requireAdmin() {
			if sel := m.List.Selected(); sel != nil {
				fields := domain.BookFields{
					Title:       sel.Title,
					Author:      sel.Author,
					Description: sel.Description,
					Price:       sel.Price,
					Category:    sel.Category,
					IsFeatured:  !sel.IsFeatured,
					CTAText:     sel.CTAButtonText(),
				}
				return m, SaveBookCmd(m.Catalog, components.BookSubmit{ID: sel.ID, Fields: fields})
			}
			return m, nil
		}
		return m, ClearStatusCmd()

	case "?":
		m.State = StateHelp
		return m, nil
	}

	return m, nil
}

// requireAdmin gates admin actions, setting a status message when denied
func (m *Model) requireAdmin() bool {
	if m.Session.Status() != session.StatusAuthenticated {
		m.StatusMsg = "Sign in to manage the catalog (press a)"
		m.StatusIsErr = true
		return false
	}
	if !m.Session.IsAdmin() {
		m.StatusMsg = domain.Message(domain.ErrForbidden)
		m.StatusIsErr = true
		return false
	}
	return true
}

// cycleCategory moves the category filter through the known categories
func (m *Model) cycleCategory(step int) {
	if len(m.Categories) == 0 {
		return
	}
	idx := 0
	for i, c := range m.Categories {
		if strings.EqualFold(c, m.Criteria.Category) {
			idx = i
			break
		}
	}
	idx = (idx + step + len(m.Categories)) % len(m.Categories)
	m.Criteria.Category = m.Categories[idx]
	if err := m.Prefs.SetPref(prefCategory, m.Criteria.Category); err != nil {
		m.logger.Warn("failed to save category preference", "error", err)
	}
	m.applyFilter()
}

// applyFilter re-runs the filter over the current snapshot
func (m *Model) applyFilter() {
	filtered := catalog.Filter(m.Catalog.Books(), m.Criteria)
	m.List.SetBooks(filtered)
	m.List.SetQuery(m.Criteria.Query)
	m.updateInspector()
}

func (m *Model) updateInspector() {
	m.Inspector.SetBook(m.List.Selected())
}

func (m *Model) visibleByID(id string) (domain.Book, bool) {
	for _, b := range catalog.Filter(m.Catalog.Books(), m.Criteria) {
		if b.ID == id {
			return b, true
		}
	}
	return domain.Book{}, false
}

func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}
	listWidth := m.Width * ListPercent / 100
	if listWidth < MinPaneWidth {
		listWidth = MinPaneWidth
	}
	inspectorWidth := m.Width - listWidth - 2
	if inspectorWidth < MinPaneWidth {
		inspectorWidth = MinPaneWidth
	}
	contentHeight := m.Height - ChromeHeight
	if m.ShowFeatured {
		contentHeight -= 2
	}
	if contentHeight < 4 {
		contentHeight = 4
	}
	m.List.SetSize(listWidth, contentHeight)
	m.Inspector.SetSize(inspectorWidth, contentHeight)
}

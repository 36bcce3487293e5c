package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bookverse/verso/internal/domain"
	"github.com/bookverse/verso/internal/tui/styles"
)

// BookSubmit carries a validated book form submission
type BookSubmit struct {
	ID        string // Empty for create
	Fields    domain.BookFields
	CoverPath string // Local file to upload, empty to keep/omit the cover
}

// BookForm is the admin create/edit dialog. On a failed save the form stays
// open with every entered value intact.
type BookForm struct {
	visible    bool
	bookID     string // Empty when creating
	focus      int
	featured   bool
	submitting bool
	errMsg     string

	title       textinput.Model
	author      textinput.Model
	description textinput.Model
	price       textinput.Model
	category    textinput.Model
	cta         textinput.Model
	coverPath   textinput.Model
}

// fieldCount includes the featured toggle row after the text inputs
const formFieldCount = 8

// NewBookForm creates a hidden book form
func NewBookForm() BookForm {
	mk := func(placeholder string, width int) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 500
		ti.Width = width
		ti.Prompt = ""
		return ti
	}

	return BookForm{
		title:       mk("title", 40),
		author:      mk("author", 40),
		description: mk("description", 40),
		price:       mk("14.99", 12),
		category:    mk("category", 24),
		cta:         mk(domain.DefaultCTAText, 24),
		coverPath:   mk("path/to/cover.jpg (optional)", 40),
	}
}

// ShowCreate opens an empty form
func (f *BookForm) ShowCreate() {
	f.reset("", domain.BookFields{CTAText: domain.DefaultCTAText})
}

// ShowEdit opens the form pre-filled from an existing book
func (f *BookForm) ShowEdit(b domain.Book) {
	f.reset(b.ID, domain.BookFields{
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		Price:       b.Price,
		Category:    b.Category,
		IsFeatured:  b.IsFeatured,
		CTAText:     b.CTAButtonText(),
	})
}

func (f *BookForm) reset(id string, fields domain.BookFields) {
	f.visible = true
	f.bookID = id
	f.featured = fields.IsFeatured
	f.errMsg = ""
	f.submitting = false

	f.title.SetValue(fields.Title)
	f.author.SetValue(fields.Author)
	f.description.SetValue(fields.Description)
	if fields.Price > 0 {
		f.price.SetValue(strconv.FormatFloat(fields.Price, 'f', 2, 64))
	} else {
		f.price.SetValue("")
	}
	f.category.SetValue(fields.Category)
	f.cta.SetValue(fields.CTAText)
	f.coverPath.SetValue("")

	f.setFocus(0)
}

// Hide dismisses the form
func (f *BookForm) Hide() {
	f.visible = false
	for _, field := range f.inputs() {
		field.Blur()
	}
}

// IsVisible returns whether the form is shown
func (f BookForm) IsVisible() bool { return f.visible }

// IsEdit reports whether the form targets an existing book
func (f BookForm) IsEdit() bool { return f.bookID != "" }

// SetError shows a failure message; entered data is retained
func (f *BookForm) SetError(msg string) {
	f.errMsg = msg
	f.submitting = false
}

// SetSubmitting marks the form as waiting on the backend
func (f *BookForm) SetSubmitting(submitting bool) {
	f.submitting = submitting
}

func (f *BookForm) inputs() []*textinput.Model {
	return []*textinput.Model{
		&f.title, &f.author, &f.description, &f.price,
		&f.category, &f.cta, &f.coverPath,
	}
}

func (f *BookForm) setFocus(idx int) {
	if idx < 0 {
		idx = formFieldCount - 1
	}
	if idx >= formFieldCount {
		idx = 0
	}
	f.focus = idx
	for i, field := range f.inputs() {
		if i == idx {
			field.Focus()
		} else {
			field.Blur()
		}
	}
}

// Update handles input events, returning (form, cmd, submit)
func (f BookForm) Update(msg tea.Msg) (BookForm, tea.Cmd, *BookSubmit) {
	if !f.visible || f.submitting {
		return f, nil, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			f.setFocus(f.focus + 1)
			return f, nil, nil
		case "shift+tab", "up":
			f.setFocus(f.focus - 1)
			return f, nil, nil
		case "enter":
			// Enter toggles the featured row, submits elsewhere
			if f.focus == formFieldCount-1 {
				f.featured = !f.featured
				return f, nil, nil
			}
			submit := f.submit()
			return f, nil, submit
		case " ":
			if f.focus == formFieldCount-1 {
				f.featured = !f.featured
				return f, nil, nil
			}
		}
	}

	if f.focus < len(f.inputs()) {
		var cmd tea.Cmd
		inputs := f.inputs()
		*inputs[f.focus], cmd = inputs[f.focus].Update(msg)
		return f, cmd, nil
	}
	return f, nil, nil
}

// submit validates the form and builds the submission
func (f *BookForm) submit() *BookSubmit {
	title := strings.TrimSpace(f.title.Value())
	author := strings.TrimSpace(f.author.Value())
	description := strings.TrimSpace(f.description.Value())
	category := strings.TrimSpace(f.category.Value())
	priceText := strings.TrimSpace(f.price.Value())

	if title == "" || author == "" || description == "" || category == "" || priceText == "" {
		f.errMsg = "Title, author, description, price and category are required"
		return nil
	}

	price, err := strconv.ParseFloat(priceText, 64)
	if err != nil || price < 0 {
		f.errMsg = "Price must be a non-negative number"
		return nil
	}

	cta := strings.TrimSpace(f.cta.Value())
	if cta == "" {
		cta = domain.DefaultCTAText
	}

	f.errMsg = ""
	return &BookSubmit{
		ID: f.bookID,
		Fields: domain.BookFields{
			Title:       title,
			Author:      author,
			Description: description,
			Price:       price,
			Category:    category,
			IsFeatured:  f.featured,
			CTAText:     cta,
		},
		CoverPath: strings.TrimSpace(f.coverPath.Value()),
	}
}

// View renders the form dialog
func (f BookForm) View() string {
	const modalWidth = 48

	title := "New Book"
	if f.IsEdit() {
		title = "Edit Book"
	}

	label := lipgloss.NewStyle().Foreground(styles.LightGray)

	row := func(name string, input textinput.Model) []string {
		return []string{label.Render(name), input.View()}
	}

	var rows []string
	rows = append(rows, styles.TitleStyle.Render(title), "")
	rows = append(rows, row("Title", f.title)...)
	rows = append(rows, row("Author", f.author)...)
	rows = append(rows, row("Description", f.description)...)
	rows = append(rows, row("Price", f.price)...)
	rows = append(rows, row("Category", f.category)...)
	rows = append(rows, row("Button text", f.cta)...)
	rows = append(rows, row("Cover image", f.coverPath)...)

	check := "[ ]"
	if f.featured {
		check = "[" + styles.FeaturedChar + "]"
	}
	featuredRow := fmt.Sprintf("%s Featured", check)
	if f.focus == formFieldCount-1 {
		featuredRow = styles.AccentStyle.Render("> " + featuredRow)
	} else {
		featuredRow = "  " + featuredRow
	}
	rows = append(rows, "", featuredRow)

	switch {
	case f.submitting:
		rows = append(rows, "", styles.DimStyle.Render("Saving..."))
	case f.errMsg != "":
		rows = append(rows, "", styles.ErrorStyle.Render(truncate(f.errMsg, modalWidth)))
	default:
		rows = append(rows, "", "")
	}

	rows = append(rows, styles.DimStyle.Render("tab next · enter save · esc cancel"))

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Amber).
		Padding(1, 2).
		Width(modalWidth + 4).
		Render(content)
}

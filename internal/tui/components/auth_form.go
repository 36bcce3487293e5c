package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bookverse/verso/internal/tui/styles"
)

// AuthMode selects between the login and register forms
type AuthMode int

const (
	ModeLogin AuthMode = iota
	ModeRegister
)

// AuthSubmit carries the values of a submitted auth form
type AuthSubmit struct {
	Mode     AuthMode
	Email    string
	Password string
	Name     string // Register only
}

// AuthForm is the login/register dialog. The register form has no role
// picker: accounts are always requested as plain users and the backend
// decides who is an admin.
type AuthForm struct {
	visible    bool
	mode       AuthMode
	focus      int
	submitting bool
	errMsg     string

	email    textinput.Model
	password textinput.Model
	name     textinput.Model
}

// NewAuthForm creates a hidden auth form
func NewAuthForm() AuthForm {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	email.Width = 32
	email.Prompt = ""

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 120
	password.Width = 32
	password.Prompt = ""
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	name := textinput.New()
	name.Placeholder = "display name"
	name.CharLimit = 80
	name.Width = 32
	name.Prompt = ""

	return AuthForm{
		email:    email,
		password: password,
		name:     name,
	}
}

// Show opens the dialog in the given mode
func (f *AuthForm) Show(mode AuthMode) {
	f.visible = true
	f.mode = mode
	f.focus = 0
	f.errMsg = ""
	f.submitting = false
	f.email.Focus()
	f.password.Blur()
	f.name.Blur()
}

// Hide dismisses the dialog, keeping entered values
func (f *AuthForm) Hide() {
	f.visible = false
	f.email.Blur()
	f.password.Blur()
	f.name.Blur()
}

// IsVisible returns whether the dialog is shown
func (f AuthForm) IsVisible() bool { return f.visible }

// Mode returns the current form mode
func (f AuthForm) Mode() AuthMode { return f.mode }

// SetError shows a failure message and re-enables the form
func (f *AuthForm) SetError(msg string) {
	f.errMsg = msg
	f.submitting = false
}

// SetSubmitting marks the form as waiting on the backend
func (f *AuthForm) SetSubmitting(submitting bool) {
	f.submitting = submitting
}

// fields returns the focusable inputs for the current mode
func (f *AuthForm) fields() []*textinput.Model {
	if f.mode == ModeRegister {
		return []*textinput.Model{&f.name, &f.email, &f.password}
	}
	return []*textinput.Model{&f.email, &f.password}
}

func (f *AuthForm) setFocus(idx int) {
	fields := f.fields()
	if idx < 0 {
		idx = len(fields) - 1
	}
	if idx >= len(fields) {
		idx = 0
	}
	f.focus = idx
	for i, field := range fields {
		if i == idx {
			field.Focus()
		} else {
			field.Blur()
		}
	}
}

// Update handles input events, returning (form, cmd, submit). submit is
// non-nil when the user pressed enter on a complete form.
func (f AuthForm) Update(msg tea.Msg) (AuthForm, tea.Cmd, *AuthSubmit) {
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
		case "ctrl+r":
			// Switch between login and register
			if f.mode == ModeLogin {
				f.mode = ModeRegister
			} else {
				f.mode = ModeLogin
			}
			f.errMsg = ""
			f.setFocus(0)
			return f, nil, nil
		case "enter":
			submit := f.submit()
			return f, nil, submit
		}
	}

	var cmd tea.Cmd
	fields := f.fields()
	*fields[f.focus], cmd = fields[f.focus].Update(msg)
	return f, cmd, nil
}

// submit validates required fields and builds the submission
func (f *AuthForm) submit() *AuthSubmit {
	email := strings.TrimSpace(f.email.Value())
	password := f.password.Value()
	name := strings.TrimSpace(f.name.Value())

	if email == "" || password == "" {
		f.errMsg = "Email and password are required"
		return nil
	}
	if f.mode == ModeRegister && name == "" {
		f.errMsg = "Name is required"
		return nil
	}

	f.errMsg = ""
	return &AuthSubmit{
		Mode:     f.mode,
		Email:    email,
		Password: password,
		Name:     name,
	}
}

// View renders the dialog
func (f AuthForm) View() string {
	const modalWidth = 40

	title := "Sign In"
	hint := "enter submit · ctrl+r register · esc browse"
	if f.mode == ModeRegister {
		title = "Create Account"
		hint = "enter submit · ctrl+r sign in · esc browse"
	}

	label := lipgloss.NewStyle().Foreground(styles.LightGray)

	var rows []string
	rows = append(rows, styles.TitleStyle.Render(title), "")

	if f.mode == ModeRegister {
		rows = append(rows, label.Render("Name"), f.name.View(), "")
	}
	rows = append(rows, label.Render("Email"), f.email.View(), "")
	rows = append(rows, label.Render("Password"), f.password.View(), "")

	switch {
	case f.submitting:
		rows = append(rows, styles.DimStyle.Render("Signing in..."))
	case f.errMsg != "":
		rows = append(rows, styles.ErrorStyle.Render(truncate(f.errMsg, modalWidth)))
	default:
		rows = append(rows, "")
	}

	rows = append(rows, "", styles.DimStyle.Render(hint))

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Amber).
		Padding(1, 2).
		Width(modalWidth + 4).
		Render(content)
}

package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type modalTab int

const (
	loginTab modalTab = iota
	registerTab
)

const (
	fieldUsername = iota
	fieldPassword
	fieldConfirm
)

// modal holds the login/register forms.
//
// Showing sets visible, then active on the next tick. Hiding clears active, then visible after the
// transition delay. Only an active modal accepts input.
type modal struct {
	visible bool
	active  bool
	tab     modalTab
	focus   int
	inputs  []textinput.Model
}

func newModal() modal {
	inputs := make([]textinput.Model, 3)
	for i, placeholder := range []string{"username", "password", "confirm password"} {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 64
		in.Prompt = "› "
		if i != fieldUsername {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		inputs[i] = in
	}
	return modal{inputs: inputs}
}

// fields is the number of inputs on the current tab.
func (m *modal) fields() int {
	if m.tab == registerTab {
		return 3
	}
	return 2
}

func (m *modal) value(field int) string {
	return m.inputs[field].Value()
}

// open resets the form and makes the modal visible on the login tab.
func (m *modal) open() {
	m.reset()
	m.tab = loginTab
	m.visible = true
	m.active = false
}

func (m *modal) reset() {
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.setFocus(fieldUsername)
}

func (m *modal) clearPasswords() {
	m.inputs[fieldPassword].Reset()
	m.inputs[fieldConfirm].Reset()
}

func (m *modal) switchTab() {
	if m.tab == loginTab {
		m.tab = registerTab
	} else {
		m.tab = loginTab
	}
	m.setFocus(fieldUsername)
}

func (m *modal) setFocus(field int) tea.Cmd {
	m.focus = field
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == field {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

// next moves focus forward and reports whether focus was already on the last field.
func (m *modal) next() (last bool, cmd tea.Cmd) {
	if m.focus >= m.fields()-1 {
		return true, nil
	}
	return false, m.setFocus(m.focus + 1)
}

func (m *modal) prev() tea.Cmd {
	if m.focus == 0 {
		return nil
	}
	return m.setFocus(m.focus - 1)
}

func (m *modal) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return cmd
}

func (m *modal) View() string {
	login, register := styles.tab.Render("Login"), styles.tab.Render("Register")
	if m.tab == loginTab {
		login = styles.tabOn.Render("Login")
	} else {
		register = styles.tabOn.Render("Register")
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, login, " ", register))
	b.WriteString("\n\n")
	for i := 0; i < m.fields(); i++ {
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	body := styles.modal.Render(b.String())
	if !m.active {
		return styles.faint.Render(body)
	}
	return body
}

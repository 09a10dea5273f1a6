package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type toastKind int

const (
	toastInfo toastKind = iota
	toastSuccess
	toastError
)

// toast is a transient notification. Only the newest one is shown; timers for a replaced toast are
// ignored by ID.
type toast struct {
	id     string
	text   string
	kind   toastKind
	fading bool
}

func newToast(text string, kind toastKind) *toast {
	return &toast{id: uuid.NewString(), text: text, kind: kind}
}

func (t *toast) View() string {
	style := styles.toastOK
	switch t.kind {
	case toastError:
		style = styles.toastErr
	case toastInfo:
		style = styles.toastOK.Background(styles.title.GetForeground())
	}
	if t.fading {
		style = style.Faint(true)
	}
	return style.Render(t.text)
}

func after(d time.Duration, msg Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

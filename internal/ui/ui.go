package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunebox/internal/auth"
	"github.com/desertthunder/tunebox/internal/library"
	"github.com/desertthunder/tunebox/internal/models"
	"github.com/desertthunder/tunebox/internal/shared"
)

const modalActivateDelay = 10 * time.Millisecond

// Catalog lists the songs shown in the library view.
type Catalog interface {
	List(criteria map[string]any) ([]*models.Song, error)
}

// Options contains the dependencies of a [Model].
type Options struct {
	Manager *auth.Manager
	Library *library.Library
	Catalog Catalog
	Timings shared.UIConfig
	Logger  *log.Logger
}

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	manager *auth.Manager
	lib     *library.Library
	catalog Catalog
	timings shared.UIConfig
	logger  *log.Logger

	width    int
	height   int
	songs    []*models.Song
	songList list.Model
	modal    modal
	toast    *toast
	err      error
	help     help.Model
	keys     keyMap

	refreshCh   chan auth.Event
	unsubscribe func()
}

// NewModel creates a new TUI model and subscribes it to session changes.
//
// Call [Model.Close] once the program exits.
func NewModel(ctx context.Context, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	songList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	songList.Title = "Library"
	songList.SetFilteringEnabled(false)
	songList.SetShowHelp(false)
	songList.KeyMap.Quit.SetEnabled(false)

	m := &Model{
		ctx:       ctx,
		manager:   opts.Manager,
		lib:       opts.Library,
		catalog:   opts.Catalog,
		timings:   opts.Timings,
		logger:    shared.WithLogger(opts.Logger, "component", "ui"),
		songList:  songList,
		modal:     newModal(),
		help:      help.New(),
		keys:      newKeyMap(),
		refreshCh: make(chan auth.Event, 8),
	}
	m.unsubscribe = m.manager.Subscribe(auth.ListenerFunc(m.handleViewRefresh))
	return m
}

// Close detaches the model from the session manager.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// handleViewRefresh runs synchronously inside Login/Logout and must not block.
func (m *Model) handleViewRefresh(e auth.Event) {
	select {
	case m.refreshCh <- e:
	default:
		m.logger.Warn("dropped refresh event", "event", e.Kind)
	}
}

// Init initializes the TUI by loading the catalog and waiting for session changes.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadSongs(), m.waitForRefresh())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.songList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		if m.modal.visible {
			return m.handleModalKeys(msg)
		}
		return m.handleLibraryKeys(msg)

	case Msg:
		return m.handleMsg(msg)
	}

	var cmd tea.Cmd
	m.songList, cmd = m.songList.Update(msg)
	return m, cmd
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgSongsLoaded:
		data := msg.data.(songsLoaded)
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.songs = data.songs
		return m, m.rebuild()

	case MsgSessionChanged:
		e := msg.data.(auth.Event)
		m.logger.Debug("session changed", "event", e.Kind, "user", e.Username)
		return m, tea.Batch(after(m.timings.Refresh(), refreshMsg()), m.waitForRefresh())

	case MsgRefresh:
		return m, m.rebuild()

	case MsgModalActivate:
		if m.modal.visible {
			m.modal.active = true
			return m, m.modal.setFocus(m.modal.focus)
		}

	case MsgModalHidden:
		if !m.modal.active {
			m.modal.visible = false
			m.modal.reset()
		}

	case MsgToastFade:
		if m.toast != nil && m.toast.id == msg.data.(string) {
			m.toast.fading = true
			return m, after(m.timings.Fade(), toastExpireMsg(m.toast.id))
		}

	case MsgToastExpire:
		if m.toast != nil && m.toast.id == msg.data.(string) {
			m.toast = nil
		}
	}
	return m, nil
}

func (m *Model) handleLibraryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.login):
		if !m.manager.LoginUI().ShowLogin {
			return m, m.notify(fmt.Sprintf("Already logged in as %s", m.manager.Username()), toastInfo)
		}
		return m, m.showModal()

	case key.Matches(msg, m.keys.logout):
		if !m.manager.LoginUI().ShowLogout {
			return m, nil
		}
		m.manager.Logout(m.ctx)
		return m, m.notify("Logged out", toastSuccess)

	case key.Matches(msg, m.keys.favorite):
		song := m.selected()
		if song == nil {
			return m, nil
		}
		text := fmt.Sprintf("Removed %s from favorites", song.Title())
		if m.lib.ToggleFavorite(song.ID()) {
			text = fmt.Sprintf("Added %s to favorites", song.Title())
		}
		return m, tea.Batch(m.rebuild(), m.notify(text, toastSuccess))

	case key.Matches(msg, m.keys.play):
		song := m.selected()
		if song == nil {
			return m, nil
		}
		m.lib.PlaybackEnded(song.ID())
		return m, tea.Batch(m.rebuild(), m.notify(fmt.Sprintf("Played %s", song.Label()), toastInfo))
	}

	var cmd tea.Cmd
	m.songList, cmd = m.songList.Update(msg)
	return m, cmd
}

func (m *Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if !m.modal.active {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		return m, m.hideModal()
	case "tab":
		m.modal.switchTab()
		return m, nil
	case "up", "shift+tab":
		return m, m.modal.prev()
	case "down":
		_, cmd := m.modal.next()
		return m, cmd
	case "enter":
		last, cmd := m.modal.next()
		if !last {
			return m, cmd
		}
		return m, m.submit()
	}

	return m, m.modal.update(msg)
}

func (m *Model) submit() tea.Cmd {
	username := m.modal.value(fieldUsername)
	password := m.modal.value(fieldPassword)

	if m.modal.tab == registerTab {
		r := m.manager.Register(m.ctx, username, password, m.modal.value(fieldConfirm))
		if !r.Success {
			return m.notify(r.Message, toastError)
		}
		m.modal.switchTab()
		m.modal.reset()
		return m.notify(r.Message, toastSuccess)
	}

	r := m.manager.Login(m.ctx, username, password)
	if !r.Success {
		m.modal.clearPasswords()
		return m.notify(r.Message, toastError)
	}
	return tea.Batch(m.hideModal(), m.notify(r.Message, toastSuccess))
}

func (m *Model) showModal() tea.Cmd {
	m.modal.open()
	return after(modalActivateDelay, modalActivateMsg())
}

func (m *Model) hideModal() tea.Cmd {
	m.modal.active = false
	return after(m.timings.Modal(), modalHiddenMsg())
}

// notify replaces the current notification and schedules its fade.
func (m *Model) notify(text string, kind toastKind) tea.Cmd {
	m.toast = newToast(text, kind)
	return after(m.timings.Notification(), toastFadeMsg(m.toast.id))
}

func (m *Model) rebuild() tea.Cmd {
	return m.songList.SetItems(songItems(m.songs, m.lib.Favorites(), m.lib.History()))
}

func (m *Model) selected() *models.Song {
	if item, ok := m.songList.SelectedItem().(songItem); ok {
		return item.song
	}
	return nil
}

func (m *Model) loadSongs() tea.Cmd {
	return func() tea.Msg {
		songs, err := m.catalog.List(nil)
		return songsLoadedMsg(songs, err)
	}
}

func (m *Model) waitForRefresh() tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-m.refreshCh:
			return sessionChangedMsg(e)
		case <-m.ctx.Done():
			return nil
		}
	}
}

// View renders the header, the library or login modal, the notification and help.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	body := m.songList.View()
	helpKeys := []key.Binding{m.keys.play, m.keys.favorite, m.accountKey(), m.keys.quit}
	if m.modal.visible {
		body = m.modal.View()
		helpKeys = []key.Binding{m.keys.tab, m.keys.submit, m.keys.back}
	}

	sections := []string{m.renderHeader(), body}
	if m.toast != nil {
		sections = append(sections, m.toast.View())
	}
	sections = append(sections, m.help.ShortHelpView(helpKeys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) accountKey() key.Binding {
	if m.manager.LoginUI().ShowLogout {
		return m.keys.logout
	}
	return m.keys.login
}

func (m *Model) renderHeader() string {
	ui := m.manager.LoginUI()
	account := styles.help.Render("not logged in")
	if ui.ShowUserInfo {
		account = styles.ok.Render("● " + ui.Username)
	}
	return styles.title.Render("tunebox") + "  " + account
}

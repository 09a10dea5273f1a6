package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	play     key.Binding
	favorite key.Binding
	login    key.Binding
	logout   key.Binding
	tab      key.Binding
	submit   key.Binding
	back     key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		play:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
		favorite: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		login:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "login")),
		logout:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "logout")),
		tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "login/register")),
		submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next/submit")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.play, k.favorite},
		{k.login, k.logout},
		{k.tab, k.submit, k.back, k.quit},
	}
}

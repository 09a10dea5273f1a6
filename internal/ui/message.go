package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tunebox/internal/auth"
	"github.com/desertthunder/tunebox/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSongsLoaded MsgKind = iota
	MsgSessionChanged
	MsgRefresh
	MsgModalActivate
	MsgModalHidden
	MsgToastFade
	MsgToastExpire
)

type songsLoaded struct {
	songs []*models.Song
	err   error
}

// songsLoadedMsg is the constructor for [MsgSongsLoaded]
func songsLoadedMsg(songs []*models.Song, err error) Msg {
	return Msg{kind: MsgSongsLoaded, data: songsLoaded{songs, err}}
}

// sessionChangedMsg is the constructor for [MsgSessionChanged]
func sessionChangedMsg(e auth.Event) Msg {
	return Msg{kind: MsgSessionChanged, data: e}
}

// refreshMsg is the constructor for [MsgRefresh]
func refreshMsg() Msg {
	return Msg{kind: MsgRefresh}
}

// modalActivateMsg is the constructor for [MsgModalActivate]
func modalActivateMsg() Msg {
	return Msg{kind: MsgModalActivate}
}

// modalHiddenMsg is the constructor for [MsgModalHidden]
func modalHiddenMsg() Msg {
	return Msg{kind: MsgModalHidden}
}

// toastFadeMsg is the constructor for [MsgToastFade]
func toastFadeMsg(id string) Msg {
	return Msg{kind: MsgToastFade, data: id}
}

// toastExpireMsg is the constructor for [MsgToastExpire]
func toastExpireMsg(id string) Msg {
	return Msg{kind: MsgToastExpire, data: id}
}

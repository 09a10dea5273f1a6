// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI is a single library view over the song catalog:
//   - the header follows the session (login control when anonymous, username and logout control otherwise)
//   - favorites are marked with a star and toggled in place; enter plays a song through to the end
//   - [modal] hosts the login and register forms with a two-phase show/hide transition
//   - [toast] notifications hold, fade, and remove themselves
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Session changes reach the model through a channel fed by an [auth.Listener]; the model waits on it and
// rebuilds the list after a short delay.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, tab, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui

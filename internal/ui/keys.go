// Package ui provides the terminal settings screen for selah.
// This file defines key bindings using the Bubble Tea key package for
// type-safe key matching and help text generation.
package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the settings screen.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Edit    key.Binding
	Test    key.Binding
	Refresh key.Binding
	Accept  key.Binding
	Decline key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit time"),
		),
		Test: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "test notification"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Accept: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "enable"),
		),
		Decline: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "not now"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

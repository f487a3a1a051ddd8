// Package keys contains keybinding definitions.
//
// Only modified keys and function keys are bound to commands. Every plain key
// belongs to the confirmation state machine.
package keys

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// EditorKeyMap defines the command keys available while writing.
type EditorKeyMap struct {
	Save    key.Binding
	Open    key.Binding
	Recover key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultEditorKeyMap returns the default editor keybindings.
func DefaultEditorKeyMap() EditorKeyMap {
	return EditorKeyMap{
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Open: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "open file"),
		),
		Recover: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "recover unsaved text"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q", "ctrl+c"),
			key.WithHelp("ctrl+q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k EditorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Open, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k EditorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Save, k.Open, k.Recover}, // Document
		{k.Help, k.Quit},            // General
	}
}

// Bindings returns every command binding.
func (k EditorKeyMap) Bindings() []key.Binding {
	return []key.Binding{k.Save, k.Open, k.Recover, k.Help, k.Quit}
}

// PromptKeyMap defines keys for the open-file prompt.
type PromptKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultPromptKeyMap returns the open-file prompt keybindings.
func DefaultPromptKeyMap() PromptKeyMap {
	return PromptKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k PromptKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}

// FullHelp returns keybindings for the full help view.
func (k PromptKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// ConfirmKeyMap defines keys for yes/no dialogs such as quitting with
// unsaved text or restoring a crashed session.
type ConfirmKeyMap struct {
	Yes    key.Binding
	No     key.Binding
	Cancel key.Binding
}

// DefaultConfirmKeyMap returns the dialog keybindings.
func DefaultConfirmKeyMap() ConfirmKeyMap {
	return ConfirmKeyMap{
		Yes: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "no"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k ConfirmKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Yes, k.No, k.Cancel}
}

// FullHelp returns keybindings for the full help view.
func (k ConfirmKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// Package-level keymaps used by the UI.
var (
	Editor  = DefaultEditorKeyMap()
	Prompt  = DefaultPromptKeyMap()
	Confirm = DefaultConfirmKeyMap()
)

// Overrides replaces default command keys. Empty fields keep the default.
type Overrides struct {
	Save    string
	Open    string
	Help    string
	Recover string
}

// ApplyConfig rebinds the editor command keys. Values are expected to be
// validated already.
func ApplyConfig(o Overrides) {
	rebind(&Editor.Save, o.Save)
	rebind(&Editor.Open, o.Open)
	rebind(&Editor.Help, o.Help)
	rebind(&Editor.Recover, o.Recover)
}

func rebind(b *key.Binding, k string) {
	if k == "" {
		return
	}
	k = strings.ToLower(k)
	b.SetKeys(k)
	b.SetHelp(k, b.Help().Desc)
}

// ResetForTesting restores the default keymaps.
func ResetForTesting() {
	Editor = DefaultEditorKeyMap()
	Prompt = DefaultPromptKeyMap()
	Confirm = DefaultConfirmKeyMap()
}

package ui

import "github.com/charmbracelet/bubbles/key"

// listKeys are the post list bindings.
type listKeys struct {
	Up       key.Binding
	Down     key.Binding
	Search   key.Binding
	Done     key.Binding
	ViewMore key.Binding
	Create   key.Binding
	Retry    key.Binding
	Quit     key.Binding
}

func newListKeys() listKeys {
	return listKeys{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Done:     key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter/esc", "done")),
		ViewMore: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "read more")),
		Create:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new post")),
		Retry:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (k listKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.ViewMore, k.Create, k.Retry, k.Quit}
}

func (k listKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.ViewMore}, {k.Search, k.Done}, {k.Create, k.Retry, k.Quit}}
}

// formKeys are the creation form bindings.
type formKeys struct {
	Next     key.Binding
	Prev     key.Binding
	Calendar key.Binding
	Submit   key.Binding
	Back     key.Binding
}

func newFormKeys() formKeys {
	return formKeys{
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
		Calendar: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "date")),
		Submit:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (k formKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Calendar, k.Submit, k.Back}
}

func (k formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev}, {k.Calendar, k.Submit, k.Back}}
}

// detailKeys are the single post bindings.
type detailKeys struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
}

func newDetailKeys() detailKeys {
	return detailKeys{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		Back: key.NewBinding(key.WithKeys("esc", "backspace", "q"), key.WithHelp("esc", "back")),
	}
}

func (k detailKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back}
}

func (k detailKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

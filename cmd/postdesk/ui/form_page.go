package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"postdesk/internal/api"
	"postdesk/internal/logging"
	"postdesk/internal/nav"
	"postdesk/internal/posts"
)

const (
	// SubmitFailedMessage is shown when a submission fails.
	SubmitFailedMessage = "Failed to submit the post. Please try again."
	// SubmitSucceededMessage is shown while the success flash is on.
	SubmitSucceededMessage = "Post submitted successfully!"
)

// submitResultMsg carries the outcome of one submission.
type submitResultMsg struct {
	token string
	post  posts.Record
	err   error
}

// FormPage is the post creation form. It validates completeness on every
// field change, performs one submission per trigger, and shows a success
// confirmation that clears itself after a fixed delay. A successful submit
// leaves the draft as typed and does not navigate.
type FormPage struct {
	client api.PostsAPI
	styles Styles
	keys   formKeys
	help   help.Model
	width  int
	height int

	title   textinput.Model
	author  textinput.Model
	date    DateField
	content textarea.Model
	focus   int // index into posts.Fields

	draft       posts.Draft
	complete    bool
	submitting  bool
	submitError string
	success     Flash
	created     *posts.Record
	token       string
	tornDown    bool
}

// NewFormPage creates an empty form. successDisplay is how long the
// confirmation stays visible.
func NewFormPage(client api.PostsAPI, styles Styles, successDisplay time.Duration) FormPage {
	newInput := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.Prompt = ""
		ti.CharLimit = 200
		ti.Width = FormWidth
		return ti
	}

	ta := textarea.New()
	ta.Placeholder = "Write the post…"
	ta.ShowLineNumbers = false
	ta.SetWidth(FormWidth)
	ta.SetHeight(ContentRows)
	ta.CharLimit = 0

	m := FormPage{
		client:  client,
		styles:  styles,
		keys:    newFormKeys(),
		help:    help.New(),
		title:   newInput("Title"),
		author:  newInput("Author"),
		date:    NewDateField("Creation date"),
		content: ta,
		success: NewFlash(successDisplay),
	}
	m.title.Focus()
	return m
}

// Init focuses the first field.
func (m FormPage) Init() tea.Cmd {
	return textinput.Blink
}

// SetField updates one field and recomputes completeness. The draft stores
// what the widget accepted, so text past a field's character limit is
// dropped from both.
func (m *FormPage) SetField(f posts.Field, value string) error {
	if err := m.draft.Set(f, value); err != nil {
		return err
	}
	m.syncWidget(f, value)
	_ = m.draft.Set(f, m.widgetValue(f))
	m.complete = m.draft.Complete()
	return nil
}

func (m *FormPage) widgetValue(f posts.Field) string {
	switch f {
	case posts.FieldTitle:
		return m.title.Value()
	case posts.FieldAuthor:
		return m.author.Value()
	case posts.FieldCreationDate:
		return m.date.Value()
	case posts.FieldContent:
		return m.content.Value()
	}
	return ""
}

// syncWidget mirrors a programmatic change into the field's widget.
func (m *FormPage) syncWidget(f posts.Field, value string) {
	switch f {
	case posts.FieldTitle:
		if m.title.Value() != value {
			m.title.SetValue(value)
		}
	case posts.FieldAuthor:
		if m.author.Value() != value {
			m.author.SetValue(value)
		}
	case posts.FieldCreationDate:
		if m.date.Value() != value {
			m.date.SetValue(value)
		}
	case posts.FieldContent:
		if m.content.Value() != value {
			m.content.SetValue(value)
		}
	}
}

// Submit sends the draft. It is a no-op unless the draft is complete and no
// submission is outstanding.
func (m *FormPage) Submit() tea.Cmd {
	if m.tornDown || !m.complete || m.submitting {
		return nil
	}
	m.submitting = true
	m.submitError = ""
	m.token = uuid.NewString()

	logging.Get(logging.CategoryForm).Info("submitting %q by %q (token=%s)", m.draft.Title, m.draft.Author, m.token)
	return submitPost(m.client, m.token, m.draft)
}

func submitPost(client api.PostsAPI, token string, draft posts.Draft) tea.Cmd {
	return func() tea.Msg {
		ctx := api.WithRequestID(context.Background(), token)
		created, err := client.CreatePost(ctx, draft)
		return submitResultMsg{token: token, post: created, err: err}
	}
}

// Teardown cancels the success timer and detaches the page from any
// outstanding submission.
func (m *FormPage) Teardown() {
	m.tornDown = true
	m.success.Cancel()
	m.token = ""
}

// Draft returns the current draft.
func (m FormPage) Draft() posts.Draft { return m.draft }

// Complete reports whether every field is filled in.
func (m FormPage) Complete() bool { return m.complete }

// Submitting reports whether a submission is outstanding.
func (m FormPage) Submitting() bool { return m.submitting }

// SubmitError returns the user-facing submission error, or "".
func (m FormPage) SubmitError() string { return m.submitError }

// SubmitSuccess reports whether the success confirmation is showing.
func (m FormPage) SubmitSuccess() bool { return m.success.On() }

// Created returns the post created by the last successful submission.
func (m FormPage) Created() (posts.Record, bool) {
	if m.created == nil {
		return posts.Record{}, false
	}
	return *m.created, true
}

// Date returns the creation date field.
func (m FormPage) Date() DateField { return m.date }

// SetSize updates the size.
func (m *FormPage) SetSize(w, h int) {
	m.width = w
	m.height = h
	fw := FieldWidth(w)
	m.title.Width = fw
	m.author.Width = fw
	m.content.SetWidth(fw)
	m.help.Width = w
}

// Update handles messages.
func (m FormPage) Update(msg tea.Msg) (FormPage, tea.Cmd) {
	if m.success.Handle(msg) {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case submitResultMsg:
		return m.handleResult(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Submit):
			cmd := m.Submit()
			return m, cmd
		case key.Matches(msg, m.keys.Back):
			return m, nav.Go(nav.Back())
		case key.Matches(msg, m.keys.Next):
			cmd := m.focusField((m.focus + 1) % len(posts.Fields))
			return m, cmd
		case key.Matches(msg, m.keys.Prev):
			cmd := m.focusField((m.focus + len(posts.Fields) - 1) % len(posts.Fields))
			return m, cmd
		case key.Matches(msg, m.keys.Calendar):
			// Consumed here; the date input never sees ctrl+t.
			focus := m.focusField(fieldIndex(posts.FieldCreationDate))
			click := m.date.ClickAdornment()
			return m, tea.Batch(focus, click)
		case msg.Type == tea.KeyEnter && posts.Fields[m.focus] != posts.FieldContent:
			cmd := m.focusField((m.focus + 1) % len(posts.Fields))
			return m, cmd
		}
		return m.updateFocused(msg)
	}

	// cursor blink and similar widget messages
	return m.updateFocused(msg)
}

func (m FormPage) handleResult(msg submitResultMsg) (FormPage, tea.Cmd) {
	log := logging.Get(logging.CategoryForm)
	if m.tornDown || msg.token != m.token {
		log.Debug("dropping stale submission result (token=%s)", msg.token)
		return m, nil
	}

	m.submitting = false
	if msg.err != nil {
		log.Error("submission failed: %v", msg.err)
		m.submitError = SubmitFailedMessage
		m.success.Cancel()
		return m, nil
	}

	created := msg.post
	m.created = &created
	log.Info("created post %d", created.ID)
	cmd := m.success.Arm()
	return m, cmd
}

// updateFocused forwards a key to the focused widget and records the new
// value in the draft.
func (m FormPage) updateFocused(msg tea.Msg) (FormPage, tea.Cmd) {
	var cmd tea.Cmd
	field := posts.Fields[m.focus]
	var value string

	switch field {
	case posts.FieldTitle:
		m.title, cmd = m.title.Update(msg)
		value = m.title.Value()
	case posts.FieldAuthor:
		m.author, cmd = m.author.Update(msg)
		value = m.author.Value()
	case posts.FieldCreationDate:
		m.date, cmd = m.date.Update(msg)
		value = m.date.Value()
	case posts.FieldContent:
		m.content, cmd = m.content.Update(msg)
		value = m.content.Value()
	}

	if value != m.draft.Get(field) {
		_ = m.SetField(field, value)
	}
	return m, cmd
}

// focusField blurs the current widget and focuses field i.
func (m *FormPage) focusField(i int) tea.Cmd {
	switch posts.Fields[m.focus] {
	case posts.FieldTitle:
		m.title.Blur()
	case posts.FieldAuthor:
		m.author.Blur()
	case posts.FieldCreationDate:
		m.date.Blur()
	case posts.FieldContent:
		m.content.Blur()
	}

	m.focus = i
	switch posts.Fields[i] {
	case posts.FieldTitle:
		return m.title.Focus()
	case posts.FieldAuthor:
		return m.author.Focus()
	case posts.FieldCreationDate:
		return m.date.Focus()
	case posts.FieldContent:
		return m.content.Focus()
	}
	return nil
}

func fieldIndex(f posts.Field) int {
	for i, candidate := range posts.Fields {
		if candidate == f {
			return i
		}
	}
	return 0
}

// View renders the page.
func (m FormPage) View() string {
	label := func(text string, i int) string {
		if m.focus == i {
			return m.styles.FocusedLabel.Render(text)
		}
		return m.styles.Label.Render(text)
	}

	button := m.styles.Button.Render("Submit")
	switch {
	case m.submitting:
		button = m.styles.ButtonOff.Render("Submitting…")
	case !m.complete:
		button = m.styles.ButtonOff.Render("Submit")
	}

	sections := []string{
		m.styles.Header.Render("New post"),
		"",
		label("Title *", 0),
		m.title.View(),
		label("Author *", 1),
		m.author.View(),
		m.date.View(m.styles),
		label("Content *", 3),
		m.content.View(),
		"",
		button,
	}

	if m.submitError != "" {
		sections = append(sections, m.styles.Error.Render(m.submitError))
	}
	if m.success.On() {
		msg := SubmitSucceededMessage
		if m.created != nil {
			msg = fmt.Sprintf("%s (id %d)", msg, m.created.ID)
		}
		sections = append(sections, m.styles.Success.Render(msg))
	}

	sections = append(sections, "", m.styles.Footer.Render(m.help.View(m.keys)))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

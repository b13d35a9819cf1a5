package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunevault/internal/catalog"
	"github.com/desertthunder/tunevault/internal/models"
	"github.com/desertthunder/tunevault/internal/principal"
	"github.com/desertthunder/tunevault/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ListView ViewState = iota
	DetailView
	ConfirmView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	view         ViewState
	catalog      *catalog.Catalog
	actor        *principal.Principal
	logger       *log.Logger
	width        int
	height       int
	list         list.Model
	selected     *models.Artifact
	verification *catalog.Verification
	result       *principal.Result
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model. actor performs deletes; a nil actor disables them.
func NewModel(c *catalog.Catalog, actor *principal.Principal, logger *log.Logger) *Model {
	if logger == nil {
		logger = shared.NewDiscardLogger()
	}

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Catalog"

	return &Model{
		view:    ListView,
		catalog: c,
		actor:   actor,
		logger:  logger,
		list:    l,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// State returns the current view.
func (m *Model) State() ViewState { return m.view }

// Init initializes the TUI by loading the catalog.
func (m *Model) Init() tea.Cmd {
	return m.loadArtifacts()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ListView:
			return m.handleListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgArtifactsLoaded:
		data := msg.data.(artifactsLoaded)
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.err = nil
		cmd := m.list.SetItems(artifactItems(data.artifacts))
		m.list.Title = fmt.Sprintf("Catalog (%d)", len(data.artifacts))
		return m, cmd

	case MsgArtifactVerified:
		data := msg.data.(artifactVerified)
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.verification = &data.verification
		return m, nil

	case MsgArtifactDeleted:
		data := msg.data.(artifactDeleted)
		m.err = data.err
		if data.err == nil {
			m.result = &data.result
		}
		m.view = ResultView
		return m, nil
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case ListView:
		return m.renderList()
	case DetailView:
		return m.renderDetail()
	case ConfirmView:
		return m.renderConfirm()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.refresh):
		return m, m.loadArtifacts()
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.list.SelectedItem().(artifactItem); ok {
			m.selected = item.artifact
			m.verification = nil
			m.view = DetailView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = ListView
		m.selected = nil
		return m, nil
	case key.Matches(msg, m.keys.verify):
		return m, m.verifyArtifact(m.selected.ID())
	case key.Matches(msg, m.keys.remove):
		if m.actor != nil {
			m.view = ConfirmView
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit), key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.back):
		m.view = DetailView
		return m, nil
	case key.Matches(msg, m.keys.yes):
		return m, m.deleteArtifact(m.selected.ID())
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.refresh), key.Matches(msg, m.keys.enter):
		m.view = ListView
		m.selected = nil
		m.result = nil
		m.err = nil
		return m, m.loadArtifacts()
	}
	return m, nil
}

func (m *Model) loadArtifacts() tea.Cmd {
	return func() tea.Msg {
		artifacts, err := m.catalog.ListArtifacts(nil)
		return artifactsLoadedMsg(artifacts, err)
	}
}

func (m *Model) verifyArtifact(id int64) tea.Cmd {
	return func() tea.Msg {
		v, err := m.catalog.VerifyArtifact(id)
		return artifactVerifiedMsg(v, err)
	}
}

func (m *Model) deleteArtifact(id int64) tea.Cmd {
	return func() tea.Msg {
		result, err := m.actor.DeleteArtifact(m.catalog, id)
		if err != nil {
			m.logger.Error("delete failed", "artifact_id", id, "error", err)
		}
		return artifactDeletedMsg(result, err)
	}
}

func (m *Model) renderList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.refresh, m.keys.quit}
	return fmt.Sprintf("%s\n\n%s", m.list.View(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderDetail() string {
	a := m.selected
	var b strings.Builder

	b.WriteString(styles.title.Render(fmt.Sprintf("#%d %s", a.ID(), a.Title())))
	b.WriteString("\n")
	b.WriteString(styles.label.Render("Artist") + a.Artist() + "\n")
	b.WriteString(styles.label.Render("Created") + shared.FormatTimestamp(a.CreatedAt()) + "\n")
	b.WriteString(styles.label.Render("Modified") + shared.FormatTimestamp(a.UpdatedAt()) + "\n")
	b.WriteString(styles.label.Render("Checksum") + a.Checksum() + "\n\n")
	b.WriteString(styles.body.Render(m.catalog.DecodeContent(a)))
	b.WriteString("\n\n")

	switch {
	case m.verification == nil:
		b.WriteString(styles.help.Render("checksum not verified"))
	case m.verification.OK():
		b.WriteString(styles.ok.Render("✓ checksum ok"))
	default:
		b.WriteString(styles.err.Render("✗ checksum mismatch: " + m.verification.Actual))
	}

	helpKeys := []key.Binding{m.keys.verify, m.keys.back, m.keys.quit}
	if m.actor != nil {
		helpKeys = []key.Binding{m.keys.verify, m.keys.remove, m.keys.back, m.keys.quit}
	}
	return fmt.Sprintf("%s\n\n%s", b.String(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Delete artifact #%d?", m.selected.ID()))
	info := fmt.Sprintf("\nTitle: %s\nArtist: %s\n", m.selected.Title(), m.selected.Artist())

	helpKeys := []key.Binding{m.keys.yes, m.keys.no}
	return fmt.Sprintf("%s\n%s\n%s", title, info, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderResult() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})

	if m.err != nil {
		return fmt.Sprintf("%s\n\n%s", styles.err.Render(fmt.Sprintf("Delete failed: %v", m.err)), helpView)
	}
	if m.result == nil {
		return fmt.Sprintf("%s\n\n%s", styles.err.Render("No result available"), helpView)
	}
	if !m.result.OK() {
		return fmt.Sprintf("%s\n\n%s", styles.warn.Render("✗ "+m.result.Message), helpView)
	}
	return fmt.Sprintf("%s\n\n%s", styles.ok.Render("✓ "+m.result.Message), helpView)
}

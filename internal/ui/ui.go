package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tidalq/tidalq/internal/formatter"
	"github.com/tidalq/tidalq/internal/models"
	"github.com/tidalq/tidalq/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ResolveView ViewState = iota
	TrackListView
	ConfirmView
	QueueView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	view       ViewState
	dispatcher *tasks.Dispatcher
	opts       tasks.DispatcherOptions
	rawURL     string

	width  int
	height int

	resolved     *tasks.Resolved
	trackList    list.Model
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	batch        *models.BatchResult
	err          error
	help         help.Model
	keys         keyMap
}

type resolvedMsg struct {
	resolved *tasks.Resolved
	err      error
}

type progressUpdateMsg tasks.ProgressUpdate

type queueCompleteMsg struct {
	batch *models.BatchResult
	err   error
}

// NewModel creates a new TUI model for dispatching the given link.
func NewModel(ctx context.Context, dispatcher *tasks.Dispatcher, opts tasks.DispatcherOptions, rawURL string) *Model {
	return &Model{
		ctx:        ctx,
		view:       ResolveView,
		dispatcher: dispatcher,
		opts:       opts,
		rawURL:     rawURL,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init starts resolving the link.
func (m *Model) Init() tea.Cmd {
	return m.resolveLink()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.trackList.Width() == 0 {
			m.trackList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case TrackListView:
			return m.handleTrackListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		default:
			if msg.String() == "q" || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
		}

	case resolvedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = ResultView
			return m, nil
		}
		m.resolved = msg.resolved

		// Single tracks skip the preview; there is nothing to browse.
		if msg.resolved.Track != nil {
			m.view = ConfirmView
			return m, nil
		}

		items := make([]list.Item, len(msg.resolved.Collection.Tracks))
		for i, track := range msg.resolved.Collection.Tracks {
			items[i] = trackItem{track: track}
		}
		m.trackList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.trackList.Title = fmt.Sprintf("Tracks in '%s'", msg.resolved.Collection.Name)
		m.trackList.SetSize(m.width-4, m.height-8)
		m.view = TrackListView
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case queueCompleteMsg:
		m.batch = msg.batch
		m.err = msg.err
		m.view = ResultView
		m.progressChan = nil
		return m, nil
	}

	if m.view == TrackListView {
		var cmd tea.Cmd
		m.trackList, cmd = m.trackList.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case ResolveView:
		return m.renderResolve()
	case TrackListView:
		return m.renderTrackList()
	case ConfirmView:
		return m.renderConfirm()
	case QueueView:
		return m.renderQueue()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleTrackListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		m.view = ConfirmView
		return m, nil
	}

	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "n", "esc":
		if m.resolved != nil && m.resolved.Collection != nil {
			m.view = TrackListView
			return m, nil
		}
		return m, tea.Quit
	case "y":
		m.view = QueueView
		return m, m.startQueue()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "enter":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) resolveLink() tea.Cmd {
	return func() tea.Msg {
		resolved, err := m.dispatcher.Resolve(m.ctx, m.rawURL, nil)
		return resolvedMsg{resolved: resolved, err: err}
	}
}

func (m *Model) startQueue() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	progressChan := m.progressChan

	go func() {
		batch, err := m.dispatcher.Queue(m.ctx, m.resolved, m.opts, progressChan)
		m.batch = &batch
		m.err = err
		close(progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return queueCompleteMsg{batch: m.batch, err: m.err}
		}

		update, ok := <-m.progressChan
		if !ok {
			return queueCompleteMsg{batch: m.batch, err: m.err}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderResolve() string {
	title := styles.title.Render("Resolving Link")
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.quit})
	return fmt.Sprintf("%s\n\n%s\n\n%s", title, m.rawURL, helpView)
}

func (m *Model) renderTrackList() string {
	queueKey := key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "queue"),
	)
	helpKeys := []key.Binding{queueKey, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.trackList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	var title, info string
	if m.resolved.Track != nil {
		title = styles.title.Render(fmt.Sprintf("Queue '%s - %s'?", m.resolved.Track.Artist, m.resolved.Track.Title))
		info = "\nSingle track\n"
	} else {
		title = styles.title.Render(fmt.Sprintf("Queue '%s'?", m.resolved.Collection.Name))
		info = fmt.Sprintf("\n%s\nTracks: %d\n", m.resolved.Link.Kind, len(m.resolved.Collection.Tracks))
	}

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderQueue() string {
	title := styles.title.Render("Queuing Tracks")

	var phase string
	switch m.progress.Phase {
	case tasks.QueueTracks:
		phase = fmt.Sprintf("Submitting tracks (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.Summary:
		phase = "Finishing up..."
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Dispatch failed: %v\n\nPress q to quit", m.err))
	}

	if m.batch == nil {
		return styles.err.Render("No result available\n\nPress q to quit")
	}

	title := styles.ok.Render("✓ Dispatch Complete")
	info := "\n" + formatter.BatchSummary(*m.batch)

	var failed string
	if m.batch.Failed > 0 {
		failed = "\n\n" + styles.warn.Render(fmt.Sprintf("%d tracks could not be queued; see the log for details.", m.batch.Failed))
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.quit})

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, failed, helpView)
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/klemjul/msgdump/internal/transcript"
)

type TranscriptViewModel struct {
	viewport   viewport.Model
	transcript transcript.Transcript
	title      string
	ready      bool

	formatMarkdown func(text string) (string, error)
}

const (
	VIEW_INIT_LOADING = "Loading..."
	VIEW_HELP         = "↑/↓ scroll • pgup/pgdown page • q quit"
)

var (
	userStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	botStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	titleStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true)
	footerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			Foreground(lipgloss.Color("241"))
)

type InitialModelOptions struct {
	Title          string
	Transcript     transcript.Transcript
	FormatMarkdown func(text string) (string, error)
}

func InitialModel(opts InitialModelOptions) TranscriptViewModel {
	formatMarkdown := opts.FormatMarkdown
	if formatMarkdown == nil {
		formatMarkdown = func(text string) (string, error) { return text, nil }
	}

	return TranscriptViewModel{
		viewport:       viewport.New(0, 0),
		transcript:     opts.Transcript,
		title:          opts.Title,
		formatMarkdown: formatMarkdown,
	}
}

func (m TranscriptViewModel) Init() tea.Cmd {
	return tea.EnableMouseCellMotion
}

func (m TranscriptViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		titleLines := 1
		if msg.Width > 0 {
			titleLines += len(m.title) / msg.Width
		}
		m.viewport = viewport.New(msg.Width, msg.Height-(3+titleLines))
		m.ready = true
		m.updateViewport()

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				m.viewport.ScrollUp(1)
			case tea.MouseButtonWheelDown:
				m.viewport.ScrollDown(1)
			}
		}

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			cmd = tea.Quit
		case tea.KeyUp:
			m.viewport.ScrollUp(1)
		case tea.KeyDown:
			m.viewport.ScrollDown(1)
		case tea.KeyPgUp:
			m.viewport.ScrollUp(m.viewport.Height)
		case tea.KeyPgDown:
			m.viewport.ScrollDown(m.viewport.Height)
		case tea.KeyHome:
			m.viewport.GotoTop()
		case tea.KeyEnd:
			m.viewport.GotoBottom()
		case tea.KeyRunes:
			if string(msg.Runes) == "q" {
				cmd = tea.Quit
			}
		}
	}

	return m, cmd
}

func (m *TranscriptViewModel) updateViewport() {
	displayed := make([]string, 0, m.transcript.Len())
	for _, msg := range m.transcript.Messages {
		switch msg.Role {
		case transcript.Assistant:
			out, err := m.formatMarkdown(msg.Content)
			if err != nil {
				out = msg.Content
			}
			displayed = append(displayed, botStyle.Render(strings.TrimSpace(out)))
		default:
			displayed = append(displayed, userStyle.Render(fmt.Sprintf("> %s", msg.Content)))
		}
	}

	m.viewport.SetContent(strings.Join(displayed, "\n\n"))
	m.viewport.GotoTop()
}

func (m TranscriptViewModel) View() string {
	if !m.ready {
		return VIEW_INIT_LOADING
	}

	footer := fmt.Sprintf("%d messages • %3.f%% • %s", m.transcript.Len(), m.viewport.ScrollPercent()*100, VIEW_HELP)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Width(m.viewport.Width).Render(m.title),
		m.viewport.View(),
		footerStyle.Width(m.viewport.Width).Render(footer),
	)
}

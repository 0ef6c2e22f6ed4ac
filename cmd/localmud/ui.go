package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/localmud/localmud/internal/game/command"
	"github.com/localmud/localmud/internal/game/player"
	"github.com/localmud/localmud/internal/game/session"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	echoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)
)

// model is the BubbleTea model for the full-screen interface: a scrollback
// viewport over the session log, a status line, and a single-line input.
type model struct {
	interp *command.Interpreter
	sess   *session.State
	player *player.Player

	vp     viewport.Model
	input  textinput.Model
	ready  bool
	width  int
	height int
	done   bool
}

func newModel(interp *command.Interpreter, sess *session.State, p *player.Player) model {
	ti := textinput.New()
	ti.Placeholder = "Type a command..."
	ti.Prompt = "> "
	ti.CharLimit = 200
	ti.Focus()

	return model{
		interp: interp,
		sess:   sess,
		player: p,
		vp:     viewport.New(80, 20),
		input:  ti,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width - 2
		m.vp.Height = msg.Height - 4
		m.input.Width = msg.Width - 4
		if !m.ready {
			m.ready = true
			m.sess.Append("MOTD: " + m.sess.MOTD)
			m.interp.Execute("look")
		}
		m.refresh()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.done {
				return m, tea.Quit
			}
			input := strings.TrimSpace(m.input.Value())
			if input == "" {
				return m, nil
			}
			m.input.Reset()

			m.sess.Append(echoStyle.Render("> " + input))
			m.interp.Execute(input)
			if m.interp.Won() {
				m.sess.Append(winStyle.Render("*** You have won. ***"))
				m.done = true
			}
			if m.sess.Quitting {
				m.done = true
			}
			m.refresh()
			if m.done {
				return m, nil
			}
		}
	}

	m.input, tiCmd = m.input.Update(msg)
	m.vp, vpCmd = m.vp.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd)
}

// refresh rebuilds the viewport content from the session scrollback. Execute
// appends its own lines, so the log is the single source of display truth and
// the clear verb empties the screen for free.
func (m *model) refresh() {
	m.vp.SetContent(strings.Join(m.sess.Lines(), "\n"))
	m.vp.GotoBottom()
}

func (m model) statusLine() string {
	p := m.player
	status := fmt.Sprintf("HP %d/%d  XP %d  Gold %d  Room %s",
		p.HP, p.MaxHP, p.XP, p.Gold, m.sess.CurrentRoom)
	if p.CurseCount > 0 {
		status += fmt.Sprintf("  Curses %d (tsk tsk)", p.CurseCount)
	}
	return statusStyle.Render(status)
}

func (m model) View() string {
	if !m.ready {
		return "\n  Lighting the candles..."
	}

	bottom := m.input.View()
	if m.done {
		bottom = statusStyle.Render("Press Enter to leave.")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(" LocalMUD "+command.Version),
		m.vp.View(),
		m.statusLine(),
		bottom,
	)
}

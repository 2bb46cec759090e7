package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/memcap"
	"github.com/wippyai/memcap/region"
	"github.com/wippyai/memcap/wasmmem"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// The TUI never needs write access; it holds guest memory behind a frozen
// view for its whole lifetime.
type frozenView = region.Region[memcap.Frozen[memcap.Writable]]

// pageSize bounds how much memory is rendered at once; jump with "g" to
// move the page.
const pageSize = 64 * 1024

const headerHeight = 3

type inspectModel struct {
	err      error
	g        *guest
	view     frozenView
	filename string
	funcName string
	status   string
	offset   uint32
	vp       viewport.Model
	input    textinput.Model
	entering bool
	ready    bool
}

func newInspectModel(filename, funcName string) *inspectModel {
	ti := textinput.New()
	ti.Placeholder = "offset (hex or dec)"
	ti.Prompt = "goto: "
	ti.Width = 24

	return &inspectModel{
		filename: filename,
		funcName: funcName,
		input:    ti,
	}
}

func (m *inspectModel) Init() tea.Cmd {
	return m.load
}

func (m *inspectModel) load() tea.Msg {
	ctx := context.Background()

	g, err := loadGuest(ctx, m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}

	if m.funcName != "" {
		if _, err := g.call(ctx, m.funcName); err != nil {
			g.close(ctx)
			return loadedMsg{err: err}
		}
	}

	mem, err := wasmmem.Attach(g.mod.Memory())
	if err != nil {
		g.close(ctx)
		return loadedMsg{err: err}
	}

	return loadedMsg{g: g, view: region.Freeze(mem)}
}

type loadedMsg struct {
	err  error
	g    *guest
	view frozenView
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.entering {
			switch msg.String() {
			case "enter":
				m.entering = false
				m.input.Blur()
				m.jump(m.input.Value())
				m.input.SetValue("")
			case "esc":
				m.entering = false
				m.input.Blur()
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				return m, cmd
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			if m.g != nil {
				m.g.close(context.Background())
			}
			return m, tea.Quit

		case "g":
			m.entering = true
			m.input.Focus()
			return m, textinput.Blink

		case "r":
			m.refresh()
		}

	case tea.WindowSizeMsg:
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-headerHeight)
			m.ready = true
			m.redraw()
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - headerHeight
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.g = msg.g
		m.view = msg.view
		m.status = fmt.Sprintf("%d bytes of linear memory", m.view.Size())
		m.redraw()
		return m, nil
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *inspectModel) jump(s string) {
	if s == "" {
		return
	}
	off, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		m.status = "bad offset: " + s
		return
	}
	if uint32(off) >= m.view.Size() {
		m.status = fmt.Sprintf("offset %#x beyond memory size %d", off, m.view.Size())
		return
	}
	m.offset = uint32(off) &^ 15
	m.status = fmt.Sprintf("at %#x", m.offset)
	m.redraw()
}

// refresh re-attaches the view: a guest call made before the TUI started
// may have grown memory, and growth moves the backing buffer.
func (m *inspectModel) refresh() {
	if m.g == nil {
		return
	}
	mem, err := wasmmem.Attach(m.g.mod.Memory())
	if err != nil {
		m.err = err
		return
	}
	m.view = region.Freeze(mem)
	m.status = fmt.Sprintf("%d bytes of linear memory", m.view.Size())
	m.redraw()
}

func (m *inspectModel) redraw() {
	if !m.ready || m.g == nil {
		return
	}

	n := m.view.Size() - m.offset
	if n > pageSize {
		n = pageSize
	}
	window, err := m.view.Slice(m.offset, n)
	if err != nil {
		m.err = err
		return
	}

	m.vp.SetContent(hexdump(window, m.offset))
	m.vp.GotoTop()
}

func (m *inspectModel) View() string {
	if m.err != nil {
		return errorStyle.Render("Error: "+m.err.Error()) + "\n" +
			helpStyle.Render("q: quit") + "\n"
	}
	if !m.ready || m.g == nil {
		return "Loading " + m.filename + "...\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("memview " + m.filename))
	b.WriteString("  ")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(m.vp.View())
	b.WriteString("\n")
	if m.entering {
		b.WriteString(m.input.View())
	} else {
		b.WriteString(helpStyle.Render("g: goto  r: refresh  up/down: scroll  q: quit"))
	}
	return b.String()
}

func runInteractive(filename, funcName string) error {
	m := newInspectModel(filename, funcName)

	// Seed the viewport from the current terminal size; bubbletea delivers
	// a WindowSizeMsg too, but only once the program is running.
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && h > headerHeight {
		m.vp = viewport.New(w, h-headerHeight)
		m.ready = true
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

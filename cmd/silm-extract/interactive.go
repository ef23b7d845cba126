package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	alisassets "github.com/wippyai/alis-assets"
	"github.com/wippyai/alis-assets/extract"
	"github.com/wippyai/alis-assets/script"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	offsetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// visibleRows bounds the entry list so long tables scroll.
const visibleRows = 20

type interactiveModel struct {
	err      error
	x        *extract.Extractor
	decoder  *script.Decoder
	filename string
	result   string
	entries  []*script.Entry
	shown    []*script.Entry
	filter   textinput.Model
	selected int
	state    modelState
}

type modelState int

const (
	stateBrowse modelState = iota
	stateFilter
	stateDetail
)

func newInteractiveModel(x *extract.Extractor, filename string) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "kind or index"
	ti.Prompt = "/ "
	ti.Width = 30
	return &interactiveModel{
		x:        x,
		filename: filename,
		filter:   ti,
		state:    stateBrowse,
	}
}

type loadedMsg struct {
	err     error
	decoder *script.Decoder
}

type extractedMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadScript
}

func (m *interactiveModel) loadScript() tea.Msg {
	s, _, err := m.x.ReadFile(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	d, err := extract.Open(s)
	if err != nil {
		return loadedMsg{err: err}
	}
	d.All()
	return loadedMsg{decoder: d}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateFilter {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.state == stateBrowse && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateBrowse && m.selected < len(m.shown)-1 {
				m.selected++
			}

		case "/":
			if m.state == stateBrowse {
				m.state = stateFilter
				return m, m.filter.Focus()
			}

		case "enter":
			switch m.state {
			case stateBrowse:
				if len(m.shown) > 0 {
					m.state = stateDetail
				}
			case stateDetail:
				m.state = stateBrowse
				m.result = ""
			}

		case "x":
			if m.decoder != nil {
				return m, m.extractScript
			}

		case "esc":
			if m.state == stateDetail {
				m.state = stateBrowse
				m.result = ""
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.decoder = msg.decoder
		m.entries = msg.decoder.All()
		m.applyFilter()

	case extractedMsg:
		m.result = msg.result
		if msg.err != nil {
			m.result = errorStyle.Render(fmt.Sprintf("Error: %v", msg.err))
		}
	}

	return m, nil
}

func (m *interactiveModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter", "esc":
		m.filter.Blur()
		m.state = stateBrowse
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *interactiveModel) applyFilter() {
	q := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.shown = m.shown[:0]
	for _, e := range m.entries {
		if q == "" || strings.Contains(e.Kind.String(), q) || fmt.Sprint(e.Index) == q {
			m.shown = append(m.shown, e)
		}
	}
	if m.selected >= len(m.shown) {
		m.selected = max(len(m.shown)-1, 0)
	}
}

func (m *interactiveModel) extractScript() tea.Msg {
	reports, err := alisassets.Extract(context.Background(), m.x, m.filename)
	if len(reports) == 0 || reports[0] == nil {
		return extractedMsg{err: err}
	}
	return extractedMsg{
		err:    err,
		result: fmt.Sprintf("%d files written to %s", len(reports[0].Artifacts), m.x.Out()),
	}
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.decoder == nil {
		return "Loading script..."
	}

	var b strings.Builder

	t := m.decoder.Table()
	b.WriteString(titleStyle.Render("ALIS Assets"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString(offsetStyle.Render(fmt.Sprintf("  table 0x%06x, %d entries", t.Address, t.Entries)))
	b.WriteString("\n\n")

	switch m.state {
	case stateBrowse, stateFilter:
		if m.state == stateFilter || m.filter.Value() != "" {
			b.WriteString(m.filter.View())
			b.WriteString("\n\n")
		}
		first := 0
		if m.selected >= visibleRows {
			first = m.selected - visibleRows + 1
		}
		for i := first; i < len(m.shown) && i < first+visibleRows; i++ {
			line := m.formatEntry(m.shown[i])
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		if m.result != "" {
			b.WriteString(resultStyle.Render(m.result))
			b.WriteString("\n")
		}
		b.WriteString(helpStyle.Render("↑/↓ select • enter details • / filter • x extract • q quit"))

	case stateDetail:
		m.writeDetail(&b, m.shown[m.selected])
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter back • x extract • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatEntry(e *script.Entry) string {
	loc := "      -"
	if e.Location >= 0 {
		loc = fmt.Sprintf("0x%06x", e.Location)
	}
	return fmt.Sprintf("%4d %s %s", e.Index, offsetStyle.Render(loc), kindStyle.Render(e.String()))
}

func (m *interactiveModel) writeDetail(b *strings.Builder, e *script.Entry) {
	s := m.decoder.Script()
	fmt.Fprintf(b, "Entry %d: %s\n\n", e.Index, kindStyle.Render(e.Kind.String()))
	fmt.Fprintf(b, "  slot      0x%06x\n", m.decoder.Table().Slot(e.Index))
	if e.Location < 0 {
		fmt.Fprintf(b, "  location  unresolved\n")
	} else {
		fmt.Fprintf(b, "  location  0x%06x\n", e.Location)
		fmt.Fprintf(b, "  tag       0x%03x/0x%02x\n", e.Tag, e.Param)
		fmt.Fprintf(b, "  bytes     %s\n", offsetStyle.Render(s.Hex(e.Location-2, 24)))
	}
	if e.Width > 0 || e.Height > 0 {
		fmt.Fprintf(b, "  size      %dx%d\n", e.Width, e.Height)
	}
	if e.Kind.IsBitmap() && e.Clear >= 0 {
		fmt.Fprintf(b, "  clear     %d\n", e.Clear)
	}
	if e.Video != nil {
		fmt.Fprintf(b, "  video     %q %d frames %dx%d\n", e.Video.Name, e.Video.Frames, e.Video.Width, e.Video.Height)
	}
	if e.Kind == script.KindSample {
		fmt.Fprintf(b, "  rate      %d Hz\n", e.SampleRate)
	}
	if e.Err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("  error     %v", e.Err)))
		b.WriteString("\n")
	}
	if len(e.Commands) > 0 {
		b.WriteString("\n  order cmd  index kind                         x     y depth\n")
		for order, c := range e.Commands {
			ref := m.decoder.Entry(c.Index)
			fmt.Fprintf(b, "  %5d 0x%02x %5d %-24s %5d %5d %5d\n",
				order, c.Op, c.Index, ref.Kind, c.X, c.Y, c.Depth)
		}
	}
	if m.result != "" {
		b.WriteString("\n")
		b.WriteString(resultStyle.Render(m.result))
		b.WriteString("\n")
	}
}

func runInteractive(x *extract.Extractor, filename string) error {
	p := tea.NewProgram(newInteractiveModel(x, filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

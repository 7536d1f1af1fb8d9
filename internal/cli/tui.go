package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/graphwalk/internal/config"
	gwerrors "github.com/matzehuels/graphwalk/pkg/errors"
	"github.com/matzehuels/graphwalk/pkg/search"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PresetListModel - Interactive graph selection
// =============================================================================

// PresetListModel is the bubbletea model for picking a graph preset.
type PresetListModel struct {
	Presets  []config.Preset
	Cursor   int
	Selected *config.Preset
	Height   int
	Offset   int
}

// NewPresetListModel creates a new preset list model.
func NewPresetListModel(presets []config.Preset) PresetListModel {
	return PresetListModel{
		Presets: presets,
		Height:  15,
	}
}

func (m PresetListModel) Init() tea.Cmd {
	return nil
}

func (m PresetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Presets)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Presets) == 0 {
				return m, nil
			}
			p := m.Presets[m.Cursor]
			m.Selected = &p
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m PresetListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Graph"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Presets))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.Presets[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		fanout := "—"
		if p.Fanout > 0 {
			fanout = strconv.Itoa(p.Fanout)
		}
		rows = append(rows, []string{cursor, p.Name, string(p.Kind), strconv.Itoa(p.Nodes), fanout})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Preset", "Kind", "Nodes", "Fanout").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col >= 3 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Presets))))

	return b.String()
}

// =============================================================================
// StrategyListModel - Interactive strategy selection
// =============================================================================

// StrategyListModel is the bubbletea model for picking a search strategy.
type StrategyListModel struct {
	Strategies []search.Strategy
	Cursor     int
	Selected   *search.Strategy
}

// NewStrategyListModel creates a strategy list offering BFS, DFS and DLS
// with the given depth limit.
func NewStrategyListModel(limit int) StrategyListModel {
	return StrategyListModel{
		Strategies: []search.Strategy{search.BFS(), search.DFS(), search.DLS(limit)},
	}
}

func (m StrategyListModel) Init() tea.Cmd {
	return nil
}

func (m StrategyListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Strategies)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = &m.Strategies[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m StrategyListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Strategy"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("arrows: navigate  enter: select  q: quit"))
	b.WriteString("\n\n")

	for i, s := range m.Strategies {
		cursor := "  "
		if i == m.Cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-10s  %s", cursor, s, listDimStyle.Render(strategyHint(s)))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// =============================================================================
// EndpointInputModel - Start and goal entry
// =============================================================================

// endpointNames labels the two input fields.
var endpointNames = [2]string{"start", "goal"}

// EndpointInputModel is the bubbletea model for typing the start and goal
// nodes. Enter accepts only when both lie in 1..Nodes.
type EndpointInputModel struct {
	Nodes  int
	Fields [2]string
	Focus  int
	Err    error
	Start  int
	Goal   int
	Done   bool
}

// NewEndpointInputModel creates an input for a graph with nodes vertices,
// prefilled with start and goal.
func NewEndpointInputModel(nodes, start, goal int) EndpointInputModel {
	return EndpointInputModel{
		Nodes:  nodes,
		Fields: [2]string{strconv.Itoa(start), strconv.Itoa(goal)},
	}
}

func (m EndpointInputModel) Init() tea.Cmd {
	return nil
}

func (m EndpointInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch km.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		m.Focus = 1 - m.Focus
	case tea.KeyBackspace:
		f := m.Fields[m.Focus]
		if f != "" {
			m.Fields[m.Focus] = f[:len(f)-1]
		}
		m.Err = nil
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyRunes:
		for _, r := range km.Runes {
			if r >= '0' && r <= '9' && len(m.Fields[m.Focus]) < 9 {
				m.Fields[m.Focus] += string(r)
			}
		}
		m.Err = nil
	}
	return m, nil
}

// submit validates both fields and focuses the first bad one.
func (m EndpointInputModel) submit() (tea.Model, tea.Cmd) {
	var ids [2]int
	for i, f := range m.Fields {
		id, _ := strconv.Atoi(f)
		if err := gwerrors.ValidateNodeRange(endpointNames[i], id, m.Nodes); err != nil {
			m.Focus, m.Err = i, err
			return m, nil
		}
		ids[i] = id
	}
	m.Start, m.Goal, m.Done, m.Err = ids[0], ids[1], true, nil
	return m, tea.Quit
}

func (m EndpointInputModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Choose Endpoints"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("nodes 1-%d  tab: switch  enter: search  esc: quit", m.Nodes)))
	b.WriteString("\n\n")

	for i, name := range endpointNames {
		if i == m.Focus {
			b.WriteString(listSelectedStyle.Render(fmt.Sprintf("> %-5s %s_", name, m.Fields[i])))
		} else {
			b.WriteString(listNormalStyle.Render(fmt.Sprintf("  %-5s %s", name, m.Fields[i])))
		}
		b.WriteString("\n")
	}
	if m.Err != nil {
		b.WriteString("\n")
		b.WriteString(styleIconError.Render(gwerrors.UserMessage(m.Err)))
		b.WriteString("\n")
	}
	return b.String()
}

func strategyHint(s search.Strategy) string {
	switch s.Kind {
	case search.KindBFS:
		return "shortest path in hops"
	case search.KindDFS:
		return "deepest branch first"
	case search.KindDLS:
		return fmt.Sprintf("depth-first, at most %d hops", s.Limit)
	}
	return ""
}

package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/graphwalk/internal/config"
	gwerrors "github.com/matzehuels/graphwalk/pkg/errors"
	"github.com/matzehuels/graphwalk/pkg/search"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPresetListModel(t *testing.T) {
	presets := config.Default().Presets
	var m tea.Model = NewPresetListModel(presets)

	m, _ = m.Update(key("up"))
	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("j"))
	if got := m.(PresetListModel).Cursor; got != 2 {
		t.Fatalf("cursor = %d, want 2", got)
	}
	if view := m.View(); !strings.Contains(view, presets[0].Name) {
		t.Errorf("view should list %q:\n%s", presets[0].Name, view)
	}

	m, cmd := m.Update(key("enter"))
	sel := m.(PresetListModel).Selected
	if sel == nil || sel.Name != presets[2].Name {
		t.Fatalf("selected = %v, want %s", sel, presets[2].Name)
	}
	if cmd == nil {
		t.Error("enter should quit")
	}
}

func TestPresetListModelScrolls(t *testing.T) {
	var m tea.Model = NewPresetListModel(config.Default().Presets)
	m, _ = m.Update(tea.WindowSizeMsg{Height: 8})
	for range 6 {
		m, _ = m.Update(key("down"))
	}
	pm := m.(PresetListModel)
	if pm.Height != 5 || pm.Offset != 2 {
		t.Errorf("height=%d offset=%d, want 5 and 2", pm.Height, pm.Offset)
	}
}

func TestStrategyListModel(t *testing.T) {
	var m tea.Model = NewStrategyListModel(7)
	if view := m.View(); !strings.Contains(view, "dls(7)") {
		t.Errorf("view should offer dls(7):\n%s", view)
	}
	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("enter"))
	sel := m.(StrategyListModel).Selected
	if sel == nil || *sel != search.DLS(7) {
		t.Errorf("selected = %v, want dls(7)", sel)
	}

	m = NewStrategyListModel(3)
	m, _ = m.Update(key("q"))
	if m.(StrategyListModel).Selected != nil {
		t.Error("quit should not select")
	}
}

func TestEndpointInputModel(t *testing.T) {
	var m tea.Model = NewEndpointInputModel(500, 1, 500)
	if view := m.View(); !strings.Contains(view, "nodes 1-500") {
		t.Errorf("view should show the node range:\n%s", view)
	}

	// start: 1 -> 0
	m, _ = m.Update(key("backspace"))
	m, _ = m.Update(key("0"))
	m, cmd := m.Update(key("enter"))
	em := m.(EndpointInputModel)
	if em.Done || cmd != nil {
		t.Fatal("start 0 should be rejected")
	}
	if !gwerrors.Is(em.Err, gwerrors.ErrCodeNodeNotFound) || em.Focus != 0 {
		t.Fatalf("err=%v focus=%d, want NODE_NOT_FOUND on start", em.Err, em.Focus)
	}
	if !strings.Contains(m.View(), "start must be between 1 and 500") {
		t.Errorf("view should show the error:\n%s", m.View())
	}

	m, _ = m.Update(key("backspace"))
	m, _ = m.Update(key("7"))
	m, _ = m.Update(key("tab"))
	for range 3 {
		m, _ = m.Update(key("backspace"))
	}
	m, _ = m.Update(key("x"))
	m, _ = m.Update(key("501"))
	m, _ = m.Update(key("enter"))
	em = m.(EndpointInputModel)
	if em.Done || em.Focus != 1 || !gwerrors.Is(em.Err, gwerrors.ErrCodeNodeNotFound) {
		t.Fatalf("goal 501: done=%v focus=%d err=%v", em.Done, em.Focus, em.Err)
	}

	m, _ = m.Update(key("backspace"))
	m, _ = m.Update(key("backspace"))
	m, cmd = m.Update(key("enter"))
	em = m.(EndpointInputModel)
	if !em.Done || em.Start != 7 || em.Goal != 5 || cmd == nil {
		t.Errorf("accepted = %+v, want start 7 goal 5", em)
	}
}

func TestEndpointInputModelEmptyAndQuit(t *testing.T) {
	var m tea.Model = NewEndpointInputModel(6, 1, 6)
	m, _ = m.Update(key("tab"))
	m, _ = m.Update(key("backspace"))
	m, _ = m.Update(key("enter"))
	if em := m.(EndpointInputModel); em.Done || !gwerrors.Is(em.Err, gwerrors.ErrCodeNodeNotFound) {
		t.Errorf("empty goal: done=%v err=%v", em.Done, em.Err)
	}

	m, cmd := m.Update(key("esc"))
	if m.(EndpointInputModel).Done || cmd == nil {
		t.Error("esc should quit without accepting")
	}
}

func TestCheckEndpoints(t *testing.T) {
	tests := []struct {
		name        string
		start, goal int
		wantErr     bool
	}{
		{"both in range", 1, 500, false},
		{"zero start", 0, 10, true},
		{"goal past last node", 1, 501, true},
		{"negative goal", 3, -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkEndpoints(500, tt.start, tt.goal)
			if tt.wantErr != (err != nil) {
				t.Fatalf("checkEndpoints(%d, %d) = %v", tt.start, tt.goal, err)
			}
			if err != nil && !gwerrors.Is(err, gwerrors.ErrCodeNodeNotFound) {
				t.Errorf("code = %s, want NODE_NOT_FOUND", gwerrors.GetCode(err))
			}
		})
	}
}

func TestRenderHint(t *testing.T) {
	got := renderHint("c500-3", 2, 250, search.DLS(4))
	if want := "render --preset c500-3 --start 2 --goal 250 -s dls -l 4"; !strings.Contains(got, want) {
		t.Errorf("renderHint = %q, want it to contain %q", got, want)
	}
}

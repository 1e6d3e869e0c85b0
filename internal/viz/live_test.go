package viz

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/simlab/internal/config"
	"github.com/san-kum/simlab/internal/sketch"
)

func newModel(t *testing.T, kind string, opts ...Option) *Model {
	t.Helper()
	ctx, err := sketch.Open(config.ForSketch(kind), sketch.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return NewModel(ctx, append([]Option{WithSize(100, 30)}, opts...)...)
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	if s == "tab" {
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelLayout(t *testing.T) {
	m := newModel(t, config.SketchBall)
	c := m.Surface().Canvas
	if c.Width != 100-sideWidth || c.Height != 29 {
		t.Errorf("canvas %dx%d", c.Width, c.Height)
	}
	w, h := m.Context().Size()
	if w != float64(c.Width*2) || h != float64(c.Height*4) {
		t.Errorf("context size %vx%v", w, h)
	}
	if m.Context().PanelRect.X != w {
		t.Errorf("panel rect %+v", m.Context().PanelRect)
	}

	m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	if m.Surface().Canvas.Width != 60-sideWidth {
		t.Errorf("after resize width %d", m.Surface().Canvas.Width)
	}
}

func TestModelTicksAdvanceBall(t *testing.T) {
	m := newModel(t, config.SketchBall)
	start := time.Unix(100, 0)
	_, cmd := m.Update(TickMsg(start))
	if cmd == nil {
		t.Fatal("tick should schedule the next tick")
	}
	if m.Context().Time != 0 {
		t.Errorf("first tick advanced time to %v", m.Context().Time)
	}
	m.Update(TickMsg(start.Add(20 * time.Millisecond)))
	if m.Context().Time <= 0 {
		t.Error("second tick did not advance time")
	}
	if len(m.energy) == 0 {
		t.Error("energy history empty")
	}
	if !strings.Contains(m.View(), "RUNNING") {
		t.Error("status should show RUNNING")
	}
}

func TestModelSpacePauses(t *testing.T) {
	m := newModel(t, config.SketchBall)
	m.Update(key(" "))
	if !m.Context().Paused {
		t.Fatal("space should pause")
	}
	start := time.Unix(100, 0)
	m.Update(TickMsg(start))
	m.Update(TickMsg(start.Add(time.Second)))
	if m.Context().Time != 0 {
		t.Errorf("paused model advanced to %v", m.Context().Time)
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("status should show PAUSED")
	}
}

func TestModelMouse(t *testing.T) {
	m := newModel(t, config.SketchBall)
	cam := m.Context().Camera

	m.Update(tea.MouseMsg{X: 5, Y: 5, Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if cam.Zoom <= 1 {
		t.Errorf("wheel up should zoom in, zoom = %v", cam.Zoom)
	}
	zoom := cam.Zoom
	m.Update(tea.MouseMsg{X: 90, Y: 5, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if cam.Zoom != zoom {
		t.Error("wheel over the panel column reached the camera")
	}

	m.Update(tea.MouseMsg{X: 10, Y: 10, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	m.Update(tea.MouseMsg{X: 14, Y: 10, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
	if cam.X >= 0 {
		t.Errorf("dragging right should move the camera left, x = %v", cam.X)
	}
	m.Update(tea.MouseMsg{X: 14, Y: 10, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	x := cam.X
	m.Update(tea.MouseMsg{X: 20, Y: 10, Button: tea.MouseButtonNone, Action: tea.MouseActionMotion})
	if cam.X != x {
		t.Error("motion after release panned")
	}
}

func TestModelTabHidesPanel(t *testing.T) {
	m := newModel(t, config.SketchBall)
	if !strings.Contains(m.View(), "Physics Settings") {
		t.Fatal("panel title missing")
	}
	m.Update(key("tab"))
	if m.Surface().Canvas.Width != 100 {
		t.Errorf("hidden panel should free its column, width %d", m.Surface().Canvas.Width)
	}
	if strings.Contains(m.View(), "Physics Settings") {
		t.Error("panel still rendered")
	}
}

func TestModelQuit(t *testing.T) {
	m := newModel(t, config.SketchRingPendulum)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestModelRecordsGIF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gif")
	m := newModel(t, config.SketchRingPendulum, WithRecordPath(path))
	m.Update(key("g"))
	start := time.Unix(100, 0)
	m.Update(TickMsg(start))
	m.Update(TickMsg(start.Add(16 * time.Millisecond)))
	if m.rec.Len() != 2 {
		t.Fatalf("captured %d frames", m.rec.Len())
	}
	m.Update(key("g"))
	if m.rec != nil {
		t.Error("second g should stop recording")
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Errorf("gif not written: %v", err)
	}
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want string
	}{
		{key(" "), "space"},
		{key("tab"), "tab"},
		{tea.KeyMsg{Type: tea.KeyEnter}, "enter"},
		{tea.KeyMsg{Type: tea.KeyUp}, "up"},
		{key("+"), "+"},
		{key("w"), "w"},
	}
	for _, tt := range tests {
		if got := KeyName(tt.msg); got != tt.want {
			t.Errorf("KeyName(%v) = %q, want %q", tt.msg, got, tt.want)
		}
	}
}

package viz

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/rigid2d/internal/config"
	"github.com/san-kum/rigid2d/internal/scenario"
	"github.com/san-kum/rigid2d/internal/vmath"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(4, 2)
	if c.PixelWidth() != 8 || c.PixelHeight() != 8 {
		t.Fatalf("pixel size = %dx%d, want 8x8", c.PixelWidth(), c.PixelHeight())
	}

	c.Set(3, 5)
	if !c.IsSet(3, 5) {
		t.Error("pixel (3,5) not set")
	}
	if c.IsSet(2, 5) {
		t.Error("neighbor (2,5) set")
	}

	c.Unset(3, 5)
	if c.IsSet(3, 5) {
		t.Error("pixel (3,5) still set after Unset")
	}
	if c.Grid[1][1] != brailleBlank {
		t.Errorf("cell = %U, want blank", c.Grid[1][1])
	}

	// out of range is ignored
	c.Set(-1, 0)
	c.Set(100, 100)
	if c.IsSet(-1, 0) || c.IsSet(100, 100) {
		t.Error("out of range pixel reported set")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	got := c.String()
	want := string([]rune{brailleBlank + 1, brailleBlank}) + "\n"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 4)
	c.DrawLine(2, 3, 9, 3)
	for x := 2; x <= 9; x++ {
		if !c.IsSet(x, 3) {
			t.Errorf("pixel (%d,3) not set", x)
		}
	}
	if c.IsSet(1, 3) || c.IsSet(10, 3) {
		t.Error("line overran its endpoints")
	}
}

func TestCanvasDrawPolygon(t *testing.T) {
	c := NewCanvas(10, 4)
	xs := []int{2, 10, 10, 2}
	ys := []int{2, 2, 10, 10}
	c.DrawPolygon(xs, ys)
	for i := range xs {
		if !c.IsSet(xs[i], ys[i]) {
			t.Errorf("corner (%d,%d) not set", xs[i], ys[i])
		}
	}
	if !c.IsSet(2, 6) {
		t.Error("closing edge not drawn")
	}
	if c.IsSet(6, 6) {
		t.Error("interior filled")
	}
}

func TestCanvasDrawCircle(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawCircle(20, 20, 4)
	for _, p := range [][2]int{{24, 20}, {20, 16}, {16, 20}, {20, 24}} {
		if !c.IsSet(p[0], p[1]) {
			t.Errorf("rim pixel %v not set", p)
		}
	}
	if c.IsSet(20, 20) {
		t.Error("center set")
	}

	c.Clear()
	c.DrawCircle(5, 5, 0.4)
	if !c.IsSet(5, 5) {
		t.Error("tiny circle should mark its center")
	}
}

func TestCameraProject(t *testing.T) {
	view := config.ViewConfig{Left: -16, Right: 16, Bottom: -8, Top: 14}
	cam := NewCamera(view, 160, 96)

	x, y := cam.Project(vmath.New(0, 3))
	if x != 80 || y != 48 {
		t.Errorf("center projects to (%d,%d), want (80,48)", x, y)
	}

	// y grows downward on the canvas
	_, yUp := cam.Project(vmath.New(0, 5))
	if yUp >= y {
		t.Errorf("higher world point at row %d, want above %d", yUp, y)
	}

	p := vmath.New(2, 5)
	px, py := cam.Project(p)
	back := cam.Unproject(px, py)
	tol := 1 / cam.Scale()
	if math.Abs(back.X-p.X) > tol || math.Abs(back.Y-p.Y) > tol {
		t.Errorf("Unproject(Project(%v)) = %v", p, back)
	}

	left, right, bottom, top := cam.Extents()
	const eps = 1e-9
	if left > view.Left+eps || right < view.Right-eps || bottom > view.Bottom+eps || top < view.Top-eps {
		t.Errorf("extents %v %v %v %v do not cover the view", left, right, bottom, top)
	}
}

func TestCameraZoom(t *testing.T) {
	cam := NewCamera(config.ViewConfig{Left: -1, Right: 1, Bottom: -1, Top: 1}, 100, 100)
	base := cam.Scale()

	cam.ZoomIn()
	if math.Abs(cam.Scale()-base*1.25) > 1e-9 {
		t.Errorf("scale after zoom in = %v, want %v", cam.Scale(), base*1.25)
	}
	for i := 0; i < 50; i++ {
		cam.ZoomIn()
	}
	if cam.Zoom != maxZoom {
		t.Errorf("zoom = %v, want clamp at %v", cam.Zoom, maxZoom)
	}
	for i := 0; i < 100; i++ {
		cam.ZoomOut()
	}
	if cam.Zoom != minZoom {
		t.Errorf("zoom = %v, want clamp at %v", cam.Zoom, minZoom)
	}
}

func TestSparklineChart(t *testing.T) {
	if got := SparklineChart([]float64{0, 7}, 10); got != "▁█" {
		t.Errorf("SparklineChart = %q", got)
	}
	if got := SparklineChart([]float64{3, 3, 3}, 10); got != "▁▁▁" {
		t.Errorf("flat SparklineChart = %q", got)
	}
	if got := SparklineChart(nil, 3); got != "───" {
		t.Errorf("empty SparklineChart = %q", got)
	}
	if got := []rune(SparklineChart([]float64{1, 2, 3, 4, 5}, 3)); len(got) != 3 {
		t.Errorf("SparklineChart kept %d samples, want 3", len(got))
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		fraction float64
		want     string
	}{
		{0.5, "██░░"},
		{0, "░░░░"},
		{2, "████"},
		{-1, "░░░░"},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.fraction, 4); got != tt.want {
			t.Errorf("ProgressBar(%v) = %q, want %q", tt.fraction, got, tt.want)
		}
	}
}

func TestThemes(t *testing.T) {
	defer SetTheme(CurrentTheme.Name)

	SetTheme("chalk")
	if CurrentTheme.Name != "chalk" {
		t.Errorf("theme = %s, want chalk", CurrentTheme.Name)
	}
	NextTheme()
	if CurrentTheme.Name != "phosphor" {
		t.Errorf("theme = %s, want phosphor", CurrentTheme.Name)
	}
	NextTheme()
	if CurrentTheme.Name != "blueprint" {
		t.Errorf("theme = %s, want blueprint", CurrentTheme.Name)
	}
	if GetTheme("nope").Name != "blueprint" {
		t.Error("unknown theme should fall back to blueprint")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("ThemeNames length mismatch")
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, cfg *config.Config) Model {
	t.Helper()
	scene, err := scenario.NewScene(cfg)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	return NewModel(scene)
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestModelTickAndPause(t *testing.T) {
	m := newTestModel(t, config.DefaultConfig())

	m = send(m, TickMsg{}, TickMsg{})
	if m.scene.Tick() != 2 {
		t.Fatalf("tick = %d, want 2", m.scene.Tick())
	}
	if len(m.energyHistory) != 2 || len(m.stepHistory) != 2 {
		t.Errorf("history lengths = %d, %d", len(m.energyHistory), len(m.stepHistory))
	}

	m = send(m, key(" "), TickMsg{})
	if m.running {
		t.Error("space should pause")
	}
	if m.scene.Tick() != 2 {
		t.Errorf("paused model stepped to tick %d", m.scene.Tick())
	}
}

func TestModelSpawnAndReset(t *testing.T) {
	m := newTestModel(t, config.DefaultConfig())
	start := m.cursor

	m = send(m, key("right"), key("up"))
	if want := start.Add(vmath.New(1, 1)); m.cursor != want {
		t.Errorf("cursor = %v, want %v", m.cursor, want)
	}

	m = send(m, key("b"), key("c"))
	if n := m.scene.World.BodyCount(); n != 4 {
		t.Fatalf("bodies = %d, want 4", n)
	}
	last, _ := m.scene.World.Body(3)
	if last.Position() != m.cursor {
		t.Errorf("spawned at %v, want cursor %v", last.Position(), m.cursor)
	}

	m = send(m, TickMsg{}, key("r"))
	if n := m.scene.World.BodyCount(); n != 2 {
		t.Errorf("bodies after reset = %d, want 2", n)
	}
	if m.scene.Tick() != 0 || len(m.energyHistory) != 0 {
		t.Error("reset did not clear tick and history")
	}
}

func TestModelContactsOverlay(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Bodies[1].Position.Y = 0.99 // already touching the ground

	m := newTestModel(t, cfg)
	m = send(m, TickMsg{})
	if len(m.contacts.points) != 0 {
		t.Error("contacts recorded while overlay is off")
	}

	m = send(m, key("k"), TickMsg{})
	if !m.contacts.enabled || len(m.contacts.points) == 0 {
		t.Fatalf("enabled=%v points=%d", m.contacts.enabled, len(m.contacts.points))
	}

	// the overlay follows the rebuilt world
	m = send(m, key("r"), TickMsg{})
	if len(m.contacts.points) == 0 {
		t.Error("no contacts after reset")
	}
}

func TestModelZoomAndView(t *testing.T) {
	m := newTestModel(t, config.DefaultConfig())
	m = send(m, key("+"))
	if m.camera.Zoom != 1.25 {
		t.Errorf("zoom = %v, want 1.25", m.camera.Zoom)
	}
	m = send(m, key("-"))
	if m.camera.Zoom != 1 {
		t.Errorf("zoom = %v, want 1", m.camera.Zoom)
	}

	view := m.View()
	if !strings.Contains(view, "DROP") || !strings.Contains(view, "Bodies") {
		t.Error("view missing header or stats")
	}

	m = send(m, key("p"))
	if !strings.Contains(m.status, "bodies 2") {
		t.Errorf("status = %q", m.status)
	}

	m = send(m, key("?"))
	if !strings.Contains(m.View(), "KEYBOARD SHORTCUTS") {
		t.Error("help overlay not shown")
	}
}

func TestModelCaptureFrame(t *testing.T) {
	m := newTestModel(t, config.DefaultConfig())
	m.canvas.Clear()
	m.canvas.Set(0, 0)
	m.captureFrame()

	if len(m.frames) != 1 {
		t.Fatalf("frames = %d, want 1", len(m.frames))
	}
	img := m.frames[0]
	if img.ColorIndexAt(0, 0) != 1 || img.ColorIndexAt(3, 3) != 1 {
		t.Error("dot (0,0) not painted")
	}
	if img.ColorIndexAt(4, 0) != 0 {
		t.Error("neighboring dot painted")
	}
}

func TestInteractiveMenu(t *testing.T) {
	app := *NewInteractiveApp()
	update := func(msg tea.Msg) {
		next, _ := app.Update(msg)
		app = next.(model)
	}

	update(key("j"))
	if app.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", app.cursor)
	}
	update(key("k"))
	update(key("enter"))
	if app.state != stateConfig || app.selected != app.presets[0] || app.cfg == nil {
		t.Fatalf("state=%d selected=%q", app.state, app.selected)
	}

	iters := app.cfg.Iterations
	update(key("l"))
	if app.cfg.Iterations != iters+1 {
		t.Errorf("iterations = %d, want %d", app.cfg.Iterations, iters+1)
	}

	// solver row
	update(key("j"))
	update(key("j"))
	update(key("j"))
	before := app.paramValue("solver")
	update(key("l"))
	if app.paramValue("solver") == before {
		t.Error("solver did not change")
	}
	update(key("h"))
	if app.paramValue("solver") != before {
		t.Errorf("solver = %s, want %s", app.paramValue("solver"), before)
	}

	update(key("s"))
	if app.state != stateSim {
		t.Fatalf("state = %d, want sim", app.state)
	}
	if !strings.Contains(app.View(), strings.ToUpper(app.selected)) {
		t.Error("sim view missing scenario name")
	}
}

func TestInteractiveInvalidConfig(t *testing.T) {
	app := *NewInteractiveApp()
	next, _ := app.Update(key("enter"))
	app = next.(model)

	app.cfg.Dt = 0
	next, _ = app.Update(key("s"))
	app = next.(model)
	if app.state != stateConfig || app.err == "" {
		t.Errorf("state=%d err=%q, want config state with error", app.state, app.err)
	}
}

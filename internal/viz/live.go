package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"log"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/rigid2d/internal/body"
	"github.com/san-kum/rigid2d/internal/metrics"
	"github.com/san-kum/rigid2d/internal/scenario"
	"github.com/san-kum/rigid2d/internal/vmath"
	"github.com/san-kum/rigid2d/internal/world"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 300
	gifFile         = "rigid2d.gif"
)

type TickMsg time.Time

// contactOverlay collects contact points from the world listener. It is
// shared by pointer so copies of Model see the same buffer.
type contactOverlay struct {
	enabled bool
	points  []vmath.Vector
}

func (o *contactOverlay) record(m world.Manifold) {
	if !o.enabled {
		return
	}
	o.points = append(o.points, m.Contacts()...)
}

// Model steps a scene once per tick and renders it on a braille canvas.
type Model struct {
	scene    *scenario.Scene
	canvas   *Canvas
	camera   *Camera
	cursor   vmath.Vector
	contacts *contactOverlay

	width, height int
	running       bool
	showHelp      bool
	status        string

	energyHistory []float64
	stepHistory   []float64

	recording bool
	frames    []*image.Paletted
}

func NewModel(scene *scenario.Scene) Model {
	canvas := NewCanvas(width, height)
	cfg := scene.Config()
	m := Model{
		scene:         scene,
		canvas:        canvas,
		camera:        NewCamera(cfg.View, canvas.PixelWidth(), canvas.PixelHeight()),
		contacts:      &contactOverlay{},
		width:         width,
		height:        height,
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
		stepHistory:   make([]float64, 0, historyCapacity),
	}
	m.cursor = vmath.New(m.camera.Center.X, cfg.View.Top-2)
	m.listen()
	return m
}

// listen registers the contact overlay on the scene's current world.
func (m *Model) listen() {
	m.scene.World.SetContactListener(m.contacts.record)
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.recording {
			m.saveGIF()
		}
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "b":
		m.spawn(body.Box)
	case "c":
		m.spawn(body.Circle)
	case "r":
		m.reset()
	case "+", "=":
		m.camera.ZoomIn()
	case "-", "_":
		m.camera.ZoomOut()
	case "up":
		m.moveCursor(0, 1)
	case "down":
		m.moveCursor(0, -1)
	case "left":
		m.moveCursor(-1, 0)
	case "right":
		m.moveCursor(1, 0)
	case "p":
		m.status = m.stats()
		log.Print(m.status)
	case "k":
		m.contacts.enabled = !m.contacts.enabled
		m.contacts.points = m.contacts.points[:0]
	case "g":
		m.recording = !m.recording
		if m.recording {
			m.frames = nil
			m.status = "recording"
		} else {
			m.saveGIF()
		}
	case "t":
		NextTheme()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// moveCursor shifts the spawn cursor in world units.
func (m *Model) moveCursor(dx, dy float64) {
	m.cursor = m.cursor.Add(vmath.New(dx, dy))
}

func (m *Model) spawn(shape body.ShapeType) {
	var err error
	switch shape {
	case body.Box:
		err = m.scene.SpawnBox(m.cursor)
	case body.Circle:
		err = m.scene.SpawnCircle(m.cursor)
	}
	if err != nil {
		m.status = err.Error()
		log.Printf("spawn %s: %v", shape, err)
	}
}

func (m *Model) step() {
	m.contacts.points = m.contacts.points[:0]
	m.scene.Step()

	m.energyHistory = pushHistory(m.energyHistory, metrics.TotalKineticEnergy(m.scene.World))
	m.stepHistory = pushHistory(m.stepHistory, float64(m.scene.LastStepTime())/float64(time.Millisecond))

	if m.recording {
		m.draw()
		m.captureFrame()
	}
}

func pushHistory(h []float64, v float64) []float64 {
	if len(h) >= historyCapacity {
		h = h[1:]
	}
	return append(h, v)
}

func (m *Model) reset() {
	if err := m.scene.Reset(); err != nil {
		m.status = err.Error()
		log.Printf("reset: %v", err)
		return
	}
	m.listen()
	m.energyHistory = m.energyHistory[:0]
	m.stepHistory = m.stepHistory[:0]
	m.contacts.points = m.contacts.points[:0]
	m.status = ""
}

func (m *Model) stats() string {
	return fmt.Sprintf("tick %d  bodies %d  step %.3fms  spawned %d  removed %d",
		m.scene.Tick(),
		m.scene.World.BodyCount(),
		float64(m.scene.LastStepTime())/float64(time.Millisecond),
		m.scene.Spawned(),
		m.scene.Removed(),
	)
}

// View renders the TUI interface.
func (m Model) View() string {
	st := stylesFor(CurrentTheme)
	m.draw()
	canvasView := st.canvas.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.scene.Config().Name)) + "\n")
	switch {
	case m.recording:
		s.WriteString(st.recording.Render("● REC") + "\n\n")
	case m.running:
		s.WriteString(st.running.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(st.paused.Render("PAUSED") + "\n\n")
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(st.graph.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.scene.Time()))
	row("Bodies", fmt.Sprintf("%d", m.scene.World.BodyCount()))
	row("Solver", m.scene.World.Solver().String())
	row("Step", fmt.Sprintf("%.3fms", lastOr(m.stepHistory, 0)))
	row("Load", SparklineChart(m.stepHistory, 20))
	row("Spawned", fmt.Sprintf("%d", m.scene.Spawned()))
	row("Removed", fmt.Sprintf("%d", m.scene.Removed()))
	row("Zoom", fmt.Sprintf("%.2fx", m.camera.Zoom))
	row("Cursor", fmt.Sprintf("(%.1f, %.1f)", m.cursor.X, m.cursor.Y))
	if m.contacts.enabled {
		row("Contacts", fmt.Sprintf("%d", len(m.contacts.points)))
	}
	if m.status != "" {
		s.WriteString("\n" + st.selected.Render(m.status) + "\n")
	}

	s.WriteString(st.help.Render("─────────────────────\nSP:Pause R:Reset Q:Quit\nB:Box C:Circle ←↑↓→:Cursor\n+/-:Zoom ?:Help"))
	statsView := st.stats.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  B / C    - Spawn box / circle       ║
║  Arrows   - Move spawn cursor        ║
║  + / -    - Zoom in / out            ║
║  R        - Reset scenario           ║
║  P        - Print stats              ║
║  K        - Toggle contact points    ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

func lastOr(h []float64, def float64) float64 {
	if len(h) == 0 {
		return def
	}
	return h[len(h)-1]
}

func (m *Model) draw() {
	m.canvas.Clear()
	for _, b := range m.scene.World.Bodies() {
		m.drawBody(b)
	}
	if m.contacts.enabled {
		for _, p := range m.contacts.points {
			x, y := m.camera.Project(p)
			m.canvas.DrawCross(x, y)
		}
	}
	cx, cy := m.camera.Project(m.cursor)
	m.canvas.DrawCross(cx, cy)
}

func (m *Model) drawBody(b *body.Body) {
	switch b.Shape() {
	case body.Circle:
		cx, cy := m.camera.Project(b.Position())
		m.canvas.DrawCircle(cx, cy, b.Radius()*m.camera.Scale())
		// radius line shows rotation
		rim := b.Position().Add(vmath.New(math.Cos(b.Angle()), math.Sin(b.Angle())).Scale(b.Radius()))
		ex, ey := m.camera.Project(rim)
		m.canvas.DrawLine(cx, cy, ex, ey)
	case body.Box:
		verts := b.TransformedVertices()
		xs := make([]int, len(verts))
		ys := make([]int, len(verts))
		for i, v := range verts {
			xs[i], ys[i] = m.camera.Project(v)
		}
		m.canvas.DrawPolygon(xs, ys)
	}
}

func (m *Model) captureFrame() {
	charW, charH := 8, 16
	imgW, imgH := m.width*charW, m.height*charH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), color.Palette{color.Black, color.White})
	dotW, dotH := charW/2, charH/4
	for row := 0; row < m.height; row++ {
		for col := 0; col < m.width; col++ {
			pattern := m.canvas.Grid[row][col] - brailleBlank
			if pattern <= 0 {
				continue
			}
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&rune(pixelMap[dy][dx]) == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, 1)
						}
					}
				}
			}
		}
	}
	m.frames = append(m.frames, img)
}

func (m *Model) saveGIF() {
	if len(m.frames) == 0 {
		return
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}
	f, err := os.Create(gifFile)
	if err != nil {
		m.status = err.Error()
		log.Printf("gif: %v", err)
		return
	}
	defer f.Close()
	if err := gif.EncodeAll(f, &anim); err != nil {
		m.status = err.Error()
		log.Printf("gif: %v", err)
		return
	}
	m.status = fmt.Sprintf("saved %d frames to %s", len(m.frames), gifFile)
	m.frames = nil
}

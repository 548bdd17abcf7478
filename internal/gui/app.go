package gui

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/rigid2d/internal/body"
	"github.com/san-kum/rigid2d/internal/config"
	"github.com/san-kum/rigid2d/internal/metrics"
	"github.com/san-kum/rigid2d/internal/scenario"
	"github.com/san-kum/rigid2d/internal/vmath"
	"github.com/san-kum/rigid2d/internal/world"
)

const (
	screenW = 1280
	screenH = 720

	telemetryCap = 200
	maxFrameTime = 1.0 / 20
)

var (
	ColBg      = rl.NewColor(50, 60, 70, 255)
	ColStatic  = rl.NewColor(105, 105, 105, 255)
	ColOutline = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(200, 200, 200, 255)
	ColTextDim = rl.NewColor(120, 130, 140, 255)
	ColContact = rl.NewColor(255, 60, 60, 255)
)

type App struct {
	Scene   *scenario.Scene
	Running bool
	Font    rl.Font

	// world to screen
	Center vmath.Vector
	Scale  float64

	colors   map[*body.Body]rl.Color
	rng      *rand.Rand
	contacts []vmath.Vector
	showHits bool

	Telemetry []float64
	stepTotal time.Duration
	stepCount int
}

func initWindow() {
	rl.InitWindow(screenW, screenH, "rigid2d")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// loadFont falls back to raylib's built-in font when Liberation Mono is absent.
func loadFont() rl.Font {
	const path = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"
	if _, err := os.Stat(path); err != nil {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(path, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(scene *scenario.Scene) *App {
	cfg := scene.Config()
	a := &App{
		Scene:     scene,
		Running:   true,
		Font:      loadFont(),
		colors:    make(map[*body.Body]rl.Color),
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		Telemetry: make([]float64, 0, telemetryCap),
	}
	a.fit(cfg.View)
	a.listen()
	return a
}

// fit centers the view rectangle in the window.
func (a *App) fit(view config.ViewConfig) {
	a.Center = vmath.New((view.Left+view.Right)/2, (view.Bottom+view.Top)/2)
	sx := float64(screenW) / view.Width()
	sy := float64(screenH) / view.Height()
	a.Scale = sx
	if sy < sx {
		a.Scale = sy
	}
}

func (a *App) listen() {
	a.Scene.World.SetContactListener(func(m world.Manifold) {
		if a.showHits {
			a.contacts = append(a.contacts, m.Contacts()...)
		}
	})
}

// Run opens a window on cfg and blocks until it is closed.
func Run(cfg *config.Config) error {
	scene, err := scenario.NewScene(cfg)
	if err != nil {
		return err
	}
	initWindow()
	defer rl.CloseWindow()
	NewApp(scene).RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// Update handles input and steps the scene. It reports false when the
// window should close.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyEscape) || rl.IsKeyPressed(rl.KeyQ) {
		return false
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.reset()
	}
	if rl.IsKeyPressed(rl.KeyA) {
		a.Scale *= 1.25
	}
	if rl.IsKeyPressed(rl.KeyZ) {
		a.Scale /= 1.25
	}
	if rl.IsKeyPressed(rl.KeyK) {
		a.showHits = !a.showHits
	}
	if rl.IsKeyPressed(rl.KeyP) {
		log.Print(a.stats())
	}

	mouse := a.toWorld(rl.GetMousePosition())
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		if err := a.Scene.SpawnBox(mouse); err != nil {
			log.Printf("spawn box: %v", err)
		}
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		if err := a.Scene.SpawnCircle(mouse); err != nil {
			log.Printf("spawn circle: %v", err)
		}
	}

	if a.Running {
		a.step()
	}
	return true
}

// step advances by the frame time, capped so a stalled frame cannot
// tunnel bodies through the ground.
func (a *App) step() {
	dt := float64(rl.GetFrameTime())
	if dt <= 0 {
		dt = a.Scene.Config().Dt
	}
	if dt > maxFrameTime {
		dt = maxFrameTime
	}

	a.contacts = a.contacts[:0]
	a.Scene.StepDt(dt)
	a.stepTotal += a.Scene.LastStepTime()
	a.stepCount++

	if len(a.Telemetry) >= telemetryCap {
		a.Telemetry = a.Telemetry[1:]
	}
	a.Telemetry = append(a.Telemetry, metrics.TotalKineticEnergy(a.Scene.World))
}

func (a *App) reset() {
	if err := a.Scene.Reset(); err != nil {
		log.Printf("reset: %v", err)
		return
	}
	a.listen()
	a.colors = make(map[*body.Body]rl.Color)
	a.Telemetry = a.Telemetry[:0]
	a.stepTotal, a.stepCount = 0, 0
}

func (a *App) stats() string {
	mean := 0.0
	if a.stepCount > 0 {
		mean = float64(a.stepTotal) / float64(a.stepCount) / float64(time.Millisecond)
	}
	return fmt.Sprintf("bodies %d  step %.4f ms  mean %.4f ms",
		a.Scene.World.BodyCount(),
		float64(a.Scene.LastStepTime())/float64(time.Millisecond),
		mean,
	)
}

func (a *App) toScreen(p vmath.Vector) rl.Vector2 {
	return rl.NewVector2(
		float32(screenW/2+(p.X-a.Center.X)*a.Scale),
		float32(screenH/2-(p.Y-a.Center.Y)*a.Scale),
	)
}

func (a *App) toWorld(p rl.Vector2) vmath.Vector {
	return vmath.New(
		a.Center.X+(float64(p.X)-screenW/2)/a.Scale,
		a.Center.Y-(float64(p.Y)-screenH/2)/a.Scale,
	)
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	for _, b := range a.Scene.World.Bodies() {
		a.drawBody(b)
	}
	if a.showHits {
		for _, p := range a.contacts {
			a.drawContact(p)
		}
	}
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	a.drawText("rigid2d", 30, 30, 24, ColOutline)
	a.drawText(fmt.Sprintf(":: %s", a.Scene.Config().Name), 150, 34, 16, ColText)

	a.DrawTelemetry()

	status, col := "RUNNING", ColOutline
	if !a.Running {
		status, col = "PAUSED", ColTextDim
	}
	a.drawText(status, 1150, 30, 16, col)
	a.drawText(a.stats(), 30, 60, 14, ColText)

	a.drawText("[LMB] BOX  [RMB] CIRCLE  [A/Z] ZOOM  [SPACE] PAUSE  [R] RESET  [K] CONTACTS  [P] STATS  [ESC] QUIT", 380, 690, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, 690, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := 30, 600
	width, height := 400, 60

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColText)
	a.drawText(fmt.Sprintf("KE: %.2f", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}

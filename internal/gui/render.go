package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/rigid2d/internal/body"
	"github.com/san-kum/rigid2d/internal/vmath"
)

const circleSegments = 26

// colorOf assigns each dynamic body a random color on first sight.
func (a *App) colorOf(b *body.Body) rl.Color {
	if b.IsStatic() {
		return ColStatic
	}
	if c, ok := a.colors[b]; ok {
		return c
	}
	c := rl.NewColor(
		uint8(64+a.rng.Intn(192)),
		uint8(64+a.rng.Intn(192)),
		uint8(64+a.rng.Intn(192)),
		255,
	)
	a.colors[b] = c
	return c
}

func (a *App) drawBody(b *body.Body) {
	fill := a.colorOf(b)
	switch b.Shape() {
	case body.Circle:
		a.drawCircle(b, fill)
	case body.Box:
		a.drawPolygon(b.TransformedVertices(), fill)
	}
}

func (a *App) drawCircle(b *body.Body, fill rl.Color) {
	center := a.toScreen(b.Position())
	r := float32(b.Radius() * a.Scale)
	rl.DrawCircleV(center, r, fill)
	rl.DrawCircleLines(int32(center.X), int32(center.Y), r, ColOutline)

	rim := b.Position().Add(vmath.New(math.Cos(b.Angle()), math.Sin(b.Angle())).Scale(b.Radius()))
	rl.DrawLineV(center, a.toScreen(rim), ColOutline)
}

func (a *App) drawPolygon(verts []vmath.Vector, fill rl.Color) {
	n := len(verts)
	if n < 3 {
		return
	}
	pts := make([]rl.Vector2, n)
	for i, v := range verts {
		pts[i] = a.toScreen(v)
	}
	// raylib culls triangles whose screen-space winding has a positive cross
	// product.
	if screenCross(pts[0], pts[1], pts[2]) > 0 {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	for i := 1; i < n-1; i++ {
		rl.DrawTriangle(pts[0], pts[i], pts[i+1], fill)
	}
	for i := 0; i < n; i++ {
		rl.DrawLineV(pts[i], pts[(i+1)%n], ColOutline)
	}
}

func (a *App) drawContact(p vmath.Vector) {
	s := a.toScreen(p)
	rl.DrawRectangleV(rl.NewVector2(s.X-3, s.Y-3), rl.NewVector2(6, 6), ColContact)
	rl.DrawRectangleLines(int32(s.X-3), int32(s.Y-3), 6, 6, ColOutline)
}

func screenCross(a, b, c rl.Vector2) float32 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

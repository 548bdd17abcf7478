package config

import (
	"math"
	"sort"
)

const ledgeTilt = 2 * math.Pi / 20

var Presets = map[string]*Config{
	"drop": DefaultConfig(),
	"ledges": {
		Name: "ledges", Gravity: Vec{Y: DefaultGravityY}, Dt: DefaultDt, Iterations: 20, Ticks: 1800, Seed: 7,
		View: ViewConfig{Left: -32, Right: 32, Bottom: -19.2, Top: 19.2},
		Bodies: []BodyConfig{
			{Shape: "box", Width: 51.2, Height: 3, Density: 1, Restitution: 0.5, Static: true, Position: Vec{Y: -10}},
			{Shape: "box", Width: 20, Height: 2, Density: 1, Restitution: 0.5, Static: true, Position: Vec{X: -10, Y: 3}, Angle: -ledgeTilt},
			{Shape: "box", Width: 15, Height: 2, Density: 1, Restitution: 0.5, Static: true, Position: Vec{X: 10, Y: 10}, Angle: ledgeTilt},
		},
		Spawner: SpawnerConfig{
			Enabled: true, Interval: 20, Max: 80, MinX: -20, MaxX: 20, Y: 17,
			CircleRatio: 0.5, MinSize: 2, MaxSize: 3, MinRadius: 1, MaxRadius: 1.25,
			Density: 1, Restitution: 0.5,
		},
	},
	"stack": {
		Name: "stack", Gravity: Vec{Y: DefaultGravityY}, Dt: DefaultDt, Iterations: 32, Ticks: 900, Seed: 1,
		View: ViewConfig{Left: -16, Right: 16, Bottom: -6, Top: 16},
		Bodies: []BodyConfig{
			{Shape: "box", Width: 30, Height: 2, Density: 1, Restitution: 0.5, Static: true, Position: Vec{Y: -1}},
			{Shape: "box", Width: 2, Height: 2, Density: 1, Restitution: 0.1, Position: Vec{Y: 1.01}},
			{Shape: "box", Width: 2, Height: 2, Density: 1, Restitution: 0.1, Position: Vec{Y: 3.03}},
			{Shape: "box", Width: 2, Height: 2, Density: 1, Restitution: 0.1, Position: Vec{Y: 5.05}},
			{Shape: "box", Width: 2, Height: 2, Density: 1, Restitution: 0.1, Position: Vec{Y: 7.07}},
			{Shape: "box", Width: 2, Height: 2, Density: 1, Restitution: 0.1, Position: Vec{Y: 9.09}},
		},
		Spawner: DefaultSpawner(),
	},
	"billiards": {
		Name: "billiards", Dt: DefaultDt, Iterations: 8, Ticks: 600, Seed: 1, Solver: "rotation-friction",
		View: ViewConfig{Left: -14, Right: 14, Bottom: -8, Top: 8},
		Bodies: []BodyConfig{
			{Shape: "box", Width: 26, Height: 1, Density: 1, Restitution: 0.9, Static: true, Position: Vec{Y: 6.5}},
			{Shape: "box", Width: 26, Height: 1, Density: 1, Restitution: 0.9, Static: true, Position: Vec{Y: -6.5}},
			{Shape: "box", Width: 1, Height: 12, Density: 1, Restitution: 0.9, Static: true, Position: Vec{X: -12.5}},
			{Shape: "box", Width: 1, Height: 12, Density: 1, Restitution: 0.9, Static: true, Position: Vec{X: 12.5}},
			{Shape: "circle", Radius: 0.5, Density: 1, Restitution: 0.9, Position: Vec{X: -8}, Velocity: Vec{X: 14, Y: 0.3}, Friction: &FrictionConfig{}},
			{Shape: "circle", Radius: 0.5, Density: 1, Restitution: 0.9, Position: Vec{X: 4}, Friction: &FrictionConfig{}},
			{Shape: "circle", Radius: 0.5, Density: 1, Restitution: 0.9, Position: Vec{X: 4.9, Y: 0.52}, Friction: &FrictionConfig{}},
			{Shape: "circle", Radius: 0.5, Density: 1, Restitution: 0.9, Position: Vec{X: 4.9, Y: -0.52}, Friction: &FrictionConfig{}},
			{Shape: "circle", Radius: 0.5, Density: 1, Restitution: 0.9, Position: Vec{X: 5.8, Y: 1.04}, Friction: &FrictionConfig{}},
			{Shape: "circle", Radius: 0.5, Density: 1, Restitution: 0.9, Position: Vec{X: 5.8}, Friction: &FrictionConfig{}},
			{Shape: "circle", Radius: 0.5, Density: 1, Restitution: 0.9, Position: Vec{X: 5.8, Y: -1.04}, Friction: &FrictionConfig{}},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

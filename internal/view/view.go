// Package view draws a physics.World with raylib and turns mouse input into camera
// moves and body spawns.
package view

import (
	"orbits/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	panSpeed     = 600 // screen pixels per second
	launchScale  = 2
	spawnRadius  = 5
	followKey    = rl.KeyF
	wallAlpha    = 160
	previewAlpha = 120
)

var (
	coldColor    = rl.NewColor(90, 140, 255, 255)
	hotColor     = rl.NewColor(255, 210, 120, 255)
	wallColor    = rl.NewColor(200, 200, 200, wallAlpha)
	previewColor = rl.NewColor(255, 255, 255, previewAlpha)
)

// View holds a 2-D camera over the world. Left-drag spawns a body launched opposite the
// drag; right-drag and arrow keys pan; the wheel zooms around the cursor; F follows the
// heaviest body.
type View struct {
	Camera rl.Camera2D
	// SpawnRadius is the radius of bodies created by dragging.
	SpawnRadius float32
	// OnSpawn is called when a drag is released. pos and vel are in world units.
	OnSpawn func(pos, vel physics.Vec, radius float64)

	world     *physics.World
	dragging  bool
	dragStart rl.Vector2
	follow    bool
}

// New returns a view centred on the middle of a width×height window at zoom 1.
func New(world *physics.World, width, height int32) *View {
	v := &View{world: world, SpawnRadius: spawnRadius}
	v.Camera.Zoom = 1
	v.Camera.Offset = rl.NewVector2(float32(width)/2, float32(height)/2)
	v.Camera.Target = v.Camera.Offset
	return v
}

// Follow reports whether the camera tracks the heaviest body.
func (v *View) Follow() bool { return v.follow }

// Update handles input for one frame. Pass captureKeys=false while the console is open
// so typing does not move the camera.
func (v *View) Update(dt float32, captureKeys bool) {
	v.Camera.Offset = rl.NewVector2(float32(rl.GetScreenWidth())/2, float32(rl.GetScreenHeight())/2)

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		mouse := rl.GetMousePosition()
		before := rl.GetScreenToWorld2D(mouse, v.Camera)
		v.Camera.Zoom = zoomStep(v.Camera.Zoom, wheel)
		after := rl.GetScreenToWorld2D(mouse, v.Camera)
		v.Camera.Target = rl.Vector2Add(v.Camera.Target, rl.Vector2Subtract(before, after))
	}

	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		delta := rl.GetMouseDelta()
		v.Camera.Target = rl.Vector2Subtract(v.Camera.Target, rl.Vector2Scale(delta, 1/v.Camera.Zoom))
		v.follow = false
	}

	if captureKeys {
		step := panSpeed * dt / v.Camera.Zoom
		if rl.IsKeyDown(rl.KeyLeft) {
			v.Camera.Target.X -= step
		}
		if rl.IsKeyDown(rl.KeyRight) {
			v.Camera.Target.X += step
		}
		if rl.IsKeyDown(rl.KeyUp) {
			v.Camera.Target.Y -= step
		}
		if rl.IsKeyDown(rl.KeyDown) {
			v.Camera.Target.Y += step
		}
		if rl.IsKeyPressed(followKey) {
			v.follow = !v.follow
		}
	}

	if v.follow {
		if i := v.world.Largest(); i >= 0 {
			p := v.world.Bodies()[i].Position
			v.Camera.Target = rl.NewVector2(float32(p.X), float32(p.Y))
		}
	}

	mouseWorld := rl.GetScreenToWorld2D(rl.GetMousePosition(), v.Camera)
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		v.dragging = true
		v.dragStart = mouseWorld
	}
	if v.dragging && rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		v.dragging = false
		vx, vy := launchVelocity(v.dragStart.X, v.dragStart.Y, mouseWorld.X, mouseWorld.Y, launchScale)
		if v.OnSpawn != nil {
			v.OnSpawn(physics.V(float64(v.dragStart.X), float64(v.dragStart.Y)), physics.V(float64(vx), float64(vy)), float64(v.SpawnRadius))
		}
	}
}

// Draw renders the walls, every body and the pending spawn. Call between BeginDrawing and EndDrawing.
func (v *View) Draw() {
	rl.BeginMode2D(v.Camera)
	defer rl.EndMode2D()

	if w := v.world.Config().Walls; w != nil {
		rl.DrawRectangleLinesEx(rl.NewRectangle(float32(w.MinX), float32(w.MinY), float32(w.MaxX-w.MinX), float32(w.MaxY-w.MinY)), 2/v.Camera.Zoom, wallColor)
	}

	bodies := v.world.Bodies()
	var maxMass float32
	for _, b := range bodies {
		if m := float32(b.Mass); m > maxMass {
			maxMass = m
		}
	}
	for _, b := range bodies {
		c := lerpColor(coldColor, hotColor, shade(float32(b.Mass), maxMass))
		rl.DrawCircleV(rl.NewVector2(float32(b.Position.X), float32(b.Position.Y)), screenRadius(float32(b.Radius), v.Camera.Zoom), c)
	}

	if v.dragging {
		mouse := rl.GetScreenToWorld2D(rl.GetMousePosition(), v.Camera)
		rl.DrawCircleLines(int32(v.dragStart.X), int32(v.dragStart.Y), v.SpawnRadius, previewColor)
		rl.DrawLineV(v.dragStart, mouse, previewColor)
	}
}

package view

import (
	"image/color"

	"github.com/chewxy/math32"
)

const (
	minZoom   = 0.02
	maxZoom   = 20
	zoomSpeed = 0.1
)

// zoomStep returns the zoom after one wheel movement. Zoom is exponential in the wheel
// so each notch scales by the same factor, and it is clamped to [minZoom, maxZoom].
func zoomStep(zoom, wheel float32) float32 {
	if zoom <= 0 {
		zoom = 1
	}
	z := math32.Exp(math32.Log(zoom) + wheel*zoomSpeed)
	return math32.Max(minZoom, math32.Min(maxZoom, z))
}

// launchVelocity converts a drag from (x0, y0) to (x1, y1), in world units, into a spawn
// velocity. The body is flung away from the pointer like a slingshot.
func launchVelocity(x0, y0, x1, y1, scale float32) (vx, vy float32) {
	return (x0 - x1) * scale, (y0 - y1) * scale
}

// shade maps mass onto [0, 1] on a log scale relative to the heaviest body, so a field
// of small bodies stays visible next to a large one.
func shade(mass, maxMass float32) float32 {
	if maxMass <= 1 || mass <= 1 {
		return 0
	}
	t := math32.Log(mass) / math32.Log(maxMass)
	return math32.Max(0, math32.Min(1, t))
}

// screenRadius keeps tiny bodies at least one pixel wide at any zoom.
func screenRadius(radius, zoom float32) float32 {
	return math32.Max(radius, 1/zoom)
}

// lerpColor blends a toward b by t in [0, 1], channel by channel.
func lerpColor(a, b color.RGBA, t float32) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float32(x) + (float32(y)-float32(x))*t + 0.5)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

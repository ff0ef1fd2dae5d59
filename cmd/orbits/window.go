package main

import (
	"orbits/internal/debug"
	"orbits/internal/engineconfig"
	"orbits/internal/fonts"
	"orbits/internal/graphics"
	"orbits/internal/logger"
	"orbits/internal/physics"
	"orbits/internal/session"
	"orbits/internal/terminal"
	"orbits/internal/view"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	fontSize = 20
	// maxFrameTime caps the step after a stall (window drag, breakpoint) so bodies do not tunnel.
	maxFrameTime = 1.0 / 20
)

// runWindow opens the viewer. SPACE pauses, TAB opens the console.
func runWindow(sess *session.Session, prefs engineconfig.Prefs, log *logger.Logger) {
	world := sess.World()
	term := terminal.New(log, sess.Commands())
	dbg := debug.New()
	dbg.ShowFPS = prefs.ShowFPS
	dbg.ShowMemAlloc = prefs.ShowMemAlloc
	dbg.ShowStats = prefs.ShowStats

	v := view.New(world, int32(prefs.Window.Width), int32(prefs.Window.Height))
	v.OnSpawn = func(pos, vel physics.Vec, radius float64) {
		if _, err := world.Spawn(pos, vel, radius); err != nil {
			log.Log("error: " + err.Error())
		}
	}

	fontLoaded := false
	update := func(dt float32) {
		if !fontLoaded {
			fontLoaded = true
			if path, err := fonts.Find(prefs.Font, fonts.BaseDirs()...); err == nil {
				f := rl.LoadFontEx(path, fontSize, nil)
				dbg.SetFont(f)
				term.SetFont(f)
				log.Logf("font %s", path)
			}
		}

		dt = min(dt, maxFrameTime)
		term.Update()
		v.Update(dt, !term.IsOpen())
		if !term.IsOpen() && rl.IsKeyPressed(rl.KeySpace) {
			sess.SetPaused(!sess.Paused())
		}
		if _, err := sess.Advance(float64(dt)); err != nil {
			log.Log("error: " + err.Error())
			sess.SetPaused(true)
		}

		last := sess.Last()
		dbg.SetStats(debug.Stats{
			Scenario:    sess.Scenario(),
			Policy:      world.Config().Policy.String(),
			Frame:       world.Frame(),
			Bodies:      world.Len(),
			Collisions:  last.Collisions,
			Merges:      last.Merges,
			Kinetic:     world.KineticEnergy(),
			Momentum:    r2.Norm(world.Momentum()),
			Penetration: last.Penetration,
			Paused:      sess.Paused(),
		})
	}
	draw := func() {
		v.Draw()
		term.Draw()
		dbg.Draw()
	}

	graphics.Run(graphics.Options{
		Title:     "orbits - " + sess.Scenario(),
		Width:     int32(prefs.Window.Width),
		Height:    int32(prefs.Window.Height),
		TargetFPS: int32(prefs.TargetFPS),
	}, update, draw)
}

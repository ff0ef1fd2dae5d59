package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"orbits/internal/engineconfig"
	"orbits/internal/env"
	"orbits/internal/logger"
	"orbits/internal/physics"
	"orbits/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "orbits:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", engineconfig.EngineConfigPath, "engine config file")
	scenarioRef := flag.String("scenario", "", "scenario name or YAML path (overrides config)")
	policy := flag.String("policy", "", "collision policy: elastic or inelastic (overrides config)")
	passes := flag.Int("passes", -1, "relaxation passes per frame (overrides config)")
	headless := flag.Bool("headless", false, "run without a window")
	frames := flag.Int("frames", 600, "frames to simulate in headless mode (0 = until interrupted)")
	dt := flag.Float64("dt", 1.0/60, "time step per frame in headless mode")
	statsEvery := flag.Int("stats-every", 60, "log stats every N frames in headless mode (0 = off)")
	logPath := flag.String("log", "", "log file (overrides config)")
	flag.Parse()

	if err := env.Load(".env"); err != nil {
		return err
	}
	prefs, err := engineconfig.Load(*configPath)
	if err != nil {
		return err
	}
	if err := engineconfig.ApplyEnv(&prefs); err != nil {
		return err
	}
	if *scenarioRef != "" {
		prefs.Scenario = *scenarioRef
	}
	if *policy != "" {
		p, err := physics.ParseCollisionPolicy(*policy)
		if err != nil {
			return err
		}
		prefs.Physics.Policy = p
	}
	if *passes >= 0 {
		prefs.Physics.RelaxationPasses = *passes
	}
	if *logPath != "" {
		prefs.LogPath = *logPath
	}
	if prefs.LogPath == "" {
		prefs.LogPath = logger.LogFilePath
	}

	log := logger.New(prefs.LogPath)
	if *headless {
		log.Mirror(func(line string) { fmt.Println(line) })
	}

	sess, err := session.New(prefs, log)
	if err != nil {
		return err
	}
	log.Logf("orbits: policy %s, G %g, damping %g, friction %g, passes %d",
		prefs.Physics.Policy, prefs.Physics.G, prefs.Physics.Damping, prefs.Physics.Friction, prefs.Physics.RelaxationPasses)
	if err := sess.Load(prefs.Scenario); err != nil {
		return err
	}

	if *headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return sess.RunHeadless(ctx, *frames, *dt, *statsEvery)
	}
	runWindow(sess, prefs, log)
	return nil
}
